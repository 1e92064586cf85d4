package vault

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreWriteAtomicReadRoundTrip(t *testing.T) {
	st := NewStore(filepath.Join(t.TempDir(), "vault.keep"))

	assert.False(t, st.Exists())
	require.NoError(t, st.WriteAtomic([]byte("envelope-bytes")))
	assert.True(t, st.Exists())

	got, err := st.Read()
	require.NoError(t, err)
	assert.Equal(t, []byte("envelope-bytes"), got)
}

func TestStoreWriteAtomicReplaces(t *testing.T) {
	st := NewStore(filepath.Join(t.TempDir(), "vault.keep"))

	require.NoError(t, st.WriteAtomic([]byte("first")))
	require.NoError(t, st.WriteAtomic([]byte("second")))

	got, err := st.Read()
	require.NoError(t, err)
	assert.Equal(t, []byte("second"), got)
}

func TestStoreFilePermissions(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("permission bits")
	}
	st := NewStore(filepath.Join(t.TempDir(), "vault.keep"))
	require.NoError(t, st.WriteAtomic([]byte("x")))

	info, err := os.Stat(st.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestStoreWriteAtomicLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	st := NewStore(filepath.Join(dir, "vault.keep"))
	require.NoError(t, st.WriteAtomic([]byte("x")))

	files, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "vault.keep", files[0].Name())
}

func TestStoreAcquireRelease(t *testing.T) {
	st := NewStore(filepath.Join(t.TempDir(), "vault.keep"))

	require.NoError(t, st.Acquire())
	require.NoError(t, st.Release())

	// Lock file must not linger after release.
	_, err := os.Stat(st.Path() + ".lock")
	assert.True(t, os.IsNotExist(err))
}
