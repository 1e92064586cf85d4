package vault

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// Store is the file-management collaborator: it reads the envelope bytes,
// replaces them atomically, and holds an advisory lock so a second
// process cannot operate on the same vault file while a session is open.
type Store struct {
	path string
	lock *flock.Flock
}

func NewStore(path string) *Store {
	return &Store{path: path, lock: flock.New(path + ".lock")}
}

func (st *Store) Path() string { return st.path }

// Exists reports whether the vault file is present on disk.
func (st *Store) Exists() bool {
	_, err := os.Stat(st.path)
	return err == nil
}

// Acquire takes the advisory lock without blocking. It fails if another
// process already holds the vault open.
func (st *Store) Acquire() error {
	ok, err := st.lock.TryLock()
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("vault file %s is in use by another process", st.path)
	}
	return nil
}

// Release drops the advisory lock and removes the lock file.
func (st *Store) Release() error {
	if err := st.lock.Unlock(); err != nil {
		return err
	}
	_ = os.Remove(st.lock.Path())
	return nil
}

// Read returns the raw envelope bytes.
func (st *Store) Read() ([]byte, error) {
	return os.ReadFile(st.path)
}

// WriteAtomic replaces the vault file via write-temp-then-rename, syncing
// the file and its directory, so a crash mid-write never leaves a
// truncated vault behind.
func (st *Store) WriteAtomic(data []byte) error {
	dir := filepath.Dir(st.path)
	tmpFile, err := os.CreateTemp(dir, "keepgo-*")
	if err != nil {
		return err
	}
	tmpPath := tmpFile.Name()
	defer func() {
		tmpFile.Close()
		os.Remove(tmpPath)
	}()

	if err := tmpFile.Chmod(0600); err != nil {
		return err
	}
	if _, err := tmpFile.Write(data); err != nil {
		return err
	}
	if err := tmpFile.Sync(); err != nil {
		return err
	}
	if err := tmpFile.Close(); err != nil {
		return err
	}

	if err := os.Rename(tmpPath, st.path); err != nil {
		return err
	}
	return syncDir(dir)
}

func syncDir(dir string) error {
	f, err := os.Open(dir)
	if err != nil {
		return err
	}
	defer f.Close()
	return f.Sync()
}
