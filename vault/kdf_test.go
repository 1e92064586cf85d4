package vault

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testKDFParams(t *testing.T) KDFParams {
	t.Helper()
	salt, err := randBytes(pbkdf2SaltLen)
	require.NoError(t, err)
	return KDFParams{Algo: KDFPBKDF2SHA256, Work: pbkdf2FloorIters, Salt: salt, KeyLen: KeyLen}
}

func TestDeriveDeterministic(t *testing.T) {
	p := testKDFParams(t)

	k1, err := Derive([]byte("correct-horse"), p)
	require.NoError(t, err)
	k2, err := Derive([]byte("correct-horse"), p)
	require.NoError(t, err)

	assert.Equal(t, k1, k2, "same passphrase and params must reproduce the key")
	assert.Len(t, k1, KeyLen)
}

func TestDerivePassphraseChangesKey(t *testing.T) {
	p := testKDFParams(t)

	k1, err := Derive([]byte("correct-horse"), p)
	require.NoError(t, err)
	k2, err := Derive([]byte("wrong"), p)
	require.NoError(t, err)

	assert.NotEqual(t, k1, k2)
}

func TestDeriveSaltChangesKey(t *testing.T) {
	p1 := testKDFParams(t)
	p2 := testKDFParams(t)
	require.NotEqual(t, p1.Salt, p2.Salt)

	k1, err := Derive([]byte("correct-horse"), p1)
	require.NoError(t, err)
	k2, err := Derive([]byte("correct-horse"), p2)
	require.NoError(t, err)

	assert.NotEqual(t, k1, k2)
}

func TestDeriveArgon2id(t *testing.T) {
	if testing.Short() {
		t.Skip("memory-hard derivation")
	}
	p, err := DefaultKDFParams()
	require.NoError(t, err)
	require.Equal(t, uint8(KDFArgon2id), p.Algo)
	require.Len(t, p.Salt, argon2SaltLen)

	k1, err := Derive([]byte("correct-horse"), p)
	require.NoError(t, err)
	k2, err := Derive([]byte("correct-horse"), p)
	require.NoError(t, err)
	assert.Equal(t, k1, k2)
	assert.Len(t, k1, KeyLen)
}

func TestDeriveRejectsWeakParams(t *testing.T) {
	p := testKDFParams(t)
	p.Work = pbkdf2FloorIters - 1

	_, err := Derive([]byte("pw"), p)
	assert.ErrorIs(t, err, ErrWeakParams)

	salt, err := randBytes(argon2SaltLen)
	require.NoError(t, err)
	weak := KDFParams{Algo: KDFArgon2id, Work: 1, Salt: salt, KeyLen: KeyLen}
	_, err = Derive([]byte("pw"), weak)
	assert.ErrorIs(t, err, ErrWeakParams)
}

func TestDeriveRejectsInvalidParams(t *testing.T) {
	p := testKDFParams(t)

	short := p
	short.Salt = p.Salt[:8]
	_, err := Derive([]byte("pw"), short)
	assert.ErrorIs(t, err, ErrInvalidParams)

	unknown := p
	unknown.Algo = 0x7f
	_, err = Derive([]byte("pw"), unknown)
	assert.ErrorIs(t, err, ErrInvalidParams)

	long := p
	long.KeyLen = 4096
	_, err = Derive([]byte("pw"), long)
	assert.ErrorIs(t, err, ErrInvalidParams)

	tiny := p
	tiny.KeyLen = 8
	_, err = Derive([]byte("pw"), tiny)
	assert.ErrorIs(t, err, ErrInvalidParams)
}
