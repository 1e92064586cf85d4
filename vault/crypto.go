package vault

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"fmt"
	"io"

	"golang.org/x/crypto/chacha20poly1305"
)

// Zero overwrites a byte slice in memory with zeros.
func Zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

func randBytes(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := io.ReadFull(rand.Reader, b); err != nil {
		return nil, err
	}
	return b, nil
}

func aeadNonceLen(algo uint8) (int, bool) {
	switch algo {
	case AEADAESGCM:
		return 12, true
	case AEADXChaCha20Poly1305:
		return chacha20poly1305.NonceSizeX, true
	default:
		return 0, false
	}
}

func newAEAD(algo uint8, key []byte) (cipher.AEAD, error) {
	switch algo {
	case AEADAESGCM:
		block, err := aes.NewCipher(key)
		if err != nil {
			return nil, err
		}
		return cipher.NewGCM(block)
	case AEADXChaCha20Poly1305:
		return chacha20poly1305.NewX(key)
	default:
		return nil, fmt.Errorf("%w: unknown aead algorithm 0x%02x", ErrUnsupportedFormat, algo)
	}
}

// sealEnvelope encrypts plaintext under key with a fresh random nonce and
// binds the cleartext header (version, KDF parameters, algorithm ids) into
// the authentication tag as associated data.
func sealEnvelope(key, plaintext []byte, kdf KDFParams, aeadAlgo uint8) (*Envelope, error) {
	env := &Envelope{Version: FormatVersion, KDF: kdf, AEAD: aeadAlgo}

	aead, err := newAEAD(aeadAlgo, key)
	if err != nil {
		return nil, err
	}
	nonce, err := randBytes(aead.NonceSize())
	if err != nil {
		return nil, err
	}
	env.Nonce = nonce
	env.Ciphertext = aead.Seal(nil, nonce, plaintext, env.aad())
	return env, nil
}

// openEnvelope authenticates the full ciphertext and header before any
// plaintext is returned. Wrong key and tampered data are deliberately
// indistinguishable: both come back as ErrAuthFailed.
func openEnvelope(key []byte, env *Envelope) ([]byte, error) {
	aead, err := newAEAD(env.AEAD, key)
	if err != nil {
		return nil, err
	}
	pt, err := aead.Open(nil, env.Nonce, env.Ciphertext, env.aad())
	if err != nil {
		return nil, ErrAuthFailed
	}
	return pt, nil
}
