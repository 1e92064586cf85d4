package vault

import (
	"crypto/sha256"
	"fmt"
	"io"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/hkdf"
	"golang.org/x/crypto/pbkdf2"
)

const (
	argon2SaltLen = 16
	pbkdf2SaltLen = 32

	// Memory and parallelism are pinned by the algorithm id so the file
	// format only needs to carry a single work parameter.
	argon2Memory  = 256 * 1024 // KiB
	argon2Threads = 1

	// Safety floors. Work factors below these are rejected so a tampered
	// envelope cannot silently weaken derivation.
	argon2FloorTime  = 2
	pbkdf2FloorIters = 100_000

	kdfInfo = "keepgo vault v1"
)

// KDFParams describes how to turn a passphrase into the vault key.
// Everything here is stored in the envelope header, so reopening a file
// reproduces the exact same derivation.
type KDFParams struct {
	Algo   uint8
	Work   uint32 // Argon2id: time cost; PBKDF2: iteration count
	Salt   []byte
	KeyLen int
}

// DefaultKDFParams returns Argon2id parameters with a fresh random salt.
// Salts are never reused across vaults.
func DefaultKDFParams() (KDFParams, error) {
	salt, err := randBytes(argon2SaltLen)
	if err != nil {
		return KDFParams{}, err
	}
	return KDFParams{Algo: KDFArgon2id, Work: 3, Salt: salt, KeyLen: KeyLen}, nil
}

func kdfSaltLen(algo uint8) (int, bool) {
	switch algo {
	case KDFArgon2id:
		return argon2SaltLen, true
	case KDFPBKDF2SHA256:
		return pbkdf2SaltLen, true
	default:
		return 0, false
	}
}

func (p KDFParams) validate() error {
	want, ok := kdfSaltLen(p.Algo)
	if !ok {
		return fmt.Errorf("%w: unknown kdf algorithm 0x%02x", ErrInvalidParams, p.Algo)
	}
	if len(p.Salt) != want {
		return fmt.Errorf("%w: salt must be %d bytes, got %d", ErrInvalidParams, want, len(p.Salt))
	}
	if p.KeyLen < 16 || p.KeyLen > 256 {
		return fmt.Errorf("%w: key length %d out of range", ErrInvalidParams, p.KeyLen)
	}
	switch p.Algo {
	case KDFArgon2id:
		if p.Work < argon2FloorTime {
			return fmt.Errorf("%w: argon2id time cost %d < %d", ErrWeakParams, p.Work, argon2FloorTime)
		}
	case KDFPBKDF2SHA256:
		if p.Work < pbkdf2FloorIters {
			return fmt.Errorf("%w: pbkdf2 iterations %d < %d", ErrWeakParams, p.Work, pbkdf2FloorIters)
		}
	}
	return nil
}

// Derive stretches the passphrase into the vault key. The password hash
// output is expanded through HKDF-SHA256 so the raw hash never doubles as
// the encryption key; the intermediate is wiped before returning. The
// caller owns the passphrase buffer and zeroizes it after use.
func Derive(passphrase []byte, p KDFParams) ([]byte, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}

	var master []byte
	switch p.Algo {
	case KDFArgon2id:
		master = argon2.IDKey(passphrase, p.Salt, p.Work, argon2Memory, argon2Threads, uint32(p.KeyLen))
	case KDFPBKDF2SHA256:
		master = pbkdf2.Key(passphrase, p.Salt, int(p.Work), p.KeyLen, sha256.New)
	}
	defer Zero(master)

	h := hkdf.New(sha256.New, master, nil, []byte(kdfInfo))
	key := make([]byte, p.KeyLen)
	if _, err := io.ReadFull(h, key); err != nil {
		Zero(key)
		return nil, err
	}
	return key, nil
}
