package vault

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/keepgo/keepgo/platform"
)

// Session owns the derived key and the decrypted entries for exactly one
// unlocked vault. It is the only holder of either; both are wiped by Lock
// on every exit path. A Session is not safe for concurrent use; the vault
// is a single-owner, single-session design.
type Session struct {
	key      []byte
	kdf      KDFParams
	aead     uint8
	entries  []Entry
	unlocked bool
}

// Create starts a new empty vault session from a passphrase with the
// default parameters (Argon2id, AES-256-GCM), generating a fresh salt and
// deriving the session key. The caller zeroizes the passphrase after the
// call returns.
func Create(passphrase []byte) (*Session, error) {
	kdf, err := DefaultKDFParams()
	if err != nil {
		return nil, err
	}
	return CreateWithParams(passphrase, kdf, AEADAESGCM)
}

// CreateWithParams is Create with explicit derivation and cipher choices.
func CreateWithParams(passphrase []byte, kdf KDFParams, aead uint8) (*Session, error) {
	if _, ok := aeadNonceLen(aead); !ok {
		return nil, fmt.Errorf("%w: aead algorithm 0x%02x", ErrUnsupportedFormat, aead)
	}
	key, err := Derive(passphrase, kdf)
	if err != nil {
		return nil, err
	}
	_ = platform.LockMemory(key)
	return &Session{key: key, kdf: kdf, aead: aead, unlocked: true}, nil
}

// Unlock derives the key from the envelope's stored parameters, opens the
// ciphertext, and decodes the entry set. Wrong passphrase and corruption
// are reported identically as ErrCannotOpenVault; unknown versions and
// algorithm ids as ErrUnsupportedFormat. A decode failure after a
// successful decryption additionally carries the codec error for
// diagnostics.
func Unlock(passphrase, raw []byte) (*Session, error) {
	env, err := DecodeEnvelope(raw)
	if err != nil {
		if errors.Is(err, ErrUnsupportedFormat) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", ErrCannotOpenVault, err)
	}

	key, err := Derive(passphrase, env.KDF)
	if err != nil {
		// Includes weak-params rejection: a tampered header must not talk
		// us into a cheap derivation.
		return nil, fmt.Errorf("%w: %w", ErrCannotOpenVault, err)
	}

	pt, err := openEnvelope(key, env)
	if err != nil {
		Zero(key)
		return nil, fmt.Errorf("%w: %w", ErrCannotOpenVault, err)
	}

	entries, err := decodeEntries(pt)
	Zero(pt)
	if err != nil {
		Zero(key)
		return nil, fmt.Errorf("%w: %w", ErrCannotOpenVault, err)
	}

	_ = platform.LockMemory(key)
	return &Session{
		key:      key,
		kdf:      env.KDF,
		aead:     env.AEAD,
		entries:  entries,
		unlocked: true,
	}, nil
}

// Lock wipes the session key and every entry password and returns the
// session to the locked state. It is idempotent and safe to defer; every
// path out of an unlocked session must end here.
func (s *Session) Lock() {
	s.unlocked = false
	Zero(s.key)
	_ = platform.UnlockMemory(s.key)
	s.key = nil
	for i := range s.entries {
		Zero(s.entries[i].Password)
		s.entries[i].Password = nil
	}
	s.entries = nil
}

// Unlocked reports whether the session currently holds decrypted state.
func (s *Session) Unlocked() bool { return s.unlocked }

// Persist encodes and seals the current entries with the session key and
// a freshly generated nonce, returning the envelope bytes. Persisting
// twice never reuses a nonce, even for identical content. Atomic file
// replacement is the Store's job.
func (s *Session) Persist() ([]byte, error) {
	if !s.unlocked {
		return nil, ErrLocked
	}
	pt, err := encodeEntries(s.entries)
	if err != nil {
		return nil, err
	}
	env, err := sealEnvelope(s.key, pt, s.kdf, s.aead)
	Zero(pt)
	if err != nil {
		return nil, err
	}
	return env.Encode()
}

// List returns the entries in insertion order. The returned slice is a
// copy but the password bytes are shared with the session and become
// invalid once it locks.
func (s *Session) List() ([]Entry, error) {
	if !s.unlocked {
		return nil, ErrLocked
	}
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out, nil
}

// Get returns the entry with the given id.
func (s *Session) Get(id uuid.UUID) (Entry, error) {
	if !s.unlocked {
		return Entry{}, ErrLocked
	}
	for i := range s.entries {
		if s.entries[i].ID == id {
			return s.entries[i], nil
		}
	}
	return Entry{}, fmt.Errorf("%w: %s", ErrNotFound, id)
}

// Add appends an entry, preserving insertion order. Entries built outside
// NewEntry get an id and timestamps assigned here.
func (s *Session) Add(e Entry) (uuid.UUID, error) {
	if !s.unlocked {
		return uuid.Nil, ErrLocked
	}
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	for i := range s.entries {
		if s.entries[i].ID == e.ID {
			return uuid.Nil, fmt.Errorf("%w: %s", ErrDuplicateEntry, e.ID)
		}
	}
	now := time.Now().UTC().Truncate(time.Microsecond)
	if e.CreatedAt.IsZero() {
		e.CreatedAt = now
	}
	if e.UpdatedAt.Before(e.CreatedAt) {
		e.UpdatedAt = e.CreatedAt
	}
	s.entries = append(s.entries, e)
	return e.ID, nil
}

// Update applies the non-nil fields of upd to the entry and bumps its
// modification timestamp. The previous password is wiped when replaced.
func (s *Session) Update(id uuid.UUID, upd EntryUpdate) error {
	if !s.unlocked {
		return ErrLocked
	}
	for i := range s.entries {
		e := &s.entries[i]
		if e.ID != id {
			continue
		}
		if upd.Title != nil {
			e.Title = *upd.Title
		}
		if upd.Username != nil {
			e.Username = *upd.Username
		}
		if upd.Password != nil {
			Zero(e.Password)
			e.Password = upd.Password
		}
		if upd.URL != nil {
			e.URL = *upd.URL
		}
		if upd.Notes != nil {
			e.Notes = *upd.Notes
		}
		e.UpdatedAt = time.Now().UTC().Truncate(time.Microsecond)
		return nil
	}
	return fmt.Errorf("%w: %s", ErrNotFound, id)
}

// Delete removes the entry with the given id. Deleting an unknown id is
// an error, never a silent no-op. The removed password is wiped.
func (s *Session) Delete(id uuid.UUID) error {
	if !s.unlocked {
		return ErrLocked
	}
	for i := range s.entries {
		if s.entries[i].ID != id {
			continue
		}
		Zero(s.entries[i].Password)
		s.entries = append(s.entries[:i], s.entries[i+1:]...)
		return nil
	}
	return fmt.Errorf("%w: %s", ErrNotFound, id)
}
