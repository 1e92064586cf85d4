package vault

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// On-disk format identifiers. The format enumerates a closed set of
// algorithms; anything outside it is rejected at load.
const (
	FormatVersion = 0x01

	KDFArgon2id     = 0x01
	KDFPBKDF2SHA256 = 0x02

	AEADAESGCM            = 0x01
	AEADXChaCha20Poly1305 = 0x02

	KeyLen = 32
	TagLen = 16
)

var (
	ErrLocked   = errors.New("vault: locked")
	ErrNotFound = errors.New("vault: entry not found")

	ErrAuthFailed        = errors.New("vault: authentication failed")
	ErrCorrupt           = errors.New("vault: corrupt file")
	ErrUnsupportedFormat = errors.New("vault: unsupported or future format")

	ErrInvalidParams = errors.New("vault: invalid kdf parameters")
	ErrWeakParams    = errors.New("vault: kdf work factor below safety floor")

	ErrMalformedPayload      = errors.New("vault: malformed payload")
	ErrUnknownPayloadVersion = errors.New("vault: unknown payload version")
	ErrDuplicateEntry        = errors.New("vault: duplicate entry id")

	ErrCannotOpenVault = errors.New("vault: cannot open vault")
)

// Entry is one credential record. ID is assigned at creation and never
// changes; UpdatedAt is bumped on every mutation and is always >= CreatedAt.
// Password is the only secret field and is zeroized when the owning
// session locks.
type Entry struct {
	ID        uuid.UUID
	Title     string
	Username  string
	Password  []byte
	URL       string
	Notes     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewEntry builds an entry with a fresh identifier and both timestamps
// set to the current UTC instant. Timestamps are truncated to microsecond
// precision, the granularity the canonical encoding persists.
func NewEntry(title, username string, password []byte, url, notes string) Entry {
	now := time.Now().UTC().Truncate(time.Microsecond)
	return Entry{
		ID:        uuid.New(),
		Title:     title,
		Username:  username,
		Password:  password,
		URL:       url,
		Notes:     notes,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// EntryUpdate carries optional replacement values for Update. Nil fields
// leave the current value untouched.
type EntryUpdate struct {
	Title    *string
	Username *string
	Password []byte
	URL      *string
	Notes    *string
}
