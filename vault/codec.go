package vault

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
)

// Canonical plaintext payload: deterministic field order, UTF-8 text,
// explicit integer widths. The encoded bytes are what gets authenticated,
// so the same entries always encode to the same bytes.
//
//	[1]  payload version
//	[4]  entry count (big-endian)
//	per entry:
//	  [16] id
//	  [4+n] title, username, password, url, notes (u32 length prefix each)
//	  [8]  created-at (unix microseconds, big-endian)
//	  [8]  updated-at (unix microseconds, big-endian)
const payloadVersion = 0x01

// Decode-side sanity caps. A malicious payload must not be able to force
// huge allocations before authentication problems surface elsewhere.
const (
	maxEntries   = 1 << 20
	maxFieldSize = 1 << 24

	// Smallest possible encoded entry: id, five empty length-prefixed
	// fields, two timestamps.
	minEntrySize = 16 + 5*4 + 8 + 8
)

func writeBytes(buf *bytes.Buffer, b []byte) error {
	if len(b) > maxFieldSize {
		return fmt.Errorf("%w: field of %d bytes", ErrMalformedPayload, len(b))
	}
	if err := binary.Write(buf, binary.BigEndian, uint32(len(b))); err != nil {
		return err
	}
	_, err := buf.Write(b)
	return err
}

func encodeEntries(entries []Entry) ([]byte, error) {
	buf := &bytes.Buffer{}
	buf.WriteByte(payloadVersion)
	if err := binary.Write(buf, binary.BigEndian, uint32(len(entries))); err != nil {
		return nil, err
	}
	for i := range entries {
		e := &entries[i]
		buf.Write(e.ID[:])
		for _, field := range [][]byte{
			[]byte(e.Title), []byte(e.Username), e.Password, []byte(e.URL), []byte(e.Notes),
		} {
			if err := writeBytes(buf, field); err != nil {
				return nil, err
			}
		}
		if err := binary.Write(buf, binary.BigEndian, e.CreatedAt.UnixMicro()); err != nil {
			return nil, err
		}
		if err := binary.Write(buf, binary.BigEndian, e.UpdatedAt.UnixMicro()); err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}

func readBytes(r *bytes.Reader) ([]byte, error) {
	var n uint32
	if err := binary.Read(r, binary.BigEndian, &n); err != nil {
		return nil, ErrMalformedPayload
	}
	if n > maxFieldSize || int(n) > r.Len() {
		return nil, ErrMalformedPayload
	}
	b := make([]byte, n)
	if _, err := io.ReadFull(r, b); err != nil {
		return nil, ErrMalformedPayload
	}
	return b, nil
}

// decodeEntries parses a payload produced by encodeEntries. The result is
// either a fully valid entry set or an error; no partial state escapes.
func decodeEntries(raw []byte) ([]Entry, error) {
	r := bytes.NewReader(raw)

	version, err := r.ReadByte()
	if err != nil {
		return nil, ErrMalformedPayload
	}
	if version != payloadVersion {
		return nil, fmt.Errorf("%w: 0x%02x", ErrUnknownPayloadVersion, version)
	}

	var count uint32
	if err := binary.Read(r, binary.BigEndian, &count); err != nil {
		return nil, ErrMalformedPayload
	}
	if count > maxEntries || int(count)*minEntrySize > r.Len() {
		return nil, fmt.Errorf("%w: %d entries", ErrMalformedPayload, count)
	}

	entries := make([]Entry, 0, count)
	seen := make(map[uuid.UUID]struct{}, count)
	for i := uint32(0); i < count; i++ {
		var e Entry
		if _, err := io.ReadFull(r, e.ID[:]); err != nil {
			return nil, ErrMalformedPayload
		}
		if _, dup := seen[e.ID]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateEntry, e.ID)
		}
		seen[e.ID] = struct{}{}

		fields := make([][]byte, 5)
		for j := range fields {
			if fields[j], err = readBytes(r); err != nil {
				return nil, err
			}
		}
		e.Title = string(fields[0])
		e.Username = string(fields[1])
		e.Password = fields[2]
		e.URL = string(fields[3])
		e.Notes = string(fields[4])

		var created, updated int64
		if err := binary.Read(r, binary.BigEndian, &created); err != nil {
			return nil, ErrMalformedPayload
		}
		if err := binary.Read(r, binary.BigEndian, &updated); err != nil {
			return nil, ErrMalformedPayload
		}
		e.CreatedAt = time.UnixMicro(created).UTC()
		e.UpdatedAt = time.UnixMicro(updated).UTC()

		entries = append(entries, e)
	}
	if r.Len() != 0 {
		return nil, fmt.Errorf("%w: %d trailing bytes", ErrMalformedPayload, r.Len())
	}
	return entries, nil
}
