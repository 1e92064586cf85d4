package vault

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// Envelope is the self-describing on-disk container. Everything needed to
// re-derive the key and decrypt travels with the ciphertext; opening a
// vault file requires nothing but the passphrase.
//
// Layout:
//
//	[1]  format version
//	[1]  KDF algorithm id
//	[4]  KDF work parameter (big-endian)
//	[n]  KDF salt (length fixed by algorithm id)
//	[1]  AEAD algorithm id
//	[n]  nonce (length fixed by algorithm id)
//	[N]  ciphertext || 16-byte tag
type Envelope struct {
	Version    uint8
	KDF        KDFParams
	AEAD       uint8
	Nonce      []byte
	Ciphertext []byte // includes the trailing tag
}

// aad returns the header bytes that are authenticated but not encrypted.
// Flipping any bit of the stored version, KDF parameters, or algorithm ids
// invalidates the tag.
func (e *Envelope) aad() []byte {
	buf := &bytes.Buffer{}
	buf.WriteByte(e.Version)
	buf.WriteByte(e.KDF.Algo)
	_ = binary.Write(buf, binary.BigEndian, e.KDF.Work)
	buf.Write(e.KDF.Salt)
	buf.WriteByte(e.AEAD)
	return buf.Bytes()
}

// Encode serializes the envelope into the on-disk byte layout.
func (e *Envelope) Encode() ([]byte, error) {
	buf := &bytes.Buffer{}
	buf.Write(e.aad())
	buf.Write(e.Nonce)
	buf.Write(e.Ciphertext)
	return buf.Bytes(), nil
}

// DecodeEnvelope parses and validates the on-disk layout. Unknown versions
// or algorithm ids are rejected outright; there is no best-effort decode.
func DecodeEnvelope(raw []byte) (*Envelope, error) {
	// version + kdf id + work + aead id, before variable-length fields
	if len(raw) < 1+1+4+1 {
		return nil, fmt.Errorf("%w: file too short", ErrCorrupt)
	}
	if raw[0] != FormatVersion {
		return nil, fmt.Errorf("%w: format version 0x%02x", ErrUnsupportedFormat, raw[0])
	}

	env := &Envelope{Version: raw[0], KDF: KDFParams{Algo: raw[1], KeyLen: KeyLen}}
	saltLen, ok := kdfSaltLen(env.KDF.Algo)
	if !ok {
		return nil, fmt.Errorf("%w: kdf algorithm 0x%02x", ErrUnsupportedFormat, env.KDF.Algo)
	}
	env.KDF.Work = binary.BigEndian.Uint32(raw[2:6])

	rest := raw[6:]
	if len(rest) < saltLen+1 {
		return nil, fmt.Errorf("%w: truncated header", ErrCorrupt)
	}
	env.KDF.Salt = append([]byte(nil), rest[:saltLen]...)
	env.AEAD = rest[saltLen]

	nonceLen, ok := aeadNonceLen(env.AEAD)
	if !ok {
		return nil, fmt.Errorf("%w: aead algorithm 0x%02x", ErrUnsupportedFormat, env.AEAD)
	}

	rest = rest[saltLen+1:]
	if len(rest) < nonceLen+TagLen {
		return nil, fmt.Errorf("%w: truncated ciphertext", ErrCorrupt)
	}
	env.Nonce = append([]byte(nil), rest[:nonceLen]...)
	env.Ciphertext = append([]byte(nil), rest[nonceLen:]...)
	return env, nil
}
