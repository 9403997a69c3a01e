package crypto

import (
	"crypto/sha256"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"
)

// ExpandedKeys holds the HKDF expansion of a media key split into its
// purpose-specific fields. The slices alias a single 112-byte buffer.
type ExpandedKeys struct {
	// IV is the AES-CBC initialization vector.
	IV []byte
	// CipherKey is the AES-256 key.
	CipherKey []byte
	// MACKey is the HMAC-SHA-256 key.
	MACKey []byte
	// RefKey is derived for compatibility but unused by the scheme.
	RefKey []byte

	raw []byte
}

// Bytes returns a copy of the full 112-byte expansion.
func (k *ExpandedKeys) Bytes() []byte {
	out := make([]byte, len(k.raw))
	copy(out, k.raw)
	return out
}

// DeriveMediaKeys expands a media key using HKDF-SHA-256 with an empty salt
// and HKDFInfo.
func DeriveMediaKeys(mediaKey []byte) (*ExpandedKeys, error) {
	if len(mediaKey) != MediaKeySize {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrInvalidKeyLength, len(mediaKey), MediaKeySize)
	}

	raw, err := DeriveKey(mediaKey, nil, []byte(HKDFInfo), ExpandedKeySize)
	if err != nil {
		return nil, err
	}

	return &ExpandedKeys{
		IV:        raw[:IVSize],
		CipherKey: raw[IVSize : IVSize+CipherKeySize],
		MACKey:    raw[IVSize+CipherKeySize : IVSize+CipherKeySize+MACKeySize],
		RefKey:    raw[IVSize+CipherKeySize+MACKeySize:],
		raw:       raw,
	}, nil
}

// DeriveKey derives a key using HKDF-SHA-256.
//
// An empty salt is passed through unchanged; RFC 5869 then uses a
// zero-filled salt of hash length.
func DeriveKey(secret, salt, info []byte, length int) ([]byte, error) {
	reader := hkdf.New(sha256.New, secret, salt, info)
	key := make([]byte, length)

	if _, err := io.ReadFull(reader, key); err != nil {
		return nil, fmt.Errorf("failed to derive key: %w", err)
	}

	return key, nil
}
