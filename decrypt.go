package wamedia

import (
	"github.com/mediavault/wamedia-go/internal/crypto"
	"github.com/mediavault/wamedia-go/mediatype"
)

// Ciphersuite names the algorithms of the media encryption scheme.
const Ciphersuite = crypto.Ciphersuite

// ExpandedKeys is the HKDF expansion of a media key: IV, CipherKey, MACKey
// and the unused RefKey. Bytes returns the full 112-byte expansion.
type ExpandedKeys = crypto.ExpandedKeys

// DeriveKeys decodes a base64 media key and expands it into the per-message
// key set. The error wraps ErrInvalidKeyLength when the key does not decode to
// exactly 32 bytes.
func DeriveKeys(mediaKeyBase64 string) (*ExpandedKeys, error) {
	key, err := crypto.DecodeMediaKey(mediaKeyBase64)
	if err != nil {
		return nil, err
	}
	return crypto.DeriveMediaKeys(key)
}

// Decrypt authenticates and decrypts an encrypted media blob laid out as
// ciphertext || 10-byte MAC.
//
// Every failure is a *DecryptionError that unwraps to one of
// ErrInvalidKeyLength, ErrInvalidPayloadFormat, ErrMACMismatch or
// ErrDecryptionFailure. The cipher never runs on a blob whose MAC does not
// verify. Decrypt performs no I/O and is safe for concurrent use.
func Decrypt(mediaKeyBase64 string, payload []byte) ([]byte, error) {
	key, err := crypto.DecodeMediaKey(mediaKeyBase64)
	if err != nil {
		return nil, &DecryptionError{Stage: StageKey, Err: err}
	}

	plaintext, err := crypto.DecryptMedia(key, payload)
	if err != nil {
		return nil, wrapError(err)
	}
	return plaintext, nil
}

// ValidatePayloadFormat reports whether payload has the ciphertext || MAC
// layout: at least 10 bytes, with a ciphertext length that is a multiple of
// 16. It does not authenticate anything.
func ValidatePayloadFormat(payload []byte) bool {
	return crypto.ValidatePayloadFormat(payload)
}

// ValidateMediaKeyFormat reports whether mediaKeyBase64 decodes to exactly
// 32 bytes.
func ValidateMediaKeyFormat(mediaKeyBase64 string) bool {
	return crypto.ValidateMediaKeyFormat(mediaKeyBase64)
}

// VerifyPlaintextDigest reports whether the standard base64 SHA-256 of
// plaintext equals expected exactly.
func VerifyPlaintextDigest(plaintext []byte, expected string) bool {
	return crypto.VerifyDigest(plaintext, expected)
}

// VerifyCiphertextDigest reports whether the standard base64 SHA-256 of the
// encrypted blob (ciphertext and MAC trailer) equals expected exactly.
func VerifyCiphertextDigest(ciphertext []byte, expected string) bool {
	return crypto.VerifyDigest(ciphertext, expected)
}

// SniffMediaType returns the MIME type detected from the leading magic bytes
// of plaintext, or application/octet-stream when nothing matches.
func SniffMediaType(plaintext []byte) string {
	return mediatype.Detect(plaintext)
}
