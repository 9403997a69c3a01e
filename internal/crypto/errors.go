package crypto

import "errors"

var (
	// ErrInvalidKeyLength is returned when a media key does not decode to
	// exactly MediaKeySize bytes.
	ErrInvalidKeyLength = errors.New("invalid media key length")

	// ErrInvalidPayloadFormat is returned when an encrypted payload is shorter
	// than the MAC trailer or its ciphertext is not block aligned.
	ErrInvalidPayloadFormat = errors.New("invalid payload format")

	// ErrMACMismatch is returned when the computed MAC does not match the
	// payload trailer. Decryption never proceeds after this error.
	ErrMACMismatch = errors.New("mac mismatch")

	// ErrDecryptionFailure is returned when the cipher input is malformed or
	// the PKCS#7 padding is invalid.
	ErrDecryptionFailure = errors.New("decryption failure")

	// ErrInvalidKeySize is returned when a derived key or IV handed to a
	// primitive has the wrong size.
	ErrInvalidKeySize = errors.New("invalid key size")
)
