package crypto

import (
	"crypto/sha256"
	"crypto/subtle"
)

// DigestBase64 returns the standard base64 encoding of SHA-256(data).
func DigestBase64(data []byte) string {
	sum := sha256.Sum256(data)
	return ToBase64(sum[:])
}

// VerifyDigest reports whether the base64 SHA-256 of data equals expected.
// An empty expected value never verifies.
func VerifyDigest(data []byte, expected string) bool {
	if expected == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(DigestBase64(data)), []byte(expected)) == 1
}
