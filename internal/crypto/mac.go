package crypto

import (
	"crypto/hmac"
	"crypto/sha256"
	"fmt"
)

// ComputeMAC returns HMAC-SHA-256(macKey, iv || ciphertext) truncated to
// MACSize bytes.
func ComputeMAC(iv, ciphertext, macKey []byte) []byte {
	mac := hmac.New(sha256.New, macKey)
	mac.Write(iv)
	mac.Write(ciphertext)
	return mac.Sum(nil)[:MACSize]
}

// VerifyMAC authenticates ciphertext against the received trailer.
// CRITICAL: This MUST be called BEFORE any decryption attempt.
func VerifyMAC(iv, ciphertext, macKey, receivedMAC []byte) error {
	if len(iv) != IVSize {
		return fmt.Errorf("%w: iv got %d, want %d", ErrInvalidKeySize, len(iv), IVSize)
	}
	if len(macKey) != MACKeySize {
		return fmt.Errorf("%w: mac key got %d, want %d", ErrInvalidKeySize, len(macKey), MACKeySize)
	}
	if len(receivedMAC) != MACSize {
		return fmt.Errorf("%w: trailer got %d bytes, want %d", ErrMACMismatch, len(receivedMAC), MACSize)
	}

	// hmac.Equal runs in constant time.
	if !hmac.Equal(ComputeMAC(iv, ciphertext, macKey), receivedMAC) {
		return ErrMACMismatch
	}

	return nil
}
