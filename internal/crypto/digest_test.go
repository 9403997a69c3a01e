package crypto

import (
	"crypto/sha256"
	"encoding/base64"
	"testing"
)

func TestDigestBase64(t *testing.T) {
	// SHA-256 of the empty string.
	const emptyDigest = "47DEQpj8HBSa+/TImW+5JCeuQeRkm5NMpJWZG3hSuFU="

	if got := DigestBase64(nil); got != emptyDigest {
		t.Errorf("DigestBase64(nil) = %q, want %q", got, emptyDigest)
	}

	data := []byte("media bytes")
	sum := sha256.Sum256(data)
	if got, want := DigestBase64(data), base64.StdEncoding.EncodeToString(sum[:]); got != want {
		t.Errorf("DigestBase64() = %q, want %q", got, want)
	}
}

func TestVerifyDigest(t *testing.T) {
	data := randomBytes(t, 1000)
	expected := DigestBase64(data)

	if !VerifyDigest(data, expected) {
		t.Fatal("VerifyDigest() = false for matching digest")
	}

	for _, i := range []int{0, 500, 999} {
		altered := append([]byte(nil), data...)
		altered[i] ^= 0x01
		if VerifyDigest(altered, expected) {
			t.Errorf("VerifyDigest() = true after altering byte %d", i)
		}
	}

	tests := []struct {
		name     string
		expected string
	}{
		{"empty", ""},
		{"url-safe alphabet", base64.RawURLEncoding.EncodeToString(mustSum(data))},
		{"truncated", expected[:len(expected)-1]},
		{"garbage", "not-a-digest"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if VerifyDigest(data, tt.expected) {
				t.Errorf("VerifyDigest(%q) = true, want false", tt.expected)
			}
		})
	}
}

func mustSum(data []byte) []byte {
	sum := sha256.Sum256(data)
	return sum[:]
}
