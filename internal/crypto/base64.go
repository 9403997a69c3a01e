package crypto

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// ToBase64 encodes bytes to standard base64 with padding.
func ToBase64(data []byte) string {
	return base64.StdEncoding.EncodeToString(data)
}

// DecodeBase64 decodes base64 with or without padding, in either the
// standard or the URL-safe alphabet. Surrounding whitespace is ignored.
func DecodeBase64(s string) ([]byte, error) {
	s = strings.TrimSpace(s)

	data, err := base64.StdEncoding.DecodeString(s)
	if err == nil {
		return data, nil
	}

	data, err = base64.RawStdEncoding.DecodeString(s)
	if err == nil {
		return data, nil
	}

	data, err = base64.URLEncoding.DecodeString(s)
	if err == nil {
		return data, nil
	}

	return base64.RawURLEncoding.DecodeString(s)
}

// DecodeMediaKey decodes a base64 media key and checks that it is exactly
// MediaKeySize bytes long.
func DecodeMediaKey(s string) ([]byte, error) {
	key, err := DecodeBase64(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidKeyLength, err)
	}
	if len(key) != MediaKeySize {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrInvalidKeyLength, len(key), MediaKeySize)
	}
	return key, nil
}

// ValidateMediaKeyFormat reports whether s decodes to exactly MediaKeySize bytes.
func ValidateMediaKeyFormat(s string) bool {
	_, err := DecodeMediaKey(s)
	return err == nil
}
