package crypto

import "fmt"

// ValidatePayloadFormat reports whether payload is long enough to hold the
// MAC trailer and whether the remaining ciphertext is block aligned.
func ValidatePayloadFormat(payload []byte) bool {
	return len(payload) >= MACSize && (len(payload)-MACSize)%BlockSize == 0
}

// SplitPayload splits payload into ciphertext and the trailing MAC.
// The returned slices alias payload.
func SplitPayload(payload []byte) (ciphertext, mac []byte, err error) {
	if len(payload) < MACSize {
		return nil, nil, fmt.Errorf("%w: payload is %d bytes, need at least %d",
			ErrInvalidPayloadFormat, len(payload), MACSize)
	}
	if (len(payload)-MACSize)%BlockSize != 0 {
		return nil, nil, fmt.Errorf("%w: ciphertext length %d is not a multiple of %d",
			ErrInvalidPayloadFormat, len(payload)-MACSize, BlockSize)
	}

	n := len(payload) - MACSize
	return payload[:n], payload[n:], nil
}
