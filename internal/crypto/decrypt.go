package crypto

import "fmt"

// Stage identifies the step of DecryptMedia that failed.
type Stage string

const (
	// StageKey is media key validation and expansion.
	StageKey Stage = "key"
	// StagePayload is payload layout validation.
	StagePayload Stage = "payload"
	// StageMAC is trailer authentication.
	StageMAC Stage = "mac"
	// StageCipher is AES-CBC decryption and padding removal.
	StageCipher Stage = "cipher"
)

// StageError records the stage at which DecryptMedia failed.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

// Unwrap returns the underlying error.
func (e *StageError) Unwrap() error {
	return e.Err
}

// DecryptMedia decrypts an encrypted media payload with a raw media key.
//
// The decryption process:
//  1. Media key length check
//  2. Payload layout check (ciphertext || 10-byte MAC)
//  3. HKDF-SHA-256 expansion of the media key
//  4. Truncated HMAC-SHA-256 verification of iv || ciphertext
//  5. AES-256-CBC decryption and PKCS#7 removal
//
// Decryption is never attempted when the MAC does not verify.
func DecryptMedia(mediaKey, payload []byte) ([]byte, error) {
	if len(mediaKey) != MediaKeySize {
		return nil, &StageError{
			Stage: StageKey,
			Err:   fmt.Errorf("%w: got %d, want %d", ErrInvalidKeyLength, len(mediaKey), MediaKeySize),
		}
	}

	ciphertext, mac, err := SplitPayload(payload)
	if err != nil {
		return nil, &StageError{Stage: StagePayload, Err: err}
	}

	keys, err := DeriveMediaKeys(mediaKey)
	if err != nil {
		return nil, &StageError{Stage: StageKey, Err: err}
	}

	if err := VerifyMAC(keys.IV, ciphertext, keys.MACKey, mac); err != nil {
		return nil, &StageError{Stage: StageMAC, Err: err}
	}

	plaintext, err := DecryptCBC(ciphertext, keys.CipherKey, keys.IV)
	if err != nil {
		return nil, &StageError{Stage: StageCipher, Err: err}
	}

	return plaintext, nil
}
