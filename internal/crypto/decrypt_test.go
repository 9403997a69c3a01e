package crypto

import (
	"bytes"
	"errors"
	"fmt"
	"testing"
)

func TestDecryptMedia_RoundTrip(t *testing.T) {
	tests := []struct {
		name      string
		plaintext []byte
	}{
		{"empty", []byte{}},
		{"short", []byte("voice note")},
		{"block aligned", bytes.Repeat([]byte{0x7f}, 4*BlockSize)},
		{"jpeg header", []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 'J', 'F', 'I', 'F'}},
		{"large", randomBytes(t, 256*1024+3)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mediaKey := randomBytes(t, MediaKeySize)

			payload, err := EncryptMediaForTesting(mediaKey, tt.plaintext)
			if err != nil {
				t.Fatalf("EncryptMediaForTesting() error = %v", err)
			}
			if !ValidatePayloadFormat(payload) {
				t.Fatalf("encrypted payload of length %d fails format validation", len(payload))
			}

			got, err := DecryptMedia(mediaKey, payload)
			if err != nil {
				t.Fatalf("DecryptMedia() error = %v", err)
			}
			if !bytes.Equal(got, tt.plaintext) {
				t.Errorf("DecryptMedia() returned %d bytes, want %d", len(got), len(tt.plaintext))
			}
		})
	}
}

func TestDecryptMedia_Errors(t *testing.T) {
	mediaKey := randomBytes(t, MediaKeySize)
	payload, err := EncryptMediaForTesting(mediaKey, []byte("sensitive media"))
	if err != nil {
		t.Fatal(err)
	}

	flipLast := append([]byte(nil), payload...)
	flipLast[len(flipLast)-1] ^= 0x80

	flipCipher := append([]byte(nil), payload...)
	flipCipher[0] ^= 0x01

	tests := []struct {
		name    string
		key     []byte
		payload []byte
		wantErr error
		stage   Stage
	}{
		{"short key", mediaKey[:16], payload, ErrInvalidKeyLength, StageKey},
		{"nil key", nil, payload, ErrInvalidKeyLength, StageKey},
		{"payload too short", mediaKey, payload[:MACSize-1], ErrInvalidPayloadFormat, StagePayload},
		{"payload misaligned", mediaKey, append(append([]byte(nil), payload...), 0x00), ErrInvalidPayloadFormat, StagePayload},
		{"mac bit flipped", mediaKey, flipLast, ErrMACMismatch, StageMAC},
		{"ciphertext bit flipped", mediaKey, flipCipher, ErrMACMismatch, StageMAC},
		{"wrong key", randomBytes(t, MediaKeySize), payload, ErrMACMismatch, StageMAC},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecryptMedia(tt.key, tt.payload)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
			var stageErr *StageError
			if !errors.As(err, &stageErr) {
				t.Fatalf("expected *StageError, got %T", err)
			}
			if stageErr.Stage != tt.stage {
				t.Errorf("Stage = %q, want %q", stageErr.Stage, tt.stage)
			}
		})
	}
}

func TestDecryptMedia_EmptyCiphertextWithValidMAC(t *testing.T) {
	// A bare trailer is well formed but carries no padding block.
	mediaKey := randomBytes(t, MediaKeySize)
	keys, err := DeriveMediaKeys(mediaKey)
	if err != nil {
		t.Fatal(err)
	}
	payload := ComputeMAC(keys.IV, nil, keys.MACKey)

	_, err = DecryptMedia(mediaKey, payload)
	if !errors.Is(err, ErrDecryptionFailure) {
		t.Fatalf("expected ErrDecryptionFailure, got %v", err)
	}
}

func TestDecryptMedia_BadPaddingBehindValidMAC(t *testing.T) {
	mediaKey := randomBytes(t, MediaKeySize)
	keys, err := DeriveMediaKeys(mediaKey)
	if err != nil {
		t.Fatal(err)
	}

	// Encrypt a block whose last byte is an impossible pad length, then
	// authenticate it so only the padding check can fail.
	block := bytes.Repeat([]byte{0x20}, BlockSize)
	ciphertext := encryptRawBlocks(t, keys.CipherKey, keys.IV, block)
	payload := append(ciphertext, ComputeMAC(keys.IV, ciphertext, keys.MACKey)...)

	_, err = DecryptMedia(mediaKey, payload)
	if !errors.Is(err, ErrDecryptionFailure) {
		t.Fatalf("expected ErrDecryptionFailure, got %v", err)
	}
	var stageErr *StageError
	if errors.As(err, &stageErr) && stageErr.Stage != StageCipher {
		t.Errorf("Stage = %q, want %q", stageErr.Stage, StageCipher)
	}
}

func TestDecryptMedia_Concurrent(t *testing.T) {
	mediaKey := randomBytes(t, MediaKeySize)
	plaintext := randomBytes(t, 4096)
	payload, err := EncryptMediaForTesting(mediaKey, plaintext)
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 8; i++ {
		t.Run(fmt.Sprintf("worker-%d", i), func(t *testing.T) {
			t.Parallel()
			got, err := DecryptMedia(mediaKey, payload)
			if err != nil {
				t.Fatalf("DecryptMedia() error = %v", err)
			}
			if !bytes.Equal(got, plaintext) {
				t.Error("plaintext mismatch")
			}
		})
	}
}

func BenchmarkDecryptMedia(b *testing.B) {
	mediaKey := randomBytes(b, MediaKeySize)
	payload, _ := EncryptMediaForTesting(mediaKey, randomBytes(b, 64*1024))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = DecryptMedia(mediaKey, payload)
	}
}

// Example_decryptMedia demonstrates authenticating and decrypting a payload.
func Example_decryptMedia() {
	mediaKey := bytes.Repeat([]byte{0x01}, MediaKeySize)

	payload, err := EncryptMediaForTesting(mediaKey, []byte("Hello, World!"))
	if err != nil {
		panic(err)
	}

	plaintext, err := DecryptMedia(mediaKey, payload)
	if err != nil {
		panic(err)
	}

	fmt.Println(len(payload), string(plaintext))
	// Output: 26 Hello, World!
}
