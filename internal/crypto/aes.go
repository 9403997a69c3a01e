package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"fmt"

	"github.com/rclone/rclone/backend/crypt/pkcs7"
)

// DecryptCBC decrypts data using AES-256-CBC and strips PKCS#7 padding.
// It must only be called on ciphertext that has passed VerifyMAC.
func DecryptCBC(ciphertext, cipherKey, iv []byte) ([]byte, error) {
	if len(cipherKey) != CipherKeySize {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrInvalidKeySize, len(cipherKey), CipherKeySize)
	}

	if len(iv) != IVSize {
		return nil, fmt.Errorf("%w: iv got %d, want %d", ErrInvalidKeySize, len(iv), IVSize)
	}

	if len(ciphertext) == 0 || len(ciphertext)%BlockSize != 0 {
		return nil, fmt.Errorf("%w: ciphertext length %d is not a positive multiple of %d",
			ErrDecryptionFailure, len(ciphertext), BlockSize)
	}

	block, err := aes.NewCipher(cipherKey)
	if err != nil {
		return nil, err
	}

	padded := make([]byte, len(ciphertext))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(padded, ciphertext)

	plaintext, err := pkcs7.Unpad(BlockSize, padded)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecryptionFailure, err)
	}

	return plaintext, nil
}

// encryptCBC pads plaintext with PKCS#7 and encrypts it using AES-256-CBC.
func encryptCBC(plaintext, cipherKey, iv []byte) ([]byte, error) {
	if len(cipherKey) != CipherKeySize {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrInvalidKeySize, len(cipherKey), CipherKeySize)
	}

	if len(iv) != IVSize {
		return nil, fmt.Errorf("%w: iv got %d, want %d", ErrInvalidKeySize, len(iv), IVSize)
	}

	block, err := aes.NewCipher(cipherKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	padded := pkcs7.Pad(BlockSize, plaintext)
	ciphertext := make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(ciphertext, padded)
	return ciphertext, nil
}
