package crypto

// EncryptMediaForTesting produces ciphertext || mac for plaintext under
// mediaKey using the same expansion, cipher and MAC as DecryptMedia.
// This is intended for testing only. Since this package is internal, this
// function cannot be accessed by external code.
func EncryptMediaForTesting(mediaKey, plaintext []byte) ([]byte, error) {
	keys, err := DeriveMediaKeys(mediaKey)
	if err != nil {
		return nil, err
	}

	ciphertext, err := encryptCBC(plaintext, keys.CipherKey, keys.IV)
	if err != nil {
		return nil, err
	}

	return append(ciphertext, ComputeMAC(keys.IV, ciphertext, keys.MACKey)...), nil
}
