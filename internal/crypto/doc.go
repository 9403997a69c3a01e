// Package crypto implements the media attachment encryption scheme used by
// the messaging platform: HKDF key expansion, a truncated HMAC trailer, and
// AES-256-CBC with PKCS#7 padding.
//
// # Algorithm Suite
//
//   - HKDF-SHA-256 (RFC 5869): expands the 32-byte media key into 112 bytes
//     with an empty salt and the info string [HKDFInfo]. The expansion is split
//     into IV (16), cipher key (32), MAC key (32) and a reserved reference key
//     (32) that this scheme never uses.
//
//   - HMAC-SHA-256: computed over iv || ciphertext and truncated to the first
//     [MACSize] bytes. The tag is appended to the ciphertext.
//
//   - AES-256-CBC: decrypts the ciphertext with the derived key and IV. PKCS#7
//     padding is validated and removed.
//
// # Payload Layout
//
//	ciphertext (n * 16 bytes) || mac (10 bytes)
//
// # Critical Security Notes
//
// The MAC MUST be verified BEFORE decryption. [DecryptMedia] enforces the
// order; callers composing the primitives themselves must do the same:
//
//	if err := crypto.VerifyMAC(keys.IV, ciphertext, keys.MACKey, mac); err != nil {
//	    return nil, err
//	}
//	plaintext, err := crypto.DecryptCBC(ciphertext, keys.CipherKey, keys.IV)
//
// Tags are compared in constant time. Every function in this package is pure
// and safe for concurrent use.
package crypto
