package crypto

const (
	// HKDFInfo is the application-specific info string used in HKDF key
	// expansion of media keys.
	HKDFInfo = "WhatsApp Media Keys"

	// MediaKeySize is the size of a raw media key in bytes.
	MediaKeySize = 32
	// ExpandedKeySize is the number of bytes produced by HKDF expansion.
	ExpandedKeySize = 112

	// IVSize is the size of the AES-CBC initialization vector in bytes.
	IVSize = 16
	// CipherKeySize is the size of an AES-256 key in bytes.
	CipherKeySize = 32
	// MACKeySize is the size of the HMAC-SHA-256 key in bytes.
	MACKeySize = 32
	// RefKeySize is the size of the trailing reserved region of the expansion.
	RefKeySize = ExpandedKeySize - IVSize - CipherKeySize - MACKeySize

	// MACSize is the size of the truncated HMAC trailer in bytes.
	MACSize = 10
	// BlockSize is the AES block size in bytes.
	BlockSize = 16
)

// Ciphersuite names the key derivation, cipher and truncated MAC in use.
const Ciphersuite = "HKDF-SHA-256:AES-256-CBC:HMAC-SHA-256-80"
