package crypto

import (
	"bytes"
	"encoding/hex"
	"errors"
	"testing"
)

func TestDeriveKey_RFC5869EmptySalt(t *testing.T) {
	// RFC 5869 appendix A.3: SHA-256 with zero-length salt and info.
	ikm := bytes.Repeat([]byte{0x0b}, 22)
	want, _ := hex.DecodeString("8da4e775a563c18f715f802a063c5a31b8a11f5c5ee1879ec3454e5f3c738d2d9d201395faa4b61a96c8")

	got, err := DeriveKey(ikm, nil, nil, 42)
	if err != nil {
		t.Fatalf("DeriveKey() error = %v", err)
	}
	if !bytes.Equal(got, want) {
		t.Errorf("DeriveKey() = %x, want %x", got, want)
	}

	gotEmpty, err := DeriveKey(ikm, []byte{}, nil, 42)
	if err != nil {
		t.Fatalf("DeriveKey() error = %v", err)
	}
	if !bytes.Equal(gotEmpty, want) {
		t.Error("nil salt and empty salt produced different output")
	}
}

func TestDeriveKey_ExceedsMaxLength(t *testing.T) {
	// HKDF-SHA-256 can produce at most 255 * 32 = 8160 bytes.
	_, err := DeriveKey([]byte("secret"), nil, []byte("info"), 8161)
	if err == nil {
		t.Error("expected error when requesting more than HKDF max output")
	}
}

func TestDeriveMediaKeys_Layout(t *testing.T) {
	mediaKey := randomBytes(t, MediaKeySize)

	keys, err := DeriveMediaKeys(mediaKey)
	if err != nil {
		t.Fatalf("DeriveMediaKeys() error = %v", err)
	}

	full, err := DeriveKey(mediaKey, nil, []byte(HKDFInfo), ExpandedKeySize)
	if err != nil {
		t.Fatal(err)
	}

	if got := keys.Bytes(); !bytes.Equal(got, full) {
		t.Fatalf("Bytes() does not match raw expansion")
	}

	fields := []struct {
		name  string
		value []byte
		start int
		size  int
	}{
		{"IV", keys.IV, 0, IVSize},
		{"CipherKey", keys.CipherKey, 16, CipherKeySize},
		{"MACKey", keys.MACKey, 48, MACKeySize},
		{"RefKey", keys.RefKey, 80, RefKeySize},
	}

	for _, f := range fields {
		t.Run(f.name, func(t *testing.T) {
			if len(f.value) != f.size {
				t.Errorf("len = %d, want %d", len(f.value), f.size)
			}
			if !bytes.Equal(f.value, full[f.start:f.start+f.size]) {
				t.Errorf("%s does not match expansion[%d:%d]", f.name, f.start, f.start+f.size)
			}
		})
	}

	if RefKeySize != 32 {
		t.Errorf("RefKeySize = %d, want 32", RefKeySize)
	}
}

func TestDeriveMediaKeys_Deterministic(t *testing.T) {
	mediaKey := randomBytes(t, MediaKeySize)

	k1, err := DeriveMediaKeys(mediaKey)
	if err != nil {
		t.Fatal(err)
	}
	k2, err := DeriveMediaKeys(mediaKey)
	if err != nil {
		t.Fatal(err)
	}

	if !bytes.Equal(k1.Bytes(), k2.Bytes()) {
		t.Error("DeriveMediaKeys not deterministic: same key produced different expansions")
	}

	other := append([]byte(nil), mediaKey...)
	other[0] ^= 0x01
	k3, err := DeriveMediaKeys(other)
	if err != nil {
		t.Fatal(err)
	}
	if bytes.Equal(k1.Bytes(), k3.Bytes()) {
		t.Error("different media keys produced the same expansion")
	}
}

func TestDeriveMediaKeys_InvalidLength(t *testing.T) {
	for _, n := range []int{0, 16, 31, 33, 64} {
		_, err := DeriveMediaKeys(make([]byte, n))
		if !errors.Is(err, ErrInvalidKeyLength) {
			t.Errorf("len %d: expected ErrInvalidKeyLength, got %v", n, err)
		}
	}
}

func TestExpandedKeys_BytesIsCopy(t *testing.T) {
	keys, err := DeriveMediaKeys(make([]byte, MediaKeySize))
	if err != nil {
		t.Fatal(err)
	}

	b := keys.Bytes()
	b[0] ^= 0xff
	if keys.IV[0] == b[0] {
		t.Error("mutating Bytes() result changed the IV")
	}
}
