package mediatype

import (
	"bytes"
	"testing"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		name     string
		data     []byte
		expected string
	}{
		{"jpeg jfif", []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 'J', 'F', 'I', 'F'}, JPEG},
		{"jpeg exif", []byte{0xFF, 0xD8, 0xFF, 0xE1, 0x12, 0x34}, JPEG},
		{"jpeg other marker", []byte{0xFF, 0xD8, 0xFF, 0xDB, 0x00}, Generic},
		{"png", []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A, 0x00, 0x00, 0x00, 0x0D}, PNG},
		{"png truncated", []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A}, Generic},
		{"ogg", []byte("OggS\x00\x02\x00\x00"), Ogg},
		{"flac", []byte("fLaC\x00\x00\x00\x22"), FLAC},
		{"mp4 size 0x18", []byte{0x00, 0x00, 0x00, 0x18, 'f', 't', 'y', 'p', 'm', 'p', '4', '2'}, MP4},
		{"mp4 size 0x20", []byte{0x00, 0x00, 0x00, 0x20, 'f', 't', 'y', 'p', 'i', 's', 'o', 'm'}, MP4},
		{"mp4 size 0x1c", []byte{0x00, 0x00, 0x00, 0x1C, 'f', 't', 'y', 'p'}, Generic},
		{"mp3 id3", []byte("ID3\x04\x00\x00"), MPEG},
		{"mp3 frame sync", []byte{0xFF, 0xFB, 0x90, 0x64}, MPEG},
		{"text", []byte("hello world, plain text"), Generic},
		{"empty", []byte{}, Generic},
		{"nil", nil, Generic},
		{"single byte", []byte{0xFF}, Generic},
		{"two bytes ff fb", []byte{0xFF, 0xFB}, MPEG},
		{"three bytes ff d8 ff", []byte{0xFF, 0xD8, 0xFF}, Generic},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Detect(tt.data); got != tt.expected {
				t.Errorf("Detect(% x) = %q, want %q", tt.data, got, tt.expected)
			}
		})
	}
}

func TestDetect_PriorityOrder(t *testing.T) {
	labels := make([]string, 0)
	for _, s := range Signatures() {
		labels = append(labels, s.Label)
	}

	want := []string{JPEG, PNG, Ogg, FLAC, MP4, MPEG}
	if len(labels) != len(want) {
		t.Fatalf("Signatures() has %d entries, want %d", len(labels), len(want))
	}
	for i := range want {
		if labels[i] != want[i] {
			t.Errorf("Signatures()[%d] = %q, want %q", i, labels[i], want[i])
		}
	}
}

func TestDetect_OnlyLeadingBytes(t *testing.T) {
	// A signature beyond the sniff window must not be found.
	data := append(bytes.Repeat([]byte{0x00}, SniffLen), []byte("OggS")...)
	if got := Detect(data); got != Generic {
		t.Errorf("Detect() = %q, want %q", got, Generic)
	}
}

func TestSignatures_ReturnsCopy(t *testing.T) {
	sigs := Signatures()
	sigs[0].Patterns[0][0] = 0x00
	sigs[0].Label = "mutated"

	if got := Detect([]byte{0xFF, 0xD8, 0xFF, 0xE0}); got != JPEG {
		t.Errorf("Detect() = %q after mutating Signatures(), want %q", got, JPEG)
	}
}

func TestMatches(t *testing.T) {
	tests := []struct {
		declared string
		detected string
		expected bool
	}{
		{"image/jpeg", JPEG, true},
		{"IMAGE/JPEG", JPEG, true},
		{"audio/ogg; codecs=opus", Ogg, true},
		{"audio/mp4", Ogg, false},
		{"", JPEG, false},
		{"application/pdf", Generic, true},
		{"", Generic, true},
		{"not a mime", PNG, false},
	}

	for _, tt := range tests {
		if got := Matches(tt.declared, tt.detected); got != tt.expected {
			t.Errorf("Matches(%q, %q) = %v, want %v", tt.declared, tt.detected, got, tt.expected)
		}
	}
}

func TestBaseType(t *testing.T) {
	tests := map[string]string{
		"audio/ogg; codecs=opus": "audio/ogg",
		"  video/MP4 ":           "video/mp4",
		"":                       "",
		"/":                      "",
	}
	for in, want := range tests {
		if got := BaseType(in); got != want {
			t.Errorf("BaseType(%q) = %q, want %q", in, got, want)
		}
	}
}

func BenchmarkDetect(b *testing.B) {
	data := make([]byte, 1<<20)
	for i := 0; i < b.N; i++ {
		_ = Detect(data)
	}
}
