// Package mediatype classifies decrypted media by its leading magic bytes,
// independent of any MIME type declared by the sender.
package mediatype

import (
	"bytes"
	"mime"
	"strings"
)

// MIME labels returned by Detect.
const (
	JPEG    = "image/jpeg"
	PNG     = "image/png"
	Ogg     = "audio/ogg"
	FLAC    = "audio/flac"
	MP4     = "video/mp4"
	MPEG    = "audio/mpeg"
	Generic = "application/octet-stream"
)

// SniffLen is the number of leading bytes Detect looks at.
const SniffLen = 12

// Signature is one entry of the detection table. A signature matches when any
// of its patterns appears at Offset.
type Signature struct {
	Label    string
	Offset   int
	Patterns [][]byte
}

func (s Signature) match(head []byte) bool {
	for _, p := range s.Patterns {
		end := s.Offset + len(p)
		if end <= len(head) && bytes.Equal(head[s.Offset:end], p) {
			return true
		}
	}
	return false
}

// signatures is evaluated in order; the first match wins.
var signatures = []Signature{
	{JPEG, 0, [][]byte{{0xFF, 0xD8, 0xFF, 0xE0}, {0xFF, 0xD8, 0xFF, 0xE1}}},
	{PNG, 0, [][]byte{{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}}},
	{Ogg, 0, [][]byte{[]byte("OggS")}},
	{FLAC, 0, [][]byte{[]byte("fLaC")}},
	// ftyp box sizes written by common MP4 muxers.
	{MP4, 0, [][]byte{{0x00, 0x00, 0x00, 0x18}, {0x00, 0x00, 0x00, 0x20}}},
	{MPEG, 0, [][]byte{[]byte("ID3"), {0xFF, 0xFB}}},
}

// Detect returns the MIME label of data, or Generic when no signature
// matches. Only the first SniffLen bytes are examined.
func Detect(data []byte) string {
	head := data
	if len(head) > SniffLen {
		head = head[:SniffLen]
	}

	for _, s := range signatures {
		if s.match(head) {
			return s.Label
		}
	}
	return Generic
}

// Signatures returns a copy of the detection table in priority order.
func Signatures() []Signature {
	out := make([]Signature, len(signatures))
	for i, s := range signatures {
		patterns := make([][]byte, len(s.Patterns))
		for j, p := range s.Patterns {
			patterns[j] = append([]byte(nil), p...)
		}
		out[i] = Signature{Label: s.Label, Offset: s.Offset, Patterns: patterns}
	}
	return out
}

// IsGeneric reports whether label is the fallback label.
func IsGeneric(label string) bool {
	return label == Generic
}

// BaseType returns the lower-cased media type of a declared MIME string
// with parameters removed. It returns "" for an unparseable value.
func BaseType(declared string) string {
	declared = strings.TrimSpace(declared)
	if declared == "" {
		return ""
	}
	mt, _, err := mime.ParseMediaType(declared)
	if err != nil {
		return ""
	}
	return mt
}

// Matches reports whether a declared MIME type agrees with a detected label.
// A generic detection is never treated as a conflict.
func Matches(declared, detected string) bool {
	if IsGeneric(detected) {
		return true
	}
	return BaseType(declared) == detected
}
