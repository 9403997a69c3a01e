package wamedia

import (
	"fmt"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/mediavault/wamedia-go/internal/crypto"
	"github.com/mediavault/wamedia-go/mediatype"
)

// DefaultMediaHost is the media host used to resolve a DirectPath when a
// message carries no full URL.
const DefaultMediaHost = "https://mmg.whatsapp.net"

// Media kinds recognized in nested message descriptions.
const (
	KindImage    = "image"
	KindVideo    = "video"
	KindAudio    = "audio"
	KindDocument = "document"
	KindSticker  = "sticker"
	KindPTV      = "ptv"
)

var mediaKinds = []string{KindImage, KindVideo, KindAudio, KindDocument, KindSticker, KindPTV}

// wrapperPaths are envelopes that carry another message inside them.
var wrapperPaths = []string{
	"ephemeralMessage.message",
	"viewOnceMessage.message",
	"viewOnceMessageV2.message",
	"viewOnceMessageV2Extension.message",
	"documentWithCaptionMessage.message",
}

const maxWrapperDepth = 4

// MediaMessage describes an encrypted media attachment.
type MediaMessage struct {
	Kind       string `json:"kind,omitempty"`
	URL        string `json:"url,omitempty"`
	DirectPath string `json:"directPath,omitempty"`
	// MediaKey is the base64 encoded 32-byte media key.
	MediaKey string `json:"mediaKey"`
	MimeType string `json:"mimetype,omitempty"`
	// FileSHA256 is the base64 SHA-256 of the plaintext.
	FileSHA256 string `json:"fileSha256,omitempty"`
	// FileEncSHA256 is the base64 SHA-256 of the encrypted blob.
	FileEncSHA256 string `json:"fileEncSha256,omitempty"`
	FileLength    uint64 `json:"fileLength,omitempty"`
}

// ParseMediaMessage extracts a MediaMessage from a JSON message description.
//
// The description may be the flat media object itself, or a full message
// with the media object nested under "message" and a "<kind>Message" key
// (imageMessage, audioMessage, ...). Ephemeral and view-once envelopes are
// unwrapped. Field names are accepted in camelCase and snake_case. Byte
// fields may be base64 strings, arrays of byte values, or {"data": [...]}
// buffer objects. fileLength may be a number, a decimal string, or a
// {"low": ..., "high": ...} long object.
//
// ParseMediaMessage does not validate the fields; call Validate for that.
func ParseMediaMessage(data []byte) (*MediaMessage, error) {
	if !gjson.ValidBytes(data) {
		return nil, &ValidationError{Errors: []string{"message description is not valid JSON"}}
	}

	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return nil, &ValidationError{Errors: []string{"message description must be a JSON object"}}
	}

	node, kind := locateMedia(root)

	msg := &MediaMessage{
		Kind:          kind,
		URL:           stringField(node, "url", "URL"),
		DirectPath:    stringField(node, "directPath", "direct_path"),
		MediaKey:      bytesField(node, "mediaKey", "media_key"),
		MimeType:      stringField(node, "mimetype", "mimeType", "mime_type"),
		FileSHA256:    bytesField(node, "fileSha256", "fileSHA256", "file_sha256"),
		FileEncSHA256: bytesField(node, "fileEncSha256", "fileEncSHA256", "file_enc_sha256"),
		FileLength:    uintField(node, "fileLength", "file_length"),
	}
	if msg.Kind == "" {
		msg.Kind = stringField(node, "kind", "mediaType", "media_type")
	}
	return msg, nil
}

// locateMedia descends through message envelopes to the media object.
func locateMedia(node gjson.Result) (gjson.Result, string) {
	for depth := 0; depth <= maxWrapperDepth; depth++ {
		if inner := node.Get("message"); inner.IsObject() {
			node = inner
		}
		for _, kind := range mediaKinds {
			if media := node.Get(kind + "Message"); media.IsObject() {
				return media, kind
			}
		}
		unwrapped := false
		for _, path := range wrapperPaths {
			if inner := node.Get(path); inner.IsObject() {
				node = inner
				unwrapped = true
				break
			}
		}
		if !unwrapped {
			break
		}
	}
	return node, ""
}

func firstOf(node gjson.Result, names ...string) gjson.Result {
	for _, name := range names {
		if r := node.Get(name); r.Exists() && r.Type != gjson.Null {
			return r
		}
	}
	return gjson.Result{}
}

func stringField(node gjson.Result, names ...string) string {
	r := firstOf(node, names...)
	if r.Type != gjson.String {
		return ""
	}
	return strings.TrimSpace(r.String())
}

// uintField reads a number, a decimal string, or a {"low", "high"} 64-bit
// long object.
func uintField(node gjson.Result, names ...string) uint64 {
	r := firstOf(node, names...)
	if r.IsObject() {
		low, high := r.Get("low"), r.Get("high")
		if !low.Exists() {
			return 0
		}
		return uint64(uint32(low.Int())) | uint64(uint32(high.Int()))<<32
	}
	return r.Uint()
}

// bytesField returns a byte-valued field as standard base64.
func bytesField(node gjson.Result, names ...string) string {
	r := firstOf(node, names...)
	switch {
	case r.Type == gjson.String:
		return strings.TrimSpace(r.String())
	case r.IsArray():
		return encodeByteArray(r)
	case r.IsObject():
		if inner := r.Get("data"); inner.IsArray() {
			return encodeByteArray(inner)
		}
	}
	return ""
}

func encodeByteArray(arr gjson.Result) string {
	values := arr.Array()
	out := make([]byte, 0, len(values))
	for _, v := range values {
		n := v.Int()
		if v.Type != gjson.Number || v.Num != float64(n) || n < 0 || n > 255 {
			return ""
		}
		out = append(out, byte(n))
	}
	return crypto.ToBase64(out)
}

// Validate checks the fields needed to download and decrypt the media and
// returns a *ValidationError listing every problem found.
func (m *MediaMessage) Validate() error {
	return m.validate(true)
}

func (m *MediaMessage) validate(requireSource bool) error {
	var errs []string

	switch {
	case m.MediaKey == "":
		errs = append(errs, "mediaKey is required")
	case !crypto.ValidateMediaKeyFormat(m.MediaKey):
		errs = append(errs, "mediaKey must be base64 encoding of 32 bytes")
	}

	if requireSource && m.URL == "" && m.DirectPath == "" {
		errs = append(errs, "url or directPath is required")
	}

	if m.FileSHA256 != "" && !isDigest(m.FileSHA256) {
		errs = append(errs, "fileSha256 must be base64 encoding of 32 bytes")
	}
	if m.FileEncSHA256 != "" && !isDigest(m.FileEncSHA256) {
		errs = append(errs, "fileEncSha256 must be base64 encoding of 32 bytes")
	}
	if m.MimeType != "" && mediatype.BaseType(m.MimeType) == "" {
		errs = append(errs, fmt.Sprintf("mimetype %q is malformed", m.MimeType))
	}

	if len(errs) > 0 {
		return &ValidationError{Errors: errs}
	}
	return nil
}

// ResolveURL returns the download URL: URL when set, otherwise DirectPath
// joined to mediaHost. An empty mediaHost means DefaultMediaHost.
func (m *MediaMessage) ResolveURL(mediaHost string) string {
	if m.URL != "" {
		return m.URL
	}
	if m.DirectPath == "" {
		return ""
	}
	if mediaHost == "" {
		mediaHost = DefaultMediaHost
	}
	return strings.TrimRight(mediaHost, "/") + "/" + strings.TrimLeft(m.DirectPath, "/")
}

func isDigest(s string) bool {
	raw, err := crypto.DecodeBase64(s)
	return err == nil && len(raw) == 32
}

// normalizeDigest re-encodes a declared digest as standard padded base64 so
// URL-safe or unpadded inputs compare equal.
func normalizeDigest(s string) string {
	raw, err := crypto.DecodeBase64(s)
	if err != nil {
		return s
	}
	return crypto.ToBase64(raw)
}
