package wamedia

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/mediavault/wamedia-go/internal/crypto"
	"github.com/mediavault/wamedia-go/internal/download"
	"github.com/mediavault/wamedia-go/mediatype"
)

// Media is a decrypted media attachment.
type Media struct {
	Data []byte
	Kind string
	// DeclaredMimeType is the mimetype carried by the message, if any.
	DeclaredMimeType string
	// DetectedMimeType is sniffed from the plaintext magic bytes.
	DetectedMimeType string
	Size             int

	// EncSHA256Verified is true when fileEncSha256 was present and matched.
	EncSHA256Verified bool
	// SHA256Verified is true when fileSha256 was present and matched.
	SHA256Verified bool
	// LengthVerified is true when fileLength was present and matched.
	LengthVerified bool
	// MimeMatches is false only when both a declared and a specific detected
	// type exist and they disagree.
	MimeMatches bool
}

// MimeType returns the best known type: the detected type when it is
// specific, otherwise the declared base type, otherwise the generic type.
func (m *Media) MimeType() string {
	if !mediatype.IsGeneric(m.DetectedMimeType) {
		return m.DetectedMimeType
	}
	if base := mediatype.BaseType(m.DeclaredMimeType); base != "" {
		return base
	}
	return mediatype.Generic
}

// Client downloads and decrypts media attachments.
// It is safe for concurrent use.
type Client struct {
	downloader    *download.Client
	mediaHost     string
	strictDigests bool
	logger        *zap.Logger

	mu     sync.RWMutex
	closed bool
}

// buildDownloader creates the download client from the given config.
func buildDownloader(cfg *clientConfig) (*download.Client, error) {
	retries := cfg.retries
	if retries <= 0 {
		retries = -1
	}
	return download.NewClient(download.Config{
		HTTPClient: cfg.httpClient,
		Timeout:    cfg.timeout,
		MaxRetries: retries,
		RetryDelay: cfg.retryDelay,
		RetryOn:    cfg.retryOn,
		MaxSize:    cfg.maxSize,
		CacheTTL:   cfg.cacheTTL,
		UserAgent:  cfg.userAgent,
		Logger:     cfg.logger,
	})
}

// New creates a new Client.
func New(opts ...Option) (*Client, error) {
	cfg := defaultClientConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.logger == nil {
		cfg.logger = zap.NewNop()
	}

	downloader, err := buildDownloader(cfg)
	if err != nil {
		return nil, err
	}

	return &Client{
		downloader:    downloader,
		mediaHost:     cfg.mediaHost,
		strictDigests: cfg.strictDigests,
		logger:        cfg.logger,
	}, nil
}

// checkClosed returns ErrClientClosed if the client has been closed.
func (c *Client) checkClosed() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return ErrClientClosed
	}
	return nil
}

// Decrypt downloads the encrypted blob described by msg and decrypts it.
func (c *Client) Decrypt(ctx context.Context, msg *MediaMessage) (*Media, error) {
	if err := c.checkClosed(); err != nil {
		return nil, err
	}
	if msg == nil {
		return nil, &ValidationError{Errors: []string{"message is required"}}
	}
	if err := msg.Validate(); err != nil {
		return nil, err
	}

	url := msg.ResolveURL(c.mediaHost)
	blob, err := c.downloader.Fetch(ctx, url)
	if err != nil {
		return nil, wrapError(err)
	}

	return c.DecryptBlob(msg, blob)
}

// DecryptBlob decrypts an already downloaded blob using the key and digests
// carried by msg. URL and DirectPath are not required.
func (c *Client) DecryptBlob(msg *MediaMessage, blob []byte) (*Media, error) {
	if err := c.checkClosed(); err != nil {
		return nil, err
	}
	if msg == nil {
		return nil, &ValidationError{Errors: []string{"message is required"}}
	}
	if err := msg.validate(false); err != nil {
		return nil, err
	}

	media := &Media{
		Kind:             msg.Kind,
		DeclaredMimeType: msg.MimeType,
	}

	// The encrypted digest is checked first so a corrupted download fails
	// without running the cipher.
	if msg.FileEncSHA256 != "" {
		expected := normalizeDigest(msg.FileEncSHA256)
		media.EncSHA256Verified = VerifyCiphertextDigest(blob, expected)
		if !media.EncSHA256Verified {
			if err := c.digestMismatch("fileEncSha256", expected, blob); err != nil {
				return nil, err
			}
		}
	}

	plaintext, err := Decrypt(msg.MediaKey, blob)
	if err != nil {
		return nil, err
	}

	if msg.FileSHA256 != "" {
		expected := normalizeDigest(msg.FileSHA256)
		media.SHA256Verified = VerifyPlaintextDigest(plaintext, expected)
		if !media.SHA256Verified {
			if err := c.digestMismatch("fileSha256", expected, plaintext); err != nil {
				return nil, err
			}
		}
	}

	if msg.FileLength > 0 {
		media.LengthVerified = msg.FileLength == uint64(len(plaintext))
		if !media.LengthVerified {
			lengthErr := &LengthError{Expected: msg.FileLength, Actual: len(plaintext)}
			if c.strictDigests {
				return nil, lengthErr
			}
			c.logger.Warn("ignoring file length mismatch", zap.Error(lengthErr))
		}
	}

	media.Data = plaintext
	media.Size = len(plaintext)
	media.DetectedMimeType = SniffMediaType(plaintext)
	media.MimeMatches = msg.MimeType == "" || mediatype.Matches(msg.MimeType, media.DetectedMimeType)

	c.logger.Debug("media decrypted",
		zap.String("kind", media.Kind),
		zap.Int("size", media.Size),
		zap.String("detected", media.DetectedMimeType),
		zap.Bool("mime_matches", media.MimeMatches),
	)

	return media, nil
}

// digestMismatch returns a *DigestError in strict mode and logs otherwise.
func (c *Client) digestMismatch(field, expected string, data []byte) error {
	err := &DigestError{
		Field:    field,
		Expected: expected,
		Actual:   crypto.DigestBase64(data),
	}
	if c.strictDigests {
		return err
	}
	c.logger.Warn("ignoring digest mismatch", zap.Error(err))
	return nil
}

// Close releases cached blobs. Decrypt and DecryptBlob return
// ErrClientClosed afterwards. Close is idempotent.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}

	c.closed = true
	c.downloader.Flush()
	return nil
}
