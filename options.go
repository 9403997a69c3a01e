package wamedia

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/mediavault/wamedia-go/internal/download"
)

// Client defaults.
const (
	DefaultTimeout    = download.DefaultTimeout
	DefaultRetries    = download.DefaultMaxRetries
	DefaultRetryDelay = download.DefaultRetryDelay
	DefaultMaxSize    = download.DefaultMaxSize
)

// clientConfig holds configuration for the client.
type clientConfig struct {
	httpClient    *http.Client
	timeout       time.Duration
	retries       int
	retryDelay    time.Duration
	retryOn       []int
	mediaHost     string
	maxSize       int64
	cacheTTL      time.Duration
	strictDigests bool
	logger        *zap.Logger
	userAgent     string
}

func defaultClientConfig() *clientConfig {
	return &clientConfig{
		timeout:       DefaultTimeout,
		retries:       DefaultRetries,
		retryDelay:    DefaultRetryDelay,
		mediaHost:     DefaultMediaHost,
		maxSize:       DefaultMaxSize,
		strictDigests: true,
		userAgent:     download.DefaultUserAgent,
	}
}

// Option configures the client.
type Option func(*clientConfig)

// WithHTTPClient sets a custom HTTP client for downloads.
func WithHTTPClient(client *http.Client) Option {
	return func(c *clientConfig) {
		c.httpClient = client
	}
}

// WithTimeout sets the per-request download timeout.
// Ignored when a custom HTTP client is supplied.
func WithTimeout(timeout time.Duration) Option {
	return func(c *clientConfig) {
		c.timeout = timeout
	}
}

// WithRetries sets the number of retries for downloads. Zero disables retries.
func WithRetries(count int) Option {
	return func(c *clientConfig) {
		c.retries = count
	}
}

// WithRetryDelay sets the base delay of the exponential backoff.
// Default: 1 second
func WithRetryDelay(delay time.Duration) Option {
	return func(c *clientConfig) {
		c.retryDelay = delay
	}
}

// WithRetryOn sets the HTTP status codes that trigger a retry.
// Default: [408, 429, 500, 502, 503, 504]
func WithRetryOn(statusCodes []int) Option {
	return func(c *clientConfig) {
		c.retryOn = statusCodes
	}
}

// WithMediaHost sets the host that DirectPath values are resolved against.
// Default: https://mmg.whatsapp.net
func WithMediaHost(host string) Option {
	return func(c *clientConfig) {
		c.mediaHost = host
	}
}

// WithMaxSize caps the size of a downloaded blob in bytes.
// Default: 100 MiB
func WithMaxSize(size int64) Option {
	return func(c *clientConfig) {
		c.maxSize = size
	}
}

// WithCacheTTL keeps downloaded blobs in memory for ttl, so decrypting the
// same message twice downloads it once. Zero (the default) disables caching.
func WithCacheTTL(ttl time.Duration) Option {
	return func(c *clientConfig) {
		c.cacheTTL = ttl
	}
}

// WithStrictDigests controls whether a declared digest or file length that
// does not match fails the decryption. When disabled, mismatches are only
// recorded on the returned Media. Default: true
func WithStrictDigests(strict bool) Option {
	return func(c *clientConfig) {
		c.strictDigests = strict
	}
}

// WithLogger sets the logger used for debug output. Default: no-op.
func WithLogger(logger *zap.Logger) Option {
	return func(c *clientConfig) {
		c.logger = logger
	}
}

// WithUserAgent sets the User-Agent header sent to the media host.
func WithUserAgent(userAgent string) Option {
	return func(c *clientConfig) {
		c.userAgent = userAgent
	}
}
