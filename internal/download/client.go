package download

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/grailbio/base/retry"
	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

// Default configuration values.
const (
	DefaultTimeout    = 60 * time.Second
	DefaultMaxRetries = 3
	DefaultRetryDelay = time.Second
	DefaultMaxSize    = 100 << 20
	DefaultUserAgent  = "wamedia-go/1"
)

// Config holds download client configuration.
type Config struct {
	// HTTPClient is used for requests. A client with Timeout is created when nil.
	HTTPClient *http.Client
	// Timeout is the per-request timeout for the default HTTP client.
	Timeout time.Duration
	// MaxRetries is the number of retries after the first attempt. Zero
	// selects DefaultMaxRetries; a negative value disables retries.
	MaxRetries int
	// RetryDelay is the base backoff delay.
	RetryDelay time.Duration
	// RetryOn lists the HTTP status codes that trigger a retry.
	RetryOn []int
	// MaxSize caps the response body in bytes.
	MaxSize int64
	// CacheTTL keeps fetched blobs in memory for this long. Zero disables caching.
	CacheTTL time.Duration
	// UserAgent is sent with every request.
	UserAgent string
	// Logger receives debug output. Defaults to a no-op logger.
	Logger *zap.Logger
}

// Client downloads encrypted media blobs.
type Client struct {
	httpClient *http.Client
	retryCfg   *RetryConfig
	policy     retry.Policy
	maxSize    int64
	userAgent  string
	logger     *zap.Logger
	blobs      *cache.Cache
}

// NewClient creates a download client from cfg.
func NewClient(cfg Config) (*Client, error) {
	if cfg.MaxSize < 0 {
		return nil, fmt.Errorf("max size must not be negative, got %d", cfg.MaxSize)
	}
	if cfg.CacheTTL < 0 {
		return nil, fmt.Errorf("cache TTL must not be negative, got %v", cfg.CacheTTL)
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	retryCfg := DefaultRetryConfig()
	switch {
	case cfg.MaxRetries < 0:
		retryCfg.MaxRetries = 0
	case cfg.MaxRetries > 0:
		retryCfg.MaxRetries = cfg.MaxRetries
	default:
		retryCfg.MaxRetries = DefaultMaxRetries
	}
	retryCfg.BaseDelay = DefaultRetryDelay
	if cfg.RetryDelay > 0 {
		retryCfg.BaseDelay = cfg.RetryDelay
	}
	if len(cfg.RetryOn) > 0 {
		retryCfg.RetryableOn = statusSet(cfg.RetryOn)
	}

	c := &Client{
		httpClient: httpClient,
		retryCfg:   retryCfg,
		policy:     retryCfg.Policy(),
		maxSize:    cfg.MaxSize,
		userAgent:  cfg.UserAgent,
		logger:     cfg.Logger,
	}
	if c.maxSize == 0 {
		c.maxSize = DefaultMaxSize
	}
	if c.userAgent == "" {
		c.userAgent = DefaultUserAgent
	}
	if c.logger == nil {
		c.logger = zap.NewNop()
	}
	if cfg.CacheTTL > 0 {
		c.blobs = cache.New(cfg.CacheTTL, 2*cfg.CacheTTL)
	}

	return c, nil
}

// MaxSize returns the response size limit in bytes.
func (c *Client) MaxSize() int64 {
	return c.maxSize
}

// Fetch downloads the blob at rawURL, retrying transient failures.
func (c *Client) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidURL, rawURL)
	}

	if c.blobs != nil {
		if v, ok := c.blobs.Get(rawURL); ok {
			c.logger.Debug("media cache hit", zap.String("host", u.Host))
			return append([]byte(nil), v.([]byte)...), nil
		}
	}

	requestID := uuid.NewString()
	log := c.logger.With(
		zap.String("request_id", requestID),
		zap.String("host", u.Host),
		zap.String("path", u.Path),
	)

	for attempt := 0; ; attempt++ {
		data, err := c.fetchOnce(ctx, rawURL, requestID, attempt)
		if err == nil {
			log.Debug("media downloaded", zap.Int("bytes", len(data)), zap.Int("attempt", attempt))
			if c.blobs != nil {
				c.blobs.SetDefault(rawURL, append([]byte(nil), data...))
			}
			return data, nil
		}

		if !c.retryable(ctx, attempt, err) {
			return nil, err
		}

		log.Debug("retrying media download", zap.Int("attempt", attempt), zap.Error(err))
		if werr := retry.Wait(ctx, c.policy, attempt); werr != nil {
			return nil, &NetworkError{Err: werr, URL: rawURL, Attempt: attempt}
		}
	}
}

func (c *Client) retryable(ctx context.Context, attempt int, err error) bool {
	if ctx.Err() != nil {
		return false
	}

	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return c.retryCfg.ShouldRetry(attempt, httpErr.StatusCode)
	}

	var netErr *NetworkError
	if errors.As(err, &netErr) {
		return attempt < c.retryCfg.MaxRetries
	}

	return false
}

func (c *Client) fetchOnce(ctx context.Context, rawURL, requestID string, attempt int) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}

	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "*/*")
	req.Header.Set("X-Request-ID", requestID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &NetworkError{Err: err, URL: rawURL, Attempt: attempt}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4<<10))
		return nil, &HTTPError{
			StatusCode: resp.StatusCode,
			Status:     http.StatusText(resp.StatusCode),
			URL:        rawURL,
			RequestID:  requestID,
		}
	}

	if resp.ContentLength > c.maxSize {
		return nil, fmt.Errorf("%w: content length %d exceeds %d", ErrTooLarge, resp.ContentLength, c.maxSize)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, c.maxSize+1))
	if err != nil {
		return nil, &NetworkError{Err: err, URL: rawURL, Attempt: attempt}
	}
	if int64(len(data)) > c.maxSize {
		return nil, fmt.Errorf("%w: body exceeds %d bytes", ErrTooLarge, c.maxSize)
	}

	return data, nil
}

// Flush drops every cached blob.
func (c *Client) Flush() {
	if c.blobs != nil {
		c.blobs.Flush()
	}
}
