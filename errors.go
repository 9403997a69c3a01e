package wamedia

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/mediavault/wamedia-go/internal/crypto"
	"github.com/mediavault/wamedia-go/internal/download"
)

// Sentinel errors for errors.Is() checks
var (
	// ErrInvalidKeyLength is returned when the media key does not decode to
	// exactly 32 bytes.
	ErrInvalidKeyLength = crypto.ErrInvalidKeyLength

	// ErrInvalidPayloadFormat is returned when the encrypted blob is shorter
	// than the MAC trailer or its ciphertext is not block aligned.
	ErrInvalidPayloadFormat = crypto.ErrInvalidPayloadFormat

	// ErrMACMismatch is returned when the blob fails authentication.
	ErrMACMismatch = crypto.ErrMACMismatch

	// ErrDecryptionFailure is returned when padding validation fails after
	// decryption.
	ErrDecryptionFailure = crypto.ErrDecryptionFailure

	// ErrDigestMismatch is returned by the Client when a declared SHA-256
	// digest does not match and strict digest checking is enabled.
	ErrDigestMismatch = errors.New("digest mismatch")

	// ErrLengthMismatch is returned by the Client when the declared file
	// length does not match the plaintext and strict checking is enabled.
	ErrLengthMismatch = errors.New("file length mismatch")

	// ErrInvalidMessage is returned when a media message description is
	// missing fields or carries malformed ones.
	ErrInvalidMessage = errors.New("invalid media message")

	// ErrClientClosed is returned when operations are attempted on a closed client.
	ErrClientClosed = errors.New("client has been closed")

	// ErrMediaNotFound is returned when the media host reports the blob as
	// missing (404, 410).
	ErrMediaNotFound = download.ErrNotFound

	// ErrMediaExpired is returned when the media host rejects the URL
	// (401, 403), typically because the signed URL expired.
	ErrMediaExpired = download.ErrForbidden

	// ErrRateLimited is returned when the media host rate limits requests.
	ErrRateLimited = download.ErrRateLimited

	// ErrMediaTooLarge is returned when the blob exceeds the configured size limit.
	ErrMediaTooLarge = download.ErrTooLarge

	// ErrInvalidURL is returned when the media URL is malformed.
	ErrInvalidURL = download.ErrInvalidURL
)

// WAMediaError is implemented by all typed errors of this package.
type WAMediaError interface {
	error
	WAMediaError() // marker method
}

// Stage identifies the decryption step that failed.
type Stage = crypto.Stage

// Decryption stages.
const (
	StageKey     = crypto.StageKey
	StagePayload = crypto.StagePayload
	StageMAC     = crypto.StageMAC
	StageCipher  = crypto.StageCipher
)

// DecryptionError represents a failure to decrypt a media blob. It unwraps to
// one of ErrInvalidKeyLength, ErrInvalidPayloadFormat, ErrMACMismatch or
// ErrDecryptionFailure.
type DecryptionError struct {
	Stage Stage
	Err   error
}

func (e *DecryptionError) Error() string {
	return fmt.Sprintf("decryption failed at %s: %v", e.Stage, e.Err)
}

// Unwrap returns the underlying error.
func (e *DecryptionError) Unwrap() error {
	return e.Err
}

// WAMediaError implements the WAMediaError interface.
func (e *DecryptionError) WAMediaError() {}

// DigestError reports a declared SHA-256 digest that does not match.
type DigestError struct {
	// Field is the message field that carried the digest.
	Field    string
	Expected string
	Actual   string
}

func (e *DigestError) Error() string {
	return fmt.Sprintf("%s mismatch: expected %s, got %s", e.Field, e.Expected, e.Actual)
}

// Is implements errors.Is for sentinel error matching.
func (e *DigestError) Is(target error) bool {
	return target == ErrDigestMismatch
}

// WAMediaError implements the WAMediaError interface.
func (e *DigestError) WAMediaError() {}

// LengthError reports a declared file length that does not match.
type LengthError struct {
	Expected uint64
	Actual   int
}

func (e *LengthError) Error() string {
	return fmt.Sprintf("file length mismatch: expected %d, got %d", e.Expected, e.Actual)
}

// Is implements errors.Is for sentinel error matching.
func (e *LengthError) Is(target error) bool {
	return target == ErrLengthMismatch
}

// WAMediaError implements the WAMediaError interface.
func (e *LengthError) WAMediaError() {}

// ValidationError contains multiple validation failures.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %v", e.Errors)
}

// Is implements errors.Is for sentinel error matching.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidMessage
}

// WAMediaError implements the WAMediaError interface.
func (e *ValidationError) WAMediaError() {}

// HTTPError represents a non-success response from the media host.
type HTTPError struct {
	StatusCode int
	URL        string
	RequestID  string
}

func (e *HTTPError) Error() string {
	if e.RequestID != "" {
		return fmt.Sprintf("media download failed: HTTP %d %s (request_id: %s)",
			e.StatusCode, http.StatusText(e.StatusCode), e.RequestID)
	}
	return fmt.Sprintf("media download failed: HTTP %d %s", e.StatusCode, http.StatusText(e.StatusCode))
}

// Is implements errors.Is for sentinel error matching. Status codes map to
// the same sentinels as the downloader's errors.
func (e *HTTPError) Is(target error) bool {
	return (&download.HTTPError{StatusCode: e.StatusCode}).Is(target)
}

// WAMediaError implements the WAMediaError interface.
func (e *HTTPError) WAMediaError() {}

// NetworkError represents a network-level failure.
type NetworkError struct {
	Err     error
	URL     string
	Attempt int
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

// Unwrap returns the underlying error.
func (e *NetworkError) Unwrap() error {
	return e.Err
}

// WAMediaError implements the WAMediaError interface.
func (e *NetworkError) WAMediaError() {}

// wrapError converts internal errors to public errors.
// This ensures that errors.Is() checks work with public sentinel errors.
func wrapError(err error) error {
	if err == nil {
		return nil
	}

	var stageErr *crypto.StageError
	if errors.As(err, &stageErr) {
		return &DecryptionError{Stage: stageErr.Stage, Err: stageErr.Err}
	}

	var httpErr *download.HTTPError
	if errors.As(err, &httpErr) {
		return &HTTPError{
			StatusCode: httpErr.StatusCode,
			URL:        httpErr.URL,
			RequestID:  httpErr.RequestID,
		}
	}

	var netErr *download.NetworkError
	if errors.As(err, &netErr) {
		return &NetworkError{
			Err:     netErr.Err,
			URL:     netErr.URL,
			Attempt: netErr.Attempt,
		}
	}

	return err
}
