// Package download fetches encrypted media blobs over HTTP. It handles
// request identification, response size limits, caching of fetched blobs, and
// automatic retry with exponential backoff for transient failures.
//
// # Retry Behavior
//
// By default, requests are retried up to 3 times for these HTTP status codes
// and for transport-level failures:
//
//   - 408 Request Timeout
//   - 429 Too Many Requests
//   - 500 Internal Server Error
//   - 502 Bad Gateway
//   - 503 Service Unavailable
//   - 504 Gateway Timeout
//
// The retry delay doubles with each attempt (1s, 2s, 4s, ...) with jitter.
// Configure retry behavior using [Config.MaxRetries], [Config.RetryDelay], and
// [Config.RetryOn].
//
// # Error Handling
//
// Non-2xx responses are returned as [*HTTPError], transport failures as
// [*NetworkError]. Use errors.Is with the sentinel errors:
//
//	if errors.Is(err, download.ErrNotFound) {
//	    // Media URL expired or was removed
//	}
//
// # Thread Safety
//
// The [Client] type is safe for concurrent use.
package download
