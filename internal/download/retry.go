package download

import (
	"math"
	"math/rand"
	"time"

	"github.com/grailbio/base/retry"
)

// RetryConfig configures retry behavior for failed downloads.
type RetryConfig struct {
	// MaxRetries is the maximum number of retry attempts.
	MaxRetries int
	// BaseDelay is the initial delay between retry attempts.
	BaseDelay time.Duration
	// MaxDelay is the maximum delay between retry attempts. Zero means uncapped.
	MaxDelay time.Duration
	// Multiplier is the factor by which the delay increases after each attempt.
	Multiplier float64
	// Jitter is the randomization factor (0.0 to 1.0) added to delays
	// to prevent thundering herd.
	Jitter float64
	// RetryableOn determines if a status code should trigger a retry.
	RetryableOn func(statusCode int) bool
}

// DefaultRetryOn lists the HTTP status codes retried by default.
var DefaultRetryOn = []int{408, 429, 500, 502, 503, 504}

// DefaultRetryConfig returns the default retry configuration.
func DefaultRetryConfig() *RetryConfig {
	return &RetryConfig{
		MaxRetries:  3,
		BaseDelay:   time.Second,
		MaxDelay:    30 * time.Second,
		Multiplier:  2.0,
		Jitter:      0.2,
		RetryableOn: statusSet(DefaultRetryOn),
	}
}

func statusSet(codes []int) func(int) bool {
	set := make(map[int]struct{}, len(codes))
	for _, c := range codes {
		set[c] = struct{}{}
	}
	return func(statusCode int) bool {
		_, ok := set[statusCode]
		return ok
	}
}

// ShouldRetry determines if a request that ended with statusCode should be
// retried.
func (r *RetryConfig) ShouldRetry(attempt int, statusCode int) bool {
	if attempt >= r.MaxRetries {
		return false
	}
	if r.RetryableOn == nil {
		return false
	}
	return r.RetryableOn(statusCode)
}

// backoff is the jittered exponential backoff without a retry limit.
func (r *RetryConfig) backoff() retry.Policy {
	maxDelay := r.MaxDelay
	if maxDelay <= 0 {
		maxDelay = time.Duration(math.MaxInt64)
	}
	return jitter{
		policy: retry.Backoff(r.BaseDelay, maxDelay, r.Multiplier),
		factor: r.Jitter,
	}
}

// Policy returns the retry policy: the jittered backoff limited to
// MaxRetries retries.
func (r *RetryConfig) Policy() retry.Policy {
	if r.MaxRetries < 1 {
		return never{}
	}
	return retry.MaxRetries(r.backoff(), r.MaxRetries)
}

// Delay calculates the delay before the next retry attempt with optional jitter.
func (r *RetryConfig) Delay(attempt int) time.Duration {
	_, delay := r.backoff().Retry(attempt)
	return delay
}

// jitter spreads the delays of policy by ±factor.
type jitter struct {
	policy retry.Policy
	factor float64
}

func (j jitter) Retry(retries int) (bool, time.Duration) {
	ok, wait := j.policy.Retry(retries)
	if !ok || j.factor <= 0 {
		return ok, wait
	}
	amount := float64(wait) * j.factor
	return true, time.Duration(float64(wait) - amount + rand.Float64()*2*amount)
}

// never refuses every retry.
type never struct{}

func (never) Retry(int) (bool, time.Duration) { return false, 0 }
