package moderation

import (
	"time"

	"github.com/sethvargo/go-retry"
)

// RetryPolicy bounds how transient moderation failures are retried.
type RetryPolicy struct {
	// MaxRetries is the number of retries after the first attempt.
	MaxRetries uint64
	// BaseDelay is the first backoff delay; each retry doubles it.
	BaseDelay time.Duration
	// MaxDelay caps a single backoff delay. Zero means no cap.
	MaxDelay time.Duration
	// JitterPercent randomizes each delay by up to this percentage.
	JitterPercent uint64
}

// DefaultRetryPolicy retries three times starting at 200ms.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxRetries:    3,
		BaseDelay:     200 * time.Millisecond,
		MaxDelay:      5 * time.Second,
		JitterPercent: 10,
	}
}

// Backoff returns a fresh backoff sequence for one call. It stops after
// MaxRetries delays.
func (p RetryPolicy) Backoff() retry.Backoff {
	base := p.BaseDelay
	if base <= 0 {
		base = DefaultRetryPolicy().BaseDelay
	}

	b := retry.NewExponential(base)
	if p.JitterPercent > 0 {
		b = retry.WithJitterPercent(p.JitterPercent, b)
	}
	if p.MaxDelay > 0 {
		b = retry.WithCappedDuration(p.MaxDelay, b)
	}
	return retry.WithMaxRetries(p.MaxRetries, b)
}
