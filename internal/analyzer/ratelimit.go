package analyzer

import (
	"context"
	"math/rand/v2"
	"time"
)

// RateLimiter paces calls against a shared, rate-limited backend. A fixed
// base delay applies between windows even on success, scaled by a
// multiplier that doubles on failure (capped) and decays toward 1.0 on
// success. The failure state lives here explicitly instead of in package
// globals so two concurrent runs cannot poison each other's pacing.
type RateLimiter struct {
	BaseDelay     time.Duration
	MaxMultiplier float64

	multiplier          float64
	consecutiveFailures int
	lastFailure         time.Time

	now func() time.Time
}

// NewRateLimiter creates a limiter with the given base inter-call delay.
func NewRateLimiter(base time.Duration) *RateLimiter {
	return &RateLimiter{
		BaseDelay:     base,
		MaxMultiplier: 32,
		multiplier:    1.0,
		now:           time.Now,
	}
}

// Delay returns the current inter-window delay.
func (r *RateLimiter) Delay() time.Duration {
	return time.Duration(float64(r.BaseDelay) * r.multiplier)
}

// Wait sleeps for the current delay, honoring context cancellation.
func (r *RateLimiter) Wait(ctx context.Context) error {
	d := r.Delay()
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Success decays the multiplier toward 1.0 and clears the failure streak.
func (r *RateLimiter) Success() {
	r.consecutiveFailures = 0
	r.multiplier *= 0.8
	if r.multiplier < 1.0 {
		r.multiplier = 1.0
	}
}

// Failure doubles the multiplier up to the cap and records the streak.
func (r *RateLimiter) Failure() {
	r.consecutiveFailures++
	r.lastFailure = r.now()
	r.multiplier *= 2.0
	if r.multiplier > r.MaxMultiplier {
		r.multiplier = r.MaxMultiplier
	}
}

// Multiplier exposes the current backoff multiplier.
func (r *RateLimiter) Multiplier() float64 {
	return r.multiplier
}

// ConsecutiveFailures reports the current failure streak.
func (r *RateLimiter) ConsecutiveFailures() int {
	return r.consecutiveFailures
}

// Backoff returns the retry delay for attempt n (0-indexed): exponential
// with jitter, capped at 30 seconds.
func Backoff(attempt int) time.Duration {
	base := time.Duration(1<<uint(attempt)) * time.Second
	if base > 30*time.Second {
		base = 30 * time.Second
	}
	jitter := time.Duration(rand.Int64N(int64(base) / 2))
	return base + jitter
}
