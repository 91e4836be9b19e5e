package util

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Limiter caps how often a rescan may start. Debouncing already coalesces
// file events into batches; the limiter spaces out the scans those batches
// trigger so a churning tree cannot keep the analyzer pinned.
type Limiter struct {
	inner *rate.Limiter
}

// NewLimiter allows perSecond scans on average, with bursts of up to burst.
func NewLimiter(perSecond float64, burst int) *Limiter {
	return &Limiter{
		inner: rate.NewLimiter(rate.Limit(perSecond), burst),
	}
}

// Allow reports whether a scan may start right now.
func (l *Limiter) Allow() bool {
	return l.inner.AllowN(time.Now(), 1)
}

// Wait blocks until the next scan may start or ctx is done.
func (l *Limiter) Wait(ctx context.Context) error {
	return l.inner.Wait(ctx)
}
