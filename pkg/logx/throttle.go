package logx

import "golang.org/x/time/rate"

// Throttle gates repetitive log sites behind a token bucket so a hot
// path (e.g. per-call configuration warnings) cannot flood the sinks.
type Throttle struct {
	lim *rate.Limiter
}

// NewThrottle allows perSec events per second with the given burst.
// Non-positive inputs fall back to 1.
func NewThrottle(perSec float64, burst int) *Throttle {
	if perSec <= 0 {
		perSec = 1
	}
	if burst <= 0 {
		burst = 1
	}
	return &Throttle{lim: rate.NewLimiter(rate.Limit(perSec), burst)}
}

// Allow reports whether the caller may log now.
// A nil Throttle always allows.
func (t *Throttle) Allow() bool {
	if t == nil || t.lim == nil {
		return true
	}
	return t.lim.Allow()
}
