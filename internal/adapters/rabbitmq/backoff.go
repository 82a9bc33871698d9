package rabbitmq

import (
	"context"
	crand "crypto/rand"
	"time"
)

const maxBackoff = 30 * time.Second

// sleepCtx waits for d or returns early if ctx is done.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

// backoff returns an exponential delay (200ms, 400ms, 800ms...) with up to
// +50% jitter, capped at maxBackoff.
func backoff(i int) time.Duration {
	if i > 10 {
		i = 10
	}
	base := time.Duration(1<<i) * 200 * time.Millisecond
	if base > maxBackoff {
		base = maxBackoff
	}
	var b [1]byte
	if _, err := crand.Read(b[:]); err != nil {
		return base
	}
	f := float64(b[0]) / 255.0
	return base + time.Duration(0.5*f*float64(base))
}
