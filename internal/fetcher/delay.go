package fetcher

import (
	"context"
	"math/rand/v2"
	"time"
)

// DelayPolicy decides how long to wait before querying a source
type DelayPolicy interface {
	Delay(source string) time.Duration
}

// UniformDelay draws each delay uniformly from [Min, Max]
type UniformDelay struct {
	Min time.Duration
	Max time.Duration
}

// DefaultDelay is the politeness window used against live retailers
func DefaultDelay() UniformDelay {
	return UniformDelay{Min: time.Second, Max: 3 * time.Second}
}

// Delay implements DelayPolicy
func (d UniformDelay) Delay(string) time.Duration {
	if d.Max <= d.Min {
		return d.Min
	}
	return d.Min + time.Duration(rand.Int64N(int64(d.Max-d.Min)+1))
}

// FixedDelay waits the same duration before every request
type FixedDelay time.Duration

// Delay implements DelayPolicy
func (d FixedDelay) Delay(string) time.Duration {
	return time.Duration(d)
}

// NoDelay skips the pre-request wait
type NoDelay struct{}

// Delay implements DelayPolicy
func (NoDelay) Delay(string) time.Duration {
	return 0
}

// sleep waits for d or until ctx is done
func sleep(ctx context.Context, d time.Duration) error {
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
