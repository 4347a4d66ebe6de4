package app

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

const maxBackoff = 30 * time.Second

// RefreshFunc re-fetches whatever page is on screen.
type RefreshFunc func(ctx context.Context) error

// StartPoller launches a background goroutine that calls refresh every
// interval and notify after each attempt. Consecutive failures back off
// exponentially up to maxBackoff. A non-positive interval disables polling.
func StartPoller(ctx context.Context, interval time.Duration, refresh RefreshFunc, notify func(), logger *log.Logger) {
	if interval <= 0 || refresh == nil {
		return
	}
	if notify == nil {
		notify = func() {}
	}
	if logger == nil {
		logger = log.Default()
	}
	go func() {
		failures := 0
		timer := time.NewTimer(interval)
		defer timer.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-timer.C:
			}

			if err := refresh(ctx); err != nil {
				if ctx.Err() != nil {
					return
				}
				failures++
				logger.Warn("auto-refresh failed", "failures", failures, "error", err)
			} else {
				if failures > 0 {
					logger.Info("auto-refresh recovered", "after", failures)
				}
				failures = 0
			}
			notify()
			timer.Reset(calculateBackoff(failures, interval))
		}
	}()
}

// calculateBackoff doubles base for each consecutive failure, capped at
// maxBackoff.
func calculateBackoff(failures int, base time.Duration) time.Duration {
	if failures <= 0 {
		return base
	}
	d := base
	for range failures {
		d *= 2
		if d >= maxBackoff {
			return maxBackoff
		}
	}
	return d
}
