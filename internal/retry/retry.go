package retry

import (
	"context"
	"time"
)

// DoWithRetry calls fn up to attempts times, sleeping delay between calls.
// fn receives the 1-based attempt number. The error of the last attempt is
// returned when every attempt fails. It stops early if the context is canceled.
func DoWithRetry(ctx context.Context, attempts int, delay time.Duration, fn func(attempt int) error) error {
	var err error

	for attempt := 1; attempt <= attempts; attempt++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err = fn(attempt); err == nil {
			return nil
		}

		if attempt == attempts {
			break
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
	return err
}
