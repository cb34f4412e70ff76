package usecase

import (
	"context"
	"log"
	"time"
)

// retryPolicy retries an operation with exponential backoff. MaxRetries is
// the number of extra attempts after the first one; Retryable decides which
// errors are worth another attempt. The backoff sleep honors context
// cancellation so a deadline cuts the whole sequence short.

type retryPolicy struct {
	MaxRetries int
	BaseDelay  time.Duration
	Multiplier float64
	Retryable  func(error) bool
}

func (p retryPolicy) Do(ctx context.Context, op string, fn func(context.Context) error) error {
	delay := p.BaseDelay
	var err error
	for attempt := 0; ; attempt++ {
		if err = ctx.Err(); err != nil {
			return err
		}
		if err = fn(ctx); err == nil {
			return nil
		}
		if attempt >= p.MaxRetries || !p.Retryable(err) {
			if attempt >= p.MaxRetries && p.Retryable(err) {
				log.Printf("[payment][retry] all retries exhausted op=%s attempts=%d err=%v", op, attempt+1, err)
			}
			return err
		}
		log.Printf("[payment][retry] attempt %d failed op=%s retrying in %s err=%v", attempt+1, op, delay, err)

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
		delay = time.Duration(float64(delay) * p.Multiplier)
	}
}
