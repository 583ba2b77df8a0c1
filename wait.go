package resumefit

import (
	"context"
	"errors"
	"time"
)

// errWaitTimeout is returned by poll when the condition never held.
var errWaitTimeout = errors.New("wait timed out")

// defaultPollInterval is how often a wait re-checks its condition.
const defaultPollInterval = 100 * time.Millisecond

// poll calls cond until it reports true or timeout elapses. Errors from cond
// count as "not yet": a document mid-navigation or mid-render may throw
// transiently. Returns the parent context's error if it is cancelled.
func poll(ctx context.Context, timeout, interval time.Duration, cond func(context.Context) (bool, error)) error {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	wctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if ok, err := cond(wctx); err == nil && ok {
			return nil
		}

		select {
		case <-wctx.Done():
			if err := ctx.Err(); err != nil {
				return err
			}
			return errWaitTimeout
		case <-ticker.C:
		}
	}
}

// waitUntil polls a boolean in-page script.
func waitUntil(ctx context.Context, p Page, js string, timeout, interval time.Duration) error {
	return poll(ctx, timeout, interval, func(ctx context.Context) (bool, error) {
		var ok bool
		err := p.Eval(ctx, js, &ok)
		return ok, err
	})
}

// sleep pauses for d or until ctx is done.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
