package robot

import (
	"context"
	"time"
)

// CheckDoneFunc decides whether a polled resource has reached the desired
// state. res is the latest outcome (nil for an allowed empty body); an
// accepted provider error code, if any, is available as res.AcceptedCode.
type CheckDoneFunc func(res *Result) bool

// Poll performs requests against path until checkDone is satisfied or the
// poll budget is exhausted.
//
// Unless WithSkipFirst is set, one request is made immediately and checked
// before any sleep. After that the loop sleeps min(delay, remaining
// budget) (never negative), probes again, and only then checks whether the
// budget had already dropped below a full delay interval. The loop
// therefore always gets one final probe once the budget runs out, and
// total elapsed time can exceed the budget by up to one request's round
// trip. On budget exhaustion Poll fails with KindPollTimeout carrying
// the last outcome.
//
// Request failures are terminal and propagate immediately; only an
// unsatisfied predicate is retried. Delay and budget default to
// DefaultCheckDelay and DefaultCheckTimeout (see WithCheckDelay,
// WithCheckTimeout).
func (c *Client) Poll(ctx context.Context, path string, checkDone CheckDoneFunc, opts ...RequestOption) (*Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	rc := newRequestConfig(opts)

	pollURL := path
	if u, err := c.resolveURL(path, rc.query); err == nil {
		pollURL = u.String()
	}

	start := time.Now()
	if !rc.skipFirst {
		res, err := c.fetch(ctx, path, &rc, 1)
		if err != nil {
			return nil, err
		}
		if checkDone(res) {
			return res, nil
		}
	}
	for attempt := 2; ; attempt++ {
		left := rc.checkTimeout - time.Since(start)
		d := rc.checkDelay
		if left < d {
			d = left
		}
		if err := sleep(ctx, d); err != nil {
			return nil, err
		}
		res, err := c.fetch(ctx, path, &rc, attempt)
		if err != nil {
			return nil, err
		}
		if checkDone(res) {
			return res, nil
		}
		if left < rc.checkDelay {
			return nil, &Error{Kind: KindPollTimeout, URL: pollURL, LastResult: res}
		}
	}
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
