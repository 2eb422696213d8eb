package robot

import (
	"context"
	"net/http"
	"time"
)

// RateLimiter can be used to throttle outgoing requests, e.g. to stay
// under the webservice's per-endpoint request limits. It should block
// until a token is available or ctx is canceled.
type RateLimiter interface {
	Wait(ctx context.Context) error
}

// BeforeHook runs before each request attempt. attempt is 1 for a plain
// Fetch and counts probes within a Poll.
type BeforeHook func(req *http.Request, attempt int) error

// AfterHook runs after each request attempt, successful or not.
type AfterHook func(req *http.Request, resp *http.Response, err error, dur time.Duration, attempt int)

type Middleware func(next http.RoundTripper) http.RoundTripper

func chain(rt http.RoundTripper, mws []Middleware) http.RoundTripper {
	for i := len(mws) - 1; i >= 0; i-- {
		if mws[i] == nil {
			continue
		}
		rt = mws[i](rt)
	}
	return rt
}

// RoundTripperFunc adapts a function to an http.RoundTripper.
type RoundTripperFunc func(*http.Request) (*http.Response, error)

func (f RoundTripperFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }
