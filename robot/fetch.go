package robot

import (
	"context"
	"encoding/json"
	"io"
	"time"
)

// Result is the outcome of one successful webservice request.
type Result struct {
	// Body is the decoded JSON response. Most endpoints return an object,
	// list endpoints (e.g. GET /server) return an array.
	Body any

	// AcceptedCode is the provider error code when the response carried an
	// error whose code was in the accept list (see WithAcceptErrors). The
	// full payload is still available via Body and Decode.
	AcceptedCode string

	// APIError is the decoded provider error for accepted error responses.
	APIError *APIError

	raw []byte
}

// Object returns the decoded body as an object, or nil when the body was
// not a JSON object.
func (r *Result) Object() map[string]any {
	m, _ := r.Body.(map[string]any)
	return m
}

// Decode unmarshals the raw response body into dst, for callers working
// with typed response structs instead of Body.
func (r *Result) Decode(dst any) error {
	return json.Unmarshal(r.raw, dst)
}

// Raw returns the raw response body.
func (r *Result) Raw() []byte { return r.raw }

// Fetch performs one authenticated request against the webservice and
// decodes the outcome.
//
// A decoded body without an error field is returned as a Result. A body
// whose error code is in the accept list (WithAcceptErrors) is returned
// as a Result with AcceptedCode set. An empty body is a valid (nil, nil)
// outcome when WithAllowEmptyResult is set and the status code is in the
// allowed set. Everything else fails with a *Error: KindTransport,
// KindEmptyResponse, KindMalformedResponse or KindAPI.
//
// Non-2xx responses are not failures by themselves: their bodies go
// through the same decode path, so provider errors are reported as
// KindAPI regardless of how the transport surfaced them.
func (c *Client) Fetch(ctx context.Context, path string, opts ...RequestOption) (*Result, error) {
	rc := newRequestConfig(opts)
	return c.fetch(ctx, path, &rc, 1)
}

func (c *Client) fetch(ctx context.Context, path string, rc *requestConfig, attempt int) (*Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if dl, ok := earliestDeadline(ctx, c.timeout, rc.timeout); ok {
		ctx2, cancel := withEarlierDeadline(ctx, dl)
		defer cancel()
		ctx = ctx2
	}

	req, err := c.newRequest(ctx, path, rc)
	if err != nil {
		return nil, err
	}

	if c.rateLimiter != nil {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, err
		}
	}
	for _, h := range c.before {
		if h == nil {
			continue
		}
		if err := h(req, attempt); err != nil {
			return nil, err
		}
	}

	t0 := time.Now()
	resp, err := c.httpClient.Do(req)
	dur := time.Since(t0)

	for _, h := range c.after {
		if h != nil {
			h(req, resp, err, dur, attempt)
		}
	}

	if err != nil {
		// No usable response at all (connect, DNS, timeout).
		return nil, &Error{Kind: KindTransport, URL: req.URL.String(), Cause: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Kind: KindTransport, URL: req.URL.String(), Cause: err}
	}

	return decodeOutcome(req.URL.String(), resp.StatusCode, body, rc)
}

// decodeOutcome classifies a (status, body) pair. It is shared by every
// transport path so downstream logic never special-cases how the response
// was obtained.
func decodeOutcome(url string, status int, body []byte, rc *requestConfig) (*Result, error) {
	if len(body) == 0 {
		if rc.allowEmptyResult && rc.allowedEmptyStatusCodes[status] {
			return nil, nil
		}
		return nil, &Error{Kind: KindEmptyResponse, URL: url, StatusCode: status}
	}

	var decoded any
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, &Error{Kind: KindMalformedResponse, URL: url, StatusCode: status, Cause: err}
	}

	obj, _ := decoded.(map[string]any)
	if _, ok := obj["error"]; ok {
		var env errorEnvelope
		if err := json.Unmarshal(body, &env); err != nil || env.Error == nil {
			return nil, &Error{Kind: KindMalformedResponse, URL: url, StatusCode: status, Cause: err}
		}
		if rc.acceptErrors[env.Error.Code] {
			return &Result{
				Body:         decoded,
				AcceptedCode: env.Error.Code,
				APIError:     env.Error,
				raw:          body,
			}, nil
		}
		return nil, &Error{Kind: KindAPI, URL: url, StatusCode: status, APIError: env.Error}
	}

	return &Result{Body: decoded, raw: body}, nil
}
