package robot

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

type RequestOption interface{ apply(*requestConfig) }

type requestOptionFunc func(*requestConfig)

func (f requestOptionFunc) apply(c *requestConfig) { f(c) }

type requestConfig struct {
	method string
	header http.Header
	query  url.Values

	timeout time.Duration

	body        io.Reader
	bodyBytes   []byte
	contentType string

	basicUser string
	basicPass string

	acceptErrors            map[string]bool
	allowEmptyResult        bool
	allowedEmptyStatusCodes map[int]bool

	checkDelay   time.Duration
	checkTimeout time.Duration
	skipFirst    bool
}

func newRequestConfig(opts []RequestOption) requestConfig {
	rc := requestConfig{
		method:  http.MethodGet,
		timeout: DefaultRequestTimeout,
		allowedEmptyStatusCodes: map[int]bool{
			http.StatusOK:        true,
			http.StatusNoContent: true,
		},
		checkDelay:   DefaultCheckDelay,
		checkTimeout: DefaultCheckTimeout,
	}
	for _, o := range opts {
		if o != nil {
			o.apply(&rc)
		}
	}
	return rc
}

// WithMethod sets the HTTP method (default GET).
func WithMethod(method string) RequestOption {
	return requestOptionFunc(func(c *requestConfig) { c.method = method })
}

func WithHeader(key, value string) RequestOption {
	return requestOptionFunc(func(c *requestConfig) {
		if c.header == nil {
			c.header = make(http.Header)
		}
		c.header.Set(key, value)
	})
}

func WithHeaders(h http.Header) RequestOption {
	return requestOptionFunc(func(c *requestConfig) {
		if h == nil {
			return
		}
		if c.header == nil {
			c.header = make(http.Header)
		}
		for k, vv := range h {
			for _, v := range vv {
				c.header.Add(k, v)
			}
		}
	})
}

func WithQuery(values url.Values) RequestOption {
	return requestOptionFunc(func(c *requestConfig) {
		if values == nil {
			return
		}
		if c.query == nil {
			c.query = make(url.Values)
		}
		for k, vv := range values {
			for _, v := range vv {
				c.query.Add(k, v)
			}
		}
	})
}

func WithQueryParam(key, value string) RequestOption {
	return requestOptionFunc(func(c *requestConfig) {
		if c.query == nil {
			c.query = make(url.Values)
		}
		c.query.Add(key, value)
	})
}

// WithRequestTimeout sets a per-request deadline upper bound.
// If the request context already has a deadline, the earlier one wins.
func WithRequestTimeout(d time.Duration) RequestOption {
	return requestOptionFunc(func(c *requestConfig) { c.timeout = d })
}

// WithBodyBytes sets the request body as bytes.
func WithBodyBytes(b []byte) RequestOption {
	return requestOptionFunc(func(c *requestConfig) {
		c.bodyBytes = append([]byte(nil), b...)
		c.body = nil
	})
}

// WithBody sets the request body reader.
func WithBody(r io.Reader) RequestOption {
	return requestOptionFunc(func(c *requestConfig) {
		c.body = r
		c.bodyBytes = nil
	})
}

// WithJSON sets the request body to a JSON-encoded value.
func WithJSON(v any) RequestOption {
	return requestOptionFunc(func(c *requestConfig) {
		b, err := json.Marshal(v)
		if err != nil {
			// Capture the error later during request build.
			c.body = errReader{err: err}
			c.bodyBytes = nil
			return
		}
		c.bodyBytes = b
		c.body = nil
		c.contentType = "application/json"
	})
}

// WithFormBody sets the request body to a form-urlencoded payload, the
// shape the webservice expects for POST/PUT. See FormParamList for
// repeated parameters.
func WithFormBody(values url.Values) RequestOption {
	return requestOptionFunc(func(c *requestConfig) {
		c.bodyBytes = []byte(values.Encode())
		c.body = nil
		c.contentType = "application/x-www-form-urlencoded"
	})
}

// WithBasicAuth overrides the client-level credentials for this request.
func WithBasicAuth(user, pass string) RequestOption {
	return requestOptionFunc(func(c *requestConfig) {
		c.basicUser = user
		c.basicPass = pass
	})
}

// WithAcceptErrors declares provider error codes that are non-fatal
// outcomes: a response carrying one of them is returned as a Result with
// AcceptedCode set instead of failing with KindAPI.
func WithAcceptErrors(codes ...string) RequestOption {
	return requestOptionFunc(func(c *requestConfig) {
		if c.acceptErrors == nil {
			c.acceptErrors = make(map[string]bool, len(codes))
		}
		for _, code := range codes {
			c.acceptErrors[code] = true
		}
	})
}

// WithAllowEmptyResult permits an empty response body when the status
// code is in the allowed set (default 200 and 204); Fetch then returns
// (nil, nil).
func WithAllowEmptyResult() RequestOption {
	return requestOptionFunc(func(c *requestConfig) { c.allowEmptyResult = true })
}

// WithAllowedEmptyStatusCodes replaces the status codes an empty body is
// accepted for.
func WithAllowedEmptyStatusCodes(codes ...int) RequestOption {
	return requestOptionFunc(func(c *requestConfig) {
		c.allowedEmptyStatusCodes = make(map[int]bool, len(codes))
		for _, code := range codes {
			c.allowedEmptyStatusCodes[code] = true
		}
	})
}

// WithCheckDelay sets the sleep between poll probes (default 10s).
func WithCheckDelay(d time.Duration) RequestOption {
	return requestOptionFunc(func(c *requestConfig) { c.checkDelay = d })
}

// WithCheckTimeout sets the overall poll budget (default 180s).
func WithCheckTimeout(d time.Duration) RequestOption {
	return requestOptionFunc(func(c *requestConfig) { c.checkTimeout = d })
}

// WithSkipFirst assumes a first request has already been made: Poll
// starts with the wait step instead of an immediate probe.
func WithSkipFirst() RequestOption {
	return requestOptionFunc(func(c *requestConfig) { c.skipFirst = true })
}

type errReader struct{ err error }

func (r errReader) Read([]byte) (int, error) { return 0, r.err }

func (r errReader) Close() error { return nil }

func (c *Client) newRequest(ctx context.Context, path string, rc *requestConfig) (*http.Request, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	u, err := c.resolveURL(path, rc.query)
	if err != nil {
		return nil, err
	}

	var body io.Reader
	if rc.bodyBytes != nil {
		body = bytes.NewReader(rc.bodyBytes)
	} else if rc.body != nil {
		body = rc.body
	}

	req, err := http.NewRequestWithContext(ctx, strings.ToUpper(rc.method), u.String(), body)
	if err != nil {
		return nil, err
	}

	// Apply headers: default headers first, then request headers override.
	for k, vv := range c.defaultHeaders {
		for _, v := range vv {
			req.Header.Add(k, v)
		}
	}
	for k, vv := range rc.header {
		req.Header.Del(k)
		for _, v := range vv {
			req.Header.Add(k, v)
		}
	}
	if rc.contentType != "" && req.Header.Get("Content-Type") == "" {
		req.Header.Set("Content-Type", rc.contentType)
	}
	if req.Header.Get("Accept") == "" {
		req.Header.Set("Accept", "application/json")
	}
	if c.userAgent != "" && req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	if rc.basicUser != "" {
		req.SetBasicAuth(rc.basicUser, rc.basicPass)
	} else {
		req.SetBasicAuth(c.creds.User, c.creds.Password)
	}
	if c.requestID.Header != "" && req.Header.Get(c.requestID.Header) == "" {
		if c.requestID.New != nil {
			if id := strings.TrimSpace(c.requestID.New()); id != "" {
				req.Header.Set(c.requestID.Header, id)
			}
		}
	}

	// Surface JSON marshal errors (captured as body reader).
	if er, ok := rc.body.(errReader); ok && er.err != nil {
		return nil, er.err
	}
	if errors.Is(ctx.Err(), context.DeadlineExceeded) || errors.Is(ctx.Err(), context.Canceled) {
		return nil, ctx.Err()
	}
	return req, nil
}
