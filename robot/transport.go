package robot

import (
	"net"
	"net/http"
	"net/url"
	"time"
)

// TransportConfig captures the http.Transport knobs that matter when
// talking to a single vendor endpoint.
type TransportConfig struct {
	Proxy                 func(*http.Request) (*url.URL, error)
	DialTimeout           time.Duration
	DialKeepAlive         time.Duration
	TLSHandshakeTimeout   time.Duration
	ResponseHeaderTimeout time.Duration
	ExpectContinueTimeout time.Duration
	IdleConnTimeout       time.Duration

	MaxIdleConns        int
	MaxIdleConnsPerHost int
	MaxConnsPerHost     int
	ForceAttemptHTTP2   bool
}

// NewTransport builds an *http.Transport starting from DefaultTransport() and applying overrides.
func NewTransport(cfg TransportConfig) *http.Transport {
	t := DefaultTransport()
	if cfg.Proxy != nil {
		t.Proxy = cfg.Proxy
	}
	if cfg.DialTimeout > 0 || cfg.DialKeepAlive > 0 {
		d := &net.Dialer{
			Timeout:   cfg.DialTimeout,
			KeepAlive: cfg.DialKeepAlive,
		}
		t.DialContext = d.DialContext
	}
	if cfg.TLSHandshakeTimeout > 0 {
		t.TLSHandshakeTimeout = cfg.TLSHandshakeTimeout
	}
	if cfg.ResponseHeaderTimeout > 0 {
		t.ResponseHeaderTimeout = cfg.ResponseHeaderTimeout
	}
	if cfg.ExpectContinueTimeout > 0 {
		t.ExpectContinueTimeout = cfg.ExpectContinueTimeout
	}
	if cfg.IdleConnTimeout > 0 {
		t.IdleConnTimeout = cfg.IdleConnTimeout
	}
	if cfg.MaxIdleConns > 0 {
		t.MaxIdleConns = cfg.MaxIdleConns
	}
	if cfg.MaxIdleConnsPerHost > 0 {
		t.MaxIdleConnsPerHost = cfg.MaxIdleConnsPerHost
	}
	if cfg.MaxConnsPerHost > 0 {
		t.MaxConnsPerHost = cfg.MaxConnsPerHost
	}
	if cfg.ForceAttemptHTTP2 {
		t.ForceAttemptHTTP2 = true
	}
	return t
}

// DefaultTransport returns a tuned clone of http.DefaultTransport. TLS
// verification stays at the Go default, i.e. the system trust store.
func DefaultTransport() *http.Transport {
	base, _ := http.DefaultTransport.(*http.Transport)
	if base == nil {
		return &http.Transport{}
	}
	t := base.Clone()

	// One vendor endpoint, low request rates: small keep-alive pool,
	// tight dial/handshake timeouts.
	t.DialContext = (&net.Dialer{
		Timeout:   5 * time.Second,
		KeepAlive: 30 * time.Second,
	}).DialContext
	t.TLSHandshakeTimeout = 5 * time.Second
	t.ExpectContinueTimeout = 1 * time.Second
	t.IdleConnTimeout = 90 * time.Second
	t.MaxIdleConns = 10
	t.MaxIdleConnsPerHost = 4
	t.ForceAttemptHTTP2 = true
	return t
}
