package robot

import (
	"net/http"
	"time"
)

// DefaultBaseURL is the fixed Robot webservice endpoint.
const DefaultBaseURL = "https://robot-ws.your-server.de"

// Webservice defaults. They match the provider's documented behavior and
// are overridable per client (Option) or per request (RequestOption).
const (
	DefaultRequestTimeout = 10 * time.Second
	DefaultCheckDelay     = 10 * time.Second
	DefaultCheckTimeout   = 180 * time.Second
)

// Credentials holds the webservice user and password used for HTTP basic
// authentication. The client never mutates them.
type Credentials struct {
	User     string
	Password string
}

// Config configures a Client. Use DefaultConfig() as a baseline.
type Config struct {
	// BaseURL is the webservice endpoint. Relative paths passed to Fetch
	// and Poll are resolved against it.
	BaseURL string

	// Credentials are sent with every request via HTTP basic auth.
	Credentials Credentials

	// Timeout is the default per-request deadline. If the request context
	// already has a deadline, the earlier one wins.
	Timeout time.Duration

	// Transport is the underlying RoundTripper. If nil, a tuned default is
	// used; server certificates are verified against the system roots.
	Transport http.RoundTripper

	// DefaultHeaders are copied into every request (caller headers win).
	DefaultHeaders http.Header

	// UserAgent is set when the request does not already have a User-Agent header.
	UserAgent string

	// RequestID configures correlation id propagation.
	RequestID RequestIDConfig
}

// DefaultConfig returns a baseline matching the webservice defaults.
func DefaultConfig() Config {
	return Config{
		BaseURL:        DefaultBaseURL,
		Timeout:        DefaultRequestTimeout,
		Transport:      DefaultTransport(),
		DefaultHeaders: make(http.Header),
		RequestID:      DefaultRequestIDConfig(),
	}
}
