package robot

import (
	"errors"
	"fmt"
)

// Kind classifies client failures.
type Kind int

const (
	// KindTransport is a network-level failure before any usable response
	// (connection refused, DNS, timeout).
	KindTransport Kind = iota + 1

	// KindEmptyResponse means the body was empty and the status code was
	// not in the allowed empty-result set.
	KindEmptyResponse

	// KindMalformedResponse means the body was not valid UTF-8 JSON.
	KindMalformedResponse

	// KindAPI is a decoded provider error whose code was not accepted.
	KindAPI

	// KindPollTimeout means the poll budget was exhausted before the
	// predicate was satisfied.
	KindPollTimeout
)

func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindEmptyResponse:
		return "empty_response"
	case KindMalformedResponse:
		return "malformed_response"
	case KindAPI:
		return "api_error"
	case KindPollTimeout:
		return "poll_timeout"
	}
	return "unknown"
}

// Error is the structured failure surfaced by this package.
// Fields other than Kind and URL are populated per kind: StatusCode for
// empty responses, APIError for provider errors, LastResult for poll
// timeouts, Cause for transport and decode failures.
type Error struct {
	Kind Kind
	URL  string

	// StatusCode is the HTTP status code, when a response was received.
	StatusCode int

	// APIError is the decoded provider error (KindAPI).
	APIError *APIError

	// LastResult is the outcome of the final probe (KindPollTimeout).
	// It may be nil when the final probe returned an allowed empty body.
	LastResult *Result

	// Cause is the underlying error, if any.
	Cause error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	switch e.Kind {
	case KindTransport:
		return fmt.Sprintf("failed request to Hetzner Robot server endpoint %s: %v", e.URL, e.Cause)
	case KindEmptyResponse:
		return fmt.Sprintf("cannot retrieve content from %s, HTTP status code %d", e.URL, e.StatusCode)
	case KindMalformedResponse:
		return fmt.Sprintf("cannot decode content retrieved from %s", e.URL)
	case KindAPI:
		if e.APIError != nil {
			return e.APIError.Error()
		}
		return fmt.Sprintf("request to %s failed with an unspecified API error", e.URL)
	case KindPollTimeout:
		return fmt.Sprintf("timeout while polling %s", e.URL)
	}
	if e.Cause != nil {
		return fmt.Sprintf("request to %s failed: %v", e.URL, e.Cause)
	}
	return fmt.Sprintf("request to %s failed", e.URL)
}

func (e *Error) Unwrap() error {
	if e.APIError != nil {
		return e.APIError
	}
	return e.Cause
}

// AsError extracts *Error.
func AsError(err error) (*Error, bool) {
	var re *Error
	if errors.As(err, &re) {
		return re, true
	}
	return nil, false
}

// IsKind reports whether err is a *Error of the given kind.
func IsKind(err error, k Kind) bool {
	re, ok := AsError(err)
	return ok && re.Kind == k
}

// AsAPIError extracts the decoded provider error, if err carries one.
func AsAPIError(err error) (*APIError, bool) {
	re, ok := AsError(err)
	if !ok || re.APIError == nil {
		return nil, false
	}
	return re.APIError, true
}
