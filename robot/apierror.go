package robot

import (
	"fmt"
	"strings"
)

// APIError is the provider's structured error payload.
// Reference: https://robot.hetzner.com/doc/webservice/en.html#errors
//
// MaxRequest and Interval are pointers because the webservice only sends
// them for rate-limit errors and zero is a meaningful value; inclusion in
// the formatted message is gated on presence, not truthiness.
type APIError struct {
	Status  int    `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"`

	// Missing and Invalid list offending input parameters. The webservice
	// usually sends flat string lists, but nested lists occur and are
	// rendered as nested lists.
	Missing []any `json:"missing,omitempty"`
	Invalid []any `json:"invalid,omitempty"`

	MaxRequest *int `json:"max_request,omitempty"`
	Interval   *int `json:"interval,omitempty"`
}

// Error renders the provider error as a single human-readable message:
// "Request failed: {status} {code} ({message})" followed, in fixed order,
// by clauses for the optional fields that are set.
func (e *APIError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Request failed: %d %s (%s)", e.Status, e.Code, e.Message)
	if len(e.Missing) > 0 {
		b.WriteString(". Missing input parameters: ")
		b.WriteString(formatParamList(e.Missing))
	}
	if len(e.Invalid) > 0 {
		b.WriteString(". Invalid input parameters: ")
		b.WriteString(formatParamList(e.Invalid))
	}
	if e.MaxRequest != nil {
		fmt.Fprintf(&b, ". Maximum allowed requests: %d", *e.MaxRequest)
	}
	if e.Interval != nil {
		fmt.Fprintf(&b, ". Time interval in seconds: %d", *e.Interval)
	}
	return b.String()
}

// formatParamList renders a parameter list the way the provider's own
// tooling prints it: scalars normalized to quoted text, nested lists kept
// as nested lists, e.g. ['a', 'b'] or ['a', ['b', 'c']].
func formatParamList(values []any) string {
	parts := make([]string, 0, len(values))
	for _, v := range values {
		if nested, ok := v.([]any); ok {
			parts = append(parts, formatParamList(nested))
			continue
		}
		parts = append(parts, "'"+fmt.Sprintf("%v", v)+"'")
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// errorEnvelope is the wire shape of an error response body.
type errorEnvelope struct {
	Error *APIError `json:"error"`
}
