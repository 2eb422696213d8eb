package robot

import (
	"strings"
	"testing"
)

func intp(v int) *int { return &v }

func TestAPIError_MessageBaseOnly(t *testing.T) {
	e := &APIError{Status: 404, Code: "SERVER_NOT_FOUND", Message: "server not found"}
	got := e.Error()
	want := "Request failed: 404 SERVER_NOT_FOUND (server not found)"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
	if strings.Contains(got, "Missing") || strings.Contains(got, "Invalid") ||
		strings.Contains(got, "Maximum") || strings.Contains(got, "interval") {
		t.Fatalf("unexpected optional clause in %q", got)
	}
}

func TestAPIError_MessageAllClauses(t *testing.T) {
	e := &APIError{
		Status:     400,
		Code:       "INVALID_INPUT",
		Message:    "invalid input",
		Missing:    []any{"a", "b"},
		Invalid:    []any{"c"},
		MaxRequest: intp(200),
		Interval:   intp(3600),
	}
	got := e.Error()
	want := "Request failed: 400 INVALID_INPUT (invalid input)" +
		". Missing input parameters: ['a', 'b']" +
		". Invalid input parameters: ['c']" +
		". Maximum allowed requests: 200" +
		". Time interval in seconds: 3600"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestAPIError_ZeroRateLimitFieldsStillRender(t *testing.T) {
	// Presence, not truthiness, gates these clauses.
	e := &APIError{
		Status:     403,
		Code:       "RATE_LIMIT_EXCEEDED",
		Message:    "rate limit exceeded",
		MaxRequest: intp(0),
		Interval:   intp(0),
	}
	got := e.Error()
	if !strings.Contains(got, ". Maximum allowed requests: 0") {
		t.Fatalf("missing max_request clause in %q", got)
	}
	if !strings.Contains(got, ". Time interval in seconds: 0") {
		t.Fatalf("missing interval clause in %q", got)
	}
}

func TestAPIError_NestedParamLists(t *testing.T) {
	e := &APIError{
		Status:  400,
		Code:    "INVALID_INPUT",
		Message: "invalid input",
		Invalid: []any{"a", []any{"b", "c"}},
	}
	got := e.Error()
	if !strings.Contains(got, ". Invalid input parameters: ['a', ['b', 'c']]") {
		t.Fatalf("nested list rendering wrong: %q", got)
	}
}

func TestAPIError_NumericParamsNormalizedToText(t *testing.T) {
	e := &APIError{
		Status:  400,
		Code:    "INVALID_INPUT",
		Message: "invalid input",
		Missing: []any{float64(5)},
	}
	if got := e.Error(); !strings.Contains(got, ". Missing input parameters: ['5']") {
		t.Fatalf("numeric normalization wrong: %q", got)
	}
}
