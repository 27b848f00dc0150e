// Package apierr defines the structured error taxonomy for congressd.
//
// Every failure that reaches a client is classified into exactly one Type
// at construction time and rendered through a single markdown template, so
// all tools present errors the same way. Errors are immutable after
// construction.
package apierr

import (
	"fmt"
	"sort"
	"strings"
)

// Type is the failure classification.
type Type string

const (
	TypeValidation     Type = "validation"
	TypeNotFound       Type = "not_found"
	TypeTimeout        Type = "timeout"
	TypeServerError    Type = "server_error"
	TypeAuthentication Type = "authentication"
	TypeRateLimit      Type = "rate_limit"
	TypeGeneral        Type = "general"
)

// Error is a structured, user-presentable API error.
//
// Code is machine-stable and safe to key alerts or client logic on;
// Message and Suggestions are for humans (and LLMs).
type Error struct {
	Type        Type
	Message     string
	Suggestions []string
	Code        string
	Details     map[string]any
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}

// Markdown renders the error as a markdown block: message, type and code,
// numbered suggestions, optional details table, and a closing tip. Tools
// return this text instead of a raw error string.
func (e *Error) Markdown() string {
	var b strings.Builder

	b.WriteString("## Error\n\n")
	b.WriteString(e.Message)
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "**Type:** %s  \n", e.Type)
	fmt.Fprintf(&b, "**Code:** `%s`\n", e.Code)

	if len(e.Suggestions) > 0 {
		b.WriteString("\n### Suggestions\n\n")
		for i, s := range e.Suggestions {
			fmt.Fprintf(&b, "%d. %s\n", i+1, s)
		}
	}

	if len(e.Details) > 0 {
		b.WriteString("\n### Details\n\n")
		b.WriteString("| Field | Value |\n|---|---|\n")
		keys := make([]string, 0, len(e.Details))
		for k := range e.Details {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&b, "| %s | %v |\n", k, e.Details[k])
		}
	}

	b.WriteString("\n---\n*Tip: adjust the parameters above and try again. Use server_status to check API health.*\n")
	return b.String()
}

// New constructs an Error. Prefer the typed constructors below for the
// common cases; New exists for ad hoc taxonomy errors.
func New(t Type, message, code string, suggestions ...string) *Error {
	return &Error{Type: t, Message: message, Code: code, Suggestions: suggestions}
}

// WithDetails returns a copy of the error carrying structured details.
func (e *Error) WithDetails(details map[string]any) *Error {
	clone := *e
	clone.Details = details
	return &clone
}

// FromValidation converts a failed validation into a taxonomy error.
// message and suggestions come straight from the validator.
func FromValidation(message string, suggestions []string) *Error {
	return &Error{
		Type:        TypeValidation,
		Message:     message,
		Suggestions: suggestions,
		Code:        "INVALID_PARAMETER",
	}
}

// InvalidCongress reports an out-of-range or malformed congress number.
func InvalidCongress(message string, suggestions []string) *Error {
	return &Error{
		Type:        TypeValidation,
		Message:     message,
		Suggestions: suggestions,
		Code:        "INVALID_CONGRESS_NUMBER",
	}
}

// NotFound reports a resource that definitively does not exist upstream.
func NotFound(what string) *Error {
	return &Error{
		Type:    TypeNotFound,
		Message: fmt.Sprintf("No data found for %s", what),
		Suggestions: []string{
			"Check the congress number, type, and number for typos",
			"The resource may not exist yet; recent items can lag behind floor activity",
			"Try a broader search to locate the right identifiers",
		},
		Code: "DATA_NOT_FOUND",
	}
}

// BadRequest reports a request Congress.gov rejected as malformed.
func BadRequest(what string) *Error {
	return &Error{
		Type:    TypeValidation,
		Message: fmt.Sprintf("Congress.gov rejected the request for %s", what),
		Suggestions: []string{
			"Check parameter spelling and formats",
			"Dates use YYYY-MM-DD; types use lowercase codes like hr or samdt",
		},
		Code: "BAD_REQUEST",
	}
}

// Timeout reports an upstream request that did not complete in time.
func Timeout(what string) *Error {
	return &Error{
		Type:    TypeTimeout,
		Message: fmt.Sprintf("Request for %s timed out", what),
		Suggestions: []string{
			"Try again; Congress.gov response times vary with load",
			"Narrow the query or lower the limit to reduce response size",
		},
		Code: "API_TIMEOUT",
	}
}

// ServerError reports a 5xx from Congress.gov after retries.
func ServerError(what string, status int) *Error {
	return &Error{
		Type:    TypeServerError,
		Message: fmt.Sprintf("Congress.gov returned a server error (%d) for %s", status, what),
		Suggestions: []string{
			"This is an upstream problem; retry in a few minutes",
			"Check https://api.congress.gov for service announcements",
		},
		Code:    "UPSTREAM_SERVER_ERROR",
		Details: map[string]any{"status": status},
	}
}

// Authentication reports a rejected or missing API key.
func Authentication() *Error {
	return &Error{
		Type:    TypeAuthentication,
		Message: "Congress.gov rejected the API key",
		Suggestions: []string{
			"Set CONGRESS_API_KEY to a valid key from https://api.congress.gov/sign-up",
			"Keys can take a few minutes to activate after signup",
		},
		Code: "AUTHENTICATION_FAILED",
	}
}

// RateLimited reports an upstream 429.
func RateLimited() *Error {
	return &Error{
		Type:    TypeRateLimit,
		Message: "Congress.gov rate limit reached",
		Suggestions: []string{
			"Wait a minute before retrying",
			"Congress.gov allows 5,000 requests per hour per key",
		},
		Code: "RATE_LIMIT_EXCEEDED",
	}
}

// AccessDenied reports an operation gated to a higher subscription tier.
func AccessDenied(operation string) *Error {
	return &Error{
		Type:    TypeAuthentication,
		Message: fmt.Sprintf("Operation %q requires a paid subscription", operation),
		Suggestions: []string{
			"Upgrade the server tier to access this tool",
			"Free-tier tools cover bills, amendments, committees, and members",
		},
		Code: "ACCESS_DENIED",
	}
}

// General wraps an unclassifiable failure.
func General(message string) *Error {
	return &Error{
		Type:    TypeGeneral,
		Message: message,
		Suggestions: []string{
			"Retry the request",
			"If the problem persists, check connectivity to api.congress.gov",
		},
		Code: "API_ERROR",
	}
}
