package congress

import (
	"fmt"
	"time"
)

// StatusError reports a non-2xx response from Congress.gov. It carries the
// real status code so retry and classification decisions never have to
// parse message text.
type StatusError struct {
	Code        int
	Endpoint    string
	Body        string
	RequestTime time.Duration
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("congress.gov returned %d for %s", e.Code, e.Endpoint)
}

// Definitive reports whether the failure is final: the request is
// malformed, unauthorized, or the resource simply does not exist. Retrying
// these wastes time and upstream quota.
func (e *StatusError) Definitive() bool {
	switch e.Code {
	case 400, 401, 403, 404:
		return true
	default:
		return false
	}
}

// DecodeError reports a 2xx response whose body was not valid JSON.
// Congress.gov occasionally serves HTML error pages with a 200 status.
type DecodeError struct {
	Endpoint string
	Err      error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("congress.gov returned a non-JSON response for %s: %v", e.Endpoint, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
