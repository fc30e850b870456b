package model

import (
	"fmt"
	"time"
)

// HTTPError carries the status of a failed upstream call so callers can
// decide whether it is worth retrying.
type HTTPError struct {
	StatusCode int
	RetryAfter time.Duration // from Retry-After header, zero if absent
	Body       string        // truncated response body, for logs
	Err        error
}

func (e *HTTPError) Error() string {
	switch {
	case e.Err != nil:
		return fmt.Sprintf("upstream HTTP %d: %v", e.StatusCode, e.Err)
	case e.Body != "":
		return fmt.Sprintf("upstream HTTP %d: %s", e.StatusCode, e.Body)
	default:
		return fmt.Sprintf("upstream HTTP %d", e.StatusCode)
	}
}

func (e *HTTPError) Unwrap() error {
	return e.Err
}

// Temporary reports whether the status is one a retry can fix (429 and 5xx).
func (e *HTTPError) Temporary() bool {
	return e.StatusCode == 429 || e.StatusCode >= 500
}
