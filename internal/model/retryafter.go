package model

import (
	"strconv"
	"strings"
	"time"
)

// ParseRetryAfter parses a Retry-After header value into a duration.
// Supports the seconds format (e.g. "120"). Returns zero if absent or unparseable.
func ParseRetryAfter(value string) time.Duration {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0
	}
	seconds, err := strconv.Atoi(value)
	if err != nil || seconds < 0 {
		return 0
	}
	return time.Duration(seconds) * time.Second
}
