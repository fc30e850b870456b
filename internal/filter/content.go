package filter

import (
	"regexp"
	"strings"
)

// An opening script or iframe tag is enough; browsers run an unclosed one.
var harmfulPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)<\s*script\b`),
	regexp.MustCompile(`(?i)javascript:`),
	regexp.MustCompile(`(?i)on\w+\s*=`),
	regexp.MustCompile(`(?i)<\s*iframe\b`),
}

// IsHarmful reports whether s contains markup or script fragments that must
// not be echoed back to a browser.
func IsHarmful(s string) bool {
	for _, p := range harmfulPatterns {
		if p.MatchString(s) {
			return true
		}
	}
	return false
}

var sanitizer = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#x27;",
	"/", "&#x2F;",
)

// Sanitize escapes the characters that are significant in HTML.
func Sanitize(s string) string {
	return sanitizer.Replace(s)
}
