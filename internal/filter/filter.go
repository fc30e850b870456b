package filter

import "strings"

// KeywordMatcher assigns a label to free text by case-insensitive substring
// matching. Groups are scanned in the order they were added and the first
// group with a matching keyword wins.
type KeywordMatcher struct {
	groups []keywordGroup
}

type keywordGroup struct {
	label    string
	keywords []string
}

// NewKeywordMatcher returns an empty matcher.
func NewKeywordMatcher() *KeywordMatcher {
	return &KeywordMatcher{}
}

// Add appends a labelled keyword group. Keywords are lower-cased once here.
func (m *KeywordMatcher) Add(label string, keywords ...string) *KeywordMatcher {
	lowered := make([]string, len(keywords))
	for i, kw := range keywords {
		lowered[i] = strings.ToLower(kw)
	}
	m.groups = append(m.groups, keywordGroup{label: label, keywords: lowered})
	return m
}

// Match returns the label of the first group with a keyword contained in
// text. ok is false when nothing matched.
func (m *KeywordMatcher) Match(text string) (label string, ok bool) {
	lower := strings.ToLower(text)
	for _, g := range m.groups {
		if ContainsAny(lower, g.keywords) {
			return g.label, true
		}
	}
	return "", false
}

// Labels returns the group labels in scan order.
func (m *KeywordMatcher) Labels() []string {
	out := make([]string, len(m.groups))
	for i, g := range m.groups {
		out[i] = g.label
	}
	return out
}

// ContainsAny reports whether text contains any of the keywords. Both sides
// are compared as given; callers lower-case when they want case-insensitivity.
func ContainsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
