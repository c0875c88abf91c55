// Package filter decides whether a posting is relevant to the board at all,
// before any network or store work is spent on it.
package filter

import "strings"

// KeywordFilter matches jobs whose title contains any of the configured
// keywords, case-insensitive. An empty keyword list matches everything.
type KeywordFilter struct {
	keywords []string
}

// NewKeywordFilter returns a filter over the given title keywords.
func NewKeywordFilter(keywords []string) *KeywordFilter {
	lowered := make([]string, len(keywords))
	for i, k := range keywords {
		lowered[i] = strings.ToLower(k)
	}
	return &KeywordFilter{keywords: lowered}
}

// Match returns true if the title contains any keyword.
func (f *KeywordFilter) Match(title string) bool {
	if len(f.keywords) == 0 {
		return true
	}
	titleLower := strings.ToLower(title)
	for _, kw := range f.keywords {
		if strings.Contains(titleLower, kw) {
			return true
		}
	}
	return false
}
