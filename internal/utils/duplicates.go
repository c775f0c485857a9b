package utils

import (
	"strings"
)

// SuggestionFilter drops repeated words from a candidate stream. The first
// occurrence of a word wins.
type SuggestionFilter struct {
	seenWords map[string]bool
}

// NewSuggestionFilter creates a filter. Any exclude words are treated as
// already seen and will never be let through.
func NewSuggestionFilter(exclude ...string) *SuggestionFilter {
	seenWords := make(map[string]bool, len(exclude))
	for _, w := range exclude {
		seenWords[strings.ToLower(w)] = true
	}
	return &SuggestionFilter{seenWords: seenWords}
}

// ShouldInclude checks if a word should be included in results (not a duplicate)
// Returns true if the word should be included, false if it's a duplicate
func (f *SuggestionFilter) ShouldInclude(word string) bool {
	lowerWord := strings.ToLower(word)
	if f.seenWords[lowerWord] {
		return false
	}
	f.seenWords[lowerWord] = true
	return true
}

// Seen returns how many distinct words the filter has recorded.
func (f *SuggestionFilter) Seen() int {
	return len(f.seenWords)
}
