package utils

// IsAlphabetic reports whether s is non-empty and made only of ASCII letters.
func IsAlphabetic(s string) bool {
	if len(s) == 0 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isASCIILetter(s[i]) {
			return false
		}
	}
	return true
}

// IsValidInput checks if input should be processed for suggestions.
// Returns false for anything that is not plain ASCII letters and for
// repetitive strings like "dddd".
func IsValidInput(s string) bool {
	if !IsAlphabetic(s) {
		return false
	}

	// Reject repetitive strings like "dddd", "www", etc.
	if IsRepetitive(s) {
		return false
	}

	return true
}

// IsRepetitive checks if a string consists of repetitive characters
// Simple version that checks for repeated characters (e.g., "aaa", "bbb")
func IsRepetitive(s string) bool {
	if len(s) <= 2 {
		return false
	}

	// Check for simple repetition (same character repeated 3+ times)
	firstChar := s[0]
	for i := 1; i < len(s); i++ {
		if s[i] != firstChar {
			return false
		}
	}
	return true
}
