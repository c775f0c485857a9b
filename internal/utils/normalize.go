package utils

import "strings"

// CreateRankList creates a slice of ranks based on position.
// The rank starts at 1 for the first item and increments for subsequent items.
// Useful for ranking items that are already sorted.
func CreateRankList(count int) []uint16 {
	if count <= 0 {
		return []uint16{}
	}
	ranks := make([]uint16, count)
	for i := 0; i < count; i++ {
		ranks[i] = uint16(i + 1)
	}
	return ranks
}

func isASCIILetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// NormalizeToken cleans one whitespace-separated token of running text.
// Tokens with punctuation between letters ("e-mail", "don't") are dropped,
// trailing punctuation is trimmed ("BS!!!" becomes "bs") and anything that
// is not then purely alphabetic is dropped. The result is lowercase.
func NormalizeToken(raw string) (string, bool) {
	end := len(raw)
	for end > 0 && !isASCIILetter(raw[end-1]) {
		end--
	}
	token := raw[:end]
	if token == "" {
		return "", false
	}
	for i := 0; i < len(token); i++ {
		if !isASCIILetter(token[i]) {
			return "", false
		}
	}
	return strings.ToLower(token), true
}
