package utils

import (
	"strconv"
	"strings"
)

// CapitalPositions marks which bytes of s are ASCII capitals.
func CapitalPositions(s string) []bool {
	positions := make([]bool, len(s))
	for i := 0; i < len(s); i++ {
		positions[i] = s[i] >= 'A' && s[i] <= 'Z'
	}
	return positions
}

// FormatWithCommas formats an integer with comma separators
func FormatWithCommas(n int) string {
	if n < 0 {
		return "-" + FormatWithCommas(-n)
	}
	str := strconv.Itoa(n)
	if len(str) <= 3 {
		return str
	}

	var b strings.Builder
	for i, char := range str {
		if i > 0 && (len(str)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(char)
	}
	return b.String()
}
