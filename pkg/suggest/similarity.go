package suggest

import "github.com/bastiangx/wordhood/pkg/trie"

// histogram counts the letters a-z of a word. Other bytes are ignored.
type histogram [trie.AlphabetSize]int

func letterHistogram(word []byte) histogram {
	var h histogram
	for _, c := range word {
		if trie.IsLetter(c) {
			h[c-'a']++
		}
	}
	return h
}

// ratio returns Σmin/Σmax over the two histograms, 0 when both are empty.
func (h *histogram) ratio(other *histogram) float64 {
	shared, total := 0, 0
	for i := range h {
		a, b := h[i], other[i]
		if a < b {
			shared += a
			total += b
		} else {
			shared += b
			total += a
		}
	}
	if total == 0 {
		return 0
	}
	return float64(shared) / float64(total)
}

// Similarity compares the letter frequencies of a and b. It returns the
// number of letters they share divided by the letters either of them has,
// counting repeats: 1 for anagrams, 0 for disjoint letter sets.
func Similarity(a, b string) float64 {
	ha := letterHistogram([]byte(a))
	hb := letterHistogram([]byte(b))
	return ha.ratio(&hb)
}
