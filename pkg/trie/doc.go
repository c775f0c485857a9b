/*
Package trie implements a lowercase prefix tree whose branching is a small
Robin Hood hash table per node instead of a fixed 26-slot array.

Each Node owns one ChildTable keyed by a letter in 'a'..'z'. Tables start
with 5 slots and grow along the schedule 5, 11, 19, 29 once they are more
than 90% full, so sparse nodes stay small while dense ones keep lookups
short. Lookups stop after MaxProbe steps: no entry in a table is ever further
from its home slot than the worst displacement recorded for that table.

	t := trie.New()
	t.Insert("apple")
	t.ImportanceUpdate("apple", "apple")
	t.GetImportance("apple") // 2

The Trie is not safe for concurrent use; callers sharing one across
goroutines must serialize access themselves.
*/
package trie

import "errors"

var (
	// ErrInvalidCharacter is returned when a byte outside 'a'..'z' reaches the trie.
	ErrInvalidCharacter = errors.New("trie: character outside a-z")

	// ErrCapacityExhausted is returned when a ChildTable cannot grow any further.
	ErrCapacityExhausted = errors.New("trie: child table capacity exhausted")

	// ErrNilChild is returned when a ChildTable is asked to store a nil node.
	ErrNilChild = errors.New("trie: nil child node")
)

// AlphabetSize is the number of distinct keys a ChildTable can hold.
const AlphabetSize = 26

// IsLetter reports whether b is a key the trie accepts.
func IsLetter(b byte) bool {
	return b >= 'a' && b <= 'z'
}

// Normalize lowercases ASCII letters in word and checks that every byte is
// then in 'a'..'z'.
func Normalize(word string) (string, error) {
	buf := []byte(word)
	for i, b := range buf {
		if b >= 'A' && b <= 'Z' {
			b += 'a' - 'A'
			buf[i] = b
		}
		if !IsLetter(b) {
			return "", ErrInvalidCharacter
		}
	}
	return string(buf), nil
}
