// Package suggest is the retrieval layer: it collects candidate words from a
// trie by prefix, length and letter similarity and ranks them by importance.
package suggest

// ICompleter defines the interface for word completion engines
type ICompleter interface {
	// Complete returns up to limit suggestions, most important first
	Complete(prefix string, limit int) []Suggestion

	// AddWord inserts a word and raises its importance by importance
	AddWord(word string, importance int) error

	// Stats returns statistics about the loaded dictionary
	Stats() map[string]int
}
