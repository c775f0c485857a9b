package trie

import (
	"fmt"

	"github.com/charmbracelet/log"
)

// Trie owns the root node of the tree.
type Trie struct {
	root *Node
}

// New creates an empty trie.
func New() *Trie {
	return &Trie{root: NewNode()}
}

// Root returns the root node.
func (t *Trie) Root() *Node { return t.root }

// Insert adds word to the trie. The word is lowercased first; any byte
// outside 'a'..'z' rejects the whole word before the tree is touched.
// added is false when the word was already present or empty.
func (t *Trie) Insert(word string) (added bool, err error) {
	if word == "" {
		return false, nil
	}
	lower, err := Normalize(word)
	if err != nil {
		return false, fmt.Errorf("insert %q: %w", word, err)
	}

	node := t.root
	for i := 0; i < len(lower); i++ {
		c := lower[i]
		child, ok := node.children.Search(c)
		if !ok {
			child = NewNode()
			if err := node.children.Insert(c, child); err != nil {
				return false, fmt.Errorf("insert %q at %d: %w", word, i, err)
			}
		}
		node = child
	}

	if node.terminalLength == len(lower) {
		return false, nil
	}
	node.terminalLength = len(lower)
	return true, nil
}

// Lookup returns the node at the end of path. The root is returned for an
// empty path.
func (t *Trie) Lookup(path string) (*Node, bool) {
	lower, err := Normalize(path)
	if err != nil {
		return nil, false
	}
	node := t.root
	for i := 0; i < len(lower); i++ {
		child, ok := node.children.Search(lower[i])
		if !ok {
			return nil, false
		}
		node = child
	}
	return node, true
}

func (t *Trie) terminal(word string) (*Node, bool) {
	if word == "" {
		return nil, false
	}
	node, ok := t.Lookup(word)
	if !ok || !node.Terminal() {
		return nil, false
	}
	return node, true
}

// ExactSearch reports whether word was inserted.
func (t *Trie) ExactSearch(word string) bool {
	_, ok := t.terminal(word)
	return ok
}

// GetImportance returns the importance of word, or 0 when it is not a word.
func (t *Trie) GetImportance(word string) int {
	node, ok := t.terminal(word)
	if !ok {
		return 0
	}
	return node.importance
}

// ImportanceUpdate increments the importance of every word in words that is
// present in the trie. Unknown words are skipped. It returns the number of
// increments applied.
func (t *Trie) ImportanceUpdate(words ...string) int {
	updated := 0
	for _, w := range words {
		node, ok := t.terminal(w)
		if !ok {
			continue
		}
		node.importance++
		updated++
	}
	if skipped := len(words) - updated; skipped > 0 {
		log.Debugf("importance update: %d applied, %d skipped", updated, skipped)
	}
	return updated
}

// WalkFunc is called for every node during Walk with the path leading to it.
// Returning false skips the node's subtree.
type WalkFunc func(path []byte, node *Node) bool

// Walk visits the tree depth first, children in key order, starting at the
// root with an empty path. The path slice is reused between calls and must
// be copied to be retained.
func (t *Trie) Walk(fn WalkFunc) {
	WalkFrom(t.root, nil, fn)
}

// WalkFrom is Walk starting at node with the given path prefix.
func WalkFrom(node *Node, prefix []byte, fn WalkFunc) {
	path := make([]byte, len(prefix), len(prefix)+16)
	copy(path, prefix)
	walk(node, path, fn)
}

func walk(node *Node, path []byte, fn WalkFunc) {
	if !fn(path, node) {
		return
	}
	for _, e := range node.children.Children() {
		walk(e.Child, append(path, e.Key), fn)
	}
}
