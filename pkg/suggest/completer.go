package suggest

import (
	"github.com/bastiangx/wordhood/internal/utils"
	"github.com/bastiangx/wordhood/pkg/trie"
	"github.com/charmbracelet/log"
)

// Suggestion is a ranked word as shown to users.
type Suggestion struct {
	Word       string
	Importance int
}

// Completer wraps a trie and its engine behind ICompleter.
// Not safe for concurrent use.
type Completer struct {
	trie   *trie.Trie
	engine *Engine
}

// NewCompleter returns a completer over an empty trie.
func NewCompleter(opts Options) *Completer {
	return NewCompleterFor(trie.New(), opts)
}

// NewCompleterFor returns a completer over an existing trie.
func NewCompleterFor(t *trie.Trie, opts Options) *Completer {
	return &Completer{
		trie:   t,
		engine: NewEngine(t, opts),
	}
}

// Trie returns the underlying trie.
func (c *Completer) Trie() *trie.Trie { return c.trie }

// Engine returns the query engine.
func (c *Completer) Engine() *Engine { return c.engine }

// AddWord inserts word and applies importance updates to it.
func (c *Completer) AddWord(word string, importance int) error {
	if _, err := c.trie.Insert(word); err != nil {
		return err
	}
	for i := 0; i < importance; i++ {
		c.trie.ImportanceUpdate(word)
	}
	return nil
}

// Complete returns up to limit suggestions for prefix, most important first.
// Capital letters typed in prefix are carried over to the suggestions.
func (c *Completer) Complete(prefix string, limit int) []Suggestion {
	entries, err := c.engine.Query(prefix, limit)
	if err != nil {
		log.Debugf("complete: %v", err)
		return nil
	}

	capitalPositions := utils.CapitalPositions(prefix)

	suggestions := make([]Suggestion, len(entries))
	for i, e := range entries {
		// entries are ascending, suggestions are not
		suggestions[len(entries)-1-i] = Suggestion{
			Word:       ApplyCapitalization(e.Word, capitalPositions),
			Importance: e.Importance,
		}
	}
	return suggestions
}

// Stats reports the trie shape.
func (c *Completer) Stats() map[string]int {
	s := c.trie.Stats()
	return map[string]int{
		"totalWords": s.Words,
		"nodes":      s.Nodes,
		"slots":      s.Slots,
		"maxProbe":   s.MaxProbe,
		"memBytes":   s.Bytes,
	}
}

// ApplyCapitalization uppercases the letters of word at the positions
// marked in capitalPositions.
func ApplyCapitalization(word string, capitalPositions []bool) string {
	if len(capitalPositions) == 0 {
		return word
	}

	wordRunes := []rune(word)
	for i := 0; i < len(wordRunes) && i < len(capitalPositions); i++ {
		if capitalPositions[i] && wordRunes[i] >= 'a' && wordRunes[i] <= 'z' {
			wordRunes[i] = wordRunes[i] - 'a' + 'A'
		}
	}
	return string(wordRunes)
}
