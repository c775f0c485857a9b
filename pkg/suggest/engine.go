package suggest

import (
	"fmt"

	"github.com/bastiangx/wordhood/internal/utils"
	"github.com/bastiangx/wordhood/pkg/topk"
	"github.com/bastiangx/wordhood/pkg/trie"
	"github.com/charmbracelet/log"
)

// Options tunes the approximate collector.
type Options struct {
	// SimilarityThreshold is the minimum letter-histogram ratio a candidate needs.
	SimilarityThreshold float64
	// MinLengthDelta and MaxLengthDelta bound len(candidate)-len(query).
	MinLengthDelta int
	MaxLengthDelta int
}

// DefaultOptions returns threshold 0.7 and length window [-1, 2].
func DefaultOptions() Options {
	return Options{
		SimilarityThreshold: 0.7,
		MinLengthDelta:      -1,
		MaxLengthDelta:      2,
	}
}

// Engine runs top-K retrieval over a trie. It only reads the trie.
type Engine struct {
	trie *trie.Trie
	opts Options
}

// NewEngine creates an engine over t. A window with MinLengthDelta greater
// than MaxLengthDelta is swapped.
func NewEngine(t *trie.Trie, opts Options) *Engine {
	if opts.MinLengthDelta > opts.MaxLengthDelta {
		opts.MinLengthDelta, opts.MaxLengthDelta = opts.MaxLengthDelta, opts.MinLengthDelta
	}
	return &Engine{trie: t, opts: opts}
}

// Options returns the engine's options.
func (e *Engine) Options() Options { return e.opts }

// Query returns up to k ranked words for word, ascending by importance.
// Candidates come from the prefix, exact-length and approximate collectors,
// in that order, keeping the first occurrence of each word.
func (e *Engine) Query(word string, k int) ([]topk.Entry, error) {
	query, err := trie.Normalize(word)
	if err != nil {
		return nil, fmt.Errorf("query %q: %w", word, err)
	}
	if k <= 0 {
		return []topk.Entry{}, nil
	}

	collected := [][]topk.Entry{
		e.CollectPrefix(query),
		e.CollectExactLength(len(query)),
		e.CollectApproximate(query),
	}

	filter := utils.NewSuggestionFilter()
	selector := topk.New(k)
	for _, batch := range collected {
		for _, c := range batch {
			if filter.ShouldInclude(c.Word) {
				selector.Insert(c.Word, c.Importance)
			}
		}
	}

	log.Debugf("query %q: prefix=%d exact=%d approx=%d distinct=%d",
		query, len(collected[0]), len(collected[1]), len(collected[2]), filter.Seen())
	return selector.Drain(), nil
}

// CollectPrefix returns every ranked word starting with prefix, in key order.
func (e *Engine) CollectPrefix(prefix string) []topk.Entry {
	start, ok := e.trie.Lookup(prefix)
	if !ok {
		return nil
	}
	var out []topk.Entry
	trie.WalkFrom(start, []byte(prefix), func(path []byte, n *trie.Node) bool {
		out = appendRanked(out, path, n)
		return true
	})
	return out
}

// CollectExactLength returns every ranked word of exactly length letters.
func (e *Engine) CollectExactLength(length int) []topk.Entry {
	var out []topk.Entry
	e.trie.Walk(func(path []byte, n *trie.Node) bool {
		if len(path) < length {
			return true
		}
		out = appendRanked(out, path, n)
		return false
	})
	return out
}

// CollectApproximate returns every ranked word whose length lies in the
// configured window around len(query) and whose letters are similar enough.
func (e *Engine) CollectApproximate(query string) []topk.Entry {
	minLen := len(query) + e.opts.MinLengthDelta
	maxLen := len(query) + e.opts.MaxLengthDelta
	want := letterHistogram([]byte(query))

	var out []topk.Entry
	e.trie.Walk(func(path []byte, n *trie.Node) bool {
		if len(path) > maxLen {
			return false
		}
		if len(path) < minLen || !ranked(n) {
			return true
		}
		h := letterHistogram(path)
		if h.ratio(&want) >= e.opts.SimilarityThreshold {
			out = appendRanked(out, path, n)
		}
		return true
	})
	return out
}

func ranked(n *trie.Node) bool {
	return n.Terminal() && n.Importance() > 0
}

func appendRanked(out []topk.Entry, path []byte, n *trie.Node) []topk.Entry {
	if !ranked(n) {
		return out
	}
	return append(out, topk.Entry{Word: string(path), Importance: n.Importance()})
}
