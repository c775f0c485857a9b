// Package topk keeps the K highest-importance distinct words of a candidate
// stream in a bounded min-heap.
package topk

import "container/heap"

// Entry is a word with its importance.
type Entry struct {
	Word       string
	Importance int
}

// entries implements heap.Interface ordered by ascending importance.
type entries []Entry

func (h entries) Len() int           { return len(h) }
func (h entries) Less(i, j int) bool { return h[i].Importance < h[j].Importance }
func (h entries) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *entries) Push(x any)        { *h = append(*h, x.(Entry)) }
func (h *entries) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}

// Selector retains at most k distinct words, evicting the least important
// one when a strictly more important word arrives. The zero value is not
// usable; create one with New.
type Selector struct {
	k       int
	heap    entries
	members map[string]struct{}
}

// New returns a selector holding at most k words. A k of zero or less gives
// a selector that accepts nothing.
func New(k int) *Selector {
	if k < 0 {
		k = 0
	}
	return &Selector{
		k:       k,
		heap:    make(entries, 0, k),
		members: make(map[string]struct{}, k),
	}
}

// Len returns the number of retained words.
func (s *Selector) Len() int { return len(s.heap) }

// Cap returns k.
func (s *Selector) Cap() int { return s.k }

// Min returns the least important retained entry.
func (s *Selector) Min() (Entry, bool) {
	if len(s.heap) == 0 {
		return Entry{}, false
	}
	return s.heap[0], true
}

// Contains reports whether word is currently retained.
func (s *Selector) Contains(word string) bool {
	_, ok := s.members[word]
	return ok
}

// Insert offers word to the selector and reports whether it was kept.
// Words already retained are rejected. Once full, a word replaces the
// current minimum only if its importance is strictly greater.
func (s *Selector) Insert(word string, importance int) bool {
	if s.k == 0 || s.Contains(word) {
		return false
	}

	if len(s.heap) < s.k {
		heap.Push(&s.heap, Entry{Word: word, Importance: importance})
		s.members[word] = struct{}{}
		return true
	}

	if importance <= s.heap[0].Importance {
		return false
	}
	delete(s.members, s.heap[0].Word)
	s.heap[0] = Entry{Word: word, Importance: importance}
	s.members[word] = struct{}{}
	heap.Fix(&s.heap, 0)
	return true
}

// Drain removes every entry, returning them ascending by importance. Ties
// come out in heap order. The selector is empty afterwards.
func (s *Selector) Drain() []Entry {
	out := make([]Entry, 0, len(s.heap))
	for len(s.heap) > 0 {
		e := heap.Pop(&s.heap).(Entry)
		delete(s.members, e.Word)
		out = append(out, e)
	}
	return out
}
