package trie

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTrie(t *testing.T, words ...string) *Trie {
	t.Helper()
	tr := New()
	for _, w := range words {
		_, err := tr.Insert(w)
		require.NoError(t, err)
	}
	return tr
}

func TestInsertAndExactSearch(t *testing.T) {
	words := []string{"apple", "application", "apply", "a", "banana", "band", "ban"}
	tr := newTrie(t, words...)

	for _, w := range words {
		assert.True(t, tr.ExactSearch(w), w)
	}
	for _, w := range []string{"ap", "appl", "bananas", "b", "zebra", ""} {
		assert.False(t, tr.ExactSearch(w), w)
	}
}

func TestInsertFoldsCase(t *testing.T) {
	tr := newTrie(t, "Hello")

	assert.True(t, tr.ExactSearch("hello"))
	assert.True(t, tr.ExactSearch("HELLO"))
}

func TestInsertIdempotent(t *testing.T) {
	tr := New()

	added, err := tr.Insert("word")
	require.NoError(t, err)
	assert.True(t, added)

	before := tr.EstimateMemory()
	for i := 0; i < 5; i++ {
		added, err = tr.Insert("word")
		require.NoError(t, err)
		assert.False(t, added)
	}

	assert.True(t, tr.ExactSearch("word"))
	assert.Zero(t, tr.GetImportance("word"))
	assert.Equal(t, before, tr.EstimateMemory())
	assert.Equal(t, 1, tr.Stats().Words)
}

func TestInsertRejectsInvalidWord(t *testing.T) {
	tr := New()
	baseline := tr.EstimateMemory()

	for _, w := range []string{"ab1", "hello world", "naïve", "x-ray", "don't"} {
		added, err := tr.Insert(w)
		assert.ErrorIs(t, err, ErrInvalidCharacter, w)
		assert.False(t, added)
	}

	assert.Equal(t, baseline, tr.EstimateMemory(), "rejected words must not create nodes")
}

func TestInsertEmptyIsNoop(t *testing.T) {
	tr := New()

	added, err := tr.Insert("")
	require.NoError(t, err)
	assert.False(t, added)
	assert.False(t, tr.Root().Terminal())
}

func TestTerminalLength(t *testing.T) {
	tr := newTrie(t, "tree", "trie")

	node, ok := tr.Lookup("trie")
	require.True(t, ok)
	assert.Equal(t, 4, node.TerminalLength())

	node, ok = tr.Lookup("tr")
	require.True(t, ok)
	assert.False(t, node.Terminal())

	_, ok = tr.Lookup("tx")
	assert.False(t, ok)

	root, ok := tr.Lookup("")
	require.True(t, ok)
	assert.Same(t, tr.Root(), root)
}

func TestImportanceUpdate(t *testing.T) {
	tr := newTrie(t, "apple", "apply")

	n := tr.ImportanceUpdate("apple", "apple", "apply", "app", "missing", "Apple", "b4d")
	assert.Equal(t, 4, n)

	assert.Equal(t, 3, tr.GetImportance("apple"))
	assert.Equal(t, 1, tr.GetImportance("apply"))
	assert.Zero(t, tr.GetImportance("app"), "prefix of a word is not a word")
	assert.Zero(t, tr.GetImportance("missing"))
	assert.False(t, tr.ExactSearch("missing"), "update never inserts")
}

func TestLookupDoesNotMutateImportance(t *testing.T) {
	tr := newTrie(t, "quiet")

	for i := 0; i < 3; i++ {
		tr.ExactSearch("quiet")
		tr.GetImportance("quiet")
		tr.Lookup("quiet")
	}
	assert.Zero(t, tr.GetImportance("quiet"))
}

func TestWalkOrderAndPrune(t *testing.T) {
	tr := newTrie(t, "cab", "abc", "b", "abd", "ca")

	var words []string
	tr.Walk(func(path []byte, n *Node) bool {
		if n.Terminal() {
			words = append(words, string(path))
		}
		return true
	})
	assert.Equal(t, []string{"abc", "abd", "b", "ca", "cab"}, words)

	words = words[:0]
	tr.Walk(func(path []byte, n *Node) bool {
		if len(path) == 1 && path[0] == 'a' {
			return false
		}
		if n.Terminal() {
			words = append(words, string(path))
		}
		return true
	})
	assert.Equal(t, []string{"b", "ca", "cab"}, words)
}

func TestDenseNodeKeepsAllChildren(t *testing.T) {
	tr := New()
	alphabet := "abcdefghijklmnopqrstuvwxyz"
	for i := 0; i < len(alphabet); i++ {
		_, err := tr.Insert("x" + string(alphabet[i]))
		require.NoError(t, err)
	}

	node, ok := tr.Lookup("x")
	require.True(t, ok)
	assert.Equal(t, 26, node.Children().Len())
	assert.Equal(t, 29, node.Children().Cap())
	for i := 0; i < len(alphabet); i++ {
		assert.True(t, tr.ExactSearch("x"+string(alphabet[i])))
	}
}

func TestEstimateMemory(t *testing.T) {
	tr := New()
	assert.Equal(t, 80, tr.EstimateMemory(), "root node with an empty 5-slot table")

	_, err := tr.Insert("ab")
	require.NoError(t, err)
	assert.Equal(t, 3*80, tr.EstimateMemory())

	// six children push the root table to 11 slots
	for _, w := range []string{"b", "c", "d", "e", "f"} {
		_, err := tr.Insert(w)
		require.NoError(t, err)
	}
	want := (8 + 12 + 11*12) + 7*80
	assert.Equal(t, want, tr.EstimateMemory())

	s := tr.Stats()
	assert.Equal(t, 8, s.Nodes)
	assert.Equal(t, 6, s.Words)
	assert.Equal(t, 7, s.Children)
	assert.Equal(t, want, s.Bytes)
}

func TestRoundTripManyWords(t *testing.T) {
	tr := New()
	var inserted []string
	for _, w := range strings.Fields("the quick brown fox jumps over lazy dogs while zebras quietly judge vexed wizards boxing") {
		_, err := tr.Insert(w)
		require.NoError(t, err)
		inserted = append(inserted, w)
	}
	for _, w := range inserted {
		require.True(t, tr.ExactSearch(w), w)
	}
	assert.Equal(t, len(inserted), tr.Stats().Words)
}

func TestNormalize(t *testing.T) {
	got, err := Normalize("MiXeD")
	require.NoError(t, err)
	assert.Equal(t, "mixed", got)

	_, err = Normalize("tab\t")
	assert.ErrorIs(t, err, ErrInvalidCharacter)
}
