package wordgen

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateLengthsAndAlphabet(t *testing.T) {
	g := New(42, DefaultOptions())
	words := g.Generate(2000)
	require.Len(t, words, 2000)

	for _, w := range words {
		require.GreaterOrEqual(t, len(w), 3, w)
		require.LessOrEqual(t, len(w), 30, w)
		for i := 0; i < len(w); i++ {
			require.True(t, w[i] >= 'a' && w[i] <= 'z', w)
		}
	}
}

func TestGenerateDeterministic(t *testing.T) {
	a := New(7, DefaultOptions()).Generate(50)
	b := New(7, DefaultOptions()).Generate(50)
	c := New(8, DefaultOptions()).Generate(50)

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}

func TestGenerateUnique(t *testing.T) {
	words := New(1, DefaultOptions()).GenerateUnique(500)
	require.Len(t, words, 500)

	seen := make(map[string]bool, len(words))
	for _, w := range words {
		assert.False(t, seen[w], "duplicate %q", w)
		seen[w] = true
	}
}

func TestGenerateUniqueStopsOnTinySpace(t *testing.T) {
	opts := DefaultOptions()
	opts.MinLen, opts.MaxLen = 1, 1

	words := New(3, opts).GenerateUnique(100)
	assert.LessOrEqual(t, len(words), 26)
	assert.NotEmpty(t, words)
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	n, err := New(9, DefaultOptions()).Write(&buf, 25)
	require.NoError(t, err)
	assert.Equal(t, buf.Len(), n)

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	assert.Len(t, lines, 25)
	assert.Equal(t, New(9, DefaultOptions()).Generate(25), lines)
}
