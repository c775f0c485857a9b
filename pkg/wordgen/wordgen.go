// Package wordgen produces synthetic lowercase word lists for benchmarks.
//
// Word lengths follow a log-normal distribution whose parameters are drawn
// per word, giving a long tail of long words over a body of short ones.
package wordgen

import (
	"bufio"
	"io"
	"math"
	"math/rand/v2"

	"github.com/charmbracelet/log"
	"github.com/tchap/go-patricia/v2/patricia"
)

const alphabet = "abcdefghijklmnopqrstuvwxyz"

// Options controls the length distribution.
type Options struct {
	MuMin, MuMax       float64
	SigmaMin, SigmaMax float64
	MinLen, MaxLen     int
}

// DefaultOptions gives mean log-lengths in [1.0, 3.4], spreads in
// [0.2, 0.6] and lengths clamped to [3, 30].
func DefaultOptions() Options {
	return Options{
		MuMin:    1.0,
		MuMax:    3.4,
		SigmaMin: 0.2,
		SigmaMax: 0.6,
		MinLen:   3,
		MaxLen:   30,
	}
}

// Generator is a seeded word source. Equal seeds give equal output.
type Generator struct {
	r    *rand.Rand
	opts Options
}

// New creates a generator.
func New(seed uint64, opts Options) *Generator {
	if opts.MinLen < 1 {
		opts.MinLen = 1
	}
	if opts.MaxLen < opts.MinLen {
		opts.MaxLen = opts.MinLen
	}
	return &Generator{
		r:    rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		opts: opts,
	}
}

// WordOfLength returns n random letters.
func (g *Generator) WordOfLength(n int) string {
	buf := make([]byte, n)
	for i := range buf {
		buf[i] = alphabet[g.r.IntN(len(alphabet))]
	}
	return string(buf)
}

func (g *Generator) length() int {
	mu := g.opts.MuMin + (g.opts.MuMax-g.opts.MuMin)*g.r.Float64()
	sigma := g.opts.SigmaMin + (g.opts.SigmaMax-g.opts.SigmaMin)*g.r.Float64()
	n := int(math.Round(math.Exp(mu + sigma*g.r.NormFloat64())))
	return min(g.opts.MaxLen, max(g.opts.MinLen, n))
}

// Word returns one word with a log-normally distributed length.
func (g *Generator) Word() string {
	return g.WordOfLength(g.length())
}

// Generate returns n words, possibly with repeats.
func (g *Generator) Generate(n int) []string {
	words := make([]string, n)
	for i := range words {
		words[i] = g.Word()
	}
	return words
}

// GenerateUnique returns up to n distinct words in generation order. It
// stops early if too many draws in a row are repeats, which only happens
// when the length range is tiny.
func (g *Generator) GenerateUnique(n int) []string {
	seen := patricia.NewTrie()
	words := make([]string, 0, n)
	misses := 0
	for len(words) < n && misses < 1000 {
		w := g.Word()
		if !seen.Insert(patricia.Prefix(w), struct{}{}) {
			misses++
			continue
		}
		misses = 0
		words = append(words, w)
	}
	if len(words) < n {
		log.Warnf("wordgen: only %d of %d distinct words generated", len(words), n)
	}
	return words
}

// Write writes n words to w, one per line, and returns the bytes written.
func (g *Generator) Write(w io.Writer, n int) (int, error) {
	bw := bufio.NewWriter(w)
	written := 0
	for i := 0; i < n; i++ {
		c, err := bw.WriteString(g.Word())
		written += c
		if err != nil {
			return written, err
		}
		if err := bw.WriteByte('\n'); err != nil {
			return written, err
		}
		written++
	}
	return written, bw.Flush()
}
