// Package dictionary feeds word lists and usage text into a trie.
//
// Word lists come as plain text, one word per line, or as the chunked binary
// files (dict_0001.bin, dict_0002.bin, ...) produced by WriteChunk. Usage
// text is free-form prose whose words raise the importance of dictionary
// entries they match.
package dictionary

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/bastiangx/wordhood/internal/utils"
	"github.com/bastiangx/wordhood/pkg/trie"
	"github.com/charmbracelet/log"
)

// Loader inserts words into a trie and applies usage counts to it.
// Not safe for concurrent use.
type Loader struct {
	trie *trie.Trie
}

// LoadStats counts what happened to each word of a load.
type LoadStats struct {
	Lines      int
	Inserted   int
	Duplicates int
	Rejected   int
}

func (s *LoadStats) add(o LoadStats) {
	s.Lines += o.Lines
	s.Inserted += o.Inserted
	s.Duplicates += o.Duplicates
	s.Rejected += o.Rejected
}

// UsageStats counts the tokens of a usage text.
type UsageStats struct {
	Tokens  int // whitespace-separated tokens read
	Kept    int // tokens surviving normalization
	Applied int // importance increments
}

// ChunkInfo contains metadata about a chunk file
type ChunkInfo struct {
	ID        int
	Filename  string
	WordCount int
}

// NewLoader creates a loader writing into t.
func NewLoader(t *trie.Trie) *Loader {
	return &Loader{trie: t}
}

// insert adds one raw line to the trie and records the outcome.
func (l *Loader) insert(raw string, stats *LoadStats) error {
	stats.Lines++
	word := strings.ToLower(strings.TrimSpace(raw))
	if word == "" {
		return nil
	}
	added, err := l.trie.Insert(word)
	switch {
	case errors.Is(err, trie.ErrInvalidCharacter):
		stats.Rejected++
		log.Debugf("Skipping %q: %v", word, err)
		return nil
	case err != nil:
		return err
	case added:
		stats.Inserted++
	default:
		stats.Duplicates++
	}
	return nil
}

// LoadText reads one word per line. Blank lines are ignored and words with
// characters outside a-z are counted as rejected.
func (l *Loader) LoadText(r io.Reader) (LoadStats, error) {
	var stats LoadStats
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if err := l.insert(scanner.Text(), &stats); err != nil {
			return stats, fmt.Errorf("line %d: %w", stats.Lines, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return stats, fmt.Errorf("failed to read word list: %w", err)
	}
	return stats, nil
}

// LoadFile loads a text or chunk file, picking the reader by format.
func (l *Loader) LoadFile(path string) (LoadStats, error) {
	format, err := DetectFileFormat(path)
	if err != nil {
		return LoadStats{}, err
	}

	switch format {
	case FormatChunk:
		return l.loadChunk(path)
	default:
		file, err := os.Open(path)
		if err != nil {
			return LoadStats{}, fmt.Errorf("failed to open word list %s: %w", path, err)
		}
		defer file.Close()

		stats, err := l.LoadText(file)
		if err != nil {
			return stats, fmt.Errorf("%s: %w", path, err)
		}
		log.Debugf("Loaded %s: %d inserted, %d duplicates, %d rejected",
			path, stats.Inserted, stats.Duplicates, stats.Rejected)
		return stats, nil
	}
}

// GetAvailableChunks scans dir for chunk files, ordered by ID.
func GetAvailableChunks(dir string) ([]ChunkInfo, error) {
	pattern := filepath.Join(dir, "dict_*.bin")
	files, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to scan for chunk files: %w", err)
	}

	var chunks []ChunkInfo
	for _, file := range files {
		idStr := strings.TrimSuffix(strings.TrimPrefix(filepath.Base(file), "dict_"), ".bin")
		chunkID, err := strconv.Atoi(idStr)
		if err != nil {
			continue
		}
		wordCount, err := chunkWordCount(file)
		if err != nil {
			log.Warnf("Failed to get word count for chunk %s: %v", file, err)
		}
		chunks = append(chunks, ChunkInfo{
			ID:        chunkID,
			Filename:  file,
			WordCount: wordCount,
		})
	}

	sort.Slice(chunks, func(i, j int) bool {
		return chunks[i].ID < chunks[j].ID
	})
	return chunks, nil
}

// chunkWordCount reads the word count from a chunk file's header
func chunkWordCount(filename string) (int, error) {
	file, err := os.Open(filename)
	if err != nil {
		return 0, err
	}
	defer file.Close()

	var wordCount int32
	if err := binary.Read(file, binary.LittleEndian, &wordCount); err != nil {
		return 0, err
	}
	return int(wordCount), nil
}

// LoadDir loads every chunk file in dir in ID order.
func (l *Loader) LoadDir(dir string) (LoadStats, error) {
	chunks, err := GetAvailableChunks(dir)
	if err != nil {
		return LoadStats{}, err
	}
	if len(chunks) == 0 {
		return LoadStats{}, fmt.Errorf("no chunk files found in %s", dir)
	}
	log.Debugf("Found %d chunk files", len(chunks))

	var total LoadStats
	for _, chunk := range chunks {
		stats, err := l.loadChunk(chunk.Filename)
		total.add(stats)
		if err != nil {
			return total, fmt.Errorf("chunk %d: %w", chunk.ID, err)
		}
	}
	return total, nil
}

// loadChunk reads a chunk: an int32 word count, then per word a uint16
// length, the word bytes and a uint16 rank. Ranks are not used by the trie.
func (l *Loader) loadChunk(filename string) (LoadStats, error) {
	var stats LoadStats

	file, err := os.Open(filename)
	if err != nil {
		return stats, fmt.Errorf("failed to open chunk file %s: %w", filename, err)
	}
	defer file.Close()

	reader := bufio.NewReader(file)

	var totalEntries int32
	if err := binary.Read(reader, binary.LittleEndian, &totalEntries); err != nil {
		return stats, fmt.Errorf("failed to read chunk header: %w", err)
	}
	if totalEntries < 0 || totalEntries > maxChunkWords {
		return stats, fmt.Errorf("invalid chunk header in %s: %d words", filename, totalEntries)
	}

	for i := 0; i < int(totalEntries); i++ {
		var wordLen uint16
		if err := binary.Read(reader, binary.LittleEndian, &wordLen); err != nil {
			if err == io.EOF {
				log.Warnf("Chunk %s ended after %d of %d words", filename, i, totalEntries)
				break
			}
			return stats, fmt.Errorf("failed to read word length: %w", err)
		}

		wordBytes := make([]byte, wordLen)
		if _, err := io.ReadFull(reader, wordBytes); err != nil {
			return stats, fmt.Errorf("failed to read word: %w", err)
		}

		var rank uint16
		if err := binary.Read(reader, binary.LittleEndian, &rank); err != nil {
			return stats, fmt.Errorf("failed to read rank: %w", err)
		}

		if err := l.insert(string(wordBytes), &stats); err != nil {
			return stats, err
		}
	}

	log.Debugf("Chunk %s loaded: %d words", filename, stats.Lines)
	return stats, nil
}

// WriteChunk writes words in chunk format, ranked by position.
func WriteChunk(w io.Writer, words []string) error {
	bw := bufio.NewWriter(w)
	if err := binary.Write(bw, binary.LittleEndian, int32(len(words))); err != nil {
		return err
	}
	ranks := utils.CreateRankList(len(words))
	for i, word := range words {
		if len(word) > 0xffff {
			return fmt.Errorf("word %d too long for chunk format (%d bytes)", i, len(word))
		}
		if err := binary.Write(bw, binary.LittleEndian, uint16(len(word))); err != nil {
			return err
		}
		if _, err := bw.WriteString(word); err != nil {
			return err
		}
		if err := binary.Write(bw, binary.LittleEndian, ranks[i]); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// ApplyUsage reads free text, normalizes each token and raises the
// importance of every token that is a dictionary word.
func (l *Loader) ApplyUsage(r io.Reader) (UsageStats, error) {
	var stats UsageStats
	scanner := bufio.NewScanner(r)
	scanner.Split(bufio.ScanWords)

	const batchSize = 256
	batch := make([]string, 0, batchSize)
	flush := func() {
		stats.Applied += l.trie.ImportanceUpdate(batch...)
		batch = batch[:0]
	}

	for scanner.Scan() {
		stats.Tokens++
		word, ok := utils.NormalizeToken(scanner.Text())
		if !ok {
			continue
		}
		stats.Kept++
		batch = append(batch, word)
		if len(batch) == batchSize {
			flush()
		}
	}
	flush()

	if err := scanner.Err(); err != nil {
		return stats, fmt.Errorf("failed to read usage text: %w", err)
	}
	return stats, nil
}

// ApplyUsageFile is ApplyUsage over a file. The file is only read.
func (l *Loader) ApplyUsageFile(path string) (UsageStats, error) {
	file, err := os.Open(path)
	if err != nil {
		return UsageStats{}, fmt.Errorf("failed to open usage file %s: %w", path, err)
	}
	defer file.Close()

	stats, err := l.ApplyUsage(file)
	if err != nil {
		return stats, fmt.Errorf("%s: %w", path, err)
	}
	log.Debugf("Applied usage from %s: %d tokens, %d kept, %d applied",
		path, stats.Tokens, stats.Kept, stats.Applied)
	return stats, nil
}
