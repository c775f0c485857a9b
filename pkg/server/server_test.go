package server

import (
	"bytes"
	"sync"
	"testing"

	"github.com/bastiangx/wordhood/pkg/config"
	"github.com/bastiangx/wordhood/pkg/suggest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"
)

func newCompleter(t *testing.T) *suggest.Completer {
	t.Helper()
	c := suggest.NewCompleter(suggest.DefaultOptions())
	require.NoError(t, c.AddWord("hello", 3))
	require.NoError(t, c.AddWord("help", 2))
	require.NoError(t, c.AddWord("hell", 1))
	require.NoError(t, c.AddWord("world", 0))
	return c
}

// roundTrip encodes reqs, serves them and returns a decoder over the output.
func roundTrip(t *testing.T, c *suggest.Completer, cfg *config.Config, reqs ...any) *msgpack.Decoder {
	t.Helper()
	var in, out bytes.Buffer
	enc := msgpack.NewEncoder(&in)
	for _, r := range reqs {
		require.NoError(t, enc.Encode(r))
	}
	require.NoError(t, NewServerWithIO(c, cfg, &in, &out).Start())
	return msgpack.NewDecoder(&out)
}

func TestServerQuery(t *testing.T) {
	dec := roundTrip(t, newCompleter(t), nil,
		Request{ID: "q1", Action: "query", Word: "hel", K: 5},
		Request{ID: "q2", Word: "hel", K: 2},
	)

	var resp QueryResponse
	require.NoError(t, dec.Decode(&resp))
	assert.Equal(t, "q1", resp.ID)
	assert.Equal(t, 3, resp.Count)
	assert.Equal(t, []QueryEntry{{"hello", 3}, {"help", 2}, {"hell", 1}}, resp.Entries)
	assert.GreaterOrEqual(t, resp.TimeTaken, int64(0))

	require.NoError(t, dec.Decode(&resp))
	assert.Equal(t, "q2", resp.ID)
	assert.Equal(t, []QueryEntry{{"hello", 3}, {"help", 2}}, resp.Entries)
}

func TestServerQueryLimits(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Server.MaxLimit = 1
	cfg.Server.MaxQueryLen = 4

	dec := roundTrip(t, newCompleter(t), cfg,
		Request{ID: "a", Action: "query", Word: "hel", K: 10},
		Request{ID: "b", Action: "query", Word: "hellos"},
		Request{ID: "c", Action: "query"},
	)

	var resp QueryResponse
	require.NoError(t, dec.Decode(&resp))
	assert.Equal(t, []QueryEntry{{"hello", 3}}, resp.Entries)

	var errResp ErrorResponse
	require.NoError(t, dec.Decode(&errResp))
	assert.Equal(t, "b", errResp.ID)
	assert.Equal(t, CodeBadRequest, errResp.Code)

	require.NoError(t, dec.Decode(&errResp))
	assert.Equal(t, "c", errResp.ID)
	assert.Equal(t, CodeBadRequest, errResp.Code)
}

func TestServerQueryInvalidWord(t *testing.T) {
	dec := roundTrip(t, newCompleter(t), nil, Request{ID: "x", Action: "query", Word: "h3l"})

	var errResp ErrorResponse
	require.NoError(t, dec.Decode(&errResp))
	assert.Equal(t, "x", errResp.ID)
	assert.Equal(t, CodeInvalidWord, errResp.Code)
	assert.NotEmpty(t, errResp.Error)
}

func TestServerInsertUpdateLookup(t *testing.T) {
	c := newCompleter(t)
	dec := roundTrip(t, c, nil,
		Request{ID: "1", Action: "insert", Words: []string{"helm", "hello", "Helix"}},
		Request{ID: "2", Action: "update", Words: []string{"helm", "helm", "nope"}},
		Request{ID: "3", Action: "lookup", Word: "helm"},
		Request{ID: "4", Action: "insert", Words: []string{"good", "b4d"}},
		Request{ID: "5", Action: "lookup", Word: "good"},
	)

	var upd UpdateResponse
	require.NoError(t, dec.Decode(&upd))
	assert.Equal(t, UpdateResponse{ID: "1", Status: "ok", Changed: 2}, upd)

	require.NoError(t, dec.Decode(&upd))
	assert.Equal(t, UpdateResponse{ID: "2", Status: "ok", Changed: 2}, upd)

	var look LookupResponse
	require.NoError(t, dec.Decode(&look))
	assert.Equal(t, LookupResponse{ID: "3", Found: true, Importance: 2}, look)

	var errResp ErrorResponse
	require.NoError(t, dec.Decode(&errResp))
	assert.Equal(t, CodeInvalidWord, errResp.Code)

	require.NoError(t, dec.Decode(&look))
	assert.False(t, look.Found, "rejected batch must not insert any word")

	assert.True(t, c.Trie().ExactSearch("helix"))
}

func TestServerStatsHealthUnknown(t *testing.T) {
	c := newCompleter(t)
	dec := roundTrip(t, c, nil,
		Request{ID: "s", Action: "stats"},
		Request{ID: "h", Action: "health"},
		Request{ID: "u", Action: "reload"},
	)

	var stats StatsResponse
	require.NoError(t, dec.Decode(&stats))
	want := c.Trie().Stats()
	assert.Equal(t, want.Words, stats.Words)
	assert.Equal(t, want.Nodes, stats.Nodes)
	assert.Equal(t, want.Bytes, stats.Bytes)
	assert.Equal(t, 4, stats.Words)

	var health HealthResponse
	require.NoError(t, dec.Decode(&health))
	assert.Equal(t, HealthResponse{ID: "h", Status: "ok", Requests: 2}, health)

	var errResp ErrorResponse
	require.NoError(t, dec.Decode(&errResp))
	assert.Equal(t, "u", errResp.ID)
	assert.Equal(t, CodeBadRequest, errResp.Code)
}

func TestServerMalformedInput(t *testing.T) {
	in := bytes.NewReader([]byte{0xc1}) // never used in msgpack
	var out bytes.Buffer

	err := NewServerWithIO(newCompleter(t), nil, in, &out).Start()
	assert.Error(t, err)

	var errResp ErrorResponse
	require.NoError(t, msgpack.NewDecoder(&out).Decode(&errResp))
	assert.Equal(t, CodeBadRequest, errResp.Code)
}

func TestServerEmptyInput(t *testing.T) {
	var out bytes.Buffer
	assert.NoError(t, NewServerWithIO(newCompleter(t), nil, &bytes.Buffer{}, &out).Start())
	assert.Zero(t, out.Len())
}

func TestHandleConcurrent(t *testing.T) {
	c := newCompleter(t)
	s := NewServerWithIO(c, nil, &bytes.Buffer{}, &bytes.Buffer{})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				s.Handle(Request{Action: "update", Words: []string{"world"}})
				s.Handle(Request{Action: "query", Word: "wor", K: 3})
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 400, c.Trie().GetImportance("world"))
}
