/*
Package server implements msgpack IPC for the wordhood suggestion engine.

The server reads a stream of msgpack maps from stdin and writes one msgpack
map per request to stdout. Every request carries an "id" that is echoed back
and an "action" that picks the operation. Requests are handled one at a time
in arrival order.

# IPC

Queries return the top-k words by importance for a typed word:

	{"id": "q1", "action": "query", "w": "hel", "k": 5}
	{"id": "q1", "s": [{"w": "hello", "i": 12}, {"w": "help", "i": 7}], "c": 2, "t": 38}

"t" is the time spent in the engine, in microseconds. An empty action with a
"w" field is treated as a query.

Dictionary words are added with insert and ranked with update; both take a
list of words and report how many changed the trie:

	{"id": "i1", "action": "insert", "ws": ["hello", "help"]}
	{"id": "u1", "action": "update", "ws": ["hello", "hello"]}
	{"id": "u1", "status": "ok", "n": 2}

lookup reports whether a word is in the dictionary and its importance, stats
reports the trie shape and health reports liveness.

# Errors

A failed request is answered with an error map:

	{"id": "q2", "e": "query exceeds maximum length of 60 characters", "c": 400}

Codes follow HTTP: 400 for malformed requests, 422 for words with characters
outside a-z and 500 for internal failures.
*/
package server

// Request is the envelope of every client message. Fields not used by the
// action are ignored.
type Request struct {
	ID     string   `msgpack:"id"`
	Action string   `msgpack:"action"` // "query", "insert", "update", "lookup", "stats", "health"
	Word   string   `msgpack:"w,omitempty"`
	Words  []string `msgpack:"ws,omitempty"`
	K      int      `msgpack:"k,omitempty"`
}

// QueryEntry - one ranked word
type QueryEntry struct {
	Word       string `msgpack:"w"`
	Importance int    `msgpack:"i"`
}

// QueryResponse lists entries by descending importance.
type QueryResponse struct {
	ID        string       `msgpack:"id"`
	Entries   []QueryEntry `msgpack:"s"`
	Count     int          `msgpack:"c"`
	TimeTaken int64        `msgpack:"t"`
}

// UpdateResponse answers insert and update.
type UpdateResponse struct {
	ID      string `msgpack:"id"`
	Status  string `msgpack:"status"`
	Changed int    `msgpack:"n"`
}

// LookupResponse - word membership
type LookupResponse struct {
	ID         string `msgpack:"id"`
	Found      bool   `msgpack:"f"`
	Importance int    `msgpack:"i"`
}

// StatsResponse mirrors trie.Stats.
type StatsResponse struct {
	ID       string `msgpack:"id"`
	Words    int    `msgpack:"words"`
	Nodes    int    `msgpack:"nodes"`
	Slots    int    `msgpack:"slots"`
	MaxProbe int    `msgpack:"max_probe"`
	Bytes    int    `msgpack:"bytes"`
}

// HealthResponse - liveness
type HealthResponse struct {
	ID       string `msgpack:"id"`
	Status   string `msgpack:"status"`
	Requests uint64 `msgpack:"requests"`
}

// ErrorResponse holds basic error information for failed requests
type ErrorResponse struct {
	ID    string `msgpack:"id"`
	Error string `msgpack:"e"`
	Code  int    `msgpack:"c"`
}

const (
	CodeBadRequest    = 400
	CodeInvalidWord   = 422
	CodeInternalError = 500
)
