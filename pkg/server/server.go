package server

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/bastiangx/wordhood/internal/logger"
	"github.com/bastiangx/wordhood/pkg/config"
	"github.com/bastiangx/wordhood/pkg/suggest"
	"github.com/bastiangx/wordhood/pkg/trie"
	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
)

// Server handles the IPC for word suggestions
type Server struct {
	mu        sync.Mutex
	completer *suggest.Completer
	config    *config.Config
	requests  uint64

	decoder *msgpack.Decoder
	writer  *bufio.Writer
	encoder *msgpack.Encoder
	logger  *log.Logger
}

// NewServer creates a server using stdin/stdout for IPC
func NewServer(completer *suggest.Completer, cfg *config.Config) *Server {
	return NewServerWithIO(completer, cfg, os.Stdin, os.Stdout)
}

// NewServerWithIO creates a server reading requests from r and writing
// responses to w.
func NewServerWithIO(completer *suggest.Completer, cfg *config.Config, r io.Reader, w io.Writer) *Server {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	bw := bufio.NewWriter(w)
	return &Server{
		completer: completer,
		config:    cfg,
		decoder:   msgpack.NewDecoder(bufio.NewReader(r)),
		writer:    bw,
		encoder:   msgpack.NewEncoder(bw),
		logger:    logger.New("server"),
	}
}

// Start serves requests until the input stream ends. A clean EOF returns
// nil; a stream that cannot be decoded ends the loop with an error.
func (s *Server) Start() error {
	s.logger.Debug("Starting server")
	for {
		var req Request
		if err := s.decoder.Decode(&req); err != nil {
			if errors.Is(err, io.EOF) {
				s.logger.Debug("Input closed, stopping server")
				return nil
			}
			s.logger.Errorf("Decoding request: %v", err)
			if sendErr := s.send(ErrorResponse{Error: "malformed msgpack request", Code: CodeBadRequest}); sendErr != nil {
				return sendErr
			}
			return fmt.Errorf("decode request: %w", err)
		}
		if err := s.send(s.Handle(req)); err != nil {
			return err
		}
	}
}

// Handle runs one request and returns its response. Safe for concurrent use.
func (s *Server) Handle(req Request) any {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests++

	switch req.Action {
	case "query", "":
		return s.handleQuery(req)
	case "insert":
		return s.handleInsert(req)
	case "update":
		return s.handleUpdate(req)
	case "lookup":
		return s.handleLookup(req)
	case "stats":
		st := s.completer.Trie().Stats()
		return StatsResponse{
			ID:       req.ID,
			Words:    st.Words,
			Nodes:    st.Nodes,
			Slots:    st.Slots,
			MaxProbe: st.MaxProbe,
			Bytes:    st.Bytes,
		}
	case "health":
		return HealthResponse{ID: req.ID, Status: "ok", Requests: s.requests}
	default:
		return errorResponse(req.ID, CodeBadRequest, "unknown action: %s", req.Action)
	}
}

func errorResponse(id string, code int, format string, args ...any) ErrorResponse {
	return ErrorResponse{ID: id, Error: fmt.Sprintf(format, args...), Code: code}
}

// send encodes one response and flushes it so clients see it immediately.
func (s *Server) send(response any) error {
	if err := s.encoder.Encode(response); err != nil {
		s.logger.Errorf("Encoding response: %v", err)
		return err
	}
	return s.writer.Flush()
}

func (s *Server) handleQuery(req Request) any {
	if req.Word == "" {
		return errorResponse(req.ID, CodeBadRequest, "missing 'w' parameter")
	}
	if max := s.config.Server.MaxQueryLen; max > 0 && len(req.Word) > max {
		return errorResponse(req.ID, CodeBadRequest, "query exceeds maximum length of %d characters", max)
	}

	k := req.K
	if k <= 0 {
		k = s.config.Query.DefaultK
	}
	if max := s.config.Server.MaxLimit; max > 0 && k > max {
		k = max
	}

	start := time.Now()
	entries, err := s.completer.Engine().Query(req.Word, k)
	elapsed := time.Since(start)
	if err != nil {
		if errors.Is(err, trie.ErrInvalidCharacter) {
			return errorResponse(req.ID, CodeInvalidWord, "%v", err)
		}
		s.logger.Errorf("Query %q: %v", req.Word, err)
		return errorResponse(req.ID, CodeInternalError, "internal server error")
	}

	out := make([]QueryEntry, len(entries))
	for i, e := range entries {
		out[len(entries)-1-i] = QueryEntry{Word: e.Word, Importance: e.Importance}
	}
	s.logger.Debugf("Query %q k=%d: %d results in %v", req.Word, k, len(out), elapsed)
	return QueryResponse{
		ID:        req.ID,
		Entries:   out,
		Count:     len(out),
		TimeTaken: elapsed.Microseconds(),
	}
}

func (s *Server) handleInsert(req Request) any {
	if len(req.Words) == 0 {
		return errorResponse(req.ID, CodeBadRequest, "missing 'ws' parameter")
	}
	t := s.completer.Trie()

	// validate everything first so a bad word leaves the trie untouched
	for _, w := range req.Words {
		if _, err := trie.Normalize(w); err != nil {
			return errorResponse(req.ID, CodeInvalidWord, "%q: %v", w, err)
		}
	}
	added := 0
	for _, w := range req.Words {
		ok, err := t.Insert(w)
		if err != nil {
			s.logger.Errorf("Insert %q: %v", w, err)
			return errorResponse(req.ID, CodeInternalError, "internal server error")
		}
		if ok {
			added++
		}
	}
	return UpdateResponse{ID: req.ID, Status: "ok", Changed: added}
}

func (s *Server) handleUpdate(req Request) any {
	if len(req.Words) == 0 {
		return errorResponse(req.ID, CodeBadRequest, "missing 'ws' parameter")
	}
	n := s.completer.Trie().ImportanceUpdate(req.Words...)
	return UpdateResponse{ID: req.ID, Status: "ok", Changed: n}
}

func (s *Server) handleLookup(req Request) any {
	if req.Word == "" {
		return errorResponse(req.ID, CodeBadRequest, "missing 'w' parameter")
	}
	t := s.completer.Trie()
	return LookupResponse{
		ID:         req.ID,
		Found:      t.ExactSearch(req.Word),
		Importance: t.GetImportance(req.Word),
	}
}
