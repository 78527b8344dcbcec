package server

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/bastiangx/wordkit/internal/logger"
	"github.com/bastiangx/wordkit/internal/metrics"
	"github.com/bastiangx/wordkit/internal/utils"
	"github.com/bastiangx/wordkit/pkg/config"
	"github.com/bastiangx/wordkit/pkg/errs"
	"github.com/bastiangx/wordkit/pkg/suggest"
	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
)

// Server handles the IPC for word completions
type Server struct {
	completer suggest.ICompleter
	config    config.ServerConfig
	metrics   *metrics.Metrics
	logger    *log.Logger

	dec *msgpack.Decoder
	out *bufio.Writer
	enc *msgpack.Encoder
}

// Option customizes a Server.
type Option func(*Server)

// WithIO replaces stdin/stdout.
func WithIO(r io.Reader, w io.Writer) Option {
	return func(s *Server) {
		s.dec = msgpack.NewDecoder(bufio.NewReader(r))
		s.out = bufio.NewWriter(w)
		s.enc = msgpack.NewEncoder(s.out)
	}
}

// WithMetrics records requests in m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Server) { s.metrics = m }
}

// NewServer creates a completion server using stdin/stdout for IPC
func NewServer(completer suggest.ICompleter, cfg config.ServerConfig, opts ...Option) *Server {
	s := &Server{
		completer: completer,
		config:    cfg,
		logger:    logger.New("server"),
	}
	WithIO(os.Stdin, os.Stdout)(s)
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start serves requests until the input ends or ctx is cancelled.
// ctx is checked between messages; a blocked read is not interrupted.
func (s *Server) Start(ctx context.Context) error {
	s.logger.Debug("Starting server")
	s.reportIndexSize()

	for {
		if err := ctx.Err(); err != nil {
			return nil
		}

		raw, err := s.dec.DecodeInterfaceLoose()
		if err != nil {
			if errors.Is(err, io.EOF) {
				s.logger.Debug("Input closed, stopping server")
				return nil
			}
			return fmt.Errorf("read request: %w", err)
		}

		s.handleMessage(raw)
		if err := s.out.Flush(); err != nil {
			return fmt.Errorf("write response: %w", err)
		}
	}
}

// handleMessage re-encodes a decoded value into a Request so a message
// with badly typed fields is rejected without losing the stream position.
func (s *Server) handleMessage(raw any) {
	var req Request
	data, err := msgpack.Marshal(raw)
	if err == nil {
		err = msgpack.Unmarshal(data, &req)
	}
	if err != nil {
		s.logger.Errorf("Invalid request: %v", err)
		s.sendError("", "invalid request", 400)
		s.metrics.ObserveRequest("invalid", "error")
		return
	}

	switch req.Action {
	case "":
		s.handleComplete(req)
	case ActionCount:
		s.handleCount(req)
	case ActionAdd:
		s.handleAdd(req)
	case ActionStats:
		s.handleStats(req)
	default:
		s.sendError(req.ID, fmt.Sprintf("unknown action: %s", req.Action), 400)
		s.metrics.ObserveRequest("invalid", "error")
	}
}

func (s *Server) sendResponse(response any) {
	if err := s.enc.Encode(response); err != nil {
		s.logger.Errorf("Encoding response: %v", err)
	}
}

func (s *Server) sendError(id, message string, code int) {
	s.sendResponse(CompletionError{ID: id, Error: message, Code: code})
}

// handleComplete validates the prefix against the server limits, runs the
// completion and ranks the results 1..n.
func (s *Server) handleComplete(req Request) {
	prefix := req.Prefix

	if len(prefix) < s.config.MinPrefix {
		s.sendError(req.ID, fmt.Sprintf("prefix must be at least %d characters", s.config.MinPrefix), 400)
		s.metrics.ObserveRequest("complete", "error")
		return
	}
	if len(prefix) > s.config.MaxPrefix {
		s.sendError(req.ID, fmt.Sprintf("prefix exceeds maximum length of %d characters", s.config.MaxPrefix), 400)
		s.metrics.ObserveRequest("complete", "error")
		return
	}

	limit := req.Limit
	if limit < 1 || limit > s.config.MaxLimit {
		limit = s.config.MaxLimit
	}

	start := time.Now()
	var suggestions []suggest.Suggestion
	if !s.config.EnableFilter || utils.IsValidInput(prefix) {
		suggestions = s.completer.Complete(prefix, limit)
	} else {
		s.logger.Debugf("Filtered prefix '%s'", prefix)
	}
	elapsed := time.Since(start)

	ranks := utils.CreateRankList(len(suggestions))
	response := CompletionResponse{
		ID:          req.ID,
		Suggestions: make([]CompletionSuggestion, len(suggestions)),
		Count:       len(suggestions),
		TimeTaken:   elapsed.Microseconds(),
	}
	for i, sg := range suggestions {
		response.Suggestions[i] = CompletionSuggestion{Word: sg.Word, Rank: ranks[i], Weight: sg.Weight}
	}
	if len(suggestions) > 0 && suggestions[0].WasCorrected {
		response.CorrectedPrefix = suggestions[0].CorrectedPrefix
	}

	s.sendResponse(response)
	s.metrics.ObserveRequest("complete", "ok")
	s.metrics.ObserveCompletion(elapsed, len(suggestions))
}

func (s *Server) handleCount(req Request) {
	n, err := s.completer.CountWithPrefix(req.Prefix)
	if err != nil {
		s.sendIndexError(req, err)
		return
	}
	s.sendResponse(IndexResponse{ID: req.ID, Status: "ok", Count: n})
	s.metrics.ObserveRequest(ActionCount, "ok")
}

func (s *Server) handleAdd(req Request) {
	if err := s.completer.AddWord(req.Prefix, req.Weight); err != nil {
		s.sendIndexError(req, err)
		return
	}
	s.logger.Debugf("Indexed '%s' with weight %d", req.Prefix, req.Weight)
	total := s.reportIndexSize()
	s.sendResponse(IndexResponse{ID: req.ID, Status: "ok", Count: total})
	s.metrics.ObserveRequest(ActionAdd, "ok")
}

func (s *Server) handleStats(req Request) {
	stats := s.completer.Stats()
	s.sendResponse(IndexResponse{ID: req.ID, Status: "ok", Count: stats["totalWords"], Stats: stats})
	s.metrics.ObserveRequest(ActionStats, "ok")
}

func (s *Server) sendIndexError(req Request, err error) {
	code := 500
	if errors.Is(err, errs.ErrInvalidArgument) {
		code = 400
	}
	s.logger.Debugf("%s request failed: %v", req.Action, err)
	s.sendError(req.ID, err.Error(), code)
	s.metrics.ObserveRequest(req.Action, "error")
}

func (s *Server) reportIndexSize() int {
	total := s.completer.Stats()["totalWords"]
	s.metrics.SetIndexedTerms(total)
	return total
}
