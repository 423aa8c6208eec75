package server

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/bastiangx/prefixserve/internal/logger"
	"github.com/bastiangx/prefixserve/internal/utils"
	"github.com/bastiangx/prefixserve/pkg/config"
	"github.com/bastiangx/prefixserve/pkg/suggest"
	"github.com/bastiangx/prefixserve/pkg/trie"
	"github.com/charmbracelet/log"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/vmihailenco/msgpack/v5"
)

type cacheKey struct {
	prefix string
	k      int
}

// Server handles the IPC for prefix completions
type Server struct {
	matcher   suggest.IMatcher
	decoder   *msgpack.Decoder
	encoder   *msgpack.Encoder
	cache     *lru.Cache[cacheKey, []string]
	maxPrefix int
	logger    *log.Logger
}

// NewServer creates a completion server reading requests from r and writing
// responses to w. A cache size of 0 disables result caching.
func NewServer(matcher suggest.IMatcher, cfg *config.Config, r io.Reader, w io.Writer) (*Server, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	s := &Server{
		matcher:   matcher,
		decoder:   msgpack.NewDecoder(r),
		encoder:   msgpack.NewEncoder(w),
		maxPrefix: cfg.Server.MaxPrefix,
		logger:    logger.New("server"),
	}
	if cfg.Server.CacheSize > 0 {
		cache, err := lru.New[cacheKey, []string](cfg.Server.CacheSize)
		if err != nil {
			return nil, fmt.Errorf("failed to create result cache: %w", err)
		}
		s.cache = cache
	}
	return s, nil
}

// Start sends the ready status then serves requests until the input is
// exhausted. A clean EOF returns nil.
func (s *Server) Start() error {
	s.logger.Debug("Starting Server.")

	if err := s.sendResponse(StatusResponse{Status: "ready"}); err != nil {
		return err
	}

	for {
		var req Request
		if err := s.decoder.Decode(&req); err != nil {
			if errors.Is(err, io.EOF) {
				s.logger.Debug("Input closed, stopping server")
				return nil
			}
			s.logger.Errorf("Decoding request: %v", err)
			// the stream cannot be resynchronised after a bad message
			_ = s.sendError("", "Invalid msgpack request", 400)
			return fmt.Errorf("failed to decode request: %w", err)
		}
		if err := s.handleRequest(req); err != nil {
			s.logger.Errorf("Writing response: %v", err)
			return err
		}
	}
}

// handleRequest dispatches on the request op
func (s *Server) handleRequest(req Request) error {
	switch req.Op {
	case "", OpComplete:
		return s.handleComplete(req)
	case OpContains:
		if req.Word == "" {
			return s.sendError(req.ID, "Missing 'w' parameter", 400)
		}
		return s.sendResponse(WordResponse{ID: req.ID, OK: s.matcher.Contains(req.Word), Size: s.matcher.Size()})
	case OpDelete:
		if req.Word == "" {
			return s.sendError(req.ID, "Missing 'w' parameter", 400)
		}
		ok := s.matcher.Delete(req.Word)
		if ok {
			s.purge()
		}
		return s.sendResponse(WordResponse{ID: req.ID, OK: ok, Size: s.matcher.Size()})
	case OpLoad:
		if req.Word == "" {
			return s.sendError(req.ID, "Missing 'w' parameter", 400)
		}
		before := s.matcher.Size()
		size := s.matcher.Load(req.Word)
		if size != before {
			s.purge()
		}
		return s.sendResponse(WordResponse{ID: req.ID, OK: true, Size: size})
	case OpSize:
		return s.sendResponse(WordResponse{ID: req.ID, OK: true, Size: s.matcher.Size()})
	case OpHealth:
		return s.sendResponse(StatusResponse{ID: req.ID, Status: "ok"})
	default:
		return s.sendError(req.ID, fmt.Sprintf("Unknown op: %s", req.Op), 400)
	}
}

// handleComplete validates the prefix, serves from cache when possible and
// ranks the words in output order.
func (s *Server) handleComplete(req Request) error {
	if req.Prefix == "" {
		s.logger.Debug("Prefix is empty in request")
		return s.sendError(req.ID, "Missing 'p' parameter", 400)
	}
	if len(req.Prefix) > s.maxPrefix {
		s.logger.Debug("Prefix is too long in request", "len", len(req.Prefix))
		return s.sendError(req.ID, fmt.Sprintf("Prefix exceeds maximum length of %d characters", s.maxPrefix), 400)
	}

	start := time.Now()
	key := cacheKey{prefix: req.Prefix, k: req.K}
	words, hit := s.lookup(key)
	if !hit {
		var it trie.Iterator
		var err error
		if req.K == 0 {
			it, err = s.matcher.WordsWithPrefix(req.Prefix)
		} else {
			it, err = s.matcher.WordsWithPrefixK(req.Prefix, req.K)
		}
		if err != nil {
			if errors.Is(err, suggest.ErrInvalidArgument) {
				return s.sendError(req.ID, err.Error(), 400)
			}
			s.logger.Errorf("Completing %q: %v", req.Prefix, err)
			return s.sendError(req.ID, "Internal server error", 500)
		}
		words = trie.Collect(it)
		if s.cache != nil {
			s.cache.Add(key, words)
		}
	}
	elapsed := time.Since(start)

	ranks := utils.CreateRankList(len(words))
	suggestions := make([]CompletionSuggestion, len(words))
	for i, w := range words {
		suggestions[i] = CompletionSuggestion{Word: w, Rank: ranks[i]}
	}

	s.logger.Debug("Completed", "prefix", req.Prefix, "count", len(words), "cached", hit, "took", elapsed)
	return s.sendResponse(CompletionResponse{
		ID:          req.ID,
		Suggestions: suggestions,
		Count:       len(suggestions),
		TimeTaken:   elapsed.Microseconds(),
	})
}

func (s *Server) lookup(key cacheKey) ([]string, bool) {
	if s.cache == nil {
		return nil, false
	}
	return s.cache.Get(key)
}

func (s *Server) purge() {
	if s.cache != nil {
		s.cache.Purge()
	}
}

// sendResponse writes one msgpack value to the output
func (s *Server) sendResponse(response any) error {
	if err := s.encoder.Encode(response); err != nil {
		return fmt.Errorf("failed to encode response: %w", err)
	}
	return nil
}

// sendError sends an error response
func (s *Server) sendError(id, message string, code int) error {
	return s.sendResponse(ErrorResponse{ID: id, Error: message, Code: code})
}
