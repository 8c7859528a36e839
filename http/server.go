// Package http provides the thin HTTP boundary over the retrieval engine
// and the question-answering orchestrator.
package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/fwojciec/lawdoc"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server is the HTTP API server.
type Server struct {
	router   chi.Router
	searcher lawdoc.Searcher
	asker    lawdoc.Asker
	cache    lawdoc.AnswerCache
	stats    *lawdoc.Stats
	logger   *slog.Logger
}

// NewServer creates and configures the HTTP server. The cache may be nil,
// in which case every query runs the full conversation.
func NewServer(searcher lawdoc.Searcher, asker lawdoc.Asker, cache lawdoc.AnswerCache, stats *lawdoc.Stats, logger *slog.Logger, queriesPerSecond float64) *Server {
	s := &Server{
		searcher: searcher,
		asker:    asker,
		cache:    cache,
		stats:    stats,
		logger:   logger,
	}
	s.setupRoutes(queriesPerSecond)
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes(queriesPerSecond float64) {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.logger))

	r.Get("/health", s.handleHealth)

	r.Group(func(r chi.Router) {
		r.Use(RateLimit(queriesPerSecond))

		r.Get("/api/search", s.handleSearch)
		r.Get("/api/sections/{sectionID}", s.handleSection)
		r.Get("/api/overview", s.handleOverview)
		r.Post("/api/query", s.handleQuery)
		r.Get("/api/stats", s.handleStats)
		r.Post("/api/stats/reset", s.handleStatsReset)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

// searchResponse is one search hit with a highlighted excerpt.
type searchResponse struct {
	ID      string   `json:"id"`
	Type    string   `json:"type"`
	Title   string   `json:"title"`
	Score   int      `json:"score"`
	Matches []string `json:"matches,omitempty"`
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		jsonError(w, lawdoc.Errorf(lawdoc.EINVALID, "query parameter q required"))
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	results, err := s.searcher.Search(r.Context(), query, limit)
	if err != nil {
		jsonError(w, err)
		return
	}

	terms := lawdoc.Tokenize(query)
	payload := make([]searchResponse, 0, len(results))
	for _, result := range results {
		sentences := lawdoc.RelevantSentences(result.Section.FullText, terms, 2)
		matches := make([]string, 0, len(sentences))
		for _, sentence := range sentences {
			matches = append(matches, lawdoc.Highlight(sentence, terms))
		}
		payload = append(payload, searchResponse{
			ID:      result.Section.ID,
			Type:    result.Section.Type,
			Title:   result.Section.Title,
			Score:   result.Score,
			Matches: matches,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"results": payload})
}

func (s *Server) handleSection(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "sectionID")
	section, err := s.searcher.SectionByID(r.Context(), id)
	if err != nil {
		jsonError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, section)
}

func (s *Server) handleOverview(w http.ResponseWriter, r *http.Request) {
	overview, err := s.searcher.Overview(r.Context())
	if err != nil {
		jsonError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, overview)
}

type queryRequest struct {
	Question string `json:"question"`
}

func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	var req queryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, lawdoc.Errorf(lawdoc.EINVALID, "request body must be JSON with a question field"))
		return
	}
	if req.Question == "" {
		jsonError(w, lawdoc.Errorf(lawdoc.EINVALID, "question required"))
		return
	}

	key := lawdoc.CacheKey(req.Question)
	if s.cache != nil {
		if answer, err := s.cache.Get(r.Context(), key); err == nil {
			if s.stats != nil {
				s.stats.RecordCacheHit()
			}
			writeJSON(w, http.StatusOK, answer)
			return
		}
	}

	answer, err := s.asker.Ask(r.Context(), req.Question)
	if err != nil {
		jsonError(w, err)
		return
	}

	if s.cache != nil {
		if err := s.cache.Put(r.Context(), key, answer); err != nil {
			s.logger.Warn("failed to cache answer", "error", err)
		}
	}
	writeJSON(w, http.StatusOK, answer)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.stats.Snapshot())
}

func (s *Server) handleStatsReset(w http.ResponseWriter, r *http.Request) {
	s.stats.Reset()
	writeJSON(w, http.StatusOK, map[string]string{"status": "reset"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// jsonError writes a single structured error response derived from the
// error's code. Raw internal details never reach the client.
func jsonError(w http.ResponseWriter, err error) {
	code := lawdoc.ErrorCode(err)
	writeJSON(w, statusFromCode(code), map[string]any{
		"error": map[string]string{
			"code":    code,
			"message": lawdoc.ErrorMessage(err),
		},
	})
}

func statusFromCode(code string) int {
	switch code {
	case lawdoc.EINVALID:
		return http.StatusBadRequest
	case lawdoc.ENOTFOUND:
		return http.StatusNotFound
	case lawdoc.ERATELIMIT:
		return http.StatusTooManyRequests
	case lawdoc.ETIMEOUT:
		return http.StatusGatewayTimeout
	case lawdoc.EUNAVAILABLE:
		return http.StatusBadGateway
	case lawdoc.EUNPROCESSABLE:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
