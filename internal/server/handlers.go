package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/jonathan/question-matcher/internal/catalog"
	"github.com/jonathan/question-matcher/internal/matching"
	"github.com/jonathan/question-matcher/internal/schemas"
	"github.com/jonathan/question-matcher/internal/types"
)

const (
	maxMatchBody   = 64 << 10
	maxBatchBody   = 16 << 20
	defaultListCap = 50
	maxListCap     = 500
)

// BatchResponse is the body returned by POST /api/v1/match/batch.
type BatchResponse struct {
	BatchID string              `json:"batch_id"`
	Results []types.MatchResult `json:"results"`
	Summary types.BatchSummary  `json:"summary"`
}

type batchRequest struct {
	Queries []types.MatchQuery `json:"queries"`
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	resp := map[string]any{
		"status":   "ok",
		"problems": s.engine.Snapshot().Len(),
	}
	if loaded := s.store.LoadedAt(); !loaded.IsZero() {
		resp["catalog_loaded_at"] = loaded.Format(time.RFC3339)
	}
	s.jsonResponse(w, http.StatusOK, resp)
}

func (s *Server) handleMatch(w http.ResponseWriter, r *http.Request) {
	var q types.MatchQuery
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxMatchBody)).Decode(&q); err != nil {
		s.errorFromErr(w, decodeError(err))
		return
	}
	if err := q.Validate(); err != nil {
		s.errorFromErr(w, &ErrValidation{Message: err.Error()})
		return
	}

	result := s.engine.MatchQuestion(r.Context(), q.Text, q.Type)
	s.jsonResponse(w, http.StatusOK, result)
}

func (s *Server) handleMatchBatch(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBatchBody))
	if err != nil {
		s.errorFromErr(w, err)
		return
	}
	if !json.Valid(body) {
		s.errorFromErr(w, &ErrValidation{Message: "request body is not valid JSON"})
		return
	}
	if err := schemas.Validate(schemas.MatchBatch, body); err != nil {
		s.errorFromErr(w, err)
		return
	}

	var req batchRequest
	if err := json.Unmarshal(body, &req); err != nil {
		s.errorFromErr(w, decodeError(err))
		return
	}

	batchID := uuid.New().String()
	start := time.Now()
	results := s.engine.MatchMany(r.Context(), req.Queries)
	summary := matching.Summarize(results)

	s.logger.Info("batch request completed",
		"batch_id", batchID,
		"request_id", middleware.GetReqID(r.Context()),
		"total", summary.Total,
		"matched", summary.Matched,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	s.jsonResponse(w, http.StatusOK, BatchResponse{
		BatchID: batchID,
		Results: results,
		Summary: summary,
	})
}

func (s *Server) handleCatalogStats(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, s.engine.Snapshot().Stats())
}

func (s *Server) handleCatalogCategories(w http.ResponseWriter, _ *http.Request) {
	categories := s.engine.Snapshot().Categories()
	if categories == nil {
		categories = []types.CategoryCount{}
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"categories": categories,
		"total":      len(categories),
	})
}

func (s *Server) handleCatalogProblems(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	limit := defaultListCap
	if raw := query.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxListCap {
			s.errorFromErr(w, &ErrValidation{Field: "limit", Message: "must be between 1 and 500"})
			return
		}
		limit = n
	}

	idx := s.engine.Snapshot()
	category := query.Get("category")

	var problems []*types.CatalogEntry
	switch raw := query.Get("difficulty"); {
	case raw != "":
		difficulty, err := types.ParseDifficulty(raw)
		if err != nil {
			s.errorFromErr(w, &ErrValidation{Field: "difficulty", Message: err.Error()})
			return
		}
		problems = idx.ByDifficulty(difficulty, category, limit)
	case category != "":
		problems = idx.ByCategory(category, limit)
	default:
		problems = idx.Entries()
		if len(problems) > limit {
			problems = problems[:limit]
		}
	}

	if problems == nil {
		problems = []*types.CatalogEntry{}
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"problems": problems,
		"total":    len(problems),
	})
}

func (s *Server) handleCatalogRefresh(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Refresh(r.Context()); err != nil {
		var loadErr *catalog.LoadError
		if errors.As(err, &loadErr) {
			s.logger.Error("catalog refresh failed", "error", err)
			s.errorResponse(w, http.StatusBadGateway, err.Error())
			return
		}
		s.errorFromErr(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"problems":  s.store.Snapshot().Len(),
		"loaded_at": s.store.LoadedAt().Format(time.RFC3339),
	})
}

// decodeError reports a body that could not be decoded as a validation
// failure unless it was rejected for size.
func decodeError(err error) error {
	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		return err
	}
	return &ErrValidation{Message: "invalid JSON body: " + err.Error()}
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("failed to encode JSON response", "error", err)
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{
		"error":   errorCode(status),
		"message": message,
	})
}

func (s *Server) errorFromErr(w http.ResponseWriter, err error) {
	status := HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "error", err)
	}
	s.errorResponse(w, status, err.Error())
}
