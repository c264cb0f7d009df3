package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/wonny/tickerscan/internal/contracts"
	"github.com/wonny/tickerscan/internal/engine"
	"github.com/wonny/tickerscan/internal/history"
	"github.com/wonny/tickerscan/internal/ingest"
	"github.com/wonny/tickerscan/pkg/logger"
	"github.com/wonny/tickerscan/pkg/redis"
)

// ScanHandler handles scan API endpoints
// ⭐ SSOT: 스캔 API 핸들러는 이 구조체에서만
type ScanHandler struct {
	engine   *engine.Engine
	repo     *history.Repository // nil when persistence is disabled
	cache    *redis.Cache        // nil when caching is disabled
	cacheTTL time.Duration
	logger   *logger.Logger
}

// NewScanHandler creates a new scan handler. repo and cache may be nil.
func NewScanHandler(eng *engine.Engine, repo *history.Repository, cache *redis.Cache, cacheTTL time.Duration, log *logger.Logger) *ScanHandler {
	return &ScanHandler{
		engine:   eng,
		repo:     repo,
		cache:    cache,
		cacheTTL: cacheTTL,
		logger:   log,
	}
}

// ScanRequest represents a scan request
type ScanRequest struct {
	Text string `json:"text"`
	HTML string `json:"html,omitempty"` // used when Text is empty
}

// ScanResponse represents a scan response
type ScanResponse struct {
	Portfolios contracts.PortfolioSet `json:"portfolios"`
	Candidates contracts.CandidateSet `json:"candidates"`
	Metrics    contracts.ScanMetrics  `json:"metrics"`
	HistoryID  int64                  `json:"history_id,omitempty"`
	CacheHit   bool                   `json:"cache_hit,omitempty"`
}

// Scan runs the pipeline over the posted text
// POST /api/scan
func (h *ScanHandler) Scan(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req ScanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	text := req.Text
	if text == "" && req.HTML != "" {
		extracted, err := ingest.ExtractText(req.HTML)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid HTML payload")
			return
		}
		text = extracted
	}
	if text == "" {
		respondError(w, http.StatusBadRequest, "text or html is required")
		return
	}

	cacheKey := history.HashText(text)
	if h.cache != nil {
		var cached ScanResponse
		hit, err := h.cache.Get(ctx, cacheKey, &cached)
		if err != nil {
			h.logger.WithError(err).Warn("Scan cache lookup failed")
		}
		if hit {
			cached.CacheHit = true
			respondJSON(w, http.StatusOK, cached)
			return
		}
	}

	result, err := h.engine.Scan(text)
	if err != nil {
		h.respondScanError(w, err)
		return
	}

	resp := ScanResponse{
		Portfolios: result.Portfolios,
		Candidates: result.Candidates,
		Metrics:    result.Metrics,
	}

	if h.repo != nil {
		id, err := h.repo.Save(ctx, text, result)
		if err != nil {
			h.logger.WithError(err).Error("Failed to persist scan")
		} else {
			resp.HistoryID = id
		}
	}

	if h.cache != nil {
		if err := h.cache.Set(ctx, cacheKey, resp, h.cacheTTL); err != nil {
			h.logger.WithError(err).Warn("Scan cache write failed")
		}
	}

	respondJSON(w, http.StatusOK, resp)
}

// DictionaryStats returns dictionary size info
// GET /api/dictionary/stats
func (h *ScanHandler) DictionaryStats(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"symbols": h.engine.Dictionary().Len(),
	})
}

func (h *ScanHandler) respondScanError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, contracts.ErrInvalidInput):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, contracts.ErrInternalInconsistency):
		h.logger.WithError(err).Error("Scan produced inconsistent output")
		respondError(w, http.StatusInternalServerError, "Internal inconsistency")
	default:
		h.logger.WithError(err).Error("Scan failed")
		respondError(w, http.StatusInternalServerError, "Scan failed")
	}
}
