package handlers

import (
	"net/http"
	"strconv"

	"github.com/wonny/tickerscan/internal/history"
	"github.com/wonny/tickerscan/pkg/logger"
)

// HistoryHandler handles scan history API endpoints
type HistoryHandler struct {
	repo   *history.Repository
	logger *logger.Logger
}

// NewHistoryHandler creates a new history handler
func NewHistoryHandler(repo *history.Repository, log *logger.Logger) *HistoryHandler {
	return &HistoryHandler{repo: repo, logger: log}
}

// List returns recent scans, newest first
// GET /api/history?limit=20
func (h *HistoryHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	limit := 20
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if n, err := strconv.Atoi(limitStr); err == nil && n > 0 && n <= 200 {
			limit = n
		}
	}

	records, err := h.repo.List(ctx, limit)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list scan history")
		respondError(w, http.StatusInternalServerError, "Failed to retrieve history")
		return
	}
	if records == nil {
		records = []history.Record{}
	}

	respondJSON(w, http.StatusOK, records)
}
