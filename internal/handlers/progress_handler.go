package handlers

import (
	"net/http"

	"clozedrill/internal/models"
	"clozedrill/internal/service"
)

// ProgressHandler serves the learner's attempt history and statistics
type ProgressHandler struct {
	progress *service.ProgressService
}

// NewProgressHandler creates a new progress handler
func NewProgressHandler(progress *service.ProgressService) *ProgressHandler {
	return &ProgressHandler{progress: progress}
}

// Summary returns the headline statistics, the recent-history chart series,
// and the raw attempt log.
func (h *ProgressHandler) Summary(w http.ResponseWriter, r *http.Request) {
	history := h.progress.History()
	if history == nil {
		history = []models.AttemptRecord{}
	}
	series := h.progress.RecentSeries()
	if series == nil {
		series = []models.SeriesPoint{}
	}

	respondJSON(w, http.StatusOK, progressResponse{
		Summary: h.progress.Aggregate(),
		Series:  series,
		History: history,
	})
}
