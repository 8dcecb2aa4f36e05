package api

import (
	"context"
	"net/http"

	"github.com/okian/questlog/internal/domain/model"
)

// recentEventLimit bounds the journal slice returned with the stats.
const recentEventLimit = 20

// StatsDependencies defines the system statistics read operations.
type StatsDependencies interface {
	SystemStats(ctx context.Context) (model.SystemStats, error)
	RecentEvents(ctx context.Context, limit int) ([]model.SystemEvent, error)
}

// StatsHandler handles system statistics requests.
type StatsHandler struct {
	deps StatsDependencies
}

// NewStatsHandler creates a new stats handler.
func NewStatsHandler(deps StatsDependencies) *StatsHandler {
	return &StatsHandler{deps: deps}
}

type statsResponse struct {
	Stats        model.SystemStats   `json:"stats"`
	RecentEvents []model.SystemEvent `json:"recent_events,omitempty"`
}

// HandleStats handles GET /api/stats requests.
func (h *StatsHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_stats"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	stats, err := h.deps.SystemStats(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", opErr(op, err))
		return
	}

	events, err := h.deps.RecentEvents(r.Context(), recentEventLimit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", opErr(op, err))
		return
	}

	writeJSON(w, http.StatusOK, statsResponse{Stats: stats, RecentEvents: events})
}
