package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/okian/questlog/internal/domain/ranking"
)

// defaultRankingLimit is used when the limit query parameter is absent.
const defaultRankingLimit = 10

// maxRankingLimit caps how many entries one request can ask for.
const maxRankingLimit = 100

// RankingDependencies defines the leaderboard read operations.
type RankingDependencies interface {
	Ranking(ctx context.Context, limit int) []ranking.Entry
}

// RankingHandler handles leaderboard requests.
type RankingHandler struct {
	deps RankingDependencies
}

// NewRankingHandler creates a new ranking handler.
func NewRankingHandler(deps RankingDependencies) *RankingHandler {
	return &RankingHandler{deps: deps}
}

// HandleRanking handles GET /api/ranking?limit=N requests.
func (h *RankingHandler) HandleRanking(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_ranking"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	limit := defaultRankingLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxRankingLimit {
			writeError(w, http.StatusBadRequest, "bad_request", opErr(op, ErrBadRequest))
			return
		}
		limit = n
	}

	writeJSON(w, http.StatusOK, h.deps.Ranking(r.Context(), limit))
}
