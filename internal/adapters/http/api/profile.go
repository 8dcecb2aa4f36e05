package api

import (
	"context"
	"net/http"

	"github.com/okian/questlog/internal/domain/model"
)

// ProfileDependencies defines the profile read operations.
type ProfileDependencies interface {
	Profile(ctx context.Context) model.Profile
}

// ProfileHandler handles profile requests.
type ProfileHandler struct {
	deps ProfileDependencies
}

// NewProfileHandler creates a new profile handler.
func NewProfileHandler(deps ProfileDependencies) *ProfileHandler {
	return &ProfileHandler{deps: deps}
}

// HandleProfile handles GET /api/profile requests.
func (h *ProfileHandler) HandleProfile(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, h.deps.Profile(r.Context()))
}
