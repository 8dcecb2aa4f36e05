package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/okian/questlog/internal/domain/model"
	"github.com/okian/questlog/internal/userboard"
)

// UserDependencies defines the user roster operations.
type UserDependencies interface {
	Login(ctx context.Context, name string) (model.User, error)
	UserRanking(ctx context.Context) []model.User
}

// UsersHandler handles login and user ranking requests.
type UsersHandler struct {
	deps UserDependencies
}

// NewUsersHandler creates a new users handler.
func NewUsersHandler(deps UserDependencies) *UsersHandler {
	return &UsersHandler{deps: deps}
}

// loginRequest mirrors the POST /api/login body.
type loginRequest struct {
	Name string `json:"name"`
}

// HandleLogin handles POST /api/login requests. Login is find-or-create by
// name, so first login doubles as registration.
func (h *UsersHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	const op = "api.login"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Name) == "" {
		writeError(w, http.StatusBadRequest, "bad_request", opErr(op, ErrBadRequest))
		return
	}

	user, err := h.deps.Login(r.Context(), req.Name)
	if err != nil {
		if errors.Is(err, userboard.ErrEmptyName) {
			writeError(w, http.StatusBadRequest, "bad_request", opErr(op, err))
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", opErr(op, err))
		return
	}

	writeJSON(w, http.StatusOK, user)
}

// HandleRanking handles GET /api/users/ranking requests.
func (h *UsersHandler) HandleRanking(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, h.deps.UserRanking(r.Context()))
}
