package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/okian/questlog/internal/adapters/repository"
	"github.com/okian/questlog/internal/domain/model"
)

// HeroDependencies defines the hero roster operations.
type HeroDependencies interface {
	CreateHero(ctx context.Context, name, class string) (model.Hero, error)
	Heroes(ctx context.Context) ([]model.Hero, error)
	HeroView(ctx context.Context, id uint) (model.HeroView, error)
	UpdateHero(ctx context.Context, id uint, patch model.HeroPatch) (model.Hero, error)
	DeleteHero(ctx context.Context, id uint) error
}

// HeroesHandler handles hero CRUD requests.
type HeroesHandler struct {
	deps HeroDependencies
}

// NewHeroesHandler creates a new heroes handler.
func NewHeroesHandler(deps HeroDependencies) *HeroesHandler {
	return &HeroesHandler{deps: deps}
}

// heroRequest mirrors the POST /api/heroes body.
type heroRequest struct {
	Name  string `json:"name"`
	Class string `json:"class"`
}

func (req heroRequest) validate() error {
	switch {
	case strings.TrimSpace(req.Name) == "":
		return errors.New("missing name")
	case strings.TrimSpace(req.Class) == "":
		return errors.New("missing class")
	}
	return nil
}

// HandleHeroes handles GET and POST /api/heroes requests.
func (h *HeroesHandler) HandleHeroes(w http.ResponseWriter, r *http.Request) {
	const op = "api.heroes"
	switch r.Method {
	case http.MethodGet:
		heroes, err := h.deps.Heroes(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal_error", opErr(op, err))
			return
		}
		writeJSON(w, http.StatusOK, heroes)

	case http.MethodPost:
		var req heroRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", opErr(op, ErrBadRequest))
			return
		}
		if err := req.validate(); err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", opErr(op, err))
			return
		}

		hero, err := h.deps.CreateHero(r.Context(), strings.TrimSpace(req.Name), strings.TrimSpace(req.Class))
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal_error", opErr(op, err))
			return
		}
		writeJSON(w, http.StatusCreated, hero)

	default:
		http.NotFound(w, r)
	}
}

// HandleHero handles GET, PUT and DELETE /api/heroes/{id} requests.
func (h *HeroesHandler) HandleHero(w http.ResponseWriter, r *http.Request) {
	const op = "api.hero"

	id, ok := parseHeroID(r.URL.Path)
	if !ok {
		writeError(w, http.StatusBadRequest, "bad_request", opErr(op, ErrBadRequest))
		return
	}

	switch r.Method {
	case http.MethodGet:
		view, err := h.deps.HeroView(r.Context(), id)
		if err != nil {
			writeHeroError(w, op, err)
			return
		}
		writeJSON(w, http.StatusOK, view)

	case http.MethodPut:
		var patch model.HeroPatch
		if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", opErr(op, ErrBadRequest))
			return
		}

		hero, err := h.deps.UpdateHero(r.Context(), id, patch)
		if err != nil {
			writeHeroError(w, op, err)
			return
		}
		writeJSON(w, http.StatusOK, hero)

	case http.MethodDelete:
		if err := h.deps.DeleteHero(r.Context(), id); err != nil {
			writeHeroError(w, op, err)
			return
		}
		writeJSON(w, http.StatusOK, queuedResponse{Status: "deleted"})

	default:
		http.NotFound(w, r)
	}
}

// parseHeroID extracts the numeric id from /api/heroes/{id}.
func parseHeroID(path string) (uint, bool) {
	raw := strings.TrimPrefix(path, "/api/heroes/")
	if raw == "" || strings.Contains(raw, "/") {
		return 0, false
	}
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

func writeHeroError(w http.ResponseWriter, op string, err error) {
	if errors.Is(err, repository.ErrHeroNotFound) {
		writeError(w, http.StatusNotFound, "not_found", opErr(op, err))
		return
	}
	writeError(w, http.StatusInternalServerError, "internal_error", opErr(op, err))
}
