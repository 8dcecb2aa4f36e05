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

// MissionDependencies defines the mission board operations.
type MissionDependencies interface {
	Missions(ctx context.Context) ([]model.Mission, error)
	CreateMission(ctx context.Context, mission model.Mission) (model.Mission, error)
	CompleteMission(ctx context.Context, missionID, heroID uint) (model.MissionOutcome, error)
}

// MissionHandler handles mission board requests.
type MissionHandler struct {
	deps MissionDependencies
}

// NewMissionHandler creates a new mission handler.
func NewMissionHandler(deps MissionDependencies) *MissionHandler {
	return &MissionHandler{deps: deps}
}

// missionRequest mirrors the POST /api/missions body.
type missionRequest struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	RewardXP     int    `json:"reward_xp"`
	RewardPoints int    `json:"reward_points"`
	Difficulty   string `json:"difficulty"`
}

// completeRequest mirrors the POST /api/missions/{id}/complete body.
type completeRequest struct {
	HeroID uint `json:"hero_id"`
}

// HandleMissions handles GET and POST /api/missions requests.
func (h *MissionHandler) HandleMissions(w http.ResponseWriter, r *http.Request) {
	const op = "api.missions"
	switch r.Method {
	case http.MethodGet:
		missions, err := h.deps.Missions(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal_error", opErr(op, err))
			return
		}
		writeJSON(w, http.StatusOK, missions)

	case http.MethodPost:
		var req missionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Title) == "" {
			writeError(w, http.StatusBadRequest, "bad_request", opErr(op, ErrBadRequest))
			return
		}

		mission, err := h.deps.CreateMission(r.Context(), model.Mission{
			Title:        strings.TrimSpace(req.Title),
			Description:  strings.TrimSpace(req.Description),
			RewardXP:     req.RewardXP,
			RewardPoints: req.RewardPoints,
			Difficulty:   req.Difficulty,
		})
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal_error", opErr(op, err))
			return
		}
		writeJSON(w, http.StatusCreated, mission)

	default:
		http.NotFound(w, r)
	}
}

// HandleMissionSub handles POST /api/missions/{id}/complete requests.
func (h *MissionHandler) HandleMissionSub(w http.ResponseWriter, r *http.Request) {
	const op = "api.complete_mission"

	rest := strings.TrimPrefix(r.URL.Path, "/api/missions/")
	parts := strings.Split(rest, "/")
	if len(parts) != 2 || parts[1] != "complete" || r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	missionID, err := strconv.ParseUint(parts[0], 10, 32)
	if err != nil || missionID == 0 {
		writeError(w, http.StatusBadRequest, "bad_request", opErr(op, ErrBadRequest))
		return
	}

	var req completeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.HeroID == 0 {
		writeError(w, http.StatusBadRequest, "bad_request", opErr(op, ErrBadRequest))
		return
	}

	outcome, err := h.deps.CompleteMission(r.Context(), uint(missionID), req.HeroID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrMissionNotFound), errors.Is(err, repository.ErrHeroNotFound):
			writeError(w, http.StatusNotFound, "not_found", opErr(op, err))
		case errors.Is(err, repository.ErrMissionCompleted):
			writeError(w, http.StatusConflict, "conflict", opErr(op, err))
		default:
			writeError(w, http.StatusInternalServerError, "internal_error", opErr(op, err))
		}
		return
	}

	writeJSON(w, http.StatusOK, outcome)
}
