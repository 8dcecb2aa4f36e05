// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"
)

// Dependencies bundles everything the handlers need. The application service
// implements it; handlers only see the slice they declare for themselves.
type Dependencies interface {
	SessionDependencies
	HeroDependencies
	MissionDependencies
	RankingDependencies
	StatsDependencies
	ItemDependencies
	ProfileDependencies
	UserDependencies
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler  *HealthHandler
	sessionHandler *SessionHandler
	heroesHandler  *HeroesHandler
	missionHandler *MissionHandler
	rankingHandler *RankingHandler
	statsHandler   *StatsHandler
	itemsHandler   *ItemsHandler
	profileHandler *ProfileHandler
	usersHandler   *UsersHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies) *Server {
	return &Server{
		healthHandler:  NewHealthHandler(),
		sessionHandler: NewSessionHandler(deps),
		heroesHandler:  NewHeroesHandler(deps),
		missionHandler: NewMissionHandler(deps),
		rankingHandler: NewRankingHandler(deps),
		statsHandler:   NewStatsHandler(deps),
		itemsHandler:   NewItemsHandler(deps),
		profileHandler: NewProfileHandler(deps),
		usersHandler:   NewUsersHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	// Specific paths first (most specific to least specific)
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/api/login", MetricsMiddleware(s.usersHandler.HandleLogin, "login"))
	mux.HandleFunc("/api/users/ranking", MetricsMiddleware(s.usersHandler.HandleRanking, "users_ranking"))
	mux.HandleFunc("/api/profile", MetricsMiddleware(s.profileHandler.HandleProfile, "profile"))
	mux.HandleFunc("/api/session", MetricsMiddleware(s.sessionHandler.HandleSession, "session"))
	mux.HandleFunc("/api/session/", MetricsMiddleware(s.sessionHandler.HandleSessionSub, "session"))
	mux.HandleFunc("/api/items", MetricsMiddleware(s.itemsHandler.HandleItems, "items"))
	mux.HandleFunc("/api/items/", MetricsMiddleware(s.itemsHandler.HandleItem, "items"))
	mux.HandleFunc("/api/heroes", MetricsMiddleware(s.heroesHandler.HandleHeroes, "heroes"))
	mux.HandleFunc("/api/heroes/", MetricsMiddleware(s.heroesHandler.HandleHero, "heroes"))
	mux.HandleFunc("/api/missions", MetricsMiddleware(s.missionHandler.HandleMissions, "missions"))
	mux.HandleFunc("/api/missions/", MetricsMiddleware(s.missionHandler.HandleMissionSub, "missions"))
	mux.HandleFunc("/api/ranking", MetricsMiddleware(s.rankingHandler.HandleRanking, "ranking"))
	mux.HandleFunc("/api/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
