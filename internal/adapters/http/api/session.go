package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/okian/questlog/internal/domain/engagement"
	"github.com/okian/questlog/internal/domain/model"
)

// SessionDependencies defines the session tracking operations.
type SessionDependencies interface {
	// EnqueueAction pushes a tracked action for async processing.
	// Returns false on backpressure.
	EnqueueAction(ctx context.Context, kind string, payload map[string]any) bool
	// EnqueueMetric pushes a counter increment for async processing.
	// Returns false on backpressure.
	EnqueueMetric(ctx context.Context, name string, amount int64) bool

	SessionOverview(ctx context.Context) model.SessionOverview
	EngagementSummary(ctx context.Context) engagement.Summary
	SessionReport(ctx context.Context) engagement.Report
	SessionExport(ctx context.Context) model.SessionExport
	ResetSession(ctx context.Context) error
}

// SessionHandler handles session tracking and analysis requests.
type SessionHandler struct {
	deps SessionDependencies
}

// NewSessionHandler creates a new session handler.
func NewSessionHandler(deps SessionDependencies) *SessionHandler {
	return &SessionHandler{deps: deps}
}

// actionRequest mirrors the POST /api/session/actions body.
type actionRequest struct {
	Kind    string         `json:"kind"`
	Payload map[string]any `json:"payload,omitempty"`
}

// metricRequest mirrors the POST /api/session/metrics body.
type metricRequest struct {
	Metric string `json:"metric"`
	Amount int64  `json:"amount"`
}

type queuedResponse struct {
	Status string `json:"status"`
}

type sessionStatsResponse struct {
	Session    model.SessionOverview `json:"session"`
	Engagement engagement.Summary    `json:"engagement"`
}

// HandleSession handles DELETE /api/session requests.
func (h *SessionHandler) HandleSession(w http.ResponseWriter, r *http.Request) {
	const op = "api.reset_session"
	if r.Method != http.MethodDelete {
		http.NotFound(w, r)
		return
	}

	if err := h.deps.ResetSession(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", opErr(op, err))
		return
	}
	writeJSON(w, http.StatusOK, queuedResponse{Status: "reset"})
}

// HandleSessionSub routes /api/session/{actions,metrics,stats,report,export}.
func (h *SessionHandler) HandleSessionSub(w http.ResponseWriter, r *http.Request) {
	switch strings.TrimPrefix(r.URL.Path, "/api/session/") {
	case "actions":
		h.handlePostAction(w, r)
	case "metrics":
		h.handlePostMetric(w, r)
	case "stats":
		h.handleStats(w, r)
	case "report":
		h.handleReport(w, r)
	case "export":
		h.handleExport(w, r)
	default:
		http.NotFound(w, r)
	}
}

func (h *SessionHandler) handlePostAction(w http.ResponseWriter, r *http.Request) {
	const op = "api.track_action"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	var req actionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Kind) == "" {
		writeError(w, http.StatusBadRequest, "bad_request", opErr(op, ErrBadRequest))
		return
	}

	if !h.deps.EnqueueAction(r.Context(), req.Kind, req.Payload) {
		writeError(w, http.StatusTooManyRequests, "backpressure", opErr(op, ErrBackpressure))
		return
	}
	writeJSON(w, http.StatusAccepted, queuedResponse{Status: "queued"})
}

func (h *SessionHandler) handlePostMetric(w http.ResponseWriter, r *http.Request) {
	const op = "api.increment_metric"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	var req metricRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", opErr(op, ErrBadRequest))
		return
	}
	if strings.TrimSpace(req.Metric) == "" || req.Amount < 0 {
		writeError(w, http.StatusBadRequest, "bad_request", opErr(op, ErrBadRequest))
		return
	}

	if !h.deps.EnqueueMetric(r.Context(), req.Metric, req.Amount) {
		writeError(w, http.StatusTooManyRequests, "backpressure", opErr(op, ErrBackpressure))
		return
	}
	writeJSON(w, http.StatusAccepted, queuedResponse{Status: "queued"})
}

func (h *SessionHandler) handleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	writeJSON(w, http.StatusOK, sessionStatsResponse{
		Session:    h.deps.SessionOverview(r.Context()),
		Engagement: h.deps.EngagementSummary(r.Context()),
	})
}

func (h *SessionHandler) handleReport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, h.deps.SessionReport(r.Context()))
}

func (h *SessionHandler) handleExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Disposition", `attachment; filename="session-export.json"`)
	writeJSON(w, http.StatusOK, h.deps.SessionExport(r.Context()))
}

// opErr annotates a handler error with its operation for log and response
// context.
func opErr(op string, err error) error {
	if err == nil {
		return errors.New(op)
	}
	return &opError{op: op, err: err}
}

type opError struct {
	op  string
	err error
}

func (e *opError) Error() string { return e.op + ": " + e.err.Error() }
func (e *opError) Unwrap() error { return e.err }
