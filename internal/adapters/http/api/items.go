package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/okian/questlog/internal/domain/model"
	"github.com/okian/questlog/internal/itemdeck"
)

// ItemDependencies defines the quest collection operations. Mutating calls
// return badges newly unlocked by the change.
type ItemDependencies interface {
	Items(ctx context.Context) []model.Item
	SearchItems(ctx context.Context, text string, minPoints int) []model.Item
	CreateItem(ctx context.Context, name, description string, points int) (model.Item, []model.Badge, error)
	UpdateItem(ctx context.Context, id, name, description string, points int) (model.Item, []model.Badge, error)
	DeleteItem(ctx context.Context, id string) error
	RateItem(ctx context.Context, id string, stars int) (model.Item, []model.Badge, error)
	CompleteItem(ctx context.Context, id string) (model.Item, []model.Badge, error)
}

// ItemsHandler handles quest collection requests.
type ItemsHandler struct {
	deps ItemDependencies
}

// NewItemsHandler creates a new items handler.
func NewItemsHandler(deps ItemDependencies) *ItemsHandler {
	return &ItemsHandler{deps: deps}
}

// itemRequest mirrors the POST and PUT /api/items bodies.
type itemRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Points      int    `json:"points"`
}

// rateRequest mirrors the POST /api/items/{id}/rate body.
type rateRequest struct {
	Stars int `json:"stars"`
}

// itemResponse bundles a quest with badges its change unlocked.
type itemResponse struct {
	Item      model.Item    `json:"item"`
	NewBadges []model.Badge `json:"new_badges,omitempty"`
}

// HandleItems handles GET and POST /api/items requests. GET supports
// ?search= and ?min_points= filters.
func (h *ItemsHandler) HandleItems(w http.ResponseWriter, r *http.Request) {
	const op = "api.items"
	switch r.Method {
	case http.MethodGet:
		query := r.URL.Query()
		text := query.Get("search")
		minPoints := 0
		if raw := query.Get("min_points"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n < 0 {
				writeError(w, http.StatusBadRequest, "bad_request", opErr(op, ErrBadRequest))
				return
			}
			minPoints = n
		}

		if text == "" && minPoints == 0 {
			writeJSON(w, http.StatusOK, h.deps.Items(r.Context()))
			return
		}
		writeJSON(w, http.StatusOK, h.deps.SearchItems(r.Context(), text, minPoints))

	case http.MethodPost:
		var req itemRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", opErr(op, ErrBadRequest))
			return
		}

		item, badges, err := h.deps.CreateItem(r.Context(), req.Name, req.Description, req.Points)
		if err != nil {
			writeItemError(w, op, err)
			return
		}
		writeJSON(w, http.StatusCreated, itemResponse{Item: item, NewBadges: badges})

	default:
		http.NotFound(w, r)
	}
}

// HandleItem handles /api/items/{id} and its rate and complete subpaths.
func (h *ItemsHandler) HandleItem(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/items/")
	parts := strings.Split(rest, "/")

	switch {
	case len(parts) == 1 && parts[0] != "":
		h.handleOne(w, r, parts[0])
	case len(parts) == 2 && parts[1] == "rate":
		h.handleRate(w, r, parts[0])
	case len(parts) == 2 && parts[1] == "complete":
		h.handleComplete(w, r, parts[0])
	default:
		http.NotFound(w, r)
	}
}

func (h *ItemsHandler) handleOne(w http.ResponseWriter, r *http.Request, id string) {
	const op = "api.item"
	switch r.Method {
	case http.MethodPut:
		var req itemRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", opErr(op, ErrBadRequest))
			return
		}

		item, badges, err := h.deps.UpdateItem(r.Context(), id, req.Name, req.Description, req.Points)
		if err != nil {
			writeItemError(w, op, err)
			return
		}
		writeJSON(w, http.StatusOK, itemResponse{Item: item, NewBadges: badges})

	case http.MethodDelete:
		if err := h.deps.DeleteItem(r.Context(), id); err != nil {
			writeItemError(w, op, err)
			return
		}
		writeJSON(w, http.StatusOK, queuedResponse{Status: "deleted"})

	default:
		http.NotFound(w, r)
	}
}

func (h *ItemsHandler) handleRate(w http.ResponseWriter, r *http.Request, id string) {
	const op = "api.rate_item"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	var req rateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", opErr(op, ErrBadRequest))
		return
	}

	item, badges, err := h.deps.RateItem(r.Context(), id, req.Stars)
	if err != nil {
		writeItemError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, itemResponse{Item: item, NewBadges: badges})
}

func (h *ItemsHandler) handleComplete(w http.ResponseWriter, r *http.Request, id string) {
	const op = "api.complete_item"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	item, badges, err := h.deps.CompleteItem(r.Context(), id)
	if err != nil {
		writeItemError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, itemResponse{Item: item, NewBadges: badges})
}

func writeItemError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, itemdeck.ErrItemNotFound):
		writeError(w, http.StatusNotFound, "not_found", opErr(op, err))
	case errors.Is(err, itemdeck.ErrItemCompleted):
		writeError(w, http.StatusConflict, "conflict", opErr(op, err))
	case errors.Is(err, itemdeck.ErrInvalidItem), errors.Is(err, itemdeck.ErrInvalidRating):
		writeError(w, http.StatusBadRequest, "bad_request", opErr(op, err))
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", opErr(op, err))
	}
}
