package session

import (
	"context"

	"github.com/okian/questlog/internal/domain/model"
)

// defaultHistorySize bounds the retained session snapshots.
const defaultHistorySize = 10

// defaultHistoryKey is the blob store key snapshots are persisted under.
const defaultHistoryKey = "sessions"

// BlobStore is the persistence surface the history needs. A missing or
// unreadable key reports absent rather than failing.
type BlobStore interface {
	Get(ctx context.Context, key string, out any) bool
	Set(ctx context.Context, key string, value any) error
}

// History persists finished session snapshots, oldest evicted first.
type History struct {
	store BlobStore
	key   string
	max   int
}

// NewHistory creates a History backed by the given store.
func NewHistory(store BlobStore, opts ...HistoryOption) *History {
	h := &History{
		store: store,
		key:   defaultHistoryKey,
		max:   defaultHistorySize,
	}

	for _, opt := range opts {
		opt(h)
	}

	return h
}

// Append persists a snapshot, evicting the oldest entries beyond the bound.
func (h *History) Append(ctx context.Context, snap model.SessionSnapshot) error {
	snaps := h.All(ctx)

	snaps = append(snaps, snap)
	if len(snaps) > h.max {
		snaps = snaps[len(snaps)-h.max:]
	}

	return h.store.Set(ctx, h.key, snaps)
}

// Last returns the most recently appended snapshot, if any.
func (h *History) Last(ctx context.Context) (model.SessionSnapshot, bool) {
	snaps := h.All(ctx)
	if len(snaps) == 0 {
		return model.SessionSnapshot{}, false
	}
	return snaps[len(snaps)-1], true
}

// All returns every retained snapshot in append order.
func (h *History) All(ctx context.Context) []model.SessionSnapshot {
	var snaps []model.SessionSnapshot
	h.store.Get(ctx, h.key, &snaps)
	return snaps
}
