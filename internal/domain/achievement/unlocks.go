package achievement

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/okian/questlog/internal/domain/model"
	"github.com/okian/questlog/pkg/metrics"
)

// defaultStorageKey is the blob store key badges are persisted under.
const defaultStorageKey = "achievements"

// BlobStore is the persistence surface the unlock set needs.
type BlobStore interface {
	Get(ctx context.Context, key string, out any) bool
	Set(ctx context.Context, key string, value any) error
}

// Unlocks is the persisted, monotonically growing set of unlocked badges.
// A badge once unlocked is never removed, even when the stats that earned it
// no longer qualify.
type Unlocks struct {
	mu       sync.RWMutex
	store    BlobStore
	key      string
	unlocked map[string]model.Badge
	now      func() time.Time
}

// NewUnlocks creates an empty unlock set backed by the given store.
func NewUnlocks(store BlobStore, opts ...UnlocksOption) *Unlocks {
	u := &Unlocks{
		store:    store,
		key:      defaultStorageKey,
		unlocked: make(map[string]model.Badge),
		now:      time.Now,
	}

	for _, opt := range opts {
		opt(u)
	}

	return u
}

// Load restores previously persisted unlocks. A missing or unreadable key
// leaves the set empty.
func (u *Unlocks) Load(ctx context.Context) {
	var stored []model.Badge
	if !u.store.Get(ctx, u.key, &stored) {
		return
	}

	u.mu.Lock()
	defer u.mu.Unlock()
	for _, b := range stored {
		u.unlocked[b.Key] = b
	}
}

// Apply unions qualifying badge keys into the set and persists when it grew.
// It returns the badges newly unlocked by this call.
func (u *Unlocks) Apply(ctx context.Context, keys []string) ([]model.Badge, error) {
	u.mu.Lock()

	var fresh []model.Badge
	for _, key := range keys {
		if _, done := u.unlocked[key]; done {
			continue
		}
		badge, ok := catalog[key]
		if !ok {
			continue
		}
		at := u.now()
		badge.UnlockedAt = &at
		u.unlocked[key] = badge
		fresh = append(fresh, badge)
	}
	all := u.snapshotLocked()
	u.mu.Unlock()

	if len(fresh) == 0 {
		return nil, nil
	}

	for _, b := range fresh {
		metrics.RecordAchievementUnlocked(b.Key)
	}

	if err := u.store.Set(ctx, u.key, all); err != nil {
		return fresh, err
	}
	return fresh, nil
}

// Unlocked returns every unlocked badge, ordered by key for stable output.
func (u *Unlocks) Unlocked() []model.Badge {
	u.mu.RLock()
	defer u.mu.RUnlock()
	return u.snapshotLocked()
}

// Has reports whether a badge key is unlocked.
func (u *Unlocks) Has(key string) bool {
	u.mu.RLock()
	defer u.mu.RUnlock()
	_, ok := u.unlocked[key]
	return ok
}

func (u *Unlocks) snapshotLocked() []model.Badge {
	out := make([]model.Badge, 0, len(u.unlocked))
	for _, b := range u.unlocked {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}
