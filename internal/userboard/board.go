// Package userboard keeps the lightweight user roster and its points
// leaderboard. Users are created on first login and persisted as one blob.
package userboard

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/okian/questlog/internal/domain/model"
	"github.com/okian/questlog/pkg/metrics"
)

// defaultStorageKey is the blob store key the roster is persisted under.
const defaultStorageKey = "users"

// BlobStore is the persistence surface the board needs.
type BlobStore interface {
	Get(ctx context.Context, key string, out any) bool
	Set(ctx context.Context, key string, value any) error
}

// Board is the in-memory user roster with blob-backed persistence.
type Board struct {
	mu    sync.RWMutex
	store BlobStore
	key   string
	users []model.User
	now   func() time.Time
	newID func() string
}

// New creates an empty board backed by the given store.
func New(store BlobStore, opts ...Option) *Board {
	b := &Board{
		store: store,
		key:   defaultStorageKey,
		now:   time.Now,
		newID: uuid.NewString,
	}

	for _, opt := range opts {
		opt(b)
	}

	return b
}

// Load restores the persisted roster. A missing or unreadable blob leaves
// the roster empty.
func (b *Board) Load(ctx context.Context) {
	b.mu.Lock()
	defer b.mu.Unlock()

	var users []model.User
	if b.store.Get(ctx, b.key, &users) {
		b.users = users
	}

	metrics.UpdateUserCount(len(b.users))
}

// Login finds the user by name, creating one on first login. Matching is
// case-insensitive on the trimmed name.
func (b *Board) Login(ctx context.Context, name string) (model.User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.User{}, ErrEmptyName
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	now := b.now()
	for i := range b.users {
		if strings.EqualFold(b.users[i].Name, name) {
			b.users[i].LastActivityAt = now
			user := b.users[i]
			return user, b.persist(ctx)
		}
	}

	user := model.User{
		ID:             b.newID(),
		Name:           name,
		JoinedAt:       now,
		LastActivityAt: now,
	}
	b.users = append(b.users, user)

	metrics.UpdateUserCount(len(b.users))
	return user, b.persist(ctx)
}

// AddPoints adds points to a user. Returns ErrUserNotFound for unknown ids.
func (b *Board) AddPoints(ctx context.Context, userID string, points int) (model.User, error) {
	return b.update(ctx, userID, func(u *model.User) {
		u.Points += points
	})
}

// RecordItemAdded bumps the user's total item count.
func (b *Board) RecordItemAdded(ctx context.Context, userID string) (model.User, error) {
	return b.update(ctx, userID, func(u *model.User) {
		u.TotalItems++
	})
}

// RecordItemCompleted bumps the user's completed item count.
func (b *Board) RecordItemCompleted(ctx context.Context, userID string) (model.User, error) {
	return b.update(ctx, userID, func(u *model.User) {
		u.CompletedItems++
	})
}

// Users returns a copy of the roster.
func (b *Board) Users() []model.User {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make([]model.User, len(b.users))
	copy(out, b.users)
	return out
}

// User returns one roster entry by id.
func (b *Board) User(userID string) (model.User, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, u := range b.users {
		if u.ID == userID {
			return u, true
		}
	}
	return model.User{}, false
}

// Ranking returns the roster ordered by points descending. Ties keep roster
// order, which is join order.
func (b *Board) Ranking() []model.User {
	users := b.Users()
	sort.SliceStable(users, func(i, j int) bool {
		return users[i].Points > users[j].Points
	})
	return users
}

// update applies a mutation to one user and persists the roster.
func (b *Board) update(ctx context.Context, userID string, mutate func(*model.User)) (model.User, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i := range b.users {
		if b.users[i].ID != userID {
			continue
		}
		mutate(&b.users[i])
		b.users[i].LastActivityAt = b.now()
		return b.users[i], b.persist(ctx)
	}

	return model.User{}, ErrUserNotFound
}

// persist writes the roster blob. Callers must hold b.mu.
func (b *Board) persist(ctx context.Context) error {
	return b.store.Set(ctx, b.key, b.users)
}
