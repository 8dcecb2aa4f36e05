// Package itemdeck manages the user's quest collection: creation, edits,
// ratings, completion and the statistics badges are evaluated against.
package itemdeck

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/okian/questlog/internal/domain/achievement"
	"github.com/okian/questlog/internal/domain/model"
	"github.com/okian/questlog/pkg/metrics"
)

// Validation limits.
const (
	minNameLen        = 2
	minDescriptionLen = 10
	maxStars          = 5
)

// Blob store keys.
const (
	itemsKey = "items"
	metaKey  = "deck_meta"
)

// BlobStore is the persistence surface the deck needs.
type BlobStore interface {
	Get(ctx context.Context, key string, out any) bool
	Set(ctx context.Context, key string, value any) error
}

// deckMeta is the persisted bookkeeping beside the items themselves.
type deckMeta struct {
	TotalPoints int `json:"total_points"`
	EditCount   int `json:"edit_count"`
}

// Deck is the in-memory quest collection with blob-backed persistence.
type Deck struct {
	mu    sync.RWMutex
	store BlobStore
	items []model.Item
	meta  deckMeta
	now   func() time.Time
	newID func() string
}

// New creates an empty deck backed by the given store.
func New(store BlobStore, opts ...Option) *Deck {
	d := &Deck{
		store: store,
		now:   time.Now,
		newID: uuid.NewString,
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

// Load restores the persisted collection. Missing or unreadable blobs leave
// the deck empty.
func (d *Deck) Load(ctx context.Context) {
	d.mu.Lock()
	defer d.mu.Unlock()

	var items []model.Item
	if d.store.Get(ctx, itemsKey, &items) {
		d.items = items
	}
	d.store.Get(ctx, metaKey, &d.meta)

	metrics.UpdateItemCount(len(d.items))
}

// Create validates and adds a new quest.
func (d *Deck) Create(ctx context.Context, name, description string, points int) (model.Item, error) {
	if err := validate(name, description, points); err != nil {
		return model.Item{}, err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	item := model.Item{
		ID:          d.newID(),
		Name:        strings.TrimSpace(name),
		Description: strings.TrimSpace(description),
		Points:      points,
		CreatedAt:   d.now(),
	}
	d.items = append(d.items, item)

	metrics.UpdateItemCount(len(d.items))
	return item, d.persist(ctx)
}

// Update validates and applies new fields to a quest, counting the edit.
func (d *Deck) Update(ctx context.Context, id, name, description string, points int) (model.Item, error) {
	if err := validate(name, description, points); err != nil {
		return model.Item{}, err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	i, err := d.index(id)
	if err != nil {
		return model.Item{}, err
	}

	d.items[i].Name = strings.TrimSpace(name)
	d.items[i].Description = strings.TrimSpace(description)
	d.items[i].Points = points
	d.meta.EditCount++

	return d.items[i], d.persist(ctx)
}

// Delete removes a quest.
func (d *Deck) Delete(ctx context.Context, id string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	i, err := d.index(id)
	if err != nil {
		return err
	}

	d.items = append(d.items[:i], d.items[i+1:]...)

	metrics.UpdateItemCount(len(d.items))
	return d.persist(ctx)
}

// Rate sets a quest's star rating, 0 to 5.
func (d *Deck) Rate(ctx context.Context, id string, stars int) (model.Item, error) {
	if stars < 0 || stars > maxStars {
		return model.Item{}, fmt.Errorf("%w: %d", ErrInvalidRating, stars)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	i, err := d.index(id)
	if err != nil {
		return model.Item{}, err
	}

	d.items[i].Stars = stars
	return d.items[i], d.persist(ctx)
}

// Complete marks a quest done and banks its points. Completing an already
// completed quest is a conflict.
func (d *Deck) Complete(ctx context.Context, id string) (model.Item, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	i, err := d.index(id)
	if err != nil {
		return model.Item{}, err
	}
	if d.items[i].Completed {
		return model.Item{}, fmt.Errorf("%w: %s", ErrItemCompleted, id)
	}

	d.items[i].Completed = true
	d.meta.TotalPoints += d.items[i].Points

	return d.items[i], d.persist(ctx)
}

// Items returns a copy of the collection in creation order.
func (d *Deck) Items() []model.Item {
	d.mu.RLock()
	defer d.mu.RUnlock()

	out := make([]model.Item, len(d.items))
	copy(out, d.items)
	return out
}

// Item returns one quest by id.
func (d *Deck) Item(id string) (model.Item, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	for _, item := range d.items {
		if item.ID == id {
			return item, true
		}
	}
	return model.Item{}, false
}

// Search returns quests whose name or description contains text, holding at
// least minPoints. An empty text matches everything.
func (d *Deck) Search(text string, minPoints int) []model.Item {
	text = strings.ToLower(strings.TrimSpace(text))

	d.mu.RLock()
	defer d.mu.RUnlock()

	var out []model.Item
	for _, item := range d.items {
		if item.Points < minPoints {
			continue
		}
		if text != "" &&
			!strings.Contains(strings.ToLower(item.Name), text) &&
			!strings.Contains(strings.ToLower(item.Description), text) {
			continue
		}
		out = append(out, item)
	}
	return out
}

// Stats summarizes the collection for badge evaluation.
func (d *Deck) Stats() achievement.Stats {
	d.mu.RLock()
	defer d.mu.RUnlock()

	stats := achievement.Stats{
		TotalItems:  len(d.items),
		TotalPoints: d.meta.TotalPoints,
		EditCount:   d.meta.EditCount,
	}

	rated := 0
	starSum := 0
	for _, item := range d.items {
		if item.Completed {
			stats.CompletedItems++
		}
		if item.Stars > 0 {
			rated++
			starSum += item.Stars
		}
	}
	if rated > 0 {
		stats.AverageRating = float64(starSum) / float64(rated)
	}

	return stats
}

// TotalPoints returns the banked completion points.
func (d *Deck) TotalPoints() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.meta.TotalPoints
}

// index finds a quest position by id. Callers must hold d.mu.
func (d *Deck) index(id string) (int, error) {
	for i := range d.items {
		if d.items[i].ID == id {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%w: %s", ErrItemNotFound, id)
}

// persist writes both blobs. Callers must hold d.mu.
func (d *Deck) persist(ctx context.Context) error {
	if err := d.store.Set(ctx, itemsKey, d.items); err != nil {
		return err
	}
	return d.store.Set(ctx, metaKey, d.meta)
}

// validate checks the quest fields shared by Create and Update.
func validate(name, description string, points int) error {
	if len(strings.TrimSpace(name)) < minNameLen {
		return fmt.Errorf("%w: name needs at least %d characters", ErrInvalidItem, minNameLen)
	}
	if len(strings.TrimSpace(description)) < minDescriptionLen {
		return fmt.Errorf("%w: description needs at least %d characters", ErrInvalidItem, minDescriptionLen)
	}
	if points < 0 {
		return fmt.Errorf("%w: points must not be negative", ErrInvalidItem)
	}
	return nil
}
