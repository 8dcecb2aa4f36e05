package ranking

import (
	"sync"
	"time"

	"github.com/okian/questlog/pkg/metrics"
)

// Board caches the most recently built leaderboard so reads never touch the
// database. A background refresher publishes rebuilt boards.
type Board struct {
	mu        sync.RWMutex
	entries   []Entry
	rebuiltAt time.Time
}

// NewBoard creates an empty board.
func NewBoard() *Board {
	return &Board{}
}

// Publish replaces the cached leaderboard.
func (b *Board) Publish(entries []Entry) {
	b.mu.Lock()
	b.entries = entries
	b.rebuiltAt = time.Now()
	b.mu.Unlock()

	metrics.UpdateLeaderboardSize(len(entries))
}

// Entries returns a copy of the cached leaderboard.
func (b *Board) Entries() []Entry {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make([]Entry, len(b.entries))
	copy(out, b.entries)
	return out
}

// Top returns a copy of the first n cached entries.
func (b *Board) Top(n int) []Entry {
	entries := b.Entries()
	if n > 0 && len(entries) > n {
		entries = entries[:n]
	}
	return entries
}

// RebuiltAt returns when the board was last published.
func (b *Board) RebuiltAt() time.Time {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.rebuiltAt
}
