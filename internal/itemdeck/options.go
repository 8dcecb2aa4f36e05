package itemdeck

import "time"

// Option applies a configuration option to the Deck.
type Option func(*Deck)

// WithNow sets the clock. Intended for tests.
func WithNow(now func() time.Time) Option {
	return func(d *Deck) {
		if now != nil {
			d.now = now
		}
	}
}

// WithIDGenerator sets the quest id generator. Intended for tests.
func WithIDGenerator(newID func() string) Option {
	return func(d *Deck) {
		if newID != nil {
			d.newID = newID
		}
	}
}
