package engagement

import "time"

// Option applies a configuration option to the Analyzer.
type Option func(*Analyzer)

// WithNow sets the clock. Intended for tests.
func WithNow(now func() time.Time) Option {
	return func(a *Analyzer) {
		if now != nil {
			a.now = now
		}
	}
}
