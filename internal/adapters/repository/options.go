package repository

import (
	"math/rand"

	"github.com/okian/questlog/pkg/logger"
)

// GormOption applies a configuration option to the GormStore.
type GormOption func(*GormStore)

// WithLogger sets the logger.
func WithLogger(log logger.Logger) GormOption {
	return func(s *GormStore) {
		if log != nil {
			s.log = log
		}
	}
}

// WithRand sets the random source used for daily mission picks. Intended
// for tests.
func WithRand(r *rand.Rand) GormOption {
	return func(s *GormStore) {
		if r != nil {
			s.rand = r
		}
	}
}
