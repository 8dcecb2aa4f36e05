package session

import "errors"

var (
	// ErrUnknownMetric indicates an increment for a metric name that is
	// not one of the recognized session counters.
	ErrUnknownMetric = errors.New("unknown session metric")

	// ErrInvalidAmount indicates a negative increment amount.
	ErrInvalidAmount = errors.New("increment amount must not be negative")
)
