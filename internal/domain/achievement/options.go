package achievement

import "time"

// EvaluatorOption applies a configuration option to the Evaluator.
type EvaluatorOption func(*Evaluator)

// WithPointsMasterThreshold sets the points needed for the points-master badge.
func WithPointsMasterThreshold(points int) EvaluatorOption {
	return func(e *Evaluator) {
		if points > 0 {
			e.pointsMaster = points
		}
	}
}

// WithTurningPointThreshold sets the points needed for the turning-point badge.
func WithTurningPointThreshold(points int) EvaluatorOption {
	return func(e *Evaluator) {
		if points > 0 {
			e.turningPoint = points
		}
	}
}

// UnlocksOption applies a configuration option to the Unlocks store.
type UnlocksOption func(*Unlocks)

// WithStorageKey sets the blob store key badges are persisted under.
func WithStorageKey(key string) UnlocksOption {
	return func(u *Unlocks) {
		if key != "" {
			u.key = key
		}
	}
}

// WithNow sets the clock used for unlock times. Intended for tests.
func WithNow(now func() time.Time) UnlocksOption {
	return func(u *Unlocks) {
		if now != nil {
			u.now = now
		}
	}
}
