package repository

import "errors"

var (
	// ErrHeroNotFound indicates an unknown hero id.
	ErrHeroNotFound = errors.New("hero not found")

	// ErrMissionNotFound indicates an unknown mission id.
	ErrMissionNotFound = errors.New("mission not found")

	// ErrMissionCompleted indicates a completion attempt on a mission that
	// was already completed.
	ErrMissionCompleted = errors.New("mission already completed")

	// ErrOpenDatabase indicates the database could not be opened or migrated.
	ErrOpenDatabase = errors.New("open database")
)
