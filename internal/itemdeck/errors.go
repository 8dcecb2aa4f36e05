package itemdeck

import "errors"

var (
	// ErrInvalidItem indicates quest fields that fail validation.
	ErrInvalidItem = errors.New("invalid quest")

	// ErrItemNotFound indicates an unknown quest id.
	ErrItemNotFound = errors.New("quest not found")

	// ErrItemCompleted indicates a completion attempt on an already
	// completed quest.
	ErrItemCompleted = errors.New("quest already completed")

	// ErrInvalidRating indicates a star rating outside 0 to 5.
	ErrInvalidRating = errors.New("rating must be between 0 and 5")
)
