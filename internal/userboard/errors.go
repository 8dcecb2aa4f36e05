package userboard

import "errors"

var (
	// ErrEmptyName indicates a login with a blank name.
	ErrEmptyName = errors.New("user name must not be empty")

	// ErrUserNotFound indicates an unknown user id.
	ErrUserNotFound = errors.New("user not found")
)
