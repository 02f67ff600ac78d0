package domain

import "errors"

// Bad request.
var (
	ErrMissingFields = errors.New("missing required fields")
	ErrInvalidID     = errors.New("invalid id")
)

// Conflict.
var (
	ErrEmailTaken    = errors.New("email already registered")
	ErrUsernameTaken = errors.New("username already taken")
)

// Unauthorized.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Not found.
var (
	ErrUserNotFound    = errors.New("user not found")
	ErrOutfitNotFound  = errors.New("outfit not found")
	ErrCommentNotFound = errors.New("comment not found")
	ErrNothingDeleted  = errors.New("no outfits found to delete")
)

// IsNotFound reports whether err names an absent entity.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrUserNotFound) ||
		errors.Is(err, ErrOutfitNotFound) ||
		errors.Is(err, ErrCommentNotFound) ||
		errors.Is(err, ErrNothingDeleted)
}
