package service

import "errors"

// Validation failures are rejected before any mutation is attempted and map
// to user-actionable messages at the API boundary. Not-found lookups return
// (nil, nil) from read methods; ErrNotFound is reserved for mutations whose
// target row must exist.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already registered")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidToken       = errors.New("invalid token")

	ErrRatingOutOfRange = errors.New("rating must be between 0 and 10")
	ErrNotRated         = errors.New("movie must be rated before adding to watchlist")
	ErrSelfFollow       = errors.New("cannot follow yourself")
	ErrSelfLike         = errors.New("cannot like your own watchlist")
	ErrQueryTooShort    = errors.New("search query must be at least 3 characters")

	ErrNotFound  = errors.New("not found")
	ErrForbidden = errors.New("forbidden")
)
