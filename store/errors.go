package store

import "errors"

// Error taxonomy shared by the inventory and credential stores. Callers match
// with errors.Is and turn each into a single user-visible message; none of
// these are fatal.
var (
	ErrDuplicateItem        = errors.New("item already exists")
	ErrItemNotFound         = errors.New("item not found")
	ErrInsufficientStock    = errors.New("insufficient stock")
	ErrInvalidArgument      = errors.New("invalid argument")
	ErrUsernameTaken        = errors.New("username already exists")
	ErrAuthenticationFailed = errors.New("invalid credentials")
	ErrPersistence          = errors.New("persistence failure")
)
