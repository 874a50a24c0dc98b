package repository

import "errors"

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrFavoriteNotFound = errors.New("favorite not found")
	// ErrDuplicateKey is returned when the storage engine rejects a write
	// because of a unique constraint.
	ErrDuplicateKey = errors.New("duplicate key")
)
