package service

import "errors"

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrDuplicateUsername  = errors.New("username already exists")
	ErrDuplicateFavorite  = errors.New("favorite already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrFavoriteNotFound   = errors.New("favorite not found")
	ErrInvalidCredentials = errors.New("invalid username or password")
)
