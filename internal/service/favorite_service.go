package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/weatherfav/internal/events"
	"github.com/weatherfav/internal/models"
	"github.com/weatherfav/internal/repository"
)

// FavoriteService manages users' favorite locations
type FavoriteService struct {
	favoriteRepo *repository.FavoriteRepository
	publisher    events.Publisher
}

// NewFavoriteService creates a new FavoriteService
func NewFavoriteService(favoriteRepo *repository.FavoriteRepository, publisher events.Publisher) *FavoriteService {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &FavoriteService{
		favoriteRepo: favoriteRepo,
		publisher:    publisher,
	}
}

// AddFavorite bookmarks location for an active user.
func (s *FavoriteService) AddFavorite(ctx context.Context, userID uint, location string) (*models.Favorite, error) {
	location, err := cleanLocation(userID, location)
	if err != nil {
		return nil, err
	}

	fav := &models.Favorite{UserID: userID, Location: location}
	if err := s.favoriteRepo.CreateForActiveUser(ctx, fav); err != nil {
		return nil, translateFavoriteErr(err)
	}

	publish(ctx, s.publisher, events.Event{Type: events.FavoriteAdded, UserID: userID, Location: location})
	return fav, nil
}

// UpdateFavorite renames oldLocation to newLocation in place.
func (s *FavoriteService) UpdateFavorite(ctx context.Context, userID uint, oldLocation, newLocation string) error {
	oldLocation, err := cleanLocation(userID, oldLocation)
	if err != nil {
		return err
	}
	newLocation, err = cleanLocation(userID, newLocation)
	if err != nil {
		return err
	}

	if err := s.favoriteRepo.UpdateLocation(ctx, userID, oldLocation, newLocation); err != nil {
		return translateFavoriteErr(err)
	}

	publish(ctx, s.publisher, events.Event{
		Type:        events.FavoriteUpdated,
		UserID:      userID,
		Location:    newLocation,
		OldLocation: oldLocation,
	})
	return nil
}

// RemoveFavorite deletes a single favorite.
func (s *FavoriteService) RemoveFavorite(ctx context.Context, userID uint, location string) error {
	location, err := cleanLocation(userID, location)
	if err != nil {
		return err
	}

	if err := s.favoriteRepo.Delete(ctx, userID, location); err != nil {
		return translateFavoriteErr(err)
	}

	publish(ctx, s.publisher, events.Event{Type: events.FavoriteRemoved, UserID: userID, Location: location})
	return nil
}

// ClearFavorites removes every favorite of userID and reports how many
// there were. Clearing an empty list succeeds.
func (s *FavoriteService) ClearFavorites(ctx context.Context, userID uint) (int64, error) {
	if userID == 0 {
		return 0, fmt.Errorf("%w: user_id is required", ErrInvalidInput)
	}

	n, err := s.favoriteRepo.DeleteByUserID(ctx, userID)
	if err != nil {
		return 0, err
	}

	if n > 0 {
		publish(ctx, s.publisher, events.Event{Type: events.FavoritesCleared, UserID: userID, Count: n})
	}
	return n, nil
}

// GetFavorites lists userID's favorites, oldest first.
func (s *FavoriteService) GetFavorites(ctx context.Context, userID uint) ([]models.Favorite, error) {
	if userID == 0 {
		return nil, fmt.Errorf("%w: user_id is required", ErrInvalidInput)
	}
	return s.favoriteRepo.ListByUserID(ctx, userID)
}

func cleanLocation(userID uint, location string) (string, error) {
	if userID == 0 {
		return "", fmt.Errorf("%w: user_id is required", ErrInvalidInput)
	}
	location = strings.TrimSpace(location)
	if location == "" {
		return "", fmt.Errorf("%w: location is required", ErrInvalidInput)
	}
	if utf8.RuneCountInString(location) > models.MaxLocationLength {
		return "", fmt.Errorf("%w: location must be at most %d characters", ErrInvalidInput, models.MaxLocationLength)
	}
	return location, nil
}

func translateFavoriteErr(err error) error {
	switch {
	case errors.Is(err, repository.ErrDuplicateKey):
		return ErrDuplicateFavorite
	case errors.Is(err, repository.ErrFavoriteNotFound):
		return ErrFavoriteNotFound
	case errors.Is(err, repository.ErrUserNotFound):
		return ErrUserNotFound
	default:
		return err
	}
}
