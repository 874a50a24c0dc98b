package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/weatherfav/internal/database"
	"github.com/weatherfav/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FavoriteRepository handles favorite data access
type FavoriteRepository struct {
	db *gorm.DB
}

// NewFavoriteRepository creates a new FavoriteRepository
func NewFavoriteRepository(db *gorm.DB) *FavoriteRepository {
	return &FavoriteRepository{db: db}
}

// Create inserts a favorite. The (user_id, location) unique constraint
// turns a concurrent or repeated insert into ErrDuplicateKey; a missing
// owner row turns into ErrUserNotFound.
func (r *FavoriteRepository) Create(ctx context.Context, fav *models.Favorite) error {
	err := r.db.WithContext(ctx).Create(fav).Error
	switch {
	case err == nil:
		return nil
	case database.IsUniqueViolation(err):
		return fmt.Errorf("favorite %q: %w", fav.Location, ErrDuplicateKey)
	case database.IsForeignKeyViolation(err):
		return ErrUserNotFound
	default:
		return fmt.Errorf("create favorite: %w", err)
	}
}

// CreateForActiveUser inserts fav while holding a row lock on its owner.
// A concurrent account deletion either waits and then purges the new row,
// or commits first and the insert fails with ErrUserNotFound.
func (r *FavoriteRepository) CreateForActiveUser(ctx context.Context, fav *models.Favorite) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var owner models.User
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id").
			First(&owner, fav.UserID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return fmt.Errorf("lock user: %w", err)
		}
		return NewFavoriteRepository(tx).Create(ctx, fav)
	})
}

// ListByUserID returns a user's favorites in creation order
func (r *FavoriteRepository) ListByUserID(ctx context.Context, userID uint) ([]models.Favorite, error) {
	favorites := make([]models.Favorite, 0)
	result := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC, id ASC").
		Find(&favorites)
	if result.Error != nil {
		return nil, result.Error
	}
	return favorites, nil
}

// UpdateLocation renames the (userID, oldLocation) favorite to newLocation
// and refreshes updated_at.
func (r *FavoriteRepository) UpdateLocation(ctx context.Context, userID uint, oldLocation, newLocation string) error {
	result := r.db.WithContext(ctx).
		Model(&models.Favorite{}).
		Where("user_id = ? AND location = ?", userID, oldLocation).
		Update("location", newLocation)
	if result.Error != nil {
		if database.IsUniqueViolation(result.Error) {
			return fmt.Errorf("favorite %q: %w", newLocation, ErrDuplicateKey)
		}
		return fmt.Errorf("update favorite: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrFavoriteNotFound
	}
	return nil
}

// Delete removes a single favorite
func (r *FavoriteRepository) Delete(ctx context.Context, userID uint, location string) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND location = ?", userID, location).
		Delete(&models.Favorite{})
	if result.Error != nil {
		return fmt.Errorf("delete favorite: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrFavoriteNotFound
	}
	return nil
}

// DeleteByUserID removes all favorites for a user and reports how many
// rows went away.
func (r *FavoriteRepository) DeleteByUserID(ctx context.Context, userID uint) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&models.Favorite{})
	if result.Error != nil {
		return 0, fmt.Errorf("clear favorites: %w", result.Error)
	}
	return result.RowsAffected, nil
}
