package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/weatherfav/internal/database"
	"github.com/weatherfav/internal/models"
	"gorm.io/gorm"
)

// UserRepository handles user data access. Soft-deleted users are invisible
// to every query here.
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a new user. A username already held by an active user
// yields ErrDuplicateKey.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if database.IsUniqueViolation(err) {
			return fmt.Errorf("username %q: %w", user.Username, ErrDuplicateKey)
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

// GetByUsername retrieves an active user by exact, case-sensitive username
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	result := r.db.WithContext(ctx).Where("username = ?", username).First(&user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, result.Error
	}
	return &user, nil
}

// List returns every active user ordered by ID, without credential columns.
func (r *UserRepository) List(ctx context.Context) ([]models.UserSummary, error) {
	users := make([]models.UserSummary, 0)
	result := r.db.WithContext(ctx).
		Model(&models.User{}).
		Select("id", "username").
		Order("id").
		Find(&users)
	if result.Error != nil {
		return nil, result.Error
	}
	return users, nil
}

// UpdateCredentials replaces salt and password hash in a single statement.
func (r *UserRepository) UpdateCredentials(ctx context.Context, id uint, salt, passwordHash string) error {
	result := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"salt":          salt,
			"password_hash": passwordHash,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

// SoftDelete marks the user deleted and removes all of its favorites in
// one transaction. The username becomes available again.
func (r *UserRepository) SoftDelete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(&models.User{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrUserNotFound
		}
		return tx.Where("user_id = ?", id).Delete(&models.Favorite{}).Error
	})
}
