package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/weatherfav/internal/events"
	"github.com/weatherfav/internal/logging"
	"github.com/weatherfav/internal/models"
	"github.com/weatherfav/internal/repository"
	"github.com/weatherfav/pkg/crypto"
)

// CredentialService owns usernames, password hashes and salts
type CredentialService struct {
	userRepo  *repository.UserRepository
	publisher events.Publisher
}

// NewCredentialService creates a new CredentialService
func NewCredentialService(userRepo *repository.UserRepository, publisher events.Publisher) *CredentialService {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &CredentialService{
		userRepo:  userRepo,
		publisher: publisher,
	}
}

// CreateAccount registers username with a freshly salted hash of password.
func (s *CredentialService) CreateAccount(ctx context.Context, username, password string) (*models.User, error) {
	if strings.TrimSpace(username) == "" || password == "" {
		return nil, fmt.Errorf("%w: username and password are required", ErrInvalidInput)
	}
	if utf8.RuneCountInString(username) > models.MaxUsernameLength {
		return nil, fmt.Errorf("%w: username must be at most %d characters", ErrInvalidInput, models.MaxUsernameLength)
	}

	salt, hash, err := saltAndHash(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:     username,
		Salt:         salt,
		PasswordHash: hash,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, ErrDuplicateUsername
		}
		return nil, err
	}

	logging.Info("account created: id=%d username=%s", user.ID, user.Username)
	publish(ctx, s.publisher, events.Event{Type: events.AccountCreated, UserID: user.ID, Username: user.Username})
	return user, nil
}

// Authenticate returns the active user whose password matches. Unknown
// users and wrong passwords both fail with ErrInvalidCredentials; the
// former additionally matches ErrUserNotFound.
func (s *CredentialService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	if username == "" || password == "" {
		return nil, fmt.Errorf("%w: username and password are required", ErrInvalidInput)
	}

	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			crypto.CheckDummy(password)
			return nil, fmt.Errorf("%w: %w", ErrInvalidCredentials, ErrUserNotFound)
		}
		return nil, err
	}

	if !crypto.CheckPassword(password, user.Salt, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// UpdatePassword replaces the hash and salt after verifying oldPassword.
func (s *CredentialService) UpdatePassword(ctx context.Context, username, oldPassword, newPassword string) error {
	if newPassword == "" {
		return fmt.Errorf("%w: new password is required", ErrInvalidInput)
	}

	user, err := s.Authenticate(ctx, username, oldPassword)
	if err != nil {
		return err
	}

	salt, hash, err := saltAndHash(newPassword)
	if err != nil {
		return err
	}
	if err := s.userRepo.UpdateCredentials(ctx, user.ID, salt, hash); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			// deleted between the check and the write
			return ErrUserNotFound
		}
		return err
	}

	logging.Info("password updated: id=%d", user.ID)
	publish(ctx, s.publisher, events.Event{Type: events.PasswordUpdated, UserID: user.ID, Username: user.Username})
	return nil
}

// DeleteAccount verifies password, then soft-deletes the user and removes
// its favorites.
func (s *CredentialService) DeleteAccount(ctx context.Context, username, password string) error {
	user, err := s.Authenticate(ctx, username, password)
	if err != nil {
		return err
	}

	if err := s.userRepo.SoftDelete(ctx, user.ID); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	logging.Info("account deleted: id=%d username=%s", user.ID, user.Username)
	publish(ctx, s.publisher, events.Event{Type: events.AccountDeleted, UserID: user.ID, Username: user.Username})
	return nil
}

// ListUsers returns id and username of every active user
func (s *CredentialService) ListUsers(ctx context.Context) ([]models.UserSummary, error) {
	return s.userRepo.List(ctx)
}

func saltAndHash(password string) (salt, hash string, err error) {
	salt, err = crypto.GenerateSalt()
	if err != nil {
		return "", "", fmt.Errorf("generate salt: %w", err)
	}
	hash, err = crypto.HashPassword(password, salt)
	if err != nil {
		return "", "", fmt.Errorf("hash password: %w", err)
	}
	return salt, hash, nil
}
