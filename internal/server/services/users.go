package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/userkeeper/internal/common"
	"github.com/dmitrijs2005/userkeeper/internal/logging"
	"github.com/dmitrijs2005/userkeeper/internal/server/auth"
	"github.com/dmitrijs2005/userkeeper/internal/server/models"
	"github.com/dmitrijs2005/userkeeper/internal/server/repositories/users"
)

// UserService orchestrates login and CRUD over the credential store.
// Passwords are hashed before the store is touched, so slow hashing never
// runs while a record is locked.
type UserService struct {
	repo   users.Repository
	hasher auth.PasswordHasher
	tokens auth.TokenIssuer
	logger logging.Logger
}

func NewUserService(repo users.Repository, hasher auth.PasswordHasher, tokens auth.TokenIssuer, logger logging.Logger) *UserService {
	return &UserService{
		repo:   repo,
		hasher: hasher,
		tokens: tokens,
		logger: logger.With("module", "user_service"),
	}
}

// Login returns an access token for email/password. Unknown email yields
// common.ErrorNotFound, a wrong password common.ErrInvalidCredentials.
func (s *UserService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", common.ErrorNotFound
		}
		return "", fmt.Errorf("error searching user: %w", err)
	}

	ok, err := s.hasher.Verify(ctx, password, user.PasswordHash)
	if err != nil {
		s.logger.Error(ctx, "password verification failed", "user_id", user.ID, "error", err.Error())
		return "", common.ErrInvalidCredentials
	}
	if !ok {
		return "", common.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(auth.Identity{UserID: user.ID, Email: user.Email})
	if err != nil {
		return "", fmt.Errorf("error issuing token: %w", err)
	}

	s.logger.Info(ctx, "user logged in", "user_id", user.ID)
	return token, nil
}

func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing users: %w", err)
	}
	return list, nil
}

// Create requires all three fields to be non-empty.
func (s *UserService) Create(ctx context.Context, name, email, password string) (*models.User, error) {
	if name == "" || email == "" || password == "" {
		return nil, common.ErrMissingFields
	}

	hash, err := s.hasher.Hash(ctx, password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user, err := s.repo.Create(ctx, &models.User{Name: name, Email: email, PasswordHash: hash})
	if err != nil {
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	s.logger.Info(ctx, "user created", "user_id", user.ID)
	return user, nil
}

// Update overwrites name and email with the given values, even empty ones.
// The stored hash changes only when password is non-empty.
func (s *UserService) Update(ctx context.Context, id int64, name, email, password string) (*models.User, error) {
	var hash string
	if password != "" {
		var err error
		hash, err = s.hasher.Hash(ctx, password)
		if err != nil {
			return nil, fmt.Errorf("error hashing password: %w", err)
		}
	}

	user, err := s.repo.Update(ctx, id, name, email, hash)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("error updating user: %w", err)
	}

	s.logger.Info(ctx, "user updated", "user_id", user.ID, "password_changed", hash != "")
	return user, nil
}

func (s *UserService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorNotFound
		}
		return fmt.Errorf("error deleting user: %w", err)
	}

	s.logger.Info(ctx, "user deleted", "user_id", id)
	return nil
}

// Seed creates the bootstrap record unless a user with that email exists.
func (s *UserService) Seed(ctx context.Context, name, email, password string) (*models.User, error) {
	existing, err := s.repo.GetByEmail(ctx, email)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, common.ErrorNotFound) {
		return nil, fmt.Errorf("error searching user: %w", err)
	}
	return s.Create(ctx, name, email, password)
}
