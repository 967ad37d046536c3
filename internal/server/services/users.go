// Package services contains server-side business logic on top of the
// repositories.
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/movieapi/internal/common"
	"github.com/dmitrijs2005/movieapi/internal/logging"
	"github.com/dmitrijs2005/movieapi/internal/server/auth"
	"github.com/dmitrijs2005/movieapi/internal/server/models"
	"github.com/dmitrijs2005/movieapi/internal/server/repositories/repomanager"
)

// Registration is a validated sign-up request.
type Registration struct {
	UserName string
	Password string
	Email    string
	Birthday *time.Time
}

// ProfileUpdate holds the fields a user may change on their own record.
// Nil fields are left as they are.
type ProfileUpdate struct {
	UserName *string
	Password *string
	Email    *string
	Birthday *time.Time
}

// UserService manages accounts and their favorite movies.
type UserService struct {
	repomanager repomanager.RepositoryManager
	hasher      *auth.PasswordHasher
	logger      logging.Logger
}

// storeError passes domain sentinels through and marks anything else from
// the repositories as common.ErrStore.
func storeError(err error) error {
	switch {
	case errors.Is(err, common.ErrorNotFound),
		errors.Is(err, common.ErrAlreadyExists),
		errors.Is(err, common.ErrInvalidInput),
		errors.Is(err, common.ErrStore):
		return err
	default:
		return fmt.Errorf("%w: %w", common.ErrStore, err)
	}
}

func NewUserService(m repomanager.RepositoryManager, hasher *auth.PasswordHasher, logger logging.Logger) *UserService {
	return &UserService{repomanager: m, hasher: hasher, logger: logger.With("module", "users")}
}

// Register hashes the password and stores a new user. A taken username or
// email yields common.ErrAlreadyExists.
func (s *UserService) Register(ctx context.Context, reg Registration) (*models.User, error) {
	digest, err := s.hasher.Hash(reg.Password)
	if err != nil {
		return nil, err
	}

	user, err := s.repomanager.Users().Create(ctx, &models.User{
		UserName:     reg.UserName,
		PasswordHash: digest,
		Email:        reg.Email,
		Birthday:     reg.Birthday,
	})
	if err != nil {
		return nil, fmt.Errorf("error creating user: %w", storeError(err))
	}

	s.logger.Info(ctx, "user registered", "user_id", user.ID)
	return user, nil
}

func (s *UserService) List(ctx context.Context) ([]*models.User, error) {
	return s.repomanager.Users().List(ctx)
}

func (s *UserService) Get(ctx context.Context, userName string) (*models.User, error) {
	return s.repomanager.Users().GetUserByLogin(ctx, userName)
}

// Update changes the principal's own record, rehashing a new password.
func (s *UserService) Update(ctx context.Context, principal *models.User, upd ProfileUpdate) (*models.User, error) {
	change := models.UserUpdate{
		UserName: upd.UserName,
		Email:    upd.Email,
		Birthday: upd.Birthday,
	}
	if upd.Password != nil {
		digest, err := s.hasher.Hash(*upd.Password)
		if err != nil {
			return nil, err
		}
		change.PasswordHash = &digest
	}

	user, err := s.repomanager.Users().Update(ctx, principal.ID, change)
	if err != nil {
		return nil, fmt.Errorf("error updating user: %w", storeError(err))
	}
	return user, nil
}

// Delete removes the principal and their favorites in one transaction.
func (s *UserService) Delete(ctx context.Context, principal *models.User) error {
	err := s.repomanager.WithTx(ctx, func(ctx context.Context, repos repomanager.Repositories) error {
		if err := repos.Users().ClearFavorites(ctx, principal.ID); err != nil {
			return err
		}
		return repos.Users().Delete(ctx, principal.ID)
	})
	if err != nil {
		return fmt.Errorf("error deleting user: %w", storeError(err))
	}

	s.logger.Info(ctx, "user deleted", "user_id", principal.ID)
	return nil
}

// AddFavorite adds movieID to the principal's favorites. Adding a movie twice
// is a no-op; an unknown movie yields common.ErrorNotFound.
func (s *UserService) AddFavorite(ctx context.Context, principal *models.User, movieID string) (*models.User, error) {
	err := s.repomanager.WithTx(ctx, func(ctx context.Context, repos repomanager.Repositories) error {
		if _, err := repos.Movies().Get(ctx, movieID); err != nil {
			return err
		}
		return repos.Users().AddFavorite(ctx, principal.ID, movieID)
	})
	if err != nil {
		return nil, fmt.Errorf("error adding favorite: %w", storeError(err))
	}
	return s.repomanager.Users().GetUserByID(ctx, principal.ID)
}

func (s *UserService) RemoveFavorite(ctx context.Context, principal *models.User, movieID string) (*models.User, error) {
	if err := s.repomanager.Users().RemoveFavorite(ctx, principal.ID, movieID); err != nil {
		return nil, fmt.Errorf("error removing favorite: %w", storeError(err))
	}
	return s.repomanager.Users().GetUserByID(ctx, principal.ID)
}
