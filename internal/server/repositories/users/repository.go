// Package users stores registered identities.
package users

import (
	"context"

	"github.com/dmitrijs2005/movieapi/internal/server/models"
)

// Repository is the identity store. Lookups return common.ErrorNotFound for
// missing records; Create and Update return common.ErrAlreadyExists when a
// username or email is taken.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetUserByLogin(ctx context.Context, login string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	List(ctx context.Context) ([]*models.User, error)
	Update(ctx context.Context, id string, upd models.UserUpdate) (*models.User, error)
	Delete(ctx context.Context, id string) error

	AddFavorite(ctx context.Context, userID, movieID string) error
	RemoveFavorite(ctx context.Context, userID, movieID string) error
	ClearFavorites(ctx context.Context, userID string) error
	RemoveMovieFromFavorites(ctx context.Context, movieID string) error
}
