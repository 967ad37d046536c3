// Package movies stores catalog records.
package movies

import (
	"context"

	"github.com/dmitrijs2005/movieapi/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, movie *models.Movie) (*models.Movie, error)
	Get(ctx context.Context, id string) (*models.Movie, error)
	List(ctx context.Context) ([]*models.Movie, error)
	Update(ctx context.Context, movie *models.Movie) (*models.Movie, error)
	Delete(ctx context.Context, id string) error
}
