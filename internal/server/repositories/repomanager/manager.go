// Package repomanager bundles the repositories behind one handle that also
// owns migrations and transactions.
package repomanager

import (
	"context"

	"github.com/dmitrijs2005/movieapi/internal/server/repositories/movies"
	"github.com/dmitrijs2005/movieapi/internal/server/repositories/users"
)

// Repositories is the set of repositories visible inside a transaction.
type Repositories interface {
	Users() users.Repository
	Movies() movies.Repository
}

type RepositoryManager interface {
	Repositories

	RunMigrations(ctx context.Context) error
	// WithTx runs fn with repositories bound to a single transaction.
	WithTx(ctx context.Context, fn func(ctx context.Context, repos Repositories) error) error
	Close() error
}
