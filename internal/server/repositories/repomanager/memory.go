package repomanager

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/movieapi/internal/server/repositories/movies"
	"github.com/dmitrijs2005/movieapi/internal/server/repositories/users"
)

// MemoryDSN selects the in-memory manager instead of Postgres.
const MemoryDSN = "memory"

// MemoryRepositoryManager keeps everything in process memory. Transactions
// are serialized with each other but are not rolled back on failure.
type MemoryRepositoryManager struct {
	txMu   sync.Mutex
	users  *users.MemoryRepository
	movies *movies.MemoryRepository
}

func NewMemoryRepositoryManager() *MemoryRepositoryManager {
	return &MemoryRepositoryManager{
		users:  users.NewMemoryRepository(),
		movies: movies.NewMemoryRepository(),
	}
}

func (m *MemoryRepositoryManager) Users() users.Repository   { return m.users }
func (m *MemoryRepositoryManager) Movies() movies.Repository { return m.movies }

func (m *MemoryRepositoryManager) RunMigrations(ctx context.Context) error { return nil }

func (m *MemoryRepositoryManager) WithTx(ctx context.Context, fn func(ctx context.Context, repos Repositories) error) error {
	m.txMu.Lock()
	defer m.txMu.Unlock()
	return fn(ctx, m)
}

func (m *MemoryRepositoryManager) Close() error { return nil }
