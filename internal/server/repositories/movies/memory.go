package movies

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/dmitrijs2005/movieapi/internal/common"
	"github.com/dmitrijs2005/movieapi/internal/server/models"
	"github.com/google/uuid"
	"github.com/samber/lo"
)

// MemoryRepository keeps movies in process memory.
type MemoryRepository struct {
	mu   sync.RWMutex
	byID map[string]models.Movie
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{byID: make(map[string]models.Movie)}
}

func (r *MemoryRepository) Create(ctx context.Context, m *models.Movie) (*models.Movie, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *m
	stored.ID = uuid.NewString()
	r.byID[stored.ID] = stored
	return &stored, nil
}

func (r *MemoryRepository) Get(ctx context.Context, id string) (*models.Movie, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &m, nil
}

func (r *MemoryRepository) List(ctx context.Context) ([]*models.Movie, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := lo.MapToSlice(r.byID, func(_ string, m models.Movie) *models.Movie { return &m })
	slices.SortFunc(list, func(a, b *models.Movie) int { return strings.Compare(a.Title, b.Title) })
	return list, nil
}

func (r *MemoryRepository) Update(ctx context.Context, m *models.Movie) (*models.Movie, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[m.ID]; !ok {
		return nil, common.ErrorNotFound
	}
	stored := *m
	r.byID[m.ID] = stored
	return &stored, nil
}

func (r *MemoryRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return common.ErrorNotFound
	}
	delete(r.byID, id)
	return nil
}
