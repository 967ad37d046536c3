package users

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/movieapi/internal/common"
	"github.com/dmitrijs2005/movieapi/internal/server/models"
	"github.com/google/uuid"
	"github.com/samber/lo"
)

// MemoryRepository keeps users in process memory. Uniqueness of username and
// email is checked under the write lock, so concurrent registrations of the
// same username cannot both succeed.
type MemoryRepository struct {
	mu    sync.RWMutex
	byID  map[string]*models.User
	clock func() time.Time
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		byID:  make(map[string]*models.User),
		clock: time.Now,
	}
}

func (r *MemoryRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.checkUnique("", user.UserName, user.Email); err != nil {
		return nil, err
	}

	stored := clone(user)
	stored.ID = uuid.NewString()
	stored.CreatedAt = r.clock()
	stored.FavoriteMovies = []string{}
	r.byID[stored.ID] = stored

	return clone(stored), nil
}

func (r *MemoryRepository) GetUserByLogin(ctx context.Context, login string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := lo.Find(lo.Values(r.byID), func(u *models.User) bool { return u.UserName == login })
	if !ok {
		return nil, common.ErrorNotFound
	}
	return clone(u), nil
}

func (r *MemoryRepository) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return clone(u), nil
}

func (r *MemoryRepository) List(ctx context.Context) ([]*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := lo.Map(lo.Values(r.byID), func(u *models.User, _ int) *models.User { return clone(u) })
	slices.SortFunc(list, func(a, b *models.User) int { return strings.Compare(a.UserName, b.UserName) })
	return list, nil
}

func (r *MemoryRepository) Update(ctx context.Context, id string, upd models.UserUpdate) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}

	if err := r.checkUnique(id, lo.FromPtrOr(upd.UserName, ""), lo.FromPtrOr(upd.Email, "")); err != nil {
		return nil, err
	}

	if upd.UserName != nil {
		u.UserName = *upd.UserName
	}
	if upd.PasswordHash != nil {
		u.PasswordHash = *upd.PasswordHash
	}
	if upd.Email != nil {
		u.Email = *upd.Email
	}
	if upd.Birthday != nil {
		bd := *upd.Birthday
		u.Birthday = &bd
	}
	return clone(u), nil
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

func (r *MemoryRepository) AddFavorite(ctx context.Context, userID, movieID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.byID[userID]
	if !ok {
		return common.ErrorNotFound
	}
	if !lo.Contains(u.FavoriteMovies, movieID) {
		u.FavoriteMovies = append(u.FavoriteMovies, movieID)
	}
	return nil
}

func (r *MemoryRepository) RemoveFavorite(ctx context.Context, userID, movieID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if u, ok := r.byID[userID]; ok {
		u.FavoriteMovies = lo.Without(u.FavoriteMovies, movieID)
	}
	return nil
}

func (r *MemoryRepository) ClearFavorites(ctx context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if u, ok := r.byID[userID]; ok {
		u.FavoriteMovies = []string{}
	}
	return nil
}

func (r *MemoryRepository) RemoveMovieFromFavorites(ctx context.Context, movieID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.byID {
		u.FavoriteMovies = lo.Without(u.FavoriteMovies, movieID)
	}
	return nil
}

// checkUnique must be called with the write lock held. Empty values are not
// checked; selfID is skipped so a user may keep their own name.
func (r *MemoryRepository) checkUnique(selfID, userName, email string) error {
	for id, u := range r.byID {
		if id == selfID {
			continue
		}
		if userName != "" && u.UserName == userName {
			return fmt.Errorf("%w: users_username_key", common.ErrAlreadyExists)
		}
		if email != "" && u.Email == email {
			return fmt.Errorf("%w: users_email_key", common.ErrAlreadyExists)
		}
	}
	return nil
}

func clone(u *models.User) *models.User {
	c := *u
	c.FavoriteMovies = slices.Clone(u.FavoriteMovies)
	if u.Birthday != nil {
		bd := *u.Birthday
		c.Birthday = &bd
	}
	return &c
}
