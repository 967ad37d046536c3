package users

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dmitrijs2005/movieapi/internal/common"
	"github.com/dmitrijs2005/movieapi/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustCreate(t *testing.T, r *MemoryRepository, name, email string) *models.User {
	t.Helper()
	u, err := r.Create(context.Background(), &models.User{UserName: name, PasswordHash: "h", Email: email})
	require.NoError(t, err)
	return u
}

func TestMemory_CreateAndLookup(t *testing.T) {
	r := NewMemoryRepository()
	ctx := context.Background()

	u := mustCreate(t, r, "alice01", "alice@example.com")
	require.NotEmpty(t, u.ID)

	byName, err := r.GetUserByLogin(ctx, "alice01")
	require.NoError(t, err)
	assert.Equal(t, u.ID, byName.ID)

	byID, err := r.GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice01", byID.UserName)

	_, err = r.GetUserByLogin(ctx, "nobody")
	assert.ErrorIs(t, err, common.ErrorNotFound)
	_, err = r.GetUserByID(ctx, "nope")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestMemory_UniqueUsernameAndEmail(t *testing.T) {
	r := NewMemoryRepository()
	mustCreate(t, r, "alice01", "alice@example.com")

	_, err := r.Create(context.Background(), &models.User{UserName: "alice01", Email: "other@example.com"})
	assert.ErrorIs(t, err, common.ErrAlreadyExists)

	_, err = r.Create(context.Background(), &models.User{UserName: "other01", Email: "alice@example.com"})
	assert.ErrorIs(t, err, common.ErrAlreadyExists)
}

// Registration is check-then-create from the caller's point of view; the
// store is what makes it safe. Exactly one concurrent attempt may win.
func TestMemory_ConcurrentRegistrationRace(t *testing.T) {
	r := NewMemoryRepository()

	const workers = 32
	var wins, conflicts atomic.Int32
	var wg sync.WaitGroup
	start := make(chan struct{})

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			_, err := r.Create(context.Background(), &models.User{UserName: "racer01", Email: "racer@example.com"})
			switch {
			case err == nil:
				wins.Add(1)
			case errors.Is(err, common.ErrAlreadyExists):
				conflicts.Add(1)
			}
		}()
	}
	close(start)
	wg.Wait()

	assert.Equal(t, int32(1), wins.Load())
	assert.Equal(t, int32(workers-1), conflicts.Load())
}

func TestMemory_ReturnsCopies(t *testing.T) {
	r := NewMemoryRepository()
	u := mustCreate(t, r, "alice01", "alice@example.com")

	u.UserName = "mutated"
	got, err := r.GetUserByID(context.Background(), u.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice01", got.UserName)
}

func TestMemory_UpdateKeepsIDAndChecksUniqueness(t *testing.T) {
	r := NewMemoryRepository()
	ctx := context.Background()
	a := mustCreate(t, r, "alice01", "alice@example.com")
	mustCreate(t, r, "bobby02", "bob@example.com")

	name := "alice02"
	bd := time.Date(2000, 5, 6, 0, 0, 0, 0, time.UTC)
	got, err := r.Update(ctx, a.ID, models.UserUpdate{UserName: &name, Birthday: &bd})
	require.NoError(t, err)
	assert.Equal(t, a.ID, got.ID)
	assert.Equal(t, "alice02", got.UserName)
	assert.Equal(t, "alice@example.com", got.Email)
	require.NotNil(t, got.Birthday)

	// keeping one's own email is fine
	own := "alice@example.com"
	_, err = r.Update(ctx, a.ID, models.UserUpdate{Email: &own})
	require.NoError(t, err)

	taken := "bobby02"
	_, err = r.Update(ctx, a.ID, models.UserUpdate{UserName: &taken})
	assert.ErrorIs(t, err, common.ErrAlreadyExists)

	_, err = r.Update(ctx, "missing", models.UserUpdate{UserName: &name})
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestMemory_FavoritesHaveSetSemantics(t *testing.T) {
	r := NewMemoryRepository()
	ctx := context.Background()
	a := mustCreate(t, r, "alice01", "alice@example.com")
	b := mustCreate(t, r, "bobby02", "bob@example.com")

	require.NoError(t, r.AddFavorite(ctx, a.ID, "m1"))
	require.NoError(t, r.AddFavorite(ctx, a.ID, "m1"))
	require.NoError(t, r.AddFavorite(ctx, a.ID, "m2"))
	require.NoError(t, r.AddFavorite(ctx, b.ID, "m2"))

	got, _ := r.GetUserByID(ctx, a.ID)
	assert.Equal(t, []string{"m1", "m2"}, got.FavoriteMovies)

	require.NoError(t, r.RemoveFavorite(ctx, a.ID, "m1"))
	got, _ = r.GetUserByID(ctx, a.ID)
	assert.Equal(t, []string{"m2"}, got.FavoriteMovies)

	require.NoError(t, r.RemoveMovieFromFavorites(ctx, "m2"))
	got, _ = r.GetUserByID(ctx, b.ID)
	assert.Empty(t, got.FavoriteMovies)

	assert.ErrorIs(t, r.AddFavorite(ctx, "missing", "m1"), common.ErrorNotFound)
}

func TestMemory_ListSortedAndDelete(t *testing.T) {
	r := NewMemoryRepository()
	ctx := context.Background()
	b := mustCreate(t, r, "bobby02", "bob@example.com")
	mustCreate(t, r, "alice01", "alice@example.com")

	list, err := r.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "alice01", list[0].UserName)

	require.NoError(t, r.Delete(ctx, b.ID))
	assert.ErrorIs(t, r.Delete(ctx, b.ID), common.ErrorNotFound)
	_, err = r.GetUserByLogin(ctx, "bobby02")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}
