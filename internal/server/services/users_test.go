package services

import (
	"context"
	"errors"
	"testing"

	"github.com/dmitrijs2005/movieapi/internal/common"
	"github.com/dmitrijs2005/movieapi/internal/logging"
	"github.com/dmitrijs2005/movieapi/internal/server/auth"
	"github.com/dmitrijs2005/movieapi/internal/server/models"
	"github.com/dmitrijs2005/movieapi/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/movieapi/internal/server/repositories/users"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newUserSvc(t *testing.T) (*UserService, *repomanager.MemoryRepositoryManager) {
	t.Helper()
	rm := repomanager.NewMemoryRepositoryManager()
	return NewUserService(rm, auth.NewPasswordHasher(bcrypt.MinCost), logging.Nop{}), rm
}

func TestRegister(t *testing.T) {
	svc, _ := newUserSvc(t)
	ctx := context.Background()

	u, err := svc.Register(ctx, Registration{UserName: "alice01", Password: "correcthorse", Email: "alice@example.com"})
	require.NoError(t, err)
	assert.NotEmpty(t, u.ID)
	assert.NotEqual(t, "correcthorse", u.PasswordHash)
	assert.True(t, svc.hasher.Verify("correcthorse", u.PasswordHash))

	_, err = svc.Register(ctx, Registration{UserName: "alice01", Password: "x", Email: "other@example.com"})
	assert.ErrorIs(t, err, common.ErrAlreadyExists)

	_, err = svc.Register(ctx, Registration{UserName: "bob0001", Password: "", Email: "bob@example.com"})
	assert.ErrorIs(t, err, common.ErrInvalidInput)
}

func TestUpdate_RehashesPassword(t *testing.T) {
	svc, _ := newUserSvc(t)
	ctx := context.Background()

	u, err := svc.Register(ctx, Registration{UserName: "alice01", Password: "correcthorse", Email: "alice@example.com"})
	require.NoError(t, err)

	newPass, newMail := "batterystaple", "alice@new.example.com"
	got, err := svc.Update(ctx, u, ProfileUpdate{Password: &newPass, Email: &newMail})
	require.NoError(t, err)
	assert.Equal(t, "alice01", got.UserName)
	assert.Equal(t, newMail, got.Email)
	assert.True(t, svc.hasher.Verify("batterystaple", got.PasswordHash))
	assert.False(t, svc.hasher.Verify("correcthorse", got.PasswordHash))
}

func TestFavorites(t *testing.T) {
	svc, rm := newUserSvc(t)
	ctx := context.Background()

	u, err := svc.Register(ctx, Registration{UserName: "alice01", Password: "correcthorse", Email: "alice@example.com"})
	require.NoError(t, err)
	movie, err := rm.Movies().Create(ctx, &models.Movie{Title: "Alien"})
	require.NoError(t, err)

	got, err := svc.AddFavorite(ctx, u, movie.ID)
	require.NoError(t, err)
	got, err = svc.AddFavorite(ctx, u, movie.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{movie.ID}, got.FavoriteMovies)

	_, err = svc.AddFavorite(ctx, u, "no-such-movie")
	assert.ErrorIs(t, err, common.ErrorNotFound)

	got, err = svc.RemoveFavorite(ctx, u, movie.ID)
	require.NoError(t, err)
	assert.Empty(t, got.FavoriteMovies)
}

func TestDeleteUser(t *testing.T) {
	svc, _ := newUserSvc(t)
	ctx := context.Background()

	u, err := svc.Register(ctx, Registration{UserName: "alice01", Password: "correcthorse", Email: "alice@example.com"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, u))
	_, err = svc.Get(ctx, "alice01")
	assert.ErrorIs(t, err, common.ErrorNotFound)

	err = svc.Delete(ctx, u)
	assert.True(t, errors.Is(err, common.ErrorNotFound))
}

func TestListUsers(t *testing.T) {
	svc, _ := newUserSvc(t)
	ctx := context.Background()

	for _, name := range []string{"alice01", "bobby02"} {
		_, err := svc.Register(ctx, Registration{UserName: name, Password: "pw", Email: name + "@example.com"})
		require.NoError(t, err)
	}
	list, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

type unreachableUsers struct {
	users.Repository
}

func (unreachableUsers) Create(context.Context, *models.User) (*models.User, error) {
	return nil, errors.New("dial tcp: connection refused")
}

func (unreachableUsers) Update(context.Context, string, models.UserUpdate) (*models.User, error) {
	return nil, errors.New("dial tcp: connection refused")
}

type unreachableManager struct {
	*repomanager.MemoryRepositoryManager
}

func (m unreachableManager) Users() users.Repository {
	return unreachableUsers{m.MemoryRepositoryManager.Users()}
}

func TestStoreOutage_IsErrStore(t *testing.T) {
	rm := unreachableManager{repomanager.NewMemoryRepositoryManager()}
	svc := NewUserService(rm, auth.NewPasswordHasher(bcrypt.MinCost), logging.Nop{})
	ctx := context.Background()

	_, err := svc.Register(ctx, Registration{UserName: "alice01", Password: "correcthorse", Email: "alice@example.com"})
	assert.ErrorIs(t, err, common.ErrStore)

	mail := "alice@new.example.com"
	_, err = svc.Update(ctx, &models.User{ID: "u1"}, ProfileUpdate{Email: &mail})
	assert.ErrorIs(t, err, common.ErrStore)
}

func TestStoreError_KeepsSentinels(t *testing.T) {
	for _, sentinel := range []error{common.ErrorNotFound, common.ErrAlreadyExists, common.ErrInvalidInput} {
		err := storeError(sentinel)
		assert.ErrorIs(t, err, sentinel)
		assert.NotErrorIs(t, err, common.ErrStore)
	}
	assert.ErrorIs(t, storeError(errors.New("boom")), common.ErrStore)
}
