package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/movieapi/internal/common"
	"github.com/dmitrijs2005/movieapi/internal/logging"
	"github.com/dmitrijs2005/movieapi/internal/server/config"
	"github.com/dmitrijs2005/movieapi/internal/server/models"
	"github.com/dmitrijs2005/movieapi/internal/server/repositories/users"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type failingStore struct{ err error }

func (s failingStore) GetUserByLogin(context.Context, string) (*models.User, error) {
	return nil, s.err
}

func (s failingStore) GetUserByID(context.Context, string) (*models.User, error) {
	return nil, s.err
}

func testConfig() *config.Config {
	return &config.Config{SecretKey: "test-signing-key", TokenTTL: time.Hour, StoreTimeout: time.Second}
}

func newTestService(t *testing.T, store IdentityStore) *Service {
	t.Helper()
	svc, err := NewService(store, testConfig(), logging.Nop{}, WithHashCost(bcrypt.MinCost))
	require.NoError(t, err)
	return svc
}

func register(t *testing.T, svc *Service, repo *users.MemoryRepository, username, password string) *models.User {
	t.Helper()
	digest, err := svc.Hasher().Hash(password)
	require.NoError(t, err)
	u, err := repo.Create(context.Background(), &models.User{
		UserName:     username,
		PasswordHash: digest,
		Email:        username + "@example.com",
	})
	require.NoError(t, err)
	return u
}

func TestCredentialAuthenticator_Verify(t *testing.T) {
	repo := users.NewMemoryRepository()
	svc := newTestService(t, repo)
	alice := register(t, svc, repo, "alice01", "correcthorse")

	got, err := svc.Credentials().Verify(context.Background(), "alice01", "correcthorse")
	require.NoError(t, err)
	assert.Equal(t, alice.ID, got.ID)

	_, err = svc.Credentials().Verify(context.Background(), "alice01", "batterystaple")
	assert.ErrorIs(t, err, common.ErrInvalidCredentials)
}

func TestCredentialAuthenticator_EnumerationResistance(t *testing.T) {
	repo := users.NewMemoryRepository()
	svc := newTestService(t, repo)
	register(t, svc, repo, "alice01", "correcthorse")

	_, unknownErr := svc.Credentials().Verify(context.Background(), "doesnotexist", "correcthorse")
	_, wrongErr := svc.Credentials().Verify(context.Background(), "alice01", "wrong")

	require.Error(t, unknownErr)
	require.Error(t, wrongErr)
	assert.Equal(t, unknownErr.Error(), wrongErr.Error())
	assert.ErrorIs(t, unknownErr, common.ErrInvalidCredentials)
	assert.ErrorIs(t, wrongErr, common.ErrInvalidCredentials)
}

func TestCredentialAuthenticator_StoreFailure(t *testing.T) {
	svc := newTestService(t, failingStore{err: errors.New("connection refused")})

	_, err := svc.Credentials().Verify(context.Background(), "alice01", "correcthorse")
	assert.ErrorIs(t, err, common.ErrStore)
	assert.NotErrorIs(t, err, common.ErrInvalidCredentials)
	assert.False(t, common.IsAuthFailure(err))
}

func TestCredentialAuthenticator_Authenticate(t *testing.T) {
	repo := users.NewMemoryRepository()
	svc := newTestService(t, repo)
	register(t, svc, repo, "alice01", "correcthorse")

	jsonReq := httptest.NewRequest(http.MethodPost, "/login",
		strings.NewReader(`{"username":"alice01","password":"correcthorse"}`))
	jsonReq.Header.Set("Content-Type", "application/json")
	u, err := svc.Credentials().Authenticate(context.Background(), jsonReq)
	require.NoError(t, err)
	assert.Equal(t, "alice01", u.UserName)

	form := url.Values{"username": {"alice01"}, "password": {"correcthorse"}}
	formReq := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	formReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	u, err = svc.Credentials().Authenticate(context.Background(), formReq)
	require.NoError(t, err)
	assert.Equal(t, "alice01", u.UserName)

	badReq := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"username":`))
	badReq.Header.Set("Content-Type", "application/json")
	_, err = svc.Credentials().Authenticate(context.Background(), badReq)
	assert.ErrorIs(t, err, common.ErrInvalidCredentials)

	missing := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"username":"alice01"}`))
	missing.Header.Set("Content-Type", "application/json")
	_, err = svc.Credentials().Authenticate(context.Background(), missing)
	assert.ErrorIs(t, err, common.ErrInvalidCredentials)
}

func TestTokenAuthenticator_RoundTrip(t *testing.T) {
	repo := users.NewMemoryRepository()
	svc := newTestService(t, repo)
	alice := register(t, svc, repo, "alice01", "correcthorse")

	tok, err := svc.IssueToken(alice)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/movies", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	got, err := svc.Tokens().Authenticate(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, alice.ID, got.ID)
	assert.Equal(t, "alice01", got.UserName)
}

func TestTokenAuthenticator_StalePrincipal(t *testing.T) {
	repo := users.NewMemoryRepository()
	svc := newTestService(t, repo)
	alice := register(t, svc, repo, "alice01", "correcthorse")

	tok, err := svc.IssueToken(alice)
	require.NoError(t, err)
	require.NoError(t, repo.Delete(context.Background(), alice.ID))

	_, err = svc.Tokens().Resolve(context.Background(), tok)
	assert.ErrorIs(t, err, common.ErrStalePrincipal)
	assert.True(t, common.IsAuthFailure(err))
}

func TestTokenAuthenticator_StoreFailure(t *testing.T) {
	svc := newTestService(t, failingStore{err: errors.New("timeout")})

	tok, err := svc.IssueToken(&models.User{ID: "u-1"})
	require.NoError(t, err)

	_, err = svc.Tokens().Resolve(context.Background(), tok)
	assert.ErrorIs(t, err, common.ErrStore)
	assert.False(t, common.IsAuthFailure(err))
}

func TestTokenAuthenticator_BadHeaders(t *testing.T) {
	svc := newTestService(t, users.NewMemoryRepository())

	for _, h := range []string{"", "Bearer garbage", "Bearer", "Basic YWxpY2U6cHc=", "Token abc"} {
		req := httptest.NewRequest(http.MethodGet, "/movies", nil)
		if h != "" {
			req.Header.Set("Authorization", h)
		}
		_, err := svc.Tokens().Authenticate(context.Background(), req)
		assert.ErrorIs(t, err, common.ErrInvalidToken, "header %q", h)
	}
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		header string
		want   string
		ok     bool
	}{
		{"Bearer abc.def.ghi", "abc.def.ghi", true},
		{"bearer abc", "abc", true},
		{"  Bearer   abc  ", "abc", true},
		{"Bearer a b", "", false},
		{"Bearer ", "", false},
		{"Basic abc", "", false},
		{"abc", "", false},
	}
	for _, tt := range tests {
		got, ok := BearerToken(tt.header)
		assert.Equal(t, tt.ok, ok, tt.header)
		assert.Equal(t, tt.want, got, tt.header)
	}
}

func TestCheckOwnership(t *testing.T) {
	alice := &models.User{ID: "1", UserName: "alice"}

	assert.NoError(t, CheckOwnership(alice, "alice"))
	assert.ErrorIs(t, CheckOwnership(alice, "bob"), common.ErrPermissionDenied)
	assert.ErrorIs(t, CheckOwnership(nil, "alice"), common.ErrPermissionDenied)
}

func TestPrincipalContext(t *testing.T) {
	_, ok := PrincipalFromContext(context.Background())
	assert.False(t, ok)

	ctx := ContextWithPrincipal(context.Background(), &models.User{UserName: "alice"})
	u, ok := PrincipalFromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, "alice", u.UserName)
}

func TestNewService_Validation(t *testing.T) {
	cfg := testConfig()
	cfg.SecretKey = ""
	_, err := NewService(users.NewMemoryRepository(), cfg, logging.Nop{})
	assert.ErrorIs(t, err, common.ErrInvalidInput)

	cfg = testConfig()
	cfg.TokenTTL = 0
	_, err = NewService(users.NewMemoryRepository(), cfg, logging.Nop{})
	assert.ErrorIs(t, err, common.ErrInvalidInput)
}
