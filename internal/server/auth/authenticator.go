package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/movieapi/internal/common"
	"github.com/dmitrijs2005/movieapi/internal/logging"
	"github.com/dmitrijs2005/movieapi/internal/server/models"
	"github.com/gin-gonic/gin/binding"
)

// IdentityStore is the part of the user repository authentication needs.
type IdentityStore interface {
	GetUserByLogin(ctx context.Context, login string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}

// Authenticator turns an incoming request into a principal or an error.
type Authenticator interface {
	Authenticate(ctx context.Context, r *http.Request) (*models.User, error)
}

// Credentials is the login body, accepted as JSON or form data.
type Credentials struct {
	Username string `json:"username" form:"username" binding:"required"`
	Password string `json:"password" form:"password" binding:"required"`
}

// CredentialAuthenticator checks a username and password.
type CredentialAuthenticator struct {
	store     IdentityStore
	hasher    *PasswordHasher
	timeout   time.Duration
	logger    logging.Logger
	dummyHash string
}

func NewCredentialAuthenticator(store IdentityStore, hasher *PasswordHasher, timeout time.Duration, logger logging.Logger) (*CredentialAuthenticator, error) {
	filler, err := common.MakeRandHexString(16)
	if err != nil {
		return nil, err
	}
	dummy, err := hasher.Hash(filler)
	if err != nil {
		return nil, err
	}
	return &CredentialAuthenticator{
		store:     store,
		hasher:    hasher,
		timeout:   timeout,
		logger:    logger,
		dummyHash: dummy,
	}, nil
}

func (a *CredentialAuthenticator) Authenticate(ctx context.Context, r *http.Request) (*models.User, error) {
	var creds Credentials
	if err := binding.Default(r.Method, contentType(r)).Bind(r, &creds); err != nil {
		a.logger.Info(ctx, "login rejected", "reason", "malformed credentials")
		return nil, common.ErrInvalidCredentials
	}
	return a.Verify(ctx, creds.Username, creds.Password)
}

// Verify returns the user when password matches. An unknown username and a
// wrong password produce the same error.
func (a *CredentialAuthenticator) Verify(ctx context.Context, username, password string) (*models.User, error) {
	lookupCtx, cancel := withTimeout(ctx, a.timeout)
	defer cancel()

	user, err := a.store.GetUserByLogin(lookupCtx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			a.hasher.Verify(password, a.dummyHash)
			a.logger.Info(ctx, "login rejected", "reason", "unknown user", "username", username)
			return nil, common.ErrInvalidCredentials
		}
		a.logger.Error(ctx, "login lookup failed", "error", err)
		return nil, fmt.Errorf("%w: %w", common.ErrStore, err)
	}

	if !a.hasher.Verify(password, user.PasswordHash) {
		a.logger.Info(ctx, "login rejected", "reason", "wrong password", "username", username)
		return nil, common.ErrInvalidCredentials
	}
	return user, nil
}

// TokenAuthenticator resolves a bearer token to a live user.
type TokenAuthenticator struct {
	store   IdentityStore
	codec   *TokenCodec
	timeout time.Duration
	logger  logging.Logger
}

func NewTokenAuthenticator(store IdentityStore, codec *TokenCodec, timeout time.Duration, logger logging.Logger) *TokenAuthenticator {
	return &TokenAuthenticator{store: store, codec: codec, timeout: timeout, logger: logger}
}

func (a *TokenAuthenticator) Authenticate(ctx context.Context, r *http.Request) (*models.User, error) {
	token, ok := BearerToken(r.Header.Get(common.AuthorizationHeaderName))
	if !ok {
		a.logger.Debug(ctx, "token rejected", "reason", "missing or malformed authorization header")
		return nil, common.ErrInvalidToken
	}
	return a.Resolve(ctx, token)
}

// Resolve verifies token and loads its subject.
func (a *TokenAuthenticator) Resolve(ctx context.Context, token string) (*models.User, error) {
	subject, err := a.codec.Verify(token)
	if err != nil {
		a.logger.Info(ctx, "token rejected", "reason", err.Error())
		return nil, err
	}

	lookupCtx, cancel := withTimeout(ctx, a.timeout)
	defer cancel()

	user, err := a.store.GetUserByID(lookupCtx, subject)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			a.logger.Info(ctx, "token rejected", "reason", "subject no longer exists", "user_id", subject)
			return nil, common.ErrStalePrincipal
		}
		a.logger.Error(ctx, "token subject lookup failed", "error", err)
		return nil, fmt.Errorf("%w: %w", common.ErrStore, err)
	}
	return user, nil
}

// BearerToken extracts the token from an Authorization header value.
// The scheme is matched case-insensitively.
func BearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, common.BearerScheme) {
		return "", false
	}
	token = strings.TrimSpace(token)
	if token == "" || strings.ContainsAny(token, " \t") {
		return "", false
	}
	return token, true
}

// withTimeout bounds a store lookup. A zero timeout leaves ctx unbounded.
func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}

func contentType(r *http.Request) string {
	ct, _, _ := strings.Cut(r.Header.Get("Content-Type"), ";")
	return strings.TrimSpace(ct)
}
