// Package auth verifies credentials and bearer tokens and decides whether a
// principal may act on a named identity.
package auth

import (
	"fmt"

	"github.com/dmitrijs2005/movieapi/internal/logging"
	"github.com/dmitrijs2005/movieapi/internal/server/config"
	"github.com/dmitrijs2005/movieapi/internal/server/models"
)

// Service is built once at startup and shared by all requests.
type Service struct {
	hasher      *PasswordHasher
	codec       *TokenCodec
	credentials *CredentialAuthenticator
	tokens      *TokenAuthenticator
}

type Option func(*options)

type options struct {
	hashCost int
}

// WithHashCost overrides the bcrypt cost. Tests use bcrypt.MinCost.
func WithHashCost(cost int) Option {
	return func(o *options) { o.hashCost = cost }
}

func NewService(store IdentityStore, cfg *config.Config, logger logging.Logger, opts ...Option) (*Service, error) {
	o := options{hashCost: DefaultCost}
	for _, opt := range opts {
		opt(&o)
	}

	codec, err := NewTokenCodec([]byte(cfg.SecretKey), cfg.TokenTTL)
	if err != nil {
		return nil, fmt.Errorf("token codec: %w", err)
	}

	logger = logger.With("module", "auth")
	hasher := NewPasswordHasher(o.hashCost)

	creds, err := NewCredentialAuthenticator(store, hasher, cfg.StoreTimeout, logger)
	if err != nil {
		return nil, fmt.Errorf("credential authenticator: %w", err)
	}

	return &Service{
		hasher:      hasher,
		codec:       codec,
		credentials: creds,
		tokens:      NewTokenAuthenticator(store, codec, cfg.StoreTimeout, logger),
	}, nil
}

func (s *Service) Hasher() *PasswordHasher               { return s.hasher }
func (s *Service) Credentials() *CredentialAuthenticator { return s.credentials }
func (s *Service) Tokens() *TokenAuthenticator           { return s.tokens }

// IssueToken signs a token for user.
func (s *Service) IssueToken(user *models.User) (string, error) {
	return s.codec.Issue(user.ID)
}
