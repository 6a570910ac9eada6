package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"tradeintel/internal/auth"
	"tradeintel/internal/auth/secrets"
	"tradeintel/internal/jwttoken"
	"tradeintel/pkg/platform/sentinel"
	"tradeintel/pkg/requestcontext"
)

// KeyStore persists API keys.
type KeyStore interface {
	Create(ctx context.Context, key auth.APIKey) error
	FindByID(ctx context.Context, id string) (*auth.APIKey, error)
}

// ErrUnauthorized covers every authentication failure. Callers learn nothing
// about whether the key exists, is disabled, or the secret was wrong.
var ErrUnauthorized = errors.New("unauthorized")

// Service exchanges API key credentials for access tokens and mints new keys.
type Service struct {
	keys   KeyStore
	tokens *jwttoken.Service
	logger *slog.Logger
}

// New constructs the auth service.
func New(keys KeyStore, tokens *jwttoken.Service, logger *slog.Logger) *Service {
	return &Service{keys: keys, tokens: tokens, logger: logger}
}

// Authenticate verifies the key id and secret and issues an access token.
func (s *Service) Authenticate(ctx context.Context, keyID, secret string) (token string, expiresIn time.Duration, err error) {
	key, err := s.keys.FindByID(ctx, keyID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return "", 0, ErrUnauthorized
		}
		return "", 0, fmt.Errorf("look up api key: %w", err)
	}
	if key.Disabled {
		s.logger.WarnContext(ctx, "disabled api key used",
			"request_id", requestcontext.RequestID(ctx),
			"api_key_id", key.ID,
		)
		return "", 0, ErrUnauthorized
	}
	if err := secrets.Verify(secret, key.SecretHash); err != nil {
		if errors.Is(err, secrets.ErrMismatch) {
			return "", 0, ErrUnauthorized
		}
		return "", 0, fmt.Errorf("verify api key secret: %w", err)
	}

	token, err = s.tokens.Generate(key.ID, key.Name)
	if err != nil {
		return "", 0, fmt.Errorf("issue access token: %w", err)
	}
	return token, s.tokens.TTL(), nil
}

// CreateKey mints a new API key and returns it with the plaintext secret.
// The secret is shown exactly once; only the hash is stored.
func (s *Service) CreateKey(ctx context.Context, name string) (*auth.APIKey, string, error) {
	if name == "" {
		return nil, "", errors.New("key name is required")
	}

	secret, err := secrets.Generate()
	if err != nil {
		return nil, "", err
	}
	hash, err := secrets.Hash(secret)
	if err != nil {
		return nil, "", err
	}

	key := auth.APIKey{
		ID:         uuid.NewString(),
		Name:       name,
		SecretHash: hash,
		CreatedAt:  requestcontext.Now(ctx),
	}
	if err := s.keys.Create(ctx, key); err != nil {
		return nil, "", err
	}

	s.logger.InfoContext(ctx, "api key created",
		"request_id", requestcontext.RequestID(ctx),
		"api_key_id", key.ID,
		"name", name,
	)
	return &key, secret, nil
}
