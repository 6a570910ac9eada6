package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"tradeintel/internal/auth"
	"tradeintel/pkg/platform/sentinel"
)

// PostgresStore persists API keys in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed key store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Create(ctx context.Context, key auth.APIKey) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO api_keys (id, name, secret_hash, disabled, created_at) VALUES ($1, $2, $3, $4, $5)",
		key.ID, key.Name, key.SecretHash, key.Disabled, key.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create api key: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, id string) (*auth.APIKey, error) {
	var key auth.APIKey
	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, secret_hash, disabled, created_at FROM api_keys WHERE id = $1",
		id,
	).Scan(&key.ID, &key.Name, &key.SecretHash, &key.Disabled, &key.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find api key: %w", err)
	}
	return &key, nil
}
