//go:build integration

package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"tradeintel/internal/auth"
	"tradeintel/internal/auth/store"
	"tradeintel/pkg/platform/sentinel"
	"tradeintel/pkg/testutil/containers"
)

type KeyStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *store.PostgresStore
	ctx      context.Context
}

func TestKeyStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(KeyStoreSuite))
}

func (s *KeyStoreSuite) SetupSuite() {
	s.postgres = containers.NewPostgresContainer(s.T())
	s.store = store.NewPostgres(s.postgres.DB)
	s.ctx = context.Background()
}

func (s *KeyStoreSuite) SetupTest() {
	s.Require().NoError(s.postgres.TruncateTables(s.ctx, "api_keys"))
}

func (s *KeyStoreSuite) TestCreateAndFind() {
	key := auth.APIKey{
		ID:         "key-1",
		Name:       "reporting",
		SecretHash: "$2a$10$abcdefghijklmnopqrstuv",
		CreatedAt:  time.Now().UTC().Truncate(time.Second),
	}
	s.Require().NoError(s.store.Create(s.ctx, key))

	found, err := s.store.FindByID(s.ctx, key.ID)
	s.Require().NoError(err)
	s.Equal(key.Name, found.Name)
	s.Equal(key.SecretHash, found.SecretHash)
	s.False(found.Disabled)
}

func (s *KeyStoreSuite) TestFindUnknown() {
	_, err := s.store.FindByID(s.ctx, "no-such-key")
	s.Require().ErrorIs(err, sentinel.ErrNotFound)
}
