package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWithCountriesCacheWithoutRedis(t *testing.T) {
	inner := NewInMemory()

	// No Redis configured means no decoration: lookups keep hitting the store
	// directly. Cache behavior itself is covered by the integration tests.
	wrapped := WithCountriesCache(inner, nil, time.Minute, nil, nil)
	assert.Same(t, inner, wrapped)
}
