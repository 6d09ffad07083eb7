package config

import (
	"context"
	"testing"

	"freshtrack-backend/pkg/cache"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnectCache_FallsBackToMemory(t *testing.T) {
	t.Setenv("REDIS_URL", "")
	store, closeFn := ConnectCache(context.Background())
	require.NoError(t, closeFn())
	assert.IsType(t, &cache.MemoryStore{}, store)

	t.Setenv("REDIS_URL", "not a url")
	store, _ = ConnectCache(context.Background())
	assert.IsType(t, &cache.MemoryStore{}, store)

	t.Setenv("REDIS_URL", "redis://127.0.0.1:1/0")
	store, _ = ConnectCache(context.Background())
	assert.IsType(t, &cache.MemoryStore{}, store)
}

func TestNewRedisClient_ParsesURL(t *testing.T) {
	client, err := newRedisClient("redis://:secret@cache.internal:6380/2")
	require.NoError(t, err)
	defer client.Close()

	opts := client.Options()
	assert.Equal(t, "cache.internal:6380", opts.Addr)
	assert.Equal(t, "secret", opts.Password)
	assert.Equal(t, 2, opts.DB)
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, parseLevel("debug"), parseLevel("DEBUG"))
	assert.Equal(t, parseLevel("info"), parseLevel(""))
	assert.NotEqual(t, parseLevel("error"), parseLevel("info"))
}
