package container

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/go-travel-ai-planner/config"
	"github.com/FACorreiaa/go-travel-ai-planner/internal/types"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := &config.Config{}
	cfg.Providers.Default = "openai"
	cfg.Providers.CredentialsFile = filepath.Join(t.TempDir(), "keys.yml")
	cfg.Cache.Backend = BackendMemory
	cfg.Cache.TTL = time.Hour
	cfg.Enrichment.LookupTimeout = time.Second
	return cfg
}

func TestNewContainer_MemoryBackend(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	c, err := NewContainer(context.Background(), testConfig(t), logger)
	require.NoError(t, err)
	defer c.Close()

	assert.Equal(t, types.ProviderOpenAI, c.DefaultProvider)
	assert.Equal(t, time.Hour, c.Cache.TTL())
	assert.Nil(t, c.Pool)
	assert.Nil(t, c.PostgresCache)
	assert.NotNil(t, c.TravelHandler)
	assert.NotNil(t, c.NotificationHandler)
	assert.NotNil(t, c.TravelService)
}

func TestNewContainer_SQLiteBackend(t *testing.T) {
	cfg := testConfig(t)
	cfg.Cache.Backend = BackendSQLite
	cfg.Cache.SQLite.Path = filepath.Join(t.TempDir(), "cache.db")

	c, err := NewContainer(context.Background(), cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	assert.Len(t, c.closers, 1)
	c.Close()
	assert.Empty(t, c.closers)
}

func TestNewContainer_Rejects(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	cfg := testConfig(t)
	cfg.Cache.Backend = "memcached"
	_, err := NewContainer(context.Background(), cfg, logger)
	assert.ErrorContains(t, err, `unknown cache backend "memcached"`)

	cfg = testConfig(t)
	cfg.Providers.Default = "claude"
	_, err = NewContainer(context.Background(), cfg, logger)
	assert.ErrorIs(t, err, types.ErrInvalidInput)
}
