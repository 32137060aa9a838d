package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authDomain "github.com/allisson/datashare/internal/auth/domain"
	authService "github.com/allisson/datashare/internal/auth/service"
	"github.com/allisson/datashare/internal/config"
	"github.com/allisson/datashare/internal/kvstore/memory"
)

func memoryConfig() *config.Config {
	return &config.Config{
		ServerHost:       "localhost",
		ServerPort:       8080,
		DBDriver:         config.DriverMemory,
		LogLevel:         "error",
		AuditSigningKey:  "test-signing-key",
		MetricsEnabled:   true,
		MetricsNamespace: "datashare_test",
		MetricsPort:      8081,
	}
}

func TestContainer_Logger(t *testing.T) {
	container := NewContainer(&config.Config{LogLevel: "debug"})
	assert.Nil(t, container.logger)

	logger := container.Logger()
	require.NotNil(t, logger)
	assert.Same(t, logger, container.Logger())
	assert.Same(t, container.config, container.Config())
}

func TestContainer_Store(t *testing.T) {
	t.Run("Memory", func(t *testing.T) {
		container := NewContainer(memoryConfig())
		store, err := container.Store()
		require.NoError(t, err)
		assert.IsType(t, &memory.Store{}, store)

		again, err := container.Store()
		require.NoError(t, err)
		assert.Same(t, store, again)
		require.NoError(t, container.Shutdown(context.Background()))
	})

	t.Run("LevelDB", func(t *testing.T) {
		cfg := memoryConfig()
		cfg.DBDriver = config.DriverLevelDB
		cfg.KVPath = filepath.Join(t.TempDir(), "leveldb")

		container := NewContainer(cfg)
		_, err := container.Store()
		require.NoError(t, err)
		require.NoError(t, container.Shutdown(context.Background()))
	})

	t.Run("Badger", func(t *testing.T) {
		cfg := memoryConfig()
		cfg.DBDriver = config.DriverBadger
		cfg.KVPath = filepath.Join(t.TempDir(), "badger")
		cfg.KVSyncWrites = false

		container := NewContainer(cfg)
		_, err := container.Store()
		require.NoError(t, err)
		require.NoError(t, container.Shutdown(context.Background()))
	})

	t.Run("UnsupportedDriverErrorIsCached", func(t *testing.T) {
		cfg := memoryConfig()
		cfg.DBDriver = "invalid_driver"
		container := NewContainer(cfg)

		_, err := container.Store()
		require.Error(t, err)
		_, err2 := container.Store()
		assert.Equal(t, err, err2)

		_, err = container.TokenUseCase()
		assert.ErrorContains(t, err, "unsupported database driver")
	})

	t.Run("DBRequiresSQLDriver", func(t *testing.T) {
		container := NewContainer(memoryConfig())
		_, err := container.DB()
		assert.Error(t, err)
	})
}

func TestContainer_AuditSignerRequiresKey(t *testing.T) {
	cfg := memoryConfig()
	cfg.AuditSigningKey = ""
	container := NewContainer(cfg)

	_, err := container.AuditLogUseCase()
	require.ErrorIs(t, err, authService.ErrEmptySigningKey)

	_, err = container.RegistryUseCase()
	assert.ErrorIs(t, err, authService.ErrEmptySigningKey)
}

func TestContainer_MetricsDisabled(t *testing.T) {
	cfg := memoryConfig()
	cfg.MetricsEnabled = false
	container := NewContainer(cfg)

	provider, err := container.MetricsProvider()
	require.NoError(t, err)
	assert.Nil(t, provider)

	metricsServer, err := container.MetricsServer()
	require.NoError(t, err)
	assert.Nil(t, metricsServer)

	_, err = container.HTTPServer()
	require.NoError(t, err)
}

func TestContainer_EndToEnd(t *testing.T) {
	ctx := context.Background()
	container := NewContainer(memoryConfig())
	defer func() {
		assert.NoError(t, container.Shutdown(ctx))
	}()

	clientUseCase, err := container.ClientUseCase()
	require.NoError(t, err)
	admin, err := clientUseCase.Create(ctx, &authDomain.CreateClientInput{Name: "admin", IsActive: true})
	require.NoError(t, err)

	registry, err := container.RegistryUseCase()
	require.NoError(t, err)
	require.NoError(t, registry.Initialize(ctx, admin.ID))

	id, err := registry.CreateToken(authService.WithCaller(ctx, admin.ID), "Genesis", "first token")
	require.NoError(t, err)
	assert.Equal(t, uint32(0), id)

	server, err := container.HTTPServer()
	require.NoError(t, err)

	w := httptest.NewRecorder()
	server.GetHandler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/nfts/0", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Genesis")

	metricsServer, err := container.MetricsServer()
	require.NoError(t, err)
	require.NotNil(t, metricsServer)

	w = httptest.NewRecorder()
	metricsServer.GetHandler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "datashare_test")

	auditLogUseCase, err := container.AuditLogUseCase()
	require.NoError(t, err)
	report, err := auditLogUseCase.Verify(ctx)
	require.NoError(t, err)
	assert.True(t, report.Passed())
	assert.Equal(t, uint64(3), report.Total)
}
