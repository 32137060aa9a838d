// Package app provides dependency injection container for assembling application components.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"sync"

	authHTTP "github.com/allisson/datashare/internal/auth/http"
	authService "github.com/allisson/datashare/internal/auth/service"
	authUseCase "github.com/allisson/datashare/internal/auth/usecase"
	"github.com/allisson/datashare/internal/config"
	"github.com/allisson/datashare/internal/database"
	datashareHTTP "github.com/allisson/datashare/internal/datashare/http"
	datashareUseCase "github.com/allisson/datashare/internal/datashare/usecase"
	"github.com/allisson/datashare/internal/http"
	"github.com/allisson/datashare/internal/kvstore"
	"github.com/allisson/datashare/internal/kvstore/badger"
	"github.com/allisson/datashare/internal/kvstore/leveldb"
	"github.com/allisson/datashare/internal/kvstore/memory"
	"github.com/allisson/datashare/internal/kvstore/sqlstore"
	"github.com/allisson/datashare/internal/metrics"
)

// Container holds all application dependencies and provides methods to access them.
// Components are created on first access and cached, including their init errors.
type Container struct {
	config *config.Config

	// Infrastructure
	logger          *slog.Logger
	db              *sql.DB
	store           kvstore.Store
	txManager       kvstore.TxManager
	metricsProvider *metrics.Provider
	businessMetrics metrics.BusinessMetrics

	// Auth
	secretService      authService.SecretService
	tokenService       authService.TokenService
	authorizer         authService.Authorizer
	auditSigner        authService.AuditSigner
	clientRepository   authUseCase.ClientRepository
	tokenRepository    authUseCase.TokenRepository
	auditLogRepository authUseCase.AuditLogRepository
	clientUseCase      authUseCase.ClientUseCase
	tokenUseCase       authUseCase.TokenUseCase
	auditLogUseCase    authUseCase.AuditLogUseCase
	clientHandler      *authHTTP.ClientHandler
	tokenHandler       *authHTTP.TokenHandler
	auditLogHandler    *authHTTP.AuditLogHandler

	// Datashare
	registryRepository  datashareUseCase.RegistryRepository
	dataRepository      datashareUseCase.DataRepository
	accessRepository    datashareUseCase.AccessRepository
	analyticsRepository datashareUseCase.AnalyticsRepository
	registryUseCase     datashareUseCase.RegistryUseCase
	dataUseCase         datashareUseCase.DataUseCase
	accessUseCase       datashareUseCase.AccessUseCase
	analyticsUseCase    datashareUseCase.AnalyticsUseCase
	registryHandler     *datashareHTTP.RegistryHandler
	dataHandler         *datashareHTTP.DataHandler
	accessHandler       *datashareHTTP.AccessHandler
	analyticsHandler    *datashareHTTP.AnalyticsHandler

	// Servers
	httpServer    *http.Server
	metricsServer *http.MetricsServer

	mu                      sync.Mutex
	loggerInit              sync.Once
	dbInit                  sync.Once
	storeInit               sync.Once
	txManagerInit           sync.Once
	metricsProviderInit     sync.Once
	businessMetricsInit     sync.Once
	secretServiceInit       sync.Once
	tokenServiceInit        sync.Once
	authorizerInit          sync.Once
	auditSignerInit         sync.Once
	clientRepositoryInit    sync.Once
	tokenRepositoryInit     sync.Once
	auditLogRepositoryInit  sync.Once
	clientUseCaseInit       sync.Once
	tokenUseCaseInit        sync.Once
	auditLogUseCaseInit     sync.Once
	clientHandlerInit       sync.Once
	tokenHandlerInit        sync.Once
	auditLogHandlerInit     sync.Once
	registryRepositoryInit  sync.Once
	dataRepositoryInit      sync.Once
	accessRepositoryInit    sync.Once
	analyticsRepositoryInit sync.Once
	registryUseCaseInit     sync.Once
	dataUseCaseInit         sync.Once
	accessUseCaseInit       sync.Once
	analyticsUseCaseInit    sync.Once
	registryHandlerInit     sync.Once
	dataHandlerInit         sync.Once
	accessHandlerInit       sync.Once
	analyticsHandlerInit    sync.Once
	httpServerInit          sync.Once
	metricsServerInit       sync.Once
	initErrors              map[string]error
}

// NewContainer creates a new dependency injection container with the provided configuration.
func NewContainer(cfg *config.Config) *Container {
	return &Container{
		config:     cfg,
		initErrors: make(map[string]error),
	}
}

// resolve runs init once, caching its value in slot and its error under name.
func resolve[T any](c *Container, once *sync.Once, name string, slot *T, init func() (T, error)) (T, error) {
	once.Do(func() {
		value, err := init()
		if err != nil {
			c.mu.Lock()
			c.initErrors[name] = err
			c.mu.Unlock()
			return
		}
		*slot = value
	})

	c.mu.Lock()
	err, exists := c.initErrors[name]
	c.mu.Unlock()
	if exists {
		var zero T
		return zero, err
	}
	return *slot, nil
}

// Config returns the application configuration.
func (c *Container) Config() *config.Config {
	return c.config
}

// Logger returns the configured logger instance.
func (c *Container) Logger() *slog.Logger {
	c.loggerInit.Do(func() {
		c.logger = c.initLogger()
	})
	return c.logger
}

// DB returns the SQL connection used by the postgres and mysql drivers.
func (c *Container) DB() (*sql.DB, error) {
	return resolve(c, &c.dbInit, "db", &c.db, c.initDB)
}

// Store returns the key-value store selected by DB_DRIVER.
func (c *Container) Store() (kvstore.Store, error) {
	return resolve(c, &c.storeInit, "store", &c.store, c.initStore)
}

// TxManager returns the transaction manager over Store.
func (c *Container) TxManager() (kvstore.TxManager, error) {
	return resolve(c, &c.txManagerInit, "txManager", &c.txManager, func() (kvstore.TxManager, error) {
		store, err := c.Store()
		if err != nil {
			return nil, fmt.Errorf("failed to get store for tx manager: %w", err)
		}
		return kvstore.NewTxManager(store), nil
	})
}

// MetricsProvider returns the Prometheus-backed meter provider, or nil when
// metrics are disabled.
func (c *Container) MetricsProvider() (*metrics.Provider, error) {
	return resolve(c, &c.metricsProviderInit, "metricsProvider", &c.metricsProvider, func() (*metrics.Provider, error) {
		if !c.config.MetricsEnabled {
			return nil, nil
		}
		return metrics.NewProvider(c.config.MetricsNamespace)
	})
}

// BusinessMetrics returns the business metrics recorder. It is a no-op when
// metrics are disabled.
func (c *Container) BusinessMetrics() (metrics.BusinessMetrics, error) {
	return resolve(c, &c.businessMetricsInit, "businessMetrics", &c.businessMetrics, func() (metrics.BusinessMetrics, error) {
		provider, err := c.MetricsProvider()
		if err != nil {
			return nil, fmt.Errorf("failed to get metrics provider for business metrics: %w", err)
		}
		if provider == nil {
			return metrics.NewNoOpBusinessMetrics(), nil
		}
		return metrics.NewBusinessMetrics(provider.MeterProvider(), c.config.MetricsNamespace)
	})
}

// HTTPServer returns the API server with every route mounted.
func (c *Container) HTTPServer() (*http.Server, error) {
	return resolve(c, &c.httpServerInit, "httpServer", &c.httpServer, c.initHTTPServer)
}

// MetricsServer returns the metrics server, or nil when metrics are disabled.
func (c *Container) MetricsServer() (*http.MetricsServer, error) {
	return resolve(c, &c.metricsServerInit, "metricsServer", &c.metricsServer, func() (*http.MetricsServer, error) {
		provider, err := c.MetricsProvider()
		if err != nil {
			return nil, fmt.Errorf("failed to get metrics provider for metrics server: %w", err)
		}
		if provider == nil {
			return nil, nil
		}
		return http.NewMetricsServer(c.config.ServerHost, c.config.MetricsPort, c.Logger(), provider), nil
	})
}

// Shutdown releases every initialized resource. The HTTP servers are stopped
// by their caller.
func (c *Container) Shutdown(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var shutdownErrors []error

	if c.metricsProvider != nil {
		if err := c.metricsProvider.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("metrics provider shutdown: %w", err))
		}
	}

	if c.store != nil {
		if err := c.store.Close(); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("store close: %w", err))
		}
	}

	if c.db != nil {
		if err := c.db.Close(); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("database close: %w", err))
		}
	}

	if len(shutdownErrors) > 0 {
		return fmt.Errorf("shutdown errors: %v", shutdownErrors)
	}

	return nil
}

// initLogger creates and configures a structured logger based on the log level.
func (c *Container) initLogger() *slog.Logger {
	var logLevel slog.Level
	switch c.config.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
}

func (c *Container) initDB() (*sql.DB, error) {
	if !c.config.IsSQLDriver() {
		return nil, fmt.Errorf("driver %q does not use a sql database", c.config.DBDriver)
	}
	db, err := database.Connect(database.Config{
		Driver:             c.config.DBDriver,
		ConnectionString:   c.config.DBConnectionString,
		MaxOpenConnections: c.config.DBMaxOpenConnections,
		MaxIdleConnections: c.config.DBMaxIdleConnections,
		ConnMaxLifetime:    c.config.DBConnMaxLifetime,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

func (c *Container) initStore() (kvstore.Store, error) {
	switch c.config.DBDriver {
	case config.DriverMemory:
		return memory.New(), nil
	case config.DriverBadger:
		return badger.Open(badger.Config{
			Path:       c.config.KVPath,
			SyncWrites: c.config.KVSyncWrites,
			Logger:     c.Logger(),
		})
	case config.DriverLevelDB:
		return leveldb.Open(leveldb.Config{
			Path:       c.config.KVPath,
			SyncWrites: c.config.KVSyncWrites,
		})
	case config.DriverPostgres, config.DriverMySQL:
		db, err := c.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get database for store: %w", err)
		}
		return sqlstore.New(db, c.config.DBDriver)
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

func (c *Container) initHTTPServer() (*http.Server, error) {
	store, err := c.Store()
	if err != nil {
		return nil, fmt.Errorf("failed to get store for http server: %w", err)
	}

	var handlers http.Handlers
	if handlers.Client, err = c.ClientHandler(); err != nil {
		return nil, err
	}
	if handlers.Token, err = c.TokenHandler(); err != nil {
		return nil, err
	}
	if handlers.AuditLog, err = c.AuditLogHandler(); err != nil {
		return nil, err
	}
	if handlers.Registry, err = c.RegistryHandler(); err != nil {
		return nil, err
	}
	if handlers.Data, err = c.DataHandler(); err != nil {
		return nil, err
	}
	if handlers.Access, err = c.AccessHandler(); err != nil {
		return nil, err
	}
	if handlers.Analytics, err = c.AnalyticsHandler(); err != nil {
		return nil, err
	}

	tokenUseCase, err := c.TokenUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get token use case for http server: %w", err)
	}
	registryUseCase, err := c.RegistryUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get registry use case for http server: %w", err)
	}
	metricsProvider, err := c.MetricsProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to get metrics provider for http server: %w", err)
	}

	server := http.NewServer(store, c.config.ServerHost, c.config.ServerPort, c.Logger())
	server.SetupRouter(c.config, handlers, tokenUseCase, c.TokenService(), registryUseCase, metricsProvider)
	return server, nil
}
