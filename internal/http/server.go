// Package http provides the API server, its router and the metrics server.
package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	authHTTP "github.com/allisson/datashare/internal/auth/http"
	authService "github.com/allisson/datashare/internal/auth/service"
	authUseCase "github.com/allisson/datashare/internal/auth/usecase"
	"github.com/allisson/datashare/internal/config"
	datashareHTTP "github.com/allisson/datashare/internal/datashare/http"
	"github.com/allisson/datashare/internal/kvstore"
	"github.com/allisson/datashare/internal/metrics"
)

// readinessKey is read by the readiness check. It is never written.
var readinessKey = kvstore.NewKey("READY").Bytes()

// Server represents the API server.
type Server struct {
	*listener
	store  kvstore.Store
	router *gin.Engine
	logger *slog.Logger
}

// Handlers bundles the route handlers mounted by SetupRouter.
type Handlers struct {
	Client    *authHTTP.ClientHandler
	Token     *authHTTP.TokenHandler
	AuditLog  *authHTTP.AuditLogHandler
	Registry  *datashareHTTP.RegistryHandler
	Data      *datashareHTTP.DataHandler
	Access    *datashareHTTP.AccessHandler
	Analytics *datashareHTTP.AnalyticsHandler
}

// NewServer creates a new API server. Call SetupRouter before Start.
func NewServer(store kvstore.Store, host string, port int, logger *slog.Logger) *Server {
	return &Server{
		listener: newListener("http server", host, port, logger),
		store:    store,
		logger:   logger,
	}
}

// SetupRouter builds the gin engine with every route of the API.
func (s *Server) SetupRouter(
	cfg *config.Config,
	handlers Handlers,
	tokenUseCase authUseCase.TokenUseCase,
	tokenService authService.TokenService,
	adminGuard authHTTP.AdminGuard,
	metricsProvider *metrics.Provider,
) {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(s.logger))

	if corsMiddleware := createCORSMiddleware(cfg.CORSEnabled, cfg.CORSAllowOrigins, s.logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	if metricsProvider != nil {
		metricsMiddleware, err := metrics.HTTPMetricsMiddleware(metricsProvider.MeterProvider(), cfg.MetricsNamespace)
		if err != nil {
			s.logger.Warn("http metrics disabled", slog.Any("error", err))
		} else {
			router.Use(metricsMiddleware)
		}
	}

	router.GET("/health", s.healthHandler)
	router.GET("/ready", s.readinessHandler)

	v1 := router.Group("/v1")

	// Token issuance is the only unauthenticated write.
	tokenRoutes := v1.Group("/auth")
	if cfg.RateLimitTokenEnabled {
		tokenRoutes.Use(authHTTP.TokenRateLimitMiddleware(
			cfg.RateLimitTokenRequestsPerSec,
			cfg.RateLimitTokenBurst,
			s.logger,
		))
	}
	tokenRoutes.POST("/token", handlers.Token.IssueTokenHandler)

	// Public reads need no identity.
	public := v1.Group("")
	if cfg.RateLimitEnabled {
		public.Use(authHTTP.TokenRateLimitMiddleware(cfg.RateLimitRequestsPerSec, cfg.RateLimitBurst, s.logger))
	}
	{
		public.GET("/nfts", handlers.Registry.TotalHandler)
		public.GET("/nfts/:id", handlers.Registry.GetHandler)
		public.GET("/nfts/:id/public", handlers.Data.ListPublicHandler)
		public.GET("/nfts/:id/public/:key", handlers.Data.ReadPublicHandler)
		public.GET("/nfts/:id/encrypted/:key", handlers.Data.GetEncryptedHandler)
		public.GET("/nfts/:id/tiers", handlers.Data.TiersHandler)
		public.GET("/nfts/:id/grants/:identity", handlers.Access.GrantsHandler)
		public.GET("/nfts/:id/stats", handlers.Analytics.AccessStatsHandler)
		public.GET("/nfts/:id/stats/count", handlers.Analytics.CountHandler)
		public.GET("/nfts/:id/integrity", handlers.Analytics.IntegrityHandler)
		public.GET("/stats", handlers.Analytics.SystemStatsHandler)
		public.GET("/stats/accesses", handlers.Analytics.TotalAccessesHandler)
	}

	authenticated := v1.Group("")
	authenticated.Use(authHTTP.AuthenticationMiddleware(tokenUseCase, tokenService, s.logger))
	if cfg.RateLimitEnabled {
		authenticated.Use(authHTTP.RateLimitMiddleware(cfg.RateLimitRequestsPerSec, cfg.RateLimitBurst, s.logger))
	}
	{
		authenticated.DELETE("/auth/token", handlers.Token.RevokeTokenHandler)
		authenticated.GET("/nfts/:id/shared/:key", handlers.Access.ReadSharedHandler)
		authenticated.PUT("/nfts/:id/shared/public/:key", handlers.Data.WritePublicHandler)
		authenticated.PUT("/nfts/:id/shared/encrypted/:key", handlers.Data.WriteEncryptedHandler)
		authenticated.POST("/nfts/:id/requests/:permission", handlers.Access.RequestHandler)
	}

	admin := authenticated.Group("")
	admin.Use(authHTTP.AdminMiddleware(adminGuard, s.logger))
	{
		admin.POST("/clients", handlers.Client.CreateHandler)
		admin.GET("/clients/:id", handlers.Client.GetHandler)
		admin.DELETE("/clients/:id", handlers.Client.DeleteHandler)
		admin.POST("/clients/:id/unlock", handlers.Client.UnlockHandler)

		admin.POST("/nfts", handlers.Registry.CreateHandler)
		admin.PUT("/nfts/:id/public/:key", handlers.Data.AddPublicHandler)
		admin.PUT("/nfts/:id/encrypted/:key", handlers.Data.AddEncryptedHandler)
		admin.PUT("/nfts/:id/grants/:identity/:permission", handlers.Access.GrantHandler)
		admin.DELETE("/nfts/:id/grants/:identity/:permission", handlers.Access.RevokeHandler)
		admin.GET("/nfts/:id/requests", handlers.Access.ListRequestsHandler)
		admin.POST("/nfts/:id/requests/:permission/:identity", handlers.Access.ResolveRequestHandler)

		admin.GET("/audit-logs", handlers.AuditLog.ListHandler)
		admin.GET("/audit-logs/verify", handlers.AuditLog.VerifyHandler)
	}

	s.router = router
}

// GetHandler returns the http.Handler for testing purposes.
func (s *Server) GetHandler() http.Handler {
	return s.router
}

// Start serves the API until Shutdown is called.
func (s *Server) Start(ctx context.Context) error {
	if s.router == nil {
		return fmt.Errorf("router not configured: call SetupRouter first")
	}
	return s.serve(s.router)
}

// healthHandler reports that the process is up.
// GET /health - Returns 200 OK.
func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// readinessHandler reports whether the key-value store answers.
// GET /ready - Returns 200 OK or 503 Service Unavailable.
func (s *Server) readinessHandler(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := s.pingStore(ctx); err != nil {
		s.logger.Warn("readiness check failed", slog.Any("error", err))
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":     "not_ready",
			"components": gin.H{"store": "error"},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     "ready",
		"components": gin.H{"store": "ok"},
	})
}

func (s *Server) pingStore(ctx context.Context) error {
	if s.store == nil {
		return fmt.Errorf("store not configured")
	}
	return s.store.Update(ctx, func(txn kvstore.Txn) error {
		_, err := txn.Has(ctx, readinessKey)
		return err
	})
}
