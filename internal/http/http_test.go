package http

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	authDomain "github.com/allisson/datashare/internal/auth/domain"
	authHTTP "github.com/allisson/datashare/internal/auth/http"
	authService "github.com/allisson/datashare/internal/auth/service"
	authMocks "github.com/allisson/datashare/internal/auth/usecase/mocks"
	"github.com/allisson/datashare/internal/config"
	datashareDomain "github.com/allisson/datashare/internal/datashare/domain"
	datashareHTTP "github.com/allisson/datashare/internal/datashare/http"
	datashareMocks "github.com/allisson/datashare/internal/datashare/usecase/mocks"
	"github.com/allisson/datashare/internal/kvstore/memory"
	"github.com/allisson/datashare/internal/metrics"
)

// TestMain sets Gin to test mode for all tests in this package.
func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestHealthHandler(t *testing.T) {
	server := NewServer(nil, "localhost", 8080, testLogger())

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/health", nil)

	server.healthHandler(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"healthy"}`, w.Body.String())
}

func TestReadinessHandler(t *testing.T) {
	t.Run("NotReady_NilStore", func(t *testing.T) {
		server := NewServer(nil, "localhost", 8080, testLogger())

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/ready", nil)

		server.readinessHandler(c)

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.JSONEq(t, `{"status":"not_ready","components":{"store":"error"}}`, w.Body.String())
	})

	t.Run("NotReady_ClosedStore", func(t *testing.T) {
		store := memory.New()
		require.NoError(t, store.Close())
		server := NewServer(store, "localhost", 8080, testLogger())

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/ready", nil)

		server.readinessHandler(c)

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})

	t.Run("Ready", func(t *testing.T) {
		store := memory.New()
		server := NewServer(store, "localhost", 8080, testLogger())

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/ready", nil)

		server.readinessHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"status":"ready","components":{"store":"ok"}}`, w.Body.String())
		assert.Equal(t, 0, store.Len())
	})
}

func TestCustomLoggerMiddleware(t *testing.T) {
	router := gin.New()
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(testLogger()))
	router.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "test"})
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test?x=1", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	requestID, err := uuid.Parse(w.Header().Get("X-Request-Id"))
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, requestID)
}

func TestRecoveryMiddleware(t *testing.T) {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(CustomLoggerMiddleware(testLogger()))
	router.GET("/panic", func(c *gin.Context) {
		panic("test panic")
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

// routerFixture builds a fully routed server on use case mocks.
type routerFixture struct {
	handler   http.Handler
	tokens    *authMocks.MockTokenUseCase
	guard     *mockAdminGuard
	registry  *datashareMocks.MockRegistryUseCase
	data      *datashareMocks.MockDataUseCase
	access    *datashareMocks.MockAccessUseCase
	analytics *datashareMocks.MockAnalyticsUseCase
}

type mockAdminGuard struct {
	mock.Mock
}

func (m *mockAdminGuard) RequireAdmin(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func newRouterFixture(t *testing.T) *routerFixture {
	t.Helper()
	logger := testLogger()

	f := &routerFixture{
		tokens:    authMocks.NewMockTokenUseCase(t),
		guard:     &mockAdminGuard{},
		registry:  datashareMocks.NewMockRegistryUseCase(t),
		data:      datashareMocks.NewMockDataUseCase(t),
		access:    datashareMocks.NewMockAccessUseCase(t),
		analytics: datashareMocks.NewMockAnalyticsUseCase(t),
	}
	tokenService := authService.NewTokenService()

	handlers := Handlers{
		Client:    authHTTP.NewClientHandler(authMocks.NewMockClientUseCase(t), logger),
		Token:     authHTTP.NewTokenHandler(f.tokens, tokenService, logger),
		AuditLog:  authHTTP.NewAuditLogHandler(authMocks.NewMockAuditLogUseCase(t), logger),
		Registry:  datashareHTTP.NewRegistryHandler(f.registry, logger),
		Data:      datashareHTTP.NewDataHandler(f.data, logger),
		Access:    datashareHTTP.NewAccessHandler(f.access, logger),
		Analytics: datashareHTTP.NewAnalyticsHandler(f.analytics, logger),
	}

	cfg := &config.Config{MetricsNamespace: "test"}
	server := NewServer(memory.New(), "localhost", 8080, logger)
	server.SetupRouter(cfg, handlers, f.tokens, tokenService, f.guard, nil)
	f.handler = server.GetHandler()
	return f
}

func (f *routerFixture) do(method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	f.handler.ServeHTTP(w, req)
	return w
}

func TestRouter_PublicRoutes(t *testing.T) {
	f := newRouterFixture(t)
	f.registry.On("GetTotalTokens", mock.Anything).Return(uint32(2), nil).Once()
	f.data.On("ReadPublicData", mock.Anything, uint32(1), "color").Return("red", nil).Once()

	w := f.do(http.MethodGet, "/v1/nfts", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"total_tokens":2}`, w.Body.String())

	w = f.do(http.MethodGet, "/v1/nfts/1/public/color", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"key":"color","value":"red"}`, w.Body.String())

	w = f.do(http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRouter_AuthenticatedRoutes(t *testing.T) {
	t.Run("Unauthorized_NoToken", func(t *testing.T) {
		f := newRouterFixture(t)

		w := f.do(http.MethodGet, "/v1/nfts/1/shared/k", "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Success_CallerFromToken", func(t *testing.T) {
		f := newRouterFixture(t)
		client := &authDomain.Client{ID: uuid.Must(uuid.NewV7()), Name: "reader", IsActive: true}
		f.tokens.On("Authenticate", mock.Anything, mock.AnythingOfType("string")).Return(client, nil).Once()
		f.access.On("ReadEncryptedData", mock.Anything, uint32(1), "k", client.ID).Return([]byte("c"), nil).Once()

		w := f.do(http.MethodGet, "/v1/nfts/1/shared/k", "plain-token")
		assert.Equal(t, http.StatusOK, w.Code)

		var response map[string]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, "Yw==", response["ciphertext"])
	})
}

func TestRouter_AdminRoutes(t *testing.T) {
	client := &authDomain.Client{ID: uuid.Must(uuid.NewV7()), Name: "system", IsActive: true}

	t.Run("Forbidden_NotAdmin", func(t *testing.T) {
		f := newRouterFixture(t)
		f.tokens.On("Authenticate", mock.Anything, mock.AnythingOfType("string")).Return(client, nil).Once()
		f.guard.On("RequireAdmin", mock.Anything).Return(datashareDomain.ErrAuthorization).Once()

		w := f.do(http.MethodDelete, "/v1/nfts/1/grants/"+client.ID.String()+"/read", "plain-token")
		assert.Equal(t, http.StatusForbidden, w.Code)
		f.guard.AssertExpectations(t)
	})

	t.Run("Success_Admin", func(t *testing.T) {
		f := newRouterFixture(t)
		f.tokens.On("Authenticate", mock.Anything, mock.AnythingOfType("string")).Return(client, nil).Once()
		f.guard.On("RequireAdmin", mock.Anything).Return(nil).Once()
		f.access.On("RevokeAccess", mock.Anything, datashareDomain.PermissionRead, client.ID, uint32(1)).
			Return(nil).
			Once()

		w := f.do(http.MethodDelete, "/v1/nfts/1/grants/"+client.ID.String()+"/read", "plain-token")
		assert.Equal(t, http.StatusNoContent, w.Code)
		f.guard.AssertExpectations(t)
	})
}

func TestRouter_NotFound(t *testing.T) {
	f := newRouterFixture(t)

	assert.Equal(t, http.StatusNotFound, f.do(http.MethodGet, "/nonexistent", "").Code)
	assert.Equal(t, http.StatusNotFound, f.do(http.MethodGet, "/metrics", "").Code)
}

func TestServer_StartRequiresRouter(t *testing.T) {
	server := NewServer(nil, "localhost", 0, testLogger())
	assert.Error(t, server.Start(context.Background()))
}

func TestServer_ShutdownGracefully(t *testing.T) {
	server := NewServer(memory.New(), "localhost", 0, testLogger())
	server.router = gin.New()

	errChan := make(chan error, 1)
	go func() {
		errChan <- server.Start(context.Background())
	}()

	time.Sleep(100 * time.Millisecond)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, server.Shutdown(shutdownCtx))

	select {
	case err := <-errChan:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestMetricsServer_Endpoints(t *testing.T) {
	provider, err := metrics.NewProvider("test_app")
	require.NoError(t, err)
	defer func() {
		assert.NoError(t, provider.Shutdown(context.Background()))
	}()

	metricsServer := NewMetricsServer("localhost", 8081, testLogger(), provider)
	require.NotNil(t, metricsServer)

	w := httptest.NewRecorder()
	metricsServer.GetHandler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/plain")
}

func TestMetricsServer_WithoutProvider(t *testing.T) {
	metricsServer := NewMetricsServer("localhost", 0, testLogger(), nil)

	w := httptest.NewRecorder()
	metricsServer.GetHandler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	metricsServer.GetHandler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
