package metrics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProvider(t *testing.T) {
	provider, err := NewProvider("provider_test")
	require.NoError(t, err)
	assert.NotNil(t, provider.MeterProvider())
	assert.NotNil(t, provider.exporter)
	assert.NotNil(t, provider.registry)
}

func TestProvider_HandlerExposesRuntimeCollectors(t *testing.T) {
	provider, err := NewProvider("provider_test")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	provider.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "go_goroutines")
}

func TestProvider_Shutdown(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		provider, err := NewProvider("provider_test")
		require.NoError(t, err)
		assert.NoError(t, provider.Shutdown(context.Background()))
	})

	t.Run("NilMeterProvider", func(t *testing.T) {
		provider := &Provider{}
		assert.NoError(t, provider.Shutdown(context.Background()))
	})
}
