package metrics

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// assertBizMetricLine matches a metric line by name, a partial label pattern
// and value. The exporter adds scope labels, so labels are matched loosely.
func assertBizMetricLine(t *testing.T, output, name, labels, value string) {
	t.Helper()
	pattern := name + `\{[^}]*` + labels + `[^}]*\} ` + value
	assert.Regexp(t, pattern, output)
}

func newTestBusinessMetrics(t *testing.T, namespace string) (*Provider, BusinessMetrics) {
	t.Helper()
	provider, err := NewProvider(namespace)
	require.NoError(t, err)
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	bm, err := NewBusinessMetrics(provider.MeterProvider(), namespace)
	require.NoError(t, err)
	return provider, bm
}

func scrape(t *testing.T, provider *Provider) string {
	t.Helper()
	w := httptest.NewRecorder()
	provider.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	return w.Body.String()
}

func TestBusinessMetrics_Operations(t *testing.T) {
	provider, bm := newTestBusinessMetrics(t, "ops_test")
	ctx := context.Background()

	bm.RecordOperation(ctx, "datashare", "token_create", "success")
	bm.RecordOperation(ctx, "datashare", "token_create", "success")
	bm.RecordOperation(ctx, "datashare", "token_create", "error")
	bm.RecordOperation(ctx, "auth", "client_create", "success")

	bm.RecordDuration(ctx, "datashare", "token_create", 40*time.Millisecond, "success")
	bm.RecordDuration(ctx, "datashare", "token_create", 60*time.Millisecond, "success")

	output := scrape(t, provider)

	assertBizMetricLine(t, output, `ops_test_operations_total`,
		`domain="datashare".*operation="token_create".*status="success"`, `2`)
	assertBizMetricLine(t, output, `ops_test_operations_total`,
		`domain="datashare".*operation="token_create".*status="error"`, `1`)
	assertBizMetricLine(t, output, `ops_test_operations_total`,
		`domain="auth".*operation="client_create".*status="success"`, `1`)
	assertBizMetricLine(t, output, `ops_test_operation_duration_seconds_count`,
		`domain="datashare".*operation="token_create".*status="success"`, `2`)
}

func TestBusinessMetrics_DataReads(t *testing.T) {
	provider, bm := newTestBusinessMetrics(t, "reads_test")
	ctx := context.Background()

	bm.RecordDataRead(ctx, TierPublic, true)
	bm.RecordDataRead(ctx, TierPublic, false)
	bm.RecordDataRead(ctx, TierPublic, false)
	bm.RecordDataRead(ctx, TierEncrypted, true)

	output := scrape(t, provider)

	assertBizMetricLine(t, output, `reads_test_data_reads_total`, `found="false".*tier="public"`, `2`)
	assertBizMetricLine(t, output, `reads_test_data_reads_total`, `found="true".*tier="public"`, `1`)
	assertBizMetricLine(t, output, `reads_test_data_reads_total`, `found="true".*tier="encrypted"`, `1`)
}

func TestObserve(t *testing.T) {
	provider, bm := newTestBusinessMetrics(t, "observe_test")
	ctx := context.Background()

	Observe(ctx, bm, "datashare", "grant_access", time.Now(), nil)
	Observe(ctx, bm, "datashare", "grant_access", time.Now(), errors.New("forbidden"))

	output := scrape(t, provider)

	assertBizMetricLine(t, output, `observe_test_operations_total`,
		`operation="grant_access".*status="success"`, `1`)
	assertBizMetricLine(t, output, `observe_test_operations_total`,
		`operation="grant_access".*status="error"`, `1`)
}

func TestNewNoOpBusinessMetrics(t *testing.T) {
	bm := NewNoOpBusinessMetrics()
	assert.IsType(t, &NoOpBusinessMetrics{}, bm)

	assert.NotPanics(t, func() {
		ctx := context.Background()
		bm.RecordOperation(ctx, "datashare", "public_data_read", "success")
		bm.RecordDuration(ctx, "datashare", "public_data_read", time.Millisecond, "success")
		bm.RecordDataRead(ctx, TierEncrypted, false)
		Observe(ctx, bm, "auth", "token_issue", time.Now(), nil)
	})
}
