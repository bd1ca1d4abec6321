package otel_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pitosalas/blogbridge-sub012/pkg/metrics/otel"
	"github.com/stretchr/testify/require"
)

func TestMetricsClient_IncIsExported(t *testing.T) {
	t.Parallel()

	client, err := otel.NewMetricsClient("blogbridge-test")
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = client.Shutdown(context.Background())
	})

	client.Inc(context.Background(), "calculator_recompute_success", 3)
	client.Inc(context.Background(), "calculator_recompute_success", 2)
	client.Inc(context.Background(), "ignored", "not a number")

	recorder := httptest.NewRecorder()
	client.Handler().ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	body, err := io.ReadAll(recorder.Result().Body)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, recorder.Code)
	require.Contains(t, string(body), "calculator_recompute_success")
	require.Contains(t, string(body), " 5")
	require.NotContains(t, string(body), "ignored")
}
