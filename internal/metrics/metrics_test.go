package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveTransaction(t *testing.T) {
	m := New()

	m.ObserveTransaction("organizations", "transact", "committed", 2*time.Millisecond)
	m.ObserveTransaction("organizations", "transact", "committed", time.Millisecond)
	m.ObserveTransaction("organizations", "transact", "rejected", time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.transactions.WithLabelValues("organizations", "transact", "committed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.transactions.WithLabelValues("organizations", "transact", "rejected")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.duration))
}

func TestHandlerExposesMetrics(t *testing.T) {
	m := New()
	m.ObserveTransaction("settings", "view", "read", time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `zaloga_docstore_transactions_total{document="settings",op="view",outcome="read"} 1`)
	assert.Contains(t, string(body), "go_goroutines")
}
