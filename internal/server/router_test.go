package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/valeevte/PurchaseReport/internal/config"
	"github.com/valeevte/PurchaseReport/internal/metrics"
	"github.com/valeevte/PurchaseReport/internal/purchases"
	"github.com/valeevte/PurchaseReport/internal/upstream"
)

type staticFetcher []upstream.RawPurchase

func (f staticFetcher) Fetch(context.Context) ([]upstream.RawPurchase, error) { return f, nil }

func newHandler(t *testing.T, sec config.SecurityConfig) (http.Handler, *metrics.Registry) {
	t.Helper()
	m := metrics.NewRegistry()
	svc := purchases.NewService(staticFetcher{
		{ProductName: "Pen", Name: "Alice", PurchaseQuantity: 3, ProductPrice: "2.00"},
	}, purchases.NewMemoryStore(), m)
	return NewRouter(config.ServerConfig{GinMode: "test"}, sec, purchases.NewHandler(svc), m), m
}

func get(h http.Handler, path string, hdr map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.RemoteAddr = "10.0.0.1:1234"
	for k, v := range hdr {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRouter_ServesRoutesAndMetrics(t *testing.T) {
	h, _ := newHandler(t, config.SecurityConfig{})

	assert.Equal(t, http.StatusOK, get(h, "/", nil).Code)
	assert.Equal(t, http.StatusOK, get(h, "/fetch-and-store", nil).Code)

	rec := get(h, "/metrics", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `purchase_ingest_runs_total{outcome="success"} 1`)
	assert.Contains(t, rec.Body.String(), `purchase_http_requests_total{route="/fetch-and-store",status="200"} 1`)
}

func TestRouter_CORS(t *testing.T) {
	h, _ := newHandler(t, config.SecurityConfig{CORSOrigins: []string{"https://app.example"}})

	rec := get(h, "/data", map[string]string{"Origin": "https://app.example"})
	assert.Equal(t, "https://app.example", rec.Header().Get("Access-Control-Allow-Origin"))

	rec = get(h, "/data", map[string]string{"Origin": "https://evil.example"})
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRouter_RateLimit(t *testing.T) {
	h, _ := newHandler(t, config.SecurityConfig{RateLimitReqs: 2, RateLimitWindow: time.Minute})

	assert.Equal(t, http.StatusOK, get(h, "/", nil).Code)
	assert.Equal(t, http.StatusOK, get(h, "/", nil).Code)
	assert.Equal(t, http.StatusTooManyRequests, get(h, "/", nil).Code)
}
