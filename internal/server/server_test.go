package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantdash/quantdash/internal/modules/factors"
	"github.com/quantdash/quantdash/internal/modules/industry"
)

func testServer(t *testing.T) *Server {
	t.Helper()

	registry, err := factors.DefaultRegistry()
	require.NoError(t, err)
	resolver, err := industry.DefaultResolver()
	require.NoError(t, err)

	return New(Config{
		Log:      zerolog.Nop(),
		Port:     0,
		Registry: registry,
		Resolver: resolver,
	})
}

func TestServerRoutesRegistered(t *testing.T) {
	srv := testServer(t)

	testCases := []struct {
		method string
		path   string
	}{
		{"POST", "/api/factors/evaluate"},
		{"POST", "/api/factors/peer-stats"},
		{"GET", "/api/factors/definitions"},
		{"GET", "/api/industry/AAPL.US"},
		{"GET", "/api/system/health"},
	}

	for _, tc := range testCases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			rec := httptest.NewRecorder()
			srv.Router().ServeHTTP(rec, req)
			assert.NotEqual(t, http.StatusNotFound, rec.Code)
		})
	}
}

func TestHandleHealth(t *testing.T) {
	srv := testServer(t)

	req := httptest.NewRequest("GET", "/api/system/health", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var response HealthResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
	assert.Equal(t, "ok", response.Status)
	assert.GreaterOrEqual(t, response.UptimeSeconds, 0.0)
	assert.Greater(t, response.Goroutines, 0)
}
