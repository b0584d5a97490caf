package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/ahmetcoskunkizilkaya/movie-server/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthHandler(t *testing.T) {
	ok := func(context.Context) error { return nil }
	down := func(context.Context) error { return errors.New("connection refused") }

	tests := []struct {
		name   string
		db     Pinger
		cache  Pinger
		status int
		want   dto.HealthResponse
	}{
		{"all up", ok, ok, http.StatusOK, dto.HealthResponse{Status: "ok", DB: "ok", Cache: "ok"}},
		{"no cache", ok, nil, http.StatusOK, dto.HealthResponse{Status: "ok", DB: "ok", Cache: "disabled"}},
		{"cache down", ok, down, http.StatusOK, dto.HealthResponse{Status: "ok", DB: "ok", Cache: "unhealthy: connection refused"}},
		{"db down", down, nil, http.StatusServiceUnavailable, dto.HealthResponse{Status: "degraded", DB: "unhealthy: connection refused", Cache: "disabled"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHealthHandler(tt.db, tt.cache)
			app := newApp()
			app.Get("/", h.Root)
			app.Get("/health", h.Check)

			status, body := do(t, app, call{method: http.MethodGet, path: "/health"})
			assert.Equal(t, tt.status, status)
			var got dto.HealthResponse
			require.NoError(t, json.Unmarshal(body, &got))
			assert.NotEmpty(t, got.Timestamp)
			got.Timestamp = ""
			assert.Equal(t, tt.want, got)

			status, body = do(t, app, call{method: http.MethodGet, path: "/"})
			assert.Equal(t, http.StatusOK, status)
			assert.Equal(t, "Movie server is running", string(body))
		})
	}
}
