package routes

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ahmetcoskunkizilkaya/movie-server/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/movie-server/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

type denyAll struct{}

func (denyAll) RequireAdmin(context.Context, string) error { return services.ErrForbidden }

// newApp wires every route with nil-backed services. Only requests rejected
// before reaching a service (guards, id parsing) are safe to send.
func newApp() *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: handlers.ErrorHandler})
	ping := func(context.Context) error { return nil }
	tokens := services.NewTokenService(testSecret)
	Setup(app,
		tokens,
		denyAll{},
		handlers.NewTokenHandler(tokens),
		handlers.NewUserHandler(nil),
		handlers.NewListHandler(nil),
		handlers.NewListHandler(nil),
		handlers.NewCatalogHandler(nil),
		handlers.NewPaymentHandler(nil),
		handlers.NewHealthHandler(ping, nil),
	)
	return app
}

func send(t *testing.T, app *fiber.App, method, path, auth string) (int, string) {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func TestGuardedRoutesRequireToken(t *testing.T) {
	app := newApp()
	for _, r := range []struct{ method, path string }{
		{http.MethodGet, "/users"},
		{http.MethodGet, "/users/admin/a@x.com"},
		{http.MethodGet, "/favorite/a@x.com"},
		{http.MethodGet, "/save/a@x.com"},
		{http.MethodPost, "/payment"},
		{http.MethodGet, "/allpayment"},
		{http.MethodGet, "/payment?email=a@x.com"},
	} {
		status, body := send(t, app, r.method, r.path, "")
		assert.Equal(t, http.StatusUnauthorized, status, r.path)
		assert.JSONEq(t, `{"error":true,"message":"unauthorized access"}`, body, r.path)

		status, _ = send(t, app, r.method, r.path, "Bearer not-a-token")
		assert.Equal(t, http.StatusUnauthorized, status, r.path)
	}
}

func TestGuardedRoutesRejectTokenWithoutExpiry(t *testing.T) {
	app := newApp()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"email": "a@x.com",
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	for _, path := range []string{"/users/admin/a@x.com", "/favorite/a@x.com", "/allpayment"} {
		status, body := send(t, app, http.MethodGet, path, "Bearer "+token)
		assert.Equal(t, http.StatusUnauthorized, status, path)
		assert.JSONEq(t, `{"error":true,"message":"unauthorized access"}`, body, path)
	}
}

func TestListUsersRequiresAdmin(t *testing.T) {
	app := newApp()
	token, err := services.NewTokenService(testSecret).Issue(map[string]any{"email": "member@x.com"})
	require.NoError(t, err)

	status, body := send(t, app, http.MethodGet, "/users", "Bearer "+token)
	assert.Equal(t, http.StatusForbidden, status)
	assert.JSONEq(t, `{"error":true,"message":"forbidden access"}`, body)
}

func TestMalformedIDsAreRejected(t *testing.T) {
	app := newApp()
	for _, r := range []struct{ method, path string }{
		{http.MethodDelete, "/user/1"},
		{http.MethodGet, "/getprofileinfo/abc"},
		{http.MethodPut, "/updateprofile/abc"},
		{http.MethodPatch, "/users/admin/abc"},
		{http.MethodDelete, "/favorite/abc"},
		{http.MethodDelete, "/save/abc"},
		{http.MethodGet, "/subscription/abc"},
	} {
		status, body := send(t, app, r.method, r.path, "")
		assert.Equal(t, http.StatusBadRequest, status, r.path)
		assert.True(t, strings.Contains(body, `"error":true`), r.path)
	}
}

func TestPublicEndpoints(t *testing.T) {
	app := newApp()

	status, body := send(t, app, http.MethodGet, "/", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Movie server is running", body)

	status, _ = send(t, app, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, status)

	status, body = send(t, app, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "go_goroutines")
}
