package httpapi

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authhandler "sesaco/internal/auth/handler"
	authservice "sesaco/internal/auth/service"
	inspectorstore "sesaco/internal/auth/store/inspector"
	sessionstore "sesaco/internal/auth/store/session"
	"sesaco/internal/catalog"
	cataloghandler "sesaco/internal/catalog/handler"
	"sesaco/internal/jwttoken"
)

func newTestServer(t *testing.T) http.Handler {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	jwt := jwttoken.NewService("test-key", "sesaco", "sesaco-api")
	auth := authservice.New(inspectorstore.NewInMemory(), sessionstore.NewInMemory(), jwt, time.Hour)
	require.NoError(t, auth.Bootstrap(context.Background(), "1722212253", "s3cret", "Inspector Principal"))

	authH := authhandler.New(auth, logger)
	catalogH := cataloghandler.New(catalog.MustLoad())

	return NewRouter(Deps{
		Logger:    logger,
		Validator: jwt,
		Sessions:  auth,
		Public:    []Registrar{RegistrarFunc(authH.RegisterPublic)},
		Protected: []Registrar{authH, catalogH},
	})
}

func login(t *testing.T, srv http.Handler) string {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/auth/token",
		strings.NewReader(`{"cedula":"1722212253","password":"s3cret"}`))
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.NotEmpty(t, body.AccessToken)
	return body.AccessToken
}

func TestRouterAuthFlow(t *testing.T) {
	srv := newTestServer(t)
	token := login(t, srv)

	t.Run("protected route with a valid token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "1722212253")
	})

	t.Run("protected route without a token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/checklist/structure", nil)
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, req)

		require.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.JSONEq(t, `{"error":"unauthorized","error_description":"Invalid or expired token"}`, rec.Body.String())
	})

	t.Run("logout revokes the session behind the token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)

		req = httptest.NewRequest(http.MethodGet, "/auth/me", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec = httptest.NewRecorder()
		srv.ServeHTTP(rec, req)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestRouterOperationalEndpoints(t *testing.T) {
	srv := newTestServer(t)

	t.Run("healthz is public", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	})

	t.Run("metrics is public", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestRouterChecklistStructure(t *testing.T) {
	srv := newTestServer(t)
	token := login(t, srv)

	req := httptest.NewRequest(http.MethodGet, "/checklist/structure", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Sections []struct {
			Key       string `json:"key"`
			Questions []any  `json:"questions"`
		} `json:"sections"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Sections, 5)
	assert.Equal(t, "gestion_administrativa", body.Sections[0].Key)
	assert.NotEmpty(t, body.Sections[0].Questions)
}
