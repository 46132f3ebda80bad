package handler

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authmodels "sesaco/internal/auth/models"
	"sesaco/internal/auth/service"
	dErrors "sesaco/pkg/domain-errors"
)

type fakeService struct {
	loginResult *service.TokenResult
	loginErr    error
	logoutErr   error
	me          authmodels.Inspector
	meErr       error

	gotCedula   string
	gotPassword string
}

func (f *fakeService) Login(_ context.Context, cedula, password string) (*service.TokenResult, error) {
	f.gotCedula, f.gotPassword = cedula, password
	return f.loginResult, f.loginErr
}

func (f *fakeService) Logout(context.Context) error { return f.logoutErr }

func (f *fakeService) Me(context.Context) (authmodels.Inspector, error) { return f.me, f.meErr }

func newTestRouter(svc Service) chi.Router {
	h := New(svc, slog.New(slog.NewTextHandler(io.Discard, nil)))
	r := chi.NewRouter()
	h.RegisterPublic(r)
	h.Register(r)
	return r
}

func TestHandleLogin(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := &fakeService{loginResult: &service.TokenResult{
			AccessToken: "tok",
			TokenType:   "bearer",
			Name:        "Inspector Principal",
		}}
		r := newTestRouter(svc)

		req := httptest.NewRequest(http.MethodPost, "/auth/token",
			strings.NewReader(`{"cedula":"1722212253","password":"s3cret"}`))
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "1722212253", svc.gotCedula)
		assert.Equal(t, "s3cret", svc.gotPassword)
		assert.JSONEq(t, `{
			"access_token": "tok",
			"token_type": "bearer",
			"name": "Inspector Principal",
			"role": "",
			"expires_at": "0001-01-01T00:00:00Z"
		}`, rec.Body.String())
	})

	t.Run("bad credentials", func(t *testing.T) {
		svc := &fakeService{loginErr: dErrors.New(dErrors.CodeUnauthorized, "invalid cedula or password")}
		r := newTestRouter(svc)

		req := httptest.NewRequest(http.MethodPost, "/auth/token",
			strings.NewReader(`{"cedula":"1722212253","password":"nope"}`))
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		require.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.JSONEq(t, `{"error":"unauthorized","error_description":"invalid cedula or password"}`, rec.Body.String())
	})

	t.Run("malformed body", func(t *testing.T) {
		r := newTestRouter(&fakeService{})

		req := httptest.NewRequest(http.MethodPost, "/auth/token", strings.NewReader(`{"cedula":`))
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown fields rejected", func(t *testing.T) {
		r := newTestRouter(&fakeService{})

		req := httptest.NewRequest(http.MethodPost, "/auth/token",
			strings.NewReader(`{"cedula":"1","password":"x","admin":true}`))
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		require.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHandleLogout(t *testing.T) {
	r := newTestRouter(&fakeService{})

	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"logged_out"}`, rec.Body.String())
}

func TestHandleMe(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := &fakeService{me: authmodels.Inspector{
			Cedula: "1722212253",
			Name:   "Inspector Principal",
			Role:   authmodels.RoleAdmin,
		}}
		r := newTestRouter(svc)

		req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.NotContains(t, rec.Body.String(), "password")
		assert.JSONEq(t, `{
			"cedula": "1722212253",
			"name": "Inspector Principal",
			"role": "admin",
			"created_at": "0001-01-01T00:00:00Z"
		}`, rec.Body.String())
	})

	t.Run("unauthenticated", func(t *testing.T) {
		svc := &fakeService{meErr: dErrors.New(dErrors.CodeUnauthorized, "authentication required")}
		r := newTestRouter(svc)

		req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
