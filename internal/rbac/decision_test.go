package rbac

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/praetor-admin/praetor-admin/internal/shared"
)

func TestAuthorizeExactMatch(t *testing.T) {
	claims := &shared.Claims{Authorities: []string{"ROLE_VIEWER", "X_READ"}}

	assert.NoError(t, Authorize(claims, "X_READ"))
	assert.NoError(t, Authorize(claims, "ROLE_VIEWER"))

	err := Authorize(claims, "X_WRITE")
	assert.True(t, errors.Is(err, shared.ErrPermissionDenied))
}

func TestAuthorizeNoWildcards(t *testing.T) {
	claims := &shared.Claims{Authorities: []string{"X_READ"}}

	assert.Error(t, Authorize(claims, "X_"))
	assert.Error(t, Authorize(claims, "x_read"))
	assert.Error(t, Authorize(claims, ""))
}

func TestAuthorizeEmptySetDeniesEverything(t *testing.T) {
	claims := &shared.Claims{Authorities: nil}
	assert.True(t, errors.Is(Authorize(claims, "X_READ"), shared.ErrPermissionDenied))
	assert.True(t, errors.Is(Authorize(nil, "X_READ"), shared.ErrPermissionDenied))
}

func TestRequireMiddleware(t *testing.T) {
	mw := Middleware{}
	executed := false
	handler := mw.Require("X_READ")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		executed = true
		w.WriteHeader(http.StatusNoContent)
	}))

	// Allowed.
	req := httptest.NewRequest(http.MethodGet, "/things", nil)
	ctx := shared.ContextWithClaims(req.Context(), &shared.Claims{Authorities: []string{"X_READ"}})
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req.WithContext(ctx))
	assert.True(t, executed)
	assert.Equal(t, http.StatusNoContent, res.Code)

	// Denied: handler must not run.
	executed = false
	req = httptest.NewRequest(http.MethodGet, "/things", nil)
	ctx = shared.ContextWithClaims(req.Context(), &shared.Claims{Authorities: []string{"X_WRITE"}})
	res = httptest.NewRecorder()
	handler.ServeHTTP(res, req.WithContext(ctx))
	assert.False(t, executed)
	assert.Equal(t, http.StatusForbidden, res.Code)

	// No claims at all.
	req = httptest.NewRequest(http.MethodGet, "/things", nil)
	res = httptest.NewRecorder()
	handler.ServeHTTP(res, req)
	assert.False(t, executed)
	assert.Equal(t, http.StatusForbidden, res.Code)
}
