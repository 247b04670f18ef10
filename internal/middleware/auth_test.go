package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wayfareapp/wayfare-backend/internal/middleware"
)

type stubValidator struct {
	userID string
	ok     bool
}

func (s stubValidator) Validate(ctx context.Context, token string) (string, bool, error) {
	if token == "" {
		return "", false, nil
	}
	return s.userID, s.ok, nil
}

func TestRequireAuthRejectsMissingToken(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run without a session")
	})
	h := middleware.RequireAuth(stubValidator{})(next)

	res := httptest.NewRecorder()
	h.ServeHTTP(res, httptest.NewRequest(http.MethodPatch, "/api/reviews/x", nil))

	assert.Equal(t, http.StatusUnauthorized, res.Code)
}

func TestRequireAuthRejectsInvalidToken(t *testing.T) {
	h := middleware.RequireAuth(stubValidator{ok: false})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run with an invalid session")
	}))

	req := httptest.NewRequest(http.MethodPatch, "/api/reviews/x", nil)
	req.Header.Set("Authorization", "Bearer expired-token")
	res := httptest.NewRecorder()
	h.ServeHTTP(res, req)

	assert.Equal(t, http.StatusUnauthorized, res.Code)
}

func TestRequireAuthSetsActingIdentity(t *testing.T) {
	var got string
	h := middleware.RequireAuth(stubValidator{userID: "abc123", ok: true})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = middleware.UserID(r.Context())
	}))

	req := httptest.NewRequest(http.MethodPatch, "/api/reviews/x", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	res := httptest.NewRecorder()
	h.ServeHTTP(res, req)

	assert.Equal(t, http.StatusOK, res.Code)
	assert.Equal(t, "abc123", got)
}

func TestUserIDEmptyWithoutAuth(t *testing.T) {
	assert.Equal(t, "", middleware.UserID(context.Background()))
}
