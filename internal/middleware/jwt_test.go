package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestGenerateAndValidateToken(t *testing.T) {
	userID := uuid.New()

	token, err := GenerateToken(userID, true)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.True(t, claims.IsAdmin)
	assert.Equal(t, "gator-find-api", claims.Issuer)
}

func TestValidateGarbageToken(t *testing.T) {
	_, err := ValidateToken("not.a.token")
	assert.Error(t, err)
}

func TestJWTMiddlewareSkipsUnprotectedRoutes(t *testing.T) {
	called := false
	handler := ApplyJWTMiddleware(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}, "/health")

	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.True(t, called)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestJWTMiddlewareRejectsMissingToken(t *testing.T) {
	handler := ApplyJWTMiddleware(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be reached")
	}, "/post")

	req := httptest.NewRequest("POST", "/post", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTMiddlewareSetsIdentity(t *testing.T) {
	userID := uuid.New()
	token, err := GenerateToken(userID, false)
	assert.NoError(t, err)

	handler := ApplyJWTMiddleware(func(w http.ResponseWriter, r *http.Request) {
		gotID, ok := GetUserIDFromContext(r.Context())
		assert.True(t, ok)
		assert.Equal(t, userID, gotID)
		assert.False(t, IsAdminFromContext(r.Context()))
	}, "/post")

	req := httptest.NewRequest("POST", "/post", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireAdmin(t *testing.T) {
	handler := RequireAdmin(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	// A regular user is refused
	userToken, err := GenerateToken(uuid.New(), false)
	assert.NoError(t, err)

	req := httptest.NewRequest("GET", "/report/list", nil)
	req.Header.Set("Authorization", "Bearer "+userToken)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// An admin gets through
	adminToken, err := GenerateToken(uuid.New(), true)
	assert.NoError(t, err)

	req = httptest.NewRequest("GET", "/report/list", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken)
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	// No token at all
	req = httptest.NewRequest("GET", "/report/list", nil)
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
