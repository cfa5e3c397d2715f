package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conectaext/conecta-backend/auth"
	"github.com/conectaext/conecta-backend/models"
)

func authTestSetup(t *testing.T) (*auth.TokenIssuer, http.Handler, *models.User) {
	t.Helper()

	tokens := auth.NewTokenIssuer("test-secret", time.Hour)
	user := &models.User{
		ID:    uuid.New(),
		Email: "ana@example.edu",
		Role:  models.RoleTeacher,
	}

	middleware := newAuthMiddleware(tokens)
	protected := middleware.authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		callerID, role, err := ctxCaller(r.Context())
		require.NoError(t, err)
		assert.Equal(t, user.ID, callerID)
		assert.Equal(t, models.RoleTeacher, role)
		w.WriteHeader(http.StatusOK)
	}))

	return tokens, protected, user
}

func TestAuthenticateMissingHeader(t *testing.T) {
	_, protected, _ := authTestSetup(t)

	req := httptest.NewRequest(http.MethodGet, "/projects/all", nil)
	rec := httptest.NewRecorder()
	protected.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	var body struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.Equal(t, "missing bearer token", body.Message)
}

func TestAuthenticateBadToken(t *testing.T) {
	_, protected, _ := authTestSetup(t)

	req := httptest.NewRequest(http.MethodGet, "/projects/all", nil)
	req.Header.Set("Authorization", "Bearer not-a-real-token")
	rec := httptest.NewRecorder()
	protected.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticateWrongScheme(t *testing.T) {
	_, protected, _ := authTestSetup(t)

	req := httptest.NewRequest(http.MethodGet, "/projects/all", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	rec := httptest.NewRecorder()
	protected.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticateValidToken(t *testing.T) {
	tokens, protected, user := authTestSetup(t)

	token, err := tokens.Generate(user)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/projects/all", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	protected.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}
