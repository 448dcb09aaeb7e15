package api_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdentityAPI_IssueAndUse(t *testing.T) {
	env := setupAPITest(t)

	// Identity issuance is the one endpoint that needs no token.
	req := httptest.NewRequest(http.MethodPost, "/api/v1/identity", nil)
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	resp := decodeBody(t, w)
	token, _ := resp["token"].(string)
	userID, _ := resp["user_id"].(string)
	require.NotEmpty(t, token)
	assert.Contains(t, userID, "device_")

	// The fresh token opens the protected routes.
	req = httptest.NewRequest(http.MethodGet, "/api/v1/recipes", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w = httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHealthEndpoint(t *testing.T) {
	env := setupAPITest(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", decodeBody(t, w)["status"])
}
