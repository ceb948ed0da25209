package server

import (
	"net/http"
	"testing"

	"skillswap/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"username": "alex",
		"password": "password123",
		"bio":      "Full-stack developer",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var body authResponse
	decode(t, resp, &body)
	assert.NotZero(t, body.User.ID)
	assert.Equal(t, "alex", body.User.Username)
	assert.NotEmpty(t, body.SessionID)

	tests := []struct {
		name     string
		payload  map[string]string
		status   int
		wantCode string
	}{
		{"duplicate username", map[string]string{"username": "alex", "password": "password123"}, http.StatusConflict, models.CodeConflict},
		{"short password", map[string]string{"username": "sarah", "password": "123"}, http.StatusBadRequest, models.CodeValidation},
		{"short username", map[string]string{"username": "al", "password": "password123"}, http.StatusBadRequest, models.CodeValidation},
		{"missing fields", map[string]string{}, http.StatusBadRequest, models.CodeValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := env.do(t, http.MethodPost, "/api/auth/register", "", tt.payload)
			assert.Equal(t, tt.status, resp.StatusCode)
			assert.Equal(t, tt.wantCode, errorBody(t, resp).Code)
		})
	}
}

func TestLogin(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "sarah")

	t.Run("success", func(t *testing.T) {
		resp := env.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
			"username": "sarah",
			"password": "password123",
		})
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var body authResponse
		decode(t, resp, &body)
		assert.Equal(t, "sarah", body.User.Username)
		assert.NotEmpty(t, body.SessionID)
	})

	t.Run("wrong password", func(t *testing.T) {
		resp := env.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
			"username": "sarah",
			"password": "wrong-password",
		})
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, "Invalid username or password", errorBody(t, resp).Error)
	})

	t.Run("unknown user", func(t *testing.T) {
		resp := env.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
			"username": "nobody",
			"password": "password123",
		})
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("missing credentials", func(t *testing.T) {
		resp := env.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{"username": "sarah"})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestSessionAuthentication(t *testing.T) {
	env := newTestEnv(t)
	token, _ := env.register(t, "michael")

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"bearer token", "Bearer " + token, http.StatusOK},
		{"bare token", token, http.StatusOK},
		{"missing header", "", http.StatusUnauthorized},
		{"garbage token", "Bearer not-a-session", http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := newRequest(http.MethodGet, "/api/users/current", tt.header)
			resp, err := env.app.Test(req, -1)
			require.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, tt.status, resp.StatusCode)
		})
	}
}

func TestLogoutRevokesSession(t *testing.T) {
	env := newTestEnv(t)
	token, _ := env.register(t, "priya")

	resp := env.do(t, http.MethodPost, "/api/auth/logout", token, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = env.do(t, http.MethodGet, "/api/users/current", token, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
