package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/studybridge/crm-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginEndpoint(t *testing.T) {
	t.Run("valid credentials answer 200 with a token", func(t *testing.T) {
		env := newTestEnv()
		_, err := env.authService.CreateAdmin(context.Background(), "Admin", "admin@example.com", "secret123")
		require.NoError(t, err)

		code, resp := env.do(t, http.MethodPost, "/auth/login",
			map[string]string{"email": "admin@example.com", "password": "secret123"})

		assert.Equal(t, http.StatusOK, code)
		assert.True(t, resp.Success)

		var login models.LoginResponse
		require.NoError(t, json.Unmarshal(resp.Data, &login))
		assert.NotEmpty(t, login.Token)
		assert.Equal(t, "admin@example.com", login.User.Email)
		assert.Empty(t, login.User.Password)
	})

	t.Run("wrong password answers 401", func(t *testing.T) {
		env := newTestEnv()
		_, err := env.authService.CreateAdmin(context.Background(), "Admin", "admin@example.com", "secret123")
		require.NoError(t, err)

		code, resp := env.do(t, http.MethodPost, "/auth/login",
			map[string]string{"email": "admin@example.com", "password": "wrong"})

		assert.Equal(t, http.StatusUnauthorized, code)
		assert.Equal(t, "Invalid email or password", resp.Error)
	})

	t.Run("unknown email answers the same 401", func(t *testing.T) {
		env := newTestEnv()

		code, resp := env.do(t, http.MethodPost, "/auth/login",
			map[string]string{"email": "nobody@example.com", "password": "secret123"})

		assert.Equal(t, http.StatusUnauthorized, code)
		assert.Equal(t, "Invalid email or password", resp.Error)
	})

	t.Run("malformed body answers 400", func(t *testing.T) {
		env := newTestEnv()

		code, resp := env.do(t, http.MethodPost, "/auth/login", map[string]string{"email": "not-an-email"})

		assert.Equal(t, http.StatusBadRequest, code)
		assert.False(t, resp.Success)
	})
}
