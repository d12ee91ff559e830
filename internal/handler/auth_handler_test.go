package handler

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anyulbade/merchant-dashboard-api/internal/model"
)

func TestAuthHandler_Login(t *testing.T) {
	env := newTestEnv(t)

	t.Run("happy: returns a bearer token and the user", func(t *testing.T) {
		w := env.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
			"email": "Manager@Example.com", "password": testPassword,
		})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		body := decode(t, w)
		assert.Equal(t, "Bearer", body["token_type"])
		assert.NotEmpty(t, body["access_token"])
		user := body["user"].(map[string]any)
		assert.Equal(t, "manager", user["role"])
		assert.Equal(t, "Manager", user["role_label"])
		assert.NotContains(t, w.Body.String(), "password")
	})

	t.Run("sad: wrong password", func(t *testing.T) {
		w := env.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
			"email": "manager@example.com", "password": "wrong-password",
		})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("sad: malformed email", func(t *testing.T) {
		w := env.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
			"email": "not-an-email", "password": testPassword,
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("sad: inactive account", func(t *testing.T) {
		off := testUser(model.RoleViewer, "off@example.com", env.viewer.PasswordHash, "B1")
		off.Status = model.UserInactive
		env.users.users[off.ID] = off

		w := env.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
			"email": off.Email, "password": testPassword,
		})
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestAuthHandler_SessionLifecycle(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/api/v1/auth/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = env.do(t, http.MethodGet, "/api/v1/auth/me", "garbage", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	token := env.login(t, env.viewer)
	w = env.do(t, http.MethodGet, "/api/v1/auth/me", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, env.viewer.Email, decode(t, w)["email"])

	w = env.do(t, http.MethodPost, "/api/v1/auth/logout", token, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = env.do(t, http.MethodGet, "/api/v1/auth/me", token, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestProfileHandler(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t, env.viewer)

	t.Run("update profile", func(t *testing.T) {
		w := env.do(t, http.MethodPut, "/api/v1/profile", token, map[string]string{
			"first_name": "Nok", "phone_number": "0812345678",
		})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		body := decode(t, w)
		assert.Equal(t, "Nok", body["first_name"])
		assert.Equal(t, "0812345678", body["phone_number"])

		w = env.do(t, http.MethodGet, "/api/v1/profile", token, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Nok", decode(t, w)["first_name"])
	})

	t.Run("sad: avatar must be a url", func(t *testing.T) {
		w := env.do(t, http.MethodPut, "/api/v1/profile", token, map[string]string{"avatar": "not a url"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("sad: wrong current password", func(t *testing.T) {
		w := env.do(t, http.MethodPut, "/api/v1/profile/password", token, map[string]string{
			"current_password": "nope-nope", "new_password": "brand-new-pass",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("change password signs out every session", func(t *testing.T) {
		w := env.do(t, http.MethodPut, "/api/v1/profile/password", token, map[string]string{
			"current_password": testPassword, "new_password": "brand-new-pass",
		})
		require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())

		w = env.do(t, http.MethodGet, "/api/v1/profile", token, nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)

		w = env.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
			"email": env.viewer.Email, "password": "brand-new-pass",
		})
		assert.Equal(t, http.StatusOK, w.Code)
	})
}
