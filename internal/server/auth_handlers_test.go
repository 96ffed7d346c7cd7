package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"helenite/internal/config"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func postJSON(t *testing.T, app *fiber.App, path string, payload map[string]string) (*http.Response, map[string]any) {
	t.Helper()

	raw, err := json.Marshal(payload)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var parsed map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&parsed)
	_ = resp.Body.Close()
	return resp, parsed
}

func TestRegister(t *testing.T) {
	_, app, _ := newTestServer(t)

	valid := func() map[string]string {
		return map[string]string{
			"username":              "johndoe",
			"email":                 "john@example.com",
			"password":              "validpass1",
			"password_confirmation": "validpass1",
			"first_name":            "John",
			"last_name":             "Doe",
			"birthday":              "1992-03-14",
			"birth_place":           "Springfield",
		}
	}

	t.Run("success returns token and profile", func(t *testing.T) {
		resp, body := postJSON(t, app, "/api/v1/auth/register", valid())
		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		assert.NotEmpty(t, body["token"])

		profile, ok := body["profile"].(map[string]any)
		require.True(t, ok, "body: %v", body)
		assert.Equal(t, "johndoe", profile["slug"])
		assert.Equal(t, "johndoe", profile["username"])
	})

	t.Run("duplicate email conflicts", func(t *testing.T) {
		payload := valid()
		payload["username"] = "someoneelse"
		resp, body := postJSON(t, app, "/api/v1/auth/register", payload)
		assert.Equal(t, http.StatusConflict, resp.StatusCode)
		assert.Equal(t, "CONFLICT", body["code"])
	})

	t.Run("duplicate username conflicts", func(t *testing.T) {
		payload := valid()
		payload["email"] = "other@example.com"
		resp, _ := postJSON(t, app, "/api/v1/auth/register", payload)
		assert.Equal(t, http.StatusConflict, resp.StatusCode)
	})

	t.Run("short password rejected", func(t *testing.T) {
		payload := valid()
		payload["username"] = "shortpw"
		payload["email"] = "shortpw@example.com"
		payload["password"] = "abc1"
		payload["password_confirmation"] = "abc1"
		resp, body := postJSON(t, app, "/api/v1/auth/register", payload)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "VALIDATION_ERROR", body["code"])
	})

	t.Run("mismatched confirmation rejected", func(t *testing.T) {
		payload := valid()
		payload["username"] = "mismatch"
		payload["email"] = "mismatch@example.com"
		payload["password_confirmation"] = "different1"
		resp, _ := postJSON(t, app, "/api/v1/auth/register", payload)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("missing required fields rejected", func(t *testing.T) {
		resp, _ := postJSON(t, app, "/api/v1/auth/register", map[string]string{
			"username": "nopassword",
		})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("bad birthday format rejected", func(t *testing.T) {
		payload := valid()
		payload["username"] = "badbday"
		payload["email"] = "badbday@example.com"
		payload["birthday"] = "14/03/1992"
		resp, _ := postJSON(t, app, "/api/v1/auth/register", payload)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestLogin(t *testing.T) {
	s, app, _ := newTestServer(t)
	registerAccount(t, app, s, "loginuser")

	t.Run("valid credentials return token", func(t *testing.T) {
		resp, body := postJSON(t, app, "/api/v1/auth/login", map[string]string{
			"username": "loginuser",
			"password": "validpass1",
		})
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.NotEmpty(t, body["token"])
	})

	t.Run("wrong password rejected", func(t *testing.T) {
		resp, body := postJSON(t, app, "/api/v1/auth/login", map[string]string{
			"username": "loginuser",
			"password": "wrongpass1",
		})
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, "Invalid credentials", body["error"])
	})

	t.Run("unknown username gets the same answer", func(t *testing.T) {
		resp, body := postJSON(t, app, "/api/v1/auth/login", map[string]string{
			"username": "nosuchuser",
			"password": "validpass1",
		})
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, "Invalid credentials", body["error"])
	})
}

func TestAuthRequired(t *testing.T) {
	s, app, _ := newTestServer(t)
	account := registerAccount(t, app, s, "authuser")

	t.Run("missing token", func(t *testing.T) {
		status, body := doJSON(t, app, http.MethodGet, "/api/v1/feed", "", nil)
		assert.Equal(t, http.StatusUnauthorized, status)
		assert.Equal(t, "UNAUTHORIZED", body["code"])
	})

	t.Run("garbage token", func(t *testing.T) {
		status, _ := doJSON(t, app, http.MethodGet, "/api/v1/feed", "not-a-jwt", nil)
		assert.Equal(t, http.StatusUnauthorized, status)
	})

	t.Run("token signed with a different secret", func(t *testing.T) {
		other := &Server{config: &config.Config{JWTSecret: "completely-different-secret-abcdef"}}
		foreign, err := other.generateToken(account.UserID, "authuser")
		require.NoError(t, err)

		status, _ := doJSON(t, app, http.MethodGet, "/api/v1/feed", foreign, nil)
		assert.Equal(t, http.StatusUnauthorized, status)
	})

	t.Run("valid token passes", func(t *testing.T) {
		status, _ := doJSON(t, app, http.MethodGet, "/api/v1/feed", account.Token, nil)
		assert.Equal(t, http.StatusOK, status)
	})
}

func TestLogoutRevokesToken(t *testing.T) {
	s, app, _ := newTestServer(t)

	mr := miniredis.RunT(t)
	s.redis = redis.NewClient(&redis.Options{Addr: mr.Addr()})

	account := registerAccount(t, app, s, "logoutuser")

	status, _ := doJSON(t, app, http.MethodGet, "/api/v1/feed", account.Token, nil)
	require.Equal(t, http.StatusOK, status)

	status, body := doJSON(t, app, http.MethodPost, "/api/v1/auth/logout", account.Token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Logged out", body["message"])

	// The jti now sits on the denylist; the otherwise-valid token is dead.
	status, body = doJSON(t, app, http.MethodGet, "/api/v1/feed", account.Token, nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Token has been revoked", body["error"])

	// A fresh login works fine.
	resp, loginBody := postJSON(t, app, "/api/v1/auth/login", map[string]string{
		"username": "logoutuser",
		"password": "validpass1",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	token, _ := loginBody["token"].(string)

	status, _ = doJSON(t, app, http.MethodGet, "/api/v1/feed", token, nil)
	assert.Equal(t, http.StatusOK, status)
}
