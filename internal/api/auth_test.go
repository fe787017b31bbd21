package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegisterAndLogin(t *testing.T) {
	env := setupEnv(t)

	w := env.do(t, "POST", "/api/v1/auth/register", map[string]any{
		"name":           "New User",
		"email":          "new@example.com",
		"password":       "supersecret",
		"username":       "newuser",
		"age":            25,
		"sex":            "female",
		"activity_level": "light",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	var created map[string]string
	decodeJSON(t, w, &created)
	assert.NotEmpty(t, created["token"])

	w = env.do(t, "POST", "/api/v1/auth/login", map[string]any{
		"email":    "new@example.com",
		"password": "supersecret",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var logged map[string]string
	decodeJSON(t, w, &logged)
	assert.NotEmpty(t, logged["token"])
}

func TestRegisterDuplicateEmail(t *testing.T) {
	env := setupEnv(t)

	payload := map[string]any{
		"name":     "New User",
		"email":    "dup@example.com",
		"password": "supersecret",
		"username": "dupuser",
	}
	w := env.do(t, "POST", "/api/v1/auth/register", payload)
	assert.Equal(t, http.StatusCreated, w.Code)

	payload["username"] = "dupuser2"
	w = env.do(t, "POST", "/api/v1/auth/register", payload)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestLoginWrongPassword(t *testing.T) {
	env := setupEnv(t)

	w := env.do(t, "POST", "/api/v1/auth/register", map[string]any{
		"name":     "New User",
		"email":    "wrongpw@example.com",
		"password": "supersecret",
		"username": "wrongpw",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	w = env.do(t, "POST", "/api/v1/auth/login", map[string]any{
		"email":    "wrongpw@example.com",
		"password": "not-the-password",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRegisterRejectsShortPassword(t *testing.T) {
	env := setupEnv(t)

	w := env.do(t, "POST", "/api/v1/auth/register", map[string]any{
		"name":     "New User",
		"email":    "short@example.com",
		"password": "short",
		"username": "shortpw",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
