package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"microblog/internal/config"
	"microblog/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const testPassword = "TestPass123!@#"

func newTestServer(t *testing.T) (*Server, *fiber.App) {
	t.Helper()

	require.NoError(t, os.Setenv("APP_ENV", "test"))

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Post{}))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	cfg := &config.Config{
		Env:       "test",
		Port:      "0",
		JWTSecret: "test-secret-key-at-least-32-chars!!",
	}

	srv := NewServerWithDeps(cfg, db, nil)

	app := fiber.New()
	srv.SetupRoutes(app)

	return srv, app
}

func jsonReq(t *testing.T, method, path string, payload any) *http.Request {
	t.Helper()

	if payload == nil {
		return httptest.NewRequest(method, path, nil)
	}
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func authReq(t *testing.T, method, path, token string, payload any) *http.Request {
	t.Helper()

	req := jsonReq(t, method, path, payload)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

type authUser struct {
	ID    uint
	Token string
}

func signupTestUser(t *testing.T, app *fiber.App, username, email string) authUser {
	t.Helper()

	payload := map[string]string{
		"username": username,
		"email":    email,
		"password": testPassword,
	}

	resp, err := app.Test(jsonReq(t, http.MethodPost, "/api/auth/signup", payload), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var body struct {
		Token string `json:"token"`
		User  struct {
			ID uint `json:"id"`
		} `json:"user"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.NotEmpty(t, body.Token)
	require.NotZero(t, body.User.ID)

	return authUser{ID: body.User.ID, Token: body.Token}
}

func decodeJSON(t *testing.T, resp *http.Response, dest any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dest))
}
