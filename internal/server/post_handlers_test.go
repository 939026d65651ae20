package server

import (
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"microblog/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePost(t *testing.T) {
	_, app := newTestServer(t)
	user := signupTestUser(t, app, "susan", "susan@example.com")

	tests := []struct {
		name           string
		body           string
		token          string
		expectedStatus int
	}{
		{
			name:           "valid post",
			body:           "just setting up my microblog",
			token:          user.Token,
			expectedStatus: fiber.StatusCreated,
		},
		{
			name:           "empty body",
			body:           "",
			token:          user.Token,
			expectedStatus: fiber.StatusBadRequest,
		},
		{
			name:           "body over 140 characters",
			body:           strings.Repeat("a", 141),
			token:          user.Token,
			expectedStatus: fiber.StatusBadRequest,
		},
		{
			name:           "missing token",
			body:           "hello",
			token:          "",
			expectedStatus: fiber.StatusUnauthorized,
		},
		{
			name:           "garbage token",
			body:           "hello",
			token:          "not-a-token",
			expectedStatus: fiber.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := app.Test(authReq(t, http.MethodPost, "/api/posts", tt.token,
				map[string]string{"body": tt.body}), -1)
			require.NoError(t, err)
			defer resp.Body.Close()
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
		})
	}
}

func TestCreatePostSetsAuthorAndTimestamp(t *testing.T) {
	_, app := newTestServer(t)
	user := signupTestUser(t, app, "susan", "susan@example.com")

	before := time.Now().UTC()
	resp, err := app.Test(authReq(t, http.MethodPost, "/api/posts", user.Token,
		map[string]string{"body": "hello world"}), -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var post models.Post
	decodeJSON(t, resp, &post)

	assert.Equal(t, user.ID, post.UserID)
	assert.Equal(t, "susan", post.Author.Username)
	assert.False(t, post.Timestamp.Before(before))
}

func TestGetPost(t *testing.T) {
	_, app := newTestServer(t)
	user := signupTestUser(t, app, "susan", "susan@example.com")

	resp, err := app.Test(authReq(t, http.MethodPost, "/api/posts", user.Token,
		map[string]string{"body": "findable"}), -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var created models.Post
	decodeJSON(t, resp, &created)

	t.Run("existing post", func(t *testing.T) {
		resp, err := app.Test(jsonReq(t, http.MethodGet, fmt.Sprintf("/api/posts/%d", created.ID), nil), -1)
		require.NoError(t, err)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)

		var got models.Post
		decodeJSON(t, resp, &got)
		assert.Equal(t, "findable", got.Body)
	})

	t.Run("missing post", func(t *testing.T) {
		resp, err := app.Test(jsonReq(t, http.MethodGet, "/api/posts/99999", nil), -1)
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	})

	t.Run("malformed id", func(t *testing.T) {
		resp, err := app.Test(jsonReq(t, http.MethodGet, "/api/posts/abc", nil), -1)
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})
}

func TestGetTimeline(t *testing.T) {
	_, app := newTestServer(t)
	susan := signupTestUser(t, app, "susan", "susan@example.com")
	john := signupTestUser(t, app, "john", "john@example.com")

	for _, p := range []struct {
		token string
		body  string
	}{
		{susan.Token, "susan's post"},
		{john.Token, "john's post"},
	} {
		resp, err := app.Test(authReq(t, http.MethodPost, "/api/posts", p.token,
			map[string]string{"body": p.body}), -1)
		require.NoError(t, err)
		require.Equal(t, fiber.StatusCreated, resp.StatusCode)
		resp.Body.Close()
	}

	resp, err := app.Test(jsonReq(t, http.MethodGet, "/api/posts", nil), -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var posts []models.Post
	decodeJSON(t, resp, &posts)
	require.Len(t, posts, 2)

	// Newest first, with authors attached.
	assert.Equal(t, "john's post", posts[0].Body)
	assert.NotEmpty(t, posts[0].Author.Username)
}
