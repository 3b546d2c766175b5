package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	redisv9 "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"blogapi/internal/bootstrap"
	"blogapi/internal/config"
	"blogapi/internal/model"
)

type envelope struct {
	Success bool            `json:"success"`
	Message *string         `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   json.RawMessage `json:"error"`
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.User{}, &model.Post{}, &model.Activity{}))

	mr := miniredis.RunT(t)
	client := redisv9.NewClient(&redisv9.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	cfg := &config.Config{
		App: config.AppConfig{
			Name:           "blogapi-test",
			Env:            "test",
			GinMode:        gin.TestMode,
			DefaultPerPage: 15,
			MaxPerPage:     100,
		},
		Auth: config.AuthConfig{JWTSecret: "test-secret"},
	}

	app := &bootstrap.App{
		Config:    cfg,
		MySQL:     db,
		Redis:     client,
		StartedAt: time.Now(),
	}
	return NewRouter(app)
}

func do(t *testing.T, router *gin.Engine, method, path, token string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	}
	return w, env
}

func register(t *testing.T, router *gin.Engine, name, email string) uint {
	t.Helper()

	w, env := do(t, router, http.MethodPost, "/register", "", gin.H{
		"name":                  name,
		"email":                 email,
		"password":              "password123",
		"password_confirmation": "password123",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var user model.User
	require.NoError(t, json.Unmarshal(env.Data, &user))
	return user.ID
}

func login(t *testing.T, router *gin.Engine, email string) string {
	t.Helper()

	w, env := do(t, router, http.MethodPost, "/login", "", gin.H{
		"email":    email,
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var data struct {
		Token     string `json:"token"`
		TokenType string `json:"token_type"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.Equal(t, "Bearer", data.TokenType)
	require.NotEmpty(t, data.Token)
	return data.Token
}

func TestHealth(t *testing.T) {
	router := newTestRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestProtectedEndpointsRequireToken(t *testing.T) {
	router := newTestRouter(t)

	for _, route := range []struct{ method, path string }{
		{http.MethodGet, "/users"},
		{http.MethodPost, "/users"},
		{http.MethodGet, "/users/1"},
		{http.MethodDelete, "/users/1"},
		{http.MethodGet, "/posts"},
		{http.MethodPost, "/posts"},
		{http.MethodPut, "/posts/1"},
		{http.MethodPost, "/logout"},
	} {
		w, env := do(t, router, route.method, route.path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, "%s %s", route.method, route.path)
		require.NotNil(t, env.Message)
		assert.Equal(t, "You are not authenticated.", *env.Message)
	}
}

func TestRegisterValidation(t *testing.T) {
	router := newTestRouter(t)

	w, env := do(t, router, http.MethodPost, "/register", "", gin.H{
		"name":                  "Alice",
		"email":                 "not-an-email",
		"password":              "password123",
		"password_confirmation": "password123",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.False(t, env.Success)

	var fields map[string][]string
	require.NoError(t, json.Unmarshal(env.Error, &fields))
	assert.Contains(t, fields, "email")
}

func TestRegisterDuplicateEmail(t *testing.T) {
	router := newTestRouter(t)
	register(t, router, "Alice", "alice@example.com")

	w, env := do(t, router, http.MethodPost, "/register", "", gin.H{
		"name":                  "Alice Again",
		"email":                 "alice@example.com",
		"password":              "password123",
		"password_confirmation": "password123",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var fields map[string][]string
	require.NoError(t, json.Unmarshal(env.Error, &fields))
	assert.Equal(t, []string{"The email has already been taken."}, fields["email"])
}

func TestLoginWrongPassword(t *testing.T) {
	router := newTestRouter(t)
	register(t, router, "Alice", "alice@example.com")

	w, env := do(t, router, http.MethodPost, "/login", "", gin.H{
		"email":    "alice@example.com",
		"password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, env.Success)
	require.NotNil(t, env.Message)
	assert.Equal(t, "Invalid credentials", *env.Message)
}

func TestUserShowSelfOnly(t *testing.T) {
	router := newTestRouter(t)
	aliceID := register(t, router, "Alice", "alice@example.com")
	bobID := register(t, router, "Bob", "bob@example.com")
	aliceToken := login(t, router, "alice@example.com")

	w, env := do(t, router, http.MethodGet, fmt.Sprintf("/users/%d", aliceID), aliceToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var user map[string]interface{}
	require.NoError(t, json.Unmarshal(env.Data, &user))
	assert.Equal(t, "alice@example.com", user["email"])
	// password hash never serializes
	assert.NotContains(t, user, "password")
	assert.NotContains(t, user, "password_hash")

	w, env = do(t, router, http.MethodGet, fmt.Sprintf("/users/%d", bobID), aliceToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	require.NotNil(t, env.Message)
	assert.Equal(t, "Unauthorized access", *env.Message)

	w, env = do(t, router, http.MethodGet, "/users/99999", aliceToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	require.NotNil(t, env.Message)
	assert.Contains(t, *env.Message, "not found")
}

func TestUnaddressableIDIsNotFound(t *testing.T) {
	router := newTestRouter(t)
	register(t, router, "Alice", "alice@example.com")
	token := login(t, router, "alice@example.com")

	// ids that cannot address a record: non-numeric, zero, and values
	// past the width of uint
	for _, id := range []string{"abc", "0", "-1", "18446744073709551616", "99999999999999999999"} {
		w, env := do(t, router, http.MethodGet, "/posts/"+id, token, nil)
		assert.Equal(t, http.StatusNotFound, w.Code, "id %q", id)
		require.NotNil(t, env.Message)
		assert.Equal(t, "Resource not found", *env.Message)
	}
}

func TestUserPartialUpdate(t *testing.T) {
	router := newTestRouter(t)
	aliceID := register(t, router, "Alice", "alice@example.com")
	token := login(t, router, "alice@example.com")

	w, env := do(t, router, http.MethodPatch, fmt.Sprintf("/users/%d", aliceID), token, gin.H{
		"name": "Alice Cooper",
	})
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var user model.User
	require.NoError(t, json.Unmarshal(env.Data, &user))
	assert.Equal(t, "Alice Cooper", user.Name)
	assert.Equal(t, "alice@example.com", user.Email)
}

func TestUserDeleteReturnsNoContent(t *testing.T) {
	router := newTestRouter(t)
	aliceID := register(t, router, "Alice", "alice@example.com")
	bobID := register(t, router, "Bob", "bob@example.com")
	aliceToken := login(t, router, "alice@example.com")

	w, _ := do(t, router, http.MethodDelete, fmt.Sprintf("/users/%d", bobID), aliceToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, _ = do(t, router, http.MethodDelete, fmt.Sprintf("/users/%d", aliceID), aliceToken, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())

	// the deleted user's token no longer authenticates
	w, _ = do(t, router, http.MethodGet, "/posts", aliceToken, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestPostLifecycle(t *testing.T) {
	router := newTestRouter(t)
	aliceID := register(t, router, "Alice", "alice@example.com")
	register(t, router, "Victor", "victor@example.com")
	aliceToken := login(t, router, "alice@example.com")
	victorToken := login(t, router, "victor@example.com")

	w, env := do(t, router, http.MethodPost, "/posts", aliceToken, gin.H{
		"title":   "Introduction to Laravel",
		"slug":    "introduction-to-laravel",
		"content": "A gentle introduction.",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var post model.Post
	require.NoError(t, json.Unmarshal(env.Data, &post))
	assert.Equal(t, aliceID, post.AuthorID)

	// another authenticated user may read it
	w, _ = do(t, router, http.MethodGet, fmt.Sprintf("/posts/%d", post.ID), victorToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// but not edit it
	w, env = do(t, router, http.MethodPut, fmt.Sprintf("/posts/%d", post.ID), victorToken, gin.H{
		"content": "Hijacked.",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)
	require.NotNil(t, env.Message)
	assert.Equal(t, "Unauthorized access", *env.Message)

	w, env = do(t, router, http.MethodGet, fmt.Sprintf("/posts/%d", post.ID), victorToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(env.Data, &post))
	assert.Equal(t, "A gentle introduction.", post.Content)

	// nor delete it
	w, _ = do(t, router, http.MethodDelete, fmt.Sprintf("/posts/%d", post.ID), victorToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// the author can, and gets a 200 envelope back
	w, env = do(t, router, http.MethodDelete, fmt.Sprintf("/posts/%d", post.ID), aliceToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, env.Success)
	require.NotNil(t, env.Message)
	assert.Equal(t, "Post deleted successfully", *env.Message)

	w, _ = do(t, router, http.MethodGet, fmt.Sprintf("/posts/%d", post.ID), aliceToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPostAuthorNotClientSettable(t *testing.T) {
	router := newTestRouter(t)
	aliceID := register(t, router, "Alice", "alice@example.com")
	token := login(t, router, "alice@example.com")

	w, env := do(t, router, http.MethodPost, "/posts", token, gin.H{
		"title":     "Mine",
		"slug":      "mine",
		"content":   "content",
		"author_id": 424242,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var post model.Post
	require.NoError(t, json.Unmarshal(env.Data, &post))
	assert.Equal(t, aliceID, post.AuthorID)
}

func TestPostPagination(t *testing.T) {
	router := newTestRouter(t)
	register(t, router, "Alice", "alice@example.com")
	token := login(t, router, "alice@example.com")

	for i := 0; i < 20; i++ {
		w, _ := do(t, router, http.MethodPost, "/posts", token, gin.H{
			"title":   fmt.Sprintf("Post %d", i),
			"slug":    fmt.Sprintf("post-%d", i),
			"content": "content",
		})
		require.Equal(t, http.StatusCreated, w.Code)
	}

	var page struct {
		Items []model.Post `json:"items"`
		Meta  struct {
			PerPage    int   `json:"per_page"`
			Total      int64 `json:"total"`
			TotalPages int   `json:"total_pages"`
		} `json:"meta"`
	}

	w, env := do(t, router, http.MethodGet, "/posts?per_page=5", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(env.Data, &page))
	assert.Len(t, page.Items, 5)
	assert.Equal(t, int64(20), page.Meta.Total)
	assert.Equal(t, 4, page.Meta.TotalPages)

	w, env = do(t, router, http.MethodGet, "/posts", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(env.Data, &page))
	assert.Len(t, page.Items, 15)
	assert.Equal(t, 15, page.Meta.PerPage)
}

func TestLogoutRevokesToken(t *testing.T) {
	router := newTestRouter(t)
	register(t, router, "Alice", "alice@example.com")
	token := login(t, router, "alice@example.com")

	w, env := do(t, router, http.MethodPost, "/logout", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, env.Message)
	assert.Equal(t, "Successfully logged out", *env.Message)

	w, _ = do(t, router, http.MethodGet, "/posts", token, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestMalformedBodyIsUnprocessable(t *testing.T) {
	router := newTestRouter(t)
	register(t, router, "Alice", "alice@example.com")
	token := login(t, router, "alice@example.com")

	req := httptest.NewRequest(http.MethodPost, "/posts", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}
