package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/phrazzld/task-api/internal/config"
	"github.com/phrazzld/task-api/internal/mocks"
	"github.com/phrazzld/task-api/internal/service/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{Port: 8080, LogLevel: "info", ShutdownTimeoutSeconds: 5},
		Database: config.DatabaseConfig{
			URL:                    "postgres://localhost:5432/tasks",
			MaxOpenConns:           10,
			MaxIdleConns:           5,
			ConnMaxLifetimeMinutes: 5,
		},
		Auth: config.AuthConfig{
			JWTSecret:            "server-test-secret-at-least-32-characters",
			TokenLifetimeMinutes: 60,
			Issuer:               "task-api",
			BcryptCost:           bcrypt.MinCost,
		},
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newTestServer wires the real router and services over in-memory stores.
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	hasher, err := auth.NewBcryptHasher(bcrypt.MinCost)
	require.NoError(t, err)

	app := &application{
		config:         testConfig(),
		logger:         discardLogger(),
		userStore:      mocks.NewMockUserStore(),
		taskStore:      mocks.NewMockTaskStore(),
		transactor:     &mocks.MockTransactor{},
		passwordHasher: hasher,
	}
	require.NoError(t, app.initServices())

	srv := httptest.NewServer(app.setupRouter())
	t.Cleanup(srv.Close)
	return srv
}

type client struct {
	t     *testing.T
	base  string
	token string
}

func (c *client) call(method, path string, body interface{}, out interface{}) int {
	c.t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(c.t, err)
		reader = bytes.NewReader(raw)
	}
	req, err := http.NewRequest(method, c.base+path, reader)
	require.NoError(c.t, err)
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(c.t, err)
	defer func() { _ = resp.Body.Close() }()

	if out != nil {
		require.NoError(c.t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

type authBody struct {
	Token string `json:"token"`
	Type  string `json:"type"`
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type taskBody struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Status      string  `json:"status"`
	UserID      int64   `json:"user_id"`
}

type pageBody struct {
	Content       []taskBody `json:"content"`
	Page          int        `json:"page"`
	Size          int        `json:"size"`
	TotalElements int64      `json:"total_elements"`
	TotalPages    int        `json:"total_pages"`
}

type errorBody struct {
	Error   string `json:"error"`
	TraceID string `json:"trace_id"`
}

func TestHealth(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "OK", string(body))
}

func TestEndToEndScenario(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)
	anon := &client{t: t, base: srv.URL}

	var registered authBody
	status := anon.call(http.MethodPost, "/auth/register",
		map[string]string{"name": "Jo", "email": "jo@x.com", "password": "secret12"}, &registered)
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "Bearer", registered.Type)

	var loggedIn authBody
	status = anon.call(http.MethodPost, "/auth/login",
		map[string]string{"email": "jo@x.com", "password": "secret12"}, &loggedIn)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, registered.ID, loggedIn.ID)

	jo := &client{t: t, base: srv.URL, token: loggedIn.Token}

	var created taskBody
	status = jo.call(http.MethodPost, "/tasks", map[string]string{"title": "Write report"}, &created)
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "pending", created.Status)
	assert.Equal(t, loggedIn.ID, created.UserID)

	var updated taskBody
	status = jo.call(http.MethodPut, fmt.Sprintf("/tasks/%d", created.ID), map[string]string{"status": "done"}, &updated)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Write report", updated.Title)
	assert.Equal(t, "done", updated.Status)

	var page pageBody
	status = jo.call(http.MethodGet, "/tasks?page=0&size=10", nil, &page)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, page.Content, 1)
	assert.Equal(t, "done", page.Content[0].Status)
	assert.EqualValues(t, 1, page.TotalElements)

	var deleted map[string]string
	status = jo.call(http.MethodDelete, fmt.Sprintf("/tasks/%d", created.ID), nil, &deleted)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Task deleted successfully", deleted["message"])

	var missing errorBody
	status = jo.call(http.MethodGet, fmt.Sprintf("/tasks/%d", created.ID), nil, &missing)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Task not found", missing.Error)
	assert.NotEmpty(t, missing.TraceID)
}

func TestEndToEnd_IsolationAndCredentials(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)
	anon := &client{t: t, base: srv.URL}

	var a, b authBody
	require.Equal(t, http.StatusCreated, anon.call(http.MethodPost, "/auth/register",
		map[string]string{"name": "A", "email": "a@x.com", "password": "secret12"}, &a))
	require.Equal(t, http.StatusCreated, anon.call(http.MethodPost, "/auth/register",
		map[string]string{"name": "B", "email": "b@x.com", "password": "secret12"}, &b))

	var dup errorBody
	assert.Equal(t, http.StatusBadRequest, anon.call(http.MethodPost, "/auth/register",
		map[string]string{"name": "A2", "email": "a@x.com", "password": "secret12"}, &dup))
	assert.Equal(t, "Email already exists", dup.Error)

	var wrongPw, unknown map[string]any
	assert.Equal(t, http.StatusBadRequest, anon.call(http.MethodPost, "/auth/login",
		map[string]string{"email": "a@x.com", "password": "wrong-password"}, &wrongPw))
	assert.Equal(t, http.StatusBadRequest, anon.call(http.MethodPost, "/auth/login",
		map[string]string{"email": "nobody@x.com", "password": "secret12"}, &unknown))
	assert.NotEmpty(t, wrongPw["trace_id"])
	assert.NotEmpty(t, unknown["trace_id"])
	delete(wrongPw, "trace_id")
	delete(unknown, "trace_id")
	assert.Equal(t, map[string]any{"error": "Invalid email or password"}, wrongPw)
	assert.Equal(t, wrongPw, unknown)

	clientA := &client{t: t, base: srv.URL, token: a.Token}
	clientB := &client{t: t, base: srv.URL, token: b.Token}

	var task taskBody
	require.Equal(t, http.StatusCreated, clientA.call(http.MethodPost, "/tasks", map[string]string{"title": "A's task"}, &task))

	path := fmt.Sprintf("/tasks/%d", task.ID)
	assert.Equal(t, http.StatusNotFound, clientB.call(http.MethodGet, path, nil, nil))
	assert.Equal(t, http.StatusNotFound, clientB.call(http.MethodPut, path, map[string]string{"title": "mine"}, nil))
	assert.Equal(t, http.StatusNotFound, clientB.call(http.MethodDelete, path, nil, nil))
	assert.Equal(t, http.StatusOK, clientA.call(http.MethodGet, path, nil, nil))

	var unauth errorBody
	assert.Equal(t, http.StatusUnauthorized, anon.call(http.MethodGet, "/tasks", nil, &unauth))
	assert.Equal(t, "Authorization header required", unauth.Error)
}

func TestNewApplication(t *testing.T) {
	t.Parallel()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	mock.ExpectClose()

	app, err := newApplication(testConfig(), discardLogger(), db)
	require.NoError(t, err)
	assert.NotNil(t, app.authService)
	assert.NotNil(t, app.taskService)
	assert.NotNil(t, app.setupRouter())

	app.cleanup()
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNewApplication_InvalidAuthConfig(t *testing.T) {
	t.Parallel()

	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	cfg := testConfig()
	cfg.Auth.JWTSecret = "too-short"

	_, err = newApplication(cfg, discardLogger(), db)
	assert.ErrorContains(t, err, "JWT service")
}
