package api

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/task-api/internal/api/middleware"
	"github.com/phrazzld/task-api/internal/api/shared"
	"github.com/phrazzld/task-api/internal/config"
	"github.com/phrazzld/task-api/internal/mocks"
	"github.com/phrazzld/task-api/internal/service"
	"github.com/phrazzld/task-api/internal/service/auth"
	"github.com/stretchr/testify/require"
)

type testAPI struct {
	router http.Handler
	users  *mocks.MockUserStore
	tasks  *mocks.MockTaskStore
	tokens auth.JWTService
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	tokens, err := auth.NewJWTService(config.AuthConfig{
		JWTSecret:            "handler-test-secret-at-least-32-characters",
		TokenLifetimeMinutes: 60,
		Issuer:               "task-api-test",
		BcryptCost:           4,
	})
	require.NoError(t, err)

	users := mocks.NewMockUserStore()
	tasks := mocks.NewMockTaskStore()

	authSvc, err := service.NewAuthService(users, &mocks.MockPasswordHasher{}, tokens, log)
	require.NoError(t, err)
	taskSvc, err := service.NewTaskService(tasks, users, &mocks.MockTransactor{}, log)
	require.NoError(t, err)

	authHandler := NewAuthHandler(authSvc, log)
	taskHandler := NewTaskHandler(taskSvc, log)

	r := chi.NewRouter()
	r.Use(middleware.TraceMiddleware(log))
	r.Use(middleware.NewAuthMiddleware(tokens).Authenticate)
	r.Post("/auth/register", authHandler.Register)
	r.Post("/auth/login", authHandler.Login)
	r.Route("/tasks", func(r chi.Router) {
		r.Post("/", taskHandler.CreateTask)
		r.Get("/", taskHandler.ListTasks)
		r.Get("/{id}", taskHandler.GetTask)
		r.Put("/{id}", taskHandler.UpdateTask)
		r.Delete("/{id}", taskHandler.DeleteTask)
	})

	return &testAPI{router: r, users: users, tasks: tasks, tokens: tokens}
}

// do sends a request and returns the recorder. body may be nil, a string of
// raw JSON, or a value to marshal.
func (a *testAPI) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	a.router.ServeHTTP(rr, req)
	return rr
}

// register creates an account and returns its token.
func (a *testAPI) register(t *testing.T, name, email string) string {
	t.Helper()
	rr := a.do(t, http.MethodPost, "/auth/register", "", RegisterRequest{
		Name: name, Email: email, Password: "secret12",
	})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	return decode[AuthResponse](t, rr).Token
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v), rr.Body.String())
	return v
}

func errorMessage(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	return decode[shared.ErrorResponse](t, rr).Error
}

func mustField(t *testing.T, body []byte, field string) json.RawMessage {
	t.Helper()
	var m map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(body, &m))
	raw, ok := m[field]
	require.True(t, ok, "missing field %q", field)
	return raw
}
