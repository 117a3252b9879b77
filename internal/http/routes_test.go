package http

import (
	"bytes"
	"context"
	"encoding/json"
	stdhttp "net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"taskboard/internal/domain"
	"taskboard/internal/http/handlers"
	"taskboard/internal/http/middleware"
	"taskboard/internal/repository"
	"taskboard/internal/service"
	"taskboard/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testServer struct {
	t      *testing.T
	router *gin.Engine
	store  *repository.DocumentStore
	tokens map[string]string
}

// newTestServer seeds the three demo accounts: admin (1), john the
// manager (2) and jane the employee (3).
func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	service.InitJWT("routes-secret", time.Hour)
	middleware.InitRedisRateLimiter(nil)

	store := repository.NewDocumentStore(filepath.Join(t.TempDir(), "data.json"))
	hub := ws.NewHub()
	h := handlers.NewHandler(store, hub, service.NewRevocationList(nil))

	r := gin.New()
	RegisterRoutes(r, h, handlers.NewHealthHandler(store, "test"), hub, RouteConfig{
		LoginRateLimit:  100,
		LoginRateWindow: time.Minute,
	})

	s := &testServer{t: t, router: r, store: store, tokens: map[string]string{}}
	accounts := []struct {
		name, email, password string
		role                  domain.Role
	}{
		{"Admin User", "admin@task.com", "admin123", domain.RoleAdmin},
		{"John Manager", "john@task.com", "pass123", domain.RoleManager},
		{"Jane Employee", "jane@task.com", "pass123", domain.RoleEmployee},
	}
	for _, a := range accounts {
		u := &domain.User{Name: a.name, Email: a.email, Password: a.password, Role: a.role}
		require.NoError(t, store.CreateUser(context.Background(), u))
	}
	for _, a := range accounts {
		rec := s.do(stdhttp.MethodPost, "/api/login", "", map[string]string{"email": a.email, "password": a.password})
		require.Equal(t, stdhttp.StatusOK, rec.Code, rec.Body.String())
		var body struct {
			Token string `json:"token"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		s.tokens[string(a.role)] = body.Token
	}
	return s
}

func (s *testServer) do(method, path, token string, body any) *httptest.ResponseRecorder {
	s.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(s.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestLogin(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(stdhttp.MethodPost, "/api/login", "", map[string]string{"email": "john@task.com", "password": "pass123"})
	require.Equal(t, stdhttp.StatusOK, rec.Code)
	body := decode[struct {
		User  map[string]any `json:"user"`
		Token string         `json:"token"`
	}](t, rec)
	assert.NotContains(t, body.User, "password")
	assert.Equal(t, "manager", body.User["role"])
	assert.NotEmpty(t, body.Token)

	rec = s.do(stdhttp.MethodPost, "/api/login", "", map[string]string{"email": "john@task.com", "password": "nope"})
	assert.Equal(t, stdhttp.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"Invalid credentials"}`, rec.Body.String())

	rec = s.do(stdhttp.MethodPost, "/api/login", "", map[string]string{"email": "john@task.com"})
	assert.Equal(t, stdhttp.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"Email and password required"}`, rec.Body.String())
}

func TestSessionRequired(t *testing.T) {
	s := newTestServer(t)

	assert.Equal(t, stdhttp.StatusUnauthorized, s.do(stdhttp.MethodGet, "/api/tasks", "", nil).Code)
	assert.Equal(t, stdhttp.StatusForbidden, s.do(stdhttp.MethodGet, "/api/tasks", s.tokens["employee"], nil).Code)
	assert.Equal(t, stdhttp.StatusForbidden, s.do(stdhttp.MethodPost, "/api/users", s.tokens["manager"], map[string]string{}).Code)
	assert.Equal(t, stdhttp.StatusOK, s.do(stdhttp.MethodGet, "/api/users", s.tokens["manager"], nil).Code)

	me := decode[map[string]any](t, s.do(stdhttp.MethodGet, "/api/me", s.tokens["employee"], nil))
	assert.Equal(t, "jane@task.com", me["email"])
	assert.NotContains(t, me, "password")
}

func TestUserCRUD(t *testing.T) {
	s := newTestServer(t)
	admin := s.tokens["admin"]

	rec := s.do(stdhttp.MethodPost, "/api/users", admin, map[string]any{
		"name": "Bob", "email": "bob@task.com", "password": "pw", "role": "employee", "managerId": "2",
	})
	require.Equal(t, stdhttp.StatusCreated, rec.Code, rec.Body.String())
	created := decode[domain.User](t, rec)
	assert.Equal(t, int64(4), created.ID)
	require.NotNil(t, created.ManagerID)
	assert.Equal(t, int64(2), *created.ManagerID)

	rec = s.do(stdhttp.MethodPost, "/api/users", admin, map[string]any{
		"name": "Dup", "email": "jane@task.com", "password": "pw", "role": "employee",
	})
	assert.Equal(t, stdhttp.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"Email already exists"}`, rec.Body.String())

	rec = s.do(stdhttp.MethodPost, "/api/users", admin, map[string]any{"name": "NoEmail"})
	assert.JSONEq(t, `{"error":"Name, email, password, and role are required"}`, rec.Body.String())

	rec = s.do(stdhttp.MethodPut, "/api/users/4", admin, map[string]any{"managerId": nil})
	require.Equal(t, stdhttp.StatusOK, rec.Code)
	assert.Nil(t, decode[domain.User](t, rec).ManagerID)

	managers := decode[[]domain.User](t, s.do(stdhttp.MethodGet, "/api/managers", admin, nil))
	require.Len(t, managers, 1)
	assert.Equal(t, "john@task.com", managers[0].Email)

	rec = s.do(stdhttp.MethodDelete, "/api/users/4", admin, nil)
	assert.JSONEq(t, `{"message":"User deleted successfully"}`, rec.Body.String())
	rec = s.do(stdhttp.MethodGet, "/api/users/4", admin, nil)
	assert.Equal(t, stdhttp.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"User not found"}`, rec.Body.String())

	rec = s.do(stdhttp.MethodGet, "/api/users/abc", admin, nil)
	assert.Equal(t, stdhttp.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"User not found"}`, rec.Body.String())
}

func TestDeleteMissingLeavesDocument(t *testing.T) {
	s := newTestServer(t)
	before, err := os.ReadFile(s.store.Path())
	require.NoError(t, err)

	rec := s.do(stdhttp.MethodDelete, "/api/users/99", s.tokens["admin"], nil)
	assert.Equal(t, stdhttp.StatusNotFound, rec.Code)
	rec = s.do(stdhttp.MethodDelete, "/api/tasks/99", s.tokens["manager"], nil)
	assert.Equal(t, stdhttp.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"Task not found"}`, rec.Body.String())

	for _, path := range []string{"/api/users/0", "/api/users/-1", "/api/users/abc"} {
		rec = s.do(stdhttp.MethodDelete, path, s.tokens["admin"], nil)
		assert.Equal(t, stdhttp.StatusNotFound, rec.Code, path)
		assert.JSONEq(t, `{"error":"User not found"}`, rec.Body.String(), path)
	}
	for _, path := range []string{"/api/tasks/0", "/api/tasks/abc"} {
		rec = s.do(stdhttp.MethodDelete, path, s.tokens["manager"], nil)
		assert.Equal(t, stdhttp.StatusNotFound, rec.Code, path)
		rec = s.do(stdhttp.MethodGet, path, s.tokens["manager"], nil)
		assert.Equal(t, stdhttp.StatusNotFound, rec.Code, path)
		assert.JSONEq(t, `{"error":"Task not found"}`, rec.Body.String(), path)
	}

	after, err := os.ReadFile(s.store.Path())
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestTaskWorkflow(t *testing.T) {
	s := newTestServer(t)
	manager, employee := s.tokens["manager"], s.tokens["employee"]

	rec := s.do(stdhttp.MethodPost, "/api/tasks", manager, map[string]any{
		"title": "A", "description": "B", "createdBy": 2,
	})
	require.Equal(t, stdhttp.StatusCreated, rec.Code, rec.Body.String())
	task := decode[map[string]any](t, rec)
	assert.Equal(t, "OPEN", task["state"])
	assert.Equal(t, "MEDIUM", task["priority"])
	assert.Nil(t, task["assignedTo"])
	assert.Nil(t, task["completedAt"])
	assert.EqualValues(t, 1, task["id"])

	rec = s.do(stdhttp.MethodPost, "/api/tasks", manager, map[string]any{"title": "A"})
	assert.JSONEq(t, `{"error":"Title, description, and createdBy are required"}`, rec.Body.String())

	rec = s.do(stdhttp.MethodPut, "/api/tasks/1/assign", manager, map[string]any{})
	assert.JSONEq(t, `{"error":"assignedTo is required"}`, rec.Body.String())

	rec = s.do(stdhttp.MethodPut, "/api/tasks/1/assign", manager, map[string]any{"assignedTo": "3"})
	require.Equal(t, stdhttp.StatusOK, rec.Code, rec.Body.String())
	task = decode[map[string]any](t, rec)
	assert.Equal(t, "PENDING", task["state"])
	assert.EqualValues(t, 3, task["assignedTo"])
	assert.Equal(t, "Jane Employee", task["assignedToName"])

	tasks := decode[[]domain.Task](t, s.do(stdhttp.MethodGet, "/api/tasks/user/3", employee, nil))
	require.Len(t, tasks, 1)
	assert.Equal(t, stdhttp.StatusForbidden, s.do(stdhttp.MethodGet, "/api/tasks/user/2", employee, nil).Code)

	rec = s.do(stdhttp.MethodPut, "/api/tasks/1/complete", employee, nil)
	require.Equal(t, stdhttp.StatusOK, rec.Code, rec.Body.String())
	done := decode[domain.Task](t, rec)
	assert.Equal(t, domain.StateCompleted, done.State)
	require.NotNil(t, done.CompletedAt)
	assert.False(t, done.CompletedAt.Before(done.CreatedAt))

	history := decode[service.TaskHistory](t, s.do(stdhttp.MethodGet, "/api/tasks/user/3/history", employee, nil))
	assert.Equal(t, 1, history.Stats.Total)
	assert.Equal(t, 100, history.Stats.CompletionRate)

	rec = s.do(stdhttp.MethodPut, "/api/tasks/1/close", manager, map[string]any{})
	require.Equal(t, stdhttp.StatusOK, rec.Code)
	assert.Equal(t, domain.StateClosed, decode[domain.Task](t, rec).State)

	created := decode[[]domain.Task](t, s.do(stdhttp.MethodGet, "/api/tasks/history/2", manager, nil))
	assert.Len(t, created, 1)

	rec = s.do(stdhttp.MethodPut, "/api/tasks/1", manager, map[string]any{"title": "A2", "priority": "URGENT"})
	assert.Equal(t, stdhttp.StatusBadRequest, rec.Code)

	rec = s.do(stdhttp.MethodDelete, "/api/tasks/1", manager, nil)
	assert.JSONEq(t, `{"message":"Task deleted successfully"}`, rec.Body.String())
}

func TestEmployeeCannotCompleteOthersTask(t *testing.T) {
	s := newTestServer(t)
	manager := s.tokens["manager"]

	require.Equal(t, stdhttp.StatusCreated, s.do(stdhttp.MethodPost, "/api/tasks", manager, map[string]any{
		"title": "A", "description": "B", "createdBy": 2,
	}).Code)
	require.Equal(t, stdhttp.StatusOK, s.do(stdhttp.MethodPut, "/api/tasks/1/assign", manager, map[string]any{
		"assignedTo": 2,
	}).Code)

	rec := s.do(stdhttp.MethodPut, "/api/tasks/1/complete", s.tokens["employee"], nil)
	assert.Equal(t, stdhttp.StatusForbidden, rec.Code)
}

func TestDashboardAndNavigate(t *testing.T) {
	s := newTestServer(t)

	d := decode[service.Dashboard](t, s.do(stdhttp.MethodGet, "/api/dashboard", s.tokens["admin"], nil))
	assert.Equal(t, domain.RoleAdmin, d.Role)
	require.NotNil(t, d.Admin)
	assert.Len(t, d.Admin.Users, 3)

	route := decode[map[string]string](t, s.do(stdhttp.MethodGet, "/api/navigate?to=%23admin", s.tokens["manager"], nil))
	assert.Equal(t, map[string]string{
		"page":     "dashboard",
		"redirect": "dashboard",
		"alert":    "Access denied. Admin privileges required.",
	}, route)

	route = decode[map[string]string](t, s.do(stdhttp.MethodGet, "/api/navigate?to=manager", "", nil))
	assert.Equal(t, "login", route["page"])
}

func TestLogoutWithoutRedisKeepsTokenValid(t *testing.T) {
	s := newTestServer(t)
	token := s.tokens["employee"]

	assert.Equal(t, stdhttp.StatusOK, s.do(stdhttp.MethodPost, "/api/logout", token, nil).Code)
	// no revocation store configured: logout is client-side only
	assert.Equal(t, stdhttp.StatusOK, s.do(stdhttp.MethodGet, "/api/me", token, nil).Code)
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	assert.Equal(t, stdhttp.StatusOK, s.do(stdhttp.MethodGet, "/healthz", "", nil).Code)
	assert.Equal(t, stdhttp.StatusOK, s.do(stdhttp.MethodGet, "/api/health", "", nil).Code)
}
