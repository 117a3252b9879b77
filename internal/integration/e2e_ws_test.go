package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"taskboard/internal/domain"
	httpserver "taskboard/internal/http"
	"taskboard/internal/http/handlers"
	"taskboard/internal/repository"
	"taskboard/internal/service"
	"taskboard/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestE2E_AssignmentReachesEmployee(t *testing.T) {
	store := repository.NewPostgresStore(openDB(t))
	service.InitJWT("test-secret", time.Hour)
	gin.SetMode(gin.TestMode)

	ctx := context.Background()
	manager := &domain.User{Name: "John", Email: "john@task.com", Password: "pass123", Role: domain.RoleManager}
	require.NoError(t, store.CreateUser(ctx, manager))
	employee := &domain.User{Name: "Jane", Email: "jane@task.com", Password: "pass123", Role: domain.RoleEmployee}
	require.NoError(t, store.CreateUser(ctx, employee))

	hub := ws.NewHub()
	h := handlers.NewHandler(store, hub, service.NewRevocationList(nil))
	r := gin.New()
	httpserver.RegisterRoutes(r, h, handlers.NewHealthHandler(store, "test"), hub, httpserver.RouteConfig{})
	srv := httptest.NewServer(r)
	defer srv.Close()

	managerToken, _, err := service.GenerateJWT(manager)
	require.NoError(t, err)
	employeeToken, _, err := service.GenerateJWT(employee)
	require.NoError(t, err)

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/ws?token=" + employeeToken
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))

	var msg ws.Message
	require.NoError(t, conn.ReadJSON(&msg))
	require.Equal(t, ws.MsgReady, msg.Type)

	put := func(method, path string, body any) *http.Response {
		b, _ := json.Marshal(body)
		req, err := http.NewRequest(method, srv.URL+path, bytes.NewReader(b))
		require.NoError(t, err)
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+managerToken)
		res, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		res.Body.Close()
		return res
	}

	// the employee is not told about unassigned tasks
	res := put(http.MethodPost, "/api/tasks", map[string]any{"title": "A", "description": "B", "createdBy": manager.ID})
	require.Equal(t, http.StatusCreated, res.StatusCode)
	res = put(http.MethodPut, "/api/tasks/1/assign", map[string]any{"assignedTo": employee.ID})
	require.Equal(t, http.StatusOK, res.StatusCode)

	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, domain.EventTaskAssigned, msg.Event)
	assert.Equal(t, int64(1), msg.Task.ID)
	assert.Equal(t, "Jane", *msg.Task.AssignedToName)
}
