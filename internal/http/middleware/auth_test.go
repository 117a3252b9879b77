package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"taskboard/internal/domain"
	"taskboard/internal/repository"
	"taskboard/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthRouter(t *testing.T) (*gin.Engine, map[domain.Role]string) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	service.InitJWT("middleware-secret", time.Hour)

	store := repository.NewDocumentStore(filepath.Join(t.TempDir(), "data.json"))
	tokens := map[domain.Role]string{}
	for i, role := range []domain.Role{domain.RoleAdmin, domain.RoleManager, domain.RoleEmployee} {
		u := &domain.User{Name: string(role), Email: string(role) + "@task.com", Password: "p", Role: role}
		require.NoError(t, store.CreateUser(context.Background(), u))
		require.Equal(t, int64(i+1), u.ID)
		tok, _, err := service.GenerateJWT(u)
		require.NoError(t, err)
		tokens[role] = tok
	}

	auth := service.NewAuthService(store, nil)
	r := gin.New()
	r.GET("/admin", JWT(auth), RequireRole(domain.RoleAdmin), func(c *gin.Context) {
		u, _ := CurrentUser(c)
		c.JSON(http.StatusOK, gin.H{"id": u.ID})
	})
	r.GET("/open", OptionalJWT(auth), func(c *gin.Context) {
		_, ok := CurrentUser(c)
		c.JSON(http.StatusOK, gin.H{"signed_in": ok})
	})
	return r, tokens
}

func doGet(r http.Handler, path, token string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	r.ServeHTTP(rec, req)
	return rec
}

func TestJWT_RequireRole(t *testing.T) {
	r, tokens := newAuthRouter(t)

	assert.Equal(t, http.StatusUnauthorized, doGet(r, "/admin", "").Code)
	assert.Equal(t, http.StatusUnauthorized, doGet(r, "/admin", "not-a-token").Code)
	assert.Equal(t, http.StatusForbidden, doGet(r, "/admin", tokens[domain.RoleManager]).Code)
	assert.Equal(t, http.StatusOK, doGet(r, "/admin", tokens[domain.RoleAdmin]).Code)
}

func TestOptionalJWT(t *testing.T) {
	r, tokens := newAuthRouter(t)

	assert.JSONEq(t, `{"signed_in":false}`, doGet(r, "/open", "").Body.String())
	assert.JSONEq(t, `{"signed_in":false}`, doGet(r, "/open", "bogus").Body.String())
	assert.JSONEq(t, `{"signed_in":true}`, doGet(r, "/open", tokens[domain.RoleEmployee]).Body.String())
}
