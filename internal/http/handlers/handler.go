package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"taskboard/internal/domain"
	"taskboard/internal/http/middleware"
	"taskboard/internal/logger"
	"taskboard/internal/repository"
	"taskboard/internal/service"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	Auth       *service.AuthService
	Users      *service.UserService
	Tasks      *service.TaskService
	Dashboards *service.DashboardService
	Audit      *service.AuditService
}

func NewHandler(store repository.Store, events service.EventPublisher, revoked *service.RevocationList) *Handler {
	return &Handler{
		Auth:       service.NewAuthService(store, revoked),
		Users:      service.NewUserService(store),
		Tasks:      service.NewTaskService(store, store, events),
		Dashboards: service.NewDashboardService(store, store),
		Audit:      service.NewAuditService(),
	}
}

// flexID decodes an id sent as a JSON number, a numeric string or null.
// Zero, "" and null all mean "no id". Set records that the key was present.
type flexID struct {
	Set   bool
	Value *int64
}

func (f *flexID) UnmarshalJSON(b []byte) error {
	f.Set = true
	s := strings.Trim(strings.TrimSpace(string(b)), `"`)
	if s == "" || s == "null" {
		f.Value = nil
		return nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid id %q", s)
	}
	if n == 0 {
		f.Value = nil
		return nil
	}
	f.Value = &n
	return nil
}

func (f flexID) Int() int64 {
	if f.Value == nil {
		return 0
	}
	return *f.Value
}

// bindJSON decodes the body into req. An empty body leaves req zeroed.
func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return false
	}
	return true
}

// paramID reads a path id. Unparsable values become 0, which never matches
// a stored record, so lookups report not found.
func paramID(c *gin.Context, name string) int64 {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		return 0
	}
	return id
}

func sessionUser(c *gin.Context) (*domain.User, bool) {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return nil, false
	}
	return u, true
}

// writeError maps domain errors to status codes. Anything unrecognised is
// a storage failure: logged, and reported without detail.
func writeError(c *gin.Context, err error) {
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, gin.H{"error": ve.Msg})
	case errors.Is(err, domain.ErrEmailExists):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrInvalidCredentials), errors.Is(err, domain.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrUserNotFound), errors.Is(err, domain.ErrTaskNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		logger.Error("request failed", "method", c.Request.Method, "route", c.FullPath(), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
