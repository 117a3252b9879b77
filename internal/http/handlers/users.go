package handlers

import (
	"net/http"

	"taskboard/internal/domain"
	"taskboard/internal/http/middleware"
	"taskboard/internal/service"

	"github.com/gin-gonic/gin"
)

type userRequest struct {
	Name      string      `json:"name"`
	Email     string      `json:"email"`
	Password  string      `json:"password"`
	Role      domain.Role `json:"role"`
	ManagerID flexID      `json:"managerId"`
}

func (h *Handler) ListUsers(c *gin.Context) {
	users, err := h.Users.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

func (h *Handler) GetUser(c *gin.Context) {
	id := paramID(c, "id")
	u, err := h.Users.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

func (h *Handler) ListManagers(c *gin.Context) {
	managers, err := h.Users.ListManagers(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, managers)
}

func (h *Handler) CreateUser(c *gin.Context) {
	var req userRequest
	if !bindJSON(c, &req) {
		return
	}

	u, err := h.Users.Create(c.Request.Context(), service.CreateUserInput{
		Name:      req.Name,
		Email:     req.Email,
		Password:  req.Password,
		Role:      req.Role,
		ManagerID: req.ManagerID.Value,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	h.auditAdmin(c, domain.AuditActionUserCreate, u.ID)
	c.JSON(http.StatusCreated, u)
}

func (h *Handler) UpdateUser(c *gin.Context) {
	id := paramID(c, "id")
	var req userRequest
	if !bindJSON(c, &req) {
		return
	}

	u, err := h.Users.Update(c.Request.Context(), id, service.UpdateUserInput{
		Name:         req.Name,
		Email:        req.Email,
		Password:     req.Password,
		Role:         req.Role,
		ManagerID:    req.ManagerID.Value,
		ManagerIDSet: req.ManagerID.Set,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	h.auditAdmin(c, domain.AuditActionUserUpdate, u.ID)
	c.JSON(http.StatusOK, u)
}

func (h *Handler) DeleteUser(c *gin.Context) {
	id := paramID(c, "id")
	if err := h.Users.Delete(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	h.auditAdmin(c, domain.AuditActionUserDelete, id)
	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}

func (h *Handler) auditAdmin(c *gin.Context, action string, targetID int64) {
	var actorID int64
	if u, ok := middleware.CurrentUser(c); ok {
		actorID = u.ID
	}
	h.Audit.LogAdmin(c.Request.Context(), actorID, action, targetID, c.ClientIP())
}
