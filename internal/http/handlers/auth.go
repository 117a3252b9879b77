package handlers

import (
	"errors"
	"net/http"

	"taskboard/internal/domain"
	"taskboard/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if !bindJSON(c, &req) {
		return
	}

	ctx := c.Request.Context()
	u, token, err := h.Auth.Login(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			h.Audit.LogWithRequest(ctx, 0, domain.AuditActionLoginFailed, domain.AuditCategoryAuth,
				c.ClientIP(), c.Request.UserAgent(), map[string]any{"email": req.Email})
		}
		writeError(c, err)
		return
	}

	h.Audit.LogWithRequest(ctx, u.ID, domain.AuditActionLogin, domain.AuditCategoryAuth,
		c.ClientIP(), c.Request.UserAgent(), nil)
	c.JSON(http.StatusOK, gin.H{"user": u, "token": token})
}

func (h *Handler) Logout(c *gin.Context) {
	ctx := c.Request.Context()
	claims, _ := middleware.CurrentClaims(c)
	if err := h.Auth.Logout(ctx, claims); err != nil {
		writeError(c, err)
		return
	}
	if u, ok := middleware.CurrentUser(c); ok {
		h.Audit.LogWithRequest(ctx, u.ID, domain.AuditActionLogout, domain.AuditCategoryAuth,
			c.ClientIP(), c.Request.UserAgent(), nil)
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}
