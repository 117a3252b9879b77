package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) Me(c *gin.Context) {
	u, ok := sessionUser(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, u)
}
