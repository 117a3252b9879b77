package handlers

import (
	"net/http"

	"taskboard/internal/http/middleware"
	"taskboard/internal/navigation"

	"github.com/gin-gonic/gin"
)

func (h *Handler) Dashboard(c *gin.Context) {
	u, ok := sessionUser(c)
	if !ok {
		return
	}
	d, err := h.Dashboards.For(c.Request.Context(), u)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

// Navigate resolves ?to=<fragment> for the optional session.
func (h *Handler) Navigate(c *gin.Context) {
	u, _ := middleware.CurrentUser(c)
	c.JSON(http.StatusOK, navigation.Resolve(c.Query("to"), u))
}
