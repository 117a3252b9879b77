package http

import (
	"time"

	"taskboard/internal/domain"
	"taskboard/internal/http/handlers"
	"taskboard/internal/http/middleware"
	"taskboard/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type RouteConfig struct {
	AllowedOrigin   string
	LoginRateLimit  int
	LoginRateWindow time.Duration
}

func RegisterRoutes(r *gin.Engine, h *handlers.Handler, health *handlers.HealthHandler, hub *ws.Hub, cfg RouteConfig) {
	r.Use(middleware.Metrics())
	r.Use(middleware.CORS(cfg.AllowedOrigin))

	// Health checks (no rate limiting)
	r.GET("/health", health.Health)
	r.GET("/healthz", health.Liveness)
	r.GET("/readyz", health.Readiness)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	loginLimit := cfg.LoginRateLimit
	if loginLimit <= 0 {
		loginLimit = 10
	}
	loginWindow := cfg.LoginRateWindow
	if loginWindow <= 0 {
		loginWindow = time.Minute
	}

	api := r.Group("/api")
	api.GET("/health", health.Health)
	api.POST("/login", middleware.RedisRateLimit("login", loginLimit, loginWindow), h.Login)
	api.GET("/navigate", middleware.OptionalJWT(h.Auth), h.Navigate)
	api.GET("/ws", ws.HandleWS(hub, h.Auth, cfg.AllowedOrigin))

	authed := api.Group("")
	authed.Use(middleware.JWT(h.Auth))
	registerAPIRoutes(authed, h)
}

func registerAPIRoutes(api *gin.RouterGroup, h *handlers.Handler) {
	admin := middleware.RequireRole(domain.RoleAdmin)
	manager := middleware.RequireRole(domain.RoleManager)
	staff := middleware.RequireRole(domain.RoleAdmin, domain.RoleManager)

	// Session
	api.POST("/logout", h.Logout)
	api.GET("/me", h.Me)
	api.GET("/dashboard", h.Dashboard)

	// Users
	api.GET("/users", staff, h.ListUsers)
	api.GET("/users/:id", h.GetUser)
	api.POST("/users", admin, h.CreateUser)
	api.PUT("/users/:id", admin, h.UpdateUser)
	api.DELETE("/users/:id", admin, h.DeleteUser)
	api.GET("/managers", admin, h.ListManagers)

	// Tasks
	api.POST("/tasks", manager, h.CreateTask)
	api.GET("/tasks", manager, h.ListTasks)
	api.GET("/tasks/:id", h.GetTask)
	api.PUT("/tasks/:id", manager, h.UpdateTask)
	api.DELETE("/tasks/:id", manager, h.DeleteTask)
	api.PUT("/tasks/:id/assign", manager, h.AssignTask)
	api.PUT("/tasks/:id/complete", middleware.RequireRole(domain.RoleEmployee, domain.RoleManager), h.CompleteTask)
	api.PUT("/tasks/:id/close", manager, h.CloseTask)

	// Per-user views; static segments take precedence over :id
	api.GET("/tasks/user/:userId", h.ListUserTasks)
	api.GET("/tasks/user/:userId/history", h.UserTaskHistory)
	api.GET("/tasks/history/:userId", staff, h.ManagerHistory)
}
