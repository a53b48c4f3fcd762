package routes

import (
	"net/http"

	"resolvenow_backend/internal/config"
	"resolvenow_backend/internal/handlers"
	"resolvenow_backend/internal/middleware"
	"resolvenow_backend/ws"

	"github.com/gin-gonic/gin"
)

// Register wires every route onto the engine: the /api groups, the
// websocket endpoint and the static uploads directory.
func Register(r *gin.Engine, h *handlers.AppHandlers, manager *ws.Manager, cfg *config.Config) {
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggingMiddleware())
	r.Use(middleware.CORSMiddleware())

	api := r.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		h.Auth.RegisterRoutes(api)
		h.User.RegisterRoutes(api)
		h.Complaint.RegisterRoutes(api)
		h.Message.RegisterRoutes(api)
		h.Notification.RegisterRoutes(api)
		h.Analytics.RegisterRoutes(api)
		h.Upload.RegisterRoutes(api)
	}

	r.GET("/ws", ws.ServeWS(manager))

	r.Static("/uploads", cfg.Storage.BasePath)
}
