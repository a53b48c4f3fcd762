package ws

import (
	"net/http"

	"resolvenow_backend/internal/auth"
	"resolvenow_backend/internal/logger"
	"resolvenow_backend/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Browsers cannot set the Authorization header on websocket
	// handshakes, so auth rides on a query parameter and origins are
	// not restricted here.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ServeWS upgrades the connection. The token is taken from the "token"
// query parameter since the handshake cannot carry a bearer header.
func ServeWS(manager *Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Query("token")
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "token query parameter required"})
			return
		}

		claims, err := auth.ParseToken(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			logger.Warn("ws upgrade failed", "error", err)
			return
		}

		client := newClient(manager, conn, claims.UserID, models.UserRole(claims.Role))
		manager.register <- client

		go client.writePump()
		go client.readPump()
	}
}
