package routes

import (
	"github.com/gin-gonic/gin"

	"khadamati-server/middleware"
	"khadamati-server/models"
	ws "khadamati-server/websocket"
)

// RegisterWebSocketRoutes registers the realtime endpoint
func RegisterWebSocketRoutes(router *gin.RouterGroup) {
	router.GET("/ws", middleware.WebSocketAuthMiddleware(), func(c *gin.Context) {
		user := c.MustGet("user").(models.User)
		ws.ServeWebSocket(hub, c.Writer, c.Request, user.ID, string(user.Role))
	})
}
