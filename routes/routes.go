package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	ws "khadamati-server/websocket"
)

// hub is the realtime hub shared by all handlers
var hub *ws.Hub

// RegisterRoutes registers all API routes
func RegisterRoutes(router *gin.Engine, realtimeHub *ws.Hub) {
	hub = realtimeHub

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	apiV1 := router.Group("/api/v1")
	{
		RegisterAuthRoutes(apiV1)
		RegisterI18nRoutes(apiV1)
		RegisterCategoryRoutes(apiV1)
		RegisterServiceRoutes(apiV1)
		RegisterProviderRoutes(apiV1)
		RegisterAddressRoutes(apiV1)
		RegisterBookingRoutes(apiV1)
		RegisterReviewRoutes(apiV1)
		RegisterProviderBookingRoutes(apiV1)
		RegisterPaymentRoutes(apiV1)
		RegisterProfileMediaRoutes(apiV1)
		RegisterAdminRoutes(apiV1)
		RegisterWebSocketRoutes(apiV1)
	}
}
