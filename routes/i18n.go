package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"khadamati-server/middleware"
	"khadamati-server/models"
	"khadamati-server/utils"
)

// RegisterI18nRoutes registers the label table endpoint
func RegisterI18nRoutes(router *gin.RouterGroup) {
	router.GET("/i18n/labels", middleware.OptionalAuthMiddleware(), GetLabels)
}

// requestLanguage resolves the display language for a request: explicit
// ?lang=, then the signed-in user's preference, then Accept-Language.
func requestLanguage(c *gin.Context) models.Language {
	var preferred models.Language
	if u, exists := c.Get("user"); exists {
		preferred = u.(models.User).PreferredLanguage
	}
	return utils.ResolveLanguage(c.Query("lang"), preferred, c.GetHeader("Accept-Language"))
}

// GetLabels returns the display labels for the requested language along
// with the text direction the client should render in.
func GetLabels(c *gin.Context) {
	lang := requestLanguage(c)

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"language":  lang,
		"direction": utils.Direction(lang),
		"labels":    utils.Labels(lang),
	})
}
