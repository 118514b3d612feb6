package routes

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"khadamati-server/database"
	"khadamati-server/middleware"
	"khadamati-server/models"
)

// RegisterProviderRoutes registers provider profile routes
func RegisterProviderRoutes(router *gin.RouterGroup) {
	providers := router.Group("/providers")
	{
		providers.GET("/:id", GetProviderProfile)
		providers.GET("/:id/reviews", GetProviderReviews)

		me := providers.Group("/me")
		me.Use(middleware.AuthMiddleware(), middleware.RequireRole(models.RoleProvider))
		{
			me.GET("", GetMyProviderProfile)
			me.PUT("", UpdateMyProviderProfile)
		}
	}
}

// GetProviderProfile returns a provider's public profile with active services
func GetProviderProfile(c *gin.Context) {
	providerID := c.Param("id")

	var user models.User
	if err := database.DB.Where("role = ? AND is_active = ?", models.RoleProvider, true).
		First(&user, providerID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "Provider not found",
			"message": "The requested provider does not exist",
		})
		return
	}

	var profile models.ProviderProfile
	if err := database.DB.Where("user_id = ?", user.ID).First(&profile).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "Provider not found",
			"message": "The requested provider has no profile",
		})
		return
	}

	var services []models.Service
	database.DB.Where("provider_id = ? AND is_active = ?", user.ID, true).
		Preload("Category").Find(&services)

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"provider": user.Public(),
		"profile":  profile,
		"services": services,
	})
}

// GetProviderReviews returns reviews for a provider, newest first
func GetProviderReviews(c *gin.Context) {
	providerID := c.Param("id")

	var reviews []models.Review
	if err := database.DB.Where("provider_id = ?", providerID).
		Preload("Customer").
		Order("created_at DESC").
		Find(&reviews).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Fetch failed",
			"message": "Failed to fetch reviews",
		})
		return
	}

	// Strip customers down to their public fields
	out := make([]gin.H, 0, len(reviews))
	for _, r := range reviews {
		out = append(out, gin.H{
			"id":                r.ID,
			"booking_id":        r.BookingID,
			"rating":            r.Rating,
			"comment":           r.Comment,
			"provider_response": r.ProviderResponse,
			"customer":          r.Customer.Public(),
			"created_at":        r.CreatedAt,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"reviews": out,
		"count":   len(out),
	})
}

// GetMyProviderProfile returns the authenticated provider's profile
func GetMyProviderProfile(c *gin.Context) {
	user := c.MustGet("user").(models.User)

	var profile models.ProviderProfile
	if err := database.DB.Where("user_id = ?", user.ID).First(&profile).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "Profile not found",
			"message": "You do not have a provider profile yet",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"profile": profile,
	})
}

// UpdateMyProviderProfile updates the authenticated provider's profile
func UpdateMyProviderProfile(c *gin.Context) {
	user := c.MustGet("user").(models.User)

	var req models.ProviderProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"message": err.Error(),
		})
		return
	}

	if req.MinPrice != nil && req.MaxPrice != nil && *req.MinPrice > *req.MaxPrice {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid price range",
			"message": "min_price may not exceed max_price",
		})
		return
	}

	var profile models.ProviderProfile
	if err := database.DB.Where("user_id = ?", user.ID).First(&profile).Error; err != nil {
		profile = models.ProviderProfile{UserID: user.ID, IsActive: true}
	}

	profile.BusinessName = req.BusinessName
	profile.BioEn = req.BioEn
	profile.BioAr = req.BioAr
	profile.YearsExperience = req.YearsExperience
	profile.WhatsappNumber = req.WhatsappNumber
	profile.ServiceArea = req.ServiceArea
	profile.MinPrice = req.MinPrice
	profile.MaxPrice = req.MaxPrice

	if err := database.DB.Save(&profile).Error; err != nil {
		log.Printf("❌ Failed to save provider profile for user %d: %v", user.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Update failed",
			"message": "Failed to save provider profile",
		})
		return
	}

	log.Printf("✅ Provider profile saved for user %d", user.ID)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Provider profile saved successfully",
		"profile": profile,
	})
}
