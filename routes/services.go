package routes

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"khadamati-server/database"
	"khadamati-server/middleware"
	"khadamati-server/models"
	"khadamati-server/utils"
)

// RegisterServiceRoutes registers catalog routes
func RegisterServiceRoutes(router *gin.RouterGroup) {
	services := router.Group("/services")
	{
		services.GET("", GetServices)
		services.GET("/:id", GetService)

		protected := services.Group("")
		protected.Use(middleware.AuthMiddleware(), middleware.RequireRole(models.RoleProvider, models.RoleAdmin))
		{
			protected.POST("", CreateService)
			protected.PUT("/:id", UpdateService)
			protected.DELETE("/:id", DeleteService)
		}
	}
}

// GetServices returns active services, optionally filtered by category
// and a case-insensitive search over the bilingual name and description.
func GetServices(c *gin.Context) {
	db := database.GetDB()

	query := db.Model(&models.Service{}).
		Select(`services.*,
			profiles.full_name AS provider_name,
			service_categories.name_en AS category_name_en,
			service_categories.name_ar AS category_name_ar`).
		Joins("JOIN profiles ON profiles.id = services.provider_id").
		Joins("JOIN service_categories ON service_categories.id = services.category_id").
		Where("services.is_active = ?", true)

	if categoryID := c.Query("category_id"); categoryID != "" {
		id, err := strconv.ParseUint(categoryID, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "Invalid category",
				"message": "category_id must be a number",
			})
			return
		}
		query = query.Where("services.category_id = ?", id)
	}

	if search := c.Query("search"); search != "" {
		like := "%" + search + "%"
		query = query.Where(
			`services.name_en ILIKE ? OR services.name_ar ILIKE ?
			 OR services.description_en ILIKE ? OR services.description_ar ILIKE ?`,
			like, like, like, like)
	}

	var services []models.ServiceResponse
	if err := query.Order("services.created_at DESC").Scan(&services).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to fetch services",
			"error":   err.Error(),
		})
		return
	}

	// Display names follow the resolved request language
	lang := requestLanguage(c)
	for i := range services {
		services[i].Name = utils.LocalizedText(services[i].NameEn, services[i].NameAr, lang)
		services[i].CategoryName = utils.LocalizedText(
			services[i].CategoryNameEn, services[i].CategoryNameAr, lang)
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"services": services,
		"count":    len(services),
	})
}

// GetService returns a single service with its provider and category
func GetService(c *gin.Context) {
	serviceID := c.Param("id")

	var service models.Service
	if err := database.DB.
		Preload("Provider").
		Preload("Category").
		Where("is_active = ?", true).
		First(&service, serviceID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "Service not found",
			"message": "The requested service does not exist",
		})
		return
	}

	var profile models.ProviderProfile
	var providerProfile *models.ProviderProfile
	if err := database.DB.Where("user_id = ?", service.ProviderID).First(&profile).Error; err == nil {
		providerProfile = &profile
	}

	c.JSON(http.StatusOK, gin.H{
		"success":          true,
		"service":          service,
		"provider":         service.Provider.Public(),
		"provider_profile": providerProfile,
	})
}

// CreateService creates a service for the authenticated provider
func CreateService(c *gin.Context) {
	user := c.MustGet("user").(models.User)

	var req models.ServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"message": err.Error(),
		})
		return
	}

	var category models.ServiceCategory
	if err := database.DB.Where("is_active = ?", true).First(&category, req.CategoryID).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid category",
			"message": "The selected category does not exist",
		})
		return
	}

	priceType := req.PriceType
	if priceType == "" {
		priceType = models.PriceTypeFixed
	}

	service := models.Service{
		ProviderID:      user.ID,
		CategoryID:      req.CategoryID,
		NameEn:          req.NameEn,
		NameAr:          req.NameAr,
		DescriptionEn:   req.DescriptionEn,
		DescriptionAr:   req.DescriptionAr,
		BasePrice:       req.BasePrice,
		PriceType:       priceType,
		DurationMinutes: req.DurationMinutes,
		IsActive:        true,
	}

	if err := database.DB.Create(&service).Error; err != nil {
		log.Printf("❌ Failed to create service: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Service creation failed",
			"message": "Failed to create service",
		})
		return
	}

	log.Printf("✅ Service created: %s (ID: %d) by provider %d", service.NameEn, service.ID, user.ID)

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Service created successfully",
		"service": service,
	})
}

// UpdateService updates a service owned by the authenticated provider
func UpdateService(c *gin.Context) {
	user := c.MustGet("user").(models.User)
	serviceID := c.Param("id")

	var service models.Service
	if err := database.DB.First(&service, serviceID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "Service not found",
			"message": "The requested service does not exist",
		})
		return
	}

	if service.ProviderID != user.ID && !user.IsAdmin() {
		c.JSON(http.StatusForbidden, gin.H{
			"error":   "Access denied",
			"message": "You can only update your own services",
		})
		return
	}

	var req models.ServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"message": err.Error(),
		})
		return
	}

	service.CategoryID = req.CategoryID
	service.NameEn = req.NameEn
	service.NameAr = req.NameAr
	service.DescriptionEn = req.DescriptionEn
	service.DescriptionAr = req.DescriptionAr
	service.BasePrice = req.BasePrice
	if req.PriceType != "" {
		service.PriceType = req.PriceType
	}
	service.DurationMinutes = req.DurationMinutes

	if err := database.DB.Save(&service).Error; err != nil {
		log.Printf("❌ Failed to update service %s: %v", serviceID, err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Update failed",
			"message": "Failed to update service",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Service updated successfully",
		"service": service,
	})
}

// DeleteService soft-deletes a service owned by the authenticated provider
func DeleteService(c *gin.Context) {
	user := c.MustGet("user").(models.User)
	serviceID := c.Param("id")

	var service models.Service
	if err := database.DB.First(&service, serviceID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "Service not found",
			"message": "The requested service does not exist",
		})
		return
	}

	if service.ProviderID != user.ID && !user.IsAdmin() {
		c.JSON(http.StatusForbidden, gin.H{
			"error":   "Access denied",
			"message": "You can only delete your own services",
		})
		return
	}

	if err := database.DB.Delete(&service).Error; err != nil {
		log.Printf("❌ Failed to delete service %s: %v", serviceID, err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Delete failed",
			"message": "Failed to delete service",
		})
		return
	}

	log.Printf("✅ Service deleted: %s (ID: %d)", service.NameEn, service.ID)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Service deleted successfully",
	})
}
