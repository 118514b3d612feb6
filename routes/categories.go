package routes

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"khadamati-server/database"
	"khadamati-server/models"
)

// RegisterCategoryRoutes registers category-related routes
func RegisterCategoryRoutes(router *gin.RouterGroup) {
	categories := router.Group("/categories")
	{
		categories.GET("", GetServiceCategories)
	}
}

// GetServiceCategories returns all active service categories
func GetServiceCategories(c *gin.Context) {
	db := database.GetDB()

	var categories []models.ServiceCategory
	if err := db.Where("is_active = ?", true).Order("sort_order ASC").Find(&categories).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to fetch service categories",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"categories": categories,
	})
}

// CreateCategory creates a new service category (admin only)
func CreateCategory(c *gin.Context) {
	var req models.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	category := models.ServiceCategory{
		NameEn:        req.NameEn,
		NameAr:        req.NameAr,
		DescriptionEn: req.DescriptionEn,
		DescriptionAr: req.DescriptionAr,
		Icon:          req.Icon,
		SortOrder:     req.SortOrder,
		IsActive:      true,
	}

	if err := database.DB.Create(&category).Error; err != nil {
		log.Printf("❌ Failed to create category: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create category"})
		return
	}

	log.Printf("✅ Category created: %s (ID: %d)", category.NameEn, category.ID)

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Category created successfully",
		"data":    category,
	})
}

// UpdateCategory updates an existing service category (admin only)
func UpdateCategory(c *gin.Context) {
	categoryID := c.Param("id")

	var req models.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	var category models.ServiceCategory
	if err := database.DB.First(&category, categoryID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
		return
	}

	category.NameEn = req.NameEn
	category.NameAr = req.NameAr
	category.DescriptionEn = req.DescriptionEn
	category.DescriptionAr = req.DescriptionAr
	category.Icon = req.Icon
	category.SortOrder = req.SortOrder

	if err := database.DB.Save(&category).Error; err != nil {
		log.Printf("❌ Failed to update category: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update category"})
		return
	}

	log.Printf("✅ Category updated: %s (ID: %d)", category.NameEn, category.ID)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Category updated successfully",
		"data":    category,
	})
}

// DeleteCategory soft-deletes a service category (admin only)
func DeleteCategory(c *gin.Context) {
	categoryID := c.Param("id")

	var category models.ServiceCategory
	if err := database.DB.First(&category, categoryID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
		return
	}

	if err := database.DB.Delete(&category).Error; err != nil {
		log.Printf("❌ Failed to delete category: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete category"})
		return
	}

	log.Printf("✅ Category deleted: %s (ID: %d)", category.NameEn, category.ID)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Category deleted successfully",
	})
}
