package routes

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"khadamati-server/database"
	"khadamati-server/middleware"
	"khadamati-server/models"
)

// RegisterAddressRoutes registers address management routes
func RegisterAddressRoutes(router *gin.RouterGroup) {
	addresses := router.Group("/addresses")
	addresses.Use(middleware.AuthMiddleware())
	{
		addresses.GET("", GetAddresses)
		addresses.POST("", CreateAddress)
		addresses.PUT("/:id", UpdateAddress)
		addresses.DELETE("/:id", DeleteAddress)
		addresses.POST("/:id/set-default", SetDefaultAddress)
	}
}

// GetAddresses returns the authenticated user's active addresses
func GetAddresses(c *gin.Context) {
	user := c.MustGet("user").(models.User)

	var addresses []models.Address
	if err := database.DB.
		Where("user_id = ? AND is_active = ?", user.ID, true).
		Order("is_default DESC, created_at DESC").
		Find(&addresses).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Fetch failed",
			"message": "Failed to fetch addresses",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"addresses": addresses,
		"count":     len(addresses),
	})
}

// CreateAddress creates an address for the authenticated user
func CreateAddress(c *gin.Context) {
	user := c.MustGet("user").(models.User)

	var req models.AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"message": err.Error(),
		})
		return
	}

	address := models.Address{
		UserID:        user.ID,
		Label:         req.Label,
		StreetAddress: req.StreetAddress,
		City:          req.City,
		State:         req.State,
		Country:       req.Country,
		Latitude:      req.Latitude,
		Longitude:     req.Longitude,
		IsDefault:     req.IsDefault,
		IsActive:      true,
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		// First address becomes the default automatically
		var count int64
		if err := tx.Model(&models.Address{}).
			Where("user_id = ? AND is_active = ?", user.ID, true).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			address.IsDefault = true
		} else if address.IsDefault {
			if err := tx.Model(&models.Address{}).
				Where("user_id = ?", user.ID).
				Update("is_default", false).Error; err != nil {
				return err
			}
		}

		return tx.Create(&address).Error
	})
	if err != nil {
		log.Printf("❌ Failed to create address for user %d: %v", user.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Create failed",
			"message": "Failed to create address",
		})
		return
	}

	log.Printf("✅ Address created for user %d (ID: %d)", user.ID, address.ID)

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Address created successfully",
		"address": address,
	})
}

// UpdateAddress updates an address owned by the authenticated user
func UpdateAddress(c *gin.Context) {
	user := c.MustGet("user").(models.User)
	addressID := c.Param("id")

	var address models.Address
	if err := database.DB.Where("user_id = ?", user.ID).First(&address, addressID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "Address not found",
			"message": "The requested address does not exist",
		})
		return
	}

	var req models.AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"message": err.Error(),
		})
		return
	}

	address.Label = req.Label
	address.StreetAddress = req.StreetAddress
	address.City = req.City
	address.State = req.State
	address.Country = req.Country
	address.Latitude = req.Latitude
	address.Longitude = req.Longitude

	if err := database.DB.Save(&address).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Update failed",
			"message": "Failed to update address",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Address updated successfully",
		"address": address,
	})
}

// DeleteAddress soft-deletes an address owned by the authenticated user
func DeleteAddress(c *gin.Context) {
	user := c.MustGet("user").(models.User)
	addressID := c.Param("id")

	var address models.Address
	if err := database.DB.Where("user_id = ?", user.ID).First(&address, addressID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "Address not found",
			"message": "The requested address does not exist",
		})
		return
	}

	if err := database.DB.Delete(&address).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Delete failed",
			"message": "Failed to delete address",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Address deleted successfully",
	})
}

// SetDefaultAddress marks one address as the default
func SetDefaultAddress(c *gin.Context) {
	user := c.MustGet("user").(models.User)
	addressID := c.Param("id")

	var address models.Address
	if err := database.DB.Where("user_id = ? AND is_active = ?", user.ID, true).
		First(&address, addressID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "Address not found",
			"message": "The requested address does not exist",
		})
		return
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Address{}).
			Where("user_id = ?", user.ID).
			Update("is_default", false).Error; err != nil {
			return err
		}
		return tx.Model(&address).Update("is_default", true).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Update failed",
			"message": "Failed to set default address",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Default address updated",
		"address": address,
	})
}
