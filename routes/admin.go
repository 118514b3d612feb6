package routes

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"khadamati-server/database"
	"khadamati-server/middleware"
	"khadamati-server/models"
)

// RegisterAdminRoutes registers the admin surface
func RegisterAdminRoutes(router *gin.RouterGroup) {
	admin := router.Group("/admin")
	admin.Use(middleware.AuthMiddleware(), middleware.RequireRole(models.RoleAdmin))
	{
		admin.GET("/dashboard", GetAdminDashboard)
		admin.GET("/users", GetAdminUsers)
		admin.PUT("/users/:id/active", SetUserActive)
		admin.GET("/providers", GetAdminProviders)
		admin.PUT("/providers/:id/verify", VerifyProvider)
		admin.GET("/bookings", GetAdminBookings)
		admin.GET("/transactions", GetAdminTransactions)

		admin.POST("/categories", CreateCategory)
		admin.PUT("/categories/:id", UpdateCategory)
		admin.DELETE("/categories/:id", DeleteCategory)
	}
}

// GetAdminDashboard returns marketplace-wide stats computed from the
// live tables.
func GetAdminDashboard(c *gin.Context) {
	db := database.GetDB()

	var totalUsers, totalProviders, totalServices, totalBookings int64
	var pendingVerifications, activeBookings int64

	db.Model(&models.User{}).Count(&totalUsers)
	db.Model(&models.User{}).Where("role = ?", models.RoleProvider).Count(&totalProviders)
	db.Model(&models.Service{}).Where("is_active = ?", true).Count(&totalServices)
	db.Model(&models.Booking{}).Count(&totalBookings)
	db.Model(&models.ProviderProfile{}).
		Where("verification_status = ?", models.VerificationPending).
		Count(&pendingVerifications)
	db.Model(&models.Booking{}).
		Where("status IN ?", []models.BookingStatus{
			models.BookingStatusPending,
			models.BookingStatusConfirmed,
			models.BookingStatusInProgress,
		}).
		Count(&activeBookings)

	var revenue struct {
		Total      float64
		Commission float64
	}
	db.Model(&models.PaymentTransaction{}).
		Select("COALESCE(SUM(amount), 0) AS total, COALESCE(SUM(commission_amount), 0) AS commission").
		Where("status = ?", models.TransactionCompleted).
		Scan(&revenue)

	var bookingsByStatus []struct {
		Status models.BookingStatus `json:"status"`
		Count  int64                `json:"count"`
	}
	db.Model(&models.Booking{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&bookingsByStatus)

	var recentBookings []models.Booking
	db.Preload("Service").Preload("Customer").
		Order("created_at DESC").Limit(10).Find(&recentBookings)

	var onlineUsers int
	if hub != nil {
		onlineUsers = len(hub.GetConnectedUsers())
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"stats": gin.H{
			"total_users":           totalUsers,
			"total_providers":       totalProviders,
			"total_services":        totalServices,
			"total_bookings":        totalBookings,
			"active_bookings":       activeBookings,
			"pending_verifications": pendingVerifications,
			"online_users":          onlineUsers,
			"total_revenue":         revenue.Total,
			"total_commission":      revenue.Commission,
			"bookings_by_status":    bookingsByStatus,
		},
		"recent_bookings": recentBookings,
	})
}

// GetAdminUsers lists users, optionally filtered by role
func GetAdminUsers(c *gin.Context) {
	query := database.DB.Model(&models.User{})

	if role := c.Query("role"); role != "" {
		query = query.Where("role = ?", role)
	}
	if search := c.Query("search"); search != "" {
		like := "%" + search + "%"
		query = query.Where("full_name ILIKE ? OR email ILIKE ?", like, like)
	}

	var users []models.User
	if err := query.Order("created_at DESC").Limit(200).Find(&users).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Fetch failed",
			"message": "Failed to fetch users",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"users":   users,
		"count":   len(users),
	})
}

// SetUserActive activates or deactivates a user account
func SetUserActive(c *gin.Context) {
	admin := c.MustGet("user").(models.User)
	userID := c.Param("id")

	var req struct {
		IsActive *bool `json:"is_active" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"message": err.Error(),
		})
		return
	}

	var user models.User
	if err := database.DB.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "User not found",
			"message": "The requested user does not exist",
		})
		return
	}

	if user.ID == admin.ID {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid target",
			"message": "You cannot deactivate your own account",
		})
		return
	}

	user.IsActive = *req.IsActive
	if err := database.DB.Save(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Update failed",
			"message": "Failed to update user",
		})
		return
	}

	log.Printf("✅ Admin %d set user %d active=%v", admin.ID, user.ID, user.IsActive)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "User updated successfully",
		"user":    user,
	})
}

// GetAdminProviders lists provider profiles with their users
func GetAdminProviders(c *gin.Context) {
	query := database.DB.Model(&models.ProviderProfile{}).Preload("User")

	if status := c.Query("verification_status"); status != "" {
		query = query.Where("verification_status = ?", status)
	}

	var profiles []models.ProviderProfile
	if err := query.Order("created_at DESC").Limit(200).Find(&profiles).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Fetch failed",
			"message": "Failed to fetch providers",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"providers": profiles,
		"count":     len(profiles),
	})
}

// VerifyProvider approves or rejects a provider's verification
func VerifyProvider(c *gin.Context) {
	admin := c.MustGet("user").(models.User)
	providerID := c.Param("id")

	var req struct {
		Status models.VerificationStatus `json:"status" binding:"required,oneof=approved rejected"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"message": err.Error(),
		})
		return
	}

	var profile models.ProviderProfile
	if err := database.DB.Where("user_id = ?", providerID).First(&profile).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "Provider not found",
			"message": "The requested provider does not exist",
		})
		return
	}

	profile.VerificationStatus = req.Status
	profile.IsVerified = req.Status == models.VerificationApproved
	if err := database.DB.Save(&profile).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Update failed",
			"message": "Failed to update provider",
		})
		return
	}

	// Mirror the verified flag on the user record
	database.DB.Model(&models.User{}).
		Where("id = ?", profile.UserID).
		Update("is_verified", profile.IsVerified)

	log.Printf("✅ Admin %d set provider %d verification to %s", admin.ID, profile.UserID, req.Status)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Provider verification updated",
		"profile": profile,
	})
}

// GetAdminBookings lists bookings across the marketplace
func GetAdminBookings(c *gin.Context) {
	query := bookingListQuery()

	if status := c.Query("status"); status != "" {
		query = query.Where("bookings.status = ?", status)
	}
	if from := c.Query("from"); from != "" {
		if t, err := time.Parse("2006-01-02", from); err == nil {
			query = query.Where("bookings.created_at >= ?", t)
		}
	}

	var bookings []models.BookingResponse
	if err := query.Order("bookings.created_at DESC").Limit(200).Scan(&bookings).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Fetch failed",
			"message": "Failed to fetch bookings",
		})
		return
	}
	localizeBookings(bookings, requestLanguage(c))

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"bookings": bookings,
		"count":    len(bookings),
	})
}

// GetAdminTransactions lists captured payment transactions
func GetAdminTransactions(c *gin.Context) {
	var transactions []models.PaymentTransaction
	if err := database.DB.Order("created_at DESC").Limit(200).Find(&transactions).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Fetch failed",
			"message": "Failed to fetch transactions",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"transactions": transactions,
		"count":        len(transactions),
	})
}
