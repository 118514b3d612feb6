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

// RegisterProviderBookingRoutes registers the provider's side of the
// booking lifecycle.
func RegisterProviderBookingRoutes(router *gin.RouterGroup) {
	bookings := router.Group("/provider/bookings")
	bookings.Use(middleware.AuthMiddleware(), middleware.RequireRole(models.RoleProvider))
	{
		bookings.GET("", GetProviderBookings)
		bookings.POST("/:id/accept", AcceptBooking)
		bookings.POST("/:id/reject", RejectBooking)
		bookings.POST("/:id/start", StartBooking)
		bookings.POST("/:id/complete", CompleteBooking)
	}
}

// GetProviderBookings lists bookings assigned to the authenticated provider
func GetProviderBookings(c *gin.Context) {
	user := c.MustGet("user").(models.User)

	query := bookingListQuery().Where("bookings.provider_id = ?", user.ID)

	if status := c.Query("status"); status != "" {
		query = query.Where("bookings.status = ?", status)
	}

	var bookings []models.BookingResponse
	if err := query.Order("bookings.created_at DESC").Scan(&bookings).Error; err != nil {
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

// transitionProviderBooking moves one of the provider's bookings through
// the lifecycle, rejecting illegal transitions with 409.
func transitionProviderBooking(c *gin.Context, to models.BookingStatus, successMessage string) {
	user := c.MustGet("user").(models.User)
	bookingID := c.Param("id")

	var booking models.Booking
	if err := database.DB.Where("provider_id = ?", user.ID).First(&booking, bookingID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "Booking not found",
			"message": "The requested booking does not exist",
		})
		return
	}

	if err := booking.Transition(models.ActorProvider, to); err != nil {
		c.JSON(http.StatusConflict, gin.H{
			"error":   "Illegal status change",
			"message": err.Error(),
		})
		return
	}

	if err := database.DB.Save(&booking).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Update failed",
			"message": "Failed to update booking",
		})
		return
	}

	// Completed bookings count toward the provider's totals
	if to == models.BookingStatusCompleted {
		database.DB.Model(&models.ProviderProfile{}).
			Where("user_id = ?", user.ID).
			UpdateColumn("total_bookings", gorm.Expr("total_bookings + 1"))
	}

	log.Printf("✅ Booking %d moved to %s by provider %d", booking.ID, to, user.ID)

	if hub != nil {
		hub.NotifyBookingStatus(booking.ID, booking.CustomerID, booking.ProviderID,
			string(booking.Status), nil)
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": successMessage,
		"booking": booking,
	})
}

// AcceptBooking confirms a pending booking
func AcceptBooking(c *gin.Context) {
	transitionProviderBooking(c, models.BookingStatusConfirmed, "Booking confirmed")
}

// RejectBooking declines a booking, recording the provider as canceller
func RejectBooking(c *gin.Context) {
	user := c.MustGet("user").(models.User)
	bookingID := c.Param("id")

	var req struct {
		Reason string `json:"reason"`
	}
	c.ShouldBindJSON(&req)

	var booking models.Booking
	if err := database.DB.Where("provider_id = ?", user.ID).First(&booking, bookingID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "Booking not found",
			"message": "The requested booking does not exist",
		})
		return
	}

	if err := booking.Cancel(models.ActorProvider, req.Reason); err != nil {
		c.JSON(http.StatusConflict, gin.H{
			"error":   "Illegal status change",
			"message": err.Error(),
		})
		return
	}

	if err := database.DB.Save(&booking).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Update failed",
			"message": "Failed to update booking",
		})
		return
	}

	log.Printf("✅ Booking %d rejected by provider %d", booking.ID, user.ID)

	if hub != nil {
		hub.NotifyBookingStatus(booking.ID, booking.CustomerID, booking.ProviderID,
			string(booking.Status), nil)
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Booking rejected",
		"booking": booking,
	})
}

// StartBooking marks a confirmed booking as in progress
func StartBooking(c *gin.Context) {
	transitionProviderBooking(c, models.BookingStatusInProgress, "Booking started")
}

// CompleteBooking marks a booking as completed
func CompleteBooking(c *gin.Context) {
	transitionProviderBooking(c, models.BookingStatusCompleted, "Booking completed")
}
