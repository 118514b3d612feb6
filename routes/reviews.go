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

// RegisterReviewRoutes registers review routes
func RegisterReviewRoutes(router *gin.RouterGroup) {
	reviews := router.Group("/bookings/:id/review")
	reviews.Use(middleware.AuthMiddleware())
	{
		reviews.POST("", CreateReview)
		reviews.POST("/response", RespondToReview)
	}
}

// CreateReview lets the customer review a completed booking. One review
// per booking.
func CreateReview(c *gin.Context) {
	user := c.MustGet("user").(models.User)
	bookingID := c.Param("id")

	var req models.ReviewCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"message": err.Error(),
		})
		return
	}

	var booking models.Booking
	if err := database.DB.Where("customer_id = ?", user.ID).First(&booking, bookingID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "Booking not found",
			"message": "The requested booking does not exist",
		})
		return
	}

	if booking.Status != models.BookingStatusCompleted {
		c.JSON(http.StatusConflict, gin.H{
			"error":   "Booking not completed",
			"message": "Only completed bookings can be reviewed",
		})
		return
	}

	var existing models.Review
	if err := database.DB.Where("booking_id = ?", booking.ID).First(&existing).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{
			"error":   "Already reviewed",
			"message": "This booking has already been reviewed",
		})
		return
	}

	review := models.Review{
		BookingID:  booking.ID,
		CustomerID: booking.CustomerID,
		ProviderID: booking.ProviderID,
		Rating:     req.Rating,
		Comment:    req.Comment,
	}

	// Review insert and provider aggregates move together
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&review).Error; err != nil {
			return err
		}
		return recalcProviderRating(tx, booking.ProviderID)
	})
	if err != nil {
		log.Printf("❌ Failed to create review for booking %d: %v", booking.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Review failed",
			"message": "Failed to submit review",
		})
		return
	}

	log.Printf("✅ Review created for booking %d: %d stars", booking.ID, review.Rating)

	if hub != nil {
		hub.NotifyReviewReceived(booking.ID, booking.ProviderID, gin.H{
			"booking_id": booking.ID,
			"rating":     review.Rating,
		})
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Review submitted successfully",
		"review":  review,
	})
}

// RespondToReview lets the provider attach a single response
func RespondToReview(c *gin.Context) {
	user := c.MustGet("user").(models.User)
	bookingID := c.Param("id")

	var req models.ReviewResponseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"message": err.Error(),
		})
		return
	}

	var review models.Review
	if err := database.DB.Where("booking_id = ? AND provider_id = ?", bookingID, user.ID).
		First(&review).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "Review not found",
			"message": "There is no review for this booking",
		})
		return
	}

	if review.ProviderResponse != nil {
		c.JSON(http.StatusConflict, gin.H{
			"error":   "Already responded",
			"message": "You have already responded to this review",
		})
		return
	}

	review.ProviderResponse = &req.Response
	if err := database.DB.Save(&review).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Update failed",
			"message": "Failed to save response",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Response saved successfully",
		"review":  review,
	})
}

// recalcProviderRating recomputes a provider's average rating and review
// count from the reviews table.
func recalcProviderRating(tx *gorm.DB, providerID uint) error {
	var stats struct {
		Avg   float64
		Count int64
	}
	if err := tx.Model(&models.Review{}).
		Select("COALESCE(AVG(rating), 0) AS avg, COUNT(*) AS count").
		Where("provider_id = ?", providerID).
		Scan(&stats).Error; err != nil {
		return err
	}

	return tx.Model(&models.ProviderProfile{}).
		Where("user_id = ?", providerID).
		Updates(map[string]interface{}{
			"avg_rating":    stats.Avg,
			"total_reviews": stats.Count,
		}).Error
}
