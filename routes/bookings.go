package routes

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"khadamati-server/database"
	"khadamati-server/middleware"
	"khadamati-server/models"
	"khadamati-server/services"
	"khadamati-server/utils"
)

// RegisterBookingRoutes registers customer booking routes
func RegisterBookingRoutes(router *gin.RouterGroup) {
	bookings := router.Group("/bookings")
	bookings.Use(middleware.AuthMiddleware())
	{
		bookings.POST("", CreateBooking)
		bookings.GET("", GetMyBookings)
		bookings.GET("/:id", GetBooking)
		bookings.POST("/:id/cancel", CancelBooking)
	}
}

// CreateBooking creates a booking for the authenticated customer.
// Pricing is always computed server-side from the service's base price.
func CreateBooking(c *gin.Context) {
	user := c.MustGet("user").(models.User)

	var req models.BookingCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"message": err.Error(),
		})
		return
	}

	scheduledDate, err := time.Parse("2006-01-02", req.ScheduledDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid date",
			"message": "scheduled_date must be in YYYY-MM-DD format",
		})
		return
	}
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if scheduledDate.Before(today) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid date",
			"message": "scheduled_date must not be in the past",
		})
		return
	}
	if _, err := time.Parse("15:04", req.ScheduledTime); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid time",
			"message": "scheduled_time must be in HH:MM format",
		})
		return
	}

	// Customers without a saved address cannot book
	var addressCount int64
	if err := database.DB.Model(&models.Address{}).
		Where("user_id = ? AND is_active = ?", user.ID, true).
		Count(&addressCount).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Booking failed",
			"message": "Failed to check addresses",
		})
		return
	}
	if addressCount == 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "no_addresses",
			"message": "Please add a service address before booking",
		})
		return
	}

	var address models.Address
	if err := database.DB.Where("id = ? AND user_id = ? AND is_active = ?", req.AddressID, user.ID, true).
		First(&address).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid address",
			"message": "The selected address does not exist",
		})
		return
	}

	var service models.Service
	if err := database.DB.Where("is_active = ?", true).First(&service, req.ServiceID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "Service not found",
			"message": "The requested service does not exist",
		})
		return
	}

	if service.ProviderID == user.ID {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid booking",
			"message": "You cannot book your own service",
		})
		return
	}

	var profile models.ProviderProfile
	var providerProfile *models.ProviderProfile
	if err := database.DB.Where("user_id = ?", service.ProviderID).First(&profile).Error; err == nil {
		providerProfile = &profile
	}

	pricing := services.PricingForService(&service, providerProfile)

	booking := models.Booking{
		CustomerID:       user.ID,
		ProviderID:       service.ProviderID,
		ServiceID:        service.ID,
		Status:           models.BookingStatusPending,
		ScheduledDate:    scheduledDate,
		ScheduledTime:    req.ScheduledTime,
		Address:          address.Display(),
		Latitude:         address.Latitude,
		Longitude:        address.Longitude,
		Notes:            req.Notes,
		TotalAmount:      pricing.TotalAmount,
		CommissionAmount: pricing.CommissionAmount,
		PaymentStatus:    models.InitialPaymentStatus(req.PaymentMethod),
		PaymentMethod:    req.PaymentMethod,
	}

	if err := database.DB.Create(&booking).Error; err != nil {
		log.Printf("❌ Failed to create booking: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Booking failed",
			"message": "Failed to create booking",
		})
		return
	}

	log.Printf("✅ Booking created: ID=%d, customer=%d, provider=%d, amount=%.2f",
		booking.ID, booking.CustomerID, booking.ProviderID, booking.TotalAmount)

	if hub != nil {
		hub.NotifyBookingCreated(booking.ID, booking.CustomerID, booking.ProviderID, gin.H{
			"booking_id":     booking.ID,
			"service_id":     booking.ServiceID,
			"scheduled_date": req.ScheduledDate,
			"scheduled_time": booking.ScheduledTime,
		})
	}

	// PayPal bookings go to checkout, cash bookings straight to confirmation
	next := "success"
	if booking.PaymentMethod == models.PaymentMethodPayPal {
		next = "payment"
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Booking created successfully",
		"booking": booking,
		"pricing": pricing,
		"next":    next,
	})
}

// bookingListQuery joins the display names every booking listing needs
func bookingListQuery() *gorm.DB {
	return database.DB.Model(&models.Booking{}).
		Select(`bookings.*,
			services.name_en AS service_name_en,
			services.name_ar AS service_name_ar,
			customers.full_name AS customer_name,
			providers.full_name AS provider_name`).
		Joins("JOIN services ON services.id = bookings.service_id").
		Joins("JOIN profiles AS customers ON customers.id = bookings.customer_id").
		Joins("JOIN profiles AS providers ON providers.id = bookings.provider_id")
}

// localizeBookings picks each service display name for the language
func localizeBookings(bookings []models.BookingResponse, lang models.Language) {
	for i := range bookings {
		bookings[i].ServiceName = utils.LocalizedText(
			bookings[i].ServiceNameEn, bookings[i].ServiceNameAr, lang)
	}
}

// GetMyBookings lists the authenticated user's bookings by role
func GetMyBookings(c *gin.Context) {
	user := c.MustGet("user").(models.User)

	query := bookingListQuery()

	if user.IsProvider() {
		query = query.Where("bookings.provider_id = ?", user.ID)
	} else {
		query = query.Where("bookings.customer_id = ?", user.ID)
	}

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

// loadBookingForParty fetches a booking the user participates in
func loadBookingForParty(c *gin.Context, user models.User) (*models.Booking, bool) {
	bookingID := c.Param("id")

	var booking models.Booking
	if err := database.DB.Preload("Service").First(&booking, bookingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error":   "Booking not found",
				"message": "The requested booking does not exist",
			})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":   "Fetch failed",
				"message": "Failed to fetch booking",
			})
		}
		return nil, false
	}

	if booking.CustomerID != user.ID && booking.ProviderID != user.ID && !user.IsAdmin() {
		c.JSON(http.StatusForbidden, gin.H{
			"error":   "Access denied",
			"message": "You are not a party to this booking",
		})
		return nil, false
	}

	return &booking, true
}

// GetBooking returns a single booking visible to its parties
func GetBooking(c *gin.Context) {
	user := c.MustGet("user").(models.User)

	booking, ok := loadBookingForParty(c, user)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"booking": booking,
	})
}

// CancelBooking cancels a booking on behalf of the acting party.
// The lifecycle decides whether the cancellation is allowed.
func CancelBooking(c *gin.Context) {
	user := c.MustGet("user").(models.User)

	booking, ok := loadBookingForParty(c, user)
	if !ok {
		return
	}

	var req struct {
		Reason string `json:"reason"`
	}
	c.ShouldBindJSON(&req)

	actor := models.ActorCustomer
	if user.ID == booking.ProviderID {
		actor = models.ActorProvider
	} else if user.IsAdmin() {
		actor = models.ActorAdmin
	}

	if err := booking.Cancel(actor, req.Reason); err != nil {
		c.JSON(http.StatusConflict, gin.H{
			"error":   "Illegal status change",
			"message": err.Error(),
		})
		return
	}

	if err := database.DB.Save(booking).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Update failed",
			"message": "Failed to cancel booking",
		})
		return
	}

	log.Printf("✅ Booking %d cancelled by %s", booking.ID, actor)

	if hub != nil {
		hub.NotifyBookingStatus(booking.ID, booking.CustomerID, booking.ProviderID,
			string(booking.Status), nil)
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Booking cancelled successfully",
		"booking": booking,
	})
}
