package routes

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"khadamati-server/config"
	"khadamati-server/database"
	"khadamati-server/middleware"
	"khadamati-server/models"
	"khadamati-server/services"
)

// paypalClient captures the two PayPal calls the handlers make, so tests
// can point them at a local server.
type paypalClient interface {
	CreateOrder(amount float64, referenceID string) (*services.PayPalOrder, error)
	CaptureOrder(orderID string) (*services.CaptureResult, error)
}

var paypalService paypalClient

// SetPayPalClient swaps the PayPal client, used in tests
func SetPayPalClient(client paypalClient) {
	paypalService = client
}

func getPayPalClient() paypalClient {
	if paypalService == nil {
		paypalService = services.NewPayPalService()
	}
	return paypalService
}

// RegisterPaymentRoutes registers payment routes
func RegisterPaymentRoutes(router *gin.RouterGroup) {
	payments := router.Group("/payments")
	payments.Use(middleware.AuthMiddleware())
	{
		payments.POST("/paypal/order", CreatePayPalOrder)
		payments.POST("/paypal/capture", CapturePayPalOrder)
	}
}

// CreatePayPalOrder creates a PayPal order for a pending booking.
// The amount always comes from the stored booking, never the client.
func CreatePayPalOrder(c *gin.Context) {
	user := c.MustGet("user").(models.User)

	var req struct {
		BookingID uint `json:"booking_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"message": err.Error(),
		})
		return
	}

	var booking models.Booking
	if err := database.DB.Where("customer_id = ?", user.ID).First(&booking, req.BookingID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "Booking not found",
			"message": "The requested booking does not exist",
		})
		return
	}

	if booking.PaymentMethod != models.PaymentMethodPayPal {
		// Cash bookings have nothing to pay online, send the client on
		c.JSON(http.StatusConflict, gin.H{
			"error":   "Cash booking",
			"message": "This booking is paid in cash on completion",
			"next":    "success",
		})
		return
	}

	if booking.PaymentStatus != models.PaymentStatusPending {
		c.JSON(http.StatusConflict, gin.H{
			"error":   "Already paid",
			"message": "This booking has already been paid",
		})
		return
	}

	if booking.Status != models.BookingStatusPending {
		c.JSON(http.StatusConflict, gin.H{
			"error":   "Booking not payable",
			"message": "Only pending bookings can be paid",
		})
		return
	}

	order, err := getPayPalClient().CreateOrder(booking.TotalAmount, fmt.Sprintf("booking-%d", booking.ID))
	if err != nil {
		log.Printf("❌ PayPal order creation failed for booking %d: %v", booking.ID, err)
		c.JSON(http.StatusBadGateway, gin.H{
			"error":   "Payment processor error",
			"message": "Failed to create PayPal order",
		})
		return
	}

	booking.PayPalOrderID = &order.ID
	if err := database.DB.Save(&booking).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Update failed",
			"message": "Failed to record PayPal order",
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":  true,
		"order_id": order.ID,
		"status":   order.Status,
	})
}

// CapturePayPalOrder captures an approved PayPal order. The transaction
// record and the booking's payment status are written in one database
// transaction so a crash can never leave them out of step.
func CapturePayPalOrder(c *gin.Context) {
	user := c.MustGet("user").(models.User)

	var req struct {
		BookingID uint   `json:"booking_id" binding:"required"`
		OrderID   string `json:"order_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"message": err.Error(),
		})
		return
	}

	var booking models.Booking
	if err := database.DB.Where("customer_id = ?", user.ID).First(&booking, req.BookingID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "Booking not found",
			"message": "The requested booking does not exist",
		})
		return
	}

	if booking.PaymentStatus == models.PaymentStatusPaid {
		c.JSON(http.StatusConflict, gin.H{
			"error":   "Already paid",
			"message": "This booking has already been paid",
		})
		return
	}

	// A cancelled or expired booking must never be captured against
	if booking.Status != models.BookingStatusPending {
		c.JSON(http.StatusConflict, gin.H{
			"error":   "Booking not payable",
			"message": "Only pending bookings can be paid",
		})
		return
	}

	if booking.PayPalOrderID == nil || *booking.PayPalOrderID != req.OrderID {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Order mismatch",
			"message": "The order does not belong to this booking",
		})
		return
	}

	result, err := getPayPalClient().CaptureOrder(req.OrderID)
	if err != nil {
		log.Printf("❌ PayPal capture failed for booking %d: %v", booking.ID, err)
		c.JSON(http.StatusBadGateway, gin.H{
			"error":   "Payment processor error",
			"message": "Failed to capture PayPal order",
		})
		return
	}

	if result.Order.Status != "COMPLETED" {
		c.JSON(http.StatusBadGateway, gin.H{
			"error":   "Capture incomplete",
			"message": fmt.Sprintf("PayPal returned status %s", result.Order.Status),
		})
		return
	}

	// Payment confirms the booking, through the lifecycle like any other
	// status change
	if err := booking.Transition(models.ActorSystem, models.BookingStatusConfirmed); err != nil {
		c.JSON(http.StatusConflict, gin.H{
			"error":   "Illegal status change",
			"message": err.Error(),
		})
		return
	}

	pricing := services.ComputePricing(booking.TotalAmount, commissionRateFor(booking.ProviderID))
	now := time.Now()

	transaction := models.PaymentTransaction{
		BookingID:        booking.ID,
		PaymentMethod:    models.PaymentMethodPayPal,
		TransactionID:    result.Order.ID,
		ReceiptNumber:    fmt.Sprintf("RCPT-%s", uuid.New().String()[:8]),
		Amount:           pricing.TotalAmount,
		CommissionAmount: pricing.CommissionAmount,
		ProviderAmount:   pricing.ProviderAmount,
		Currency:         config.AppConfig.PayPal.Currency,
		Status:           models.TransactionCompleted,
		PaymentData:      string(result.Order.Raw),
	}
	if result.PayerID != "" {
		transaction.PayerID = &result.PayerID
	}
	if result.PayerEmail != "" {
		transaction.PayerEmail = &result.PayerEmail
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&transaction).Error; err != nil {
			return err
		}

		return tx.Model(&models.Booking{}).
			Where("id = ?", booking.ID).
			Updates(map[string]interface{}{
				"payment_status":       models.PaymentStatusPaid,
				"status":               booking.Status,
				"payment_completed_at": now,
			}).Error
	})
	if err != nil {
		log.Printf("❌ Failed to record payment for booking %d: %v", booking.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Payment recording failed",
			"message": "Payment was captured but could not be recorded, contact support",
		})
		return
	}

	log.Printf("✅ Payment captured for booking %d: %s (%.2f %s)",
		booking.ID, transaction.TransactionID, transaction.Amount, transaction.Currency)

	if hub != nil {
		hub.NotifyPaymentCompleted(booking.ID, booking.ProviderID, gin.H{
			"booking_id":     booking.ID,
			"amount":         transaction.Amount,
			"receipt_number": transaction.ReceiptNumber,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"message":     "Payment completed successfully",
		"transaction": transaction,
	})
}

// commissionRateFor looks up the provider's commission rate, falling
// back to the marketplace default.
func commissionRateFor(providerID uint) float64 {
	var profile models.ProviderProfile
	if err := database.DB.Where("user_id = ?", providerID).First(&profile).Error; err != nil {
		return models.DefaultCommissionRate
	}
	if profile.CommissionRate <= 0 {
		return models.DefaultCommissionRate
	}
	return profile.CommissionRate
}
