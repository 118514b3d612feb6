package jobs

import (
	"log"
	"time"

	"khadamati-server/database"
	"khadamati-server/models"
)

// unpaidTTL is how long a PayPal booking may sit unpaid before it is
// cancelled automatically.
const unpaidTTL = 24 * time.Hour

// ExpirationJob cancels bookings whose online payment never arrived
type ExpirationJob struct {
	stopChan chan bool
}

// NewExpirationJob creates a new expiration job
func NewExpirationJob() *ExpirationJob {
	return &ExpirationJob{
		stopChan: make(chan bool),
	}
}

// Start begins the expiration job
func (j *ExpirationJob) Start() {
	go j.run()
	log.Println("🚀 Expiration job started")
}

// Stop stops the expiration job
func (j *ExpirationJob) Stop() {
	j.stopChan <- true
	log.Println("🛑 Expiration job stopped")
}

func (j *ExpirationJob) run() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			j.checkUnpaidBookings()
		case <-j.stopChan:
			return
		}
	}
}

// checkUnpaidBookings finds PayPal bookings still unpaid past the TTL
// and cancels them through the lifecycle.
func (j *ExpirationJob) checkUnpaidBookings() {
	cutoff := time.Now().Add(-unpaidTTL)

	var stale []models.Booking
	err := database.DB.Where(
		"payment_method = ? AND payment_status = ? AND status = ? AND created_at <= ?",
		models.PaymentMethodPayPal, models.PaymentStatusPending,
		models.BookingStatusPending, cutoff,
	).Find(&stale).Error
	if err != nil {
		log.Printf("❌ Error checking unpaid bookings: %v", err)
		return
	}

	if len(stale) == 0 {
		return
	}

	log.Printf("⏰ Found %d unpaid bookings past the payment window", len(stale))

	for _, booking := range stale {
		j.expireBooking(booking)
	}
}

func (j *ExpirationJob) expireBooking(booking models.Booking) {
	if err := booking.Cancel(models.ActorSystem, "payment window expired"); err != nil {
		log.Printf("❌ Cannot expire booking %d: %v", booking.ID, err)
		return
	}

	if err := database.DB.Save(&booking).Error; err != nil {
		log.Printf("❌ Failed to expire booking %d: %v", booking.ID, err)
		return
	}

	log.Printf("✅ Booking %d cancelled: unpaid past %s", booking.ID, unpaidTTL)
}
