package jobs

import (
	"log"
	"time"

	"khadamati-server/database"
	"khadamati-server/models"
	ws "khadamati-server/websocket"
)

// reminderHub pushes reminders to connected clients
var reminderHub *ws.Hub

// SetHub wires the realtime hub into the reminder job
func SetHub(hub *ws.Hub) {
	reminderHub = hub
}

// SendBookingReminders notifies both parties of confirmed bookings
// scheduled for tomorrow. Runs daily from the cron scheduler.
func SendBookingReminders() {
	log.Println("Running job: SendBookingReminders...")

	tomorrow := time.Now().AddDate(0, 0, 1)
	dayStart := time.Date(tomorrow.Year(), tomorrow.Month(), tomorrow.Day(), 0, 0, 0, 0, tomorrow.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	var upcoming []models.Booking
	err := database.DB.
		Preload("Service").
		Where("status = ? AND scheduled_date >= ? AND scheduled_date < ?",
			models.BookingStatusConfirmed, dayStart, dayEnd).
		Find(&upcoming).Error
	if err != nil {
		log.Printf("❌ Error checking upcoming bookings: %v", err)
		return
	}

	if len(upcoming) == 0 {
		return
	}

	log.Printf("⏰ Sending reminders for %d bookings scheduled tomorrow", len(upcoming))

	if reminderHub == nil {
		return
	}

	delivered := 0
	for _, booking := range upcoming {
		data := map[string]interface{}{
			"booking_id":     booking.ID,
			"service_name":   booking.Service.NameEn,
			"scheduled_date": booking.ScheduledDate.Format("2006-01-02"),
			"scheduled_time": booking.ScheduledTime,
		}

		for _, userID := range []uint{booking.CustomerID, booking.ProviderID} {
			if !reminderHub.IsUserConnected(userID) {
				continue
			}
			reminderHub.SendToUser(userID, &ws.Message{
				Type:      "booking_reminder",
				BookingID: booking.ID,
				Data:      data,
				Timestamp: time.Now(),
			})
			delivered++
		}
	}
	log.Printf("⏰ Delivered %d reminders to connected users", delivered)
}
