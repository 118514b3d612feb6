package websocket

import (
	"log"
	"sync"
	"time"
)

// Event types pushed to connected clients
const (
	EventBookingCreated   = "booking_created"
	EventBookingStatus    = "booking_status"
	EventPaymentCompleted = "payment_completed"
	EventReviewReceived   = "review_received"
)

// Hub manages all WebSocket connections
type Hub struct {
	// Registered clients keyed by user ID
	Clients map[uint]*Client

	// Register requests from clients
	Register chan *Client

	// Unregister requests from clients
	Unregister chan *Client

	// Message handlers
	MessageHandlers map[string]MessageHandler

	mu sync.RWMutex
}

// Message is the wire envelope for all realtime events
type Message struct {
	Type       string      `json:"type"`
	BookingID  uint        `json:"booking_id,omitempty"`
	SenderID   uint        `json:"sender_id,omitempty"`
	SenderRole string      `json:"sender_role,omitempty"`
	Timestamp  time.Time   `json:"timestamp"`
	Data       interface{} `json:"data,omitempty"`
}

// MessageHandler handles different types of incoming messages
type MessageHandler func(*Client, *Message) error

// NewHub creates a new WebSocket hub
func NewHub() *Hub {
	hub := &Hub{
		Clients:         make(map[uint]*Client),
		Register:        make(chan *Client),
		Unregister:      make(chan *Client),
		MessageHandlers: make(map[string]MessageHandler),
	}

	hub.MessageHandlers["ping"] = hub.handlePing

	return hub
}

// Run starts the hub's main loop
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.mu.Lock()
			h.Clients[client.ID] = client
			h.mu.Unlock()
			log.Printf("🔌 Client registered: ID=%d, Role=%s", client.ID, client.Role)

		case client := <-h.Unregister:
			h.mu.Lock()
			if _, ok := h.Clients[client.ID]; ok {
				delete(h.Clients, client.ID)
				close(client.Send)
			}
			h.mu.Unlock()
			log.Printf("🔌 Client unregistered: ID=%d, Role=%s", client.ID, client.Role)
		}
	}
}

// SendToUser sends a message to a specific user. Disconnected users are
// skipped silently since booking state lives in the database.
func (h *Hub) SendToUser(userID uint, message *Message) {
	h.mu.RLock()
	client, exists := h.Clients[userID]
	h.mu.RUnlock()

	if !exists {
		return
	}

	if err := client.SendMessage(message); err != nil {
		log.Printf("⚠️ Could not push %s to user %d: %v", message.Type, userID, err)
	}
}

// IsUserConnected checks if a user is currently connected
func (h *Hub) IsUserConnected(userID uint) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	_, exists := h.Clients[userID]
	return exists
}

// GetConnectedUsers returns a list of currently connected user IDs
func (h *Hub) GetConnectedUsers() []uint {
	h.mu.RLock()
	defer h.mu.RUnlock()

	users := make([]uint, 0, len(h.Clients))
	for userID := range h.Clients {
		users = append(users, userID)
	}
	return users
}

// NotifyBookingCreated tells the provider a new booking landed
func (h *Hub) NotifyBookingCreated(bookingID, customerID, providerID uint, data interface{}) {
	h.SendToUser(providerID, &Message{
		Type:       EventBookingCreated,
		BookingID:  bookingID,
		SenderID:   customerID,
		SenderRole: "customer",
		Data:       data,
		Timestamp:  time.Now(),
	})
}

// NotifyBookingStatus pushes a status change to both booking parties
func (h *Hub) NotifyBookingStatus(bookingID, customerID, providerID uint, status string, data interface{}) {
	message := &Message{
		Type:      EventBookingStatus,
		BookingID: bookingID,
		Data:      data,
		Timestamp: time.Now(),
	}
	if message.Data == nil {
		message.Data = map[string]interface{}{"status": status}
	}

	h.SendToUser(customerID, message)
	h.SendToUser(providerID, message)
}

// NotifyPaymentCompleted tells the provider a booking was paid
func (h *Hub) NotifyPaymentCompleted(bookingID, providerID uint, data interface{}) {
	h.SendToUser(providerID, &Message{
		Type:      EventPaymentCompleted,
		BookingID: bookingID,
		Data:      data,
		Timestamp: time.Now(),
	})
}

// NotifyReviewReceived tells the provider a review was posted
func (h *Hub) NotifyReviewReceived(bookingID, providerID uint, data interface{}) {
	h.SendToUser(providerID, &Message{
		Type:      EventReviewReceived,
		BookingID: bookingID,
		Data:      data,
		Timestamp: time.Now(),
	})
}

func (h *Hub) handlePing(client *Client, message *Message) error {
	return client.SendMessage(&Message{
		Type:      "pong",
		Timestamp: time.Now(),
	})
}
