package websocket

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(hub *Hub, id uint, role string) *Client {
	return &Client{
		Hub:  hub,
		ID:   id,
		Role: role,
		Send: make(chan []byte, 4),
	}
}

func registerClient(t *testing.T, hub *Hub, client *Client) {
	t.Helper()
	hub.Register <- client
	assert.Eventually(t, func() bool {
		return hub.IsUserConnected(client.ID)
	}, time.Second, 5*time.Millisecond)
}

func TestHubTracksConnectedUsers(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	customer := newTestClient(hub, 1, "customer")
	provider := newTestClient(hub, 2, "provider")
	registerClient(t, hub, customer)
	registerClient(t, hub, provider)

	assert.True(t, hub.IsUserConnected(1))
	assert.False(t, hub.IsUserConnected(99))
	assert.ElementsMatch(t, []uint{1, 2}, hub.GetConnectedUsers())

	hub.Unregister <- customer
	assert.Eventually(t, func() bool {
		return !hub.IsUserConnected(1)
	}, time.Second, 5*time.Millisecond)
	assert.ElementsMatch(t, []uint{2}, hub.GetConnectedUsers())
}

func TestNotifyBookingStatusReachesBothParties(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	customer := newTestClient(hub, 1, "customer")
	provider := newTestClient(hub, 2, "provider")
	registerClient(t, hub, customer)
	registerClient(t, hub, provider)

	hub.NotifyBookingStatus(10, 1, 2, "confirmed", nil)

	for _, client := range []*Client{customer, provider} {
		select {
		case data := <-client.Send:
			var msg Message
			require.NoError(t, json.Unmarshal(data, &msg))
			assert.Equal(t, "booking_status", msg.Type)
			assert.Equal(t, uint(10), msg.BookingID)
		case <-time.After(time.Second):
			t.Fatalf("user %d never received the status event", client.ID)
		}
	}
}

func TestSendToUserSkipsDisconnectedUsers(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	// Nobody connected, must not panic or block
	hub.SendToUser(42, &Message{Type: EventBookingCreated, Timestamp: time.Now()})
}

func TestSendMessageReportsFullBuffer(t *testing.T) {
	client := &Client{ID: 1, Send: make(chan []byte, 1)}

	require.NoError(t, client.SendMessage(&Message{Type: "pong", Timestamp: time.Now()}))
	assert.ErrorIs(t, client.SendMessage(&Message{Type: "pong", Timestamp: time.Now()}), ErrClientBufferFull)
}

func TestPingHandlerAnswersWithPong(t *testing.T) {
	hub := NewHub()
	client := newTestClient(hub, 1, "customer")

	handler, ok := hub.MessageHandlers["ping"]
	require.True(t, ok)
	require.NoError(t, handler(client, &Message{Type: "ping"}))

	data := <-client.Send
	var msg Message
	require.NoError(t, json.Unmarshal(data, &msg))
	assert.Equal(t, "pong", msg.Type)
}
