package services

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPayPalTestServer(t *testing.T, handler func(w http.ResponseWriter, r *http.Request)) (*httptest.Server, *PayPalService) {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/v1/oauth2/token" {
			user, pass, ok := r.BasicAuth()
			require.True(t, ok)
			assert.Equal(t, "client-id", user)
			assert.Equal(t, "client-secret", pass)
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(map[string]string{"access_token": "test-token"})
			return
		}
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		handler(w, r)
	}))
	t.Cleanup(server.Close)
	return server, NewPayPalServiceWithBase(server.URL, "client-id", "client-secret", "USD")
}

func TestCreateOrder(t *testing.T) {
	var gotPayload map[string]interface{}
	_, ps := newPayPalTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "/v2/checkout/orders", r.URL.Path)
		assert.NotEmpty(t, r.Header.Get("PayPal-Request-Id"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotPayload))

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]string{"id": "ORDER-1", "status": "CREATED"})
	})

	order, err := ps.CreateOrder(45.50, "booking-7")
	require.NoError(t, err)

	assert.Equal(t, "ORDER-1", order.ID)
	assert.Equal(t, "CREATED", order.Status)
	assert.NotEmpty(t, order.Raw)

	assert.Equal(t, "CAPTURE", gotPayload["intent"])
	units := gotPayload["purchase_units"].([]interface{})
	require.Len(t, units, 1)
	unit := units[0].(map[string]interface{})
	assert.Equal(t, "booking-7", unit["reference_id"])
	amount := unit["amount"].(map[string]interface{})
	assert.Equal(t, "USD", amount["currency_code"])
	assert.Equal(t, "45.50", amount["value"])
}

func TestCreateOrderFailure(t *testing.T) {
	_, ps := newPayPalTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"name":"UNPROCESSABLE_ENTITY"}`))
	})

	order, err := ps.CreateOrder(10, "booking-8")
	assert.Error(t, err)
	assert.Nil(t, order)
}

func TestCaptureOrder(t *testing.T) {
	_, ps := newPayPalTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "/v2/checkout/orders/ORDER-1/capture", r.URL.Path)

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"id":     "ORDER-1",
			"status": "COMPLETED",
			"payer": map[string]string{
				"payer_id":      "PAYER-9",
				"email_address": "buyer@example.com",
			},
		})
	})

	result, err := ps.CaptureOrder("ORDER-1")
	require.NoError(t, err)

	assert.Equal(t, "ORDER-1", result.Order.ID)
	assert.Equal(t, "COMPLETED", result.Order.Status)
	assert.Equal(t, "PAYER-9", result.PayerID)
	assert.Equal(t, "buyer@example.com", result.PayerEmail)
	assert.NotEmpty(t, result.Order.Raw)
}

func TestCaptureOrderNotApproved(t *testing.T) {
	_, ps := newPayPalTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"name":"ORDER_NOT_APPROVED"}`))
	})

	result, err := ps.CaptureOrder("ORDER-2")
	assert.Error(t, err)
	assert.Nil(t, result)
}

func TestAccessTokenFailureSurfaces(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	t.Cleanup(server.Close)

	ps := NewPayPalServiceWithBase(server.URL, "bad-id", "bad-secret", "USD")
	_, err := ps.CreateOrder(10, "booking-9")
	assert.Error(t, err)
}
