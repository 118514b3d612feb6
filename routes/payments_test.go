package routes

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"khadamati-server/config"
	"khadamati-server/models"
	"khadamati-server/services"
)

// paypalStub answers the processor calls without any network traffic
type paypalStub struct {
	order   *services.PayPalOrder
	capture *services.CaptureResult
	err     error
}

func (s *paypalStub) CreateOrder(amount float64, referenceID string) (*services.PayPalOrder, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.order, nil
}

func (s *paypalStub) CaptureOrder(orderID string) (*services.CaptureResult, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.capture, nil
}

func installPayPalStub(t *testing.T, stub *paypalStub) {
	t.Helper()
	prev := paypalService
	SetPayPalClient(stub)
	t.Cleanup(func() { paypalService = prev })
}

func setupPaymentConfig(t *testing.T) {
	t.Helper()
	prev := config.AppConfig
	config.AppConfig = &config.Config{
		PayPal: config.PayPalConfig{Currency: "USD"},
	}
	t.Cleanup(func() { config.AppConfig = prev })
}

func paypalBookingRows(status models.BookingStatus, paymentStatus models.PaymentStatus) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "customer_id", "provider_id", "service_id",
		"status", "payment_method", "payment_status", "total_amount", "pay_pal_order_id",
	}).AddRow(10, 1, 2, 3, string(status), "paypal", string(paymentStatus), 100.0, "ORD-1")
}

func TestCaptureConfirmsBookingAtomically(t *testing.T) {
	mock := setupMockDB(t)
	setupPaymentConfig(t)
	installPayPalStub(t, &paypalStub{
		capture: &services.CaptureResult{
			Order:      &services.PayPalOrder{ID: "ORD-1", Status: "COMPLETED", Raw: json.RawMessage(`{}`)},
			PayerID:    "PAYER-1",
			PayerEmail: "payer@example.com",
		},
	})

	mock.ExpectQuery(`SELECT .+ FROM "bookings" WHERE customer_id`).
		WithArgs(uint(1), uint(10)).
		WillReturnRows(paypalBookingRows(models.BookingStatusPending, models.PaymentStatusPending))

	// Commission lookup falls through to the default rate
	mock.ExpectQuery(`SELECT .+ FROM "provider_profiles"`).
		WithArgs(uint(2)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "payment_transactions"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectExec(`UPDATE "bookings" SET "payment_completed_at"=\$1,"payment_status"=\$2,"status"=\$3,"updated_at"=\$4`).
		WithArgs(sqlmock.AnyArg(), "paid", "confirmed", sqlmock.AnyArg(), uint(10)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	customer := models.User{ID: 1, Role: models.RoleCustomer}
	router := newAuthedRouter(customer, "POST", "/payments/paypal/capture", CapturePayPalOrder)

	w := performJSON(router, "POST", "/payments/paypal/capture", gin.H{
		"booking_id": 10,
		"order_id":   "ORD-1",
	})

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success     bool                      `json:"success"`
		Transaction models.PaymentTransaction `json:"transaction"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, models.TransactionCompleted, resp.Transaction.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCaptureRejectsCancelledBooking(t *testing.T) {
	mock := setupMockDB(t)
	installPayPalStub(t, &paypalStub{err: assert.AnError})

	mock.ExpectQuery(`SELECT .+ FROM "bookings" WHERE customer_id`).
		WithArgs(uint(1), uint(10)).
		WillReturnRows(paypalBookingRows(models.BookingStatusCancelled, models.PaymentStatusPending))

	customer := models.User{ID: 1, Role: models.RoleCustomer}
	router := newAuthedRouter(customer, "POST", "/payments/paypal/capture", CapturePayPalOrder)

	w := performJSON(router, "POST", "/payments/paypal/capture", gin.H{
		"booking_id": 10,
		"order_id":   "ORD-1",
	})

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "Booking not payable")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateOrderRejectsCancelledBooking(t *testing.T) {
	mock := setupMockDB(t)
	installPayPalStub(t, &paypalStub{err: assert.AnError})

	mock.ExpectQuery(`SELECT .+ FROM "bookings" WHERE customer_id`).
		WithArgs(uint(1), uint(10)).
		WillReturnRows(paypalBookingRows(models.BookingStatusCancelled, models.PaymentStatusPending))

	customer := models.User{ID: 1, Role: models.RoleCustomer}
	router := newAuthedRouter(customer, "POST", "/payments/paypal/order", CreatePayPalOrder)

	w := performJSON(router, "POST", "/payments/paypal/order", gin.H{
		"booking_id": 10,
	})

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "Booking not payable")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateOrderForCashBookingSendsClientOn(t *testing.T) {
	mock := setupMockDB(t)

	rows := sqlmock.NewRows([]string{
		"id", "customer_id", "provider_id", "service_id",
		"status", "payment_method", "payment_status", "total_amount",
	}).AddRow(10, 1, 2, 3, "pending", "cash_on_delivery", "cod_pending", 100.0)
	mock.ExpectQuery(`SELECT .+ FROM "bookings" WHERE customer_id`).
		WithArgs(uint(1), uint(10)).
		WillReturnRows(rows)

	customer := models.User{ID: 1, Role: models.RoleCustomer}
	router := newAuthedRouter(customer, "POST", "/payments/paypal/order", CreatePayPalOrder)

	w := performJSON(router, "POST", "/payments/paypal/order", gin.H{
		"booking_id": 10,
	})

	assert.Equal(t, http.StatusConflict, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "success", resp["next"])
	assert.NoError(t, mock.ExpectationsWereMet())
}
