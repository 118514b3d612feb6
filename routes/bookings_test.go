package routes

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"khadamati-server/database"
	"khadamati-server/models"
)

// setupMockDB swaps the global DB handle for a sqlmock-backed connection
func setupMockDB(t *testing.T) sqlmock.Sqlmock {
	t.Helper()

	sqlDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{})
	require.NoError(t, err)

	prev := database.DB
	database.DB = gormDB
	t.Cleanup(func() {
		database.DB = prev
		sqlDB.Close()
	})
	return mock
}

// newAuthedRouter mounts a handler with the user pre-set, as the auth
// middleware would do after validating a token
func newAuthedRouter(user models.User, method, path string, handler gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Handle(method, path, func(c *gin.Context) {
		c.Set("user", user)
		c.Set("user_id", user.ID)
		c.Set("user_role", user.Role)
	}, handler)
	return router
}

func performJSON(router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCreateBookingRejectsInvalidDate(t *testing.T) {
	setupMockDB(t)

	customer := models.User{ID: 1, Role: models.RoleCustomer}
	router := newAuthedRouter(customer, "POST", "/bookings", CreateBooking)

	w := performJSON(router, "POST", "/bookings", gin.H{
		"service_id":     2,
		"address_id":     3,
		"scheduled_date": "tomorrow",
		"scheduled_time": "10:00",
		"payment_method": "cash_on_delivery",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid date")
}

func TestCreateBookingRejectsPastDate(t *testing.T) {
	setupMockDB(t)

	customer := models.User{ID: 1, Role: models.RoleCustomer}
	router := newAuthedRouter(customer, "POST", "/bookings", CreateBooking)

	w := performJSON(router, "POST", "/bookings", gin.H{
		"service_id":     2,
		"address_id":     3,
		"scheduled_date": "2020-01-01",
		"scheduled_time": "10:00",
		"payment_method": "cash_on_delivery",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "must not be in the past")
}

func TestCreateBookingRequiresSavedAddress(t *testing.T) {
	mock := setupMockDB(t)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "addresses"`).
		WithArgs(uint(1), true).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	customer := models.User{ID: 1, Role: models.RoleCustomer}
	router := newAuthedRouter(customer, "POST", "/bookings", CreateBooking)

	w := performJSON(router, "POST", "/bookings", gin.H{
		"service_id":     2,
		"address_id":     3,
		"scheduled_date": "2026-09-15",
		"scheduled_time": "10:00",
		"payment_method": "cash_on_delivery",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "no_addresses")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetMyBookingsFiltersByCustomer(t *testing.T) {
	mock := setupMockDB(t)

	rows := sqlmock.NewRows([]string{"id", "customer_id", "provider_id", "service_id", "status", "service_name_en", "service_name_ar", "customer_name", "provider_name"}).
		AddRow(10, 1, 2, 3, "pending", "Pipe Repair", "إصلاح الأنابيب", "Demo Customer", "Ahmad Al-Khalifa")
	mock.ExpectQuery(`(?s)SELECT bookings\..+FROM "bookings" JOIN services`).
		WithArgs(uint(1)).
		WillReturnRows(rows)

	customer := models.User{ID: 1, Role: models.RoleCustomer}
	router := newAuthedRouter(customer, "GET", "/bookings", GetMyBookings)

	w := performJSON(router, "GET", "/bookings", nil)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success  bool                     `json:"success"`
		Count    int                      `json:"count"`
		Bookings []models.BookingResponse `json:"bookings"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, 1, resp.Count)
	require.Len(t, resp.Bookings, 1)
	assert.Equal(t, "Pipe Repair", resp.Bookings[0].ServiceName)
	assert.Equal(t, models.BookingStatusPending, resp.Bookings[0].Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetMyBookingsLocalizesServiceName(t *testing.T) {
	mock := setupMockDB(t)

	rows := sqlmock.NewRows([]string{"id", "customer_id", "provider_id", "service_id", "status", "service_name_en", "service_name_ar", "customer_name", "provider_name"}).
		AddRow(10, 1, 2, 3, "pending", "Pipe Repair", "إصلاح الأنابيب", "Demo Customer", "Ahmad Al-Khalifa")
	mock.ExpectQuery(`(?s)SELECT bookings\..+FROM "bookings" JOIN services`).
		WithArgs(uint(1)).
		WillReturnRows(rows)

	customer := models.User{ID: 1, Role: models.RoleCustomer}
	router := newAuthedRouter(customer, "GET", "/bookings", GetMyBookings)

	w := performJSON(router, "GET", "/bookings?lang=ar", nil)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Bookings []models.BookingResponse `json:"bookings"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Bookings, 1)
	assert.Equal(t, "إصلاح الأنابيب", resp.Bookings[0].ServiceName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetBookingDeniesThirdParties(t *testing.T) {
	mock := setupMockDB(t)

	bookingRows := sqlmock.NewRows([]string{"id", "customer_id", "provider_id", "service_id", "status"}).
		AddRow(10, 1, 2, 3, "pending")
	mock.ExpectQuery(`SELECT .+ FROM "bookings"`).
		WillReturnRows(bookingRows)
	mock.ExpectQuery(`SELECT .+ FROM "services"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(3))

	outsider := models.User{ID: 99, Role: models.RoleCustomer}
	router := newAuthedRouter(outsider, "GET", "/bookings/:id", GetBooking)

	w := performJSON(router, "GET", "/bookings/10", nil)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}
