package routes

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"khadamati-server/models"
)

// newPublicRouter mounts a handler with no auth, as the catalog routes are
func newPublicRouter(method, path string, handler gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Handle(method, path, handler)
	return router
}

func serviceCatalogRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "provider_id", "category_id", "name_en", "name_ar",
		"base_price", "price_type", "is_active",
		"provider_name", "category_name_en", "category_name_ar",
	}).AddRow(7, 2, 5, "Pipe Repair", "إصلاح الأنابيب",
		150.0, "fixed", true,
		"Ahmad Al-Khalifa", "Plumbing", "السباكة")
}

func TestGetServicesFiltersByCategory(t *testing.T) {
	mock := setupMockDB(t)

	mock.ExpectQuery(`(?s)SELECT services\..+FROM "services" JOIN profiles`).
		WithArgs(true, uint64(5)).
		WillReturnRows(serviceCatalogRows())

	router := newPublicRouter("GET", "/services", GetServices)
	w := performJSON(router, "GET", "/services?category_id=5", nil)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success  bool                     `json:"success"`
		Count    int                      `json:"count"`
		Services []models.ServiceResponse `json:"services"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, 1, resp.Count)
	require.Len(t, resp.Services, 1)
	assert.Equal(t, uint(5), resp.Services[0].CategoryID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetServicesRejectsBadCategoryID(t *testing.T) {
	setupMockDB(t)

	router := newPublicRouter("GET", "/services", GetServices)
	w := performJSON(router, "GET", "/services?category_id=plumbing", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "category_id must be a number")
}

func TestGetServicesSearchesArabicNames(t *testing.T) {
	mock := setupMockDB(t)

	like := "%سباكة%"
	mock.ExpectQuery(`(?s)SELECT services\..+name_ar ILIKE`).
		WithArgs(true, like, like, like, like).
		WillReturnRows(serviceCatalogRows())

	router := newPublicRouter("GET", "/services", GetServices)
	w := performJSON(router, "GET", "/services?search=سباكة", nil)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Services []models.ServiceResponse `json:"services"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Services, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetServicesLocalizesNames(t *testing.T) {
	mock := setupMockDB(t)

	mock.ExpectQuery(`(?s)SELECT services\..+FROM "services" JOIN profiles`).
		WithArgs(true).
		WillReturnRows(serviceCatalogRows())

	router := newPublicRouter("GET", "/services", GetServices)
	w := performJSON(router, "GET", "/services?lang=ar", nil)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Services []models.ServiceResponse `json:"services"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Services, 1)
	assert.Equal(t, "إصلاح الأنابيب", resp.Services[0].Name)

	var raw struct {
		Services []map[string]interface{} `json:"services"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &raw))
	assert.Equal(t, "السباكة", raw.Services[0]["category_name"])
	assert.NoError(t, mock.ExpectationsWereMet())
}
