package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/yeremiapane/restaurant-booking/database"
	"github.com/yeremiapane/restaurant-booking/models"
	"github.com/yeremiapane/restaurant-booking/router"
	"github.com/yeremiapane/restaurant-booking/utils"
)

func TestMain(m *testing.M) {
	utils.InitLogger()
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// setupIntegrationDB -> migrasi model di SQLite in-memory + seed baseline
func setupIntegrationDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to open in-memory sqlite: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Table{},
		&models.Booking{},
	)
	if err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	if err := database.Seed(db); err != nil {
		log.Fatalf("failed to seed: %v", err)
	}

	return db
}

func request(t *testing.T, r *gin.Engine, method, url, token string, payload interface{}) *httptest.ResponseRecorder {
	var body *bytes.Buffer
	if payload != nil {
		raw, err := json.Marshal(payload)
		assert.NoError(t, err)
		body = bytes.NewBuffer(raw)
	} else {
		body = bytes.NewBuffer(nil)
	}
	req, err := http.NewRequest(method, url, body)
	assert.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func dataOf(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	var response map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	data, ok := response["data"].(map[string]interface{})
	assert.True(t, ok, "response data missing: %s", w.Body.String())
	return data
}

// TestBookingFlow menguji flow utama lewat router asli:
// register -> login -> create booking -> conflict -> cancel -> rebook slot
func TestBookingFlow(t *testing.T) {
	db := setupIntegrationDB(t)
	r := router.SetupRouter(db)

	// Health check terbuka tanpa auth
	w := request(t, r, "GET", "/", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// Register customer baru
	w = request(t, r, "POST", "/register", "", gin.H{
		"name":     "Citra",
		"email":    "citra@example.com",
		"password": "rahasia123",
		"phone":    "+6281298765432",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	// Login
	w = request(t, r, "POST", "/login", "", gin.H{
		"email":    "citra@example.com",
		"password": "rahasia123",
	})
	assert.Equal(t, http.StatusOK, w.Code)
	token := dataOf(t, w)["access_token"].(string)
	assert.NotEmpty(t, token)

	// Tanpa token, endpoint booking tertutup
	w = request(t, r, "GET", "/bookings", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Ambil meja hasil seed
	w = request(t, r, "GET", "/tables", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var tablesResp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &tablesResp))
	tables := tablesResp["data"].([]interface{})
	assert.Len(t, tables, 5)
	firstTable := tables[0].(map[string]interface{})
	tableID := uint(firstTable["id"].(float64))

	// Booking meja pertama (kapasitas 2)
	w = request(t, r, "POST", "/bookings", token, gin.H{
		"table_id":   tableID,
		"date":       "2024-06-01",
		"start_time": "18:00",
		"end_time":   "19:00",
		"guests":     2,
	})
	assert.Equal(t, http.StatusCreated, w.Code)
	bookingID := uint(dataOf(t, w)["id"].(float64))

	// Slot yang sama bentrok
	w = request(t, r, "POST", "/bookings", token, gin.H{
		"table_id":   tableID,
		"date":       "2024-06-01",
		"start_time": "18:30",
		"end_time":   "19:30",
		"guests":     2,
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	// Kapasitas meja pertama hanya 2
	w = request(t, r, "POST", "/bookings", token, gin.H{
		"table_id":   tableID,
		"date":       "2024-06-01",
		"start_time": "20:00",
		"end_time":   "21:00",
		"guests":     5,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Customer tidak boleh membuat meja
	w = request(t, r, "POST", "/tables", token, gin.H{"number": 9, "capacity": 4})
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Admin hasil seed boleh; token admin dibuat langsung
	var admin models.User
	assert.NoError(t, db.Where("role = ?", models.RoleAdmin).First(&admin).Error)
	adminToken, err := utils.GenerateToken(admin.ID, admin.Role)
	assert.NoError(t, err)

	w = request(t, r, "POST", "/tables", adminToken, gin.H{"number": 9, "capacity": 4, "location": "outdoor"})
	assert.Equal(t, http.StatusCreated, w.Code)

	// Admin melihat semua booking
	w = request(t, r, "GET", "/bookings", adminToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// Batalkan booking, lalu slot yang sama bisa dipakai lagi
	w = request(t, r, "DELETE", fmt.Sprintf("/bookings/%d", bookingID), token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = request(t, r, "POST", "/bookings", token, gin.H{
		"table_id":   tableID,
		"date":       "2024-06-01",
		"start_time": "18:00",
		"end_time":   "19:00",
		"guests":     2,
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	// Logout membuat token tidak berlaku lagi
	w = request(t, r, "POST", "/logout", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = request(t, r, "GET", "/users/me", token, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
