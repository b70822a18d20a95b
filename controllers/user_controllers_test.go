package controllers_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/yeremiapane/restaurant-booking/controllers"
	"github.com/yeremiapane/restaurant-booking/models"
	"github.com/yeremiapane/restaurant-booking/utils"
)

func setupUserRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	userCtrl := controllers.NewUserController(db)
	router.POST("/register", userCtrl.Register)
	router.POST("/login", userCtrl.Login)
	return router
}

func setupAdminRouter(db *gorm.DB, admin models.User) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(fakeAuth(admin))
	userCtrl := controllers.NewUserController(db)
	router.GET("/users", userCtrl.GetAllUsers)
	router.GET("/users/me", userCtrl.GetProfile)
	router.PUT("/users/:user_id/role", userCtrl.UpdateUserRole)
	return router
}

func TestRegister(t *testing.T) {
	utils.InitLogger()
	db := setupTestDB(t)
	router := setupUserRouter(db)

	w := doJSON(router, "POST", "/register", gin.H{
		"name":     "Alice",
		"email":    "alice@example.com",
		"password": "secret123",
		"phone":    "+6281234567890",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	var response map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	data := response["data"].(map[string]interface{})
	// Role selalu customer saat registrasi
	assert.Equal(t, "customer", data["role"])

	// Password tersimpan sebagai hash bcrypt
	var user models.User
	assert.NoError(t, db.Where("email = ?", "alice@example.com").First(&user).Error)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("secret123")))
}

func TestRegisterDuplicateEmail(t *testing.T) {
	utils.InitLogger()
	db := setupTestDB(t)
	router := setupUserRouter(db)

	payload := gin.H{
		"name":     "Alice",
		"email":    "alice@example.com",
		"password": "secret123",
		"phone":    "+6281234567890",
	}
	w := doJSON(router, "POST", "/register", payload)
	assert.Equal(t, http.StatusCreated, w.Code)

	// Email sama -> conflict, record pertama tidak berubah
	payload["name"] = "Impostor"
	w = doJSON(router, "POST", "/register", payload)
	assert.Equal(t, http.StatusConflict, w.Code)

	var user models.User
	assert.NoError(t, db.Where("email = ?", "alice@example.com").First(&user).Error)
	assert.Equal(t, "Alice", user.Name)

	var count int64
	db.Model(&models.User{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestRegisterMissingPhone(t *testing.T) {
	utils.InitLogger()
	db := setupTestDB(t)
	router := setupUserRouter(db)

	w := doJSON(router, "POST", "/register", gin.H{
		"name":     "Alice",
		"email":    "alice@example.com",
		"password": "secret123",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLogin(t *testing.T) {
	utils.InitLogger()
	db := setupTestDB(t)
	router := setupUserRouter(db)

	w := doJSON(router, "POST", "/register", gin.H{
		"name":     "Alice",
		"email":    "alice@example.com",
		"password": "secret123",
		"phone":    "+6281234567890",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(router, "POST", "/login", gin.H{
		"email":    "alice@example.com",
		"password": "secret123",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	data := response["data"].(map[string]interface{})
	assert.NotEmpty(t, data["access_token"])
	assert.Equal(t, "bearer", data["token_type"])

	// Token bisa diparse kembali
	claims, err := utils.ParseToken(data["access_token"].(string))
	assert.NoError(t, err)
	assert.Equal(t, "customer", claims.Role)

	// Password salah -> 401
	w = doJSON(router, "POST", "/login", gin.H{
		"email":    "alice@example.com",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Email tidak terdaftar -> 401
	w = doJSON(router, "POST", "/login", gin.H{
		"email":    "nobody@example.com",
		"password": "secret123",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGetProfile(t *testing.T) {
	utils.InitLogger()
	db := setupTestDB(t)
	admin := seedUser(t, db, "Admin", "admin@example.com", models.RoleAdmin)
	router := setupAdminRouter(db, admin)

	w := doJSON(router, "GET", "/users/me", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	data := response["data"].(map[string]interface{})
	assert.Equal(t, "admin@example.com", data["email"])
	// Password hash tidak boleh ikut ke response
	_, leaked := data["password"]
	assert.False(t, leaked)
}

func TestUpdateUserRole(t *testing.T) {
	utils.InitLogger()
	db := setupTestDB(t)
	admin := seedUser(t, db, "Admin", "admin@example.com", models.RoleAdmin)
	target := seedUser(t, db, "Bob", "bob@example.com", models.RoleCustomer)
	router := setupAdminRouter(db, admin)

	url := fmt.Sprintf("/users/%d/role", target.ID)

	// Role tidak dikenal -> 400
	w := doJSON(router, "PUT", url, gin.H{"role": "superuser"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(router, "PUT", url, gin.H{"role": "staff"})
	assert.Equal(t, http.StatusOK, w.Code)

	var updated models.User
	assert.NoError(t, db.First(&updated, target.ID).Error)
	assert.Equal(t, models.RoleStaff, updated.Role)

	// User tidak ada -> 404
	w = doJSON(router, "PUT", "/users/999/role", gin.H{"role": "staff"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}
