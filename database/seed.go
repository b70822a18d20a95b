package database

import (
	"errors"

	"github.com/yeremiapane/restaurant-booking/models"
	"github.com/yeremiapane/restaurant-booking/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Seed mengisi akun baseline dan meja contoh. Aman dipanggil berulang,
// record yang sudah ada tidak disentuh.
func Seed(db *gorm.DB) error {
	seedUsers := []struct {
		Name     string
		Email    string
		Password string
		Role     string
		Phone    string
	}{
		{"Administrator", "admin@restaurant.local", "admin123", models.RoleAdmin, "+6281000000001"},
		{"Staff One", "staff1@restaurant.local", "staff123", models.RoleStaff, "+6281000000002"},
	}

	for _, su := range seedUsers {
		var existing models.User
		err := db.Where("email = ?", su.Email).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(su.Password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		user := models.User{
			Name:     su.Name,
			Email:    su.Email,
			Password: string(hashed),
			Role:     su.Role,
			Phone:    su.Phone,
		}
		if err := db.Create(&user).Error; err != nil {
			return err
		}
		utils.InfoLogger.Printf("Seeded user %s (role=%s)", user.Email, user.Role)
	}

	seedTables := []models.Table{
		{TableNumber: 1, Capacity: 2, Location: "indoor", IsAvailable: true},
		{TableNumber: 2, Capacity: 4, Location: "indoor", IsAvailable: true},
		{TableNumber: 3, Capacity: 4, Location: "outdoor", IsAvailable: true},
		{TableNumber: 4, Capacity: 6, Location: "outdoor", IsAvailable: true},
		{TableNumber: 5, Capacity: 8, Location: "private_room", IsAvailable: true},
	}

	for _, st := range seedTables {
		var existing models.Table
		err := db.Where("table_number = ?", st.TableNumber).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if err := db.Create(&st).Error; err != nil {
			return err
		}
		utils.InfoLogger.Printf("Seeded table %d (capacity=%d, %s)", st.TableNumber, st.Capacity, st.Location)
	}

	return nil
}
