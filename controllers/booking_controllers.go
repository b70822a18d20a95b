package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/yeremiapane/restaurant-booking/models"
	"github.com/yeremiapane/restaurant-booking/services"
	"github.com/yeremiapane/restaurant-booking/utils"
	"gorm.io/gorm"
)

type BookingController struct {
	DB       *gorm.DB
	Notifier *services.BookingNotifier
}

func NewBookingController(db *gorm.DB) *BookingController {
	return &BookingController{
		DB:       db,
		Notifier: services.NewBookingNotifier(services.GetSMSService()),
	}
}

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

func parseBookingDate(date string) error {
	if _, err := time.Parse(dateLayout, date); err != nil {
		return errors.New("invalid date, expected YYYY-MM-DD")
	}
	return nil
}

func parseBookingTime(value string) error {
	if _, err := time.Parse(timeLayout, value); err != nil {
		return errors.New("invalid time, expected HH:MM")
	}
	return nil
}

// findConflict mencari booking aktif di meja dan tanggal yang sama yang
// interval [start, end)-nya beririsan. Interval yang cuma bersentuhan di
// ujung (end == start berikutnya) tidak dianggap bentrok.
func findConflict(tx *gorm.DB, tableID uint, date, startTime, endTime string, excludeID uint) (*models.Booking, error) {
	query := tx.Where(
		"table_id = ? AND date = ? AND start_time < ? AND end_time > ? AND status != ?",
		tableID, date, endTime, startTime, models.BookingCancelled,
	)
	if excludeID != 0 {
		query = query.Where("id != ?", excludeID)
	}

	var conflict models.Booking
	err := query.First(&conflict).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &conflict, nil
}

// bookingRow adalah booking plus kolom denormalisasi untuk tampilan.
type bookingRow struct {
	ID          uint      `json:"id"`
	Code        string    `json:"code"`
	UserID      uint      `json:"user_id"`
	UserName    string    `json:"user_name,omitempty"`
	TableID     uint      `json:"table_id"`
	TableNumber int       `json:"table_number"`
	Date        string    `json:"date"`
	StartTime   string    `json:"start_time"`
	EndTime     string    `json:"end_time"`
	Guests      int       `json:"guests"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

// GetAllBookings:
// - admin/staff melihat semua booking
// - customer hanya melihat miliknya sendiri
func (bc *BookingController) GetAllBookings(c *gin.Context) {
	role := c.GetString("role")
	userID := c.GetUint("userID")

	query := bc.DB.Table("bookings").
		Select("bookings.id, bookings.code, bookings.user_id, users.name AS user_name, "+
			"bookings.table_id, tables.table_number, bookings.date, bookings.start_time, "+
			"bookings.end_time, bookings.guests, bookings.status, bookings.created_at").
		Joins("JOIN users ON users.id = bookings.user_id").
		Joins("JOIN tables ON tables.id = bookings.table_id").
		Order("bookings.date DESC, bookings.start_time")

	if role != models.RoleAdmin && role != models.RoleStaff {
		query = query.Where("bookings.user_id = ?", userID)
	}

	var rows []bookingRow
	if err := query.Scan(&rows).Error; err != nil {
		utils.RespondDBError(c, err, "bookings not found")
		return
	}

	utils.RespondJSON(c, http.StatusOK, "List of bookings", rows)
}

// CreateBooking membuat booking baru. Pemeriksaan meja, kapasitas, dan
// bentrok waktu berjalan dalam satu transaksi dengan insert-nya, supaya
// dua request bersamaan tidak bisa sama-sama lolos pemeriksaan.
func (bc *BookingController) CreateBooking(c *gin.Context) {
	var req struct {
		TableID   uint   `json:"table_id" binding:"required"`
		Date      string `json:"date" binding:"required"`
		StartTime string `json:"start_time" binding:"required"`
		EndTime   string `json:"end_time" binding:"required"`
		Guests    int    `json:"guests" binding:"required,gt=0"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if err := parseBookingDate(req.Date); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if err := parseBookingTime(req.StartTime); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if err := parseBookingTime(req.EndTime); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if req.EndTime <= req.StartTime {
		utils.RespondError(c, http.StatusBadRequest, errors.New("end_time must be after start_time"))
		return
	}

	userID := c.GetUint("userID")

	var (
		booking  models.Booking
		table    models.Table
		owner    models.User
		httpCode int
		httpErr  error
	)
	fail := func(code int, err error) error {
		httpCode, httpErr = code, err
		return err
	}

	txErr := bc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&table, req.TableID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fail(http.StatusNotFound, errors.New("table not found"))
			}
			return err
		}

		if req.Guests > table.Capacity {
			return fail(http.StatusBadRequest,
				fmt.Errorf("table capacity is %d, but %d guests requested", table.Capacity, req.Guests))
		}

		conflict, err := findConflict(tx, req.TableID, req.Date, req.StartTime, req.EndTime, 0)
		if err != nil {
			return err
		}
		if conflict != nil {
			return fail(http.StatusConflict,
				fmt.Errorf("time conflict with existing booking %s", conflict.Code))
		}

		booking = models.Booking{
			Code:      uuid.NewString(),
			UserID:    userID,
			TableID:   req.TableID,
			Date:      req.Date,
			StartTime: req.StartTime,
			EndTime:   req.EndTime,
			Guests:    req.Guests,
			Status:    models.BookingConfirmed,
		}
		if err := tx.Create(&booking).Error; err != nil {
			return err
		}

		return tx.First(&owner, userID).Error
	})
	if txErr != nil {
		if httpErr != nil {
			utils.RespondError(c, httpCode, httpErr)
			return
		}
		utils.RespondDBError(c, txErr, "booking not found")
		return
	}

	// SMS dikirim setelah transaksi commit; hasilnya tidak mempengaruhi response
	bc.Notifier.BookingCreated(owner, booking, table)

	utils.InfoLogger.Printf("Booking %s created for table %d on %s %s-%s",
		booking.Code, table.TableNumber, booking.Date, booking.StartTime, booking.EndTime)

	utils.RespondJSON(c, http.StatusCreated, "Booking created successfully", bookingRow{
		ID:          booking.ID,
		Code:        booking.Code,
		UserID:      booking.UserID,
		TableID:     booking.TableID,
		TableNumber: table.TableNumber,
		Date:        booking.Date,
		StartTime:   booking.StartTime,
		EndTime:     booking.EndTime,
		Guests:      booking.Guests,
		Status:      booking.Status,
		CreatedAt:   booking.CreatedAt,
	})
}

// UpdateBooking menerapkan partial update. Field yang tidak dikirim tetap
// pada nilai lama. Kalau meja/tanggal/jam berubah, pemeriksaan bentrok
// diulang terhadap nilai hasil merge, tanpa menghitung booking ini sendiri.
func (bc *BookingController) UpdateBooking(c *gin.Context) {
	bookingID := c.Param("booking_id")

	var req struct {
		TableID   *uint   `json:"table_id"`
		Date      *string `json:"date"`
		StartTime *string `json:"start_time"`
		EndTime   *string `json:"end_time"`
		Guests    *int    `json:"guests"`
		Status    *string `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if req.TableID == nil && req.Date == nil && req.StartTime == nil &&
		req.EndTime == nil && req.Guests == nil && req.Status == nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("no fields to update"))
		return
	}

	if req.Date != nil {
		if err := parseBookingDate(*req.Date); err != nil {
			utils.RespondError(c, http.StatusBadRequest, err)
			return
		}
	}
	if req.StartTime != nil {
		if err := parseBookingTime(*req.StartTime); err != nil {
			utils.RespondError(c, http.StatusBadRequest, err)
			return
		}
	}
	if req.EndTime != nil {
		if err := parseBookingTime(*req.EndTime); err != nil {
			utils.RespondError(c, http.StatusBadRequest, err)
			return
		}
	}
	if req.Guests != nil && *req.Guests <= 0 {
		utils.RespondError(c, http.StatusBadRequest, errors.New("guests must be positive"))
		return
	}
	if req.Status != nil && !models.ValidBookingStatus(*req.Status) {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid status, must be 'confirmed' or 'cancelled'"))
		return
	}

	role := c.GetString("role")
	userID := c.GetUint("userID")

	var (
		booking  models.Booking
		owner    models.User
		httpCode int
		httpErr  error
	)
	fail := func(code int, err error) error {
		httpCode, httpErr = code, err
		return err
	}

	txErr := bc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&booking, bookingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fail(http.StatusNotFound, errors.New("booking not found"))
			}
			return err
		}

		// Customer hanya boleh mengubah booking miliknya sendiri
		if role != models.RoleAdmin && role != models.RoleStaff && booking.UserID != userID {
			return fail(http.StatusForbidden, errors.New("you can only update your own bookings"))
		}

		// Merge nilai baru di atas nilai lama
		if req.TableID != nil {
			booking.TableID = *req.TableID
		}
		if req.Date != nil {
			booking.Date = *req.Date
		}
		if req.StartTime != nil {
			booking.StartTime = *req.StartTime
		}
		if req.EndTime != nil {
			booking.EndTime = *req.EndTime
		}
		if req.Guests != nil {
			booking.Guests = *req.Guests
		}
		if req.Status != nil {
			booking.Status = *req.Status
		}

		if booking.EndTime <= booking.StartTime {
			return fail(http.StatusBadRequest, errors.New("end_time must be after start_time"))
		}

		// Kapasitas dicek ulang saat meja atau jumlah tamu berubah
		if req.TableID != nil || req.Guests != nil {
			var table models.Table
			if err := tx.First(&table, booking.TableID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fail(http.StatusNotFound, errors.New("table not found"))
				}
				return err
			}
			if booking.Guests > table.Capacity {
				return fail(http.StatusBadRequest,
					fmt.Errorf("table capacity is %d, but %d guests requested", table.Capacity, booking.Guests))
			}
		}

		if req.TableID != nil || req.Date != nil || req.StartTime != nil || req.EndTime != nil {
			conflict, err := findConflict(tx, booking.TableID, booking.Date,
				booking.StartTime, booking.EndTime, booking.ID)
			if err != nil {
				return err
			}
			if conflict != nil {
				return fail(http.StatusConflict,
					fmt.Errorf("time conflict with existing booking %s", conflict.Code))
			}
		}

		if err := tx.Save(&booking).Error; err != nil {
			return err
		}

		return tx.First(&owner, booking.UserID).Error
	})
	if txErr != nil {
		if httpErr != nil {
			utils.RespondError(c, httpCode, httpErr)
			return
		}
		utils.RespondDBError(c, txErr, "booking not found")
		return
	}

	bc.Notifier.BookingUpdated(owner, booking)

	utils.InfoLogger.Printf("Booking %s updated", booking.Code)
	utils.RespondJSON(c, http.StatusOK, "Booking updated successfully", booking)
}

// DeleteBooking membatalkan booking. Record-nya disimpan dengan status
// cancelled supaya tetap bisa ditampilkan, dan tidak lagi ikut dihitung
// di pemeriksaan bentrok.
func (bc *BookingController) DeleteBooking(c *gin.Context) {
	bookingID := c.Param("booking_id")

	role := c.GetString("role")
	userID := c.GetUint("userID")

	var booking models.Booking
	if err := bc.DB.First(&booking, bookingID).Error; err != nil {
		utils.RespondDBError(c, err, "booking not found")
		return
	}

	if role != models.RoleAdmin && role != models.RoleStaff && booking.UserID != userID {
		utils.RespondError(c, http.StatusForbidden, errors.New("you can only delete your own bookings"))
		return
	}

	booking.Status = models.BookingCancelled
	if err := bc.DB.Save(&booking).Error; err != nil {
		utils.RespondDBError(c, err, "booking not found")
		return
	}

	var owner models.User
	if err := bc.DB.First(&owner, booking.UserID).Error; err == nil {
		bc.Notifier.BookingCancelled(owner, booking)
	}

	utils.InfoLogger.Printf("Booking %s cancelled", booking.Code)
	utils.RespondJSON(c, http.StatusOK, "Booking cancelled successfully", gin.H{
		"id":     booking.ID,
		"code":   booking.Code,
		"status": booking.Status,
	})
}
