package models

import "time"

const (
	BookingConfirmed = "confirmed"
	BookingCancelled = "cancelled"
	// BookingCompleted ada di skema tapi belum dipakai oleh alur booking
	BookingCompleted = "completed"
)

// ValidBookingStatus hanya menerima status yang boleh di-set lewat API.
func ValidBookingStatus(status string) bool {
	return status == BookingConfirmed || status == BookingCancelled
}

// Booking menyimpan tanggal sebagai "YYYY-MM-DD" dan jam sebagai "HH:MM".
// Perbandingan string pada format ini sama dengan perbandingan waktu,
// jadi query overlap bisa langsung membandingkan kolomnya.
type Booking struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Code      string    `gorm:"type:varchar(36);unique;not null" json:"code"`
	UserID    uint      `gorm:"index;not null" json:"user_id"`
	User      User      `gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	TableID   uint      `gorm:"not null;index:idx_bookings_table_date,priority:1" json:"table_id"`
	Table     Table     `gorm:"foreignKey:TableID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Date      string    `gorm:"type:varchar(10);not null;index:idx_bookings_table_date,priority:2" json:"date"`
	StartTime string    `gorm:"type:varchar(5);not null" json:"start_time"`
	EndTime   string    `gorm:"type:varchar(5);not null" json:"end_time"`
	Guests    int       `gorm:"not null;check:guests > 0" json:"guests"`
	Status    string    `gorm:"type:varchar(20);not null;default:'confirmed'" json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
