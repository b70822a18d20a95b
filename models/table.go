package models

import "time"

type Table struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	TableNumber int       `gorm:"unique;not null" json:"table_number"`
	Capacity    int       `gorm:"not null;check:capacity > 0" json:"capacity"`
	Location    string    `gorm:"type:varchar(50)" json:"location"` // e.g. indoor, outdoor, private_room
	IsAvailable bool      `gorm:"not null;default:true" json:"is_available"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
