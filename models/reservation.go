package models

import (
	"time"
)

// Reservation rows are append-only: a booking is created when a table goes
// available -> reserved and only ever removed again by cancellation. The
// newest row per table (by CreatedAt) is the active one.
type Reservation struct {
	ID              uint      `gorm:"primaryKey"`
	TableID         uint      `gorm:"not null;index"`
	Table           Table     `gorm:"foreignKey:TableID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	CustomerName    string    `gorm:"type:varchar(100);not null"`
	PhoneNumber     string    `gorm:"type:varchar(32);not null"`
	GuestCount      uint      `gorm:"not null"`
	ReservationTime time.Time `gorm:"not null"`
	Notes           *string   `gorm:"type:varchar(255)"`
	CreatedAt       time.Time `gorm:"not null;index"`
	UpdatedAt       time.Time `gorm:"not null"`
}
