package models

import (
	"time"
)

// Change-feed row written by the database triggers on tables/reservations.
// The change monitor polls unprocessed rows in changed_at order.
type DBChange struct {
	ID         uint      `gorm:"primaryKey"`
	TableName  string    `gorm:"type:varchar(50);not null;index:idx_table_action"`
	RecordID   int64     `gorm:"not null"`
	ActionType string    `gorm:"type:varchar(10);not null;index:idx_table_action"`
	ChangedAt  time.Time `gorm:"not null;index"`
	Processed  bool      `gorm:"default:false;index:idx_processed"`
}

const (
	ChangeInsert = "INSERT"
	ChangeUpdate = "UPDATE"
	ChangeDelete = "DELETE"
)
