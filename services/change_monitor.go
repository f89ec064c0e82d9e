package services

import (
	"time"

	"github.com/ykrutov/floorplan/models"
	"github.com/ykrutov/floorplan/realtime"
	"github.com/ykrutov/floorplan/utils"
	"gorm.io/gorm"
)

// ChangeMonitor polls the db_changes feed that the database triggers write,
// refreshes the board on any tables event and fans the events out to
// websocket clients. Polling keeps the feed ordering (changed_at ASC) even
// when two writers touch the floor at nearly the same time.
type ChangeMonitor struct {
	DB       *gorm.DB
	Board    *Board
	StopChan chan struct{}
	Interval time.Duration
}

func NewChangeMonitor(db *gorm.DB, board *Board) *ChangeMonitor {
	return &ChangeMonitor{
		DB:       db,
		Board:    board,
		StopChan: make(chan struct{}),
		Interval: 1 * time.Second,
	}
}

func (cm *ChangeMonitor) Start() {
	go func() {
		ticker := time.NewTicker(cm.Interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				cm.checkChanges()
			case <-cm.StopChan:
				return
			}
		}
	}()
}

func (cm *ChangeMonitor) Stop() {
	close(cm.StopChan)
}

func (cm *ChangeMonitor) checkChanges() {
	var changes []models.DBChange

	tx := cm.DB.Begin()

	if err := tx.Where("processed = ?", false).
		Order("changed_at ASC").
		Limit(100).
		Find(&changes).Error; err != nil {
		tx.Rollback()
		utils.ErrorLogger.Printf("Error fetching changes: %v", err)
		return
	}

	tablesTouched := false
	for _, change := range changes {
		switch change.TableName {
		case "tables":
			tablesTouched = true
			cm.broadcastTableChange(change)
		case "reservations":
			cm.broadcastReservationChange(change)
		}

		if err := tx.Model(&models.DBChange{}).
			Where("id = ?", change.ID).
			Update("processed", true).Error; err != nil {
			tx.Rollback()
			utils.ErrorLogger.Printf("Error marking change as processed: %v", err)
			return
		}
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		utils.ErrorLogger.Printf("Error committing change batch: %v", err)
		return
	}

	// One wholesale refresh per batch: the board replaces its whole mapping
	// anyway, so per-row patching would be redundant work.
	if tablesTouched {
		if err := cm.Board.Refresh(); err != nil {
			utils.ErrorLogger.Printf("Error refreshing board: %v", err)
		}
	}

	if len(changes) > 0 {
		utils.InfoLogger.Printf("Processed %d change feed rows", len(changes))
	}
}

func (cm *ChangeMonitor) broadcastTableChange(change models.DBChange) {
	if change.ActionType == models.ChangeDelete {
		realtime.BroadcastTableDelete(uint(change.RecordID))
		return
	}

	var table models.Table
	if err := cm.DB.First(&table, change.RecordID).Error; err != nil {
		utils.ErrorLogger.Printf("Error fetching changed table %d: %v", change.RecordID, err)
		return
	}

	switch change.ActionType {
	case models.ChangeInsert:
		realtime.BroadcastTableCreate(table)
	case models.ChangeUpdate:
		realtime.BroadcastTableUpdate(table)
	}
}

func (cm *ChangeMonitor) broadcastReservationChange(change models.DBChange) {
	if change.ActionType == models.ChangeDelete {
		realtime.BroadcastReservationCancelled(uint(change.RecordID))
		return
	}

	var res models.Reservation
	if err := cm.DB.First(&res, change.RecordID).Error; err != nil {
		utils.ErrorLogger.Printf("Error fetching changed reservation %d: %v", change.RecordID, err)
		return
	}
	realtime.BroadcastReservationUpdate(res)
}
