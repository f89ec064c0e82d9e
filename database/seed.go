package database

import (
	"github.com/ykrutov/floorplan/models"
	"github.com/ykrutov/floorplan/utils"
	"gorm.io/gorm"
)

// SeedFloorPlan creates the initial floor layout on first run. Tables are
// only ever created here (or out of band by an operator); the application
// mutates status but never adds or removes tables.
func SeedFloorPlan(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Table{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	capacities := []uint{2, 2, 2, 4, 4, 4, 4, 6, 6, 8}
	tables := make([]models.Table, 0, len(capacities))
	for i, capacity := range capacities {
		tables = append(tables, models.Table{
			TableNumber: uint(i + 1),
			Capacity:    capacity,
			Status:      models.TableAvailable,
		})
	}

	if err := db.Create(&tables).Error; err != nil {
		return err
	}
	utils.InfoLogger.Printf("Seeded floor plan with %d tables", len(tables))
	return nil
}
