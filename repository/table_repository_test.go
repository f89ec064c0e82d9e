package repository

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/ykrutov/floorplan/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open in-memory sqlite: %v", err)
	}
	if err := db.AutoMigrate(&models.Table{}, &models.Reservation{}, &models.DBChange{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func seedTables(t *testing.T, db *gorm.DB, statuses ...models.TableStatus) []models.Table {
	tables := make([]models.Table, 0, len(statuses))
	for i, status := range statuses {
		table := models.Table{TableNumber: uint(i + 1), Capacity: 4, Status: status}
		if err := db.Create(&table).Error; err != nil {
			t.Fatalf("failed to seed table: %v", err)
		}
		tables = append(tables, table)
	}
	return tables
}

func TestListTablesOrderedByTableNumber(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTableRepository(db)

	// Insert out of order on purpose.
	db.Create(&models.Table{TableNumber: 3, Capacity: 4, Status: models.TableAvailable})
	db.Create(&models.Table{TableNumber: 1, Capacity: 2, Status: models.TableOccupied})
	db.Create(&models.Table{TableNumber: 2, Capacity: 6, Status: models.TableReserved})

	tables, err := repo.ListTables()
	assert.NoError(t, err)
	assert.Len(t, tables, 3)
	assert.Equal(t, uint(1), tables[0].TableNumber)
	assert.Equal(t, uint(2), tables[1].TableNumber)
	assert.Equal(t, uint(3), tables[2].TableNumber)
}

func TestSetTableStatusNotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTableRepository(db)

	_, err := repo.SetTableStatus(9999, models.TableOccupied)
	assert.ErrorIs(t, err, ErrTableNotFound)
}

func TestTransitionSeatThenFreeRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTableRepository(db)
	seeded := seedTables(t, db, models.TableAvailable)

	seated, err := repo.Transition(seeded[0].ID, models.ActionSeatWalkIn)
	assert.NoError(t, err)
	assert.Equal(t, models.TableOccupied, seated.Status)

	freed, err := repo.Transition(seeded[0].ID, models.ActionFreeUp)
	assert.NoError(t, err)
	assert.Equal(t, models.TableAvailable, freed.Status)

	// Only defined statuses ever reach the store.
	var persisted models.Table
	assert.NoError(t, db.First(&persisted, seeded[0].ID).Error)
	assert.True(t, persisted.Status.Valid())
	assert.Equal(t, models.TableAvailable, persisted.Status)
}

func TestTransitionPreconditionViolation(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTableRepository(db)
	seeded := seedTables(t, db, models.TableOccupied)

	_, err := repo.Transition(seeded[0].ID, models.ActionSeatWalkIn)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	// Nothing was written.
	var persisted models.Table
	assert.NoError(t, db.First(&persisted, seeded[0].ID).Error)
	assert.Equal(t, models.TableOccupied, persisted.Status)
}

func TestTransitionNotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTableRepository(db)

	_, err := repo.Transition(42, models.ActionFreeUp)
	assert.ErrorIs(t, err, ErrTableNotFound)
}

func TestCountTablesByStatus(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTableRepository(db)
	seedTables(t, db,
		models.TableAvailable,
		models.TableOccupied,
		models.TableReserved,
		models.TableOccupied,
	)

	occupied, err := repo.CountTablesByStatus(models.TableOccupied, models.TableReserved)
	assert.NoError(t, err)
	assert.Equal(t, int64(3), occupied)

	total, err := repo.CountTables()
	assert.NoError(t, err)
	assert.Equal(t, int64(4), total)
}
