package repository

import (
	"fmt"

	"github.com/ykrutov/floorplan/models"
	"gorm.io/gorm"
)

type TableRepository struct {
	DB *gorm.DB
}

func NewTableRepository(db *gorm.DB) *TableRepository {
	return &TableRepository{DB: db}
}

// ListTables returns every table ordered by table number, the order the
// board renders them in.
func (r *TableRepository) ListTables() ([]models.Table, error) {
	var tables []models.Table
	if err := r.DB.Order("table_number ASC").Find(&tables).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return tables, nil
}

func (r *TableRepository) GetTable(id uint) (models.Table, error) {
	var table models.Table
	if err := r.DB.First(&table, id).Error; err != nil {
		return models.Table{}, storeErr(err, ErrTableNotFound)
	}
	return table, nil
}

// SetTableStatus performs the raw single-row status update without checking
// any transition precondition. Floor actions should go through Transition.
func (r *TableRepository) SetTableStatus(id uint, status models.TableStatus) (models.Table, error) {
	var table models.Table
	if err := r.DB.First(&table, id).Error; err != nil {
		return models.Table{}, storeErr(err, ErrTableNotFound)
	}

	table.Status = status
	if err := r.DB.Save(&table).Error; err != nil {
		return models.Table{}, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return table, nil
}

// Transition applies a floor action to a table, guarding the action's
// precondition on the current status. The guard lives here rather than in
// the handlers so that no caller can skip it.
func (r *TableRepository) Transition(id uint, action models.TableAction) (models.Table, error) {
	var table models.Table
	if err := r.DB.First(&table, id).Error; err != nil {
		return models.Table{}, storeErr(err, ErrTableNotFound)
	}

	next, ok := models.NextStatus(table.Status, action)
	if !ok {
		return models.Table{}, fmt.Errorf("%w: %s while %s", ErrInvalidTransition, action, table.Status)
	}

	table.Status = next
	if err := r.DB.Save(&table).Error; err != nil {
		return models.Table{}, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return table, nil
}

func (r *TableRepository) CountTables() (int64, error) {
	var count int64
	if err := r.DB.Model(&models.Table{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return count, nil
}

func (r *TableRepository) CountTablesByStatus(statuses ...models.TableStatus) (int64, error) {
	var count int64
	if err := r.DB.Model(&models.Table{}).
		Where("status IN ?", statuses).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return count, nil
}
