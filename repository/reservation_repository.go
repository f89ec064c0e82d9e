package repository

import (
	"fmt"
	"time"

	"github.com/ykrutov/floorplan/models"
	"gorm.io/gorm"
)

type ReservationRepository struct {
	DB *gorm.DB
}

func NewReservationRepository(db *gorm.DB) *ReservationRepository {
	return &ReservationRepository{DB: db}
}

func (r *ReservationRepository) CreateReservation(res *models.Reservation) error {
	if err := r.DB.Create(res).Error; err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return nil
}

// CreateBooking persists a reservation and moves its table from available to
// reserved in a single transaction, so a failure on either write leaves no
// orphaned reservation and no half-booked table.
func (r *ReservationRepository) CreateBooking(tableID uint, res *models.Reservation) (models.Table, error) {
	var table models.Table

	err := r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&table, tableID).Error; err != nil {
			return storeErr(err, ErrTableNotFound)
		}

		next, ok := models.NextStatus(table.Status, models.ActionBook)
		if !ok {
			return fmt.Errorf("%w: %s while %s", ErrInvalidTransition, models.ActionBook, table.Status)
		}

		res.TableID = tableID
		if err := tx.Create(res).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
		}

		table.Status = next
		if err := tx.Save(&table).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
		}
		return nil
	})
	if err != nil {
		return models.Table{}, err
	}
	return table, nil
}

// LatestForTable returns the most recently created reservation for a table,
// or nil when the table has none. Recency is the only notion of "active"; a
// cancelled booking is deleted, so the newest surviving row always wins.
func (r *ReservationRepository) LatestForTable(tableID uint) (*models.Reservation, error) {
	var reservations []models.Reservation
	if err := r.DB.Where("table_id = ?", tableID).
		Order("created_at DESC, id DESC").
		Limit(1).
		Find(&reservations).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	if len(reservations) == 0 {
		return nil, nil
	}
	return &reservations[0], nil
}

// Cancel deletes a reservation. Deleting an id that is already gone is not
// an error; the caller only cares that the row no longer exists.
func (r *ReservationRepository) Cancel(id uint) error {
	if err := r.DB.Delete(&models.Reservation{}, id).Error; err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return nil
}

// CountBetween counts reservations created in the half-open interval
// [from, to).
func (r *ReservationRepository) CountBetween(from, to time.Time) (int64, error) {
	var count int64
	if err := r.DB.Model(&models.Reservation{}).
		Where("created_at >= ? AND created_at < ?", from, to).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return count, nil
}
