package services

import (
	"math"
	"time"

	"github.com/ykrutov/floorplan/models"
	"github.com/ykrutov/floorplan/repository"
)

// DailySummary is the analytics payload; field names are part of the API
// contract with the analytics page.
type DailySummary struct {
	TotalReservationsToday int64 `json:"totalReservationsToday"`
	OccupiedTables         int64 `json:"occupiedTables"`
	TotalTables            int64 `json:"totalTables"`
}

type AnalyticsService struct {
	tables       *repository.TableRepository
	reservations *repository.ReservationRepository
	now          func() time.Time
}

func NewAnalyticsService(tables *repository.TableRepository, reservations *repository.ReservationRepository) *AnalyticsService {
	return &AnalyticsService{
		tables:       tables,
		reservations: reservations,
		now:          time.Now,
	}
}

// DailySummary computes today's reservation count and the occupancy figures.
// "Today" is the half-open interval [local midnight, next local midnight):
// a reservation created exactly at midnight counts, one created just before
// does not.
func (s *AnalyticsService) DailySummary() (DailySummary, error) {
	return s.SummaryFor(s.now())
}

func (s *AnalyticsService) SummaryFor(now time.Time) (DailySummary, error) {
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	tomorrow := midnight.AddDate(0, 0, 1)

	reservationsToday, err := s.reservations.CountBetween(midnight, tomorrow)
	if err != nil {
		return DailySummary{}, err
	}

	// Reserved tables count as occupied: the seat is not free either way.
	occupied, err := s.tables.CountTablesByStatus(models.TableOccupied, models.TableReserved)
	if err != nil {
		return DailySummary{}, err
	}

	total, err := s.tables.CountTables()
	if err != nil {
		return DailySummary{}, err
	}

	return DailySummary{
		TotalReservationsToday: reservationsToday,
		OccupiedTables:         occupied,
		TotalTables:            total,
	}, nil
}

// OccupancyPercent is the derived figure the board header shows. An empty
// floor is 0%, never a division error.
func OccupancyPercent(occupied, total int64) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(occupied) / float64(total) * 100))
}
