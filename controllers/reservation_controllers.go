package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ykrutov/floorplan/models"
	"github.com/ykrutov/floorplan/realtime"
	"github.com/ykrutov/floorplan/repository"
	"github.com/ykrutov/floorplan/services"
	"github.com/ykrutov/floorplan/utils"
)

type ReservationController struct {
	Reservations *repository.ReservationRepository
	Board        *services.Board
}

func NewReservationController(reservations *repository.ReservationRepository, board *services.Board) *ReservationController {
	return &ReservationController{Reservations: reservations, Board: board}
}

// CreateBooking -> book an available table. The reservation insert and the
// available -> reserved status update happen in one transaction inside the
// repository.
func (rc *ReservationController) CreateBooking(c *gin.Context) {
	tableID, ok := parseID(c, "table_id")
	if !ok {
		return
	}

	var req struct {
		CustomerName string  `json:"customer_name" binding:"required,min=2"`
		PhoneNumber  string  `json:"phone_number" binding:"required,min=10"`
		GuestCount   uint    `json:"guest_count" binding:"required,gt=0"`
		Notes        *string `json:"notes"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	reservation := models.Reservation{
		CustomerName:    req.CustomerName,
		PhoneNumber:     req.PhoneNumber,
		GuestCount:      req.GuestCount,
		ReservationTime: time.Now(),
		Notes:           req.Notes,
	}

	table, err := rc.Reservations.CreateBooking(tableID, &reservation)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	rc.Board.ApplyLocal(table)
	realtime.BroadcastMessage(realtime.Message{
		Event: realtime.EventReservationUpdate,
		Data: map[string]interface{}{
			"reservation": reservation,
			"table":       table,
		},
	})

	utils.InfoLogger.Printf("Table %d booked for %s (%d guests)",
		table.ID, reservation.CustomerName, reservation.GuestCount)
	utils.RespondJSON(c, http.StatusCreated, "Reservation created", map[string]interface{}{
		"reservation": reservation,
		"table":       table,
	})
}

// GetLatestForTable -> the active reservation, i.e. the most recently
// created row for the table. 404 when the table has none.
func (rc *ReservationController) GetLatestForTable(c *gin.Context) {
	tableID, ok := parseID(c, "table_id")
	if !ok {
		return
	}

	reservation, err := rc.Reservations.LatestForTable(tableID)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	if reservation == nil {
		utils.RespondError(c, http.StatusNotFound, repository.ErrReservationNotFound)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Active reservation", reservation)
}

// CancelReservation -> delete the reservation row. Cancelling an id that no
// longer exists still succeeds; the row is gone either way.
func (rc *ReservationController) CancelReservation(c *gin.Context) {
	id, ok := parseID(c, "reservation_id")
	if !ok {
		return
	}

	if err := rc.Reservations.Cancel(id); err != nil {
		respondDomainError(c, err)
		return
	}

	utils.InfoLogger.Printf("Reservation %d cancelled", id)
	utils.RespondJSON(c, http.StatusOK, "Reservation cancelled", gin.H{"id": id})
}
