package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/ykrutov/floorplan/models"
	"github.com/ykrutov/floorplan/realtime"
	"github.com/ykrutov/floorplan/repository"
	"github.com/ykrutov/floorplan/services"
	"github.com/ykrutov/floorplan/utils"
)

type TableController struct {
	Repo  *repository.TableRepository
	Board *services.Board
}

func NewTableController(repo *repository.TableRepository, board *services.Board) *TableController {
	return &TableController{Repo: repo, Board: board}
}

// respondDomainError maps the repository error taxonomy to HTTP statuses.
func respondDomainError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrTableNotFound),
		errors.Is(err, repository.ErrReservationNotFound):
		utils.RespondError(c, http.StatusNotFound, err)
	case errors.Is(err, repository.ErrInvalidTransition):
		utils.RespondError(c, http.StatusConflict, err)
	default:
		utils.RespondError(c, http.StatusInternalServerError, err)
	}
}

func parseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return 0, false
	}
	return uint(id), true
}

// GetAllTables -> the board, ordered by table number.
func (tc *TableController) GetAllTables(c *gin.Context) {
	if tc.Board.Len() == 0 {
		if err := tc.Board.Refresh(); err != nil {
			respondDomainError(c, err)
			return
		}
	}
	utils.RespondJSON(c, http.StatusOK, "List of tables", tc.Board.Snapshot())
}

// GetTableByID -> detail of one table, read fresh from the store.
func (tc *TableController) GetTableByID(c *gin.Context) {
	id, ok := parseID(c, "table_id")
	if !ok {
		return
	}

	table, err := tc.Repo.GetTable(id)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Table detail", table)
}

// SeatWalkIn -> seat a guest without a reservation (available -> occupied).
func (tc *TableController) SeatWalkIn(c *gin.Context) {
	tc.applyAction(c, models.ActionSeatWalkIn, "Guest seated")
}

// FreeUp -> release an occupied or reserved table back to available. The
// table's reservation rows stay in place; recency decides which one was
// active.
func (tc *TableController) FreeUp(c *gin.Context) {
	tc.applyAction(c, models.ActionFreeUp, "Table freed")
}

func (tc *TableController) applyAction(c *gin.Context, action models.TableAction, message string) {
	id, ok := parseID(c, "table_id")
	if !ok {
		return
	}

	table, err := tc.Repo.Transition(id, action)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	tc.Board.ApplyLocal(table)
	realtime.BroadcastMessage(realtime.Message{
		Event: realtime.EventTableUpdate,
		Data: map[string]interface{}{
			"table": table,
			"stats": tc.boardStats(),
		},
	})

	utils.InfoLogger.Printf("Table %d status changed to %s", table.ID, table.Status)
	utils.RespondJSON(c, http.StatusOK, message, table)
}

// boardStats summarizes the current board for dashboard consumers.
func (tc *TableController) boardStats() map[string]interface{} {
	var available, occupied, reserved int64
	for _, t := range tc.Board.Snapshot() {
		switch t.Status {
		case models.TableAvailable:
			available++
		case models.TableOccupied:
			occupied++
		case models.TableReserved:
			reserved++
		}
	}

	total := available + occupied + reserved
	return map[string]interface{}{
		"available":         available,
		"occupied":          occupied,
		"reserved":          reserved,
		"total":             total,
		"occupancy_percent": services.OccupancyPercent(occupied+reserved, total),
	}
}
