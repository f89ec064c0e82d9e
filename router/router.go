package router

import (
	"github.com/gin-gonic/gin"
	"github.com/ykrutov/floorplan/controllers"
	"github.com/ykrutov/floorplan/middlewares"
	"github.com/ykrutov/floorplan/repository"
	"github.com/ykrutov/floorplan/services"
	"gorm.io/gorm"
)

// SetupRouter wires repositories, services and controllers onto the HTTP
// surface. The board is shared with the change monitor, so it is constructed
// by the caller.
func SetupRouter(db *gorm.DB, board *services.Board) *gin.Engine {
	r := gin.Default()

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())

	tableRepo := repository.NewTableRepository(db)
	reservationRepo := repository.NewReservationRepository(db)
	analytics := services.NewAnalyticsService(tableRepo, reservationRepo)

	tableCtrl := controllers.NewTableController(tableRepo, board)
	reservationCtrl := controllers.NewReservationController(reservationRepo, board)
	analyticsCtrl := controllers.NewAnalyticsController(analytics)

	api := r.Group("/api")
	{
		api.GET("/tables", tableCtrl.GetAllTables)
		api.GET("/tables/:table_id", tableCtrl.GetTableByID)
		api.POST("/tables/:table_id/seat", tableCtrl.SeatWalkIn)
		api.POST("/tables/:table_id/free", tableCtrl.FreeUp)

		api.POST("/tables/:table_id/reservations", reservationCtrl.CreateBooking)
		api.GET("/tables/:table_id/reservations/latest", reservationCtrl.GetLatestForTable)
		api.DELETE("/reservations/:reservation_id", reservationCtrl.CancelReservation)

		// Computed fresh on every call; the limiter keeps a polling client
		// from hammering the store.
		api.GET("/analytics", middlewares.NewStrictRateLimiter(120), analyticsCtrl.GetDailySummary)
	}

	r.GET("/ws", controllers.BoardWSHandler)

	return r
}
