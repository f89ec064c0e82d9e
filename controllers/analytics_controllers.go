package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ykrutov/floorplan/services"
	"github.com/ykrutov/floorplan/utils"
)

type AnalyticsController struct {
	Svc *services.AnalyticsService
}

func NewAnalyticsController(svc *services.AnalyticsService) *AnalyticsController {
	return &AnalyticsController{Svc: svc}
}

// GetDailySummary -> today's reservation count and occupancy figures,
// computed fresh on every call. This endpoint is consumed programmatically,
// so it returns the summary bare and a structured error body instead of the
// usual envelope.
func (ac *AnalyticsController) GetDailySummary(c *gin.Context) {
	summary, err := ac.Svc.DailySummary()
	if err != nil {
		utils.ErrorLogger.Printf("Analytics error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to fetch analytics data",
			"details": err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, summary)
}
