package main

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/ykrutov/floorplan/models"
	"github.com/ykrutov/floorplan/repository"
	"github.com/ykrutov/floorplan/router"
	"github.com/ykrutov/floorplan/services"
	"github.com/ykrutov/floorplan/utils"
)

func TestMain(m *testing.M) {
	utils.InitLogger()
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// TestFloorFlow drives the main floor scenario end to end:
// 1. Load the board
// 2. Seat a walk-in guest
// 3. Book a second table
// 4. Read the active reservation
// 5. Free both tables
// 6. Check the analytics summary
func TestFloorFlow(t *testing.T) {
	db := setupIntegrationDB(t)
	tableRepo := repository.NewTableRepository(db)
	board := services.NewBoard(tableRepo)
	if err := board.Refresh(); err != nil {
		t.Fatalf("failed to load board: %v", err)
	}

	r := router.SetupRouter(db, board)

	tables := listTables(t, r)
	assert.Len(t, tables, 3)

	firstID := uint(tables[0]["ID"].(float64))
	secondID := uint(tables[1]["ID"].(float64))

	// Walk-in on the first table.
	w := request(t, r, "POST", fmt.Sprintf("/api/tables/%d/seat", firstID), "")
	assert.Equal(t, http.StatusOK, w.Code)

	// Booking on the second table.
	body := `{"customer_name":"Vera","phone_number":"5550007000","guest_count":4,"notes":"birthday"}`
	w = request(t, r, "POST", fmt.Sprintf("/api/tables/%d/reservations", secondID), body)
	assert.Equal(t, http.StatusCreated, w.Code)

	// The active reservation for the second table is the one just created.
	w = request(t, r, "GET", fmt.Sprintf("/api/tables/%d/reservations/latest", secondID), "")
	assert.Equal(t, http.StatusOK, w.Code)
	var latest struct {
		Data struct {
			CustomerName string
		} `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &latest))
	assert.Equal(t, "Vera", latest.Data.CustomerName)

	// Analytics sees one reservation today and two not-free tables.
	summary := analytics(t, r)
	assert.Equal(t, float64(1), summary["totalReservationsToday"])
	assert.Equal(t, float64(2), summary["occupiedTables"])
	assert.Equal(t, float64(3), summary["totalTables"])

	// Free both tables; the reservation row stays.
	w = request(t, r, "POST", fmt.Sprintf("/api/tables/%d/free", firstID), "")
	assert.Equal(t, http.StatusOK, w.Code)
	w = request(t, r, "POST", fmt.Sprintf("/api/tables/%d/free", secondID), "")
	assert.Equal(t, http.StatusOK, w.Code)

	summary = analytics(t, r)
	assert.Equal(t, float64(1), summary["totalReservationsToday"])
	assert.Equal(t, float64(0), summary["occupiedTables"])

	var count int64
	db.Model(&models.Reservation{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func setupIntegrationDB(t *testing.T) *gorm.DB {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to open in-memory sqlite: %v", err)
	}

	if err := db.AutoMigrate(&models.Table{}, &models.Reservation{}, &models.DBChange{}); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	seed := []models.Table{
		{TableNumber: 1, Capacity: 2, Status: models.TableAvailable},
		{TableNumber: 2, Capacity: 4, Status: models.TableAvailable},
		{TableNumber: 3, Capacity: 6, Status: models.TableAvailable},
	}
	if err := db.Create(&seed).Error; err != nil {
		log.Fatalf("failed to seed tables: %v", err)
	}
	return db
}

func request(t *testing.T, r *gin.Engine, method, url, body string) *httptest.ResponseRecorder {
	var req *http.Request
	var err error
	if body == "" {
		req, err = http.NewRequest(method, url, nil)
	} else {
		req, err = http.NewRequest(method, url, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	assert.NoError(t, err)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func listTables(t *testing.T, r *gin.Engine) []map[string]interface{} {
	w := request(t, r, "GET", "/api/tables", "")
	assert.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Data []map[string]interface{} `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	return response.Data
}

func analytics(t *testing.T, r *gin.Engine) map[string]interface{} {
	w := request(t, r, "GET", "/api/analytics", "")
	assert.Equal(t, http.StatusOK, w.Code)

	var summary map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &summary))
	return summary
}
