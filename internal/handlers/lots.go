package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ybycrew/leilaoapp-sub000/internal/database"
	"github.com/ybycrew/leilaoapp-sub000/internal/util"
)

type LotsHandler struct {
	db *database.Database
}

// NewLotsHandler wires the vehicle store into the read API.
func NewLotsHandler(db *database.Database) *LotsHandler {
	return &LotsHandler{db: db}
}

// ListLots returns persisted lots matching the query filters
// @Summary Search auction lots
// @Description Returns persisted lots filtered by brand, model, vehicle type, state, price ceiling and auction house
// @Tags lots
// @Produce json
// @Param brand query string false "Canonical brand name"
// @Param model query string false "Canonical model name"
// @Param type query string false "Vehicle type (car, motorcycle, truck, van, other)"
// @Param state query string false "Two-letter state code"
// @Param maxPrice query number false "Maximum current bid"
// @Param houseId query int false "Auction house ID"
// @Param future query bool false "Only lots with future or unknown auction dates"
// @Param limit query int false "Page size (default 50, max 200)"
// @Param offset query int false "Page offset"
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/lots [get]
func (h *LotsHandler) ListLots(c *gin.Context) {
	filter := database.VehicleFilter{
		Brand:       c.Query("brand"),
		Model:       c.Query("model"),
		VehicleType: c.Query("type"),
		State:       c.Query("state"),
	}
	if v := c.Query("maxPrice"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			filter.MaxPrice = f
		}
	}
	if v := c.Query("houseId"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			filter.AuctionHouseID = id
		}
	}
	filter.FutureOnly = c.Query("future") == "true"
	filter.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "50"))
	filter.Offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))

	lots, err := h.db.SearchVehicles(filter)
	if err != nil {
		util.SafeErrorResponse(c, http.StatusInternalServerError, "Failed to search lots", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"count":   len(lots),
		"lots":    lots,
	})
}

// GetLot returns one lot by its row id
// @Summary Get one auction lot
// @Tags lots
// @Produce json
// @Param id path int true "Lot ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/lots/{id} [get]
func (h *LotsHandler) GetLot(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Invalid lot ID",
		})
		return
	}

	lot, err := h.db.GetVehicleByID(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"message": "Lot not found",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"lot":     lot,
	})
}

// ListAuctionHouses returns every registered auction house
// @Summary List auction houses
// @Tags lots
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/auction-houses [get]
func (h *LotsHandler) ListAuctionHouses(c *gin.Context) {
	houses, err := h.db.ListAuctionHouses()
	if err != nil {
		util.SafeErrorResponse(c, http.StatusInternalServerError, "Failed to list auction houses", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"houses":  houses,
	})
}

// Health reports service liveness and the persisted lot count
// @Summary Health check
// @Tags system
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/health [get]
func (h *LotsHandler) Health(c *gin.Context) {
	count, err := h.db.CountVehicles()
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "degraded",
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"lots":   count,
	})
}
