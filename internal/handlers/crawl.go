package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ybycrew/leilaoapp-sub000/internal/database"
	"github.com/ybycrew/leilaoapp-sub000/internal/models"
	"github.com/ybycrew/leilaoapp-sub000/internal/util"
)

// BatchRunner abstracts the crawl batch so the handler can be tested
// without a browser.
type BatchRunner interface {
	Run(houseNames []string) ([]*models.CrawlRunResult, error)
}

type CrawlHandler struct {
	db     *database.Database
	runner BatchRunner
}

// NewCrawlHandler wires the batch runner behind the crawl admin API.
func NewCrawlHandler(db *database.Database, runner BatchRunner) *CrawlHandler {
	return &CrawlHandler{db: db, runner: runner}
}

type crawlRequest struct {
	Houses []string `json:"houses"`
}

// TriggerCrawl runs the batch pipeline and returns per-house summaries
// @Summary Trigger a crawl
// @Description Runs the crawl pipeline for the named auction houses, or every registered house when none are given
// @Tags crawl
// @Accept json
// @Produce json
// @Param request body crawlRequest false "Auction house names"
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/crawl [post]
func (h *CrawlHandler) TriggerCrawl(c *gin.Context) {
	var req crawlRequest
	// An empty body means "every house".
	_ = c.ShouldBindJSON(&req)

	results, err := h.runner.Run(req.Houses)
	if err != nil {
		util.SafeErrorResponse(c, http.StatusInternalServerError, "Crawl failed to start", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"runs":    results,
	})
}

// ListRuns returns recent crawl run logs
// @Summary List crawl runs
// @Tags crawl
// @Produce json
// @Param house query string false "Auction house name"
// @Param limit query int false "Row limit (default 50)"
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/crawl/runs [get]
func (h *CrawlHandler) ListRuns(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	runs, err := h.db.ListCrawlRuns(c.Query("house"), limit)
	if err != nil {
		util.SafeErrorResponse(c, http.StatusInternalServerError, "Failed to list crawl runs", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"runs":    runs,
	})
}
