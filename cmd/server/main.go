// Leilão Lot Pipeline API
// @title Leilão Lot Pipeline API
// @version 1.0
// @description Aggregated vehicle-auction lots: crawl administration and lot search
// @host localhost:8080
// @BasePath /

package main

import (
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"golang.org/x/time/rate"

	_ "github.com/ybycrew/leilaoapp-sub000/docs"
	"github.com/ybycrew/leilaoapp-sub000/internal/classify"
	"github.com/ybycrew/leilaoapp-sub000/internal/config"
	"github.com/ybycrew/leilaoapp-sub000/internal/crawler"
	"github.com/ybycrew/leilaoapp-sub000/internal/database"
	"github.com/ybycrew/leilaoapp-sub000/internal/handlers"
	"github.com/ybycrew/leilaoapp-sub000/internal/ingest"
	"github.com/ybycrew/leilaoapp-sub000/internal/middleware"
	"github.com/ybycrew/leilaoapp-sub000/internal/normalize"
	"github.com/ybycrew/leilaoapp-sub000/internal/taxonomy"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Invalid configuration: ", err)
	}

	db, err := database.NewDatabase(cfg.DBPath)
	if err != nil {
		log.Fatal("Failed to open database: ", err)
	}
	defer db.Close()

	idx, err := taxonomy.Load(db.DB())
	if err != nil {
		log.Fatal("Failed to load reference taxonomy: ", err)
	}
	engine := normalize.NewEngine(idx)

	metrics := crawler.NewMetrics()
	orchestrator := &ingest.Orchestrator{
		DB:         db,
		Engine:     engine,
		Classifier: classify.New(idx, engine),
		Source: &ingest.CrawlerSource{
			Config: crawler.Config{
				MaxPages:    cfg.CrawlMaxPages,
				PageSize:    cfg.CrawlPageSize,
				MinDelay:    cfg.CrawlMinDelay,
				MaxDelay:    cfg.CrawlMaxDelay,
				PageTimeout: cfg.PageTimeout,
				MaxRetries:  cfg.MaxRetries,
			},
			Metrics: metrics,
		},
	}
	batch := &ingest.Batch{
		Orchestrator:    orchestrator,
		InterHouseDelay: cfg.InterHouseDelay,
	}

	// Initialize Gin router
	r := gin.Default()

	r.SetTrustedProxies([]string{
		"127.0.0.1",
		"::1",
		"172.16.0.0/12",  // Docker networks
		"10.0.0.0/8",     // Private networks
		"192.168.0.0/16", // Private networks
	})

	// Configure CORS
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{"*"}
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "X-Admin-Key"}
	r.Use(cors.New(corsConfig))

	r.Use(middleware.SecurityHeaders())
	limiter := middleware.NewRateLimiter(rate.Limit(cfg.RateLimit), cfg.RateBurst)
	r.Use(middleware.RateLimitMiddleware(limiter))

	lotsHandler := handlers.NewLotsHandler(db)
	crawlHandler := handlers.NewCrawlHandler(db, batch)

	// Swagger documentation
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Prometheus metrics
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{})))

	// API routes
	api := r.Group("/api")
	{
		api.GET("/lots", lotsHandler.ListLots)
		api.GET("/lots/:id", lotsHandler.GetLot)
		api.GET("/auction-houses", lotsHandler.ListAuctionHouses)
		api.GET("/crawl/runs", crawlHandler.ListRuns)
		api.GET("/health", lotsHandler.Health)

		crawl := api.Group("/crawl")
		crawl.Use(middleware.RefreshProtectionMiddleware(cfg.RefreshInterval))
		if cfg.AdminKey != "" {
			crawl.Use(middleware.AdminKeyMiddleware(cfg.AdminKey))
		}
		crawl.POST("", crawlHandler.TriggerCrawl)
	}

	log.Printf("Server starting on port %s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
