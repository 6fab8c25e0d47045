// Command crawler runs the crawl pipeline once from the shell, without
// the HTTP server.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/ybycrew/leilaoapp-sub000/internal/classify"
	"github.com/ybycrew/leilaoapp-sub000/internal/config"
	"github.com/ybycrew/leilaoapp-sub000/internal/crawler"
	"github.com/ybycrew/leilaoapp-sub000/internal/database"
	"github.com/ybycrew/leilaoapp-sub000/internal/ingest"
	"github.com/ybycrew/leilaoapp-sub000/internal/models"
	"github.com/ybycrew/leilaoapp-sub000/internal/normalize"
	"github.com/ybycrew/leilaoapp-sub000/internal/taxonomy"
)

func main() {
	var (
		dbPath   = flag.String("db", "", "database path (overrides DB_PATH)")
		houses   = flag.String("houses", "", "comma-separated auction house names; empty crawls every registered house")
		maxPages = flag.Int("max-pages", 0, "page ceiling per filter combination (overrides CRAWL_MAX_PAGES)")
		dryRun   = flag.Bool("dry-run", false, "crawl and report without persisting lots")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Invalid configuration: ", err)
	}
	if *dbPath != "" {
		cfg.DBPath = *dbPath
	}
	if *maxPages > 0 {
		cfg.CrawlMaxPages = *maxPages
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

	source := &ingest.CrawlerSource{
		Config: crawler.Config{
			MaxPages:    cfg.CrawlMaxPages,
			PageSize:    cfg.CrawlPageSize,
			MinDelay:    cfg.CrawlMinDelay,
			MaxDelay:    cfg.CrawlMaxDelay,
			PageTimeout: cfg.PageTimeout,
			MaxRetries:  cfg.MaxRetries,
		},
		Metrics: crawler.NewMetrics(),
	}

	var houseNames []string
	if *houses != "" {
		for _, name := range strings.Split(*houses, ",") {
			if name = strings.TrimSpace(name); name != "" {
				houseNames = append(houseNames, name)
			}
		}
	}

	if *dryRun {
		runDry(db, source, houseNames)
		return
	}

	batch := &ingest.Batch{
		Orchestrator: &ingest.Orchestrator{
			DB:         db,
			Engine:     engine,
			Classifier: classify.New(idx, engine),
			Source:     source,
		},
		InterHouseDelay: cfg.InterHouseDelay,
	}

	results, err := batch.Run(houseNames)
	if err != nil {
		log.Fatal("Batch failed: ", err)
	}

	failed := 0
	for _, run := range results {
		status := "✅"
		if !run.Success {
			status = "❌"
			failed++
		}
		fmt.Printf("%s %s: %d scraped, %d created, %d updated, %d errors (%s)\n",
			status, run.Auctioneer, run.LotsScraped, run.LotsCreated, run.LotsUpdated,
			len(run.Errors), run.Duration.Round(time.Second))
		for _, msg := range run.Errors {
			fmt.Printf("   ⚠️  %s\n", msg)
		}
	}
	if failed > 0 {
		os.Exit(1)
	}
}

// runDry crawls each house and prints what would be persisted.
func runDry(db *database.Database, source ingest.LotSource, houseNames []string) {
	houses := resolveHouses(db, houseNames)
	for _, house := range houses {
		lots, err := source.Collect(&house)
		if err != nil {
			fmt.Printf("❌ %s: %v\n", house.Name, err)
		}
		fmt.Printf("🔎 %s: %d lots discovered (dry run, nothing persisted)\n", house.Name, len(lots))
		for _, lot := range lots {
			fmt.Printf("   • [%s] %s\n", lot.ExternalID, lot.Title)
		}
	}
}

func resolveHouses(db *database.Database, names []string) []models.AuctionHouse {
	if len(names) == 0 {
		houses, err := db.ListAuctionHouses()
		if err != nil {
			log.Fatal("Failed to list auction houses: ", err)
		}
		return houses
	}
	var out []models.AuctionHouse
	for _, name := range names {
		house, err := db.GetAuctionHouseByName(name)
		if err != nil {
			log.Printf("skipping %s: %v", name, err)
			continue
		}
		out = append(out, *house)
	}
	return out
}
