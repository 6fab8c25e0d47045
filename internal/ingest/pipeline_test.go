package ingest

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ybycrew/leilaoapp-sub000/internal/classify"
	"github.com/ybycrew/leilaoapp-sub000/internal/database"
	"github.com/ybycrew/leilaoapp-sub000/internal/models"
	"github.com/ybycrew/leilaoapp-sub000/internal/normalize"
	"github.com/ybycrew/leilaoapp-sub000/internal/taxonomy"
)

func TestMain(m *testing.M) {
	cwd, err := os.Getwd()
	if err != nil {
		panic(err)
	}
	root := filepath.Join(cwd, "..", "..")
	if err := os.Chdir(root); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

func floatPtr(f float64) *float64 { return &f }

func testIndex() *taxonomy.Index {
	categories := []models.VehicleCategory{
		{ID: 1, Name: taxonomy.CategoryCar},
		{ID: 2, Name: taxonomy.CategoryMotorcycle},
	}
	brands := []models.TaxonomyBrand{
		{ID: 1, CategoryID: 1, Name: "Volkswagen"},
		{ID: 2, CategoryID: 2, Name: "Honda"},
	}
	mdls := []models.TaxonomyModel{
		{ID: 1, BrandID: 1, Name: "Gol", ReferencePrice: floatPtr(40000)},
		{ID: 2, BrandID: 2, Name: "CG 160 Titan"},
	}
	return taxonomy.NewIndex(categories, brands, mdls)
}

// fixtureSource hands back a canned lot set and optionally a crawl
// error alongside it.
type fixtureSource struct {
	lots []*models.CanonicalLot
	err  error
}

func (s *fixtureSource) Collect(*models.AuctionHouse) ([]*models.CanonicalLot, error) {
	return s.lots, s.err
}

func newTestOrchestrator(t *testing.T, source LotSource) (*Orchestrator, *database.Database, *models.AuctionHouse) {
	t.Helper()
	db, err := database.NewDatabase(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	house := &models.AuctionHouse{Name: "Leilões Teste", SiteURL: "https://leiloes.example", Strategy: "html"}
	if err := db.CreateAuctionHouse(house); err != nil {
		t.Fatalf("failed to create auction house: %v", err)
	}

	idx := testIndex()
	engine := normalize.NewEngine(idx)
	return &Orchestrator{
		DB:         db,
		Engine:     engine,
		Classifier: classify.New(idx, engine),
		Source:     source,
	}, db, house
}

func golLot(externalID string) *models.CanonicalLot {
	date := time.Now().AddDate(0, 0, 10)
	return &models.CanonicalLot{
		ExternalID:  externalID,
		Title:       "VW GOL 1.0 FLEX",
		Brand:       "VW",
		Model:       "GOL 1.0 FLEX",
		YearModel:   2019,
		CurrentBid:  floatPtr(30000),
		AuctionDate: &date,
	}
}

func TestRunHousePersistsNormalizedLots(t *testing.T) {
	source := &fixtureSource{lots: []*models.CanonicalLot{golLot("L1")}}
	o, db, house := newTestOrchestrator(t, source)

	result := o.RunHouse("Leilões Teste")
	if !result.Success {
		t.Fatalf("expected success, errors: %v", result.Errors)
	}
	if result.LotsScraped != 1 || result.LotsCreated != 1 || result.LotsUpdated != 0 {
		t.Errorf("unexpected counts: %+v", result)
	}

	stored, err := db.SearchVehicles(database.VehicleFilter{AuctionHouseID: house.ID})
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(stored) != 1 {
		t.Fatalf("expected 1 persisted vehicle, got %d", len(stored))
	}
	v := stored[0]
	if v.Brand != "VOLKSWAGEN" {
		t.Errorf("expected brand normalized to VOLKSWAGEN, got %q", v.Brand)
	}
	if v.Model != "GOL" {
		t.Errorf("expected model normalized to GOL, got %q", v.Model)
	}
	if v.VehicleType != models.VehicleTypeCar {
		t.Errorf("expected car, got %q", v.VehicleType)
	}
	// Reference price 40000, bid 30000: 25% discount.
	if v.DiscountPct == nil || *v.DiscountPct != 25 {
		t.Errorf("expected 25%% discount, got %v", v.DiscountPct)
	}
}

func TestRunHouseSecondRunUpdates(t *testing.T) {
	source := &fixtureSource{lots: []*models.CanonicalLot{golLot("L1")}}
	o, db, _ := newTestOrchestrator(t, source)

	o.RunHouse("Leilões Teste")

	source.lots = []*models.CanonicalLot{golLot("L1")}
	source.lots[0].CurrentBid = floatPtr(32000)
	result := o.RunHouse("Leilões Teste")
	if result.LotsCreated != 0 || result.LotsUpdated != 1 {
		t.Errorf("expected pure update run, got %+v", result)
	}

	if n, _ := db.CountVehicles(); n != 1 {
		t.Errorf("expected a single row after two runs, got %d", n)
	}
}

func TestRunHouseAppliesDealScorer(t *testing.T) {
	source := &fixtureSource{lots: []*models.CanonicalLot{golLot("L1")}}
	o, db, house := newTestOrchestrator(t, source)
	o.Scorer = func(discountPct *float64, year int, mileage *float64, auctionType string, hasFinancing bool) float64 {
		if discountPct == nil {
			return 0
		}
		return *discountPct + float64(year-2000)
	}

	o.RunHouse("Leilões Teste")

	stored, err := db.SearchVehicles(database.VehicleFilter{AuctionHouseID: house.ID})
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if stored[0].DealScore == nil || *stored[0].DealScore != 44 {
		t.Errorf("expected deal score 44, got %v", stored[0].DealScore)
	}
}

func TestRunHouseUnknownHouseStillLogsRun(t *testing.T) {
	o, db, _ := newTestOrchestrator(t, &fixtureSource{})

	result := o.RunHouse("Casa Inexistente")
	if result.Success {
		t.Error("expected failure for unknown house")
	}
	if len(result.Errors) == 0 {
		t.Fatal("expected an error message")
	}

	runs, err := db.ListCrawlRuns("Casa Inexistente", 10)
	if err != nil {
		t.Fatalf("list runs failed: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected the failed run logged, got %d rows", len(runs))
	}
}

func TestRunHouseKeepsPartialResultsOnCrawlError(t *testing.T) {
	source := &fixtureSource{
		lots: []*models.CanonicalLot{golLot("L1"), golLot("L2")},
		err:  errors.New("timeout na página 3"),
	}
	o, db, _ := newTestOrchestrator(t, source)

	result := o.RunHouse("Leilões Teste")
	if result.Success {
		t.Error("crawl error must mark the run failed")
	}
	if result.LotsCreated != 2 {
		t.Errorf("partial lots must still persist, got %d created", result.LotsCreated)
	}
	if n, _ := db.CountVehicles(); n != 2 {
		t.Errorf("expected 2 rows, got %d", n)
	}
}

func TestRunHouseStampsLastCrawled(t *testing.T) {
	o, db, house := newTestOrchestrator(t, &fixtureSource{})

	before := time.Now().Add(-time.Second)
	o.RunHouse("Leilões Teste")

	reloaded, err := db.GetAuctionHouseByName(house.Name)
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if reloaded.LastCrawledAt == nil || reloaded.LastCrawledAt.Before(before) {
		t.Errorf("expected fresh last-crawled stamp, got %v", reloaded.LastCrawledAt)
	}
}

func TestNormalizeLotSeparatesCombinedTitle(t *testing.T) {
	o, _, _ := newTestOrchestrator(t, &fixtureSource{})

	lot := &models.CanonicalLot{ExternalID: "X", Title: "VOLKSWAGEN GOL 1.0", Brand: "", Model: ""}
	o.normalizeLot(lot)
	if lot.Brand != "VOLKSWAGEN" || lot.Model != "GOL" {
		t.Errorf("expected split+normalize to VOLKSWAGEN/GOL, got %q/%q", lot.Brand, lot.Model)
	}
}

func TestNormalizeLotUnknownBrandKeepsCanonicalText(t *testing.T) {
	o, _, _ := newTestOrchestrator(t, &fixtureSource{})

	lot := &models.CanonicalLot{ExternalID: "X", Title: "TROLLER T4", Brand: "Troller", Model: "T4"}
	ref := o.normalizeLot(lot)
	if ref != nil {
		t.Errorf("unknown brand must yield no reference price, got %v", ref)
	}
	if lot.Brand != "TROLLER" {
		t.Errorf("expected canonical uppercase fallback, got %q", lot.Brand)
	}
}

func TestDiscountPct(t *testing.T) {
	if got := discountPct(floatPtr(40000), nil, floatPtr(30000)); got == nil || *got != 25 {
		t.Errorf("reference discount: expected 25, got %v", got)
	}
	// Appraisal is the fallback reference.
	if got := discountPct(nil, floatPtr(20000), floatPtr(15000)); got == nil || *got != 25 {
		t.Errorf("appraisal discount: expected 25, got %v", got)
	}
	if got := discountPct(nil, nil, floatPtr(15000)); got != nil {
		t.Errorf("no reference: expected nil, got %v", got)
	}
	if got := discountPct(floatPtr(40000), nil, nil); got != nil {
		t.Errorf("no bid: expected nil, got %v", got)
	}
}

func TestBatchRunIsolatesHouseFailures(t *testing.T) {
	source := &fixtureSource{lots: []*models.CanonicalLot{golLot("L1")}}
	o, db, _ := newTestOrchestrator(t, source)

	second := &models.AuctionHouse{Name: "Outro Leilão"}
	if err := db.CreateAuctionHouse(second); err != nil {
		t.Fatalf("failed to create second house: %v", err)
	}

	batch := &Batch{Orchestrator: o}
	results, err := batch.Run([]string{"Casa Inexistente", "Leilões Teste"})
	if err != nil {
		t.Fatalf("batch failed: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Success {
		t.Error("first house should have failed")
	}
	if !results[1].Success {
		t.Errorf("second house should have succeeded, errors: %v", results[1].Errors)
	}
}

func TestBatchRunDefaultsToAllHouses(t *testing.T) {
	o, db, _ := newTestOrchestrator(t, &fixtureSource{})
	second := &models.AuctionHouse{Name: "Outro Leilão"}
	if err := db.CreateAuctionHouse(second); err != nil {
		t.Fatalf("failed to create second house: %v", err)
	}

	batch := &Batch{Orchestrator: o}
	results, err := batch.Run(nil)
	if err != nil {
		t.Fatalf("batch failed: %v", err)
	}
	if len(results) != 2 {
		t.Errorf("expected every registered house crawled, got %d", len(results))
	}
}
