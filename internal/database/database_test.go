package database

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ybycrew/leilaoapp-sub000/internal/models"
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

func newTestDatabase(t *testing.T) *Database {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := NewDatabase(dbPath)
	if err != nil {
		t.Fatalf("failed to create database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func newTestHouse(t *testing.T, db *Database) *models.AuctionHouse {
	t.Helper()
	house := &models.AuctionHouse{Name: "Leilões Teste", SiteURL: "https://leiloes.example", Strategy: "html"}
	if err := db.CreateAuctionHouse(house); err != nil {
		t.Fatalf("failed to create auction house: %v", err)
	}
	return house
}

func floatPtr(f float64) *float64 { return &f }

func testLot(externalID string) models.CanonicalLot {
	date := time.Now().AddDate(0, 0, 14)
	return models.CanonicalLot{
		ExternalID:      externalID,
		LotNumber:       "001",
		Title:           "VOLKSWAGEN GOL 1.0 FLEX",
		Brand:           "VOLKSWAGEN",
		Model:           "GOL",
		YearManufacture: 2018,
		YearModel:       2019,
		VehicleType:     models.VehicleTypeCar,
		FuelType:        "FLEX",
		Mileage:         floatPtr(85000),
		CurrentBid:      floatPtr(22000),
		AppraisedValue:  floatPtr(35000),
		State:           "SP",
		City:            "SAO PAULO",
		AuctionDate:     &date,
		HasFinancing:    true,
		OriginalURL:     "https://leiloes.example/lote/ABC1",
		Images:          []string{"https://leiloes.example/f1.jpg", "https://leiloes.example/f2.jpg"},
	}
}

func TestAuctionHouseLookup(t *testing.T) {
	db := newTestDatabase(t)
	house := newTestHouse(t, db)

	byName, err := db.GetAuctionHouseByName("Leilões Teste")
	if err != nil {
		t.Fatalf("lookup by name failed: %v", err)
	}
	if byName.ID != house.ID {
		t.Errorf("expected house %d, got %d", house.ID, byName.ID)
	}

	// Accent and casing drift resolves through the slug.
	bySlug, err := db.GetAuctionHouseByName("LEILOES TESTE")
	if err != nil {
		t.Fatalf("lookup via slug failed: %v", err)
	}
	if bySlug.ID != house.ID {
		t.Errorf("expected house %d via slug, got %d", house.ID, bySlug.ID)
	}

	if _, err := db.GetAuctionHouseByName("inexistente"); err == nil {
		t.Error("expected error for unknown house")
	}
}

func TestTouchLastCrawled(t *testing.T) {
	db := newTestDatabase(t)
	house := newTestHouse(t, db)

	if house.LastCrawledAt != nil {
		t.Fatal("fresh house should have no crawl timestamp")
	}
	stamp := time.Now().Truncate(time.Second)
	if err := db.TouchLastCrawled(house.ID, stamp); err != nil {
		t.Fatalf("touch failed: %v", err)
	}

	reloaded, err := db.GetAuctionHouseByName(house.Name)
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if reloaded.LastCrawledAt == nil || !reloaded.LastCrawledAt.Equal(stamp) {
		t.Errorf("expected crawl timestamp %v, got %v", stamp, reloaded.LastCrawledAt)
	}
}

func TestUpsertVehicleCreatesThenUpdates(t *testing.T) {
	db := newTestDatabase(t)
	house := newTestHouse(t, db)

	v := &models.Vehicle{AuctionHouseID: house.ID, CanonicalLot: testLot("ABC1")}
	created, err := db.UpsertVehicle(v)
	if err != nil {
		t.Fatalf("first upsert failed: %v", err)
	}
	if !created {
		t.Error("first upsert should report created")
	}
	if v.ID == 0 {
		t.Fatal("expected vehicle ID to be assigned")
	}
	firstID := v.ID

	// Same key again with a higher bid: must update in place.
	again := &models.Vehicle{AuctionHouseID: house.ID, CanonicalLot: testLot("ABC1")}
	again.CurrentBid = floatPtr(25500)
	created, err = db.UpsertVehicle(again)
	if err != nil {
		t.Fatalf("second upsert failed: %v", err)
	}
	if created {
		t.Error("second upsert should report updated, not created")
	}
	if again.ID != firstID {
		t.Errorf("expected stable row id %d, got %d", firstID, again.ID)
	}

	stored, err := db.GetVehicleByID(firstID)
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if stored.CurrentBid == nil || *stored.CurrentBid != 25500 {
		t.Errorf("expected updated bid 25500, got %v", stored.CurrentBid)
	}

	if n, _ := db.CountVehicles(); n != 1 {
		t.Errorf("expected a single row, got %d", n)
	}
}

func TestUpsertVehicleScopedByHouse(t *testing.T) {
	db := newTestDatabase(t)
	houseA := newTestHouse(t, db)
	houseB := &models.AuctionHouse{Name: "Outro Leilão"}
	if err := db.CreateAuctionHouse(houseB); err != nil {
		t.Fatalf("failed to create second house: %v", err)
	}

	// The same external id under two houses is two distinct lots.
	if _, err := db.UpsertVehicle(&models.Vehicle{AuctionHouseID: houseA.ID, CanonicalLot: testLot("ABC1")}); err != nil {
		t.Fatalf("upsert house A failed: %v", err)
	}
	created, err := db.UpsertVehicle(&models.Vehicle{AuctionHouseID: houseB.ID, CanonicalLot: testLot("ABC1")})
	if err != nil {
		t.Fatalf("upsert house B failed: %v", err)
	}
	if !created {
		t.Error("same external id under another house should create a new row")
	}
	if n, _ := db.CountVehicles(); n != 2 {
		t.Errorf("expected 2 rows, got %d", n)
	}
}

func TestUpsertVehicleReplacesImages(t *testing.T) {
	db := newTestDatabase(t)
	house := newTestHouse(t, db)

	v := &models.Vehicle{AuctionHouseID: house.ID, CanonicalLot: testLot("ABC1")}
	if _, err := db.UpsertVehicle(v); err != nil {
		t.Fatalf("upsert failed: %v", err)
	}

	v.Images = []string{"https://leiloes.example/novo.jpg"}
	if _, err := db.UpsertVehicle(v); err != nil {
		t.Fatalf("second upsert failed: %v", err)
	}

	stored, err := db.GetVehicleByID(v.ID)
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if len(stored.Images) != 1 || stored.Images[0] != "https://leiloes.example/novo.jpg" {
		t.Errorf("expected wholesale image replacement, got %v", stored.Images)
	}
}

func TestSearchVehiclesFilters(t *testing.T) {
	db := newTestDatabase(t)
	house := newTestHouse(t, db)

	gol := testLot("A1")
	uno := testLot("A2")
	uno.Brand, uno.Model, uno.Title = "FIAT", "UNO", "FIAT UNO MILLE"
	uno.State = "MG"
	uno.CurrentBid = floatPtr(9000)
	moto := testLot("A3")
	moto.Brand, moto.Model, moto.Title = "HONDA", "CG", "HONDA CG 160"
	moto.VehicleType = models.VehicleTypeMotorcycle

	for _, lot := range []models.CanonicalLot{gol, uno, moto} {
		if _, err := db.UpsertVehicle(&models.Vehicle{AuctionHouseID: house.ID, CanonicalLot: lot}); err != nil {
			t.Fatalf("upsert failed: %v", err)
		}
	}

	byBrand, err := db.SearchVehicles(VehicleFilter{Brand: "FIAT"})
	if err != nil {
		t.Fatalf("brand search failed: %v", err)
	}
	if len(byBrand) != 1 || byBrand[0].ExternalID != "A2" {
		t.Errorf("brand filter: expected only A2, got %+v", byBrand)
	}

	byType, err := db.SearchVehicles(VehicleFilter{VehicleType: "motorcycle"})
	if err != nil {
		t.Fatalf("type search failed: %v", err)
	}
	if len(byType) != 1 || byType[0].ExternalID != "A3" {
		t.Errorf("type filter: expected only A3, got %+v", byType)
	}

	byPrice, err := db.SearchVehicles(VehicleFilter{MaxPrice: 10000})
	if err != nil {
		t.Fatalf("price search failed: %v", err)
	}
	if len(byPrice) != 1 || byPrice[0].ExternalID != "A2" {
		t.Errorf("price filter: expected only A2, got %+v", byPrice)
	}

	all, err := db.SearchVehicles(VehicleFilter{})
	if err != nil {
		t.Fatalf("unfiltered search failed: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("expected 3 lots, got %d", len(all))
	}
}

func TestSearchVehiclesFutureOnlyKeepsDatelessLots(t *testing.T) {
	db := newTestDatabase(t)
	house := newTestHouse(t, db)

	dated := testLot("D1")
	dateless := testLot("D2")
	dateless.AuctionDate = nil
	stale := testLot("D3")
	past := time.Now().AddDate(0, 0, -3)
	stale.AuctionDate = &past

	for _, lot := range []models.CanonicalLot{dated, dateless, stale} {
		if _, err := db.UpsertVehicle(&models.Vehicle{AuctionHouseID: house.ID, CanonicalLot: lot}); err != nil {
			t.Fatalf("upsert failed: %v", err)
		}
	}

	got, err := db.SearchVehicles(VehicleFilter{FutureOnly: true})
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	ids := make(map[string]bool)
	for _, v := range got {
		ids[v.ExternalID] = true
	}
	if !ids["D1"] || !ids["D2"] || ids["D3"] {
		t.Errorf("future-only filter: expected D1+D2 without D3, got %v", ids)
	}
}

func TestCrawlRunLog(t *testing.T) {
	db := newTestDatabase(t)

	run := &models.CrawlRunResult{
		Auctioneer:  "Leilões Teste",
		Success:     false,
		LotsScraped: 40,
		LotsCreated: 30,
		LotsUpdated: 8,
		Errors:      []string{"lote X sem título", "timeout na página 3"},
		Duration:    90 * time.Second,
		StartedAt:   time.Now().Truncate(time.Second),
	}
	if err := db.InsertCrawlRun(run); err != nil {
		t.Fatalf("insert run failed: %v", err)
	}
	if run.ID == 0 {
		t.Fatal("expected run ID to be assigned")
	}

	runs, err := db.ListCrawlRuns("Leilões Teste", 10)
	if err != nil {
		t.Fatalf("list runs failed: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected 1 run, got %d", len(runs))
	}
	got := runs[0]
	if got.Success {
		t.Error("expected failed run to stay failed")
	}
	if len(got.Errors) != 2 || got.Errors[0] != "lote X sem título" {
		t.Errorf("expected errors round-tripped, got %v", got.Errors)
	}
	if got.Duration != 90*time.Second {
		t.Errorf("expected 90s duration, got %v", got.Duration)
	}

	last, err := db.LastCrawlRun("Leilões Teste")
	if err != nil {
		t.Fatalf("last run failed: %v", err)
	}
	if last.ID != run.ID {
		t.Errorf("expected last run %d, got %d", run.ID, last.ID)
	}
}
