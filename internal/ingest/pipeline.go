// Package ingest turns crawled lots into persisted vehicle rows:
// normalize, classify, score and upsert, one auction house at a time,
// with a run log row written for every invocation.
package ingest

import (
	"fmt"
	"time"

	"github.com/ybycrew/leilaoapp-sub000/internal/classify"
	"github.com/ybycrew/leilaoapp-sub000/internal/database"
	"github.com/ybycrew/leilaoapp-sub000/internal/models"
	"github.com/ybycrew/leilaoapp-sub000/internal/normalize"
)

// LotSource produces the raw lot set for one auction house. The
// production source wraps the browser crawler; tests substitute a
// fixture source.
type LotSource interface {
	Collect(house *models.AuctionHouse) ([]*models.CanonicalLot, error)
}

// Orchestrator runs the per-house pipeline end to end.
type Orchestrator struct {
	DB         *database.Database
	Engine     *normalize.Engine
	Classifier *classify.Classifier
	Source     LotSource
	Scorer     DealScorer
}

// RunHouse processes one auction house by display name. It always
// returns a run result and always persists it as an audit row; only
// the identity lookup failing prevents any lot work. A crawl error
// still processes whatever partial lot set came back.
func (o *Orchestrator) RunHouse(houseName string) *models.CrawlRunResult {
	result := &models.CrawlRunResult{
		Auctioneer: houseName,
		StartedAt:  time.Now(),
	}
	defer func() {
		result.Duration = time.Since(result.StartedAt)
		result.Success = len(result.Errors) == 0
		if err := o.DB.InsertCrawlRun(result); err != nil {
			fmt.Printf("⚠️  failed to persist run log for %s: %v\n", houseName, err)
		}
	}()

	house, err := o.DB.GetAuctionHouseByName(houseName)
	if err != nil {
		result.AddError(fmt.Sprintf("auction house lookup failed: %v", err))
		return result
	}

	lots, err := o.Source.Collect(house)
	if err != nil {
		result.AddError(fmt.Sprintf("crawl failed: %v", err))
	}
	result.LotsScraped = len(lots)

	for _, lot := range lots {
		created, err := o.processLot(house, lot)
		if err != nil {
			result.AddError(fmt.Sprintf("lot %s: %v", lot.ExternalID, err))
			continue
		}
		if created {
			result.LotsCreated++
		} else {
			result.LotsUpdated++
		}
	}

	if err := o.DB.TouchLastCrawled(house.ID, time.Now()); err != nil {
		result.AddError(fmt.Sprintf("failed to stamp last crawl: %v", err))
	}

	fmt.Printf("🏁 %s: %d scraped, %d created, %d updated, %d errors\n",
		house.Name, result.LotsScraped, result.LotsCreated, result.LotsUpdated, len(result.Errors))
	return result
}

// processLot normalizes, classifies and scores one lot, then upserts
// it. A panic anywhere inside counts as that lot's failure, never the
// run's.
func (o *Orchestrator) processLot(house *models.AuctionHouse, lot *models.CanonicalLot) (created bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			created = false
			err = fmt.Errorf("panic while processing: %v", r)
		}
	}()

	reference := o.normalizeLot(lot)

	o.classifyLot(lot)

	vehicle := &models.Vehicle{
		AuctionHouseID: house.ID,
		CanonicalLot:   *lot,
	}
	vehicle.DiscountPct = discountPct(reference, lot.AppraisedValue, lot.CurrentBid)
	if o.Scorer != nil {
		score := o.Scorer(vehicle.DiscountPct, lot.YearModel, lot.Mileage, lot.AuctionType, lot.HasFinancing)
		vehicle.DealScore = &score
	}

	return o.DB.UpsertVehicle(vehicle)
}

// normalizeLot rewrites the lot's brand/model with canonical taxonomy
// forms and returns the matched model's reference price, when any.
func (o *Orchestrator) normalizeLot(lot *models.CanonicalLot) *float64 {
	if o.Engine == nil {
		return nil
	}

	// A missing model usually means the site crams both names into a
	// single field; try to pull them apart before resolving.
	if lot.Model == "" {
		combined := lot.Brand
		if combined == "" {
			combined = lot.Title
		}
		if split := o.Engine.SeparateCombinedBrandModel(combined); split != nil {
			lot.Brand = split.Brand
			lot.Model = split.Model
		}
	}

	brandRes := o.Engine.ResolveBrand(lot.Brand, "")
	if brandRes.CanonicalBrand != "" {
		lot.Brand = brandRes.CanonicalBrand
	}
	if brandRes.Brand == nil {
		return nil
	}

	modelRes := o.Engine.ResolveModel(brandRes.Brand, lot.Model)
	if modelRes.CanonicalModel != "" {
		lot.Model = modelRes.CanonicalModel
	}
	if lot.Version == "" && modelRes.Variant != "" {
		lot.Version = modelRes.Variant
	}
	if modelRes.Model != nil {
		return modelRes.Model.ReferencePrice
	}
	return nil
}

func (o *Orchestrator) classifyLot(lot *models.CanonicalLot) {
	if o.Classifier == nil {
		if lot.VehicleType == "" {
			lot.VehicleType = models.VehicleTypeCar
		}
		return
	}
	result := o.Classifier.Classify(classify.Input{
		Title:    lot.Title,
		Brand:    lot.Brand,
		Model:    lot.Model,
		FuelType: lot.FuelType,
		Mileage:  lot.Mileage,
		Price:    lot.CurrentBid,
	})
	lot.VehicleType = result.Type
}

// discountPct computes (reference − bid) / reference as a percentage.
// The taxonomy reference price wins; the auctioneer's appraisal is the
// fallback reference. No reference or no bid means no discount.
func discountPct(reference, appraised, bid *float64) *float64 {
	ref := reference
	if ref == nil {
		ref = appraised
	}
	if ref == nil || bid == nil || *ref <= 0 {
		return nil
	}
	pct := (*ref - *bid) / *ref * 100
	return &pct
}
