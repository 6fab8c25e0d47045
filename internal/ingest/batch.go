package ingest

import (
	"fmt"
	"time"

	"github.com/ybycrew/leilaoapp-sub000/internal/crawler"
	"github.com/ybycrew/leilaoapp-sub000/internal/models"
)

// CrawlerSource is the production LotSource: one fresh browser session
// per auction house, strategy chosen from the house row.
type CrawlerSource struct {
	Config  crawler.Config
	Metrics *crawler.Metrics
	// FacetParams configures which query parameters get facet replay
	// on query-strategy sites.
	FacetParams []string
}

// Collect implements LotSource.
func (s *CrawlerSource) Collect(house *models.AuctionHouse) ([]*models.CanonicalLot, error) {
	strategy, err := s.strategyFor(house)
	if err != nil {
		return nil, err
	}
	return crawler.New(s.Config, s.Metrics).Run(strategy)
}

func (s *CrawlerSource) strategyFor(house *models.AuctionHouse) (crawler.Strategy, error) {
	switch house.Strategy {
	case "query":
		facets := s.FacetParams
		if len(facets) == 0 {
			facets = []string{"subcategoria", "uf"}
		}
		return &crawler.QueryStrategy{
			SiteName:    house.Name,
			Endpoint:    house.SiteURL,
			FacetParams: facets,
		}, nil
	case "html", "":
		return &crawler.HTMLStrategy{
			SiteName: house.Name,
			PageURL:  house.SiteURL,
		}, nil
	default:
		return nil, fmt.Errorf("unknown crawl strategy %q for %s", house.Strategy, house.Name)
	}
}

// Batch runs the pipeline for a list of auction houses, strictly
// sequentially with an inter-house delay. One house failing never
// stops the next.
type Batch struct {
	Orchestrator *Orchestrator
	// InterHouseDelay spaces consecutive house runs apart.
	InterHouseDelay time.Duration
}

// Run processes every named house and returns the per-house results
// in order. An empty list means every registered house.
func (b *Batch) Run(houseNames []string) ([]*models.CrawlRunResult, error) {
	if len(houseNames) == 0 {
		houses, err := b.Orchestrator.DB.ListAuctionHouses()
		if err != nil {
			return nil, fmt.Errorf("failed to list auction houses: %w", err)
		}
		for _, h := range houses {
			houseNames = append(houseNames, h.Name)
		}
	}

	var results []*models.CrawlRunResult
	for i, name := range houseNames {
		if i > 0 && b.InterHouseDelay > 0 {
			time.Sleep(b.InterHouseDelay)
		}
		fmt.Printf("🔎 crawling %s (%d/%d)\n", name, i+1, len(houseNames))
		results = append(results, b.Orchestrator.RunHouse(name))
	}
	return results, nil
}
