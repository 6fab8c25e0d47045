package crawler

import (
	"time"

	"github.com/ybycrew/leilaoapp-sub000/internal/extract"
	"github.com/ybycrew/leilaoapp-sub000/internal/models"
	"github.com/ybycrew/leilaoapp-sub000/internal/textutil"
)

// AddOutcome describes what happened to one raw lot payload.
type AddOutcome int

const (
	// Added means the lot was accepted into the run's result set.
	Added AddOutcome = iota
	// Discarded means the payload had no usable external id or title.
	Discarded
	// Duplicate means the external id was already seen this run.
	Duplicate
	// PastAuction means the lot's auction date is before today 00:00.
	PastAuction
)

// Collector accumulates lots for a single crawl run. It owns the
// process-local dedup set and the future-date cutoff. Not safe for
// concurrent use; discovery is sequential by design.
type Collector struct {
	cutoff     time.Time
	seenIDs    map[string]struct{}
	seenTitles map[string]struct{}
	lots       []*models.CanonicalLot

	discarded  int
	duplicates int
	pastCount  int
}

// NewCollector builds a collector whose date cutoff is "now" truncated
// to the start of the day.
func NewCollector(now time.Time) *Collector {
	cutoff := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return &Collector{
		cutoff:     cutoff,
		seenIDs:    make(map[string]struct{}),
		seenTitles: make(map[string]struct{}),
	}
}

// AddRaw transforms a raw payload and adds the result. Transform
// failures count as discards, never as errors.
func (c *Collector) AddRaw(raw map[string]any) AddOutcome {
	lot := extract.TransformRawLot(raw)
	if lot == nil {
		c.discarded++
		return Discarded
	}
	return c.Add(lot)
}

// Add applies dedup and the future-only cutoff. Lots with no
// resolvable date are retained; that permissive default is deliberate.
func (c *Collector) Add(lot *models.CanonicalLot) AddOutcome {
	if _, seen := c.seenIDs[lot.ExternalID]; seen {
		c.duplicates++
		return Duplicate
	}
	c.seenIDs[lot.ExternalID] = struct{}{}
	c.seenTitles[textutil.ToCanonicalUpper(lot.Title)] = struct{}{}

	if lot.AuctionDate != nil && lot.AuctionDate.Before(c.cutoff) {
		c.pastCount++
		return PastAuction
	}

	c.lots = append(c.lots, lot)
	return Added
}

// Lots returns the accepted lots in discovery order.
func (c *Collector) Lots() []*models.CanonicalLot {
	return c.lots
}

// SeenTitleRatio reports the fraction of the given titles already seen
// this run. The HTML strategy uses it as an anti-infinite-loop guard
// against sites that loop their pagination.
func (c *Collector) SeenTitleRatio(titles []string) float64 {
	if len(titles) == 0 {
		return 0
	}
	seen := 0
	for _, t := range titles {
		if _, ok := c.seenTitles[textutil.ToCanonicalUpper(t)]; ok {
			seen++
		}
	}
	return float64(seen) / float64(len(titles))
}

// Stats returns the collector's discard/duplicate/past counters.
func (c *Collector) Stats() (discarded, duplicates, past int) {
	return c.discarded, c.duplicates, c.pastCount
}
