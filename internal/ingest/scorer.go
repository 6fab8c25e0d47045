package ingest

// DealScorer ranks a lot's investment attractiveness. The formula is
// owned elsewhere; the pipeline only honors the signature. A nil
// scorer leaves deal scores unset.
type DealScorer func(discountPct *float64, year int, mileage *float64, auctionType string, hasFinancing bool) float64
