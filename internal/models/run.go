package models

import "time"

// CrawlRunResult is the audit record for one crawl invocation. It is
// created once per run, persisted as a run log row and never mutated
// afterwards.
type CrawlRunResult struct {
	ID          int64         `json:"id,omitempty"`
	Auctioneer  string        `json:"auctioneer"`
	Success     bool          `json:"success"`
	LotsScraped int           `json:"lotsScraped"`
	LotsCreated int           `json:"lotsCreated"`
	LotsUpdated int           `json:"lotsUpdated"`
	Errors      []string      `json:"errors,omitempty"`
	Duration    time.Duration `json:"duration"`
	StartedAt   time.Time     `json:"startedAt"`
}

// AddError appends an error message to the run, keeping the run alive.
func (r *CrawlRunResult) AddError(msg string) {
	r.Errors = append(r.Errors, msg)
}
