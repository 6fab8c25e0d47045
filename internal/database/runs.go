package database

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ybycrew/leilaoapp-sub000/internal/models"
)

// InsertCrawlRun appends one run log row. Runs are append-only audit
// records; the errors slice is stored as JSON.
func (d *Database) InsertCrawlRun(run *models.CrawlRunResult) error {
	errorsJSON, err := json.Marshal(run.Errors)
	if err != nil {
		return fmt.Errorf("failed to encode run errors: %w", err)
	}

	result, err := d.db.Exec(`
		INSERT INTO crawl_runs (auctioneer, success, lots_scraped, lots_created, lots_updated, errors, duration_ms, started_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, run.Auctioneer, run.Success, run.LotsScraped, run.LotsCreated, run.LotsUpdated,
		string(errorsJSON), run.Duration.Milliseconds(), run.StartedAt)
	if err != nil {
		return fmt.Errorf("failed to insert crawl run: %w", err)
	}

	run.ID, err = result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get crawl run ID: %w", err)
	}
	return nil
}

// ListCrawlRuns returns the most recent runs, newest first. An empty
// auctioneer returns runs for every house.
func (d *Database) ListCrawlRuns(auctioneer string, limit int) ([]models.CrawlRunResult, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	query := `
		SELECT id, auctioneer, success, lots_scraped, lots_created, lots_updated, errors, duration_ms, started_at
		FROM crawl_runs
	`
	var args []any
	if auctioneer != "" {
		query += " WHERE auctioneer = ?"
		args = append(args, auctioneer)
	}
	query += " ORDER BY started_at DESC LIMIT ?"
	args = append(args, limit)

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list crawl runs: %w", err)
	}
	defer rows.Close()

	var out []models.CrawlRunResult
	for rows.Next() {
		var run models.CrawlRunResult
		var errorsJSON string
		var durationMS int64
		if err := rows.Scan(&run.ID, &run.Auctioneer, &run.Success, &run.LotsScraped,
			&run.LotsCreated, &run.LotsUpdated, &errorsJSON, &durationMS, &run.StartedAt); err != nil {
			return nil, fmt.Errorf("failed to scan crawl run: %w", err)
		}
		if err := json.Unmarshal([]byte(errorsJSON), &run.Errors); err != nil {
			return nil, fmt.Errorf("failed to decode run errors: %w", err)
		}
		run.Duration = time.Duration(durationMS) * time.Millisecond
		out = append(out, run)
	}
	return out, rows.Err()
}

// LastCrawlRun returns the newest run for one house, or nil when the
// house has never been crawled.
func (d *Database) LastCrawlRun(auctioneer string) (*models.CrawlRunResult, error) {
	runs, err := d.ListCrawlRuns(auctioneer, 1)
	if err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		return nil, sql.ErrNoRows
	}
	return &runs[0], nil
}
