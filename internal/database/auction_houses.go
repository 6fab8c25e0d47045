package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/ybycrew/leilaoapp-sub000/internal/models"
	"github.com/ybycrew/leilaoapp-sub000/internal/textutil"
)

// GetAuctionHouseByName resolves an auction house by exact name, then
// by slug derived from the name. Crawl configs refer to houses by
// display name; the slug fallback absorbs casing and accent drift.
func (d *Database) GetAuctionHouseByName(name string) (*models.AuctionHouse, error) {
	house, err := d.scanAuctionHouse(`
		SELECT id, name, slug, site_url, strategy, last_crawled_at
		FROM auction_houses WHERE name = ?
	`, name)
	if err == nil {
		return house, nil
	}
	if err != sql.ErrNoRows {
		return nil, fmt.Errorf("failed to get auction house: %w", err)
	}

	house, err = d.scanAuctionHouse(`
		SELECT id, name, slug, site_url, strategy, last_crawled_at
		FROM auction_houses WHERE slug = ?
	`, textutil.Slugify(name))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("auction house %q not found", name)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get auction house: %w", err)
	}
	return house, nil
}

// CreateAuctionHouse inserts a house, deriving the slug from the name
// when not provided.
func (d *Database) CreateAuctionHouse(house *models.AuctionHouse) error {
	if house.Slug == "" {
		house.Slug = textutil.Slugify(house.Name)
	}
	if house.Strategy == "" {
		house.Strategy = "html"
	}

	result, err := d.db.Exec(`
		INSERT INTO auction_houses (name, slug, site_url, strategy)
		VALUES (?, ?, ?, ?)
	`, house.Name, house.Slug, house.SiteURL, house.Strategy)
	if err != nil {
		return fmt.Errorf("failed to create auction house: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get auction house ID: %w", err)
	}
	house.ID = id
	return nil
}

// ListAuctionHouses returns all registered houses ordered by name.
func (d *Database) ListAuctionHouses() ([]models.AuctionHouse, error) {
	rows, err := d.db.Query(`
		SELECT id, name, slug, site_url, strategy, last_crawled_at
		FROM auction_houses ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list auction houses: %w", err)
	}
	defer rows.Close()

	var out []models.AuctionHouse
	for rows.Next() {
		var h models.AuctionHouse
		var lastCrawled sql.NullTime
		if err := rows.Scan(&h.ID, &h.Name, &h.Slug, &h.SiteURL, &h.Strategy, &lastCrawled); err != nil {
			return nil, fmt.Errorf("failed to scan auction house: %w", err)
		}
		if lastCrawled.Valid {
			t := lastCrawled.Time
			h.LastCrawledAt = &t
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

// TouchLastCrawled stamps the house's last crawl time.
func (d *Database) TouchLastCrawled(houseID int64, at time.Time) error {
	_, err := d.db.Exec(`UPDATE auction_houses SET last_crawled_at = ? WHERE id = ?`, at, houseID)
	if err != nil {
		return fmt.Errorf("failed to update last crawl time: %w", err)
	}
	return nil
}

func (d *Database) scanAuctionHouse(query string, args ...any) (*models.AuctionHouse, error) {
	var h models.AuctionHouse
	var lastCrawled sql.NullTime
	err := d.db.QueryRow(query, args...).Scan(&h.ID, &h.Name, &h.Slug, &h.SiteURL, &h.Strategy, &lastCrawled)
	if err != nil {
		return nil, err
	}
	if lastCrawled.Valid {
		t := lastCrawled.Time
		h.LastCrawledAt = &t
	}
	return &h, nil
}
