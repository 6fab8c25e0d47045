package database

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/ybycrew/leilaoapp-sub000/internal/models"
)

// UpsertVehicle writes one lot keyed by (auction_house_id, external_id).
// A fresh lot inserts; a known one updates every crawled column while
// created_at stays untouched. The returned flag reports whether a new
// row was created.
func (d *Database) UpsertVehicle(v *models.Vehicle) (created bool, err error) {
	tx, err := d.db.Begin()
	if err != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var existingID int64
	err = tx.QueryRow(`
		SELECT id FROM vehicles WHERE auction_house_id = ? AND external_id = ?
	`, v.AuctionHouseID, v.ExternalID).Scan(&existingID)
	if err != nil && err != sql.ErrNoRows {
		return false, fmt.Errorf("failed to look up vehicle: %w", err)
	}
	created = err == sql.ErrNoRows

	now := time.Now()
	result, err := tx.Exec(`
		INSERT INTO vehicles (
			auction_house_id, external_id, lot_number, title,
			brand, model, version,
			year_manufacture, year_model, vehicle_type, fuel_type,
			mileage, current_bid, minimum_bid, appraised_value,
			state, city, auction_date, auction_type, has_financing,
			original_url, thumbnail_url, description,
			discount_pct, deal_score, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(auction_house_id, external_id) DO UPDATE SET
			lot_number = excluded.lot_number,
			title = excluded.title,
			brand = excluded.brand,
			model = excluded.model,
			version = excluded.version,
			year_manufacture = excluded.year_manufacture,
			year_model = excluded.year_model,
			vehicle_type = excluded.vehicle_type,
			fuel_type = excluded.fuel_type,
			mileage = excluded.mileage,
			current_bid = excluded.current_bid,
			minimum_bid = excluded.minimum_bid,
			appraised_value = excluded.appraised_value,
			state = excluded.state,
			city = excluded.city,
			auction_date = excluded.auction_date,
			auction_type = excluded.auction_type,
			has_financing = excluded.has_financing,
			original_url = excluded.original_url,
			thumbnail_url = excluded.thumbnail_url,
			description = excluded.description,
			discount_pct = excluded.discount_pct,
			deal_score = excluded.deal_score,
			updated_at = excluded.updated_at
	`,
		v.AuctionHouseID, v.ExternalID, v.LotNumber, v.Title,
		v.Brand, v.Model, v.Version,
		v.YearManufacture, v.YearModel, string(v.VehicleType), v.FuelType,
		v.Mileage, v.CurrentBid, v.MinimumBid, v.AppraisedValue,
		v.State, v.City, v.AuctionDate, v.AuctionType, v.HasFinancing,
		v.OriginalURL, v.ThumbnailURL, v.Description,
		v.DiscountPct, v.DealScore, now, now,
	)
	if err != nil {
		return false, fmt.Errorf("failed to upsert vehicle: %w", err)
	}

	if created {
		v.ID, err = result.LastInsertId()
		if err != nil {
			return false, fmt.Errorf("failed to get vehicle ID: %w", err)
		}
		v.CreatedAt = now
	} else {
		v.ID = existingID
	}
	v.UpdatedAt = now

	// Image sets are replaced wholesale; comparing URL lists row by row
	// buys nothing at these sizes.
	if err := replaceImages(tx, v.ID, v.Images); err != nil {
		return false, err
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit vehicle upsert: %w", err)
	}
	return created, nil
}

func replaceImages(tx *sql.Tx, vehicleID int64, urls []string) error {
	if _, err := tx.Exec(`DELETE FROM vehicle_images WHERE vehicle_id = ?`, vehicleID); err != nil {
		return fmt.Errorf("failed to clear vehicle images: %w", err)
	}
	for i, url := range urls {
		if url == "" {
			continue
		}
		if _, err := tx.Exec(`
			INSERT INTO vehicle_images (vehicle_id, url, position) VALUES (?, ?, ?)
		`, vehicleID, url, i); err != nil {
			return fmt.Errorf("failed to insert vehicle image: %w", err)
		}
	}
	return nil
}

// GetVehicleByID loads one vehicle with its image list.
func (d *Database) GetVehicleByID(id int64) (*models.Vehicle, error) {
	row := d.db.QueryRow(vehicleSelect+` WHERE v.id = ?`, id)
	v, err := scanVehicle(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("vehicle not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get vehicle: %w", err)
	}
	if err := d.loadImages(v); err != nil {
		return nil, err
	}
	return v, nil
}

// VehicleFilter narrows a lot search. Zero values mean "no filter".
type VehicleFilter struct {
	Brand          string
	Model          string
	VehicleType    string
	State          string
	AuctionHouseID int64
	MaxPrice       float64
	FutureOnly     bool
	Limit          int
	Offset         int
}

// SearchVehicles returns lots matching the filter, newest update first.
func (d *Database) SearchVehicles(f VehicleFilter) ([]models.Vehicle, error) {
	var conds []string
	var args []any

	if f.Brand != "" {
		conds = append(conds, "v.brand = ?")
		args = append(args, f.Brand)
	}
	if f.Model != "" {
		conds = append(conds, "v.model = ?")
		args = append(args, f.Model)
	}
	if f.VehicleType != "" {
		conds = append(conds, "v.vehicle_type = ?")
		args = append(args, f.VehicleType)
	}
	if f.State != "" {
		conds = append(conds, "v.state = ?")
		args = append(args, f.State)
	}
	if f.AuctionHouseID > 0 {
		conds = append(conds, "v.auction_house_id = ?")
		args = append(args, f.AuctionHouseID)
	}
	if f.MaxPrice > 0 {
		conds = append(conds, "v.current_bid IS NOT NULL AND v.current_bid <= ?")
		args = append(args, f.MaxPrice)
	}
	if f.FutureOnly {
		// Dateless lots stay visible, matching the collection rule.
		conds = append(conds, "(v.auction_date IS NULL OR v.auction_date >= ?)")
		args = append(args, time.Now())
	}

	query := vehicleSelect
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY v.updated_at DESC"

	limit := f.Limit
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	query += " LIMIT ? OFFSET ?"
	args = append(args, limit, f.Offset)

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to search vehicles: %w", err)
	}
	defer rows.Close()

	var out []models.Vehicle
	for rows.Next() {
		v, err := scanVehicle(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan vehicle: %w", err)
		}
		out = append(out, *v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range out {
		if err := d.loadImages(&out[i]); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// CountVehicles reports the total row count, used by the health check.
func (d *Database) CountVehicles() (int, error) {
	var n int
	if err := d.db.QueryRow(`SELECT COUNT(*) FROM vehicles`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count vehicles: %w", err)
	}
	return n, nil
}

const vehicleSelect = `
	SELECT v.id, v.auction_house_id, v.external_id, v.lot_number, v.title,
	       v.brand, v.model, v.version,
	       v.year_manufacture, v.year_model, v.vehicle_type, v.fuel_type,
	       v.mileage, v.current_bid, v.minimum_bid, v.appraised_value,
	       v.state, v.city, v.auction_date, v.auction_type, v.has_financing,
	       v.original_url, v.thumbnail_url, v.description,
	       v.discount_pct, v.deal_score, v.created_at, v.updated_at
	FROM vehicles v`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanVehicle(row rowScanner) (*models.Vehicle, error) {
	var v models.Vehicle
	var vehicleType string
	var mileage, currentBid, minimumBid, appraised, discount, score sql.NullFloat64
	var auctionDate sql.NullTime

	err := row.Scan(
		&v.ID, &v.AuctionHouseID, &v.ExternalID, &v.LotNumber, &v.Title,
		&v.Brand, &v.Model, &v.Version,
		&v.YearManufacture, &v.YearModel, &vehicleType, &v.FuelType,
		&mileage, &currentBid, &minimumBid, &appraised,
		&v.State, &v.City, &auctionDate, &v.AuctionType, &v.HasFinancing,
		&v.OriginalURL, &v.ThumbnailURL, &v.Description,
		&discount, &score, &v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	v.VehicleType = models.VehicleType(vehicleType)
	v.Mileage = nullFloat(mileage)
	v.CurrentBid = nullFloat(currentBid)
	v.MinimumBid = nullFloat(minimumBid)
	v.AppraisedValue = nullFloat(appraised)
	v.DiscountPct = nullFloat(discount)
	v.DealScore = nullFloat(score)
	if auctionDate.Valid {
		t := auctionDate.Time
		v.AuctionDate = &t
	}
	return &v, nil
}

func nullFloat(n sql.NullFloat64) *float64 {
	if !n.Valid {
		return nil
	}
	f := n.Float64
	return &f
}

func (d *Database) loadImages(v *models.Vehicle) error {
	rows, err := d.db.Query(`
		SELECT url FROM vehicle_images WHERE vehicle_id = ? ORDER BY position
	`, v.ID)
	if err != nil {
		return fmt.Errorf("failed to load vehicle images: %w", err)
	}
	defer rows.Close()

	v.Images = nil
	for rows.Next() {
		var url string
		if err := rows.Scan(&url); err != nil {
			return fmt.Errorf("failed to scan vehicle image: %w", err)
		}
		v.Images = append(v.Images, url)
	}
	return rows.Err()
}
