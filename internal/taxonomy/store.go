package taxonomy

import (
	"database/sql"
	"fmt"

	"github.com/ybycrew/leilaoapp-sub000/internal/models"
)

// Load reads the reference taxonomy tables and builds the lookup
// index. The tables are treated strictly read-only; the crawl never
// writes them.
func Load(db *sql.DB) (*Index, error) {
	categories, err := loadCategories(db)
	if err != nil {
		return nil, fmt.Errorf("failed to load taxonomy categories: %w", err)
	}

	brands, err := loadBrands(db)
	if err != nil {
		return nil, fmt.Errorf("failed to load taxonomy brands: %w", err)
	}

	mdls, err := loadModels(db)
	if err != nil {
		return nil, fmt.Errorf("failed to load taxonomy models: %w", err)
	}

	return NewIndex(categories, brands, mdls), nil
}

func loadCategories(db *sql.DB) ([]models.VehicleCategory, error) {
	rows, err := db.Query(`SELECT id, name FROM taxonomy_categories ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.VehicleCategory
	for rows.Next() {
		var c models.VehicleCategory
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func loadBrands(db *sql.DB) ([]models.TaxonomyBrand, error) {
	rows, err := db.Query(`
		SELECT id, category_id, name, canonical_name, search_key
		FROM taxonomy_brands
		ORDER BY id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.TaxonomyBrand
	for rows.Next() {
		var b models.TaxonomyBrand
		var canonical, key sql.NullString
		if err := rows.Scan(&b.ID, &b.CategoryID, &b.Name, &canonical, &key); err != nil {
			return nil, err
		}
		b.CanonicalName = canonical.String
		b.SearchKey = key.String
		out = append(out, b)
	}
	return out, rows.Err()
}

func loadModels(db *sql.DB) ([]models.TaxonomyModel, error) {
	rows, err := db.Query(`
		SELECT id, brand_id, name, base_name, variant, search_key, base_search_key, reference_price
		FROM taxonomy_models
		ORDER BY id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.TaxonomyModel
	for rows.Next() {
		var m models.TaxonomyModel
		var baseName, variant, key, baseKey sql.NullString
		var price sql.NullFloat64
		if err := rows.Scan(&m.ID, &m.BrandID, &m.Name, &baseName, &variant, &key, &baseKey, &price); err != nil {
			return nil, err
		}
		m.BaseName = baseName.String
		m.Variant = variant.String
		m.SearchKey = key.String
		m.BaseSearchKey = baseKey.String
		if price.Valid {
			p := price.Float64
			m.ReferencePrice = &p
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
