// Package taxonomy loads the official brand/model/price reference data
// and exposes read-only lookup indexes. The index is built once per
// process and safely shared across lots within a run.
package taxonomy

import (
	"github.com/ybycrew/leilaoapp-sub000/internal/models"
	"github.com/ybycrew/leilaoapp-sub000/internal/textutil"
)

// Category partition names. Vans ride in the car partition of the
// reference data; the classifier promotes them separately.
const (
	CategoryCar        = "car"
	CategoryMotorcycle = "motorcycle"
	CategoryTruck      = "truck"
)

// Index is the in-memory lookup structure over the reference taxonomy.
// It is immutable after construction.
type Index struct {
	categories []models.VehicleCategory

	// category name -> search key -> brand
	brandByKey map[string]map[string]*models.TaxonomyBrand
	// category name -> brands in insertion order
	brandsByCategory map[string][]*models.TaxonomyBrand
	// canonical brand name -> category names it appears under
	categoriesOfBrand map[string][]string

	// brand id -> search key -> model
	modelByKey map[int64]map[string]*models.TaxonomyModel
	// brand id -> models in insertion order
	modelsByBrand map[int64][]*models.TaxonomyModel

	categoryName map[int64]string
}

// NewIndex builds the lookup maps from already-loaded reference rows.
// Brands with empty search keys are skipped; model search keys are
// recomputed when the source rows carry none.
func NewIndex(categories []models.VehicleCategory, brands []models.TaxonomyBrand, mdls []models.TaxonomyModel) *Index {
	idx := &Index{
		categories:        categories,
		brandByKey:        make(map[string]map[string]*models.TaxonomyBrand),
		brandsByCategory:  make(map[string][]*models.TaxonomyBrand),
		categoriesOfBrand: make(map[string][]string),
		modelByKey:        make(map[int64]map[string]*models.TaxonomyModel),
		modelsByBrand:     make(map[int64][]*models.TaxonomyModel),
		categoryName:      make(map[int64]string),
	}

	for _, c := range categories {
		idx.categoryName[c.ID] = c.Name
		idx.brandByKey[c.Name] = make(map[string]*models.TaxonomyBrand)
	}

	for i := range brands {
		b := &brands[i]
		if b.CanonicalName == "" {
			b.CanonicalName = textutil.ToCanonicalUpper(b.Name)
		}
		if b.SearchKey == "" {
			b.SearchKey = textutil.BuildSearchKey(b.Name)
		}
		if b.SearchKey == "" {
			continue
		}
		cat, ok := idx.categoryName[b.CategoryID]
		if !ok {
			continue
		}
		if idx.brandByKey[cat] == nil {
			idx.brandByKey[cat] = make(map[string]*models.TaxonomyBrand)
		}
		idx.brandByKey[cat][b.SearchKey] = b
		idx.brandsByCategory[cat] = append(idx.brandsByCategory[cat], b)

		found := false
		for _, existing := range idx.categoriesOfBrand[b.CanonicalName] {
			if existing == cat {
				found = true
				break
			}
		}
		if !found {
			idx.categoriesOfBrand[b.CanonicalName] = append(idx.categoriesOfBrand[b.CanonicalName], cat)
		}
	}

	for i := range mdls {
		m := &mdls[i]
		if m.BaseName == "" {
			base := textutil.ExtractModelBase(m.Name)
			m.BaseName = base.BaseName
			if m.Variant == "" {
				m.Variant = base.Variant
			}
		}
		if m.SearchKey == "" {
			m.SearchKey = textutil.BuildSearchKey(m.Name)
		}
		if m.BaseSearchKey == "" {
			m.BaseSearchKey = textutil.BuildSearchKey(m.BaseName)
		}
		if m.SearchKey == "" {
			continue
		}
		if idx.modelByKey[m.BrandID] == nil {
			idx.modelByKey[m.BrandID] = make(map[string]*models.TaxonomyModel)
		}
		idx.modelByKey[m.BrandID][m.SearchKey] = m
		if m.BaseSearchKey != "" && m.BaseSearchKey != m.SearchKey {
			// Base keys only fill gaps so the full key always wins.
			if _, exists := idx.modelByKey[m.BrandID][m.BaseSearchKey]; !exists {
				idx.modelByKey[m.BrandID][m.BaseSearchKey] = m
			}
		}
		idx.modelsByBrand[m.BrandID] = append(idx.modelsByBrand[m.BrandID], m)
	}

	return idx
}

// Categories returns the partition names present in the taxonomy.
func (idx *Index) Categories() []string {
	out := make([]string, 0, len(idx.categories))
	for _, c := range idx.categories {
		out = append(out, c.Name)
	}
	return out
}

// BrandBySearchKey looks up an exact search-key match within one
// category partition.
func (idx *Index) BrandBySearchKey(category, key string) (*models.TaxonomyBrand, bool) {
	m, ok := idx.brandByKey[category]
	if !ok {
		return nil, false
	}
	b, ok := m[key]
	return b, ok
}

// BrandsIn returns all brands of a category partition.
func (idx *Index) BrandsIn(category string) []*models.TaxonomyBrand {
	return idx.brandsByCategory[category]
}

// CategoriesOfBrandName returns the partitions a canonical brand name
// appears under. More than one entry is the classifier's ambiguity
// case.
func (idx *Index) CategoriesOfBrandName(canonicalName string) []string {
	return idx.categoriesOfBrand[canonicalName]
}

// CategoryOf returns the partition name a brand row belongs to.
func (idx *Index) CategoryOf(b *models.TaxonomyBrand) string {
	return idx.categoryName[b.CategoryID]
}

// ModelBySearchKey looks up an exact model search-key match scoped to a
// brand.
func (idx *Index) ModelBySearchKey(brandID int64, key string) (*models.TaxonomyModel, bool) {
	m, ok := idx.modelByKey[brandID]
	if !ok {
		return nil, false
	}
	mdl, ok := m[key]
	return mdl, ok
}

// ModelsOf returns all models of a brand.
func (idx *Index) ModelsOf(brandID int64) []*models.TaxonomyModel {
	return idx.modelsByBrand[brandID]
}

// BrandInCategoryByName finds a brand by canonical name within a
// partition, used by the classifier to narrow ambiguous brand names.
func (idx *Index) BrandInCategoryByName(category, canonicalName string) (*models.TaxonomyBrand, bool) {
	for _, b := range idx.brandsByCategory[category] {
		if b.CanonicalName == canonicalName {
			return b, true
		}
	}
	return nil, false
}
