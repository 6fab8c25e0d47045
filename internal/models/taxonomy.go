package models

// VehicleCategory is one partition of the reference taxonomy.
// A brand belongs to exactly one partition; a brand NAME may appear
// under several partitions when a manufacturer spans categories.
type VehicleCategory struct {
	ID   int64  `json:"id"`
	Name string `json:"name"` // car, motorcycle, truck
}

// TaxonomyBrand is a curated reference brand scoped to a category.
type TaxonomyBrand struct {
	ID            int64  `json:"id"`
	CategoryID    int64  `json:"categoryId"`
	Name          string `json:"name"`
	CanonicalName string `json:"canonicalName"` // diacritic-free uppercase
	SearchKey     string `json:"searchKey"`     // canonical, alphanumeric only
}

// TaxonomyModel is a curated reference model scoped to a brand.
type TaxonomyModel struct {
	ID            int64  `json:"id"`
	BrandID       int64  `json:"brandId"`
	Name          string `json:"name"`
	BaseName      string `json:"baseName"`
	Variant       string `json:"variant,omitempty"`
	SearchKey     string `json:"searchKey"`
	BaseSearchKey string `json:"baseSearchKey"`
	// ReferencePrice is the official reference price used for the
	// discount computation, when available.
	ReferencePrice *float64 `json:"referencePrice,omitempty"`
}
