package models

import "time"

// VehicleType is the resolved category of a lot.
type VehicleType string

const (
	VehicleTypeCar        VehicleType = "car"
	VehicleTypeMotorcycle VehicleType = "motorcycle"
	VehicleTypeTruck      VehicleType = "truck"
	VehicleTypeVan        VehicleType = "van"
	VehicleTypeOther      VehicleType = "other"
)

// CanonicalLot represents one scraped auction item after extraction.
// ExternalID combined with the auction house id forms the dedup/upsert key.
type CanonicalLot struct {
	ExternalID string `json:"externalId"`
	LotNumber  string `json:"lotNumber,omitempty"`
	Title      string `json:"title"`

	// Brand/Model/Version hold the raw scraped values until the
	// normalization engine rewrites them with canonical forms.
	Brand   string `json:"brand,omitempty"`
	Model   string `json:"model,omitempty"`
	Version string `json:"version,omitempty"`

	YearManufacture int         `json:"yearManufacture,omitempty"`
	YearModel       int         `json:"yearModel,omitempty"`
	VehicleType     VehicleType `json:"vehicleType,omitempty"`
	FuelType        string      `json:"fuelType,omitempty"`

	Mileage        *float64 `json:"mileage,omitempty"`
	CurrentBid     *float64 `json:"currentBid,omitempty"`
	MinimumBid     *float64 `json:"minimumBid,omitempty"`
	AppraisedValue *float64 `json:"appraisedValue,omitempty"`

	State string `json:"state,omitempty"`
	City  string `json:"city,omitempty"`

	// AuctionDate drives the future-auctions-only filter. A nil date
	// keeps the lot includable (permissive by design, see extract pkg).
	AuctionDate *time.Time `json:"auctionDate,omitempty"`

	AuctionType  string   `json:"auctionType,omitempty"`
	HasFinancing bool     `json:"hasFinancing"`
	OriginalURL  string   `json:"originalUrl,omitempty"`
	ThumbnailURL string   `json:"thumbnailUrl,omitempty"`
	Images       []string `json:"images,omitempty"`
	Description  string   `json:"description,omitempty"`
}

// Vehicle is the persisted form of a lot, as stored in the vehicles table.
type Vehicle struct {
	ID             int64      `json:"id"`
	AuctionHouseID int64      `json:"auctionHouseId"`
	CanonicalLot
	DiscountPct *float64   `json:"discountPct,omitempty"`
	DealScore   *float64   `json:"dealScore,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// AuctionHouse identifies one crawled auction site.
type AuctionHouse struct {
	ID            int64      `json:"id"`
	Name          string     `json:"name"`
	Slug          string     `json:"slug"`
	SiteURL       string     `json:"siteUrl"`
	Strategy      string     `json:"strategy"` // "html" or "query"
	LastCrawledAt *time.Time `json:"lastCrawledAt,omitempty"`
}
