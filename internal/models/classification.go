package models

// ClassificationSource tells which layer produced a classification.
type ClassificationSource string

const (
	SourceTaxonomy        ClassificationSource = "taxonomy"
	SourceTitleKeyword    ClassificationSource = "title-keyword"
	SourceCharacteristics ClassificationSource = "characteristics"
	SourceFallback        ClassificationSource = "fallback"
)

// ClassificationResult is the outcome of classifying one lot. It is
// computed per lot and never persisted; only the resolved VehicleType
// makes it into the vehicles table.
type ClassificationResult struct {
	Type       VehicleType          `json:"type"`
	Confidence int                  `json:"confidence"` // 0-100
	Source     ClassificationSource `json:"source"`
	Reasons    []string             `json:"reasons,omitempty"`
}
