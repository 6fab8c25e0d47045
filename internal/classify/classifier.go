// Package classify decides a lot's vehicle type from multiple weighted
// signal sources: the reference taxonomy, title keywords, and
// characteristic cross-validation. The classifier is state-free; all
// lookups go through the injected read-only taxonomy index.
package classify

import (
	"fmt"
	"strings"

	"github.com/ybycrew/leilaoapp-sub000/internal/models"
	"github.com/ybycrew/leilaoapp-sub000/internal/normalize"
	"github.com/ybycrew/leilaoapp-sub000/internal/taxonomy"
	"github.com/ybycrew/leilaoapp-sub000/internal/textutil"
)

const (
	taxonomyConfidence = 95
	fallbackConfidence = 50
	// Cap applied when the title keywords disagree with the taxonomy.
	conflictCap = 80
	// Fixed penalty for a failed characteristic cross-validation.
	characteristicPenalty = 15
	// A truck below this price is flagged as implausible.
	truckPriceFloor = 20000
	// A motorcycle above this mileage is flagged as implausible.
	motorcycleMileageCeiling = 150000
)

// Input carries every signal a lot exposes to the classifier.
type Input struct {
	Title    string
	Brand    string
	Model    string
	FuelType string
	Mileage  *float64
	Price    *float64
}

// Classifier resolves vehicle types with confidence scoring.
type Classifier struct {
	idx    *taxonomy.Index
	engine *normalize.Engine
}

// New builds a classifier over the shared taxonomy index and engine.
func New(idx *taxonomy.Index, engine *normalize.Engine) *Classifier {
	return &Classifier{idx: idx, engine: engine}
}

// hardExceptions pins specific brand+model combinations to a type
// regardless of other signals. Keys are canonical brand, then the
// model's base search key.
var hardExceptions = map[string]map[string]models.VehicleType{
	"HONDA": {
		"CIVIC": models.VehicleTypeCar,
		"FIT":   models.VehicleTypeCar,
		"CITY":  models.VehicleTypeCar,
	},
	"VOLKSWAGEN": {
		"KOMBI": models.VehicleTypeVan,
	},
	"MERCEDESBENZ": {
		"SPRINTER": models.VehicleTypeVan,
	},
	"FIAT": {
		"DUCATO": models.VehicleTypeVan,
	},
}

// Classify runs the layered decision. It always returns a usable
// result; the weakest outcome is the car fallback at confidence 50.
func (c *Classifier) Classify(in Input) models.ClassificationResult {
	taxonomyRes := c.taxonomyLayer(in)
	keywordRes := c.keywordLayer(in.Title)

	var result models.ClassificationResult
	switch {
	case taxonomyRes != nil && keywordRes != nil && taxonomyRes.Type != keywordRes.Type:
		// Conflict: the taxonomy wins but confidence is capped and the
		// disagreement is kept for auditability.
		result = *taxonomyRes
		if result.Confidence > conflictCap {
			result.Confidence = conflictCap
		}
		result.Reasons = append(result.Reasons,
			fmt.Sprintf("title keywords suggested %s (confidence %d), taxonomy kept", keywordRes.Type, keywordRes.Confidence))
	case taxonomyRes != nil:
		result = *taxonomyRes
	case keywordRes != nil:
		result = *keywordRes
	default:
		result = models.ClassificationResult{
			Type:       models.VehicleTypeCar,
			Confidence: fallbackConfidence,
			Source:     models.SourceFallback,
			Reasons:    []string{"no taxonomy or keyword signal, defaulting to car"},
		}
	}

	if exc, ok := c.hardException(in); ok {
		if exc != result.Type {
			result.Reasons = append(result.Reasons,
				fmt.Sprintf("brand+model exception forces %s over %s", exc, result.Type))
			result.Type = exc
			result.Source = models.SourceCharacteristics
			result.Confidence = taxonomyConfidence
		}
	}

	result = c.crossValidate(in, result)

	if result.Confidence < 0 {
		result.Confidence = 0
	}
	if result.Confidence > 100 {
		result.Confidence = 100
	}
	return result
}

// taxonomyLayer resolves the brand against the taxonomy. A brand in a
// single category partition decides outright; a brand spanning several
// partitions is narrowed through each partition's model index.
func (c *Classifier) taxonomyLayer(in Input) *models.ClassificationResult {
	if in.Brand == "" {
		return nil
	}
	res := c.engine.ResolveBrand(in.Brand, "")
	if !res.Matched {
		return nil
	}

	categories := c.idx.CategoriesOfBrandName(res.CanonicalBrand)
	switch len(categories) {
	case 0:
		return nil
	case 1:
		return &models.ClassificationResult{
			Type:       categoryType(categories[0]),
			Confidence: taxonomyConfidence,
			Source:     models.SourceTaxonomy,
			Reasons:    []string{fmt.Sprintf("brand %s belongs to the %s partition", res.CanonicalBrand, categories[0])},
		}
	}

	// Ambiguous brand: a model hit in one partition narrows it.
	if in.Model != "" {
		for _, cat := range categories {
			brand, ok := c.idx.BrandInCategoryByName(cat, res.CanonicalBrand)
			if !ok {
				continue
			}
			if mres := c.engine.ResolveModel(brand, in.Model); mres.Matched {
				return &models.ClassificationResult{
					Type:       categoryType(cat),
					Confidence: taxonomyConfidence,
					Source:     models.SourceTaxonomy,
					Reasons: []string{fmt.Sprintf("brand %s is ambiguous, model %s narrowed to %s",
						res.CanonicalBrand, mres.CanonicalModel, cat)},
				}
			}
		}
	}

	return nil
}

// keywordLayer scans the title against the per-category keyword lists.
// Precedence is by list, not by score: the first list in keywordLists
// with any match decides the category, so a truck keyword can never be
// displaced by a higher-scoring motorcycle or van keyword. Scores only
// rank keywords within the winning list.
func (c *Classifier) keywordLayer(title string) *models.ClassificationResult {
	if title == "" {
		return nil
	}
	canonical := textutil.ToCanonicalUpper(title)
	tokens := make(map[string]struct{})
	for _, tok := range strings.Fields(canonical) {
		tokens[tok] = struct{}{}
	}

	for _, list := range keywordLists {
		score, keyword := bestKeyword(canonical, tokens, list.keywords)
		if score == 0 {
			continue
		}
		return &models.ClassificationResult{
			Type:       list.vtype,
			Confidence: score,
			Source:     models.SourceTitleKeyword,
			Reasons:    []string{fmt.Sprintf("title keyword %q scored %d for %s", keyword, score, list.vtype)},
		}
	}
	return nil
}

// bestKeyword matches short keywords as whole tokens and longer ones
// as substrings, returning the highest score found.
func bestKeyword(canonicalTitle string, tokens map[string]struct{}, keywords map[string]int) (int, string) {
	bestScore, bestKw := 0, ""
	for kw, score := range keywords {
		matched := false
		if len(kw) <= 4 {
			_, matched = tokens[kw]
		} else {
			matched = strings.Contains(canonicalTitle, kw)
		}
		if matched && score > bestScore {
			bestScore, bestKw = score, kw
		}
	}
	return bestScore, bestKw
}

// hardException looks up the pinned brand+model table. Keys are the
// brand's search key and the model base's search key so raw and
// canonical spellings both hit.
func (c *Classifier) hardException(in Input) (models.VehicleType, bool) {
	if in.Brand == "" || in.Model == "" {
		return "", false
	}
	brand := c.engine.ResolveBrand(in.Brand, "")
	brandKey := textutil.BuildSearchKey(brand.CanonicalBrand)
	byModel, ok := hardExceptions[brandKey]
	if !ok {
		return "", false
	}
	base := textutil.ExtractModelBase(in.Model)
	vtype, ok := byModel[textutil.BuildSearchKey(base.BaseName)]
	return vtype, ok
}

// crossValidate applies category-specific plausibility checks. A
// failed check reduces confidence by a fixed penalty but never flips
// the decision.
func (c *Classifier) crossValidate(in Input, result models.ClassificationResult) models.ClassificationResult {
	fuel := textutil.ToCanonicalUpper(in.FuelType)

	switch result.Type {
	case models.VehicleTypeMotorcycle:
		if fuel == "DIESEL" {
			result.Confidence -= characteristicPenalty
			result.Reasons = append(result.Reasons, "diesel fuel is implausible for a motorcycle")
		}
		if in.Mileage != nil && *in.Mileage > motorcycleMileageCeiling {
			result.Confidence -= characteristicPenalty
			result.Reasons = append(result.Reasons,
				fmt.Sprintf("mileage %.0f km is implausible for a motorcycle", *in.Mileage))
		}
	case models.VehicleTypeTruck:
		if in.Price != nil && *in.Price > 0 && *in.Price < truckPriceFloor {
			result.Confidence -= characteristicPenalty
			result.Reasons = append(result.Reasons,
				fmt.Sprintf("price %.2f is below the plausible truck floor", *in.Price))
		}
	}
	return result
}

func categoryType(category string) models.VehicleType {
	switch category {
	case taxonomy.CategoryCar:
		return models.VehicleTypeCar
	case taxonomy.CategoryMotorcycle:
		return models.VehicleTypeMotorcycle
	case taxonomy.CategoryTruck:
		return models.VehicleTypeTruck
	default:
		return models.VehicleTypeOther
	}
}
