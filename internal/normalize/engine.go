// Package normalize resolves freeform brand/model text against the
// reference taxonomy. Resolution never fails: every call returns a
// best-effort value plus a Matched flag so callers can decide how much
// to trust it.
package normalize

import (
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/ybycrew/leilaoapp-sub000/internal/models"
	"github.com/ybycrew/leilaoapp-sub000/internal/taxonomy"
	"github.com/ybycrew/leilaoapp-sub000/internal/textutil"
)

// Minimum search-key length for containment matches. Shorter keys
// produce spurious substring hits ("GO" matching "DODGE" and so on).
const minContainmentLen = 3

const brandCacheSize = 1024

// BrandResolution is the outcome of resolving a raw brand string.
type BrandResolution struct {
	Matched        bool
	CanonicalBrand string
	Brand          *models.TaxonomyBrand
	Category       string
}

// ModelResolution is the outcome of resolving a raw model string
// against an already-resolved brand.
type ModelResolution struct {
	Matched        bool
	CanonicalModel string
	Variant        string
	Model          *models.TaxonomyModel
}

// Engine performs taxonomy-backed normalization. It is read-only after
// construction and safe for shared use within a run.
type Engine struct {
	idx   *taxonomy.Index
	cache *lru.Cache[string, BrandResolution]
}

// NewEngine builds an engine over a loaded taxonomy index.
func NewEngine(idx *taxonomy.Index) *Engine {
	cache, _ := lru.New[string, BrandResolution](brandCacheSize)
	return &Engine{idx: idx, cache: cache}
}

// ResolveBrand resolves raw brand text to a canonical taxonomy entry.
// Matching order, first match wins: hand-curated alias table, exact
// search-key lookup, case-insensitive canonical name, containment with
// a minimum length guard. Without a category hint every partition is
// searched and the first hit returned; that ambiguity is resolved
// later by the classifier.
func (e *Engine) ResolveBrand(raw, categoryHint string) BrandResolution {
	key := textutil.BuildSearchKey(raw)
	if key == "" {
		return BrandResolution{CanonicalBrand: textutil.ToCanonicalUpper(raw)}
	}

	cacheKey := key + "|" + categoryHint
	if cached, ok := e.cache.Get(cacheKey); ok {
		return cached
	}

	res := e.resolveBrandUncached(raw, key, categoryHint)
	e.cache.Add(cacheKey, res)
	return res
}

func (e *Engine) resolveBrandUncached(raw, key, categoryHint string) BrandResolution {
	partitions := e.partitions(categoryHint)

	// 1. Hand-curated aliases.
	if canonical, ok := taxonomy.AliasCanonical(key); ok {
		aliasKey := textutil.BuildSearchKey(canonical)
		for _, cat := range partitions {
			if b, found := e.idx.BrandBySearchKey(cat, aliasKey); found {
				return BrandResolution{Matched: true, CanonicalBrand: b.CanonicalName, Brand: b, Category: cat}
			}
		}
		// Alias known but the reference data has no row for this
		// partition set; the canonical name is still trustworthy.
		return BrandResolution{Matched: true, CanonicalBrand: canonical}
	}

	// 2. Exact search-key lookup.
	for _, cat := range partitions {
		if b, found := e.idx.BrandBySearchKey(cat, key); found {
			return BrandResolution{Matched: true, CanonicalBrand: b.CanonicalName, Brand: b, Category: cat}
		}
	}

	// 3. Case-insensitive canonical name match.
	canonicalRaw := textutil.ToCanonicalUpper(raw)
	for _, cat := range partitions {
		for _, b := range e.idx.BrandsIn(cat) {
			if b.CanonicalName == canonicalRaw {
				return BrandResolution{Matched: true, CanonicalBrand: b.CanonicalName, Brand: b, Category: cat}
			}
		}
	}

	// 4. Containment, guarded against short keys.
	if len(key) >= minContainmentLen {
		for _, cat := range partitions {
			for _, b := range e.idx.BrandsIn(cat) {
				if len(b.SearchKey) < minContainmentLen {
					continue
				}
				if strings.Contains(b.SearchKey, key) || strings.Contains(key, b.SearchKey) {
					return BrandResolution{Matched: true, CanonicalBrand: b.CanonicalName, Brand: b, Category: cat}
				}
			}
		}
	}

	return BrandResolution{CanonicalBrand: canonicalRaw}
}

func (e *Engine) partitions(hint string) []string {
	if hint != "" {
		return []string{hint}
	}
	return e.idx.Categories()
}

// ResolveModel resolves raw model text scoped to an already-resolved
// brand, never globally. Unresolved models fall back to the canonical
// uppercase form of the extracted base name.
func (e *Engine) ResolveModel(brand *models.TaxonomyBrand, raw string) ModelResolution {
	base := textutil.ExtractModelBase(raw)
	fallback := ModelResolution{
		CanonicalModel: base.BaseName,
		Variant:        base.Variant,
	}
	if brand == nil || raw == "" {
		return fallback
	}

	candidates := dedupeKeys(
		textutil.BuildSearchKey(base.BaseName),
		textutil.BuildSearchKey(raw),
		textutil.BuildSearchKey(textutil.ToCanonicalUpper(base.BaseName)),
	)

	// Exact lookups first.
	for _, cand := range candidates {
		if m, found := e.idx.ModelBySearchKey(brand.ID, cand); found {
			return matchedModel(m, base.Variant)
		}
	}

	// Containment within the brand's models.
	for _, cand := range candidates {
		if len(cand) < minContainmentLen {
			continue
		}
		for _, m := range e.idx.ModelsOf(brand.ID) {
			mk := m.BaseSearchKey
			if mk == "" {
				mk = m.SearchKey
			}
			if len(mk) < minContainmentLen {
				continue
			}
			if strings.Contains(mk, cand) || strings.Contains(cand, mk) {
				return matchedModel(m, base.Variant)
			}
		}
	}

	return fallback
}

func matchedModel(m *models.TaxonomyModel, variant string) ModelResolution {
	canonical := textutil.ToCanonicalUpper(m.BaseName)
	if canonical == "" {
		canonical = textutil.ToCanonicalUpper(m.Name)
	}
	if variant == "" {
		variant = textutil.ToCanonicalUpper(m.Variant)
	}
	return ModelResolution{
		Matched:        true,
		CanonicalModel: canonical,
		Variant:        variant,
		Model:          m,
	}
}

func dedupeKeys(keys ...string) []string {
	seen := make(map[string]struct{}, len(keys))
	var out []string
	for _, k := range keys {
		if k == "" {
			continue
		}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	return out
}
