package normalize

import (
	"strings"

	"github.com/ybycrew/leilaoapp-sub000/internal/textutil"
)

// BrandModelSplit is the result of splitting a combined string such as
// "CHEVROLET/CORSA" into its brand and model halves.
type BrandModelSplit struct {
	Brand string
	Model string
}

// partsVocabulary flags accessory/part listings that leak into brand
// fields. A split candidate whose side matches this set is rejected.
var partsVocabulary = map[string]struct{}{
	"SUCATA":      {},
	"SUCATAS":     {},
	"PECA":        {},
	"PECAS":       {},
	"MOTOR":       {},
	"CAMBIO":      {},
	"LOTE":        {},
	"LOTES":       {},
	"DIVERSOS":    {},
	"ACESSORIO":   {},
	"ACESSORIOS":  {},
	"CARCACA":     {},
	"CHASSIS":     {},
	"DOCUMENTO":   {},
	"DOCUMENTOS":  {},
	"PNEU":        {},
	"PNEUS":       {},
	"RODA":        {},
	"RODAS":       {},
	"BATERIA":     {},
	"EQUIPAMENTO": {},
	"FERRAMENTA":  {},
	"FERRAMENTAS": {},
}

// SeparateCombinedBrandModel splits strings like "BRAND/MODEL" or
// "BRAND - MODEL" into their halves using slash, dash, or
// brand-then-allcaps heuristics. It returns nil when no plausible
// split exists, when either side is purely numeric, or when a side
// matches the known parts vocabulary.
func (e *Engine) SeparateCombinedBrandModel(text string) *BrandModelSplit {
	canonical := textutil.ToCanonicalUpper(text)
	if canonical == "" {
		return nil
	}

	// Slash split: first slash wins.
	if i := strings.IndexByte(canonical, '/'); i > 0 {
		if split := e.validateSplit(canonical[:i], canonical[i+1:]); split != nil {
			return split
		}
	}

	// Spaced dash avoids breaking dashed brand names apart.
	if i := strings.Index(canonical, " - "); i > 0 {
		if split := e.validateSplit(canonical[:i], canonical[i+3:]); split != nil {
			return split
		}
	}

	// Brand followed by allcaps words: try one- then two-token brand
	// prefixes against the taxonomy. Runs before the bare-dash split so
	// dashed brand names like MERCEDES-BENZ stay whole.
	tokens := strings.Fields(canonical)
	for take := 1; take <= 2 && take < len(tokens); take++ {
		prefix := strings.Join(tokens[:take], " ")
		res := e.ResolveBrand(prefix, "")
		if !res.Matched {
			continue
		}
		rest := strings.Join(tokens[take:], " ")
		if split := e.validateSplit(res.CanonicalBrand, rest); split != nil {
			return split
		}
	}

	// Bare dash only when the left side resolves to a known brand.
	if i := strings.IndexByte(canonical, '-'); i > 0 {
		left, right := canonical[:i], canonical[i+1:]
		if res := e.ResolveBrand(left, ""); res.Matched {
			if split := e.validateSplit(res.CanonicalBrand, right); split != nil {
				return split
			}
		}
	}

	return nil
}

func (e *Engine) validateSplit(brand, model string) *BrandModelSplit {
	brand = strings.TrimSpace(brand)
	model = strings.TrimSpace(model)
	if brand == "" || model == "" {
		return nil
	}
	if isPurelyNumeric(brand) || isPurelyNumeric(model) {
		return nil
	}
	if inPartsVocabulary(brand) || inPartsVocabulary(model) {
		return nil
	}
	return &BrandModelSplit{Brand: brand, Model: model}
}

func isPurelyNumeric(s string) bool {
	digits := 0
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case r == ' ' || r == '.' || r == ',':
		default:
			return false
		}
	}
	return digits > 0
}

func inPartsVocabulary(s string) bool {
	for _, tok := range strings.Fields(s) {
		if _, ok := partsVocabulary[tok]; ok {
			return true
		}
	}
	return false
}
