// Package textutil holds the pure text normalization helpers shared by
// the normalization engine, the classifier and the extraction layer.
// Everything here is deterministic and locale-independent.
package textutil

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// ToCanonicalUpper strips diacritics, case-folds to uppercase ASCII and
// collapses runs of whitespace into single spaces.
func ToCanonicalUpper(s string) string {
	out, _, err := transform.String(stripMarks, s)
	if err != nil {
		// Transform failures fall back to the raw input; uppercasing
		// still applies so callers get a usable value.
		out = s
	}
	out = strings.ToUpper(out)
	return strings.Join(strings.Fields(out), " ")
}

// BuildSearchKey reduces a string to its canonical uppercase form with
// every non-alphanumeric character removed. Used for index lookups.
func BuildSearchKey(s string) string {
	canonical := ToCanonicalUpper(s)
	var b strings.Builder
	b.Grow(len(canonical))
	for _, r := range canonical {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ModelBase is the result of splitting a model string into its base
// name and trailing trim/version text.
type ModelBase struct {
	BaseName string
	Variant  string
}

// ExtractModelBase splits a model string at the first token that looks
// like a trim/version marker, or at a numeric token that does not
// immediately follow a single-letter stem. "C 180" therefore stays one
// base-name unit while "CIVIC EXL 16V FLEX" splits after "CIVIC".
func ExtractModelBase(s string) ModelBase {
	canonical := ToCanonicalUpper(s)
	tokens := strings.Fields(canonical)
	if len(tokens) == 0 {
		return ModelBase{}
	}

	splitAt := -1
	for i := 1; i < len(tokens); i++ {
		if IsTrimToken(tokens[i]) {
			splitAt = i
			break
		}
		if isNumericToken(tokens[i]) && !isSingleLetter(tokens[i-1]) {
			splitAt = i
			break
		}
	}

	if splitAt < 0 {
		return ModelBase{BaseName: canonical}
	}
	return ModelBase{
		BaseName: strings.Join(tokens[:splitAt], " "),
		Variant:  strings.Join(tokens[splitAt:], " "),
	}
}

// isNumericToken accepts plain integers and dotted displacements like
// "1.0" or "2.0"; anything with a letter is not numeric.
func isNumericToken(tok string) bool {
	if tok == "" {
		return false
	}
	digits := 0
	for _, r := range tok {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case r == '.' || r == ',':
		default:
			return false
		}
	}
	return digits > 0
}

func isSingleLetter(tok string) bool {
	return len(tok) == 1 && tok[0] >= 'A' && tok[0] <= 'Z'
}

// Slugify turns a display name into a lowercase dash-separated slug,
// used for auction house lookups by normalized name.
func Slugify(s string) string {
	key := ToCanonicalUpper(s)
	var b strings.Builder
	lastDash := true
	for _, r := range key {
		switch {
		case (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9'):
			if r >= 'A' && r <= 'Z' {
				r += 'a' - 'A'
			}
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
