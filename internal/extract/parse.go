package extract

import (
	"strconv"
	"strings"
	"time"
)

// Numeric fields arrive as locale-formatted text: "R$ 15.000,50",
// "15,000.50", "32.500 km". Parsing is tolerant and returns nil on
// anything unparseable; a lot with nil numerics is still persisted.

// ParseLocalizedFloat parses a price-like string. Currency symbols and
// unit suffixes are ignored; both comma-decimal and dot-decimal
// formats are accepted.
func ParseLocalizedFloat(s string) *float64 {
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case r >= '0' && r <= '9', r == '.', r == ',', r == '-':
			return r
		default:
			return -1
		}
	}, s)
	cleaned = strings.TrimRight(strings.TrimLeft(cleaned, ".,"), ".,")
	if cleaned == "" || !strings.ContainsAny(cleaned, "0123456789") {
		return nil
	}

	lastDot := strings.LastIndexByte(cleaned, '.')
	lastComma := strings.LastIndexByte(cleaned, ',')

	switch {
	case lastDot >= 0 && lastComma >= 0:
		// Whichever separator comes last is the decimal one.
		if lastComma > lastDot {
			cleaned = strings.ReplaceAll(cleaned, ".", "")
			cleaned = strings.Replace(cleaned, ",", ".", 1)
		} else {
			cleaned = strings.ReplaceAll(cleaned, ",", "")
		}
	case lastComma >= 0:
		// A single comma is decimal when at most two digits follow,
		// otherwise it is a thousands separator.
		if len(cleaned)-lastComma-1 <= 2 && strings.Count(cleaned, ",") == 1 {
			cleaned = strings.Replace(cleaned, ",", ".", 1)
		} else {
			cleaned = strings.ReplaceAll(cleaned, ",", "")
		}
	case lastDot >= 0:
		// Same rule for a lone dot, except "1.000" style groups of
		// three read as thousands.
		if len(cleaned)-lastDot-1 == 3 || strings.Count(cleaned, ".") > 1 {
			cleaned = strings.ReplaceAll(cleaned, ".", "")
		}
	}

	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return nil
	}
	return &v
}

// ParseYear extracts a model/manufacture year, enforcing the
// 1950..currentYear+1 bounds. Returns 0 when no plausible year exists.
func ParseYear(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	// Tolerate "2015/2016" pairs by taking the first component.
	if i := strings.IndexByte(s, '/'); i > 0 {
		s = s[:i]
	}
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
	if len(digits) < 4 {
		return 0
	}
	year, err := strconv.Atoi(digits[:4])
	if err != nil {
		return 0
	}
	if year < 1950 || year > time.Now().Year()+1 {
		return 0
	}
	return year
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"02/01/2006 15:04:05",
	"02/01/2006 15:04",
	"02/01/2006",
	"02/01/06",
}

// ParseAuctionDate accepts ISO-like and slash-delimited day/month/year
// formats. An unparsable date yields nil, which keeps the lot
// includable in the future-only filter. That permissive default is
// deliberate.
func ParseAuctionDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}
