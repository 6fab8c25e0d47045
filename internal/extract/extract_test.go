package extract

import (
	"testing"
	"time"
)

func TestParseLocalizedFloat(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  float64
		nilOK bool
	}{
		{"brazilian currency", "R$ 15.000,50", 15000.50, false},
		{"brazilian thousands only", "R$ 32.500", 32500, false},
		{"us format", "15,000.50", 15000.50, false},
		{"plain", "15000.5", 15000.5, false},
		{"comma decimal", "1500,75", 1500.75, false},
		{"km suffix", "123.456 km", 123456, false},
		{"integer", "42", 42, false},
		{"garbage", "consulte o edital", 0, true},
		{"empty", "", 0, true},
		{"separators only", "R$ ,.", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseLocalizedFloat(tt.input)
			if tt.nilOK {
				if got != nil {
					t.Fatalf("ParseLocalizedFloat(%q) = %v, want nil", tt.input, *got)
				}
				return
			}
			if got == nil || *got != tt.want {
				t.Fatalf("ParseLocalizedFloat(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseYear(t *testing.T) {
	current := time.Now().Year()
	tests := []struct {
		input string
		want  int
	}{
		{"2015", 2015},
		{"2015/2016", 2015},
		{"1950", 1950},
		{"1949", 0},
		{"3000", 0},
		{"abc", 0},
		{"", 0},
	}
	for _, tt := range tests {
		if got := ParseYear(tt.input); got != tt.want {
			t.Errorf("ParseYear(%q) = %d, want %d", tt.input, got, tt.want)
		}
	}
	if got := ParseYear(time.Now().AddDate(1, 0, 0).Format("2006")); got != current+1 {
		t.Errorf("next-year model should be allowed, got %d", got)
	}
}

func TestParseAuctionDate(t *testing.T) {
	iso := ParseAuctionDate("2026-09-15")
	if iso == nil || iso.Year() != 2026 || iso.Month() != time.September || iso.Day() != 15 {
		t.Fatalf("ISO date parse failed: %v", iso)
	}

	slash := ParseAuctionDate("15/09/2026 14:00")
	if slash == nil || slash.Day() != 15 || slash.Month() != time.September {
		t.Fatalf("slash date parse failed: %v", slash)
	}

	if got := ParseAuctionDate("a definir"); got != nil {
		t.Fatalf("unparseable date should be nil, got %v", got)
	}
	if got := ParseAuctionDate(""); got != nil {
		t.Fatalf("empty date should be nil, got %v", got)
	}
}

func TestTransformRawLot(t *testing.T) {
	raw := map[string]any{
		"idLote":       "L-9912",
		"titulo":       "  VW/GOL 1.0 TRENDLINE FLEX ",
		"marca":        "VW",
		"modelo":       "GOL 1.0",
		"anoFabricacao": "2018",
		"anoModelo":    "2019",
		"quilometragem": "85.431 km",
		"lanceAtual":   "R$ 23.500,00",
		"avaliacao":    float64(41200),
		"uf":           "SP",
		"cidade":       "Campinas",
		"dataLeilao":   "20/10/2026 10:00",
		"parcelado":    "S",
		"link":         "https://example.com/lote/9912",
		"fotos":        []any{"https://cdn.example.com/1.jpg", "https://cdn.example.com/2.jpg"},
	}

	lot := TransformRawLot(raw)
	if lot == nil {
		t.Fatal("expected lot, got nil")
	}
	if lot.ExternalID != "L-9912" {
		t.Errorf("external id = %q", lot.ExternalID)
	}
	if lot.Title != "VW/GOL 1.0 TRENDLINE FLEX" {
		t.Errorf("title not trimmed: %q", lot.Title)
	}
	if lot.YearManufacture != 2018 || lot.YearModel != 2019 {
		t.Errorf("years = %d/%d", lot.YearManufacture, lot.YearModel)
	}
	if lot.Mileage == nil || *lot.Mileage != 85431 {
		t.Errorf("mileage = %v", lot.Mileage)
	}
	if lot.CurrentBid == nil || *lot.CurrentBid != 23500 {
		t.Errorf("current bid = %v", lot.CurrentBid)
	}
	if lot.AppraisedValue == nil || *lot.AppraisedValue != 41200 {
		t.Errorf("appraised = %v", lot.AppraisedValue)
	}
	if lot.AuctionDate == nil || lot.AuctionDate.Day() != 20 || lot.AuctionDate.Month() != time.October {
		t.Errorf("auction date = %v", lot.AuctionDate)
	}
	if !lot.HasFinancing {
		t.Error("expected financing flag")
	}
	if lot.ThumbnailURL != "https://cdn.example.com/1.jpg" {
		t.Errorf("thumbnail fallback = %q", lot.ThumbnailURL)
	}
	if len(lot.Images) != 2 {
		t.Errorf("images = %v", lot.Images)
	}
}

func TestTransformRawLotDiscards(t *testing.T) {
	if lot := TransformRawLot(nil); lot != nil {
		t.Fatal("nil payload should discard")
	}
	if lot := TransformRawLot(map[string]any{"titulo": "SEM ID"}); lot != nil {
		t.Fatal("missing external id should discard")
	}
	if lot := TransformRawLot(map[string]any{"id": "1", "titulo": "   "}); lot != nil {
		t.Fatal("blank title should discard")
	}
}

func TestTransformRawLotToleratesGarbageNumerics(t *testing.T) {
	raw := map[string]any{
		"id":     "77",
		"titulo": "FIAT UNO MILLE",
		"lance":  "consulte",
		"km":     "n/d",
		"data":   "a definir",
	}

	lot := TransformRawLot(raw)
	if lot == nil {
		t.Fatal("garbage numerics must not discard the lot")
	}
	if lot.CurrentBid != nil || lot.Mileage != nil {
		t.Errorf("expected nil numerics, got bid=%v km=%v", lot.CurrentBid, lot.Mileage)
	}
	if lot.AuctionDate != nil {
		t.Errorf("expected nil date, got %v", lot.AuctionDate)
	}
	if lot.State != DefaultState || lot.City != DefaultCity {
		t.Errorf("expected location defaults, got %q/%q", lot.State, lot.City)
	}
}
