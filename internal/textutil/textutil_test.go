package textutil

import (
	"reflect"
	"testing"
)

func TestToCanonicalUpper(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"diacritics stripped", "Citroën C4 Pallas", "CITROEN C4 PALLAS"},
		{"portuguese accents", "CAMINHÃO BAÚ", "CAMINHAO BAU"},
		{"whitespace collapsed", "  fiat   uno  ", "FIAT UNO"},
		{"already canonical", "VOLKSWAGEN", "VOLKSWAGEN"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ToCanonicalUpper(tt.input); got != tt.want {
				t.Errorf("ToCanonicalUpper(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestToCanonicalUpperIsIdempotent(t *testing.T) {
	inputs := []string{"Citroën", "São Paulo", "MERCEDES-BENZ", "l'automobile"}
	for _, in := range inputs {
		once := ToCanonicalUpper(in)
		twice := ToCanonicalUpper(once)
		if once != twice {
			t.Errorf("ToCanonicalUpper not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}

func TestBuildSearchKey(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Mercedes-Benz", "MERCEDESBENZ"},
		{"VW / Volkswagen", "VWVOLKSWAGEN"},
		{"Citroën C4", "CITROENC4"},
		{"C 180", "C180"},
		{"   ", ""},
	}

	for _, tt := range tests {
		if got := BuildSearchKey(tt.input); got != tt.want {
			t.Errorf("BuildSearchKey(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestExtractModelBase(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  ModelBase
	}{
		{
			"trim token splits",
			"CIVIC EXL 16V FLEX",
			ModelBase{BaseName: "CIVIC", Variant: "EXL 16V FLEX"},
		},
		{
			"single letter plus number stays whole",
			"C 180",
			ModelBase{BaseName: "C 180"},
		},
		{
			"numeric token after word splits",
			"UNO 1.0",
			ModelBase{BaseName: "UNO", Variant: "1.0"},
		},
		{
			"no marker keeps everything",
			"GRAND SIENA",
			ModelBase{BaseName: "GRAND SIENA"},
		},
		{
			"fuel marker",
			"GOL TRENDLINE FLEX",
			ModelBase{BaseName: "GOL", Variant: "TRENDLINE FLEX"},
		},
		{
			"lowercase input canonicalized",
			"corolla xei 2.0 flex",
			ModelBase{BaseName: "COROLLA", Variant: "XEI 2.0 FLEX"},
		},
		{
			"empty",
			"",
			ModelBase{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractModelBase(tt.input); got != tt.want {
				t.Errorf("ExtractModelBase(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Leilões Santos & Cia", "leiloes-santos-cia"},
		{"  Mega Leilões  ", "mega-leiloes"},
		{"ABC123", "abc123"},
	}
	for _, tt := range tests {
		if got := Slugify(tt.input); got != tt.want {
			t.Errorf("Slugify(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestPickField(t *testing.T) {
	source := map[string]any{
		"idLote":    "123",
		"Titulo":    "FIAT UNO",
		"lance":     float64(15000),
		"parcelado": "S",
		"fotos":     []any{"a.jpg", map[string]any{"url": "b.jpg"}},
	}

	if got := PickString(source, "externalId", "idLote", "id"); got != "123" {
		t.Errorf("PickString id = %q, want 123", got)
	}
	// Case-insensitive second pass.
	if got := PickString(source, "titulo"); got != "FIAT UNO" {
		t.Errorf("PickString titulo = %q, want FIAT UNO", got)
	}
	if got := PickFloat(source, "valorLance", "lance"); got == nil || *got != 15000 {
		t.Errorf("PickFloat lance = %v, want 15000", got)
	}
	if !PickBool(source, "parcelado") {
		t.Error("PickBool parcelado = false, want true")
	}
	if got := PickSlice(source, "imagens", "fotos"); !reflect.DeepEqual(got, []string{"a.jpg", "b.jpg"}) {
		t.Errorf("PickSlice fotos = %v", got)
	}
	if _, ok := PickField(source, "missing"); ok {
		t.Error("PickField found a missing key")
	}
	if _, ok := PickField(nil, "any"); ok {
		t.Error("PickField on nil source should miss")
	}
}
