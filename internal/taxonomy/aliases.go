package taxonomy

// brandAliases maps hand-curated synonym search keys to the canonical
// brand name used by the reference taxonomy. Keys are search-key form
// (uppercase, alphanumeric only).
var brandAliases = map[string]string{
	"VW":           "VOLKSWAGEN",
	"VOLKS":        "VOLKSWAGEN",
	"VWC":          "VOLKSWAGEN", // truck division badge
	"GM":           "CHEVROLET",
	"GMCHEVROLET":  "CHEVROLET",
	"CHEVY":        "CHEVROLET",
	"MB":           "MERCEDES-BENZ",
	"MERCEDES":     "MERCEDES-BENZ",
	"MERCEDESBENS": "MERCEDES-BENZ",
	"MBENZ":        "MERCEDES-BENZ",
	"HD":           "HARLEY-DAVIDSON",
	"HARLEY":       "HARLEY-DAVIDSON",
	"LANDROVER":    "LAND ROVER",
	"CAOACHERY":    "CHERY",
	"KIAMOTORS":    "KIA",
	"ASTONMARTIN":  "ASTON MARTIN",
	"ALFA":         "ALFA ROMEO",
	"CITROEN":      "CITROEN",
	"SSANGYONG":    "SSANGYONG",
	"ROYALENFIELD": "ROYAL ENFIELD",
	"IVECOFIAT":    "IVECO",
}

// AliasCanonical resolves a hand-curated synonym search key to its
// canonical brand name. The empty string means no alias exists.
func AliasCanonical(searchKey string) (string, bool) {
	name, ok := brandAliases[searchKey]
	return name, ok
}
