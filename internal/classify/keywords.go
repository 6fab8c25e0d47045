package classify

import "github.com/ybycrew/leilaoapp-sub000/internal/models"

// Scored keyword lists per category. Car is the implicit default and
// carries no list. Scores reflect how specific a keyword is: longer
// and more distinctive keywords score higher, within the 50-90 band
// the title layer is allowed to emit.
var motorcycleKeywords = map[string]int{
	"MOTO":        85,
	"MOTOCICLETA": 90,
	"MOTONETA":    88,
	"CICLOMOTOR":  88,
	"SCOOTER":     85,
	"TRICICLO":    80,
	"QUADRICICLO": 80,
	"CB":          75,
	"CG":          75,
	"CBR":         78,
	"XRE":         78,
	"XR":          72,
	"BIZ":         78,
	"POP":         72,
	"BROS":        78,
	"TITAN":       76,
	"FAN":         74,
	"HORNET":      80,
	"FAZER":       78,
	"FACTOR":      78,
	"YBR":         76,
	"XTZ":         78,
	"TENERE":      80,
	"LANDER":      78,
	"CROSSER":     78,
	"NINJA":       80,
	"BANDIT":      80,
	"HAYABUSA":    85,
	"GSX":         75,
	"CRF":         76,
	"PCX":         76,
	"NMAX":        76,
	"XMAX":        76,
	"BURGMAN":     80,
	"METEOR":      76,
	"HIMALAYAN":   82,
}

var truckKeywords = map[string]int{
	"CAMINHAO":      90,
	"CARRETA":       85,
	"CAVALO":        78,
	"BITREM":        85,
	"RODOTREM":      85,
	"TRUCK":         80,
	"TOCO":          76,
	"BASCULANTE":    82,
	"GRANELEIRO":    82,
	"SIDER":         78,
	"MUNCK":         80,
	"GUINCHO":       76,
	"PLATAFORMA":    72,
	"FRIGORIFICO":   80,
	"TANQUE":        72,
	"BETONEIRA":     82,
	"COMPACTADOR":   80,
	"ATEGO":         85,
	"ACCELO":        85,
	"AXOR":          85,
	"ACTROS":        85,
	"CONSTELLATION": 88,
	"WORKER":        80,
	"DELIVERY":      76,
	"CARGO":         74,
	"STRALIS":       85,
	"TECTOR":        85,
	"DAF":           76,
	"FH":            72,
	"FM":            72,
}

var vanKeywords = map[string]int{
	"VAN":      80,
	"FURGAO":   85,
	"MINIVAN":  85,
	"SPRINTER": 85,
	"DUCATO":   85,
	"MASTER":   78,
	"TRANSIT":  82,
	"KOMBI":    85,
	"BOXER":    80,
	"JUMPER":   82,
	"JUMPY":    82,
	"EXPERT":   76,
	"DOBLO":    78,
	"PARTNER":  76,
	"BERLINGO": 82,
	"DAILY":    78,
}

// keywordLists in precedence order: the first list with any match
// decides the category, regardless of what the later lists would have
// scored. Trucks are rarer and their keywords more specific, so the
// truck list outranks the motorcycle list when both match the same
// title; the van list ranks last.
var keywordLists = []struct {
	vtype    models.VehicleType
	keywords map[string]int
}{
	{models.VehicleTypeTruck, truckKeywords},
	{models.VehicleTypeMotorcycle, motorcycleKeywords},
	{models.VehicleTypeVan, vanKeywords},
}
