package textutil

import "strings"

// trimTokens is the closed set of trim, fuel, transmission and
// body-style markers that terminate a model's base name. Tokens are
// stored in canonical uppercase form.
var trimTokens = map[string]struct{}{}

func init() {
	for _, t := range trimTokenList {
		trimTokens[t] = struct{}{}
	}
}

// IsTrimToken reports whether tok (canonical uppercase) is a known
// trim/version marker.
func IsTrimToken(tok string) bool {
	_, ok := trimTokens[strings.ToUpper(tok)]
	return ok
}

var trimTokenList = []string{
	// Fuel
	"FLEX", "GASOLINA", "ALCOOL", "ETANOL", "DIESEL", "GNV", "HIBRIDO",
	"HYBRID", "ELETRICO", "ELECTRIC", "BIFUEL", "TOTALFLEX", "MPFI", "EFI",
	"TETRAFUEL",

	// Transmission
	"AUT", "AUTOMATICO", "AUTOMATIC", "AUTOMATIZADO", "MEC", "MECANICO",
	"MANUAL", "CVT", "DSG", "TIPTRONIC", "MULTITRONIC", "STRONIC",
	"POWERSHIFT", "AT", "MT", "AMT",

	// Engine / valvetrain
	"8V", "12V", "16V", "20V", "24V", "32V", "TURBO", "TSI", "TFSI", "TDI",
	"THP", "VVT", "VTEC", "DOHC", "SOHC", "ASPIRADO", "BITURBO", "SUPERCHARGED",
	"ECOBOOST", "FIREFLY", "MULTIAIR", "SKYACTIV", "HDI", "CRDI", "DCI",

	// Drivetrain
	"4X4", "4X2", "6X2", "6X4", "8X2", "8X4", "AWD", "RWD", "FWD", "QUATTRO",
	"XDRIVE", "4MATIC", "4WD", "TRACTION",

	// Body styles
	"SEDAN", "SEDA", "HATCH", "HATCHBACK", "PERUA", "WAGON", "SW", "COUPE",
	"CABRIOLET", "CONVERSIVEL", "PICAPE", "PICKUP", "FURGAO", "VAN", "MINIVAN",
	"CHASSI", "BAU", "CACAMBA", "CARROCERIA", "PRANCHA", "GRANELEIRO",

	// Cab styles (trucks/pickups)
	"CD", "CS", "CE", "CABINE", "DUPLA", "SIMPLES", "ESTENDIDA",

	// Door counts
	"2P", "3P", "4P", "5P", "2PTS", "4PTS",

	// Common Brazilian trim designations
	"LT", "LTZ", "LS", "LSE", "ADVANTAGE", "ACTIV", "PREMIER", "MIDNIGHT",
	"GL", "GLS", "GLX", "GLI", "GTI", "GTS", "GT", "CL", "CLI", "CLX",
	"SL", "SLE", "SLX", "SE", "SEL", "S", "SI", "EX", "EXL", "EXS", "LX",
	"LXL", "LXS", "DX", "XEI", "XRE", "XRS", "XLS", "XLT", "XL", "XLE", "XRX",
	"SRV", "SRX", "SR", "STD", "TRD", "ALTIS", "VVTI",
	"TITANIUM", "TREND", "FREESTYLE", "STORM", "WILDTRAK", "LIMITED",
	"LARAMIE", "LONGITUDE", "TRAILHAWK", "OVERLAND", "SAHARA", "RUBICON",
	"TRACKER", "SPIN", "ONIX", "PLUS", "PREMIUM", "INTENSE", "ICONIC",
	"ZEN", "LIFE", "AUTHENTIQUE", "EXPRESSION", "DYNAMIQUE", "EXCLUSIVE",
	"ATTRACTIVE", "ALLURE", "GRIFFE", "FELINE", "TENDANCE", "BUSINESS",
	"COMFORTLINE", "TRENDLINE", "HIGHLINE", "STARTLINE", "BLUEMOTION",
	"TRACK", "PEPPER", "SENSE", "DRIVE", "LIVE",
	"COMFORT", "STYLE", "VIBE", "IMPETUS", "AUDACE", "TORO",
	"FREEDOM", "ENDURANCE", "RANCH", "VOLCANO", "ULTRA", "HURRICANE",
	"ADVENTURE", "TREKKING", "WORKING", "HARDWORKING", "SPORTING", "ESSENCE",
	"ATTRACTION", "PRECISION", "PERFORMANCE", "INSPIRATION", "EXTREME",
	"EVOLUTION", "EVO", "ELEGANCE", "AMBITION", "AMBIENTE", "ATTRACTIVO",

	// Multi-purpose suffixes
	"PACK", "KIT", "TOP", "FULL", "COMPLETO", "BASICO", "OKM", "ZERO",
	"BLINDADO", "BLINDADA",

	// Motorcycle markers
	"ABS", "CBS", "ESD", "ESDD", "FAN", "START", "TITAN", "CARGO",
	"INJETADA", "CARBURADA",
}
