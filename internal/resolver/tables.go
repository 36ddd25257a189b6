package resolver

// Tables holds the static reference data the resolver matches against.
// Production code uses DefaultTables; tests may construct narrower tables.
type Tables struct {
	WMI     []WMIRecord
	Chassis map[string]ChassisRecord
	// Aliases maps normalized free-text names to a canonical chassis code.
	Aliases map[string]string
}

// DefaultTables returns the built-in reference data. The chassis table leans
// toward the JDM platforms that dominate age-exempt import queries; the WMI
// table covers the manufacturers those platforms plus common non-JDM queries
// resolve through.
func DefaultTables() Tables {
	return Tables{
		WMI:     defaultWMI,
		Chassis: defaultChassis,
		Aliases: defaultAliases,
	}
}

var defaultWMI = []WMIRecord{
	{Prefix: "JT", Make: "Toyota", OriginCountry: "JP", HasChassisData: true},
	{Prefix: "JN1", Make: "Nissan", OriginCountry: "JP", HasChassisData: true},
	{Prefix: "JM1", Make: "Mazda", OriginCountry: "JP", HasChassisData: true},
	{Prefix: "JH", Make: "Honda", OriginCountry: "JP", HasChassisData: true},
	{Prefix: "JF1", Make: "Subaru", OriginCountry: "JP", HasChassisData: true},
	{Prefix: "JA3", Make: "Mitsubishi", OriginCountry: "JP", HasChassisData: true},
	{Prefix: "WDB", Make: "Mercedes-Benz", OriginCountry: "DE", HasChassisData: false},
	{Prefix: "WBA", Make: "BMW", OriginCountry: "DE", HasChassisData: false},
	{Prefix: "WAU", Make: "Audi", OriginCountry: "DE", HasChassisData: false},
	{Prefix: "WVW", Make: "Volkswagen", OriginCountry: "DE", HasChassisData: false},
	{Prefix: "SAJ", Make: "Jaguar", OriginCountry: "GB", HasChassisData: false},
	{Prefix: "ZFF", Make: "Ferrari", OriginCountry: "IT", HasChassisData: false},
	{Prefix: "VF1", Make: "Renault", OriginCountry: "FR", HasChassisData: false},
	{Prefix: "KMH", Make: "Hyundai", OriginCountry: "KR", HasChassisData: false},
	{Prefix: "1HG", Make: "Honda", OriginCountry: "US", HasChassisData: false},
	{Prefix: "1FT", Make: "Ford", OriginCountry: "US", HasChassisData: false},
}

var defaultChassis = map[string]ChassisRecord{
	"JZA80": {
		Code: "JZA80", Make: "Toyota", Model: "Supra",
		YearFrom: 1993, YearTo: 2002,
		Engine: "2JZ-GTE", Drivetrain: "RWD", OriginCountry: "JP",
		ModificationNotes: "large aftermarket; stock internals support significant power increases",
		VehicleCategory:   "passenger",
	},
	"JZX100": {
		Code: "JZX100", Make: "Toyota", Model: "Chaser",
		YearFrom: 1996, YearTo: 2001,
		Engine: "1JZ-GTE", Drivetrain: "RWD", OriginCountry: "JP",
		ModificationNotes: "popular drift platform",
		VehicleCategory:   "passenger",
	},
	"JZZ30": {
		Code: "JZZ30", Make: "Toyota", Model: "Soarer",
		YearFrom: 1991, YearTo: 2000,
		Engine: "1JZ-GTE", Drivetrain: "RWD", OriginCountry: "JP",
		ModificationNotes: "shares running gear with JZX chassis",
		VehicleCategory:   "passenger",
	},
	"AE86": {
		Code: "AE86", Make: "Toyota", Model: "Sprinter Trueno",
		YearFrom: 1983, YearTo: 1987,
		Engine: "4A-GE", Drivetrain: "RWD", OriginCountry: "JP",
		ModificationNotes: "lightweight; engine swaps common",
		VehicleCategory:   "passenger",
	},
	"BNR32": {
		Code: "BNR32", Make: "Nissan", Model: "Skyline GT-R",
		YearFrom: 1989, YearTo: 1994,
		Engine: "RB26DETT", Drivetrain: "AWD", OriginCountry: "JP",
		ModificationNotes: "RB26 responds well to turbo upgrades",
		VehicleCategory:   "passenger",
	},
	"BNR34": {
		Code: "BNR34", Make: "Nissan", Model: "Skyline GT-R",
		YearFrom: 1999, YearTo: 2002,
		Engine: "RB26DETT", Drivetrain: "AWD", OriginCountry: "JP",
		ModificationNotes: "collector-grade; values climbing",
		VehicleCategory:   "passenger",
	},
	"S13": {
		Code: "S13", Make: "Nissan", Model: "Silvia",
		YearFrom: 1988, YearTo: 1993,
		Engine: "SR20DET", Drivetrain: "RWD", OriginCountry: "JP",
		ModificationNotes: "entry drift platform",
		VehicleCategory:   "passenger",
	},
	"S15": {
		Code: "S15", Make: "Nissan", Model: "Silvia",
		YearFrom: 1999, YearTo: 2002,
		Engine: "SR20DET", Drivetrain: "RWD", OriginCountry: "JP",
		ModificationNotes: "final Silvia generation",
		VehicleCategory:   "passenger",
	},
	"FD3S": {
		Code: "FD3S", Make: "Mazda", Model: "RX-7",
		YearFrom: 1992, YearTo: 2002,
		Engine: "13B-REW", Drivetrain: "RWD", OriginCountry: "JP",
		ModificationNotes: "rotary requires specialist maintenance",
		VehicleCategory:   "passenger",
	},
	"NA6CE": {
		Code: "NA6CE", Make: "Mazda", Model: "Roadster",
		YearFrom: 1989, YearTo: 1993,
		Engine: "B6ZE", Drivetrain: "RWD", OriginCountry: "JP",
		ModificationNotes: "broad aftermarket",
		VehicleCategory:   "passenger",
	},
	"EK9": {
		Code: "EK9", Make: "Honda", Model: "Civic Type R",
		YearFrom: 1997, YearTo: 2000,
		Engine: "B16B", Drivetrain: "FWD", OriginCountry: "JP",
		ModificationNotes: "high-revving NA platform",
		VehicleCategory:   "passenger",
	},
	"DC2": {
		Code: "DC2", Make: "Honda", Model: "Integra Type R",
		YearFrom: 1995, YearTo: 2001,
		Engine: "B18C", Drivetrain: "FWD", OriginCountry: "JP",
		ModificationNotes: "track-focused from factory",
		VehicleCategory:   "passenger",
	},
	"GC8": {
		Code: "GC8", Make: "Subaru", Model: "Impreza WRX STI",
		YearFrom: 1992, YearTo: 2000,
		Engine: "EJ20", Drivetrain: "AWD", OriginCountry: "JP",
		ModificationNotes: "rally pedigree; gearbox is the weak point",
		VehicleCategory:   "passenger",
	},
	"CP9A": {
		Code: "CP9A", Make: "Mitsubishi", Model: "Lancer Evolution",
		YearFrom: 1998, YearTo: 2001,
		Engine: "4G63T", Drivetrain: "AWD", OriginCountry: "JP",
		ModificationNotes: "Evo V/VI platform",
		VehicleCategory:   "passenger",
	},
}

var defaultAliases = map[string]string{
	"supra":            "JZA80",
	"toyota supra":     "JZA80",
	"chaser":           "JZX100",
	"soarer":           "JZZ30",
	"hachiroku":        "AE86",
	"trueno":           "AE86",
	"skyline":          "BNR32",
	"skyline gtr":      "BNR32",
	"gt-r":             "BNR32",
	"skyline r34":      "BNR34",
	"r34 gtr":          "BNR34",
	"silvia":           "S15",
	"180sx":            "S13",
	"rx7":              "FD3S",
	"rx-7":             "FD3S",
	"miata":            "NA6CE",
	"mx-5":             "NA6CE",
	"roadster":         "NA6CE",
	"civic type r":     "EK9",
	"integra type r":   "DC2",
	"wrx sti":          "GC8",
	"impreza":          "GC8",
	"lancer evolution": "CP9A",
	"lancer evo":       "CP9A",
}
