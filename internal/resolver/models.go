package resolver

// ResolutionType records which strategy produced a vehicle identity.
type ResolutionType string

const (
	ResolutionVIN     ResolutionType = "vin"
	ResolutionChassis ResolutionType = "chassis"
	ResolutionModel   ResolutionType = "model"
)

// IsValid checks if the resolution type is one of the modeled strategies.
func (t ResolutionType) IsValid() bool {
	switch t {
	case ResolutionVIN, ResolutionChassis, ResolutionModel:
		return true
	}
	return false
}

// VehicleIdentity is the canonical output of a resolution. It is immutable
// once produced; a fresh value is created per resolution call.
type VehicleIdentity struct {
	Make            string         `json:"make"`
	Model           string         `json:"model"`
	ManufactureYear int            `json:"manufacture_year"`
	ChassisCode     string         `json:"chassis_code,omitempty"`
	OriginCountry   string         `json:"origin_country"`
	ResolutionType  ResolutionType `json:"resolution_type"`
	// ConfidenceScore is 0-100. Exact chassis matches score 100; alias and
	// generic-spec VIN matches score lower.
	ConfidenceScore int `json:"confidence_score"`
}

// ChassisRecord is static reference data describing a vehicle platform.
type ChassisRecord struct {
	Code              string
	Make              string
	Model             string
	YearFrom          int
	YearTo            int
	Engine            string
	Drivetrain        string
	OriginCountry     string
	ModificationNotes string
	VehicleCategory   string
}

// WMIRecord maps a world-manufacturer-identifier prefix to its manufacturer.
type WMIRecord struct {
	Prefix        string
	Make          string
	OriginCountry string
	// HasChassisData marks manufacturers for which the chassis table carries
	// real platform specs. VIN hits for the rest fall back to generic specs
	// and take a confidence penalty.
	HasChassisData bool
}
