package eligibility

import (
	"time"

	"github.com/shopspring/decimal"
)

// VehicleCategory classifies the vehicle for rule selection.
type VehicleCategory string

const (
	CategoryPassenger  VehicleCategory = "passenger"
	CategoryCommercial VehicleCategory = "commercial"
	CategoryMotorcycle VehicleCategory = "motorcycle"
)

// IsValid checks if the vehicle category is valid.
func (c VehicleCategory) IsValid() bool {
	switch c {
	case CategoryPassenger, CategoryCommercial, CategoryMotorcycle:
		return true
	}
	return false
}

// ExemptionType is the closed set of exemption schemes the engine models.
// Evaluation switches exhaustively over these; an unknown type never applies.
type ExemptionType string

const (
	ExemptionShowOrDisplay   ExemptionType = "show_or_display"
	ExemptionEnthusiast      ExemptionType = "enthusiast"
	ExemptionOldtimer        ExemptionType = "oldtimer"
	ExemptionSpecialInterest ExemptionType = "special_interest"
)

// Rule is jurisdiction-specific reference data, versioned by EffectiveDate.
// The latest rule with EffectiveDate not after the evaluation date applies.
type Rule struct {
	ID                  string
	Country             string
	Category            VehicleCategory
	MinimumAgeYears     int
	MaximumAgeYears     *int // nil means no upper bound
	EmissionStandard    string
	SafetyStandard      string
	SpecialRequirements []string
	Exemptions          []Exemption // evaluated in declared order
	ComplianceCost      decimal.Decimal
	ProcessingTimeWeeks int
	EffectiveDate       time.Time
}

// Exemption is an alternative, narrower condition that can override an
// otherwise-failing base rule. It carries its own cost and processing time.
type Exemption struct {
	Type                ExemptionType
	MinimumAgeYears     int
	Conditions          []string
	ComplianceCost      decimal.Decimal
	ProcessingTimeWeeks int
}

// RegionOverlay adds requirements and fees for a sub-national region. An
// overlay can only add; it never relaxes the country-level decision.
type RegionOverlay struct {
	Country                string
	Region                 string
	AdditionalRequirements []string
	FeeDelta               decimal.Decimal
}

// Result is the derived eligibility determination. It is recomputed per
// query and never persisted as source of truth.
type Result struct {
	Eligible bool `json:"eligible"`
	// RuleApplied is the base rule ID or, when an exemption overrode the
	// base decision, that exemption's type.
	RuleApplied         string          `json:"rule_applied"`
	SpecialRequirements []string        `json:"special_requirements"`
	ComplianceCost      decimal.Decimal `json:"compliance_cost"`
	ProcessingTimeWeeks int             `json:"processing_time_weeks"`
}
