package intelligence

import (
	"github.com/shopspring/decimal"

	"importintel/internal/costing"
	"importintel/internal/eligibility"
	"importintel/internal/resolver"
)

// Request carries everything a full intelligence computation needs beyond
// the resolved vehicle itself.
type Request struct {
	DestinationCountry string
	Region             string
	Category           eligibility.VehicleCategory
	DeclaredPrice      decimal.Decimal
	// PriceCurrency is the currency the declared price is quoted in. Empty
	// means it is already in the destination currency.
	PriceCurrency string
}

// Intelligence is the assembled answer for one (vehicle, destination) pair.
// It is derived data: every field can be recomputed from the reference
// tables, so cached copies are safe to discard at any time.
type Intelligence struct {
	Vehicle            resolver.VehicleIdentity `json:"vehicle"`
	DestinationCountry string                   `json:"destination_country"`
	Region             string                   `json:"region,omitempty"`
	Eligibility        eligibility.Result       `json:"eligibility"`
	Costs              costing.CostBreakdown    `json:"costs"`
	// TimelineWeeks estimates door-to-registration time: compliance
	// processing plus ocean transit.
	TimelineWeeks int      `json:"timeline_weeks"`
	NextSteps     []string `json:"next_steps"`
	// Alternatives lists other modeled countries the vehicle is currently
	// eligible for, sorted alphabetically.
	Alternatives []string `json:"alternatives,omitempty"`
}
