package costing

import (
	"github.com/shopspring/decimal"

	"importintel/internal/eligibility"
)

// CostBreakdown is the landed-cost result. All amounts are in the
// destination country's currency; the calculator never converts.
type CostBreakdown struct {
	VehiclePrice   decimal.Decimal `json:"vehicle_price"`
	Shipping       decimal.Decimal `json:"shipping"`
	Duty           decimal.Decimal `json:"duty"`
	ConsumptionTax decimal.Decimal `json:"consumption_tax"`
	LuxuryTax      decimal.Decimal `json:"luxury_tax"`
	Compliance     decimal.Decimal `json:"compliance"`
	Registration   decimal.Decimal `json:"registration"`
	Total          decimal.Decimal `json:"total"`
	Currency       string          `json:"currency"`
	// ShippingEstimated is set when no lane is modeled for the origin and
	// the generic default was used. Shipping is never omitted.
	ShippingEstimated bool `json:"shipping_estimated"`
}

// FeeSchedule is a destination country's static rate card.
type FeeSchedule struct {
	Country            string
	Currency           string
	DutyRates          map[eligibility.VehicleCategory]decimal.Decimal
	ConsumptionTaxRate decimal.Decimal
	// LuxuryThreshold is nil for countries without a luxury tax.
	LuxuryThreshold *decimal.Decimal
	LuxuryRate      decimal.Decimal
	RegistrationFee decimal.Decimal
}

// ShippingLane is a static (origin, destination) freight quote in the
// destination currency.
type ShippingLane struct {
	OriginCountry      string
	DestinationCountry string
	Cost               decimal.Decimal
}
