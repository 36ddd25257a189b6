package costing

import (
	"github.com/shopspring/decimal"

	"importintel/internal/eligibility"
)

// RateCard bundles the fee schedules and shipping lanes the calculator
// consults. Production code uses DefaultRateCard; tests construct narrower
// cards.
type RateCard struct {
	Schedules map[string]FeeSchedule
	Lanes     []ShippingLane
	// DefaultLaneCost applies when no lane is modeled for the pair. The
	// resulting shipping figure is flagged as an estimate.
	DefaultLaneCost decimal.Decimal
}

// Schedule returns the fee schedule for a destination country.
func (rc RateCard) Schedule(country string) (FeeSchedule, bool) {
	schedule, ok := rc.Schedules[country]
	return schedule, ok
}

// Lane returns the shipping cost for (origin, destination) and whether the
// figure is an estimate from the default lane.
func (rc RateCard) Lane(origin, destination string) (cost decimal.Decimal, estimated bool) {
	for _, lane := range rc.Lanes {
		if lane.OriginCountry == origin && lane.DestinationCountry == destination {
			return lane.Cost, false
		}
	}
	return rc.DefaultLaneCost, true
}

func rate(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func amountPtr(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

// DefaultRateCard returns the built-in rate card. Duty and consumption-tax
// rates are expressed as fractions (0.05 = 5%).
func DefaultRateCard() RateCard {
	return RateCard{
		Schedules: map[string]FeeSchedule{
			"USA": {
				Country: "USA", Currency: "USD",
				DutyRates: map[eligibility.VehicleCategory]decimal.Decimal{
					eligibility.CategoryPassenger:  rate("0.025"),
					eligibility.CategoryCommercial: rate("0.25"),
					eligibility.CategoryMotorcycle: rate("0.024"),
				},
				ConsumptionTaxRate: decimal.Zero, // no federal VAT; state sales tax is out of scope
				RegistrationFee:    decimal.NewFromInt(300),
			},
			"Australia": {
				Country: "Australia", Currency: "AUD",
				DutyRates: map[eligibility.VehicleCategory]decimal.Decimal{
					eligibility.CategoryPassenger:  rate("0.05"),
					eligibility.CategoryCommercial: rate("0.05"),
					eligibility.CategoryMotorcycle: decimal.Zero,
				},
				ConsumptionTaxRate: rate("0.10"),
				LuxuryThreshold:    amountPtr(80567),
				LuxuryRate:         rate("0.33"),
				RegistrationFee:    decimal.NewFromInt(850),
			},
			"Canada": {
				Country: "Canada", Currency: "CAD",
				DutyRates: map[eligibility.VehicleCategory]decimal.Decimal{
					eligibility.CategoryPassenger:  rate("0.061"),
					eligibility.CategoryCommercial: rate("0.061"),
					eligibility.CategoryMotorcycle: decimal.Zero,
				},
				ConsumptionTaxRate: rate("0.05"),
				RegistrationFee:    decimal.NewFromInt(400),
			},
			"UK": {
				Country: "UK", Currency: "GBP",
				DutyRates: map[eligibility.VehicleCategory]decimal.Decimal{
					eligibility.CategoryPassenger:  rate("0.10"),
					eligibility.CategoryCommercial: rate("0.10"),
					eligibility.CategoryMotorcycle: rate("0.06"),
				},
				ConsumptionTaxRate: rate("0.20"),
				RegistrationFee:    decimal.NewFromInt(55),
			},
			"Germany": {
				Country: "Germany", Currency: "EUR",
				DutyRates: map[eligibility.VehicleCategory]decimal.Decimal{
					eligibility.CategoryPassenger:  rate("0.10"),
					eligibility.CategoryCommercial: rate("0.10"),
					eligibility.CategoryMotorcycle: rate("0.06"),
				},
				ConsumptionTaxRate: rate("0.19"),
				RegistrationFee:    decimal.NewFromInt(150),
			},
			"New Zealand": {
				Country: "New Zealand", Currency: "NZD",
				DutyRates: map[eligibility.VehicleCategory]decimal.Decimal{
					eligibility.CategoryPassenger:  decimal.Zero,
					eligibility.CategoryCommercial: decimal.Zero,
					eligibility.CategoryMotorcycle: decimal.Zero,
				},
				ConsumptionTaxRate: rate("0.15"),
				RegistrationFee:    decimal.NewFromInt(600),
			},
			"Ireland": {
				Country: "Ireland", Currency: "EUR",
				DutyRates: map[eligibility.VehicleCategory]decimal.Decimal{
					eligibility.CategoryPassenger:  rate("0.10"),
					eligibility.CategoryCommercial: rate("0.10"),
					eligibility.CategoryMotorcycle: rate("0.06"),
				},
				ConsumptionTaxRate: rate("0.23"),
				RegistrationFee:    decimal.NewFromInt(900),
			},
		},
		Lanes: []ShippingLane{
			{OriginCountry: "JP", DestinationCountry: "USA", Cost: decimal.NewFromInt(2200)},
			{OriginCountry: "JP", DestinationCountry: "Australia", Cost: decimal.NewFromInt(1800)},
			{OriginCountry: "JP", DestinationCountry: "Canada", Cost: decimal.NewFromInt(2400)},
			{OriginCountry: "JP", DestinationCountry: "UK", Cost: decimal.NewFromInt(1600)},
			{OriginCountry: "JP", DestinationCountry: "Germany", Cost: decimal.NewFromInt(1700)},
			{OriginCountry: "JP", DestinationCountry: "New Zealand", Cost: decimal.NewFromInt(1500)},
			{OriginCountry: "JP", DestinationCountry: "Ireland", Cost: decimal.NewFromInt(1650)},
			{OriginCountry: "DE", DestinationCountry: "USA", Cost: decimal.NewFromInt(1900)},
			{OriginCountry: "GB", DestinationCountry: "USA", Cost: decimal.NewFromInt(1850)},
			{OriginCountry: "US", DestinationCountry: "Australia", Cost: decimal.NewFromInt(2600)},
		},
		DefaultLaneCost: decimal.NewFromInt(2500),
	}
}
