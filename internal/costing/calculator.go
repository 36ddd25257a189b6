// Package costing computes a deterministic landed-cost breakdown from a
// resolved vehicle, its eligibility result, and a declared price. The
// computation order is fixed and rounding happens exactly once, at the end:
// rounding then summing intermediate values compounds drift, so components
// stay exact until the final pass.
//
// The computation is split in two: Quote covers everything that depends only
// on the vehicle, category, lane, and price, and Finalize folds in the
// compliance cost from the eligibility determination. The split lets callers
// run eligibility and quoting concurrently and join them at the single
// rounding pass.
package costing

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"importintel/internal/eligibility"
	"importintel/internal/resolver"
	dErrors "importintel/pkg/domain-errors"
)

// displayScale is the rounding applied to monetary outputs, in decimal
// places.
const displayScale = 2

// Quote holds the exact, unrounded components that do not depend on the
// eligibility determination.
type Quote struct {
	VehiclePrice      decimal.Decimal
	Shipping          decimal.Decimal
	Duty              decimal.Decimal
	ConsumptionTax    decimal.Decimal
	LuxuryTax         decimal.Decimal
	Registration      decimal.Decimal
	Currency          string
	ShippingEstimated bool
}

// Calculator computes landed costs against a static rate card.
type Calculator struct {
	rates  RateCard
	logger *slog.Logger
}

// NewCalculator constructs a calculator over the given rate card.
func NewCalculator(rates RateCard, logger *slog.Logger) *Calculator {
	return &Calculator{rates: rates, logger: logger}
}

// Compute builds the landed-cost breakdown. All outputs are in the
// destination currency; cross-currency conversion is a collaborator concern.
func (c *Calculator) Compute(
	ctx context.Context,
	vehicle resolver.VehicleIdentity,
	elig eligibility.Result,
	category eligibility.VehicleCategory,
	originCountry, destinationCountry string,
	declaredPrice decimal.Decimal,
) (CostBreakdown, error) {
	quote, err := c.Quote(ctx, vehicle, category, originCountry, destinationCountry, declaredPrice)
	if err != nil {
		return CostBreakdown{}, err
	}
	return c.Finalize(quote, elig.ComplianceCost)
}

// Currency returns the billing currency for a destination country. ok is
// false when the destination has no fee schedule.
func (c *Calculator) Currency(destinationCountry string) (string, bool) {
	schedule, ok := c.rates.Schedule(destinationCountry)
	if !ok {
		return "", false
	}
	return schedule.Currency, true
}

// Quote computes the eligibility-independent components, exact and
// unrounded.
func (c *Calculator) Quote(
	ctx context.Context,
	vehicle resolver.VehicleIdentity,
	category eligibility.VehicleCategory,
	originCountry, destinationCountry string,
	declaredPrice decimal.Decimal,
) (Quote, error) {
	if declaredPrice.IsNegative() {
		return Quote{}, dErrors.New(dErrors.CodeComputationOverflow, "declared price is negative")
	}

	schedule, ok := c.rates.Schedule(destinationCountry)
	if !ok {
		return Quote{}, dErrors.New(dErrors.CodeUnsupportedCountry,
			fmt.Sprintf("no fee schedule for %s", destinationCountry))
	}

	// Shipping is never omitted: a missing lane falls back to the generic
	// default and the figure is flagged as an estimate.
	shipping, estimated := c.rates.Lane(originCountry, destinationCountry)

	dutyRate, ok := schedule.DutyRates[category]
	if !ok {
		return Quote{}, dErrors.New(dErrors.CodeUnsupportedCountry,
			fmt.Sprintf("no duty rate for %s/%s", destinationCountry, category))
	}
	duty := declaredPrice.Mul(dutyRate)
	if duty.IsNegative() {
		return Quote{}, dErrors.New(dErrors.CodeComputationOverflow, "computed duty is negative")
	}

	taxableBase := declaredPrice.Add(duty).Add(shipping)
	consumptionTax := taxableBase.Mul(schedule.ConsumptionTaxRate)

	luxuryTax := decimal.Zero
	if schedule.LuxuryThreshold != nil {
		excess := declaredPrice.Sub(*schedule.LuxuryThreshold)
		if excess.IsPositive() {
			luxuryTax = excess.Mul(schedule.LuxuryRate)
		}
	}

	if c.logger != nil {
		c.logger.DebugContext(ctx, "cost quote computed",
			"origin", originCountry,
			"destination", destinationCountry,
			"make", vehicle.Make,
			"currency", schedule.Currency,
			"shipping_estimated", estimated,
		)
	}

	return Quote{
		VehiclePrice:      declaredPrice,
		Shipping:          shipping,
		Duty:              duty,
		ConsumptionTax:    consumptionTax,
		LuxuryTax:         luxuryTax,
		Registration:      schedule.RegistrationFee,
		Currency:          schedule.Currency,
		ShippingEstimated: estimated,
	}, nil
}

// Finalize folds the compliance cost into the quote and performs the single
// rounding pass: each displayed component is rounded here, and the total is
// the rounded sum of the unrounded components, so the breakdown never
// accumulates per-component rounding drift.
func (c *Calculator) Finalize(quote Quote, complianceCost decimal.Decimal) (CostBreakdown, error) {
	total := quote.VehiclePrice.
		Add(quote.Shipping).
		Add(quote.Duty).
		Add(quote.ConsumptionTax).
		Add(quote.LuxuryTax).
		Add(complianceCost).
		Add(quote.Registration)
	if total.IsNegative() {
		return CostBreakdown{}, dErrors.New(dErrors.CodeComputationOverflow, "computed total is negative")
	}

	return CostBreakdown{
		VehiclePrice:      quote.VehiclePrice.Round(displayScale),
		Shipping:          quote.Shipping.Round(displayScale),
		Duty:              quote.Duty.Round(displayScale),
		ConsumptionTax:    quote.ConsumptionTax.Round(displayScale),
		LuxuryTax:         quote.LuxuryTax.Round(displayScale),
		Compliance:        complianceCost.Round(displayScale),
		Registration:      quote.Registration.Round(displayScale),
		Total:             total.Round(displayScale),
		Currency:          quote.Currency,
		ShippingEstimated: quote.ShippingEstimated,
	}, nil
}
