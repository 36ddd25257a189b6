// Package eligibility applies jurisdiction- and age-dependent import rules.
// The determination is a pure function of (vehicle, country, category,
// region, evaluation date); the evaluation date comes from the request
// context so tests can pin time.
package eligibility

import (
	"context"
	"fmt"
	"log/slog"

	"importintel/internal/resolver"
	dErrors "importintel/pkg/domain-errors"
	stringsutil "importintel/pkg/platform/strings"
	"importintel/pkg/requestcontext"
)

// Engine evaluates eligibility against a versioned rule set.
type Engine struct {
	rules  RuleSet
	logger *slog.Logger
}

// NewEngine constructs an engine over the given rule set.
func NewEngine(rules RuleSet, logger *slog.Logger) *Engine {
	return &Engine{rules: rules, logger: logger}
}

// Compute determines import eligibility for a vehicle into a destination
// country. Unmodeled jurisdictions fail hard with unsupported_country: an
// incorrect "eligible" has real legal and financial consequences, so the
// engine never assumes another jurisdiction's rules apply.
func (e *Engine) Compute(ctx context.Context, vehicle resolver.VehicleIdentity, country string, category VehicleCategory, region string) (Result, error) {
	if !category.IsValid() {
		return Result{}, dErrors.New(dErrors.CodeInvalidInput, fmt.Sprintf("unknown vehicle category %q", category))
	}
	if vehicle.ManufactureYear <= 0 {
		return Result{}, dErrors.New(dErrors.CodeInvalidInput, "manufacture year unknown, eligibility cannot be determined")
	}

	evalDate := requestcontext.Now(ctx)
	rule, ok := e.rules.Select(country, category, evalDate)
	if !ok {
		return Result{}, dErrors.New(dErrors.CodeUnsupportedCountry,
			fmt.Sprintf("no eligibility rule for %s/%s", country, category))
	}

	age := evalDate.Year() - vehicle.ManufactureYear

	result := e.evaluate(rule, age)

	if overlay, ok := e.rules.Overlay(country, region); ok {
		merged := append(result.SpecialRequirements, overlay.AdditionalRequirements...)
		result.SpecialRequirements = stringsutil.DedupeAndTrim(merged)
		result.ComplianceCost = result.ComplianceCost.Add(overlay.FeeDelta)
	}

	if e.logger != nil {
		e.logger.DebugContext(ctx, "eligibility computed",
			"country", country,
			"category", category,
			"vehicle_age", age,
			"eligible", result.Eligible,
			"rule_applied", result.RuleApplied,
		)
	}
	return result, nil
}

// Alternatives returns the modeled countries, other than exclude, into which
// the vehicle is currently eligible under the base rule or an exemption. The
// walk reuses Compute so version selection and exemptions apply the same way
// they do for a direct determination; overlays are regional and do not
// affect the country-level answer.
func (e *Engine) Alternatives(ctx context.Context, vehicle resolver.VehicleIdentity, category VehicleCategory, exclude string) []string {
	var eligible []string
	for _, country := range e.rules.Countries() {
		if country == exclude {
			continue
		}
		result, err := e.Compute(ctx, vehicle, country, category, "")
		if err != nil || !result.Eligible {
			continue
		}
		eligible = append(eligible, country)
	}
	return eligible
}

// evaluate applies the base age thresholds, then exemptions in declared
// order when the base fails. The first exemption whose own thresholds are
// satisfied overrides the result to eligible.
func (e *Engine) evaluate(rule Rule, age int) Result {
	baseEligible := age >= rule.MinimumAgeYears &&
		(rule.MaximumAgeYears == nil || age <= *rule.MaximumAgeYears)

	if baseEligible {
		return Result{
			Eligible:            true,
			RuleApplied:         rule.ID,
			SpecialRequirements: cloneStrings(rule.SpecialRequirements),
			ComplianceCost:      rule.ComplianceCost,
			ProcessingTimeWeeks: rule.ProcessingTimeWeeks,
		}
	}

	for _, exemption := range rule.Exemptions {
		if !exemptionApplies(exemption, age) {
			continue
		}
		requirements := cloneStrings(rule.SpecialRequirements)
		requirements = stringsutil.DedupeAndTrim(append(requirements, exemption.Conditions...))
		return Result{
			Eligible:            true,
			RuleApplied:         string(exemption.Type),
			SpecialRequirements: requirements,
			ComplianceCost:      exemption.ComplianceCost,
			ProcessingTimeWeeks: exemption.ProcessingTimeWeeks,
		}
	}

	return Result{
		Eligible:            false,
		RuleApplied:         rule.ID,
		SpecialRequirements: cloneStrings(rule.SpecialRequirements),
		ComplianceCost:      rule.ComplianceCost,
		ProcessingTimeWeeks: rule.ProcessingTimeWeeks,
	}
}

// exemptionApplies checks an exemption's machine-checkable thresholds. The
// switch is exhaustive over the modeled schemes; an unknown scheme never
// applies.
func exemptionApplies(exemption Exemption, age int) bool {
	switch exemption.Type {
	case ExemptionShowOrDisplay, ExemptionEnthusiast, ExemptionOldtimer, ExemptionSpecialInterest:
		return age >= exemption.MinimumAgeYears
	default:
		return false
	}
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
