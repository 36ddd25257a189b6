package eligibility

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// RuleSet holds every rule version plus the region overlays. Production code
// uses DefaultRuleSet; tests construct narrower sets.
type RuleSet struct {
	Rules    []Rule
	Overlays []RegionOverlay
}

// Select returns the rule for (country, category) with the latest
// EffectiveDate not after the evaluation date. ok is false when the
// jurisdiction/category pair is not modeled at that date.
func (rs RuleSet) Select(country string, category VehicleCategory, at time.Time) (Rule, bool) {
	var best Rule
	found := false
	for _, rule := range rs.Rules {
		if rule.Country != country || rule.Category != category {
			continue
		}
		if rule.EffectiveDate.After(at) {
			continue
		}
		if !found || rule.EffectiveDate.After(best.EffectiveDate) {
			best = rule
			found = true
		}
	}
	return best, found
}

// Countries returns the distinct modeled destination countries, sorted.
func (rs RuleSet) Countries() []string {
	seen := make(map[string]struct{})
	var countries []string
	for _, rule := range rs.Rules {
		if _, ok := seen[rule.Country]; ok {
			continue
		}
		seen[rule.Country] = struct{}{}
		countries = append(countries, rule.Country)
	}
	sort.Strings(countries)
	return countries
}

// Overlay returns the overlay for (country, region), if one is modeled.
func (rs RuleSet) Overlay(country, region string) (RegionOverlay, bool) {
	if region == "" {
		return RegionOverlay{}, false
	}
	for _, overlay := range rs.Overlays {
		if overlay.Country == country && overlay.Region == region {
			return overlay, true
		}
	}
	return RegionOverlay{}, false
}

func intPtr(v int) *int { return &v }

func date(year, month, day int) time.Time {
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

// DefaultRuleSet returns the built-in jurisdiction rules. Costs are in the
// destination country's currency; the calculator never converts.
func DefaultRuleSet() RuleSet {
	return RuleSet{
		Rules: []Rule{
			// USA: the 25-year rule. Federalized at 25 years, so compliance
			// cost is zero once the base rule passes. The 2021 revision adds
			// the show-or-display path for 21+ year vehicles of historical or
			// technological significance.
			{
				ID: "usa-25-year", Country: "USA", Category: CategoryPassenger,
				MinimumAgeYears:  25,
				EmissionStandard: "EPA-exempt at 25 years",
				SafetyStandard:   "FMVSS-exempt at 25 years",
				SpecialRequirements: []string{
					"HS-7 declaration at port of entry",
					"EPA form 3520-1",
				},
				ComplianceCost:      decimal.Zero,
				ProcessingTimeWeeks: 4,
				EffectiveDate:       date(2015, 1, 1),
			},
			{
				ID: "usa-25-year", Country: "USA", Category: CategoryPassenger,
				MinimumAgeYears:  25,
				EmissionStandard: "EPA-exempt at 25 years",
				SafetyStandard:   "FMVSS-exempt at 25 years",
				SpecialRequirements: []string{
					"HS-7 declaration at port of entry",
					"EPA form 3520-1",
				},
				Exemptions: []Exemption{
					{
						Type:            ExemptionShowOrDisplay,
						MinimumAgeYears: 21,
						Conditions: []string{
							"approved NHTSA show-or-display application",
							"annual mileage limited to 2,500 miles",
						},
						ComplianceCost:      decimal.NewFromInt(4500),
						ProcessingTimeWeeks: 16,
					},
				},
				ComplianceCost:      decimal.Zero,
				ProcessingTimeWeeks: 4,
				EffectiveDate:       date(2021, 1, 1),
			},
			{
				ID: "usa-motorcycle", Country: "USA", Category: CategoryMotorcycle,
				MinimumAgeYears:     25,
				EmissionStandard:    "EPA-exempt at 25 years",
				SafetyStandard:      "FMVSS-exempt at 25 years",
				SpecialRequirements: []string{"HS-7 declaration at port of entry"},
				ComplianceCost:      decimal.Zero,
				ProcessingTimeWeeks: 3,
				EffectiveDate:       date(2015, 1, 1),
			},

			// Australia: 25-year concessional path with an enthusiast scheme
			// at the same threshold. The enthusiast path trades a register
			// entry for a shorter processing queue.
			{
				ID: "aus-25-year", Country: "Australia", Category: CategoryPassenger,
				MinimumAgeYears:  25,
				EmissionStandard: "ADR-exempt for concessional imports",
				SafetyStandard:   "state roadworthy inspection",
				SpecialRequirements: []string{
					"vehicle import approval before shipping",
					"asbestos inspection certificate",
				},
				Exemptions: []Exemption{
					{
						Type:            ExemptionEnthusiast,
						MinimumAgeYears: 25,
						Conditions: []string{
							"model listed on the SEVS register",
							"approved workshop compliance",
						},
						ComplianceCost:      decimal.NewFromInt(3500),
						ProcessingTimeWeeks: 10,
					},
				},
				ComplianceCost:      decimal.NewFromInt(2000),
				ProcessingTimeWeeks: 8,
				EffectiveDate:       date(2019, 12, 1),
			},

			// Canada: 15-year rule, no exemptions modeled.
			{
				ID: "can-15-year", Country: "Canada", Category: CategoryPassenger,
				MinimumAgeYears:  15,
				EmissionStandard: "exempt at 15 years",
				SafetyStandard:   "provincial safety inspection",
				SpecialRequirements: []string{
					"form 1 declaration at customs",
				},
				ComplianceCost:      decimal.NewFromInt(500),
				ProcessingTimeWeeks: 3,
				EffectiveDate:       date(2016, 1, 1),
			},

			// UK: no minimum age; vehicles under 10 years need Individual
			// Vehicle Approval, older ones register on historic evidence.
			{
				ID: "uk-registration", Country: "UK", Category: CategoryPassenger,
				MinimumAgeYears:  0,
				EmissionStandard: "IVA emissions test for vehicles under 10 years",
				SafetyStandard:   "IVA or MOT depending on age",
				SpecialRequirements: []string{
					"NOVA notification within 14 days",
					"DVLA first registration",
				},
				ComplianceCost:      decimal.NewFromInt(800),
				ProcessingTimeWeeks: 6,
				EffectiveDate:       date(2018, 4, 1),
			},

			// Germany: individual approval (§21 StVZO) for vehicles without
			// EU type approval; the oldtimer path at 30 years substitutes a
			// simpler appraisal.
			{
				ID: "de-individual-approval", Country: "Germany", Category: CategoryPassenger,
				MinimumAgeYears:  30,
				EmissionStandard: "exempt under oldtimer appraisal",
				SafetyStandard:   "TUV appraisal (§23 StVZO)",
				SpecialRequirements: []string{
					"H-plate appraisal report",
				},
				Exemptions:          nil,
				ComplianceCost:      decimal.NewFromInt(1200),
				ProcessingTimeWeeks: 6,
				EffectiveDate:       date(2017, 1, 1),
			},

			// New Zealand: special-interest path at 20 years over the
			// general entry-certification regime.
			{
				ID: "nz-entry-certification", Country: "New Zealand", Category: CategoryPassenger,
				MinimumAgeYears:  20,
				EmissionStandard: "exhaust emission rule 2007 thresholds",
				SafetyStandard:   "entry certification inspection",
				SpecialRequirements: []string{
					"border inspection for biosecurity",
				},
				Exemptions: []Exemption{
					{
						Type:            ExemptionSpecialInterest,
						MinimumAgeYears: 20,
						Conditions: []string{
							"special interest vehicle permit",
						},
						ComplianceCost:      decimal.NewFromInt(1800),
						ProcessingTimeWeeks: 7,
					},
				},
				ComplianceCost:      decimal.NewFromInt(1500),
				ProcessingTimeWeeks: 5,
				EffectiveDate:       date(2020, 3, 1),
			},

			// Ireland: registration-based like the UK; VRT dominates the
			// cost side and is handled by the calculator, not here.
			{
				ID: "ie-registration", Country: "Ireland", Category: CategoryPassenger,
				MinimumAgeYears:  0,
				EmissionStandard: "NCT emissions check",
				SafetyStandard:   "NCT inspection",
				SpecialRequirements: []string{
					"VRT booking within 7 days of arrival",
				},
				ComplianceCost:      decimal.NewFromInt(600),
				ProcessingTimeWeeks: 4,
				EffectiveDate:       date(2019, 1, 1),
			},
		},
		Overlays: []RegionOverlay{
			{
				Country: "USA", Region: "California",
				AdditionalRequirements: []string{
					"CARB compliance or direct-import exemption for pre-1976 vehicles",
					"California smog check for post-1975 vehicles",
				},
				FeeDelta: decimal.NewFromInt(500),
			},
		},
	}
}
