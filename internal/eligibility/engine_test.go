package eligibility

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"importintel/internal/resolver"
	dErrors "importintel/pkg/domain-errors"
	"importintel/pkg/requestcontext"
)

type EngineSuite struct {
	suite.Suite
	engine *Engine
	ctx    context.Context
}

func TestEngineSuite(t *testing.T) {
	suite.Run(t, new(EngineSuite))
}

func (s *EngineSuite) SetupTest() {
	s.engine = NewEngine(DefaultRuleSet(), nil)
	// Pin the evaluation date so age arithmetic is deterministic.
	s.ctx = requestcontext.WithTime(context.Background(), date(2025, 6, 1))
}

func vehicle(year int) resolver.VehicleIdentity {
	return resolver.VehicleIdentity{
		Make:            "Toyota",
		Model:           "Supra",
		ManufactureYear: year,
		ChassisCode:     "JZA80",
		OriginCountry:   "JP",
		ResolutionType:  resolver.ResolutionChassis,
		ConfidenceScore: 100,
	}
}

func (s *EngineSuite) TestBaseRule() {
	s.Run("USA 1993 vehicle is eligible under the 25-year rule", func() {
		result, err := s.engine.Compute(s.ctx, vehicle(1993), "USA", CategoryPassenger, "")
		s.Require().NoError(err)
		s.True(result.Eligible)
		s.Equal("usa-25-year", result.RuleApplied)
		s.True(result.ComplianceCost.IsZero())
	})

	s.Run("age threshold is a step function", func() {
		// 2001 build is 24 years old at the pinned date: one year short.
		result, err := s.engine.Compute(s.ctx, vehicle(2001), "Canada", CategoryPassenger, "")
		s.Require().NoError(err)
		s.True(result.Eligible) // Canada's threshold is 15

		result, err = s.engine.Compute(s.ctx, vehicle(2001), "USA", CategoryPassenger, "")
		s.Require().NoError(err)
		s.False(result.Eligible)

		result, err = s.engine.Compute(s.ctx, vehicle(2000), "USA", CategoryPassenger, "")
		s.Require().NoError(err)
		s.True(result.Eligible)
	})
}

func (s *EngineSuite) TestExemptions() {
	s.Run("failing base rule can be overridden by an exemption", func() {
		// 2003 build is 22: fails the 25-year base, passes show-or-display's
		// own 21-year threshold.
		result, err := s.engine.Compute(s.ctx, vehicle(2003), "USA", CategoryPassenger, "")
		s.Require().NoError(err)
		s.True(result.Eligible)
		s.Equal(string(ExemptionShowOrDisplay), result.RuleApplied)
		s.True(result.ComplianceCost.Equal(decimal.NewFromInt(4500)))
		s.Equal(16, result.ProcessingTimeWeeks)
		s.Contains(result.SpecialRequirements, "approved NHTSA show-or-display application")
	})

	s.Run("exemption with the same threshold does not lower the bar", func() {
		// Australia: base minimum 25, enthusiast exemption also 25. A
		// 23-year-old vehicle stays ineligible.
		result, err := s.engine.Compute(s.ctx, vehicle(2002), "Australia", CategoryPassenger, "")
		s.Require().NoError(err)
		s.False(result.Eligible)
		s.Equal("aus-25-year", result.RuleApplied)
	})
}

func (s *EngineSuite) TestRuleVersioning() {
	s.Run("evaluation date selects the rule version in force", func() {
		// Before the 2021 revision the USA rule had no show-or-display path.
		ctx := requestcontext.WithTime(context.Background(), date(2018, 6, 1))
		result, err := s.engine.Compute(ctx, vehicle(1996), "USA", CategoryPassenger, "")
		s.Require().NoError(err)
		s.False(result.Eligible) // 22 years old, no exemption in the 2015 version
	})

	s.Run("select picks the latest effective rule", func() {
		rules := DefaultRuleSet()
		rule, ok := rules.Select("USA", CategoryPassenger, date(2025, 1, 1))
		s.Require().True(ok)
		s.Len(rule.Exemptions, 1)

		rule, ok = rules.Select("USA", CategoryPassenger, date(2016, 1, 1))
		s.Require().True(ok)
		s.Empty(rule.Exemptions)

		_, ok = rules.Select("USA", CategoryPassenger, date(2014, 1, 1))
		s.False(ok)
	})
}

func (s *EngineSuite) TestRegionOverlay() {
	s.Run("overlay adds requirements and fees", func() {
		base, err := s.engine.Compute(s.ctx, vehicle(1993), "USA", CategoryPassenger, "")
		s.Require().NoError(err)

		overlaid, err := s.engine.Compute(s.ctx, vehicle(1993), "USA", CategoryPassenger, "California")
		s.Require().NoError(err)
		s.Equal(base.Eligible, overlaid.Eligible)
		s.True(overlaid.ComplianceCost.Equal(base.ComplianceCost.Add(decimal.NewFromInt(500))))
		s.Greater(len(overlaid.SpecialRequirements), len(base.SpecialRequirements))
	})

	s.Run("overlay never flips an ineligible decision", func() {
		result, err := s.engine.Compute(s.ctx, vehicle(2010), "USA", CategoryPassenger, "California")
		s.Require().NoError(err)
		s.False(result.Eligible)
	})
}

func (s *EngineSuite) TestFailureModes() {
	s.Run("unmodeled country is a hard stop", func() {
		_, err := s.engine.Compute(s.ctx, vehicle(1993), "Atlantis", CategoryPassenger, "")
		s.Require().Error(err)
		s.ErrorIs(err, dErrors.New(dErrors.CodeUnsupportedCountry, ""))
	})

	s.Run("unmodeled category is a hard stop", func() {
		_, err := s.engine.Compute(s.ctx, vehicle(1993), "Australia", CategoryMotorcycle, "")
		s.Require().Error(err)
		s.ErrorIs(err, dErrors.New(dErrors.CodeUnsupportedCountry, ""))
	})

	s.Run("unknown manufacture year is a hard stop", func() {
		// A zero year would make the age arithmetic call anything
		// eligible under an age rule; refuse instead.
		_, err := s.engine.Compute(s.ctx, vehicle(0), "USA", CategoryPassenger, "")
		s.Require().Error(err)
		s.ErrorIs(err, dErrors.New(dErrors.CodeInvalidInput, ""))
	})

	s.Run("invalid category is rejected", func() {
		_, err := s.engine.Compute(s.ctx, vehicle(1993), "USA", VehicleCategory("hovercraft"), "")
		s.Require().Error(err)
		s.ErrorIs(err, dErrors.New(dErrors.CodeInvalidInput, ""))
	})
}

func (s *EngineSuite) TestAlternatives() {
	s.Run("excludes the requested country", func() {
		alts := s.engine.Alternatives(s.ctx, vehicle(1993), CategoryPassenger, "USA")
		s.NotContains(alts, "USA")
		s.Contains(alts, "Canada")
	})

	s.Run("young vehicle has only low-threshold destinations", func() {
		alts := s.engine.Alternatives(s.ctx, vehicle(2021), CategoryPassenger, "USA")
		s.NotContains(alts, "Australia")
		s.Contains(alts, "UK")
	})
}

func (s *EngineSuite) TestDeterminism() {
	at := requestcontext.WithTime(context.Background(), time.Date(2025, 2, 14, 9, 30, 0, 0, time.UTC))
	first, err := s.engine.Compute(at, vehicle(1997), "Australia", CategoryPassenger, "")
	s.Require().NoError(err)
	second, err := s.engine.Compute(at, vehicle(1997), "Australia", CategoryPassenger, "")
	s.Require().NoError(err)
	s.Equal(first, second)
}
