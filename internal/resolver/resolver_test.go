package resolver

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	dErrors "importintel/pkg/domain-errors"
)

type ResolverSuite struct {
	suite.Suite
	service *Service
	ctx     context.Context
}

func TestResolverSuite(t *testing.T) {
	suite.Run(t, new(ResolverSuite))
}

func (s *ResolverSuite) SetupTest() {
	s.service = NewService(DefaultTables(), nil, nil)
	s.ctx = context.Background()
}

func (s *ResolverSuite) TestChassisCode() {
	s.Run("exact chassis match", func() {
		identity, err := s.service.Resolve(s.ctx, "JZA80")
		s.Require().NoError(err)
		s.Equal("Toyota", identity.Make)
		s.Equal("Supra", identity.Model)
		s.Equal(ResolutionChassis, identity.ResolutionType)
		s.Equal(100, identity.ConfidenceScore)
		s.Equal("JZA80", identity.ChassisCode)
	})

	s.Run("chassis match is case-insensitive", func() {
		identity, err := s.service.Resolve(s.ctx, "jza80")
		s.Require().NoError(err)
		s.Equal(ResolutionChassis, identity.ResolutionType)
		s.Equal("JZA80", identity.ChassisCode)
	})
}

func (s *ResolverSuite) TestModelName() {
	s.Run("exact alias match scores full confidence", func() {
		identity, err := s.service.Resolve(s.ctx, "supra")
		s.Require().NoError(err)
		s.Equal(ResolutionModel, identity.ResolutionType)
		s.Equal("JZA80", identity.ChassisCode)
		s.Equal(100, identity.ConfidenceScore)
	})

	s.Run("containment match scores below full confidence", func() {
		identity, err := s.service.Resolve(s.ctx, "1993 toyota supra jza80")
		s.Require().NoError(err)
		s.Equal(ResolutionModel, identity.ResolutionType)
		s.Equal("Toyota", identity.Make)
		s.Equal("Supra", identity.Model)
		s.Equal("JZA80", identity.ChassisCode)
		s.Less(identity.ConfidenceScore, 100)
	})

	s.Run("year token inside production range is adopted", func() {
		identity, err := s.service.Resolve(s.ctx, "1993 toyota supra jza80")
		s.Require().NoError(err)
		s.Equal(1993, identity.ManufactureYear)
	})

	s.Run("year token outside production range is ignored", func() {
		identity, err := s.service.Resolve(s.ctx, "1975 toyota supra turbo")
		s.Require().NoError(err)
		s.Equal(1993, identity.ManufactureYear) // production start
	})

	s.Run("whitespace and case are normalized", func() {
		identity, err := s.service.Resolve(s.ctx, "  Toyota   SUPRA ")
		s.Require().NoError(err)
		s.Equal("JZA80", identity.ChassisCode)
		s.Equal(100, identity.ConfidenceScore)
	})

	s.Run("longest alias wins containment", func() {
		identity, err := s.service.Resolve(s.ctx, "nissan skyline r34 gtr v-spec")
		s.Require().NoError(err)
		s.Equal("BNR34", identity.ChassisCode)
	})
}

func (s *ResolverSuite) TestVIN() {
	s.Run("known WMI resolves at full confidence", func() {
		identity, err := s.service.Resolve(s.ctx, "JT2JA82J1P0123456")
		s.Require().NoError(err)
		s.Equal(ResolutionVIN, identity.ResolutionType)
		s.Equal("Toyota", identity.Make)
		s.Equal("JP", identity.OriginCountry)
		s.Equal(100, identity.ConfidenceScore)
	})

	s.Run("model year decodes from position 10", func() {
		identity, err := s.service.Resolve(s.ctx, "JT2JA82J1P0123456")
		s.Require().NoError(err)
		s.Equal(1993, identity.ManufactureYear)
	})

	s.Run("year code outside the window leaves the year unknown", func() {
		identity, err := s.service.Resolve(s.ctx, "JT2JA82J100123456")
		s.Require().NoError(err)
		s.Equal(0, identity.ManufactureYear)
		s.Equal(100-vinPenaltyUnknownYear, identity.ConfidenceScore)
	})

	s.Run("generic-spec manufacturer takes a penalty", func() {
		identity, err := s.service.Resolve(s.ctx, "WDB1234561P012345")
		s.Require().NoError(err)
		s.Equal(ResolutionVIN, identity.ResolutionType)
		s.Equal("Mercedes-Benz", identity.Make)
		s.Equal(100-vinPenaltyGenericSpec, identity.ConfidenceScore)
	})

	s.Run("VIN alphabet excludes I O Q", func() {
		_, err := s.service.Resolve(s.ctx, "JT2JA82I1P0123456")
		s.Require().Error(err)
		s.ErrorIs(err, dErrors.New(dErrors.CodeUnrecognizedIdentifier, ""))
	})

	s.Run("unknown WMI falls through rather than guessing", func() {
		_, err := s.service.Resolve(s.ctx, "XX2JA82J1P0123456")
		s.Require().Error(err)
		s.ErrorIs(err, dErrors.New(dErrors.CodeUnrecognizedIdentifier, ""))
	})
}

// A token that is simultaneously a valid VIN and a chassis-table key must
// resolve through the VIN strategy: priority is strict, never ambiguous.
func (s *ResolverSuite) TestStrategyPriority() {
	tables := DefaultTables()
	collision := "JT2JA82J1P0123456"
	tables.Chassis = map[string]ChassisRecord{
		collision: {
			Code: collision, Make: "Fake", Model: "Collision",
			YearFrom: 1990, YearTo: 1999, OriginCountry: "JP",
		},
	}
	service := NewService(tables, nil, nil)

	identity, err := service.Resolve(s.ctx, collision)
	s.Require().NoError(err)
	s.Equal(ResolutionVIN, identity.ResolutionType)
	s.Equal("Toyota", identity.Make)
}

func (s *ResolverSuite) TestFailure() {
	s.Run("no strategy match returns unrecognized identifier", func() {
		_, err := s.service.Resolve(s.ctx, "lada riva 1200")
		s.Require().Error(err)
		s.ErrorIs(err, dErrors.New(dErrors.CodeUnrecognizedIdentifier, ""))
	})

	s.Run("empty query is invalid input", func() {
		_, err := s.service.Resolve(s.ctx, "   ")
		s.Require().Error(err)
		s.ErrorIs(err, dErrors.New(dErrors.CodeInvalidInput, ""))
	})
}
