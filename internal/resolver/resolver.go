// Package resolver turns a free-form or structured vehicle query into a
// canonical VehicleIdentity. Resolution is a pure function over static
// reference tables; strategies run in a strict priority order (VIN, chassis
// code, model name) and the first match wins.
package resolver

import (
	"context"
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"importintel/internal/resolver/metrics"
	dErrors "importintel/pkg/domain-errors"
)

// Service resolves vehicle queries against the static reference tables.
type Service struct {
	tables  Tables
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// NewService constructs a resolver over the given tables.
func NewService(tables Tables, logger *slog.Logger, m *metrics.Metrics) *Service {
	return &Service{
		tables:  tables,
		logger:  logger,
		metrics: m,
	}
}

// Resolve runs the strategies in priority order and returns the first match.
// It never synthesizes an identity: when every strategy misses, the caller
// gets an unrecognized_identifier error, not a plausible default.
func (s *Service) Resolve(ctx context.Context, query string) (VehicleIdentity, error) {
	normalized := Normalize(query)
	if normalized == "" {
		return VehicleIdentity{}, dErrors.New(dErrors.CodeInvalidInput, "query is empty")
	}

	if identity, ok := s.resolveVIN(normalized); ok {
		s.record(ctx, query, identity)
		return identity, nil
	}
	if identity, ok := s.resolveChassis(normalized); ok {
		s.record(ctx, query, identity)
		return identity, nil
	}
	if identity, ok := s.resolveModelName(normalized); ok {
		s.record(ctx, query, identity)
		return identity, nil
	}

	if s.metrics != nil {
		s.metrics.IncrementResolution("none", "miss")
	}
	if s.logger != nil {
		s.logger.InfoContext(ctx, "query did not resolve", "query", query)
	}
	return VehicleIdentity{}, dErrors.New(dErrors.CodeUnrecognizedIdentifier, "no resolution strategy matched the query")
}

func (s *Service) record(ctx context.Context, query string, identity VehicleIdentity) {
	if s.metrics != nil {
		s.metrics.IncrementResolution(string(identity.ResolutionType), "hit")
	}
	if s.logger != nil {
		s.logger.DebugContext(ctx, "query resolved",
			"query", query,
			"strategy", identity.ResolutionType,
			"make", identity.Make,
			"confidence", identity.ConfidenceScore,
		)
	}
}

// resolveChassis matches the whole normalized query against the chassis-code
// table, case-insensitively.
func (s *Service) resolveChassis(normalized string) (VehicleIdentity, bool) {
	record, ok := s.tables.Chassis[strings.ToUpper(normalized)]
	if !ok {
		return VehicleIdentity{}, false
	}
	return VehicleIdentity{
		Make:            record.Make,
		Model:           record.Model,
		ManufactureYear: record.YearFrom,
		ChassisCode:     record.Code,
		OriginCountry:   record.OriginCountry,
		ResolutionType:  ResolutionChassis,
		ConfidenceScore: 100,
	}, true
}

// resolveModelName matches free-text names and synonyms. Exact alias matches
// score full confidence; containment matches (the alias appearing inside a
// longer query) score lower, with a small boost when the query carries a
// production year that the platform actually covers.
func (s *Service) resolveModelName(normalized string) (VehicleIdentity, bool) {
	code, exact := s.tables.Aliases[normalized]
	if !exact {
		code = s.containmentMatch(normalized)
		if code == "" {
			return VehicleIdentity{}, false
		}
	}

	record, ok := s.tables.Chassis[code]
	if !ok {
		return VehicleIdentity{}, false
	}

	confidence := 100
	year := record.YearFrom
	if !exact {
		confidence = 80
		if y, found := yearToken(normalized, record.YearFrom, record.YearTo); found {
			year = y
			confidence = 85
		}
	}

	return VehicleIdentity{
		Make:            record.Make,
		Model:           record.Model,
		ManufactureYear: year,
		ChassisCode:     record.Code,
		OriginCountry:   record.OriginCountry,
		ResolutionType:  ResolutionModel,
		ConfidenceScore: confidence,
	}, true
}

// containmentMatch finds the longest alias contained in the query. Longest
// first keeps "skyline r34" from losing to "skyline".
func (s *Service) containmentMatch(normalized string) string {
	best := ""
	for alias := range s.tables.Aliases {
		if !strings.Contains(normalized, alias) {
			continue
		}
		// Lexicographic tie-break keeps equal-length matches deterministic
		// across map iteration orders.
		if len(alias) > len(best) || (len(alias) == len(best) && alias < best) {
			best = alias
		}
	}
	if best == "" {
		// A bare chassis code buried in a longer query also counts as a
		// model-name match ("1993 toyota supra jza80").
		for _, token := range strings.Fields(normalized) {
			if _, ok := s.tables.Chassis[strings.ToUpper(token)]; ok {
				return strings.ToUpper(token)
			}
		}
		return ""
	}
	return s.tables.Aliases[best]
}

// Normalize lowercases, trims, and collapses internal whitespace.
func Normalize(query string) string {
	return strings.Join(strings.Fields(strings.ToLower(query)), " ")
}

var yearPattern = regexp.MustCompile(`\b(19[5-9]\d|20[0-4]\d)\b`)

// yearToken extracts a 4-digit year from the query if it falls inside the
// platform's production range.
func yearToken(normalized string, from, to int) (int, bool) {
	for _, match := range yearPattern.FindAllString(normalized, -1) {
		year, err := strconv.Atoi(match)
		if err != nil {
			continue
		}
		if year >= from && year <= to {
			return year, true
		}
	}
	return 0, false
}
