// Package intelligence assembles the full import answer for one vehicle
// and destination: identity resolution, the eligibility determination, the
// landed-cost breakdown, and the derived guidance, memoized behind the
// lookup cache.
package intelligence

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"importintel/internal/costing"
	"importintel/internal/eligibility"
	"importintel/internal/intelligence/metrics"
	"importintel/internal/intelligence/ports"
	"importintel/internal/lookupcache"
	"importintel/internal/resolver"
	dErrors "importintel/pkg/domain-errors"
)

// transitWeeks is the ocean-freight allowance added to the compliance
// processing time in the door-to-registration estimate.
const transitWeeks = 6

// Service orchestrates the intelligence pipeline.
type Service struct {
	resolver   *resolver.Service
	engine     *eligibility.Engine
	calculator *costing.Calculator
	cache      *lookupcache.Cache
	geocoder   ports.Geocoder
	rates      ports.ExchangeRates
	logger     *slog.Logger
	metrics    *metrics.Metrics
}

// NewService constructs the orchestrator. geocoder and rates are optional;
// nil disables place canonicalization and cross-currency prices.
func NewService(
	res *resolver.Service,
	engine *eligibility.Engine,
	calculator *costing.Calculator,
	cache *lookupcache.Cache,
	geocoder ports.Geocoder,
	rates ports.ExchangeRates,
	logger *slog.Logger,
	m *metrics.Metrics,
) *Service {
	return &Service{
		resolver:   res,
		engine:     engine,
		calculator: calculator,
		cache:      cache,
		geocoder:   geocoder,
		rates:      rates,
		logger:     logger,
		metrics:    m,
	}
}

// ResolveVehicle resolves a query to a vehicle identity through the lookup
// cache. The cache key is derived from the normalized query, so trivially
// different spellings of the same query share an entry. Failed resolutions
// are never cached.
func (s *Service) ResolveVehicle(ctx context.Context, query string) (resolver.VehicleIdentity, error) {
	started := time.Now()
	content := resolver.Normalize(query)

	payload, err := s.cache.GetOrCompute(ctx, lookupcache.KindResolution, content, func(ctx context.Context) ([]byte, error) {
		identity, err := s.resolver.Resolve(ctx, query)
		if err != nil {
			return nil, err
		}
		return json.Marshal(identity)
	})
	if err != nil {
		s.metrics.IncrementRequest("resolve", "error")
		return resolver.VehicleIdentity{}, err
	}

	var identity resolver.VehicleIdentity
	if err := json.Unmarshal(payload, &identity); err != nil {
		s.metrics.IncrementRequest("resolve", "error")
		return resolver.VehicleIdentity{}, fmt.Errorf("decoding cached resolution: %w", err)
	}

	s.metrics.IncrementRequest("resolve", "success")
	s.metrics.ObserveStageLatency("resolution", time.Since(started))
	return identity, nil
}

// Assemble produces the full intelligence answer for a query and
// destination. The whole answer is memoized as one cache entry under the
// serialized (vehicle, destination) pair; eligibility and the cost quote
// are independent and run concurrently on a miss.
func (s *Service) Assemble(ctx context.Context, query string, req Request) (Intelligence, error) {
	vehicle, err := s.ResolveVehicle(ctx, query)
	if err != nil {
		return Intelligence{}, err
	}

	req, err = s.canonicalize(ctx, req)
	if err != nil {
		s.metrics.IncrementRequest("intelligence", "error")
		return Intelligence{}, err
	}

	content := cacheContent(vehicle, req)
	payload, err := s.cache.GetOrCompute(ctx, lookupcache.KindIntelligence, content, func(ctx context.Context) ([]byte, error) {
		result, err := s.compute(ctx, vehicle, req)
		if err != nil {
			return nil, err
		}
		return json.Marshal(result)
	})
	if err != nil {
		s.metrics.IncrementRequest("intelligence", "error")
		return Intelligence{}, err
	}

	var result Intelligence
	if err := json.Unmarshal(payload, &result); err != nil {
		s.metrics.IncrementRequest("intelligence", "error")
		return Intelligence{}, fmt.Errorf("decoding cached intelligence: %w", err)
	}

	s.metrics.IncrementRequest("intelligence", "success")
	return result, nil
}

// canonicalize maps a free-form destination onto a modeled country and
// converts the declared price into the destination currency.
func (s *Service) canonicalize(ctx context.Context, req Request) (Request, error) {
	if s.geocoder != nil {
		if country, region, ok := s.geocoder.Locate(ctx, req.DestinationCountry); ok {
			req.DestinationCountry = country
			if req.Region == "" {
				req.Region = region
			}
		}
	}

	if req.PriceCurrency == "" {
		return req, nil
	}
	currency, ok := s.calculator.Currency(req.DestinationCountry)
	if !ok {
		return Request{}, dErrors.New(dErrors.CodeUnsupportedCountry,
			fmt.Sprintf("no fee schedule for %s", req.DestinationCountry))
	}
	if s.rates == nil || currency == req.PriceCurrency {
		req.PriceCurrency = ""
		return req, nil
	}
	converted, err := s.rates.Convert(ctx, req.DeclaredPrice, req.PriceCurrency, currency)
	if err != nil {
		return Request{}, err
	}
	req.DeclaredPrice = converted
	req.PriceCurrency = ""
	return req, nil
}

// compute runs the pipeline stages on a cache miss. Eligibility and the
// cost quote share no inputs beyond the vehicle, so they run concurrently;
// the compliance cost joins the quote at the final rounding pass.
func (s *Service) compute(ctx context.Context, vehicle resolver.VehicleIdentity, req Request) (Intelligence, error) {
	var (
		elig  eligibility.Result
		quote costing.Quote
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		started := time.Now()
		result, err := s.engine.Compute(gCtx, vehicle, req.DestinationCountry, req.Category, req.Region)
		if err != nil {
			return err
		}
		elig = result
		s.metrics.ObserveStageLatency("eligibility", time.Since(started))
		return nil
	})
	g.Go(func() error {
		started := time.Now()
		result, err := s.calculator.Quote(gCtx, vehicle, req.Category, vehicle.OriginCountry, req.DestinationCountry, req.DeclaredPrice)
		if err != nil {
			return err
		}
		quote = result
		s.metrics.ObserveStageLatency("costing", time.Since(started))
		return nil
	})
	if err := g.Wait(); err != nil {
		return Intelligence{}, err
	}

	costs, err := s.calculator.Finalize(quote, elig.ComplianceCost)
	if err != nil {
		return Intelligence{}, err
	}

	result := Intelligence{
		Vehicle:            vehicle,
		DestinationCountry: req.DestinationCountry,
		Region:             req.Region,
		Eligibility:        elig,
		Costs:              costs,
		TimelineWeeks:      elig.ProcessingTimeWeeks + transitWeeks,
		NextSteps:          nextSteps(vehicle, req.DestinationCountry, elig, costs),
		Alternatives:       s.engine.Alternatives(ctx, vehicle, req.Category, req.DestinationCountry),
	}

	if s.logger != nil {
		s.logger.InfoContext(ctx, "intelligence assembled",
			"make", vehicle.Make,
			"model", vehicle.Model,
			"destination", req.DestinationCountry,
			"eligible", elig.Eligible,
			"total", costs.Total,
		)
	}
	return result, nil
}

// nextSteps derives actionable guidance from the determination. Order
// matters: paperwork before freight, destination requirements last.
func nextSteps(vehicle resolver.VehicleIdentity, destination string, elig eligibility.Result, costs costing.CostBreakdown) []string {
	if !elig.Eligible {
		steps := []string{
			fmt.Sprintf("The %s %s is not currently eligible for import into %s under %s", vehicle.Make, vehicle.Model, destination, elig.RuleApplied),
		}
		if len(elig.SpecialRequirements) > 0 {
			steps = append(steps, "Review the jurisdiction requirements: "+strings.Join(elig.SpecialRequirements, "; "))
		}
		return steps
	}

	steps := []string{
		fmt.Sprintf("Secure the vehicle and obtain the export certificate in %s", vehicle.OriginCountry),
		fmt.Sprintf("Book ocean freight from %s to %s", vehicle.OriginCountry, destination),
	}
	for _, requirement := range elig.SpecialRequirements {
		steps = append(steps, "Prepare: "+requirement)
	}
	steps = append(steps, fmt.Sprintf("Budget %s %s landed", costs.Currency, costs.Total))
	return steps
}

// cacheContent serializes the inputs that determine the answer. Any field
// that changes the output must appear here.
func cacheContent(vehicle resolver.VehicleIdentity, req Request) string {
	return strings.Join([]string{
		vehicle.Make,
		vehicle.Model,
		fmt.Sprintf("%d", vehicle.ManufactureYear),
		vehicle.ChassisCode,
		vehicle.OriginCountry,
		req.DestinationCountry,
		req.Region,
		string(req.Category),
		req.DeclaredPrice.String(),
	}, "|")
}
