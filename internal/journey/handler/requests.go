package handler

import (
	"strings"

	"github.com/shopspring/decimal"

	"importintel/internal/eligibility"
	"importintel/internal/intelligence"
	"importintel/internal/journey"
	dErrors "importintel/pkg/domain-errors"
)

// CreateRequest is the HTTP request body for POST /v1/journeys.
type CreateRequest struct {
	Query string `json:"query"`
}

// Validate checks the request body.
func (r CreateRequest) Validate() error {
	if strings.TrimSpace(r.Query) == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "query is required")
	}
	return nil
}

// AdvanceRequest is the HTTP request body for
// POST /v1/journeys/{token}/destination. The cost fields feed the
// intelligence computation attached to the advanced session.
type AdvanceRequest struct {
	DestinationCountry string          `json:"destination_country"`
	Region             string          `json:"region,omitempty"`
	Category           string          `json:"category,omitempty"`
	DeclaredPrice      decimal.Decimal `json:"declared_price"`
	PriceCurrency      string          `json:"price_currency,omitempty"`
}

// Validate checks the request body.
func (r AdvanceRequest) Validate() error {
	if strings.TrimSpace(r.DestinationCountry) == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "destination_country is required")
	}
	if r.Category != "" && !eligibility.VehicleCategory(r.Category).IsValid() {
		return dErrors.New(dErrors.CodeInvalidInput, "unknown vehicle category")
	}
	if r.DeclaredPrice.IsNegative() {
		return dErrors.New(dErrors.CodeInvalidInput, "declared_price must not be negative")
	}
	return nil
}

// ToDomain converts the body into an intelligence request.
func (r AdvanceRequest) ToDomain() intelligence.Request {
	category := eligibility.VehicleCategory(r.Category)
	if r.Category == "" {
		category = eligibility.CategoryPassenger
	}
	return intelligence.Request{
		DestinationCountry: strings.TrimSpace(r.DestinationCountry),
		Region:             strings.TrimSpace(r.Region),
		Category:           category,
		DeclaredPrice:      r.DeclaredPrice,
		PriceCurrency:      strings.ToUpper(strings.TrimSpace(r.PriceCurrency)),
	}
}

// ReconstructRequest is the HTTP request body for
// POST /v1/journeys/reconstruct.
type ReconstructRequest struct {
	Make        string `json:"make,omitempty"`
	Model       string `json:"model,omitempty"`
	ChassisCode string `json:"chassis_code,omitempty"`
	Destination string `json:"destination,omitempty"`
}

// Validate checks the request body.
func (r ReconstructRequest) Validate() error {
	if r.ToParams().Empty() {
		return dErrors.New(dErrors.CodeInvalidInput, "at least one of make, model, chassis_code is required")
	}
	return nil
}

// ToParams converts the body into reconstruction params.
func (r ReconstructRequest) ToParams() journey.ReconstructParams {
	return journey.ReconstructParams{
		Make:        strings.TrimSpace(r.Make),
		Model:       strings.TrimSpace(r.Model),
		ChassisCode: strings.TrimSpace(r.ChassisCode),
		Destination: strings.TrimSpace(r.Destination),
	}
}
