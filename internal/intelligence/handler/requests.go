package handler

import (
	"strings"

	"github.com/shopspring/decimal"

	"importintel/internal/eligibility"
	"importintel/internal/intelligence"
	dErrors "importintel/pkg/domain-errors"
)

// IntelligenceRequest is the HTTP request body for POST /v1/intelligence.
type IntelligenceRequest struct {
	Query              string          `json:"query"`
	DestinationCountry string          `json:"destination_country"`
	Region             string          `json:"region,omitempty"`
	Category           string          `json:"category,omitempty"`
	DeclaredPrice      decimal.Decimal `json:"declared_price"`
	PriceCurrency      string          `json:"price_currency,omitempty"`
}

// Validate checks the request body.
func (r IntelligenceRequest) Validate() error {
	if strings.TrimSpace(r.Query) == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "query is required")
	}
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

// ToDomain converts the body into a domain request. Category defaults to
// passenger, by far the common case for enthusiast imports.
func (r IntelligenceRequest) ToDomain() intelligence.Request {
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
