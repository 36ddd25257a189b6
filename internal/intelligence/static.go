package intelligence

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	dErrors "importintel/pkg/domain-errors"
)

// StaticGeocoder maps well-known city and region names onto modeled
// destination countries. It covers the places the built-in rule set
// models; an external geocoding service can replace it without touching
// the service.
type StaticGeocoder struct {
	places map[string]place
}

type place struct {
	country string
	region  string
}

// NewStaticGeocoder builds the built-in place table.
func NewStaticGeocoder() *StaticGeocoder {
	return &StaticGeocoder{places: map[string]place{
		"los angeles": {country: "USA", region: "California"},
		"san diego":   {country: "USA", region: "California"},
		"new york":    {country: "USA"},
		"miami":       {country: "USA"},
		"seattle":     {country: "USA"},
		"sydney":      {country: "Australia"},
		"melbourne":   {country: "Australia"},
		"brisbane":    {country: "Australia"},
		"vancouver":   {country: "Canada"},
		"toronto":     {country: "Canada"},
		"london":      {country: "UK"},
		"manchester":  {country: "UK"},
		"berlin":      {country: "Germany"},
		"munich":      {country: "Germany"},
		"auckland":    {country: "New Zealand"},
		"wellington":  {country: "New Zealand"},
		"dublin":      {country: "Ireland"},
	}}
}

// Locate matches the place name case-insensitively, ignoring a trailing
// country qualifier ("Sydney, Australia" matches "sydney").
func (g *StaticGeocoder) Locate(_ context.Context, placeName string) (string, string, bool) {
	normalized := strings.ToLower(strings.TrimSpace(placeName))
	if city, _, found := strings.Cut(normalized, ","); found {
		normalized = strings.TrimSpace(city)
	}
	p, ok := g.places[normalized]
	if !ok {
		return "", "", false
	}
	return p.country, p.region, true
}

// StaticRates converts between the modeled currencies with a fixed table.
// Rates are indicative only and quoted against USD.
type StaticRates struct {
	perUSD map[string]decimal.Decimal
}

// NewStaticRates builds the built-in rate table.
func NewStaticRates() *StaticRates {
	return &StaticRates{perUSD: map[string]decimal.Decimal{
		"USD": decimal.NewFromInt(1),
		"AUD": decimal.RequireFromString("1.52"),
		"CAD": decimal.RequireFromString("1.36"),
		"GBP": decimal.RequireFromString("0.79"),
		"EUR": decimal.RequireFromString("0.92"),
		"NZD": decimal.RequireFromString("1.66"),
		"JPY": decimal.RequireFromString("149.50"),
	}}
}

// Convert expresses amount in the target currency via the USD cross rate.
func (r *StaticRates) Convert(_ context.Context, amount decimal.Decimal, from, to string) (decimal.Decimal, error) {
	if from == to {
		return amount, nil
	}
	fromRate, ok := r.perUSD[from]
	if !ok {
		return decimal.Decimal{}, dErrors.New(dErrors.CodeInvalidInput, "unknown currency "+from)
	}
	toRate, ok := r.perUSD[to]
	if !ok {
		return decimal.Decimal{}, dErrors.New(dErrors.CodeInvalidInput, "unknown currency "+to)
	}
	return amount.Div(fromRate).Mul(toRate), nil
}
