// Package ports defines the collaborator interfaces the intelligence
// service depends on. Implementations live with their infrastructure;
// the service accepts any conforming value.
package ports

import (
	"context"

	"github.com/shopspring/decimal"
)

// Geocoder canonicalizes a free-form destination into a modeled country
// and optional sub-national region.
type Geocoder interface {
	// Locate returns the country and region for a free-form place name.
	// ok is false when the place is not recognized.
	Locate(ctx context.Context, place string) (country, region string, ok bool)
}

// ExchangeRates converts amounts between currencies for declared prices
// quoted in a currency other than the destination's.
type ExchangeRates interface {
	// Convert returns amount expressed in the "to" currency.
	Convert(ctx context.Context, amount decimal.Decimal, from, to string) (decimal.Decimal, error)
}
