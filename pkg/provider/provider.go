// Package provider defines the upstream rate-provider ports implemented
// under infra/provider.
package provider

import (
	"context"

	"github.com/mato5/purple-currency-converter/pkg/domain"
)

// SpotRates fetches the current USD-based rate table.
type SpotRates interface {
	FetchExchangeRates(ctx context.Context) (domain.RateTable, error)
}

// CurrencyCatalog lists the currencies supported by the spot-rate upstream.
type CurrencyCatalog interface {
	ListCurrencies(ctx context.Context) ([]domain.Currency, error)
}

// HistoricalRates fetches EUR-based daily rates for one currency and one
// calendar year. An empty series means the upstream has no data for that
// currency; it is a valid result, not an error.
type HistoricalRates interface {
	FetchYearlySeries(ctx context.Context, currency string, year int) (domain.HistoricalSeries, error)
}
