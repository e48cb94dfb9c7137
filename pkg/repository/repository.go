// Package repository defines the conversion-history record store port.
package repository

import (
	"context"

	"github.com/mato5/purple-currency-converter/pkg/domain"
)

// Statistics is the aggregate view over all recorded conversions. The most
// converted currency is the target currency with the highest conversion
// count; its amount is the sum of target amounts received in it, in minor
// units.
type Statistics struct {
	TotalConversions            int64  `json:"total_conversions"`
	MostConvertedCurrency       string `json:"most_converted_currency"`
	MostConvertedCurrencyAmount int64  `json:"most_converted_currency_amount"`
}

// CurrencyCount is one row of the per-target-currency breakdown.
type CurrencyCount struct {
	Currency string `json:"currency"`
	Count    int64  `json:"count"`
}

// DailyCount is one day of conversion volume.
type DailyCount struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}

// ConversionStore records completed conversions and serves aggregates over
// them. Concurrent-write consistency of the aggregates is delegated to the
// backing database.
type ConversionStore interface {
	Append(ctx context.Context, result domain.ConversionResult) error
	Aggregate(ctx context.Context) (Statistics, error)
	Breakdown(ctx context.Context) ([]CurrencyCount, error)
	Trends(ctx context.Context, days int) ([]DailyCount, error)
}
