// Package exchange derives pairwise rates from provider data: spot
// conversions over a USD-based rate table and historical cross-rates from
// two EUR-based daily series.
package exchange

import (
	"math"
	"sort"

	"github.com/mato5/purple-currency-converter/pkg/domain"
)

// spotBase is the implicit base of the spot-rate table. It maps to 1.0 even
// when absent as a key.
const spotBase = "USD"

// ConvertAmount converts an amount in minor units from source to target using
// the given rate table: source -> base -> target, rounded half up to the
// nearest integer minor unit exactly once at the boundary.
// Returns ErrCurrencyNotFound if either code is absent from the table.
func ConvertAmount(table domain.RateTable, source, target string, amountMinorUnits int64) (int64, error) {
	sourceRate, ok := lookup(table, source)
	if !ok {
		return 0, domain.ErrCurrencyNotFound
	}
	targetRate, ok := lookup(table, target)
	if !ok {
		return 0, domain.ErrCurrencyNotFound
	}

	amountInBase := float64(amountMinorUnits) / sourceRate
	return roundHalfUp(amountInBase * targetRate), nil
}

// CrossRateSeries inner-joins two per-EUR series on date and derives
// rate = target/source for every shared date within [start, end] inclusive,
// rounded to 6 decimal places and sorted ascending by date. Dates missing
// from either series are absent from the output, never imputed.
func CrossRateSeries(source, target domain.HistoricalSeries, start, end string) []domain.CrossRatePoint {
	points := make([]domain.CrossRatePoint, 0, len(source))
	for date, sourceRate := range source {
		if date < start || date > end {
			continue
		}
		targetRate, ok := target[date]
		if !ok {
			continue
		}
		points = append(points, domain.CrossRatePoint{
			Date: date,
			Rate: round6(targetRate / sourceRate),
		})
	}

	sort.Slice(points, func(i, j int) bool {
		return points[i].Date < points[j].Date
	})
	return points
}

// MergeSeries copies src into dst by plain key overwrite. Calendar years
// never repeat a date, so merge order is irrelevant.
func MergeSeries(dst, src domain.HistoricalSeries) {
	for date, rate := range src {
		dst[date] = rate
	}
}

func lookup(table domain.RateTable, code string) (float64, bool) {
	if rate, ok := table[code]; ok {
		return rate, true
	}
	if code == spotBase {
		return 1.0, true
	}
	return 0, false
}

func roundHalfUp(x float64) int64 {
	return int64(math.Floor(x + 0.5))
}

func round6(x float64) float64 {
	return math.Round(x*1e6) / 1e6
}
