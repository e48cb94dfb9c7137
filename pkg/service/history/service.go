// Package history serves historical cross-rate series by combining per-year
// EUR-based series from the historical rate provider.
package history

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/mato5/purple-currency-converter/pkg/currency"
	"github.com/mato5/purple-currency-converter/pkg/domain"
	"github.com/mato5/purple-currency-converter/pkg/exchange"
	"github.com/mato5/purple-currency-converter/pkg/provider"
)

// Service derives cross-rate series between two currencies over a date range.
type Service struct {
	historical provider.HistoricalRates
	logger     *slog.Logger
}

// New creates a new history service.
func New(historical provider.HistoricalRates, logger *slog.Logger) *Service {
	return &Service{
		historical: historical,
		logger:     logger,
	}
}

type fetchTask struct {
	currency string
	year     int
}

// GetCrossRates returns the cross-rate series for source->target over
// [start, end] inclusive. One series per (currency, year) is fetched, with
// all fetches in flight concurrently; each writes to an independent cache
// key, so completion order is irrelevant. The result may be empty when the
// upstream has no data for either currency.
func (s *Service) GetCrossRates(ctx context.Context, source, target string, start, end time.Time) ([]domain.CrossRatePoint, error) {
	if !currency.IsValidCode(source) || !currency.IsValidCode(target) {
		return nil, domain.ErrInvalidCurrencyCode
	}

	tasks := make([]fetchTask, 0, 4)
	for _, ccy := range dedupe(source, target) {
		for year := start.Year(); year <= end.Year(); year++ {
			tasks = append(tasks, fetchTask{currency: ccy, year: year})
		}
	}

	results := make([]domain.HistoricalSeries, len(tasks))
	errs := make([]error, len(tasks))

	var wg sync.WaitGroup
	for i, task := range tasks {
		wg.Add(1)
		go func(i int, task fetchTask) {
			defer wg.Done()
			results[i], errs[i] = s.historical.FetchYearlySeries(ctx, task.currency, task.year)
		}(i, task)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	merged := map[string]domain.HistoricalSeries{
		source: {},
		target: {},
	}
	for i, task := range tasks {
		exchange.MergeSeries(merged[task.currency], results[i])
	}

	points := exchange.CrossRateSeries(
		merged[source], merged[target],
		start.Format(time.DateOnly), end.Format(time.DateOnly),
	)

	s.logger.Debug("Cross-rate series composed",
		"source", source, "target", target,
		"start", start.Format(time.DateOnly), "end", end.Format(time.DateOnly),
		"points", len(points))

	return points, nil
}

func dedupe(source, target string) []string {
	if source == target {
		return []string{source}
	}
	return []string{source, target}
}
