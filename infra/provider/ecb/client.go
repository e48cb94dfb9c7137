// Package ecb fetches EUR-based historical daily rates from the ECB
// statistical data API, one currency and one calendar year at a time.
package ecb

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/mato5/purple-currency-converter/pkg/cache"
	"github.com/mato5/purple-currency-converter/pkg/config"
	"github.com/mato5/purple-currency-converter/pkg/domain"
)

const providerName = "ecb"

// SDMX csvdata rows: key,freq,currency,currency_denom,exr_type,exr_suffix,
// time_period,obs_value,... A usable row has at least 8 fields with the date
// at index 6 and the observation value at index 7.
const (
	minFields  = 8
	dateField  = 6
	valueField = 7
)

// Client talks to the ECB EXR dataflow. Every series is expressed as
// currency units per 1 EUR.
type Client struct {
	baseURL    string
	httpClient *http.Client
	cache      cache.Cache
	cfg        *config.Exchange
	logger     *slog.Logger
}

// New creates a new ECB client using config.
func New(cfg *config.Exchange, c cache.Cache, logger *slog.Logger) *Client {
	return &Client{
		baseURL: cfg.EcbUrl,
		httpClient: &http.Client{
			Timeout: cfg.HTTPTimeout,
		},
		cache:  c,
		cfg:    cfg,
		logger: logger,
	}
}

// FetchYearlySeries returns the daily series for one currency and year.
//
// EUR is the implicit base of this provider and has no genuine self-series
// upstream, so it is synthesized as 1.0 for every calendar day without a
// network call. For other currencies a non-success upstream status means
// "no data for this currency": the empty series is cached and returned with
// a nil error, distinguishing "no data" from "not yet attempted".
func (c *Client) FetchYearlySeries(ctx context.Context, ccy string, year int) (domain.HistoricalSeries, error) {
	if ccy == "EUR" {
		return identitySeries(year), nil
	}

	key := fmt.Sprintf("timeseries:%s:%d", ccy, year)
	if cached, ok, err := cache.GetJSON[domain.HistoricalSeries](ctx, c.cache, key); err == nil && ok {
		c.logger.Debug("Using cached historical series", "currency", ccy, "year", year)
		return cached, nil
	}

	c.logger.Info("Fetching historical series from ECB", "currency", ccy, "year", year)

	url := fmt.Sprintf("%s/D.%s.EUR.SP00.A?startPeriod=%d-01-01&endPeriod=%d-12-31&format=csvdata",
		c.baseURL, ccy, year, year)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &domain.NetworkError{Provider: providerName, Err: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &domain.NetworkError{Provider: providerName, Err: err}
	}
	defer resp.Body.Close() //nolint:errcheck

	series := domain.HistoricalSeries{}
	if resp.StatusCode >= 200 && resp.StatusCode <= 299 {
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, &domain.NetworkError{Provider: providerName, Err: err}
		}
		series = parseCSV(string(body))
	} else {
		c.logger.Info("ECB has no data for currency", "currency", ccy, "year", year, "status", resp.StatusCode)
	}

	if err := cache.SetJSON(ctx, c.cache, key, series, c.cfg.TimeseriesTTL); err != nil {
		c.logger.Warn("Failed to cache historical series", "currency", ccy, "year", year, "error", err)
	}

	return series, nil
}

// parseCSV extracts (date, rate) pairs from an SDMX csvdata payload.
// Malformed rows are skipped, not fatal; a response with zero usable rows
// yields an empty series.
func parseCSV(body string) domain.HistoricalSeries {
	series := domain.HistoricalSeries{}

	lines := strings.Split(body, "\n")
	for i, line := range lines {
		if i == 0 {
			continue // header row
		}
		fields := strings.Split(strings.TrimRight(line, "\r"), ",")
		if len(fields) < minFields {
			continue
		}
		date := fields[dateField]
		value := fields[valueField]
		if date == "" || value == "" {
			continue
		}
		rate, err := strconv.ParseFloat(value, 64)
		if err != nil {
			continue
		}
		series[date] = rate
	}

	return series
}

// identitySeries is the synthesized EUR self-series: 1.0 for every calendar
// day of the year.
func identitySeries(year int) domain.HistoricalSeries {
	series := domain.HistoricalSeries{}

	day := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	for day.Year() == year {
		series[day.Format(time.DateOnly)] = 1.0
		day = day.AddDate(0, 0, 1)
	}

	return series
}
