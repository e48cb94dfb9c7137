// Package openexchangerates fetches spot rates and the currency catalog from
// the Open Exchange Rates API, with cache-or-fetch semantics per resource.
package openexchangerates

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sort"

	"github.com/mato5/purple-currency-converter/pkg/cache"
	"github.com/mato5/purple-currency-converter/pkg/config"
	"github.com/mato5/purple-currency-converter/pkg/currency"
	"github.com/mato5/purple-currency-converter/pkg/domain"
)

const (
	providerName = "openexchangerates"

	ratesCacheKey      = "exchange_rates"
	currenciesCacheKey = "available_currencies"
)

// Client talks to the Open Exchange Rates API. Rates are USD based.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	cache      cache.Cache
	cfg        *config.Exchange
	logger     *slog.Logger
}

// latestResponse is the shape of the latest.json payload. Only the rates
// field matters; a payload without it is malformed.
type latestResponse struct {
	Base  string             `json:"base"`
	Rates map[string]float64 `json:"rates"`
}

// New creates a new Open Exchange Rates client using config.
func New(cfg *config.Exchange, c cache.Cache, logger *slog.Logger) *Client {
	return &Client{
		baseURL: cfg.OpenExchangeRatesUrl,
		apiKey:  cfg.OpenExchangeRatesApiKey,
		httpClient: &http.Client{
			Timeout: cfg.HTTPTimeout,
		},
		cache:  c,
		cfg:    cfg,
		logger: logger,
	}
}

// FetchExchangeRates returns the current USD-based rate table, serving from
// cache while the spot-rate TTL holds and hitting the API otherwise.
func (c *Client) FetchExchangeRates(ctx context.Context) (domain.RateTable, error) {
	if cached, ok, err := cache.GetJSON[domain.RateTable](ctx, c.cache, ratesCacheKey); err == nil && ok {
		c.logger.Debug("Using cached exchange rates")
		return cached, nil
	}

	c.logger.Info("Fetching fresh exchange rates from API")

	url := fmt.Sprintf("%s/latest.json?app_id=%s", c.baseURL, c.apiKey)
	body, err := c.get(ctx, url)
	if err != nil {
		return nil, err
	}

	var parsed latestResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedResponse, err)
	}
	if len(parsed.Rates) == 0 {
		return nil, fmt.Errorf("%w: missing rates field", domain.ErrMalformedResponse)
	}

	if err := cache.SetJSON(ctx, c.cache, ratesCacheKey, parsed.Rates, c.cfg.RatesTTL); err != nil {
		c.logger.Warn("Failed to cache exchange rates", "error", err)
	}

	return parsed.Rates, nil
}

// ListCurrencies returns the supported currencies, filtered to codes present
// in the ISO reference table and sorted by code. Entries failing validation
// are dropped silently.
func (c *Client) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	if cached, ok, err := cache.GetJSON[[]domain.Currency](ctx, c.cache, currenciesCacheKey); err == nil && ok {
		c.logger.Debug("Using cached currency catalog")
		return cached, nil
	}

	c.logger.Info("Fetching currency catalog from API")

	url := fmt.Sprintf("%s/currencies.json?app_id=%s", c.baseURL, c.apiKey)
	body, err := c.get(ctx, url)
	if err != nil {
		return nil, err
	}

	var names map[string]string
	if err := json.Unmarshal(body, &names); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedResponse, err)
	}

	currencies := make([]domain.Currency, 0, len(names))
	for code, name := range names {
		if !currency.IsValidFormat(code) || !currency.IsValidCode(code) {
			continue
		}
		currencies = append(currencies, domain.Currency{Code: code, Name: name})
	}
	sort.Slice(currencies, func(i, j int) bool {
		return currencies[i].Code < currencies[j].Code
	})

	if err := cache.SetJSON(ctx, c.cache, currenciesCacheKey, currencies, c.cfg.CurrenciesTTL); err != nil {
		c.logger.Warn("Failed to cache currency catalog", "error", err)
	}

	return currencies, nil
}

// get performs one timeout-bounded request and normalizes failures: transport
// problems become NetworkError, non-2xx statuses become UpstreamError.
func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &domain.NetworkError{Provider: providerName, Err: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &domain.NetworkError{Provider: providerName, Err: err}
	}
	defer resp.Body.Close() //nolint:errcheck

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &domain.NetworkError{Provider: providerName, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Warn("API returned non-success status", "status", resp.StatusCode)
		return nil, &domain.UpstreamError{
			Provider:   providerName,
			StatusCode: resp.StatusCode,
			Body:       string(body),
		}
	}

	return body, nil
}
