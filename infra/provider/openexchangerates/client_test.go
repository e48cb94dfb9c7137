package openexchangerates_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	infracache "github.com/mato5/purple-currency-converter/infra/cache"
	"github.com/mato5/purple-currency-converter/infra/provider/openexchangerates"
	"github.com/mato5/purple-currency-converter/pkg/config"
	"github.com/mato5/purple-currency-converter/pkg/domain"
)

func newClient(t *testing.T, baseURL string) (*openexchangerates.Client, *infracache.MemoryCache) {
	t.Helper()
	c := infracache.NewMemoryCache()
	cfg := &config.Exchange{
		OpenExchangeRatesUrl:    baseURL,
		OpenExchangeRatesApiKey: "test-api-key",
		HTTPTimeout:             time.Second,
		RatesTTL:                time.Hour,
		CurrenciesTTL:           24 * time.Hour,
		TimeseriesTTL:           24 * time.Hour,
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return openexchangerates.New(cfg, c, logger), c
}

func TestFetchExchangeRates_FetchAndCache(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.Equal(t, "/latest.json", r.URL.Path)
		assert.Equal(t, "test-api-key", r.URL.Query().Get("app_id"))
		w.Write([]byte(`{"base":"USD","rates":{"USD":1,"EUR":0.85,"GBP":0.73,"JPY":110.5}}`)) //nolint:errcheck
	}))
	defer srv.Close()

	client, _ := newClient(t, srv.URL)

	rates, err := client.FetchExchangeRates(context.Background())
	require.NoError(t, err)
	assert.Len(t, rates, 4)
	assert.InDelta(t, 0.85, rates["EUR"], 1e-9)

	// Second call must be served from cache.
	rates, err = client.FetchExchangeRates(context.Background())
	require.NoError(t, err)
	assert.InDelta(t, 0.85, rates["EUR"], 1e-9)
	assert.Equal(t, int32(1), calls.Load())
}

func TestFetchExchangeRates_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte("Unauthorized")) //nolint:errcheck
	}))
	defer srv.Close()

	client, _ := newClient(t, srv.URL)

	_, err := client.FetchExchangeRates(context.Background())
	var upstreamErr *domain.UpstreamError
	require.ErrorAs(t, err, &upstreamErr)
	assert.Equal(t, http.StatusUnauthorized, upstreamErr.StatusCode)
	assert.Equal(t, "Unauthorized", upstreamErr.Body)
}

func TestFetchExchangeRates_MalformedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"invalid":"response"}`)) //nolint:errcheck
	}))
	defer srv.Close()

	client, _ := newClient(t, srv.URL)

	_, err := client.FetchExchangeRates(context.Background())
	assert.ErrorIs(t, err, domain.ErrMalformedResponse)
}

func TestFetchExchangeRates_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	c := infracache.NewMemoryCache()
	cfg := &config.Exchange{
		OpenExchangeRatesUrl: srv.URL,
		HTTPTimeout:          10 * time.Millisecond,
		RatesTTL:             time.Hour,
		CurrenciesTTL:        time.Hour,
	}
	client := openexchangerates.New(cfg, c, slog.New(slog.NewTextHandler(io.Discard, nil)))

	_, err := client.FetchExchangeRates(context.Background())
	var networkErr *domain.NetworkError
	assert.ErrorAs(t, err, &networkErr)
}

func TestFetchExchangeRates_Cancellation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	client, c := newClient(t, srv.URL)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.FetchExchangeRates(ctx)
	var networkErr *domain.NetworkError
	require.ErrorAs(t, err, &networkErr)

	// A cancelled fetch never writes to the cache.
	_, ok, err := c.Get(context.Background(), "exchange_rates")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestListCurrencies_FiltersAndSorts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/currencies.json", r.URL.Path)
		w.Write([]byte(`{
			"USD":"United States Dollar",
			"EUR":"Euro",
			"INVALID":"Invalid Currency",
			"123":"Numeric Code"
		}`)) //nolint:errcheck
	}))
	defer srv.Close()

	client, _ := newClient(t, srv.URL)

	currencies, err := client.ListCurrencies(context.Background())
	require.NoError(t, err)
	require.Len(t, currencies, 2)
	assert.Equal(t, domain.Currency{Code: "EUR", Name: "Euro"}, currencies[0])
	assert.Equal(t, domain.Currency{Code: "USD", Name: "United States Dollar"}, currencies[1])
}

func TestListCurrencies_CacheHit(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Write([]byte(`{"USD":"United States Dollar"}`)) //nolint:errcheck
	}))
	defer srv.Close()

	client, _ := newClient(t, srv.URL)

	_, err := client.ListCurrencies(context.Background())
	require.NoError(t, err)
	_, err = client.ListCurrencies(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(1), calls.Load())
}

func TestListCurrencies_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte("Forbidden")) //nolint:errcheck
	}))
	defer srv.Close()

	client, _ := newClient(t, srv.URL)

	_, err := client.ListCurrencies(context.Background())
	var upstreamErr *domain.UpstreamError
	require.ErrorAs(t, err, &upstreamErr)
	assert.Equal(t, http.StatusForbidden, upstreamErr.StatusCode)
}
