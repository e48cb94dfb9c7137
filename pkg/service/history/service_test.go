package history_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/mato5/purple-currency-converter/pkg/domain"
	"github.com/mato5/purple-currency-converter/pkg/service/history"
)

// MockHistoricalRates is a mock implementation for testing
type MockHistoricalRates struct {
	mock.Mock
}

func (m *MockHistoricalRates) FetchYearlySeries(ctx context.Context, currency string, year int) (domain.HistoricalSeries, error) {
	args := m.Called(ctx, currency, year)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(domain.HistoricalSeries), args.Error(1)
}

func newService(provider *MockHistoricalRates) *history.Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return history.New(provider, logger)
}

func date(s string) time.Time {
	d, err := time.Parse(time.DateOnly, s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestGetCrossRates_SingleYear(t *testing.T) {
	provider := &MockHistoricalRates{}
	provider.On("FetchYearlySeries", mock.Anything, "GBP", 2024).
		Return(domain.HistoricalSeries{"2024-01-01": 1.15}, nil)
	provider.On("FetchYearlySeries", mock.Anything, "USD", 2024).
		Return(domain.HistoricalSeries{"2024-01-01": 0.92}, nil)

	svc := newService(provider)

	points, err := svc.GetCrossRates(context.Background(), "GBP", "USD", date("2024-01-01"), date("2024-01-01"))
	require.NoError(t, err)
	require.Len(t, points, 1)
	assert.Equal(t, "2024-01-01", points[0].Date)
	// USD/GBP = (USD/EUR) / (GBP/EUR) = 0.92 / 1.15
	assert.InDelta(t, 0.8, points[0].Rate, 1e-4)
}

func TestGetCrossRates_MultipleYears(t *testing.T) {
	provider := &MockHistoricalRates{}
	provider.On("FetchYearlySeries", mock.Anything, "GBP", 2023).
		Return(domain.HistoricalSeries{"2023-12-31": 1.14}, nil)
	provider.On("FetchYearlySeries", mock.Anything, "GBP", 2024).
		Return(domain.HistoricalSeries{"2024-01-02": 1.16}, nil)
	provider.On("FetchYearlySeries", mock.Anything, "USD", 2023).
		Return(domain.HistoricalSeries{"2023-12-31": 0.91}, nil)
	provider.On("FetchYearlySeries", mock.Anything, "USD", 2024).
		Return(domain.HistoricalSeries{"2024-01-02": 0.93}, nil)

	svc := newService(provider)

	points, err := svc.GetCrossRates(context.Background(), "GBP", "USD", date("2023-12-31"), date("2024-01-02"))
	require.NoError(t, err)
	require.Len(t, points, 2)
	assert.Equal(t, "2023-12-31", points[0].Date)
	assert.Equal(t, "2024-01-02", points[1].Date)

	// One fetch per (currency, year): 2 currencies x 2 years.
	provider.AssertNumberOfCalls(t, "FetchYearlySeries", 4)
}

func TestGetCrossRates_IdenticalPairFetchedOnce(t *testing.T) {
	provider := &MockHistoricalRates{}
	provider.On("FetchYearlySeries", mock.Anything, "GBP", 2024).
		Return(domain.HistoricalSeries{"2024-01-01": 1.15, "2024-01-02": 1.16}, nil)

	svc := newService(provider)

	points, err := svc.GetCrossRates(context.Background(), "GBP", "GBP", date("2024-01-01"), date("2024-01-02"))
	require.NoError(t, err)
	require.Len(t, points, 2)
	for _, p := range points {
		assert.InDelta(t, 1.0, p.Rate, 1e-9)
	}
	provider.AssertNumberOfCalls(t, "FetchYearlySeries", 1)
}

func TestGetCrossRates_EmptySeriesYieldsEmptyResult(t *testing.T) {
	provider := &MockHistoricalRates{}
	provider.On("FetchYearlySeries", mock.Anything, "XDR", 2024).
		Return(domain.HistoricalSeries{}, nil)
	provider.On("FetchYearlySeries", mock.Anything, "EUR", 2024).
		Return(domain.HistoricalSeries{"2024-01-01": 1.0}, nil)

	svc := newService(provider)

	points, err := svc.GetCrossRates(context.Background(), "XDR", "EUR", date("2024-01-01"), date("2024-01-31"))
	require.NoError(t, err)
	assert.Empty(t, points)
}

func TestGetCrossRates_InvalidCode(t *testing.T) {
	provider := &MockHistoricalRates{}
	svc := newService(provider)

	_, err := svc.GetCrossRates(context.Background(), "NOPE", "EUR", date("2024-01-01"), date("2024-01-31"))
	assert.ErrorIs(t, err, domain.ErrInvalidCurrencyCode)
	provider.AssertNotCalled(t, "FetchYearlySeries", mock.Anything, mock.Anything, mock.Anything)
}

func TestGetCrossRates_ProviderErrorPropagates(t *testing.T) {
	netErr := &domain.NetworkError{Provider: "ecb", Err: context.DeadlineExceeded}
	provider := &MockHistoricalRates{}
	provider.On("FetchYearlySeries", mock.Anything, "GBP", 2024).
		Return(domain.HistoricalSeries{"2024-01-01": 1.15}, nil)
	provider.On("FetchYearlySeries", mock.Anything, "USD", 2024).
		Return(nil, netErr)

	svc := newService(provider)

	_, err := svc.GetCrossRates(context.Background(), "GBP", "USD", date("2024-01-01"), date("2024-01-31"))
	var got *domain.NetworkError
	assert.ErrorAs(t, err, &got)
}
