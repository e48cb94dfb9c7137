// Package conversion orchestrates currency conversions: validation, spot
// rate acquisition, amount derivation, and history recording.
package conversion

import (
	"context"
	"log/slog"

	"github.com/mato5/purple-currency-converter/pkg/currency"
	"github.com/mato5/purple-currency-converter/pkg/domain"
	"github.com/mato5/purple-currency-converter/pkg/exchange"
	"github.com/mato5/purple-currency-converter/pkg/provider"
	"github.com/mato5/purple-currency-converter/pkg/repository"
)

// Service converts amounts between currencies using the spot-rate provider.
type Service struct {
	spot   provider.SpotRates
	store  repository.ConversionStore
	logger *slog.Logger
}

// New creates a new conversion service.
func New(spot provider.SpotRates, store repository.ConversionStore, logger *slog.Logger) *Service {
	return &Service{
		spot:   spot,
		store:  store,
		logger: logger,
	}
}

// Convert converts sourceAmount (minor units) from source to target currency.
//
// Validation failures are raised before any network call. Converting a
// currency to itself is rejected as a caller error rather than served as a
// 1:1 conversion. Provider failures propagate unchanged in kind.
func (s *Service) Convert(ctx context.Context, sourceAmount int64, source, target string) (domain.ConversionResult, error) {
	if sourceAmount <= 0 {
		return domain.ConversionResult{}, domain.ErrInvalidAmount
	}
	if !currency.IsValidCode(source) || !currency.IsValidCode(target) {
		return domain.ConversionResult{}, domain.ErrInvalidCurrencyCode
	}
	if source == target {
		return domain.ConversionResult{}, domain.ErrIdenticalCurrency
	}

	rates, err := s.spot.FetchExchangeRates(ctx)
	if err != nil {
		return domain.ConversionResult{}, err
	}

	targetAmount, err := exchange.ConvertAmount(rates, source, target, sourceAmount)
	if err != nil {
		return domain.ConversionResult{}, err
	}

	result := domain.ConversionResult{
		SourceAmount:   sourceAmount,
		SourceCurrency: source,
		TargetAmount:   targetAmount,
		TargetCurrency: target,
	}

	// The conversion itself succeeded; a failed history write is diagnostic,
	// not caller-facing.
	if err := s.store.Append(ctx, result); err != nil {
		s.logger.Warn("Failed to record conversion",
			"source", source, "target", target, "error", err)
	}

	s.logger.Info("Conversion completed",
		"source", source, "target", target,
		"source_amount", sourceAmount, "target_amount", targetAmount)

	return result, nil
}
