// Package repository persists conversion history with gorm and computes the
// aggregate statistics served by the API.
package repository

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mato5/purple-currency-converter/pkg/domain"
	"github.com/mato5/purple-currency-converter/pkg/repository"
)

// Conversion is the persisted record of one completed conversion. Amounts
// are stored in minor units.
type Conversion struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	SourceCurrency string    `gorm:"size:3;not null"`
	TargetCurrency string    `gorm:"size:3;not null;index"`
	SourceAmount   int64     `gorm:"not null"`
	TargetAmount   int64     `gorm:"not null"`
	CreatedAt      time.Time `gorm:"index"`
}

// ConversionRepository implements repository.ConversionStore on gorm.
type ConversionRepository struct {
	db *gorm.DB
}

// NewConversionRepository creates the store and migrates its schema.
func NewConversionRepository(db *gorm.DB) (*ConversionRepository, error) {
	if err := db.AutoMigrate(&Conversion{}); err != nil {
		return nil, err
	}
	return &ConversionRepository{db: db}, nil
}

// NewConversionRepositoryWithDB wraps an existing connection without running
// migrations. Used by tests driving a mocked database.
func NewConversionRepositoryWithDB(db *gorm.DB) *ConversionRepository {
	return &ConversionRepository{db: db}
}

// Append records one completed conversion.
func (r *ConversionRepository) Append(ctx context.Context, result domain.ConversionResult) error {
	record := Conversion{
		ID:             uuid.New(),
		SourceCurrency: result.SourceCurrency,
		TargetCurrency: result.TargetCurrency,
		SourceAmount:   result.SourceAmount,
		TargetAmount:   result.TargetAmount,
	}
	return r.db.WithContext(ctx).Create(&record).Error
}

// Aggregate returns the total conversion count and the most converted target
// currency with the summed amount received in it. The top currency is ranked
// by conversion count; the reported amount is the sum of its target amounts.
// An empty history yields zero values, not an error.
func (r *ConversionRepository) Aggregate(ctx context.Context) (repository.Statistics, error) {
	var stats repository.Statistics

	if err := r.db.WithContext(ctx).Model(&Conversion{}).Count(&stats.TotalConversions).Error; err != nil {
		return repository.Statistics{}, err
	}

	// Summing as double precision avoids bigint overflow on extreme volumes;
	// the result is rounded back to minor units.
	var top struct {
		Currency string
		Total    float64
	}
	err := r.db.WithContext(ctx).Model(&Conversion{}).
		Select("target_currency AS currency, COUNT(*) AS count, SUM(CAST(target_amount AS double precision)) AS total").
		Group("target_currency").
		Order("count DESC").
		Limit(1).
		Scan(&top).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return repository.Statistics{}, err
	}
	stats.MostConvertedCurrency = top.Currency
	stats.MostConvertedCurrencyAmount = int64(math.Round(top.Total))

	return stats, nil
}

// Breakdown returns the conversion count per target currency, descending.
func (r *ConversionRepository) Breakdown(ctx context.Context) ([]repository.CurrencyCount, error) {
	var rows []repository.CurrencyCount
	err := r.db.WithContext(ctx).Model(&Conversion{}).
		Select("target_currency AS currency, COUNT(*) AS count").
		Group("target_currency").
		Order("count DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// Trends returns daily conversion counts over the trailing window. Days are
// rendered as YYYY-MM-DD in the database, not scanned as timestamps.
func (r *ConversionRepository) Trends(ctx context.Context, days int) ([]repository.DailyCount, error) {
	since := time.Now().AddDate(0, 0, -days)

	var rows []repository.DailyCount
	err := r.db.WithContext(ctx).Model(&Conversion{}).
		Select("to_char(created_at, 'YYYY-MM-DD') AS date, COUNT(*) AS count").
		Where("created_at >= ?", since).
		Group("to_char(created_at, 'YYYY-MM-DD')").
		Order("date ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
