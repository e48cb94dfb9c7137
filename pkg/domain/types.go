package domain

// RateTable maps a currency code to the number of units of that currency
// per one unit of the base currency (USD for the spot-rate provider).
// The base currency is treated as 1.0 when it is absent from the table.
type RateTable map[string]float64

// Currency is a single entry of the upstream currency catalog.
type Currency struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// HistoricalSeries maps an ISO date (YYYY-MM-DD) to the rate of a single
// currency expressed as units per 1 EUR, covering one calendar year.
// An empty (non-nil) series is a valid cached result meaning the upstream
// has no data for that currency.
type HistoricalSeries map[string]float64

// CrossRatePoint is one derived point of a historical cross-rate series.
type CrossRatePoint struct {
	Date string  `json:"date"`
	Rate float64 `json:"rate"`
}

// ConversionResult is the outcome of a currency conversion. Amounts are in
// the smallest currency unit to avoid floating-point drift in storage.
type ConversionResult struct {
	SourceAmount   int64  `json:"source_amount"`
	SourceCurrency string `json:"source_currency"`
	TargetAmount   int64  `json:"target_amount"`
	TargetCurrency string `json:"target_currency"`
}
