package domain

import (
	"errors"
	"fmt"
)

// Caller-facing errors. These are constructed at the point of failure and
// matched with errors.Is; error kind is never derived from message text.
var (
	// ErrInvalidCurrencyCode is returned for malformed or unrecognized currency codes
	ErrInvalidCurrencyCode = errors.New("invalid currency code")
	// ErrIdenticalCurrency is returned when source and target currency are the same
	ErrIdenticalCurrency = errors.New("source and target currency are identical")
	// ErrCurrencyNotFound is returned when a well-formed code is absent from the rate table
	ErrCurrencyNotFound = errors.New("currency not found in exchange rates")
	// ErrInvalidAmount is returned when the conversion amount is not a positive integer
	ErrInvalidAmount = errors.New("amount must be positive")
	// ErrMalformedResponse is returned when an upstream 2xx payload has an unusable shape
	ErrMalformedResponse = errors.New("malformed upstream response")
)

// UpstreamError reports a non-success HTTP status from an upstream provider.
// Body is kept for diagnostic logging and must not be shown to end users.
type UpstreamError struct {
	Provider   string
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s returned status %d", e.Provider, e.StatusCode)
}

// NetworkError reports a timeout or transport-level failure reaching an
// upstream provider, regardless of which provider call caused it.
type NetworkError struct {
	Provider string
	Err      error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error reaching %s: %v", e.Provider, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }
