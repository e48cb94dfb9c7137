package webapi

import (
	"log/slog"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/mato5/purple-currency-converter/pkg/provider"
	"github.com/mato5/purple-currency-converter/pkg/service/conversion"
	"github.com/mato5/purple-currency-converter/pkg/service/history"
)

// ConvertRequest is the request body for a conversion. The amount is in the
// smallest currency unit.
type ConvertRequest struct {
	AmountMinorUnits int64  `json:"amount_minor_units" validate:"required,gt=0"`
	SourceCurrency   string `json:"source_currency" validate:"required,len=3,alpha"`
	TargetCurrency   string `json:"target_currency" validate:"required,len=3,alpha"`
}

// Convert returns a fiber handler performing a currency conversion and
// recording it in the history store.
func Convert(svc *conversion.Service, logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := BindAndValidate[ConvertRequest](c)
		if err != nil {
			return ErrorResponseJSON(c, fiber.StatusBadRequest, "Validation failed", err.Error())
		}

		result, err := svc.Convert(
			c.Context(),
			input.AmountMinorUnits,
			strings.ToUpper(input.SourceCurrency),
			strings.ToUpper(input.TargetCurrency),
		)
		if err != nil {
			logger.Error("Conversion failed",
				"source", input.SourceCurrency, "target", input.TargetCurrency, "error", err)
			return ErrorResponseJSON(c, ErrorToStatusCode(err), ErrorToTitle(err), nil)
		}

		return SuccessResponseJSON(c, fiber.StatusCreated, "Conversion completed", result)
	}
}

// ListCurrencies returns a fiber handler serving the currency catalog.
func ListCurrencies(catalog provider.CurrencyCatalog, logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		currencies, err := catalog.ListCurrencies(c.Context())
		if err != nil {
			logger.Error("Failed to list currencies", "error", err)
			return ErrorResponseJSON(c, ErrorToStatusCode(err), ErrorToTitle(err), nil)
		}
		return SuccessResponseJSON(c, fiber.StatusOK, "Currencies fetched successfully", currencies)
	}
}

// Timeseries returns a fiber handler serving the historical cross-rate
// series for a currency pair over the trailing N days.
func Timeseries(svc *history.Service, logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		source := strings.ToUpper(c.Query("source"))
		target := strings.ToUpper(c.Query("target"))
		if source == "" || target == "" {
			return ErrorResponseJSON(c, fiber.StatusBadRequest,
				"Validation failed", "source and target query parameters are required")
		}

		days := c.QueryInt("days", 30)
		if days < 1 || days > 365 {
			return ErrorResponseJSON(c, fiber.StatusBadRequest,
				"Validation failed", "days must be between 1 and 365")
		}

		end := time.Now().UTC()
		start := end.AddDate(0, 0, -days)

		points, err := svc.GetCrossRates(c.Context(), source, target, start, end)
		if err != nil {
			logger.Error("Failed to fetch timeseries",
				"source", source, "target", target, "error", err)
			return ErrorResponseJSON(c, ErrorToStatusCode(err), ErrorToTitle(err), nil)
		}

		return SuccessResponseJSON(c, fiber.StatusOK, "Timeseries fetched successfully", points)
	}
}
