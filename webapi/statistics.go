package webapi

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/mato5/purple-currency-converter/pkg/repository"
)

// GetStatistics returns a fiber handler serving the aggregate conversion
// statistics.
func GetStatistics(store repository.ConversionStore, logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		stats, err := store.Aggregate(c.Context())
		if err != nil {
			logger.Error("Failed to read statistics", "error", err)
			return ErrorResponseJSON(c, fiber.StatusInternalServerError, "Statistics not available", nil)
		}
		return SuccessResponseJSON(c, fiber.StatusOK, "Statistics fetched successfully", stats)
	}
}

// GetBreakdown returns a fiber handler serving conversion counts per target
// currency.
func GetBreakdown(store repository.ConversionStore, logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		rows, err := store.Breakdown(c.Context())
		if err != nil {
			logger.Error("Failed to read currency breakdown", "error", err)
			return ErrorResponseJSON(c, fiber.StatusInternalServerError, "Statistics not available", nil)
		}
		return SuccessResponseJSON(c, fiber.StatusOK, "Breakdown fetched successfully", rows)
	}
}

// GetTrends returns a fiber handler serving daily conversion volume over the
// trailing window.
func GetTrends(store repository.ConversionStore, logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		days := c.QueryInt("days", 30)
		if days < 1 || days > 365 {
			return ErrorResponseJSON(c, fiber.StatusBadRequest,
				"Validation failed", "days must be between 1 and 365")
		}

		rows, err := store.Trends(c.Context(), days)
		if err != nil {
			logger.Error("Failed to read trends", "error", err)
			return ErrorResponseJSON(c, fiber.StatusInternalServerError, "Statistics not available", nil)
		}
		return SuccessResponseJSON(c, fiber.StatusOK, "Trends fetched successfully", rows)
	}
}
