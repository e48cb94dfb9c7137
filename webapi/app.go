// Package webapi exposes the conversion service over HTTP with fiber.
package webapi

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/mato5/purple-currency-converter/pkg/config"
	"github.com/mato5/purple-currency-converter/pkg/provider"
	"github.com/mato5/purple-currency-converter/pkg/repository"
	"github.com/mato5/purple-currency-converter/pkg/service/conversion"
	"github.com/mato5/purple-currency-converter/pkg/service/history"
)

// Deps carries everything the HTTP layer needs.
type Deps struct {
	Conversion *conversion.Service
	History    *history.Service
	Catalog    provider.CurrencyCatalog
	Store      repository.ConversionStore
	Config     *config.App
	Logger     *slog.Logger
}

// NewApp builds the fiber application and registers all routes.
func NewApp(deps Deps) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			status := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				status = e.Code
			}
			return ErrorResponseJSON(c, status, "Internal Server Error", err.Error())
		},
	})

	app.Use(limiter.New(limiter.Config{
		Max:        deps.Config.RateLimit.MaxRequests,
		Expiration: deps.Config.RateLimit.Window,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return ErrorResponseJSON(c, fiber.StatusTooManyRequests, "Too Many Requests", "Rate limit exceeded")
		},
	}))
	app.Use(recover.New())

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("App is working! 🚀")
	})

	api := app.Group("/api")
	api.Post("/conversions", Convert(deps.Conversion, deps.Logger))
	api.Get("/currencies", ListCurrencies(deps.Catalog, deps.Logger))
	api.Get("/timeseries", Timeseries(deps.History, deps.Logger))

	stats := api.Group("/statistics")
	stats.Get("/", GetStatistics(deps.Store, deps.Logger))
	stats.Get("/breakdown", GetBreakdown(deps.Store, deps.Logger))
	stats.Get("/trends", GetTrends(deps.Store, deps.Logger))

	return app
}
