package config

import (
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Load reads configuration from the environment, optionally layering a .env
// file first, and validates it once for the lifetime of the process.
func Load(envFilePath ...string) (*App, error) {
	logger := slog.Default()

	if len(envFilePath) == 0 {
		if err := godotenv.Load(); err != nil {
			logger.Warn("No .env file found in current directory")
		}
	} else {
		for _, path := range envFilePath {
			if err := godotenv.Load(path); err != nil {
				logger.Debug("Environment file not found", "path", path, "error", err)
				continue
			}
			logger.Info("Environment loaded from file", "path", path)
			break
		}
	}

	var cfg App
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger.Info("App config loaded",
		"env", cfg.Env,
		"oxr_url", cfg.Exchange.OpenExchangeRatesUrl,
		"ecb_url", cfg.Exchange.EcbUrl,
		"rates_ttl", cfg.Exchange.RatesTTL,
		"currencies_ttl", cfg.Exchange.CurrenciesTTL,
		"timeseries_ttl", cfg.Exchange.TimeseriesTTL,
		"http_timeout", cfg.Exchange.HTTPTimeout,
	)
	return &cfg, nil
}
