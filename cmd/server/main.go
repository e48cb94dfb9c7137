package main

import (
	"fmt"
	"log/slog"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	infracache "github.com/mato5/purple-currency-converter/infra/cache"
	"github.com/mato5/purple-currency-converter/infra/provider/ecb"
	"github.com/mato5/purple-currency-converter/infra/provider/openexchangerates"
	infrarepo "github.com/mato5/purple-currency-converter/infra/repository"
	"github.com/mato5/purple-currency-converter/pkg/cache"
	"github.com/mato5/purple-currency-converter/pkg/config"
	"github.com/mato5/purple-currency-converter/pkg/service/conversion"
	"github.com/mato5/purple-currency-converter/pkg/service/history"
	"github.com/mato5/purple-currency-converter/webapi"
)

func main() {
	if err := run(); err != nil {
		charmlog.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load application configuration: %w", err)
	}

	logger := newLogger(cfg.Log)
	slog.SetDefault(logger)

	rateCache, err := newCache(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize cache: %w", err)
	}

	db, err := gorm.Open(postgres.Open(cfg.DB.Url), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	store, err := infrarepo.NewConversionRepository(db)
	if err != nil {
		return fmt.Errorf("failed to migrate conversion history: %w", err)
	}

	oxr := openexchangerates.New(cfg.Exchange, rateCache, logger)
	ecbClient := ecb.New(cfg.Exchange, rateCache, logger)

	app := webapi.NewApp(webapi.Deps{
		Conversion: conversion.New(oxr, store, logger),
		History:    history.New(ecbClient, logger),
		Catalog:    oxr,
		Store:      store,
		Config:     cfg,
		Logger:     logger,
	})

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("starting server", "env", cfg.Env, "addr", addr)

	return app.Listen(addr)
}

func newLogger(cfg *config.Log) *slog.Logger {
	level := slog.Level(cfg.Level)
	opts := &slog.HandlerOptions{Level: level}
	if cfg.Format == "text" {
		return slog.New(slog.NewTextHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, opts))
}

func newCache(cfg *config.App, logger *slog.Logger) (cache.Cache, error) {
	if !cfg.Redis.Enabled {
		logger.Info("Using in-memory rate cache")
		return infracache.NewMemoryCache(), nil
	}

	opt, err := redis.ParseURL(cfg.Redis.URL)
	if err != nil {
		return nil, err
	}
	opt.PoolSize = cfg.Redis.PoolSize
	opt.DialTimeout = cfg.Redis.DialTimeout
	opt.ReadTimeout = cfg.Redis.ReadTimeout
	opt.WriteTimeout = cfg.Redis.WriteTimeout

	logger.Info("Using Redis rate cache", "addr", opt.Addr)
	return infracache.NewRedisCache(opt, cfg.Redis.KeyPrefix, logger), nil
}
