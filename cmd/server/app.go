package main

import (
	"context"
	"errors"

	"github.com/labstack/echo/v4"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/acmedash/billing-admin/internal/api"
	"github.com/acmedash/billing-admin/internal/api/handler"
	"github.com/acmedash/billing-admin/internal/api/metrics"
	"github.com/acmedash/billing-admin/internal/core/ports"
	"github.com/acmedash/billing-admin/internal/core/service"
	"github.com/acmedash/billing-admin/internal/infrastructure/db/postgres"
	"github.com/acmedash/billing-admin/internal/infrastructure/db/redis"
	"github.com/acmedash/billing-admin/internal/pkg/config"
	"github.com/acmedash/billing-admin/pkg/logger"
)

// app owns every long-lived resource of the server process.
type app struct {
	router *echo.Echo
	db     *gorm.DB
	rdb    *goredis.Client
}

func newApp(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*app, error) {
	db, err := postgres.Connect(ctx, postgres.Config{
		DSN:             cfg.Postgres.URL,
		MaxOpenConns:    cfg.Postgres.MaxOpenConns,
		MaxIdleConns:    cfg.Postgres.MaxIdleConns,
		ConnMaxLifetime: cfg.Postgres.ConnMaxLifetime,
	})
	if err != nil {
		return nil, err
	}
	if err := db.Use(metrics.QueryTimer{}); err != nil {
		_ = postgres.Close(db)
		return nil, err
	}

	a := &app{db: db}
	readiness := map[string]handler.DependencyCheck{
		"postgres": func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
	}

	var cache ports.ViewCache = redis.NopViewCache{}
	if cfg.Cache.Enabled {
		rdb, err := redis.Connect(ctx, redis.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			_ = postgres.Close(db)
			return nil, err
		}
		a.rdb = rdb
		cache = redis.NewViewCache(rdb, cfg.Cache.TTL)
		readiness["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
	} else {
		log.Warn().Msg("view cache disabled")
	}
	cache = metrics.InstrumentViewCache(cache)

	invoices := postgres.NewInvoiceRepository(db)
	customers := postgres.NewCustomerRepository(db)
	revenue := postgres.NewRevenueRepository(db)
	users := postgres.NewUserRepository(db)

	a.router = api.NewRouter(api.Dependencies{
		Auth:      service.NewAuthService(users, cfg.JWTSecret, cfg.TokenTTL, logger.Component(log, "auth")),
		Invoices:  service.NewInvoiceService(invoices, cache, logger.Component(log, "invoices")),
		Queries:   service.NewQueryService(invoices, customers, revenue, cache, logger.Component(log, "queries")),
		Readiness: readiness,
		JWTSecret: cfg.JWTSecret,
		Logger:    logger.Component(log, "http"),
	})
	return a, nil
}

// Close releases the connection pools.
func (a *app) Close() error {
	var errs []error
	if a.rdb != nil {
		errs = append(errs, a.rdb.Close())
	}
	errs = append(errs, postgres.Close(a.db))
	return errors.Join(errs...)
}
