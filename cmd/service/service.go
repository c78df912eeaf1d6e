// @title        Parking Spot API
// @version      1.0
// @description  停車位管理系統的使用者帳號 API
// @host         localhost:8080
// @BasePath     /api/v1
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"

	"parking-spot/internal/cache"
	"parking-spot/internal/config"
	"parking-spot/internal/database"
	"parking-spot/internal/handler"
	"parking-spot/internal/logger"
	"parking-spot/internal/metrics"
	appmiddleware "parking-spot/internal/middleware"
	"parking-spot/internal/router"
	"parking-spot/internal/service"
	"parking-spot/internal/validation"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"

	_ "parking-spot/docs" // 引入 swag 產出的 docs
)

var (
	loadConfig      = config.Load
	newPgxPool      = database.NewPgxPool
	newRedisClient  = cache.NewRedisClient
	rollbackAllFn   = database.RollbackAll
	runMigrationsFn = database.RunMigrations
	startServer     = func(e *echo.Echo, addr string) error { return e.Start(addr) }
	exitFunc        = os.Exit
)

// logOutput 為 logger 的輸出，測試可替換
var logOutput io.Writer = os.Stdout

func run() error {
	ctx := context.Background()

	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}

	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: cfg.LogPretty, Output: logOutput})

	if err := config.ApplyTimezone(cfg.Timezone); err != nil {
		return err
	}

	passwords, err := service.NewPasswordEncoder(cfg.Password.Encoder)
	if err != nil {
		return err
	}

	db, err := newPgxPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("DB 連線失敗: %w", err)
	}
	defer db.Close()

	rdb, err := newRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		return fmt.Errorf("Redis 連線失敗: %w", err)
	}
	defer rdb.Close()

	// 回滾並重新執行遷移
	if cfg.MigrateReset {
		log.Warn().Msg("MIGRATE_RESET: rolling back all migrations")
		if err := rollbackAllFn(cfg.DatabaseURL); err != nil {
			return fmt.Errorf("RollbackAll 失敗: %w", err)
		}
	}
	if err := runMigrationsFn(cfg.DatabaseURL); err != nil {
		return fmt.Errorf("Migration 執行失敗: %w", err)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	svc := service.NewUserService(db, passwords, metrics.New(reg), log)

	e := newEcho(cfg, log, reg)
	router.Setup(e, db, rdb, svc, reg)

	addr := ":" + cfg.Port
	log.Info().Str("addr", addr).Str("timezone", cfg.Timezone).Msg("server starting")
	if err := startServer(e, addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server: %w", err)
	}
	return nil
}

func newEcho(cfg *config.Config, log zerolog.Logger, reg prometheus.Registerer) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = validation.New(cfg.Password.MinLength, cfg.Password.MaxLength)
	e.HTTPErrorHandler = handler.NewHTTPErrorHandler(log)

	e.Use(middleware.RequestID())
	e.Use(middleware.Recover())
	e.Use(appmiddleware.RequestLogger(log))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "parking_spot",
		Subsystem:  "http",
		Registerer: reg,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics"
		},
	}))
	return e
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		exitFunc(1)
	}
}
