package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"

	"github.com/nananom-farms/backend/internal/admin"
	"github.com/nananom-farms/backend/internal/app"
	"github.com/nananom-farms/backend/internal/appointments"
	"github.com/nananom-farms/backend/internal/auth"
	"github.com/nananom-farms/backend/internal/enquiries"
	"github.com/nananom-farms/backend/internal/observability"
	"github.com/nananom-farms/backend/internal/platform/cache"
	"github.com/nananom-farms/backend/internal/platform/db"
	"github.com/nananom-farms/backend/internal/platform/httpx"
	"github.com/nananom-farms/backend/internal/roles"
	"github.com/nananom-farms/backend/internal/services"
	"github.com/nananom-farms/backend/internal/token"
	"github.com/nananom-farms/backend/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	dbpool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer dbpool.Close()

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Warn("redis unavailable, catalog cache disabled", slog.Any("error", err))
		redisClient = nil
	}
	defer func() {
		if redisClient == nil {
			return
		}
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	codec := token.NewCodec(cfg.JWTSecret, cfg.BaseURL, cfg.JWTCustomerTTL, cfg.JWTStaffTTL)

	roleRepo := roles.NewRepository(dbpool)
	authRepo := auth.NewRepository(dbpool)
	authService := auth.NewService(authRepo, roleRepo)
	authHandler := auth.NewHandler(logger, authService, codec)

	serviceRepo := services.NewRepository(dbpool)
	catalogCache := services.NewCache(redisClient, cfg.CatalogCacheTTL)
	catalog := services.NewCatalog(serviceRepo, catalogCache, logger)
	serviceHandler := services.NewHandler(logger, catalog)

	appointmentRepo := appointments.NewRepository(dbpool)
	appointmentService := appointments.NewService(appointmentRepo, authRepo, serviceRepo)
	appointmentHandler := appointments.NewHandler(logger, appointmentService)

	var notifier enquiries.Notifier
	if redisClient != nil {
		enqueuer := jobs.NewEnqueuer(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
		defer func() {
			if err := enqueuer.Close(); err != nil {
				logger.Warn("asynq close", slog.Any("error", err))
			}
		}()
		notifier = enqueuer
	}
	enquiryRepo := enquiries.NewRepository(dbpool)
	enquiryService := enquiries.NewService(enquiryRepo, notifier, logger)
	enquiryHandler := enquiries.NewHandler(logger, enquiryService)

	statsRepo := admin.NewStatsRepository(dbpool)
	adminService := admin.NewService(statsRepo)
	adminHandler := admin.NewHandler(logger, adminService, authService)

	metrics := observability.NewMetrics()

	router := app.NewRouter(app.RouterConfig{
		Middleware: app.MiddlewareConfig{
			Logger:   logger,
			Config:   cfg,
			Verifier: codec,
			Metrics:  metrics,
		},
		Auth:         authHandler,
		Services:     serviceHandler,
		Appointments: appointmentHandler,
		Enquiries:    enquiryHandler,
		Admin:        adminHandler,
		Health: func(w http.ResponseWriter, r *http.Request) {
			if err := dbpool.Ping(r.Context()); err != nil {
				httpx.Error(w, http.StatusServiceUnavailable, "Database unavailable.")
				return
			}
			httpx.Success(w, http.StatusOK, "ok", nil)
		},
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
