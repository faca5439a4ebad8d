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

	"github.com/sprier-tech/invoicedesk/internal/api"
	"github.com/sprier-tech/invoicedesk/internal/app"
	"github.com/sprier-tech/invoicedesk/internal/invoice"
	"github.com/sprier-tech/invoicedesk/internal/platform/cache"
	"github.com/sprier-tech/invoicedesk/internal/platform/db"
	"github.com/sprier-tech/invoicedesk/internal/printing"
	"github.com/sprier-tech/invoicedesk/internal/reminder"
	"github.com/sprier-tech/invoicedesk/internal/view"
	"github.com/sprier-tech/invoicedesk/report"
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
		logger.Warn("redis unavailable, reminder cache disabled", slog.Any("error", err))
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

	asynqClient := asynq.NewClient(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	defer func() {
		if err := asynqClient.Close(); err != nil {
			logger.Warn("asynq close", slog.Any("error", err))
		}
	}()

	templates, err := view.NewEngine()
	if err != nil {
		logger.Error("parse templates", slog.Any("error", err))
		os.Exit(1)
	}

	invoiceRepo := invoice.NewRepository(dbpool)
	invoiceService := invoice.NewService(invoiceRepo)

	reminderCache := reminder.NewCache(redisClient, cfg.UnpaidCacheTTL)
	reminderService := reminder.NewService(invoiceService, asynqClient, reminderCache)

	reportClient := report.NewClient(cfg.GotenbergURL)
	if err := reportClient.Ping(ctx); err != nil {
		logger.Warn("gotenberg unavailable, print falls back to html", slog.Any("error", err))
	}
	renderer, err := printing.NewRenderer(printing.Vendor{
		Name:    cfg.VendorName,
		Phone:   cfg.VendorPhone,
		Email:   cfg.VendorEmail,
		GSTNo:   cfg.VendorGSTNo,
		Website: cfg.VendorWebsite,
	}, reportClient)
	if err != nil {
		logger.Error("parse print template", slog.Any("error", err))
		os.Exit(1)
	}

	router := app.NewRouter(app.RouterParams{
		Logger:          logger,
		Config:          cfg,
		APIHandler:      api.NewHandler(logger, invoiceService, reminderService),
		InvoiceHandler:  invoice.NewHandler(logger, invoiceService, templates),
		PrintHandler:    printing.NewHandler(logger, invoiceService, renderer),
		ReminderHandler: reminder.NewHandler(logger, reminderService, templates),
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
