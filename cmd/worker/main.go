package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"carewatch/config"
	configPostgre "carewatch/config/postgre"
	alertPostgre "carewatch/internal/alert/repository/postgre"
	alertUsecase "carewatch/internal/alert/usecase"
	"carewatch/internal/analyzer"
	conversationPostgre "carewatch/internal/conversation/repository/postgre"
	"carewatch/internal/httpserver"
	"carewatch/internal/model"
	"carewatch/internal/notification"
	"carewatch/internal/notification/channel"
	notificationRepo "carewatch/internal/notification/repository"
	notificationPostgre "carewatch/internal/notification/repository/postgre"
	notificationUsecase "carewatch/internal/notification/usecase"
	"carewatch/internal/scheduler"
	userPostgre "carewatch/internal/user/repository/postgre"
	"carewatch/pkg/log"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config:", err)
		os.Exit(1)
	}

	// Initialize logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	// Create context with signal handling for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "Starting CareWatch detection worker...")

	// PostgreSQL
	db, err := configPostgre.Connect(ctx, cfg.Postgres)
	if err != nil {
		logger.Errorf(ctx, "Failed to connect to PostgreSQL: %v", err)
		os.Exit(1)
	}
	defer func() {
		if err := configPostgre.Disconnect(context.Background(), db); err != nil {
			logger.Errorf(ctx, "Failed to disconnect PostgreSQL: %v", err)
		}
	}()
	logger.Info(ctx, "PostgreSQL connected")

	// Repositories
	alertRepo := alertPostgre.New(logger, db)
	userRepo := userPostgre.New(logger, db)
	convRepo := conversationPostgre.New(logger, db)
	notifRepo := notificationPostgre.New(logger, db)

	// Notification dispatchers: channel -> fallback -> retry -> history
	notifier, sweepNotifier, err := buildNotifiers(logger, cfg, notifRepo)
	if err != nil {
		logger.Errorf(ctx, "Failed to build notification dispatcher: %v", err)
		os.Exit(1)
	}
	logger.Infof(ctx, "Notification dispatcher ready, primary channel: %s", notifier.ChannelType())

	// Analyzers
	registry := analyzer.NewRegistry(logger,
		analyzer.NewEmotionPatternAnalyzer(logger, analyzer.EmotionThresholds{
			HighConsecutiveDays:   cfg.Analyzer.EmotionHighConsecutiveDays,
			HighNegativeRatio:     cfg.Analyzer.EmotionHighNegativeRatio,
			MediumConsecutiveDays: cfg.Analyzer.EmotionMediumConsecutiveDays,
			MediumNegativeRatio:   cfg.Analyzer.EmotionMediumNegativeRatio,
		}),
		analyzer.NewNoResponseAnalyzer(logger, analyzer.NoResponseThresholds{
			HighConsecutiveDays:   cfg.Analyzer.NoResponseHighConsecutiveDays,
			HighMaxResponseRate:   cfg.Analyzer.NoResponseHighMaxResponseRate,
			MediumConsecutiveDays: cfg.Analyzer.NoResponseMediumConsecutiveDays,
			MediumMaxResponseRate: cfg.Analyzer.NoResponseMediumMaxResponseRate,
		}),
		analyzer.NewKeywordAnalyzer(logger, analyzer.KeywordLists{
			EmergencyKeywords: cfg.Analyzer.EmergencyKeywords,
			WarningKeywords:   cfg.Analyzer.WarningKeywords,
			WarningLevel:      model.ParseAlertLevel(cfg.Analyzer.WarningLevel),
		}),
	)
	logger.Infof(ctx, "Analyzer registry ready: %v", registry.Supported())

	// Use cases
	alertUC := alertUsecase.New(logger, alertRepo, userRepo, convRepo, registry, notifier, alertUsecase.Config{
		AnalysisDays:  cfg.Analyzer.AnalysisDays,
		BatchWorkers:  cfg.Batch.Workers,
		UserTimeout:   cfg.Batch.UserTimeout,
		TitleTemplate: cfg.Notification.TitleTemplate,
	})
	notifUC := notificationUsecase.New(logger, notifRepo, sweepNotifier, notificationUsecase.Config{
		MaxRetries: cfg.Notification.SweepMaxRetries,
		BatchLimit: cfg.Notification.SweepBatchLimit,
	})

	// Scheduler
	sched, err := scheduler.New(logger, alertUC, notifUC, scheduler.Config{
		DetectionCron:  cfg.Scheduler.DetectionCron,
		RetrySweepCron: cfg.Scheduler.RetrySweepCron,
	})
	if err != nil {
		logger.Errorf(ctx, "Failed to build scheduler: %v", err)
		os.Exit(1)
	}
	sched.Start()
	defer func() {
		if err := sched.Stop(context.Background()); err != nil {
			logger.Errorf(ctx, "Scheduler stop: %v", err)
		}
	}()

	// Ops HTTP server (health/readiness); blocks until shutdown signal.
	srv, err := httpserver.New(logger, httpserver.Config{
		Host: cfg.HTTPServer.Host,
		Port: cfg.HTTPServer.Port,
		Mode: cfg.HTTPServer.Mode,
		DB:   db,
	})
	if err != nil {
		logger.Errorf(ctx, "Failed to build ops server: %v", err)
		os.Exit(1)
	}
	if err := srv.Run(ctx); err != nil {
		logger.Errorf(ctx, "Ops server: %v", err)
	}

	logger.Info(ctx, "CareWatch detection worker stopped")
}

// buildNotifiers composes the delivery stacks. Order matters: the history
// decorator must be outermost so it records one row per dispatch, after
// retries and fallback have resolved. The alert path and the sweep share
// the same channel but get separate retry wrappers: only the alert path's
// wrapper may persist deferred retry records. The sweep already owns its
// record's lifecycle, so its wrapper must not open a fresh record each time
// a due one fails.
func buildNotifiers(logger log.Logger, cfg *config.Config, notifRepo notificationRepo.Repository) (notification.Service, notification.Service, error) {
	var primary notification.Service
	switch cfg.Notification.Channel {
	case "mock":
		primary = channel.NewMock(logger)
	default:
		webhook, err := channel.NewWebhook(logger, channel.WebhookConfig{
			URL:     cfg.Webhook.URL,
			Timeout: cfg.Webhook.Timeout,
		})
		if err != nil {
			return nil, nil, err
		}
		primary = webhook
	}

	if cfg.Notification.FallbackEnabled && primary.ChannelType() != model.ChannelMock {
		primary = notification.NewFallback(logger, primary, channel.NewMock(logger))
	}

	retryCfg := notification.RetryConfig{
		MaxAttempts:  cfg.Notification.RetryMaxAttempts,
		InitialDelay: cfg.Notification.RetryInitialDelay,
		Multiplier:   cfg.Notification.RetryMultiplier,
	}

	notifier := notification.NewHistory(logger,
		notification.NewRetry(logger, primary, notifRepo, retryCfg), notifRepo)
	sweepNotifier := notification.NewHistory(logger,
		notification.NewRetry(logger, primary, nil, retryCfg), notifRepo)

	return notifier, sweepNotifier, nil
}
