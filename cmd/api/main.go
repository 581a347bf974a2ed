package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	flag "github.com/spf13/pflag"

	"github-commits-notifier/config"
	_ "github-commits-notifier/docs" // Swagger docs
	"github-commits-notifier/internal/httpserver"
	"github-commits-notifier/internal/notifier"
	"github-commits-notifier/internal/subscription"
	"github-commits-notifier/internal/webhook"
	"github-commits-notifier/pkg/log"
	"github-commits-notifier/pkg/telegram"
)

// @title       GitHub Commits Notifier API
// @description Relays GitHub push webhooks to chat rooms.
// @version     1
// @host        localhost:8080
// @schemes     http
func main() {
	configPath := flag.StringP("config", "c", "", "path to config file (default: ./config/config.yaml)")
	flag.Parse()

	// 1. Configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		os.Exit(1)
	}

	// 2. Logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})
	defer func() { _ = log.Sync(logger) }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "Starting GitHub Commits Notifier...")
	logger.Infof(ctx, "Environment: %s", cfg.Environment.Name)

	// 3. Chat backend
	var messenger notifier.Messenger
	if cfg.Telegram.BotToken != "" {
		bot := telegram.NewBot(cfg.Telegram.BotToken)
		bot.SetBaseURL(cfg.Telegram.APIURL)
		bot.SetRateLimit(cfg.Telegram.RateLimitPerSec, cfg.Telegram.Burst)
		bot.SetTimeout(cfg.Telegram.Timeout)
		messenger = bot
		logger.Info(ctx, "Telegram messenger initialized")
	} else {
		messenger = notifier.NewLogMessenger(logger)
		logger.Warn(ctx, "TELEGRAM_BOT_TOKEN is missing, notifications will only be logged")
	}

	// 4. Subscriptions and relay
	resolver := subscription.NewResolver(cfg.GithubCommits.Repos)
	logger.Infof(ctx, "Loaded subscriptions for %d repositories", resolver.Repositories())

	notifierUC := notifier.New(resolver, messenger, logger)
	webhookHandler := webhook.NewHandler(notifierUC, webhook.Config{
		DedupeSize:   cfg.Webhook.DedupeSize,
		DedupeTTL:    cfg.Webhook.DedupeTTL,
		MaxBodyBytes: cfg.Webhook.MaxBodyBytes,
	}, logger)

	// 5. HTTP Server
	httpServer, err := httpserver.New(httpserver.Config{
		Logger:            logger,
		Port:              cfg.HTTPServer.Port,
		Mode:              cfg.HTTPServer.Mode,
		Environment:       cfg.Environment.Name,
		WebhookPath:       cfg.Webhook.Path,
		GitWebhookHandler: webhookHandler,
	})
	if err != nil {
		logger.Error(ctx, "Failed to initialize HTTP server: ", err)
		return
	}

	// 6. Run
	if err := httpServer.Run(ctx); err != nil {
		logger.Error(ctx, "Failed to run server: ", err)
		return
	}

	logger.Info(context.Background(), "Server stopped gracefully")
}
