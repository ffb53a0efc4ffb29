package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"gullak/internal/amqp"
	"gullak/internal/config"
	"gullak/internal/gold"
	apphttp "gullak/internal/http"
	"gullak/internal/ledger"
	"gullak/internal/llm"
	applog "gullak/internal/log"
	"gullak/internal/news"
	"gullak/internal/ppp"
	"gullak/internal/services"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	// Setup structured logging
	logger := applog.New(applog.Config{
		Level:     slog.LevelInfo,
		Component: applog.ComponentApp,
	})
	applog.SetDefault(logger)

	logger.Info("Starting gullak server")

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Per-user ledgers with LRU + TTL eviction
	store := ledger.NewStore(cfg.StoreCapacity, cfg.StoreTTL)
	store.StartCleanup(cfg.CleanupInterval)
	defer store.Stop()

	// AMQP is optional: without a broker the server still serves commands,
	// it just skips the audit event pipeline.
	var amqpClient *amqp.Client
	if cfg.AMQPURL != "" {
		var err error
		amqpClient, err = amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Warn("Failed to initialize AMQP client, continuing without event pipeline", "error", err)
			amqpClient = nil
		} else {
			logger.Info("AMQP client initialized", "exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
		}
	} else {
		logger.Info("AMQP disabled - command events will not be archived")
	}

	commands := services.NewCommandService(ledger.NewInterpreter(store), amqpClient)
	defer commands.Close()

	pppTable, err := ppp.Load()
	if err != nil {
		logger.Error("Failed to load purchasing power table", "error", err)
		os.Exit(1)
	}

	deps := apphttp.Deps{
		Commands:          commands,
		News:              news.NewFetcher(cfg.NewsFeedURL),
		Gold:              gold.NewClient(cfg.GoldBaseURL),
		PPP:               pppTable,
		AuthToken:         cfg.AuthToken,
		OwnerNumber:       cfg.OwnerNumber,
		NewsLimit:         cfg.NewsLimit,
		RequestsPerMinute: cfg.RequestsPerMinute,
	}

	// The LLM client needs GEMINI_API_KEY; without it the chat endpoints
	// answer with a warning instead of model output.
	if llmClient, err := llm.NewClient(ctx, cfg.GeminiModel); err != nil {
		logger.Warn("Failed to initialize LLM client, chat endpoints degraded", "error", err)
	} else {
		deps.LLM = llmClient
	}

	srv := apphttp.NewServer(":"+cfg.Port, deps)
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 30 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("Listening", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		logger.Info("Shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server error", "error", err)
		os.Exit(1)
	}
	logger.Info("Server stopped gracefully")
}
