package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"

	"github.com/joseph-ayodele/doc-intake-bot/internal/bot"
	"github.com/joseph-ayodele/doc-intake-bot/internal/common"
	"github.com/joseph-ayodele/doc-intake-bot/internal/extract"
	"github.com/joseph-ayodele/doc-intake-bot/internal/llm/deepseek"
	"github.com/joseph-ayodele/doc-intake-bot/internal/pipeline"
	"github.com/joseph-ayodele/doc-intake-bot/internal/sheets"
)

func main() {
	// Setup logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Context with signal
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// Load and validate configuration; missing secrets abort startup.
	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	// Storage sink (also validates the service-account credentials).
	appender, err := sheets.NewAppender(ctx, sheets.AppenderConfig{
		SpreadsheetID:  cfg.Sheets.SpreadsheetID,
		AppendRange:    cfg.Sheets.AppendRange,
		CredentialsB64: cfg.Sheets.CredentialsB64,
	}, logger)
	if err != nil {
		logger.Error("failed to build sheets appender", "error", err)
		os.Exit(1)
	}

	// Analysis client
	analyzer := deepseek.NewClient(deepseek.Config{
		APIKey:      cfg.LLM.APIKey,
		BaseURL:     cfg.LLM.BaseURL,
		Model:       cfg.LLM.Model,
		Temperature: cfg.LLM.Temperature,
		MaxTokens:   cfg.LLM.MaxTokens,
		Timeout:     cfg.LLM.Timeout,
	}, logger)

	// Wire the pipeline
	pipe := pipeline.New(logger, extract.NewPDFExtractor(logger), analyzer, appender)

	// Chat transport
	b, err := bot.New(bot.Config{
		Token:       cfg.Telegram.BotToken,
		PollTimeout: cfg.Telegram.PollTimeout,
	}, pipe, logger)
	if err != nil {
		logger.Error("failed to start bot", "error", err)
		os.Exit(1)
	}

	logger.Info("docbot running", "model", cfg.LLM.Model)
	if err := b.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("bot stopped", "error", err)
		os.Exit(1)
	}
	logger.Info("shutting down...")
}
