// Command addrcheck validates every address in a spreadsheet against the
// Google Address Validation API and writes an annotated copy.
//
// Configuration comes from the environment (and .env); see internal.NewConfig.
// Exit codes: 0 = loop completed, 1 = configuration, input or output error.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/rs/zerolog/log"

	"github.com/dukerupert/addrcheck/internal"
	"github.com/dukerupert/addrcheck/internal/address"
	"github.com/dukerupert/addrcheck/internal/batch"
	"github.com/dukerupert/addrcheck/internal/sheet"
	"github.com/dukerupert/addrcheck/internal/storage"
	"github.com/dukerupert/addrcheck/internal/telemetry"
)

func run(ctx context.Context) error {
	// Load configuration
	cfg, err := internal.NewConfig()
	if err != nil {
		return fmt.Errorf("config initialization failed: %w", err)
	}

	// Configure logger
	logger := internal.NewLogger(os.Stdout, cfg.Env, cfg.LogLevel)

	// Read input rows
	logger.Info().Str("path", cfg.InputPath).Msg("Reading input...")
	records, err := sheet.ReadFile(cfg.InputPath)
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}
	logger.Info().Int("rows", len(records)).Msg("Input loaded")

	// Initialize output storage
	outDir, outName := filepath.Split(cfg.OutputPath)
	outStore, err := storage.NewLocalStorage(outDir)
	if err != nil {
		return fmt.Errorf("failed to initialize output storage: %w", err)
	}
	writer, err := sheet.NewFileWriter(outStore, outName)
	if err != nil {
		return fmt.Errorf("failed to initialize output writer: %w", err)
	}
	exists, err := writer.Exists(ctx)
	if err != nil {
		return fmt.Errorf("failed to check output: %w", err)
	}
	if exists {
		logger.Warn().Str("path", cfg.OutputPath).Msg("Output exists and will be replaced")
	}

	// Initialize address validator
	googleCfg := address.GoogleConfig{
		APIKey:  cfg.APIKey,
		BaseURL: cfg.APIBaseURL,
		Logger:  &logger,
	}
	if dir := cfg.Diagnostics.ResponseDumpDir; dir != "" {
		dump, err := storage.NewLocalStorage(dir)
		if err != nil {
			return fmt.Errorf("failed to initialize response dump: %w", err)
		}
		googleCfg.Dump = dump
	}
	validator, err := address.NewGoogleValidator(googleCfg)
	if err != nil {
		return fmt.Errorf("failed to initialize address validator: %w", err)
	}

	metrics := telemetry.NewBatchMetrics("addrcheck")
	classifier := address.NewClassifier(cfg.Suffix.Policy())
	driver := batch.NewDriver(validator, classifier, writer, metrics, batch.Config{Delay: cfg.RequestDelay}, logger)

	summary, runErr := driver.Run(ctx, records)

	if path := cfg.Diagnostics.MetricsTextfile; path != "" {
		if err := metrics.WriteTextfile(path); err != nil {
			logger.Warn().Err(err).Str("path", path).Msg("failed to write metrics textfile")
		}
	}

	if runErr != nil {
		return fmt.Errorf("batch failed after %d of %d rows: %w", summary.Succeeded+summary.Skipped, summary.Total, runErr)
	}

	logger.Info().
		Str("output", cfg.OutputPath).
		Int("succeeded", summary.Succeeded).
		Int("skipped", summary.Skipped).
		Msg("Done")

	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		log.Fatal().Err(err).Send()
	}
}
