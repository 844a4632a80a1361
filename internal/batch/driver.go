// Package batch drives one validation run over a list of input rows.
package batch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/dukerupert/addrcheck/internal/address"
	"github.com/dukerupert/addrcheck/internal/sheet"
	"github.com/dukerupert/addrcheck/internal/telemetry"
)

// DefaultDelay is the pause between rows. It is a client-side self-throttle,
// not a reaction to anything the service says.
const DefaultDelay = 100 * time.Millisecond

// Config holds driver configuration
type Config struct {
	// RunID identifies this run in logs
	RunID string

	// Delay is the fixed pause after each row
	Delay time.Duration
}

// Summary counts what happened during a run.
type Summary struct {
	Total     int
	Succeeded int
	Skipped   int
}

// Driver validates rows one at a time, in input order. The output is
// written once before the first row and rewritten after every successful row.
type Driver struct {
	config     Config
	validator  address.Validator
	classifier *address.Classifier
	writer     sheet.Writer
	metrics    *telemetry.BatchMetrics
	logger     zerolog.Logger
}

// NewDriver creates a new batch driver
func NewDriver(
	validator address.Validator,
	classifier *address.Classifier,
	writer sheet.Writer,
	metrics *telemetry.BatchMetrics,
	config Config,
	logger zerolog.Logger,
) *Driver {
	// Set defaults
	if config.RunID == "" {
		config.RunID = fmt.Sprintf("run-%s", uuid.New().String()[:8])
	}
	if config.Delay == 0 {
		config.Delay = DefaultDelay
	}
	if classifier == nil {
		classifier = address.NewClassifier(address.DefaultSuffixPolicy)
	}
	if metrics == nil {
		metrics = telemetry.NewBatchMetrics("")
	}

	return &Driver{
		config:     config,
		validator:  validator,
		classifier: classifier,
		writer:     writer,
		metrics:    metrics,
		logger:     logger.With().Str("run_id", config.RunID).Logger(),
	}
}

// Run processes every record. A row whose validation call fails is logged
// and skipped; the run only stops early when ctx is cancelled or the
// output cannot be written.
func (d *Driver) Run(ctx context.Context, records []address.InputRecord) (Summary, error) {
	summary := Summary{Total: len(records)}
	output := make([]sheet.OutputRecord, 0, len(records))

	d.logger.Info().
		Int("rows", len(records)).
		Dur("delay", d.config.Delay).
		Msg("batch starting")

	// Header-only output, so a run where every row fails still leaves a file.
	if err := d.writer.Write(ctx, output); err != nil {
		return summary, fmt.Errorf("failed to initialize output: %w", err)
	}
	d.metrics.OutputWrites.Inc()

	for i, rec := range records {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		logger := d.logger.With().Int("row", i+1).Logger()
		req := address.NewValidationRequest(rec)

		logger.Info().
			Str("address", rec.AddressLine()).
			Str("city", rec.City).
			Str("state", rec.State).
			Str("postal_code", rec.PostalCode).
			Msg("validating")

		start := time.Now()
		resp, err := d.validator.Validate(ctx, req)
		d.metrics.ObserveValidation(time.Since(start))

		if err != nil {
			if ctx.Err() != nil {
				return summary, ctx.Err()
			}
			d.skip(logger, err)
			summary.Skipped++
		} else {
			c := d.classifier.Classify(resp)
			output = append(output, sheet.NewOutputRecord(rec, c))
			d.metrics.RecordSuccess(string(c.Class), string(c.GeocodeGranularity), c.SuffixApplied)
			summary.Succeeded++

			logger.Info().
				Str("class", string(c.Class)).
				Str("final_zip", c.FinalZIP).
				Str("validation_granularity", string(c.ValidationGranularity)).
				Str("geocode_granularity", string(c.GeocodeGranularity)).
				Msg("classified")

			if err := d.writer.Write(ctx, output); err != nil {
				return summary, fmt.Errorf("failed to write output after row %d: %w", i+1, err)
			}
			d.metrics.OutputWrites.Inc()
		}

		if err := sleep(ctx, d.config.Delay); err != nil {
			return summary, err
		}
	}

	d.logger.Info().
		Int("total", summary.Total).
		Int("succeeded", summary.Succeeded).
		Int("skipped", summary.Skipped).
		Msg("batch complete")

	return summary, nil
}

func (d *Driver) skip(logger zerolog.Logger, err error) {
	var te *address.TransportError
	if errors.As(err, &te) {
		logger.Error().
			Int("status", te.StatusCode).
			Str("body", te.Body).
			Msg("validation failed, skipping row")
		d.metrics.RecordSkip(te.StatusCode)
		return
	}

	logger.Error().Err(err).Msg("validation failed, skipping row")
	d.metrics.RecordSkip(0)
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
