package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/pochkachaiki/sensorgen/internal/anomaly"
	config "github.com/pochkachaiki/sensorgen/internal/config/anomaly_detector"
	"github.com/pochkachaiki/sensorgen/internal/export"
	"github.com/pochkachaiki/sensorgen/internal/logger"
	"github.com/pochkachaiki/sensorgen/internal/metrics"
	"github.com/pochkachaiki/sensorgen/internal/models/reading"
	"github.com/pochkachaiki/sensorgen/internal/profile"
)

func main() {
	cfg := config.MustLoad()

	if _, err := logger.Setup(os.Stdout, cfg.LogLevel); err != nil {
		slog.Error("logger setup error", "err", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		slog.Info("shutdown signal received")
		cancel()
	}()

	started := time.Now()
	if err := run(ctx, cfg); err != nil {
		slog.Error("detection failed", "err", err, "elapsed", time.Since(started))
		os.Exit(1)
	}
	slog.Info("anomaly detector stopped", "elapsed", time.Since(started))
}

func run(ctx context.Context, cfg *config.Config) error {
	slog.Info("starting anomaly detector",
		"input_dir", cfg.InputDir,
		"input_formats", cfg.InputFormats,
		"output_dir", cfg.OutputDir,
		"quantities", cfg.Quantities,
		"seed", cfg.Seed)

	formats, err := export.ParseFormats(cfg.InputFormats)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	m := metrics.New()
	var errs []error
	for _, name := range cfg.Quantities {
		p, err := profile.Lookup(name)
		if err != nil {
			return err
		}
		for _, v := range p.Variants {
			if err := ctx.Err(); err != nil {
				return errors.Join(append(errs, err)...)
			}
			if err := detectVariant(ctx, cfg, formats, m, p, v); err != nil {
				slog.ErrorContext(ctx, "variant failed", "quantity", p.Quantity, "variant", v.Number, "err", err)
				errs = append(errs, fmt.Errorf("%s variant %d: %w", p.Quantity, v.Number, err))
			}
		}
	}

	if err := m.WriteTextfile(cfg.MetricsFile); err != nil {
		errs = append(errs, fmt.Errorf("write metrics: %w", err))
	}
	return errors.Join(errs...)
}

func detectVariant(ctx context.Context, cfg *config.Config, formats []export.Format, m *metrics.Metrics, p *profile.Profile, v profile.Variant) error {
	ds, err := export.ReadDataset(cfg.InputDir, p.DatasetFile(v.Number), formats)
	if err != nil {
		return err
	}
	ds.Quantity = p.Quantity
	ds.Variant = v.Number

	contamination := v.Contamination
	if cfg.Contamination > 0 {
		contamination = cfg.Contamination
	}

	res, err := anomaly.Detect(reading.Values(ds.Readings), contamination, cfg.Seed)
	if err != nil {
		return err
	}

	out := filepath.Join(cfg.OutputDir, p.ScoredFile(v.Number))
	err = export.WriteFile(out, func(w io.Writer) error {
		return export.WriteScoredCSV(w, ds, res)
	})
	if err != nil {
		return err
	}

	m.ObserveDetection(p.Quantity, len(ds.Readings), res.Anomalies())
	slog.InfoContext(ctx, "variant scored",
		"quantity", p.Quantity,
		"variant", v.Number,
		"contamination", contamination,
		"rows", len(ds.Readings),
		"anomalies", res.Anomalies(),
		"threshold", res.Threshold,
		"path", out)
	return nil
}
