package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"

	config "github.com/pochkachaiki/sensorgen/internal/config/data_generator"
	"github.com/pochkachaiki/sensorgen/internal/dataset"
	"github.com/pochkachaiki/sensorgen/internal/export"
	"github.com/pochkachaiki/sensorgen/internal/logger"
	"github.com/pochkachaiki/sensorgen/internal/metrics"
	"github.com/pochkachaiki/sensorgen/internal/profile"
	"github.com/pochkachaiki/sensorgen/internal/queue"
	"github.com/pochkachaiki/sensorgen/internal/sender"
	"github.com/pochkachaiki/sensorgen/internal/shift"
	"github.com/pochkachaiki/sensorgen/internal/storage"
)

type sink interface {
	Write(ctx context.Context, ds *dataset.Dataset) error
}

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

	if err := run(ctx, cfg); err != nil {
		slog.Error("generation failed", "err", err)
		os.Exit(1)
	}
	slog.Info("generator stopped")
}

func run(ctx context.Context, cfg *config.Config) error {
	runID := uuid.NewString()

	slog.Info("starting generator",
		"run_id", runID,
		"output_dir", cfg.OutputDir,
		"formats", cfg.Formats,
		"quantities", cfg.Quantities,
		"seed", cfg.Seed,
		"mode", cfg.Mode)

	opts, err := assemblerOptions(cfg)
	if err != nil {
		return err
	}
	asm, err := dataset.NewAssembler(opts)
	if err != nil {
		return fmt.Errorf("assembler: %w", err)
	}
	mode, err := dataset.ParseMode(cfg.Mode)
	if err != nil {
		return err
	}

	profiles := make([]*profile.Profile, 0, len(cfg.Quantities))
	for _, name := range cfg.Quantities {
		p, err := profile.Lookup(name)
		if err != nil {
			return err
		}
		if err := p.Validate(); err != nil {
			return err
		}
		profiles = append(profiles, p)
	}

	formats, err := export.ParseFormats(cfg.Formats)
	if err != nil {
		return err
	}
	files, err := export.NewFileSink(cfg.OutputDir, formats)
	if err != nil {
		return err
	}
	sinks := []sink{files}

	if cfg.Mongo.URI != "" {
		mongoClient, err := storage.NewMongoClient(cfg.Mongo.URI)
		if err != nil {
			return fmt.Errorf("mongo connect error: %w", err)
		}
		defer mongoClient.Disconnect(context.Background())

		coll := mongoClient.Database(cfg.Mongo.DBName).Collection(cfg.Mongo.Collection)
		readings := storage.NewReadingSink(coll, runID, cfg.Mongo.BatchSize)
		if err := readings.EnsureIndexes(ctx); err != nil {
			return fmt.Errorf("mongo index error: %w", err)
		}
		sinks = append(sinks, readings)
	}

	if cfg.Rabbit.URI != "" {
		rabbitConn, err := queue.NewRabbitConnection(cfg.Rabbit.URI)
		if err != nil {
			return fmt.Errorf("rabbitmq connect error: %w", err)
		}
		defer rabbitConn.Close()

		rabbitCh, err := rabbitConn.Channel()
		if err != nil {
			return fmt.Errorf("rabbitmq channel error: %w", err)
		}
		defer rabbitCh.Close()

		if err := queue.DeclareQueue(rabbitCh, cfg.Rabbit.Queue); err != nil {
			return fmt.Errorf("declare queue error: %w", err)
		}
		sinks = append(sinks, queue.NewPublisher(rabbitCh, cfg.Rabbit.Queue, runID))
	}

	if cfg.WebhookURL != "" {
		sinks = append(sinks, sender.NewWebhook(cfg.WebhookURL, runID))
	}

	m := metrics.New()
	gen := dataset.NewGenerator(asm, cfg.Seed,
		dataset.WithMode(mode),
		dataset.WithWorkers(cfg.Workers),
		dataset.WithRecorder(m))

	var errs []error
	for _, p := range profiles {
		datasets, err := gen.Run(ctx, p)
		if err != nil {
			errs = append(errs, err)
		}
		// datasets that did generate are written even when a sibling variant failed
		for _, ds := range datasets {
			for _, s := range sinks {
				if err := s.Write(ctx, ds); err != nil {
					errs = append(errs, fmt.Errorf("%s variant %d: %w", ds.Quantity, ds.Variant, err))
				}
			}
		}
	}

	if err := m.WriteTextfile(cfg.MetricsFile); err != nil {
		errs = append(errs, fmt.Errorf("write metrics: %w", err))
	}

	return errors.Join(errs...)
}

func assemblerOptions(cfg *config.Config) (dataset.Options, error) {
	start, err := cfg.StartTime()
	if err != nil {
		return dataset.Options{}, err
	}
	return dataset.Options{
		Start:  start,
		Ticks:  cfg.Ticks(),
		Step:   cfg.Step,
		Window: shift.Window{Lower: cfg.DayStartHour, Upper: cfg.DayEndHour},
	}, nil
}
