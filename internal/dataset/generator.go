package dataset

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/pochkachaiki/sensorgen/internal/profile"
)

type Mode string

const (
	// ModeSequential draws every variant from one random stream in
	// variant order.
	ModeSequential Mode = "sequential"
	// ModeParallel gives each variant its own stream keyed by the seed
	// and the variant number, and generates variants concurrently.
	ModeParallel Mode = "parallel"
)

func ParseMode(s string) (Mode, error) {
	switch m := Mode(s); m {
	case ModeSequential, ModeParallel:
		return m, nil
	case "":
		return ModeSequential, nil
	default:
		return "", fmt.Errorf("unknown generation mode %q", s)
	}
}

// Recorder receives per-variant outcomes. *metrics.Metrics implements it.
type Recorder interface {
	ObserveVariant(quantity string, rows, idleRuns int, elapsed time.Duration)
	VariantFailed(quantity string)
}

type Generator struct {
	asm      *Assembler
	seed     uint64
	mode     Mode
	workers  int
	recorder Recorder
}

type Option func(*Generator)

func WithMode(m Mode) Option { return func(g *Generator) { g.mode = m } }

func WithWorkers(n int) Option { return func(g *Generator) { g.workers = n } }

func WithRecorder(r Recorder) Option { return func(g *Generator) { g.recorder = r } }

func NewGenerator(asm *Assembler, seed uint64, opts ...Option) *Generator {
	g := &Generator{
		asm:  asm,
		seed: seed,
		mode: ModeSequential,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// stream returns the random stream with the given id under the run seed.
// Stream 0 is the shared stream; stream n belongs to variant n.
func (g *Generator) stream(id uint64) *rand.Rand {
	return rand.New(rand.NewPCG(g.seed, id))
}

// Run generates every variant of p. Variants fail independently: the
// datasets that succeeded are returned, in variant order, together with
// the joined errors of those that did not.
func (g *Generator) Run(ctx context.Context, p *profile.Profile) ([]*Dataset, error) {
	shared := g.stream(0)
	nightBase, err := g.asm.NightBase(shared, p)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", p.Quantity, err)
	}

	slog.InfoContext(ctx, "generating quantity",
		"quantity", p.Quantity,
		"variants", len(p.Variants),
		"mode", g.mode,
		"day_ticks", g.asm.DayTicks(),
		"night_ticks", g.asm.NightTicks())

	results := make([]*Dataset, len(p.Variants))
	errs := make([]error, len(p.Variants))

	switch g.mode {
	case ModeParallel:
		var eg errgroup.Group
		if g.workers > 0 {
			eg.SetLimit(g.workers)
		}
		for i, v := range p.Variants {
			eg.Go(func() error {
				results[i], errs[i] = g.variant(ctx, g.stream(uint64(v.Number)), p, v, nightBase)
				return nil
			})
		}
		_ = eg.Wait()
	default:
		for i, v := range p.Variants {
			results[i], errs[i] = g.variant(ctx, shared, p, v, nightBase)
		}
	}

	out := make([]*Dataset, 0, len(results))
	for _, ds := range results {
		if ds != nil {
			out = append(out, ds)
		}
	}
	return out, errors.Join(errs...)
}

func (g *Generator) variant(ctx context.Context, rng *rand.Rand, p *profile.Profile, v profile.Variant, nightBase []float64) (*Dataset, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s variant %d: %w", p.Quantity, v.Number, err)
	}

	started := time.Now()
	ds, err := g.asm.Assemble(rng, p, v, nightBase)
	if err != nil {
		slog.ErrorContext(ctx, "variant failed", "quantity", p.Quantity, "variant", v.Number, "err", err)
		if g.recorder != nil {
			g.recorder.VariantFailed(p.Quantity)
		}
		return nil, fmt.Errorf("%s variant %d: %w", p.Quantity, v.Number, err)
	}

	elapsed := time.Since(started)
	if g.recorder != nil {
		g.recorder.ObserveVariant(p.Quantity, len(ds.Readings), ds.IdleRuns, elapsed)
	}
	slog.InfoContext(ctx, "variant generated",
		"quantity", p.Quantity,
		"variant", v.Number,
		"rows", len(ds.Readings),
		"idle_runs", ds.IdleRuns,
		"elapsed", elapsed)

	return ds, nil
}
