package dataset

import (
	"fmt"
	"slices"
	"time"

	"github.com/pochkachaiki/sensorgen/internal/models/reading"
	"github.com/pochkachaiki/sensorgen/internal/profile"
	"github.com/pochkachaiki/sensorgen/internal/shift"
)

const (
	defaultTicks = 8928 // 31 days * 288 ticks
	defaultStep  = 5 * time.Minute
)

// DefaultStart is the first tick of the simulated month.
var DefaultStart = time.Date(2021, time.January, 1, 0, 0, 0, 0, time.UTC)

// Options fix the timestamp skeleton and the day shift window.
type Options struct {
	Start  time.Time
	Ticks  int
	Step   time.Duration
	Window shift.Window
}

func DefaultOptions() Options {
	return Options{
		Start:  DefaultStart,
		Ticks:  defaultTicks,
		Step:   defaultStep,
		Window: shift.DayWindow,
	}
}

// Dataset is one fully populated month of readings for a single variant.
type Dataset struct {
	Quantity string
	Column   string
	Variant  int
	// File is the base name, without extension, of the dataset's output files.
	File     string
	Readings []reading.Reading
	IdleRuns int
}

// Skeleton returns ticks zero-valued readings spaced step apart from start.
func Skeleton(start time.Time, ticks int, step time.Duration) []reading.Reading {
	rows := make([]reading.Reading, ticks)
	for i := range rows {
		rows[i].Timestamp = start.Add(time.Duration(i) * step)
	}
	return rows
}

// Assembler builds datasets over a fixed skeleton. The skeleton and its
// day/night partition are computed once and never mutated.
type Assembler struct {
	opts     Options
	skeleton []reading.Reading
	day      []int
	night    []int
}

func NewAssembler(opts Options) (*Assembler, error) {
	if opts.Ticks <= 0 {
		return nil, fmt.Errorf("%w: %d ticks", shift.ErrInvalidConfiguration, opts.Ticks)
	}
	if opts.Step <= 0 {
		return nil, fmt.Errorf("%w: step %s", shift.ErrInvalidConfiguration, opts.Step)
	}
	if err := opts.Window.Validate(); err != nil {
		return nil, err
	}

	skeleton := Skeleton(opts.Start, opts.Ticks, opts.Step)
	day, night := shift.Partition(skeleton, opts.Window)

	return &Assembler{
		opts:     opts,
		skeleton: skeleton,
		day:      day,
		night:    night,
	}, nil
}

// DayTicks and NightTicks are the partition sizes of the skeleton.
func (a *Assembler) DayTicks() int   { return len(a.day) }
func (a *Assembler) NightTicks() int { return len(a.night) }

// NightBase samples the night shift values of a profile, before idle
// inflation. One base is shared by every variant of a run.
func (a *Assembler) NightBase(rng shift.Rand, p *profile.Profile) ([]float64, error) {
	base, err := shift.Sample(rng, p.Night.Values, p.Night.Weights, len(a.night))
	if err != nil {
		return nil, fmt.Errorf("sample night shift: %w", err)
	}
	return base, nil
}

// Assemble fills the skeleton for one variant: day rows from the variant's
// day configuration, night rows from nightBase after idle inflation.
func (a *Assembler) Assemble(rng shift.Rand, p *profile.Profile, v profile.Variant, nightBase []float64) (*Dataset, error) {
	dayValues, err := shift.Sample(rng, v.Day.Values, v.Day.Weights, len(a.day))
	if err != nil {
		return nil, fmt.Errorf("sample day shift: %w", err)
	}
	nightValues, err := shift.InflateIdle(rng, nightBase, p.Idle, p.IdleRepeats, len(a.night))
	if err != nil {
		return nil, fmt.Errorf("inflate night shift: %w", err)
	}

	dayRows, err := fill(a.skeleton, a.day, dayValues)
	if err != nil {
		return nil, fmt.Errorf("day shift: %w", err)
	}
	nightRows, err := fill(a.skeleton, a.night, nightValues)
	if err != nil {
		return nil, fmt.Errorf("night shift: %w", err)
	}

	rows := append(dayRows, nightRows...)
	slices.SortStableFunc(rows, func(x, y reading.Reading) int {
		return x.Timestamp.Compare(y.Timestamp)
	})

	return &Dataset{
		Quantity: p.Quantity,
		Column:   p.Column,
		Variant:  v.Number,
		File:     p.DatasetFile(v.Number),
		Readings: rows,
		IdleRuns: countRuns(nightValues, p.Idle),
	}, nil
}

// fill copies the rows selected by idx and assigns values to them in order.
func fill(skeleton []reading.Reading, idx []int, values []float64) ([]reading.Reading, error) {
	if len(idx) != len(values) {
		return nil, fmt.Errorf("%w: partition has %d rows, sampled %d values",
			shift.ErrRowCountMismatch, len(idx), len(values))
	}
	rows := make([]reading.Reading, len(idx))
	for i, j := range idx {
		rows[i] = reading.Reading{Timestamp: skeleton[j].Timestamp, Value: values[i]}
	}
	return rows, nil
}

func countRuns(values []float64, v float64) int {
	runs := 0
	for i, x := range values {
		if x == v && (i == 0 || values[i-1] != v) {
			runs++
		}
	}
	return runs
}
