package profile

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/pochkachaiki/sensorgen/internal/shift"
)

// ShiftConfig is a set of discrete candidate values with parallel,
// not necessarily normalised, sampling weights.
type ShiftConfig struct {
	Values  []float64
	Weights []float64
}

func (c ShiftConfig) Validate() error {
	if len(c.Values) == 0 {
		return fmt.Errorf("%w: no candidate values", shift.ErrInvalidConfiguration)
	}
	if len(c.Values) != len(c.Weights) {
		return fmt.Errorf("%w: %d candidate values but %d weights",
			shift.ErrInvalidConfiguration, len(c.Values), len(c.Weights))
	}
	return nil
}

// Variant is one simulated physical unit: its own day shift values and
// the contamination rate the anomaly detector assumes for it.
type Variant struct {
	Number        int
	Day           ShiftConfig
	Contamination float64
}

// Profile describes how to generate every variant of one quantity.
type Profile struct {
	Quantity    string
	Column      string
	FilePrefix  string
	Idle        float64
	IdleRepeats []int
	Night       ShiftConfig
	Variants    []Variant
}

func (p *Profile) Validate() error {
	var errs []error
	if err := p.Night.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("night: %w", err))
	}
	if len(p.IdleRepeats) == 0 {
		errs = append(errs, fmt.Errorf("%w: empty idle repeat choice set", shift.ErrInvalidConfiguration))
	}
	for _, v := range p.Variants {
		if err := v.Day.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("variant %d day: %w", v.Number, err))
		}
		if v.Contamination <= 0 || v.Contamination > 0.5 {
			errs = append(errs, fmt.Errorf("%w: variant %d contamination %v",
				shift.ErrInvalidConfiguration, v.Number, v.Contamination))
		}
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("profile %s: %w", p.Quantity, err)
	}
	return nil
}

// Variant returns the variant with the given number.
func (p *Profile) Variant(number int) (Variant, bool) {
	for _, v := range p.Variants {
		if v.Number == number {
			return v, true
		}
	}
	return Variant{}, false
}

// DatasetFile is the base name (without extension) of a variant's dataset.
func (p *Profile) DatasetFile(number int) string {
	return fmt.Sprintf("%s_Dataset_%d", p.FilePrefix, number)
}

// ScoredFile is the file name of a variant's anomaly detection output.
func (p *Profile) ScoredFile(number int) string {
	return fmt.Sprintf("isolation_forest_%s_%d.csv", p.Quantity, number)
}

// Names lists the built-in quantities.
func Names() []string {
	return []string{QuantityCurrent, QuantityTemperature}
}

// Lookup returns the built-in profile for a quantity name.
func Lookup(name string) (*Profile, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case QuantityCurrent:
		return Current(), nil
	case QuantityTemperature:
		return Temperature(), nil
	default:
		return nil, fmt.Errorf("unknown quantity %q", name)
	}
}

func variants(days [][]float64) []Variant {
	out := make([]Variant, len(days))
	for i, values := range days {
		v := Variant{Number: i + 1, Day: ShiftConfig{Values: values}}
		// the first three units carry an extra high reading and a noisier profile
		if i < 3 {
			v.Day.Weights = slices.Clone(wideDayWeights)
			v.Contamination = 0.05
		} else {
			v.Day.Weights = slices.Clone(narrowDayWeights)
			v.Contamination = 0.02
		}
		out[i] = v
	}
	return out
}
