package shift

import (
	"fmt"
	"math"
	"sort"
)

// ShiftTicks is one shift's worth of 5-minute ticks over a 31-day month:
// 12 hours * 12 ticks * 31 days.
const ShiftTicks = 4464

// Rand is the subset of *rand.Rand (math/rand/v2) the generators draw from.
type Rand interface {
	Float64() float64
	IntN(n int) int
}

// Sample draws n values with replacement from values, where the
// probability of values[i] is proportional to weights[i].
func Sample(rng Rand, values, weights []float64, n int) ([]float64, error) {
	cum, err := cumulative(values, weights)
	if err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, fmt.Errorf("%w: negative sample size %d", ErrInvalidConfiguration, n)
	}

	total := cum[len(cum)-1]
	hi := len(cum) - 1

	out := make([]float64, n)
	for i := range out {
		x := rng.Float64() * total
		// first cumulative weight strictly above the draw
		j := sort.Search(hi, func(k int) bool { return cum[k] > x })
		out[i] = values[j]
	}
	return out, nil
}

func cumulative(values, weights []float64) ([]float64, error) {
	if len(values) == 0 {
		return nil, fmt.Errorf("%w: no candidate values", ErrInvalidConfiguration)
	}
	if len(values) != len(weights) {
		return nil, fmt.Errorf("%w: %d candidate values but %d weights",
			ErrInvalidConfiguration, len(values), len(weights))
	}

	cum := make([]float64, len(weights))
	var total float64
	for i, w := range weights {
		if w < 0 || math.IsNaN(w) || math.IsInf(w, 0) {
			return nil, fmt.Errorf("%w: weight %d is %v", ErrInvalidConfiguration, i, w)
		}
		total += w
		cum[i] = total
	}
	if total <= 0 {
		return nil, fmt.Errorf("%w: weights sum to zero", ErrInvalidConfiguration)
	}
	return cum, nil
}
