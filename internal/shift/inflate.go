package shift

import "fmt"

// IdleRepeats are the run lengths an idle tick may be stretched to:
// 6 to 12 ticks, i.e. 30 to 60 minutes powered off.
var IdleRepeats = []int{6, 7, 8, 9, 10, 11, 12}

// Expand repeats every occurrence of idle by a count drawn uniformly from
// repeats. Other elements are kept once. Order is preserved.
func Expand(rng Rand, seq []float64, idle float64, repeats []int) ([]float64, error) {
	if len(repeats) == 0 {
		return nil, fmt.Errorf("%w: empty idle repeat choice set", ErrInvalidConfiguration)
	}
	for _, r := range repeats {
		if r < 1 {
			return nil, fmt.Errorf("%w: idle repeat count %d", ErrInvalidConfiguration, r)
		}
	}

	out := make([]float64, 0, len(seq))
	for _, v := range seq {
		n := 1
		if v == idle {
			n = repeats[rng.IntN(len(repeats))]
		}
		for range n {
			out = append(out, v)
		}
	}
	return out, nil
}

// InflateIdle expands seq like Expand and cuts the result back to target.
// The last run may be cut short. The result is never padded: an expansion
// shorter than target is reported as ErrRowCountMismatch.
func InflateIdle(rng Rand, seq []float64, idle float64, repeats []int, target int) ([]float64, error) {
	expanded, err := Expand(rng, seq, idle, repeats)
	if err != nil {
		return nil, err
	}
	if len(expanded) < target {
		return nil, fmt.Errorf("%w: inflated %d ticks, need %d", ErrRowCountMismatch, len(expanded), target)
	}
	return expanded[:target:target], nil
}
