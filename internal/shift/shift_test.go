package shift

import (
	"math/rand/v2"
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/pochkachaiki/sensorgen/internal/models/reading"
)

// scriptedRand replays fixed draws in a loop.
type scriptedRand struct {
	floats []float64
	ints   []int
	fi, ii int
}

func (s *scriptedRand) Float64() float64 {
	v := s.floats[s.fi%len(s.floats)]
	s.fi++
	return v
}

func (s *scriptedRand) IntN(n int) int {
	v := s.ints[s.ii%len(s.ints)]
	s.ii++
	return v % n
}

func newRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed))
}

func TestSample_LengthAndMembership(t *testing.T) {
	values := []float64{0, 30, 33, 35, 38, 40, 43, 45, 48}
	weights := []float64{5, 9, 9, 16, 16, 16, 16, 8, 5}

	out, err := Sample(newRand(1), values, weights, ShiftTicks)
	require.NoError(t, err)
	require.Len(t, out, ShiftTicks)
	for _, v := range out {
		assert.Contains(t, values, v)
	}
}

func TestSample_ZeroWeightNeverDrawn(t *testing.T) {
	out, err := Sample(newRand(7), []float64{1, 2, 3}, []float64{1, 0, 1}, 2000)
	require.NoError(t, err)
	assert.NotContains(t, out, 2.0)
	assert.Contains(t, out, 1.0)
	assert.Contains(t, out, 3.0)
}

func TestSample_CumulativeSelection(t *testing.T) {
	// weights 1,3 -> cumulative 1,4; draws are scaled by the total of 4
	rng := &scriptedRand{floats: []float64{0, 0.2, 0.25, 0.9, 0.999}}
	out, err := Sample(rng, []float64{10, 20}, []float64{1, 3}, 5)
	require.NoError(t, err)
	assert.Equal(t, []float64{10, 10, 20, 20, 20}, out)
}

func TestSample_Proportions(t *testing.T) {
	out, err := Sample(newRand(3), []float64{1, 2}, []float64{1, 3}, 40000)
	require.NoError(t, err)

	var twos int
	for _, v := range out {
		if v == 2 {
			twos++
		}
	}
	assert.InDelta(t, 0.75, float64(twos)/float64(len(out)), 0.02)
}

func TestSample_MatchesNightWeights(t *testing.T) {
	values := []float64{0, 30, 33, 35, 38, 40, 43, 45, 48}
	weights := []float64{5, 9, 9, 16, 16, 16, 16, 8, 5}

	out, err := Sample(newRand(11), values, weights, 10*ShiftTicks)
	require.NoError(t, err)

	observed := make([]float64, len(values))
	for _, v := range out {
		observed[slices.Index(values, v)]++
	}
	total := floats.Sum(weights)
	expected := make([]float64, len(weights))
	for i, w := range weights {
		expected[i] = w / total * float64(len(out))
	}

	// 99.9th percentile of chi-square with 8 degrees of freedom
	assert.Less(t, stat.ChiSquare(observed, expected), 26.12)
}

func TestSample_InvalidConfiguration(t *testing.T) {
	tests := []struct {
		name    string
		values  []float64
		weights []float64
		n       int
	}{
		{name: "empty", values: nil, weights: nil, n: 10},
		{name: "length mismatch", values: []float64{1, 2}, weights: []float64{1}, n: 10},
		{name: "negative weight", values: []float64{1, 2}, weights: []float64{1, -1}, n: 10},
		{name: "zero total", values: []float64{1, 2}, weights: []float64{0, 0}, n: 10},
		{name: "negative size", values: []float64{1}, weights: []float64{1}, n: -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Sample(newRand(1), tt.values, tt.weights, tt.n)
			assert.ErrorIs(t, err, ErrInvalidConfiguration)
		})
	}
}

func TestExpand_AllIdle(t *testing.T) {
	seq := make([]float64, 500)

	expanded, err := Expand(newRand(11), seq, 0, IdleRepeats)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, len(expanded), 6*len(seq))
	assert.LessOrEqual(t, len(expanded), 12*len(seq))

	out, err := InflateIdle(newRand(11), seq, 0, IdleRepeats, ShiftTicks)
	require.NoError(t, err)
	assert.Len(t, out, ShiftTicks)
}

func TestInflateIdle_NoIdleIsIdentity(t *testing.T) {
	seq := []float64{30, 33, 35, 38, 40, 43}

	out, err := InflateIdle(newRand(5), seq, 0, IdleRepeats, len(seq))
	require.NoError(t, err)
	assert.Equal(t, seq, out)

	out, err = InflateIdle(newRand(5), seq, 0, IdleRepeats, 4)
	require.NoError(t, err)
	assert.Equal(t, seq[:4], out)
}

func TestInflateIdle_SentinelIsParameter(t *testing.T) {
	seq := []float64{31, 26, 35}
	rng := &scriptedRand{ints: []int{0}} // always the first choice: 6

	out, err := InflateIdle(rng, seq, 26, IdleRepeats, 8)
	require.NoError(t, err)
	assert.Equal(t, []float64{31, 26, 26, 26, 26, 26, 26, 35}, out)
}

func TestInflateIdle_TruncatesMidRun(t *testing.T) {
	rng := &scriptedRand{ints: []int{6}} // always 12

	out, err := InflateIdle(rng, []float64{40, 0}, 0, IdleRepeats, 5)
	require.NoError(t, err)
	assert.Equal(t, []float64{40, 0, 0, 0, 0}, out)
}

func TestInflateIdle_RunLengths(t *testing.T) {
	seq := []float64{40, 0, 45, 0, 38}

	expanded, err := Expand(newRand(21), seq, 0, IdleRepeats)
	require.NoError(t, err)

	var runs []int
	run := 0
	for _, v := range expanded {
		if v == 0 {
			run++
			continue
		}
		if run > 0 {
			runs = append(runs, run)
			run = 0
		}
	}
	require.Len(t, runs, 2)
	for _, r := range runs {
		assert.True(t, slices.Contains(IdleRepeats, r), "run length %d", r)
	}
}

func TestInflateIdle_Errors(t *testing.T) {
	_, err := InflateIdle(newRand(1), []float64{0}, 0, nil, 1)
	assert.ErrorIs(t, err, ErrInvalidConfiguration)

	_, err = InflateIdle(newRand(1), []float64{0}, 0, []int{0, 1}, 1)
	assert.ErrorIs(t, err, ErrInvalidConfiguration)

	_, err = InflateIdle(newRand(1), []float64{1, 2}, 0, IdleRepeats, 3)
	assert.ErrorIs(t, err, ErrRowCountMismatch)
}

func TestPartition_SingleDay(t *testing.T) {
	start := time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)
	rows := make([]reading.Reading, 288)
	for i := range rows {
		rows[i].Timestamp = start.Add(time.Duration(i) * 5 * time.Minute)
	}

	day, night := Partition(rows, DayWindow)
	assert.Len(t, day, 144)
	assert.Len(t, night, 144)

	seen := make(map[int]bool, len(rows))
	for _, i := range append(slices.Clone(day), night...) {
		assert.False(t, seen[i], "row %d in both partitions", i)
		seen[i] = true
	}
	assert.Len(t, seen, len(rows))

	assert.True(t, slices.IsSorted(day))
	assert.True(t, slices.IsSorted(night))
	for _, i := range day {
		h := rows[i].Timestamp.Hour()
		assert.True(t, h >= 8 && h < 20, "hour %d in day partition", h)
	}
}

func TestWindow_Validate(t *testing.T) {
	tests := []struct {
		name    string
		window  Window
		wantErr bool
	}{
		{name: "default", window: DayWindow},
		{name: "whole day", window: Window{Lower: 0, Upper: 24}},
		{name: "empty", window: Window{Lower: 8, Upper: 8}, wantErr: true},
		{name: "inverted", window: Window{Lower: 20, Upper: 8}, wantErr: true},
		{name: "out of range", window: Window{Lower: -1, Upper: 25}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.window.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidConfiguration)
				return
			}
			assert.NoError(t, err)
		})
	}
}
