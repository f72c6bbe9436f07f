package anomaly

import (
	"errors"
	"fmt"

	"github.com/hed1ad/goguardml/pkg/detectors/iforest"
)

const (
	trees      = 100
	sampleSize = 256
)

var ErrTooFewValues = errors.New("anomaly: at least two values are required")

// Result holds one score and one label per input value, in input order.
// Scores below zero are anomalous; Labels are 1 for anomaly, 0 for normal.
type Result struct {
	Scores    []float64
	Labels    []int
	Threshold float64
}

func (r Result) Anomalies() int {
	n := 0
	for _, l := range r.Labels {
		n += l
	}
	return n
}

// Detect fits an isolation forest to a single numeric column and scores
// that same column. The score of a row is the fitted threshold minus its
// anomaly score, so rows above the contamination cut-off come out negative.
func Detect(values []float64, contamination float64, seed uint64) (Result, error) {
	if len(values) < 2 {
		return Result{}, fmt.Errorf("%w: got %d", ErrTooFewValues, len(values))
	}
	if contamination <= 0 || contamination > 0.5 {
		return Result{}, fmt.Errorf("anomaly: contamination %v outside (0, 0.5]", contamination)
	}

	data := make([][]float64, len(values))
	for i, v := range values {
		data[i] = []float64{v}
	}

	forest := iforest.New(
		iforest.WithTrees(trees),
		iforest.WithSampleSize(sampleSize),
		iforest.WithContamination(contamination),
		iforest.WithSeed(int64(seed)),
	)
	if err := forest.Fit(data); err != nil {
		return Result{}, fmt.Errorf("fit: %w", err)
	}

	raw, err := forest.Predict(data)
	if err != nil {
		return Result{}, fmt.Errorf("predict: %w", err)
	}

	threshold := forest.Threshold()
	res := Result{
		Scores:    make([]float64, len(raw)),
		Labels:    make([]int, len(raw)),
		Threshold: threshold,
	}
	for i, s := range raw {
		res.Scores[i] = threshold - s
		// rows tied with the threshold stay normal
		if s > threshold {
			res.Labels[i] = 1
		}
	}
	return res, nil
}
