package shift

import (
	"fmt"
	"time"

	"github.com/pochkachaiki/sensorgen/internal/models/reading"
)

// DayWindow is the default day shift: 08:00 up to, not including, 20:00.
var DayWindow = Window{Lower: 8, Upper: 20}

// Window is a half-open hour-of-day interval [Lower, Upper).
type Window struct {
	Lower int
	Upper int
}

func (w Window) Validate() error {
	if w.Lower < 0 || w.Upper > 24 || w.Lower >= w.Upper {
		return fmt.Errorf("%w: day window [%d,%d)", ErrInvalidConfiguration, w.Lower, w.Upper)
	}
	return nil
}

func (w Window) Contains(t time.Time) bool {
	h := t.Hour()
	return h >= w.Lower && h < w.Upper
}

// Partition splits rows into day rows (hour inside w) and night rows (the
// rest). Both are returned as ascending indices into rows.
func Partition(rows []reading.Reading, w Window) (day, night []int) {
	day = make([]int, 0, len(rows)/2)
	night = make([]int, 0, len(rows)/2)
	for i, r := range rows {
		if w.Contains(r.Timestamp) {
			day = append(day, i)
		} else {
			night = append(night, i)
		}
	}
	return day, night
}
