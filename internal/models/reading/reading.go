package reading

import (
	"time"
)

// TimestampLayout is the timestamp format used in dataset files.
const TimestampLayout = "2006-01-02 15:04:05"

type Reading struct {
	Timestamp time.Time `json:"timestamp" bson:"timestamp"`
	Value     float64   `json:"value" bson:"value"`
}

// Record is a reading tagged with the run and dataset it belongs to.
// It is the unit written to the Mongo and RabbitMQ sinks.
type Record struct {
	RunID     string    `json:"run_id" bson:"run_id"`
	Quantity  string    `json:"quantity" bson:"quantity"`
	Variant   int       `json:"variant" bson:"variant"`
	Timestamp time.Time `json:"timestamp" bson:"timestamp"`
	Value     float64   `json:"value" bson:"value"`
}

// Batch is one whole dataset variant as published to the queue.
type Batch struct {
	RunID    string    `json:"run_id"`
	Quantity string    `json:"quantity"`
	Column   string    `json:"column"`
	Variant  int       `json:"variant"`
	Readings []Reading `json:"readings"`
}

// Values returns the value column of rows in order.
func Values(rows []Reading) []float64 {
	out := make([]float64, len(rows))
	for i, r := range rows {
		out[i] = r.Value
	}
	return out
}
