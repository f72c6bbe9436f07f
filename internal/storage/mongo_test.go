package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pochkachaiki/sensorgen/internal/dataset"
	"github.com/pochkachaiki/sensorgen/internal/models/reading"
)

func TestDocuments(t *testing.T) {
	ds := &dataset.Dataset{
		Quantity: "temperature",
		Variant:  7,
		Readings: dataset.Skeleton(dataset.DefaultStart, 2, 5*time.Minute),
	}
	ds.Readings[1].Value = 26

	docs := documents("run-1", ds)
	require.Len(t, docs, 2)
	assert.Equal(t, reading.Record{
		RunID:     "run-1",
		Quantity:  "temperature",
		Variant:   7,
		Timestamp: dataset.DefaultStart.Add(5 * time.Minute),
		Value:     26,
	}, docs[1])
}

func TestBatches(t *testing.T) {
	docs := make([]any, 2500)

	got := batches(docs, 1000)
	require.Len(t, got, 3)
	assert.Len(t, got[0], 1000)
	assert.Len(t, got[2], 500)

	assert.Len(t, batches(docs[:1000], 1000), 1)
	assert.Empty(t, batches(nil, 1000))
}
