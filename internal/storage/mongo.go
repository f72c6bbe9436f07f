package storage

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/pochkachaiki/sensorgen/internal/dataset"
	"github.com/pochkachaiki/sensorgen/internal/models/reading"
)

const (
	connectTimeout   = 10 * time.Second
	writeTimeout     = 30 * time.Second
	defaultBatchSize = 1000
)

func NewMongoClient(uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping: %w", err)
	}
	return client, nil
}

// ReadingSink stores every reading of a dataset as one document tagged
// with the run id, quantity and variant.
type ReadingSink struct {
	coll      *mongo.Collection
	runID     string
	batchSize int
}

func NewReadingSink(coll *mongo.Collection, runID string, batchSize int) *ReadingSink {
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}
	return &ReadingSink{coll: coll, runID: runID, batchSize: batchSize}
}

// EnsureIndexes creates the lookup index used to fetch one variant of a run.
func (s *ReadingSink) EnsureIndexes(ctx context.Context) error {
	_, err := s.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "run_id", Value: 1},
			{Key: "quantity", Value: 1},
			{Key: "variant", Value: 1},
			{Key: "timestamp", Value: 1},
		},
	})
	return err
}

func (s *ReadingSink) Write(parentCtx context.Context, ds *dataset.Dataset) error {
	ctx, cancel := context.WithTimeout(parentCtx, writeTimeout)
	defer cancel()

	for _, batch := range batches(documents(s.runID, ds), s.batchSize) {
		if _, err := s.coll.InsertMany(ctx, batch); err != nil {
			return fmt.Errorf("insert %s variant %d: %w", ds.Quantity, ds.Variant, err)
		}
	}
	slog.InfoContext(ctx, "dataset stored", "quantity", ds.Quantity, "variant", ds.Variant,
		"collection", s.coll.Name(), "rows", len(ds.Readings))
	return nil
}

func documents(runID string, ds *dataset.Dataset) []any {
	docs := make([]any, len(ds.Readings))
	for i, r := range ds.Readings {
		docs[i] = reading.Record{
			RunID:     runID,
			Quantity:  ds.Quantity,
			Variant:   ds.Variant,
			Timestamp: r.Timestamp,
			Value:     r.Value,
		}
	}
	return docs
}

func batches(docs []any, size int) [][]any {
	var out [][]any
	for len(docs) > size {
		out = append(out, docs[:size:size])
		docs = docs[size:]
	}
	if len(docs) > 0 {
		out = append(out, docs)
	}
	return out
}
