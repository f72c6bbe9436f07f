package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/pochkachaiki/sensorgen/internal/dataset"
	"github.com/pochkachaiki/sensorgen/internal/models/reading"
)

const publishTimeout = 5 * time.Second

func NewRabbitConnection(uri string) (*amqp.Connection, error) {
	return amqp.Dial(uri)
}

func DeclareQueue(ch *amqp.Channel, name string) error {
	_, err := ch.QueueDeclare(
		name,
		true,
		false,
		false,
		false,
		nil,
	)
	return err
}

// Publisher публикует каждый датасет одним persistent JSON сообщением
type Publisher struct {
	ch    *amqp.Channel
	queue string
	runID string
}

func NewPublisher(ch *amqp.Channel, queue, runID string) *Publisher {
	return &Publisher{ch: ch, queue: queue, runID: runID}
}

func (p *Publisher) Write(parentCtx context.Context, ds *dataset.Dataset) error {
	body, err := encode(p.runID, ds)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(parentCtx, publishTimeout)
	defer cancel()

	err = p.ch.PublishWithContext(ctx, "", p.queue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    fmt.Sprintf("%s/%s/%d", p.runID, ds.Quantity, ds.Variant),
		Timestamp:    time.Now().UTC(),
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("publish %s variant %d: %w", ds.Quantity, ds.Variant, err)
	}
	slog.InfoContext(ctx, "dataset published", "quantity", ds.Quantity, "variant", ds.Variant,
		"queue", p.queue, "bytes", len(body))
	return nil
}

func encode(runID string, ds *dataset.Dataset) ([]byte, error) {
	body, err := json.Marshal(reading.Batch{
		RunID:    runID,
		Quantity: ds.Quantity,
		Column:   ds.Column,
		Variant:  ds.Variant,
		Readings: ds.Readings,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal dataset: %w", err)
	}
	return body, nil
}
