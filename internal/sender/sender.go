package sender

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/pochkachaiki/sensorgen/internal/dataset"
	"github.com/pochkachaiki/sensorgen/internal/models/reading"
)

const (
	contentType = "application/json"
	timeout     = 30 * time.Second
)

// Send отправляет один пакет показаний датасета по HTTP POST в формате JSON
func Send(ctx context.Context, client *http.Client, url string, b reading.Batch) error {
	body, err := json.Marshal(b)
	if err != nil {
		return fmt.Errorf("marshal batch: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	return nil
}

// Webhook отправляет каждый сгенерированный датасет на HTTP endpoint
type Webhook struct {
	url    string
	runID  string
	client *http.Client
}

func NewWebhook(url, runID string) *Webhook {
	return &Webhook{url: url, runID: runID, client: &http.Client{Timeout: timeout}}
}

func (w *Webhook) Write(ctx context.Context, ds *dataset.Dataset) error {
	err := Send(ctx, w.client, w.url, reading.Batch{
		RunID:    w.runID,
		Quantity: ds.Quantity,
		Column:   ds.Column,
		Variant:  ds.Variant,
		Readings: ds.Readings,
	})
	if err != nil {
		return err
	}
	slog.InfoContext(ctx, "dataset delivered", "quantity", ds.Quantity, "variant", ds.Variant, "url", w.url)
	return nil
}
