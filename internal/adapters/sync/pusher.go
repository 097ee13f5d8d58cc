// Package sync implements the best-effort push to the remote task-sync
// endpoint. The backend contract is deliberately abstract: the pusher sends
// an action tag plus the affected records, logs whatever comes back, and
// treats every failure as ignorable.
package sync

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/taskflow/core/internal/infrastructure/logger"
	"github.com/taskflow/core/internal/ports"
)

const maxLoggedResponse = 512

// HTTPPusher POSTs sync events as JSON to a fixed endpoint.
type HTTPPusher struct {
	endpoint string
	client   *http.Client
	logger   *logger.Logger
}

// NewHTTPPusher creates a pusher for the given endpoint URL.
func NewHTTPPusher(endpoint string, timeout time.Duration, appLogger *logger.Logger) *HTTPPusher {
	return &HTTPPusher{
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
		logger:   appLogger,
	}
}

// Push sends one event. The response body is logged and otherwise ignored;
// the caller is expected to log the returned error and drop the event.
func (p *HTTPPusher) Push(ctx context.Context, event ports.SyncEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode sync event: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build sync request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("push sync event: %w", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(io.LimitReader(resp.Body, maxLoggedResponse))
	p.logger.Infow("Sync response",
		"event_id", event.ID,
		"action", event.Action,
		"status", resp.StatusCode,
		"body", string(respBody),
	)

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("sync endpoint returned status %d", resp.StatusCode)
	}

	return nil
}
