// Package ocr talks to the external extraction service that turns
// screenshot bytes into draft field values. Extraction is best effort:
// a failed call surfaces as an advisory, never as a draft mutation.
package ocr

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/candidesk/candidesk/internal/domain/model"
	"github.com/candidesk/candidesk/pkg/logger"
)

const defaultTimeout = 10 * time.Second

// Client posts image blobs to the extraction endpoint and decodes the
// returned field patch.
type Client struct {
	endpoint string
	http     *http.Client
	logger   logger.Logger
}

// Option configures the client.
type Option func(*Client)

// WithTimeout bounds each extraction round trip.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.http.Timeout = timeout
		}
	}
}

// WithLogger sets a custom logger for the client.
func WithLogger(log logger.Logger) Option {
	return func(c *Client) {
		if log != nil {
			c.logger = log
		}
	}
}

// New creates an extraction client for the given endpoint.
func New(endpoint string, opts ...Option) *Client {
	c := &Client{
		endpoint: endpoint,
		http:     &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = logger.Get()
	}
	return c
}

// Extract sends the image to the endpoint and returns the extracted
// patch. Fields the service could not read come back empty and are
// skipped downstream when the patch is applied.
func (c *Client) Extract(ctx context.Context, image []byte, contentType string) (model.AutofillPatch, error) {
	if c.endpoint == "" {
		return model.AutofillPatch{}, ErrNotConfigured
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(image))
	if err != nil {
		return model.AutofillPatch{}, fmt.Errorf("%w: %v", ErrExtraction, err)
	}
	req.Header.Set("Content-Type", contentType)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return model.AutofillPatch{}, fmt.Errorf("%w: %v", ErrExtraction, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		c.logger.Warn(ctx, "extraction service rejected image",
			logger.Int("status", resp.StatusCode),
			logger.String("body", string(body)),
		)
		return model.AutofillPatch{}, fmt.Errorf("%w: status %d", ErrExtraction, resp.StatusCode)
	}

	var patch model.AutofillPatch
	if err := json.NewDecoder(resp.Body).Decode(&patch); err != nil {
		return model.AutofillPatch{}, fmt.Errorf("%w: decode: %v", ErrExtraction, err)
	}

	c.logger.Debug(ctx, "extraction completed",
		logger.Int("bytes", len(image)),
		logger.Any("elapsed", time.Since(start)),
	)
	return patch, nil
}
