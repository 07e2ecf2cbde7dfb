package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"metricshub/internal/config"
)

// HTTPClient fetches provider payloads with retry and quadratic backoff.
// Server errors retry; client errors are terminal.
type HTTPClient struct {
	client        *http.Client
	retryAttempts int
	logger        *logrus.Logger
}

func NewHTTPClient(cfg *config.Config, logger *logrus.Logger) *HTTPClient {
	return &HTTPClient{
		client: &http.Client{
			Timeout: cfg.HTTPTimeout,
		},
		retryAttempts: cfg.RetryAttempts,
		logger:        logger,
	}
}

// Fetch GETs a URL and returns the raw body. Adapters own parsing so a
// malformed payload surfaces as a typed source error, not a transport one.
func (c *HTTPClient) Fetch(ctx context.Context, url string) ([]byte, error) {
	var lastErr error

	for attempt := 0; attempt < c.retryAttempts; attempt++ {
		if attempt > 0 {
			backoffTime := time.Duration(attempt*attempt) * time.Second
			c.logger.WithFields(logrus.Fields{
				"attempt": attempt + 1,
				"backoff": backoffTime,
				"url":     url,
			}).Warn("Retrying request after backoff")
			select {
			case <-time.After(backoffTime):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}

		resp, err := c.client.Do(req)
		if err != nil {
			lastErr = err
			continue
		}

		if resp.StatusCode >= 500 {
			resp.Body.Close()
			lastErr = fmt.Errorf("server error: %d", resp.StatusCode)
			continue
		}

		if resp.StatusCode >= 400 {
			resp.Body.Close()
			return nil, fmt.Errorf("client error: %d", resp.StatusCode)
		}

		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			lastErr = err
			continue
		}

		c.logger.WithFields(logrus.Fields{
			"attempt":     attempt + 1,
			"status_code": resp.StatusCode,
			"url":         url,
		}).Debug("Request successful")

		return body, nil
	}

	return nil, fmt.Errorf("all retry attempts failed, last error: %w", lastErr)
}

// Post sends a signed JSON document to the export sink.
func (c *HTTPClient) Post(ctx context.Context, url string, body []byte, signature string) error {
	var lastErr error

	for attempt := 0; attempt < c.retryAttempts; attempt++ {
		if attempt > 0 {
			backoffTime := time.Duration(attempt*attempt) * time.Second
			select {
			case <-time.After(backoffTime):
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
		if err != nil {
			return fmt.Errorf("failed to create export request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Signature", signature)

		resp, err := c.client.Do(req)
		if err != nil {
			lastErr = err
			continue
		}
		resp.Body.Close()

		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			return nil
		}
		if resp.StatusCode >= 400 && resp.StatusCode < 500 {
			return fmt.Errorf("client error: %d", resp.StatusCode)
		}
		lastErr = fmt.Errorf("server error: %d", resp.StatusCode)
	}

	return fmt.Errorf("export failed after retries: %w", lastErr)
}
