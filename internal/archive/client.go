// Package archive uploads ticket transcripts to a hastebin-style paste
// service and returns the retrievable URL.
package archive

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/ticket-bot/internal/config"
)

// Client talks to the paste service. Upload failures are expected to be
// treated as non-fatal by callers; the client itself reports them as errors.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient validates the base URL and builds a client.
func NewClient(cfg config.ArchiveConfig, logger *zap.Logger) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("archive: base URL is required")
	}
	if _, err := url.Parse(cfg.BaseURL); err != nil {
		return nil, fmt.Errorf("archive: invalid base URL %q: %w", cfg.BaseURL, err)
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{Timeout: cfg.Timeout()},
		logger:     logger,
	}, nil
}

// PostToBin uploads text content under a descriptive title and returns the
// URL where the paste can be read.
func (c *Client) PostToBin(ctx context.Context, content, title string) (string, error) {
	body := title + "\n\n" + content

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/documents", strings.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("archive: build request: %w", err)
	}
	request.Header.Set("Content-Type", "text/plain; charset=utf-8")

	response, err := c.httpClient.Do(request)
	if err != nil {
		return "", fmt.Errorf("archive: upload failed: %w", err)
	}
	defer response.Body.Close()

	responseBody, err := io.ReadAll(io.LimitReader(response.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("archive: read response: %w", err)
	}
	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return "", fmt.Errorf("archive: upload returned %d: %s", response.StatusCode, string(responseBody))
	}

	var parsed struct {
		Key string `json:"key"`
	}
	if err := json.Unmarshal(responseBody, &parsed); err != nil {
		return "", fmt.Errorf("archive: parse response: %w", err)
	}
	if parsed.Key == "" {
		return "", fmt.Errorf("archive: response missing document key")
	}

	pasteURL := c.baseURL + "/" + parsed.Key
	c.logger.Debug("uploaded transcript", zap.String("url", pasteURL), zap.Int("bytes", len(body)))
	return pasteURL, nil
}
