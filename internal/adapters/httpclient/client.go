package httpclient

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/eleven-am/probegate/internal/domain"
	"github.com/eleven-am/probegate/internal/ports"
)

// maxBodySize caps how much of a response body is read for classification.
// Block pages and error envelopes are small; anything larger is truncated.
const maxBodySize = 512 * 1024

// Client is the default HTTP collaborator: one request per call, routed
// through the node's materialized transport, body capped for classification.
type Client struct {
	logger *slog.Logger
}

func New(logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		logger: logger.With("component", "http-client"),
	}
}

func (c *Client) Get(ctx context.Context, url string, headers map[string]string, conn ports.ConnHandle, timeout time.Duration) (*ports.HTTPResponse, error) {
	reqCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request for %s: %w", url, err)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	client := &http.Client{
		Transport: conn.RoundTripper(),
		Timeout:   timeout,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			// redirect statuses are classification signal, not navigation
			return http.ErrUseLastResponse
		},
	}

	resp, err := client.Do(req)
	if err != nil {
		c.logger.Debug("request failed", "url", url, "error", err)
		return nil, fmt.Errorf("%w: %v", domain.ErrTransport, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		c.logger.Debug("body read failed", "url", url, "error", err)
		return nil, fmt.Errorf("%w: %v", domain.ErrTransport, err)
	}

	return &ports.HTTPResponse{
		Status:  resp.StatusCode,
		Body:    string(body),
		Headers: resp.Header,
	}, nil
}
