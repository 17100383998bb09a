package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

// DefaultHTTPTimeout is the timeout for a single webhook request.
const DefaultHTTPTimeout = 10 * time.Second

// Client delivers messages to one webhook endpoint. It is stateless per
// call and safe for concurrent use; one Client is shared across the start,
// streaming, and final notifications of an invocation.
type Client struct {
	httpClient *http.Client
	url        string
	format     Format
	dryRun     bool
	out        io.Writer
}

// NewClient creates a webhook client. An empty url turns Send into a no-op
// unless dryRun is set; the orchestrator rejects that combination up front,
// this is defense in depth.
func NewClient(url string, format Format, dryRun bool) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: DefaultHTTPTimeout},
		url:        url,
		format:     format,
		dryRun:     dryRun,
		out:        os.Stdout,
	}
}

// SetOutput redirects dry-run printing. Intended for testing.
func (c *Client) SetOutput(w io.Writer) {
	c.out = w
}

// Send formats message for the configured endpoint and posts it once. In
// dry-run mode the payload is printed locally and no network I/O happens.
func (c *Client) Send(ctx context.Context, message string) error {
	body, err := json.Marshal(BuildPayload(message, c.format))
	if err != nil {
		return fmt.Errorf("encoding webhook payload: %w", err)
	}

	if c.dryRun {
		fmt.Fprintf(c.out, "[DRY RUN] Would send: %s\n", body)
		return nil
	}
	if c.url == "" {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("building webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("posting to webhook: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("webhook returned %s", resp.Status)
	}
	return nil
}
