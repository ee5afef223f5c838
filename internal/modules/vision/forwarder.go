// README: Forwards uploaded images to the local image-analysis service.
package vision

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// DefaultTimeout bounds one call to the analysis service.
const DefaultTimeout = 20 * time.Second

// maxUpstreamBody caps how much of an upstream reply is read.
const maxUpstreamBody = 4 << 20

// UpstreamError reports a failed forward. Body holds the upstream reply for logs only.
type UpstreamError struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *UpstreamError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("image analysis upstream: %v", e.Err)
	}
	return fmt.Sprintf("image analysis upstream: status %d", e.StatusCode)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// Forwarder posts request bodies unchanged to the analysis service.
type Forwarder struct {
	url    string
	client *http.Client
}

func NewForwarder(url string) *Forwarder {
	return &Forwarder{url: url, client: &http.Client{Timeout: DefaultTimeout}}
}

// Analyze forwards body with its content type and returns the upstream JSON reply.
func (f *Forwarder) Analyze(ctx context.Context, contentType string, body io.Reader) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.url, body)
	if err != nil {
		return nil, &UpstreamError{Err: fmt.Errorf("build request: %w", err)}
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		slog.ErrorContext(ctx, "image analysis request failed", "url", f.url, "error", err)
		return nil, &UpstreamError{Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxUpstreamBody))
	if err != nil {
		return nil, &UpstreamError{StatusCode: resp.StatusCode, Err: fmt.Errorf("read response: %w", err)}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		slog.ErrorContext(ctx, "image analysis returned error", "status", resp.StatusCode, "body", string(raw))
		return nil, &UpstreamError{StatusCode: resp.StatusCode, Body: string(raw)}
	}
	if !json.Valid(raw) {
		slog.ErrorContext(ctx, "image analysis returned non-JSON body", "body", string(raw))
		return nil, &UpstreamError{StatusCode: resp.StatusCode, Body: string(raw), Err: fmt.Errorf("response is not JSON")}
	}
	return json.RawMessage(raw), nil
}
