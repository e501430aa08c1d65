// Package engine provides the HTTP client for the remote Arabic proofreading
// engine. The engine owns text extraction, linguistic analysis, and
// proofreading; this package only transports requests and classifies
// failures as transport-level or engine-reported.
package engine

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/Bashar-1216/arabic-academic-proofreader/pkg/lifecycle"
)

const maxErrorBodyBytes = 2048

// Client issues requests against the proofreading engine. Timeouts are
// applied per call through context deadlines rather than http.Client.Timeout,
// so uploads can run longer than the standard request timeout.
type Client struct {
	baseURL        string
	http           *http.Client
	requestTimeout time.Duration
	uploadTimeout  time.Duration
	logger         *slog.Logger
}

// NewClient creates a Client from the given configuration.
func NewClient(cfg *Config, logger *slog.Logger) *Client {
	return &Client{
		baseURL:        cfg.BaseURL,
		http:           &http.Client{},
		requestTimeout: cfg.RequestTimeoutDuration(),
		uploadTimeout:  cfg.UploadTimeoutDuration(),
		logger:         logger.With("system", "engine"),
	}
}

// Start registers a startup hook that probes the engine's health endpoint.
// An unreachable engine is logged, not fatal: the service can start and
// surface engine failures per call.
func (c *Client) Start(lc *lifecycle.Coordinator) error {
	lc.OnStartup(func() {
		if err := c.Health(lc.Context()); err != nil {
			c.logger.Warn("engine health probe failed", "error", err)
			return
		}
		c.logger.Info("engine reachable", "base_url", c.baseURL)
	})
	return nil
}

// Health probes the engine's health endpoint.
func (c *Client) Health(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, c.requestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return &TransportError{Op: "health", Err: err}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &TransportError{Op: "health", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &RemoteError{Op: "health", Status: resp.StatusCode}
	}
	return nil
}

// Upload sends the document to the engine for text extraction. The progress
// observer, when non-nil, receives transfer percentages as the request body
// is consumed.
func (c *Client) Upload(
	ctx context.Context,
	filename string,
	contentType string,
	data []byte,
	progress ProgressFunc,
) (*Extraction, error) {
	var body bytes.Buffer
	form := multipart.NewWriter(&body)

	part, err := form.CreateFormFile("file", filename)
	if err != nil {
		return nil, &TransportError{Op: "upload", Err: err}
	}
	if _, err := part.Write(data); err != nil {
		return nil, &TransportError{Op: "upload", Err: err}
	}
	if err := form.Close(); err != nil {
		return nil, &TransportError{Op: "upload", Err: err}
	}

	size := int64(body.Len())
	reader := newProgressReader(&body, size, progress)

	uploadCtx, cancel := context.WithTimeout(ctx, c.uploadTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(uploadCtx, http.MethodPost, c.baseURL+"/upload", reader)
	if err != nil {
		return nil, &TransportError{Op: "upload", Err: err}
	}
	req.Header.Set("Content-Type", form.FormDataContentType())
	req.ContentLength = size

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &TransportError{Op: "upload", Err: err}
	}
	defer resp.Body.Close()

	var envelope uploadEnvelope
	if err := decode(resp, "upload", &envelope); err != nil {
		return nil, err
	}
	if !envelope.Success {
		return nil, &RemoteError{Op: "upload", Status: resp.StatusCode, Message: envelope.Error}
	}

	c.logger.Info(
		"document extracted",
		"filename", filename,
		"size_bytes", len(data),
		"words", envelope.Stats.TotalWords,
		"duration", time.Since(start),
	)

	return &Extraction{
		Text:     envelope.Text,
		Metadata: envelope.Metadata,
		Stats:    envelope.Stats,
	}, nil
}

// Analyze requests supplementary text statistics for the given text.
func (c *Client) Analyze(ctx context.Context, text string) (*Analysis, error) {
	var envelope analyzeEnvelope
	resp, err := c.postJSON(ctx, "analyze", textRequest{Text: text}, &envelope)
	if err != nil {
		return nil, err
	}
	if !envelope.Success || envelope.Analysis == nil {
		return nil, &RemoteError{Op: "analyze", Status: resp, Message: envelope.Error}
	}
	return envelope.Analysis, nil
}

// Proofread runs a proofreading pass over the given text.
func (c *Client) Proofread(ctx context.Context, text string) (*ProofreadResult, error) {
	var envelope proofreadEnvelope
	resp, err := c.postJSON(ctx, "proofread", textRequest{Text: text}, &envelope)
	if err != nil {
		return nil, err
	}
	if !envelope.Success {
		return nil, &RemoteError{Op: "proofread", Status: resp, Message: envelope.Error}
	}

	return &ProofreadResult{
		OriginalText:  envelope.OriginalText,
		CorrectedText: envelope.CorrectedText,
		Suggestions:   envelope.Suggestions,
		Stats:         envelope.Stats,
	}, nil
}

func (c *Client) postJSON(ctx context.Context, op string, payload any, out any) (int, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return 0, &TransportError{Op: op, Err: err}
	}

	ctx, cancel := context.WithTimeout(ctx, c.requestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/"+op, bytes.NewReader(body))
	if err != nil {
		return 0, &TransportError{Op: op, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, &TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if err := decode(resp, op, out); err != nil {
		return resp.StatusCode, err
	}
	return resp.StatusCode, nil
}

// decode reads the response body into out. Engine error envelopes arrive with
// non-2xx statuses but still carry JSON, so decoding is attempted regardless
// of status; an unparseable body on a failed status is reported as remote.
func decode(resp *http.Response, op string, out any) error {
	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}

	if err := json.Unmarshal(data, out); err != nil {
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return &RemoteError{Op: op, Status: resp.StatusCode, Message: truncate(string(data))}
		}
		return &TransportError{Op: op, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

func truncate(s string) string {
	if len(s) > maxErrorBodyBytes {
		return s[:maxErrorBodyBytes]
	}
	return s
}
