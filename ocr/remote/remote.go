// Package remote provides an OCR engine backed by an HTTP recognition
// service, used as the secondary backend when the native Tesseract library is
// missing or fails on a page. The service contract is deliberately plain: the
// encoded page image is POSTed as the request body and the recognized text
// comes back as the plain-text response body.
package remote

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/wudi/attachkit/ocr"
)

// Engine implements ocr.Engine over an HTTP OCR service.
type Engine struct {
	endpoint  string
	languages []string
	client    *http.Client
}

// Option configures the engine.
type Option func(*Engine)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(e *Engine) { e.client = c }
}

// WithLanguages sets the language hints forwarded to the service.
func WithLanguages(langs ...string) Option {
	return func(e *Engine) { e.languages = append([]string(nil), langs...) }
}

// New constructs a remote OCR engine for the given endpoint URL.
func New(endpoint string, opts ...Option) *Engine {
	e := &Engine{
		endpoint: endpoint,
		client:   &http.Client{Timeout: 2 * time.Minute},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) Name() string { return "remote" }

// Available reports whether an endpoint has been configured. No network
// round-trip is made here; a dead service surfaces as a per-page failure that
// the chain degrades on.
func (e *Engine) Available() bool { return e.endpoint != "" }

// Recognize submits the page image to the service and returns its text.
func (e *Engine) Recognize(ctx context.Context, in ocr.Input) (ocr.Result, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.endpoint, bytes.NewReader(in.Image))
	if err != nil {
		return ocr.Result{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", string(in.Format))
	if langs := in.Languages; len(langs) > 0 {
		req.Header.Set("X-OCR-Languages", strings.Join(langs, "+"))
	} else if len(e.languages) > 0 {
		req.Header.Set("X-OCR-Languages", strings.Join(e.languages, "+"))
	}
	if in.DPI > 0 {
		req.Header.Set("X-OCR-DPI", fmt.Sprint(in.DPI))
	}

	resp, err := e.client.Do(req)
	if err != nil {
		return ocr.Result{}, fmt.Errorf("call ocr service: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return ocr.Result{}, fmt.Errorf("ocr service returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	text, err := io.ReadAll(resp.Body)
	if err != nil {
		return ocr.Result{}, fmt.Errorf("read ocr response: %w", err)
	}
	return ocr.Result{
		PlainText: strings.TrimSpace(string(text)),
		Engine:    e.Name(),
	}, nil
}
