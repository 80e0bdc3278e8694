// Package tesseract provides the gosseract-backed OCR engine used as the
// primary backend for scanned administrative documents. It requires the
// Tesseract native library and the relevant trained data (for Chinese
// documents: tesseract-ocr-chi-sim) to be installed on the system.
package tesseract

import (
	"context"
	"fmt"
	"strings"

	"github.com/otiai10/gosseract/v2"

	"github.com/wudi/attachkit/ocr"
)

// DefaultLanguages matches the vocabulary of the documents this pipeline was
// built for: simplified Chinese with embedded Latin figures.
var DefaultLanguages = []string{"chi_sim", "eng"}

// Engine implements ocr.Engine using a gosseract client per call. Clients are
// not reused across calls, so the engine is safe for concurrent use.
type Engine struct {
	languages     []string
	clientFactory func() *gosseract.Client
}

// Option configures the engine.
type Option func(*Engine)

// WithLanguages overrides the default language set.
func WithLanguages(langs ...string) Option {
	return func(e *Engine) { e.languages = append([]string(nil), langs...) }
}

// New constructs a Tesseract-backed OCR engine.
func New(opts ...Option) *Engine {
	e := &Engine{
		languages:     DefaultLanguages,
		clientFactory: gosseract.NewClient,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) Name() string { return "tesseract" }

// Available probes the native library by asking for installed trained data.
func (e *Engine) Available() bool {
	c := e.clientFactory()
	defer c.Close()
	langs, err := c.GetAvailableLanguages()
	return err == nil && len(langs) > 0
}

// Recognize performs OCR on a single rasterized page.
func (e *Engine) Recognize(ctx context.Context, in ocr.Input) (ocr.Result, error) {
	if err := ctx.Err(); err != nil {
		return ocr.Result{}, err
	}
	c := e.clientFactory()
	defer c.Close()

	if err := c.SetImageFromBytes(in.Image); err != nil {
		return ocr.Result{}, fmt.Errorf("set image: %w", err)
	}
	langs := in.Languages
	if len(langs) == 0 {
		langs = e.languages
	}
	if len(langs) > 0 {
		if err := c.SetLanguage(langs...); err != nil {
			return ocr.Result{}, fmt.Errorf("set languages: %w", err)
		}
	}
	if in.DPI > 0 {
		if err := c.SetVariable(gosseract.SettableVariable("user_defined_dpi"), fmt.Sprint(in.DPI)); err != nil {
			return ocr.Result{}, fmt.Errorf("set dpi: %w", err)
		}
	}
	text, err := c.Text()
	if err != nil {
		return ocr.Result{}, fmt.Errorf("recognize text: %w", err)
	}
	return ocr.Result{
		PlainText: strings.TrimSpace(text),
		Engine:    e.Name(),
	}, nil
}
