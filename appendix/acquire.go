package appendix

import (
	"context"
	"strings"

	"github.com/wudi/attachkit/observability"
	"github.com/wudi/attachkit/ocr"
)

// DefaultOCRDPI is the rasterization resolution for OCR input. It is kept
// deliberately low: recognition quality at higher resolutions does not pay
// for the extra render and recognition time on whole-document scans.
const DefaultOCRDPI = 150

// AcquirerOption configures an Acquirer.
type AcquirerOption func(*Acquirer)

// WithOCRDPI overrides the OCR rasterization resolution.
func WithOCRDPI(dpi int) AcquirerOption {
	return func(a *Acquirer) {
		if dpi > 0 {
			a.dpi = dpi
		}
	}
}

// WithOCRLanguages sets the language hints passed to the OCR chain.
func WithOCRLanguages(langs ...string) AcquirerOption {
	return func(a *Acquirer) { a.languages = append([]string(nil), langs...) }
}

// WithAcquirerLogger attaches a logger.
func WithAcquirerLogger(l observability.Logger) AcquirerOption {
	return func(a *Acquirer) { a.log = l.With(observability.Component("acquire")) }
}

// Acquirer obtains per-page text: the embedded text layer when present,
// otherwise OCR over a reduced-resolution render. The OCR chain is
// constructed by the caller and passed in here, so backend setup happens
// exactly once, before any per-page fan-out. An Acquirer is safe for
// concurrent use across pages.
type Acquirer struct {
	chain     *ocr.Chain
	dpi       int
	languages []string
	log       observability.Logger
}

// NewAcquirer builds an acquirer over the given OCR chain. A nil chain
// disables OCR entirely; pages without a text layer then yield empty text.
func NewAcquirer(chain *ocr.Chain, opts ...AcquirerOption) *Acquirer {
	a := &Acquirer{
		chain: chain,
		dpi:   DefaultOCRDPI,
		log:   observability.NopLogger{},
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// OCRAvailable reports whether at least one OCR backend is usable.
func (a *Acquirer) OCRAvailable() bool {
	return a.chain != nil && a.chain.Available()
}

// Acquire returns the page's text. Failures at any stage degrade to the
// empty string — downstream components treat empty text as "no signal",
// never as an error.
func (a *Acquirer) Acquire(ctx context.Context, page Page, useOCR bool) string {
	if text := page.Text(); strings.TrimSpace(text) != "" {
		return text
	}
	if !useOCR || !a.OCRAvailable() {
		return ""
	}

	img, err := page.Image(a.dpi)
	if err != nil {
		a.log.Warn("page render failed, no ocr input",
			observability.Int("page", page.Index()),
			observability.Error("cause", err))
		return ""
	}
	in, err := ocr.InputFromImage(img, ocr.WithDPI(a.dpi), ocr.WithLanguages(a.languages...))
	if err != nil {
		a.log.Warn("ocr input encoding failed",
			observability.Int("page", page.Index()),
			observability.Error("cause", err))
		return ""
	}
	res, err := a.chain.Recognize(ctx, in)
	if err != nil {
		a.log.Warn("ocr failed for page",
			observability.Int("page", page.Index()),
			observability.Error("cause", err))
		return ""
	}
	return res.PlainText
}
