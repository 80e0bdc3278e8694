package ocr

import (
	"context"
	"errors"
)

// ImageFormat identifies the content type of an OCR input image.
type ImageFormat string

const (
	ImageFormatPNG  ImageFormat = "image/png"
	ImageFormatJPEG ImageFormat = "image/jpeg"
	ImageFormatTIFF ImageFormat = "image/tiff"
)

// ErrBackendUnavailable reports that an engine's runtime dependency (native
// library, binary, or remote endpoint) is not usable in this process. The
// chain treats it as a signal to move on to the next backend.
var ErrBackendUnavailable = errors.New("ocr backend unavailable")

// Input encapsulates a single page image submitted for recognition.
type Input struct {
	// Image is the encoded image payload in the format specified by Format.
	Image []byte
	// Format declares the image content type (e.g., image/png).
	Format ImageFormat
	// DPI carries the effective dots-per-inch the page was rasterized at.
	// Engines such as Tesseract use this for scaling heuristics; zero means
	// unknown.
	DPI int
	// Languages is a list of language hints (e.g., "chi_sim", "eng") that
	// engines can use to select trained data.
	Languages []string
}

// Result captures OCR output for a single input image. Only the linearized
// text is carried; the page classifier downstream works on plain text.
type Result struct {
	// PlainText contains the recognized text, whitespace-trimmed.
	PlainText string
	// Engine names the backend that produced the text.
	Engine string
}

// Engine is the OCR provider contract: one image in, one result out.
// Implementations must be safe for concurrent use; per-page recognition may
// be fanned out across goroutines.
type Engine interface {
	Name() string
	Recognize(ctx context.Context, input Input) (Result, error)
}

// Prober is implemented by engines that can cheaply verify their runtime
// dependency at startup. The chain probes each backend exactly once during
// construction, so heavyweight setup never races between pages.
type Prober interface {
	Available() bool
}
