// Package watermark removes light gray stamp overlays from scanned PDFs by
// re-rasterizing each page and whitening low-saturation bright pixels.
package watermark

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/gen2brain/go-fitz"
	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/wudi/attachkit/observability"
)

// Tuned for the pale gray text stamps common on scanned administrative
// documents. Body text and table rules are near-black and far below the
// lightness cut; colored chops are saturated and excluded by the second cut.
const (
	DefaultDPI                 = 200
	DefaultLightThreshold      = 200
	DefaultSaturationThreshold = 30
)

// Cleaner is the post-processing contract: rewrite sourcePath without its
// watermark into outputPath. Processor is the HSV-mask implementation; the
// pipeline depends only on this interface.
type Cleaner interface {
	Clean(ctx context.Context, sourcePath, outputPath string) error
}

// Option configures a Processor.
type Option func(*Processor)

// WithDPI sets the rasterization resolution.
func WithDPI(dpi int) Option {
	return func(p *Processor) {
		if dpi > 0 {
			p.dpi = dpi
		}
	}
}

// WithLightThreshold sets the minimum HSV value (0..255) a pixel must exceed
// to count as watermark.
func WithLightThreshold(v int) Option {
	return func(p *Processor) { p.light = v }
}

// WithSaturationThreshold sets the HSV saturation (0..255) a pixel must stay
// under to count as watermark.
func WithSaturationThreshold(s int) Option {
	return func(p *Processor) { p.saturation = s }
}

// WithLogger attaches a logger.
func WithLogger(l observability.Logger) Option {
	return func(p *Processor) { p.log = l.With(observability.Component("watermark")) }
}

// Processor rewrites a PDF as a sequence of cleaned page rasters. The output
// is image-backed: any text layer of the source is not carried over, which is
// acceptable for the scanned documents this targets.
type Processor struct {
	dpi        int
	light      int
	saturation int
	log        observability.Logger
}

func New(opts ...Option) *Processor {
	p := &Processor{
		dpi:        DefaultDPI,
		light:      DefaultLightThreshold,
		saturation: DefaultSaturationThreshold,
		log:        observability.NopLogger{},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// DefaultOutputPath names the cleaned copy of sourcePath, beside it.
func DefaultOutputPath(sourcePath string) string {
	base := filepath.Base(sourcePath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(filepath.Dir(sourcePath), stem+"_nowm.pdf")
}

// Clean renders every page of sourcePath, whitens watermark pixels, and
// assembles the cleaned rasters into a new PDF at outputPath.
func (p *Processor) Clean(ctx context.Context, sourcePath, outputPath string) error {
	doc, err := fitz.New(sourcePath)
	if err != nil {
		return fmt.Errorf("open %s for rendering: %w", sourcePath, err)
	}
	defer doc.Close()

	tmpDir, err := os.MkdirTemp("", "attachkit-nowm-*")
	if err != nil {
		return fmt.Errorf("temp dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	total := doc.NumPage()
	pagePaths := make([]string, 0, total)
	cleaned := 0
	for i := 0; i < total; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		img, err := doc.ImageDPI(i, float64(p.dpi))
		if err != nil {
			return fmt.Errorf("render page %d: %w", i+1, err)
		}
		cleaned += Whiten(img, p.light, p.saturation)
		path := filepath.Join(tmpDir, fmt.Sprintf("page_%04d.png", i+1))
		if err := writePNG(path, img); err != nil {
			return fmt.Errorf("encode page %d: %w", i+1, err)
		}
		pagePaths = append(pagePaths, path)
	}
	if len(pagePaths) == 0 {
		return fmt.Errorf("%s has no pages", sourcePath)
	}

	if dir := filepath.Dir(outputPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}
	if err := api.ImportImagesFile(pagePaths, outputPath, nil, nil); err != nil {
		return fmt.Errorf("assemble %s: %w", outputPath, err)
	}
	p.log.Info("watermark removed",
		observability.Int("pages", total),
		observability.Int("pixels", cleaned),
		observability.String("output", outputPath))
	return nil
}

// Whiten sets every bright low-saturation pixel of img to pure white and
// returns how many pixels changed. Value and saturation are on the 0..255
// scale: value is the channel maximum, saturation is (max-min)*255/max.
func Whiten(img *image.RGBA, light, saturation int) int {
	changed := 0
	pix := img.Pix
	for i := 0; i+3 < len(pix); i += 4 {
		r, g, b := pix[i], pix[i+1], pix[i+2]
		hi, lo := channelRange(r, g, b)
		if int(hi) <= light {
			continue
		}
		sat := 0
		if hi > 0 {
			sat = int(hi-lo) * 255 / int(hi)
		}
		if sat >= saturation {
			continue
		}
		if r == 255 && g == 255 && b == 255 {
			continue
		}
		pix[i], pix[i+1], pix[i+2] = 255, 255, 255
		changed++
	}
	return changed
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func channelRange(r, g, b uint8) (hi, lo uint8) {
	hi, lo = r, r
	if g > hi {
		hi = g
	}
	if g < lo {
		lo = g
	}
	if b > hi {
		hi = b
	}
	if b < lo {
		lo = b
	}
	return hi, lo
}
