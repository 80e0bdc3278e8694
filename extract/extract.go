// Package extract copies selected pages of a source PDF into a new document.
package extract

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/wudi/attachkit/observability"
)

// ErrNoPages reports that after range filtering nothing was left to write.
var ErrNoPages = errors.New("no pages to extract")

// Result describes a completed extraction.
type Result struct {
	// OutputPath is the written file.
	OutputPath string
	// Written lists the page indices copied, in output order.
	Written []int
	// Skipped lists requested indices that were outside the document.
	Skipped []int
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithLogger attaches a logger.
func WithLogger(l observability.Logger) Option {
	return func(e *Extractor) { e.log = l.With(observability.Component("extract")) }
}

// Extractor writes page selections out as standalone PDFs. The source file is
// never modified.
type Extractor struct {
	log observability.Logger
}

func New(opts ...Option) *Extractor {
	e := &Extractor{log: observability.NopLogger{}}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract copies the requested pages of sourcePath, in the requested order,
// into a new PDF at outputPath. Indices outside 1..PageCount are skipped with
// a warning and reported in the result rather than failing the run; an
// entirely out-of-range selection is an error. Parent directories of
// outputPath are created as needed.
func (e *Extractor) Extract(ctx context.Context, sourcePath, outputPath string, pages []int) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	total, err := api.PageCountFile(sourcePath)
	if err != nil {
		return Result{}, fmt.Errorf("page count of %s: %w", sourcePath, err)
	}
	valid, skipped := Partition(pages, total)
	for _, p := range skipped {
		e.log.Warn("requested page out of range, skipping",
			observability.Int("page", p),
			observability.Int("pages", total))
	}
	if len(valid) == 0 {
		return Result{Skipped: skipped}, fmt.Errorf("%s: %w", sourcePath, ErrNoPages)
	}

	if dir := filepath.Dir(outputPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return Result{}, fmt.Errorf("create output directory: %w", err)
		}
	}
	selection := make([]string, len(valid))
	for i, p := range valid {
		selection[i] = strconv.Itoa(p)
	}
	if err := api.CollectFile(sourcePath, outputPath, selection, nil); err != nil {
		return Result{}, fmt.Errorf("collect pages into %s: %w", outputPath, err)
	}
	e.log.Info("pages extracted",
		observability.Ints("pages", valid),
		observability.Int("skipped", len(skipped)),
		observability.String("output", outputPath))
	return Result{OutputPath: outputPath, Written: valid, Skipped: skipped}, nil
}

// Partition splits page indices into those within 1..total and the rest,
// preserving the requested order in both slices.
func Partition(pages []int, total int) (valid, skipped []int) {
	for _, p := range pages {
		if p >= 1 && p <= total {
			valid = append(valid, p)
		} else {
			skipped = append(skipped, p)
		}
	}
	return valid, skipped
}

// AttachmentsPath names the output for a full attachment-section extract of
// sourcePath covering pages first..last.
func AttachmentsPath(outputDir, sourcePath string, first, last int) string {
	return filepath.Join(outputDir, fmt.Sprintf("%s_attachments_%d-%d.pdf", stem(sourcePath), first, last))
}

// TablesPath names the output for a table-page extract of sourcePath. The
// selection must be non-empty; the name carries its lowest and highest index.
func TablesPath(outputDir, sourcePath string, pages []int) string {
	lo, hi := pages[0], pages[0]
	for _, p := range pages[1:] {
		if p < lo {
			lo = p
		}
		if p > hi {
			hi = p
		}
	}
	return filepath.Join(outputDir, fmt.Sprintf("%s_tables_%d_%d.pdf", stem(sourcePath), lo, hi))
}

func stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
