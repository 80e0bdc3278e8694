// Package pipeline runs the full attachment-table workflow over one source
// document: locate the attachment section, classify its pages, and extract
// the selected pages into a new PDF.
package pipeline

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/wudi/attachkit/appendix"
	"github.com/wudi/attachkit/document"
	"github.com/wudi/attachkit/extract"
	"github.com/wudi/attachkit/observability"
	"github.com/wudi/attachkit/ocr"
	"github.com/wudi/attachkit/watermark"
)

// DefaultWorkers bounds the per-page classification fan-out.
const DefaultWorkers = 4

// Job describes one document to process.
type Job struct {
	// SourcePath is the input PDF.
	SourcePath string
	// OutputDir receives the extracted PDF(s).
	OutputDir string
	// UseOCR enables OCR fallback for pages without a text layer.
	UseOCR bool
	// TableOnly restricts extraction to classified table pages; when false
	// the whole attachment section is extracted without classification.
	TableOnly bool
	// Debug logs the per-page classification verdicts.
	Debug bool
	// RemoveWatermark additionally writes a raster copy of the extract with
	// light gray overlays whitened.
	RemoveWatermark bool
	// Watermark tuning, used only when RemoveWatermark is set.
	WatermarkDPI                 int
	WatermarkLightThreshold      int
	WatermarkSaturationThreshold int
}

// NewJob returns a Job for sourcePath with the default switches: OCR on,
// table-only extraction, watermark removal off.
func NewJob(sourcePath, outputDir string) Job {
	return Job{
		SourcePath:                   sourcePath,
		OutputDir:                    outputDir,
		UseOCR:                       true,
		TableOnly:                    true,
		WatermarkDPI:                 watermark.DefaultDPI,
		WatermarkLightThreshold:      watermark.DefaultLightThreshold,
		WatermarkSaturationThreshold: watermark.DefaultSaturationThreshold,
	}
}

// Report summarizes one processed document.
type Report struct {
	// Boundary is the 1-based first attachment page, 0 when none was found.
	Boundary int
	// Labels holds the verdict for each page from Boundary to the end, in
	// page order. Empty when classification was skipped.
	Labels []appendix.Label
	// Selection lists the extracted page indices in ascending order. Empty
	// when nothing qualified.
	Selection []int
	// OutputPath is the written extract, empty when nothing was extracted.
	OutputPath string
	// SkippedPages lists selection indices the extractor found out of range.
	// Anything here points at a selection bug upstream.
	SkippedPages []int
	// CleanedPath is the watermark-free copy, when one was requested and
	// produced.
	CleanedPath string
	// Warnings carries the non-fatal conditions hit along the way.
	Warnings []string
}

// Option configures a Runner.
type Option func(*Runner)

// WithLogger attaches a logger.
func WithLogger(l observability.Logger) Option {
	return func(r *Runner) { r.log = l.With(observability.Component("pipeline")) }
}

// WithKeywords overrides the embedded keyword vocabulary.
func WithKeywords(kw *appendix.Keywords) Option {
	return func(r *Runner) { r.keywords = kw }
}

// WithOCRChain supplies the OCR backends. Without one, pages lacking a text
// layer yield no text.
func WithOCRChain(chain *ocr.Chain) Option {
	return func(r *Runner) { r.chain = chain }
}

// WithWorkers bounds the classification fan-out.
func WithWorkers(n int) Option {
	return func(r *Runner) {
		if n > 0 {
			r.workers = n
		}
	}
}

// WithCleaner overrides the watermark post-processor. Without it each job
// gets an HSV processor built from its watermark settings.
func WithCleaner(c watermark.Cleaner) Option {
	return func(r *Runner) { r.cleaner = c }
}

// Runner executes jobs. It is safe for concurrent use; all per-job state
// lives on the stack of Run.
type Runner struct {
	keywords *appendix.Keywords
	chain    *ocr.Chain
	cleaner  watermark.Cleaner
	workers  int
	log      observability.Logger
}

func New(opts ...Option) *Runner {
	r := &Runner{
		keywords: appendix.DefaultKeywords(),
		workers:  DefaultWorkers,
		log:      observability.NopLogger{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run processes one document. Structural problems with the source or the
// output location are errors; an absent attachment section, a selection with
// no table pages, and a failed watermark pass are reported as warnings on a
// nil-error Report.
func (r *Runner) Run(ctx context.Context, job Job) (Report, error) {
	doc, err := document.Open(job.SourcePath)
	if err != nil {
		return Report{}, fmt.Errorf("open %s: %w", job.SourcePath, err)
	}
	defer doc.Close()
	src := docSource{doc}
	total := doc.PageCount()

	acquirer := appendix.NewAcquirer(r.chain, appendix.WithAcquirerLogger(r.log))
	locator := appendix.NewLocator(r.keywords, acquirer, appendix.WithLocatorLogger(r.log))

	var report Report
	report.Boundary, err = locator.Locate(ctx, src, job.UseOCR)
	if err != nil {
		return report, fmt.Errorf("locate attachment boundary: %w", err)
	}
	if report.Boundary == appendix.NotFound {
		report.Warnings = append(report.Warnings, "no attachment marker found")
		return report, nil
	}
	if report.Boundary > total {
		report.Warnings = append(report.Warnings,
			fmt.Sprintf("attachment section starts past the last page (%d of %d)", report.Boundary, total))
		return report, nil
	}

	if job.TableOnly {
		report.Labels, err = r.classifyRange(ctx, src, acquirer, report.Boundary, total, job)
		if err != nil {
			return report, err
		}
		report.Selection = appendix.Aggregate(report.Boundary, report.Labels)
		if len(report.Selection) == 0 {
			report.Warnings = append(report.Warnings, "no table pages in attachment section")
			return report, nil
		}
	} else {
		report.Selection = appendix.AllPages(report.Boundary, total)
	}

	outputPath := extract.AttachmentsPath(job.OutputDir, job.SourcePath, report.Boundary, total)
	if job.TableOnly {
		outputPath = extract.TablesPath(job.OutputDir, job.SourcePath, report.Selection)
	}
	extractor := extract.New(extract.WithLogger(r.log))
	res, err := extractor.Extract(ctx, job.SourcePath, outputPath, report.Selection)
	if err != nil {
		return report, fmt.Errorf("extract pages: %w", err)
	}
	report.OutputPath = res.OutputPath
	report.SkippedPages = res.Skipped
	for _, p := range res.Skipped {
		report.Warnings = append(report.Warnings, fmt.Sprintf("page %d out of range, skipped", p))
	}

	if job.RemoveWatermark {
		r.removeWatermark(ctx, job, &report)
	}
	return report, nil
}

// classifyRange labels pages first..last. Pages are classified concurrently;
// the result is ordered by page regardless of completion order.
func (r *Runner) classifyRange(ctx context.Context, src appendix.Source, acquirer *appendix.Acquirer, first, last int, job Job) ([]appendix.Label, error) {
	classifier := appendix.NewClassifier(r.keywords, acquirer, appendix.WithClassifierLogger(r.log))
	labels := make([]appendix.Label, last-first+1)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)
	for page := first; page <= last; page++ {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			p, err := src.Page(page)
			if err != nil {
				return err
			}
			labels[page-first] = classifier.Classify(ctx, p, job.UseOCR)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("classify pages: %w", err)
	}
	if job.Debug {
		for i, label := range labels {
			r.log.Info("page classified",
				observability.Int("page", first+i),
				observability.String("label", label.String()))
		}
	}
	return labels, nil
}

// removeWatermark is best effort: a failure is downgraded to a warning so the
// already-written extract survives.
func (r *Runner) removeWatermark(ctx context.Context, job Job, report *Report) {
	cleaner := r.cleaner
	if cleaner == nil {
		cleaner = watermark.New(
			watermark.WithDPI(job.WatermarkDPI),
			watermark.WithLightThreshold(job.WatermarkLightThreshold),
			watermark.WithSaturationThreshold(job.WatermarkSaturationThreshold),
			watermark.WithLogger(r.log),
		)
	}
	cleaned := watermark.DefaultOutputPath(report.OutputPath)
	if err := cleaner.Clean(ctx, report.OutputPath, cleaned); err != nil {
		r.log.Warn("watermark removal failed", observability.Error("cause", err))
		report.Warnings = append(report.Warnings, fmt.Sprintf("watermark removal failed: %v", err))
		return
	}
	report.CleanedPath = cleaned
}

// docSource adapts an open document to the page views the locator and
// classifier consume.
type docSource struct {
	doc *document.Document
}

func (s docSource) PageCount() int { return s.doc.PageCount() }

func (s docSource) Page(index int) (appendix.Page, error) { return s.doc.Page(index) }
