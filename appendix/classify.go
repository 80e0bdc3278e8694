package appendix

import (
	"context"

	"github.com/wudi/attachkit/observability"
)

// Label is the classification verdict for a single page.
type Label int

const (
	// LabelNonTable marks a page without table content: figures, photos,
	// prose, or anything else the extractor should not select.
	LabelNonTable Label = iota
	// LabelTable marks a page carrying tabular content.
	LabelTable
)

func (l Label) String() string {
	if l == LabelTable {
		return "table"
	}
	return "non-table"
}

// structural grid acceptance thresholds
const (
	minStructuralRows  = 3
	minStructuralCells = 3
)

// ClassifierOption configures a Classifier.
type ClassifierOption func(*Classifier)

// WithClassifierLogger attaches a logger.
func WithClassifierLogger(l observability.Logger) ClassifierOption {
	return func(c *Classifier) { c.log = l.With(observability.Component("classify")) }
}

// Classifier decides per page whether it carries tabular content. Keyword
// evidence is checked on normalized text before any geometry is consulted, and
// negative evidence outranks positive: a page mentioning both a figure caption
// and an investment figure is a figure page.
type Classifier struct {
	keywords *Keywords
	acquirer *Acquirer
	log      observability.Logger
}

// NewClassifier builds a classifier over the given keyword sets and acquirer.
func NewClassifier(keywords *Keywords, acquirer *Acquirer, opts ...ClassifierOption) *Classifier {
	c := &Classifier{
		keywords: keywords,
		acquirer: acquirer,
		log:      observability.NopLogger{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Classify labels a single page. The decision order is fixed:
//
//  1. a non-table signal in the page text wins outright
//  2. a table signal in the page text marks the page as a table page
//  3. a detected grid with at least 3 populated rows, one of which has at
//     least 3 populated cells, marks the page as a table page
//  4. otherwise the page is a non-table page
func (c *Classifier) Classify(ctx context.Context, page Page, useOCR bool) Label {
	normalized := Normalize(c.acquirer.Acquire(ctx, page, useOCR))
	if c.keywords.hasNonTableSignal(normalized) {
		c.log.Debug("non-table signal",
			observability.Int("page", page.Index()))
		return LabelNonTable
	}
	if c.keywords.hasTableSignal(normalized) {
		c.log.Debug("table signal",
			observability.Int("page", page.Index()))
		return LabelTable
	}
	for _, grid := range page.TableRegions() {
		if grid.NonEmptyRows() >= minStructuralRows && grid.MaxNonEmptyCells() >= minStructuralCells {
			c.log.Debug("structural grid",
				observability.Int("page", page.Index()),
				observability.Int("rows", grid.NonEmptyRows()))
			return LabelTable
		}
	}
	return LabelNonTable
}
