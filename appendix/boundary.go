package appendix

import (
	"context"
	"regexp"

	"github.com/wudi/attachkit/observability"
)

// NotFound is the sentinel boundary for documents without any attachment
// marker.
const NotFound = 0

// 附件 followed immediately by an enumerator: an ASCII digit, a full-width
// digit, or a CJK numeral one through ten. Matching runs on normalized
// (whitespace-stripped) text, so no gap between the word and the enumerator
// needs to be tolerated here.
var (
	attachmentEnumRe  = regexp.MustCompile(`附件[0-9０-９一二三四五六七八九十]`)
	attachmentFirstRe = regexp.MustCompile(`附件[1１一]`)
)

// headPreviewRunes bounds the leading window inspected to decide whether the
// marker page is itself the first attachment page.
const headPreviewRunes = 50

// LocatorOption configures a Locator.
type LocatorOption func(*Locator)

// WithLocatorLogger attaches a logger.
func WithLocatorLogger(l observability.Logger) LocatorOption {
	return func(loc *Locator) { loc.log = l.With(observability.Component("boundary")) }
}

// Locator scans a document in ascending page order for the page at which its
// attachment section begins.
type Locator struct {
	keywords *Keywords
	acquirer *Acquirer
	log      observability.Logger
}

// NewLocator builds a locator over the given keyword sets and text acquirer.
func NewLocator(keywords *Keywords, acquirer *Acquirer, opts ...LocatorOption) *Locator {
	loc := &Locator{
		keywords: keywords,
		acquirer: acquirer,
		log:      observability.NopLogger{},
	}
	for _, opt := range opts {
		opt(loc)
	}
	return loc
}

// Locate returns the 1-based index of the first attachment page, or NotFound
// when no page carries a marker. Only the first marker occurrence counts; the
// scan stops there.
//
// A page whose normalized text begins (within the first 50 characters) with
// the marker for "attachment one" is itself the first attachment page. Any
// other marker hit is read as a list/header page, so the attachments start on
// the following page; for a marker on the last page the returned index may
// therefore be PageCount()+1, which callers treat as an empty attachment
// section.
func (loc *Locator) Locate(ctx context.Context, src Source, useOCR bool) (int, error) {
	total := src.PageCount()
	for i := 1; i <= total; i++ {
		if err := ctx.Err(); err != nil {
			return NotFound, err
		}
		page, err := src.Page(i)
		if err != nil {
			return NotFound, err
		}
		normalized := Normalize(loc.acquirer.Acquire(ctx, page, useOCR))
		if !loc.isMarkerPage(normalized) {
			continue
		}
		if attachmentFirstRe.MatchString(headRunes(normalized, headPreviewRunes)) {
			loc.log.Info("attachment section starts on marker page",
				observability.Int("page", i))
			return i, nil
		}
		loc.log.Info("attachment list page found, section starts on next page",
			observability.Int("page", i))
		return i + 1, nil
	}
	loc.log.Info("no attachment marker found",
		observability.Int("pages", total))
	return NotFound, nil
}

// isMarkerPage checks both marker signals on normalized text: literal
// containment of a marker phrase, or the word 附件 immediately followed by an
// enumerator. The second form catches markers whose punctuation was mangled
// by OCR.
func (loc *Locator) isMarkerPage(normalized string) bool {
	if normalized == "" {
		return false
	}
	if loc.keywords.hasAttachmentMarker(normalized) {
		return true
	}
	return attachmentEnumRe.MatchString(normalized)
}

func headRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
