package appendix

import (
	"image"

	"github.com/wudi/attachkit/document"
)

// Page is the view of a single source page that the locator and classifier
// need. *document.Page implements it; tests drive the algorithms with fakes.
type Page interface {
	// Index returns the page's 1-based index.
	Index() int
	// Text returns the embedded text layer, or "" when absent.
	Text() string
	// Image rasterizes the page at the given DPI for OCR.
	Image(dpi int) (image.Image, error)
	// TableRegions reports structurally detected table grids on the page.
	TableRegions() []document.Grid
}

// Source is the view of an open document the boundary scan needs.
type Source interface {
	PageCount() int
	Page(index int) (Page, error)
}
