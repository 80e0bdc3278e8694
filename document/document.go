// Package document models a source PDF for the attachment extraction
// pipeline: page count, per-page embedded text layer, rasterization for OCR,
// and structural table-region detection from positioned text fragments.
//
// A Document and its Pages are read-only for the lifetime of a job. Text and
// table-region access is safe for concurrent use across pages; rasterization
// is serialized internally because the underlying renderer is not
// thread-safe.
package document

import (
	"fmt"
	"image"
	"os"
	"sync"

	"github.com/gen2brain/go-fitz"
	"github.com/ledongthuc/pdf"
)

// Document is an open source PDF.
type Document struct {
	path      string
	file      *os.File
	reader    *pdf.Reader
	pageCount int

	renderMu  sync.Mutex
	renderer  *fitz.Document
	renderErr error
}

// Open reads the PDF at path. The text layer and page tree must be readable;
// the rasterizer is opened best-effort, and a rasterizer failure only
// surfaces later if a page image is actually requested (OCR degrades
// gracefully without it).
func Open(path string) (*Document, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf %s: %w", path, err)
	}
	d := &Document{
		path:      path,
		file:      f,
		reader:    reader,
		pageCount: reader.NumPage(),
	}
	d.renderer, d.renderErr = fitz.New(path)
	return d, nil
}

// Path returns the source file path.
func (d *Document) Path() string { return d.path }

// PageCount returns the number of pages in the document.
func (d *Document) PageCount() int { return d.pageCount }

// Page returns the page with the given 1-based index.
func (d *Document) Page(index int) (*Page, error) {
	if index < 1 || index > d.pageCount {
		return nil, fmt.Errorf("page index %d out of range [1,%d]", index, d.pageCount)
	}
	return &Page{doc: d, index: index}, nil
}

// Close releases the underlying file and renderer.
func (d *Document) Close() error {
	var firstErr error
	if d.renderer != nil {
		if err := d.renderer.Close(); err != nil {
			firstErr = err
		}
		d.renderer = nil
	}
	if d.file != nil {
		if err := d.file.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		d.file = nil
	}
	return firstErr
}

// Page is a single page of an open document, identified by a 1-based index.
type Page struct {
	doc   *Document
	index int
}

// Index returns the page's 1-based index.
func (p *Page) Index() int { return p.index }

// Text returns the page's embedded text layer. Absent or unreadable text
// layers yield the empty string; extraction never fails hard.
func (p *Page) Text() string {
	page := p.doc.reader.Page(p.index)
	if page.V.IsNull() {
		return ""
	}
	text, err := page.GetPlainText(nil)
	if err != nil {
		return ""
	}
	return text
}

// Image rasterizes the page at the given DPI.
func (p *Page) Image(dpi int) (image.Image, error) {
	p.doc.renderMu.Lock()
	defer p.doc.renderMu.Unlock()
	if p.doc.renderErr != nil {
		return nil, fmt.Errorf("renderer unavailable: %w", p.doc.renderErr)
	}
	img, err := p.doc.renderer.ImageDPI(p.index-1, float64(dpi))
	if err != nil {
		return nil, fmt.Errorf("render page %d: %w", p.index, err)
	}
	return img, nil
}

// TableRegions detects grid-like regions on the page from the geometry of its
// text fragments, independent of any caption or keyword. Pages without a text
// layer report no regions.
func (p *Page) TableRegions() []Grid {
	page := p.doc.reader.Page(p.index)
	if page.V.IsNull() {
		return nil
	}
	content := page.Content()
	return detectGrids(content.Text)
}
