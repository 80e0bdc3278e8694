package document

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/wudi/attachkit/internal/pdftest"
)

func TestOpenAndPageCount(t *testing.T) {
	path := pdftest.WritePDF(t, t.TempDir(), "three.pdf", []string{"first page", "second page", "third page"})
	doc, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer doc.Close()

	if doc.PageCount() != 3 {
		t.Fatalf("PageCount() = %d, want 3", doc.PageCount())
	}
	if doc.Path() != path {
		t.Fatalf("Path() = %q", doc.Path())
	}
}

func TestPageText(t *testing.T) {
	path := pdftest.WritePDF(t, t.TempDir(), "text.pdf", []string{"Attachment 1 budget", "diagram only"})
	doc, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer doc.Close()

	p, err := doc.Page(1)
	if err != nil {
		t.Fatalf("Page(1) error = %v", err)
	}
	if got := p.Text(); !strings.Contains(got, "Attachment 1 budget") {
		t.Fatalf("page 1 text = %q", got)
	}
	p2, err := doc.Page(2)
	if err != nil {
		t.Fatalf("Page(2) error = %v", err)
	}
	if got := p2.Text(); !strings.Contains(got, "diagram only") {
		t.Fatalf("page 2 text = %q", got)
	}
}

func TestPageOutOfRange(t *testing.T) {
	path := pdftest.WritePDF(t, t.TempDir(), "one.pdf", []string{"only page"})
	doc, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer doc.Close()

	for _, idx := range []int{0, -1, 2} {
		if _, err := doc.Page(idx); err == nil {
			t.Fatalf("Page(%d) should fail", idx)
		}
	}
}

func TestOpenMissingFile(t *testing.T) {
	if _, err := Open(filepath.Join(t.TempDir(), "absent.pdf")); err == nil {
		t.Fatalf("Open() should fail for a missing file")
	}
}
