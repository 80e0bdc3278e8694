package document

import (
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Grid is a detected rectangular table region: rows of cell strings, top to
// bottom, left to right.
type Grid [][]string

// NonEmptyRows counts rows that contain at least one non-blank cell.
func (g Grid) NonEmptyRows() int {
	n := 0
	for _, row := range g {
		if nonEmptyCells(row) > 0 {
			n++
		}
	}
	return n
}

// MaxNonEmptyCells returns the highest non-blank cell count across the rows
// that have any content.
func (g Grid) MaxNonEmptyCells() int {
	best := 0
	for _, row := range g {
		if c := nonEmptyCells(row); c > best {
			best = c
		}
	}
	return best
}

func nonEmptyCells(row []string) int {
	n := 0
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			n++
		}
	}
	return n
}

// Geometric detection thresholds, in PDF points. Fragments on a common
// baseline are merged into lines; wide horizontal gaps inside a line split it
// into cells; runs of consecutive multi-cell lines form a region.
const (
	minLineTol  = 2.0  // baseline tolerance floor
	minCellGap  = 6.0  // cell-split gap floor
	maxRowGap   = 40.0 // vertical gap that ends a region
	minRowCells = 2    // cells for a line to count as a table row
	minGridRows = 2    // rows for a run to count as a region
)

type textLine struct {
	y     float64
	size  float64
	cells []string
}

// detectGrids clusters positioned text fragments into table-like regions.
// The result is deterministic for a fixed fragment set.
func detectGrids(frags []pdf.Text) []Grid {
	lines := groupLines(frags)
	if len(lines) == 0 {
		return nil
	}

	var grids []Grid
	var run []textLine
	flush := func() {
		if len(run) >= minGridRows {
			g := make(Grid, 0, len(run))
			for _, ln := range run {
				g = append(g, ln.cells)
			}
			grids = append(grids, g)
		}
		run = nil
	}
	for _, ln := range lines {
		if len(ln.cells) < minRowCells {
			flush()
			continue
		}
		if len(run) > 0 && run[len(run)-1].y-ln.y > maxRowGap {
			flush()
		}
		run = append(run, ln)
	}
	flush()
	return grids
}

// groupLines merges fragments that share a baseline (within a tolerance
// scaled to the font size) and splits each line into cells at wide gaps.
// Lines come back in reading order, top of the page first.
func groupLines(frags []pdf.Text) []textLine {
	if len(frags) == 0 {
		return nil
	}
	sorted := make([]pdf.Text, len(frags))
	copy(sorted, frags)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Y != sorted[j].Y {
			return sorted[i].Y > sorted[j].Y
		}
		return sorted[i].X < sorted[j].X
	})

	var lines []textLine
	var current []pdf.Text
	for _, f := range sorted {
		if f.S == "" {
			continue
		}
		if len(current) == 0 {
			current = append(current, f)
			continue
		}
		tol := lineTolerance(current[0].FontSize)
		if current[0].Y-f.Y <= tol {
			current = append(current, f)
			continue
		}
		lines = append(lines, splitCells(current))
		current = []pdf.Text{f}
	}
	if len(current) > 0 {
		lines = append(lines, splitCells(current))
	}
	return lines
}

func lineTolerance(fontSize float64) float64 {
	tol := fontSize * 0.5
	if tol < minLineTol {
		tol = minLineTol
	}
	return tol
}

// splitCells orders a line's fragments left to right and breaks them into
// cells wherever the horizontal gap exceeds roughly one em.
func splitCells(frags []pdf.Text) textLine {
	sort.SliceStable(frags, func(i, j int) bool { return frags[i].X < frags[j].X })

	ln := textLine{y: frags[0].Y, size: frags[0].FontSize}
	var cell strings.Builder
	prevEnd := frags[0].X
	for i, f := range frags {
		gap := f.X - prevEnd
		if i > 0 && gap > cellGap(f.FontSize) {
			ln.cells = append(ln.cells, strings.TrimSpace(cell.String()))
			cell.Reset()
		}
		cell.WriteString(f.S)
		if end := f.X + f.W; end > prevEnd {
			prevEnd = end
		}
	}
	ln.cells = append(ln.cells, strings.TrimSpace(cell.String()))
	return ln
}

func cellGap(fontSize float64) float64 {
	gap := fontSize
	if gap < minCellGap {
		gap = minCellGap
	}
	return gap
}
