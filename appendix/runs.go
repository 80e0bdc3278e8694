package appendix

// Aggregate walks the per-page labels for pages boundary..boundary+len(labels)-1
// and returns, in ascending order, the indices of every page that belongs to a
// run of consecutive table pages. A run opens at the first table page after
// zero or more non-table pages and closes at the next non-table page; pages
// outside every run are dropped.
//
// labels[0] corresponds to page boundary. A boundary of NotFound or an empty
// label slice yields nil.
func Aggregate(boundary int, labels []Label) []int {
	if boundary == NotFound || len(labels) == 0 {
		return nil
	}
	var selected []int
	for offset, label := range labels {
		if label == LabelTable {
			selected = append(selected, boundary+offset)
		}
	}
	return selected
}

// AllPages returns every page index from boundary through total inclusive,
// bypassing classification entirely. It yields nil when the boundary is
// NotFound or lies past the end of the document.
func AllPages(boundary, total int) []int {
	if boundary == NotFound || boundary > total {
		return nil
	}
	pages := make([]int, 0, total-boundary+1)
	for i := boundary; i <= total; i++ {
		pages = append(pages, i)
	}
	return pages
}
