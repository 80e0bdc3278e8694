// Package appendix implements the core of the attachment extraction
// pipeline: finding the page at which a document's attachment section
// begins, labeling the following pages as tabular or non-tabular, and
// aggregating the labels into contiguous page runs.
//
// The algorithms are best-effort heuristics over noisy OCR and text-layer
// input. Their correctness contract is determinism: for a fixed document,
// keyword configuration, and OCR output, the boundary, labels, and selection
// are always the same.
package appendix
