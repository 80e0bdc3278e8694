// Package ocr defines the abstraction layer for plugging OCR engines into the
// attachment extraction pipeline. The interfaces are intentionally small and
// transport-agnostic so engines can be backed by native libraries, local
// binaries, or remote services without leaking provider-specific concerns
// into callers.
//
// Engines are assembled into a Chain: an ordered list of backends probed once
// at construction and tried in priority order for every page. A backend whose
// runtime dependency is missing reports ErrBackendUnavailable and is skipped;
// a chain in which every backend is unavailable degrades to that same error,
// which callers treat as "no text", never as a fatal condition.
package ocr
