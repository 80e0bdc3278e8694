package appendix

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"
	"unicode"
)

//go:embed keywords.json
var defaultKeywordsJSON []byte

// Keywords holds the three keyword sets driving boundary location and page
// classification. Entries are whitespace-normalized at construction and the
// sets are immutable afterwards; the domain vocabulary extends through
// configuration, not through code changes.
type Keywords struct {
	attachmentMarkers []string
	tableSignals      []string
	nonTableSignals   []string
}

type keywordsConfig struct {
	AttachmentMarkers []string `json:"attachmentMarkers"`
	TableSignals      []string `json:"tableSignals"`
	NonTableSignals   []string `json:"nonTableSignals"`
}

var (
	defaultKeywordsOnce sync.Once
	defaultKeywords     *Keywords
)

// DefaultKeywords returns the embedded vocabulary for Chinese administrative
// documents (审批/评审/结算 reports and their attachment tables).
func DefaultKeywords() *Keywords {
	defaultKeywordsOnce.Do(func() {
		kw, err := parseKeywords(defaultKeywordsJSON)
		if err != nil {
			// The embedded defaults are part of the build; failing to parse
			// them is a programming error.
			panic(fmt.Sprintf("appendix: embedded keywords invalid: %v", err))
		}
		defaultKeywords = kw
	})
	return defaultKeywords
}

// LoadKeywords reads a keyword configuration from a JSON file.
func LoadKeywords(path string) (*Keywords, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read keywords %s: %w", path, err)
	}
	kw, err := parseKeywords(data)
	if err != nil {
		return nil, fmt.Errorf("parse keywords %s: %w", path, err)
	}
	return kw, nil
}

func parseKeywords(data []byte) (*Keywords, error) {
	var cfg keywordsConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	if len(cfg.AttachmentMarkers) == 0 {
		return nil, fmt.Errorf("attachmentMarkers must not be empty")
	}
	return &Keywords{
		attachmentMarkers: normalizeSet(cfg.AttachmentMarkers),
		tableSignals:      normalizeSet(cfg.TableSignals),
		nonTableSignals:   normalizeSet(cfg.NonTableSignals),
	}, nil
}

func normalizeSet(entries []string) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		if n := Normalize(e); n != "" {
			out = append(out, n)
		}
	}
	return out
}

// hasAttachmentMarker reports whether the normalized text contains any
// attachment-marker phrase.
func (k *Keywords) hasAttachmentMarker(normalized string) bool {
	return containsAny(normalized, k.attachmentMarkers)
}

// hasTableSignal reports whether the normalized text contains any
// table-caption keyword.
func (k *Keywords) hasTableSignal(normalized string) bool {
	return containsAny(normalized, k.tableSignals)
}

// hasNonTableSignal reports whether the normalized text contains any
// diagram/narrative keyword.
func (k *Keywords) hasNonTableSignal(normalized string) bool {
	return containsAny(normalized, k.nonTableSignals)
}

func containsAny(text string, set []string) bool {
	for _, kw := range set {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

// Normalize strips every whitespace character, including the full-width
// space U+3000. OCR output scatters spurious spacing through the text that
// would otherwise defeat exact keyword matching.
func Normalize(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}
