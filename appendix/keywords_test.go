package appendix

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"附 件:", "附件:"},
		{"附件　1", "附件1"},
		{"  静态 投资\t估算\n", "静态投资估算"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := Normalize(tc.in); got != tc.want {
			t.Fatalf("Normalize(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestDefaultKeywords(t *testing.T) {
	kw := DefaultKeywords()
	if !kw.hasAttachmentMarker("目录附件:第一项") {
		t.Fatalf("default markers missing 附件:")
	}
	if !kw.hasTableSignal("本期静态投资较概算下降") {
		t.Fatalf("default table signals missing 静态投资")
	}
	if !kw.hasNonTableSignal("线路路径图如下") {
		t.Fatalf("default non-table signals missing 路径图")
	}
	if kw.hasAttachmentMarker("正文而已") {
		t.Fatalf("false positive marker match")
	}
}

func TestLoadKeywords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keywords.json")
	data := `{
		"attachmentMarkers": ["附 件:"],
		"tableSignals": ["决算金额"],
		"nonTableSignals": ["竣工照片"]
	}`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	kw, err := LoadKeywords(path)
	if err != nil {
		t.Fatalf("LoadKeywords: %v", err)
	}
	// Entries are normalized at load time.
	if !kw.hasAttachmentMarker("附件:清单") {
		t.Fatalf("loaded marker not normalized")
	}
	if !kw.hasTableSignal("审定决算金额") || !kw.hasNonTableSignal("见竣工照片") {
		t.Fatalf("loaded signals not applied")
	}
}

func TestLoadKeywordsErrors(t *testing.T) {
	if _, err := LoadKeywords(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatalf("expected error for missing file")
	}
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte(`{"tableSignals": ["x"]}`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadKeywords(path); err == nil {
		t.Fatalf("expected error for empty attachmentMarkers")
	}
}
