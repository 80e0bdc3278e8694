package appendix

import (
	"context"
	"errors"
	"testing"

	"github.com/wudi/attachkit/ocr"
)

type stubEngine struct {
	name  string
	text  string
	err   error
	calls int
}

func (e *stubEngine) Name() string { return e.name }

func (e *stubEngine) Recognize(ctx context.Context, in ocr.Input) (ocr.Result, error) {
	e.calls++
	if e.err != nil {
		return ocr.Result{}, e.err
	}
	return ocr.Result{PlainText: e.text, Engine: e.name}, nil
}

func TestAcquireTextLayerPreferred(t *testing.T) {
	engine := &stubEngine{name: "stub", text: "ocr text"}
	acq := NewAcquirer(ocr.NewChain([]ocr.Engine{engine}))
	page := &fakePage{index: 1, text: "embedded text"}
	if got := acq.Acquire(context.Background(), page, true); got != "embedded text" {
		t.Fatalf("Acquire = %q, want embedded text", got)
	}
	if engine.calls != 0 {
		t.Fatalf("ocr invoked despite text layer")
	}
}

func TestAcquireFallsBackToOCR(t *testing.T) {
	engine := &stubEngine{name: "stub", text: "识别结果"}
	acq := NewAcquirer(ocr.NewChain([]ocr.Engine{engine}))
	page := &fakePage{index: 1, text: "  \n\t "}
	if got := acq.Acquire(context.Background(), page, true); got != "识别结果" {
		t.Fatalf("Acquire = %q, want ocr text", got)
	}
	if engine.calls != 1 {
		t.Fatalf("engine calls = %d, want 1", engine.calls)
	}
}

func TestAcquireOCRDisabled(t *testing.T) {
	engine := &stubEngine{name: "stub", text: "识别结果"}
	acq := NewAcquirer(ocr.NewChain([]ocr.Engine{engine}))
	if got := acq.Acquire(context.Background(), &fakePage{index: 1}, false); got != "" {
		t.Fatalf("Acquire = %q, want empty", got)
	}
	if engine.calls != 0 {
		t.Fatalf("ocr invoked with useOCR=false")
	}
}

func TestAcquireNilChain(t *testing.T) {
	acq := NewAcquirer(nil)
	if acq.OCRAvailable() {
		t.Fatalf("nil chain reported available")
	}
	if got := acq.Acquire(context.Background(), &fakePage{index: 1}, true); got != "" {
		t.Fatalf("Acquire = %q, want empty", got)
	}
}

func TestAcquireDegradesOnFailure(t *testing.T) {
	t.Run("render error", func(t *testing.T) {
		engine := &stubEngine{name: "stub", text: "x"}
		acq := NewAcquirer(ocr.NewChain([]ocr.Engine{engine}))
		page := &fakePage{index: 1, imgErr: errors.New("render failed")}
		if got := acq.Acquire(context.Background(), page, true); got != "" {
			t.Fatalf("Acquire = %q, want empty", got)
		}
	})
	t.Run("ocr error", func(t *testing.T) {
		engine := &stubEngine{name: "stub", err: errors.New("boom")}
		acq := NewAcquirer(ocr.NewChain([]ocr.Engine{engine}))
		if got := acq.Acquire(context.Background(), &fakePage{index: 1}, true); got != "" {
			t.Fatalf("Acquire = %q, want empty", got)
		}
	})
}
