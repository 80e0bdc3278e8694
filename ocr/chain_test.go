package ocr

import (
	"context"
	"errors"
	"testing"
	"time"
)

type fakeEngine struct {
	name      string
	text      string
	err       error
	available bool
	delay     time.Duration
	calls     int
}

func (f *fakeEngine) Name() string { return f.name }

func (f *fakeEngine) Available() bool { return f.available }

func (f *fakeEngine) Recognize(ctx context.Context, in Input) (Result, error) {
	f.calls++
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return Result{}, ctx.Err()
		}
	}
	if f.err != nil {
		return Result{}, f.err
	}
	return Result{PlainText: f.text, Engine: f.name}, nil
}

func TestChainFirstSuccessWins(t *testing.T) {
	primary := &fakeEngine{name: "a", text: "hello", available: true}
	secondary := &fakeEngine{name: "b", text: "fallback", available: true}
	c := NewChain([]Engine{primary, secondary})

	res, err := c.Recognize(context.Background(), Input{})
	if err != nil {
		t.Fatalf("Recognize() error = %v", err)
	}
	if res.PlainText != "hello" || res.Engine != "a" {
		t.Fatalf("unexpected result: %+v", res)
	}
	if secondary.calls != 0 {
		t.Fatalf("secondary should not have been called")
	}
}

func TestChainFallsBackOnFailure(t *testing.T) {
	primary := &fakeEngine{name: "a", err: errors.New("engine crashed"), available: true}
	secondary := &fakeEngine{name: "b", text: "recovered", available: true}
	c := NewChain([]Engine{primary, secondary})

	res, err := c.Recognize(context.Background(), Input{})
	if err != nil {
		t.Fatalf("Recognize() error = %v", err)
	}
	if res.PlainText != "recovered" || res.Engine != "b" {
		t.Fatalf("unexpected result: %+v", res)
	}
	if primary.calls != 1 {
		t.Fatalf("primary calls = %d, want 1", primary.calls)
	}
}

func TestChainSkipsUnavailableBackends(t *testing.T) {
	missing := &fakeEngine{name: "a", text: "never", available: false}
	usable := &fakeEngine{name: "b", text: "ok", available: true}
	c := NewChain([]Engine{missing, usable})

	if got := c.Names(); len(got) != 1 || got[0] != "b" {
		t.Fatalf("Names() = %v", got)
	}
	res, err := c.Recognize(context.Background(), Input{})
	if err != nil {
		t.Fatalf("Recognize() error = %v", err)
	}
	if res.Engine != "b" {
		t.Fatalf("engine = %q", res.Engine)
	}
	if missing.calls != 0 {
		t.Fatalf("unavailable backend was invoked")
	}
}

func TestChainEmptyReportsUnavailable(t *testing.T) {
	c := NewChain(nil)
	if c.Available() {
		t.Fatalf("empty chain should not be available")
	}
	_, err := c.Recognize(context.Background(), Input{})
	if !errors.Is(err, ErrBackendUnavailable) {
		t.Fatalf("error = %v, want ErrBackendUnavailable", err)
	}
}

func TestChainAllFailReturnsLastError(t *testing.T) {
	errA := errors.New("a failed")
	errB := errors.New("b failed")
	c := NewChain([]Engine{
		&fakeEngine{name: "a", err: errA, available: true},
		&fakeEngine{name: "b", err: errB, available: true},
	})
	_, err := c.Recognize(context.Background(), Input{})
	if !errors.Is(err, errB) {
		t.Fatalf("error = %v, want wrapped %v", err, errB)
	}
}

func TestChainTimeoutUnblocksCaller(t *testing.T) {
	slow := &fakeEngine{name: "slow", text: "late", available: true, delay: time.Second}
	fast := &fakeEngine{name: "fast", text: "quick", available: true}
	c := NewChain([]Engine{slow, fast}, WithTimeout(20*time.Millisecond))

	start := time.Now()
	res, err := c.Recognize(context.Background(), Input{})
	if err != nil {
		t.Fatalf("Recognize() error = %v", err)
	}
	if res.Engine != "fast" {
		t.Fatalf("engine = %q, want fast", res.Engine)
	}
	if time.Since(start) > 500*time.Millisecond {
		t.Fatalf("timeout did not unblock the chain")
	}
}

func TestChainHonorsCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	c := NewChain([]Engine{&fakeEngine{name: "a", text: "x", available: true}})
	_, err := c.Recognize(ctx, Input{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("error = %v, want context.Canceled", err)
	}
}
