package core

import (
	"testing"
	"time"
)

func TestFixedStepGrantsStepsAtRate(t *testing.T) {
	now := time.Unix(100, 0)
	fs := NewFixedStep(10)
	fs.now = func() time.Time { return now }

	if !fs.ShouldStep() {
		t.Fatal("expected the first call to grant a step")
	}
	if fs.ShouldStep() {
		t.Fatal("expected no step without elapsed time")
	}

	now = now.Add(50 * time.Millisecond)
	if fs.ShouldStep() {
		t.Fatal("expected no step after half a tick")
	}
	now = now.Add(50 * time.Millisecond)
	if !fs.ShouldStep() {
		t.Fatal("expected a step after a full tick")
	}

	if fs.Ticks() != 2 {
		t.Fatalf("expected 2 ticks, got %d", fs.Ticks())
	}
	if d := fs.Delta(); d != 0.1 {
		t.Fatalf("expected delta 0.1, got %f", d)
	}
	if i := fs.Interval(); i != 100*time.Millisecond {
		t.Fatalf("expected interval 100ms, got %v", i)
	}
	if e := fs.Elapsed(); e < 0.2-1e-9 || e > 0.2+1e-9 {
		t.Fatalf("expected elapsed 0.2, got %f", e)
	}
}

func TestFixedStepDefaultsInvalidTPS(t *testing.T) {
	fs := NewFixedStep(0)
	if d := fs.Delta(); d < 1.0/60-1e-9 || d > 1.0/60+1e-9 {
		t.Fatalf("expected 60 TPS default, got delta %f", d)
	}
}
