package core

import (
	"testing"
	"time"
)

func TestFixedStepDue(t *testing.T) {
	fs := NewFixedStep(10)
	if fs.Interval() != 100*time.Millisecond {
		t.Fatalf("expected 100ms interval, got %s", fs.Interval())
	}
	start := time.Unix(0, 0)

	// The first call consumes the pre-charged tick.
	if n := fs.Due(start); n != 1 {
		t.Fatalf("expected first tick immediately, got %d", n)
	}
	if n := fs.Due(start.Add(50 * time.Millisecond)); n != 0 {
		t.Fatalf("expected no tick after 50ms, got %d", n)
	}
	if n := fs.Due(start.Add(260 * time.Millisecond)); n != 2 {
		t.Fatalf("expected 2 ticks after 260ms, got %d", n)
	}
}

func TestFixedStepCapsCatchUp(t *testing.T) {
	fs := NewFixedStep(100)
	start := time.Unix(0, 0)
	fs.Due(start)
	if n := fs.Due(start.Add(time.Second)); n != maxCatchUp {
		t.Fatalf("expected catch-up cap %d, got %d", maxCatchUp, n)
	}
	if n := fs.Due(start.Add(time.Second + time.Millisecond)); n != 0 {
		t.Fatalf("backlog should be dropped after a capped call, got %d", n)
	}
}

func TestSetTPSDefaults(t *testing.T) {
	fs := NewFixedStep(0)
	if fs.Interval() != time.Second/60 {
		t.Fatalf("expected default 60 TPS, got %s", fs.Interval())
	}
}
