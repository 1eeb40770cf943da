package dpi

import (
	"math"
	"testing"
)

func TestSanitizeScaleFactor(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{2.0, 2.0},
		{1.25, 1.25},
		{0, 1.0},
		{-1, 1.0},
		{math.NaN(), 1.0},
		{math.Inf(1), 1.0},
		{math.Inf(-1), 1.0},
	}
	for _, tt := range tests {
		got := SanitizeScaleFactor(tt.in)
		if got != tt.want {
			t.Errorf("SanitizeScaleFactor(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestLogicalSize_ToPhysicalAndBack(t *testing.T) {
	logical := NewLogicalSize(800, 600)

	physical := logical.ToPhysical(2)
	if physical.Width != 1600 || physical.Height != 1200 {
		t.Fatalf("expected 1600x1200, got %v", physical)
	}

	back := physical.ToLogical(2)
	if back != logical {
		t.Fatalf("expected %v after round trip, got %v", logical, back)
	}
}

func TestPosition_InvalidScaleFallsBackToIdentity(t *testing.T) {
	p := NewLogicalPosition(10, 20).ToPhysical(0)
	if p.X != 10 || p.Y != 20 {
		t.Fatalf("expected identity conversion, got %v", p)
	}

	l := NewPhysicalPosition(10, 20).ToLogical(math.NaN())
	if l.X != 10 || l.Y != 20 {
		t.Fatalf("expected identity conversion, got %v", l)
	}
}

func TestPhysicalSize_RoundedClampsNegative(t *testing.T) {
	w, h := NewPhysicalSize(-3, 10.6).Rounded()
	if w != 0 || h != 11 {
		t.Fatalf("expected 0x11, got %dx%d", w, h)
	}
}

func TestLogicalSize_Clamp(t *testing.T) {
	min := NewLogicalSize(100, 100)
	max := NewLogicalSize(500, 0)

	got := NewLogicalSize(50, 900).Clamp(&min, &max)
	if got.Width != 100 {
		t.Errorf("expected width clamped up to 100, got %v", got.Width)
	}
	if got.Height != 900 {
		t.Errorf("expected unbounded height 900, got %v", got.Height)
	}

	got = NewLogicalSize(700, 200).Clamp(nil, &max)
	if got.Width != 500 {
		t.Errorf("expected width clamped down to 500, got %v", got.Width)
	}
}
