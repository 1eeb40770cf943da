package platform

import (
	"errors"
	"math"
	"testing"

	"github.com/1broseidon/winloop/internal/dpi"
)

func sizePtr(w, h float64) *dpi.LogicalSize {
	s := dpi.NewLogicalSize(w, h)
	return &s
}

func TestWindowAttributes_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(a *WindowAttributes)
		wantErr bool
	}{
		{"defaults", func(a *WindowAttributes) {}, false},
		{"explicit size", func(a *WindowAttributes) { a.InnerSize = sizePtr(640, 480) }, false},
		{"negative size", func(a *WindowAttributes) { a.InnerSize = sizePtr(-1, 480) }, true},
		{"nan size", func(a *WindowAttributes) { a.InnerSize = sizePtr(math.NaN(), 480) }, true},
		{"min above max", func(a *WindowAttributes) {
			a.MinDimensions = sizePtr(500, 100)
			a.MaxDimensions = sizePtr(400, 400)
		}, true},
		{"unbounded max axis", func(a *WindowAttributes) {
			a.MinDimensions = sizePtr(500, 100)
			a.MaxDimensions = sizePtr(0, 400)
		}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := DefaultWindowAttributes()
			tt.mutate(&a)
			err := a.Validate()
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidAttributes) {
					t.Fatalf("expected ErrInvalidAttributes, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestWindowAttributes_ClampedInnerSize(t *testing.T) {
	a := DefaultWindowAttributes()
	a.MinDimensions = sizePtr(1000, 0)

	got := a.ClampedInnerSize(dpi.NewLogicalSize(800, 600))
	if got.Width != 1000 || got.Height != 600 {
		t.Fatalf("expected fallback clamped to 1000x600, got %v", got)
	}
}
