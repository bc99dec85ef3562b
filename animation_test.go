package yuletide

import (
	"math"
	"testing"

	"github.com/tanema/gween/ease"
)

func TestPulsePingPongs(t *testing.T) {
	p := NewPulse(0, 1, 1, ease.Linear)
	assertNear(t, "initial", p.Value(), 0)

	// Exact halves avoid float32 accumulation drift.
	p.Update(0.5)
	assertWithin(t, "rising half", p.Value(), 0.5, 1e-6)
	p.Update(0.5)
	assertWithin(t, "top", p.Value(), 1, 1e-6)
	p.Update(0.5)
	assertWithin(t, "falling half", p.Value(), 0.5, 1e-6)
	p.Update(0.5)
	assertWithin(t, "bottom", p.Value(), 0, 1e-6)
	p.Update(0.25)
	assertWithin(t, "rising again", p.Value(), 0.25, 1e-6)
}

func TestPulseStaysInRange(t *testing.T) {
	p := NewPulse(0.94, 1.06, 4, ease.InOutSine)
	for i := 0; i < 1000; i++ {
		v := p.Update(1.0 / 60)
		if v < 0.94-1e-6 || v > 1.06+1e-6 {
			t.Fatalf("step %d value %v outside [0.94, 1.06]", i, v)
		}
	}
}

func TestEnvelope(t *testing.T) {
	e := newEnvelope(1, 0.15, 0.2)
	tests := []struct {
		t    float32
		want float64
	}{
		{-0.1, 0},
		{0, 0},
		{0.075, 0.5},
		{0.15, 1},
		{0.5, 1},
		{0.8, 1},
		{0.9, 0.5},
		{1, 0},
		{1.01, 0},
	}
	for _, tt := range tests {
		got := e.at(tt.t)
		if math.Abs(got-tt.want) > 1e-5 {
			t.Errorf("at(%v) = %v, want %v", tt.t, got, tt.want)
		}
	}
}
