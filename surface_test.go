package yuletide

import (
	"math"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

func TestCircleSegments(t *testing.T) {
	if n := circleSegments(0); n != 8 {
		t.Errorf("circleSegments(0) = %d, want 8", n)
	}
	if n := circleSegments(10); n != 16 {
		t.Errorf("circleSegments(10) = %d, want 16", n)
	}
	if n := circleSegments(1000); n != 64 {
		t.Errorf("circleSegments(1000) = %d, want 64", n)
	}
}

func TestImageSurfaceBatchesByBlend(t *testing.T) {
	target := ebiten.NewImage(64, 64)
	s := NewImageSurface(target)
	if w, h := s.Size(); w != 64 || h != 64 {
		t.Fatalf("Size = %d, %d", w, h)
	}

	s.FillCircle(10, 10, 5, ColorWhite, BlendAdd)
	s.FillCircle(20, 20, 5, ColorWhite, BlendAdd)
	n := circleSegments(5)
	if len(s.verts) != 2*(n+1) || len(s.inds) != 2*3*n {
		t.Errorf("batch verts=%d inds=%d, want %d and %d", len(s.verts), len(s.inds), 2*(n+1), 6*n)
	}

	// A blend change submits the pending batch first.
	s.FillRect(0, 0, 4, 4, ColorWhite, BlendNormal)
	if len(s.verts) != 4 || s.blend != BlendNormal {
		t.Errorf("after blend switch verts=%d blend=%v", len(s.verts), s.blend)
	}
	s.Flush()
	if len(s.verts) != 0 || len(s.inds) != 0 {
		t.Error("Flush left pending geometry")
	}
}

func TestImageSurfaceSkipsInvisible(t *testing.T) {
	s := NewImageSurface(ebiten.NewImage(8, 8))
	s.FillCircle(1, 1, 0, ColorWhite, BlendNormal)
	s.FillCircle(1, 1, 3, ColorWhite.WithAlpha(0), BlendNormal)
	s.FillRect(0, 0, -1, 2, ColorWhite, BlendNormal)
	s.FillPolygon([]Vec2{{0, 0}, {1, 1}}, ColorWhite, BlendNormal)
	s.StrokePolyline([]Vec2{{0, 0}}, 2, ColorWhite, BlendNormal)
	s.GradientLine(0, 0, 0, 0, 2, ColorWhite, ColorWhite, BlendNormal)
	if len(s.verts) != 0 {
		t.Errorf("degenerate shapes produced %d vertices", len(s.verts))
	}
}

func TestImageSurfaceGlowRimTransparent(t *testing.T) {
	s := NewImageSurface(ebiten.NewImage(32, 32))
	s.Glow(16, 16, 8, 4, Color{1, 0, 0, 0.5}, BlendAdd)
	if s.verts[0].ColorA != 0.5 {
		t.Errorf("center alpha %v, want 0.5", s.verts[0].ColorA)
	}
	for i, v := range s.verts[1:] {
		if v.ColorA != 0 {
			t.Fatalf("rim vertex %d alpha %v, want 0", i, v.ColorA)
		}
	}
}

func TestMiterKeepsWidth(t *testing.T) {
	pts := []Vec2{{0, 0}, {10, 0}, {10, 10}}
	nx, ny := miter(pts, 0)
	assertNear(t, "start nx", nx, 0)
	assertNear(t, "start ny", ny, 1)

	// A right-angle joint scales the bisector by √2.
	nx, ny = miter(pts, 1)
	assertWithin(t, "joint length", math.Hypot(nx, ny), math.Sqrt2, 1e-9)

	// A hairpin is clamped.
	hairpin := []Vec2{{0, 0}, {10, 0}, {0, 0.001}}
	nx, ny = miter(hairpin, 1)
	if l := math.Hypot(nx, ny); l > 4+1e-9 {
		t.Errorf("hairpin miter length %v, want at most 4", l)
	}
}

func TestStrokePolylineStrip(t *testing.T) {
	s := NewImageSurface(ebiten.NewImage(32, 32))
	s.StrokePolyline([]Vec2{{0, 0}, {10, 0}, {10, 10}, {0, 10}}, 2, ColorWhite, BlendNormal)
	if len(s.verts) != 8 || len(s.inds) != 18 {
		t.Errorf("strip verts=%d inds=%d, want 8 and 18", len(s.verts), len(s.inds))
	}
}

func TestBackdropAndVignette(t *testing.T) {
	b := NewBackdrop()
	b.SetMode(ModeNeon)
	rec := newRecordSurface(200, 100)
	b.Draw(rec)
	if len(rec.calls) != 2 || rec.calls[0].op != "rect" || rec.calls[0].color != ModeNeon.Palette().SkyBase {
		t.Errorf("backdrop calls %+v", rec.calls)
	}

	v := NewVignette()
	rec = newRecordSurface(200, 100)
	v.Draw(rec)
	if got := rec.count("polyline"); got != vignetteRings {
		t.Fatalf("rings = %d, want %d", got, vignetteRings)
	}
	prev := 0.0
	for _, c := range rec.calls {
		if c.color.A <= prev {
			t.Errorf("ring alpha %v not increasing outward", c.color.A)
		}
		prev = c.color.A
	}
	assertNear(t, "outer ring alpha", prev, vignetteAlpha)

	rec = newRecordSurface(0, 0)
	v.Draw(rec)
	if len(rec.calls) != 0 {
		t.Error("vignette drew on an empty surface")
	}
}

func TestImageSurfaceSetImage(t *testing.T) {
	first := ebiten.NewImage(16, 16)
	s := NewImageSurface(first)
	s.FillRect(0, 0, 4, 4, ColorWhite, BlendNormal)

	second := ebiten.NewImage(32, 8)
	s.SetImage(second)
	if len(s.verts) != 0 || len(s.inds) != 0 {
		t.Error("SetImage kept geometry queued for the old image")
	}
	if s.Image() != second {
		t.Error("Image did not return the new target")
	}
	if w, h := s.Size(); w != 32 || h != 8 {
		t.Errorf("Size = %d, %d, want 32, 8", w, h)
	}

	s.SetImage(nil)
	if w, h := s.Size(); w != 0 || h != 0 {
		t.Errorf("detached Size = %d, %d", w, h)
	}
}
