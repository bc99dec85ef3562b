package term

import (
	"math"
	"testing"

	"github.com/phanxgames/yuletide"
)

var (
	red  = yuletide.Color{R: 1, A: 1}
	blue = yuletide.Color{B: 1, A: 1}
)

func assertWithin(t *testing.T, name string, got, want, tol float64) {
	t.Helper()
	if math.Abs(got-want) > tol {
		t.Errorf("%s = %v, want %v ± %v", name, got, want, tol)
	}
}

func TestCanvasResizeAndAt(t *testing.T) {
	c := NewCanvas(-3, 2)
	if w, h := c.Size(); w != 0 || h != 2 {
		t.Errorf("Size = %d, %d", w, h)
	}
	c.Resize(4, 4)
	c.FillRect(0, 0, 4, 4, red, yuletide.BlendNormal)
	if c.At(3, 3) != red {
		t.Errorf("At(3,3) = %v", c.At(3, 3))
	}
	if c.At(-1, 0) != (yuletide.Color{}) || c.At(4, 0) != (yuletide.Color{}) {
		t.Error("out-of-range reads should be transparent")
	}
	c.Resize(4, 4)
	if c.At(0, 0).A != 0 {
		t.Error("Resize should clear")
	}
}

func TestCanvasFillRectSamplesCenters(t *testing.T) {
	c := NewCanvas(4, 4)
	c.FillRect(0, 0, 2, 2, red, yuletide.BlendNormal)
	if c.At(1, 1) != red {
		t.Errorf("inside pixel = %v", c.At(1, 1))
	}
	if c.At(2, 1).A != 0 || c.At(1, 2).A != 0 {
		t.Error("rect leaked past its edge")
	}

	// Sub-pixel shapes deposit their area as coverage.
	c.Clear()
	c.FillRect(1, 1, 0.5, 0.5, red, yuletide.BlendNormal)
	assertWithin(t, "dot alpha", c.At(1, 1).A, 0.25, 1e-6)
}

func TestCanvasBlendModes(t *testing.T) {
	c := NewCanvas(1, 1)
	c.FillRect(0, 0, 1, 1, red, yuletide.BlendNormal)
	c.FillRect(0, 0, 1, 1, blue.WithAlpha(0.5), yuletide.BlendNormal)
	got := c.At(0, 0)
	assertWithin(t, "normal R", got.R, 0.5, 1e-6)
	assertWithin(t, "normal B", got.B, 0.5, 1e-6)
	assertWithin(t, "normal A", got.A, 1, 1e-6)

	c.Clear()
	c.FillRect(0, 0, 1, 1, red.WithAlpha(0.6), yuletide.BlendAdd)
	c.FillRect(0, 0, 1, 1, red.WithAlpha(0.6), yuletide.BlendAdd)
	got = c.At(0, 0)
	assertWithin(t, "add A", got.A, 1, 1e-6)
	assertWithin(t, "add R", got.R, 1, 1e-6)

	c.Clear()
	c.FillRect(0, 0, 1, 1, yuletide.Color{A: 1}, yuletide.BlendNormal)
	c.FillRect(0, 0, 1, 1, yuletide.ColorWhite.WithAlpha(0.5), yuletide.BlendScreen)
	got = c.At(0, 0)
	assertWithin(t, "screen R", got.R, 0.5, 1e-6)
	assertWithin(t, "screen A", got.A, 1, 1e-6)

	c.Clear()
	c.FillRect(0, 0, 1, 1, yuletide.ColorWhite, yuletide.BlendNormal)
	c.FillRect(0, 0, 1, 1, red, yuletide.BlendMultiply)
	got = c.At(0, 0)
	assertWithin(t, "multiply R", got.R, 1, 1e-6)
	assertWithin(t, "multiply G", got.G, 0, 1e-6)
}

func TestCanvasFillCircle(t *testing.T) {
	c := NewCanvas(10, 10)
	c.FillCircle(5, 5, 3, red, yuletide.BlendNormal)
	if c.At(5, 5) != red || c.At(7, 5) != red {
		t.Error("circle interior not filled")
	}
	if c.At(8, 5).A != 0 || c.At(0, 0).A != 0 {
		t.Error("circle painted outside its radius")
	}
}

func TestCanvasGlowFalloff(t *testing.T) {
	c := NewCanvas(10, 10)
	c.Glow(5, 5, 4, 4, red, yuletide.BlendNormal)
	center, off := c.At(4, 4).A, c.At(7, 4).A
	if center <= off || off <= 0 {
		t.Errorf("glow alpha center=%v off=%v, want falling toward the rim", center, off)
	}
	if c.At(9, 9).A != 0 {
		t.Error("glow reached past its rim")
	}
}

func TestCanvasFillPolygon(t *testing.T) {
	c := NewCanvas(10, 10)
	tri := []yuletide.Vec2{{X: 0, Y: 0}, {X: 8, Y: 0}, {X: 0, Y: 8}}
	c.FillPolygon(tri, red, yuletide.BlendNormal)
	if c.At(1, 1) != red {
		t.Error("triangle interior not filled")
	}
	if c.At(6, 6).A != 0 {
		t.Error("triangle painted past its hypotenuse")
	}
}

func TestCanvasStrokePaintsOnce(t *testing.T) {
	c := NewCanvas(12, 12)
	line := []yuletide.Vec2{{X: 0, Y: 5.5}, {X: 5.5, Y: 5.5}, {X: 10, Y: 5.5}}
	c.StrokePolyline(line, 2, red.WithAlpha(0.5), yuletide.BlendNormal)
	// The joint pixel is near both segments but is only painted once.
	assertWithin(t, "joint alpha", c.At(5, 5).A, 0.5, 1e-6)
	if c.At(5, 8).A != 0 {
		t.Error("stroke wider than its width")
	}
}

func TestCanvasGradientLine(t *testing.T) {
	c := NewCanvas(10, 10)
	c.GradientLine(0, 5.5, 10, 5.5, 2, red, blue, yuletide.BlendNormal)
	if r := c.At(0, 5).R; r < 0.9 {
		t.Errorf("start R = %v, want near 1", r)
	}
	if b := c.At(9, 5).B; b < 0.9 {
		t.Errorf("end B = %v, want near 1", b)
	}
}

func TestCanvasComposite(t *testing.T) {
	src := NewCanvas(2, 2)
	src.FillRect(0, 0, 1, 1, red, yuletide.BlendNormal)
	dst := NewCanvas(2, 2)
	dst.Composite(src, 0.5, yuletide.BlendNormal)
	got := dst.At(0, 0)
	assertWithin(t, "A", got.A, 0.5, 1e-6)
	assertWithin(t, "R", got.R, 1, 1e-6)
	if dst.At(1, 1).A != 0 {
		t.Error("transparent source pixel changed the destination")
	}

	other := NewCanvas(3, 3)
	other.Composite(src, 1, yuletide.BlendNormal)
	if other.At(0, 0).A != 0 {
		t.Error("mismatched sizes should be ignored")
	}
}
