package yuletide

import (
	"math"
	"math/rand/v2"
	"testing"
)

const epsilon = 1e-9

func assertNear(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > epsilon {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

func assertWithin(t *testing.T, name string, got, want, tol float64) {
	t.Helper()
	if math.Abs(got-want) > tol {
		t.Errorf("%s = %v, want %v ± %v", name, got, want, tol)
	}
}

func testRand() *rand.Rand {
	return rand.New(rand.NewPCG(1, 2))
}

// scriptedRand replays floats and ints in order, then repeats the last
// value of each. It forces spawn and recycle decisions in tests.
type scriptedRand struct {
	floats []float64
	ints   []int
	fi, ii int
}

func (r *scriptedRand) Float64() float64 {
	if len(r.floats) == 0 {
		return 0
	}
	v := r.floats[min(r.fi, len(r.floats)-1)]
	r.fi++
	return v
}

func (r *scriptedRand) IntN(n int) int {
	if len(r.ints) == 0 {
		return 0
	}
	v := r.ints[min(r.ii, len(r.ints)-1)]
	r.ii++
	return v % n
}

// drawCall is one recorded Surface call.
type drawCall struct {
	op     string
	x, y   float64
	rx, ry float64
	color  Color
	blend  BlendMode
	points int
}

// recordSurface is a Surface that records every call.
type recordSurface struct {
	w, h    int
	calls   []drawCall
	clears  int
	flushes int
}

func newRecordSurface(w, h int) *recordSurface {
	return &recordSurface{w: w, h: h}
}

func (s *recordSurface) Size() (int, int) { return s.w, s.h }
func (s *recordSurface) Clear()           { s.clears++; s.calls = s.calls[:0] }
func (s *recordSurface) Flush()           { s.flushes++ }

func (s *recordSurface) FillCircle(cx, cy, r float64, c Color, blend BlendMode) {
	s.calls = append(s.calls, drawCall{op: "circle", x: cx, y: cy, rx: r, ry: r, color: c, blend: blend})
}

func (s *recordSurface) FillEllipse(cx, cy, rx, ry float64, c Color, blend BlendMode) {
	s.calls = append(s.calls, drawCall{op: "ellipse", x: cx, y: cy, rx: rx, ry: ry, color: c, blend: blend})
}

func (s *recordSurface) FillRect(x, y, w, h float64, c Color, blend BlendMode) {
	s.calls = append(s.calls, drawCall{op: "rect", x: x, y: y, rx: w, ry: h, color: c, blend: blend})
}

func (s *recordSurface) FillPolygon(pts []Vec2, c Color, blend BlendMode) {
	s.calls = append(s.calls, drawCall{op: "polygon", color: c, blend: blend, points: len(pts)})
}

func (s *recordSurface) StrokePolyline(pts []Vec2, width float64, c Color, blend BlendMode) {
	s.calls = append(s.calls, drawCall{op: "polyline", rx: width, color: c, blend: blend, points: len(pts)})
}

func (s *recordSurface) GradientLine(x0, y0, x1, y1, width float64, from, to Color, blend BlendMode) {
	s.calls = append(s.calls, drawCall{op: "gradient", x: x0, y: y0, rx: x1, ry: y1, color: from, blend: blend})
}

func (s *recordSurface) Glow(cx, cy, rx, ry float64, c Color, blend BlendMode) {
	s.calls = append(s.calls, drawCall{op: "glow", x: cx, y: cy, rx: rx, ry: ry, color: c, blend: blend})
}

func (s *recordSurface) count(op string) int {
	n := 0
	for _, c := range s.calls {
		if c.op == op {
			n++
		}
	}
	return n
}

// smallConfig keeps tests fast while exercising every role.
func smallConfig() Config {
	cfg := DefaultConfig()
	cfg.Particles = 400
	cfg.Seed = 1
	return cfg
}
