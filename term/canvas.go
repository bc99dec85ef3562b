// Package term renders a yuletide scene into a terminal with tcell. Each
// character cell shows two vertically stacked pixels using the upper half
// block glyph, foreground for the top pixel and background for the bottom.
package term

import (
	"math"

	"github.com/phanxgames/yuletide"
)

// px is a premultiplied RGBA sample.
type px struct {
	r, g, b, a float32
}

// Canvas is a software Surface over a premultiplied pixel grid. Shapes are
// sampled at pixel centers; shapes smaller than a pixel deposit their area
// as coverage on the pixel under their center.
type Canvas struct {
	w, h int
	pix  []px
}

// NewCanvas returns a transparent w by h canvas.
func NewCanvas(w, h int) *Canvas {
	c := &Canvas{}
	c.Resize(w, h)
	return c
}

// Resize reallocates the grid and clears it.
func (c *Canvas) Resize(w, h int) {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	c.w, c.h = w, h
	if cap(c.pix) < w*h {
		c.pix = make([]px, w*h)
	}
	c.pix = c.pix[:w*h]
	c.Clear()
}

// Size implements yuletide.Surface.
func (c *Canvas) Size() (int, int) { return c.w, c.h }

// Clear implements yuletide.Surface.
func (c *Canvas) Clear() {
	clear(c.pix)
}

// At returns the straight-alpha color at (x, y). Out-of-range reads are
// transparent.
func (c *Canvas) At(x, y int) yuletide.Color {
	if x < 0 || y < 0 || x >= c.w || y >= c.h {
		return yuletide.Color{}
	}
	p := c.pix[y*c.w+x]
	if p.a <= 0 {
		return yuletide.Color{}
	}
	return yuletide.Color{
		R: float64(p.r / p.a),
		G: float64(p.g / p.a),
		B: float64(p.b / p.a),
		A: float64(p.a),
	}
}

// plot composites col at the given coverage onto pixel (x, y).
func (c *Canvas) plot(x, y int, col yuletide.Color, cover float64, mode yuletide.BlendMode) {
	if x < 0 || y < 0 || x >= c.w || y >= c.h {
		return
	}
	a := float32(clamp01(col.A * cover))
	if a <= 0 {
		return
	}
	src := px{
		r: float32(clamp01(col.R)) * a,
		g: float32(clamp01(col.G)) * a,
		b: float32(clamp01(col.B)) * a,
		a: a,
	}
	d := &c.pix[y*c.w+x]
	*d = blend(*d, src, mode)
}

func blend(d, s px, mode yuletide.BlendMode) px {
	switch mode {
	case yuletide.BlendAdd:
		return px{min(d.r+s.r, 1), min(d.g+s.g, 1), min(d.b+s.b, 1), min(d.a+s.a, 1)}
	case yuletide.BlendScreen:
		return px{
			s.r + d.r*(1-s.r),
			s.g + d.g*(1-s.g),
			s.b + d.b*(1-s.b),
			s.a + d.a*(1-s.a),
		}
	case yuletide.BlendMultiply:
		k := 1 - s.a
		return px{s.r*d.r + d.r*k, s.g*d.g + d.g*k, s.b*d.b + d.b*k, s.a*d.a + d.a*k}
	default:
		k := 1 - s.a
		return px{s.r + d.r*k, s.g + d.g*k, s.b + d.b*k, s.a + d.a*k}
	}
}

// bounds clips a float box to pixel indices [x0, x1) x [y0, y1).
func (c *Canvas) bounds(minX, minY, maxX, maxY float64) (x0, y0, x1, y1 int) {
	x0 = max(int(math.Floor(minX)), 0)
	y0 = max(int(math.Floor(minY)), 0)
	x1 = min(int(math.Ceil(maxX))+1, c.w)
	y1 = min(int(math.Ceil(maxY))+1, c.h)
	return
}

// dot deposits a sub-pixel shape of the given area at (x, y).
func (c *Canvas) dot(x, y, area float64, col yuletide.Color, mode yuletide.BlendMode) {
	c.plot(int(math.Floor(x)), int(math.Floor(y)), col, math.Min(area, 1), mode)
}

// FillCircle implements yuletide.Surface.
func (c *Canvas) FillCircle(cx, cy, r float64, col yuletide.Color, mode yuletide.BlendMode) {
	c.FillEllipse(cx, cy, r, r, col, mode)
}

// FillEllipse implements yuletide.Surface.
func (c *Canvas) FillEllipse(cx, cy, rx, ry float64, col yuletide.Color, mode yuletide.BlendMode) {
	if rx <= 0 || ry <= 0 || col.A <= 0 {
		return
	}
	if rx < 1 && ry < 1 {
		c.dot(cx, cy, math.Pi*rx*ry, col, mode)
		return
	}
	x0, y0, x1, y1 := c.bounds(cx-rx, cy-ry, cx+rx, cy+ry)
	for y := y0; y < y1; y++ {
		dy := (float64(y) + 0.5 - cy) / ry
		for x := x0; x < x1; x++ {
			dx := (float64(x) + 0.5 - cx) / rx
			if dx*dx+dy*dy <= 1 {
				c.plot(x, y, col, 1, mode)
			}
		}
	}
}

// FillRect implements yuletide.Surface.
func (c *Canvas) FillRect(x, y, w, h float64, col yuletide.Color, mode yuletide.BlendMode) {
	if w <= 0 || h <= 0 || col.A <= 0 {
		return
	}
	if w < 1 && h < 1 {
		c.dot(x+w/2, y+h/2, w*h, col, mode)
		return
	}
	x0, y0, x1, y1 := c.bounds(x, y, x+w, y+h)
	for iy := y0; iy < y1; iy++ {
		fy := float64(iy) + 0.5
		if fy < y || fy > y+h {
			continue
		}
		for ix := x0; ix < x1; ix++ {
			fx := float64(ix) + 0.5
			if fx >= x && fx <= x+w {
				c.plot(ix, iy, col, 1, mode)
			}
		}
	}
}

// FillPolygon implements yuletide.Surface with an even-odd inside test.
func (c *Canvas) FillPolygon(pts []yuletide.Vec2, col yuletide.Color, mode yuletide.BlendMode) {
	if len(pts) < 3 || col.A <= 0 {
		return
	}
	minX, minY, maxX, maxY := extent(pts)
	x0, y0, x1, y1 := c.bounds(minX, minY, maxX, maxY)
	for y := y0; y < y1; y++ {
		fy := float64(y) + 0.5
		for x := x0; x < x1; x++ {
			if inside(pts, float64(x)+0.5, fy) {
				c.plot(x, y, col, 1, mode)
			}
		}
	}
}

// StrokePolyline implements yuletide.Surface. Each pixel is painted at most
// once per stroke.
func (c *Canvas) StrokePolyline(pts []yuletide.Vec2, width float64, col yuletide.Color, mode yuletide.BlendMode) {
	if len(pts) < 2 || width <= 0 || col.A <= 0 {
		return
	}
	half := math.Max(width/2, 0.5)
	minX, minY, maxX, maxY := extent(pts)
	x0, y0, x1, y1 := c.bounds(minX-half, minY-half, maxX+half, maxY+half)
	for y := y0; y < y1; y++ {
		fy := float64(y) + 0.5
		for x := x0; x < x1; x++ {
			fx := float64(x) + 0.5
			for i := 0; i+1 < len(pts); i++ {
				d, _ := segmentDistance(fx, fy, pts[i], pts[i+1])
				if d <= half {
					c.plot(x, y, col, 1, mode)
					break
				}
			}
		}
	}
}

// GradientLine implements yuletide.Surface.
func (c *Canvas) GradientLine(x0, y0, x1, y1, width float64, from, to yuletide.Color, mode yuletide.BlendMode) {
	if width <= 0 || (from.A <= 0 && to.A <= 0) {
		return
	}
	half := math.Max(width/2, 0.5)
	a, b := yuletide.Vec2{X: x0, Y: y0}, yuletide.Vec2{X: x1, Y: y1}
	bx0, by0, bx1, by1 := c.bounds(math.Min(x0, x1)-half, math.Min(y0, y1)-half, math.Max(x0, x1)+half, math.Max(y0, y1)+half)
	for y := by0; y < by1; y++ {
		fy := float64(y) + 0.5
		for x := bx0; x < bx1; x++ {
			d, t := segmentDistance(float64(x)+0.5, fy, a, b)
			if d > half {
				continue
			}
			c.plot(x, y, mix(from, to, t), 1, mode)
		}
	}
}

// Glow implements yuletide.Surface with a linear radial falloff.
func (c *Canvas) Glow(cx, cy, rx, ry float64, col yuletide.Color, mode yuletide.BlendMode) {
	if rx <= 0 || ry <= 0 || col.A <= 0 {
		return
	}
	if rx < 1 && ry < 1 {
		c.dot(cx, cy, math.Pi*rx*ry*0.33, col, mode)
		return
	}
	x0, y0, x1, y1 := c.bounds(cx-rx, cy-ry, cx+rx, cy+ry)
	for y := y0; y < y1; y++ {
		dy := (float64(y) + 0.5 - cy) / ry
		for x := x0; x < x1; x++ {
			dx := (float64(x) + 0.5 - cx) / rx
			d := math.Sqrt(dx*dx + dy*dy)
			if d < 1 {
				c.plot(x, y, col, 1-d, mode)
			}
		}
	}
}

// Composite blends src onto c, scaled by alpha. Both canvases must match in size.
func (c *Canvas) Composite(src *Canvas, alpha float64, mode yuletide.BlendMode) {
	if src.w != c.w || src.h != c.h || alpha <= 0 {
		return
	}
	k := float32(clamp01(alpha))
	for i, s := range src.pix {
		if s.a <= 0 {
			continue
		}
		c.pix[i] = blend(c.pix[i], px{s.r * k, s.g * k, s.b * k, s.a * k}, mode)
	}
}

func extent(pts []yuletide.Vec2) (minX, minY, maxX, maxY float64) {
	minX, minY = math.Inf(1), math.Inf(1)
	maxX, maxY = math.Inf(-1), math.Inf(-1)
	for _, p := range pts {
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
	}
	return
}

// inside is the even-odd crossing test.
func inside(pts []yuletide.Vec2, x, y float64) bool {
	in := false
	j := len(pts) - 1
	for i := range pts {
		a, b := pts[i], pts[j]
		if (a.Y > y) != (b.Y > y) && x < (b.X-a.X)*(y-a.Y)/(b.Y-a.Y)+a.X {
			in = !in
		}
		j = i
	}
	return in
}

// segmentDistance returns the distance from (x, y) to segment ab and the
// parameter of the closest point along it.
func segmentDistance(x, y float64, a, b yuletide.Vec2) (float64, float64) {
	dx, dy := b.X-a.X, b.Y-a.Y
	l2 := dx*dx + dy*dy
	t := 0.0
	if l2 > 0 {
		t = clamp01(((x-a.X)*dx + (y-a.Y)*dy) / l2)
	}
	return math.Hypot(x-(a.X+t*dx), y-(a.Y+t*dy)), t
}

func mix(a, b yuletide.Color, t float64) yuletide.Color {
	return yuletide.Color{
		R: a.R + (b.R-a.R)*t,
		G: a.G + (b.G-a.G)*t,
		B: a.B + (b.B-a.B)*t,
		A: a.A + (b.A-a.A)*t,
	}
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
