package yuletide

import (
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// maxBatchVertices keeps a batch addressable by uint16 indices.
const maxBatchVertices = 65535 - 130

var whiteSrc *ebiten.Image

// whiteImage returns a white texel for untextured triangles. The 3x3 source
// is sampled at its center pixel so filtering never bleeds in a transparent edge.
func whiteImage() *ebiten.Image {
	if whiteSrc == nil {
		img := ebiten.NewImage(3, 3)
		img.Fill(color.White)
		whiteSrc = img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	}
	return whiteSrc
}

// ImageSurface draws into an ebiten image. Geometry is accumulated into one
// vertex batch per blend mode run and submitted with a single DrawTriangles
// call when the blend changes, the batch is full, or Flush is called.
type ImageSurface struct {
	target *ebiten.Image
	verts  []ebiten.Vertex
	inds   []uint16
	blend  BlendMode
	op     ebiten.DrawTrianglesOptions
}

// NewImageSurface wraps target. The surface does not own the image.
func NewImageSurface(target *ebiten.Image) *ImageSurface {
	return &ImageSurface{
		target: target,
		verts:  make([]ebiten.Vertex, 0, 4096),
		inds:   make([]uint16, 0, 8192),
	}
}

// Image returns the wrapped target.
func (s *ImageSurface) Image() *ebiten.Image {
	return s.target
}

// SetImage retargets the surface, flushing anything pending for the old image.
func (s *ImageSurface) SetImage(target *ebiten.Image) {
	s.Flush()
	s.target = target
}

// Size implements Surface.
func (s *ImageSurface) Size() (int, int) {
	if s.target == nil {
		return 0, 0
	}
	b := s.target.Bounds()
	return b.Dx(), b.Dy()
}

// Clear implements Surface. Pending geometry is discarded.
func (s *ImageSurface) Clear() {
	s.verts = s.verts[:0]
	s.inds = s.inds[:0]
	if s.target != nil {
		s.target.Clear()
	}
}

// Flush submits the pending batch.
func (s *ImageSurface) Flush() {
	if len(s.inds) == 0 || s.target == nil {
		s.verts = s.verts[:0]
		s.inds = s.inds[:0]
		return
	}
	s.op.Blend = s.blend.EbitenBlend()
	s.op.AntiAlias = false
	s.target.DrawTriangles(s.verts, s.inds, whiteImage(), &s.op)
	s.verts = s.verts[:0]
	s.inds = s.inds[:0]
}

// reserve flushes when switching blend modes or when n more vertices would
// overflow the batch, and returns the base index for the new vertices.
func (s *ImageSurface) reserve(n int, blend BlendMode) uint16 {
	if len(s.verts) > 0 && (blend != s.blend || len(s.verts)+n > maxBatchVertices) {
		s.Flush()
	}
	s.blend = blend
	return uint16(len(s.verts))
}

func (s *ImageSurface) vertex(x, y float64, c Color) {
	b := whiteImage().Bounds()
	s.verts = append(s.verts, ebiten.Vertex{
		DstX:   float32(x),
		DstY:   float32(y),
		SrcX:   float32(b.Min.X) + 0.5,
		SrcY:   float32(b.Min.Y) + 0.5,
		ColorR: float32(c.R),
		ColorG: float32(c.G),
		ColorB: float32(c.B),
		ColorA: float32(c.A),
	})
}

// fan appends a triangle fan around (cx, cy) with n rim vertices on the
// (rx, ry) ellipse. The rim color may differ from the center.
func (s *ImageSurface) fan(cx, cy, rx, ry float64, n int, center, rim Color, blend BlendMode) {
	base := s.reserve(n+1, blend)
	s.vertex(cx, cy, center)
	step := 2 * math.Pi / float64(n)
	for i := 0; i < n; i++ {
		sin, cos := math.Sincos(float64(i) * step)
		s.vertex(cx+cos*rx, cy+sin*ry, rim)
	}
	for i := 0; i < n; i++ {
		next := (i + 1) % n
		s.inds = append(s.inds, base, base+1+uint16(i), base+1+uint16(next))
	}
}

// FillCircle implements Surface.
func (s *ImageSurface) FillCircle(cx, cy, r float64, c Color, blend BlendMode) {
	if r <= 0 || c.A <= 0 {
		return
	}
	s.fan(cx, cy, r, r, circleSegments(r), c, c, blend)
}

// FillEllipse implements Surface.
func (s *ImageSurface) FillEllipse(cx, cy, rx, ry float64, c Color, blend BlendMode) {
	if rx <= 0 || ry <= 0 || c.A <= 0 {
		return
	}
	s.fan(cx, cy, rx, ry, circleSegments(math.Max(rx, ry)), c, c, blend)
}

// Glow implements Surface.
func (s *ImageSurface) Glow(cx, cy, rx, ry float64, c Color, blend BlendMode) {
	if rx <= 0 || ry <= 0 || c.A <= 0 {
		return
	}
	s.fan(cx, cy, rx, ry, circleSegments(math.Max(rx, ry)), c, c.WithAlpha(0), blend)
}

// FillRect implements Surface.
func (s *ImageSurface) FillRect(x, y, w, h float64, c Color, blend BlendMode) {
	if w <= 0 || h <= 0 || c.A <= 0 {
		return
	}
	base := s.reserve(4, blend)
	s.vertex(x, y, c)
	s.vertex(x+w, y, c)
	s.vertex(x+w, y+h, c)
	s.vertex(x, y+h, c)
	s.inds = append(s.inds, base, base+1, base+2, base, base+2, base+3)
}

// FillPolygon implements Surface.
func (s *ImageSurface) FillPolygon(pts []Vec2, c Color, blend BlendMode) {
	n := len(pts)
	if n < 3 || c.A <= 0 {
		return
	}
	var cx, cy float64
	for _, p := range pts {
		cx += p.X
		cy += p.Y
	}
	cx /= float64(n)
	cy /= float64(n)

	base := s.reserve(n+1, blend)
	s.vertex(cx, cy, c)
	for _, p := range pts {
		s.vertex(p.X, p.Y, c)
	}
	for i := 0; i < n; i++ {
		next := (i + 1) % n
		s.inds = append(s.inds, base, base+1+uint16(i), base+1+uint16(next))
	}
}

// StrokePolyline implements Surface. The line is one triangle strip with
// mitered joints.
func (s *ImageSurface) StrokePolyline(pts []Vec2, width float64, c Color, blend BlendMode) {
	n := len(pts)
	if n < 2 || width <= 0 || c.A <= 0 {
		return
	}
	half := width / 2
	base := s.reserve(2*n, blend)
	for i := range pts {
		nx, ny := miter(pts, i)
		s.vertex(pts[i].X+nx*half, pts[i].Y+ny*half, c)
		s.vertex(pts[i].X-nx*half, pts[i].Y-ny*half, c)
	}
	for i := 0; i+1 < n; i++ {
		a := base + uint16(2*i)
		s.inds = append(s.inds, a, a+1, a+2, a+1, a+3, a+2)
	}
}

// miter returns the offset direction at vertex i of a polyline, scaled so
// the stroke keeps its width across the joint. Sharp joints are clamped.
func miter(pts []Vec2, i int) (float64, float64) {
	normal := func(a, b Vec2) (float64, float64) {
		dx, dy := b.X-a.X, b.Y-a.Y
		l := math.Hypot(dx, dy)
		if l == 0 {
			return 0, 0
		}
		return -dy / l, dx / l
	}
	last := len(pts) - 1
	switch i {
	case 0:
		return normal(pts[0], pts[1])
	case last:
		return normal(pts[last-1], pts[last])
	}
	ax, ay := normal(pts[i-1], pts[i])
	bx, by := normal(pts[i], pts[i+1])
	mx, my := ax+bx, ay+by
	l := math.Hypot(mx, my)
	if l < 1e-9 {
		return ax, ay
	}
	mx, my = mx/l, my/l
	cos := mx*ax + my*ay
	k := 1 / math.Max(cos, 0.25)
	return mx * k, my * k
}

// GradientLine implements Surface.
func (s *ImageSurface) GradientLine(x0, y0, x1, y1, width float64, from, to Color, blend BlendMode) {
	if width <= 0 || (from.A <= 0 && to.A <= 0) {
		return
	}
	s.segment(x0, y0, x1, y1, width, from, to, blend)
}

func (s *ImageSurface) segment(x0, y0, x1, y1, width float64, from, to Color, blend BlendMode) {
	dx, dy := x1-x0, y1-y0
	l := math.Hypot(dx, dy)
	if l == 0 {
		return
	}
	nx, ny := -dy/l*width/2, dx/l*width/2
	base := s.reserve(4, blend)
	s.vertex(x0+nx, y0+ny, from)
	s.vertex(x1+nx, y1+ny, to)
	s.vertex(x1-nx, y1-ny, to)
	s.vertex(x0-nx, y0-ny, from)
	s.inds = append(s.inds, base, base+1, base+2, base, base+2, base+3)
}
