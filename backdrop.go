package yuletide

import "math"

const (
	vignetteRings = 14
	vignetteInner = 0.4 // fraction of the half-diagonal left untouched
	vignetteAlpha = 0.5
)

// Backdrop fills the viewport with the theme's night sky: a solid base with
// a wide elliptical wash of the upper color centered near the top.
type Backdrop struct {
	pal  Palette
	mode Mode
}

// NewBackdrop returns a classic-themed backdrop.
func NewBackdrop() *Backdrop {
	return &Backdrop{pal: ModeClassic.Palette()}
}

// Resize is a no-op; the backdrop is drawn from the surface size.
func (b *Backdrop) Resize(w, h int) {}

// SetMode switches the sky colors.
func (b *Backdrop) SetMode(m Mode) {
	b.mode = m
	b.pal = m.Palette()
}

// Update is a no-op; the backdrop is static.
func (b *Backdrop) Update() {}

// Draw paints the sky.
func (b *Backdrop) Draw(dst Surface) {
	if dst == nil {
		return
	}
	w, h := dst.Size()
	fw, fh := float64(w), float64(h)
	dst.FillRect(0, 0, fw, fh, b.pal.SkyBase, BlendNormal)
	dst.Glow(fw/2, fh*0.35, fw*0.9, fh*0.9, b.pal.SkyTop, BlendNormal)
}

// Vignette darkens the viewport edges with concentric translucent rings,
// leaving the center clear.
type Vignette struct {
	ring []Vec2
}

// NewVignette returns a vignette overlay.
func NewVignette() *Vignette {
	return &Vignette{ring: make([]Vec2, 0, 65)}
}

// Resize is a no-op; rings are sized from the surface.
func (v *Vignette) Resize(w, h int) {}

// Update is a no-op.
func (v *Vignette) Update() {}

// Draw strokes the rings from the inner clear radius out to the corners.
func (v *Vignette) Draw(dst Surface) {
	if dst == nil {
		return
	}
	w, h := dst.Size()
	if w <= 0 || h <= 0 {
		return
	}
	cx, cy := float64(w)/2, float64(h)/2
	outer := math.Hypot(cx, cy)
	inner := outer * vignetteInner
	step := (outer - inner) / vignetteRings
	for i := 0; i < vignetteRings; i++ {
		r := inner + step*(float64(i)+0.5)
		v.ellipse(cx, cy, r*cx/outer*math.Sqrt2, r*cy/outer*math.Sqrt2)
		a := vignetteAlpha * float64(i+1) / vignetteRings
		dst.StrokePolyline(v.ring, step*math.Sqrt2, Color{A: a}, BlendNormal)
	}
}

func (v *Vignette) ellipse(cx, cy, rx, ry float64) {
	n := circleSegments(math.Max(rx, ry))
	v.ring = v.ring[:0]
	for i := 0; i <= n; i++ {
		sin, cos := math.Sincos(2 * math.Pi * float64(i) / float64(n))
		v.ring = append(v.ring, Vec2{cx + cos*rx, cy + sin*ry})
	}
}
