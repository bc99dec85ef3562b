package yuletide

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

// discardSurface accepts every call and keeps nothing.
type discardSurface struct{ w, h int }

func (s discardSurface) Size() (int, int) { return s.w, s.h }

func (discardSurface) Clear() {}

func (discardSurface) FillCircle(cx, cy, r float64, c Color, b BlendMode) {}

func (discardSurface) FillEllipse(cx, cy, rx, ry float64, c Color, b BlendMode) {}

func (discardSurface) FillRect(x, y, w, h float64, c Color, b BlendMode) {}

func (discardSurface) FillPolygon(pts []Vec2, c Color, b BlendMode) {}

func (discardSurface) StrokePolyline(pts []Vec2, w float64, c Color, b BlendMode) {}

func (discardSurface) GradientLine(x0, y0, x1, y1, w float64, from, to Color, b BlendMode) {}

func (discardSurface) Glow(cx, cy, rx, ry float64, c Color, b BlendMode) {}

// --- Tree ---

func BenchmarkTreeUpdate(b *testing.B) {
	tr := newTestTree(1920, 1080)
	tr.Update() // warmup

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		tr.Update()
	}
}

func BenchmarkTreeDraw_Discard(b *testing.B) {
	tr := newTestTree(1920, 1080)
	dst := discardSurface{1920, 1080}
	tr.Update()
	tr.Draw(dst) // warmup: grows the depth buffers

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		tr.Update()
		tr.Draw(dst)
	}
}

func BenchmarkTreeDraw_Image(b *testing.B) {
	tr := newTestTree(1920, 1080)
	dst := NewImageSurface(ebiten.NewImage(1920, 1080))
	tr.Update()
	tr.Draw(dst)
	dst.Flush()

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		tr.Update()
		dst.Clear()
		tr.Draw(dst)
		dst.Flush()
	}
}

func BenchmarkDepthSort_5500(b *testing.B) {
	r := testRand()
	src := make([]depthEntry, 5500)
	for i := range src {
		src[i] = depthEntry{rz: (r.Float64() - 0.5) * 800, idx: int32(i)}
	}
	work := make([]depthEntry, len(src))
	var d depthSorter
	copy(work, src)
	d.sort(work)

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		copy(work, src)
		d.sort(work)
	}
}

// --- Sky ---

func BenchmarkSkyUpdateDraw(b *testing.B) {
	sky := NewSkyEngine(DefaultConfig(), testRand())
	sky.Resize(1920, 1080)
	dst := discardSurface{1920, 1080}

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		sky.Update()
		sky.Draw(dst)
	}
}

// --- Scene ---

func BenchmarkSceneFrame(b *testing.B) {
	s, err := NewScene(DefaultConfig(), WithRand(testRand()))
	if err != nil {
		b.Fatal(err)
	}
	for _, l := range s.Layers() {
		l.SetSurface(discardSurface{1280, 720})
	}
	s.Resize(1280, 720)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s.InjectMove(float64(i%1280), 360)
		s.Update()
		s.Draw()
	}
}
