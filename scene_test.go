package yuletide

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func newTestScene(t *testing.T) (*Scene, *ManualClock) {
	t.Helper()
	clock := NewManualClock(time.Unix(1_700_000_000, 0))
	s, err := NewScene(smallConfig(), WithRand(testRand()), WithClock(clock))
	if err != nil {
		t.Fatalf("NewScene: %v", err)
	}
	return s, clock
}

func TestNewSceneLayers(t *testing.T) {
	s, _ := newTestScene(t)
	want := []struct {
		name  string
		alpha float64
		blend BlendMode
	}{
		{LayerBackdrop, 1, BlendNormal},
		{LayerSky, 0.8, BlendNormal},
		{LayerTree, 1, BlendScreen},
		{LayerVignette, 1, BlendNormal},
		{LayerDust, 1, BlendScreen},
		{LayerWish, 1, BlendAdd},
	}
	layers := s.Layers()
	if len(layers) != len(want) {
		t.Fatalf("layers = %d, want %d", len(layers), len(want))
	}
	for i, w := range want {
		l := layers[i]
		if l.Name() != w.name || l.Alpha() != w.alpha || l.Blend() != w.blend {
			t.Errorf("layer %d = %s/%v/%v, want %s/%v/%v", i, l.Name(), l.Alpha(), l.Blend(), w.name, w.alpha, w.blend)
		}
		if !l.Running() {
			t.Errorf("layer %s not running", l.Name())
		}
	}
	if s.ScreenshotDir != "screenshots" {
		t.Errorf("ScreenshotDir = %q", s.ScreenshotDir)
	}
}

func TestNewSceneInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.FocalLength = -1
	if _, err := NewScene(cfg); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("err = %v, want ErrInvalidConfig", err)
	}
}

func TestSceneResizeRegeneratesTree(t *testing.T) {
	s, _ := newTestScene(t)
	if len(s.Tree.Particles()) != 0 {
		t.Fatal("tree populated before the first resize")
	}
	s.Resize(800, 600)
	if len(s.Tree.Particles()) != smallConfig().Particles {
		t.Errorf("tree = %d particles, want %d", len(s.Tree.Particles()), smallConfig().Particles)
	}
	s.Resize(0, 0)
	if len(s.Tree.Particles()) != 0 {
		t.Errorf("tree = %d particles at zero size", len(s.Tree.Particles()))
	}
}

func TestSceneCycleMode(t *testing.T) {
	s, _ := newTestScene(t)
	s.Resize(400, 300)
	s.CycleMode()
	if s.Mode() != ModeFrozen || s.Tree.Mode() != ModeFrozen || s.Sky.Mode() != ModeFrozen {
		t.Errorf("modes scene=%v tree=%v sky=%v, want FROZEN", s.Mode(), s.Tree.Mode(), s.Sky.Mode())
	}
}

func TestSceneMusicDrivesFastRotation(t *testing.T) {
	s, _ := newTestScene(t)
	s.Resize(400, 300)
	if !s.ToggleMusic() || !s.Music() || !s.Fast() {
		t.Fatal("music on should enable fast rotation")
	}
	s.Update()
	assertNear(t, "rotation", s.Tree.Rotation(), -smallConfig().RotationSpeed*smallConfig().FastFactor)
	if s.ToggleMusic() || s.Fast() {
		t.Error("music off should disable fast rotation")
	}
}

func TestSceneWishes(t *testing.T) {
	s, _ := newTestScene(t)
	got := s.Wishes()
	if len(got) != 3 || got[0] != "Love" || got[2] != "Joy" {
		t.Fatalf("default wishes %v", got)
	}
	if s.AddWish("   ") {
		t.Error("blank wish accepted")
	}
	if !s.AddWish("  snow day ") {
		t.Fatal("wish rejected")
	}
	if s.Wishes()[0] != "snow day" {
		t.Errorf("newest wish %q, want trimmed and first", s.Wishes()[0])
	}
	s.AddWish(strings.Repeat("é", 60))
	if n := len([]rune(s.Wishes()[0])); n != maxWishLen {
		t.Errorf("long wish has %d runes, want %d", n, maxWishLen)
	}
	// DefaultWishes must not be aliased by the scene.
	if DefaultWishes[0] != "Love" {
		t.Error("DefaultWishes mutated")
	}
}

func TestSceneWishPromptLaunchesStar(t *testing.T) {
	s, _ := newTestScene(t)
	s.Resize(800, 600)
	sent := 0
	s.OnWishSent(func() { sent++ })

	s.ToggleWishPrompt()
	if !s.Prompting() || s.ShootingStar.Running() {
		t.Fatal("opening the prompt should not launch the star")
	}
	s.ToggleWishPrompt()
	if s.Prompting() {
		t.Error("prompt still open")
	}
	if !s.ShootingStar.Running() {
		t.Error("closing the prompt should launch the star")
	}
	if sent != 1 {
		t.Errorf("OnWishSent fired %d times, want 1", sent)
	}
}

func TestWishPosition(t *testing.T) {
	x, y := WishPosition(0, 1000, 800)
	assertNear(t, "x0", x, 100)
	assertNear(t, "y0", y, 200+0.1*400)

	x, y = WishPosition(3, 1000, 800)
	// (3*37)%80 = 31, (3*23)%80 = 69
	assertWithin(t, "x3", x, 410, 1e-9)
	assertWithin(t, "y3", y, 200+0.79*400, 1e-9)

	for i := 0; i < 50; i++ {
		x, y := WishPosition(i, 1000, 800)
		if x < 100 || x >= 900 || y < 200 || y >= 600 {
			t.Errorf("wish %d at (%v, %v) outside the band", i, x, y)
		}
	}
}

func TestSceneDrawAllLayers(t *testing.T) {
	s, clock := newTestScene(t)
	surfaces := map[string]*recordSurface{}
	for _, l := range s.Layers() {
		rs := newRecordSurface(640, 360)
		surfaces[l.Name()] = rs
		l.SetSurface(rs)
	}
	s.Resize(640, 360)
	s.ShootingStar.SetVisible(true)
	for i := 0; i < 5; i++ {
		clock.Advance(16 * time.Millisecond)
		s.InjectMove(float64(100+i), 100)
		s.Update()
	}
	s.Draw()
	for name, rs := range surfaces {
		if len(rs.calls) == 0 {
			t.Errorf("layer %s drew nothing", name)
		}
	}
	for _, l := range s.Layers() {
		if l.Panics() != 0 {
			t.Errorf("layer %s panicked %d times", l.Name(), l.Panics())
		}
	}
}

// --- inject ---

func TestInjectMoveFeedsDust(t *testing.T) {
	s, _ := newTestScene(t)
	s.InjectMove(50, 60)
	s.InjectMove(70, 80)
	if s.Pending() != 2 {
		t.Fatalf("Pending = %d, want 2", s.Pending())
	}
	s.Update()
	if s.Pending() != 1 {
		t.Errorf("Pending = %d after one frame, want 1", s.Pending())
	}
	if s.Dust.Count() != dustPerMove {
		t.Errorf("dust = %d, want %d", s.Dust.Count(), dustPerMove)
	}
	s.Update()
	if s.Pending() != 0 {
		t.Errorf("Pending = %d, want 0", s.Pending())
	}
}

func TestInjectSweep(t *testing.T) {
	s, _ := newTestScene(t)
	s.InjectSweep(0, 0, 100, 50, 5)
	if s.Pending() != 5 {
		t.Fatalf("Pending = %d, want 5", s.Pending())
	}
	first, last := s.injectQueue[0], s.injectQueue[4]
	if first != (Vec2{0, 0}) || last != (Vec2{100, 50}) {
		t.Errorf("sweep endpoints %v, %v", first, last)
	}
	assertNear(t, "mid x", s.injectQueue[2].X, 50)

	s, _ = newTestScene(t)
	s.InjectSweep(0, 0, 10, 10, 1)
	if s.Pending() != 2 {
		t.Errorf("short sweep Pending = %d, want 2", s.Pending())
	}
}
