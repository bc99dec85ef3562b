package yuletide

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func TestScreenshotName(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"hello", "hello"},
		{"after-wish", "after-wish"},
		{"frame.01", "frame.01"},
		{"has spaces", "has_spaces"},
		{"path/to/thing", "path_to_thing"},
		{"back\\slash", "back_slash"},
		{"special!@#$%", "special_____"},
		{"snö", "sn_"},
		{"", "frame"},
		{"   ", "frame"},
		{"MixedCase123", "MixedCase123"},
	}
	for _, tt := range tests {
		if got := screenshotName(tt.in); got != tt.want {
			t.Errorf("screenshotName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestScreenshotQueueAppend(t *testing.T) {
	s, _ := newTestScene(t)
	s.Screenshot("a")
	s.Screenshot("b")
	s.Screenshot("c")
	if s.PendingScreenshots() != 3 {
		t.Fatalf("queue len = %d, want 3", s.PendingScreenshots())
	}
	if s.screenshotQueue[0] != "a" || s.screenshotQueue[1] != "b" || s.screenshotQueue[2] != "c" {
		t.Errorf("queue = %v, want [a b c]", s.screenshotQueue)
	}
}

func TestSavePNGStraightensAlpha(t *testing.T) {
	// Premultiplied pixels, as read back from the GPU.
	img := image.NewRGBA(image.Rect(0, 0, 2, 1))
	copy(img.Pix, []byte{
		128, 64, 0, 128, // half-transparent orange
		255, 255, 255, 255,
	})
	path := filepath.Join(t.TempDir(), "shot.png")
	if err := savePNG(path, img); err != nil {
		t.Fatal(err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	decoded, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	if decoded.Bounds() != image.Rect(0, 0, 2, 1) {
		t.Fatalf("bounds = %v", decoded.Bounds())
	}
	got := color.NRGBAModel.Convert(decoded.At(0, 0)).(color.NRGBA)
	if want := (color.NRGBA{R: 255, G: 127, B: 0, A: 128}); got != want {
		t.Errorf("pixel = %v, want %v", got, want)
	}
	got = color.NRGBAModel.Convert(decoded.At(1, 0)).(color.NRGBA)
	if want := (color.NRGBA{R: 255, G: 255, B: 255, A: 255}); got != want {
		t.Errorf("opaque pixel = %v, want %v", got, want)
	}
}

func TestSavePNGMissingDir(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	if err := savePNG(filepath.Join(t.TempDir(), "missing", "x.png"), img); err == nil {
		t.Error("expected an error for a missing directory")
	}
}
