package yuletide

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"
)

// Screenshot queues a labeled capture of the composited frame. The window
// backend writes it to ScreenshotDir at the end of its next Draw.
func (s *Scene) Screenshot(label string) {
	s.screenshotQueue = append(s.screenshotQueue, label)
}

// PendingScreenshots returns the number of queued captures.
func (s *Scene) PendingScreenshots() int { return len(s.screenshotQueue) }

// flushScreenshots writes one PNG per queued label from the finished frame.
func (s *Scene) flushScreenshots(screen *ebiten.Image) {
	if len(s.screenshotQueue) == 0 {
		return
	}
	defer func() { s.screenshotQueue = s.screenshotQueue[:0] }()

	if err := os.MkdirAll(s.ScreenshotDir, 0o755); err != nil {
		s.Logger().Error("screenshot dir", zap.Error(err))
		return
	}

	img := capture(screen)
	stamp := time.Now().Format("20060102_150405")
	for _, label := range s.screenshotQueue {
		path := filepath.Join(s.ScreenshotDir, fmt.Sprintf("%s_%s.png", stamp, screenshotName(label)))
		if err := savePNG(path, img); err != nil {
			s.Logger().Error("screenshot", zap.Error(err))
			continue
		}
		s.Logger().Info("screenshot saved", zap.String("path", path))
	}
}

// capture copies the frame out of the GPU. ebiten hands back premultiplied
// bytes, which is exactly image.RGBA's layout; the PNG encoder converts to
// straight alpha itself.
func capture(screen *ebiten.Image) *image.RGBA {
	b := screen.Bounds()
	img := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	screen.ReadPixels(img.Pix)
	return img
}

var pngEncoder = png.Encoder{CompressionLevel: png.BestSpeed}

func savePNG(path string, img image.Image) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("save screenshot: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("save screenshot: %w", cerr)
		}
	}()
	if err := pngEncoder.Encode(f, img); err != nil {
		return fmt.Errorf("encode screenshot %s: %w", path, err)
	}
	return nil
}

// screenshotName turns a script label into a file name fragment. Anything
// outside letters, digits, '-' and '.' becomes '_'.
func screenshotName(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "frame"
	}
	return strings.Map(func(r rune) rune {
		switch {
		case unicode.IsLetter(r) && r < unicode.MaxASCII,
			unicode.IsDigit(r) && r < unicode.MaxASCII,
			r == '-', r == '.':
			return r
		}
		return '_'
	}, label)
}
