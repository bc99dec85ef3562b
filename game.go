package yuletide

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const (
	wishLayerAlpha = 0.4
	debugCharW     = 6 // ebitenutil debug font cell width
	title          = "Merry Christmas"
	subtitle       = "WISHING YOU WARMTH & MAGIC"
)

// RunConfig configures the window opened by Run.
type RunConfig struct {
	Title     string
	Width     int
	Height    int
	ShowFPS   bool
	Resizable bool
	// OnMusic is called whenever the music toggle changes state.
	OnMusic func(on bool)
	// ExitWhenScripted closes the window once an attached script finishes.
	ExitWhenScripted bool
}

// Game adapts a Scene to ebiten.Game. Each layer renders into its own
// offscreen image, which is composited onto the screen with the layer's
// alpha and blend mode.
type Game struct {
	scene *Scene
	cfg   RunConfig

	w, h     int
	surfaces []*ImageSurface
	overlay  *ebiten.Image

	fps     *fpsOverlay
	showFPS bool
	input   []rune
	chars   []rune

	cursorX, cursorY int
	op               ebiten.DrawImageOptions
}

// NewGame wraps scene for ebiten.RunGame.
func NewGame(scene *Scene, cfg RunConfig) *Game {
	return &Game{
		scene:   scene,
		cfg:     cfg,
		fps:     newFPSOverlay(),
		showFPS: cfg.ShowFPS,
		cursorX: -1,
		cursorY: -1,
	}
}

// Run opens a window and drives scene until the window closes.
func Run(scene *Scene, cfg RunConfig) error {
	if cfg.Title == "" {
		cfg.Title = title
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		cfg.Width, cfg.Height = 1280, 720
	}
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	if cfg.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	if err := ebiten.RunGame(NewGame(scene, cfg)); err != nil {
		return fmt.Errorf("run game: %w", err)
	}
	return nil
}

// Layout implements ebiten.Game. A size change retargets every layer
// surface at a fresh image and resizes the scene before the next Update.
func (g *Game) Layout(outsideW, outsideH int) (int, int) {
	if outsideW != g.w || outsideH != g.h {
		g.resize(outsideW, outsideH)
	}
	return outsideW, outsideH
}

// resize keeps one ImageSurface per layer for the life of the game. An empty
// viewport detaches the surfaces so layers skip drawing.
func (g *Game) resize(w, h int) {
	g.w, g.h = w, h
	empty := w <= 0 || h <= 0
	layers := g.scene.Layers()
	for len(g.surfaces) < len(layers) {
		g.surfaces = append(g.surfaces, NewImageSurface(nil))
	}
	for i, l := range layers {
		surf := g.surfaces[i]
		old := surf.Image()
		if empty {
			surf.SetImage(nil)
			l.SetSurface(nil)
		} else {
			surf.SetImage(ebiten.NewImage(w, h))
			l.SetSurface(surf)
		}
		if old != nil {
			old.Deallocate()
		}
	}
	if g.overlay != nil {
		g.overlay.Deallocate()
		g.overlay = nil
	}
	if !empty {
		g.overlay = ebiten.NewImage(w, h)
	}
	g.scene.Resize(w, h)
}

// Update implements ebiten.Game.
func (g *Game) Update() error {
	g.handleInput()
	g.scene.Update()
	if g.showFPS {
		g.fps.update(1 / float64(ebiten.TPS()))
	}
	if g.cfg.ExitWhenScripted && g.scene.script != nil && g.scene.script.Done() &&
		g.scene.PendingScreenshots() == 0 {
		return ebiten.Termination
	}
	return nil
}

func (g *Game) handleInput() {
	if x, y := ebiten.CursorPosition(); x != g.cursorX || y != g.cursorY {
		if g.cursorX >= 0 {
			g.scene.Dust.Move(float64(x), float64(y))
		}
		g.cursorX, g.cursorY = x, y
	}

	if g.scene.Prompting() {
		g.handlePrompt()
		return
	}
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyM):
		on := g.scene.ToggleMusic()
		if g.cfg.OnMusic != nil {
			g.cfg.OnMusic(on)
		}
	case inpututil.IsKeyJustPressed(ebiten.KeyT):
		g.scene.CycleMode()
	case inpututil.IsKeyJustPressed(ebiten.KeyW):
		g.input = g.input[:0]
		g.scene.ToggleWishPrompt()
	case inpututil.IsKeyJustPressed(ebiten.KeyF):
		g.showFPS = !g.showFPS
	case inpututil.IsKeyJustPressed(ebiten.KeyP):
		g.scene.Screenshot("capture")
	}
}

// handlePrompt edits the wish being typed. Enter submits it; Enter or
// Escape closes the prompt and launches the shooting star.
func (g *Game) handlePrompt() {
	g.chars = ebiten.AppendInputChars(g.chars[:0])
	for _, r := range g.chars {
		if len(g.input) < maxWishLen {
			g.input = append(g.input, r)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyBackspace) && len(g.input) > 0 {
		g.input = g.input[:len(g.input)-1]
	}
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyEnter), inpututil.IsKeyJustPressed(ebiten.KeyNumpadEnter):
		g.scene.AddWish(string(g.input))
		g.input = g.input[:0]
		g.scene.ToggleWishPrompt()
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		g.input = g.input[:0]
		g.scene.ToggleWishPrompt()
	}
}

// Draw implements ebiten.Game.
func (g *Game) Draw(screen *ebiten.Image) {
	g.scene.Draw()

	layers := g.scene.Layers()
	for i, l := range layers {
		if i >= len(g.surfaces) || !l.Running() {
			continue
		}
		img := g.surfaces[i].Image()
		if img == nil {
			continue
		}
		g.op.GeoM.Reset()
		g.op.ColorScale.Reset()
		g.op.ColorScale.ScaleAlpha(float32(l.Alpha()))
		g.op.Blend = l.Blend().EbitenBlend()
		screen.DrawImage(img, &g.op)
	}

	g.drawText(screen)
	if g.showFPS {
		g.fps.draw(screen)
	}
	g.scene.flushScreenshots(screen)
}

// drawText renders the header tinted with the theme's star glow, the
// floating wishes and, when open, the wish prompt.
func (g *Game) drawText(screen *ebiten.Image) {
	if g.overlay == nil {
		return
	}
	cx := g.w / 2
	g.overlay.Clear()
	printCentered(g.overlay, title, cx, 32)
	printCentered(g.overlay, subtitle, cx, 50)
	g.op.GeoM.Reset()
	g.op.ColorScale.Reset()
	tint := titleTint(g.scene.Mode())
	g.op.ColorScale.Scale(tint[0], tint[1], tint[2], tint[3])
	g.op.Blend = ebiten.BlendSourceOver
	screen.DrawImage(g.overlay, &g.op)

	g.overlay.Clear()
	for i, w := range g.scene.Wishes() {
		x, y := WishPosition(i, g.w, g.h)
		ebitenutil.DebugPrintAt(g.overlay, "* "+w, int(x), int(y))
	}
	g.op.GeoM.Reset()
	g.op.ColorScale.Reset()
	g.op.ColorScale.ScaleAlpha(wishLayerAlpha)
	g.op.Blend = ebiten.BlendSourceOver
	screen.DrawImage(g.overlay, &g.op)

	if g.scene.Prompting() {
		line := "Make a wish: " + string(g.input) + "_"
		y := g.h - 64
		bw := len(line)*debugCharW + 16
		bg := screen.SubImage(rectAround(cx, y, bw, 24)).(*ebiten.Image)
		bg.Fill(color.RGBA{0, 0, 0, 160})
		printCentered(screen, line, cx, y-4)
	} else {
		printCentered(screen, strings.Join([]string{"[M] music", "[T] theme", "[W] wish", "[F] fps", "[P] capture"}, "  "), cx, g.h-24)
	}
}

// titleTint is the color scale applied to the white header text.
func titleTint(m Mode) [4]float32 {
	c := m.Palette().StarGlow
	return [4]float32{float32(c.R), float32(c.G), float32(c.B), 1}
}

func printCentered(dst *ebiten.Image, s string, cx, y int) {
	ebitenutil.DebugPrintAt(dst, s, cx-len(s)*debugCharW/2, y)
}

func rectAround(cx, cy, w, h int) image.Rectangle {
	return image.Rect(cx-w/2, cy-h/2, cx+w/2, cy+h/2)
}
