package term

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/phanxgames/yuletide"
	"go.uber.org/zap"
)

// DefaultFPS is the terminal frame rate.
const DefaultFPS = 30

// Options configures Run.
type Options struct {
	// FPS is the frame rate. Zero means DefaultFPS.
	FPS int
	// Screen overrides the terminal; tests pass a simulation screen. Run
	// initializes and finalizes it either way.
	Screen tcell.Screen
	// OnMusic is called whenever the music toggle changes state.
	OnMusic func(on bool)
	// Frames stops Run after that many frames. Zero runs until quit.
	Frames int
}

// Renderer owns one canvas per scene layer and the composited frame.
type Renderer struct {
	scene    *yuletide.Scene
	canvases []*Canvas
	frame    *Canvas
}

// NewRenderer binds a canvas to every layer of scene.
func NewRenderer(scene *yuletide.Scene) *Renderer {
	r := &Renderer{scene: scene, frame: NewCanvas(0, 0)}
	for _, l := range scene.Layers() {
		c := NewCanvas(0, 0)
		r.canvases = append(r.canvases, c)
		l.SetSurface(c)
	}
	return r
}

// Resize sizes every canvas for a cols by rows terminal and resizes the
// scene to the matching pixel grid.
func (r *Renderer) Resize(cols, rows int) {
	w, h := cols, rows*2
	for _, c := range r.canvases {
		c.Resize(w, h)
	}
	r.frame.Resize(w, h)
	r.scene.Resize(w, h)
}

// Frame returns the composited canvas from the last Render.
func (r *Renderer) Frame() *Canvas { return r.frame }

// Render draws the scene and composites every running layer.
func (r *Renderer) Render() *Canvas {
	r.scene.Draw()
	r.frame.Clear()
	for i, l := range r.scene.Layers() {
		if i < len(r.canvases) && l.Running() {
			r.frame.Composite(r.canvases[i], l.Alpha(), l.Blend())
		}
	}
	return r.frame
}

// Run drives scene in the terminal until ctx is done, the user quits, or
// Options.Frames frames have been shown. SIGINT and SIGTERM quit cleanly.
func Run(ctx context.Context, scene *yuletide.Scene, opts Options) error {
	screen := opts.Screen
	if screen == nil {
		s, err := tcell.NewScreen()
		if err != nil {
			return fmt.Errorf("open terminal: %w", err)
		}
		screen = s
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init terminal: %w", err)
	}
	defer screen.Fini()
	screen.EnableMouse(tcell.MouseMotionEvents)
	screen.HideCursor()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	fps := opts.FPS
	if fps <= 0 {
		fps = DefaultFPS
	}
	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	events := make(chan tcell.Event, 64)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	r := NewRenderer(scene)
	r.Resize(screen.Size())
	in := &input{scene: scene, onMusic: opts.OnMusic}
	log := scene.Logger()
	log.Info("terminal session started", zap.Int("fps", fps))

	frames := 0
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			switch ev := ev.(type) {
			case *tcell.EventResize:
				screen.Sync()
				r.Resize(screen.Size())
			case *tcell.EventKey:
				if in.key(ev) {
					return nil
				}
			case *tcell.EventMouse:
				x, y := ev.Position()
				scene.Dust.Move(float64(x)+0.5, float64(2*y)+1)
			}
		case <-ticker.C:
			scene.Update()
			Present(screen, r.Render(), scene.Mode().Palette().SkyBase)
			in.drawPrompt(screen)
			screen.Show()
			frames++
			if opts.Frames > 0 && frames >= opts.Frames {
				return nil
			}
		}
	}
}

// input maps keys onto scene controls and edits the wish prompt.
type input struct {
	scene   *yuletide.Scene
	onMusic func(bool)
	wish    []rune
}

// key handles one key event and reports whether to quit.
func (in *input) key(ev *tcell.EventKey) bool {
	s := in.scene
	if s.Prompting() {
		switch ev.Key() {
		case tcell.KeyEnter:
			s.AddWish(string(in.wish))
			in.wish = in.wish[:0]
			s.ToggleWishPrompt()
		case tcell.KeyEscape:
			in.wish = in.wish[:0]
			s.ToggleWishPrompt()
		case tcell.KeyBackspace, tcell.KeyBackspace2:
			if len(in.wish) > 0 {
				in.wish = in.wish[:len(in.wish)-1]
			}
		case tcell.KeyRune:
			in.wish = append(in.wish, ev.Rune())
		}
		return false
	}

	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q', 'Q':
			return true
		case 'm', 'M':
			on := s.ToggleMusic()
			if in.onMusic != nil {
				in.onMusic(on)
			}
		case 't', 'T':
			s.CycleMode()
		case 'w', 'W':
			in.wish = in.wish[:0]
			s.ToggleWishPrompt()
		}
	}
	return false
}

func (in *input) drawPrompt(screen tcell.Screen) {
	cols, rows := screen.Size()
	line := " [m] music  [t] theme  [w] wish  [q] quit "
	if in.scene.Prompting() {
		line = " Make a wish: " + string(in.wish) + "_ "
	}
	st := tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack)
	x := max((cols-len([]rune(line)))/2, 0)
	for i, r := range []rune(line) {
		if x+i >= cols {
			break
		}
		screen.SetContent(x+i, rows-1, r, nil, st)
	}
}
