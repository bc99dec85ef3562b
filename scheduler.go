package yuletide

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// ErrUnknownLayer is returned when a layer name is not registered.
var ErrUnknownLayer = errors.New("unknown layer")

// panicLogEvery rate-limits repeated panic logs from the same layer.
const panicLogEvery = 300

// Engine is one independently animated layer of the scene.
type Engine interface {
	Resize(w, h int)
	Update()
	Draw(dst Surface)
}

// Themed is implemented by engines whose pools depend on the theme.
type Themed interface {
	SetMode(m Mode)
}

// Speeder is implemented by engines that honor the fast-rotation flag.
type Speeder interface {
	SetFast(fast bool)
}

// Layer binds an engine to the surface it draws into, plus the alpha and
// blend mode a backend uses when compositing that surface over the layers
// beneath it.
type Layer struct {
	name    string
	engine  Engine
	surface Surface
	alpha   float64
	blend   BlendMode
	running bool
	panics  int
}

// Name returns the layer's name.
func (l *Layer) Name() string { return l.name }

// Engine returns the engine driven by the layer.
func (l *Layer) Engine() Engine { return l.engine }

// Surface returns the layer's drawing target, or nil when none is bound.
func (l *Layer) Surface() Surface { return l.surface }

// SetSurface binds the layer to dst. A nil surface skips drawing.
func (l *Layer) SetSurface(dst Surface) { l.surface = dst }

// Alpha returns the composite opacity of the layer.
func (l *Layer) Alpha() float64 { return l.alpha }

// Blend returns the composite blend mode of the layer.
func (l *Layer) Blend() BlendMode { return l.blend }

// Running reports whether the layer is updated and drawn.
func (l *Layer) Running() bool { return l.running }

// Panics returns how many callbacks of this layer have panicked.
func (l *Layer) Panics() int { return l.panics }

// Scheduler drives every layer once per frame, in registration order. All
// calls must come from one goroutine, normally the host's frame loop.
type Scheduler struct {
	layers []*Layer
	log    *zap.Logger
	debug  bool
	stats  debugStats
	frames uint64

	w, h int
	mode Mode
	fast bool
}

// NewScheduler returns an empty scheduler that logs nowhere.
func NewScheduler() *Scheduler {
	return &Scheduler{log: zap.NewNop()}
}

// SetLogger replaces the scheduler's logger. Nil restores the no-op logger.
func (s *Scheduler) SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	s.log = l
}

// Logger returns the scheduler's logger.
func (s *Scheduler) Logger() *zap.Logger { return s.log }

// SetDebugMode enables per-frame timing stats, logged at debug level.
func (s *Scheduler) SetDebugMode(enabled bool) {
	s.debug = enabled
}

// Add registers a running layer on top of the existing ones. The engine is
// sized and themed to the scheduler's current state.
func (s *Scheduler) Add(name string, e Engine, alpha float64, blend BlendMode) *Layer {
	l := &Layer{name: name, engine: e, alpha: alpha, blend: blend, running: true}
	s.layers = append(s.layers, l)
	if t, ok := e.(Themed); ok && s.mode != ModeClassic {
		s.guard(l, "mode", func() { t.SetMode(s.mode) })
	}
	if s.w > 0 && s.h > 0 {
		s.guard(l, "resize", func() { e.Resize(s.w, s.h) })
	}
	return l
}

// Layers returns the registered layers bottom to top. The returned slice
// must not be mutated.
func (s *Scheduler) Layers() []*Layer { return s.layers }

// Layer looks up a layer by name.
func (s *Scheduler) Layer(name string) (*Layer, error) {
	for _, l := range s.layers {
		if l.name == name {
			return l, nil
		}
	}
	return nil, fmt.Errorf("layer %q: %w", name, ErrUnknownLayer)
}

// Start resumes a stopped layer.
func (s *Scheduler) Start(name string) error {
	l, err := s.Layer(name)
	if err != nil {
		return err
	}
	l.running = true
	return nil
}

// Stop halts a layer and clears its surface. Other layers keep running.
func (s *Scheduler) Stop(name string) error {
	l, err := s.Layer(name)
	if err != nil {
		return err
	}
	l.running = false
	if l.surface != nil {
		l.surface.Clear()
	}
	return nil
}

// Running reports whether the named layer is running.
func (s *Scheduler) Running(name string) bool {
	l, err := s.Layer(name)
	return err == nil && l.running
}

// Size returns the current viewport.
func (s *Scheduler) Size() (int, int) { return s.w, s.h }

// Resize propagates a viewport change to every engine before the next frame.
func (s *Scheduler) Resize(w, h int) {
	s.w, s.h = w, h
	for _, l := range s.layers {
		e := l.engine
		s.guard(l, "resize", func() { e.Resize(w, h) })
	}
	s.log.Debug("viewport resized", zap.Int("width", w), zap.Int("height", h))
}

// Mode returns the current theme.
func (s *Scheduler) Mode() Mode { return s.mode }

// SetMode rethemes every Themed engine.
func (s *Scheduler) SetMode(m Mode) {
	s.mode = m
	for _, l := range s.layers {
		if t, ok := l.engine.(Themed); ok {
			s.guard(l, "mode", func() { t.SetMode(m) })
		}
	}
	s.log.Debug("theme changed", zap.Stringer("mode", m))
}

// Fast reports the fast-rotation flag.
func (s *Scheduler) Fast() bool { return s.fast }

// SetFast forwards the fast-rotation flag to every Speeder engine.
func (s *Scheduler) SetFast(fast bool) {
	s.fast = fast
	for _, l := range s.layers {
		if sp, ok := l.engine.(Speeder); ok {
			s.guard(l, "fast", func() { sp.SetFast(fast) })
		}
	}
}

// Frames returns the number of completed Update calls.
func (s *Scheduler) Frames() uint64 { return s.frames }

// Update advances every running layer by one frame.
func (s *Scheduler) Update() {
	start := time.Now()
	for _, l := range s.layers {
		if !l.running {
			continue
		}
		s.guard(l, "update", l.engine.Update)
	}
	s.frames++
	if s.debug {
		s.stats.updateTime = time.Since(start)
	}
}

// Draw clears and redraws every running layer that has a surface.
func (s *Scheduler) Draw() {
	start := time.Now()
	drawn := 0
	for _, l := range s.layers {
		if !l.running || l.surface == nil {
			continue
		}
		dst := l.surface
		dst.Clear()
		e := l.engine
		s.guard(l, "draw", func() { e.Draw(dst) })
		flush(dst)
		drawn++
	}
	if s.debug {
		s.stats.drawTime = time.Since(start)
		s.stats.layersDrawn = drawn
		s.debugLog()
	}
}

// guard runs fn, converting a panic into a logged, skipped callback.
func (s *Scheduler) guard(l *Layer, phase string, fn func()) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			ok = false
			l.panics++
			if l.panics == 1 || l.panics%panicLogEvery == 0 {
				s.log.Error("frame callback panicked",
					zap.String("layer", l.name),
					zap.String("phase", phase),
					zap.Any("panic", r),
					zap.Int("count", l.panics),
					zap.Uint64("frame", s.frames),
				)
			}
		}
	}()
	fn()
	return true
}
