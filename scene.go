package yuletide

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// Layer names registered by NewScene, bottom to top.
const (
	LayerBackdrop = "backdrop"
	LayerSky      = "sky"
	LayerTree     = "tree"
	LayerVignette = "vignette"
	LayerDust     = "dust"
	LayerWish     = "wish"
)

// DefaultWishes seeds the wish list of a new scene.
var DefaultWishes = []string{"Love", "Peace", "Joy"}

const maxWishLen = 40

// Scene is the complete festive scene: a scheduler preloaded with the
// standard layers plus the UI state the layers react to (theme, music-driven
// fast rotation, the wish list and the wish prompt).
type Scene struct {
	*Scheduler

	Backdrop     *Backdrop
	Sky          *SkyEngine
	Tree         *TreeEngine
	Vignette     *Vignette
	Dust         *CursorDust
	ShootingStar *ShootingStar

	// ScreenshotDir is where queued screenshots are written.
	ScreenshotDir string

	cfg    Config
	wishes []string
	prompt bool
	music  bool

	injectQueue     []Vec2
	screenshotQueue []string
	script          *Script
	onWishSent      func()
}

// SceneOption customizes NewScene.
type SceneOption func(*sceneOptions)

type sceneOptions struct {
	rng   Rand
	clock Clock
	log   *zap.Logger
}

// WithRand overrides the scene's random source.
func WithRand(r Rand) SceneOption { return func(o *sceneOptions) { o.rng = r } }

// WithClock overrides the wall clock used by the shooting star.
func WithClock(c Clock) SceneOption { return func(o *sceneOptions) { o.clock = c } }

// WithLogger sets the scheduler's logger.
func WithLogger(l *zap.Logger) SceneOption { return func(o *sceneOptions) { o.log = l } }

// NewScene validates cfg and builds the layered scene. No layer has a
// surface yet; backends bind one per layer.
func NewScene(cfg Config, opts ...SceneOption) (*Scene, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("new scene: %w", err)
	}
	o := sceneOptions{clock: SystemClock()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.rng == nil {
		o.rng = NewRand(cfg.Seed)
	}

	s := &Scene{
		Scheduler:     NewScheduler(),
		Backdrop:      NewBackdrop(),
		Sky:           NewSkyEngine(cfg, o.rng),
		Tree:          NewTreeEngine(cfg, o.rng),
		Vignette:      NewVignette(),
		Dust:          NewCursorDust(o.rng),
		ShootingStar:  NewShootingStar(o.clock, o.rng),
		ScreenshotDir: "screenshots",
		cfg:           cfg,
		wishes:        append([]string(nil), DefaultWishes...),
	}
	s.SetLogger(o.log)

	s.Add(LayerBackdrop, s.Backdrop, 1, BlendNormal)
	s.Add(LayerSky, s.Sky, 0.8, BlendNormal)
	s.Add(LayerTree, s.Tree, 1, BlendScreen)
	s.Add(LayerVignette, s.Vignette, 1, BlendNormal)
	s.Add(LayerDust, s.Dust, 1, BlendScreen)
	s.Add(LayerWish, s.ShootingStar, 1, BlendAdd)
	return s, nil
}

// Config returns the configuration the scene was built with.
func (s *Scene) Config() Config { return s.cfg }

// Update runs scripted input, then advances every layer.
func (s *Scene) Update() {
	if s.script != nil {
		s.script.step(s)
	}
	s.processInjected()
	s.Scheduler.Update()
}

// CycleMode advances to the next theme.
func (s *Scene) CycleMode() {
	s.SetMode(s.Mode().Next())
}

// Music reports whether music, and with it fast rotation, is on.
func (s *Scene) Music() bool { return s.music }

// SetMusic switches music state. The tree spins fast while music plays.
func (s *Scene) SetMusic(on bool) {
	s.music = on
	s.SetFast(on)
}

// ToggleMusic flips the music state and returns the new one.
func (s *Scene) ToggleMusic() bool {
	s.SetMusic(!s.music)
	return s.music
}

// Prompting reports whether the wish prompt is open.
func (s *Scene) Prompting() bool { return s.prompt }

// ToggleWishPrompt opens or closes the wish prompt. Closing it sends the
// wish off with a shooting star.
func (s *Scene) ToggleWishPrompt() {
	if s.prompt {
		s.ShootingStar.SetVisible(true)
		if s.onWishSent != nil {
			s.onWishSent()
		}
	}
	s.prompt = !s.prompt
}

// OnWishSent registers fn to run each time the prompt closes and the
// shooting star is launched.
func (s *Scene) OnWishSent(fn func()) { s.onWishSent = fn }

// AddWish puts text at the front of the wish list. Blank wishes are ignored.
func (s *Scene) AddWish(text string) bool {
	text = strings.TrimSpace(text)
	if text == "" {
		return false
	}
	if r := []rune(text); len(r) > maxWishLen {
		text = string(r[:maxWishLen])
	}
	s.wishes = append([]string{text}, s.wishes...)
	return true
}

// Wishes returns the wish list, newest first. The slice must not be mutated.
func (s *Scene) Wishes() []string { return s.wishes }

// WishPosition places wish i in the floating band across the middle half
// of a w by h viewport.
func WishPosition(i, w, h int) (float64, float64) {
	left := float64((i*37)%80+10) / 100
	top := float64((i*23)%80+10) / 100
	return left * float64(w), float64(h)*0.25 + top*float64(h)*0.5
}
