package yuletide

import (
	"math"

	"github.com/aquilax/go-perlin"
	"github.com/tanema/gween/ease"
)

const (
	auroraDrift = 0.002
	auroraSway  = 100
	frameDT     = 1.0 / 60
	moonRadius  = 28
)

// skyEnv is the shared read-only context handed to each sky step.
type skyEnv struct {
	w, h float64
	pal  Palette
	cfg  Config
	rng  Rand
}

// aurora is a pair of slowly swaying radial washes at the top of the sky.
type aurora struct {
	offset float64
	noise  *perlin.Perlin
}

func (a *aurora) update() {
	a.offset += auroraDrift
}

func (a *aurora) draw(dst Surface, env *skyEnv) {
	n := a.noise.Noise1D(a.offset * 3)
	x1 := env.w*0.3 + math.Sin(a.offset)*auroraSway + n*40
	x2 := env.w*0.8 - math.Sin(a.offset*0.8)*auroraSway - n*40
	dst.Glow(x1, 0, env.w*0.8, env.h*0.6, env.pal.Aurora[0], BlendScreen)
	dst.Glow(x2, env.h*0.05, env.w*0.6, env.h*0.55, env.pal.Aurora[1], BlendScreen)
}

// moon is a softly pulsing disc in the upper right.
type moon struct {
	pulse *Pulse
}

func (m *moon) draw(dst Surface, env *skyEnv) {
	k := m.pulse.Value()
	x, y := env.w*0.85, env.h*0.14
	r := moonRadius * k
	dst.Glow(x, y, r*3.5, r*3.5, env.pal.Moon.WithAlpha(0.18*k), BlendAdd)
	dst.FillCircle(x, y, r, env.pal.Moon.WithAlpha(0.9), BlendNormal)
}

// SkyEngine draws the background layer: aurora, moon, twinkling stars, the
// ambient meteor, fireworks, fog, forest, houses, Santa and snowfall. Each
// part updates independently and they are painted back to front.
type SkyEngine struct {
	env  skyEnv
	mode Mode

	aurora    aurora
	moon      moon
	stars     starfield
	meteor    meteor
	fireworks fireworks
	village   village
	santa     santa
	snow      snowfall
}

// NewSkyEngine returns an engine sized to nothing. The first Resize
// populates it.
func NewSkyEngine(cfg Config, rng Rand) *SkyEngine {
	seed := int64(rng.IntN(math.MaxInt32))
	return &SkyEngine{
		env:       skyEnv{cfg: cfg, rng: rng, pal: ModeClassic.Palette()},
		aurora:    aurora{noise: perlin.NewPerlin(2, 2, 3, seed)},
		moon:      moon{pulse: NewPulse(0.94, 1.06, 4, ease.InOutSine)},
		fireworks: newFireworks(),
		village:   newVillage(seed + 1),
	}
}

// Resize rebuilds every viewport-dependent pool.
func (s *SkyEngine) Resize(w, h int) {
	s.env.w, s.env.h = float64(w), float64(h)
	s.reset()
}

// SetMode switches theme and rebuilds the theme-dependent pools.
func (s *SkyEngine) SetMode(m Mode) {
	s.mode = m
	s.env.pal = m.Palette()
	s.reset()
}

// Mode returns the current theme.
func (s *SkyEngine) Mode() Mode { return s.mode }

func (s *SkyEngine) reset() {
	if s.env.w <= 0 || s.env.h <= 0 {
		s.stars.stars = s.stars.stars[:0]
		s.snow.flakes = s.snow.flakes[:0]
		return
	}
	s.stars.reset(&s.env)
	s.meteor.reset()
	s.fireworks.reset()
	s.village.reset(&s.env)
	s.santa.reset()
	s.snow.reset(&s.env)
}

// Update advances every part by one frame.
func (s *SkyEngine) Update() {
	if s.env.w <= 0 || s.env.h <= 0 {
		return
	}
	s.aurora.update()
	s.moon.pulse.Update(frameDT)
	s.stars.update()
	s.meteor.update(&s.env)
	s.fireworks.update(&s.env)
	s.village.update(&s.env)
	s.santa.update(&s.env)
	s.snow.update(s.env.rng)
}

// Draw paints the sky back to front.
func (s *SkyEngine) Draw(dst Surface) {
	if dst == nil || s.env.w <= 0 || s.env.h <= 0 {
		return
	}
	s.aurora.draw(dst, &s.env)
	s.moon.draw(dst, &s.env)
	s.stars.draw(dst)
	s.meteor.draw(dst)
	s.fireworks.draw(dst, s.env.rng)
	s.village.draw(dst, s.env.pal)
	s.santa.draw(dst, s.env.rng)
	s.snow.draw(dst)
}

// SkyStats is a snapshot of the sky's live entity counts.
type SkyStats struct {
	Stars, Flakes             int
	Rockets, Sparks, Smoke    int
	MeteorActive, SantaActive bool
}

// Stats reports live counts for debug overlays and logging.
func (s *SkyEngine) Stats() SkyStats {
	return SkyStats{
		Stars:        len(s.stars.stars),
		Flakes:       len(s.snow.flakes),
		Rockets:      s.fireworks.rockets.Len(),
		Sparks:       s.fireworks.sparks.Len(),
		Smoke:        s.village.smoke.Len(),
		MeteorActive: s.meteor.active,
		SantaActive:  s.santa.active,
	}
}
