package yuletide

import (
	"math"
	"time"
)

const (
	wishDuration   = 1.0
	wishFadeIn     = 0.15
	wishFadeOut    = 0.2
	wishTrailUntil = 0.7
	wishTrailEvery = 0.015
	wishSpeed      = 18
	wishMaxDT      = 0.1
	wishCoreSize   = 3
	wishTrailCap   = 1024
)

var (
	wishTrailLife = Range{Min: 0.5, Max: 0.8}
	wishTrailDrag = Range{Min: 0.4, Max: 0.7} // fraction of the core velocity
	wishTrailSize = Range{Min: 1.5, Max: 3}
)

// ShootingStar is the one-shot foreground streak played when a wish is
// made. It animates in real seconds from its Clock. SetVisible(true) starts
// a run; the completion callback fires exactly once per run, when every
// particle has expired or the run has lasted a full second.
type ShootingStar struct {
	clock Clock
	rng   Rand

	w, h    int
	visible bool
	running bool

	start, last time.Time
	elapsed     float64
	trailTimer  float64
	alpha       float64

	core      mote
	coreAlive bool
	trail     motePool
	env       *envelope

	onComplete func()
}

// NewShootingStar returns an idle effect. A nil clock uses wall time.
func NewShootingStar(clock Clock, rng Rand) *ShootingStar {
	if clock == nil {
		clock = SystemClock()
	}
	return &ShootingStar{
		clock: clock,
		rng:   rng,
		trail: newMotePool(wishTrailCap),
		env:   newEnvelope(wishDuration, wishFadeIn, wishFadeOut),
	}
}

// OnComplete registers fn to run at the end of each run. It is not called
// when a run is cancelled with SetVisible(false).
func (s *ShootingStar) OnComplete(fn func()) {
	s.onComplete = fn
}

// Resize records the viewport used to place the next run.
func (s *ShootingStar) Resize(w, h int) {
	s.w, s.h = w, h
}

// SetVisible starts a run on a false-to-true edge and cancels any run,
// clearing its particles, on false.
func (s *ShootingStar) SetVisible(v bool) {
	switch {
	case v && !s.visible:
		s.visible = true
		s.begin()
	case !v:
		s.visible = false
		s.running = false
		s.clear()
	}
}

// Visible reports the current visibility signal.
func (s *ShootingStar) Visible() bool { return s.visible }

// Running reports whether a run is in progress.
func (s *ShootingStar) Running() bool { return s.running }

// Count returns the number of live particles, core included.
func (s *ShootingStar) Count() int {
	n := s.trail.Len()
	if s.coreAlive {
		n++
	}
	return n
}

// Alpha returns the envelope alpha of the last update.
func (s *ShootingStar) Alpha() float64 { return s.alpha }

func (s *ShootingStar) clear() {
	s.trail.reset()
	s.coreAlive = false
	s.alpha = 0
}

func (s *ShootingStar) begin() {
	r := s.rng
	w, h := float64(s.w), float64(s.h)
	angle := between(r, 42, 54) * math.Pi / 180
	sin, cos := math.Sincos(angle)

	s.clear()
	s.core = mote{
		x:       w * between(r, 0.65, 0.9),
		y:       h * between(r, 0.08, 0.2),
		vx:      -cos * wishSpeed,
		vy:      sin * wishSpeed,
		life:    1,
		maxLife: 1,
		size:    wishCoreSize,
		color:   ColorWhite,
	}
	s.coreAlive = true
	s.start = s.clock.Now()
	s.last = s.start
	s.elapsed = 0
	s.trailTimer = 0
	s.running = true
}

// Update advances the run by the wall time elapsed since the last call.
func (s *ShootingStar) Update() {
	if !s.running {
		return
	}
	now := s.clock.Now()
	dt := math.Min(now.Sub(s.last).Seconds(), wishMaxDT)
	s.last = now
	s.elapsed = now.Sub(s.start).Seconds()
	s.alpha = s.env.at(float32(s.elapsed))

	if s.elapsed < wishTrailUntil && s.coreAlive {
		s.trailTimer += dt
		if s.trailTimer > wishTrailEvery {
			s.trailTimer = 0
			s.emitTrail()
		}
	}

	step := func(m *mote) {
		m.x += m.vx * dt * 60
		m.y += m.vy * dt * 60
		m.life -= dt
	}
	if s.coreAlive {
		step(&s.core)
		s.coreAlive = s.core.life > 0
	}
	s.trail.update(step)

	if s.Count() == 0 || s.elapsed >= wishDuration {
		s.finish()
	}
}

func (s *ShootingStar) emitTrail() {
	r := s.rng
	c := &s.core
	n := 2 + r.IntN(2)
	for i := 0; i < n; i++ {
		life := wishTrailLife.Random(r)
		s.trail.spawn(mote{
			x:       c.x + jitter(r, 3),
			y:       c.y + jitter(r, 3),
			vx:      c.vx * wishTrailDrag.Random(r),
			vy:      c.vy*wishTrailDrag.Random(r) + jitter(r, 0.2),
			life:    life,
			maxLife: life,
			size:    wishTrailSize.Random(r),
			color:   Color{1, between(r, 220, 255) / 255, between(r, 100, 150) / 255, 1},
		})
	}
}

// finish ends the run. State is reset before the callback so the callback
// may immediately start another run.
func (s *ShootingStar) finish() {
	s.running = false
	s.visible = false
	s.clear()
	if s.onComplete != nil {
		s.onComplete()
	}
}

// Draw paints the trail and core with additive blending.
func (s *ShootingStar) Draw(dst Surface) {
	if dst == nil || !s.running {
		return
	}
	for i := range s.trail.motes {
		s.drawMote(dst, &s.trail.motes[i])
	}
	if s.coreAlive {
		s.drawMote(dst, &s.core)
	}
}

func (s *ShootingStar) drawMote(dst Surface, m *mote) {
	a := math.Max(0, m.life/m.maxLife) * s.alpha
	if a <= 0 {
		return
	}
	halo := m.size * 6
	dst.Glow(m.x, m.y, halo, halo, m.color.WithAlpha(a*0.3*0.6), BlendAdd)
	dst.Glow(m.x, m.y, m.size+10, m.size+10, m.color.WithAlpha(a*0.5), BlendAdd)
	dst.FillCircle(m.x, m.y, m.size, m.color.WithAlpha(a), BlendAdd)
}
