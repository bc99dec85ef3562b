package yuletide

import "math"

const (
	rocketLift   = 0.05
	sparkDecay   = 0.012
	sparkRadius  = 1.5
	rocketRadius = 2
	burstMin     = 80
	burstSpread  = 40
)

// burstConfig holds the randomized ranges of a launch and its burst.
type burstConfig struct {
	Lift     Range // upward launch speed
	Speed    Range // spark speed
	Friction Range
	Gravity  Range
}

var defaultBurst = burstConfig{
	Lift:     Range{Min: 10, Max: 15},
	Speed:    Range{Min: 2, Max: 8},
	Friction: Range{Min: 0.95, Max: 0.98},
	Gravity:  Range{Min: 0.08, Max: 0.13},
}

// fireworks launches rockets from the bottom edge and bursts them into
// sparks. A rocket explodes when it stalls (vy >= 0) or reaches its target
// altitude, whichever comes first, and is removed in that same update.
// Neither pool is capped: every burst gets its full spark count and every
// mote is removed once its life runs out.
type fireworks struct {
	rockets motePool
	sparks  motePool
	timer   int
	burst   burstConfig
}

func newFireworks() fireworks {
	return fireworks{
		rockets: newMotePool(0),
		sparks:  newMotePool(0),
		burst:   defaultBurst,
	}
}

func (f *fireworks) reset() {
	f.rockets.reset()
	f.sparks.reset()
	f.timer = 0
}

// shouldBurst reports whether a rocket at (y, vy) has reached its burst point.
func shouldBurst(y, vy, target float64) bool {
	return vy >= 0 || y <= target
}

func (f *fireworks) update(env *skyEnv) {
	f.timer++
	if shouldSpawn(f.timer, env.cfg.FireworkDelay, env.cfg.FireworkChance, env.rng) {
		f.launch(env)
		f.timer = 0
	}

	f.rockets.update(func(m *mote) {
		m.x += m.vx
		m.y += m.vy
		m.vy += rocketLift
		if shouldBurst(m.y, m.vy, m.target) {
			f.explode(env.rng, m.x, m.y, m.color)
			m.life = 0
		}
	})

	f.sparks.update(func(m *mote) {
		m.vx *= m.friction
		m.vy *= m.friction
		m.vy += m.gravity
		m.x += m.vx
		m.y += m.vy
		m.life -= sparkDecay
	})
}

func (f *fireworks) launch(env *skyEnv) {
	r := env.rng
	f.rockets.spawn(mote{
		x:      r.Float64() * env.w,
		y:      env.h,
		vx:     jitter(r, 2),
		vy:     -f.burst.Lift.Random(r),
		target: env.h*0.1 + r.Float64()*env.h*0.4,
		life:   1,
		color:  pick(r, FireworkColors),
	})
}

func (f *fireworks) explode(r Rand, x, y float64, c Color) {
	n := burstMin + r.IntN(burstSpread)
	for i := 0; i < n; i++ {
		sin, cos := math.Sincos(randAngle(r))
		speed := f.burst.Speed.Random(r)
		f.sparks.spawn(mote{
			x:        x,
			y:        y,
			vx:       cos * speed,
			vy:       sin * speed,
			life:     1,
			color:    c,
			friction: f.burst.Friction.Random(r),
			gravity:  f.burst.Gravity.Random(r),
		})
	}
}

func (f *fireworks) draw(dst Surface, r Rand) {
	for _, m := range f.rockets.motes {
		dst.FillCircle(m.x, m.y, rocketRadius, m.color.WithAlpha(0.8), BlendNormal)
		if chance(r, 0.4) {
			dst.FillRect(m.x+jitter(r, 4), m.y+2, 1, 1, ColorWhite, BlendNormal)
		}
	}
	for _, m := range f.sparks.motes {
		dst.FillCircle(m.x, m.y, sparkRadius, m.color.WithAlpha(m.life), BlendAdd)
		if chance(r, 0.1) {
			dst.FillRect(m.x, m.y, 2, 2, ColorWhite.WithAlpha(m.life), BlendAdd)
		}
	}
}
