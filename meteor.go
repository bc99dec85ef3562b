package yuletide

import (
	"math"

	"github.com/tanema/gween/ease"
)

const meteorLife = 60

// meteor is the ambient shooting star streaking across the sky layer. At
// most one is active; a new one may spawn only after the idle counter
// exceeds the configured delay.
type meteor struct {
	x, y    float64
	length  float64
	speed   float64
	angle   float64
	life    float64
	opacity float64
	active  bool
	idle    int
}

func (m *meteor) reset() {
	*m = meteor{}
}

// shouldSpawn reports whether an idle meteor should appear this frame.
func shouldSpawn(idle, delay int, p float64, r Rand) bool {
	return idle > delay && chance(r, p)
}

func (m *meteor) update(env *skyEnv) {
	if !m.active {
		m.idle++
		if shouldSpawn(m.idle, env.cfg.MeteorDelay, env.cfg.MeteorChance, env.rng) {
			m.spawn(env)
		}
		return
	}
	sin, cos := math.Sincos(m.angle)
	m.x += cos * m.speed
	m.y += sin * m.speed
	m.life--
	m.opacity = math.Max(0, float64(ease.Linear(float32(m.life), 0, 1, meteorLife)))
	if m.life <= 0 {
		m.active = false
	}
}

func (m *meteor) spawn(env *skyEnv) {
	r := env.rng
	*m = meteor{
		x:       r.Float64() * env.w,
		y:       r.Float64() * env.h * 0.3,
		length:  between(r, 50, 130),
		speed:   between(r, 15, 25),
		angle:   math.Pi/4 + jitter(r, 0.2),
		life:    meteorLife,
		opacity: 1,
		active:  true,
	}
}

func (m *meteor) draw(dst Surface) {
	if !m.active {
		return
	}
	sin, cos := math.Sincos(m.angle)
	tx, ty := m.x-cos*m.length, m.y-sin*m.length
	dst.GradientLine(m.x, m.y, tx, ty, 2, ColorWhite.WithAlpha(m.opacity), ColorWhite.WithAlpha(0), BlendNormal)
}
