package yuletide

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Pulse ping-pongs a value between lo and hi, easing each leg with fn.
// Call Update(dt) once per frame; Value returns the latest sample.
type Pulse struct {
	tween  *gween.Tween
	lo, hi float32
	dur    float32
	fn     ease.TweenFunc
	rising bool
	value  float64
}

// NewPulse returns a pulse starting at lo and rising toward hi over dur seconds.
func NewPulse(lo, hi, dur float32, fn ease.TweenFunc) *Pulse {
	return &Pulse{
		tween:  gween.New(lo, hi, dur, fn),
		lo:     lo,
		hi:     hi,
		dur:    dur,
		fn:     fn,
		rising: true,
		value:  float64(lo),
	}
}

// Update advances the pulse by dt seconds and returns its value.
func (p *Pulse) Update(dt float32) float64 {
	v, done := p.tween.Update(dt)
	p.value = float64(v)
	if done {
		p.rising = !p.rising
		if p.rising {
			p.tween = gween.New(p.lo, p.hi, p.dur, p.fn)
		} else {
			p.tween = gween.New(p.hi, p.lo, p.dur, p.fn)
		}
	}
	return p.value
}

// Value returns the most recent sample.
func (p *Pulse) Value() float64 {
	return p.value
}

// envelope maps elapsed seconds in a run of total seconds to an alpha that
// fades in over the first fadeIn seconds and out over the last fadeOut.
type envelope struct {
	in, out         *gween.Tween
	total           float32
	fadeIn, fadeOut float32
}

func newEnvelope(total, fadeIn, fadeOut float32) *envelope {
	return &envelope{
		in:      gween.New(0, 1, fadeIn, ease.Linear),
		out:     gween.New(1, 0, fadeOut, ease.Linear),
		total:   total,
		fadeIn:  fadeIn,
		fadeOut: fadeOut,
	}
}

// at samples the envelope. Times outside [0, total] clamp to zero alpha.
func (e *envelope) at(t float32) float64 {
	switch {
	case t < 0 || t >= e.total:
		return 0
	case t < e.fadeIn:
		v, _ := e.in.Set(t)
		return clamp01(float64(v))
	case t > e.total-e.fadeOut:
		v, _ := e.out.Set(t - (e.total - e.fadeOut))
		return clamp01(float64(v))
	default:
		return 1
	}
}
