package yuletide

import "math"

type star struct {
	x, y    float64
	radius  float64
	opacity float64
	rate    float64
}

// starfield is the fixed set of background stars. Opacity bounces between
// low and high; a step past either bound clamps to it and reverses the rate.
type starfield struct {
	stars     []star
	low, high float64
}

func (s *starfield) reset(env *skyEnv) {
	s.low, s.high = env.cfg.TwinkleLow, env.cfg.TwinkleHigh
	n := env.cfg.Stars
	if cap(s.stars) < n {
		s.stars = make([]star, n)
	}
	s.stars = s.stars[:n]
	for i := range s.stars {
		s.stars[i] = star{
			x:       env.rng.Float64() * env.w,
			y:       env.rng.Float64() * env.h * 0.7,
			radius:  between(env.rng, 0.5, 2.0),
			opacity: between(env.rng, s.low, s.high),
			rate:    between(env.rng, 0.005, 0.025),
		}
	}
}

func (s *starfield) update() {
	for i := range s.stars {
		st := &s.stars[i]
		st.opacity += st.rate
		switch {
		case st.opacity > s.high:
			st.opacity = s.high
			st.rate = -math.Abs(st.rate)
		case st.opacity < s.low:
			st.opacity = s.low
			st.rate = math.Abs(st.rate)
		}
	}
}

func (s *starfield) draw(dst Surface) {
	for _, st := range s.stars {
		dst.FillCircle(st.x, st.y, st.radius, ColorWhite.WithAlpha(st.opacity), BlendNormal)
	}
}
