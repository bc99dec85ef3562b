package yuletide

import "math"

const snowAlpha = 0.8

type flake struct {
	x, y    float64
	radius  float64
	density float64
	opacity float64
}

// snowfall is the fixed flake pool. Every flake shares one sway angle; a
// flake that leaves the viewport is recycled in place by respawn.
type snowfall struct {
	flakes []flake
	angle  float64
	w, h   float64
}

func (s *snowfall) reset(env *skyEnv) {
	s.w, s.h = env.w, env.h
	s.angle = 0
	n := env.cfg.Snowflakes
	if cap(s.flakes) < n {
		s.flakes = make([]flake, n)
	}
	s.flakes = s.flakes[:n]
	for i := range s.flakes {
		s.flakes[i] = flake{
			x:       env.rng.Float64() * env.w,
			y:       env.rng.Float64() * env.h,
			radius:  between(env.rng, 1, 3.5),
			density: env.rng.Float64() * float64(n),
			opacity: snowAlpha,
		}
	}
}

// offscreen reports whether f has left the recycling bounds.
func (s *snowfall) offscreen(f *flake) bool {
	return f.x > s.w+5 || f.x < -5 || f.y > s.h
}

// respawn re-enters flake i. Two of every three flakes come back from the
// top; the rest enter from the side the wind is blowing from.
func (s *snowfall) respawn(i int, r Rand) {
	f := &s.flakes[i]
	if i%3 != 0 {
		f.x = r.Float64() * s.w
		f.y = -10
		return
	}
	if math.Sin(s.angle) > 0 {
		f.x = -5
	} else {
		f.x = s.w + 5
	}
	f.y = r.Float64() * s.h
}

func (s *snowfall) update(r Rand) {
	s.angle += 0.01
	sin := math.Sin(s.angle)
	for i := range s.flakes {
		f := &s.flakes[i]
		f.y += math.Cos(s.angle+f.density) + 1 + f.radius/2
		f.x += sin * 2
		if s.offscreen(f) {
			s.respawn(i, r)
		}
	}
}

func (s *snowfall) draw(dst Surface) {
	for _, f := range s.flakes {
		dst.FillCircle(f.x, f.y, f.radius, ColorWhite.WithAlpha(f.opacity), BlendNormal)
	}
}
