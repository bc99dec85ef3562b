package yuletide

import "math"

const (
	santaStartX   = -200
	santaSpeed    = 3
	santaBob      = 30
	santaTeam     = 9 // eight reindeer plus the red-nosed leader
	santaSpacing  = 15
	sleighOffset  = 40
	santaMargin   = 200
	santaGlowBlur = 10
)

var (
	reindeerColor = MustHex("#FFF8DC")
	noseColor     = MustHex("#FF0000")
	sleighColor   = MustHex("#D4AF37")
	sparkleColor  = MustHex("#FFD700")
)

// santa is the periodic flyby. While inactive a countdown runs; when it
// passes the configured delay the team enters from the left and exits past
// the right edge, after which the countdown starts over.
type santa struct {
	x, y      float64
	active    bool
	countdown int
}

func (s *santa) reset() {
	*s = santa{}
}

func (s *santa) update(env *skyEnv) {
	if !s.active {
		s.countdown++
		if s.countdown > env.cfg.SantaDelay {
			s.active = true
			s.x = santaStartX
			s.y = env.h*0.15 + env.rng.Float64()*100
			s.countdown = 0
		}
		return
	}
	s.x += santaSpeed
	if s.x > env.w+santaMargin {
		s.active = false
	}
}

// altitude returns the bobbing flight height at the current x.
func (s *santa) altitude() float64 {
	return s.y + math.Sin(s.x*0.01)*santaBob
}

func (s *santa) draw(dst Surface, r Rand) {
	if !s.active {
		return
	}
	y := s.altitude()
	for i := 0; i < santaTeam; i++ {
		fi := float64(i)
		rx := s.x + fi*santaSpacing
		ry := y + math.Sin((s.x+fi*10)*0.05)*5
		radius, c, glow := 2.0, reindeerColor, ColorWhite
		if i == santaTeam-1 {
			radius, c, glow = 3, noseColor, noseColor
		}
		dst.Glow(rx, ry, radius+santaGlowBlur, radius+santaGlowBlur, glow.WithAlpha(0.4), BlendAdd)
		dst.FillCircle(rx, ry, radius, c, BlendNormal)
		if chance(r, 0.3) {
			dst.FillRect(rx-5-r.Float64()*20, ry, 1, 1, sparkleColor.WithAlpha(r.Float64()), BlendNormal)
		}
	}
	sx := s.x - sleighOffset
	dst.Glow(sx, y, 12+15, 6+15, sleighColor.WithAlpha(0.5), BlendAdd)
	dst.FillEllipse(sx, y, 12, 6, sleighColor, BlendNormal)
}
