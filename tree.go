package yuletide

import (
	"math"

	"github.com/tanema/gween/ease"
)

const (
	treeBaseRatio    = 0.85 // tree base sits at this fraction of the viewport height
	orbitBob         = 20
	orbitTimeScale   = 100
	glowBrightRadius = 8
	glowOrbitRadius  = 15
	floorGlowRatio   = 0.45
	floorGlowSquash  = 0.25
	starSpikes       = 5
	starOuter        = 30
	starInner        = 12
	starGlowBlur     = 40
)

// TreeEngine animates the rotating particle tree. It owns the population
// and regenerates it whenever the viewport or theme changes.
type TreeEngine struct {
	cfg  Config
	rng  Rand
	mode Mode
	pal  Palette
	fast bool

	w, h  int
	field Field

	rotation float64
	elapsed  float64

	entries []depthEntry
	sorter  depthSorter
	star    [starSpikes * 2]Vec2
}

// NewTreeEngine returns an engine with an empty population. The first
// Resize generates the tree.
func NewTreeEngine(cfg Config, rng Rand) *TreeEngine {
	return &TreeEngine{cfg: cfg, rng: rng, pal: ModeClassic.Palette()}
}

// Resize regenerates the population for a new viewport.
func (t *TreeEngine) Resize(w, h int) {
	t.w, t.h = w, h
	t.regenerate()
}

// SetMode switches theme and regenerates the population.
func (t *TreeEngine) SetMode(m Mode) {
	t.mode = m
	t.pal = m.Palette()
	t.regenerate()
}

// SetFast toggles fast rotation.
func (t *TreeEngine) SetFast(fast bool) {
	t.fast = fast
}

// Mode returns the current theme.
func (t *TreeEngine) Mode() Mode { return t.mode }

// Particles exposes the live population. Callers must not retain it across
// a Resize or SetMode.
func (t *TreeEngine) Particles() []Particle { return t.field.Particles }

// Field returns the geometry of the current population.
func (t *TreeEngine) Field() Field { return t.field }

// Elapsed returns the animation clock.
func (t *TreeEngine) Elapsed() float64 { return t.elapsed }

// Rotation returns the current rotation angle in radians.
func (t *TreeEngine) Rotation() float64 { return t.rotation }

// Breathe returns the current breathing factor in [0.9, 1.1].
func (t *TreeEngine) Breathe() float64 {
	return 1 + 0.1*math.Sin(t.elapsed*2)
}

func (t *TreeEngine) regenerate() {
	t.field = GenerateField(t.field.Particles, t.w, t.h, t.mode, t.cfg.Particles, t.rng)
}

// Update advances rotation and time, moves orbiters and dust, and steps
// every twinkle phase.
func (t *TreeEngine) Update() {
	speed := t.cfg.RotationSpeed
	if t.fast {
		speed *= t.cfg.FastFactor
	}
	t.rotation -= speed
	t.elapsed += t.cfg.TimeStep

	ceiling := -t.field.Height
	ps := t.field.Particles
	for i := range ps {
		p := &ps[i]
		switch p.Role {
		case RoleOrbiter:
			a := p.OrbitAngle + t.elapsed*p.OrbitSpeed*orbitTimeScale
			sin, cos := math.Sincos(a)
			p.X = cos * p.OrbitRadius
			p.Z = sin * p.OrbitRadius
			p.Y = p.OrbitAnchor + math.Sin(t.elapsed+p.OrbitAngle)*orbitBob
		case RoleDust:
			p.Y -= p.Drift
			if p.Y < ceiling {
				p.respawn(t.rng, t.field.BaseRadius)
			} else if p.fadeAge < dustFadeFrames {
				p.fadeAge++
				p.Opacity = dustFade(p.fadeAge, p.fadeTarget)
			}
		}
		p.TwinklePhase += p.TwinkleSpeed
	}
}

// dustFade eases a respawned dust particle from clear up to target over
// dustFadeFrames frames.
func dustFade(age float32, target float64) float64 {
	if age >= dustFadeFrames {
		return target
	}
	return float64(ease.OutQuad(age, 0, float32(target), dustFadeFrames))
}

// particleAlpha computes the drawn alpha for p from its twinkle state.
func particleAlpha(p *Particle, breathe float64) float64 {
	tw := (math.Sin(p.TwinklePhase) + 1) / 2
	switch {
	case p.Role == RoleOrbiter:
		return p.Opacity
	case p.Drift > 0:
		return p.Opacity * tw * 0.8
	default:
		a := clamp(p.Opacity*(0.6+0.4*tw), 0.1, 1)
		return a * (0.9 + 0.1*breathe)
	}
}

// Draw depth-sorts and projects the population onto dst.
func (t *TreeEngine) Draw(dst Surface) {
	if dst == nil {
		return
	}
	w, h := dst.Size()
	if w <= 0 || h <= 0 {
		return
	}
	cx := float64(w) / 2
	base := float64(h) * treeBaseRatio
	breathe := t.Breathe()

	glowR := math.Min(float64(w), float64(h)) * floorGlowRatio * breathe
	dst.Glow(cx, base, glowR, glowR*floorGlowSquash, t.pal.Floor, BlendNormal)

	ps := t.field.Particles
	if cap(t.entries) < len(ps) {
		t.entries = make([]depthEntry, len(ps))
	}
	t.entries = t.entries[:len(ps)]
	sin, cos := math.Sincos(t.rotation)
	for i := range ps {
		p := &ps[i]
		t.entries[i] = depthEntry{
			rx:  p.X*cos + p.Z*sin,
			rz:  p.Z*cos - p.X*sin,
			idx: int32(i),
		}
	}
	t.sorter.sort(t.entries)

	fov := t.cfg.FocalLength
	for _, e := range t.entries {
		scale := fov / (fov + e.rz + fov)
		if scale < 0 {
			continue
		}
		p := &ps[e.idx]
		alpha := particleAlpha(p, breathe)
		if alpha <= 0 {
			continue
		}
		x := e.rx*scale + cx
		y := p.Y*scale + base
		r := p.Radius * scale
		c := p.Color.Scale(alpha)

		switch {
		case p.Role == RoleOrbiter:
			dst.Glow(x, y, r+glowOrbitRadius*scale, r+glowOrbitRadius*scale, c.Scale(0.5), BlendAdd)
		case p.Opacity > 0.8 && e.rz > 0:
			g := r + glowBrightRadius*scale*breathe
			dst.Glow(x, y, g, g, c.Scale(0.5), BlendAdd)
		}
		dst.FillCircle(x, y, r, c, BlendAdd)
	}

	t.drawStar(dst, cx, base, breathe)
}

// drawStar paints the apex star. It sits at rz = 0, so its scale is fixed.
func (t *TreeEngine) drawStar(dst Surface, cx, base, breathe float64) {
	fov := t.cfg.FocalLength
	s := fov / (fov + fov)
	y := -TreeHeight(t.h)*s + base
	if t.h <= 0 {
		_, h := dst.Size()
		y = -TreeHeight(h)*s + base
	}

	outer, inner := starOuter*s, starInner*s
	rot := math.Pi * 1.5
	step := math.Pi / starSpikes
	for i := 0; i < starSpikes; i++ {
		t.star[2*i] = Vec2{cx + math.Cos(rot)*outer, y + math.Sin(rot)*outer}
		rot += step
		t.star[2*i+1] = Vec2{cx + math.Cos(rot)*inner, y + math.Sin(rot)*inner}
		rot += step
	}

	blur := outer + starGlowBlur*breathe
	dst.Glow(cx, y, blur, blur, t.pal.StarGlow.WithAlpha(0.8), BlendAdd)
	dst.FillPolygon(t.star[:], StarFill, BlendNormal)
}
