package yuletide

import (
	"math"
)

// Role partitions the tree population.
type Role uint8

const (
	RoleFoliage Role = iota // outer surface texture
	RoleRibbon              // spiral garland
	RoleCore                // inner glowing column
	RoleOrbiter             // time-parametrized orbit around the tree
	RoleDust                // slow upward drift, recycled at the top
	roleCount
)

func (r Role) String() string {
	switch r {
	case RoleFoliage:
		return "foliage"
	case RoleRibbon:
		return "ribbon"
	case RoleCore:
		return "core"
	case RoleOrbiter:
		return "orbiter"
	case RoleDust:
		return "dust"
	default:
		return "unknown"
	}
}

const (
	treeHeightRatio = 0.85
	treeMaxHeight   = 900
	baseRadiusRatio = 0.35
	foliageTurns    = 9
	ribbonTurns     = 5
	dustFadeFrames  = 100
)

// Particle is one point of the tree field in synthetic 3D space: y grows
// downward with the tree base at 0 and the apex at -Height.
type Particle struct {
	X, Y, Z float64
	Radius  float64
	Color   Color
	Opacity float64

	TwinkleSpeed float64
	TwinklePhase float64

	Role     Role
	Ornament bool
	// Drift is the upward speed per frame. Only dust moves this way.
	Drift float64

	// Orbit state. Position is recomputed from elapsed time every frame.
	OrbitRadius float64
	OrbitSpeed  float64
	OrbitAnchor float64
	OrbitAngle  float64

	fadeTarget float64
	// fadeAge counts frames since the last respawn, up to dustFadeFrames.
	fadeAge float32
}

// respawn recycles a dust particle in place at the tree base with zero
// opacity. It then fades back toward its original opacity.
func (p *Particle) respawn(r Rand, baseRadius float64) {
	a := randAngle(r)
	d := r.Float64() * baseRadius * 1.5
	p.X = math.Cos(a) * d
	p.Z = math.Sin(a) * d
	p.Y = 0
	p.Opacity = 0
	p.fadeAge = 0
}

// Field is a generated tree population plus the geometry it was built for.
type Field struct {
	Particles  []Particle
	Height     float64
	BaseRadius float64
	Counts     [roleCount]int
}

// RoleCounts splits total into foliage, ribbon, core, orbiter and dust
// shares of 60/15/15/5 percent with the remainder going to dust.
func RoleCounts(total int) [roleCount]int {
	var c [roleCount]int
	if total <= 0 {
		return c
	}
	c[RoleFoliage] = int(math.Floor(float64(total) * 0.60))
	c[RoleRibbon] = int(math.Floor(float64(total) * 0.15))
	c[RoleCore] = int(math.Floor(float64(total) * 0.15))
	c[RoleOrbiter] = int(math.Floor(float64(total) * 0.05))
	c[RoleDust] = total - c[RoleFoliage] - c[RoleRibbon] - c[RoleCore] - c[RoleOrbiter]
	return c
}

// TreeHeight returns the tree height for a viewport height.
func TreeHeight(viewportH int) float64 {
	return math.Min(float64(viewportH)*treeHeightRatio, treeMaxHeight)
}

// GenerateField builds a complete population for the viewport and theme.
// buf is reused as backing storage when large enough; its previous contents
// are fully overwritten. A degenerate viewport yields an empty field.
func GenerateField(buf []Particle, w, h int, mode Mode, total int, r Rand) Field {
	if w <= 0 || h <= 0 || total <= 0 {
		return Field{Particles: buf[:0]}
	}
	pal := mode.Palette()
	f := Field{
		Height: TreeHeight(h),
		Counts: RoleCounts(total),
	}
	f.BaseRadius = f.Height * baseRadiusRatio

	if cap(buf) < total {
		buf = make([]Particle, total)
	}
	ps := buf[:total]
	i := 0
	i = f.foliage(ps, i, pal, r)
	i = f.ribbon(ps, i, pal, r)
	i = f.core(ps, i, pal, r)
	i = f.orbiters(ps, i, pal, r)
	f.dust(ps, i, pal, r)
	f.Particles = ps
	return f
}

func (f *Field) foliage(ps []Particle, at int, pal Palette, r Rand) int {
	n := f.Counts[RoleFoliage]
	for i := 0; i < n; i++ {
		p := float64(i) / float64(n)
		hn := math.Pow(p, 0.9)
		radius := hn * f.BaseRadius
		a := p*2*math.Pi*foliageTurns + r.Float64()*0.5
		spread := jitter(r, radius*0.3+10)
		sin, cos := math.Sincos(a)

		pt := Particle{
			X:            cos * (radius + spread),
			Y:            -f.Height + hn*f.Height,
			Z:            sin * (radius + spread),
			Role:         RoleFoliage,
			Color:        pick(r, pal.Foliage),
			Radius:       between(r, 0.5, 2.0),
			Opacity:      between(r, 0.3, 0.8),
			TwinkleSpeed: between(r, 0.005, 0.025),
			TwinklePhase: randAngle(r),
		}
		if chance(r, pal.OrnamentChance) {
			pt.Ornament = true
			pt.Radius = between(r, 2.0, 4.5)
			pt.Opacity = 1
			pt.Color = pal.Ornament
		}
		ps[at] = pt
		at++
	}
	return at
}

func (f *Field) ribbon(ps []Particle, at int, pal Palette, r Rand) int {
	n := f.Counts[RoleRibbon]
	for i := 0; i < n; i++ {
		p := float64(i) / float64(n)
		radius := p * f.BaseRadius * 1.05
		sin, cos := math.Sincos(p * 2 * math.Pi * ribbonTurns)
		scatter := jitter(r, 8)
		ps[at] = Particle{
			X:            cos * (radius + scatter),
			Y:            -f.Height + p*f.Height,
			Z:            sin * (radius + scatter),
			Role:         RoleRibbon,
			Color:        pal.Ribbon,
			Radius:       between(r, 0.8, 2.0),
			Opacity:      0.9,
			TwinkleSpeed: 0.05,
			TwinklePhase: randAngle(r),
		}
		at++
	}
	return at
}

func (f *Field) core(ps []Particle, at int, pal Palette, r Rand) int {
	n := f.Counts[RoleCore]
	coreHeight := f.Height * 0.9
	coreRadius := f.BaseRadius * 0.12
	for i := 0; i < n; i++ {
		p := float64(i) / float64(n)
		radius := coreRadius * (0.6 + 0.4*p) * math.Sqrt(r.Float64())
		sin, cos := math.Sincos(randAngle(r))
		ps[at] = Particle{
			X:            cos * radius,
			Y:            -coreHeight + p*coreHeight,
			Z:            sin * radius,
			Role:         RoleCore,
			Color:        pick(r, pal.Trunk),
			Radius:       between(r, 1.0, 2.5),
			Opacity:      0.8,
			TwinkleSpeed: 0.01,
			TwinklePhase: r.Float64() * math.Pi,
		}
		at++
	}
	return at
}

func (f *Field) orbiters(ps []Particle, at int, pal Palette, r Rand) int {
	n := f.Counts[RoleOrbiter]
	for i := 0; i < n; i++ {
		anchor := -r.Float64() * f.Height
		ps[at] = Particle{
			Y:            anchor,
			Role:         RoleOrbiter,
			Color:        pal.Orbiter,
			Radius:       between(r, 1.0, 2.5),
			Opacity:      between(r, 0.5, 1.0),
			TwinkleSpeed: 0.03,
			TwinklePhase: r.Float64() * math.Pi,
			OrbitRadius:  f.BaseRadius * between(r, 1.2, 2.0),
			OrbitAngle:   randAngle(r),
			OrbitSpeed:   between(r, 0.005, 0.015) * sign(r),
			OrbitAnchor:  anchor,
		}
		at++
	}
	return at
}

func (f *Field) dust(ps []Particle, at int, pal Palette, r Rand) int {
	n := f.Counts[RoleDust]
	for i := 0; i < n; i++ {
		sin, cos := math.Sincos(randAngle(r))
		d := r.Float64() * f.BaseRadius * 1.5
		opacity := r.Float64() * 0.5
		ps[at] = Particle{
			X:            cos * d,
			Y:            -r.Float64() * f.Height * 0.5,
			Z:            sin * d,
			Role:         RoleDust,
			Color:        pal.Foliage[0],
			Radius:       r.Float64(),
			Opacity:      opacity,
			TwinkleSpeed: 0.01,
			TwinklePhase: r.Float64() * math.Pi,
			Drift:        between(r, 0.2, 0.7),
			fadeTarget:   opacity,
			fadeAge:      dustFadeFrames,
		}
		at++
	}
	return at
}
