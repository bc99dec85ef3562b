package yuletide

const (
	dustPerMove   = 3
	dustDecay     = 0.02
	dustShrink    = 0.95
	dustGlow      = 10
	dustMaxMotes  = 4096
	dustLightness = 0.7
)

var (
	dustSize = Range{Min: 1, Max: 3}
	dustHue  = Range{Min: 20, Max: 80} // orange through yellow
)

// CursorDust leaves a short-lived trail of warm sparks behind the pointer.
type CursorDust struct {
	rng   Rand
	motes motePool
}

// NewCursorDust returns an empty trail.
func NewCursorDust(rng Rand) *CursorDust {
	return &CursorDust{rng: rng, motes: newMotePool(dustMaxMotes)}
}

// Move spawns a burst of sparks at the pointer position.
func (d *CursorDust) Move(x, y float64) {
	r := d.rng
	for i := 0; i < dustPerMove; i++ {
		d.motes.spawn(mote{
			x:     x,
			y:     y,
			vx:    jitter(r, 1.5),
			vy:    jitter(r, 1.5),
			life:  1,
			size:  dustSize.Random(r),
			color: HSL(dustHue.Random(r), 1, dustLightness),
		})
	}
}

// Count returns the number of live sparks.
func (d *CursorDust) Count() int { return d.motes.Len() }

// Resize is a no-op; sparks live in screen space.
func (d *CursorDust) Resize(w, h int) {}

// Update moves, fades and shrinks every spark, dropping the expired ones.
func (d *CursorDust) Update() {
	d.motes.update(func(m *mote) {
		m.x += m.vx
		m.y += m.vy
		m.life -= dustDecay
		m.size *= dustShrink
	})
}

// Draw paints the trail additively with a soft halo.
func (d *CursorDust) Draw(dst Surface) {
	if dst == nil {
		return
	}
	for _, m := range d.motes.motes {
		c := m.color.WithAlpha(m.life)
		g := m.size + dustGlow
		dst.Glow(m.x, m.y, g, g, c.Scale(0.5), BlendAdd)
		dst.FillCircle(m.x, m.y, m.size, c, BlendAdd)
	}
}
