package yuletide

// mote is a short-lived transient particle: firework rocket or spark,
// chimney smoke, cursor dust, shooting-star trail. Life counts down to zero;
// a mote is dropped in the same update that takes its life to zero or below.
type mote struct {
	x, y     float64
	vx, vy   float64
	life     float64
	maxLife  float64
	size     float64
	color    Color
	friction float64
	gravity  float64
	// target is the burst altitude of a rocket.
	target float64
}

// motePool is a set of motes. Dead motes are swap-removed, so order is not
// preserved. A positive limit caps the pool and spawns beyond it are
// dropped; a limit of zero lets it grow, with life alone bounding its size.
type motePool struct {
	motes []mote
	limit int
}

func newMotePool(limit int) motePool {
	n := 256
	if limit > 0 {
		n = min(limit, n)
	}
	return motePool{motes: make([]mote, 0, n), limit: limit}
}

// spawn appends m unless the pool is full. It reports whether m was kept.
func (p *motePool) spawn(m mote) bool {
	if m.life <= 0 || (p.limit > 0 && len(p.motes) >= p.limit) {
		return false
	}
	if m.maxLife == 0 {
		m.maxLife = m.life
	}
	p.motes = append(p.motes, m)
	return true
}

// update calls step on every live mote, then removes those whose life has
// run out. step mutates a mote in place.
func (p *motePool) update(step func(m *mote)) {
	i := 0
	for i < len(p.motes) {
		m := &p.motes[i]
		step(m)
		if m.life <= 0 {
			last := len(p.motes) - 1
			p.motes[i] = p.motes[last]
			p.motes = p.motes[:last]
			continue
		}
		i++
	}
}

// Len returns the number of live motes.
func (p *motePool) Len() int {
	return len(p.motes)
}

func (p *motePool) reset() {
	p.motes = p.motes[:0]
}
