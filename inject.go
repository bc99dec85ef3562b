package yuletide

// InjectMove queues a synthetic pointer move at screen coordinates. One
// queued move is consumed per frame and feeds the cursor dust exactly as
// real pointer motion does.
func (s *Scene) InjectMove(x, y float64) {
	s.injectQueue = append(s.injectQueue, Vec2{x, y})
}

// InjectSweep queues a straight pointer path from (fromX, fromY) to
// (toX, toY) spread over frames frames. Minimum frames is 2.
func (s *Scene) InjectSweep(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	for i := 0; i < frames; i++ {
		t := float64(i) / float64(frames-1)
		s.InjectMove(lerp(fromX, toX, t), lerp(fromY, toY, t))
	}
}

// Pending returns the number of queued synthetic moves.
func (s *Scene) Pending() int { return len(s.injectQueue) }

// processInjected pops one queued move and reports whether one was consumed.
func (s *Scene) processInjected() bool {
	if len(s.injectQueue) == 0 {
		return false
	}
	p := s.injectQueue[0]
	copy(s.injectQueue, s.injectQueue[1:])
	s.injectQueue = s.injectQueue[:len(s.injectQueue)-1]
	s.Dust.Move(p.X, p.Y)
	return true
}
