package yuletide

import (
	"time"

	"go.uber.org/zap"
)

// debugEvery is the frame interval between debug stat lines.
const debugEvery = 60

// debugStats holds per-frame timing. Only populated in debug mode.
type debugStats struct {
	updateTime  time.Duration
	drawTime    time.Duration
	layersDrawn int
}

// debugLog emits the latest stats every debugEvery frames.
func (s *Scheduler) debugLog() {
	if !s.debug || s.frames%debugEvery != 0 {
		return
	}
	fields := []zap.Field{
		zap.Uint64("frame", s.frames),
		zap.Duration("update", s.stats.updateTime),
		zap.Duration("draw", s.stats.drawTime),
		zap.Int("layers", s.stats.layersDrawn),
	}
	for _, l := range s.layers {
		if c, ok := l.engine.(interface{ Count() int }); ok {
			fields = append(fields, zap.Int(l.name, c.Count()))
		}
	}
	s.log.Debug("frame stats", fields...)
}
