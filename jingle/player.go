package jingle

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"go.uber.org/zap"
)

// SampleRate is the speaker rate the player opens with.
const SampleRate = beep.SampleRate(44100)

// Tempo is the chorus speed in beats per minute.
const Tempo = 132

var errSpeakerUnavailable = errors.New("jingle: speaker unavailable")

// Player loops the tune through the speaker with pause and resume. The
// speaker is opened lazily the first time playback is switched on, so a
// silent session never touches the audio device.
type Player struct {
	mu          sync.Mutex
	log         *zap.Logger
	mixer       *beep.Mixer
	music       *beep.Ctrl
	initialized bool
	failed      bool
}

// NewPlayer returns a stopped player. A nil logger disables logging.
func NewPlayer(log *zap.Logger) *Player {
	if log == nil {
		log = zap.NewNop()
	}
	return &Player{
		log:   log,
		mixer: &beep.Mixer{},
		music: &beep.Ctrl{Streamer: NewMelody(SampleRate, JingleBells, Tempo, true), Paused: true},
	}
}

// Mixer exposes the player's mix bus.
func (p *Player) Mixer() *beep.Mixer { return p.mixer }

func (p *Player) init() error {
	if p.initialized {
		return nil
	}
	if p.failed {
		return errSpeakerUnavailable
	}
	if err := speaker.Init(SampleRate, SampleRate.N(100*time.Millisecond)); err != nil {
		p.failed = true
		return fmt.Errorf("jingle: init speaker: %w", err)
	}
	p.mixer.Add(p.music)
	speaker.Play(p.mixer)
	p.initialized = true
	p.log.Debug("speaker ready", zap.Int("sample_rate", int(SampleRate)))
	return nil
}

// SetPlaying starts or pauses the tune. A speaker that cannot be opened is
// logged once and the player stays silent.
func (p *Player) SetPlaying(on bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if on {
		if err := p.init(); err != nil {
			if !errors.Is(err, errSpeakerUnavailable) {
				p.log.Warn("music disabled", zap.Error(err))
			}
			return
		}
	}
	if !p.initialized {
		return
	}
	speaker.Lock()
	p.music.Paused = !on
	speaker.Unlock()
}

// Toggle flips playback and reports whether the tune is now playing.
func (p *Player) Toggle() bool {
	p.SetPlaying(!p.Playing())
	return p.Playing()
}

// Playing reports whether the tune is audible.
func (p *Player) Playing() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.initialized {
		return false
	}
	speaker.Lock()
	defer speaker.Unlock()
	return !p.music.Paused
}

// Chime plays the short bell arpeggio over whatever is playing. It is a
// no-op until the speaker has been opened.
func (p *Player) Chime() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.initialized {
		return
	}
	chime := NewMelody(SampleRate, Bells, Tempo*2, false)
	speaker.Lock()
	p.mixer.Add(beep.Seq(beep.Take(SampleRate.N(20*time.Millisecond), beep.Silence(-1)), chime))
	speaker.Unlock()
}

// Close pauses playback and clears the mix bus.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.initialized {
		return
	}
	speaker.Lock()
	p.music.Paused = true
	p.mixer.Clear()
	speaker.Unlock()
	p.initialized = false
}
