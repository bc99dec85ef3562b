// Package jingle synthesizes the scene's background tune and plays it
// through the system speaker.
package jingle

import (
	"math"
	"time"

	"github.com/gopxl/beep"
)

// Note is one melody step. A zero Freq is a rest.
type Note struct {
	Freq  float64
	Beats float64
}

const (
	noteE4 = 329.63
	noteF4 = 349.23
	noteG4 = 392.00
	noteC4 = 261.63
	noteD4 = 293.66
	noteA4 = 440.00
	noteB4 = 493.88
	noteC5 = 523.25
)

// JingleBells is the chorus, two phrases, looped by Melody.
var JingleBells = []Note{
	{noteE4, 1}, {noteE4, 1}, {noteE4, 2},
	{noteE4, 1}, {noteE4, 1}, {noteE4, 2},
	{noteE4, 1}, {noteG4, 1}, {noteC4, 1.5}, {noteD4, 0.5},
	{noteE4, 4},
	{noteF4, 1}, {noteF4, 1}, {noteF4, 1.5}, {noteF4, 0.5},
	{noteF4, 1}, {noteE4, 1}, {noteE4, 1}, {noteE4, 0.5}, {noteE4, 0.5},
	{noteE4, 1}, {noteD4, 1}, {noteD4, 1}, {noteE4, 1},
	{noteD4, 2}, {noteG4, 2},

	{noteE4, 1}, {noteE4, 1}, {noteE4, 2},
	{noteE4, 1}, {noteE4, 1}, {noteE4, 2},
	{noteE4, 1}, {noteG4, 1}, {noteC4, 1.5}, {noteD4, 0.5},
	{noteE4, 4},
	{noteF4, 1}, {noteF4, 1}, {noteF4, 1.5}, {noteF4, 0.5},
	{noteF4, 1}, {noteE4, 1}, {noteE4, 1}, {noteE4, 0.5}, {noteE4, 0.5},
	{noteG4, 1}, {noteG4, 1}, {noteF4, 1}, {noteD4, 1},
	{noteC4, 3}, {0, 1},
}

// Bells is a short arpeggio used for the wish chime.
var Bells = []Note{
	{noteC5, 0.5}, {noteB4, 0.5}, {noteA4, 0.5}, {noteG4, 1.5},
}

const (
	attack   = 10 * time.Millisecond
	release  = 60 * time.Millisecond
	volume   = 0.18
	overtone = 0.25
)

// Melody streams a note sequence as a soft bell tone. When loop is set the
// sequence repeats forever; otherwise the stream drains after the last note.
type Melody struct {
	sr    beep.SampleRate
	notes []Note
	beat  int
	loop  bool

	idx   int
	pos   int
	span  int
	phase float64

	attack  int
	release int
}

// NewMelody returns a generator for notes at bpm beats per minute.
func NewMelody(sr beep.SampleRate, notes []Note, bpm float64, loop bool) *Melody {
	if bpm <= 0 {
		bpm = 120
	}
	m := &Melody{
		sr:      sr,
		notes:   notes,
		beat:    sr.N(time.Duration(float64(time.Minute) / bpm)),
		loop:    loop,
		attack:  sr.N(attack),
		release: sr.N(release),
	}
	if len(notes) > 0 {
		m.span = m.noteSamples(0)
	}
	return m
}

func (m *Melody) noteSamples(i int) int {
	n := int(float64(m.beat) * m.notes[i].Beats)
	if n < 1 {
		n = 1
	}
	return n
}

// Stream implements beep.Streamer.
func (m *Melody) Stream(samples [][2]float64) (n int, ok bool) {
	if len(m.notes) == 0 {
		return 0, false
	}
	for i := range samples {
		if m.pos >= m.span {
			m.idx++
			if m.idx >= len(m.notes) {
				if !m.loop {
					return i, i > 0
				}
				m.idx = 0
			}
			m.pos = 0
			m.phase = 0
			m.span = m.noteSamples(m.idx)
		}

		note := m.notes[m.idx]
		var val float64
		if note.Freq > 0 {
			fundamental := math.Sin(2 * math.Pi * m.phase)
			second := math.Sin(4 * math.Pi * m.phase)
			val = (fundamental + overtone*second) / (1 + overtone)
			val *= m.envelope() * volume
			m.phase += note.Freq / float64(m.sr)
			m.phase -= math.Floor(m.phase)
		}

		samples[i][0] = val
		samples[i][1] = val
		m.pos++
	}
	return len(samples), true
}

// envelope shapes the current note: a short linear attack, an exponential
// bell decay, and a linear release into the next note.
func (m *Melody) envelope() float64 {
	env := math.Exp(-3 * float64(m.pos) / float64(m.span))
	if m.pos < m.attack {
		env *= float64(m.pos) / float64(m.attack)
	}
	if left := m.span - m.pos; left < m.release {
		env *= float64(left) / float64(m.release)
	}
	return env
}

// Err implements beep.Streamer.
func (m *Melody) Err() error { return nil }

// Len returns the length of one pass through the sequence in samples.
func (m *Melody) Len() int {
	total := 0
	for i := range m.notes {
		total += m.noteSamples(i)
	}
	return total
}
