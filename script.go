package yuletide

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrEmptyScript is returned by LoadScript for a script with no steps.
var ErrEmptyScript = errors.New("script has no steps")

// scriptStep is a single action in a scene script.
type scriptStep struct {
	Action string  `json:"action"`
	Label  string  `json:"label,omitempty"`
	Text   string  `json:"text,omitempty"`
	Mode   string  `json:"mode,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	ToX    float64 `json:"toX,omitempty"`
	ToY    float64 `json:"toY,omitempty"`
	Frames int     `json:"frames,omitempty"`
}

type scriptFile struct {
	Steps []scriptStep `json:"steps"`
}

// Script replays a sequence of UI actions and screenshots, one step per
// frame, for unattended captures. Attach it with Scene.SetScript.
type Script struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool
}

// LoadScript parses a JSON script. Unknown actions and theme names are
// rejected up front.
func LoadScript(data []byte) (*Script, error) {
	var f scriptFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	if len(f.Steps) == 0 {
		return nil, fmt.Errorf("parse script: %w", ErrEmptyScript)
	}
	for i, st := range f.Steps {
		switch st.Action {
		case "wait", "music", "prompt", "move", "sweep", "screenshot":
		case "wish":
			if st.Text == "" {
				return nil, fmt.Errorf("parse script: step %d: wish without text", i)
			}
		case "theme":
			if st.Mode == "" {
				continue
			}
			if _, err := ParseMode(st.Mode); err != nil {
				return nil, fmt.Errorf("parse script: step %d: %w", i, err)
			}
		default:
			return nil, fmt.Errorf("parse script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &Script{steps: f.Steps}, nil
}

// SetScript attaches a script. Its steps run from Scene.Update.
func (s *Scene) SetScript(sc *Script) {
	s.script = sc
}

// Done reports whether every step has run.
func (r *Script) Done() bool {
	return r.done
}

// step advances the script by one frame.
func (r *Script) step(s *Scene) {
	if r.done {
		return
	}
	// Let queued pointer motion drain first.
	if s.Pending() > 0 {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1
		}
	case "theme":
		if m, err := ParseMode(st.Mode); err == nil && st.Mode != "" {
			s.SetMode(m)
		} else {
			s.CycleMode()
		}
	case "music":
		s.ToggleMusic()
	case "prompt":
		s.ToggleWishPrompt()
	case "wish":
		s.AddWish(st.Text)
		s.prompt = true
		s.ToggleWishPrompt()
	case "move":
		s.InjectMove(st.X, st.Y)
	case "sweep":
		s.InjectSweep(st.X, st.Y, st.ToX, st.ToY, st.Frames)
	case "screenshot":
		s.Screenshot(st.Label)
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && s.Pending() == 0 {
		r.done = true
	}
}
