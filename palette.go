package yuletide

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownMode is returned by ParseMode for names outside the theme set.
var ErrUnknownMode = errors.New("unknown mode")

// Mode selects a color theme. Changing it requires every theme-dependent
// pool to be rebuilt.
type Mode uint8

const (
	ModeClassic Mode = iota // warm gold
	ModeFrozen              // icy blue and white
	ModeNeon                // saturated RGB
	modeCount
)

// Modes lists every theme in cycle order.
func Modes() []Mode {
	return []Mode{ModeClassic, ModeFrozen, ModeNeon}
}

// String returns the canonical upper-case theme name.
func (m Mode) String() string {
	switch m {
	case ModeClassic:
		return "CLASSIC"
	case ModeFrozen:
		return "FROZEN"
	case ModeNeon:
		return "NEON"
	default:
		return fmt.Sprintf("Mode(%d)", uint8(m))
	}
}

// Next returns the theme that follows m in cycle order.
func (m Mode) Next() Mode {
	return (m + 1) % modeCount
}

// Palette returns the color table for m. Unknown modes fall back to classic.
func (m Mode) Palette() Palette {
	if m >= modeCount {
		return palettes[ModeClassic]
	}
	return palettes[m]
}

// ParseMode resolves a theme name case-insensitively.
func ParseMode(s string) (Mode, error) {
	for _, m := range Modes() {
		if strings.EqualFold(s, m.String()) {
			return m, nil
		}
	}
	return ModeClassic, fmt.Errorf("parse mode %q: %w", s, ErrUnknownMode)
}

// Palette is the static color table for one theme.
type Palette struct {
	Foliage []Color // tree body, drawn uniformly
	Trunk   []Color // inner glowing core

	Ornament       Color
	OrnamentChance float64
	Ribbon         Color
	Orbiter        Color

	StarGlow Color // apex star halo
	Floor    Color // flattened floor glow under the tree

	Aurora  [2]Color
	Fog     Color
	Window  Color
	Moon    Color
	SkyTop  Color
	SkyBase Color
}

var palettes = [modeCount]Palette{
	ModeClassic: {
		Foliage:        hexes("#FFD700", "#FDB813", "#FFF8DC", "#FFE4B5"),
		Trunk:          hexes("#FF8F00", "#FF6F00", "#FFCA28", "#FFA000"),
		Ornament:       MustHex("#D32F2F"),
		OrnamentChance: 0.06,
		Ribbon:         MustHex("#FFFACD"),
		Orbiter:        MustHex("#FFD700"),
		StarGlow:       MustHex("#FFA000"),
		Floor:          Color{1, 215.0 / 255, 0, 0.18},
		Aurora:         [2]Color{{16.0 / 255, 80.0 / 255, 40.0 / 255, 0.25}, {80.0 / 255, 20.0 / 255, 20.0 / 255, 0.15}},
		Fog:            Color{100.0 / 255, 100.0 / 255, 150.0 / 255, 1},
		Window:         MustHex("#FFD54F"),
		Moon:           MustHex("#FFE082"),
		SkyTop:         MustHex("#1A1A2E"),
		SkyBase:        MustHex("#0F0F1A"),
	},
	ModeFrozen: {
		Foliage:        hexes("#E0F7FA", "#B2EBF2", "#FFFFFF", "#80DEEA"),
		Trunk:          hexes("#455A64", "#607D8B", "#78909C", "#90A4AE"),
		Ornament:       MustHex("#7B1FA2"),
		OrnamentChance: 0.04,
		Ribbon:         MustHex("#E0F7FA"),
		Orbiter:        MustHex("#B2EBF2"),
		StarGlow:       MustHex("#00FFFF"),
		Floor:          Color{0, 1, 1, 0.15},
		Aurora:         [2]Color{{10.0 / 255, 30.0 / 255, 100.0 / 255, 0.3}, {50.0 / 255, 200.0 / 255, 1, 0.1}},
		Fog:            Color{200.0 / 255, 250.0 / 255, 1, 1},
		Window:         MustHex("#E0F7FA"),
		Moon:           MustHex("#E0F7FA"),
		SkyTop:         MustHex("#0F172A"),
		SkyBase:        MustHex("#000000"),
	},
	ModeNeon: {
		Foliage:        hexes("#FF00FF", "#00FFFF", "#00FF00", "#FFFF00"),
		Trunk:          hexes("#212121", "#424242", "#303030", "#000000"),
		Ornament:       MustHex("#FFFFFF"),
		OrnamentChance: 0.04,
		Ribbon:         MustHex("#FF00FF"),
		Orbiter:        MustHex("#00FFFF"),
		StarGlow:       MustHex("#FF00FF"),
		Floor:          Color{1, 0, 1, 0.15},
		Aurora:         [2]Color{{100.0 / 255, 0, 150.0 / 255, 0.2}, {0, 200.0 / 255, 200.0 / 255, 0.15}},
		Fog:            Color{100.0 / 255, 0, 100.0 / 255, 1},
		Window:         MustHex("#FF00FF"),
		Moon:           MustHex("#E040FB"),
		SkyTop:         MustHex("#3B0764"),
		SkyBase:        MustHex("#000000"),
	},
}

// StarFill is the apex star body color, shared by every theme.
var StarFill = MustHex("#FFFBE6")

// FireworkColors is the shared firework shell palette.
var FireworkColors = hexes("#FF3F81", "#FFD700", "#00E5FF", "#7C4DFF", "#69F0AE", "#FFAB40", "#FFFFFF")

func hexes(ss ...string) []Color {
	out := make([]Color, len(ss))
	for i, s := range ss {
		out[i] = MustHex(s)
	}
	return out
}
