package yuletide

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is wrapped by every Config.Validate failure.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds the tunables shared by every engine. Use DefaultConfig and
// override individual fields; the zero value is not usable.
type Config struct {
	// Particles is the tree population size, split across the five roles.
	Particles int
	// FocalLength is the perspective constant in scale = f / (f + z + f).
	FocalLength float64
	// RotationSpeed is the per-frame rotation increment in radians.
	RotationSpeed float64
	// FastFactor multiplies RotationSpeed while fast rotation is on.
	FastFactor float64
	// TimeStep is how far the tree's animation clock advances per frame.
	TimeStep float64

	Snowflakes int
	Stars      int
	FogBlobs   int

	// TwinkleLow and TwinkleHigh bound background star opacity.
	TwinkleLow  float64
	TwinkleHigh float64

	// FireworkDelay is the minimum number of frames between launches;
	// FireworkChance the per-frame launch probability once it has elapsed.
	FireworkDelay  int
	FireworkChance float64

	MeteorDelay  int
	MeteorChance float64

	// SantaDelay is the idle countdown in frames between flybys.
	SantaDelay int

	// Seed feeds the scene's random source. Zero derives one from the clock.
	Seed uint64
}

// DefaultConfig returns the reference tuning.
func DefaultConfig() Config {
	return Config{
		Particles:      5500,
		FocalLength:    400,
		RotationSpeed:  0.002,
		FastFactor:     6,
		TimeStep:       0.01,
		Snowflakes:     150,
		Stars:          70,
		FogBlobs:       20,
		TwinkleLow:     0.2,
		TwinkleHigh:    1.0,
		FireworkDelay:  80,
		FireworkChance: 0.015,
		MeteorDelay:    300,
		MeteorChance:   0.01,
		SantaDelay:     1500,
	}
}

// Validate reports the first out-of-range field.
func (c Config) Validate() error {
	switch {
	case c.Particles < 0:
		return fmt.Errorf("particles %d: %w", c.Particles, ErrInvalidConfig)
	case c.FocalLength <= 0:
		return fmt.Errorf("focal length %v must be positive: %w", c.FocalLength, ErrInvalidConfig)
	case c.FastFactor < 1:
		return fmt.Errorf("fast factor %v below 1: %w", c.FastFactor, ErrInvalidConfig)
	case c.Snowflakes < 0 || c.Stars < 0 || c.FogBlobs < 0:
		return fmt.Errorf("negative pool size: %w", ErrInvalidConfig)
	case c.TwinkleLow < 0 || c.TwinkleHigh > 1 || c.TwinkleLow >= c.TwinkleHigh:
		return fmt.Errorf("twinkle bounds [%v, %v]: %w", c.TwinkleLow, c.TwinkleHigh, ErrInvalidConfig)
	case !probability(c.FireworkChance) || !probability(c.MeteorChance):
		return fmt.Errorf("spawn chance outside [0, 1]: %w", ErrInvalidConfig)
	case c.FireworkDelay < 0 || c.MeteorDelay < 0 || c.SantaDelay < 0:
		return fmt.Errorf("negative delay: %w", ErrInvalidConfig)
	}
	return nil
}

func probability(p float64) bool {
	return p >= 0 && p <= 1
}
