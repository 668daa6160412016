package capture

import (
	"fmt"

	"fyne.io/fyne/v2"

	"StrokeBoard/internal/state"
)

const (
	DefaultMinDistance = 0.05
	DefaultMinPoints   = 4
	DefaultPoolSize    = 8
)

// Preference keys read by LoadConfig.
const (
	PrefMinDistance = "capture.minDistance"
	PrefMinPoints   = "capture.minPoints"
	PrefPoolSize    = "capture.poolSize"
)

// Config holds the capture settings. It is copied into a StrokeCapture at
// construction and never changes afterwards.
type Config struct {
	// MinDistance is the distance in canvas units a new point must exceed,
	// measured from the last accepted point.
	MinDistance float64
	// MinPoints is the point count a stroke must exceed to be kept.
	MinPoints int
	// PoolSize is the number of stroke buffers.
	PoolSize int
}

func DefaultConfig() Config {
	return Config{
		MinDistance: DefaultMinDistance,
		MinPoints:   DefaultMinPoints,
		PoolSize:    DefaultPoolSize,
	}
}

// LoadConfig reads the settings from application preferences, falling back
// to the defaults for missing keys.
func LoadConfig(prefs fyne.Preferences) Config {
	return Config{
		MinDistance: prefs.FloatWithFallback(PrefMinDistance, DefaultMinDistance),
		MinPoints:   prefs.IntWithFallback(PrefMinPoints, DefaultMinPoints),
		PoolSize:    prefs.IntWithFallback(PrefPoolSize, DefaultPoolSize),
	}
}

func (c Config) Validate() error {
	if c.MinDistance <= 0 {
		return fmt.Errorf("%w: min distance %v must be positive", state.ErrConfig, c.MinDistance)
	}
	if c.MinPoints < 0 {
		return fmt.Errorf("%w: min points %d must not be negative", state.ErrConfig, c.MinPoints)
	}
	if c.PoolSize < 1 {
		return fmt.Errorf("%w: pool size %d, need at least 1", state.ErrConfig, c.PoolSize)
	}
	return nil
}
