package config

import "math"

// DifficultyManager derives run-dependent parameters from elapsed run time.
// Paused time never reaches it, so progression only advances while running.
type DifficultyManager struct {
	cfg          DifficultyConfig
	initialLevel float64
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:          cfg,
		initialLevel: clampF(cfg.InitialLevel, 0.0, 1.0),
	}
}

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != "none"
}

// Level returns the current difficulty level (0.0 to 1.0) after elapsed
// seconds of running.
func (d *DifficultyManager) Level(elapsed float64) float64 {
	if !d.IsEnabled() || d.cfg.Progression.Type != "time" {
		return d.initialLevel
	}

	maxAt := d.cfg.Progression.MaxAt
	if maxAt <= 0 {
		maxAt = 1 // Prevent division by zero
	}
	progress := clampF(elapsed/maxAt, 0.0, 1.0)

	// Interpolate from initial level to 1.0
	return d.initialLevel + progress*(1.0-d.initialLevel)
}

// Speed returns the world speed, rising linearly from initial to max.
func (d *DifficultyManager) Speed(initial, max, elapsed float64) float64 {
	return initial + d.Level(elapsed)*(max-initial)
}

// Spacing returns the obstacle cursor step, shrinking from widest to
// narrowest as difficulty rises.
func (d *DifficultyManager) Spacing(widest, narrowest, elapsed float64) float64 {
	return widest - d.Level(elapsed)*(widest-narrowest)
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
