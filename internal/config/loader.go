package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const runnerFile = "runner.yaml"

// LoadRunner loads the runner tuning.
// Search order: customPath -> ~/.trenches/configs/runner.yaml -> ./configs/runner.yaml -> embedded default
func LoadRunner(customPath string) (RunnerConfig, error) {
	// An explicit path must exist and parse
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return RunnerConfig{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := parseRunner(data)
		if err != nil {
			return RunnerConfig{}, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	if userCfgPath := userConfigPath(runnerFile); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := parseRunner(data); err == nil {
				return cfg, nil
			}
		}
	}

	if data, err := os.ReadFile(filepath.Join("configs", runnerFile)); err == nil {
		if cfg, err := parseRunner(data); err == nil {
			return cfg, nil
		}
	}

	cfg, err := parseRunner(defaultRunnerYAML)
	if err != nil {
		return DefaultRunnerConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// parseRunner overlays YAML onto the hardcoded defaults, so partial files
// only need the keys they change.
func parseRunner(data []byte) (RunnerConfig, error) {
	cfg := DefaultRunnerConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return RunnerConfig{}, err
	}
	if err := cfg.Validate(); err != nil {
		return RunnerConfig{}, err
	}
	return cfg, nil
}

// Validate rejects tunings the simulation cannot run with.
func (c RunnerConfig) Validate() error {
	switch {
	case c.Player.LaneCount < 1:
		return fmt.Errorf("player.lane_count must be at least 1")
	case c.Player.Gravity <= 0:
		return fmt.Errorf("player.gravity must be positive")
	case c.World.ChunkLength <= 0:
		return fmt.Errorf("world.chunk_length must be positive")
	case c.World.VisibleChunks < 1:
		return fmt.Errorf("world.visible_chunks must be at least 1")
	case c.World.MaxSpeed < c.World.InitialSpeed:
		return fmt.Errorf("world.max_speed must not be below initial_speed")
	case c.Obstacles.MinSpacing <= 0 || c.Obstacles.MaxSpacing < c.Obstacles.MinSpacing:
		return fmt.Errorf("obstacles spacing must satisfy 0 < min_spacing <= max_spacing")
	case c.Collectibles.Spacing <= 0:
		return fmt.Errorf("collectibles.spacing must be positive")
	case c.Scoring.BaseMultiplier < 1 || c.Scoring.MaxMultiplier < c.Scoring.BaseMultiplier:
		return fmt.Errorf("scoring multipliers must satisfy 1 <= base <= max")
	}
	return nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".trenches", "configs", filename)
}

// UserRunnerConfigPath returns ~/.trenches/configs/runner.yaml, or empty if
// home is unavailable.
func UserRunnerConfigPath() string {
	return userConfigPath(runnerFile)
}
