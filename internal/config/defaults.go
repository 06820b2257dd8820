package config

import (
	_ "embed"
)

//go:embed defaults/runner.yaml
var defaultRunnerYAML []byte

// DefaultRunnerConfig returns the hardcoded runner tuning. It matches the
// embedded defaults/runner.yaml and is used if that fails to parse.
func DefaultRunnerConfig() RunnerConfig {
	return RunnerConfig{
		Player: PlayerConfig{
			LaneWidth:       2.5,
			LaneCount:       3,
			LaneChangeSpeed: 12,
			JumpForce:       12,
			Gravity:         35,
			SlideDurationMS: 600,
			NormalHeight:    1.5,
			SlideHeight:     0.5,
			Width:           0.8,
			Depth:           0.8,
			HitFlashMS:      200,
		},
		World: WorldConfig{
			InitialSpeed:  15,
			MaxSpeed:      40,
			ChunkLength:   50,
			VisibleChunks: 3,
			FloorWidth:    10,
			MaxDelta:      0.1,
		},
		Obstacles: ObstaclesConfig{
			Spawner:      SpawnerConfig{Lookahead: 100, ReleaseMargin: 10, PoolSize: 30},
			MinSpacing:   8,
			MaxSpacing:   20,
			SafeDistance: 30,
			Types: map[string]ObstacleType{
				"plain":          {Width: 1, Height: 1.5, Depth: 1, SpawnChance: 0.35},
				"requires_jump":  {Width: 2, Height: 0.5, Depth: 2, SpawnChance: 0.25},
				"slow_zone":      {Width: 2.5, Height: 3, Depth: 2, SpawnChance: 0.15, SlowFactor: 0.5, SlowDurationMS: 1000},
				"requires_slide": {Width: 3, Height: 2.5, Depth: 0.5, MinHeight: 1, SpawnChance: 0.2},
			},
		},
		Collectibles: CollectiblesConfig{
			Spawner: SpawnerConfig{Lookahead: 40, ReleaseMargin: 10, PoolSize: 50},
			Spacing: 5,
			Height:  1,
			Types: map[string]CollectibleType{
				"coffee": {Width: 0.5, Height: 0.8, Depth: 0.5, SpawnChance: 0.3, Boost: 1, DurationMS: 5000},
				"shard":  {Width: 0.6, Height: 0.6, Depth: 0.6, SpawnChance: 0.15, Value: 1, MinCount: 1, MaxCount: 3, Stagger: 2},
			},
		},
		Scoring: ScoringConfig{
			DistanceMultiplier: 10,
			BaseMultiplier:     1,
			MaxMultiplier:      5,
			Milestones:         []int{1000, 5000, 10000, 25000, 50000},
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "time",
				MaxAt: 166.67,
			},
		},
	}
}

// DefaultRunnerYAML returns the embedded default YAML.
func DefaultRunnerYAML() []byte {
	return defaultRunnerYAML
}
