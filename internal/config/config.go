// Package config provides YAML-based tuning for the runner, difficulty
// progression and the environment-driven leaderboard server settings.
package config

// RunnerConfig contains all tuning for the endless runner.
type RunnerConfig struct {
	Player       PlayerConfig       `yaml:"player"`
	World        WorldConfig        `yaml:"world"`
	Obstacles    ObstaclesConfig    `yaml:"obstacles"`
	Collectibles CollectiblesConfig `yaml:"collectibles"`
	Scoring      ScoringConfig      `yaml:"scoring"`
	Difficulty   DifficultyConfig   `yaml:"difficulty"`
}

// PlayerConfig defines lanes, kinematics and the player's collision box.
type PlayerConfig struct {
	LaneWidth       float64 `yaml:"lane_width"`
	LaneCount       int     `yaml:"lane_count"`
	LaneChangeSpeed float64 `yaml:"lane_change_speed"` // units per second toward the target lane
	JumpForce       float64 `yaml:"jump_force"`
	Gravity         float64 `yaml:"gravity"`
	SlideDurationMS int     `yaml:"slide_duration_ms"`
	NormalHeight    float64 `yaml:"normal_height"`
	SlideHeight     float64 `yaml:"slide_height"`
	Width           float64 `yaml:"width"`
	Depth           float64 `yaml:"depth"`
	HitFlashMS      int     `yaml:"hit_flash_ms"`
}

// WorldConfig defines scrolling speed and chunk streaming.
type WorldConfig struct {
	InitialSpeed  float64 `yaml:"initial_speed"`
	MaxSpeed      float64 `yaml:"max_speed"`
	ChunkLength   float64 `yaml:"chunk_length"`
	VisibleChunks int     `yaml:"visible_chunks"`
	FloorWidth    float64 `yaml:"floor_width"`
	MaxDelta      float64 `yaml:"max_delta"` // seconds; longer frames are clamped
}

// SpawnerConfig holds the cursor parameters shared by both spawners.
type SpawnerConfig struct {
	Lookahead     float64 `yaml:"lookahead"`      // how far ahead of the player rolls happen
	ReleaseMargin float64 `yaml:"release_margin"` // distance behind the player before release
	PoolSize      int     `yaml:"pool_size"`      // instances constructed up front
}

// ObstaclesConfig defines obstacle spacing and the per-kind table.
type ObstaclesConfig struct {
	Spawner      SpawnerConfig           `yaml:"spawner"`
	MinSpacing   float64                 `yaml:"min_spacing"`
	MaxSpacing   float64                 `yaml:"max_spacing"`
	SafeDistance float64                 `yaml:"safe_distance"` // no obstacles this close to the run start
	Types        map[string]ObstacleType `yaml:"types"`
}

// ObstacleType is the configurable record for one obstacle kind.
type ObstacleType struct {
	Width          float64 `yaml:"width"`
	Height         float64 `yaml:"height"`
	Depth          float64 `yaml:"depth"`
	MinHeight      float64 `yaml:"min_height"` // clearance under elevated obstacles
	SpawnChance    float64 `yaml:"spawn_chance"`
	SlowFactor     float64 `yaml:"slow_factor"`
	SlowDurationMS int     `yaml:"slow_duration_ms"`
}

// CollectiblesConfig defines collectible placement and the per-kind table.
type CollectiblesConfig struct {
	Spawner SpawnerConfig              `yaml:"spawner"`
	Spacing float64                    `yaml:"spacing"`
	Height  float64                    `yaml:"height"` // y of the item centre
	Types   map[string]CollectibleType `yaml:"types"`
}

// CollectibleType is the configurable record for one collectible kind.
type CollectibleType struct {
	Width       float64 `yaml:"width"`
	Height      float64 `yaml:"height"`
	Depth       float64 `yaml:"depth"`
	SpawnChance float64 `yaml:"spawn_chance"`
	Boost       int     `yaml:"boost"`
	DurationMS  int     `yaml:"duration_ms"`
	Value       int     `yaml:"value"`
	MinCount    int     `yaml:"min_count"`
	MaxCount    int     `yaml:"max_count"`
	Stagger     float64 `yaml:"stagger"` // z gap between items of one roll
}

// ScoringConfig defines the distance score and multiplier bounds.
type ScoringConfig struct {
	DistanceMultiplier float64 `yaml:"distance_multiplier"`
	BaseMultiplier     int     `yaml:"base_multiplier"`
	MaxMultiplier      int     `yaml:"max_multiplier"`
	Milestones         []int   `yaml:"milestones"`
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
}

// ProgressionConfig defines how difficulty increases over a run.
type ProgressionConfig struct {
	Type  string  `yaml:"type"`   // "time" or "none"
	MaxAt float64 `yaml:"max_at"` // seconds of running at which max difficulty is reached
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset converts a flag value to a preset. Unknown values return "".
func ParsePreset(s string) DifficultyPreset {
	switch p := DifficultyPreset(s); p {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p
	default:
		return ""
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// ApplyPreset modifies the config based on a difficulty preset.
// The fixed preset freezes progression at the configured initial level.
func ApplyPreset(cfg *RunnerConfig, preset DifficultyPreset) {
	switch preset {
	case "":
		return
	case DifficultyFixed:
		cfg.Difficulty.Enabled = false
	default:
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}
}
