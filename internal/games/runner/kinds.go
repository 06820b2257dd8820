package runner

import (
	"fmt"
	"sort"
	"time"

	"github.com/LandoCrissian/LAMMB-Runner/internal/config"
	"github.com/LandoCrissian/LAMMB-Runner/internal/core"
)

// ObstacleKind is the closed set of obstacle behaviors.
type ObstacleKind int

const (
	ObstaclePlain         ObstacleKind = iota // immediate hit
	ObstacleRequiresJump                      // hit only while grounded
	ObstacleSlowZone                          // slows the player once, never ends the run
	ObstacleRequiresSlide                     // hit unless sliding under the clearance
	numObstacleKinds
)

var obstacleKeys = [numObstacleKinds]string{"plain", "requires_jump", "slow_zone", "requires_slide"}

// String returns the config key of the kind.
func (k ObstacleKind) String() string {
	if k < 0 || k >= numObstacleKinds {
		return "unknown"
	}
	return obstacleKeys[k]
}

// ObstacleSpec is the resolved record for one obstacle kind.
type ObstacleSpec struct {
	Kind         ObstacleKind
	Size         core.Size
	MinHeight    float64 // bottom of elevated obstacles
	SpawnChance  float64
	SlowFactor   float64
	SlowDuration time.Duration
}

// Elevated reports whether the obstacle floats above the floor.
func (s ObstacleSpec) Elevated() bool {
	return s.Kind == ObstacleRequiresSlide
}

// ObstacleTable is indexed by ObstacleKind.
type ObstacleTable [numObstacleKinds]ObstacleSpec

// CollectibleKind is the closed set of pickups.
type CollectibleKind int

const (
	CollectibleCoffee CollectibleKind = iota // multiplier boost
	CollectibleShard                         // shard currency
	numCollectibleKinds
)

var collectibleKeys = [numCollectibleKinds]string{"coffee", "shard"}

// String returns the config key of the kind.
func (k CollectibleKind) String() string {
	if k < 0 || k >= numCollectibleKinds {
		return "unknown"
	}
	return collectibleKeys[k]
}

// CollectibleSpec is the resolved record for one collectible kind.
type CollectibleSpec struct {
	Kind        CollectibleKind
	Size        core.Size
	SpawnChance float64
	Boost       int
	Duration    time.Duration
	Value       int
	MinCount    int
	MaxCount    int
	Stagger     float64
}

// CollectibleTable is indexed by CollectibleKind.
type CollectibleTable [numCollectibleKinds]CollectibleSpec

// ResolveObstacles turns the string-keyed config into an indexed table.
// Kinds missing from the config never spawn; unknown keys are an error.
func ResolveObstacles(types map[string]config.ObstacleType) (ObstacleTable, error) {
	var table ObstacleTable
	for k := range table {
		table[k].Kind = ObstacleKind(k)
	}
	for _, key := range sortedKeys(types) {
		kind, ok := lookup(obstacleKeys[:], key)
		if !ok {
			return table, fmt.Errorf("runner: unknown obstacle type %q", key)
		}
		t := types[key]
		table[kind] = ObstacleSpec{
			Kind:         ObstacleKind(kind),
			Size:         core.Size{W: t.Width, H: t.Height, D: t.Depth},
			MinHeight:    t.MinHeight,
			SpawnChance:  t.SpawnChance,
			SlowFactor:   t.SlowFactor,
			SlowDuration: time.Duration(t.SlowDurationMS) * time.Millisecond,
		}
	}
	return table, nil
}

// ResolveCollectibles turns the string-keyed config into an indexed table.
func ResolveCollectibles(types map[string]config.CollectibleType) (CollectibleTable, error) {
	var table CollectibleTable
	for k := range table {
		table[k].Kind = CollectibleKind(k)
	}
	for _, key := range sortedKeys(types) {
		kind, ok := lookup(collectibleKeys[:], key)
		if !ok {
			return table, fmt.Errorf("runner: unknown collectible type %q", key)
		}
		t := types[key]
		spec := CollectibleSpec{
			Kind:        CollectibleKind(kind),
			Size:        core.Size{W: t.Width, H: t.Height, D: t.Depth},
			SpawnChance: t.SpawnChance,
			Boost:       t.Boost,
			Duration:    time.Duration(t.DurationMS) * time.Millisecond,
			Value:       t.Value,
			MinCount:    max(t.MinCount, 1),
			MaxCount:    t.MaxCount,
			Stagger:     t.Stagger,
		}
		spec.MaxCount = max(spec.MaxCount, spec.MinCount)
		table[kind] = spec
	}
	return table, nil
}

func lookup(keys []string, key string) (int, bool) {
	for i, k := range keys {
		if k == key {
			return i, true
		}
	}
	return 0, false
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
