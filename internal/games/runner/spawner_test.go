package runner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LandoCrissian/LAMMB-Runner/internal/config"
)

func obstacleSpawner(t *testing.T, chance float64, seed int64) (*ObstacleSpawner, config.RunnerConfig) {
	t.Helper()
	cfg := config.DefaultRunnerConfig()
	for k, v := range cfg.Obstacles.Types {
		v.SpawnChance = chance
		cfg.Obstacles.Types[k] = v
	}
	table, err := ResolveObstacles(cfg.Obstacles.Types)
	require.NoError(t, err)
	return NewObstacleSpawner(cfg.Obstacles, cfg.Player, table, seed), cfg
}

func collectibleSpawner(t *testing.T, coffee, shard float64, seed int64) (*CollectibleSpawner, config.RunnerConfig) {
	t.Helper()
	cfg := config.DefaultRunnerConfig()
	c := cfg.Collectibles.Types["coffee"]
	c.SpawnChance = coffee
	cfg.Collectibles.Types["coffee"] = c
	s := cfg.Collectibles.Types["shard"]
	s.SpawnChance = shard
	cfg.Collectibles.Types["shard"] = s
	table, err := ResolveCollectibles(cfg.Collectibles.Types)
	require.NoError(t, err)
	return NewCollectibleSpawner(cfg.Collectibles, cfg.Player, table, seed), cfg
}

func TestObstacleRollsLeaveAnEscapeLane(t *testing.T) {
	s, cfg := obstacleSpawner(t, 1, 5)
	s.Update(0, 10)

	rows := map[float64]map[float64]bool{}
	for _, h := range s.Live() {
		o := s.Get(h)
		if rows[o.Pos.Z] == nil {
			rows[o.Pos.Z] = map[float64]bool{}
		}
		assert.False(t, rows[o.Pos.Z][o.Pos.X], "two obstacles share a lane at z=%v", o.Pos.Z)
		rows[o.Pos.Z][o.Pos.X] = true
	}
	require.NotEmpty(t, rows)
	for z, lanes := range rows {
		assert.Len(t, lanes, cfg.Player.LaneCount-1, "z=%v", z)
	}
}

func TestObstacleSafeDistanceAndLookahead(t *testing.T) {
	s, cfg := obstacleSpawner(t, 0.6, 9)
	z := 0.0
	for range 300 {
		z -= 3
		s.Update(z, 12)
		assert.LessOrEqual(t, s.cursor, z-cfg.Obstacles.Spawner.Lookahead)
		for _, h := range s.Live() {
			o := s.Get(h)
			assert.LessOrEqual(t, o.Pos.Z, -cfg.Obstacles.SafeDistance)
			assert.LessOrEqual(t, o.Pos.Z, z+cfg.Obstacles.Spawner.ReleaseMargin)
			assert.Contains(t, []float64{-2.5, 0, 2.5}, o.Pos.X)
		}
	}
	assert.Equal(t, len(s.Live()), s.Pool().Active())
}

func TestObstaclePoolStaysBounded(t *testing.T) {
	s, _ := obstacleSpawner(t, 1, 2)
	z := 0.0
	for range 2000 {
		z -= 2
		s.Update(z, 8)
	}
	// Lookahead 100 + margin 10 at step 8 holds about 14 rows of 2, on
	// top of the prewarmed slots.
	assert.LessOrEqual(t, s.Pool().Size(), 60)
	assert.Equal(t, len(s.Live()), s.Pool().Active())
}

func TestObstacleResetRewindsCursor(t *testing.T) {
	s, _ := obstacleSpawner(t, 1, 2)
	s.Update(-200, 10)
	require.NotEmpty(t, s.Live())

	s.Reset(2)
	assert.Empty(t, s.Live())
	assert.Equal(t, 0, s.Pool().Active())
	assert.Equal(t, 0.0, s.cursor)
}

func TestObstacleSpawnsAreSeeded(t *testing.T) {
	a, _ := obstacleSpawner(t, 0.4, 77)
	b, _ := obstacleSpawner(t, 0.4, 77)
	a.Update(-150, 9)
	b.Update(-150, 9)

	require.Equal(t, len(a.Live()), len(b.Live()))
	for i := range a.Live() {
		assert.Equal(t, *a.Get(a.Live()[i]), *b.Get(b.Live()[i]))
	}
}

func TestElevatedObstacleIsLifted(t *testing.T) {
	s, _ := obstacleSpawner(t, 0, 1)
	_, o := s.place(ObstacleRequiresSlide)
	o.Kind = ObstacleRequiresSlide

	b := s.Bounds(o)
	assert.Equal(t, 1.0, b.Min.Y)
	assert.Equal(t, 3.5, b.Max.Y)
}

func TestShardRunsAreStaggeredInOneLane(t *testing.T) {
	s, cfg := collectibleSpawner(t, 0, 1, 4)
	s.Update(0, 0)
	require.NotEmpty(t, s.Live())

	stagger := cfg.Collectibles.Types["shard"].Stagger
	byLane := map[float64][]float64{}
	for _, h := range s.Live() {
		c := s.Get(h)
		assert.Equal(t, CollectibleShard, c.Kind)
		byLane[c.Base.X] = append(byLane[c.Base.X], c.Base.Z)
	}
	for _, zs := range byLane {
		for i := 1; i < len(zs); i++ {
			gap := zs[i-1] - zs[i]
			// Items of one roll are stagger apart; separate rolls are spacing apart.
			assert.True(t, gap == stagger || gap >= cfg.Collectibles.Spacing-2*stagger, "gap %v", gap)
		}
	}
}

func TestCollectibleBobIsStateless(t *testing.T) {
	s, cfg := collectibleSpawner(t, 1, 0, 4)
	s.Update(0, 0)
	require.NotEmpty(t, s.Live())

	h := s.Live()[0]
	s.Update(0, 1.3)
	first := s.Get(h).Pos
	s.Update(0, 0.2)
	s.Update(0, 1.3)
	assert.Equal(t, first, s.Get(h).Pos)

	for _, h := range s.Live() {
		y := s.Get(h).Pos.Y
		assert.InDelta(t, cfg.Collectibles.Height, y, 0.1+1e-9)
	}
}

func TestCollectReleasesImmediately(t *testing.T) {
	s, _ := collectibleSpawner(t, 1, 0, 4)
	s.Update(0, 0)
	before := len(s.Live())
	require.Positive(t, before)

	h := s.Live()[0]
	kind, ok := s.Collect(h)
	assert.True(t, ok)
	assert.Equal(t, CollectibleCoffee, kind)
	assert.Len(t, s.Live(), before-1)
	assert.False(t, s.Pool().IsActive(h))

	_, ok = s.Collect(h)
	assert.False(t, ok, "collecting twice must fail")
}
