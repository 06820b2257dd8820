package runner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LandoCrissian/LAMMB-Runner/internal/core"
)

type collisionRig struct {
	player       *Player
	obstacles    *ObstacleSpawner
	collectibles *CollectibleSpawner
	resolver     Resolver
}

func newCollisionRig(t *testing.T) *collisionRig {
	t.Helper()
	obstacles, _ := obstacleSpawner(t, 0, 1)
	collectibles, _ := collectibleSpawner(t, 0, 0, 1)
	return &collisionRig{
		player:       testPlayer(),
		obstacles:    obstacles,
		collectibles: collectibles,
	}
}

func (r *collisionRig) obstacle(kind ObstacleKind, pos core.Vec3) *Obstacle {
	_, o := r.obstacles.place(kind)
	o.Kind = kind
	o.Pos = pos
	o.Triggered = false
	return o
}

func (r *collisionRig) collectible(kind CollectibleKind, pos core.Vec3) {
	_, c := r.collectibles.place(kind)
	c.Kind = kind
	c.Base = pos
	c.Pos = pos
}

func (r *collisionRig) resolve() Outcome {
	return r.resolver.Resolve(r.player, r.obstacles, r.collectibles)
}

func TestCollisionDispatch(t *testing.T) {
	tests := []struct {
		name    string
		kind    ObstacleKind
		prepare func(p *Player)
		wantHit bool
	}{
		{"plain grounded", ObstaclePlain, nil, true},
		{"plain airborne", ObstaclePlain, func(p *Player) { p.Jump(); p.Update(0.02, 0) }, true},
		{"jump obstacle grounded", ObstacleRequiresJump, nil, true},
		{"jump obstacle cleared", ObstacleRequiresJump, func(p *Player) { p.Jump(); p.Update(0.02, 0) }, false},
		{"slide obstacle standing", ObstacleRequiresSlide, nil, true},
		{"slide obstacle sliding", ObstacleRequiresSlide, func(p *Player) { p.Slide() }, false},
		{"slow zone", ObstacleSlowZone, nil, false},
		{"adjacent lane", ObstaclePlain, func(p *Player) { p.MoveLeft(); p.Update(1, 0) }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newCollisionRig(t)
			if tt.prepare != nil {
				tt.prepare(r.player)
			}
			r.obstacle(tt.kind, core.Vec3{})

			out := r.resolve()
			assert.Equal(t, tt.wantHit, out.Hit)
			if tt.wantHit {
				assert.Equal(t, tt.kind, out.HitKind)
			}
		})
	}
}

func TestSlideObstacleNeedsClearance(t *testing.T) {
	r := newCollisionRig(t)
	// Lower the clearance under the slide height so a slide still clips it.
	r.obstacles.table[ObstacleRequiresSlide].MinHeight = 0.4
	r.player.Slide()
	r.obstacle(ObstacleRequiresSlide, core.Vec3{})

	assert.True(t, r.resolve().Hit)
}

func TestSlowZoneTriggersOnce(t *testing.T) {
	r := newCollisionRig(t)
	o := r.obstacle(ObstacleSlowZone, core.Vec3{})

	out := r.resolve()
	require.Len(t, out.Slowed, 1)
	assert.True(t, o.Triggered)
	assert.Equal(t, 0.5, r.player.SlowFactor())

	out = r.resolve()
	assert.Empty(t, out.Slowed, "slow zone is latched")
	assert.False(t, out.Hit)
}

func TestInvulnerablePlayerGrazes(t *testing.T) {
	r := newCollisionRig(t)
	r.player.SetInvulnerable(true)
	r.obstacle(ObstaclePlain, core.Vec3{})
	r.obstacle(ObstacleRequiresJump, core.Vec3{Z: -0.5})

	out := r.resolve()
	assert.False(t, out.Hit)
	assert.Equal(t, 2, out.Grazed)
	assert.False(t, r.player.Flashing())
}

func TestTerminalHitStopsObstacleChecks(t *testing.T) {
	r := newCollisionRig(t)
	r.obstacle(ObstaclePlain, core.Vec3{})
	slow := r.obstacle(ObstacleSlowZone, core.Vec3{Z: -0.2})

	out := r.resolve()
	assert.True(t, out.Hit)
	assert.False(t, slow.Triggered, "checks after a terminal hit are skipped")
	assert.Empty(t, out.Slowed)
}

func TestAllOverlappingCollectiblesAreCollected(t *testing.T) {
	r := newCollisionRig(t)
	r.collectible(CollectibleCoffee, core.Vec3{Y: 1})
	r.collectible(CollectibleShard, core.Vec3{Y: 1, Z: -0.3})
	r.collectible(CollectibleShard, core.Vec3{Y: 1, Z: 0.3})
	r.collectible(CollectibleShard, core.Vec3{X: 2.5, Y: 1})

	out := r.resolve()
	require.Len(t, out.Collected, 3)
	kinds := map[CollectibleKind]int{}
	for _, spec := range out.Collected {
		kinds[spec.Kind]++
	}
	assert.Equal(t, 1, kinds[CollectibleCoffee])
	assert.Equal(t, 2, kinds[CollectibleShard])

	assert.Len(t, r.collectibles.Live(), 1)
	assert.Equal(t, 1, r.collectibles.Pool().Active())
}
