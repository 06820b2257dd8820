package runner

import (
	"math"
	"math/rand"

	"github.com/LandoCrissian/LAMMB-Runner/internal/config"
	"github.com/LandoCrissian/LAMMB-Runner/internal/core"
)

// Obstacle is a pooled obstacle instance.
type Obstacle struct {
	Kind      ObstacleKind
	Pos       core.Vec3
	Triggered bool // slow zones latch after their first overlap
}

// Collectible is a pooled pickup. Pos is animated from Base each frame.
type Collectible struct {
	Kind  CollectibleKind
	Base  core.Vec3
	Pos   core.Vec3
	Spin  float64
	Phase float64
}

// spawner is the cursor and live-list bookkeeping shared by both spawners.
type spawner[K comparable, T any] struct {
	pool      *Pool[K, T]
	live      []Handle
	cursor    float64
	lookahead float64
	margin    float64
}

// advance performs spawn rolls while the cursor is within lookahead of the
// player, stepping it by step after each roll.
func (s *spawner[K, T]) advance(playerZ, step float64, roll func(z float64)) {
	for s.cursor > playerZ-s.lookahead {
		roll(s.cursor)
		s.cursor -= step
	}
}

func (s *spawner[K, T]) place(kind K) (Handle, *T) {
	h, item := s.pool.Acquire(kind)
	s.live = append(s.live, h)
	return h, item
}

// releaseBehind returns entities more than margin behind the player.
func (s *spawner[K, T]) releaseBehind(playerZ float64, z func(*T) float64) {
	kept := s.live[:0]
	for _, h := range s.live {
		if z(s.pool.Get(h)) > playerZ+s.margin {
			s.pool.Release(h)
			continue
		}
		kept = append(kept, h)
	}
	s.live = kept
}

// consume removes h from the live list and returns it to the pool.
func (s *spawner[K, T]) consume(h Handle) bool {
	for i, lh := range s.live {
		if lh == h {
			s.live = append(s.live[:i], s.live[i+1:]...)
			s.pool.Release(h)
			return true
		}
	}
	return false
}

func (s *spawner[K, T]) reset() {
	s.pool.ReleaseAll()
	s.live = s.live[:0]
	s.cursor = 0
}

// lanePicker hands out distinct lanes in random order for one roll.
type lanePicker struct {
	order []int
	next  int
}

func (lp *lanePicker) shuffle(rng *rand.Rand, laneCount int) {
	if cap(lp.order) < laneCount {
		lp.order = make([]int, laneCount)
	}
	lp.order = lp.order[:laneCount]
	for i := range lp.order {
		lp.order[i] = i
	}
	rng.Shuffle(laneCount, func(i, j int) { lp.order[i], lp.order[j] = lp.order[j], lp.order[i] })
	lp.next = 0
}

func (lp *lanePicker) take(limit int) (int, bool) {
	if lp.next >= limit {
		return 0, false
	}
	lane := lp.order[lp.next]
	lp.next++
	return lane, true
}

// ObstacleSpawner places obstacles at a decreasing cursor as the world
// scrolls. Each roll leaves at least one lane open.
type ObstacleSpawner struct {
	spawner[ObstacleKind, Obstacle]
	table        ObstacleTable
	lanes        config.PlayerConfig
	safeDistance float64
	rng          *rand.Rand
	picker       lanePicker
}

// NewObstacleSpawner creates an obstacle spawner with a prewarmed pool.
func NewObstacleSpawner(cfg config.ObstaclesConfig, lanes config.PlayerConfig, table ObstacleTable, seed int64) *ObstacleSpawner {
	pool := NewPool(func(k ObstacleKind) Obstacle { return Obstacle{Kind: k} })
	perKind := cfg.Spawner.PoolSize / int(numObstacleKinds)
	for k := range numObstacleKinds {
		pool.Prewarm(k, perKind)
	}
	s := &ObstacleSpawner{
		spawner: spawner[ObstacleKind, Obstacle]{
			pool:      pool,
			lookahead: cfg.Spawner.Lookahead,
			margin:    cfg.Spawner.ReleaseMargin,
		},
		table:        table,
		lanes:        lanes,
		safeDistance: cfg.SafeDistance,
	}
	s.Reset(seed)
	return s
}

// Reset releases every obstacle and rewinds the cursor to 0.
func (s *ObstacleSpawner) Reset(seed int64) {
	s.reset()
	s.rng = rand.New(rand.NewSource(seed))
}

// Update releases passed obstacles and rolls new ones up to the lookahead.
// step is the cursor spacing for rolls made this tick.
func (s *ObstacleSpawner) Update(playerZ, step float64) {
	s.releaseBehind(playerZ, func(o *Obstacle) float64 { return o.Pos.Z })
	s.advance(playerZ, step, s.roll)
}

func (s *ObstacleSpawner) roll(z float64) {
	if z > -s.safeDistance {
		return
	}
	open := s.lanes.LaneCount
	if open > 1 {
		open-- // keep an escape lane
	}
	s.picker.shuffle(s.rng, s.lanes.LaneCount)
	center := s.lanes.LaneCount / 2

	for k := range numObstacleKinds {
		spec := s.table[k]
		if s.rng.Float64() >= spec.SpawnChance {
			continue
		}
		lane, ok := s.picker.take(open)
		if !ok {
			return
		}
		_, o := s.place(k)
		o.Kind = k
		o.Pos = core.Vec3{X: LaneX(lane, center, s.lanes.LaneWidth), Z: z}
		o.Triggered = false
	}
}

// Bounds returns the obstacle's box, lifted for elevated kinds.
func (s *ObstacleSpawner) Bounds(o *Obstacle) core.AABB {
	spec := s.table[o.Kind]
	lift := 0.0
	if spec.Elevated() {
		lift = spec.MinHeight
	}
	return core.BoxOnFloor(o.Pos, spec.Size, lift)
}

// Spec returns the table record for kind.
func (s *ObstacleSpawner) Spec(kind ObstacleKind) ObstacleSpec {
	return s.table[kind]
}

// Live returns the handles of active obstacles. The slice is reused.
func (s *ObstacleSpawner) Live() []Handle {
	return s.live
}

// Get returns the obstacle behind h.
func (s *ObstacleSpawner) Get(h Handle) *Obstacle {
	return s.pool.Get(h)
}

// Consume releases h immediately and returns its kind.
func (s *ObstacleSpawner) Consume(h Handle) (ObstacleKind, bool) {
	kind := s.pool.Get(h).Kind
	return kind, s.consume(h)
}

// Pool exposes the backing pool for inspection.
func (s *ObstacleSpawner) Pool() *Pool[ObstacleKind, Obstacle] {
	return s.pool
}

// CollectibleSpawner places coffee and shards ahead of the player.
type CollectibleSpawner struct {
	spawner[CollectibleKind, Collectible]
	table   CollectibleTable
	lanes   config.PlayerConfig
	spacing float64
	height  float64
	rng     *rand.Rand
	picker  lanePicker
}

// NewCollectibleSpawner creates a collectible spawner with a prewarmed pool.
func NewCollectibleSpawner(cfg config.CollectiblesConfig, lanes config.PlayerConfig, table CollectibleTable, seed int64) *CollectibleSpawner {
	pool := NewPool(func(k CollectibleKind) Collectible { return Collectible{Kind: k} })
	perKind := cfg.Spawner.PoolSize / int(numCollectibleKinds)
	for k := range numCollectibleKinds {
		pool.Prewarm(k, perKind)
	}
	s := &CollectibleSpawner{
		spawner: spawner[CollectibleKind, Collectible]{
			pool:      pool,
			lookahead: cfg.Spawner.Lookahead,
			margin:    cfg.Spawner.ReleaseMargin,
		},
		table:   table,
		lanes:   lanes,
		spacing: cfg.Spacing,
		height:  cfg.Height,
	}
	s.Reset(seed)
	return s
}

// Reset releases every collectible and rewinds the cursor to 0.
func (s *CollectibleSpawner) Reset(seed int64) {
	s.reset()
	s.rng = rand.New(rand.NewSource(seed))
}

// Update animates live items at animation time t (seconds), releases passed
// ones and rolls new ones up to the lookahead.
func (s *CollectibleSpawner) Update(playerZ, t float64) {
	for _, h := range s.live {
		c := s.pool.Get(h)
		c.Pos = c.Base
		c.Pos.Y += math.Sin(t*3+c.Phase) * 0.1
		c.Spin = math.Mod(t*2+c.Phase, 2*math.Pi)
	}
	s.releaseBehind(playerZ, func(c *Collectible) float64 { return c.Pos.Z })
	s.advance(playerZ, s.spacing, s.roll)
}

func (s *CollectibleSpawner) roll(z float64) {
	s.picker.shuffle(s.rng, s.lanes.LaneCount)
	center := s.lanes.LaneCount / 2

	for k := range numCollectibleKinds {
		spec := s.table[k]
		if s.rng.Float64() >= spec.SpawnChance {
			continue
		}
		lane, ok := s.picker.take(s.lanes.LaneCount)
		if !ok {
			return
		}
		count := spec.MinCount
		if spec.MaxCount > spec.MinCount {
			count += s.rng.Intn(spec.MaxCount - spec.MinCount + 1)
		}
		for i := range count {
			_, c := s.place(k)
			c.Kind = k
			c.Base = core.Vec3{
				X: LaneX(lane, center, s.lanes.LaneWidth),
				Y: s.height,
				Z: z - float64(i)*spec.Stagger,
			}
			c.Pos = c.Base
			c.Phase = s.rng.Float64() * 2 * math.Pi
		}
	}
}

// Bounds returns the collectible's box around its animated position.
func (s *CollectibleSpawner) Bounds(c *Collectible) core.AABB {
	return core.BoxAround(c.Pos, s.table[c.Kind].Size)
}

// Spec returns the table record for kind.
func (s *CollectibleSpawner) Spec(kind CollectibleKind) CollectibleSpec {
	return s.table[kind]
}

// Live returns the handles of active collectibles. The slice is reused.
func (s *CollectibleSpawner) Live() []Handle {
	return s.live
}

// Get returns the collectible behind h.
func (s *CollectibleSpawner) Get(h Handle) *Collectible {
	return s.pool.Get(h)
}

// Collect releases h immediately and returns its kind for the caller to
// react to.
func (s *CollectibleSpawner) Collect(h Handle) (CollectibleKind, bool) {
	kind := s.pool.Get(h).Kind
	return kind, s.consume(h)
}

// Pool exposes the backing pool for inspection.
func (s *CollectibleSpawner) Pool() *Pool[CollectibleKind, Collectible] {
	return s.pool
}
