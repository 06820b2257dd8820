package runner

import (
	"math"
	"sort"

	"github.com/LandoCrissian/LAMMB-Runner/internal/config"
)

// ScoreEngine accumulates distance score under a stepped multiplier.
type ScoreEngine struct {
	cfg        config.ScoringConfig
	milestones []int

	score      float64
	multiplier int
	next       int // index of the next milestone to fire
	shards     int
	boosts     Effects
}

// NewScoreEngine creates an engine with milestones sorted ascending.
func NewScoreEngine(cfg config.ScoringConfig) *ScoreEngine {
	ms := append([]int(nil), cfg.Milestones...)
	sort.Ints(ms)
	e := &ScoreEngine{cfg: cfg, milestones: ms}
	e.Reset()
	return e
}

// Reset starts a new run.
func (e *ScoreEngine) Reset() {
	e.score = 0
	e.multiplier = e.cfg.BaseMultiplier
	e.next = 0
	e.shards = 0
	e.boosts.Clear()
}

// Tick adds speed*dt of distance score and counts the boost down. It
// returns the milestones crossed this tick in ascending order.
func (e *ScoreEngine) Tick(speed, dt float64) []int {
	e.score += speed * dt * e.cfg.DistanceMultiplier * float64(e.multiplier)
	e.boosts.Tick(dt)

	var fired []int
	floored := e.Score()
	for e.next < len(e.milestones) && floored >= e.milestones[e.next] {
		fired = append(fired, e.milestones[e.next])
		e.next++
	}
	return fired
}

// Boost raises the multiplier by step, clamped to max, and restarts the
// boost timer. Each expiry lowers the multiplier by exactly one.
func (e *ScoreEngine) Boost(step int, seconds float64) {
	e.multiplier = min(e.multiplier+step, e.cfg.MaxMultiplier)
	e.boosts.Start(EffectBoost, seconds, e.expire)
}

func (e *ScoreEngine) expire() {
	e.multiplier = max(e.multiplier-1, e.cfg.BaseMultiplier)
}

// AddShards credits shards collected this run.
func (e *ScoreEngine) AddShards(n int) {
	e.shards += n
}

// Score returns the floored score.
func (e *ScoreEngine) Score() int {
	return int(math.Floor(e.score))
}

// RawScore returns the unfloored accumulator.
func (e *ScoreEngine) RawScore() float64 { return e.score }

// Multiplier returns the current multiplier.
func (e *ScoreEngine) Multiplier() int { return e.multiplier }

// BoostRemaining returns the seconds left on the boost timer.
func (e *ScoreEngine) BoostRemaining() float64 {
	r, _ := e.boosts.Remaining(EffectBoost)
	return r
}

// Shards returns shards collected this run.
func (e *ScoreEngine) Shards() int { return e.shards }
