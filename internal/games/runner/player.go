package runner

import (
	"github.com/LandoCrissian/LAMMB-Runner/internal/config"
	"github.com/LandoCrissian/LAMMB-Runner/internal/core"
)

const (
	leanFactor = 0.1
	leanDecay  = 0.9
)

// Player is the lane-constrained runner: discrete lanes, continuous vertical
// motion and timed slide and slow states.
type Player struct {
	cfg config.PlayerConfig

	lane       int
	centerLane int
	pos        core.Vec3
	velY       float64
	grounded   bool
	sliding    bool
	slowFactor float64
	lean       float64 // cosmetic roll, never used for collision

	invulnerable bool
	effects      Effects
}

// NewPlayer creates a grounded player in the center lane at the origin.
func NewPlayer(cfg config.PlayerConfig) *Player {
	p := &Player{cfg: cfg}
	p.Reset()
	return p
}

// Reset returns the player to the start of a run.
func (p *Player) Reset() {
	p.centerLane = p.cfg.LaneCount / 2
	p.lane = p.centerLane
	p.pos = core.Vec3{X: p.TargetX()}
	p.velY = 0
	p.grounded = true
	p.sliding = false
	p.slowFactor = 1
	p.lean = 0
	p.effects.Clear()
}

// TargetX is the x the player is easing toward.
func (p *Player) TargetX() float64 {
	return LaneX(p.lane, p.centerLane, p.cfg.LaneWidth)
}

// LaneX returns the world x of a lane.
func LaneX(lane, centerLane int, laneWidth float64) float64 {
	return float64(lane-centerLane) * laneWidth
}

// MoveLeft shifts one lane left; a no-op in lane 0.
func (p *Player) MoveLeft() bool {
	if p.lane <= 0 {
		return false
	}
	p.lane--
	return true
}

// MoveRight shifts one lane right; a no-op in the last lane.
func (p *Player) MoveRight() bool {
	if p.lane >= p.cfg.LaneCount-1 {
		return false
	}
	p.lane++
	return true
}

// Jump launches the player if grounded and not sliding.
func (p *Player) Jump() bool {
	if !p.grounded || p.sliding {
		return false
	}
	p.velY = p.cfg.JumpForce
	p.grounded = false
	return true
}

// Slide starts a timed slide if grounded and not already sliding.
func (p *Player) Slide() bool {
	if !p.grounded || p.sliding {
		return false
	}
	p.sliding = true
	p.effects.Start(EffectSlide, ms(p.cfg.SlideDurationMS), func() {
		p.sliding = false
	})
	return true
}

// SetSlow scales forward motion by factor for seconds, then restores it.
func (p *Player) SetSlow(factor, seconds float64) {
	p.slowFactor = factor
	p.effects.Start(EffectSlow, seconds, func() {
		p.slowFactor = 1
	})
}

// Hit reports whether a terminal collision happened. It does nothing for
// an invulnerable player.
func (p *Player) Hit() bool {
	if p.invulnerable {
		return false
	}
	p.effects.Start(EffectHitFlash, ms(p.cfg.HitFlashMS), nil)
	return true
}

// SetInvulnerable toggles whether hits end the run.
func (p *Player) SetInvulnerable(v bool) {
	p.invulnerable = v
}

// Update integrates one tick of dt seconds at the given world speed.
func (p *Player) Update(dt, worldSpeed float64) {
	p.effects.Tick(dt)

	// Lane easing
	target := p.TargetX()
	diff := target - p.pos.X
	if diff != 0 {
		p.pos.X = core.MoveToward(p.pos.X, target, p.cfg.LaneChangeSpeed*dt)
		p.lean = -diff * leanFactor
	} else {
		p.lean *= leanDecay
	}

	// Vertical physics
	if !p.grounded {
		p.velY -= p.cfg.Gravity * dt
		p.pos.Y += p.velY * dt
		if p.pos.Y <= 0 {
			p.pos.Y = 0
			p.velY = 0
			p.grounded = true
		}
	}

	p.pos.Z -= worldSpeed * dt * p.slowFactor
}

// Bounds returns the collision box; it shrinks while sliding.
func (p *Player) Bounds() core.AABB {
	h := p.cfg.NormalHeight
	if p.sliding {
		h = p.cfg.SlideHeight
	}
	return core.BoxOnFloor(p.pos, core.Size{W: p.cfg.Width, H: h, D: p.cfg.Depth}, 0)
}

// Lane returns the current lane index.
func (p *Player) Lane() int { return p.lane }

// Position returns the continuous position.
func (p *Player) Position() core.Vec3 { return p.pos }

// VelocityY returns the vertical velocity.
func (p *Player) VelocityY() float64 { return p.velY }

// Grounded reports whether the player is on the floor.
func (p *Player) Grounded() bool { return p.grounded }

// Sliding reports whether a slide is in progress.
func (p *Player) Sliding() bool { return p.sliding }

// SlowFactor returns the current forward-motion multiplier.
func (p *Player) SlowFactor() float64 { return p.slowFactor }

// Lean returns the cosmetic roll.
func (p *Player) Lean() float64 { return p.lean }

// Flashing reports whether the hit flash is showing.
func (p *Player) Flashing() bool { return p.effects.Active(EffectHitFlash) }

func ms(n int) float64 {
	return float64(n) / 1000
}
