// Package runner implements the LAMMB trenches endless runner: a
// lane-based 3D run along -z with streamed chunks, pooled obstacles and
// collectibles, and a distance score under a stepped multiplier.
package runner

import (
	"time"

	"github.com/LandoCrissian/LAMMB-Runner/internal/config"
	"github.com/LandoCrissian/LAMMB-Runner/internal/core"
	"github.com/LandoCrissian/LAMMB-Runner/internal/registry"
)

// Feedback receives events for sound or haptic cues. Errors are ignored.
type Feedback interface {
	Cue(ev core.Event) error
}

// RunSummary describes a finished run.
type RunSummary struct {
	Score     int
	Distance  float64
	Shards    int
	Duration  time.Duration
	NewBest   bool
	StartedAt time.Time
}

// Game is the orchestrator. It owns every subsystem and runs them in a
// fixed order once per Step.
type Game struct {
	cfg      config.RunnerConfig
	fixedCfg bool
	runtime  core.RuntimeConfig

	difficulty   *config.DifficultyManager
	player       *Player
	world        *World
	obstacles    *ObstacleSpawner
	collectibles *CollectibleSpawner
	resolver     Resolver
	score        *ScoreEngine
	camera       Camera
	quips        *Quips

	profile    *Profile
	profileErr error
	feedback   Feedback
	practice   bool
	now        func() time.Time

	elapsed   float64 // seconds of unpaused running
	speed     float64
	best      int
	gameOver  bool
	paused    bool
	startedAt time.Time
	summary   *RunSummary
	lastQuip  string
}

var (
	configPath       string
	difficultyPreset config.DifficultyPreset
)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset; unknown names fall back
// to the config file.
func SetDifficultyPreset(preset string) {
	difficultyPreset = config.ParsePreset(preset)
}

func init() {
	registry.Register("runner", func() registry.Game {
		return New()
	})
}

// New creates a runner that loads its tuning on Reset.
func New() *Game {
	return &Game{now: time.Now}
}

// NewWithConfig creates a runner with fixed tuning, skipping file lookup.
func NewWithConfig(cfg config.RunnerConfig) *Game {
	g := New()
	g.cfg = cfg
	g.fixedCfg = true
	return g
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "runner"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "LAMMB Trenches Runner"
}

// AttachProfile persists best score and shards through kv and loads the
// stored best.
func (g *Game) AttachProfile(kv KeyValue) {
	g.profile = NewProfile(kv)
	if best, err := g.profile.BestScore(); err == nil {
		g.best = best
	} else {
		g.profileErr = err
	}
}

// SetFeedback installs the cue sink.
func (g *Game) SetFeedback(f Feedback) {
	g.feedback = f
}

// SetPracticeMode toggles invulnerability for this game.
func (g *Game) SetPracticeMode(on bool) {
	g.practice = on
	if g.player != nil {
		g.player.SetInvulnerable(on)
	}
}

// Reset starts a new run.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	if runtime.TickRate <= 0 {
		g.runtime.TickRate = 60
	}

	if !g.fixedCfg {
		cfg, err := config.LoadRunner(configPath)
		if err != nil {
			cfg = config.DefaultRunnerConfig()
		}
		config.ApplyPreset(&cfg, difficultyPreset)
		g.cfg = cfg
	}

	obstacleTable, err := ResolveObstacles(g.cfg.Obstacles.Types)
	if err != nil {
		obstacleTable, _ = ResolveObstacles(config.DefaultRunnerConfig().Obstacles.Types)
	}
	collectibleTable, err := ResolveCollectibles(g.cfg.Collectibles.Types)
	if err != nil {
		collectibleTable, _ = ResolveCollectibles(config.DefaultRunnerConfig().Collectibles.Types)
	}

	seed := runtime.Seed
	g.difficulty = config.NewDifficultyManager(g.cfg.Difficulty)
	g.player = NewPlayer(g.cfg.Player)
	g.player.SetInvulnerable(g.practice)

	// Pools and chunks survive restarts; only their contents are reset.
	if g.world == nil {
		g.world = NewWorld(g.cfg.World, g.cfg.Player, seed)
		g.obstacles = NewObstacleSpawner(g.cfg.Obstacles, g.cfg.Player, obstacleTable, seed+1)
		g.collectibles = NewCollectibleSpawner(g.cfg.Collectibles, g.cfg.Player, collectibleTable, seed+2)
	} else {
		g.world.Reset(seed)
		g.obstacles.Reset(seed + 1)
		g.collectibles.Reset(seed + 2)
	}
	g.score = NewScoreEngine(g.cfg.Scoring)
	g.quips = NewQuips(seed + 3)
	g.camera.Reset(g.player.Position())

	g.elapsed = 0
	g.speed = g.cfg.World.InitialSpeed
	g.gameOver = false
	g.paused = false
	g.startedAt = g.now()
	g.summary = nil
	g.lastQuip = ""
}

// Step advances the run by one frame.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.gameOver {
		if in.Has(core.ActionRestart) {
			g.Reset(g.runtime)
		}
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	dt := in.Delta.Seconds()
	if dt <= 0 {
		dt = 1 / float64(g.runtime.TickRate)
	}
	if g.cfg.World.MaxDelta > 0 {
		dt = min(dt, g.cfg.World.MaxDelta)
	}

	if in.Has(core.ActionLaneLeft) {
		g.player.MoveLeft()
	}
	if in.Has(core.ActionLaneRight) {
		g.player.MoveRight()
	}
	if in.Has(core.ActionJump) {
		g.player.Jump()
	}
	if in.Has(core.ActionSlide) {
		g.player.Slide()
	}

	g.elapsed += dt
	g.speed = g.difficulty.Speed(g.cfg.World.InitialSpeed, g.cfg.World.MaxSpeed, g.elapsed)

	g.player.Update(dt, g.speed)
	z := g.player.Position().Z
	g.world.Update(z)
	g.obstacles.Update(z, g.difficulty.Spacing(g.cfg.Obstacles.MaxSpacing, g.cfg.Obstacles.MinSpacing, g.elapsed))
	g.collectibles.Update(z, g.elapsed)

	var events []core.Event
	out := g.resolver.Resolve(g.player, g.obstacles, g.collectibles)
	events = g.apply(out, events)

	// The hit frame still scores; finish reads the ticked total.
	for _, m := range g.score.Tick(g.speed, dt) {
		events = append(events, core.Event{Kind: core.EventMilestone, Value: m, Quip: g.quip(g.quips.Milestone(m))})
	}
	if out.Hit {
		events = append(events, core.Event{Kind: core.EventHit, Label: out.HitKind.String(), Quip: g.quip(g.quips.Pick(QuipHit))})
		events = g.finish(events)
	}

	g.camera.Follow(g.player.Position(), dt)

	g.cue(events)
	return core.StepResult{State: g.State(), Events: events}
}

func (g *Game) apply(out Outcome, events []core.Event) []core.Event {
	for _, spec := range out.Slowed {
		events = append(events, core.Event{Kind: core.EventSlowed, Label: spec.Kind.String()})
	}

	for _, spec := range out.Collected {
		ev := core.Event{Kind: core.EventCollected, Label: spec.Kind.String()}
		switch spec.Kind {
		case CollectibleCoffee:
			g.score.Boost(spec.Boost, spec.Duration.Seconds())
			ev.Value = g.score.Multiplier()
			ev.Quip = g.quip(g.quips.Pick(QuipCoffee))
		case CollectibleShard:
			g.score.AddShards(spec.Value)
			ev.Value = spec.Value
		}
		events = append(events, ev)
	}
	return events
}

// finish ends the run, persists the profile and builds the summary.
func (g *Game) finish(events []core.Event) []core.Event {
	g.gameOver = true
	final := g.score.Score()

	newBest := final > g.best
	if g.profile != nil {
		if _, err := g.profile.RecordScore(final); err != nil {
			g.profileErr = err
		}
		if _, err := g.profile.AddShards(g.score.Shards()); err != nil {
			g.profileErr = err
		}
	}
	if newBest {
		g.best = final
		events = append(events, core.Event{Kind: core.EventNewBest, Value: final, Quip: g.quip(g.quips.Pick(QuipNewBest))})
	}

	g.summary = &RunSummary{
		Score:     final,
		Distance:  g.Distance(),
		Shards:    g.score.Shards(),
		Duration:  time.Duration(g.elapsed * float64(time.Second)),
		NewBest:   newBest,
		StartedAt: g.startedAt,
	}
	return append(events, core.Event{Kind: core.EventGameOver, Value: final})
}

func (g *Game) quip(s string) string {
	g.lastQuip = s
	return s
}

func (g *Game) cue(events []core.Event) {
	if g.feedback == nil {
		return
	}
	for _, ev := range events {
		_ = g.feedback.Cue(ev)
	}
}

// State returns the coarse status.
func (g *Game) State() core.GameState {
	s := core.GameState{GameOver: g.gameOver, Paused: g.paused}
	if g.score != nil {
		s.Score = g.score.Score()
	}
	return s
}

// Summary returns the finished run, or nil while running.
func (g *Game) Summary() *RunSummary { return g.summary }

// ProfileErr returns the last persistence failure, if any.
func (g *Game) ProfileErr() error { return g.profileErr }

// Best returns the best score known to this game.
func (g *Game) Best() int { return g.best }

// Distance returns how far the player has run.
func (g *Game) Distance() float64 {
	if g.player == nil {
		return 0
	}
	return -g.player.Position().Z
}

// Speed returns the current world speed.
func (g *Game) Speed() float64 { return g.speed }

// Elapsed returns the seconds of unpaused running.
func (g *Game) Elapsed() float64 { return g.elapsed }

// Player exposes the player controller.
func (g *Game) Player() *Player { return g.player }

// World exposes the chunk streamer.
func (g *Game) World() *World { return g.world }

// Obstacles exposes the obstacle spawner.
func (g *Game) Obstacles() *ObstacleSpawner { return g.obstacles }

// Collectibles exposes the collectible spawner.
func (g *Game) Collectibles() *CollectibleSpawner { return g.collectibles }

// Score exposes the score engine.
func (g *Game) Score() *ScoreEngine { return g.score }

// Camera returns the follow camera.
func (g *Game) Camera() Camera { return g.camera }

// Config returns the active tuning.
func (g *Game) Config() config.RunnerConfig { return g.cfg }
