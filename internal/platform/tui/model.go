package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/LandoCrissian/LAMMB-Runner/internal/core"
	"github.com/LandoCrissian/LAMMB-Runner/internal/games/runner"
	"github.com/LandoCrissian/LAMMB-Runner/internal/leaderboard"
	"github.com/LandoCrissian/LAMMB-Runner/internal/registry"
	"github.com/LandoCrissian/LAMMB-Runner/internal/storage"
)

const submitTimeout = 15 * time.Second

// Submitter posts a finished run to the weekly leaderboard.
type Submitter func(ctx context.Context, score int64) (leaderboard.Outcome, error)

// GameOptions wires optional collaborators into a GameModel.
type GameOptions struct {
	Profile  runner.KeyValue // persisted best score, shards and settings
	Submit   Submitter       // weekly leaderboard; nil keeps runs local
	Practice bool            // invulnerable run, never submitted
}

type submitResultMsg struct {
	outcome leaderboard.Outcome
	err     error
}

// GameModel is the Bubble Tea model that drives one game.
type GameModel struct {
	game     registry.Game
	screen   *core.Screen
	store    *storage.Store
	config   core.RuntimeConfig
	keys     *KeyMapper
	input    core.InputFrame
	state    core.GameState
	loop     int64
	lastTick time.Time
	flash    *flash

	submit   Submitter
	practice bool
	status   string // outcome of the last leaderboard submission

	embedded   bool // hosted by a SessionModel
	quitting   bool
	backToMenu bool
	scoreSaved bool
}

// NewGameModel creates a model for game. store may be nil.
func NewGameModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts GameOptions) GameModel {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = 60
	}

	fl := &flash{enabled: true}
	if opts.Profile != nil {
		if settings, err := runner.NewProfile(opts.Profile).Settings(); err == nil {
			fl.enabled = settings.Haptics
		}
		if g, ok := game.(interface{ AttachProfile(runner.KeyValue) }); ok {
			g.AttachProfile(opts.Profile)
		}
	}
	if g, ok := game.(interface{ SetFeedback(runner.Feedback) }); ok {
		g.SetFeedback(fl)
	}
	if g, ok := game.(interface{ SetPracticeMode(bool) }); ok && opts.Practice {
		g.SetPracticeMode(true)
	}

	return GameModel{
		game:     game,
		screen:   core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:    store,
		config:   cfg,
		keys:     NewKeyMapper(),
		input:    core.NewInputFrame(),
		loop:     nextLoopID(),
		flash:    fl,
		submit:   opts.Submit,
		practice: opts.Practice,
	}
}

// Init resets the game and starts the tick loop.
func (m GameModel) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate, m.loop)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		if msg.Loop != m.loop {
			return m, nil
		}
		return m.handleTick(msg.At)

	case submitResultMsg:
		m.status = submitStatus(msg)
		return m, nil
	}

	return m, nil
}

func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keys := m.keys.Keys()
	switch {
	case key.Matches(msg, keys.Screenshot):
		m.saveScreenshot()
		return m, nil
	case key.Matches(msg, keys.Back) && (m.state.GameOver || m.state.Paused):
		m.backToMenu = true
		if !m.embedded {
			return m, tea.Quit
		}
		return m, nil
	}

	if m.keys.MapKeyToFrame(msg, &m.input) {
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

func (m GameModel) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	if !m.lastTick.IsZero() {
		m.input.Delta = now.Sub(m.lastTick)
	}
	m.lastTick = now
	m.flash.tick()

	if m.input.Has(core.ActionRestart) && m.state.GameOver {
		m.config.Seed = now.UnixNano()
		m.game.Reset(m.config)
		m.state = m.game.State()
		m.scoreSaved = false
		m.status = ""
		m.input.Clear()
		return m, tickCmd(m.config.TickRate, m.loop)
	}

	result := m.game.Step(m.input)
	m.state = result.State
	m.input.Clear()

	cmds := []tea.Cmd{tickCmd(m.config.TickRate, m.loop)}
	if m.state.GameOver && !m.scoreSaved {
		m.scoreSaved = true
		if m.state.Score > 0 {
			if m.store != nil {
				//nolint:errcheck // Best-effort save, game continues regardless
				m.store.SaveScore(m.game.ID(), m.state.Score)
			}
			if m.submit != nil && !m.practice {
				m.status = "Submitting to the weekly leaderboard..."
				cmds = append(cmds, submitCmd(m.submit, int64(m.state.Score)))
			}
		}
	}
	return m, tea.Batch(cmds...)
}

func submitCmd(submit Submitter, score int64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), submitTimeout)
		defer cancel()
		out, err := submit(ctx, score)
		return submitResultMsg{outcome: out, err: err}
	}
}

func submitStatus(msg submitResultMsg) string {
	if msg.err == nil {
		return msg.outcome.Message
	}
	var apiErr *leaderboard.APIError
	if errors.As(msg.err, &apiErr) {
		return "Leaderboard: " + apiErr.Message
	}
	return "Leaderboard unreachable, run kept locally"
}

// saveScreenshot writes the current frame as plain text.
func (m *GameModel) saveScreenshot() {
	m.game.Render(m.screen)

	dir := filepath.Join(os.Getenv("HOME"), ".trenches", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	m.flash.draw(m.screen)

	h := m.screen.Height()
	switch {
	case m.status != "":
		m.screen.DrawTextCentered(h-1, m.status, core.ColorBrightCyan)
	case m.state.Paused || m.state.GameOver:
		m.screen.DrawTextCentered(h-1, helpLine(m.keys.Keys().FullHelp()), core.ColorGray)
	}
	return RenderScreen(m.screen)
}

func helpLine(groups [][]key.Binding) string {
	var parts []string
	for _, g := range groups {
		for _, b := range g {
			h := b.Help()
			parts = append(parts, h.Key+" "+h.Desc)
		}
	}
	return strings.Join(parts, " • ")
}

// State returns the last game state seen by the model.
func (m GameModel) State() core.GameState {
	return m.state
}

// Status returns the last leaderboard submission message.
func (m GameModel) Status() string {
	return m.status
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// Run plays game in its own Bubble Tea program.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts GameOptions) error {
	model := NewGameModel(game, store, cfg, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
