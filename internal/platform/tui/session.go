package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/LandoCrissian/LAMMB-Runner/internal/core"
	"github.com/LandoCrissian/LAMMB-Runner/internal/games/runner"
	"github.com/LandoCrissian/LAMMB-Runner/internal/registry"
	"github.com/LandoCrissian/LAMMB-Runner/internal/storage"
)

// SessionOptions configure a SessionModel.
type SessionOptions struct {
	GameID string    // registry id, "runner" when empty
	Player string    // profile namespace in the store
	Wallet string    // wallet highlighted on the leaderboard
	Submit Submitter // nil keeps runs local
}

type sessionScreen int

const (
	screenMenu sessionScreen = iota
	screenGame
	screenBoard
)

// SessionModel runs the whole flow: menu -> game or leaderboard -> menu.
// It is the top-level model for both local play and SSH sessions.
type SessionModel struct {
	store  *storage.Store
	config core.RuntimeConfig
	opts   SessionOptions
	kv     runner.KeyValue

	screen   sessionScreen
	menu     MenuModel
	game     *GameModel
	board    *ScoreboardModel
	quitting bool
}

// NewSessionModel creates a session. store may be nil.
func NewSessionModel(store *storage.Store, cfg core.RuntimeConfig, opts SessionOptions) SessionModel {
	if opts.GameID == "" {
		opts.GameID = "runner"
	}
	if opts.Player == "" {
		opts.Player = "local"
	}
	var kv runner.KeyValue
	if store != nil {
		kv = store.KV(opts.Player)
	}
	return SessionModel{
		store:  store,
		config: cfg,
		opts:   opts,
		kv:     kv,
		menu:   NewMenuModel(cfg, kv, opts.Player),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.screen {
	case screenGame:
		return m.updateGame(msg)
	case screenBoard:
		return m.updateBoard(msg)
	default:
		return m.updateMenu(msg)
	}
}

func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.menu.Update(msg)
	if mm, ok := next.(MenuModel); ok {
		m.menu = mm
	}

	switch m.menu.Selected() {
	case ChoiceQuit:
		m.quitting = true
		return m, tea.Quit

	case ChoicePlay, ChoicePractice:
		game, err := registry.Create(m.opts.GameID)
		if err != nil {
			m.menu = NewMenuModel(m.config, m.kv, m.opts.Player)
			return m, nil
		}
		cfg := m.config
		cfg.Seed = time.Now().UnixNano()
		gm := NewGameModel(game, m.store, cfg, GameOptions{
			Profile:  m.kv,
			Submit:   m.opts.Submit,
			Practice: m.menu.Selected() == ChoicePractice,
		})
		gm.embedded = true
		m.game = &gm
		m.screen = screenGame
		return m, m.game.Init()

	case ChoiceLeaderboard:
		b := NewScoreboardModel(m.store, m.config.ScreenW, m.config.ScreenH, m.opts.Wallet)
		b.embedded = true
		m.board = &b
		m.screen = screenBoard
		return m, nil
	}

	return m, cmd
}

func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.game.Update(msg)
	if gm, ok := next.(GameModel); ok {
		m.game = &gm
	}

	if m.game.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.game.BackToMenu() {
		return m.toMenu(), nil
	}
	return m, cmd
}

func (m SessionModel) updateBoard(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.board.Update(msg)
	if bm, ok := next.(ScoreboardModel); ok {
		m.board = &bm
	}

	if m.board.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.board.IsGoingBack() {
		return m.toMenu(), nil
	}
	return m, cmd
}

func (m SessionModel) toMenu() SessionModel {
	m.screen = screenMenu
	m.game = nil
	m.board = nil
	m.menu = NewMenuModel(m.config, m.kv, m.opts.Player)
	return m
}

// View renders the current screen.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}
	switch m.screen {
	case screenGame:
		return m.game.View()
	case screenBoard:
		return m.board.View()
	default:
		return m.menu.View()
	}
}

// RunSession runs the full local flow.
func RunSession(store *storage.Store, cfg core.RuntimeConfig, opts SessionOptions) error {
	p := tea.NewProgram(
		NewSessionModel(store, cfg, opts),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
