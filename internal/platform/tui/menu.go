package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/LandoCrissian/LAMMB-Runner/internal/core"
	"github.com/LandoCrissian/LAMMB-Runner/internal/games/runner"
)

// MenuChoice is what the player picked on the start menu.
type MenuChoice int

const (
	ChoiceNone MenuChoice = iota
	ChoicePlay
	ChoicePractice
	ChoiceLeaderboard
	ChoiceQuit
)

// MenuItem is one line of the start menu.
type MenuItem struct {
	Choice MenuChoice
	Title  string
	Hint   string
}

var menuItems = []MenuItem{
	{ChoicePlay, "Run", "weekly leaderboard run"},
	{ChoicePractice, "Practice", "no collisions, not submitted"},
	{ChoiceLeaderboard, "Leaderboard", "this week's top runners"},
	{ChoiceQuit, "Quit", ""},
}

var (
	menuTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("208"))
	menuCursor     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	menuDim        = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// MenuModel is the Bubble Tea model for the start menu.
type MenuModel struct {
	cursor    int
	width     int
	height    int
	config    core.RuntimeConfig
	keyMapper *KeyMapper
	profile   *runner.Profile
	player    string
	selected  MenuChoice
}

// NewMenuModel creates a start menu. kv may be nil; player names the
// profile shown in the header.
func NewMenuModel(cfg core.RuntimeConfig, kv runner.KeyValue, player string) MenuModel {
	m := MenuModel{
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		config:    cfg,
		keyMapper: NewKeyMapper(),
		player:    player,
	}
	if kv != nil {
		m.profile = runner.NewProfile(kv)
	}
	return m
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
	}
	return m, nil
}

func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit, MenuActionBack:
		m.selected = ChoiceQuit
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case MenuActionDown:
		if m.cursor < len(menuItems)-1 {
			m.cursor++
		}
	case MenuActionSelect:
		m.selected = menuItems[m.cursor].Choice
	}
	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(menuTitleStyle.Render("L A M M B   T R E N C H E S"), m.width))
	b.WriteString("\n\n")

	if m.profile != nil {
		best, _ := m.profile.BestScore()
		shards, _ := m.profile.TotalShards()
		stats := fmt.Sprintf("%s   best %d   ◆ %d", m.player, best, shards)
		b.WriteString(centerText(menuDim.Render(stats), m.width))
		b.WriteString("\n\n")
	}

	for i, item := range menuItems {
		line := "  " + item.Title
		if i == m.cursor {
			line = menuCursor.Render("> " + item.Title)
			if item.Hint != "" {
				line += menuDim.Render("  " + item.Hint)
			}
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(menuDim.Render("↑/↓ navigate • enter select • q quit"), m.width))
	b.WriteString("\n")
	return b.String()
}

// Selected returns the picked entry, or ChoiceNone.
func (m MenuModel) Selected() MenuChoice {
	return m.selected
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText centers text within width, measuring styled text by its
// printable cells.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}
