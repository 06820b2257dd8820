package tui

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/LandoCrissian/LAMMB-Runner/internal/leaderboard"
	"github.com/LandoCrissian/LAMMB-Runner/internal/storage"
)

// Scoreboard layout constants
const (
	minWidthForSidebar = 80  // Minimum width to show the board list sidebar
	sidebarWidth       = 20  // Width of the board list sidebar
	maxRows            = 100 // Max rows to load per board
	localBoard         = "Local runs"
	walletColumnWidth  = 14
)

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up        key.Binding
	Down      key.Binding
	NextBoard key.Binding
	PrevBoard key.Binding
	Back      key.Binding
	Quit      key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextBoard, k.PrevBoard, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextBoard, k.PrevBoard},
		{k.Back, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextBoard: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "older week"),
		),
		PrevBoard: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "newer week"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ScoreboardModel shows the weekly leaderboards and the local run history.
type ScoreboardModel struct {
	boards      []string // week ids, newest first, then localBoard
	cursor      int
	store       *storage.Store
	highlight   string // wallet to mark in weekly tables
	table       table.Model
	rows        []table.Row
	err         error
	help        help.Model
	keys        ScoreboardKeyMap
	width       int
	height      int
	embedded    bool
	quitting    bool
	goingBack   bool
	showSidebar bool
}

// NewScoreboardModel creates a scoreboard over store. highlight marks a
// wallet's rows; it may be empty.
func NewScoreboardModel(store *storage.Store, width, height int, highlight string) ScoreboardModel {
	h := help.New()
	h.ShowAll = false

	m := ScoreboardModel{
		boards:      boardList(store, time.Now()),
		store:       store,
		highlight:   highlight,
		keys:        DefaultScoreboardKeyMap(),
		help:        h,
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}
	m.table = m.createTable()
	m.load()
	return m
}

// boardList returns the current week, every stored week, then local runs.
func boardList(store *storage.Store, now time.Time) []string {
	current := leaderboard.WeekID(now)
	boards := []string{current}
	if store != nil {
		weeks, err := store.Weeks(context.Background())
		if err == nil {
			for _, w := range weeks {
				if w != current {
					boards = append(boards, w)
				}
			}
		}
	}
	return append(boards, localBoard)
}

func (m ScoreboardModel) current() string {
	return m.boards[m.cursor]
}

func (m *ScoreboardModel) createTable() table.Model {
	tableWidth := m.width - 4
	if m.showSidebar {
		tableWidth -= sidebarWidth + 3
	}

	columns := []table.Column{
		{Title: "Rank", Width: 6},
		{Title: "Runner", Width: walletColumnWidth},
		{Title: "Score", Width: 10},
		{Title: "When", Width: 14},
	}
	if spare := tableWidth - 50; spare > 0 {
		columns[1].Width += min(spare, 30)
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-8, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

func (m *ScoreboardModel) load() {
	m.rows, m.err = nil, nil
	if m.store == nil {
		m.table.SetRows(nil)
		return
	}

	if m.current() == localBoard {
		scores, err := m.store.TopScores("runner", maxRows)
		m.err = err
		for i, s := range scores {
			m.rows = append(m.rows, table.Row{
				fmt.Sprintf("#%d", i+1),
				"you",
				fmt.Sprintf("%d", s.Score),
				s.CreatedAt.Local().Format("Jan 02 15:04"),
			})
		}
	} else {
		entries, err := m.store.TopWeekly(context.Background(), m.current(), maxRows)
		m.err = err
		width := m.table.Columns()[1].Width
		rank := 0
		for i, e := range entries {
			// Equal scores share a rank.
			if i == 0 || e.Score != entries[i-1].Score {
				rank = i + 1
			}
			name := ShortWallet(e.Wallet, width)
			if e.Wallet == m.highlight {
				name = "★ " + ShortWallet(e.Wallet, width-2)
			}
			m.rows = append(m.rows, table.Row{
				fmt.Sprintf("#%d", rank),
				name,
				fmt.Sprintf("%d", e.Score),
				e.UpdatedAt.Local().Format("Jan 02 15:04"),
			})
		}
	}
	m.table.SetRows(m.rows)
	m.table.GotoTop()
}

// ShortWallet abbreviates a base58 address to fit width cells.
func ShortWallet(addr string, width int) string {
	if len(addr) <= width || width < 7 {
		return addr
	}
	keep := (width - 1) / 2
	return addr[:keep] + "…" + addr[len(addr)-(width-1-keep):]
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			if !m.embedded {
				return m, tea.Quit
			}
			return m, nil

		case key.Matches(msg, m.keys.NextBoard):
			m.cursor = (m.cursor + 1) % len(m.boards)
			m.load()
			return m, nil

		case key.Matches(msg, m.keys.PrevBoard):
			m.cursor = (m.cursor - 1 + len(m.boards)) % len(m.boards)
			m.load()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		m.table = m.createTable()
		m.load()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)

	title := "WEEKLY LEADERBOARD - " + m.current()
	if m.current() == localBoard {
		title = "LOCAL RUNS"
	}
	b.WriteString(titleStyle.Render(centerText(title, m.width)))
	b.WriteString("\n\n")

	if m.showSidebar {
		b.WriteString(m.renderWideLayout())
	} else {
		b.WriteString(m.renderNarrowLayout())
	}

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

func (m ScoreboardModel) renderWideLayout() string {
	sidebarStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(sidebarWidth).
		Padding(0, 1)

	var sidebar strings.Builder
	sidebar.WriteString("Boards\n")
	sidebar.WriteString(strings.Repeat("-", sidebarWidth-4))
	sidebar.WriteString("\n")

	for i, name := range m.boards {
		cursor := "  "
		style := lipgloss.NewStyle()
		if i == m.cursor {
			cursor = "> "
			style = style.Bold(true).Foreground(lipgloss.Color("229"))
		}
		sidebar.WriteString(style.Render(cursor + name))
		sidebar.WriteString("\n")
	}

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	return lipgloss.JoinHorizontal(lipgloss.Top,
		sidebarStyle.Render(sidebar.String()), "  ", tableStyle.Render(m.renderTableContent()))
}

func (m ScoreboardModel) renderNarrowLayout() string {
	var b strings.Builder

	b.WriteString(centerText(fmt.Sprintf("< %s >", m.current()), m.width))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	b.WriteString(centerText(tableStyle.Render(m.renderTableContent()), m.width))
	return b.String()
}

func (m ScoreboardModel) renderTableContent() string {
	emptyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(2, 4)

	switch {
	case m.err != nil:
		return emptyStyle.Render("Could not load scores:\n" + m.err.Error())
	case len(m.rows) == 0 && m.current() == localBoard:
		return emptyStyle.Render("No runs recorded yet.\nFinish a run to see it here!")
	case len(m.rows) == 0:
		return emptyStyle.Render("Nobody has posted a score this week.\nBe the first!")
	}
	return m.table.View()
}

// Rows returns the rows of the board on screen.
func (m ScoreboardModel) Rows() []table.Row {
	return slices.Clone(m.rows)
}

// Boards returns the names of the selectable boards.
func (m ScoreboardModel) Boards() []string {
	return slices.Clone(m.boards)
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the leaderboard screen on its own.
func RunScoreboard(store *storage.Store, width, height int, highlight string) error {
	p := tea.NewProgram(
		NewScoreboardModel(store, width, height, highlight),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
