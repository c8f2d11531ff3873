package tui

import (
	"fmt"
	"io"
	"math/rand"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/lox/warsim/internal/war"
)

const (
	sidebarWidth = 24
	helpHeight   = 1

	// DefaultAutoplayDelay is the pause between rounds while autoplaying
	DefaultAutoplayDelay = 200 * time.Millisecond
)

// Options configures a Model
type Options struct {
	Game     war.Config
	Seed     int64
	Delay    time.Duration
	Logger   *log.Logger
	GameOpts []war.Option
}

// tickMsg drives autoplay. Ticks from a previous autoplay run are ignored.
type tickMsg struct {
	gen int
}

// eventLog collects rendered narration as the game publishes events
type eventLog struct {
	display *war.Display
	lines   []string
}

func (l *eventLog) OnEvent(event war.GameEvent) {
	if line := l.display.Render(event); line != "" {
		l.lines = append(l.lines, strings.Split(line, "\n")...)
	}
}

// Model is the Bubble Tea model for stepping through a game of War
type Model struct {
	factory *war.Factory
	seed    int64
	games   int
	delay   time.Duration
	logger  *log.Logger

	game    *war.Game
	log     *eventLog
	lastErr error

	logViewport viewport.Model
	autoplay    bool
	tickGen     int

	width    int
	height   int
	quitting bool
}

// New creates a model and deals the first game
func New(opts Options) (*Model, error) {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Delay <= 0 {
		opts.Delay = DefaultAutoplayDelay
	}

	vp := viewport.New(10, 5)
	vp.SetContent("")

	m := &Model{
		factory:     war.NewFactory(opts.Game, append([]war.Option{war.WithLogger(opts.Logger)}, opts.GameOpts...)...),
		seed:        opts.Seed,
		delay:       opts.Delay,
		logger:      opts.Logger.WithPrefix("tui"),
		logViewport: vp,
	}
	if err := m.newGame(); err != nil {
		return nil, err
	}
	return m, nil
}

// newGame deals game number m.games, seeded with seed+games
func (m *Model) newGame() error {
	sink := &eventLog{display: war.NewDisplay(io.Discard)}
	seed := m.seed + int64(m.games)
	g, err := m.factory.Create(war.Config{},
		war.WithRNG(rand.New(rand.NewSource(seed))),
		war.WithSubscriber(sink),
	)
	if err != nil {
		return err
	}

	m.logger.Debug("Dealt new game", "game", m.games+1, "seed", seed)
	m.games++
	m.game = g
	m.log = sink
	m.autoplay = false
	m.refresh()
	return nil
}

// Game returns the game being shown
func (m *Model) Game() *war.Game { return m.game }

// Lines returns the narration so far
func (m *Model) Lines() []string { return m.log.lines }

// Autoplay reports whether rounds are being played on a timer
func (m *Model) Autoplay() bool { return m.autoplay }

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	return nil
}

// step plays one round and publishes the result once the game is decided
func (m *Model) step() {
	if m.game.Done() {
		return
	}
	m.game.Step()
	if m.game.Done() {
		m.game.PlayGame()
		m.autoplay = false
	}
	m.refresh()
}

func (m *Model) refresh() {
	m.logViewport.SetContent(strings.Join(m.log.lines, "\n"))
	m.logViewport.GotoBottom()
}

func (m *Model) tick() tea.Cmd {
	gen := m.tickGen
	return tea.Tick(m.delay, func(time.Time) tea.Msg {
		return tickMsg{gen: gen}
	})
}

// Update handles messages in the TUI
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case tickMsg:
		if !m.autoplay || msg.gen != m.tickGen {
			return m, nil
		}
		m.step()
		if m.autoplay {
			return m, m.tick()
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			m.quitting = true
			return m, tea.Quit
		case " ", "enter", "s":
			m.step()
			return m, nil
		case "a":
			if m.game.Done() {
				return m, nil
			}
			m.autoplay = !m.autoplay
			m.tickGen++
			if m.autoplay {
				return m, m.tick()
			}
			return m, nil
		case "n":
			if !m.game.Done() {
				return m, nil
			}
			m.lastErr = m.newGame()
			if m.lastErr != nil {
				m.logger.Error("Failed to deal new game", "error", m.lastErr)
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.logViewport, cmd = m.logViewport.Update(msg)
	return m, cmd
}

func (m *Model) resize() {
	w := max(m.width-sidebarWidth-4, 1)
	h := max(m.height-helpHeight-2, 1)
	m.logViewport.Width = w
	m.logViewport.Height = h
	m.logViewport.GotoBottom()
}

// View renders the TUI
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	logPane := PaneStyle.
		Width(m.logViewport.Width).
		Height(m.logViewport.Height).
		Render(m.logViewport.View())

	sidebar := PaneStyle.
		Width(sidebarWidth).
		Height(m.logViewport.Height).
		Render(m.renderSidebar())

	top := lipgloss.JoinHorizontal(lipgloss.Top, logPane, sidebar)
	return lipgloss.JoinVertical(lipgloss.Left, top, HelpStyle.Render(m.helpText()))
}

func (m *Model) renderSidebar() string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render(fmt.Sprintf("Game %d", m.games)))
	b.WriteString("\n")
	b.WriteString(InfoStyle.Render(fmt.Sprintf("Round %d/%d", m.game.Round(), m.game.Config().MaxRounds())))
	b.WriteString("\n\n")

	for i, p := range m.game.Players() {
		name := fmt.Sprintf("Player %d", i+1)
		if p.Lost() {
			b.WriteString(LostStyle.Render(name + "  out"))
		} else {
			b.WriteString(PlayerStyle.Render(name))
			b.WriteString(fmt.Sprintf("\n  draw %3d  won %3d", p.DrawCount(), p.WinCount()))
		}
		b.WriteString("\n")
	}

	if m.game.Done() {
		b.WriteString("\n")
		result := m.game.Result()
		switch {
		case result.TimedOut:
			b.WriteString(WarningStyle.Render("Timed out"))
		case result.Winner >= 0:
			b.WriteString(WinnerStyle.Render(fmt.Sprintf("Player %d wins", result.Winner+1)))
		}
	}
	if m.autoplay {
		b.WriteString("\n")
		b.WriteString(WarningStyle.Render("autoplay"))
	}
	return b.String()
}

func (m *Model) helpText() string {
	if m.game.Done() {
		return "n new game • ↑↓ scroll • q quit"
	}
	return "space step • a autoplay • ↑↓ scroll • q quit"
}

// Run starts the program and blocks until the user quits
func Run(opts Options) error {
	m, err := New(opts)
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
