package tui

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/fifteen/internal/core"
	"github.com/vovakirdan/fifteen/internal/puzzle"
)

// hudHeight is the number of rows below the board: status and help.
const hudHeight = 2

// Settings carries everything a Model needs besides the screen size.
type Settings struct {
	Title   string
	Options puzzle.Options
	Solver  puzzle.Solver
	Logger  *log.Logger
	// Shuffle scrambles the board when the model starts.
	Shuffle bool
}

var (
	statusStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Bold(true)
	solvedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	busyStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("208"))
	messageStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	helpStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// Model is the Bubble Tea model for one puzzle board.
type Model struct {
	title      string
	game       *puzzle.Game
	loop       *teaLoop
	host       *termHost
	screen     *core.Screen
	keyMapper  *KeyMapper
	help       help.Model
	logger     *log.Logger
	config     core.RuntimeConfig
	notice     string
	quitting   bool
	backToMenu bool
}

// NewModel creates a new Bubble Tea model for a puzzle.
func NewModel(s Settings, cfg core.RuntimeConfig) (Model, error) {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if s.Logger == nil {
		s.Logger = log.New(io.Discard)
	}
	opts := s.Options
	opts.Seed = cfg.Seed

	loop := newTeaLoop()
	host := &termHost{}
	game, err := puzzle.NewGame(loop, host, s.Solver, opts, s.Logger)
	if err != nil {
		return Model{}, fmt.Errorf("tui: cannot create game: %w", err)
	}

	m := Model{
		title:     s.Title,
		game:      game,
		loop:      loop,
		host:      host,
		screen:    core.NewScreen(cfg.ScreenW, boardHeight(cfg.ScreenH)),
		keyMapper: NewKeyMapper(),
		help:      help.New(),
		logger:    s.Logger,
		config:    cfg,
	}
	m.help.Width = cfg.ScreenW
	m.resizeBoard()
	if s.Shuffle {
		game.Shuffle()
	}
	return m, nil
}

func boardHeight(screenH int) int {
	return max(screenH-hudHeight, 0)
}

// Init starts any timers the initial board state queued.
func (m Model) Init() tea.Cmd {
	return m.loop.drain()
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		m.handleMouse(msg)

	case tea.WindowSizeMsg:
		m.handleResize(msg)

	default:
		m.loop.dispatch(msg)
	}

	return m, m.loop.drain()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keys := m.keyMapper.Keys
	switch {
	case key.Matches(msg, keys.Screenshot):
		m.game.Autoplay().Cancel()
		if err := m.saveScreenshot(); err != nil {
			m.notice = err.Error()
		}
		return m, nil
	case key.Matches(msg, keys.Help):
		m.game.Autoplay().Cancel()
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, keys.Back):
		m.game.Autoplay().Cancel()
		m.backToMenu = true
		return m, tea.Quit
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		m.quitting = true
		return m, tea.Quit
	}

	m.notice = ""
	if err := m.game.HandleAction(action); err != nil {
		m.report(action.String(), err)
	}
	return m, m.loop.drain()
}

// handleMouse maps left-button presses, drags, and releases to pointer
// events on the board.
func (m *Model) handleMouse(msg tea.MouseMsg) {
	var kind core.PointerKind
	switch {
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		kind = core.PointerDown
	case msg.Action == tea.MouseActionMotion:
		if m.game.Surface().Dragging() == nil {
			return
		}
		kind = core.PointerMove
	case msg.Action == tea.MouseActionRelease:
		kind = core.PointerUp
	default:
		return
	}
	if kind == core.PointerDown {
		m.notice = ""
	}
	if err := m.game.HandlePointer(core.PointerEvent{Kind: kind, X: msg.X, Y: msg.Y}); err != nil {
		m.report("pointer", err)
	}
}

func (m *Model) report(what string, err error) {
	if errors.Is(err, puzzle.ErrBusy) {
		m.notice = "solver is busy"
		return
	}
	m.notice = err.Error()
	m.logger.Debug("input rejected", "input", what, "err", err)
}

// handleResize processes window resize events.
func (m *Model) handleResize(msg tea.WindowSizeMsg) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, boardHeight(msg.Height))
	m.help.Width = msg.Width
	m.resizeBoard()
}

// resizeBoard fits the board to the screen and schedules a full repaint.
func (m *Model) resizeBoard() {
	m.game.Resize(m.screen.Width(), m.screen.Height())
	m.host.Invalidate(core.NewRect(0, 0, m.screen.Width(), m.screen.Height()))
}

// paint redraws the invalidated part of the board.
func (m Model) paint() {
	dirty := m.host.take()
	if dirty.Empty() {
		return
	}
	style := m.game.Options().Style
	m.screen.SetClip(dirty)
	m.screen.FillRect(dirty, core.Cell{Rune: ' ', Fg: style.Border, Bg: style.Background})
	m.game.Paint(screenPainter{screen: m.screen})
	m.screen.ResetClip()
}

// saveScreenshot saves the current board to a text file.
func (m Model) saveScreenshot() error {
	m.paint()

	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("tui: cannot find home directory: %w", err)
	}
	dir := filepath.Join(home, ".fifteen", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("tui: cannot create %s: %w", dir, err)
	}

	// Generate filename with timestamp
	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("fifteen_%s.txt", timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		return fmt.Errorf("tui: cannot save screenshot: %w", err)
	}
	m.logger.Info("screenshot saved", "path", path)
	return nil
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting || m.backToMenu {
		return ""
	}

	m.paint()
	return RenderScreen(m.screen) + "\n" + m.statusLine() + "\n" + helpStyle.Render(m.help.View(m.keyMapper.Keys))
}

// statusLine renders the heads-up display below the board.
func (m Model) statusLine() string {
	st := m.game.Status()
	line := statusStyle.Render(fmt.Sprintf("%s  moves: %d", m.title, st.Moves))
	switch {
	case st.Busy:
		line += "  " + busyStyle.Render("solving...")
	case st.Autoplay:
		line += "  " + busyStyle.Render(fmt.Sprintf("autoplay: %d left", st.Remaining))
	case st.Solved:
		line += "  " + solvedStyle.Render("solved!")
	}
	msg := m.notice
	if msg == "" {
		msg = st.Message
	}
	if msg != "" {
		line += "  " + messageStyle.Render(msg)
	}
	return line
}

// Game exposes the running game.
func (m Model) Game() *puzzle.Game {
	return m.game
}

// BackToMenu returns true if the user asked to return to the menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// IsQuitting returns true if the user requested to quit.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// Run starts the Bubble Tea program with the given settings.
// Returns true if the user asked to go back rather than quit.
func Run(s Settings, cfg core.RuntimeConfig) (bool, error) {
	model, err := NewModel(s, cfg)
	if err != nil {
		return false, err
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),       // Use alternate screen buffer
		tea.WithMouseCellMotion(), // Press, drag, and release events
	)

	final, err := p.Run()
	if err != nil {
		return false, err
	}
	if fm, ok := final.(Model); ok {
		return fm.BackToMenu(), nil
	}
	return false, nil
}
