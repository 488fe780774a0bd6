package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/fifteen/internal/core"
	"github.com/vovakirdan/fifteen/internal/registry"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.fifteen/host_key.
	HostKeyPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		IdleTimeout: 30 * time.Minute,
	}
}

// SettingsFunc builds puzzle settings for a chosen variant.
type SettingsFunc func(v registry.Variant) Settings

// SSHServer wraps a Wish SSH server that gives every session its own board.
type SSHServer struct {
	config   SSHServerConfig
	server   *ssh.Server
	settings SettingsFunc
	history  HistorySource
	logger   *log.Logger
}

// NewSSHServer creates a new SSH server with the given configuration.
// history may be nil.
func NewSSHServer(cfg SSHServerConfig, settings SettingsFunc, history HistorySource, logger *log.Logger) (*SSHServer, error) {
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "fifteen-ssh",
		})
	}

	srv := &SSHServer{
		config:   cfg,
		settings: settings,
		history:  history,
		logger:   logger,
	}

	// Resolve host key path
	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			return nil, fmt.Errorf("cannot get home directory: %w", homeErr)
		}
		hostKeyPath = filepath.Join(home, ".fifteen", "host_key")
	}

	// Ensure host key directory exists
	hostKeyDir := filepath.Dir(hostKeyPath)
	if mkdirErr := os.MkdirAll(hostKeyDir, 0o700); mkdirErr != nil {
		return nil, fmt.Errorf("cannot create host key directory: %w", mkdirErr)
	}

	// Create Wish server options
	opts := []ssh.Option{
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.loggingMiddleware,
		),
	}

	server, err := wish.NewServer(opts...)
	if err != nil {
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// teaHandler creates a Bubble Tea program for each SSH session.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sshSession.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sshSession.User())
		return nil, nil
	}

	cfg := core.RuntimeConfig{
		ScreenW: pty.Window.Width,
		ScreenH: pty.Window.Height,
		Seed:    time.Now().UnixNano(),
	}

	model := NewSessionModel(s.settings, s.history, cfg, s.logger.With("user", sshSession.User()))

	return model, []tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	}
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		s.logger.Info("session started",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
		next(sshSession)
		s.logger.Info("session ended",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
	}
}

// ListenAndServe starts the SSH server and blocks until shutdown.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.config.Address)

	// Setup signal handling for graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			s.logger.Error("server error", "error", err)
		}
	}()

	<-done
	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return s.server.Shutdown(ctx)
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}

type sessionScreen int

const (
	screenMenu sessionScreen = iota
	screenPuzzle
	screenHistory
)

// SessionModel manages the full session flow: menu -> puzzle -> menu.
// Each SSH connection runs its own SessionModel.
type SessionModel struct {
	settings SettingsFunc
	history  HistorySource
	config   core.RuntimeConfig
	logger   *log.Logger
	current  sessionScreen
	menu     MenuModel
	puzzle   *Model
	log      HistoryModel
	notice   string
	quitting bool
}

// NewSessionModel creates a new session model.
func NewSessionModel(settings SettingsFunc, history HistorySource, cfg core.RuntimeConfig, logger *log.Logger) SessionModel {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return SessionModel{
		settings: settings,
		history:  history,
		config:   cfg,
		logger:   logger,
		menu:     NewMenuModel(cfg, "15"),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle window resize globally
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.current {
	case screenPuzzle:
		return m.updatePuzzle(msg)
	case screenHistory:
		return m.updateHistory(msg)
	}
	return m.updateMenu(msg)
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	if m.menu.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.menu.WantsHistory() {
		m.log = NewHistoryModel(m.history, m.config.ScreenW, m.config.ScreenH)
		m.current = screenHistory
		return m, m.log.Init()
	}

	if selected := m.menu.Selected(); selected != nil {
		s := m.settings(*selected)
		if s.Logger == nil {
			s.Logger = m.logger
		}
		cfg := m.config
		cfg.Seed = time.Now().UnixNano()
		puzzle, err := NewModel(s, cfg)
		if err != nil {
			m.logger.Error("cannot start puzzle", "variant", selected.ID, "err", err)
			m.notice = err.Error()
			m.menu = NewMenuModel(m.config, selected.ID)
			return m, nil
		}
		m.puzzle = &puzzle
		m.current = screenPuzzle
		m.notice = ""
		return m, m.puzzle.Init()
	}

	return m, cmd
}

// updatePuzzle handles updates while a board is open.
func (m SessionModel) updatePuzzle(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.puzzle.Update(msg)
	if pm, ok := next.(Model); ok {
		m.puzzle = &pm
	}

	if m.puzzle.BackToMenu() {
		return m.toMenu()
	}

	if m.puzzle.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	return m, cmd
}

// updateHistory handles updates while the solve history is shown.
func (m SessionModel) updateHistory(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.log.Update(msg)
	if hm, ok := next.(HistoryModel); ok {
		m.log = hm
	}

	if m.log.IsGoingBack() {
		return m.toMenu()
	}

	if m.log.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	return m, cmd
}

// toMenu returns to a fresh menu, keeping the cursor on the last board.
func (m SessionModel) toMenu() (tea.Model, tea.Cmd) {
	preselect := "15"
	if sel := m.menu.Selected(); sel != nil {
		preselect = sel.ID
	}
	m.puzzle = nil
	m.current = screenMenu
	m.menu = NewMenuModel(m.config, preselect)
	return m, m.menu.Init()
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.current {
	case screenPuzzle:
		return m.puzzle.View()
	case screenHistory:
		return m.log.View()
	}
	if m.notice != "" {
		return m.menu.View() + "\n" + centerText(m.notice, m.config.ScreenW)
	}
	return m.menu.View()
}
