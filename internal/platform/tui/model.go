package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/numrun/internal/core"
	"github.com/vovakirdan/numrun/internal/registry"
	"github.com/vovakirdan/numrun/internal/storage"
)

// Model is the Bubble Tea model running one game session.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	config     core.RuntimeConfig
	player     string
	keyMapper  *KeyMapper
	hold       holdTracker
	inputFrame core.InputFrame
	gameState  core.GameState
	started    time.Time
	now        func() time.Time
	quitting   bool
	backToMenu bool
	scoreSaved bool // Whether the finished run has been recorded
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, player string) Model {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = 60
	}

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		config:     cfg,
		player:     player,
		keyMapper:  NewKeyMapper(),
		inputFrame: core.NewInputFrame(),
		started:    time.Now(),
		now:        time.Now,
	}
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	switch {
	case isQuit:
		m.quitting = true
		return m, tea.Quit

	case action == core.ActionLeft, action == core.ActionRight:
		m.hold.press(action, m.now())

	case action == core.ActionBack && (m.gameState.GameOver || !m.gameState.Paused):
		// A paused run gets Back itself to close its overlay.
		m.backToMenu = true
		return m, tea.Quit

	case action != core.ActionNone:
		m.inputFrame.Set(action)
	}

	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.backToMenu {
		return m, nil
	}

	m.inputFrame.Intent = m.hold.intent(m.now())
	result := m.game.Step(m.inputFrame)

	if m.gameState.GameOver && !result.State.GameOver {
		// Restarted in place.
		m.scoreSaved = false
		m.started = m.now()
		m.hold.release()
	}
	m.gameState = result.State

	if m.gameState.GameOver && !m.scoreSaved {
		m.saveRun()
		m.scoreSaved = true
	}

	m.inputFrame.Clear()
	m.inputFrame.Intent = core.Intent{}
	return m, tickCmd(m.config.TickRate)
}

// saveRun records the finished run. Best effort; the game goes on regardless.
func (m *Model) saveRun() {
	if m.store == nil {
		return
	}
	st := m.gameState
	if st.Score > 0 {
		//nolint:errcheck // Best-effort save
		m.store.SaveScore(m.player, st.Level, st.Score)
	}
	//nolint:errcheck // Best-effort save
	m.store.SaveRun(storage.Run{
		Player:   m.player,
		Level:    st.Level,
		Stage:    st.Stage,
		Outcome:  st.Outcome,
		Score:    st.Score,
		Duration: m.now().Sub(m.started),
	})
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".numrun", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))

	//nolint:errcheck // Best-effort save
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.screen.Clear()
	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Close releases whatever the game holds open, such as in-flight fetches.
func (m Model) Close() {
	if c, ok := m.game.(interface{ Close() }); ok {
		c.Close()
	}
}

// Run starts the Bubble Tea program with the given game. It reports
// whether the player asked to go back to the menu.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, player string) (backToMenu bool, err error) {
	p := tea.NewProgram(
		NewModel(game, store, cfg, player),
		tea.WithAltScreen(),
	)

	final, err := p.Run()
	if m, ok := final.(Model); ok {
		m.Close()
	}
	if err != nil {
		return false, err
	}
	m, ok := final.(Model)
	return ok && m.BackToMenu(), nil
}
