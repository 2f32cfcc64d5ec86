// Package tui is the terminal host for the pomodoro timer.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"pomodoro/internal/core/model"
	"pomodoro/internal/core/timekeeper"
)

// TickMsg is the one second clock signal. Ticks from an older generation
// were scheduled before the countdown last stopped and are dropped.
type TickMsg struct {
	Generation int
	Time       time.Time
}

// Config contains terminal host options.
type Config struct {
	TickInterval time.Duration
	SpeechOn     bool
	Logger       *zap.Logger
}

// Model is the bubbletea model wrapping a TimeKeeper. Bubbletea calls
// Update from a single goroutine, which serializes every timer call.
type Model struct {
	keeper     *timekeeper.TimeKeeper
	config     Config
	generation int
	ticking    bool
	lastErr    error
	width      int
	quitting   bool
}

// New creates the terminal model.
func New(keeper *timekeeper.TimeKeeper, config Config) Model {
	if config.TickInterval <= 0 {
		config.TickInterval = time.Second
	}
	if config.Logger == nil {
		config.Logger = zap.NewNop()
	}
	return Model{keeper: keeper, config: config}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case TickMsg:
		if msg.Generation != m.generation || !m.ticking {
			return m, nil
		}
		m.keeper.Tick()
		if m.keeper.State().Running {
			return m, m.tickCmd()
		}
		m.ticking = false
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.lastErr = nil
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		m.quitting = true
		m.stopClock()
		return m, tea.Quit
	case " ", "enter", "t":
		m.keeper.Toggle()
	case "r":
		m.keeper.Reset()
	case "p", "1":
		m.selectMode(model.ModePomodoro)
	case "s", "2":
		m.selectMode(model.ModeShortBreak)
	case "l", "3":
		m.selectMode(model.ModeLongBreak)
	default:
		return m, nil
	}
	return m, m.syncClock()
}

func (m *Model) selectMode(id model.ModeID) {
	if err := m.keeper.SelectMode(id); err != nil {
		m.lastErr = err
		m.config.Logger.Warn("select mode", zap.Error(err))
	}
}

// syncClock starts the tick loop when the countdown runs and invalidates
// any pending tick when it does not.
func (m *Model) syncClock() tea.Cmd {
	running := m.keeper.State().Running
	switch {
	case running && !m.ticking:
		m.generation++
		m.ticking = true
		return m.tickCmd()
	case !running:
		m.stopClock()
	}
	return nil
}

func (m *Model) stopClock() {
	if m.ticking {
		m.generation++
	}
	m.ticking = false
}

func (m Model) tickCmd() tea.Cmd {
	generation := m.generation
	return tea.Tick(m.config.TickInterval, func(t time.Time) tea.Msg {
		return TickMsg{Generation: generation, Time: t}
	})
}

// Display returns the timer display.
func (m Model) Display() timekeeper.Display {
	return m.keeper.Display()
}

// Ticking reports whether a tick is scheduled.
func (m Model) Ticking() bool {
	return m.ticking
}

// Generation returns the current tick generation.
func (m Model) Generation() int {
	return m.generation
}
