package timekeeper

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"pomodoro/internal/core/model"
)

// Ports are the side effects a host supplies. Both are optional.
type Ports struct {
	OnAlert    func()
	OnAnnounce func(text string)
}

// TimerState is the single mutable state of a TimeKeeper.
type TimerState struct {
	Mode             model.Mode
	RemainingSeconds int
	Running          bool
}

// Phase derives the coarse countdown phase.
func (state TimerState) Phase() Phase {
	switch {
	case state.Running:
		return PhaseRunning
	case state.RemainingSeconds == 0:
		return PhaseExpired
	case state.RemainingSeconds < state.Mode.Seconds():
		return PhasePaused
	default:
		return PhaseIdle
	}
}

// Option configures a TimeKeeper.
type Option func(*TimeKeeper)

// WithLogger sets the transition logger.
func WithLogger(logger *zap.Logger) Option {
	return func(keeper *TimeKeeper) {
		if logger != nil {
			keeper.logger = logger
		}
	}
}

// WithNow overrides the clock used to stamp events.
func WithNow(now func() time.Time) Option {
	return func(keeper *TimeKeeper) {
		if now != nil {
			keeper.now = now
		}
	}
}

// TimeKeeper is the pomodoro countdown state machine.
//
// It is not safe for concurrent use: the host serializes every call,
// see Runner. Only the observer list is guarded.
type TimeKeeper struct {
	state  TimerState
	ports  Ports
	logger *zap.Logger
	now    func() time.Time

	mu     sync.Mutex
	events []chan Event
}

// New creates a TimeKeeper with the work mode selected and the countdown stopped.
func New(ports Ports, opts ...Option) *TimeKeeper {
	keeper := &TimeKeeper{
		ports:  ports,
		logger: zap.NewNop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(keeper)
	}
	keeper.resetTo(model.MustLookup(model.DefaultMode))
	return keeper
}

// State returns a copy of the current state.
func (keeper *TimeKeeper) State() TimerState {
	return keeper.state
}

// Mode returns the current mode.
func (keeper *TimeKeeper) Mode() model.Mode {
	return keeper.state.Mode
}

// Display returns the remaining time and status label for the UI.
func (keeper *TimeKeeper) Display() Display {
	mode := keeper.state.Mode
	label := mode.WorkingLabel
	if keeper.state.RemainingSeconds == 0 && mode.HasDone() {
		label = mode.DoneLabel
	}
	return Display{
		TimeText:    FormatRemaining(keeper.state.RemainingSeconds),
		StatusLabel: label,
		Running:     keeper.state.Running,
	}
}

// SelectMode switches to the given preset at full duration and stops the countdown.
func (keeper *TimeKeeper) SelectMode(id model.ModeID) error {
	mode, err := model.Lookup(id)
	if err != nil {
		keeper.logger.Warn("select mode rejected", zap.String("mode", string(id)))
		return err
	}
	keeper.resetTo(mode)
	keeper.logger.Debug("mode selected", zap.String("mode", string(id)))
	keeper.emit(EventModeSelected)
	return nil
}

// Reset returns the current mode to full duration and stops the countdown.
func (keeper *TimeKeeper) Reset() {
	keeper.resetTo(keeper.state.Mode)
	keeper.logger.Debug("timer reset", zap.String("mode", string(keeper.state.Mode.ID)))
	keeper.emit(EventReset)
}

// Start begins or resumes the countdown. Starting from full duration
// announces the mode's working label. An expired countdown must be
// reset before it can start again.
func (keeper *TimeKeeper) Start() {
	if keeper.state.Running {
		return
	}
	if keeper.state.RemainingSeconds <= 0 {
		keeper.logger.Debug("start ignored, countdown expired")
		return
	}

	fresh := keeper.state.RemainingSeconds == keeper.state.Mode.Seconds()
	keeper.state.Running = true
	if fresh {
		keeper.announce(keeper.state.Mode.WorkingLabel)
	}

	keeper.logger.Debug("countdown started",
		zap.String("mode", string(keeper.state.Mode.ID)),
		zap.Int("remaining_seconds", keeper.state.RemainingSeconds),
		zap.Bool("fresh", fresh),
	)
	keeper.emit(EventStarted)
}

// Pause halts the countdown and keeps the remaining time.
func (keeper *TimeKeeper) Pause() {
	if !keeper.state.Running {
		return
	}
	keeper.state.Running = false
	keeper.logger.Debug("countdown paused", zap.Int("remaining_seconds", keeper.state.RemainingSeconds))
	keeper.emit(EventPaused)
}

// Toggle pauses a running countdown and starts a stopped one.
func (keeper *TimeKeeper) Toggle() {
	if keeper.state.Running {
		keeper.Pause()
		return
	}
	keeper.Start()
}

// Tick advances the countdown by one second. Ticks delivered while the
// countdown is stopped are ignored.
func (keeper *TimeKeeper) Tick() {
	if !keeper.state.Running || keeper.state.RemainingSeconds <= 0 {
		keeper.logger.Debug("stray tick ignored")
		return
	}

	keeper.state.RemainingSeconds--
	if keeper.state.RemainingSeconds > 0 {
		keeper.emit(EventTick)
		return
	}

	keeper.state.Running = false
	keeper.alert()
	if keeper.state.Mode.HasDone() {
		keeper.announce(keeper.state.Mode.DoneLabel)
	}
	keeper.logger.Info("countdown finished", zap.String("mode", string(keeper.state.Mode.ID)))
	keeper.emit(EventExpired)
}

// Subscribe registers a new observer channel. Slow observers miss events.
func (keeper *TimeKeeper) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	keeper.mu.Lock()
	keeper.events = append(keeper.events, ch)
	keeper.mu.Unlock()
	return ch
}

// Close closes all observer channels.
func (keeper *TimeKeeper) Close() {
	keeper.mu.Lock()
	events := keeper.events
	keeper.events = nil
	keeper.mu.Unlock()

	for _, ch := range events {
		close(ch)
	}
}

func (keeper *TimeKeeper) resetTo(mode model.Mode) {
	keeper.state = TimerState{
		Mode:             mode,
		RemainingSeconds: mode.Seconds(),
		Running:          false,
	}
}

func (keeper *TimeKeeper) alert() {
	if keeper.ports.OnAlert == nil {
		return
	}
	keeper.ports.OnAlert()
}

func (keeper *TimeKeeper) announce(text string) {
	if keeper.ports.OnAnnounce == nil || text == "" {
		return
	}
	keeper.ports.OnAnnounce(text)
}

func (keeper *TimeKeeper) emit(eventType EventType) {
	event := Event{
		Type:      eventType,
		Mode:      keeper.state.Mode.ID,
		Phase:     keeper.state.Phase(),
		Remaining: time.Duration(keeper.state.RemainingSeconds) * time.Second,
		Display:   keeper.Display(),
		At:        keeper.now(),
	}

	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	for _, ch := range keeper.events {
		select {
		case ch <- event:
		default:
		}
	}
}
