package timekeeper

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"pomodoro/internal/core/model"
)

// ErrRunnerStopped is returned by commands issued after Run has returned.
var ErrRunnerStopped = errors.New("timer runner stopped")

// Config contains runtime options for Runner.
type Config struct {
	TickInterval time.Duration
	Clock        Clock
	Logger       *zap.Logger
}

type runnerCommand struct {
	fn       func(*TimeKeeper)
	finished chan struct{}
}

// Runner is the host side clock source. It owns the only goroutine that
// touches the TimeKeeper: commands and ticks are processed one at a time,
// and the ticker only exists while the countdown is running.
//
// Commands issued through Do and Post share one FIFO queue and run in the
// order they were issued.
type Runner struct {
	keeper  *TimeKeeper
	options Config

	mu      sync.Mutex
	pending []runnerCommand
	stopped bool

	wake     chan struct{}
	done     chan struct{}
	stopOnce sync.Once
}

// NewRunner wraps keeper. Call Run to start processing.
func NewRunner(keeper *TimeKeeper, options Config) *Runner {
	if options.TickInterval <= 0 {
		options.TickInterval = time.Second
	}
	if options.Clock == nil {
		options.Clock = SystemClock
	}
	if options.Logger == nil {
		options.Logger = zap.NewNop()
	}
	return &Runner{
		keeper:  keeper,
		options: options,
		wake:    make(chan struct{}, 1),
		done:    make(chan struct{}),
	}
}

// Run processes commands and ticks until ctx is cancelled. It must be
// called once.
func (runner *Runner) Run(ctx context.Context) error {
	defer runner.stop()

	var (
		ticker Ticker
		tickC  <-chan time.Time
	)
	stopTicker := func() {
		if ticker == nil {
			return
		}
		ticker.Stop()
		ticker = nil
		tickC = nil
	}
	defer stopTicker()

	syncTicker := func() {
		running := runner.keeper.State().Running
		switch {
		case running && ticker == nil:
			ticker = runner.options.Clock.NewTicker(runner.options.TickInterval)
			tickC = ticker.C()
			runner.options.Logger.Debug("ticker started")
		case !running && ticker != nil:
			stopTicker()
			runner.options.Logger.Debug("ticker stopped")
		}
	}

	syncTicker()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-runner.wake:
			for _, command := range runner.takePending() {
				command.fn(runner.keeper)
				syncTicker()
				if command.finished != nil {
					close(command.finished)
				}
			}
		case <-tickC:
			runner.keeper.Tick()
			syncTicker()
		}
	}
}

// Do runs fn on the runner goroutine and waits until it has finished
// and the ticker matches the new running state.
func (runner *Runner) Do(fn func(*TimeKeeper)) error {
	command := runnerCommand{fn: fn, finished: make(chan struct{})}
	if err := runner.enqueue(command); err != nil {
		return err
	}

	select {
	case <-command.finished:
		return nil
	case <-runner.done:
	}
	// Run may have finished the command just before it returned.
	select {
	case <-command.finished:
		return nil
	default:
		return ErrRunnerStopped
	}
}

// Post queues fn behind every command issued before it and returns
// without waiting. UI callbacks use it to keep click order.
func (runner *Runner) Post(fn func(*TimeKeeper)) error {
	return runner.enqueue(runnerCommand{fn: fn})
}

func (runner *Runner) enqueue(command runnerCommand) error {
	runner.mu.Lock()
	defer runner.mu.Unlock()
	if runner.stopped {
		return ErrRunnerStopped
	}
	runner.pending = append(runner.pending, command)
	select {
	case runner.wake <- struct{}{}:
	default:
	}
	return nil
}

func (runner *Runner) takePending() []runnerCommand {
	runner.mu.Lock()
	defer runner.mu.Unlock()
	pending := runner.pending
	runner.pending = nil
	return pending
}

func (runner *Runner) stop() {
	runner.mu.Lock()
	runner.stopped = true
	dropped := len(runner.pending)
	runner.pending = nil
	runner.mu.Unlock()

	if dropped > 0 {
		runner.options.Logger.Debug("queued commands dropped", zap.Int("count", dropped))
	}
	runner.stopOnce.Do(func() { close(runner.done) })
}

// SelectMode switches the timer to id.
func (runner *Runner) SelectMode(id model.ModeID) error {
	var selectErr error
	if err := runner.Do(func(keeper *TimeKeeper) {
		selectErr = keeper.SelectMode(id)
	}); err != nil {
		return err
	}
	return selectErr
}

// Start starts or resumes the countdown.
func (runner *Runner) Start() error {
	return runner.Do((*TimeKeeper).Start)
}

// Pause pauses the countdown.
func (runner *Runner) Pause() error {
	return runner.Do((*TimeKeeper).Pause)
}

// Toggle starts or pauses the countdown.
func (runner *Runner) Toggle() error {
	return runner.Do((*TimeKeeper).Toggle)
}

// Reset restores the current mode's full duration.
func (runner *Runner) Reset() error {
	return runner.Do((*TimeKeeper).Reset)
}

// Display reads the current display state.
func (runner *Runner) Display() (Display, error) {
	var display Display
	err := runner.Do(func(keeper *TimeKeeper) {
		display = keeper.Display()
	})
	return display, err
}

// State reads the current timer state.
func (runner *Runner) State() (TimerState, error) {
	var state TimerState
	err := runner.Do(func(keeper *TimeKeeper) {
		state = keeper.State()
	})
	return state, err
}
