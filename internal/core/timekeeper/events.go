package timekeeper

import (
	"time"

	"pomodoro/internal/core/model"
)

// Phase is the coarse state of the countdown.
type Phase string

const (
	PhaseIdle    Phase = "idle"
	PhaseRunning Phase = "running"
	PhasePaused  Phase = "paused"
	PhaseExpired Phase = "expired"
)

// EventType defines the type of TimeKeeper event.
type EventType string

const (
	EventModeSelected EventType = "mode_selected"
	EventStarted      EventType = "started"
	EventPaused       EventType = "paused"
	EventTick         EventType = "tick"
	EventExpired      EventType = "expired"
	EventReset        EventType = "reset"
)

// Event represents a TimeKeeper update for observers.
type Event struct {
	Type      EventType
	Mode      model.ModeID
	Phase     Phase
	Remaining time.Duration
	Display   Display
	At        time.Time
}
