package model

import (
	"fmt"
	"strings"
	"time"
)

// ModeID identifies one of the fixed timer presets.
type ModeID string

const (
	ModePomodoro   ModeID = "pomodoro"
	ModeShortBreak ModeID = "short_break"
	ModeLongBreak  ModeID = "long_break"
)

// Mode describes a timer preset.
type Mode struct {
	ID       ModeID
	Label    string
	Duration time.Duration

	// WorkingLabel is shown while the mode is active and spoken when a
	// countdown starts from full duration.
	WorkingLabel string
	// DoneLabel is shown and spoken when the countdown reaches zero.
	// Empty when the mode has nothing to say at zero.
	DoneLabel string
}

// Seconds returns the full duration in whole seconds.
func (mode Mode) Seconds() int {
	return int(mode.Duration / time.Second)
}

// HasDone reports whether the mode announces the end of its countdown.
func (mode Mode) HasDone() bool {
	return mode.DoneLabel != ""
}

// InvalidModeError is returned when a mode identifier is not one of the presets.
type InvalidModeError struct {
	ID ModeID
}

func (err *InvalidModeError) Error() string {
	return fmt.Sprintf("invalid mode %q", string(err.ID))
}

var modeTable = []Mode{
	{
		ID:           ModePomodoro,
		Label:        "Pomodoro",
		Duration:     25 * time.Minute,
		WorkingLabel: "Get to work!",
		DoneLabel:    "Party!",
	},
	{
		ID:           ModeShortBreak,
		Label:        "Short break",
		Duration:     5 * time.Minute,
		WorkingLabel: "Relax.",
	},
	{
		ID:           ModeLongBreak,
		Label:        "Long break",
		Duration:     15 * time.Minute,
		WorkingLabel: "Seriously. Relax.",
	},
}

// DefaultMode is selected when a timer is created.
const DefaultMode = ModePomodoro

// Modes returns the presets in display order.
func Modes() []Mode {
	return append([]Mode(nil), modeTable...)
}

// Lookup returns the preset for id.
func Lookup(id ModeID) (Mode, error) {
	for _, mode := range modeTable {
		if mode.ID == id {
			return mode, nil
		}
	}
	return Mode{}, &InvalidModeError{ID: id}
}

// MustLookup is Lookup for identifiers known at compile time.
func MustLookup(id ModeID) Mode {
	mode, err := Lookup(id)
	if err != nil {
		panic(err)
	}
	return mode
}

// ParseModeID maps user input such as "work" or "long" to a ModeID.
func ParseModeID(value string) (ModeID, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "pomodoro", "work", "tomato":
		return ModePomodoro, nil
	case "short_break", "short-break", "short":
		return ModeShortBreak, nil
	case "long_break", "long-break", "long":
		return ModeLongBreak, nil
	}
	return "", &InvalidModeError{ID: ModeID(value)}
}
