package timekeeper

import "fmt"

// Display is the read model consumed by hosts.
type Display struct {
	TimeText    string
	StatusLabel string
	Running     bool
}

// String renders the face text, e.g. "Get to work! 25:00" or "Party! 0:00".
func (display Display) String() string {
	if display.StatusLabel == "" {
		return display.TimeText
	}
	return display.StatusLabel + " " + display.TimeText
}

// FormatRemaining renders seconds as minutes:seconds with zero padded seconds.
func FormatRemaining(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}
