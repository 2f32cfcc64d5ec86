package model

// Settings are the user preferences that survive restarts. Timer state
// and durations are not part of them.
type Settings struct {
	EnableSpeech        bool
	EnableSound         bool
	EnableNotifications bool
	LogLevel            string
}

// DefaultSettings returns default preferences.
func DefaultSettings() Settings {
	return Settings{
		EnableSpeech:        true,
		EnableSound:         true,
		EnableNotifications: true,
		LogLevel:            "info",
	}
}
