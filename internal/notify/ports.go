// Package notify turns user preferences and platform providers into the
// alert and announcement ports of a TimeKeeper.
package notify

import (
	"errors"

	"go.uber.org/zap"

	"pomodoro/internal/core/model"
	"pomodoro/internal/core/timekeeper"
	"pomodoro/internal/platform"
)

const alertTitle = "Pomodoro"

// Notifier posts a desktop notification.
type Notifier interface {
	Notify(title, body string)
}

// Sinks are the concrete outputs available to a host. Any may be nil.
type Sinks struct {
	Speaker  platform.Speaker
	Chime    platform.Chime
	Notifier Notifier
	// Bell is used when the chime cannot play, e.g. a terminal bell.
	Bell func()
}

// Ports builds TimeKeeper ports. A port is left nil when the preferences
// leave it nothing to do, so the timer skips it.
func Ports(settings model.Settings, sinks Sinks, logger *zap.Logger) timekeeper.Ports {
	if logger == nil {
		logger = zap.NewNop()
	}

	var ports timekeeper.Ports

	sound := settings.EnableSound && (sinks.Chime != nil || sinks.Bell != nil)
	notification := settings.EnableNotifications && sinks.Notifier != nil
	if sound || notification {
		ports.OnAlert = func() {
			if sound {
				playAlert(sinks, logger)
			}
			if notification {
				sinks.Notifier.Notify(alertTitle, "Time is up.")
			}
		}
	}

	if settings.EnableSpeech && sinks.Speaker != nil {
		ports.OnAnnounce = func(text string) {
			logger.Debug("announce", zap.String("text", text))
			if err := sinks.Speaker.Speak(text); err != nil {
				logFailure(logger, "speech failed", err, platform.ErrSpeechUnsupported)
			}
		}
	}

	return ports
}

func playAlert(sinks Sinks, logger *zap.Logger) {
	if sinks.Chime != nil {
		err := sinks.Chime.Play()
		if err == nil {
			return
		}
		logFailure(logger, "alert sound failed", err, platform.ErrSoundUnsupported)
	}
	if sinks.Bell != nil {
		sinks.Bell()
	}
}

func logFailure(logger *zap.Logger, msg string, err, unsupported error) {
	if errors.Is(err, unsupported) {
		logger.Debug(msg, zap.Error(err))
		return
	}
	logger.Warn(msg, zap.Error(err))
}
