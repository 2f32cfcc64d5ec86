package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"pomodoro/internal/core/model"
	"pomodoro/internal/core/timekeeper"
	"pomodoro/internal/logger"
	"pomodoro/internal/notify"
	"pomodoro/internal/platform"
	"pomodoro/internal/storage"
	"pomodoro/internal/tui"
)

const appName = "Pomodoro"

func main() {
	var (
		configPath = flag.String("config", "", "Path to settings.yaml (default: user config dir)")
		modeFlag   = flag.String("mode", "pomodoro", "Initial mode: pomodoro, short or long")
		speech     = flag.String("speech", "", "Override speech announcements (on|off)")
		sound      = flag.String("sound", "", "Override the alert sound (on|off)")
		logLevel   = flag.String("log-level", "", "Log level: debug, info, warn, error")
		logFile    = flag.String("log-file", "", "Write logs to this file (default: discard)")
		autostart  = flag.Bool("start", false, "Start the countdown immediately")
	)
	flag.Parse()

	if err := run(*configPath, *modeFlag, *speech, *sound, *logLevel, *logFile, *autostart); err != nil {
		fmt.Fprintf(os.Stderr, "pomodoro: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath, modeFlag, speech, sound, logLevel, logFile string, autostart bool) error {
	settings, err := loadSettings(configPath)
	if err != nil {
		return err
	}
	if err := applyToggle(&settings.EnableSpeech, "speech", speech); err != nil {
		return err
	}
	if err := applyToggle(&settings.EnableSound, "sound", sound); err != nil {
		return err
	}
	if logLevel != "" {
		if !logger.ValidLevel(logLevel) {
			return fmt.Errorf("invalid log level %q", logLevel)
		}
		settings.LogLevel = logLevel
	}
	// The terminal has no notification center.
	settings.EnableNotifications = false

	zapLogger := zap.NewNop()
	if logFile != "" {
		if err := os.MkdirAll(filepath.Dir(logFile), 0o755); err != nil {
			return fmt.Errorf("create log directory: %w", err)
		}
		file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer file.Close()
		zapLogger = logger.New(settings.LogLevel, file)
	}
	defer func() {
		_ = zapLogger.Sync()
	}()

	modeID, err := model.ParseModeID(modeFlag)
	if err != nil {
		return err
	}

	ports := notify.Ports(settings, notify.Sinks{
		Speaker: platform.NewSpeaker(),
		Chime:   platform.NewChime(),
		Bell: func() {
			fmt.Fprint(os.Stderr, "\a")
		},
	}, zapLogger)

	keeper := timekeeper.New(ports, timekeeper.WithLogger(zapLogger.Named("timekeeper")))
	if err := keeper.SelectMode(modeID); err != nil {
		return err
	}
	defer keeper.Close()

	m := tui.New(keeper, tui.Config{SpeechOn: settings.EnableSpeech, Logger: zapLogger})
	program := tea.NewProgram(m)
	if autostart {
		go program.Send(tea.KeyMsg{Type: tea.KeySpace})
	}

	zapLogger.Info("terminal timer started", zap.String("mode", string(modeID)))
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("run terminal ui: %w", err)
	}
	return nil
}

func loadSettings(configPath string) (model.Settings, error) {
	if configPath == "" {
		settings, err := storage.LoadSettings(appName)
		if err != nil {
			// Fall back to defaults; a broken settings file should not block the timer.
			fmt.Fprintf(os.Stderr, "pomodoro: %v\n", err)
		}
		return settings, nil
	}
	settings, err := storage.LoadSettingsFile(configPath)
	if err != nil {
		return settings, fmt.Errorf("load %s: %w", configPath, err)
	}
	return settings, nil
}

func applyToggle(target *bool, name, value string) error {
	switch value {
	case "":
	case "on", "true", "1":
		*target = true
	case "off", "false", "0":
		*target = false
	default:
		return fmt.Errorf("invalid %s value %q (want on or off)", name, value)
	}
	return nil
}
