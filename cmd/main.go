package main

import (
	"context"
	"errors"
	"log"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
	"go.uber.org/zap"

	"pomodoro/internal/core/model"
	"pomodoro/internal/core/timekeeper"
	"pomodoro/internal/logger"
	"pomodoro/internal/notify"
	"pomodoro/internal/platform"
	"pomodoro/internal/storage"
	"pomodoro/internal/ui/face"
	"pomodoro/internal/ui/preferences"
	"pomodoro/internal/ui/tray"
)

const appName = "Pomodoro"

type fyneNotifier struct {
	app fyne.App
}

func (notifier fyneNotifier) Notify(title, body string) {
	notifier.app.SendNotification(fyne.NewNotification(title, body))
}

func main() {
	lock, err := platform.AcquireInstanceLock(appName)
	if err != nil {
		if errors.Is(err, platform.ErrAlreadyRunning) {
			log.Printf("timer already running, asked it to show: %v", err)
		} else {
			log.Printf("single instance: %v", err)
		}
		return
	}
	defer func() {
		_ = lock.Release()
	}()

	settings, err := storage.LoadSettings(appName)
	if err != nil {
		log.Printf("load settings: %v", err)
	}

	zapLogger := logger.New(settings.LogLevel, nil)
	defer func() {
		_ = zapLogger.Sync()
	}()

	fyneApp := app.NewWithID("com.pomodoro.timer")
	fyneApp.SetIcon(theme.MediaPlayIcon())

	sinks := notify.Sinks{
		Speaker:  platform.NewSpeaker(),
		Chime:    platform.NewChime(),
		Notifier: fyneNotifier{app: fyneApp},
	}
	dispatcher := notify.NewDispatcher(notify.Ports(settings, sinks, zapLogger))

	keeper := timekeeper.New(dispatcher.Ports(), timekeeper.WithLogger(zapLogger.Named("timekeeper")))
	runner := timekeeper.NewRunner(keeper, timekeeper.Config{
		TickInterval: time.Second,
		Logger:       zapLogger.Named("runner"),
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// command queues a timer command without blocking the UI thread.
	// Fyne runs callbacks on one goroutine, so commands keep click order.
	command := func(name string, fn func(*timekeeper.TimeKeeper)) {
		if err := runner.Post(fn); err != nil && !errors.Is(err, timekeeper.ErrRunnerStopped) {
			zapLogger.Warn("timer command failed", zap.String("command", name), zap.Error(err))
		}
	}
	toggle := func() { command("toggle", (*timekeeper.TimeKeeper).Toggle) }
	reset := func() { command("reset", (*timekeeper.TimeKeeper).Reset) }
	selectMode := func(id model.ModeID) {
		command("select", func(keeper *timekeeper.TimeKeeper) {
			if err := keeper.SelectMode(id); err != nil {
				zapLogger.Warn("timer command failed", zap.String("command", "select"), zap.Error(err))
			}
		})
	}

	faceWindow := face.New(fyneApp, appName, face.Callbacks{
		OnToggle: toggle,
		OnSelect: selectMode,
		OnReset:  reset,
	})
	go lock.Serve(func() {
		fyne.Do(faceWindow.Show)
	})

	prefsWindow := preferences.New(fyneApp, appName, settings, func(updated model.Settings) {
		settings = updated
		dispatcher.Set(notify.Ports(settings, sinks, zapLogger))
		if err := storage.SaveSettings(appName, settings); err != nil {
			zapLogger.Error("save settings", zap.Error(err))
		}
	})

	var trayManager *tray.Manager
	quit := func() {
		cancel()
		keeper.Close()
		fyneApp.Quit()
	}

	if desktopApp, ok := fyneApp.(desktop.App); ok {
		trayManager = tray.New(desktopApp, appName, tray.Callbacks{
			OnShowTimer:   faceWindow.Show,
			OnPreferences: prefsWindow.Show,
			OnToggle:      toggle,
			OnReset:       reset,
			OnSelect:      selectMode,
			OnQuit:        quit,
		})
		desktopApp.SetSystemTrayIcon(theme.MediaPlayIcon())
	} else {
		zapLogger.Info("system tray unsupported on this platform")
	}

	events := keeper.Subscribe(16)
	initial := keeper.Display()
	faceWindow.Update(initial, keeper.Mode().ID)
	updateTray(trayManager, initial, keeper.Mode().ID)

	go func() {
		if err := runner.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			zapLogger.Error("timer runner stopped", zap.Error(err))
		}
	}()

	go func() {
		for event := range events {
			handleEvent(event, faceWindow, trayManager)
		}
	}()

	faceWindow.Show()
	fyneApp.Run()
	cancel()
}

func handleEvent(event timekeeper.Event, faceWindow *face.Window, trayManager *tray.Manager) {
	faceWindow.Update(event.Display, event.Mode)
	fyne.Do(func() {
		updateTray(trayManager, event.Display, event.Mode)
	})
	if event.Type == timekeeper.EventExpired {
		fyne.Do(faceWindow.Show)
	}
}

func updateTray(trayManager *tray.Manager, display timekeeper.Display, mode model.ModeID) {
	if trayManager == nil {
		return
	}
	trayManager.Update(display.String(), display.Running, mode)
}
