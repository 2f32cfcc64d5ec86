package preferences

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"pomodoro/internal/core/model"
)

var logLevels = []string{"debug", "info", "warn", "error"}

// Window handles the preferences UI.
type Window struct {
	window        fyne.Window
	settings      model.Settings
	onSave        func(model.Settings)
	speech        *widget.Check
	sound         *widget.Check
	notifications *widget.Check
	logLevel      *widget.Select
}

// New creates a preferences window.
func New(app fyne.App, title string, settings model.Settings, onSave func(model.Settings)) *Window {
	window := app.NewWindow(title + " Preferences")

	prefs := &Window{
		window:        window,
		onSave:        onSave,
		speech:        widget.NewCheck("Announce start and finish", nil),
		sound:         widget.NewCheck("Play a sound when time is up", nil),
		notifications: widget.NewCheck("Show a notification when time is up", nil),
		logLevel:      widget.NewSelect(logLevels, nil),
	}
	prefs.UpdateSettings(settings)

	form := container.NewVBox(
		widget.NewLabelWithStyle("Alerts", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		prefs.speech,
		prefs.sound,
		prefs.notifications,
		widget.NewLabelWithStyle("Diagnostics", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewHBox(widget.NewLabel("Log level (applies on restart)"), prefs.logLevel),
	)

	saveButton := widget.NewButton("Save", prefs.handleSave)
	cancelButton := widget.NewButton("Cancel", func() {
		prefs.UpdateSettings(prefs.settings)
		window.Hide()
	})
	buttons := container.NewHBox(saveButton, layout.NewSpacer(), cancelButton)

	window.SetContent(container.NewBorder(nil, buttons, nil, nil, form))
	window.Resize(fyne.NewSize(380, 260))
	window.SetCloseIntercept(func() {
		window.Hide()
	})

	return prefs
}

// Show displays the preferences window.
func (prefs *Window) Show() {
	prefs.window.Show()
	prefs.window.RequestFocus()
}

// UpdateSettings replaces window values.
func (prefs *Window) UpdateSettings(settings model.Settings) {
	prefs.settings = settings
	prefs.speech.SetChecked(settings.EnableSpeech)
	prefs.sound.SetChecked(settings.EnableSound)
	prefs.notifications.SetChecked(settings.EnableNotifications)
	prefs.logLevel.SetSelected(settings.LogLevel)
}

func (prefs *Window) handleSave() {
	settings := prefs.settings
	settings.EnableSpeech = prefs.speech.Checked
	settings.EnableSound = prefs.sound.Checked
	settings.EnableNotifications = prefs.notifications.Checked
	if prefs.logLevel.Selected != "" {
		settings.LogLevel = prefs.logLevel.Selected
	}

	prefs.settings = settings
	if prefs.onSave != nil {
		prefs.onSave(settings)
	}
	prefs.window.Hide()
}
