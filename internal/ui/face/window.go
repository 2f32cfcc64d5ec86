package face

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"pomodoro/internal/core/model"
	"pomodoro/internal/core/timekeeper"
)

// Callbacks defines face action handlers.
type Callbacks struct {
	OnToggle func()
	OnSelect func(model.ModeID)
	OnReset  func()
}

// Window is the timer face: status label, remaining time, start/pause,
// mode buttons and reset.
type Window struct {
	window      fyne.Window
	statusLabel *canvas.Text
	timeLabel   *canvas.Text
	tomato      *widget.Button
	modeButtons map[model.ModeID]*widget.Button
	callbacks   Callbacks
}

var (
	tomatoRed = color.NRGBA{R: 229, G: 83, B: 61, A: 255}
	leafGreen = color.NRGBA{R: 79, G: 163, B: 90, A: 255}
)

// New creates the face window. It is hidden until Show.
func New(app fyne.App, title string, callbacks Callbacks) *Window {
	window := app.NewWindow(title)
	if app.Icon() != nil {
		window.SetIcon(app.Icon())
	}

	statusLabel := canvas.NewText("", tomatoRed)
	statusLabel.Alignment = fyne.TextAlignCenter
	statusLabel.TextStyle = fyne.TextStyle{Bold: true}
	statusLabel.TextSize = 22

	timeLabel := canvas.NewText("--:--", tomatoRed)
	timeLabel.Alignment = fyne.TextAlignCenter
	timeLabel.TextStyle = fyne.TextStyle{Bold: true, Monospace: true}
	timeLabel.TextSize = 56

	face := &Window{
		window:      window,
		statusLabel: statusLabel,
		timeLabel:   timeLabel,
		modeButtons: make(map[model.ModeID]*widget.Button),
		callbacks:   callbacks,
	}

	face.tomato = widget.NewButtonWithIcon("Start", theme.MediaPlayIcon(), func() {
		if face.callbacks.OnToggle != nil {
			face.callbacks.OnToggle()
		}
	})
	face.tomato.Importance = widget.HighImportance

	modeRow := container.NewHBox(layout.NewSpacer())
	for _, mode := range model.Modes() {
		id := mode.ID
		button := widget.NewButton(mode.Label, func() {
			if face.callbacks.OnSelect != nil {
				face.callbacks.OnSelect(id)
			}
		})
		face.modeButtons[id] = button
		modeRow.Add(button)
	}
	modeRow.Add(layout.NewSpacer())

	reset := widget.NewButtonWithIcon("Reset", theme.MediaReplayIcon(), func() {
		if face.callbacks.OnReset != nil {
			face.callbacks.OnReset()
		}
	})

	content := container.NewVBox(
		modeRow,
		layout.NewSpacer(),
		statusLabel,
		timeLabel,
		layout.NewSpacer(),
		container.NewGridWithColumns(2, face.tomato, reset),
	)
	window.SetContent(container.NewPadded(content))
	window.Resize(fyne.NewSize(380, 300))
	window.SetCloseIntercept(func() {
		window.Hide()
	})

	return face
}

// Show displays the face window.
func (face *Window) Show() {
	face.window.Show()
	face.window.RequestFocus()
}

// Hide hides the face window.
func (face *Window) Hide() {
	face.window.Hide()
}

// Update schedules a redraw with the given display on the UI thread.
func (face *Window) Update(display timekeeper.Display, mode model.ModeID) {
	fyne.Do(func() {
		face.updateUnsafe(display, mode)
	})
}

func (face *Window) updateUnsafe(display timekeeper.Display, mode model.ModeID) {
	textColor := tomatoRed
	if mode != model.ModePomodoro {
		textColor = leafGreen
	}

	face.statusLabel.Text = display.StatusLabel
	face.statusLabel.Color = textColor
	face.statusLabel.Refresh()

	face.timeLabel.Text = display.TimeText
	face.timeLabel.Color = textColor
	face.timeLabel.Refresh()

	if display.Running {
		face.tomato.SetText("Pause")
		face.tomato.SetIcon(theme.MediaPauseIcon())
	} else {
		face.tomato.SetText("Start")
		face.tomato.SetIcon(theme.MediaPlayIcon())
	}

	for id, button := range face.modeButtons {
		if id == mode {
			button.Importance = widget.MediumImportance
		} else {
			button.Importance = widget.LowImportance
		}
		button.Refresh()
	}
}
