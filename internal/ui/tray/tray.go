package tray

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"

	"pomodoro/internal/core/model"
)

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnShowTimer   func()
	OnPreferences func()
	OnToggle      func()
	OnReset       func()
	OnSelect      func(model.ModeID)
	OnQuit        func()
}

// menuHost is the part of desktop.App the manager drives.
type menuHost interface {
	SetSystemTrayMenu(menu *fyne.Menu)
}

// Manager handles system tray state.
type Manager struct {
	app        menuHost
	title      string
	statusItem *fyne.MenuItem
	toggleItem *fyne.MenuItem
	modeItems  map[model.ModeID]*fyne.MenuItem
	callbacks  Callbacks
	running    bool
	mode       model.ModeID
}

// New creates a tray manager with the provided callbacks.
func New(app desktop.App, title string, callbacks Callbacks) *Manager {
	return newManager(app, title, callbacks)
}

func newManager(app menuHost, title string, callbacks Callbacks) *Manager {
	manager := &Manager{
		app:       app,
		title:     title,
		callbacks: callbacks,
		modeItems: make(map[model.ModeID]*fyne.MenuItem),
	}

	manager.statusItem = fyne.NewMenuItem("Status: starting...", nil)
	manager.statusItem.Disabled = true

	manager.toggleItem = fyne.NewMenuItem("Start", func() {
		if manager.callbacks.OnToggle != nil {
			manager.callbacks.OnToggle()
		}
	})

	for _, mode := range model.Modes() {
		id := mode.ID
		manager.modeItems[id] = fyne.NewMenuItem(mode.Label, func() {
			if manager.callbacks.OnSelect != nil {
				manager.callbacks.OnSelect(id)
			}
		})
	}

	manager.refreshMenu()
	return manager
}

// Update applies one timer event. The menu is rebuilt at most once, and
// only when a visible item changed.
func (manager *Manager) Update(status string, running bool, mode model.ModeID) {
	changed := manager.setRunning(running)
	if manager.setMode(mode) {
		changed = true
	}
	if manager.setStatus(status) {
		changed = true
	}
	if changed {
		manager.refreshMenu()
	}
}

func (manager *Manager) setRunning(running bool) bool {
	if manager.running == running {
		return false
	}
	manager.running = running
	if running {
		manager.toggleItem.Label = "Pause"
	} else {
		manager.toggleItem.Label = "Start"
	}
	return true
}

func (manager *Manager) setMode(id model.ModeID) bool {
	if manager.mode == id {
		return false
	}
	manager.mode = id
	for modeID, item := range manager.modeItems {
		item.Checked = modeID == id
	}
	return true
}

func (manager *Manager) setStatus(status string) bool {
	if !manager.running && status != "" {
		status = fmt.Sprintf("%s (stopped)", status)
	}
	label := fmt.Sprintf("Status: %s", status)
	if manager.statusItem.Label == label {
		return false
	}
	manager.statusItem.Label = label
	return true
}

func (manager *Manager) refreshMenu() {
	if manager.app == nil {
		return
	}

	items := []*fyne.MenuItem{
		manager.statusItem,
		fyne.NewMenuItem("Show timer", func() {
			if manager.callbacks.OnShowTimer != nil {
				manager.callbacks.OnShowTimer()
			}
		}),
		fyne.NewMenuItemSeparator(),
		manager.toggleItem,
		fyne.NewMenuItem("Reset", func() {
			if manager.callbacks.OnReset != nil {
				manager.callbacks.OnReset()
			}
		}),
		fyne.NewMenuItemSeparator(),
	}
	for _, mode := range model.Modes() {
		items = append(items, manager.modeItems[mode.ID])
	}
	items = append(items,
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Preferences", func() {
			if manager.callbacks.OnPreferences != nil {
				manager.callbacks.OnPreferences()
			}
		}),
	)
	// Fyne appends its own Quit item to tray menus; route it through OnQuit.
	quit := fyne.NewMenuItem("Quit", func() {
		if manager.callbacks.OnQuit != nil {
			manager.callbacks.OnQuit()
		}
	})
	quit.IsQuit = true
	items = append(items, quit)

	manager.app.SetSystemTrayMenu(fyne.NewMenu(manager.title, items...))
}
