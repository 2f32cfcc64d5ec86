package tray

import (
	"testing"

	"fyne.io/fyne/v2"

	"pomodoro/internal/core/model"
)

type recordingHost struct {
	menus []*fyne.Menu
}

func (host *recordingHost) SetSystemTrayMenu(menu *fyne.Menu) {
	host.menus = append(host.menus, menu)
}

func (host *recordingHost) last() *fyne.Menu {
	return host.menus[len(host.menus)-1]
}

func TestUpdateRebuildsMenuOncePerEvent(t *testing.T) {
	host := &recordingHost{}
	manager := newManager(host, "Pomodoro", Callbacks{})
	if len(host.menus) != 1 {
		t.Fatalf("expected initial menu, got %d", len(host.menus))
	}

	// Start: running, mode and status all change in one event.
	manager.Update("Get to work! 24:59", true, model.ModePomodoro)
	if len(host.menus) != 2 {
		t.Fatalf("expected one rebuild for the event, got %d", len(host.menus)-1)
	}

	manager.Update("Get to work! 24:58", true, model.ModePomodoro)
	if len(host.menus) != 3 {
		t.Fatalf("expected one rebuild per tick, got %d", len(host.menus)-1)
	}

	manager.Update("Get to work! 24:58", true, model.ModePomodoro)
	if len(host.menus) != 3 {
		t.Errorf("unchanged event rebuilt the menu")
	}
}

func TestUpdateMenuItems(t *testing.T) {
	host := &recordingHost{}
	manager := newManager(host, "Pomodoro", Callbacks{})

	manager.Update("Relax. 5:00", false, model.ModeShortBreak)

	if manager.toggleItem.Label != "Start" {
		t.Errorf("toggle label = %q", manager.toggleItem.Label)
	}
	if manager.statusItem.Label != "Status: Relax. 5:00 (stopped)" {
		t.Errorf("status label = %q", manager.statusItem.Label)
	}
	for id, item := range manager.modeItems {
		if item.Checked != (id == model.ModeShortBreak) {
			t.Errorf("mode %s checked = %v", id, item.Checked)
		}
	}

	manager.Update("Relax. 4:59", true, model.ModeShortBreak)
	if manager.toggleItem.Label != "Pause" {
		t.Errorf("toggle label = %q", manager.toggleItem.Label)
	}

	menu := host.last()
	quit := menu.Items[len(menu.Items)-1]
	if !quit.IsQuit {
		t.Error("last tray item must be the quit item")
	}
}

func TestMenuCallbacks(t *testing.T) {
	var selected model.ModeID
	toggles := 0
	host := &recordingHost{}
	manager := newManager(host, "Pomodoro", Callbacks{
		OnToggle: func() { toggles++ },
		OnSelect: func(id model.ModeID) { selected = id },
	})

	manager.toggleItem.Action()
	manager.modeItems[model.ModeLongBreak].Action()

	if toggles != 1 {
		t.Errorf("expected one toggle, got %d", toggles)
	}
	if selected != model.ModeLongBreak {
		t.Errorf("expected long break selected, got %q", selected)
	}
}
