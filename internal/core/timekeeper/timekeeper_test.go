package timekeeper

import (
	"errors"
	"strings"
	"testing"
	"time"

	"pomodoro/internal/core/model"
)

type recordingPorts struct {
	alerts        int
	announcements []string
	// alertRemaining captures remaining seconds at the moment of each alert.
	alertRemaining []int
	keeper         *TimeKeeper
}

func (ports *recordingPorts) Ports() Ports {
	return Ports{
		OnAlert: func() {
			ports.alerts++
			if ports.keeper != nil {
				ports.alertRemaining = append(ports.alertRemaining, ports.keeper.State().RemainingSeconds)
			}
		},
		OnAnnounce: func(text string) {
			ports.announcements = append(ports.announcements, text)
		},
	}
}

func newTestKeeper() (*TimeKeeper, *recordingPorts) {
	ports := &recordingPorts{}
	keeper := New(ports.Ports())
	ports.keeper = keeper
	return keeper, ports
}

func tickN(keeper *TimeKeeper, n int) {
	for i := 0; i < n; i++ {
		keeper.Tick()
	}
}

func TestNewStartsIdleInWorkMode(t *testing.T) {
	keeper, ports := newTestKeeper()

	state := keeper.State()
	if state.Mode.ID != model.ModePomodoro {
		t.Fatalf("expected pomodoro mode, got %q", state.Mode.ID)
	}
	if state.RemainingSeconds != 1500 || state.Running {
		t.Fatalf("unexpected initial state %+v", state)
	}
	if state.Phase() != PhaseIdle {
		t.Errorf("expected idle phase, got %q", state.Phase())
	}

	display := keeper.Display()
	if display.TimeText != "25:00" {
		t.Errorf("expected 25:00, got %q", display.TimeText)
	}
	if !strings.Contains(strings.ToLower(display.StatusLabel), "get to work") {
		t.Errorf("expected work label, got %q", display.StatusLabel)
	}
	if strings.Contains(strings.ToLower(display.StatusLabel), "relax") {
		t.Errorf("work label must not mention relax: %q", display.StatusLabel)
	}
	if len(ports.announcements) != 0 || ports.alerts != 0 {
		t.Error("construction must not trigger side effects")
	}
}

func TestSelectModeShowsFullDuration(t *testing.T) {
	cases := []struct {
		id    model.ModeID
		text  string
		label string
	}{
		{model.ModePomodoro, "25:00", "get to work!"},
		{model.ModeShortBreak, "5:00", "relax."},
		{model.ModeLongBreak, "15:00", "seriously. relax."},
	}

	for _, tc := range cases {
		keeper, ports := newTestKeeper()
		keeper.Start()
		tickN(keeper, 7)

		if err := keeper.SelectMode(tc.id); err != nil {
			t.Fatalf("SelectMode(%q): %v", tc.id, err)
		}
		display := keeper.Display()
		if display.TimeText != tc.text {
			t.Errorf("%s: time text = %q, want %q", tc.id, display.TimeText, tc.text)
		}
		if display.Running {
			t.Errorf("%s: expected stopped after select", tc.id)
		}
		if strings.ToLower(display.StatusLabel) != tc.label {
			t.Errorf("%s: status = %q, want %q", tc.id, display.StatusLabel, tc.label)
		}
		// Only the initial start announced; selecting does not.
		if len(ports.announcements) != 1 {
			t.Errorf("%s: announcements = %v", tc.id, ports.announcements)
		}
	}
}

func TestSelectModeInvalid(t *testing.T) {
	keeper, _ := newTestKeeper()
	keeper.Start()
	tickN(keeper, 3)

	err := keeper.SelectMode("siesta")
	var invalid *model.InvalidModeError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidModeError, got %v", err)
	}

	state := keeper.State()
	if !state.Running || state.RemainingSeconds != 1497 {
		t.Errorf("invalid select must not change state, got %+v", state)
	}
}

func TestFiveMinutesOfWork(t *testing.T) {
	keeper, ports := newTestKeeper()
	keeper.Start()
	tickN(keeper, 300)

	if got := keeper.Display().TimeText; got != "20:00" {
		t.Errorf("expected 20:00, got %q", got)
	}
	if !keeper.State().Running {
		t.Error("expected still running")
	}
	if ports.alerts != 0 {
		t.Errorf("alert fired early: %d", ports.alerts)
	}
	if len(ports.announcements) != 1 || ports.announcements[0] != "Get to work!" {
		t.Errorf("unexpected announcements %v", ports.announcements)
	}
}

func TestFullPomodoroAlertsOnce(t *testing.T) {
	keeper, ports := newTestKeeper()
	keeper.Start()
	tickN(keeper, 1499)

	if ports.alerts != 0 {
		t.Fatalf("alert before zero: %d", ports.alerts)
	}

	keeper.Tick()
	display := keeper.Display()
	if display.TimeText != "0:00" || display.Running {
		t.Fatalf("unexpected display at zero %+v", display)
	}
	if display.String() != "Party! 0:00" {
		t.Errorf("face text = %q", display.String())
	}
	if ports.alerts != 1 {
		t.Errorf("expected one alert, got %d", ports.alerts)
	}
	if len(ports.alertRemaining) != 1 || ports.alertRemaining[0] != 0 {
		t.Errorf("alert must fire at zero, got %v", ports.alertRemaining)
	}
	want := []string{"Get to work!", "Party!"}
	if strings.Join(ports.announcements, "|") != strings.Join(want, "|") {
		t.Errorf("announcements = %v, want %v", ports.announcements, want)
	}
	if keeper.State().Phase() != PhaseExpired {
		t.Errorf("expected expired phase, got %q", keeper.State().Phase())
	}

	// Extra ticks after expiry are ignored.
	tickN(keeper, 10)
	if ports.alerts != 1 || keeper.State().RemainingSeconds != 0 {
		t.Errorf("stray ticks changed state: alerts=%d remaining=%d", ports.alerts, keeper.State().RemainingSeconds)
	}
}

func TestShortBreakRunsOutWithoutDoneAnnouncement(t *testing.T) {
	keeper, ports := newTestKeeper()
	if err := keeper.SelectMode(model.ModeShortBreak); err != nil {
		t.Fatal(err)
	}
	keeper.Start()

	if !strings.Contains(strings.ToLower(keeper.Display().StatusLabel), "relax") {
		t.Errorf("expected relax label, got %q", keeper.Display().StatusLabel)
	}

	tickN(keeper, 300)
	display := keeper.Display()
	if display.TimeText != "0:00" || display.Running {
		t.Errorf("unexpected display %+v", display)
	}
	if display.StatusLabel != "Relax." {
		t.Errorf("short break has no done label, got %q", display.StatusLabel)
	}
	if ports.alerts != 1 {
		t.Errorf("expected one alert, got %d", ports.alerts)
	}
	if len(ports.announcements) != 1 || ports.announcements[0] != "Relax." {
		t.Errorf("unexpected announcements %v", ports.announcements)
	}
}

func TestLongBreakLabel(t *testing.T) {
	keeper, _ := newTestKeeper()
	if err := keeper.SelectMode(model.ModeLongBreak); err != nil {
		t.Fatal(err)
	}
	display := keeper.Display()
	if !strings.Contains(strings.ToLower(display.StatusLabel), "seriously. relax") {
		t.Errorf("unexpected label %q", display.StatusLabel)
	}
	if display.TimeText != "15:00" {
		t.Errorf("expected 15:00, got %q", display.TimeText)
	}
}

func TestPauseHoldsRemainingAndResumeIsSilent(t *testing.T) {
	keeper, ports := newTestKeeper()
	keeper.Start()
	tickN(keeper, 61)

	keeper.Pause()
	paused := keeper.State()
	if paused.Running || paused.RemainingSeconds != 1439 {
		t.Fatalf("unexpected paused state %+v", paused)
	}
	if paused.Phase() != PhasePaused {
		t.Errorf("expected paused phase, got %q", paused.Phase())
	}

	tickN(keeper, 50)
	if keeper.State().RemainingSeconds != 1439 {
		t.Errorf("ticks while paused changed remaining to %d", keeper.State().RemainingSeconds)
	}

	keeper.Pause()
	if keeper.State().RemainingSeconds != 1439 {
		t.Error("second pause must be a no-op")
	}

	keeper.Start()
	if !keeper.State().Running || keeper.State().RemainingSeconds != 1439 {
		t.Errorf("resume lost time: %+v", keeper.State())
	}
	if len(ports.announcements) != 1 {
		t.Errorf("resume must not announce again, got %v", ports.announcements)
	}

	keeper.Tick()
	if keeper.Display().TimeText != "23:58" {
		t.Errorf("expected 23:58, got %q", keeper.Display().TimeText)
	}
}

func TestStartWhileRunningIsNoop(t *testing.T) {
	keeper, ports := newTestKeeper()
	keeper.Start()
	keeper.Start()
	tickN(keeper, 2)
	keeper.Start()

	if len(ports.announcements) != 1 {
		t.Errorf("expected single announcement, got %v", ports.announcements)
	}
	if keeper.State().RemainingSeconds != 1498 {
		t.Errorf("unexpected remaining %d", keeper.State().RemainingSeconds)
	}
}

func TestResumeAtFullDurationAnnouncesAgain(t *testing.T) {
	keeper, ports := newTestKeeper()
	keeper.Start()
	keeper.Pause()
	keeper.Start()

	if len(ports.announcements) != 2 {
		t.Errorf("expected two announcements, got %v", ports.announcements)
	}
}

func TestToggle(t *testing.T) {
	keeper, _ := newTestKeeper()

	keeper.Toggle()
	if !keeper.State().Running {
		t.Fatal("toggle should start")
	}
	tickN(keeper, 5)
	keeper.Toggle()
	if keeper.State().Running {
		t.Fatal("toggle should pause")
	}
	if keeper.State().RemainingSeconds != 1495 {
		t.Errorf("unexpected remaining %d", keeper.State().RemainingSeconds)
	}
}

func TestResetRestoresFullDuration(t *testing.T) {
	keeper, _ := newTestKeeper()
	if err := keeper.SelectMode(model.ModeLongBreak); err != nil {
		t.Fatal(err)
	}

	keeper.Reset()
	if keeper.State().RemainingSeconds != 900 {
		t.Errorf("reset from idle: %d", keeper.State().RemainingSeconds)
	}

	keeper.Start()
	tickN(keeper, 100)
	keeper.Reset()
	state := keeper.State()
	if state.Running || state.RemainingSeconds != 900 || state.Mode.ID != model.ModeLongBreak {
		t.Errorf("reset while running: %+v", state)
	}

	tickN(keeper, 3)
	if keeper.State().RemainingSeconds != 900 {
		t.Error("ticks after reset must be ignored")
	}
}

func TestExpiredRequiresReset(t *testing.T) {
	keeper, ports := newTestKeeper()
	if err := keeper.SelectMode(model.ModeShortBreak); err != nil {
		t.Fatal(err)
	}
	keeper.Start()
	tickN(keeper, 300)

	keeper.Start()
	if keeper.State().Running {
		t.Fatal("start from expired must not run")
	}
	keeper.Toggle()
	if keeper.State().Running {
		t.Fatal("toggle from expired must not run")
	}

	keeper.Reset()
	keeper.Start()
	if !keeper.State().Running || keeper.Display().TimeText != "5:00" {
		t.Errorf("expected fresh start after reset, got %+v", keeper.Display())
	}
	if len(ports.announcements) != 2 {
		t.Errorf("expected a second start announcement, got %v", ports.announcements)
	}
}

func TestMissingPortsAreSkipped(t *testing.T) {
	keeper := New(Ports{})
	keeper.Start()
	tickN(keeper, 1500)

	if keeper.Display().TimeText != "0:00" {
		t.Errorf("expected 0:00, got %q", keeper.Display().TimeText)
	}

	announced := 0
	keeper = New(Ports{OnAnnounce: func(string) { announced++ }})
	keeper.Start()
	tickN(keeper, 1500)
	if announced != 2 {
		t.Errorf("expected 2 announcements without alert port, got %d", announced)
	}
}

func TestSubscribeReceivesTransitions(t *testing.T) {
	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	keeper := New(Ports{}, WithNow(func() time.Time { return at }))
	events := keeper.Subscribe(8)

	if err := keeper.SelectMode(model.ModeShortBreak); err != nil {
		t.Fatal(err)
	}
	keeper.Start()
	keeper.Tick()
	keeper.Pause()
	keeper.Reset()

	want := []EventType{EventModeSelected, EventStarted, EventTick, EventPaused, EventReset}
	for i, wantType := range want {
		event := <-events
		if event.Type != wantType {
			t.Fatalf("event %d: type %q, want %q", i, event.Type, wantType)
		}
		if event.Mode != model.ModeShortBreak {
			t.Errorf("event %d: mode %q", i, event.Mode)
		}
		if !event.At.Equal(at) {
			t.Errorf("event %d: at %v", i, event.At)
		}
	}

	keeper.Close()
	if _, ok := <-events; ok {
		t.Error("expected closed channel")
	}
}

func TestExpiredEvent(t *testing.T) {
	keeper := New(Ports{})
	if err := keeper.SelectMode(model.ModeShortBreak); err != nil {
		t.Fatal(err)
	}
	keeper.Start()
	tickN(keeper, 299)

	events := keeper.Subscribe(1)
	keeper.Tick()

	event := <-events
	if event.Type != EventExpired || event.Phase != PhaseExpired || event.Remaining != 0 {
		t.Errorf("unexpected event %+v", event)
	}
	if event.Display.TimeText != "0:00" {
		t.Errorf("unexpected display %+v", event.Display)
	}
}

func TestFormatRemaining(t *testing.T) {
	cases := map[int]string{
		1500: "25:00",
		1200: "20:00",
		300:  "5:00",
		61:   "1:01",
		9:    "0:09",
		0:    "0:00",
		-4:   "0:00",
	}
	for seconds, want := range cases {
		if got := FormatRemaining(seconds); got != want {
			t.Errorf("FormatRemaining(%d) = %q, want %q", seconds, got, want)
		}
	}
}
