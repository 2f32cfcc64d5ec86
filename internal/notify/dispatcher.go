package notify

import (
	"sync"

	"pomodoro/internal/core/timekeeper"
)

// Dispatcher forwards to replaceable ports so a host can apply new
// preferences without rebuilding the TimeKeeper.
type Dispatcher struct {
	mu    sync.RWMutex
	ports timekeeper.Ports
}

// NewDispatcher creates a dispatcher forwarding to ports.
func NewDispatcher(ports timekeeper.Ports) *Dispatcher {
	return &Dispatcher{ports: ports}
}

// Set replaces the target ports.
func (dispatcher *Dispatcher) Set(ports timekeeper.Ports) {
	dispatcher.mu.Lock()
	dispatcher.ports = ports
	dispatcher.mu.Unlock()
}

// Ports returns stable ports to hand to timekeeper.New.
func (dispatcher *Dispatcher) Ports() timekeeper.Ports {
	return timekeeper.Ports{
		OnAlert:    dispatcher.alert,
		OnAnnounce: dispatcher.announce,
	}
}

func (dispatcher *Dispatcher) alert() {
	dispatcher.mu.RLock()
	onAlert := dispatcher.ports.OnAlert
	dispatcher.mu.RUnlock()
	if onAlert != nil {
		onAlert()
	}
}

func (dispatcher *Dispatcher) announce(text string) {
	dispatcher.mu.RLock()
	onAnnounce := dispatcher.ports.OnAnnounce
	dispatcher.mu.RUnlock()
	if onAnnounce != nil {
		onAnnounce(text)
	}
}
