package dispatch

import "sync"

// Handler receives the event payload sent on a signal.
type Handler func(event map[string]interface{})

type registration struct {
	handler Handler
}

// Dispatcher delivers events to handlers registered on named signals.
// Delivery happens synchronously on the goroutine calling Send; Connect
// and the returned unsubscribe functions are safe to call from any
// goroutine.
type Dispatcher struct {
	mu      sync.Mutex
	signals map[string][]*registration
}

func New() *Dispatcher {
	return &Dispatcher{
		signals: make(map[string][]*registration),
	}
}

// Connect registers a handler on the given signal and returns a function
// that removes the registration again.
func (d *Dispatcher) Connect(signal string, handler Handler) func() {
	reg := &registration{handler: handler}

	d.mu.Lock()
	d.signals[signal] = append(d.signals[signal], reg)
	d.mu.Unlock()

	return func() {
		d.mu.Lock()
		defer d.mu.Unlock()
		regs := d.signals[signal]
		for i, r := range regs {
			if r == reg {
				d.signals[signal] = append(regs[:i], regs[i+1:]...)
				break
			}
		}
		if len(d.signals[signal]) == 0 {
			delete(d.signals, signal)
		}
	}
}

// Send delivers an event to all handlers connected to the signal, in the
// order they were registered. Signals without handlers are dropped.
func (d *Dispatcher) Send(signal string, event map[string]interface{}) {
	d.mu.Lock()
	regs := make([]*registration, len(d.signals[signal]))
	copy(regs, d.signals[signal])
	d.mu.Unlock()

	for _, reg := range regs {
		reg.handler(event)
	}
}
