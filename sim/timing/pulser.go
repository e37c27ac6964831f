package timing

import (
	"math"

	"github.com/sarchlab/flowsim/flow"
	"github.com/sarchlab/flowsim/sim/hooking"
)

// PulseEvent is the event a Pulser schedules for itself.
type PulseEvent struct {
	EventBase
}

// A Pulser raises flow.HookPosPulse at a fixed frequency on an engine.
type Pulser struct {
	hooking.HookableBase

	name    string
	engine  EventScheduler
	freq    Freq
	limit   int
	count   int
	running bool
}

// NewPulser creates a pulser. A limit of zero or less means pulses never stop
// on their own.
func NewPulser(
	name string,
	engine EventScheduler,
	freq Freq,
	limit int,
) *Pulser {
	if freq <= 0 || math.IsInf(float64(freq), 0) {
		panic("pulser " + name + " needs a positive frequency")
	}

	return &Pulser{
		name:   name,
		engine: engine,
		freq:   freq,
		limit:  limit,
	}
}

// Name returns the name of the pulser.
func (p *Pulser) Name() string {
	return p.name
}

// Count returns the number of pulses raised so far.
func (p *Pulser) Count() int {
	return p.count
}

// Start schedules the first pulse at the given time.
func (p *Pulser) Start(at VTimeInSec) {
	if p.running {
		return
	}

	p.running = true
	p.engine.Schedule(PulseEvent{EventBase: EventBase{time: at, handler: p}})
}

// Stop prevents further pulses from being scheduled.
func (p *Pulser) Stop() {
	p.running = false
}

// Handle raises a pulse and schedules the next one.
func (p *Pulser) Handle(e Event) error {
	if !p.running {
		return nil
	}

	p.Pulse()

	if p.limit > 0 && p.count >= p.limit {
		p.running = false
		return nil
	}

	next := p.freq.NCyclesLater(1, e.Time())
	p.engine.Schedule(PulseEvent{EventBase: EventBase{time: next, handler: p}})

	return nil
}

// Pulse raises one pulse immediately.
func (p *Pulser) Pulse() {
	p.count++

	p.InvokeHook(hooking.HookCtx{
		Domain: p,
		Pos:    flow.HookPosPulse,
	})
}
