package timing

import (
	"log"
	"reflect"

	"github.com/sarchlab/flowsim/sim/hooking"
)

// A SerialEngine is an Engine that always run events one after another.
type SerialEngine struct {
	hooking.HookableBase

	time  VTimeInSec
	queue EventQueue
}

// NewSerialEngine creates a SerialEngine
func NewSerialEngine() *SerialEngine {
	e := new(SerialEngine)

	e.queue = NewEventQueue()

	return e
}

// Name returns the name of the engine.
func (e *SerialEngine) Name() string {
	return "SerialEngine"
}

// Schedule register an event to be happen in the future
func (e *SerialEngine) Schedule(evt Event) {
	if evt.Time() < e.time {
		log.Panic("scheduling an event earlier than current time")
	}

	e.queue.Push(evt)
}

// Run processes all the events scheduled in the SerialEngine
func (e *SerialEngine) Run() error {
	for e.queue.Len() > 0 {
		err := e.step()
		if err != nil {
			return err
		}
	}

	return nil
}

// RunUntil processes all the events that happen no later than t and moves the
// clock to t.
func (e *SerialEngine) RunUntil(t VTimeInSec) error {
	for e.queue.Len() > 0 && e.queue.Peek().Time() <= t {
		err := e.step()
		if err != nil {
			return err
		}
	}

	if t > e.time {
		e.time = t
	}

	return nil
}

func (e *SerialEngine) step() error {
	evt := e.queue.Pop()

	if evt.Time() < e.time {
		log.Panicf(
			"cannot run event in the past, evt %s @ %.10f, now %.10f",
			reflect.TypeOf(evt), evt.Time(), e.time,
		)
	}

	e.time = evt.Time()

	hookCtx := hooking.HookCtx{
		Domain: e,
		Pos:    HookPosBeforeEvent,
		Item:   evt,
	}
	e.InvokeHook(hookCtx)

	err := evt.Handler().Handle(evt)

	hookCtx.Pos = HookPosAfterEvent
	e.InvokeHook(hookCtx)

	return err
}

// Now returns the current time at which the engine is at.
// Specifically, the run time of the current event.
func (e *SerialEngine) Now() VTimeInSec {
	return e.time
}
