// Package tracing collects statistics about queues and other components by
// listening to their hooks.
package tracing

import (
	"fmt"
	"reflect"

	"github.com/sarchlab/flowsim/sim/hooking"
	"github.com/sarchlab/flowsim/sim/naming"
)

// NamedHookable represent something both have a name and can be hooked
type NamedHookable interface {
	naming.Named
	hooking.Hookable
}

// occupied is a domain that holds items, such as a queue.
type occupied interface {
	Count() int
}

// attachObserver is a tracer that needs to see the domain when it is
// attached, for example to account for items already in a queue.
type attachObserver interface {
	attachedTo(domain NamedHookable)
}

// CollectTrace attaches the tracer to the domain. Attaching the same tracer
// twice is a mistake and panics.
func CollectTrace(domain NamedHookable, tracer hooking.Hook) {
	for _, hook := range domain.Hooks() {
		if hook == tracer {
			panic(fmt.Sprintf(
				"domain %s already has tracer %s",
				domain.Name(), reflect.TypeOf(tracer)))
		}
	}

	if o, ok := tracer.(attachObserver); ok {
		o.attachedTo(domain)
	}

	domain.AcceptHook(tracer)
}

// StopTrace detaches the tracer from the domain.
func StopTrace(domain NamedHookable, tracer hooking.Hook) {
	domain.RemoveHook(tracer)
}
