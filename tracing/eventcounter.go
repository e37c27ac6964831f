package tracing

import (
	"sync"

	"github.com/sarchlab/flowsim/sim/hooking"
)

// EventCounter counts how often each hook position fires on the domains it is
// attached to.
type EventCounter struct {
	lock   sync.Mutex
	names  []string
	counts map[string]uint64
}

// NewEventCounter creates a new EventCounter.
func NewEventCounter() *EventCounter {
	return &EventCounter{
		counts: make(map[string]uint64),
	}
}

// Func counts the hook position.
func (c *EventCounter) Func(ctx hooking.HookCtx) {
	c.lock.Lock()
	defer c.lock.Unlock()

	name := ctx.Pos.Name

	_, ok := c.counts[name]
	if !ok {
		c.names = append(c.names, name)
	}

	c.counts[name]++
}

// GetNames returns the names of the positions seen, in order of first
// occurrence.
func (c *EventCounter) GetNames() []string {
	c.lock.Lock()
	defer c.lock.Unlock()

	names := make([]string, len(c.names))
	copy(names, c.names)

	return names
}

// GetCount returns how many times the position with the given name fired.
func (c *EventCounter) GetCount(name string) uint64 {
	c.lock.Lock()
	defer c.lock.Unlock()

	return c.counts[name]
}
