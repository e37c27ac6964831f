// Package queueing provides the FIFO queue of the item-flow network.
//
// A Queue accepts every item pushed to its input and serves pulls on its
// output in arrival order. Each occupancy change is published through hooks
// so that load balancers and telemetry can follow it.
//
// MaxDepth is a telemetry threshold, not a limit. Arrivals beyond it are still
// accepted, and HookPosQueueFull fires whenever the count lands exactly on
// MaxDepth, in either direction.
package queueing

import (
	"github.com/sarchlab/flowsim/flow"
	"github.com/sarchlab/flowsim/sim/hooking"
	"github.com/sarchlab/flowsim/sim/naming"
)

var (
	// HookPosObjectEnqueued marks an item appended to the tail.
	HookPosObjectEnqueued = &hooking.HookPos{Name: "Object Enqueued"}

	// HookPosObjectDequeued marks an item removed from the head.
	HookPosObjectDequeued = &hooking.HookPos{Name: "Object Dequeued"}

	// HookPosLevelChanged marks a change of the item count. The Detail is a
	// LevelChange.
	HookPosLevelChanged = &hooking.HookPos{Name: "Level Changed"}

	// HookPosQueueEmpty marks a level change that lands on zero.
	HookPosQueueEmpty = &hooking.HookPos{Name: "Queue Empty"}

	// HookPosQueueFull marks a level change that lands on MaxDepth.
	HookPosQueueFull = &hooking.HookPos{Name: "Queue Full"}
)

// LevelChange is the Detail of HookPosLevelChanged.
type LevelChange struct {
	Previous int
	Current  int
}

// Queue is a FIFO holding cell with occupancy telemetry.
type Queue struct {
	*flow.ComponentBase

	in  *flow.Port
	out *flow.Port

	maxDepth int
	items    []flow.Item
}

func newQueue(model flow.Model, name string, maxDepth int) *Queue {
	q := &Queue{
		ComponentBase: flow.NewComponentBase(model, name),
		maxDepth:      maxDepth,
	}

	q.in = flow.NewPort(q, naming.BuildName(name, "In"), flow.Input,
		flow.WithArrival(q.Arrival),
		flow.WithoutPull(),
	)
	q.out = flow.NewPort(q, naming.BuildName(name, "Out"), flow.Output,
		flow.WithProvision(q.provide),
		flow.WithoutPush(),
	)

	q.AddPort("In", q.in)
	q.AddPort("Out", q.out)

	return q
}

// In returns the input port. Pushes to it always succeed.
func (q *Queue) In() *flow.Port {
	return q.in
}

// Out returns the output port. Pulls on its peer take from the head.
func (q *Queue) Out() *flow.Port {
	return q.out
}

// Count returns the number of items held.
func (q *Queue) Count() int {
	return len(q.items)
}

// MaxDepth returns the advisory capacity.
func (q *Queue) MaxDepth() int {
	return q.maxDepth
}

// Items returns a copy of the held items, head first.
func (q *Queue) Items() []flow.Item {
	items := make([]flow.Item, len(q.items))
	copy(items, q.items)

	return items
}

// Arrival appends the item to the tail. It never refuses, regardless of
// MaxDepth.
func (q *Queue) Arrival(item flow.Item) bool {
	prev := len(q.items)
	q.items = append(q.items, item)

	q.InvokeHook(hooking.HookCtx{
		Domain: q,
		Pos:    HookPosObjectEnqueued,
		Item:   item,
	})

	q.levelChanged(prev)

	q.out.NotifyDataAvailable()

	return true
}

// Take removes and returns the head item. It returns false if the queue is
// empty.
func (q *Queue) Take() (flow.Item, bool) {
	if len(q.items) == 0 {
		return nil, false
	}

	prev := len(q.items)
	item := q.items[0]
	q.items[0] = nil
	q.items = q.items[1:]

	q.InvokeHook(hooking.HookCtx{
		Domain: q,
		Pos:    HookPosObjectDequeued,
		Item:   item,
	})

	q.levelChanged(prev)

	return item, true
}

// Peek returns the head item without removing it.
func (q *Queue) Peek() (flow.Item, bool) {
	if len(q.items) == 0 {
		return nil, false
	}

	return q.items[0], true
}

func (q *Queue) provide(req flow.PullRequest) (flow.Item, bool) {
	if req.Peek {
		return q.Peek()
	}

	return q.Take()
}

func (q *Queue) levelChanged(prev int) {
	curr := len(q.items)

	q.InvokeHook(hooking.HookCtx{
		Domain: q,
		Pos:    HookPosLevelChanged,
		Detail: LevelChange{Previous: prev, Current: curr},
	})

	if curr == 0 {
		q.InvokeHook(hooking.HookCtx{Domain: q, Pos: HookPosQueueEmpty})
	}

	if q.maxDepth > 0 && curr == q.maxDepth {
		q.InvokeHook(hooking.HookCtx{Domain: q, Pos: HookPosQueueFull})
	}
}
