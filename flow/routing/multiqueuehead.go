package routing

import (
	"github.com/sarchlab/flowsim/flow"
	"github.com/sarchlab/flowsim/flow/queueing"
	"github.com/sarchlab/flowsim/flow/selection"
	"github.com/sarchlab/flowsim/sim/naming"
)

// MultiQueueHead sits in front of a set of queues. Every item pushed to its
// input goes to the queue that the strategy selects.
//
// Pulls on any of its outputs are forwarded to the single upstream of the
// input, no matter which output is pulled.
type MultiQueueHead struct {
	*flow.ComponentBase

	in       *flow.Port
	outs     []*flow.Port
	queues   []*queueing.Queue
	strategy selection.Strategy
}

// In returns the input port.
func (h *MultiQueueHead) In() *flow.Port {
	return h.in
}

// Out returns the output port bound to the i-th queue.
func (h *MultiQueueHead) Out(i int) *flow.Port {
	return h.outs[i]
}

// NumOutputs returns the number of queues served.
func (h *MultiQueueHead) NumOutputs() int {
	return len(h.outs)
}

// Queues returns the queues served, in output order.
func (h *MultiQueueHead) Queues() []*queueing.Queue {
	return h.queues
}

// Strategy returns the selection strategy.
func (h *MultiQueueHead) Strategy() selection.Strategy {
	return h.strategy
}

// Arrival hands the item to the selected queue and relays its verdict.
func (h *MultiQueueHead) Arrival(item flow.Item) bool {
	c, err := h.strategy.SelectNext(nil)
	if err != nil {
		panic(err)
	}

	out := h.outputOf(c)

	return out.Push(item)
}

func (h *MultiQueueHead) outputOf(c selection.Candidate) *flow.Port {
	for i, q := range h.queues {
		if selection.Candidate(q) == c {
			return h.outs[i]
		}
	}

	panic("strategy selected " + c.Name() +
		", which is not served by " + h.Name())
}

func (h *MultiQueueHead) provide(req flow.PullRequest) (flow.Item, bool) {
	if req.Peek {
		return h.in.Peek(req.Selector)
	}

	return h.in.Take(req.Selector)
}

func (h *MultiQueueHead) relayDataAvailable() {
	for _, out := range h.outs {
		out.NotifyDataAvailable()
	}
}

// MultiQueueHeadBuilder can build MultiQueueHeads.
type MultiQueueHeadBuilder struct {
	model    flow.Model
	queues   []*queueing.Queue
	strategy selection.Strategy
}

// MakeMultiQueueHeadBuilder creates a builder that selects the shortest queue.
func MakeMultiQueueHeadBuilder() MultiQueueHeadBuilder {
	return MultiQueueHeadBuilder{}
}

// WithModel sets the model that owns the router.
func (b MultiQueueHeadBuilder) WithModel(
	m flow.Model,
) MultiQueueHeadBuilder {
	b.model = m
	return b
}

// WithQueues sets the queues to serve. The router's outputs are connected to
// their inputs when it is built.
func (b MultiQueueHeadBuilder) WithQueues(
	queues ...*queueing.Queue,
) MultiQueueHeadBuilder {
	b.queues = queues
	return b
}

// WithStrategy sets the selection strategy. The strategy is configured with
// the queues when the router is built.
func (b MultiQueueHeadBuilder) WithStrategy(
	s selection.Strategy,
) MultiQueueHeadBuilder {
	b.strategy = s
	return b
}

// Build creates the router.
func (b MultiQueueHeadBuilder) Build(name string) *MultiQueueHead {
	if len(b.queues) == 0 {
		panic("a multi-queue head needs at least one queue")
	}

	strategy := b.strategy
	if strategy == nil {
		strategy = selection.NewShortestQueue()
	}

	h := &MultiQueueHead{
		ComponentBase: flow.NewComponentBase(b.model, name),
		queues:        b.queues,
		strategy:      strategy,
	}

	h.in = flow.NewPort(h, naming.BuildName(name, "In"), flow.Input,
		flow.WithArrival(h.Arrival),
		flow.WithDataAvailable(h.relayDataAvailable),
	)
	h.AddPort("In", h.in)

	candidates := make([]selection.Candidate, 0, len(b.queues))

	for i, q := range b.queues {
		out := flow.NewPort(h,
			naming.BuildNameWithIndex(name, "Out", i), flow.Output,
			flow.WithProvision(h.provide),
		)
		h.AddPort(naming.BuildNameWithIndex("", "Out", i), out)
		h.outs = append(h.outs, out)

		flow.MustConnect(out, q.In())

		candidates = append(candidates, q)
	}

	strategy.Configure(candidates)
	h.Seal(h)

	return h
}
