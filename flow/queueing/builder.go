package queueing

import "github.com/sarchlab/flowsim/flow"

// Builder can build queues.
type Builder struct {
	model    flow.Model
	maxDepth int
}

// MakeBuilder creates a builder with no full threshold.
func MakeBuilder() Builder {
	return Builder{}
}

// WithModel sets the model that owns the queue.
func (b Builder) WithModel(m flow.Model) Builder {
	b.model = m
	return b
}

// WithMaxDepth sets the level at which HookPosQueueFull fires. Zero disables
// the full notification.
func (b Builder) WithMaxDepth(n int) Builder {
	if n < 0 {
		panic("max depth must not be negative")
	}

	b.maxDepth = n

	return b
}

// Build creates the queue and registers it with the model.
func (b Builder) Build(name string) *Queue {
	q := newQueue(b.model, name, b.maxDepth)
	q.Seal(q)

	return q
}
