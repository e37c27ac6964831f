package tracing

import (
	"sync"

	"github.com/sarchlab/flowsim/flow/queueing"
	"github.com/sarchlab/flowsim/sim/hooking"
	"github.com/sarchlab/flowsim/sim/timing"
)

// DwellTimeTracer measures how long items stay in a queue. Since queues are
// FIFO, the n-th dequeued item is the n-th enqueued item, so items do not
// need to be identifiable. Items already in the queue when the tracer is
// attached with CollectTrace are not measured.
type DwellTimeTracer struct {
	timeTeller timing.TimeTeller
	lock       sync.Mutex
	arrivals   []timing.VTimeInSec
	untracked  int
	totalTime  float64
	maxTime    float64
	count      uint64
}

// NewDwellTimeTracer creates a new DwellTimeTracer.
func NewDwellTimeTracer(timeTeller timing.TimeTeller) *DwellTimeTracer {
	return &DwellTimeTracer{
		timeTeller: timeTeller,
	}
}

// Func records enqueues and dequeues.
func (t *DwellTimeTracer) Func(ctx hooking.HookCtx) {
	switch ctx.Pos {
	case queueing.HookPosObjectEnqueued:
		t.enqueue()
	case queueing.HookPosObjectDequeued:
		t.dequeue()
	}
}

func (t *DwellTimeTracer) enqueue() {
	now := t.timeTeller.Now()

	t.lock.Lock()
	t.arrivals = append(t.arrivals, now)
	t.lock.Unlock()
}

func (t *DwellTimeTracer) dequeue() {
	now := t.timeTeller.Now()

	t.lock.Lock()
	defer t.lock.Unlock()

	if t.untracked > 0 {
		t.untracked--
		return
	}

	if len(t.arrivals) == 0 {
		return
	}

	dwell := float64(now - t.arrivals[0])
	t.arrivals = t.arrivals[1:]

	t.totalTime += dwell
	t.count++

	if dwell > t.maxTime {
		t.maxTime = dwell
	}
}

func (t *DwellTimeTracer) attachedTo(domain NamedHookable) {
	q, ok := domain.(occupied)
	if !ok {
		return
	}

	t.lock.Lock()
	defer t.lock.Unlock()

	// Arrivals seen during an earlier attachment may have left unseen.
	t.arrivals = nil
	t.untracked = q.Count()
}

// AverageTime returns the average dwell time of the items that left the
// queue, or 0 if none did.
func (t *DwellTimeTracer) AverageTime() float64 {
	t.lock.Lock()
	defer t.lock.Unlock()

	if t.count == 0 {
		return 0
	}

	return t.totalTime / float64(t.count)
}

// TotalTime returns the sum of the dwell times.
func (t *DwellTimeTracer) TotalTime() float64 {
	t.lock.Lock()
	defer t.lock.Unlock()

	return t.totalTime
}

// MaxTime returns the longest dwell time.
func (t *DwellTimeTracer) MaxTime() float64 {
	t.lock.Lock()
	defer t.lock.Unlock()

	return t.maxTime
}

// TotalCount returns the number of items that left the queue.
func (t *DwellTimeTracer) TotalCount() uint64 {
	t.lock.Lock()
	defer t.lock.Unlock()

	return t.count
}

// InFlight returns the number of measured items still in the queue.
func (t *DwellTimeTracer) InFlight() int {
	t.lock.Lock()
	defer t.lock.Unlock()

	return len(t.arrivals)
}
