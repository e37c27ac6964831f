package queueing

import (
	"fmt"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sarchlab/flowsim/flow"
	"github.com/sarchlab/flowsim/sim/hooking"
	"github.com/sarchlab/flowsim/simulation"
)

type queueObserver struct {
	queue   *Queue
	events  []string
	changes []LevelChange
	counts  []int
	empty   int
	full    int
}

func (o *queueObserver) Func(ctx hooking.HookCtx) {
	switch ctx.Pos {
	case HookPosObjectEnqueued:
		o.events = append(o.events, fmt.Sprintf("enq:%v", ctx.Item))
	case HookPosObjectDequeued:
		o.events = append(o.events, fmt.Sprintf("deq:%v", ctx.Item))
	case HookPosLevelChanged:
		change := ctx.Detail.(LevelChange)
		o.events = append(o.events,
			fmt.Sprintf("level:%d->%d", change.Previous, change.Current))
		o.changes = append(o.changes, change)
		o.counts = append(o.counts, o.queue.Count())
	case HookPosQueueEmpty:
		o.events = append(o.events, "empty")
		o.empty++
	case HookPosQueueFull:
		o.events = append(o.events, "full")
		o.full++
	}
}

var _ = Describe("Queue", func() {
	var (
		sim      *simulation.Simulation
		q        *Queue
		observer *queueObserver
	)

	BeforeEach(func() {
		sim = simulation.NewSimulation()
		q = MakeBuilder().WithModel(sim).WithMaxDepth(2).Build("Queue")
		observer = &queueObserver{queue: q}
		q.AcceptHook(observer)
	})

	It("should be registered with the model", func() {
		found, ok := sim.Lookup(q.ID())

		Expect(ok).To(BeTrue())
		Expect(found).To(BeIdenticalTo(q))
	})

	It("should start empty", func() {
		Expect(q.Count()).To(Equal(0))
		Expect(q.MaxDepth()).To(Equal(2))

		_, ok := q.Peek()
		Expect(ok).To(BeFalse())

		item, ok := q.Take()
		Expect(ok).To(BeFalse())
		Expect(item).To(BeNil())
		Expect(observer.events).To(BeEmpty())
	})

	It("should return items in arrival order", func() {
		for i := 0; i < 10; i++ {
			Expect(q.Arrival(i)).To(BeTrue())
		}

		for i := 0; i < 10; i++ {
			item, ok := q.Take()
			Expect(ok).To(BeTrue())
			Expect(item).To(Equal(i))
		}

		Expect(q.Count()).To(Equal(0))
	})

	It("should emit enqueue then level change on arrival", func() {
		q.Arrival("a")

		Expect(observer.events).To(Equal([]string{"enq:a", "level:0->1"}))
	})

	It("should emit dequeue then level change on take", func() {
		q.Arrival("a")
		observer.events = nil

		q.Take()

		Expect(observer.events).To(Equal(
			[]string{"deq:a", "level:1->0", "empty"}))
	})

	It("should report level changes of one that match the count", func() {
		q.Arrival("a")
		q.Arrival("b")
		q.Take()
		q.Arrival("c")
		q.Take()
		q.Take()

		Expect(observer.changes).To(HaveLen(6))
		for i, change := range observer.changes {
			diff := change.Current - change.Previous
			Expect(diff == 1 || diff == -1).To(BeTrue())
			Expect(change.Current).To(Equal(observer.counts[i]))
		}
	})

	It("should not emit anything on peek", func() {
		q.Arrival("a")
		observer.events = nil

		item, ok := q.Peek()

		Expect(ok).To(BeTrue())
		Expect(item).To(Equal("a"))
		Expect(q.Count()).To(Equal(1))
		Expect(observer.events).To(BeEmpty())
	})

	It("should accept arrivals beyond max depth", func() {
		Expect(q.Arrival("A")).To(BeTrue())
		Expect(q.Arrival("B")).To(BeTrue())
		Expect(q.Arrival("C")).To(BeTrue())
		Expect(q.Count()).To(Equal(3))
		Expect(observer.full).To(Equal(1))

		for _, expected := range []string{"A", "B", "C"} {
			Expect(observer.empty).To(Equal(0))
			item, ok := q.Take()
			Expect(ok).To(BeTrue())
			Expect(item).To(Equal(expected))
		}

		Expect(q.Count()).To(Equal(0))
		Expect(observer.empty).To(Equal(1))
		Expect(observer.events[len(observer.events)-1]).To(Equal("empty"))
	})

	It("should report full whenever the count lands on max depth", func() {
		q.Arrival("A")
		q.Arrival("B")
		q.Arrival("C")
		q.Take()

		Expect(observer.full).To(Equal(2))
	})

	It("should never report full without max depth", func() {
		unbounded := MakeBuilder().WithModel(sim).Build("Unbounded")
		o := &queueObserver{queue: unbounded}
		unbounded.AcceptHook(o)

		unbounded.Arrival("a")
		unbounded.Take()

		Expect(o.full).To(Equal(0))
		Expect(o.empty).To(Equal(1))
	})

	It("should refuse negative max depth", func() {
		Expect(func() { MakeBuilder().WithMaxDepth(-1) }).To(Panic())
	})

	Context("through ports", func() {
		var (
			upstream   *stubComp
			downstream *stubComp
			push       *flow.Port
			pull       *flow.Port
			available  int
		)

		BeforeEach(func() {
			available = 0
			upstream = newStubComp(sim, "Upstream")
			downstream = newStubComp(sim, "Downstream")
			push = flow.NewPort(upstream, "Upstream.Out", flow.Output)
			pull = flow.NewPort(downstream, "Downstream.In", flow.Input,
				flow.WithDataAvailable(func() { available++ }))

			flow.MustConnect(push, q.In())
			flow.MustConnect(q.Out(), pull)
		})

		It("should accept pushes and serve pulls in order", func() {
			Expect(push.Push("a")).To(BeTrue())
			Expect(push.Push("b")).To(BeTrue())

			item, ok := pull.Peek(nil)
			Expect(ok).To(BeTrue())
			Expect(item).To(Equal("a"))
			Expect(q.Count()).To(Equal(2))

			item, _ = pull.Take(nil)
			Expect(item).To(Equal("a"))
			item, _ = pull.Take(nil)
			Expect(item).To(Equal("b"))

			_, ok = pull.Take(nil)
			Expect(ok).To(BeFalse())
		})

		It("should signal the output side on every arrival", func() {
			push.Push("a")
			push.Push("b")

			Expect(available).To(Equal(2))
		})

		It("should describe its capabilities", func() {
			Expect(q.Capabilities()).To(Equal([]flow.Capability{
				{Port: "Queue.In", Direction: flow.Input, Push: true},
				{Port: "Queue.Out", Direction: flow.Output, Pull: true},
			}))
		})
	})
})

type stubComp struct {
	*flow.ComponentBase
}

func newStubComp(model flow.Model, name string) *stubComp {
	c := &stubComp{ComponentBase: flow.NewComponentBase(model, name)}
	return c
}
