package simulation

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sarchlab/flowsim/flow"
	"github.com/sarchlab/flowsim/sim/hooking"
)

type stubComp struct {
	*flow.ComponentBase
}

func newStubComp(s *Simulation, name string) *stubComp {
	c := &stubComp{ComponentBase: flow.NewComponentBase(s, name)}
	c.Seal(c)

	return c
}

var _ = Describe("Simulation", func() {
	var s *Simulation

	BeforeEach(func() {
		s = NewSimulation()
	})

	It("should hand out sequential ids", func() {
		a := newStubComp(s, "A")
		b := newStubComp(s, "B")

		Expect(a.ID()).To(Equal("1"))
		Expect(b.ID()).To(Equal("2"))
	})

	It("should find components by id and name", func() {
		a := newStubComp(s, "A")

		found, ok := s.Lookup(a.ID())
		Expect(ok).To(BeTrue())
		Expect(found).To(BeIdenticalTo(a))

		byName, ok := s.GetComponentByName("A")
		Expect(ok).To(BeTrue())
		Expect(byName).To(BeIdenticalTo(a))

		_, ok = s.Lookup("404")
		Expect(ok).To(BeFalse())
	})

	It("should refuse duplicated names", func() {
		newStubComp(s, "A")

		Expect(func() { newStubComp(s, "A") }).To(Panic())
	})

	It("should refuse components of another model", func() {
		other := MakeBuilder().WithParallelIDs().Build("Other")
		c := &stubComp{ComponentBase: flow.NewComponentBase(other, "A")}

		Expect(s.Register(c)).NotTo(Succeed())
	})

	It("should announce model start", func() {
		var runs []any
		s.AcceptHook(hooking.NewFuncHook(func(ctx hooking.HookCtx) {
			Expect(ctx.Pos).To(BeIdenticalTo(flow.HookPosModelStart))
			runs = append(runs, ctx.Item)
		}))

		Expect(s.Run()).To(Succeed())
		Expect(s.Run()).To(Succeed())

		Expect(runs).To(Equal([]any{1, 2}))
	})

	It("should list components in registration order", func() {
		a := newStubComp(s, "A")
		b := newStubComp(s, "B")

		Expect(s.Components()).To(Equal([]flow.Component{a, b}))
	})
})
