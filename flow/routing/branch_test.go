package routing

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sarchlab/flowsim/flow"
	"github.com/sarchlab/flowsim/sim/hooking"
	"github.com/sarchlab/flowsim/simulation"
)

var _ = Describe("Branch", func() {
	var (
		sim *simulation.Simulation
		src *feeder
	)

	BeforeEach(func() {
		sim = simulation.NewSimulation()
		src = newFeeder(sim, "Source")
	})

	Context("two choices", func() {
		var (
			b       *TwoChoiceBranch
			yes, no *collector
		)

		connect := func(br *TwoChoiceBranch) {
			b = br
			yes = newCollector(sim, "Yes", true)
			no = newCollector(sim, "No", true)
			flow.MustConnect(src.out, b.In())
			flow.MustConnect(b.Yes(), yes.in)
			flow.MustConnect(b.No(), no.in)
		}

		It("should route by predicate", func() {
			connect(MakeTwoChoiceBranchBuilder().
				WithModel(sim).
				WithPredicate(func(item flow.Item) bool {
					return item.(int) > 10
				}).
				Build("Branch"))

			Expect(src.out.Push(5)).To(BeTrue())
			Expect(src.out.Push(15)).To(BeTrue())

			Expect(no.received).To(Equal([]flow.Item{5}))
			Expect(yes.received).To(Equal([]flow.Item{15}))
		})

		It("should fail pushes without a decider", func() {
			connect(MakeTwoChoiceBranchBuilder().WithModel(sim).Build("Branch"))

			Expect(src.out.Push(5)).To(BeFalse())
			Expect(yes.received).To(BeEmpty())
			Expect(no.received).To(BeEmpty())
		})

		It("should accept a predicate after construction", func() {
			connect(MakeTwoChoiceBranchBuilder().WithModel(sim).Build("Branch"))

			b.SetPredicate(func(flow.Item) bool { return true })

			Expect(src.out.Push(5)).To(BeTrue())
			Expect(yes.received).To(Equal([]flow.Item{5}))
		})

		It("should route by threshold", func() {
			stream := &fixedStream{draws: []float64{0.1, 0.3, 0.7}}
			connect(MakeTwoChoiceBranchBuilder().
				WithModel(sim).
				WithThreshold(0.3, stream).
				Build("Branch"))

			src.out.Push("a")
			src.out.Push("b")
			src.out.Push("c")

			Expect(yes.received).To(Equal([]flow.Item{"a", "b"}))
			Expect(no.received).To(Equal([]flow.Item{"c"}))
		})

		It("should return the downstream verdict", func() {
			connect(MakeTwoChoiceBranchBuilder().
				WithModel(sim).
				WithPredicate(func(flow.Item) bool { return false }).
				Build("Branch"))
			no.accept = false

			Expect(src.out.Push(1)).To(BeFalse())
		})

		It("should reject thresholds outside of [0, 1]", func() {
			Expect(func() {
				MakeTwoChoiceBranchBuilder().WithThreshold(1.5, &fixedStream{})
			}).To(Panic())
		})

		It("should name its outputs", func() {
			connect(MakeTwoChoiceBranchBuilder().WithModel(sim).Build("Branch"))

			Expect(b.GetPortByName("Yes").Name()).To(Equal("Branch.Yes"))
			Expect(b.GetPortByName("No").Name()).To(Equal("Branch.No"))
		})

		It("should own its ports and raise hooks as itself", func() {
			connect(MakeTwoChoiceBranchBuilder().
				WithModel(sim).
				WithPredicate(func(flow.Item) bool { return true }).
				Build("Branch"))

			var domains []hooking.Hookable
			b.AcceptHook(hooking.NewFuncHook(func(ctx hooking.HookCtx) {
				if ctx.Pos == HookPosBranchRouted {
					domains = append(domains, ctx.Domain)
				}
			}))

			src.out.Push(1)

			Expect(b.In().Owner()).To(BeIdenticalTo(flow.Component(b)))
			Expect(b.Yes().Owner()).To(BeIdenticalTo(flow.Component(b)))
			Expect(b.No().Owner()).To(BeIdenticalTo(flow.Component(b)))
			Expect(domains).To(HaveLen(1))
			Expect(domains[0]).To(BeIdenticalTo(hooking.Hookable(b)))

			registered, found := sim.GetComponentByName("Branch")
			Expect(found).To(BeTrue())
			Expect(registered).To(BeIdenticalTo(flow.Component(b)))
		})
	})

	Context("indexed outputs", func() {
		var (
			b      *Branch
			collectors []*collector
		)

		BeforeEach(func() {
			b = MakeBranchBuilder().
				WithModel(sim).
				WithNumOutputs(3).
				WithDecider(DeciderFunc(func(item flow.Item) int {
					return item.(int)
				})).
				Build("Branch")
			flow.MustConnect(src.out, b.In())

			collectors = []*collector{
				newCollector(sim, "CollectorA", true),
				newCollector(sim, "CollectorB", true),
				newCollector(sim, "CollectorC", true),
			}
			for i, p := range collectors {
				flow.MustConnect(b.Out(i), p.in)
			}
		})

		It("should route to the decided output", func() {
			src.out.Push(2)
			src.out.Push(0)

			Expect(collectors[0].received).To(Equal([]flow.Item{0}))
			Expect(collectors[1].received).To(BeEmpty())
			Expect(collectors[2].received).To(Equal([]flow.Item{2}))
		})

		It("should fail on a decision out of range", func() {
			Expect(src.out.Push(3)).To(BeFalse())
			Expect(src.out.Push(-1)).To(BeFalse())
		})

		It("should report routing decisions", func() {
			var decisions []BranchDecision
			b.AcceptHook(hooking.NewFuncHook(func(ctx hooking.HookCtx) {
				if ctx.Pos == HookPosBranchRouted {
					decisions = append(decisions, ctx.Detail.(BranchDecision))
				}
			}))
			collectors[1].accept = false

			src.out.Push(1)
			src.out.Push(2)
			src.out.Push(7)

			Expect(decisions).To(Equal([]BranchDecision{
				{Output: 1, Accepted: false},
				{Output: 2, Accepted: true},
			}))
		})
	})
})
