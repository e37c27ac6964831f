package monitoring

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sarchlab/flowsim/flow/boundary"
	"github.com/sarchlab/flowsim/flow/queueing"
	"github.com/sarchlab/flowsim/sim/timing"
	"github.com/sarchlab/flowsim/simulation"
)

type nopHandler struct{}

func (nopHandler) Handle(timing.Event) error {
	return nil
}

var _ = Describe("Monitor", func() {
	var (
		sim     *simulation.Simulation
		m       *Monitor
		handler http.Handler
		qA, qB  *queueing.Queue
	)

	get := func(target string) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))

		return rec
	}

	queues := func(target string) []queueRsp {
		rec := get(target)
		Expect(rec.Code).To(Equal(http.StatusOK))

		var rsp []queueRsp
		Expect(json.Unmarshal(rec.Body.Bytes(), &rsp)).To(Succeed())

		return rsp
	}

	BeforeEach(func() {
		sim = simulation.NewSimulation()
		qA = queueing.MakeBuilder().WithModel(sim).WithMaxDepth(10).Build("QueueA")
		qB = queueing.MakeBuilder().WithModel(sim).WithMaxDepth(2).Build("QueueB")
		sink := boundary.MakeSinkBuilder().WithModel(sim).Build("Sink")

		m = NewMonitor()
		m.RegisterEngine(sim.GetEngine())
		for _, c := range sim.Components() {
			m.RegisterComponent(c)
		}

		Expect(sink).NotTo(BeNil())
		handler = m.Handler()
	})

	It("should list components", func() {
		rec := get("/api/list_components")

		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(rec.Body.String()).To(MatchJSON(`["QueueA","QueueB","Sink"]`))
	})

	It("should only list queues as queues", func() {
		Expect(m.queues).To(HaveLen(2))
	})

	It("should report the simulated time", func() {
		engine := sim.GetEngine()
		engine.Schedule(timing.NewEventBase(2.5, nopHandler{}))
		Expect(engine.Run()).To(Succeed())

		rec := get("/api/now")

		Expect(rec.Body.String()).To(MatchJSON(`{"now":2.5}`))
	})

	It("should describe a component", func() {
		rec := get("/api/component/QueueA")

		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(rec.Body.Len()).To(BeNumerically(">", 0))
	})

	It("should return 404 for unknown components", func() {
		rec := get("/api/component/Nothing")

		Expect(rec.Code).To(Equal(http.StatusNotFound))
	})

	It("should reject malformed field requests", func() {
		rec := get("/api/field/" + url.PathEscape("{not json"))

		Expect(rec.Code).To(Equal(http.StatusBadRequest))
	})

	Context("queues", func() {
		BeforeEach(func() {
			for i := 0; i < 3; i++ {
				qA.Arrival(i)
			}
			qB.Arrival(0)
		})

		It("should sort by percent by default", func() {
			rsp := queues("/api/queues")

			Expect(rsp).To(Equal([]queueRsp{
				{Queue: "QueueB", Level: 1, Cap: 2},
				{Queue: "QueueA", Level: 3, Cap: 10},
			}))
		})

		It("should sort by level", func() {
			rsp := queues("/api/queues?sort=level")

			Expect(rsp[0].Queue).To(Equal("QueueA"))
			Expect(rsp[1].Queue).To(Equal("QueueB"))
		})

		It("should page the result", func() {
			Expect(queues("/api/queues?sort=level&limit=1")).To(HaveLen(1))
			Expect(queues("/api/queues?offset=1")).To(Equal([]queueRsp{
				{Queue: "QueueA", Level: 3, Cap: 10},
			}))
			Expect(queues("/api/queues?offset=5")).To(BeEmpty())
		})

		It("should reject unknown sort methods", func() {
			rec := get("/api/queues?sort=name")

			Expect(rec.Code).To(Equal(http.StatusBadRequest))
		})

		It("should reject bad numbers", func() {
			Expect(get("/api/queues?limit=x").Code).To(Equal(http.StatusBadRequest))
			Expect(get("/api/queues?offset=-1").Code).To(Equal(http.StatusBadRequest))
		})
	})

	Context("progress bars", func() {
		It("should list the bars until completed", func() {
			bar := m.CreateProgressBar("Items", 10)
			bar.IncrementInProgress(3)
			bar.MoveInProgressToFinished(2)

			finished, inProgress := bar.Progress()
			Expect(finished).To(Equal(uint64(2)))
			Expect(inProgress).To(Equal(uint64(1)))

			rec := get("/api/progress")
			var bars []map[string]any
			Expect(json.Unmarshal(rec.Body.Bytes(), &bars)).To(Succeed())
			Expect(bars).To(HaveLen(1))
			Expect(bars[0]["name"]).To(Equal("Items"))
			Expect(bars[0]["finished"]).To(BeNumerically("==", 2))

			Expect(m.ProgressBars()).To(ConsistOf(bar))

			m.CompleteProgressBar(bar)
			Expect(m.ProgressBars()).To(BeEmpty())

			rec = get("/api/progress")
			Expect(rec.Body.String()).To(MatchJSON(`[]`))
		})
	})

	It("should report resource usage", func() {
		rec := get("/api/resource")

		Expect(rec.Code).To(Equal(http.StatusOK))

		var rsp map[string]any
		Expect(json.Unmarshal(rec.Body.Bytes(), &rsp)).To(Succeed())
		Expect(rsp).To(HaveKey("cpu_percent"))
		Expect(rsp).To(HaveKey("memory_size"))
	})

	It("should serve the status page", func() {
		rec := get("/")

		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(rec.Body.String()).To(ContainSubstring("flowsim"))
	})

	It("should refuse to open a browser before the server starts", func() {
		Expect(m.OpenBrowser()).NotTo(Succeed())
	})
})
