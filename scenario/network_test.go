package scenario

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sarchlab/flowsim/datarecording"
	"github.com/sarchlab/flowsim/flow"
	"github.com/sarchlab/flowsim/flow/selection"
	"github.com/sarchlab/flowsim/monitoring"
	"github.com/sarchlab/flowsim/sim/hooking"
	"github.com/sarchlab/flowsim/tracing"
)

func config(arrivalRate, duration float64, serviceRates ...float64) *Config {
	return &Config{
		Name:         "Test",
		Duration:     duration,
		ArrivalRate:  arrivalRate,
		ServiceRates: serviceRates,
		Strategy:     selection.NameShortest,
	}
}

func mustBuild(cfg *Config) *Network {
	n, err := MakeBuilder().WithConfig(cfg).Build()
	Expect(err).NotTo(HaveOccurred())

	return n
}

var _ = Describe("Network", func() {
	It("should refuse an invalid configuration", func() {
		cfg := config(1, 10)

		_, err := MakeBuilder().WithConfig(cfg).Build()

		Expect(err).To(MatchError(ContainSubstring("invalid scenario")))
	})

	It("should be wired completely and without cycles", func() {
		cfg := config(1, 10, 1, 1, 1)
		cfg.Admission = &AdmissionConfig{Probability: 0.5}

		n := mustBuild(cfg)

		Expect(n.Check()).To(Succeed())
		Expect(n.Queues()).To(HaveLen(3))
		Expect(n.Router().NumOutputs()).To(Equal(3))
	})

	It("should pass every item when service keeps up", func() {
		n := mustBuild(config(1, 10, 1))

		r, err := n.Run()

		Expect(err).NotTo(HaveOccurred())
		Expect(r.Produced).To(Equal(11))
		Expect(r.Consumed).To(Equal(11))
		Expect(r.InFlight()).To(Equal(0))
		Expect(r.AverageLatency).To(Equal(0.0))
		Expect(r.Queues[0].MaxLevel).To(Equal(1))
		Expect(r.Queues[0].Final).To(Equal(0))
		Expect(r.Queues[0].Served).To(Equal(11))
	})

	It("should build up a backlog when service is slower", func() {
		n := mustBuild(config(2, 4.9, 1))

		r, err := n.Run()

		Expect(err).NotTo(HaveOccurred())
		Expect(r.Produced).To(Equal(10))
		Expect(r.Consumed).To(Equal(5))

		q := r.Queues[0]
		Expect(q.Final).To(Equal(5))
		Expect(q.MaxLevel).To(Equal(5))
		Expect(q.AverageDwell).To(BeNumerically("~", 1.0, 1e-9))
		Expect(q.MaxDwell).To(BeNumerically("~", 2.0, 1e-9))
		Expect(r.AverageLatency).To(BeNumerically("~", 1.0, 1e-9))
		Expect(r.MaxLatency).To(BeNumerically("~", 2.0, 1e-9))
	})

	It("should spread items over the shortest queues", func() {
		n := mustBuild(config(2, 10, 1, 1))

		r, err := n.Run()

		Expect(err).NotTo(HaveOccurred())
		// Servers pulse before the arrival at the same time, so the job
		// created at 10s is still waiting when the run ends.
		Expect(r.Produced).To(Equal(21))
		Expect(r.Consumed).To(Equal(20))
		Expect(r.InFlight()).To(Equal(1))
		Expect(r.Queues[0].Served).To(Equal(11))
		Expect(r.Queues[1].Served).To(Equal(9))
		Expect(r.Queues[0].Final).To(Equal(1))
	})

	It("should count the queue reaching its max depth", func() {
		cfg := config(2, 4.9, 1)
		cfg.MaxDepth = 3

		r, err := mustBuild(cfg).Run()

		Expect(err).NotTo(HaveOccurred())
		Expect(r.Queues[0].MaxLevel).To(Equal(5))
		Expect(r.Queues[0].FullCount).To(BeNumerically(">", 0))
	})

	DescribeTable("admission",
		func(probability float64, admitted bool) {
			cfg := config(1, 10, 1)
			cfg.Admission = &AdmissionConfig{Probability: probability}

			r, err := mustBuild(cfg).Run()

			Expect(err).NotTo(HaveOccurred())
			if admitted {
				Expect(r.Rejected).To(Equal(0))
				Expect(r.Consumed).To(Equal(r.Produced))
			} else {
				Expect(r.Rejected).To(Equal(r.Produced))
				Expect(r.Consumed).To(Equal(0))
			}
		},
		Entry("admits everything with probability one", 1.0, true),
		Entry("rejects everything with probability zero", 0.0, false),
	)

	It("should run with every strategy", func() {
		for _, name := range selection.AvailableStrategies() {
			cfg := config(3, 10, 1, 1, 1)
			cfg.Strategy = name

			r, err := mustBuild(cfg).Run()

			Expect(err).NotTo(HaveOccurred(), name)
			Expect(r.Consumed+r.InFlight()).To(Equal(r.Produced), name)
		}
	})

	It("should record queue levels and the summary", func() {
		path := filepath.Join(GinkgoT().TempDir(), "run")
		recorder := datarecording.New(path)
		defer recorder.Close()

		n, err := MakeBuilder().
			WithConfig(config(1, 5, 1)).
			WithRecorder(recorder).
			Build()
		Expect(err).NotTo(HaveOccurred())

		_, err = n.Run()

		Expect(err).NotTo(HaveOccurred())
		Expect(recorder.ListTables()).To(Equal(
			[]string{tracing.LevelTableName, QueueTableName}))
	})

	It("should report progress to a monitor", func() {
		cfg := config(1, 10, 1)
		cfg.Admission = &AdmissionConfig{Probability: 0.5}
		n := mustBuild(cfg)
		m := monitoring.NewMonitor()
		n.AttachMonitor(m)

		r, err := n.Run()
		Expect(err).NotTo(HaveOccurred())

		rec := httptest.NewRecorder()
		m.Handler().ServeHTTP(rec,
			httptest.NewRequest(http.MethodGet, "/api/progress", nil))

		var bars []struct {
			Name       string `json:"name"`
			Finished   uint64 `json:"finished"`
			InProgress uint64 `json:"in_progress"`
		}
		Expect(json.Unmarshal(rec.Body.Bytes(), &bars)).To(Succeed())
		Expect(bars).To(HaveLen(1))
		Expect(bars[0].Name).To(Equal("Jobs"))
		Expect(bars[0].Finished).To(BeEquivalentTo(r.Consumed + r.Rejected))
		Expect(bars[0].InProgress).To(BeEquivalentTo(r.InFlight()))
	})
})

var _ = Describe("Progress", func() {
	It("should count a job in progress before a sink finishes it", func() {
		cfg := config(1, 5, 1)
		cfg.Admission = &AdmissionConfig{Probability: 0}
		n := mustBuild(cfg)
		m := monitoring.NewMonitor()
		n.AttachMonitor(m)

		var bar *monitoring.ProgressBar
		for _, b := range m.ProgressBars() {
			bar = b
		}
		Expect(bar).NotTo(BeNil())

		var observed []uint64
		n.Source().Out().AcceptHook(hooking.NewFuncHook(
			func(ctx hooking.HookCtx) {
				if ctx.Pos != flow.HookPosPortItemAccepted {
					return
				}

				_, inProgress := bar.Progress()
				observed = append(observed, inProgress)
			}))

		r, err := n.Run()

		Expect(err).NotTo(HaveOccurred())
		Expect(r.Rejected).To(Equal(6))
		Expect(observed).To(HaveLen(6))
		Expect(observed).To(HaveEach(BeEquivalentTo(0)))

		finished, inProgress := bar.Progress()
		Expect(finished).To(BeEquivalentTo(6))
		Expect(inProgress).To(BeEquivalentTo(0))
	})
})

var _ = Describe("Report", func() {
	It("should print one row per queue", func() {
		r, err := mustBuild(config(2, 10, 1, 1)).Run()
		Expect(err).NotTo(HaveOccurred())

		buf := new(bytes.Buffer)
		Expect(r.Write(buf)).To(Succeed())

		Expect(buf.String()).To(ContainSubstring("Scenario Test (shortest)"))
		Expect(buf.String()).To(ContainSubstring("Queue[0]"))
		Expect(buf.String()).To(ContainSubstring("Queue[1]"))
	})
})
