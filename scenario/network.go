package scenario

import (
	"errors"
	"fmt"

	"github.com/iti/rngstream"
	"github.com/sarchlab/flowsim/datarecording"
	"github.com/sarchlab/flowsim/flow"
	"github.com/sarchlab/flowsim/flow/boundary"
	"github.com/sarchlab/flowsim/flow/queueing"
	"github.com/sarchlab/flowsim/flow/routing"
	"github.com/sarchlab/flowsim/flow/selection"
	"github.com/sarchlab/flowsim/flow/topology"
	"github.com/sarchlab/flowsim/monitoring"
	"github.com/sarchlab/flowsim/sim/hooking"
	"github.com/sarchlab/flowsim/sim/naming"
	"github.com/sarchlab/flowsim/sim/timing"
	"github.com/sarchlab/flowsim/simulation"
	"github.com/sarchlab/flowsim/tracing"
	"github.com/sirupsen/logrus"
)

const defaultAdmissionStream = "admission"

const strategyStream = "strategy"

// Builder can build scenario networks.
type Builder struct {
	cfg      *Config
	log      logrus.FieldLogger
	recorder datarecording.DataRecorder
	engine   timing.Engine
}

// MakeBuilder creates a builder that uses DefaultConfig.
func MakeBuilder() Builder {
	return Builder{
		cfg: DefaultConfig(),
	}
}

// WithConfig sets the scenario to build.
func (b Builder) WithConfig(cfg *Config) Builder {
	b.cfg = cfg
	return b
}

// WithLogger sets the logger. The standard logrus logger is used otherwise.
func (b Builder) WithLogger(l logrus.FieldLogger) Builder {
	b.log = l
	return b
}

// WithRecorder makes the queues record every level change.
func (b Builder) WithRecorder(r datarecording.DataRecorder) Builder {
	b.recorder = r
	return b
}

// WithEngine sets the engine. A serial engine is created if none is given.
func (b Builder) WithEngine(e timing.Engine) Builder {
	b.engine = e
	return b
}

// Build validates the configuration and wires the network.
func (b Builder) Build() (*Network, error) {
	if b.cfg == nil {
		return nil, errors.New("no scenario configuration")
	}

	if err := b.cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	if b.log == nil {
		b.log = logrus.StandardLogger()
	}

	n := &Network{
		cfg:      b.cfg,
		log:      b.log.WithField("scenario", b.cfg.Name),
		recorder: b.recorder,
	}

	n.sim = simulation.MakeBuilder().
		WithEngine(b.engine).
		WithLogger(b.log).
		Build(b.cfg.Name)

	strategy, err := selection.New(b.cfg.Strategy, rngstream.New(strategyStream))
	if err != nil {
		return nil, err
	}

	n.buildBoundary()
	n.buildAdmission()
	n.buildQueues(strategy)
	n.buildServers()
	n.connect()
	n.attachTracers()

	n.log.WithFields(logrus.Fields{
		"queues":     len(n.queues),
		"strategy":   b.cfg.Strategy,
		"components": len(n.sim.Components()),
	}).Info("network built")

	return n, nil
}

// Network is a wired scenario, ready to run.
type Network struct {
	cfg      *Config
	log      logrus.FieldLogger
	recorder datarecording.DataRecorder

	sim      *simulation.Simulation
	arrivals *timing.Pulser
	services []*timing.Pulser

	source    *boundary.ItemSource
	admission *routing.TwoChoiceBranch
	rejected  *boundary.ItemSink
	router    *routing.MultiQueueHead
	queues    []*queueing.Queue
	servers   []*Server
	joiner    *routing.Joiner
	sink      *boundary.ItemSink

	dwell    []*tracing.DwellTimeTracer
	levels   []*tracing.LevelTracer
	counters []*tracing.EventCounter

	nextJob      int
	totalLatency float64
	maxLatency   float64
}

func (n *Network) buildBoundary() {
	engine := n.sim.GetEngine()

	n.arrivals = timing.NewPulser(
		naming.BuildName(n.cfg.Name, "Arrivals"),
		engine, timing.Freq(n.cfg.ArrivalRate), 0)

	n.source = boundary.MakeSourceBuilder().
		WithModel(n.sim).
		WithPulseSource(n.arrivals).
		WithProducer(func() flow.Item {
			n.nextJob++
			return &Job{ID: n.nextJob, Created: engine.Now()}
		}).
		Build("Source")

	n.sink = boundary.MakeSinkBuilder().
		WithModel(n.sim).
		Build("Sink")
	n.sink.AcceptHook(hooking.NewFuncHook(n.measureLatency))
}

func (n *Network) buildAdmission() {
	if n.cfg.Admission == nil {
		return
	}

	streamName := n.cfg.Admission.Stream
	if streamName == "" {
		streamName = defaultAdmissionStream
	}

	n.admission = routing.MakeTwoChoiceBranchBuilder().
		WithModel(n.sim).
		WithThreshold(n.cfg.Admission.Probability, rngstream.New(streamName)).
		Build("Admission")

	n.rejected = boundary.MakeSinkBuilder().
		WithModel(n.sim).
		Build("Rejected")
}

func (n *Network) buildQueues(strategy selection.Strategy) {
	for i := range n.cfg.ServiceRates {
		q := queueing.MakeBuilder().
			WithModel(n.sim).
			WithMaxDepth(n.cfg.MaxDepth).
			Build(fmt.Sprintf("Queue[%d]", i))
		n.queues = append(n.queues, q)
	}

	n.router = routing.MakeMultiQueueHeadBuilder().
		WithModel(n.sim).
		WithQueues(n.queues...).
		WithStrategy(strategy).
		Build("Router")
}

func (n *Network) buildServers() {
	for i, rate := range n.cfg.ServiceRates {
		s := NewServer(n.sim, fmt.Sprintf("Server[%d]", i))

		p := timing.NewPulser(
			naming.BuildName(n.cfg.Name, fmt.Sprintf("Service[%d]", i)),
			n.sim.GetEngine(), timing.Freq(rate), 0)
		p.AcceptHook(s)

		n.servers = append(n.servers, s)
		n.services = append(n.services, p)
	}

	n.joiner = routing.MakeJoinerBuilder().
		WithModel(n.sim).
		WithNumInputs(len(n.servers)).
		WithPolicy(routing.PushJoiner).
		Build("Joiner")
}

func (n *Network) connect() {
	if n.admission != nil {
		flow.MustConnect(n.source.Out(), n.admission.In())
		flow.MustConnect(n.admission.Yes(), n.router.In())
		flow.MustConnect(n.admission.No(), n.rejected.In())
	} else {
		flow.MustConnect(n.source.Out(), n.router.In())
	}

	for i, q := range n.queues {
		flow.MustConnect(q.Out(), n.servers[i].In())
		flow.MustConnect(n.servers[i].Out(), n.joiner.In(i))
	}

	flow.MustConnect(n.joiner.Out(), n.sink.In())
}

func (n *Network) attachTracers() {
	engine := n.sim.GetEngine()

	if n.recorder != nil {
		tracing.CreateLevelTable(n.recorder)
	}

	for _, q := range n.queues {
		dwell := tracing.NewDwellTimeTracer(engine)
		level := tracing.NewLevelTracer(engine)
		counter := tracing.NewEventCounter()

		if n.recorder != nil {
			level.RecordTo(n.recorder)
		}

		tracing.CollectTrace(q, dwell)
		tracing.CollectTrace(q, level)
		tracing.CollectTrace(q, counter)

		n.dwell = append(n.dwell, dwell)
		n.levels = append(n.levels, level)
		n.counters = append(n.counters, counter)
	}
}

func (n *Network) measureLatency(ctx hooking.HookCtx) {
	if ctx.Pos != boundary.HookPosItemConsumed {
		return
	}

	job, ok := ctx.Item.(*Job)
	if !ok {
		return
	}

	latency := n.sim.GetEngine().Now() - job.Created
	n.totalLatency += latency

	if latency > n.maxLatency {
		n.maxLatency = latency
	}
}

// Simulation returns the model that owns the components.
func (n *Network) Simulation() *simulation.Simulation {
	return n.sim
}

// Components returns every component of the network in build order.
func (n *Network) Components() []flow.Component {
	return n.sim.Components()
}

// Queues returns the queues behind the router.
func (n *Network) Queues() []*queueing.Queue {
	return n.queues
}

// Router returns the MultiQueueHead that spreads items over the queues.
func (n *Network) Router() *routing.MultiQueueHead {
	return n.router
}

// Source returns the source that produces jobs.
func (n *Network) Source() *boundary.ItemSource {
	return n.source
}

// Sink returns the sink that receives served items.
func (n *Network) Sink() *boundary.ItemSink {
	return n.sink
}

// Check validates the wiring and makes sure items cannot circulate.
func (n *Network) Check() error {
	components := n.Components()

	if err := topology.Validate(components); err != nil {
		return err
	}

	if _, err := topology.NewGraph(components).Order(); err != nil {
		return err
	}

	return nil
}

// AttachMonitor makes the network observable through the monitor. A progress
// bar follows the jobs from production to consumption.
func (n *Network) AttachMonitor(m *monitoring.Monitor) {
	m.RegisterEngine(n.sim.GetEngine())

	for _, c := range n.Components() {
		m.RegisterComponent(c)
	}

	expected := uint64(n.cfg.Duration*n.cfg.ArrivalRate) + 1
	bar := m.CreateProgressBar("Jobs", expected)

	// The push hook fires before the item can reach a sink, so a job is in
	// progress before it is finished.
	n.source.Out().AcceptHook(hooking.NewFuncHook(func(ctx hooking.HookCtx) {
		if ctx.Pos == flow.HookPosPortPush {
			bar.IncrementInProgress(1)
		}
	}))

	n.source.AcceptHook(hooking.NewFuncHook(func(ctx hooking.HookCtx) {
		if ctx.Pos != boundary.HookPosItemProduced {
			return
		}

		if accepted, _ := ctx.Detail.(bool); !accepted {
			bar.MoveInProgressToFinished(1)
		}
	}))

	done := hooking.NewFuncHook(func(ctx hooking.HookCtx) {
		if ctx.Pos == boundary.HookPosItemConsumed {
			bar.MoveInProgressToFinished(1)
		}
	})

	n.sink.AcceptHook(done)

	if n.rejected != nil {
		n.rejected.AcceptHook(done)
	}
}

// Run drives the network for the configured duration and reports the result.
func (n *Network) Run() (*RunReport, error) {
	n.arrivals.Start(0)

	for _, p := range n.services {
		p.Start(0)
	}

	err := n.sim.RunUntil(n.cfg.Duration)
	if err != nil {
		return nil, fmt.Errorf("running scenario %s: %w", n.cfg.Name, err)
	}

	n.arrivals.Stop()

	for _, p := range n.services {
		p.Stop()
	}

	report := n.Report()

	n.log.WithFields(logrus.Fields{
		"produced": report.Produced,
		"consumed": report.Consumed,
		"rejected": report.Rejected,
	}).Info("scenario finished")

	if n.recorder != nil {
		report.RecordTo(n.recorder)
		n.recorder.Flush()
	}

	return report, nil
}

// Report summarizes the network at the current time.
func (n *Network) Report() *RunReport {
	now := n.sim.GetEngine().Now()

	r := &RunReport{
		Name:       n.cfg.Name,
		Strategy:   n.cfg.Strategy,
		Duration:   now,
		Produced:   n.source.Produced(),
		Consumed:   n.sink.Consumed(),
		MaxLatency: n.maxLatency,
	}

	if n.rejected != nil {
		r.Rejected = n.rejected.Consumed()
	}

	if now > 0 {
		r.Throughput = float64(r.Consumed) / now
	}

	if r.Consumed > 0 {
		r.AverageLatency = n.totalLatency / float64(r.Consumed)
	}

	for i, q := range n.queues {
		r.Queues = append(r.Queues, QueueReport{
			Queue:        q.Name(),
			Final:        q.Count(),
			MaxLevel:     n.levels[i].MaxLevel(),
			AverageLevel: n.levels[i].AverageLevel(),
			BusyTime:     n.levels[i].BusyTime(),
			AverageDwell: n.dwell[i].AverageTime(),
			MaxDwell:     n.dwell[i].MaxTime(),
			Served:       n.servers[i].Served(),
			Dropped:      n.servers[i].Dropped(),
			FullCount: n.counters[i].GetCount(
				queueing.HookPosQueueFull.Name),
		})
	}

	return r
}
