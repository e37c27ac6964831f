package tracing

import (
	"sync"

	"github.com/sarchlab/flowsim/datarecording"
	"github.com/sarchlab/flowsim/flow/queueing"
	"github.com/sarchlab/flowsim/sim/hooking"
	"github.com/sarchlab/flowsim/sim/naming"
	"github.com/sarchlab/flowsim/sim/timing"
)

// LevelTableName is the table that level tracers record into.
const LevelTableName = "queue_levels"

// LevelEntry is a row of the level table.
type LevelEntry struct {
	Time     float64
	Queue    string
	Previous int
	Current  int
}

// CreateLevelTable prepares a recorder for level tracers. It must be called
// once per recorder, before any tracer records into it.
func CreateLevelTable(recorder datarecording.DataRecorder) {
	recorder.CreateTable(LevelTableName, LevelEntry{})
}

// LevelTracer follows the occupancy of a queue over time. It integrates the
// level over time so that the time-weighted average can be reported, and
// tracks the maximum level and the time during which the queue held items.
type LevelTracer struct {
	timeTeller timing.TimeTeller
	recorder   datarecording.DataRecorder
	lock       sync.Mutex

	startTime timing.VTimeInSec
	lastTime  timing.VTimeInSec
	level     int
	maxLevel  int
	area      float64
	busyTime  float64
	changes   uint64
}

// NewLevelTracer creates a tracer that starts measuring now. The level starts
// at zero, or at the count of the queue it is attached to with CollectTrace.
func NewLevelTracer(timeTeller timing.TimeTeller) *LevelTracer {
	now := timeTeller.Now()

	return &LevelTracer{
		timeTeller: timeTeller,
		startTime:  now,
		lastTime:   now,
	}
}

// RecordTo makes the tracer write every level change into the recorder. The
// level table must have been created with CreateLevelTable.
func (t *LevelTracer) RecordTo(recorder datarecording.DataRecorder) {
	t.recorder = recorder
}

// Func records level changes.
func (t *LevelTracer) Func(ctx hooking.HookCtx) {
	if ctx.Pos != queueing.HookPosLevelChanged {
		return
	}

	change := ctx.Detail.(queueing.LevelChange)
	now := t.timeTeller.Now()

	t.lock.Lock()
	t.accumulate(now, change.Previous)
	t.level = change.Current
	t.changes++

	if t.level > t.maxLevel {
		t.maxLevel = t.level
	}
	t.lock.Unlock()

	if t.recorder != nil {
		t.recorder.InsertData(LevelTableName, LevelEntry{
			Time:     float64(now),
			Queue:    domainName(ctx.Domain),
			Previous: change.Previous,
			Current:  change.Current,
		})
	}
}

func (t *LevelTracer) attachedTo(domain NamedHookable) {
	q, ok := domain.(occupied)
	if !ok {
		return
	}

	now := t.timeTeller.Now()

	t.lock.Lock()
	defer t.lock.Unlock()

	t.accumulate(now, t.level)
	t.level = q.Count()

	if t.level > t.maxLevel {
		t.maxLevel = t.level
	}
}

func (t *LevelTracer) accumulate(now timing.VTimeInSec, level int) {
	duration := float64(now - t.lastTime)

	t.area += float64(level) * duration
	if level > 0 {
		t.busyTime += duration
	}

	t.lastTime = now
}

// Level returns the last level seen.
func (t *LevelTracer) Level() int {
	t.lock.Lock()
	defer t.lock.Unlock()

	return t.level
}

// MaxLevel returns the highest level seen.
func (t *LevelTracer) MaxLevel() int {
	t.lock.Lock()
	defer t.lock.Unlock()

	return t.maxLevel
}

// Changes returns the number of level changes seen.
func (t *LevelTracer) Changes() uint64 {
	t.lock.Lock()
	defer t.lock.Unlock()

	return t.changes
}

// AverageLevel returns the time-weighted average level from the creation of
// the tracer until now.
func (t *LevelTracer) AverageLevel() float64 {
	now := t.timeTeller.Now()

	t.lock.Lock()
	defer t.lock.Unlock()

	t.accumulate(now, t.level)

	elapsed := float64(now - t.startTime)
	if elapsed <= 0 {
		return float64(t.level)
	}

	return t.area / elapsed
}

// BusyTime returns how long the queue held at least one item.
func (t *LevelTracer) BusyTime() float64 {
	now := t.timeTeller.Now()

	t.lock.Lock()
	defer t.lock.Unlock()

	t.accumulate(now, t.level)

	return t.busyTime
}

func domainName(domain hooking.Hookable) string {
	if named, ok := domain.(naming.Named); ok {
		return named.Name()
	}

	return ""
}
