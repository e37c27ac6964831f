package timing

import (
	"reflect"

	"github.com/sarchlab/flowsim/sim/hooking"
	"github.com/sirupsen/logrus"
)

// EventLogger is an hook that logs every event before it is handled.
type EventLogger struct {
	logger logrus.FieldLogger
}

// NewEventLogger returns a new EventLogger which will write in to the logger
func NewEventLogger(logger logrus.FieldLogger) *EventLogger {
	h := new(EventLogger)

	h.logger = logger

	return h
}

type named interface {
	Name() string
}

// Func writes the event information into the logger
func (h *EventLogger) Func(ctx hooking.HookCtx) {
	if ctx.Pos != HookPosBeforeEvent {
		return
	}

	evt, ok := ctx.Item.(Event)
	if !ok {
		return
	}

	handlerName := reflect.TypeOf(evt.Handler()).String()
	if n, ok := evt.Handler().(named); ok {
		handlerName = n.Name()
	}

	h.logger.WithFields(logrus.Fields{
		"time":    evt.Time(),
		"event":   reflect.TypeOf(evt).String(),
		"handler": handlerName,
	}).Debug("event")
}
