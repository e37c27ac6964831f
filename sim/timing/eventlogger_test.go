package timing

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

var _ = Describe("EventLogger", func() {
	It("should log each event with its handler name", func() {
		logger, hook := test.NewNullLogger()
		logger.SetLevel(logrus.DebugLevel)

		engine := NewSerialEngine()
		engine.AcceptHook(NewEventLogger(logger))

		p := NewPulser("Clock", engine, 1*Hz, 2)
		p.Start(0)
		Expect(engine.Run()).To(Succeed())

		Expect(hook.AllEntries()).To(HaveLen(2))
		entry := hook.LastEntry()
		Expect(entry.Level).To(Equal(logrus.DebugLevel))
		Expect(entry.Data["handler"]).To(Equal("Clock"))
		Expect(entry.Data["time"]).To(Equal(VTimeInSec(1)))
		Expect(entry.Data["event"]).To(Equal("timing.PulseEvent"))
	})
})
