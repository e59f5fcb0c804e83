package core_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/akita/v4/sim"

	"github.com/sarchlab/m6502sim/emu"
	"github.com/sarchlab/m6502sim/timing/core"
)

var _ = Describe("Clock", func() {
	var (
		engine sim.Engine
		c      *core.Core
		clk    *core.Clock
	)

	BeforeEach(func() {
		engine = sim.NewSerialEngine()
		c = core.NewCore(emu.NewEmulator())
		clk = core.NewClock("CPU", engine, 1*sim.MHz, c)
	})

	It("should run the requested number of cycles", func() {
		Expect(clk.Run(25)).To(Succeed())

		Expect(c.Stats().Cycles).To(Equal(uint64(25)))
		Expect(clk.Remaining()).To(BeZero())
	})

	It("should do nothing for a zero budget", func() {
		Expect(clk.Run(0)).To(Succeed())

		Expect(c.Stats().Cycles).To(BeZero())
	})

	It("should stop ticking once the budget is spent", func() {
		Expect(clk.Tick()).To(BeFalse())
		Expect(c.Stats().Cycles).To(BeZero())
	})

	It("should convert cycles to simulated time", func() {
		Expect(clk.SimulatedSeconds(2_000_000)).To(BeNumerically("~", 2.0, 1e-9))
	})
})
