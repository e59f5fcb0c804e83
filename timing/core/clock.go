package core

import (
	"github.com/sarchlab/akita/v4/sim"
)

// Clock is an akita ticking component that advances a Core one cycle per
// tick of its simulated clock. Time is virtual; nothing is paced against the
// wall clock.
type Clock struct {
	*sim.TickingComponent

	engine    sim.Engine
	freq      sim.Freq
	core      *Core
	remaining uint64
}

// NewClock creates a Clock named name that ticks core at freq on engine.
func NewClock(name string, engine sim.Engine, freq sim.Freq, core *Core) *Clock {
	clk := &Clock{
		engine: engine,
		freq:   freq,
		core:   core,
	}
	clk.TickingComponent = sim.NewTickingComponent(name, engine, freq, clk)

	return clk
}

// Tick advances the core by one cycle while budget remains. It reports
// whether progress was made.
func (clk *Clock) Tick() bool {
	if clk.remaining == 0 {
		return false
	}

	clk.core.Tick()
	clk.remaining--

	return true
}

// Run schedules cycles ticks and runs the engine until they are spent.
func (clk *Clock) Run(cycles uint64) error {
	clk.remaining = cycles
	if cycles == 0 {
		return nil
	}

	clk.TickLater()

	return clk.engine.Run()
}

// Remaining returns the number of cycles still to run.
func (clk *Clock) Remaining() uint64 {
	return clk.remaining
}

// SimulatedSeconds converts a cycle count into simulated time at the
// clock's frequency.
func (clk *Clock) SimulatedSeconds(cycles uint64) float64 {
	if clk.freq <= 0 {
		return 0
	}
	return float64(cycles) / float64(clk.freq)
}
