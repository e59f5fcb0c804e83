// Package core provides the cycle-level driver for the 6502 emulator.
// It wraps an emu.Emulator to provide a high-level interface.
package core

import (
	"github.com/sarchlab/m6502sim/emu"
)

// Stats holds performance statistics for the core.
type Stats struct {
	// Cycles is the total number of cycles simulated.
	Cycles uint64
	// Instructions is the number of opcodes fetched.
	Instructions uint64
}

// CPI returns the average number of cycles per instruction.
func (s Stats) CPI() float64 {
	if s.Instructions == 0 {
		return 0
	}
	return float64(s.Cycles) / float64(s.Instructions)
}

// Core drives an Emulator cycle by cycle and keeps statistics.
type Core struct {
	// Emulator is the underlying cycle-stepped emulator.
	Emulator *emu.Emulator

	base Stats
}

// NewCore creates a new Core around the given emulator.
func NewCore(e *emu.Emulator) *Core {
	return &Core{
		Emulator: e,
	}
}

// Tick executes one clock cycle.
func (c *Core) Tick() {
	c.Emulator.Tick()
}

// RunCycles executes the core for the specified number of cycles.
func (c *Core) RunCycles(cycles uint64) {
	for i := uint64(0); i < cycles; i++ {
		c.Emulator.Tick()
	}
}

// Stats returns statistics gathered since the last Reset.
func (c *Core) Stats() Stats {
	return Stats{
		Cycles:       c.Emulator.CycleCount() - c.base.Cycles,
		Instructions: c.Emulator.InstructionCount() - c.base.Instructions,
	}
}

// Reset runs the CPU reset sequence and zeroes the statistics. The reset
// cycles themselves are not counted.
func (c *Core) Reset() {
	c.Emulator.Reset()
	c.base = Stats{
		Cycles:       c.Emulator.CycleCount(),
		Instructions: c.Emulator.InstructionCount(),
	}
}
