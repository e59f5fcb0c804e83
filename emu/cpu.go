// Package emu provides a cycle-stepped 6502 emulation core.
package emu

import "fmt"

// CPU holds the 6502 register file together with the control-plane state that
// lets an instruction run one bus cycle at a time.
type CPU struct {
	// PC is the program counter. It wraps at $FFFF.
	PC uint16
	// SP is the stack pointer.
	SP StackPointer
	// A, X and Y are the accumulator and index registers.
	A uint8
	X uint8
	Y uint8
	// P is the processor status byte.
	P StatusRegister

	// IR is the opcode of the instruction being executed.
	IR uint8
	// Tmp8 and Tmp16 are scratch registers for addressing-mode work.
	Tmp8  uint8
	Tmp16 uint16
	// Eff is the effective address computed by the current instruction.
	Eff uint16
	// Crossed is set when an effective address computation crossed a page.
	Crossed bool

	// Instr is the instruction whose micro-ops are being executed.
	Instr *Instruction
	// Step indexes the next micro-op of Instr to run.
	Step int
	// Ready is true between instructions, when the next tick fetches.
	Ready bool
}

// NewCPU returns a CPU in its power-on state.
func NewCPU() *CPU {
	return &CPU{
		P:     mask(IRQDisableFlagPos) | mask(UnusedBitPos),
		Instr: &nop,
		Ready: true,
	}
}

// SetFlagBit sets the status bit at pos.
func (c *CPU) SetFlagBit(pos uint8) {
	c.P = c.P.Set(pos)
}

// ClearFlagBit clears the status bit at pos, leaving every other bit alone.
func (c *CPU) ClearFlagBit(pos uint8) {
	c.P = c.P.Clear(pos)
}

// Flag reports whether the status bit at pos is set.
func (c *CPU) Flag(pos uint8) bool {
	return c.P.Test(pos)
}

// Flags returns the decomposed view of the status byte.
func (c *CPU) Flags() Flags {
	return c.P.Unpack()
}

// SetFlags replaces the status byte with the packed flags.
func (c *CPU) SetFlags(f Flags) {
	c.P = f.Pack()
}

// IncrementPC advances the program counter by one, wrapping at $FFFF.
func (c *CPU) IncrementPC() {
	c.PC++
}

// setNZ updates the zero and negative flags from v.
func (c *CPU) setNZ(v uint8) {
	if v == 0 {
		c.SetFlagBit(ZeroFlagPos)
	} else {
		c.ClearFlagBit(ZeroFlagPos)
	}
	if v&0x80 != 0 {
		c.SetFlagBit(NegativeFlagPos)
	} else {
		c.ClearFlagBit(NegativeFlagPos)
	}
}

func (c *CPU) String() string {
	name := "-"
	if c.Instr != nil {
		name = c.Instr.Name
	}
	return fmt.Sprintf("PC=$%04X A=$%02X X=$%02X Y=$%02X SP=$%02X P=%s IR=$%02X %s[%d] ready=%v",
		c.PC, c.A, c.X, c.Y, uint8(c.SP), c.P, c.IR, name, c.Step, c.Ready)
}
