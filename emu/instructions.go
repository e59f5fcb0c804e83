package emu

import "sync"

// Micro-op building blocks shared by the standard instructions.

// fetchLo reads the operand byte at PC into the low half of Tmp16.
func fetchLo(e *Emulator) StepControl {
	e.cpu.Tmp16 = uint16(e.bus.Read(e.cpu.PC))
	e.cpu.IncrementPC()
	return Advance()
}

// fetchHi reads the operand byte at PC into the high half of Tmp16 and makes
// it the effective address.
func fetchHi(e *Emulator) StepControl {
	e.cpu.Tmp16 |= uint16(e.bus.Read(e.cpu.PC)) << 8
	e.cpu.IncrementPC()
	e.cpu.Eff = e.cpu.Tmp16
	return Advance()
}

// idleRead is the throwaway read at PC that single-byte instructions make
// during their second cycle.
func idleRead(e *Emulator) {
	e.bus.Read(e.cpu.PC)
}

func implied(name string, op func(c *CPU)) *Instruction {
	return &Instruction{
		Name: name,
		Micro: []MicroOp{
			func(e *Emulator) StepControl {
				idleRead(e)
				op(e.cpu)
				return Complete()
			},
		},
	}
}

func immediate(name string, op func(c *CPU, v uint8)) *Instruction {
	return &Instruction{
		Name: name,
		Micro: []MicroOp{
			func(e *Emulator) StepControl {
				v := e.bus.Read(e.cpu.PC)
				e.cpu.IncrementPC()
				op(e.cpu, v)
				return Complete()
			},
		},
	}
}

var ldaAbsX = Instruction{
	Name: "LDA abs,X",
	Micro: []MicroOp{
		fetchLo,
		func(e *Emulator) StepControl {
			c := e.cpu
			hi := e.bus.Read(c.PC)
			c.IncrementPC()
			base := uint16(hi)<<8 | c.Tmp16
			c.Eff = base + uint16(c.X)
			c.Crossed = c.Eff&0xFF00 != base&0xFF00
			// Partially-fixed address: base page, indexed low byte.
			c.Tmp16 = base&0xFF00 | c.Eff&0x00FF
			if !c.Crossed {
				return Branch(3)
			}
			return Advance()
		},
		func(e *Emulator) StepControl {
			e.bus.Read(e.cpu.Tmp16)
			return Advance()
		},
		func(e *Emulator) StepControl {
			e.cpu.A = e.bus.Read(e.cpu.Eff)
			e.cpu.setNZ(e.cpu.A)
			return Complete()
		},
	},
}

var ldaAbs = Instruction{
	Name: "LDA abs",
	Micro: []MicroOp{
		fetchLo,
		fetchHi,
		func(e *Emulator) StepControl {
			e.cpu.A = e.bus.Read(e.cpu.Eff)
			e.cpu.setNZ(e.cpu.A)
			return Complete()
		},
	},
}

var staAbs = Instruction{
	Name: "STA abs",
	Micro: []MicroOp{
		fetchLo,
		fetchHi,
		func(e *Emulator) StepControl {
			e.bus.Write(e.cpu.Eff, e.cpu.A)
			return Complete()
		},
	},
}

var jmpAbs = Instruction{
	Name: "JMP abs",
	Micro: []MicroOp{
		fetchLo,
		func(e *Emulator) StepControl {
			hi := e.bus.Read(e.cpu.PC)
			e.cpu.PC = uint16(hi)<<8 | e.cpu.Tmp16
			return Complete()
		},
	},
}

// bne is the conditional branch: 2 cycles not taken, 3 taken, 4 when the
// target lies on another page.
var bne = Instruction{
	Name: "BNE",
	Micro: []MicroOp{
		func(e *Emulator) StepControl {
			c := e.cpu
			c.Tmp8 = e.bus.Read(c.PC)
			c.IncrementPC()
			if c.Flag(ZeroFlagPos) {
				return Complete()
			}
			return Advance()
		},
		func(e *Emulator) StepControl {
			c := e.cpu
			idleRead(e)
			c.Eff = c.PC + uint16(int8(c.Tmp8))
			c.Crossed = c.Eff&0xFF00 != c.PC&0xFF00
			if !c.Crossed {
				c.PC = c.Eff
				return Complete()
			}
			// Only the low byte has been added so far.
			c.PC = c.PC&0xFF00 | c.Eff&0x00FF
			return Advance()
		},
		func(e *Emulator) StepControl {
			idleRead(e)
			e.cpu.PC = e.cpu.Eff
			return Complete()
		},
	},
}

var standardTable = sync.OnceValue(func() Table {
	t := *NewTable()

	t[0xEA] = implied("NOP", func(*CPU) {})
	t[0x78] = implied("SEI", func(c *CPU) { c.SetFlagBit(IRQDisableFlagPos) })
	t[0xD8] = implied("CLD", func(c *CPU) { c.ClearFlagBit(DecimalFlagPos) })
	t[0xE8] = implied("INX", func(c *CPU) {
		c.X++
		c.setNZ(c.X)
	})
	t[0xA9] = immediate("LDA #", func(c *CPU, v uint8) {
		c.A = v
		c.setNZ(v)
	})
	t[0xA2] = immediate("LDX #", func(c *CPU, v uint8) {
		c.X = v
		c.setNZ(v)
	})
	t[0xAD] = &ldaAbs
	t[0xBD] = &ldaAbsX
	t[0x8D] = &staAbs
	t[0x4C] = &jmpAbs
	t[0xD0] = &bne

	return t
})

// StandardTable returns a fresh dispatch table holding the implemented subset
// of the 6502 instruction set; other opcodes resolve to NOP. The instructions
// themselves are shared and must not be modified.
func StandardTable() *Table {
	t := standardTable()
	return &t
}
