package emu

import "fmt"

// StepKind tells the tick loop what to do after a micro-op has run.
type StepKind uint8

const (
	// StepAdvance moves on to the next micro-op on the next tick.
	StepAdvance StepKind = iota
	// StepComplete ends the instruction; the next tick fetches.
	StepComplete
	// StepBranch jumps to the micro-op at Target on the next tick.
	StepBranch
)

// StepControl is the directive a micro-op returns.
type StepControl struct {
	Kind   StepKind
	Target int
}

// Advance continues with the following micro-op.
func Advance() StepControl {
	return StepControl{Kind: StepAdvance}
}

// Complete marks the micro-op as the last cycle of the instruction.
func Complete() StepControl {
	return StepControl{Kind: StepComplete}
}

// Branch continues with micro-op n, forwards or backwards.
func Branch(n int) StepControl {
	return StepControl{Kind: StepBranch, Target: n}
}

func (s StepControl) String() string {
	switch s.Kind {
	case StepAdvance:
		return "advance"
	case StepComplete:
		return "complete"
	case StepBranch:
		return fmt.Sprintf("branch(%d)", s.Target)
	default:
		return fmt.Sprintf("StepKind(%d)", s.Kind)
	}
}

// MicroOp is one clock cycle of work: at most one bus transaction plus any
// register effects.
type MicroOp func(e *Emulator) StepControl

// Instruction is the microcode for one opcode.
type Instruction struct {
	// Name is for diagnostics only.
	Name string
	// Micro holds one entry per cycle after the opcode fetch.
	Micro []MicroOp
}

// Cycles returns the length of the micro-op sequence.
func (in *Instruction) Cycles() int {
	return len(in.Micro)
}

// Table maps every opcode to its instruction.
type Table [256]*Instruction

// NewTable returns a table with every slot set to NOP.
func NewTable() *Table {
	t := &Table{}
	for i := range t {
		t[i] = &nop
	}
	return t
}

// Lookup returns the instruction for opcode. Empty slots resolve to NOP.
func (t *Table) Lookup(opcode uint8) *Instruction {
	if in := t[opcode]; in != nil {
		return in
	}
	return &nop
}

// NOPInstruction returns the placeholder instruction: one cycle, then done.
// It is shared by every table and must be treated as read-only.
func NOPInstruction() *Instruction {
	return &nop
}

// ResetInstruction returns the power-on/reset microcode. It is shared and
// must be treated as read-only.
func ResetInstruction() *Instruction {
	return &reset
}

var nop = Instruction{
	Name: "NOP",
	Micro: []MicroOp{
		func(*Emulator) StepControl { return Complete() },
	},
}

// dummyRead is a bus read at $00FF whose result is thrown away.
func dummyRead(e *Emulator) StepControl {
	e.bus.Read(0x00FF)
	return Advance()
}

// suppressedPush models a stack push during reset: the write line is held
// high, so the bus sees a read of the stack slot and SP still moves.
func suppressedPush(e *Emulator) StepControl {
	e.bus.Read(e.cpu.SP.Address())
	e.cpu.SP.Decrement()
	return Advance()
}

// ResetVector is the address of the low byte of the reset vector.
const ResetVector uint16 = 0xFFFC

// reset runs in place of a fetched instruction and ends with the first
// opcode in IR.
var reset = Instruction{
	Name: "RESET",
	Micro: []MicroOp{
		func(e *Emulator) StepControl {
			e.cpu.SP = 0
			e.cpu.IR = 0
			e.cpu.SetFlagBit(IRQDisableFlagPos)
			e.cpu.SetFlagBit(UnusedBitPos)
			e.cpu.ClearFlagBit(DecimalFlagPos)
			e.bus.Read(0x00FF)
			return Advance()
		},
		dummyRead,
		dummyRead,
		suppressedPush, // PCH
		suppressedPush, // PCL
		suppressedPush, // P
		func(e *Emulator) StepControl {
			e.cpu.Tmp8 = e.bus.Read(ResetVector)
			return Advance()
		},
		func(e *Emulator) StepControl {
			hi := e.bus.Read(ResetVector + 1)
			e.cpu.PC = uint16(hi)<<8 | uint16(e.cpu.Tmp8)
			return Advance()
		},
		func(e *Emulator) StepControl {
			e.cpu.IR = e.bus.Read(e.cpu.PC)
			e.cpu.IncrementPC()
			e.cpu.Ready = true
			return Complete()
		},
	},
}
