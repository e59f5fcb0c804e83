package emu

// Emulator owns the CPU, the bus and the opcode dispatch table, and advances
// them one clock cycle at a time.
type Emulator struct {
	cpu   *CPU
	bus   Bus
	table *Table

	// Execution state
	cycleCount       uint64
	instructionCount uint64
}

// EmulatorOption is a functional option for configuring the Emulator.
type EmulatorOption func(*Emulator)

// WithBus sets the bus the CPU reads and writes. Defaults to a flat 64KB RAM.
func WithBus(bus Bus) EmulatorOption {
	return func(e *Emulator) {
		e.bus = bus
	}
}

// WithTable sets the opcode dispatch table. Defaults to all NOP.
func WithTable(table *Table) EmulatorOption {
	return func(e *Emulator) {
		e.table = table
	}
}

// NewEmulator creates a new 6502 emulator.
func NewEmulator(opts ...EmulatorOption) *Emulator {
	e := &Emulator{
		cpu: NewCPU(),
	}

	for _, opt := range opts {
		opt(e)
	}

	if e.bus == nil {
		e.bus = NewMemory()
	}
	if e.table == nil {
		e.table = NewTable()
	}

	return e
}

// CPU returns the emulator's processor state.
func (e *Emulator) CPU() *CPU {
	return e.cpu
}

// Bus returns the emulator's bus.
func (e *Emulator) Bus() Bus {
	return e.bus
}

// Table returns the emulator's dispatch table.
func (e *Emulator) Table() *Table {
	return e.table
}

// Install places in at opcode. A nil instruction installs NOP.
func (e *Emulator) Install(opcode uint8, in *Instruction) {
	if in == nil {
		in = &nop
	}
	e.table[opcode] = in
}

// CycleCount returns the number of ticks executed.
func (e *Emulator) CycleCount() uint64 {
	return e.cycleCount
}

// InstructionCount returns the number of opcodes fetched.
func (e *Emulator) InstructionCount() uint64 {
	return e.instructionCount
}

// Tick advances the CPU by exactly one clock cycle. A ready CPU fetches the
// opcode at PC; otherwise the current micro-op runs and its StepControl
// decides where the instruction goes next.
func (e *Emulator) Tick() {
	c := e.cpu
	e.cycleCount++

	if c.Ready {
		c.IR = e.bus.Read(c.PC)
		c.IncrementPC()
		c.Instr = e.table.Lookup(c.IR)
		c.Step = 0
		c.Ready = false
		e.instructionCount++
		return
	}

	micro := c.Instr.Micro
	if c.Step < 0 || c.Step >= len(micro) {
		c.Ready = true
		return
	}

	ctl := micro[c.Step](e)
	switch ctl.Kind {
	case StepAdvance:
		c.Step++
	case StepComplete:
		c.Ready = true
	case StepBranch:
		c.Step = ctl.Target
	}

	// An instruction that runs off the end of its microcode without
	// signalling Complete still finishes.
	if c.Step < 0 || c.Step >= len(micro) {
		c.Ready = true
	}
}

// Reset runs the RESET sequence to completion. It returns once the CPU is
// back in the fetch state with PC loaded from the reset vector.
func (e *Emulator) Reset() {
	c := e.cpu
	c.Instr = &reset
	c.Step = 0
	c.Ready = false

	for !c.Ready {
		e.Tick()
	}
}
