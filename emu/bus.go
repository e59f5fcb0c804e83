package emu

import "slices"

// Bus is the byte-addressed 64K address space the CPU talks to. Every call is
// one bus transaction; device mapping is the implementation's business.
type Bus interface {
	Read(addr uint16) byte
	Write(addr uint16, value byte)
}

// MemorySize is the size of the full 16-bit address space.
const MemorySize = 0x10000

// Memory is a flat 64KB RAM bus.
type Memory struct {
	data [MemorySize]byte
}

// NewMemory creates a zero-filled 64KB memory.
func NewMemory() *Memory {
	return &Memory{}
}

// Read returns the byte at addr.
func (m *Memory) Read(addr uint16) byte {
	return m.data[addr]
}

// Write stores value at addr.
func (m *Memory) Write(addr uint16, value byte) {
	m.data[addr] = value
}

// Load copies data into memory starting at addr. Addresses wrap at $FFFF.
func (m *Memory) Load(addr uint16, data []byte) {
	for i, b := range data {
		m.data[addr+uint16(i)] = b
	}
}

// Access is a single recorded bus transaction.
type Access struct {
	Addr  uint16
	Value byte
	Write bool
}

// Recorder wraps a Bus and keeps every transaction in the order it happened.
type Recorder struct {
	bus      Bus
	accesses []Access
}

// NewRecorder creates a Recorder in front of bus.
func NewRecorder(bus Bus) *Recorder {
	return &Recorder{bus: bus}
}

// Read forwards to the wrapped bus and records the transaction.
func (r *Recorder) Read(addr uint16) byte {
	v := r.bus.Read(addr)
	r.accesses = append(r.accesses, Access{Addr: addr, Value: v})
	return v
}

// Write forwards to the wrapped bus and records the transaction.
func (r *Recorder) Write(addr uint16, value byte) {
	r.bus.Write(addr, value)
	r.accesses = append(r.accesses, Access{Addr: addr, Value: value, Write: true})
}

// Accesses returns a copy of the transactions recorded since the last Clear.
func (r *Recorder) Accesses() []Access {
	return slices.Clone(r.accesses)
}

// Clear forgets all recorded transactions.
func (r *Recorder) Clear() {
	r.accesses = nil
}
