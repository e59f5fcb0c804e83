package emu

import "fmt"

// Status flag bit positions within the processor status byte.
const (
	CarryFlagPos      uint8 = 0
	ZeroFlagPos       uint8 = 1
	IRQDisableFlagPos uint8 = 2
	DecimalFlagPos    uint8 = 3
	BreakFlagPos      uint8 = 4
	UnusedBitPos      uint8 = 5
	OverflowFlagPos   uint8 = 6
	NegativeFlagPos   uint8 = 7
)

// StatusRegister is the raw processor status byte. It is the source of truth
// for all flags; Flags is a view derived from it on demand.
type StatusRegister uint8

// Flags is the decomposed, one-bool-per-bit view of a StatusRegister.
type Flags struct {
	Carry      bool
	Zero       bool
	IRQDisable bool
	Decimal    bool
	Break      bool
	Unused     bool
	Overflow   bool
	Negative   bool
}

func mask(pos uint8) StatusRegister {
	return StatusRegister(1) << pos
}

// Set returns the register with the bit at pos set.
func (sr StatusRegister) Set(pos uint8) StatusRegister {
	return sr | mask(pos)
}

// Clear returns the register with the bit at pos cleared. Only the named bit
// changes.
func (sr StatusRegister) Clear(pos uint8) StatusRegister {
	return sr &^ mask(pos)
}

// Test reports whether the bit at pos is set.
func (sr StatusRegister) Test(pos uint8) bool {
	return sr&mask(pos) != 0
}

// WithUnused returns the register with bit 5 forced to 1, as it appears when
// the CPU pushes it to the stack.
func (sr StatusRegister) WithUnused() StatusRegister {
	return sr.Set(UnusedBitPos)
}

// Unpack splits the byte into its named flags. Bit 5 is carried as-is.
func (sr StatusRegister) Unpack() Flags {
	return Flags{
		Carry:      sr.Test(CarryFlagPos),
		Zero:       sr.Test(ZeroFlagPos),
		IRQDisable: sr.Test(IRQDisableFlagPos),
		Decimal:    sr.Test(DecimalFlagPos),
		Break:      sr.Test(BreakFlagPos),
		Unused:     sr.Test(UnusedBitPos),
		Overflow:   sr.Test(OverflowFlagPos),
		Negative:   sr.Test(NegativeFlagPos),
	}
}

// Pack folds the flags back into a status byte. Pack(Unpack(b)) == b for
// every byte value.
func (f Flags) Pack() StatusRegister {
	var sr StatusRegister

	bits := [...]struct {
		on  bool
		pos uint8
	}{
		{f.Carry, CarryFlagPos},
		{f.Zero, ZeroFlagPos},
		{f.IRQDisable, IRQDisableFlagPos},
		{f.Decimal, DecimalFlagPos},
		{f.Break, BreakFlagPos},
		{f.Unused, UnusedBitPos},
		{f.Overflow, OverflowFlagPos},
		{f.Negative, NegativeFlagPos},
	}
	for _, b := range bits {
		if b.on {
			sr = sr.Set(b.pos)
		}
	}

	return sr
}

// String returns the register as a labelled bit pattern, upper case for set
// flags, e.g. "nv-bdIzc".
func (sr StatusRegister) String() string {
	labels := [...]struct {
		pos     uint8
		on, off byte
	}{
		{NegativeFlagPos, 'N', 'n'},
		{OverflowFlagPos, 'V', 'v'},
		{UnusedBitPos, '-', '-'},
		{BreakFlagPos, 'B', 'b'},
		{DecimalFlagPos, 'D', 'd'},
		{IRQDisableFlagPos, 'I', 'i'},
		{ZeroFlagPos, 'Z', 'z'},
		{CarryFlagPos, 'C', 'c'},
	}

	out := make([]byte, 0, len(labels))
	for _, l := range labels {
		if sr.Test(l.pos) {
			out = append(out, l.on)
		} else {
			out = append(out, l.off)
		}
	}

	return fmt.Sprintf("%s ($%02X)", out, uint8(sr))
}
