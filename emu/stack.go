package emu

// StackBase is the fixed high byte of every stack address.
const StackBase uint16 = 0x0100

// StackPointer is the 8-bit offset into the stack page ($0100-$01FF).
type StackPointer uint8

// Address returns the bus address the stack pointer refers to.
func (sp StackPointer) Address() uint16 {
	return StackBase | uint16(sp)
}

// Increment moves the pointer up one byte, wrapping within the stack page.
func (sp *StackPointer) Increment() {
	*sp++
}

// Decrement moves the pointer down one byte, wrapping within the stack page.
func (sp *StackPointer) Decrement() {
	*sp--
}
