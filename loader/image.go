// Package loader provides raw binary image loading for 6502 programs.
package loader

import (
	"fmt"
	"os"

	"github.com/sarchlab/m6502sim/emu"
)

// Program represents a raw memory image ready to be placed on the bus.
type Program struct {
	// LoadAddr is the address of the image's first byte.
	LoadAddr uint16
	// Data contains the image bytes.
	Data []byte
}

// Load reads a raw binary image that will be placed at loadAddr. The image
// must fit between loadAddr and $FFFF.
func Load(path string, loadAddr uint16) (*Program, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read program image: %w", err)
	}

	return New(data, loadAddr)
}

// New wraps in-memory image bytes as a Program.
func New(data []byte, loadAddr uint16) (*Program, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("program image is empty")
	}

	end := int(loadAddr) + len(data)
	if end > emu.MemorySize {
		return nil, fmt.Errorf("program image too large: %d bytes at $%04X ends at $%X, limit $%X",
			len(data), loadAddr, end, emu.MemorySize)
	}

	return &Program{
		LoadAddr: loadAddr,
		Data:     data,
	}, nil
}

// End returns the address one past the last image byte.
func (p *Program) End() int {
	return int(p.LoadAddr) + len(p.Data)
}

// Install writes the image to bus. When patchVector is set the reset vector
// at $FFFC/$FFFD is pointed at LoadAddr, overriding any image bytes there.
func (p *Program) Install(bus emu.Bus, patchVector bool) {
	for i, b := range p.Data {
		bus.Write(p.LoadAddr+uint16(i), b)
	}

	if patchVector {
		bus.Write(emu.ResetVector, uint8(p.LoadAddr&0x00FF))
		bus.Write(emu.ResetVector+1, uint8(p.LoadAddr>>8))
	}
}
