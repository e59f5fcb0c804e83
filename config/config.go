// Package config provides the JSON machine configuration for the simulator.
package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// MachineConfig holds the host-level settings used to build and run a
// simulated machine.
type MachineConfig struct {
	// ClockHz is the simulated CPU clock frequency.
	// Default: 1 MHz.
	ClockHz float64 `json:"clock_hz"`

	// MaxCycles is the number of cycles to run after reset.
	// Default: 1000.
	MaxCycles uint64 `json:"max_cycles"`

	// LoadAddress is where a program image is placed in memory.
	// Default: $0200.
	LoadAddress uint16 `json:"load_address"`

	// PatchResetVector points the reset vector at LoadAddress after loading.
	// Default: true.
	PatchResetVector bool `json:"patch_reset_vector"`

	// Trace prints every bus transaction.
	Trace bool `json:"trace"`
}

// DefaultMachineConfig returns a MachineConfig with default values.
func DefaultMachineConfig() *MachineConfig {
	return &MachineConfig{
		ClockHz:          1_000_000,
		MaxCycles:        1000,
		LoadAddress:      0x0200,
		PatchResetVector: true,
	}
}

// LoadConfig loads a MachineConfig from a JSON file. Fields absent from the
// file keep their defaults.
func LoadConfig(path string) (*MachineConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read machine config file: %w", err)
	}

	config := DefaultMachineConfig()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse machine config: %w", err)
	}

	return config, nil
}

// SaveConfig writes a MachineConfig to a JSON file.
func (c *MachineConfig) SaveConfig(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize machine config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write machine config file: %w", err)
	}

	return nil
}

// Validate checks that the configuration can drive a simulation.
func (c *MachineConfig) Validate() error {
	if c.ClockHz <= 0 {
		return fmt.Errorf("clock_hz must be > 0")
	}
	if c.MaxCycles == 0 {
		return fmt.Errorf("max_cycles must be > 0")
	}
	return nil
}

// Clone returns a copy of the MachineConfig.
func (c *MachineConfig) Clone() *MachineConfig {
	clone := *c
	return &clone
}
