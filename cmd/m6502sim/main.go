// Package main provides the entry point for the 6502 simulator.
// It loads a raw program image, resets the CPU into it and runs a fixed
// number of clock cycles.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"runtime/pprof"

	"github.com/sarchlab/akita/v4/sim"

	"github.com/sarchlab/m6502sim/config"
	"github.com/sarchlab/m6502sim/emu"
	"github.com/sarchlab/m6502sim/loader"
	"github.com/sarchlab/m6502sim/timing/core"
)

var (
	configPath = flag.String("config", "", "Path to machine configuration JSON file")
	cycles     = flag.Uint64("cycles", 0, "Cycles to run after reset (overrides config)")
	loadAddr   = flag.Uint("load", 0, "Load address of the image (overrides config)")
	trace      = flag.Bool("trace", false, "Print every bus transaction")
	cpuProfile = flag.String("cpuprofile", "", "Write CPU profile to file")
	verbose    = flag.Bool("v", false, "Verbose output")
)

// runReport summarises a finished run.
type runReport struct {
	Stats            core.Stats
	ResetCycles      uint64
	SimulatedSeconds float64
	CPU              emu.CPU
}

func main() {
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Usage: m6502sim [options] <program.bin>\n")
		fmt.Fprintf(os.Stderr, "\nOptions:\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	cfg, err := machineConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading machine config: %v\n", err)
		os.Exit(1)
	}

	if *cpuProfile != "" {
		f, err := os.Create(*cpuProfile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating CPU profile: %v\n", err)
			os.Exit(1)
		}
		defer func() { _ = f.Close() }()

		if err := pprof.StartCPUProfile(f); err != nil {
			fmt.Fprintf(os.Stderr, "Error starting CPU profile: %v\n", err)
			os.Exit(1)
		}
		defer pprof.StopCPUProfile()
	}

	programPath := flag.Arg(0)

	prog, err := loader.Load(programPath, cfg.LoadAddress)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading program: %v\n", err)
		os.Exit(1)
	}

	if *verbose {
		fmt.Printf("Loaded: %s\n", programPath)
		fmt.Printf("Load address: $%04X-$%04X\n", prog.LoadAddr, prog.End()-1)
		fmt.Printf("Clock: %.0f Hz\n", cfg.ClockHz)
	}

	report, err := run(cfg, prog, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error running simulation: %v\n", err)
		os.Exit(1)
	}

	printReport(os.Stdout, programPath, report)
}

// machineConfig merges the config file, if any, with command-line overrides.
func machineConfig() (*config.MachineConfig, error) {
	cfg := config.DefaultMachineConfig()
	if *configPath != "" {
		var err error
		cfg, err = config.LoadConfig(*configPath)
		if err != nil {
			return nil, err
		}
	}

	var loadErr error
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "cycles":
			cfg.MaxCycles = *cycles
		case "load":
			cfg.LoadAddress, loadErr = parseLoadAddress(*loadAddr)
		case "trace":
			cfg.Trace = *trace
		}
	})

	if loadErr != nil {
		return nil, loadErr
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// parseLoadAddress checks that a -load value fits the 16-bit address space.
func parseLoadAddress(v uint) (uint16, error) {
	if v > 0xFFFF {
		return 0, fmt.Errorf("load address $%X exceeds $FFFF", v)
	}
	return uint16(v), nil
}

// run builds the machine described by cfg, installs prog, resets and runs
// cfg.MaxCycles cycles on an akita engine. Bus traffic goes to traceOut when
// tracing is enabled.
func run(cfg *config.MachineConfig, prog *loader.Program, traceOut io.Writer) (*runReport, error) {
	memory := emu.NewMemory()
	prog.Install(memory, cfg.PatchResetVector)

	var bus emu.Bus = memory
	var recorder *emu.Recorder
	if cfg.Trace {
		recorder = emu.NewRecorder(memory)
		bus = recorder
	}

	emulator := emu.NewEmulator(
		emu.WithBus(bus),
		emu.WithTable(emu.StandardTable()),
	)
	c := core.NewCore(emulator)

	c.Reset()
	resetCycles := emulator.CycleCount()
	if recorder != nil {
		printTrace(traceOut, "reset", recorder.Accesses())
		recorder.Clear()
	}

	engine := sim.NewSerialEngine()
	clock := core.NewClock("CPU", engine, sim.Freq(cfg.ClockHz), c)
	if err := clock.Run(cfg.MaxCycles); err != nil {
		return nil, fmt.Errorf("engine stopped: %w", err)
	}

	if recorder != nil {
		printTrace(traceOut, "run", recorder.Accesses())
	}

	stats := c.Stats()

	return &runReport{
		Stats:            stats,
		ResetCycles:      resetCycles,
		SimulatedSeconds: clock.SimulatedSeconds(stats.Cycles),
		CPU:              *emulator.CPU(),
	}, nil
}

func printTrace(w io.Writer, phase string, accesses []emu.Access) {
	for i, a := range accesses {
		dir := "R"
		if a.Write {
			dir = "W"
		}
		fmt.Fprintf(w, "%-5s %6d  %s $%04X = $%02X\n", phase, i, dir, a.Addr, a.Value)
	}
}

func printReport(w io.Writer, programPath string, r *runReport) {
	fmt.Fprintf(w, "\n")
	fmt.Fprintf(w, "Program: %s\n", programPath)
	fmt.Fprintf(w, "Reset cycles: %d\n", r.ResetCycles)
	fmt.Fprintf(w, "Total Cycles: %d\n", r.Stats.Cycles)
	fmt.Fprintf(w, "Total Instructions: %d\n", r.Stats.Instructions)
	fmt.Fprintf(w, "CPI: %.2f\n", r.Stats.CPI())
	fmt.Fprintf(w, "Simulated time: %.6f s\n", r.SimulatedSeconds)
	fmt.Fprintf(w, "\n")
	fmt.Fprintf(w, "CPU: %s\n", &r.CPU)
}
