package main

import (
	"bytes"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/m6502sim/config"
	"github.com/sarchlab/m6502sim/loader"
)

var _ = Describe("parseLoadAddress", func() {
	It("should accept addresses up to $FFFF", func() {
		addr, err := parseLoadAddress(0xFFFF)

		Expect(err).NotTo(HaveOccurred())
		Expect(addr).To(Equal(uint16(0xFFFF)))
	})

	It("should reject addresses past $FFFF instead of truncating", func() {
		_, err := parseLoadAddress(0x10200)

		Expect(err).To(MatchError("load address $10200 exceeds $FFFF"))
	})
})

var _ = Describe("Run", func() {
	var (
		cfg *config.MachineConfig
		out *bytes.Buffer
	)

	BeforeEach(func() {
		cfg = config.DefaultMachineConfig()
		out = &bytes.Buffer{}
	})

	mustProgram := func(data []byte, addr uint16) *loader.Program {
		prog, err := loader.New(data, addr)
		Expect(err).NotTo(HaveOccurred())
		return prog
	}

	It("should reset into the image and run the cycle budget", func() {
		// The reset sequence consumes the first byte as its opcode fetch.
		prog := mustProgram([]byte{
			0xEA,             // NOP (fetched by reset)
			0xA9, 0x42,       // LDA #$42
			0x8D, 0x00, 0x30, // STA $3000
			0x4C, 0x06, 0x02, // JMP $0206
		}, 0x0200)
		cfg.MaxCycles = 20

		report, err := run(cfg, prog, out)

		Expect(err).NotTo(HaveOccurred())
		Expect(report.ResetCycles).To(Equal(uint64(9)))
		Expect(report.Stats.Cycles).To(Equal(uint64(20)))
		Expect(report.CPU.A).To(Equal(uint8(0x42)))
		Expect(report.SimulatedSeconds).To(BeNumerically("~", 20e-6, 1e-12))
		Expect(out.Len()).To(BeZero())
	})

	It("should print bus traffic when tracing", func() {
		prog := mustProgram([]byte{0xEA, 0xEA}, 0x0200)
		cfg.MaxCycles = 2
		cfg.Trace = true

		_, err := run(cfg, prog, out)

		Expect(err).NotTo(HaveOccurred())
		Expect(out.String()).To(ContainSubstring("reset      0  R $00FF"))
		Expect(out.String()).To(ContainSubstring("R $FFFC = $00"))
		Expect(out.String()).To(ContainSubstring("R $FFFD = $02"))
		Expect(out.String()).To(ContainSubstring("run        0  R $0201 = $EA"))
	})

	It("should honour an unpatched reset vector", func() {
		prog := mustProgram([]byte{0x00, 0x90}, 0xFFFC)
		cfg.PatchResetVector = false
		cfg.MaxCycles = 1

		report, err := run(cfg, prog, out)

		Expect(err).NotTo(HaveOccurred())
		Expect(report.CPU.PC).To(Equal(uint16(0x9002)))
	})

	It("should print a report", func() {
		prog := mustProgram([]byte{0xEA}, 0x0200)
		cfg.MaxCycles = 4
		report, err := run(cfg, prog, out)
		Expect(err).NotTo(HaveOccurred())

		printReport(out, "prog.bin", report)

		Expect(out.String()).To(ContainSubstring("Program: prog.bin"))
		Expect(out.String()).To(ContainSubstring("Total Cycles: 4"))
		Expect(out.String()).To(ContainSubstring("CPU: PC="))
	})
})
