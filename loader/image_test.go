package loader_test

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/m6502sim/emu"
	"github.com/sarchlab/m6502sim/loader"
)

var _ = Describe("Image Loader", func() {
	var tempDir string

	BeforeEach(func() {
		var err error
		tempDir, err = os.MkdirTemp("", "image-loader-test")
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		_ = os.RemoveAll(tempDir)
	})

	writeImage := func(name string, data []byte) string {
		path := filepath.Join(tempDir, name)
		Expect(os.WriteFile(path, data, 0644)).To(Succeed())
		return path
	}

	Describe("Load", func() {
		It("should read the image and keep the load address", func() {
			path := writeImage("prog.bin", []byte{0xEA, 0xA9, 0x01})

			prog, err := loader.Load(path, 0x0200)

			Expect(err).NotTo(HaveOccurred())
			Expect(prog.LoadAddr).To(Equal(uint16(0x0200)))
			Expect(prog.Data).To(Equal([]byte{0xEA, 0xA9, 0x01}))
			Expect(prog.End()).To(Equal(0x0203))
		})

		It("should fail for a missing file", func() {
			_, err := loader.Load(filepath.Join(tempDir, "missing.bin"), 0)

			Expect(err).To(MatchError(ContainSubstring("failed to read program image")))
		})

		It("should reject an empty image", func() {
			path := writeImage("empty.bin", nil)

			_, err := loader.Load(path, 0x0200)

			Expect(err).To(MatchError("program image is empty"))
		})

		It("should accept an image that ends exactly at $FFFF", func() {
			_, err := loader.New(make([]byte, 0x100), 0xFF00)

			Expect(err).NotTo(HaveOccurred())
		})

		It("should reject an image that runs past $FFFF", func() {
			_, err := loader.New(make([]byte, 0x101), 0xFF00)

			Expect(err).To(MatchError(ContainSubstring("program image too large")))
		})
	})

	Describe("Install", func() {
		var mem *emu.Memory

		BeforeEach(func() {
			mem = emu.NewMemory()
		})

		It("should write the image and patch the reset vector", func() {
			prog, err := loader.New([]byte{0xEA, 0xEA}, 0xC010)
			Expect(err).NotTo(HaveOccurred())

			prog.Install(mem, true)

			Expect(mem.Read(0xC010)).To(Equal(byte(0xEA)))
			Expect(mem.Read(0xC011)).To(Equal(byte(0xEA)))
			Expect(mem.Read(0xFFFC)).To(Equal(byte(0x10)))
			Expect(mem.Read(0xFFFD)).To(Equal(byte(0xC0)))
		})

		It("should leave the vector alone when not patching", func() {
			prog, err := loader.New([]byte{0xEA}, 0x0200)
			Expect(err).NotTo(HaveOccurred())

			prog.Install(mem, false)

			Expect(mem.Read(0xFFFC)).To(BeZero())
			Expect(mem.Read(0xFFFD)).To(BeZero())
		})

		It("should boot into the image through reset", func() {
			prog, err := loader.New([]byte{0xEA, 0xA9, 0x07}, 0x0300)
			Expect(err).NotTo(HaveOccurred())
			prog.Install(mem, true)
			e := emu.NewEmulator(emu.WithBus(mem), emu.WithTable(emu.StandardTable()))

			e.Reset()
			e.Tick()
			e.Tick()

			Expect(e.CPU().A).To(Equal(uint8(0x07)))
		})
	})
})
