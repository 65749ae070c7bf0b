// Command 6502dasm disassembles a flat binary image of 6502 machine code.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bdwalton/mos6502/mos6502"
)

// flatMemory is the simplest possible Bus: a 64KB byte array covering the
// whole address space, loaded once from a binary image. The CLI only reads
// through it, but mos6502.Disassemble takes a Bus, not a
// []byte, so something has to implement the interface.
type flatMemory struct {
	data [0x10000]byte
}

func (m *flatMemory) Read(addr uint16) uint8       { return m.data[addr] }
func (m *flatMemory) Write(addr uint16, val uint8) { m.data[addr] = val }

func main() {
	var loadAddr uint16
	var count int

	rootCmd := &cobra.Command{
		Use:   "6502dasm <file>",
		Short: "Disassemble a flat 6502 binary image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read %s: %w", args[0], err)
			}
			if int(loadAddr)+len(raw) > 0x10000 {
				return fmt.Errorf("image of %d bytes at $%04X overruns the 16-bit address space", len(raw), loadAddr)
			}

			mem := &flatMemory{}
			copy(mem.data[loadAddr:], raw)

			n := count
			if n <= 0 {
				n = len(raw)
			}

			lines := mos6502.Disassemble(mem, loadAddr, n)
			return mos6502.Fprint(os.Stdout, lines)
		},
	}

	rootCmd.Flags().Uint16VarP(&loadAddr, "addr", "a", 0, "address the image is loaded at")
	rootCmd.Flags().IntVarP(&count, "count", "n", 0, "number of instructions to disassemble (default: upper-bounded by the image size)")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
