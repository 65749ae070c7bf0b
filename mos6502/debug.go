package mos6502

import "github.com/davecgh/go-spew/spew"

// debugSnapshot is the subset of CPU state worth dumping: everything
// except the bus, which spew would otherwise try to walk into and which
// is usually far too large (or unprintable) to be useful.
type debugSnapshot struct {
	A, X, Y, SP, Status uint8
	PC                  uint16
	Cycles              uint64
	NMIPending          bool
	IRQLine             bool
}

// Debug returns a deep, field-by-field dump of the CPU's register state,
// useful when a test failure or an interactive session needs more than
// String provides.
func (c *CPU) Debug() string {
	return spew.Sdump(debugSnapshot{
		A: c.a, X: c.x, Y: c.y, SP: c.sp, Status: c.status,
		PC:         c.pc,
		Cycles:     c.totalCycles,
		NMIPending: c.nmiPending,
		IRQLine:    c.irqLine,
	})
}

// String renders a compact one-line register trace in the conventional
// debugger layout: PC, registers, flags as letters (uppercase set, lowercase
// clear), stack pointer.
func (c *CPU) String() string {
	flags := [8]byte{'c', 'z', 'i', 'd', 'b', 'u', 'v', 'n'}
	for i := range flags {
		if c.status&(1<<uint(i)) != 0 {
			flags[i] -= 'a' - 'A'
		}
	}
	return spew.Sprintf(
		"PC:%04X A:%02X X:%02X Y:%02X SP:%02X P:%s",
		c.pc, c.a, c.x, c.y, c.sp, string(flags[:]),
	)
}
