// Package mos6502 implements the MOS Technology 6502 8-bit microprocessor.
// https://en.wikipedia.org/wiki/MOS_Technology_6502
package mos6502

// Bus is the memory capability the CPU depends on. The embedder supplies an
// implementation bound to whatever backs its 16-bit address space (plain
// RAM, a mapper, memory-mapped registers, ...); the CPU never assumes the
// bus is pure or idempotent and performs exactly the reads and writes the
// ISA mandates, in program order.
//
// This interface is what lets the core stay reusable: nothing in this
// package knows about carts, mappers or PPUs, only about Read and Write.
type Bus interface {
	Read(addr uint16) uint8
	Write(addr uint16, val uint8)
}

// Read16 returns the little-endian 16-bit word at addr, low byte first.
func Read16(b Bus, addr uint16) uint16 {
	lo := uint16(b.Read(addr))
	hi := uint16(b.Read(addr + 1))
	return (hi << 8) | lo
}

// Write16 stores val at addr in little-endian order.
func Write16(b Bus, addr uint16, val uint16) {
	b.Write(addr, uint8(val&0x00FF))
	b.Write(addr+1, uint8(val>>8))
}
