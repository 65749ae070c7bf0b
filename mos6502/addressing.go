package mos6502

// operandAddress resolves the effective address for every mode except
// IMPLIED and ACCUMULATOR, which never address memory and are handled by
// their operations directly. It returns the address and whether resolving
// it crossed a page boundary, since several operations charge an extra
// cycle for that (see instructionCycles in cycles.go).
//
// pc points at the first operand byte (the CPU has already consumed the
// opcode byte itself).
func (c *CPU) operandAddress(mode Mode, pc uint16) (addr uint16, pageCrossed bool) {
	switch mode {
	case IMMEDIATE:
		return pc, false

	case ZEROPAGE:
		return uint16(c.bus.Read(pc)), false

	case ZEROPAGE_X:
		return uint16(c.bus.Read(pc) + c.x), false

	case ZEROPAGE_Y:
		return uint16(c.bus.Read(pc) + c.y), false

	case RELATIVE:
		offset := int8(c.bus.Read(pc))
		base := pc + 1
		target := uint16(int32(base) + int32(offset))
		return target, pagesDiffer(base, target)

	case ABSOLUTE:
		return Read16(c.bus, pc), false

	case ABSOLUTE_X:
		base := Read16(c.bus, pc)
		addr = base + uint16(c.x)
		return addr, pagesDiffer(base, addr)

	case ABSOLUTE_Y:
		base := Read16(c.bus, pc)
		addr = base + uint16(c.y)
		return addr, pagesDiffer(base, addr)

	case INDIRECT:
		ptr := Read16(c.bus, pc)
		return c.readIndirectWithPageWrapBug(ptr), false

	case INDIRECT_X:
		zp := c.bus.Read(pc) + c.x
		lo := uint16(c.bus.Read(uint16(zp)))
		hi := uint16(c.bus.Read(uint16(zp + 1)))
		return (hi << 8) | lo, false

	case INDIRECT_Y:
		zp := c.bus.Read(pc)
		lo := uint16(c.bus.Read(uint16(zp)))
		hi := uint16(c.bus.Read(uint16(zp + 1)))
		base := (hi << 8) | lo
		addr = base + uint16(c.y)
		return addr, pagesDiffer(base, addr)

	default:
		return 0, false
	}
}

// readIndirectWithPageWrapBug reproduces the 6502's infamous JMP (indirect)
// bug: if the pointer's low byte is 0xFF, the high byte of the target is
// fetched from the start of the same page rather than the next one.
func (c *CPU) readIndirectWithPageWrapBug(ptr uint16) uint16 {
	lo := uint16(c.bus.Read(ptr))
	var hiAddr uint16
	if ptr&0x00FF == 0x00FF {
		hiAddr = ptr & 0xFF00
	} else {
		hiAddr = ptr + 1
	}
	hi := uint16(c.bus.Read(hiAddr))
	return (hi << 8) | lo
}

// pagesDiffer reports whether a and b fall in different 256-byte pages.
func pagesDiffer(a, b uint16) bool {
	return a&0xFF00 != b&0xFF00
}
