package mos6502

import (
	"fmt"
	"math/bits"
)

// Status register bit positions.
const (
	FlagC uint8 = 1 << 0 // Carry
	FlagZ uint8 = 1 << 1 // Zero
	FlagI uint8 = 1 << 2 // Interrupt disable
	FlagD uint8 = 1 << 3 // Decimal mode
	FlagB uint8 = 1 << 4 // Break (only meaningful in the byte pushed to the stack)
	FlagU uint8 = 1 << 5 // Unused, always read back as 1
	FlagV uint8 = 1 << 6 // Overflow
	FlagN uint8 = 1 << 7 // Negative
)

const stackBase uint16 = 0x0100

const (
	resetVector uint16 = 0xFFFC
	nmiVector   uint16 = 0xFFFA
	irqVector   uint16 = 0xFFFE
)

// CPU is a MOS 6502 core. It holds no memory of its own: every read or
// write is delegated to the Bus supplied at construction.
type CPU struct {
	bus Bus

	a, x, y, sp, status uint8
	pc                  uint16

	inst    Instruction
	lastErr error

	totalCycles uint64

	nmiPending bool
	irqLine    bool
}

// New constructs a CPU wired to bus and brings it up in the post-reset
// state described by Reset.
func New(bus Bus) *CPU {
	c := &CPU{bus: bus}
	c.Reset()
	return c
}

// Reset reinitializes every register to the 6502's documented post-reset
// state and loads PC from the reset vector. Unlike a real 6502, which
// takes several cycles to settle, Reset completes synchronously.
func (c *CPU) Reset() {
	c.a = 0
	c.x = 0
	c.y = 0
	c.sp = 0xFD
	c.status = FlagI | FlagU | FlagB
	c.nmiPending = false
	c.irqLine = false
	c.inst = Instruction{}
	c.lastErr = nil
	c.totalCycles = 0
	c.pc = Read16(c.bus, resetVector)
}

// A returns the accumulator.
func (c *CPU) A() uint8 { return c.a }

// X returns the X index register.
func (c *CPU) X() uint8 { return c.x }

// Y returns the Y index register.
func (c *CPU) Y() uint8 { return c.y }

// SP returns the stack pointer.
func (c *CPU) SP() uint8 { return c.sp }

// Status returns the processor status register (P), including the U bit.
func (c *CPU) Status() uint8 { return c.status }

// PC returns the program counter.
func (c *CPU) PC() uint16 { return c.pc }

// CurrentInstruction returns the most recently decoded instruction, i.e.
// the one executed by the last Step call. Its Op is ERR if that opcode
// byte was illegal or undocumented; CurrentOpcodeError reports the same
// condition as an error.
func (c *CPU) CurrentInstruction() Instruction { return c.inst }

// CurrentOpcodeError reports the decode error from the last Step, or nil
// if the last decoded instruction was valid. Callers that want to detect
// an illegal opcode without comparing against ERR directly can test this
// with errors.Is(err, ErrInvalidInstruction).
func (c *CPU) CurrentOpcodeError() error { return c.lastErr }

// SetPC overrides the program counter, bypassing the reset vector. Useful
// for test harnesses and golden-image runners that load code at a fixed
// address.
func (c *CPU) SetPC(addr uint16) { c.pc = addr }

// StackAddr returns the current absolute address of the stack pointer
// (page 1 plus SP).
func (c *CPU) StackAddr() uint16 { return stackBase | uint16(c.sp) }

// Cycles returns the running total of clock cycles this CPU has consumed
// since construction or the last Reset.
func (c *CPU) Cycles() uint64 { return c.totalCycles }

// Read and Write expose the CPU's bus to callers that want to inspect or
// seed memory without reaching around the CPU.
func (c *CPU) Read(addr uint16) uint8          { return c.bus.Read(addr) }
func (c *CPU) Write(addr uint16, val uint8)    { c.bus.Write(addr, val) }
func (c *CPU) Read16(addr uint16) uint16       { return Read16(c.bus, addr) }
func (c *CPU) Write16(addr uint16, val uint16) { Write16(c.bus, addr, val) }

// LoadMem writes data into the bus starting at addr, one byte at a time.
// It exists for test setup and for tools that preload a program image; the
// CPU itself never calls it.
func (c *CPU) LoadMem(addr uint16, data []byte) {
	for i, b := range data {
		c.bus.Write(addr+uint16(i), b)
	}
}

// NMI latches a non-maskable interrupt request. It takes effect at the
// start of the next Step, regardless of the interrupt-disable flag.
func (c *CPU) NMI() { c.nmiPending = true }

// IRQ raises the maskable interrupt line. It is serviced at the start of
// the next Step unless the interrupt-disable flag is set, exactly as the
// line naturally stays asserted until the device that raised it is
// serviced; callers that model a level-triggered device should call IRQ
// again before the following Step if the line is still active.
func (c *CPU) IRQ() { c.irqLine = true }

// Step executes exactly one instruction (or services one pending
// interrupt) and returns the number of clock cycles it took.
func (c *CPU) Step() uint8 {
	if c.nmiPending {
		c.nmiPending = false
		c.serviceInterrupt(nmiVector, false)
		c.totalCycles += 7
		return 7
	}
	if c.irqLine && !c.getFlag(FlagI) {
		c.irqLine = false
		c.serviceInterrupt(irqVector, false)
		c.totalCycles += 7
		return 7
	}

	instPC := c.pc
	opcode := c.bus.Read(c.pc)
	c.pc++
	inst := Decode(opcode)
	c.inst = inst
	if inst.Op == ERR {
		c.lastErr = fmt.Errorf("pc: %d, inst: 0x%02x - %w", instPC, opcode, ErrInvalidInstruction)
	} else {
		c.lastErr = nil
	}
	operandPC := c.pc
	c.pc += uint16(inst.Mode.operandLength())

	var addr uint16
	var pageCrossed bool
	if inst.Mode != IMPLIED && inst.Mode != ACCUMULATOR {
		addr, pageCrossed = c.operandAddress(inst.Mode, operandPC)
	}

	branchTaken := c.execute(inst, addr)

	n := c.instructionCycles(inst, pageCrossed, branchTaken)
	c.totalCycles += uint64(n)
	return n
}

// serviceInterrupt pushes PC and status and vectors to the given handler.
// The pushed status always has B clear for hardware-initiated interrupts;
// BRK (the only software-initiated caller) sets software to force B on in
// the pushed byte, per the documented convention for telling an interrupt
// handler how it was entered. Cycle accounting is the caller's
// responsibility: BRK is costed like any other instruction by
// instructionCycles, while NMI/IRQ servicing is costed directly in Step.
func (c *CPU) serviceInterrupt(vector uint16, software bool) {
	c.push16(c.pc)
	pushed := c.status &^ FlagB
	pushed |= FlagU
	if software {
		pushed |= FlagB
	}
	c.push8(pushed)
	c.setFlag(FlagI, true)
	c.pc = Read16(c.bus, vector)
}

// --- flags -----------------------------------------------------------

func (c *CPU) getFlag(mask uint8) bool { return c.status&mask != 0 }

func (c *CPU) setFlag(mask uint8, on bool) {
	if on {
		c.status |= mask
	} else {
		c.status &^= mask
	}
}

func (c *CPU) setZN(v uint8) {
	c.setFlag(FlagZ, v == 0)
	c.setFlag(FlagN, v&0x80 != 0)
}

// --- stack -------------------------------------------------------------

func (c *CPU) push8(v uint8) {
	c.bus.Write(c.StackAddr(), v)
	c.sp--
}

func (c *CPU) pop8() uint8 {
	c.sp++
	return c.bus.Read(c.StackAddr())
}

func (c *CPU) push16(v uint16) {
	c.push8(uint8(v >> 8))
	c.push8(uint8(v & 0xFF))
}

func (c *CPU) pop16() uint16 {
	lo := uint16(c.pop8())
	hi := uint16(c.pop8())
	return (hi << 8) | lo
}

// --- operand access ------------------------------------------------------

// loadOperand reads the value an instruction operates on: the accumulator
// for ACCUMULATOR mode, or whatever operandAddress resolved to otherwise.
func (c *CPU) loadOperand(mode Mode, addr uint16) uint8 {
	if mode == ACCUMULATOR {
		return c.a
	}
	return c.bus.Read(addr)
}

// storeOperand writes back the result of a read-modify-write instruction.
func (c *CPU) storeOperand(mode Mode, addr uint16, val uint8) {
	if mode == ACCUMULATOR {
		c.a = val
		return
	}
	c.bus.Write(addr, val)
}

// --- execute -------------------------------------------------------------

// execute dispatches a decoded instruction. It returns whether a branch
// was taken; the return value is meaningless for non-branch operations.
func (c *CPU) execute(inst Instruction, addr uint16) bool {
	switch inst.Op {
	case ADC:
		c.adc(c.loadOperand(inst.Mode, addr))
	case AND:
		c.a &= c.loadOperand(inst.Mode, addr)
		c.setZN(c.a)
	case ASL:
		v := c.loadOperand(inst.Mode, addr)
		c.setFlag(FlagC, v&0x80 != 0)
		v <<= 1
		c.storeOperand(inst.Mode, addr, v)
		c.setZN(v)
	case BCC:
		return c.branch(!c.getFlag(FlagC), addr)
	case BCS:
		return c.branch(c.getFlag(FlagC), addr)
	case BEQ:
		return c.branch(c.getFlag(FlagZ), addr)
	case BIT:
		v := c.loadOperand(inst.Mode, addr)
		c.setFlag(FlagZ, c.a&v == 0)
		c.setFlag(FlagV, v&0x40 != 0)
		c.setFlag(FlagN, v&0x80 != 0)
	case BMI:
		return c.branch(c.getFlag(FlagN), addr)
	case BNE:
		return c.branch(!c.getFlag(FlagZ), addr)
	case BPL:
		return c.branch(!c.getFlag(FlagN), addr)
	case BRK:
		c.pc++ // BRK is a 2-byte instruction; the second byte is a padding/signature byte.
		c.serviceInterrupt(irqVector, true)
	case BVC:
		return c.branch(!c.getFlag(FlagV), addr)
	case BVS:
		return c.branch(c.getFlag(FlagV), addr)
	case CLC:
		c.setFlag(FlagC, false)
	case CLD:
		c.setFlag(FlagD, false)
	case CLI:
		c.setFlag(FlagI, false)
	case CLV:
		c.setFlag(FlagV, false)
	case CMP:
		c.compare(c.a, c.loadOperand(inst.Mode, addr))
	case CPX:
		c.compare(c.x, c.loadOperand(inst.Mode, addr))
	case CPY:
		c.compare(c.y, c.loadOperand(inst.Mode, addr))
	case DEC:
		v := c.loadOperand(inst.Mode, addr) - 1
		c.storeOperand(inst.Mode, addr, v)
		c.setZN(v)
	case DEX:
		c.x--
		c.setZN(c.x)
	case DEY:
		c.y--
		c.setZN(c.y)
	case EOR:
		c.a ^= c.loadOperand(inst.Mode, addr)
		c.setZN(c.a)
	case INC:
		v := c.loadOperand(inst.Mode, addr) + 1
		c.storeOperand(inst.Mode, addr, v)
		c.setZN(v)
	case INX:
		c.x++
		c.setZN(c.x)
	case INY:
		c.y++
		c.setZN(c.y)
	case JMP:
		c.pc = addr
	case JSR:
		c.push16(c.pc - 1)
		c.pc = addr
	case LDA:
		c.a = c.loadOperand(inst.Mode, addr)
		c.setZN(c.a)
	case LDX:
		c.x = c.loadOperand(inst.Mode, addr)
		c.setZN(c.x)
	case LDY:
		c.y = c.loadOperand(inst.Mode, addr)
		c.setZN(c.y)
	case LSR:
		v := c.loadOperand(inst.Mode, addr)
		c.setFlag(FlagC, v&0x01 != 0)
		v >>= 1
		c.storeOperand(inst.Mode, addr, v)
		c.setZN(v)
	case NOP:
		// No operation.
	case ORA:
		c.a |= c.loadOperand(inst.Mode, addr)
		c.setZN(c.a)
	case PHA:
		c.push8(c.a)
	case PHP:
		c.push8(c.status | FlagB | FlagU)
	case PLA:
		c.a = c.pop8()
		c.setZN(c.a)
	case PLP:
		c.status = (c.pop8() &^ FlagB) | FlagU
	case ROL:
		v := c.loadOperand(inst.Mode, addr)
		carryIn := uint8(0)
		if c.getFlag(FlagC) {
			carryIn = 1
		}
		c.setFlag(FlagC, v&0x80 != 0)
		v = bits.RotateLeft8(v, 1)
		v = (v &^ 0x01) | carryIn
		c.storeOperand(inst.Mode, addr, v)
		c.setZN(v)
	case ROR:
		v := c.loadOperand(inst.Mode, addr)
		carryIn := uint8(0)
		if c.getFlag(FlagC) {
			carryIn = 0x80
		}
		c.setFlag(FlagC, v&0x01 != 0)
		v = bits.RotateLeft8(v, 7)
		v = (v &^ 0x80) | carryIn
		c.storeOperand(inst.Mode, addr, v)
		c.setZN(v)
	case RTI:
		c.status = (c.pop8() &^ FlagB) | FlagU
		c.pc = c.pop16()
	case RTS:
		c.pc = c.pop16() + 1
	case SBC:
		c.sbc(c.loadOperand(inst.Mode, addr))
	case SEC:
		c.setFlag(FlagC, true)
	case SED:
		c.setFlag(FlagD, true)
	case SEI:
		c.setFlag(FlagI, true)
	case STA:
		c.bus.Write(addr, c.a)
	case STX:
		c.bus.Write(addr, c.x)
	case STY:
		c.bus.Write(addr, c.y)
	case TAX:
		c.x = c.a
		c.setZN(c.x)
	case TAY:
		c.y = c.a
		c.setZN(c.y)
	case TSX:
		c.x = c.sp
		c.setZN(c.x)
	case TXA:
		c.a = c.x
		c.setZN(c.a)
	case TXS:
		c.sp = c.x
	case TYA:
		c.a = c.y
		c.setZN(c.a)
	case ERR:
		// Illegal/undocumented opcode byte: treated as a one-byte NOP.
	}
	return false
}

// compare implements the shared CMP/CPX/CPY semantics: subtract without
// storing the result, set C/Z/N from the wrapped 8-bit difference.
func (c *CPU) compare(reg, value uint8) {
	diff := reg - value
	c.setFlag(FlagC, reg >= value)
	c.setZN(diff)
}

// branch applies a conditional branch's PC update and reports whether it
// was taken, which the cycle-cost calculation needs.
func (c *CPU) branch(taken bool, target uint16) bool {
	if taken {
		c.pc = target
	}
	return taken
}
