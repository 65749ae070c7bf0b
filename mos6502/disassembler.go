package mos6502

import (
	"fmt"
	"io"
)

// DisassembledLine is one decoded instruction: its address, the raw bytes
// it occupies, and its rendered mnemonic/operand text.
type DisassembledLine struct {
	Addr uint16
	Raw  []byte
	Text string
}

// Disassemble walks count instructions starting at start, reading opcode
// and operand bytes straight from bus (no CPU state is touched or
// required). An ERR opcode renders as a single-byte "<invalid opcode
// $nn>" line rather than stopping the walk, so disassembling a region that
// mixes code and data doesn't abort partway through.
func Disassemble(bus Bus, start uint16, count int) []DisassembledLine {
	lines := make([]DisassembledLine, 0, count)
	addr := start
	for i := 0; i < count; i++ {
		lineAddr := addr
		opcode := bus.Read(addr)
		addr++
		inst := Decode(opcode)
		raw := []byte{opcode}

		var text string
		if inst.Op == ERR {
			text = fmt.Sprintf("<invalid opcode $%02X>", opcode)
		} else {
			operandLen := inst.Mode.operandLength()
			operand := make([]byte, operandLen)
			for j := uint8(0); j < operandLen; j++ {
				operand[j] = bus.Read(addr)
				addr++
			}
			raw = append(raw, operand...)
			text = inst.Op.String()
			if operandText := formatOperand(inst.Mode, lineAddr, operand); operandText != "" {
				text += " " + operandText
			}
		}

		lines = append(lines, DisassembledLine{Addr: lineAddr, Raw: raw, Text: text})
	}
	return lines
}

// formatOperand renders an instruction's operand the conventional
// assembler way for its addressing mode: "#$nn" for immediate, "$nn,X" for
// indexed, "($nn),Y" for indirect-indexed, and so on. mode's IMPLIED and
// ACCUMULATOR cases have no operand bytes and render as empty or "A".
func formatOperand(mode Mode, instAddr uint16, operand []byte) string {
	switch mode {
	case IMPLIED:
		return ""
	case ACCUMULATOR:
		return "A"
	case IMMEDIATE:
		return fmt.Sprintf("#$%02X", operand[0])
	case ZEROPAGE:
		return fmt.Sprintf("$%02X", operand[0])
	case ZEROPAGE_X:
		return fmt.Sprintf("$%02X,X", operand[0])
	case ZEROPAGE_Y:
		return fmt.Sprintf("$%02X,Y", operand[0])
	case RELATIVE:
		target := uint16(int32(instAddr) + 2 + int32(int8(operand[0])))
		return fmt.Sprintf("$%04X", target)
	case ABSOLUTE:
		return fmt.Sprintf("$%04X", le16(operand))
	case ABSOLUTE_X:
		return fmt.Sprintf("$%04X,X", le16(operand))
	case ABSOLUTE_Y:
		return fmt.Sprintf("$%04X,Y", le16(operand))
	case INDIRECT:
		return fmt.Sprintf("($%04X)", le16(operand))
	case INDIRECT_X:
		return fmt.Sprintf("($%02X,X)", operand[0])
	case INDIRECT_Y:
		return fmt.Sprintf("($%02X),Y", operand[0])
	}
	return ""
}

func le16(b []byte) uint16 {
	return uint16(b[0]) | uint16(b[1])<<8
}

// Fprint writes each disassembled line to w as "$addr: RAWBYTES  TEXT",
// padding the raw-byte column to a fixed width so mnemonics line up.
func Fprint(w io.Writer, lines []DisassembledLine) error {
	for _, l := range lines {
		rawCol := ""
		for _, b := range l.Raw {
			rawCol += fmt.Sprintf("%02X ", b)
		}
		if _, err := fmt.Fprintf(w, "$%04X: %-9s%s\n", l.Addr, rawCol, l.Text); err != nil {
			return err
		}
	}
	return nil
}
