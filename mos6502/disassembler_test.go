package mos6502

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDisassembleBasicProgram(t *testing.T) {
	m := &testMem{}
	m.data[0x8000] = 0xA9 // LDA #$10
	m.data[0x8001] = 0x10
	m.data[0x8002] = 0x8D // STA $0200
	m.data[0x8003] = 0x00
	m.data[0x8004] = 0x02
	m.data[0x8005] = 0xEA // NOP

	lines := Disassemble(m, 0x8000, 3)
	require.Len(t, lines, 3)
	assert.Equal(t, "LDA #$10", lines[0].Text)
	assert.Equal(t, "STA $0200", lines[1].Text)
	assert.Equal(t, uint16(0x8002), lines[1].Addr)
	assert.Equal(t, "NOP", lines[2].Text)
}

func TestDisassembleIllegalOpcode(t *testing.T) {
	m := &testMem{}
	m.data[0x8000] = 0x02 // no legal instruction

	lines := Disassemble(m, 0x8000, 1)
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0].Text, "invalid opcode")
}

func TestDisassembleIndexedAndIndirectModes(t *testing.T) {
	m := &testMem{}
	m.data[0x8000] = 0xB5 // LDA $10,X
	m.data[0x8001] = 0x10
	m.data[0x8002] = 0xA1 // LDA ($20,X)
	m.data[0x8003] = 0x20
	m.data[0x8004] = 0xB1 // LDA ($30),Y
	m.data[0x8005] = 0x30

	lines := Disassemble(m, 0x8000, 3)
	require.Len(t, lines, 3)
	want := []string{"LDA $10,X", "LDA ($20,X)", "LDA ($30),Y"}
	for i, w := range want {
		assert.Equal(t, w, lines[i].Text, "line %d", i)
	}
}

func TestFprintPadsColumns(t *testing.T) {
	lines := []DisassembledLine{
		{Addr: 0x8000, Raw: []byte{0xEA}, Text: "NOP"},
	}
	var sb strings.Builder
	require.NoError(t, Fprint(&sb, lines))
	assert.Contains(t, sb.String(), "$8000:")
	assert.Contains(t, sb.String(), "NOP")
	// "EA " is padded to the 9-character raw-byte column.
	assert.Equal(t, "$8000: EA"+strings.Repeat(" ", 7)+"NOP\n", sb.String())
}
