package mos6502

import "testing"

func TestOperandAddressModes(t *testing.T) {
	c, m := newTestCPU(0x8000)
	c.x = 0x01
	c.y = 0x02

	m.data[0x0010] = 0x55              // zero page value byte
	m.data[0x0200] = 0x10              // ABSOLUTE operand low/hi below
	m.data[0x0201] = 0x02
	m.data[0x0050] = 0x00 // INDIRECT_X pointer low (zp 0x50 = 0x4F+x)
	m.data[0x0051] = 0x03 // INDIRECT_X pointer high -> 0x0300
	m.data[0x0060] = 0x00 // INDIRECT_Y pointer low (zp 0x60)
	m.data[0x0061] = 0x04 // INDIRECT_Y pointer high -> 0x0400, +Y=2 -> 0x0402

	cases := []struct {
		name string
		mode Mode
		pc   uint16
		want uint16
	}{
		{"zeropage", ZEROPAGE, 0x9000, 0x0010},
		{"zeropage,x wraps", ZEROPAGE_X, 0x9001, 0x0000}, // operand 0xFF + X(1) wraps to 0x00
		{"absolute", ABSOLUTE, 0x0200, 0x0210},
		{"indirect,x", INDIRECT_X, 0x9010, 0x0300},
		{"indirect,y", INDIRECT_Y, 0x9011, 0x0402},
	}
	m.data[0x9000] = 0x10
	m.data[0x9001] = 0xFF
	m.data[0x9010] = 0x4F // zp 0x4F + X(1) = 0x50
	m.data[0x9011] = 0x60 // zp 0x60

	for _, tc := range cases {
		got, _ := c.operandAddress(tc.mode, tc.pc)
		if got != tc.want {
			t.Errorf("%s: operandAddress = %#04x, want %#04x", tc.name, got, tc.want)
		}
	}
}

func TestIndirectJMPPageWrapBug(t *testing.T) {
	c, m := newTestCPU(0x8000)
	// Pointer at $02FF: low byte from $02FF, high byte incorrectly
	// re-read from $0200 (start of the same page) instead of $0300.
	m.data[0x02FF] = 0x34
	m.data[0x0200] = 0x12
	m.data[0x0300] = 0x99 // must NOT be used

	got := c.readIndirectWithPageWrapBug(0x02FF)
	want := uint16(0x1234)
	if got != want {
		t.Errorf("readIndirectWithPageWrapBug(0x02FF) = %#04x, want %#04x", got, want)
	}
}

func TestAbsoluteXPageCrossDetected(t *testing.T) {
	c, m := newTestCPU(0x8000)
	c.x = 0xFF
	m.data[0x9000] = 0x01
	m.data[0x9001] = 0x02 // base = 0x0201, +0xFF = 0x0300, crosses page

	_, crossed := c.operandAddress(ABSOLUTE_X, 0x9000)
	if !crossed {
		t.Errorf("expected page crossing for 0x0201 + 0xFF")
	}
}

func TestRelativeBranchTarget(t *testing.T) {
	c, _ := newTestCPU(0x8000)
	m := &testMem{}
	m.data[0x8010] = 0x05 // +5
	c.bus = m

	addr, _ := c.operandAddress(RELATIVE, 0x8010)
	if addr != 0x8016 {
		t.Errorf("forward branch target = %#04x, want 0x8016", addr)
	}

	m.data[0x8020] = 0xFB // -5
	addr, _ = c.operandAddress(RELATIVE, 0x8020)
	if addr != 0x801C {
		t.Errorf("backward branch target = %#04x, want 0x801C", addr)
	}
}
