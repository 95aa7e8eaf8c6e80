//go:build !tinygo && !windows

package hal

import (
	"testing"
	"time"
)

func TestTerminalKeysCoverPad(t *testing.T) {
	var all uint16
	for c, bit := range terminalKeys {
		if bit == 0 || bit&(bit-1) != 0 {
			t.Fatalf("key %q maps to %#04x, want a single button", c, bit)
		}
		all |= bit
	}
	if all != 0xFFF0 {
		t.Fatalf("terminal keys cover %#04x, want 0xfff0", all)
	}
	if terminalKeys['i'] != padUp || terminalKeys['z'] != padB {
		t.Fatalf("i=%#04x z=%#04x, want up and B", terminalKeys['i'], terminalKeys['z'])
	}
}

func TestTerminalTapShiftsOut(t *testing.T) {
	now := func() time.Time { return time.Unix(0, 0) }
	pad, latch, clk, data := newTestBus(false, now)
	pad.Tap(terminalKeys['l'], time.Second)
	if got := shiftOut(t, latch, clk, data, false); got != 0x0100 {
		t.Fatalf("shifted %#04x after tapping right, want 0x0100", got)
	}
}
