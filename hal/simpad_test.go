//go:build !tinygo

package hal

import (
	"testing"
	"time"
)

func newTestBus(activeHigh bool, clock func() time.Time) (*SimPad, *virtualPin, *virtualPin, GPIOPin) {
	pad := newSimPadWithClock(activeHigh, clock)
	caps := GPIOCapInput | GPIOCapOutput
	latch := newVirtualPin("SNES_LATCH", caps)
	clk := newVirtualPin("SNES_CLK", caps)
	data := pad.attach(latch, clk, "SNES_DATA")
	_ = latch.Configure(GPIOModeOutput, GPIOPullNone)
	_ = clk.Configure(GPIOModeOutput, GPIOPullNone)
	_ = clk.Write(true)
	_ = latch.Write(false)
	return pad, latch, clk, data
}

// shiftOut clocks 16 bits out of the pad the way a console does.
func shiftOut(t *testing.T, latch, clk *virtualPin, data GPIOPin, activeHigh bool) uint16 {
	t.Helper()
	_ = latch.Write(true)
	_ = latch.Write(false)

	var word uint16
	for i := 0; i < 16; i++ {
		if i > 0 {
			_ = clk.Write(false)
			_ = clk.Write(true)
		}
		level, err := data.Read()
		if err != nil {
			t.Fatalf("Read: %v", err)
		}
		word <<= 1
		if level == activeHigh {
			word |= 1
		}
	}
	return word
}

func TestSimPadShiftsMSBFirst(t *testing.T) {
	for _, activeHigh := range []bool{false, true} {
		pad, latch, clk, data := newTestBus(activeHigh, time.Now)
		for _, want := range []uint16{0x0000, 0x8000, 0x0810, 0xFFF0, 0xA5A0} {
			pad.SetButtons(want)
			if got := shiftOut(t, latch, clk, data, activeHigh); got != want {
				t.Fatalf("activeHigh=%v: shifted %#04x, want %#04x", activeHigh, got, want)
			}
		}
		if got := pad.Latches(); got != 5 {
			t.Fatalf("Latches() = %d, want 5", got)
		}
	}
}

func TestSimPadIdleDataLevel(t *testing.T) {
	_, _, _, data := newTestBus(false, time.Now)
	level, _ := data.Read()
	if !level {
		t.Fatal("released pad should read high")
	}
}

func TestSimPadTapExpires(t *testing.T) {
	now := time.Unix(0, 0)
	pad := newSimPadWithClock(false, func() time.Time { return now })

	pad.SetButtons(0x0080)
	pad.Tap(0x8000, 100*time.Millisecond)
	if got := pad.Buttons(); got != 0x8080 {
		t.Fatalf("Buttons() = %#04x, want 0x8080", got)
	}

	now = now.Add(150 * time.Millisecond)
	if got := pad.Buttons(); got != 0x0080 {
		t.Fatalf("Buttons() after tap = %#04x, want 0x0080", got)
	}
}

func TestSimPadKeysAndHeldCombine(t *testing.T) {
	pad := NewSimPad(false)
	pad.SetButtons(0x0100)
	pad.setKeys(0x4000)
	if got := pad.Buttons(); got != 0x4100 {
		t.Fatalf("Buttons() = %#04x, want 0x4100", got)
	}
	pad.setKeys(0)
	if got := pad.Buttons(); got != 0x0100 {
		t.Fatalf("Buttons() = %#04x, want 0x0100", got)
	}
}
