//go:build !tinygo

package hal

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// HostConfig selects the simulated hardware.
type HostConfig struct {
	// Headless drops the display.
	Headless bool
	// PadActiveHigh builds the simulated pad with inverted DATA polarity.
	PadActiveHigh bool
	// Log receives log lines; nil means stdout.
	Log io.Writer
}

// Host is the simulator HAL: virtual GPIO with a SNES pad wired to the
// controller lines, a virtual timer and an optional framebuffer.
type Host struct {
	logger *hostLogger
	led    *hostLED
	gpio   GPIO
	timer  *hostTimer
	fb     *hostFramebuffer
	kbd    *hostKeyboard
	pad    *SimPad
	db9    []*virtualPin
}

// NewHost returns a host HAL implementation.
func NewHost(cfg HostConfig) *Host {
	w := cfg.Log
	if w == nil {
		w = os.Stdout
	}
	logger := &hostLogger{w: w}
	led := &hostLED{}
	pad := NewSimPad(cfg.PadActiveHigh)

	caps := GPIOCapInput | GPIOCapOutput | GPIOCapPullUp | GPIOCapPullDown
	latch := newVirtualPin("SNES_LATCH", caps)
	clock := newVirtualPin("SNES_CLK", caps)
	pins := []GPIOPin{
		newLEDPin("LED", led),
		latch,
		clock,
		pad.attach(latch, clock, "SNES_DATA"),
	}

	var db9 []*virtualPin
	for _, name := range []string{"DB9_UP", "DB9_DOWN", "DB9_LEFT", "DB9_RIGHT", "DB9_FIRE"} {
		p := newVirtualPin(name, caps)
		db9 = append(db9, p)
		pins = append(pins, p)
	}

	h := &Host{
		logger: logger,
		led:    led,
		gpio:   newVirtualGPIO(pins),
		timer:  &hostTimer{},
		kbd:    newHostKeyboard(pad),
		pad:    pad,
		db9:    db9,
	}
	if !cfg.Headless {
		h.fb = newHostFramebuffer(320, 320)
	}
	return h
}

func (h *Host) Logger() Logger { return h.logger }
func (h *Host) LED() LED       { return h.led }
func (h *Host) GPIO() GPIO     { return h.gpio }
func (h *Host) Timer() Timer   { return h.timer }

func (h *Host) Display() Display {
	if h.fb == nil {
		return nil
	}
	return hostDisplay{fb: h.fb}
}

// Pad returns the simulated controller.
func (h *Host) Pad() *SimPad { return h.pad }

// LEDOn reports the status LED.
func (h *Host) LEDOn() bool { return h.led.isOn() }

// Joystick returns the joystick lines as seen from the DB9 connector:
// true means the switch is closed (line pulled low).
func (h *Host) Joystick() (up, down, left, right, fire bool) {
	closed := func(p *virtualPin) bool {
		level, driven := p.Output()
		return driven && !level
	}
	return closed(h.db9[0]), closed(h.db9[1]), closed(h.db9[2]), closed(h.db9[3]), closed(h.db9[4])
}

type hostDisplay struct {
	fb *hostFramebuffer
}

func (d hostDisplay) Framebuffer() Framebuffer { return d.fb }

type hostLogger struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *hostLogger) WriteLineString(s string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.w, s)
}

func (l *hostLogger) WriteLineBytes(b []byte) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.w.Write(b)
	l.w.Write([]byte{'\n'})
}

type hostLED struct {
	mu sync.Mutex
	on bool
}

func (l *hostLED) High() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.on = true
}

func (l *hostLED) Low() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.on = false
}

func (l *hostLED) isOn() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.on
}
