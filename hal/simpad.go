//go:build !tinygo

package hal

import (
	"sync"
	"time"
)

// Pad button bits in shift order, see SimPad.
const (
	padB      uint16 = 0x8000
	padY      uint16 = 0x4000
	padSelect uint16 = 0x2000
	padStart  uint16 = 0x1000
	padUp     uint16 = 0x0800
	padDown   uint16 = 0x0400
	padLeft   uint16 = 0x0200
	padRight  uint16 = 0x0100
	padA      uint16 = 0x0080
	padX      uint16 = 0x0040
	padL      uint16 = 0x0020
	padR      uint16 = 0x0010
)

// SimPad simulates a SNES controller hanging off the LATCH, CLK and DATA
// lines: two parallel-in/serial-out shift registers.
//
// Button words use the controller's shift order: bit 15 is the first bit
// shifted out (B), bit 4 the twelfth (R). A set bit means pressed.
//
// LATCH high loads the buttons and presents bit 15 on DATA. Each rising CLK
// edge with LATCH low shifts the next bit out. A pressed button pulls DATA
// low unless the pad is built active-high.
type SimPad struct {
	mu sync.Mutex

	held  uint16
	keys  uint16
	taps  [16]time.Time
	now   func() time.Time
	shift uint16

	latch      bool
	clock      bool
	activeHigh bool

	latches uint64
}

// NewSimPad returns an idle pad. activeHigh selects the inverted hardware
// revision where a pressed button reads HIGH.
func NewSimPad(activeHigh bool) *SimPad {
	return newSimPadWithClock(activeHigh, time.Now)
}

func newSimPadWithClock(activeHigh bool, now func() time.Time) *SimPad {
	if now == nil {
		now = time.Now
	}
	return &SimPad{now: now, activeHigh: activeHigh, clock: true}
}

// SetButtons replaces the set of held buttons.
func (p *SimPad) SetButtons(b uint16) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.held = b
}

func (p *SimPad) setKeys(b uint16) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.keys = b
}

// Tap presses b for d, on top of the held buttons.
func (p *SimPad) Tap(b uint16, d time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()
	until := p.now().Add(d)
	for i := 0; i < 16; i++ {
		if b&(1<<i) != 0 {
			p.taps[i] = until
		}
	}
}

// Buttons returns the buttons currently pressed.
func (p *SimPad) Buttons() uint16 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current()
}

// Latches returns how many latch pulses the pad has seen.
func (p *SimPad) Latches() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.latches
}

func (p *SimPad) current() uint16 {
	b := p.held | p.keys
	now := p.now()
	for i := 0; i < 16; i++ {
		if !p.taps[i].IsZero() && now.Before(p.taps[i]) {
			b |= 1 << i
		}
	}
	return b
}

func (p *SimPad) setLatch(level bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if level && !p.latch {
		p.latches++
	}
	p.latch = level
	if level {
		p.shift = p.current()
	}
}

func (p *SimPad) setClock(level bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if level && !p.clock && !p.latch {
		p.shift <<= 1
	}
	p.clock = level
}

func (p *SimPad) data() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.latch {
		p.shift = p.current()
	}
	pressed := p.shift&padB != 0
	return pressed == p.activeHigh
}

// attach wires the pad to the bus pins and returns the DATA pin.
func (p *SimPad) attach(latch, clock *virtualPin, dataName string) GPIOPin {
	latch.onWrite = p.setLatch
	clock.onWrite = p.setClock
	return &inputPin{name: dataName, read: p.data}
}
