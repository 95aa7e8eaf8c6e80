package hal

import (
	"errors"
	"time"
)

// Logger writes newline-delimited log lines.
type Logger interface {
	WriteLineString(s string)
	WriteLineBytes(b []byte)
}

// LED is a minimal output pin abstraction.
type LED interface {
	High()
	Low()
}

var ErrNotImplemented = errors.New("not implemented")

// PixelFormat defines the framebuffer pixel encoding.
type PixelFormat uint8

const (
	// PixelFormatRGB565 is 16bpp: rrrrrggggggbbbbb.
	PixelFormatRGB565 PixelFormat = iota + 1
)

// Framebuffer is a simple pixel buffer plus a "present" hook.
type Framebuffer interface {
	Width() int
	Height() int
	Format() PixelFormat
	StrideBytes() int
	Buffer() []byte
	ClearRGB(r, g, b uint8)
	Present() error
}

// Display provides access to the framebuffer (if available).
type Display interface {
	Framebuffer() Framebuffer
}

// Timer is the periodic interrupt source that paces the firmware.
//
// isr runs in interrupt context on hardware: it must be short and may only
// touch state designed for it (atomics).
type Timer interface {
	Start(period time.Duration, isr func()) error
}

// HAL provides the only contact point between the firmware and the outside world.
//
// Display returns nil on boards without a screen.
type HAL interface {
	Logger() Logger
	LED() LED
	GPIO() GPIO
	Timer() Timer
	Display() Display
}
