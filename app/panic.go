package app

import (
	"context"
	"fmt"
	"image/color"
	"runtime/debug"
	"strings"
	"unicode/utf8"

	"snes2db9/hal"

	"tinygo.org/x/tinyfont"
)

// Run builds the converter on h and runs it forever. It is the firmware
// entry point. A configuration error or a panic ends on the fatal screen.
func Run(h hal.HAL, cfg Config) {
	defer func() {
		if r := recover(); r != nil {
			fatal(h, fmt.Errorf("panic: %v", r), debug.Stack())
		}
	}()

	s, err := NewWithConfig(h, cfg)
	if err != nil {
		fatal(h, err, nil)
	}
	if s.screen == nil {
		_ = s.sched.Run(context.Background())
	}
	for {
		s.Step()
	}
}

// fatal reports err on the logger and the display, then halts.
func fatal(h hal.HAL, err error, stack []byte) {
	lines := []string{"snes2db9 halted:", err.Error()}
	for _, line := range strings.Split(string(stack), "\n") {
		if line != "" {
			lines = append(lines, line)
		}
	}

	if l := h.Logger(); l != nil {
		for _, line := range lines {
			l.WriteLineString(line)
		}
	}
	if led := h.LED(); led != nil {
		led.High()
	}
	drawFatal(h.Display(), lines)
	select {}
}

func drawFatal(disp hal.Display, lines []string) {
	if disp == nil {
		return
	}
	fb := disp.Framebuffer()
	if fb == nil {
		return
	}
	fb.ClearRGB(255, 255, 255)

	_, outboxWidth := tinyfont.LineWidth(font, "0")
	fontWidth := int16(outboxWidth)
	if fontWidth <= 0 {
		_ = fb.Present()
		return
	}

	d := newFBDisplay(fb, 0, fb.Height())
	fg := color.RGBA{R: 0, G: 0, B: 0, A: 255}
	cols := int16(fb.Width()) / fontWidth
	if cols <= 0 {
		cols = 1
	}

	y := int16(0)
	for _, line := range lines {
		for len(line) > 0 {
			if y+fontHeight > int16(fb.Height()) {
				_ = fb.Present()
				return
			}
			chunk, rest := takeRunes(line, cols)
			drawTextLine(d, fontWidth, 0, y, chunk, fg)
			y += fontHeight
			line = strings.TrimLeft(rest, " ")
		}
	}
	_ = fb.Present()
}

// drawTextLine draws s on a fixed character grid.
func drawTextLine(d *fbDisplay, fontWidth, x0, y0 int16, s string, fg color.RGBA) {
	x := x0
	for _, r := range s {
		tinyfont.DrawChar(d, font, x, y0+fontOffset, r, fg)
		x += fontWidth
	}
}

func takeRunes(s string, n int16) (prefix, rest string) {
	if n <= 0 || s == "" {
		return "", s
	}
	if int64(len(s)) <= int64(n) {
		return s, ""
	}
	var i int
	var count int16
	for i < len(s) && count < n {
		_, size := utf8.DecodeRuneInString(s[i:])
		if size <= 0 {
			break
		}
		i += size
		count++
	}
	if i >= len(s) {
		return s, ""
	}
	return s[:i], s[i:]
}
