package app

import (
	"fmt"
	"image/color"
	"strings"

	"snes2db9/db9"
	"snes2db9/hal"
	"snes2db9/internal/buildinfo"
	"snes2db9/pins"

	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"
	"tinygo.org/x/tinyterm"
)

var (
	colorFG      = color.RGBA{R: 0xee, G: 0xee, B: 0xee, A: 0xff}
	colorDim     = color.RGBA{R: 0x88, G: 0x88, B: 0x88, A: 0xff}
	colorPanelBG = color.RGBA{R: 0x18, G: 0x18, B: 0x18, A: 0xff}
	colorOn      = color.RGBA{R: 0x4a, G: 0xdf, B: 0x6a, A: 0xff}
	colorOff     = color.RGBA{R: 0x30, G: 0x30, B: 0x30, A: 0xff}
	colorWarn    = color.RGBA{R: 0xff, G: 0xdd, B: 0x66, A: 0xff}
)

const (
	fontHeight = 10
	fontOffset = 6

	panelHeight    = 120
	consoleLines   = 64
	renderEveryNth = 4
)

var font = &proggy.TinySZ8pt7b

type locker interface {
	Lock()
	Unlock()
}

// screen draws the status panel and the log console. It only ever runs on
// the main loop, outside task dispatch.
type screen struct {
	fb      hal.Framebuffer
	panel   *fbDisplay
	console *fbDisplay
	term    *tinyterm.Terminal

	pending []string
}

func newScreen(d hal.Display) *screen {
	if d == nil {
		return nil
	}
	fb := d.Framebuffer()
	if fb == nil || fb.Format() != hal.PixelFormatRGB565 || fb.Height() <= panelHeight {
		return nil
	}
	s := &screen{
		fb:      fb,
		panel:   newFBDisplay(fb, 0, panelHeight),
		console: newFBDisplay(fb, panelHeight, fb.Height()-panelHeight),
	}
	fb.ClearRGB(0, 0, 0)
	s.term = tinyterm.NewTerminal(s.console)
	s.term.Configure(&tinyterm.Config{
		Font:              font,
		FontHeight:        fontHeight,
		FontOffset:        fontOffset,
		UseSoftwareScroll: true,
	})
	return s
}

// logLine queues a console line for the next render.
func (s *screen) logLine(line string) {
	if len(s.pending) >= consoleLines {
		s.pending = s.pending[1:]
	}
	s.pending = append(s.pending, line)
}

func (s *screen) render(st Status) {
	if l, ok := s.fb.(locker); ok {
		l.Lock()
		defer l.Unlock()
	}

	s.drawPanel(st)
	for _, line := range s.pending {
		fmt.Fprintf(s.term, "\n%s", line)
	}
	s.pending = s.pending[:0]
	_ = s.fb.Present()
}

func (s *screen) drawPanel(st Status) {
	w, _ := s.panel.Size()
	_ = s.panel.FillRectangle(0, 0, w, panelHeight, colorPanelBG)

	y := int16(fontHeight)
	line := func(c color.RGBA, format string, args ...any) {
		tinyfont.WriteLine(s.panel, font, 4, y, fmt.Sprintf(format, args...), c)
		y += fontHeight + 2
	}

	line(colorFG, "snes2db9 %s", buildinfo.Short())
	line(colorFG, "pad: %s", st.Buttons)
	line(colorFG, "joy: %s", st.Outputs)
	if st.Suppressed {
		line(colorWarn, "startup: outputs held off")
	} else {
		af := "off"
		if st.Autofire {
			af = "on"
		}
		line(colorDim, "autofire phase: %s", af)
	}
	line(colorDim, "ticks %d  missed %d  reads %d", st.Sched.Ticks, st.Sched.FineMissed+st.Sched.CoarseMissed, st.ReadCycles)
	line(colorDim, "%s", pinLine(st.Pins))
	if st.Err != "" {
		line(colorWarn, "%s", st.Err)
	}

	s.drawJoystick(st.Outputs, w-60, 20)
}

// drawJoystick draws a cross of switch indicators with fire in the middle.
func (s *screen) drawJoystick(o db9.Outputs, x, y int16) {
	const sz = 14
	boxes := []struct {
		bit  db9.Outputs
		x, y int16
	}{
		{db9.Up, x + sz + 2, y},
		{db9.Left, x, y + sz + 2},
		{db9.Fire, x + sz + 2, y + sz + 2},
		{db9.Right, x + 2*(sz+2), y + sz + 2},
		{db9.Down, x + sz + 2, y + 2*(sz+2)},
	}
	for _, b := range boxes {
		c := colorOff
		if o&b.bit != 0 {
			c = colorOn
		}
		_ = s.panel.FillRectangle(b.x, b.y, sz, sz, c)
	}
}

func pinLine(levels pins.Levels) string {
	var sb strings.Builder
	for i, l := range levels {
		if i > 0 {
			sb.WriteByte(' ')
		}
		name := pins.Pin(i).String()
		if k := strings.IndexByte(name, '_'); k >= 0 {
			name = name[k+1:]
		}
		sb.WriteString(name[:1])
		sb.WriteString(l.String())
	}
	return sb.String()
}
