package app

import (
	"image/color"

	"snes2db9/hal"

	"tinygo.org/x/drivers"
)

// fbDisplay is a drivers.Displayer over a horizontal band of an RGB565
// framebuffer. Coordinates are relative to the band.
type fbDisplay struct {
	fb hal.Framebuffer
	y0 int
	h  int
}

func newFBDisplay(fb hal.Framebuffer, y0, h int) *fbDisplay {
	if y0 < 0 {
		y0 = 0
	}
	if y0+h > fb.Height() {
		h = fb.Height() - y0
	}
	if h < 0 {
		h = 0
	}
	return &fbDisplay{fb: fb, y0: y0, h: h}
}

func (d *fbDisplay) Size() (x, y int16) {
	return int16(d.fb.Width()), int16(d.h)
}

func (d *fbDisplay) SetPixel(x, y int16, c color.RGBA) {
	_ = d.FillRectangle(x, y, 1, 1, c)
}

func (d *fbDisplay) Display() error {
	return d.fb.Present()
}

func (d *fbDisplay) FillRectangle(x, y, width, height int16, c color.RGBA) error {
	if d.fb.Format() != hal.PixelFormatRGB565 {
		return nil
	}
	buf := d.fb.Buffer()
	if buf == nil {
		return nil
	}

	x0 := clampInt(int(x), 0, d.fb.Width())
	x1 := clampInt(int(x)+int(width), 0, d.fb.Width())
	y0 := clampInt(int(y), 0, d.h) + d.y0
	y1 := clampInt(int(y)+int(height), 0, d.h) + d.y0
	if x0 >= x1 || y0 >= y1 {
		return nil
	}

	pixel := rgb565(c)
	lo, hi := byte(pixel), byte(pixel>>8)
	stride := d.fb.StrideBytes()
	for py := y0; py < y1; py++ {
		row := py * stride
		for px := x0; px < x1; px++ {
			off := row + px*2
			if off+1 >= len(buf) {
				return nil
			}
			buf[off] = lo
			buf[off+1] = hi
		}
	}
	return nil
}

// ScrollUp moves the band up by lines rows and clears the bottom.
func (d *fbDisplay) ScrollUp(lines int16, bg color.RGBA) error {
	n := int(lines)
	if n <= 0 {
		return nil
	}
	if n >= d.h {
		return d.FillRectangle(0, 0, int16(d.fb.Width()), int16(d.h), bg)
	}
	buf := d.fb.Buffer()
	stride := d.fb.StrideBytes()
	start := d.y0 * stride
	end := (d.y0 + d.h) * stride
	if buf == nil || end > len(buf) {
		return nil
	}
	copy(buf[start:end-n*stride], buf[start+n*stride:end])
	return d.FillRectangle(0, int16(d.h-n), int16(d.fb.Width()), int16(n), bg)
}

func (d *fbDisplay) SetScroll(line int16) {}

func (d *fbDisplay) SetRotation(rotation drivers.Rotation) error {
	return nil
}

func rgb565(c color.RGBA) uint16 {
	return uint16((uint16(c.R>>3)&0x1F)<<11 | (uint16(c.G>>2)&0x3F)<<5 | (uint16(c.B>>3) & 0x1F))
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
