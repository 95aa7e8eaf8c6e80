//go:build !tinygo && cgo

package hal

import (
	"image"

	"snes2db9/internal/buildinfo"

	"github.com/hajimehoshi/ebiten/v2"
)

// RunWindow starts a desktop window that displays the framebuffer and maps
// the keyboard onto the simulated pad. step is one pass of the firmware main
// loop; it runs after every elapsed timer period. It blocks until the window
// closes.
func RunWindow(h *Host, step func() error) error {
	if h.fb == nil {
		h.fb = newHostFramebuffer(320, 320)
	}
	if !h.timer.started() {
		return ErrTimerNotStarted
	}

	g := &hostGame{h: h, step: step}
	ebiten.SetWindowTitle("snes2db9 (" + buildinfo.Short() + ")")
	ebiten.SetWindowSize(h.fb.width*2, h.fb.height*2)
	ebiten.SetTPS(60)
	return ebiten.RunGame(g)
}

type hostGame struct {
	h       *Host
	img     *image.RGBA
	fbImg   *ebiten.Image
	scratch []byte
	step    func() error
}

func (g *hostGame) Update() error {
	g.h.kbd.poll()

	// A dragged or minimised window can stall Update; drop what is too old
	// the way a stalled interrupt would.
	n := g.h.timer.due(timeNow())
	const maxCatchUp = 5000
	if n > maxCatchUp {
		n = maxCatchUp
	}
	return g.h.timer.run(n, g.step)
}

func (g *hostGame) Draw(screen *ebiten.Image) {
	fb := g.h.fb
	if g.img == nil || g.img.Bounds().Dx() != fb.width || g.img.Bounds().Dy() != fb.height {
		g.img = image.NewRGBA(image.Rect(0, 0, fb.width, fb.height))
		g.scratch = make([]byte, len(fb.buf))
		if g.fbImg != nil {
			g.fbImg.Deallocate()
		}
		g.fbImg = ebiten.NewImage(fb.width, fb.height)
	}

	fb.snapshotRGB565(g.scratch)

	src := g.scratch
	dst := g.img.Pix
	for i := 0; i+1 < len(src) && i/2*4+3 < len(dst); i += 2 {
		r, gg, b := rgb888From565(uint16(src[i]) | uint16(src[i+1])<<8)
		j := (i / 2) * 4
		dst[j+0] = r
		dst[j+1] = gg
		dst[j+2] = b
		dst[j+3] = 0xFF
	}

	g.fbImg.WritePixels(g.img.Pix)
	screen.DrawImage(g.fbImg, nil)
}

func (g *hostGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.h.fb.width, g.h.fb.height
}
