//go:build !tinygo && cgo

package hal

import "github.com/hajimehoshi/ebiten/v2"

var padKeys = []struct {
	key ebiten.Key
	bit uint16
}{
	{ebiten.KeyArrowUp, padUp},
	{ebiten.KeyArrowDown, padDown},
	{ebiten.KeyArrowLeft, padLeft},
	{ebiten.KeyArrowRight, padRight},
	{ebiten.KeyZ, padB},
	{ebiten.KeyX, padA},
	{ebiten.KeyA, padY},
	{ebiten.KeyS, padX},
	{ebiten.KeyQ, padL},
	{ebiten.KeyW, padR},
	{ebiten.KeyEnter, padStart},
	{ebiten.KeyShiftRight, padSelect},
}

// hostKeyboard maps held keys onto the simulated pad.
type hostKeyboard struct {
	pad *SimPad
}

func newHostKeyboard(pad *SimPad) *hostKeyboard {
	return &hostKeyboard{pad: pad}
}

func (k *hostKeyboard) poll() {
	var b uint16
	for _, pk := range padKeys {
		if ebiten.IsKeyPressed(pk.key) {
			b |= pk.bit
		}
	}
	k.pad.setKeys(b)
}
