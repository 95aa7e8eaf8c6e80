//go:build !tinygo && !cgo

package hal

type hostKeyboard struct{}

func newHostKeyboard(pad *SimPad) *hostKeyboard {
	_ = pad
	return &hostKeyboard{}
}

func (k *hostKeyboard) poll() {
	// No keyboard support without the window backend.
}
