//go:build !tinygo && !windows

package hal

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/pkg/term"
)

// terminalKeys maps single keystrokes to pad buttons. A terminal reports no
// key releases, so every keystroke taps the button for a fixed hold time.
var terminalKeys = map[byte]uint16{
	'i':  padUp,
	'k':  padDown,
	'j':  padLeft,
	'l':  padRight,
	'z':  padB,
	'x':  padA,
	'a':  padY,
	's':  padX,
	'q':  padL,
	'w':  padR,
	'\r': padStart,
	'\n': padStart,
	' ':  padSelect,
}

// TerminalInput feeds keystrokes from the controlling terminal to a SimPad.
type TerminalInput struct {
	t    *term.Term
	pad  *SimPad
	hold time.Duration
}

// OpenTerminalInput puts /dev/tty into cbreak mode. Call Run to start
// reading and Close to restore the terminal.
func OpenTerminalInput(pad *SimPad, hold time.Duration) (*TerminalInput, error) {
	if pad == nil {
		return nil, errors.New("terminal: nil pad")
	}
	if hold <= 0 {
		hold = 150 * time.Millisecond
	}
	t, err := term.Open("/dev/tty", term.CBreakMode)
	if err != nil {
		return nil, fmt.Errorf("terminal: open: %w", err)
	}
	if err := t.SetReadTimeout(100 * time.Millisecond); err != nil {
		_ = t.Restore()
		_ = t.Close()
		return nil, fmt.Errorf("terminal: read timeout: %w", err)
	}
	return &TerminalInput{t: t, pad: pad, hold: hold}, nil
}

// Run reads keystrokes until ctx is done. 'Q' (shift-q) returns
// context.Canceled so callers can treat it like ^C.
func (in *TerminalInput) Run(ctx context.Context) error {
	buf := make([]byte, 16)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		n, err := in.t.Read(buf)
		if err != nil && n == 0 {
			// Read timeouts surface as (0, nil) or (0, EOF) depending on the
			// platform; both just mean "no key yet".
			continue
		}
		for _, c := range buf[:n] {
			if c == 'Q' {
				return context.Canceled
			}
			if bit, ok := terminalKeys[c]; ok {
				in.pad.Tap(bit, in.hold)
			}
		}
	}
}

// Close restores the terminal mode.
func (in *TerminalInput) Close() error {
	if err := in.t.Restore(); err != nil {
		_ = in.t.Close()
		return fmt.Errorf("terminal: restore: %w", err)
	}
	return in.t.Close()
}
