//go:build !tinygo && windows

package hal

import (
	"context"
	"time"
)

type TerminalInput struct{}

func OpenTerminalInput(pad *SimPad, hold time.Duration) (*TerminalInput, error) {
	_ = pad
	_ = hold
	return nil, ErrNotImplemented
}

func (in *TerminalInput) Run(ctx context.Context) error { return ErrNotImplemented }
func (in *TerminalInput) Close() error                  { return nil }
