package kernel

import "sync/atomic"

// TaskFlags is the only state shared between the tick interrupt and the main
// loop. Tick is the single writer that raises a flag, Poll the single reader
// that clears it. A flag raised again before it was cleared is counted, not
// queued: the task still runs once.
type TaskFlags struct {
	fine   atomic.Uint32
	coarse atomic.Uint32
}

func (f *TaskFlags) raiseFine()   { f.fine.Add(1) }
func (f *TaskFlags) raiseCoarse() { f.coarse.Add(1) }

// Pending returns the raised-but-uncleared counts without clearing them.
func (f *TaskFlags) Pending() (fine, coarse uint32) {
	return f.fine.Load(), f.coarse.Load()
}

func (f *TaskFlags) takeFine() uint32   { return f.fine.Swap(0) }
func (f *TaskFlags) takeCoarse() uint32 { return f.coarse.Swap(0) }
