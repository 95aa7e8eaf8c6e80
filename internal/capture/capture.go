// Package capture records the converter's pins to a multi-channel WAV file,
// one channel per logical pin and one frame per reader step. Any audio editor
// or logic-analyzer tool that reads WAV can then show the bus waveforms.
package capture

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"snes2db9/pins"
)

// Sample values per level. A released pin sits at zero.
const (
	LevelHigh = 16383
	LevelLow  = -16383

	bitDepth  = 16
	pcmFormat = 1
	// flushFrames is how many frames are buffered before they hit the encoder.
	flushFrames = 1024
)

var ErrClosed = errors.New("capture: recorder closed")

// Recorder implements app.Probe.
type Recorder struct {
	mu     sync.Mutex
	w      io.WriteSeeker
	closer io.Closer
	enc    *wav.Encoder
	buf    *audio.IntBuffer
	frames uint64
	err    error
	closed bool
}

// Create opens path for writing and returns a Recorder sampling at rate Hz.
func Create(path string, rate int) (*Recorder, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("capture: %w", err)
	}
	r := New(f, rate)
	r.closer = f
	return r, nil
}

// New returns a Recorder writing to w at rate Hz. Close finalises the WAV
// header; it does not close w.
func New(w io.WriteSeeker, rate int) *Recorder {
	format := &audio.Format{NumChannels: pins.Count, SampleRate: rate}
	return &Recorder{
		w:   w,
		enc: wav.NewEncoder(w, rate, bitDepth, pins.Count, pcmFormat),
		buf: &audio.IntBuffer{
			Format:         format,
			SourceBitDepth: bitDepth,
			Data:           make([]int, 0, flushFrames*pins.Count),
		},
	}
}

// Sample appends one frame.
func (r *Recorder) Sample(levels pins.Levels) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed || r.err != nil {
		return
	}
	for _, l := range levels {
		r.buf.Data = append(r.buf.Data, sampleOf(l))
	}
	r.frames++
	if len(r.buf.Data) >= flushFrames*pins.Count {
		r.flush()
	}
}

// Frames returns how many frames were recorded.
func (r *Recorder) Frames() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.frames
}

// Err returns the first write error.
func (r *Recorder) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err
}

// Close flushes buffered frames and finalises the file.
func (r *Recorder) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return ErrClosed
	}
	r.closed = true

	if r.frames == 0 && r.err == nil {
		// An empty write still lays down a valid header.
		if err := r.enc.Write(r.buf); err != nil {
			r.err = fmt.Errorf("capture: %w", err)
		}
	}
	r.flush()
	if err := r.enc.Close(); err != nil && r.err == nil {
		r.err = fmt.Errorf("capture: %w", err)
	}
	if r.closer != nil {
		if err := r.closer.Close(); err != nil && r.err == nil {
			r.err = fmt.Errorf("capture: %w", err)
		}
	}
	return r.err
}

func (r *Recorder) flush() {
	if len(r.buf.Data) == 0 || r.err != nil {
		return
	}
	if err := r.enc.Write(r.buf); err != nil {
		r.err = fmt.Errorf("capture: %w", err)
	}
	r.buf.Data = r.buf.Data[:0]
}

func sampleOf(l pins.Level) int {
	switch l {
	case pins.High:
		return LevelHigh
	case pins.Low:
		return LevelLow
	default:
		return 0
	}
}
