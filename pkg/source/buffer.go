// ABOUTME: Push buffer source
// ABOUTME: Thread-safe ring buffer whose callback drains written samples
package source

import (
	"sync"
	"sync/atomic"

	"github.com/Waveline-Audio/waveline-go/pkg/device"
)

// Buffer adapts push-style producers to the callback model: producers
// Write samples at their own pace and the engine drains them through
// Callback. Underruns are zero-filled (played as silence) and counted.
type Buffer struct {
	mu       sync.Mutex
	samples  []float32
	readPos  int
	writePos int
	size     int
	count    int

	underruns atomic.Int64
}

// NewBuffer creates a buffer holding up to capacity samples.
func NewBuffer(capacity int) *Buffer {
	return &Buffer{
		samples: make([]float32, capacity),
		size:    capacity,
	}
}

// Write adds samples without blocking and returns how many fit.
func (b *Buffer) Write(samples []float32) int {
	b.mu.Lock()
	defer b.mu.Unlock()

	written := 0
	for i := 0; i < len(samples) && b.count < b.size; i++ {
		b.samples[b.writePos] = samples[i]
		b.writePos = (b.writePos + 1) % b.size
		b.count++
		written++
	}
	return written
}

// Callback returns the data callback draining the buffer.
func (b *Buffer) Callback() device.DataCallback {
	return func(out []float32, frames int) {
		if n := b.read(out); n < len(out) {
			b.underruns.Add(1)
		}
	}
}

// read fills out from the buffer, zero-filling past the available data.
func (b *Buffer) read(out []float32) int {
	b.mu.Lock()
	defer b.mu.Unlock()

	read := 0
	for i := 0; i < len(out) && b.count > 0; i++ {
		out[i] = b.samples[b.readPos]
		b.readPos = (b.readPos + 1) % b.size
		b.count--
		read++
	}

	for i := read; i < len(out); i++ {
		out[i] = 0
	}

	return read
}

// Available returns the number of samples waiting to be played.
func (b *Buffer) Available() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.count
}

// Free returns the remaining capacity in samples.
func (b *Buffer) Free() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.size - b.count
}

// Underruns returns how many callbacks found too little data.
func (b *Buffer) Underruns() int64 {
	return b.underruns.Load()
}
