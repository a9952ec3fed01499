// ABOUTME: Null audio engine for tests and headless use
// ABOUTME: Clocks the data callback from a goroutine and discards the output
package null

import (
	"sync"
	"time"

	"github.com/Waveline-Audio/waveline-go/pkg/device"
)

// tick drives the callback; 10ms matches common hardware period sizes.
const tick = 10 * time.Millisecond

// Engine is a playback engine with no audio hardware behind it. Opened
// devices pull the data callback in real time from a goroutine and
// discard the samples. The Fail fields inject errors for testing the
// device error paths.
type Engine struct {
	// FailOpen, when non-nil, is returned by Open.
	FailOpen error

	// FailStart, when non-nil, is returned by Handle.Start.
	FailStart error

	// NegotiatedRate, when non-zero, overrides the requested sample
	// rate to simulate a backend that cannot honor it exactly.
	NegotiatedRate int
}

// New creates a null engine.
func New() *Engine {
	return &Engine{}
}

// Name identifies the engine.
func (e *Engine) Name() string { return "null" }

// Open creates a silent device for the config.
func (e *Engine) Open(cfg device.Config) (device.Handle, error) {
	if e.FailOpen != nil {
		return nil, e.FailOpen
	}

	rate := cfg.SampleRate
	if e.NegotiatedRate != 0 {
		rate = e.NegotiatedRate
	}

	return &handle{
		cfg:       cfg,
		rate:      rate,
		failStart: e.FailStart,
	}, nil
}

// handle is a null playback device. The callback goroutine exists only
// between Start and Stop/Close; Close waits for it so no callback runs
// after Close returns.
type handle struct {
	cfg       device.Config
	rate      int
	failStart error

	mu     sync.Mutex
	done   chan struct{}
	wg     sync.WaitGroup
	closed bool
}

func (h *handle) Start() error {
	if h.failStart != nil {
		return h.failStart
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed || h.done != nil {
		return nil
	}

	h.done = make(chan struct{})
	h.wg.Add(1)
	go h.run(h.done)
	return nil
}

func (h *handle) Stop() error {
	h.mu.Lock()
	done := h.done
	h.done = nil
	h.mu.Unlock()

	if done != nil {
		close(done)
		h.wg.Wait()
	}
	return nil
}

func (h *handle) SampleRate() int { return h.rate }

func (h *handle) Close() error {
	h.mu.Lock()
	h.closed = true
	h.mu.Unlock()
	return h.Stop()
}

// run pulls the callback once per tick into a discarded buffer.
func (h *handle) run(done chan struct{}) {
	defer h.wg.Done()

	frames := h.rate * int(tick/time.Millisecond) / 1000
	if frames < 1 {
		frames = 1
	}
	buf := make([]float32, frames*h.cfg.Channels)

	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			h.cfg.Callback(buf, frames)
		}
	}
}
