// ABOUTME: Tests for the null engine
// ABOUTME: Verifies callback clocking, stop quiescence and fault injection
package null

import (
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Waveline-Audio/waveline-go/pkg/device"
)

func TestEngineImplementsInterface(t *testing.T) {
	var _ device.Engine = (*Engine)(nil)
}

func TestOpenReturnsHandle(t *testing.T) {
	eng := New()
	h, err := eng.Open(device.NewPlaybackConfig(48000, func(out []float32, frames int) {}))
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	defer h.Close()

	if h.SampleRate() != 48000 {
		t.Errorf("expected 48000, got %d", h.SampleRate())
	}
}

func TestNegotiatedRateOverride(t *testing.T) {
	eng := New()
	eng.NegotiatedRate = 44100

	h, err := eng.Open(device.NewPlaybackConfig(48000, func(out []float32, frames int) {}))
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	defer h.Close()

	if h.SampleRate() != 44100 {
		t.Errorf("expected negotiated 44100, got %d", h.SampleRate())
	}
}

func TestCallbackClockedAfterStart(t *testing.T) {
	var calls atomic.Int64
	var frames atomic.Int64

	eng := New()
	h, err := eng.Open(device.NewPlaybackConfig(48000, func(out []float32, n int) {
		calls.Add(1)
		frames.Add(int64(n))
	}))
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	defer h.Close()

	if err := h.Start(); err != nil {
		t.Fatalf("start failed: %v", err)
	}

	deadline := time.After(2 * time.Second)
	for calls.Load() < 3 {
		select {
		case <-deadline:
			t.Fatalf("callback not invoked enough: %d calls", calls.Load())
		case <-time.After(5 * time.Millisecond):
		}
	}

	// 10ms of 48kHz audio per invocation
	perCall := frames.Load() / calls.Load()
	if perCall != 480 {
		t.Errorf("expected 480 frames per callback, got %d", perCall)
	}
}

func TestNoCallbackAfterClose(t *testing.T) {
	var calls atomic.Int64

	eng := New()
	h, err := eng.Open(device.NewPlaybackConfig(48000, func(out []float32, n int) {
		calls.Add(1)
	}))
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}

	if err := h.Start(); err != nil {
		t.Fatalf("start failed: %v", err)
	}

	deadline := time.After(2 * time.Second)
	for calls.Load() == 0 {
		select {
		case <-deadline:
			t.Fatal("callback never invoked")
		case <-time.After(5 * time.Millisecond):
		}
	}

	if err := h.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}

	after := calls.Load()
	time.Sleep(50 * time.Millisecond)
	if calls.Load() != after {
		t.Errorf("callback invoked after close: %d -> %d", after, calls.Load())
	}
}

func TestStartAfterCloseIsNoop(t *testing.T) {
	var calls atomic.Int64

	eng := New()
	h, _ := eng.Open(device.NewPlaybackConfig(48000, func(out []float32, n int) {
		calls.Add(1)
	}))

	if err := h.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}
	if err := h.Start(); err != nil {
		t.Fatalf("start after close errored: %v", err)
	}

	time.Sleep(30 * time.Millisecond)
	if calls.Load() != 0 {
		t.Errorf("callback ran after close: %d calls", calls.Load())
	}
}

func TestFaultInjection(t *testing.T) {
	openErr := errors.New("injected open failure")
	startErr := errors.New("injected start failure")

	eng := New()
	eng.FailOpen = openErr
	if _, err := eng.Open(device.NewPlaybackConfig(48000, func(out []float32, n int) {})); !errors.Is(err, openErr) {
		t.Errorf("expected injected open error, got %v", err)
	}

	eng = New()
	eng.FailStart = startErr
	h, err := eng.Open(device.NewPlaybackConfig(48000, func(out []float32, n int) {}))
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	defer h.Close()

	if err := h.Start(); !errors.Is(err, startErr) {
		t.Errorf("expected injected start error, got %v", err)
	}
}
