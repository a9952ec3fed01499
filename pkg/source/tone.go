// ABOUTME: Sine tone generator source
// ABOUTME: Produces a fixed-frequency test tone as a data callback
package source

import (
	"math"
	"sync"

	"github.com/Waveline-Audio/waveline-go/pkg/device"
)

// DefaultToneAmplitude keeps test tones well below clipping.
const DefaultToneAmplitude = 0.5

// Tone generates a sine wave. Phase is carried across callback
// invocations so back-to-back buffers are continuous.
type Tone struct {
	mu        sync.Mutex
	frequency float64
	amplitude float64
	rate      int
	channels  int
	phase     float64
}

// NewTone creates a sine generator for the given frequency, sample rate
// and channel count.
func NewTone(frequency float64, sampleRate, channels int) *Tone {
	return &Tone{
		frequency: frequency,
		amplitude: DefaultToneAmplitude,
		rate:      sampleRate,
		channels:  channels,
	}
}

// SetAmplitude sets the peak amplitude, clamped to [0, 1].
func (t *Tone) SetAmplitude(a float64) {
	if a < 0 {
		a = 0
	}
	if a > 1 {
		a = 1
	}
	t.mu.Lock()
	t.amplitude = a
	t.mu.Unlock()
}

// Callback returns the data callback producing the tone.
func (t *Tone) Callback() device.DataCallback {
	step := t.frequency / float64(t.rate)

	return func(out []float32, frames int) {
		t.mu.Lock()
		defer t.mu.Unlock()

		for i := 0; i < frames; i++ {
			v := float32(t.amplitude * math.Sin(2*math.Pi*t.phase))
			for ch := 0; ch < t.channels; ch++ {
				out[i*t.channels+ch] = v
			}
			t.phase += step
			if t.phase >= 1 {
				t.phase -= 1
			}
		}
	}
}

// Silence returns a callback that zero-fills every buffer.
func Silence() device.DataCallback {
	return func(out []float32, frames int) {
		for i := range out {
			out[i] = 0
		}
	}
}
