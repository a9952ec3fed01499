// ABOUTME: Playback configuration type
// ABOUTME: Named-field config built by NewPlaybackConfig, consumed by Open
package device

import (
	"fmt"

	"github.com/Waveline-Audio/waveline-go/pkg/audio"
)

// Playback defaults.
const (
	DefaultChannels = 1
	DefaultBufferMs = 100
)

// DataCallback produces audio for the engine. out holds frames*channels
// interleaved float32 samples and must be filled completely; unfilled
// samples play as whatever the engine left in the buffer. The engine
// invokes the callback on a thread it owns, concurrently with
// control-plane calls on the device.
type DataCallback func(out []float32, frames int)

// Config describes a playback device to open. The zero value is not
// usable on its own; build one with NewPlaybackConfig or fill the
// fields explicitly and let Open apply defaults.
type Config struct {
	// SampleRate is the requested rate in Hz. Engines may negotiate a
	// different rate; Device.SampleRate reports the actual one.
	SampleRate int

	// Channels is the interleaved channel count (default 1).
	Channels int

	// Format is the device sample format (default FormatF32).
	Format audio.SampleFormat

	// BufferMs is a latency hint in milliseconds (default 100).
	// Engines that cannot honor it ignore it.
	BufferMs int

	// Callback produces the audio data. Required.
	Callback DataCallback
}

// NewPlaybackConfig builds a mono float32 playback config for the given
// sample rate and callback. It never fails; the sample rate is not
// validated here and is rejected by the engine if unusable.
func NewPlaybackConfig(sampleRate int, cb DataCallback) Config {
	return Config{
		SampleRate: sampleRate,
		Channels:   DefaultChannels,
		Format:     audio.FormatF32,
		BufferMs:   DefaultBufferMs,
		Callback:   cb,
	}
}

// withDefaults fills unset optional fields.
func (c Config) withDefaults() Config {
	if c.Channels <= 0 {
		c.Channels = DefaultChannels
	}
	if c.Format == audio.FormatUnknown {
		c.Format = audio.FormatF32
	}
	if c.BufferMs <= 0 {
		c.BufferMs = DefaultBufferMs
	}
	return c
}

// validate checks the fields Open refuses to hand to an engine.
func (c Config) validate() error {
	if c.Callback == nil {
		return ErrNoCallback
	}
	if c.SampleRate <= 0 {
		return fmt.Errorf("%w: sample rate %d", ErrInvalidConfig, c.SampleRate)
	}
	if c.Format.BytesPerSample() == 0 {
		return fmt.Errorf("%w: sample format %v", ErrInvalidConfig, c.Format)
	}
	return nil
}
