// ABOUTME: Audio type definitions
// ABOUTME: Defines sample formats, stream formats and sample conversion helpers
package audio

import (
	"encoding/binary"
	"math"
)

// SampleFormat identifies the in-memory sample representation.
type SampleFormat int

const (
	FormatUnknown SampleFormat = iota
	FormatF32                  // 32-bit float, the native callback format
	FormatS16                  // 16-bit signed integer, little-endian
)

// BytesPerSample returns the encoded size of one sample.
func (f SampleFormat) BytesPerSample() int {
	switch f {
	case FormatF32:
		return 4
	case FormatS16:
		return 2
	default:
		return 0
	}
}

// String returns a human-readable format name.
func (f SampleFormat) String() string {
	switch f {
	case FormatF32:
		return "f32"
	case FormatS16:
		return "s16"
	default:
		return "unknown"
	}
}

// Format describes a decoded audio stream.
type Format struct {
	Codec      string
	SampleRate int
	Channels   int
	BitDepth   int
}

// F32ToS16 converts a float sample in [-1, 1] to 16-bit PCM, clamping
// out-of-range values.
func F32ToS16(v float32) int16 {
	if v <= -1.0 {
		return -math.MaxInt16
	}
	if v >= 1.0 {
		return math.MaxInt16
	}
	return int16(v * math.MaxInt16)
}

// S16ToF32 converts a 16-bit PCM sample to a float in [-1, 1].
func S16ToF32(v int16) float32 {
	return float32(v) / math.MaxInt16
}

// EncodeF32LE encodes float32 samples as little-endian bytes.
// dst must hold at least 4*len(samples) bytes.
func EncodeF32LE(dst []byte, samples []float32) {
	for i, v := range samples {
		binary.LittleEndian.PutUint32(dst[i*4:], math.Float32bits(v))
	}
}

// DecodeF32LE decodes little-endian float32 bytes into samples.
// src must hold at least 4*len(samples) bytes.
func DecodeF32LE(samples []float32, src []byte) {
	for i := range samples {
		samples[i] = math.Float32frombits(binary.LittleEndian.Uint32(src[i*4:]))
	}
}

// EncodeS16LE encodes float32 samples as 16-bit little-endian PCM bytes.
// dst must hold at least 2*len(samples) bytes.
func EncodeS16LE(dst []byte, samples []float32) {
	for i, v := range samples {
		binary.LittleEndian.PutUint16(dst[i*2:], uint16(F32ToS16(v)))
	}
}

// DecodeS16LE decodes 16-bit little-endian PCM bytes into float32 samples.
// src must hold at least 2*len(samples) bytes.
func DecodeS16LE(samples []float32, src []byte) {
	for i := range samples {
		samples[i] = S16ToF32(int16(binary.LittleEndian.Uint16(src[i*2:])))
	}
}
