// ABOUTME: Tests for audio sample conversions
// ABOUTME: Verifies float/PCM conversion and byte encoding round trips
package audio

import (
	"math"
	"testing"
)

func TestF32ToS16Clamping(t *testing.T) {
	if got := F32ToS16(2.0); got != math.MaxInt16 {
		t.Errorf("expected clamp to %d, got %d", math.MaxInt16, got)
	}
	if got := F32ToS16(-2.0); got != -math.MaxInt16 {
		t.Errorf("expected clamp to %d, got %d", -math.MaxInt16, got)
	}
	if got := F32ToS16(0); got != 0 {
		t.Errorf("expected 0, got %d", got)
	}
}

func TestS16F32RoundTrip(t *testing.T) {
	for _, v := range []int16{0, 1, -1, 1000, -1000, math.MaxInt16, -math.MaxInt16} {
		back := F32ToS16(S16ToF32(v))
		if back != v {
			t.Errorf("round trip of %d gave %d", v, back)
		}
	}
}

func TestEncodeDecodeF32LE(t *testing.T) {
	in := []float32{0, 0.5, -0.5, 1, -1, 0.123}
	buf := make([]byte, len(in)*4)
	EncodeF32LE(buf, in)

	out := make([]float32, len(in))
	DecodeF32LE(out, buf)

	for i := range in {
		if out[i] != in[i] {
			t.Errorf("sample %d: expected %v, got %v", i, in[i], out[i])
		}
	}
}

func TestEncodeS16LE(t *testing.T) {
	in := []float32{0, 1.0}
	buf := make([]byte, len(in)*2)
	EncodeS16LE(buf, in)

	// 0 -> 0x0000, 1.0 -> 0x7FFF little-endian
	if buf[0] != 0 || buf[1] != 0 {
		t.Errorf("expected zero bytes for sample 0, got %v", buf[:2])
	}
	if buf[2] != 0xFF || buf[3] != 0x7F {
		t.Errorf("expected 0x7FFF LE for sample 1.0, got %v", buf[2:4])
	}
}

func TestSampleFormatSizes(t *testing.T) {
	cases := []struct {
		format SampleFormat
		size   int
		name   string
	}{
		{FormatF32, 4, "f32"},
		{FormatS16, 2, "s16"},
		{FormatUnknown, 0, "unknown"},
	}

	for _, c := range cases {
		if got := c.format.BytesPerSample(); got != c.size {
			t.Errorf("%s: expected %d bytes, got %d", c.name, c.size, got)
		}
		if got := c.format.String(); got != c.name {
			t.Errorf("expected name %q, got %q", c.name, got)
		}
	}
}
