// ABOUTME: Tests for the WAV decoder
// ABOUTME: Verifies header parsing, PCM and float payloads, and error cases
package decode

import (
	"bytes"
	"encoding/binary"
	"io"
	"math"
	"testing"
)

// buildWAV assembles a minimal RIFF/WAVE stream.
func buildWAV(formatTag, channels, sampleRate, bitDepth int, data []byte) []byte {
	var buf bytes.Buffer

	dataSize := len(data)
	buf.WriteString("RIFF")
	binary.Write(&buf, binary.LittleEndian, uint32(36+dataSize))
	buf.WriteString("WAVE")

	buf.WriteString("fmt ")
	binary.Write(&buf, binary.LittleEndian, uint32(16))
	binary.Write(&buf, binary.LittleEndian, uint16(formatTag))
	binary.Write(&buf, binary.LittleEndian, uint16(channels))
	binary.Write(&buf, binary.LittleEndian, uint32(sampleRate))
	binary.Write(&buf, binary.LittleEndian, uint32(sampleRate*channels*bitDepth/8))
	binary.Write(&buf, binary.LittleEndian, uint16(channels*bitDepth/8))
	binary.Write(&buf, binary.LittleEndian, uint16(bitDepth))

	buf.WriteString("data")
	binary.Write(&buf, binary.LittleEndian, uint32(dataSize))
	buf.Write(data)

	return buf.Bytes()
}

func TestWAVDecodePCM16(t *testing.T) {
	// Two samples: 0x7FFF (full scale) and 0
	data := []byte{0xFF, 0x7F, 0x00, 0x00}
	dec, err := NewWAV(bytes.NewReader(buildWAV(wavFormatPCM, 1, 48000, 16, data)))
	if err != nil {
		t.Fatalf("failed to create decoder: %v", err)
	}

	format := dec.Format()
	if format.SampleRate != 48000 || format.Channels != 1 || format.BitDepth != 16 {
		t.Errorf("unexpected format: %+v", format)
	}

	samples := make([]float32, 4)
	n, err := dec.Read(samples)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected 2 samples, got %d", n)
	}
	if samples[0] != 1.0 {
		t.Errorf("expected full-scale sample 1.0, got %v", samples[0])
	}
	if samples[1] != 0 {
		t.Errorf("expected 0, got %v", samples[1])
	}

	if _, err := dec.Read(samples); err != io.EOF {
		t.Errorf("expected EOF after data, got %v", err)
	}
}

func TestWAVDecodeFloat32(t *testing.T) {
	data := make([]byte, 8)
	binary.LittleEndian.PutUint32(data[0:], math.Float32bits(0.25))
	binary.LittleEndian.PutUint32(data[4:], math.Float32bits(-0.75))

	dec, err := NewWAV(bytes.NewReader(buildWAV(wavFormatFloat, 2, 44100, 32, data)))
	if err != nil {
		t.Fatalf("failed to create decoder: %v", err)
	}

	samples := make([]float32, 2)
	n, err := dec.Read(samples)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected 2 samples, got %d", n)
	}
	if samples[0] != 0.25 || samples[1] != -0.75 {
		t.Errorf("unexpected samples: %v", samples)
	}
}

func TestWAVSkipsUnknownChunks(t *testing.T) {
	// Insert a LIST chunk between fmt and data
	base := buildWAV(wavFormatPCM, 1, 48000, 16, []byte{0x00, 0x01})
	fmtEnd := 12 + 8 + 16
	var buf bytes.Buffer
	buf.Write(base[:fmtEnd])
	buf.WriteString("LIST")
	binary.Write(&buf, binary.LittleEndian, uint32(4))
	buf.WriteString("info")
	buf.Write(base[fmtEnd:])

	dec, err := NewWAV(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("failed to create decoder: %v", err)
	}

	samples := make([]float32, 1)
	if n, err := dec.Read(samples); err != nil || n != 1 {
		t.Errorf("expected 1 sample, got %d (%v)", n, err)
	}
}

func TestWAVRejectsGarbage(t *testing.T) {
	if _, err := NewWAV(bytes.NewReader([]byte("definitely not audio"))); err == nil {
		t.Error("expected error for garbage input")
	}
}

func TestWAVRejectsUnsupportedEncoding(t *testing.T) {
	// 8-bit PCM is not supported
	stream := buildWAV(wavFormatPCM, 1, 48000, 8, []byte{0x80})
	if _, err := NewWAV(bytes.NewReader(stream)); err == nil {
		t.Error("expected error for 8-bit PCM")
	}
}
