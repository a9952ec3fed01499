// ABOUTME: WAV file decoder
// ABOUTME: Parses RIFF/WAVE and decodes 16-bit PCM or 32-bit float data
package decode

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/Waveline-Audio/waveline-go/pkg/audio"
)

// WAVE format tags.
const (
	wavFormatPCM   = 1
	wavFormatFloat = 3
)

// WAV decodes a RIFF/WAVE stream.
type WAV struct {
	closer    io.Closer
	r         io.Reader
	format    audio.Format
	formatTag int
	dataLeft  int64
}

// OpenWAV opens a WAV file.
func OpenWAV(path string) (*WAV, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open WAV file: %w", err)
	}

	dec, err := NewWAV(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	dec.closer = f
	return dec, nil
}

// NewWAV decodes a WAV stream from r. The caller keeps ownership of r.
func NewWAV(r io.Reader) (*WAV, error) {
	d := &WAV{r: r}
	if err := d.parseHeader(); err != nil {
		return nil, fmt.Errorf("failed to decode WAV: %w", err)
	}
	return d, nil
}

// parseHeader reads the RIFF header and chunks up to the data chunk.
func (d *WAV) parseHeader() error {
	var riff [12]byte
	if _, err := io.ReadFull(d.r, riff[:]); err != nil {
		return fmt.Errorf("short RIFF header: %w", err)
	}
	if string(riff[0:4]) != "RIFF" || string(riff[8:12]) != "WAVE" {
		return fmt.Errorf("not a RIFF/WAVE stream")
	}

	haveFmt := false
	for {
		var chunk [8]byte
		if _, err := io.ReadFull(d.r, chunk[:]); err != nil {
			return fmt.Errorf("missing data chunk: %w", err)
		}
		id := string(chunk[0:4])
		size := int64(binary.LittleEndian.Uint32(chunk[4:8]))

		switch id {
		case "fmt ":
			if err := d.parseFmt(size); err != nil {
				return err
			}
			haveFmt = true
		case "data":
			if !haveFmt {
				return fmt.Errorf("data chunk before fmt chunk")
			}
			d.dataLeft = size
			return nil
		default:
			// Chunks are word-aligned
			skip := size + size%2
			if _, err := io.CopyN(io.Discard, d.r, skip); err != nil {
				return fmt.Errorf("failed to skip %s chunk: %w", id, err)
			}
		}
	}
}

func (d *WAV) parseFmt(size int64) error {
	if size < 16 {
		return fmt.Errorf("fmt chunk too small: %d bytes", size)
	}

	var fields [16]byte
	if _, err := io.ReadFull(d.r, fields[:]); err != nil {
		return fmt.Errorf("short fmt chunk: %w", err)
	}
	if rest := size - 16 + size%2; rest > 0 {
		if _, err := io.CopyN(io.Discard, d.r, rest); err != nil {
			return fmt.Errorf("failed to skip fmt extension: %w", err)
		}
	}

	d.formatTag = int(binary.LittleEndian.Uint16(fields[0:2]))
	channels := int(binary.LittleEndian.Uint16(fields[2:4]))
	sampleRate := int(binary.LittleEndian.Uint32(fields[4:8]))
	bitDepth := int(binary.LittleEndian.Uint16(fields[14:16]))

	switch {
	case d.formatTag == wavFormatPCM && bitDepth == 16:
	case d.formatTag == wavFormatFloat && bitDepth == 32:
	default:
		return fmt.Errorf("unsupported WAV encoding: format=%d bits=%d (supported: 16-bit PCM, 32-bit float)",
			d.formatTag, bitDepth)
	}

	d.format = audio.Format{
		Codec:      "wav",
		SampleRate: sampleRate,
		Channels:   channels,
		BitDepth:   bitDepth,
	}
	return nil
}

// Read fills samples with decoded audio.
func (d *WAV) Read(samples []float32) (int, error) {
	if d.dataLeft == 0 {
		return 0, io.EOF
	}

	bytesPerSample := d.format.BitDepth / 8
	want := int64(len(samples) * bytesPerSample)
	if want > d.dataLeft {
		want = d.dataLeft
	}

	buf := make([]byte, want)
	n, err := io.ReadFull(d.r, buf)
	d.dataLeft -= int64(n)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return 0, fmt.Errorf("wav read error: %w", err)
	}

	numSamples := n / bytesPerSample
	if d.formatTag == wavFormatFloat {
		audio.DecodeF32LE(samples[:numSamples], buf)
	} else {
		audio.DecodeS16LE(samples[:numSamples], buf)
	}

	if numSamples == 0 {
		return 0, io.EOF
	}
	return numSamples, nil
}

// Format describes the decoded stream.
func (d *WAV) Format() audio.Format {
	return d.format
}

// Close releases the underlying file, if any.
func (d *WAV) Close() error {
	if d.closer != nil {
		return d.closer.Close()
	}
	return nil
}
