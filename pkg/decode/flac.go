// ABOUTME: FLAC file decoder
// ABOUTME: Decodes FLAC audio to float32 samples via mewkiz/flac
package decode

import (
	"fmt"
	"io"
	"os"

	"github.com/mewkiz/flac"

	"github.com/Waveline-Audio/waveline-go/pkg/audio"
)

// FLAC decodes a FLAC stream frame by frame.
type FLAC struct {
	closer   io.Closer
	stream   *flac.Stream
	channels int
	bitDepth int

	// pending holds interleaved samples left over from the last parsed
	// frame when the caller's buffer was smaller than the frame.
	pending []float32
}

// OpenFLAC opens a FLAC file.
func OpenFLAC(path string) (*FLAC, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open FLAC file: %w", err)
	}

	dec, err := NewFLAC(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	dec.closer = f
	return dec, nil
}

// NewFLAC decodes a FLAC stream from r. The caller keeps ownership of r.
func NewFLAC(r io.Reader) (*FLAC, error) {
	stream, err := flac.New(r)
	if err != nil {
		return nil, fmt.Errorf("failed to decode FLAC: %w", err)
	}

	return &FLAC{
		stream:   stream,
		channels: int(stream.Info.NChannels),
		bitDepth: int(stream.Info.BitsPerSample),
	}, nil
}

// Read fills samples with decoded audio.
func (d *FLAC) Read(samples []float32) (int, error) {
	read := 0

	for read < len(samples) {
		if len(d.pending) > 0 {
			n := copy(samples[read:], d.pending)
			d.pending = d.pending[n:]
			read += n
			continue
		}

		frame, err := d.stream.ParseNext()
		if err != nil {
			if err == io.EOF {
				if read == 0 {
					return 0, io.EOF
				}
				return read, nil
			}
			return read, fmt.Errorf("flac decode error: %w", err)
		}

		// Interleave the per-channel subframes, normalized by bit depth.
		scale := float32(int32(1) << (d.bitDepth - 1))
		blockSize := int(frame.BlockSize)
		buf := make([]float32, blockSize*d.channels)
		for i := 0; i < blockSize; i++ {
			for ch := 0; ch < d.channels; ch++ {
				buf[i*d.channels+ch] = float32(frame.Subframes[ch].Samples[i]) / scale
			}
		}
		d.pending = buf
	}

	return read, nil
}

// Format describes the decoded stream.
func (d *FLAC) Format() audio.Format {
	return audio.Format{
		Codec:      "flac",
		SampleRate: int(d.stream.Info.SampleRate),
		Channels:   d.channels,
		BitDepth:   d.bitDepth,
	}
}

// Close releases the underlying file, if any.
func (d *FLAC) Close() error {
	if d.closer != nil {
		return d.closer.Close()
	}
	return nil
}
