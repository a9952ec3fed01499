// ABOUTME: MP3 file decoder
// ABOUTME: Decodes MP3 audio to float32 samples via go-mp3
package decode

import (
	"fmt"
	"io"
	"os"

	"github.com/hajimehoshi/go-mp3"

	"github.com/Waveline-Audio/waveline-go/pkg/audio"
)

// MP3 decodes an MP3 stream. go-mp3 always outputs 16-bit stereo.
type MP3 struct {
	closer  io.Closer
	decoder *mp3.Decoder
}

// OpenMP3 opens an MP3 file.
func OpenMP3(path string) (*MP3, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open MP3 file: %w", err)
	}

	dec, err := NewMP3(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	dec.closer = f
	return dec, nil
}

// NewMP3 decodes an MP3 stream from r. The caller keeps ownership of r.
func NewMP3(r io.Reader) (*MP3, error) {
	decoder, err := mp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("failed to decode MP3: %w", err)
	}
	return &MP3{decoder: decoder}, nil
}

// Read fills samples with decoded audio.
func (d *MP3) Read(samples []float32) (int, error) {
	// The decoder outputs 16-bit little-endian samples
	buf := make([]byte, len(samples)*2)

	total := 0
	for total < len(buf) {
		n, err := d.decoder.Read(buf[total:])
		total += n
		if err != nil {
			if err == io.EOF {
				break
			}
			return total / 2, fmt.Errorf("mp3 decode error: %w", err)
		}
	}

	numSamples := total / 2
	audio.DecodeS16LE(samples[:numSamples], buf)

	if numSamples == 0 {
		return 0, io.EOF
	}
	return numSamples, nil
}

// Format describes the decoded stream.
func (d *MP3) Format() audio.Format {
	return audio.Format{
		Codec:      "mp3",
		SampleRate: d.decoder.SampleRate(),
		Channels:   2,
		BitDepth:   16,
	}
}

// Close releases the underlying file, if any.
func (d *MP3) Close() error {
	if d.closer != nil {
		return d.closer.Close()
	}
	return nil
}
