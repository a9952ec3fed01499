// ABOUTME: Decoder interface definition
// ABOUTME: Common interface for all file decoders plus extension dispatch
package decode

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/Waveline-Audio/waveline-go/pkg/audio"
)

// Decoder reads interleaved float32 samples from an audio stream.
type Decoder interface {
	// Read fills samples and returns how many were read. Returns io.EOF
	// once the stream is exhausted.
	Read(samples []float32) (int, error)

	// Format describes the decoded stream.
	Format() audio.Format

	// Close releases decoder resources.
	Close() error
}

// Open creates a decoder for the file, picked by extension.
func Open(path string) (Decoder, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp3":
		return OpenMP3(path)
	case ".flac":
		return OpenFLAC(path)
	case ".wav":
		return OpenWAV(path)
	default:
		return nil, fmt.Errorf("unsupported audio format: %s (supported: .mp3, .flac, .wav)", filepath.Ext(path))
	}
}
