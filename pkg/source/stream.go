// ABOUTME: Streaming callback sources
// ABOUTME: Adapts decoders and io.Readers into data callbacks with end-of-stream signaling
package source

import (
	"io"
	"sync"

	"github.com/Waveline-Audio/waveline-go/pkg/audio"
	"github.com/Waveline-Audio/waveline-go/pkg/audio/resample"
	"github.com/Waveline-Audio/waveline-go/pkg/decode"
	"github.com/Waveline-Audio/waveline-go/pkg/device"
)

// Stream pulls samples from an underlying producer each time the engine
// invokes the callback. After the producer is exhausted the callback
// plays silence and Done is closed, so callers can stop the device.
type Stream struct {
	pull func([]float32) (int, error)

	mu       sync.Mutex
	finished bool
	err      error

	done     chan struct{}
	doneOnce sync.Once
}

// FromDecoder adapts a decoder into a callback source. The decoder's
// channel count must match the device config.
func FromDecoder(dec decode.Decoder) *Stream {
	return &Stream{
		pull: dec.Read,
		done: make(chan struct{}),
	}
}

// FromReader adapts a raw sample stream (encoded per format) into a
// callback source.
func FromReader(r io.Reader, format audio.SampleFormat) *Stream {
	size := format.BytesPerSample()

	var buf []byte
	return &Stream{
		done: make(chan struct{}),
		pull: func(samples []float32) (int, error) {
			want := len(samples) * size
			if cap(buf) < want {
				buf = make([]byte, want)
			}
			n, err := io.ReadFull(r, buf[:want])
			numSamples := n / size
			switch format {
			case audio.FormatS16:
				audio.DecodeS16LE(samples[:numSamples], buf)
			default:
				audio.DecodeF32LE(samples[:numSamples], buf)
			}
			if err == io.ErrUnexpectedEOF {
				err = io.EOF
			}
			if err == io.EOF && numSamples > 0 {
				err = nil
			}
			return numSamples, err
		},
	}
}

// Resampled converts a stream from its native rate to the device rate.
// Returns s unchanged when the rates already match.
func Resampled(s *Stream, inputRate, outputRate, channels int) *Stream {
	if inputRate == outputRate {
		return s
	}

	r := resample.New(inputRate, outputRate, channels)
	var scratch []float32

	return &Stream{
		done: s.done,
		pull: func(out []float32) (int, error) {
			need := r.InputSamplesFor(len(out))
			if cap(scratch) < need {
				scratch = make([]float32, need)
			}
			in := scratch[:need]

			got := 0
			var err error
			for got < need && err == nil {
				var n int
				n, err = s.pull(in[got:])
				got += n
			}
			if got == 0 {
				return 0, err
			}
			return r.Resample(in[:got], out), err
		},
	}
}

// Callback returns the data callback draining the stream.
func (s *Stream) Callback() device.DataCallback {
	return func(out []float32, frames int) {
		s.mu.Lock()
		defer s.mu.Unlock()

		read := 0
		for !s.finished && read < len(out) {
			n, err := s.pull(out[read:])
			read += n
			if err != nil {
				s.finished = true
				if err != io.EOF {
					s.err = err
				}
				s.doneOnce.Do(func() { close(s.done) })
			}
		}

		for i := read; i < len(out); i++ {
			out[i] = 0
		}
	}
}

// Done is closed when the stream has been fully consumed or failed.
func (s *Stream) Done() <-chan struct{} {
	return s.done
}

// Err returns the failure that ended the stream, nil for clean EOF.
func (s *Stream) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}
