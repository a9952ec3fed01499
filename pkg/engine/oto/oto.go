// ABOUTME: Oto playback engine
// ABOUTME: Bridges the pull-based oto player to the data callback model
package oto

import (
	"fmt"
	"io"
	"log"
	"sync"

	"github.com/ebitengine/oto/v3"

	"github.com/Waveline-Audio/waveline-go/pkg/audio"
	"github.com/Waveline-Audio/waveline-go/pkg/device"
)

// oto allows a single context per process, so it is shared by every
// Engine and never released. The first Open fixes rate, channels and
// format for the lifetime of the process.
var (
	ctxMu        sync.Mutex
	procCtx      *oto.Context
	procRate     int
	procChannels int
	procFormat   audio.SampleFormat
)

// Engine opens playback devices through ebitengine/oto. oto has no
// callback API; the engine feeds a persistent player from an io.Reader
// that invokes the data callback on demand.
type Engine struct{}

// New creates an oto engine.
func New() *Engine {
	return &Engine{}
}

// Name identifies the engine.
func (e *Engine) Name() string { return "oto" }

// Open creates a player for the config. Because the oto context is
// process-global, a config that disagrees with an earlier one is served
// by the existing context with a warning; the negotiated sample rate is
// the context's, not the requested one.
func (e *Engine) Open(cfg device.Config) (device.Handle, error) {
	ctx, rate, channels, format, err := acquireContext(cfg)
	if err != nil {
		return nil, err
	}

	reader := &callbackReader{
		cb:       cfg.Callback,
		channels: channels,
		format:   format,
	}

	return &handle{
		player: ctx.NewPlayer(reader),
		reader: reader,
		rate:   rate,
	}, nil
}

// acquireContext creates or reuses the process-global oto context.
func acquireContext(cfg device.Config) (*oto.Context, int, int, audio.SampleFormat, error) {
	ctxMu.Lock()
	defer ctxMu.Unlock()

	if procCtx != nil {
		if procRate != cfg.SampleRate || procChannels != cfg.Channels || procFormat != cfg.Format {
			log.Printf("Warning: oto context already initialized (%dHz %dch %v); serving %dHz %dch %v request from it",
				procRate, procChannels, procFormat, cfg.SampleRate, cfg.Channels, cfg.Format)
		}
		return procCtx, procRate, procChannels, procFormat, nil
	}

	var format oto.Format
	switch cfg.Format {
	case audio.FormatF32:
		format = oto.FormatFloat32LE
	case audio.FormatS16:
		format = oto.FormatSignedInt16LE
	default:
		return nil, 0, 0, 0, fmt.Errorf("unsupported sample format: %v", cfg.Format)
	}

	op := &oto.NewContextOptions{
		SampleRate:   cfg.SampleRate,
		ChannelCount: cfg.Channels,
		Format:       format,
	}

	ctx, readyChan, err := oto.NewContext(op)
	if err != nil {
		return nil, 0, 0, 0, fmt.Errorf("failed to create oto context: %w", err)
	}
	<-readyChan

	procCtx = ctx
	procRate = cfg.SampleRate
	procChannels = cfg.Channels
	procFormat = cfg.Format

	return procCtx, procRate, procChannels, procFormat, nil
}

// handle is an open oto-backed device.
type handle struct {
	player *oto.Player
	reader *callbackReader
	rate   int

	closeOnce sync.Once
	closeErr  error
}

func (h *handle) Start() error {
	h.player.Play()
	if !h.player.IsPlaying() {
		return fmt.Errorf("oto player did not start")
	}
	return nil
}

func (h *handle) Stop() error {
	h.player.Pause()
	return nil
}

func (h *handle) SampleRate() int { return h.rate }

// Close tears down the player. The reader is sealed first so the
// callback cannot fire through a Read racing with the close.
func (h *handle) Close() error {
	h.closeOnce.Do(func() {
		h.reader.seal()
		if err := h.player.Close(); err != nil {
			h.closeErr = fmt.Errorf("failed to close oto player: %w", err)
		}
	})
	return h.closeErr
}

// callbackReader synthesizes encoded sample bytes from the data
// callback whenever oto pulls from the player.
type callbackReader struct {
	cb       device.DataCallback
	channels int
	format   audio.SampleFormat

	mu      sync.Mutex
	sealed  bool
	scratch []float32
}

func (r *callbackReader) Read(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.sealed {
		return 0, io.EOF
	}

	bytesPerFrame := r.format.BytesPerSample() * r.channels
	frames := len(p) / bytesPerFrame
	if frames == 0 {
		return 0, nil
	}

	samples := frames * r.channels
	if cap(r.scratch) < samples {
		r.scratch = make([]float32, samples)
	}
	buf := r.scratch[:samples]

	r.cb(buf, frames)

	switch r.format {
	case audio.FormatS16:
		audio.EncodeS16LE(p, buf)
	default:
		audio.EncodeF32LE(p, buf)
	}

	return frames * bytesPerFrame, nil
}

// seal makes further reads report EOF, quiescing the callback.
func (r *callbackReader) seal() {
	r.mu.Lock()
	r.sealed = true
	r.mu.Unlock()
}
