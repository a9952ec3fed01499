// ABOUTME: Malgo (miniaudio) playback engine
// ABOUTME: Default engine binding the data callback to real audio hardware
package malgo

import (
	"fmt"
	"log"
	"strings"
	"sync"

	ma "github.com/gen2brain/malgo"

	"github.com/Waveline-Audio/waveline-go/pkg/audio"
	"github.com/Waveline-Audio/waveline-go/pkg/device"
)

// Engine opens playback devices through miniaudio via the malgo
// bindings. One malgo context is shared by all devices opened from the
// same Engine and is released when the last device closes, so repeated
// open/close cycles do not accumulate native contexts.
type Engine struct {
	mu   sync.Mutex
	ctx  *ma.AllocatedContext
	refs int
}

// New creates a malgo engine.
func New() *Engine {
	return &Engine{}
}

// Name identifies the engine.
func (e *Engine) Name() string { return "malgo" }

// Open initializes a miniaudio playback device for the config. The
// device does not produce audio until Start.
func (e *Engine) Open(cfg device.Config) (device.Handle, error) {
	ctx, err := e.acquire()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize malgo context: %w", err)
	}

	var format ma.FormatType
	switch cfg.Format {
	case audio.FormatF32:
		format = ma.FormatF32
	case audio.FormatS16:
		format = ma.FormatS16
	default:
		e.release()
		return nil, fmt.Errorf("unsupported sample format: %v", cfg.Format)
	}

	deviceConfig := ma.DefaultDeviceConfig(ma.Playback)
	deviceConfig.Playback.Format = format
	deviceConfig.Playback.Channels = uint32(cfg.Channels)
	deviceConfig.SampleRate = uint32(cfg.SampleRate)
	deviceConfig.PeriodSizeInMilliseconds = uint32(cfg.BufferMs)
	deviceConfig.Alsa.NoMMap = 1

	h := &handle{engine: e, cfg: cfg}

	callbacks := ma.DeviceCallbacks{
		Data: h.onData,
	}

	dev, err := ma.InitDevice(ctx.Context, deviceConfig, callbacks)
	if err != nil {
		e.release()
		return nil, wrapInitError(err)
	}

	h.dev = dev
	return h, nil
}

// acquire returns the shared context, creating it for the first device.
func (e *Engine) acquire() (*ma.AllocatedContext, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.ctx == nil {
		ctx, err := ma.InitContext(nil, ma.ContextConfig{}, nil)
		if err != nil {
			return nil, err
		}
		e.ctx = ctx
	}
	e.refs++
	return e.ctx, nil
}

// release drops one context reference, freeing it with the last device.
func (e *Engine) release() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.refs--
	if e.refs > 0 || e.ctx == nil {
		return
	}
	if err := e.ctx.Uninit(); err != nil {
		log.Printf("Warning: malgo context uninit failed: %v", err)
	}
	e.ctx.Free()
	e.ctx = nil
}

// wrapInitError tags missing-device failures so callers can detect them
// with errors.Is(err, device.ErrNoDevice).
func wrapInitError(err error) error {
	if strings.Contains(strings.ToLower(err.Error()), "no device") {
		return fmt.Errorf("%w: %v", device.ErrNoDevice, err)
	}
	return fmt.Errorf("failed to initialize playback device: %w", err)
}

// handle is an open miniaudio playback device.
type handle struct {
	engine *Engine
	cfg    device.Config
	dev    *ma.Device

	// scratch is reused across callbacks; miniaudio invokes onData from
	// a single device thread, so no locking is needed.
	scratch []float32

	closeOnce sync.Once
}

func (h *handle) Start() error {
	if err := h.dev.Start(); err != nil {
		return fmt.Errorf("failed to start device: %w", err)
	}
	return nil
}

func (h *handle) Stop() error {
	if err := h.dev.Stop(); err != nil {
		return fmt.Errorf("failed to stop device: %w", err)
	}
	return nil
}

func (h *handle) SampleRate() int {
	return int(h.dev.SampleRate())
}

// Close uninitializes the device. ma_device_uninit blocks until the
// device thread has stopped, so the callback cannot run afterwards.
func (h *handle) Close() error {
	h.closeOnce.Do(func() {
		h.dev.Uninit()
		h.engine.release()
	})
	return nil
}

// onData fills miniaudio's output buffer from the data callback.
func (h *handle) onData(pOutput, pInput []byte, frameCount uint32) {
	frames := int(frameCount)
	samples := frames * h.cfg.Channels
	if cap(h.scratch) < samples {
		h.scratch = make([]float32, samples)
	}
	buf := h.scratch[:samples]

	h.cfg.Callback(buf, frames)

	switch h.cfg.Format {
	case audio.FormatS16:
		audio.EncodeS16LE(pOutput, buf)
	default:
		audio.EncodeF32LE(pOutput, buf)
	}
}
