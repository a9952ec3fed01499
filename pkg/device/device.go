// ABOUTME: Single-owner playback device handle
// ABOUTME: Wraps an engine handle with exactly-once teardown and lifecycle guards
package device

import (
	"fmt"
	"log"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
)

// Device is an open playback device. It is a single-owner handle: one
// goroutine drives Start/Stop/Close while the engine invokes the data
// callback concurrently on its own thread. Close releases the native
// device exactly once; using other methods after Close returns ErrClosed
// (or zero for SampleRate) rather than touching freed resources.
type Device struct {
	id     string
	engine string
	cfg    Config
	handle Handle

	started   atomic.Bool
	closed    atomic.Bool
	closeOnce sync.Once
	closeErr  error
}

// Open validates the config, applies playback defaults and asks the
// engine for a device. On engine failure nothing is leaked; the error
// wraps the engine's cause (use errors.Is with ErrNoDevice to detect a
// missing playback device).
func Open(eng Engine, cfg Config) (*Device, error) {
	if eng == nil {
		return nil, fmt.Errorf("%w: nil engine", ErrInvalidConfig)
	}

	cfg = cfg.withDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	handle, err := eng.Open(cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to open device: %w", eng.Name(), err)
	}

	d := &Device{
		id:     uuid.New().String(),
		engine: eng.Name(),
		cfg:    cfg,
		handle: handle,
	}

	log.Printf("Device %s opened: engine=%s rate=%dHz channels=%d format=%v",
		d.ShortID(), d.engine, handle.SampleRate(), cfg.Channels, cfg.Format)

	return d, nil
}

// ID returns the device's unique identifier.
func (d *Device) ID() string {
	if d == nil {
		return ""
	}
	return d.id
}

// ShortID returns the identifier truncated for logs.
func (d *Device) ShortID() string {
	if d == nil {
		return ""
	}
	return d.id[:8]
}

// Engine returns the name of the engine that opened the device.
func (d *Device) Engine() string {
	if d == nil {
		return ""
	}
	return d.engine
}

// Start begins playback. The engine invokes the config's callback on
// its own thread until Stop or Close. Starting an already started
// device is a no-op.
func (d *Device) Start() error {
	if d == nil || d.closed.Load() {
		return ErrClosed
	}
	if !d.started.CompareAndSwap(false, true) {
		return nil
	}

	if err := d.handle.Start(); err != nil {
		d.started.Store(false)
		return fmt.Errorf("%s: failed to start device %s: %w", d.engine, d.ShortID(), err)
	}

	log.Printf("Device %s started", d.ShortID())
	return nil
}

// Stop pauses playback without releasing the device. Stopping a device
// that is not started is a no-op.
func (d *Device) Stop() error {
	if d == nil || d.closed.Load() {
		return ErrClosed
	}
	if !d.started.CompareAndSwap(true, false) {
		return nil
	}

	if err := d.handle.Stop(); err != nil {
		return fmt.Errorf("%s: failed to stop device %s: %w", d.engine, d.ShortID(), err)
	}

	log.Printf("Device %s stopped", d.ShortID())
	return nil
}

// Running reports whether the device is currently started.
func (d *Device) Running() bool {
	return d != nil && d.started.Load() && !d.closed.Load()
}

// SampleRate returns the rate negotiated with the backend, which may
// differ from the requested rate. Returns 0 after Close.
func (d *Device) SampleRate() int {
	if d == nil || d.closed.Load() {
		return 0
	}
	return d.handle.SampleRate()
}

// Config returns the config the device was opened with, after defaults.
func (d *Device) Config() Config {
	if d == nil {
		return Config{}
	}
	return d.cfg
}

// Close stops playback and releases the native device. It blocks until
// the engine has quiesced the callback, so no callback invocation
// happens after Close returns. Close is idempotent and a no-op on a
// nil device; later calls return the first call's error.
func (d *Device) Close() error {
	if d == nil {
		return nil
	}

	d.closeOnce.Do(func() {
		d.closed.Store(true)
		d.started.Store(false)
		d.closeErr = d.handle.Close()
		if d.closeErr != nil {
			log.Printf("Device %s close error: %v", d.ShortID(), d.closeErr)
		} else {
			log.Printf("Device %s closed", d.ShortID())
		}
	})

	return d.closeErr
}
