// ABOUTME: Engine abstraction for native audio backends
// ABOUTME: Common interface implemented by the malgo, oto and null engines
package device

// Engine is a native audio backend capable of opening playback devices.
// Implementations live under pkg/engine.
type Engine interface {
	// Name identifies the engine in logs and errors.
	Name() string

	// Open acquires a playback device for the config. The returned
	// handle owns the native resources until Close. Engines report a
	// missing playback device by wrapping ErrNoDevice.
	Open(cfg Config) (Handle, error)
}

// Handle is an open native device as seen by the engine. Callers use
// *Device, which wraps a Handle with lifecycle guards; engines only
// implement this interface.
type Handle interface {
	// Start begins callback-driven playback.
	Start() error

	// Stop pauses playback without releasing the device.
	Stop() error

	// SampleRate returns the negotiated rate in Hz.
	SampleRate() int

	// Close stops playback and releases the native device. It must
	// block until the engine no longer invokes the callback.
	Close() error
}
