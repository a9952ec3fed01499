// ABOUTME: Sentinel errors for device lifecycle
// ABOUTME: Distinguishes config, engine and lifecycle failures
package device

import "errors"

var (
	// ErrNoCallback is returned by Open when the config has no data callback.
	ErrNoCallback = errors.New("config has no data callback")

	// ErrInvalidConfig is returned by Open for configs the engine cannot
	// even be asked about (nil engine, non-positive sample rate).
	ErrInvalidConfig = errors.New("invalid device config")

	// ErrNoDevice is reported by engines that found no usable playback
	// device. Check with errors.Is on the error returned by Open.
	ErrNoDevice = errors.New("no playback device available")

	// ErrClosed is returned by operations on a closed device.
	ErrClosed = errors.New("device is closed")
)
