// ABOUTME: Playback device handle package
// ABOUTME: Defines Config, Device and the Engine abstraction
// Package device opens playback audio devices and drives them with a
// caller-supplied data callback.
//
// The typical flow:
//
//	cfg := device.NewPlaybackConfig(48000, cb)
//	dev, err := device.Open(malgo.New(), cfg)
//	err = dev.Start()
//	// ... engine invokes cb on its own thread ...
//	err = dev.Close()
//
// The callback runs on a thread owned by the engine and may execute
// concurrently with Start, Stop, SampleRate and Close. Control-plane
// calls on one Device are intended for a single goroutine; the package
// does not serialize concurrent control calls from multiple callers.
//
// Close is idempotent and safe on a nil *Device. It blocks until the
// engine has stopped invoking the callback for this device.
package device
