// ABOUTME: Data callback sources
// ABOUTME: Tone generator, push buffer and stream adapters producing DataCallbacks
// Package source provides ready-made producers for the device data
// callback: a sine tone generator, a thread-safe push buffer for code
// that wants a Write-style API, and adapters that pull samples from
// io.Readers and decoders.
package source
