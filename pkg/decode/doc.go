// ABOUTME: Audio file decoder package
// ABOUTME: Provides the Decoder interface and MP3, FLAC and WAV implementations
// Package decode reads audio files into float32 samples suitable for
// the device data callback.
//
// Supports: MP3, FLAC, WAV (16-bit PCM and 32-bit float)
//
// All decoders implement the Decoder interface and output interleaved
// float32 samples in [-1, 1].
//
// Example:
//
//	dec, err := decode.Open("track.flac")
//	n, err := dec.Read(samples)
package decode
