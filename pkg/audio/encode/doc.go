// ABOUTME: Audio encoder package for serializing PCM to WAV
// ABOUTME: Provides the Encode function producing complete WAV files
// Package encode serializes decoded audio buffers to WAV containers.
//
// Output is always a complete file: a fixed 44-byte RIFF header followed
// by 16-bit little-endian linear PCM with channels interleaved per frame.
// The payload is self-describing, so a zero-frame buffer still yields a
// valid 44-byte file.
//
// Example:
//
//	data, err := encode.Encode(buf)
//	os.WriteFile("take.wav", data, 0o644)
package encode
