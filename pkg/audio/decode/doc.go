// ABOUTME: Audio decoder package for multiple container support
// ABOUTME: Sniffs WAV, MP3, FLAC, and Ogg/Opus and decodes to float32 buffers
// Package decode turns encoded audio files into planar float32 buffers.
//
// Supports: WAV (integer PCM), MP3, FLAC, Ogg/Opus
//
// The container is detected from magic bytes, so callers hand over raw
// file contents without naming the format. Raw headerless PCM from a
// capture device goes through PCM16 instead.
//
// Example:
//
//	buf, err := decode.Bytes(data)
//	if errors.Is(err, decode.ErrUnknownFormat) {
//	    // keep the original bytes
//	}
package decode
