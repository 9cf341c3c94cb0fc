// ABOUTME: Audio fundamentals package providing core types and utilities
// ABOUTME: Defines the planar Buffer type and sample conversion functions
// Package audio provides fundamental audio types and utilities for speech processing.
//
// This package defines the core type used throughout the pronounce library:
//   - Buffer: Decoded PCM audio as planar float32 channels with a sample rate
//
// It also provides utilities for converting between sample layouts:
//   - interleaved ↔ planar conversions
//   - int16 → float32 sample conversion
//
// Example:
//
//	buf := audio.FromInterleaved(samples, 16000, 1)
//	fmt.Println(buf.Duration())
package audio
