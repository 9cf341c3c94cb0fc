// ABOUTME: Audio playback package built on oto
// ABOUTME: Provides a single-context Player with stop and volume control
// Package playback plays decoded buffers on the default output device.
//
// Oto permits one audio context per process, so Player converts every
// buffer to a fixed 48 kHz stereo S16LE format. The context is created
// lazily on the first Play, and replacing or stopping the current
// buffer is always safe.
package playback
