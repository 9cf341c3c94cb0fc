// ABOUTME: Audio type definitions
// ABOUTME: Defines the decoded planar float32 buffer and conversion helpers
package audio

import (
	"fmt"
	"time"
)

// Buffer represents decoded PCM audio as planar float32 samples.
// Channels[c][f] is the sample of channel c at frame f. Every channel
// slice has the same length. Samples are nominally in [-1, 1] but
// upstream processing may push them outside that range.
type Buffer struct {
	SampleRate int
	Channels   [][]float32
}

// NumChannels returns the channel count.
func (b Buffer) NumChannels() int {
	return len(b.Channels)
}

// FrameCount returns the per-channel sample count.
func (b Buffer) FrameCount() int {
	if len(b.Channels) == 0 {
		return 0
	}
	return len(b.Channels[0])
}

// Duration returns the playback duration of the buffer.
func (b Buffer) Duration() time.Duration {
	if b.SampleRate <= 0 {
		return 0
	}
	return time.Duration(b.FrameCount()) * time.Second / time.Duration(b.SampleRate)
}

// Validate checks the structural invariants: positive sample rate, at
// least one channel, and equal-length channel slices.
func (b Buffer) Validate() error {
	if b.SampleRate <= 0 {
		return fmt.Errorf("sample rate must be positive, got %d", b.SampleRate)
	}
	if len(b.Channels) == 0 {
		return fmt.Errorf("buffer has no channels")
	}
	frames := len(b.Channels[0])
	for c, ch := range b.Channels {
		if len(ch) != frames {
			return fmt.Errorf("channel %d has %d frames, channel 0 has %d", c, len(ch), frames)
		}
	}
	return nil
}

// FromInterleaved builds a planar buffer from frame-major interleaved
// samples. Trailing samples that do not fill a whole frame are dropped.
func FromInterleaved(samples []float32, sampleRate, channels int) Buffer {
	if channels <= 0 {
		return Buffer{SampleRate: sampleRate}
	}

	frames := len(samples) / channels
	planar := make([][]float32, channels)
	for c := range planar {
		planar[c] = make([]float32, frames)
	}
	for f := 0; f < frames; f++ {
		for c := 0; c < channels; c++ {
			planar[c][f] = samples[f*channels+c]
		}
	}

	return Buffer{SampleRate: sampleRate, Channels: planar}
}

// Interleave flattens the buffer to frame-major interleaved order:
// all channels of frame 0, then all channels of frame 1, and so on.
func (b Buffer) Interleave() []float32 {
	frames := b.FrameCount()
	channels := b.NumChannels()
	out := make([]float32, frames*channels)
	for f := 0; f < frames; f++ {
		for c := 0; c < channels; c++ {
			out[f*channels+c] = b.Channels[c][f]
		}
	}
	return out
}

// Float32FromInt16 converts a signed 16-bit sample to the [-1, 1) range.
func Float32FromInt16(s int16) float32 {
	return float32(s) / 32768
}
