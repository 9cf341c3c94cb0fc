// ABOUTME: Captured take type
// ABOUTME: Holds raw S16LE PCM from one recording session
package capture

import "time"

// Take is the raw audio of one recording: headerless interleaved S16LE
// PCM in the recorder's capture format.
type Take struct {
	Data       []byte
	SampleRate int
	Channels   int
}

// Empty reports whether the take holds no complete frame.
func (t Take) Empty() bool {
	return t.Frames() == 0
}

// Frames returns the number of complete frames captured.
func (t Take) Frames() int {
	if t.Channels <= 0 {
		return 0
	}
	return len(t.Data) / (2 * t.Channels)
}

// Duration returns the playback duration of the take.
func (t Take) Duration() time.Duration {
	if t.SampleRate <= 0 {
		return 0
	}
	return time.Duration(t.Frames()) * time.Second / time.Duration(t.SampleRate)
}
