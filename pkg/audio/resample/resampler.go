// ABOUTME: Simple linear resampler for converting audio sample rates
// ABOUTME: Converts whole planar buffers between rates using linear interpolation
package resample

import "github.com/pronounce-labs/pronounce-go/pkg/audio"

// Linear converts a buffer to outputRate using linear interpolation.
// The input is returned unchanged when it is already at outputRate or
// has nothing to interpolate. Quality is adequate for speech playback,
// which is the only consumer.
func Linear(buf audio.Buffer, outputRate int) audio.Buffer {
	if buf.SampleRate == outputRate || outputRate <= 0 || buf.SampleRate <= 0 {
		return buf
	}

	inFrames := buf.FrameCount()
	if inFrames == 0 {
		return audio.Buffer{SampleRate: outputRate, Channels: buf.Channels}
	}

	ratio := float64(buf.SampleRate) / float64(outputRate)
	outFrames := int(float64(inFrames) / ratio)
	if outFrames < 1 {
		outFrames = 1
	}

	out := make([][]float32, buf.NumChannels())
	for c, in := range buf.Channels {
		ch := make([]float32, outFrames)
		for j := 0; j < outFrames; j++ {
			pos := float64(j) * ratio
			idx := int(pos)
			if idx >= inFrames-1 {
				ch[j] = in[inFrames-1]
				continue
			}
			frac := pos - float64(idx)
			ch[j] = float32(float64(in[idx])*(1.0-frac) + float64(in[idx+1])*frac)
		}
		out[c] = ch
	}

	return audio.Buffer{SampleRate: outputRate, Channels: out}
}
