// ABOUTME: WAV audio decoder
// ABOUTME: Decodes RIFF/WAVE linear PCM files to planar float32 buffers
package decode

import (
	"bytes"
	"fmt"

	"github.com/go-audio/wav"

	"github.com/pronounce-labs/pronounce-go/pkg/audio"
)

// decodeWAV decodes a RIFF/WAVE file to a planar buffer. Integer PCM at
// 8, 16, 24, and 32 bits is supported.
func decodeWAV(data []byte) (audio.Buffer, error) {
	d := wav.NewDecoder(bytes.NewReader(data))

	pcm, err := d.FullPCMBuffer()
	if err != nil {
		return audio.Buffer{}, fmt.Errorf("failed to decode wav: %w", err)
	}
	if d.WavAudioFormat != 1 {
		return audio.Buffer{}, fmt.Errorf("unsupported wav audio format %d, want 1 (linear PCM)", d.WavAudioFormat)
	}

	bits := int(d.BitDepth)
	switch bits {
	case 8, 16, 24, 32:
	default:
		return audio.Buffer{}, fmt.Errorf("unsupported wav bit depth %d", bits)
	}

	channels := pcm.Format.NumChannels
	if channels <= 0 {
		return audio.Buffer{}, fmt.Errorf("wav has no channels")
	}

	samples := make([]float32, len(pcm.Data))
	if bits == 8 {
		// 8-bit WAV samples are unsigned with a 128 midpoint
		for i, v := range pcm.Data {
			samples[i] = float32(v-128) / 128
		}
	} else {
		scale := float32(int32(1) << (bits - 1))
		for i, v := range pcm.Data {
			samples[i] = float32(v) / scale
		}
	}

	return audio.FromInterleaved(samples, pcm.Format.SampleRate, channels), nil
}
