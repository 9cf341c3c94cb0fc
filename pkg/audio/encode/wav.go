// ABOUTME: WAV container encoder
// ABOUTME: Encodes planar float32 buffers to 16-bit linear PCM WAV bytes
package encode

import (
	"encoding/binary"
	"fmt"

	"github.com/pronounce-labs/pronounce-go/pkg/audio"
)

// MIMEType is the media type of encoded output.
const MIMEType = "audio/wav"

// headerSize is the fixed RIFF/fmt/data header length for 16-bit PCM.
const headerSize = 44

// Encode serializes a buffer as a complete WAV file: a 44-byte header
// followed by frame-major interleaved signed 16-bit little-endian PCM.
// Output length is always 44 + frames*channels*2 bytes. Encoding never
// fails for a buffer that passes Validate.
func Encode(buf audio.Buffer) ([]byte, error) {
	if err := buf.Validate(); err != nil {
		return nil, fmt.Errorf("invalid buffer: %w", err)
	}

	frames := buf.FrameCount()
	channels := buf.NumChannels()
	payload := frames * channels * 2

	out := make([]byte, headerSize+payload)
	writeHeader(out, buf.SampleRate, channels, payload)

	pos := headerSize
	for f := 0; f < frames; f++ {
		for c := 0; c < channels; c++ {
			binary.LittleEndian.PutUint16(out[pos:], uint16(sampleToInt16(buf.Channels[c][f])))
			pos += 2
		}
	}

	return out, nil
}

// writeHeader fills the first 44 bytes of out with the RIFF header,
// the 16-byte PCM fmt chunk, and the data chunk header.
func writeHeader(out []byte, sampleRate, channels, payload int) {
	copy(out[0:4], "RIFF")
	binary.LittleEndian.PutUint32(out[4:8], uint32(headerSize+payload-8))
	copy(out[8:12], "WAVE")

	copy(out[12:16], "fmt ")
	binary.LittleEndian.PutUint32(out[16:20], 16) // fmt chunk size
	binary.LittleEndian.PutUint16(out[20:22], 1)  // audio format: linear PCM
	binary.LittleEndian.PutUint16(out[22:24], uint16(channels))
	binary.LittleEndian.PutUint32(out[24:28], uint32(sampleRate))
	binary.LittleEndian.PutUint32(out[28:32], uint32(sampleRate*channels*2)) // byte rate
	binary.LittleEndian.PutUint16(out[32:34], uint16(channels*2))            // block align
	binary.LittleEndian.PutUint16(out[34:36], 16)                            // bits per sample

	copy(out[36:40], "data")
	binary.LittleEndian.PutUint32(out[40:44], uint32(payload))
}

// sampleToInt16 clamps a float sample to [-1, 1] and scales it to the
// signed 16-bit range. Negative samples scale by 32768 and non-negative
// by 32767 so both endpoints land exactly on the integer extremes.
// Fractions truncate toward zero.
func sampleToInt16(s float32) int16 {
	if s < -1 {
		s = -1
	} else if s > 1 {
		s = 1
	}
	if s < 0 {
		return int16(s * 32768)
	}
	return int16(s * 32767)
}
