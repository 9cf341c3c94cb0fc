// ABOUTME: Format sniffing and decode entry points
// ABOUTME: Dispatches WAV, MP3, FLAC, and Ogg/Opus bytes to codec decoders
package decode

import (
	"errors"
	"fmt"
	"os"

	"github.com/pronounce-labs/pronounce-go/pkg/audio"
)

// ErrUnknownFormat is returned when the input matches no supported
// container signature.
var ErrUnknownFormat = errors.New("unknown audio format")

// Bytes decodes a complete audio file held in memory. The container is
// detected from its magic bytes: RIFF/WAVE, fLaC, OggS (Opus), or MP3
// (ID3 tag or frame sync).
func Bytes(data []byte) (audio.Buffer, error) {
	switch sniff(data) {
	case formatWAV:
		return decodeWAV(data)
	case formatMP3:
		return decodeMP3(data)
	case formatFLAC:
		return decodeFLAC(data)
	case formatOgg:
		return decodeOpus(data)
	default:
		return audio.Buffer{}, ErrUnknownFormat
	}
}

// File reads and decodes an audio file from disk.
func File(path string) (audio.Buffer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return audio.Buffer{}, fmt.Errorf("failed to read %s: %w", path, err)
	}

	buf, err := Bytes(data)
	if err != nil {
		return audio.Buffer{}, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return buf, nil
}

// PCM16 converts headerless interleaved signed 16-bit little-endian
// samples to a planar buffer. Trailing bytes that do not fill a whole
// frame are dropped.
func PCM16(data []byte, sampleRate, channels int) audio.Buffer {
	samples := make([]float32, len(data)/2)
	for i := range samples {
		s := int16(uint16(data[i*2]) | uint16(data[i*2+1])<<8)
		samples[i] = audio.Float32FromInt16(s)
	}
	return audio.FromInterleaved(samples, sampleRate, channels)
}

const (
	formatWAV  = "wav"
	formatMP3  = "mp3"
	formatFLAC = "flac"
	formatOgg  = "ogg"
)

// sniff identifies the container from its leading magic bytes. MP3 is
// matched last because its frame sync is the weakest signature.
func sniff(data []byte) string {
	if len(data) >= 12 && string(data[0:4]) == "RIFF" && string(data[8:12]) == "WAVE" {
		return formatWAV
	}
	if len(data) >= 4 && string(data[0:4]) == "fLaC" {
		return formatFLAC
	}
	if len(data) >= 4 && string(data[0:4]) == "OggS" {
		return formatOgg
	}
	if len(data) >= 3 && string(data[0:3]) == "ID3" {
		return formatMP3
	}
	if len(data) >= 2 && data[0] == 0xFF && data[1]&0xE0 == 0xE0 {
		return formatMP3
	}
	return ""
}
