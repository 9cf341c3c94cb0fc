// ABOUTME: Ogg/Opus audio decoder
// ABOUTME: Decodes Opus streams to planar float32 buffers at 48 kHz
package decode

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"gopkg.in/hraban/opus.v2"

	"github.com/pronounce-labs/pronounce-go/pkg/audio"
)

// opusDecodeRate is the fixed output rate of the Opus stream decoder.
const opusDecodeRate = 48000

// decodeOpus decodes an Ogg-encapsulated Opus stream to a planar
// buffer. Output is always 48 kHz regardless of the input rate.
func decodeOpus(data []byte) (audio.Buffer, error) {
	channels, err := opusChannels(data)
	if err != nil {
		return audio.Buffer{}, err
	}

	stream, err := opus.NewStream(bytes.NewReader(data))
	if err != nil {
		return audio.Buffer{}, fmt.Errorf("failed to open opus stream: %w", err)
	}
	defer stream.Close()

	var samples []float32
	pcm := make([]float32, 16384)
	for {
		n, err := stream.ReadFloat32(pcm)
		if n > 0 {
			samples = append(samples, pcm[:n*channels]...)
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return audio.Buffer{}, fmt.Errorf("failed to decode opus: %w", err)
		}
	}

	return audio.FromInterleaved(samples, opusDecodeRate, channels), nil
}

// opusChannels reads the channel count from the OpusHead packet in the
// first Ogg page. The stream decoder does not expose it.
func opusChannels(data []byte) (int, error) {
	head := data
	if len(head) > 512 {
		head = head[:512]
	}
	i := bytes.Index(head, []byte("OpusHead"))
	if i < 0 || i+10 > len(data) {
		return 0, fmt.Errorf("ogg stream has no OpusHead packet")
	}

	channels := int(data[i+9])
	if channels <= 0 {
		return 0, fmt.Errorf("opus stream reports %d channels", channels)
	}
	return channels, nil
}
