// ABOUTME: MP3 audio decoder
// ABOUTME: Decodes MP3 streams to planar float32 buffers
package decode

import (
	"bytes"
	"fmt"
	"io"

	"github.com/hajimehoshi/go-mp3"

	"github.com/pronounce-labs/pronounce-go/pkg/audio"
)

// decodeMP3 decodes an MP3 stream to a planar buffer. go-mp3 always
// emits interleaved 16-bit stereo at the source sample rate.
func decodeMP3(data []byte) (audio.Buffer, error) {
	d, err := mp3.NewDecoder(bytes.NewReader(data))
	if err != nil {
		return audio.Buffer{}, fmt.Errorf("failed to open mp3: %w", err)
	}

	pcm, err := io.ReadAll(d)
	if err != nil {
		return audio.Buffer{}, fmt.Errorf("failed to decode mp3: %w", err)
	}

	return PCM16(pcm, d.SampleRate(), 2), nil
}
