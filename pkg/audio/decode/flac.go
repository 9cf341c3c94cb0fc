// ABOUTME: FLAC audio decoder
// ABOUTME: Decodes FLAC streams frame by frame to planar float32 buffers
package decode

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/mewkiz/flac"

	"github.com/pronounce-labs/pronounce-go/pkg/audio"
)

// decodeFLAC decodes a FLAC stream to a planar buffer using the
// frame-at-a-time parser, so only the decoded samples are buffered.
func decodeFLAC(data []byte) (audio.Buffer, error) {
	stream, err := flac.New(bytes.NewReader(data))
	if err != nil {
		return audio.Buffer{}, fmt.Errorf("failed to open flac: %w", err)
	}

	info := stream.Info
	channels := int(info.NChannels)
	if channels <= 0 {
		return audio.Buffer{}, fmt.Errorf("flac has no channels")
	}
	scale := float32(int64(1) << (info.BitsPerSample - 1))

	planar := make([][]float32, channels)
	for c := range planar {
		planar[c] = make([]float32, 0, info.NSamples)
	}

	for {
		frame, err := stream.ParseNext()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return audio.Buffer{}, fmt.Errorf("failed to decode flac frame: %w", err)
		}
		if len(frame.Subframes) != channels {
			return audio.Buffer{}, fmt.Errorf("flac frame has %d subframes, want %d", len(frame.Subframes), channels)
		}
		for c, sub := range frame.Subframes {
			for _, s := range sub.Samples {
				planar[c] = append(planar[c], float32(s)/scale)
			}
		}
	}

	return audio.Buffer{SampleRate: int(info.SampleRate), Channels: planar}, nil
}
