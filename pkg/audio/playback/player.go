// ABOUTME: Oto-based audio playback
// ABOUTME: Plays decoded buffers on the default output device at a fixed format
package playback

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"log"
	"sync"

	"github.com/ebitengine/oto/v3"

	"github.com/pronounce-labs/pronounce-go/pkg/audio"
	"github.com/pronounce-labs/pronounce-go/pkg/audio/resample"
)

// Fixed device format. Oto allows only one context per process, so
// every buffer is converted to this format before playback.
const (
	playbackRate     = 48000
	playbackChannels = 2
)

// Player plays decoded buffers on the default output device. The oto
// context is created on first use and kept for the process lifetime.
// Starting a new buffer stops the previous one.
type Player struct {
	mu      sync.Mutex
	otoCtx  *oto.Context
	initErr error
	player  *oto.Player
	volume  int
}

// NewPlayer creates an idle player. No audio device is touched until
// the first Play call.
func NewPlayer() *Player {
	return &Player{volume: 100}
}

// Play converts the buffer to the device format and starts it,
// replacing whatever was playing.
func (p *Player) Play(buf audio.Buffer) error {
	if err := buf.Validate(); err != nil {
		return fmt.Errorf("invalid buffer: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.ensureContext(); err != nil {
		return err
	}

	p.stopLocked()

	data := devicePCM(buf)
	player := p.otoCtx.NewPlayer(bytes.NewReader(data))
	player.SetVolume(float64(p.volume) / 100.0)
	player.Play()
	p.player = player

	log.Printf("Playback started: %d frames (%.2fs)", buf.FrameCount(), buf.Duration().Seconds())
	return nil
}

// Stop halts playback. Safe to call when nothing is playing.
func (p *Player) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopLocked()
}

// IsPlaying reports whether audio is currently audible.
func (p *Player) IsPlaying() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.player != nil && p.player.IsPlaying()
}

// SetVolume sets playback volume (0-100). Applies to the current
// player and all future ones.
func (p *Player) SetVolume(volume int) {
	if volume < 0 {
		volume = 0
	}
	if volume > 100 {
		volume = 100
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.volume = volume
	if p.player != nil {
		p.player.SetVolume(float64(volume) / 100.0)
	}
	log.Printf("Volume set to %d", volume)
}

// Volume returns the current volume (0-100).
func (p *Player) Volume() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.volume
}

// Close stops playback and suspends the device context.
func (p *Player) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.stopLocked()
	if p.otoCtx != nil {
		if err := p.otoCtx.Suspend(); err != nil {
			log.Printf("Warning: oto context suspend error: %v", err)
		}
	}
	return nil
}

// ensureContext creates the oto context on first use (must hold p.mu).
// Oto cannot be reinitialized, so a failure is cached and returned on
// every later call.
func (p *Player) ensureContext() error {
	if p.otoCtx != nil {
		return nil
	}
	if p.initErr != nil {
		return p.initErr
	}

	op := &oto.NewContextOptions{
		SampleRate:   playbackRate,
		ChannelCount: playbackChannels,
		Format:       oto.FormatSignedInt16LE,
	}

	ctx, readyChan, err := oto.NewContext(op)
	if err != nil {
		p.initErr = fmt.Errorf("failed to create oto context: %w", err)
		return p.initErr
	}
	<-readyChan

	p.otoCtx = ctx
	log.Printf("Audio output initialized: %dHz, %d channels", playbackRate, playbackChannels)
	return nil
}

// stopLocked closes the active player (must hold p.mu).
func (p *Player) stopLocked() {
	if p.player == nil {
		return
	}
	if err := p.player.Close(); err != nil {
		log.Printf("Warning: player close error: %v", err)
	}
	p.player = nil
}

// devicePCM converts a buffer to interleaved S16LE at the device
// format: mono input is duplicated to both channels, extra channels
// beyond two are dropped.
func devicePCM(buf audio.Buffer) []byte {
	buf = resample.Linear(buf, playbackRate)

	left := buf.Channels[0]
	right := left
	if buf.NumChannels() >= 2 {
		right = buf.Channels[1]
	}

	frames := buf.FrameCount()
	out := make([]byte, frames*playbackChannels*2)
	for f := 0; f < frames; f++ {
		binary.LittleEndian.PutUint16(out[f*4:], uint16(sampleToInt16(left[f])))
		binary.LittleEndian.PutUint16(out[f*4+2:], uint16(sampleToInt16(right[f])))
	}
	return out
}

// sampleToInt16 clamps to [-1, 1] and scales to the signed 16-bit range.
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
