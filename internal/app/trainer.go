// ABOUTME: Main trainer application orchestration
// ABOUTME: Coordinates the API client, capture, playback, and caching
package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pronounce-labs/pronounce-go/internal/refcache"
	"github.com/pronounce-labs/pronounce-go/internal/version"
	"github.com/pronounce-labs/pronounce-go/pkg/audio"
	"github.com/pronounce-labs/pronounce-go/pkg/audio/capture"
	"github.com/pronounce-labs/pronounce-go/pkg/audio/decode"
	"github.com/pronounce-labs/pronounce-go/pkg/audio/encode"
	"github.com/pronounce-labs/pronounce-go/pkg/audio/playback"
	"github.com/pronounce-labs/pronounce-go/pkg/trainer"
)

// Config holds trainer configuration.
type Config struct {
	ServerURL       string
	Voice           string
	Rate            string
	CaptureRate     int
	CaptureChannels int
	TakesDir        string
	CacheDir        string // empty for the default temp location
}

// Session is one practice round: the material from the server, the
// decoded reference audio, and the learner's latest take and score.
type Session struct {
	Practice  trainer.Practice
	Reference audio.Buffer
	Take      capture.Take
	Score     *trainer.Score
}

// HasReference reports whether the reference audio decoded cleanly.
func (s *Session) HasReference() bool {
	return s.Reference.Validate() == nil
}

// Trainer coordinates one practice session at a time.
type Trainer struct {
	config   Config
	client   *trainer.Client
	recorder *capture.Recorder
	player   *playback.Player
	cache    *refcache.Cache

	mu      sync.Mutex
	session *Session
}

// New creates the trainer and its components. No network or audio
// device is touched yet.
func New(config Config) (*Trainer, error) {
	cacheDir := config.CacheDir
	if cacheDir == "" {
		cacheDir = filepath.Join(os.TempDir(), "pronounce-refs")
	}
	cache, err := refcache.New(cacheDir)
	if err != nil {
		return nil, fmt.Errorf("failed to open reference cache: %w", err)
	}

	client := trainer.NewClient(config.ServerURL)
	client.SetUserAgent(version.UserAgent())

	return &Trainer{
		config:   config,
		client:   client,
		recorder: capture.NewRecorder(config.CaptureRate, config.CaptureChannels),
		player:   playback.NewPlayer(),
		cache:    cache,
	}, nil
}

// Health checks the backend connection.
func (t *Trainer) Health(ctx context.Context) error {
	return t.client.Health(ctx)
}

// Voices lists the synthesis voices the backend offers.
func (t *Trainer) Voices(ctx context.Context) ([]trainer.Voice, error) {
	return t.client.Voices(ctx)
}

// SetVoice switches the synthesis voice for future practice rounds.
func (t *Trainer) SetVoice(voice string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.config.Voice = voice
	log.Printf("Voice set to %s", voice)
}

// Voice returns the active synthesis voice.
func (t *Trainer) Voice() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.config.Voice
}

// SetRate switches the synthesis speed for future practice rounds.
// Rate is a signed percentage such as "-25%".
func (t *Trainer) SetRate(rate string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.config.Rate = rate
	log.Printf("Rate set to %s", rate)
}

// Rate returns the active synthesis speed.
func (t *Trainer) Rate() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.config.Rate
}

// StartPractice begins a new round for text: the server synthesizes a
// reference pronunciation and returns the phoneme breakdown. The
// reference audio comes from the local cache when the same text, voice,
// and rate were practiced before; otherwise it is fetched and cached,
// and the server copy is released.
func (t *Trainer) StartPractice(ctx context.Context, text string) (Session, error) {
	t.mu.Lock()
	voice, rate := t.config.Voice, t.config.Rate
	t.mu.Unlock()

	practice, err := t.client.StartPractice(ctx, text, voice, rate)
	if err != nil {
		return Session{}, err
	}

	key := refcache.Key(text, voice, rate)
	refBytes, ok := t.cache.Get(key)
	if !ok {
		refBytes, err = t.client.FetchAudio(ctx, practice.AudioURL)
		if err != nil {
			return Session{}, err
		}
		if _, err := t.cache.Put(key, refBytes); err != nil {
			log.Printf("Failed to cache reference audio: %v", err)
		}
	}

	// The local copy is durable now, so the server can drop its file
	if err := t.client.DeleteAudio(ctx, practice.AudioURL); err != nil {
		log.Printf("Failed to release server audio: %v", err)
	}

	session := Session{Practice: practice}
	ref, err := decode.Bytes(refBytes)
	if err != nil {
		log.Printf("Reference audio did not decode: %v", err)
	} else {
		session.Reference = ref
	}

	t.mu.Lock()
	t.session = &session
	t.mu.Unlock()

	return session, nil
}

// PlayReference plays the reference pronunciation of the current round.
func (t *Trainer) PlayReference() error {
	t.mu.Lock()
	session := t.session
	t.mu.Unlock()

	if session == nil {
		return fmt.Errorf("no active practice round")
	}
	if !session.HasReference() {
		return fmt.Errorf("reference audio unavailable")
	}
	return t.player.Play(session.Reference)
}

// StartRecording begins capturing a take. Playback stops first so the
// reference does not bleed into the recording.
func (t *Trainer) StartRecording() error {
	t.mu.Lock()
	session := t.session
	t.mu.Unlock()

	if session == nil {
		return fmt.Errorf("no active practice round")
	}

	t.player.Stop()
	return t.recorder.Start()
}

// StopRecording ends the capture and keeps the take for playback and
// scoring.
func (t *Trainer) StopRecording() (capture.Take, error) {
	take := t.recorder.Stop()
	if take.Empty() {
		return take, fmt.Errorf("nothing was recorded")
	}

	t.mu.Lock()
	if t.session != nil {
		t.session.Take = take
		t.session.Score = nil
	}
	t.mu.Unlock()

	return take, nil
}

// PlayTake plays back the latest take.
func (t *Trainer) PlayTake() error {
	t.mu.Lock()
	session := t.session
	t.mu.Unlock()

	if session == nil || session.Take.Empty() {
		return fmt.Errorf("no take to play")
	}

	buf := decode.PCM16(session.Take.Data, session.Take.SampleRate, session.Take.Channels)
	return t.player.Play(buf)
}

// ScoreTake uploads the latest take as WAV and returns the phoneme
// score. The take is also saved to the takes directory for later
// listening.
func (t *Trainer) ScoreTake(ctx context.Context) (trainer.Score, error) {
	t.mu.Lock()
	session := t.session
	t.mu.Unlock()

	if session == nil {
		return trainer.Score{}, fmt.Errorf("no active practice round")
	}
	if session.Take.Empty() {
		return trainer.Score{}, fmt.Errorf("no take to score")
	}

	buf := decode.PCM16(session.Take.Data, session.Take.SampleRate, session.Take.Channels)
	wav, err := encode.Encode(buf)
	if err != nil {
		return trainer.Score{}, fmt.Errorf("failed to encode take: %w", err)
	}

	t.saveTake(wav)

	score, err := t.client.ScoreRecording(ctx, wav, "recording.wav", session.Practice.Text, session.Practice.PhonemesARPA)
	if err != nil {
		return trainer.Score{}, err
	}

	t.mu.Lock()
	if t.session == session {
		t.session.Score = &score
	}
	t.mu.Unlock()

	return score, nil
}

// ScoreFile scores a pre-recorded file against the current round. The
// file is normalized to WAV when it decodes; otherwise the original
// bytes are uploaded untouched and the server makes of them what it
// can.
func (t *Trainer) ScoreFile(ctx context.Context, path string) (trainer.Score, error) {
	t.mu.Lock()
	session := t.session
	t.mu.Unlock()

	if session == nil {
		return trainer.Score{}, fmt.Errorf("no active practice round")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return trainer.Score{}, fmt.Errorf("failed to read %s: %w", path, err)
	}

	upload := data
	filename := filepath.Base(path)
	if buf, err := decode.Bytes(data); err == nil {
		if wav, err := encode.Encode(buf); err == nil {
			upload = wav
			filename = "recording.wav"
		}
	} else if !errors.Is(err, decode.ErrUnknownFormat) {
		log.Printf("File %s did not decode (%v), uploading as-is", path, err)
	}

	return t.client.ScoreRecording(ctx, upload, filename, session.Practice.Text, session.Practice.PhonemesARPA)
}

// StopPlayback halts whatever is playing.
func (t *Trainer) StopPlayback() {
	t.player.Stop()
}

// IsPlaying reports whether reference or take audio is playing.
func (t *Trainer) IsPlaying() bool {
	return t.player.IsPlaying()
}

// IsRecording reports whether a take is being captured.
func (t *Trainer) IsRecording() bool {
	return t.recorder.IsRecording()
}

// Level returns the live microphone level in [0, 1].
func (t *Trainer) Level() float32 {
	return t.recorder.Level()
}

// SetVolume sets playback volume (0-100).
func (t *Trainer) SetVolume(volume int) {
	t.player.SetVolume(volume)
}

// Volume returns playback volume (0-100).
func (t *Trainer) Volume() int {
	return t.player.Volume()
}

// Discard abandons the current round: playback and any in-flight
// recording stop, and the session is cleared. The reference audio stays
// cached for the next time the same text is practiced.
func (t *Trainer) Discard() {
	t.player.Stop()
	if t.recorder.IsRecording() {
		t.recorder.Stop()
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.session = nil
}

// Session returns a copy of the current round, or ok=false before the
// first StartPractice.
func (t *Trainer) Session() (Session, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.session == nil {
		return Session{}, false
	}
	return *t.session, true
}

// Close releases the audio devices.
func (t *Trainer) Close() {
	t.recorder.Close()
	t.player.Close()
}

// saveTake writes an encoded take to the takes directory. Failures are
// logged, not fatal: saving is a convenience, scoring is the point.
func (t *Trainer) saveTake(wav []byte) {
	if t.config.TakesDir == "" {
		return
	}
	if err := os.MkdirAll(t.config.TakesDir, 0o755); err != nil {
		log.Printf("Failed to create takes directory: %v", err)
		return
	}

	// Timestamp plus a random suffix so takes seconds apart never collide.
	name := fmt.Sprintf("%s-%s.wav", time.Now().Format("20060102-150405"), uuid.NewString()[:8])
	path := filepath.Join(t.config.TakesDir, name)
	if err := os.WriteFile(path, wav, 0o644); err != nil {
		log.Printf("Failed to save take: %v", err)
		return
	}
	log.Printf("Take saved: %s", path)
}
