// ABOUTME: Malgo-based microphone capture
// ABOUTME: Records S16LE PCM from the default input device via miniaudio
package capture

import (
	"fmt"
	"log"
	"sync"

	"github.com/gen2brain/malgo"
)

// Recorder captures PCM from the default input device. One Recorder is
// reused across takes: Start begins a take, Stop ends it and returns
// the captured audio. The malgo context persists until Close.
type Recorder struct {
	sampleRate int
	channels   int

	mu        sync.Mutex
	malgoCtx  *malgo.AllocatedContext
	device    *malgo.Device
	data      []byte
	level     float32
	recording bool
}

// NewRecorder creates a recorder for the given capture format.
func NewRecorder(sampleRate, channels int) *Recorder {
	return &Recorder{
		sampleRate: sampleRate,
		channels:   channels,
	}
}

// Start opens the capture device and begins accumulating samples.
func (r *Recorder) Start() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.recording {
		return fmt.Errorf("already recording")
	}

	if r.malgoCtx == nil {
		ctx, err := malgo.InitContext(nil, malgo.ContextConfig{}, nil)
		if err != nil {
			return fmt.Errorf("failed to initialize malgo context: %w", err)
		}
		r.malgoCtx = ctx
	}

	deviceConfig := malgo.DefaultDeviceConfig(malgo.Capture)
	deviceConfig.Capture.Format = malgo.FormatS16
	deviceConfig.Capture.Channels = uint32(r.channels)
	deviceConfig.SampleRate = uint32(r.sampleRate)
	deviceConfig.Alsa.NoMMap = 1

	onSamples := func(pOutputSamples, pInputSamples []byte, frameCount uint32) {
		r.appendSamples(pInputSamples)
	}

	device, err := malgo.InitDevice(r.malgoCtx.Context, deviceConfig, malgo.DeviceCallbacks{
		Data: onSamples,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize capture device: %w", err)
	}

	if err := device.Start(); err != nil {
		device.Uninit()
		return fmt.Errorf("failed to start capture device: %w", err)
	}

	r.device = device
	r.data = nil
	r.level = 0
	r.recording = true

	log.Printf("Capture started: %dHz, %d channels, 16-bit", r.sampleRate, r.channels)
	return nil
}

// Stop ends the take and returns the captured audio. Stopping an idle
// recorder returns an empty take.
func (r *Recorder) Stop() Take {
	r.mu.Lock()
	device := r.device
	r.device = nil
	r.mu.Unlock()

	// Stop outside the lock: the data callback takes the same mutex
	if device != nil {
		if err := device.Stop(); err != nil {
			log.Printf("Warning: capture device stop error: %v", err)
		}
		device.Uninit()
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	take := Take{
		Data:       r.data,
		SampleRate: r.sampleRate,
		Channels:   r.channels,
	}
	r.data = nil
	r.level = 0
	r.recording = false

	log.Printf("Capture stopped: %d bytes (%.2fs)", len(take.Data), take.Duration().Seconds())
	return take
}

// Close releases the malgo context. The recorder is unusable afterwards.
func (r *Recorder) Close() error {
	r.Stop()

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.malgoCtx != nil {
		if err := r.malgoCtx.Uninit(); err != nil {
			log.Printf("Warning: malgo context uninit error: %v", err)
		}
		r.malgoCtx.Free()
		r.malgoCtx = nil
	}
	return nil
}

// IsRecording reports whether a take is in progress.
func (r *Recorder) IsRecording() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.recording
}

// Level returns the peak amplitude of the most recent capture callback
// in [0, 1]. Zero when idle.
func (r *Recorder) Level() float32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.level
}

// appendSamples is called from the malgo data callback.
func (r *Recorder) appendSamples(input []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.recording {
		return
	}
	r.data = append(r.data, input...)
	r.level = peakLevel(input)
}

// peakLevel returns the largest absolute S16LE sample scaled to [0, 1].
func peakLevel(data []byte) float32 {
	var peak int32
	for i := 0; i+1 < len(data); i += 2 {
		s := int32(int16(uint16(data[i]) | uint16(data[i+1])<<8))
		if s < 0 {
			s = -s
		}
		if s > peak {
			peak = s
		}
	}
	return float32(peak) / 32768
}
