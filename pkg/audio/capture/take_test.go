// ABOUTME: Tests for captured takes
// ABOUTME: Tests frame accounting, duration, and level metering
package capture

import (
	"testing"
	"time"
)

func TestTakeFrames(t *testing.T) {
	tests := []struct {
		name     string
		take     Take
		expected int
	}{
		{"empty", Take{SampleRate: 16000, Channels: 1}, 0},
		{"mono", Take{Data: make([]byte, 100), SampleRate: 16000, Channels: 1}, 50},
		{"stereo", Take{Data: make([]byte, 100), SampleRate: 16000, Channels: 2}, 25},
		{"odd trailing byte", Take{Data: make([]byte, 5), SampleRate: 16000, Channels: 1}, 2},
		{"zero channels", Take{Data: make([]byte, 100), SampleRate: 16000, Channels: 0}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.take.Frames(); got != tt.expected {
				t.Errorf("Frames() = %d, want %d", got, tt.expected)
			}
		})
	}
}

func TestTakeEmpty(t *testing.T) {
	if !(Take{SampleRate: 16000, Channels: 1}).Empty() {
		t.Error("expected empty take")
	}
	if (Take{Data: make([]byte, 4), SampleRate: 16000, Channels: 1}).Empty() {
		t.Error("expected non-empty take")
	}
}

func TestTakeDuration(t *testing.T) {
	take := Take{
		Data:       make([]byte, 16000*2), // one second of mono 16-bit
		SampleRate: 16000,
		Channels:   1,
	}

	if got := take.Duration(); got != time.Second {
		t.Errorf("Duration() = %v, want %v", got, time.Second)
	}

	empty := Take{SampleRate: 0, Channels: 1}
	if got := empty.Duration(); got != 0 {
		t.Errorf("Duration() on zero rate = %v, want 0", got)
	}
}

func TestPeakLevel(t *testing.T) {
	tests := []struct {
		name     string
		data     []byte
		expected float32
	}{
		{"silence", []byte{0, 0, 0, 0}, 0},
		{"full scale negative", []byte{0x00, 0x80}, 1.0},
		{"half scale", []byte{0x00, 0x40}, 0.5},
		{"picks the peak", []byte{0x00, 0x10, 0x00, 0x40, 0x00, 0x20}, 0.5},
		{"empty", nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := peakLevel(tt.data); got != tt.expected {
				t.Errorf("peakLevel() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestRecorderIdle(t *testing.T) {
	r := NewRecorder(16000, 1)

	if r.IsRecording() {
		t.Error("new recorder should not be recording")
	}
	if r.Level() != 0 {
		t.Errorf("Level() = %v, want 0", r.Level())
	}

	// Stopping an idle recorder returns an empty take
	take := r.Stop()
	if !take.Empty() {
		t.Error("expected empty take from idle recorder")
	}
	if take.SampleRate != 16000 {
		t.Errorf("SampleRate = %d, want 16000", take.SampleRate)
	}
	if take.Channels != 1 {
		t.Errorf("Channels = %d, want 1", take.Channels)
	}
}
