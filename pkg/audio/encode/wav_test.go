// ABOUTME: Unit tests for the WAV encoder
// ABOUTME: Tests header layout, scaling, interleave order, and round-trip decode
package encode

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/go-audio/wav"

	"github.com/pronounce-labs/pronounce-go/pkg/audio"
)

func TestEncode_EmptyBufferHeader(t *testing.T) {
	buf := audio.Buffer{
		SampleRate: 8000,
		Channels:   [][]float32{{}},
	}

	data, err := Encode(buf)
	if err != nil {
		t.Fatalf("Encode() failed: %v", err)
	}

	// A zero-frame mono 8 kHz buffer is exactly the 44-byte header
	expected := []byte{
		'R', 'I', 'F', 'F',
		36, 0, 0, 0,
		'W', 'A', 'V', 'E',
		'f', 'm', 't', ' ',
		16, 0, 0, 0,
		1, 0,
		1, 0,
		0x40, 0x1F, 0, 0, // 8000
		0x80, 0x3E, 0, 0, // 16000 bytes/sec
		2, 0,
		16, 0,
		'd', 'a', 't', 'a',
		0, 0, 0, 0,
	}

	if !bytes.Equal(data, expected) {
		t.Errorf("header mismatch:\ngot  %v\nwant %v", data, expected)
	}
}

func TestEncode_OutputLength(t *testing.T) {
	tests := []struct {
		name     string
		frames   int
		channels int
	}{
		{"empty mono", 0, 1},
		{"empty stereo", 0, 2},
		{"mono", 100, 1},
		{"stereo", 100, 2},
		{"quad", 37, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			planar := make([][]float32, tt.channels)
			for c := range planar {
				planar[c] = make([]float32, tt.frames)
			}
			buf := audio.Buffer{SampleRate: 48000, Channels: planar}

			data, err := Encode(buf)
			if err != nil {
				t.Fatalf("Encode() failed: %v", err)
			}

			expected := 44 + tt.frames*tt.channels*2
			if len(data) != expected {
				t.Errorf("Encode() output size = %d, want %d", len(data), expected)
			}

			payload := binary.LittleEndian.Uint32(data[40:44])
			if int(payload) != tt.frames*tt.channels*2 {
				t.Errorf("data chunk size = %d, want %d", payload, tt.frames*tt.channels*2)
			}
		})
	}
}

func TestEncode_SampleScaling(t *testing.T) {
	tests := []struct {
		name     string
		input    float32
		expected int16
	}{
		{"silence", 0, 0},
		{"full positive", 1.0, 32767},
		{"full negative", -1.0, -32768},
		{"half positive truncates", 0.5, 16383}, // 16383.5 truncates toward zero
		{"half negative", -0.5, -16384},
		{"quarter positive", 0.25, 8191},
		{"three quarter negative", -0.75, -24576},
		{"clamped above", 2.0, 32767},
		{"clamped below", -2.0, -32768},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := audio.Buffer{
				SampleRate: 16000,
				Channels:   [][]float32{{tt.input}},
			}

			data, err := Encode(buf)
			if err != nil {
				t.Fatalf("Encode() failed: %v", err)
			}

			result := int16(binary.LittleEndian.Uint16(data[44:46]))
			if result != tt.expected {
				t.Errorf("sample %v encoded as %d, want %d", tt.input, result, tt.expected)
			}
		})
	}
}

func TestEncode_InterleavesFrames(t *testing.T) {
	buf := audio.Buffer{
		SampleRate: 48000,
		Channels: [][]float32{
			{0.5, 0.25},
			{-0.5, -0.25},
		},
	}

	data, err := Encode(buf)
	if err != nil {
		t.Fatalf("Encode() failed: %v", err)
	}

	// Frame 0 left, frame 0 right, frame 1 left, frame 1 right
	expected := []int16{16383, -16384, 8191, -8192}
	for i, want := range expected {
		got := int16(binary.LittleEndian.Uint16(data[44+i*2:]))
		if got != want {
			t.Errorf("payload sample %d: got %d, want %d", i, got, want)
		}
	}
}

func TestEncode_KnownScenario(t *testing.T) {
	buf := audio.Buffer{
		SampleRate: 16000,
		Channels:   [][]float32{{0.0, 1.0, -1.0}},
	}

	data, err := Encode(buf)
	if err != nil {
		t.Fatalf("Encode() failed: %v", err)
	}

	if len(data) != 50 {
		t.Errorf("Encode() output size = %d, want 50", len(data))
	}
	if riffSize := binary.LittleEndian.Uint32(data[4:8]); riffSize != 42 {
		t.Errorf("RIFF chunk size = %d, want 42", riffSize)
	}
	if rate := binary.LittleEndian.Uint32(data[24:28]); rate != 16000 {
		t.Errorf("sample rate = %d, want 16000", rate)
	}
	if byteRate := binary.LittleEndian.Uint32(data[28:32]); byteRate != 32000 {
		t.Errorf("byte rate = %d, want 32000", byteRate)
	}

	expected := []int16{0, 32767, -32768}
	for i, want := range expected {
		got := int16(binary.LittleEndian.Uint16(data[44+i*2:]))
		if got != want {
			t.Errorf("payload sample %d: got %d, want %d", i, got, want)
		}
	}
}

func TestEncode_Deterministic(t *testing.T) {
	buf := audio.Buffer{
		SampleRate: 44100,
		Channels: [][]float32{
			{0.1, -0.2, 0.3},
			{-0.4, 0.5, -0.6},
		},
	}

	first, err := Encode(buf)
	if err != nil {
		t.Fatalf("Encode() failed: %v", err)
	}
	second, err := Encode(buf)
	if err != nil {
		t.Fatalf("Encode() failed: %v", err)
	}

	if !bytes.Equal(first, second) {
		t.Errorf("Encode() produced different bytes for the same buffer")
	}
}

func TestEncode_InvalidBuffer(t *testing.T) {
	tests := []struct {
		name        string
		buf         audio.Buffer
		errContains string
	}{
		{
			name:        "no channels",
			buf:         audio.Buffer{SampleRate: 16000},
			errContains: "no channels",
		},
		{
			name:        "zero sample rate",
			buf:         audio.Buffer{SampleRate: 0, Channels: [][]float32{{0}}},
			errContains: "sample rate",
		},
		{
			name:        "ragged channels",
			buf:         audio.Buffer{SampleRate: 16000, Channels: [][]float32{{0, 0}, {0}}},
			errContains: "frames",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Encode(tt.buf)
			if err == nil {
				t.Fatalf("Encode() expected error, got nil")
			}
			if !contains(err.Error(), tt.errContains) {
				t.Errorf("Encode() error = %v, want error containing %v", err, tt.errContains)
			}
		})
	}
}

func TestEncode_RoundTrip(t *testing.T) {
	buf := audio.Buffer{
		SampleRate: 44100,
		Channels: [][]float32{
			{0.5, 1.0, 0.0},
			{-0.5, -1.0, 0.25},
		},
	}

	data, err := Encode(buf)
	if err != nil {
		t.Fatalf("Encode() failed: %v", err)
	}

	// Decode with an independent WAV reader
	d := wav.NewDecoder(bytes.NewReader(data))
	pcm, err := d.FullPCMBuffer()
	if err != nil {
		t.Fatalf("FullPCMBuffer() failed: %v", err)
	}

	if d.SampleRate != 44100 {
		t.Errorf("decoded sample rate = %d, want 44100", d.SampleRate)
	}
	if d.NumChans != 2 {
		t.Errorf("decoded channels = %d, want 2", d.NumChans)
	}
	if d.BitDepth != 16 {
		t.Errorf("decoded bit depth = %d, want 16", d.BitDepth)
	}

	// Interleaved: L0 R0 L1 R1 L2 R2
	expected := []int{16383, -16384, 32767, -32768, 0, 8191}
	if len(pcm.Data) != len(expected) {
		t.Fatalf("decoded %d samples, want %d", len(pcm.Data), len(expected))
	}
	for i, want := range expected {
		if pcm.Data[i] != want {
			t.Errorf("decoded sample %d: got %d, want %d", i, pcm.Data[i], want)
		}
	}
}

// Helper function to check if a string contains a substring
func contains(s, substr string) bool {
	return len(s) >= len(substr) && (s == substr || len(substr) == 0 ||
		(len(s) > 0 && len(substr) > 0 && indexOf(s, substr) >= 0))
}

func indexOf(s, substr string) int {
	for i := 0; i <= len(s)-len(substr); i++ {
		if s[i:i+len(substr)] == substr {
			return i
		}
	}
	return -1
}
