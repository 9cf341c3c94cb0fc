// ABOUTME: Tests for the Ogg/Opus decoder
// ABOUTME: Tests OpusHead channel parsing and header validation
package decode

import (
	"strings"
	"testing"
)

func TestOpusChannels(t *testing.T) {
	tests := []struct {
		name     string
		data     []byte
		expected int
		wantErr  bool
	}{
		{
			name:     "stereo",
			data:     []byte("OggS\x00\x02\x00\x00\x01\x13OpusHead\x01\x02\x38\x01\x80\xBB\x00\x00"),
			expected: 2,
		},
		{
			name:     "mono",
			data:     []byte("OggS\x00\x02\x00\x00\x01\x13OpusHead\x01\x01\x38\x01\x80\xBB\x00\x00"),
			expected: 1,
		},
		{
			name:    "no head packet",
			data:    []byte("OggS\x00\x02\x00\x00\x01\x13VorbisHd"),
			wantErr: true,
		},
		{
			name:    "zero channels",
			data:    []byte("OggS\x00\x02OpusHead\x01\x00"),
			wantErr: true,
		},
		{
			name:    "truncated before channel byte",
			data:    []byte("OpusHead\x01"),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			channels, err := opusChannels(tt.data)
			if tt.wantErr {
				if err == nil {
					t.Fatal("opusChannels() expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("opusChannels() failed: %v", err)
			}
			if channels != tt.expected {
				t.Errorf("opusChannels() = %d, want %d", channels, tt.expected)
			}
		})
	}
}

func TestDecodeOpus_MissingHead(t *testing.T) {
	data := []byte("OggS\x00\x02\x00\x00\x00\x00\x00\x00\x00\x00junk")

	_, err := Bytes(data)
	if err == nil {
		t.Fatal("expected error for ogg without OpusHead, got nil")
	}
	if !strings.Contains(err.Error(), "OpusHead") {
		t.Errorf("error = %v, want mention of OpusHead", err)
	}
}
