// ABOUTME: Tests for the MP3 decoder
// ABOUTME: Tests rejection of truncated and corrupt streams
package decode

import "testing"

func TestDecodeMP3_Corrupt(t *testing.T) {
	// Frame sync followed by garbage
	data := []byte{0xFF, 0xFB, 0x01, 0x02, 0x03, 0x04}

	_, err := Bytes(data)
	if err == nil {
		t.Fatal("expected error for corrupt mp3, got nil")
	}
}

func TestDecodeMP3_TruncatedID3(t *testing.T) {
	// ID3 header promising more tag data than exists
	data := []byte("ID3\x04\x00\x00\x00\x00\x10\x00")

	_, err := Bytes(data)
	if err == nil {
		t.Fatal("expected error for truncated mp3, got nil")
	}
}
