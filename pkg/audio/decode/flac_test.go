// ABOUTME: Tests for the FLAC decoder
// ABOUTME: Tests rejection of corrupt streams
package decode

import "testing"

func TestDecodeFLAC_Corrupt(t *testing.T) {
	// fLaC signature followed by garbage instead of a StreamInfo block
	data := []byte("fLaC\x01\x02\x03\x04\x05\x06\x07\x08")

	_, err := Bytes(data)
	if err == nil {
		t.Fatal("expected error for corrupt flac, got nil")
	}
}

func TestDecodeFLAC_SignatureOnly(t *testing.T) {
	_, err := Bytes([]byte("fLaC"))
	if err == nil {
		t.Fatal("expected error for truncated flac, got nil")
	}
}
