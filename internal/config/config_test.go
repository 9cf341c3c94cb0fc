// ABOUTME: Tests for configuration loading
// ABOUTME: Tests defaults, file overrides, and validation
package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Server.URL != "http://localhost:8000" {
		t.Errorf("Server.URL = %q", cfg.Server.URL)
	}
	if cfg.Practice.Voice != "en-US-AriaNeural" {
		t.Errorf("Practice.Voice = %q", cfg.Practice.Voice)
	}
	if cfg.Practice.Rate != "-25%" {
		t.Errorf("Practice.Rate = %q", cfg.Practice.Rate)
	}
	if cfg.Capture.SampleRate != 16000 || cfg.Capture.Channels != 1 {
		t.Errorf("Capture = %+v", cfg.Capture)
	}
	if cfg.CacheDir == "" {
		t.Error("CacheDir should default to a usable path")
	}
	if cfg.LogFile != "pronounce.log" {
		t.Errorf("LogFile = %q", cfg.LogFile)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Server.URL != "http://localhost:8000" {
		t.Errorf("missing file should yield defaults, got %q", cfg.Server.URL)
	}
}

func TestLoad_Overrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `server:
  url: http://practice.local:9000
practice:
  voice: en-GB-RyanNeural
  rate: "+10%"
capture:
  sample_rate: 48000
  channels: 2
takes_dir: /tmp/mytakes
cache_dir: /tmp/myrefs
log_file: /tmp/pronounce.log
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Server.URL != "http://practice.local:9000" {
		t.Errorf("Server.URL = %q", cfg.Server.URL)
	}
	if cfg.Practice.Voice != "en-GB-RyanNeural" {
		t.Errorf("Practice.Voice = %q", cfg.Practice.Voice)
	}
	if cfg.Practice.Rate != "+10%" {
		t.Errorf("Practice.Rate = %q", cfg.Practice.Rate)
	}
	if cfg.Capture.SampleRate != 48000 || cfg.Capture.Channels != 2 {
		t.Errorf("Capture = %+v", cfg.Capture)
	}
	if cfg.TakesDir != "/tmp/mytakes" {
		t.Errorf("TakesDir = %q", cfg.TakesDir)
	}
	if cfg.CacheDir != "/tmp/myrefs" {
		t.Errorf("CacheDir = %q", cfg.CacheDir)
	}
	if cfg.LogFile != "/tmp/pronounce.log" {
		t.Errorf("LogFile = %q", cfg.LogFile)
	}
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("server:\n  url: http://other:8000\n"), 0o644); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Server.URL != "http://other:8000" {
		t.Errorf("Server.URL = %q", cfg.Server.URL)
	}
	if cfg.Practice.Voice != "en-US-AriaNeural" {
		t.Errorf("unset voice should keep default, got %q", cfg.Practice.Voice)
	}
	if cfg.Capture.SampleRate != 16000 {
		t.Errorf("unset sample rate should keep default, got %d", cfg.Capture.SampleRate)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad yaml", "server: [unclosed"},
		{"empty url", "server:\n  url: \"\"\n"},
		{"zero sample rate", "capture:\n  sample_rate: 0\n  channels: 1\n"},
		{"too many channels", "capture:\n  sample_rate: 16000\n  channels: 3\n"},
		{"bad rate", "practice:\n  rate: fast\n"},
		{"rate without sign", "practice:\n  rate: \"25%\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
				t.Fatalf("WriteFile() failed: %v", err)
			}

			if _, err := Load(path); err == nil {
				t.Error("Load() expected error, got nil")
			}
		})
	}
}

func TestValidateRate(t *testing.T) {
	valid := []string{"-25%", "+10%", "-0%", "+100%"}
	for _, rate := range valid {
		if err := validateRate(rate); err != nil {
			t.Errorf("validateRate(%q) failed: %v", rate, err)
		}
	}

	invalid := []string{"", "25%", "-25", "fast", "+%", "-2 5%"}
	for _, rate := range invalid {
		if err := validateRate(rate); err == nil {
			t.Errorf("validateRate(%q) expected error, got nil", rate)
		}
	}
}
