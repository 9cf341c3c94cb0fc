// ABOUTME: Client configuration
// ABOUTME: Loads YAML settings with sensible defaults for every field
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ServerConfig stores backend connection settings.
type ServerConfig struct {
	URL string `yaml:"url"`
}

// PracticeConfig stores synthesis preferences.
type PracticeConfig struct {
	Voice string `yaml:"voice"`
	Rate  string `yaml:"rate"`
}

// CaptureConfig stores microphone settings.
type CaptureConfig struct {
	SampleRate int `yaml:"sample_rate"`
	Channels   int `yaml:"channels"`
}

// Config stores the application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Practice PracticeConfig `yaml:"practice"`
	Capture  CaptureConfig  `yaml:"capture"`
	TakesDir string         `yaml:"takes_dir"`
	CacheDir string         `yaml:"cache_dir"`
	LogFile  string         `yaml:"log_file"`
}

// Default returns the configuration used when no file exists. The
// capture format matches what the server's recognizer expects, so
// recordings upload without server-side resampling.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			URL: "http://localhost:8000",
		},
		Practice: PracticeConfig{
			Voice: "en-US-AriaNeural",
			Rate:  "-25%",
		},
		Capture: CaptureConfig{
			SampleRate: 16000,
			Channels:   1,
		},
		TakesDir: filepath.Join(os.TempDir(), "pronounce-takes"),
		CacheDir: filepath.Join(os.TempDir(), "pronounce-refs"),
		LogFile:  "pronounce.log",
	}
}

// DefaultPath returns the conventional config file location.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "pronounce", "config.yaml")
}

// Load reads the configuration file at path, filling unset fields with
// defaults. A missing file is not an error: defaults are returned.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the fields a typo would most likely break.
func (c *Config) Validate() error {
	if c.Server.URL == "" {
		return fmt.Errorf("server url must not be empty")
	}
	if c.Capture.SampleRate <= 0 {
		return fmt.Errorf("capture sample_rate must be positive, got %d", c.Capture.SampleRate)
	}
	if c.Capture.Channels < 1 || c.Capture.Channels > 2 {
		return fmt.Errorf("capture channels must be 1 or 2, got %d", c.Capture.Channels)
	}
	if err := validateRate(c.Practice.Rate); err != nil {
		return err
	}
	return nil
}

// validateRate checks the edge-tts rate shape: a signed percentage
// like "-25%" or "+10%".
func validateRate(rate string) error {
	if len(rate) < 3 || (rate[0] != '+' && rate[0] != '-') || !strings.HasSuffix(rate, "%") {
		return fmt.Errorf("rate must look like \"-25%%\" or \"+10%%\", got %q", rate)
	}
	for _, r := range rate[1 : len(rate)-1] {
		if r < '0' || r > '9' {
			return fmt.Errorf("rate must look like \"-25%%\" or \"+10%%\", got %q", rate)
		}
	}
	return nil
}
