// ABOUTME: Entry point for the pronunciation trainer
// ABOUTME: Parses CLI flags, loads config, and starts the TUI or a headless round
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/pronounce-labs/pronounce-go/internal/app"
	"github.com/pronounce-labs/pronounce-go/internal/config"
	"github.com/pronounce-labs/pronounce-go/internal/discovery"
	"github.com/pronounce-labs/pronounce-go/internal/ui"
	"github.com/pronounce-labs/pronounce-go/internal/version"
)

var (
	serverURL  = flag.String("server", "", "Backend URL (overrides config)")
	voice      = flag.String("voice", "", "Synthesis voice (overrides config)")
	rate       = flag.String("rate", "", "Synthesis rate like -25% (overrides config)")
	configPath = flag.String("config", "", "Config file path (default: user config dir)")
	logFile    = flag.String("log-file", "", "Log file path (overrides config)")
	noTUI      = flag.Bool("no-tui", false, "Disable TUI, run one headless round")
	text       = flag.String("text", "", "Text to practice in headless mode")
	audioFile  = flag.String("audio", "", "Recording to score in headless mode")
	discover   = flag.Bool("discover", false, "Find the backend with mDNS (ignored with -server)")
)

func main() {
	flag.Parse()

	path := *configPath
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		log.Fatalf("Config error: %v", err)
	}

	// Flags override the file
	if *serverURL != "" {
		cfg.Server.URL = *serverURL
	}
	if *voice != "" {
		cfg.Practice.Voice = *voice
	}
	if *rate != "" {
		cfg.Practice.Rate = *rate
	}
	if *logFile != "" {
		cfg.LogFile = *logFile
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Config error: %v", err)
	}

	useTUI := !*noTUI

	// Set up logging
	f, err := os.OpenFile(cfg.LogFile, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		log.Fatalf("error opening log file: %v", err)
	}
	defer func() { _ = f.Close() }()

	if useTUI {
		// TUI mode: log only to file, the TUI owns the terminal
		log.SetOutput(f)
	} else {
		// Headless mode: log to both stdout and file
		log.SetOutput(io.MultiWriter(os.Stdout, f))
	}

	log.Printf("Starting %s", version.UserAgent())

	if *discover && *serverURL == "" {
		servers, err := discovery.Find(3 * time.Second)
		if err != nil {
			log.Fatalf("Discovery failed: %v", err)
		}
		if len(servers) == 0 {
			log.Fatalf("No backend found on the local network")
		}
		cfg.Server.URL = servers[0].URL()
		log.Printf("Discovered backend %q at %s", servers[0].Name, cfg.Server.URL)
	}

	trainer, err := app.New(app.Config{
		ServerURL:       cfg.Server.URL,
		Voice:           cfg.Practice.Voice,
		Rate:            cfg.Practice.Rate,
		CaptureRate:     cfg.Capture.SampleRate,
		CaptureChannels: cfg.Capture.Channels,
		TakesDir:        cfg.TakesDir,
		CacheDir:        cfg.CacheDir,
	})
	if err != nil {
		log.Fatalf("Failed to start trainer: %v", err)
	}
	defer trainer.Close()

	if !useTUI {
		if err := runHeadless(trainer); err != nil {
			log.Fatalf("%v", err)
		}
		return
	}

	if err := ui.Run(trainer); err != nil {
		log.Fatalf("TUI error: %v", err)
	}

	log.Printf("Trainer stopped")
}

// runHeadless performs one practice round without the TUI and prints
// JSON for scripting. With -audio the file is scored; without it only
// the practice material is printed.
func runHeadless(trainer *app.Trainer) error {
	if *text == "" {
		return fmt.Errorf("headless mode needs -text")
	}

	ctx := context.Background()
	session, err := trainer.StartPractice(ctx, *text)
	if err != nil {
		return fmt.Errorf("practice init failed: %w", err)
	}

	out := json.NewEncoder(os.Stdout)
	out.SetIndent("", "  ")

	if *audioFile == "" {
		return out.Encode(session.Practice)
	}

	score, err := trainer.ScoreFile(ctx, *audioFile)
	if err != nil {
		return fmt.Errorf("scoring failed: %w", err)
	}
	return out.Encode(score)
}
