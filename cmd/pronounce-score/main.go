// ABOUTME: One-shot scorer for a recording against practice text
// ABOUTME: Runs init and score through the full pipeline without the TUI
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/pronounce-labs/pronounce-go/internal/app"
	"github.com/pronounce-labs/pronounce-go/pkg/trainer"
)

var (
	serverURL = flag.String("server", "http://localhost:8000", "Backend URL")
	text      = flag.String("text", "", "Text the recording pronounces")
	voice     = flag.String("voice", "en-US-AriaNeural", "Synthesis voice for the reference")
	rate      = flag.String("rate", "-25%", "Synthesis rate")
	audioFile = flag.String("audio", "", "Recording to score (wav, mp3, flac, or ogg/opus)")
	record    = flag.Bool("record", false, "Record from the microphone instead of -audio")
	seconds   = flag.Int("seconds", 3, "Recording length with -record")
)

func main() {
	flag.Parse()

	log.SetFlags(log.Ltime | log.Lmicroseconds)

	if *text == "" {
		log.Fatalf("-text is required")
	}
	if *audioFile == "" && !*record {
		log.Fatalf("give -audio file or -record")
	}
	if *audioFile != "" && *record {
		log.Fatalf("use -audio or -record, not both")
	}

	tr, err := app.New(app.Config{
		ServerURL:       *serverURL,
		Voice:           *voice,
		Rate:            *rate,
		CaptureRate:     16000,
		CaptureChannels: 1,
	})
	if err != nil {
		log.Fatalf("Failed to start trainer: %v", err)
	}
	defer tr.Close()

	ctx := context.Background()
	if _, err := tr.StartPractice(ctx, *text); err != nil {
		log.Fatalf("Practice init failed: %v", err)
	}

	var score trainer.Score
	if *record {
		score, err = recordScore(ctx, tr)
	} else {
		score, err = tr.ScoreFile(ctx, *audioFile)
	}
	if err != nil {
		log.Fatalf("Scoring failed: %v", err)
	}

	out := json.NewEncoder(os.Stdout)
	out.SetIndent("", "  ")
	if err := out.Encode(score); err != nil {
		log.Fatalf("Encoding result failed: %v", err)
	}
}

// recordScore captures a take from the microphone and scores it.
func recordScore(ctx context.Context, tr *app.Trainer) (trainer.Score, error) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt)
	defer signal.Stop(sigChan)

	fmt.Printf("Recording for %ds (ctrl+c stops early)...\n", *seconds)
	if err := tr.StartRecording(); err != nil {
		return trainer.Score{}, err
	}

	select {
	case <-time.After(time.Duration(*seconds) * time.Second):
	case <-sigChan:
		fmt.Println("Stopped early")
	}

	if _, err := tr.StopRecording(); err != nil {
		return trainer.Score{}, err
	}

	return tr.ScoreTake(ctx)
}
