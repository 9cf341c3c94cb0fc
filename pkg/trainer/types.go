// ABOUTME: Trainer API wire types
// ABOUTME: Defines voices, practice material, and scoring results
package trainer

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Voice is one synthesis voice offered by the server.
type Voice struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// Practice is the material for one practice round: the reference audio
// location and the phoneme breakdown of the text.
type Practice struct {
	AudioURL     string   `json:"audio_url"`
	Phonemes     []string `json:"phonemes"`
	PhonemesARPA []string `json:"phonemes_arpa"`
	Text         string   `json:"text"`
}

// PhonemeStatus classifies one reference phoneme in the alignment of
// the learner's recording against the reference.
type PhonemeStatus string

const (
	StatusMatch        PhonemeStatus = "match"
	StatusSubstitution PhonemeStatus = "substitution"
	StatusMissing      PhonemeStatus = "missing"
	StatusInsertion    PhonemeStatus = "insertion"
)

// Detail is the alignment verdict for one phoneme. User holds what the
// learner said instead, empty for matches and missing phonemes.
type Detail struct {
	Phoneme string        `json:"phoneme"`
	Status  PhonemeStatus `json:"status"`
	User    string        `json:"user"`
}

// Score is the result of scoring one recording.
type Score struct {
	Score       int           `json:"score"`
	Details     []Detail      `json:"details"`
	Transcribed Transcription `json:"transcribed_text"`
}

// Transcription is the recognizer output. The server sends either a
// plain string or an array of phone symbols depending on recognizer
// version, so both decode to a single space-joined string.
type Transcription string

// UnmarshalJSON accepts a JSON string or an array of strings.
func (t *Transcription) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*t = Transcription(s)
		return nil
	}

	var parts []string
	if err := json.Unmarshal(data, &parts); err == nil {
		*t = Transcription(strings.Join(parts, " "))
		return nil
	}

	return fmt.Errorf("transcribed_text is neither string nor string array: %s", string(data))
}

func (t Transcription) String() string {
	return string(t)
}
