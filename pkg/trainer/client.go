// ABOUTME: Trainer API HTTP client
// ABOUTME: Implements health, voices, practice init, scoring, and cleanup calls
package trainer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client talks to one trainer backend.
type Client struct {
	baseURL   string
	userAgent string
	client    *http.Client
}

// NewClient creates a client for the backend at baseURL. Scoring runs
// a recognizer server-side, so the timeout is generous.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 60 * time.Second},
	}
}

// SetUserAgent sets the User-Agent header for all requests.
func (c *Client) SetUserAgent(ua string) {
	c.userAgent = ua
}

// BaseURL returns the backend address the client was created with.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Health checks that the server is up and answering.
func (c *Client) Health(ctx context.Context) error {
	var status struct {
		Status string `json:"status"`
	}
	if err := c.getJSON(ctx, "/health", &status); err != nil {
		return err
	}
	if status.Status != "ok" {
		return fmt.Errorf("server reports status %q", status.Status)
	}
	return nil
}

// Voices lists the synthesis voices the server offers.
func (c *Client) Voices(ctx context.Context) ([]Voice, error) {
	var voices []Voice
	if err := c.getJSON(ctx, "/api/voices", &voices); err != nil {
		return nil, err
	}
	return voices, nil
}

// StartPractice asks the server to synthesize text with the given
// voice and speaking rate (for example "-25%") and returns the
// reference audio location and phoneme breakdown.
func (c *Client) StartPractice(ctx context.Context, text, voice, rate string) (Practice, error) {
	form := url.Values{
		"text":  {text},
		"voice": {voice},
		"rate":  {rate},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/practice/init",
		strings.NewReader(form.Encode()))
	if err != nil {
		return Practice{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var practice Practice
	if err := c.do(req, &practice); err != nil {
		return Practice{}, err
	}

	log.Printf("Practice ready: %q, %d phonemes, audio %s", practice.Text, len(practice.Phonemes), practice.AudioURL)
	return practice, nil
}

// ScoreRecording uploads a recording of text and returns the
// phoneme-level score. The recording travels as a multipart file part
// named "audio"; refPhonemes is the ARPA phoneme list from
// StartPractice.
func (c *Client) ScoreRecording(ctx context.Context, recording []byte, filename, text string, refPhonemes []string) (Score, error) {
	phonemesJSON, err := json.Marshal(refPhonemes)
	if err != nil {
		return Score{}, fmt.Errorf("failed to marshal phonemes: %w", err)
	}

	var body bytes.Buffer
	w := multipart.NewWriter(&body)

	part, err := w.CreateFormFile("audio", filename)
	if err != nil {
		return Score{}, fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := part.Write(recording); err != nil {
		return Score{}, fmt.Errorf("failed to write recording: %w", err)
	}
	if err := w.WriteField("text", text); err != nil {
		return Score{}, fmt.Errorf("failed to write text field: %w", err)
	}
	if err := w.WriteField("ref_phonemes", string(phonemesJSON)); err != nil {
		return Score{}, fmt.Errorf("failed to write phonemes field: %w", err)
	}
	if err := w.Close(); err != nil {
		return Score{}, fmt.Errorf("failed to finish multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/practice/score", &body)
	if err != nil {
		return Score{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	var score Score
	if err := c.do(req, &score); err != nil {
		return Score{}, err
	}

	log.Printf("Scored %d bytes: %d/100, %d details", len(recording), score.Score, len(score.Details))
	return score, nil
}

// DeleteAudio asks the server to remove a reference audio file it
// synthesized earlier.
func (c *Client) DeleteAudio(ctx context.Context, audioURL string) error {
	payload, err := json.Marshal(map[string]string{"audio_url": audioURL})
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/audio/delete",
		bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	var status struct {
		Status string `json:"status"`
	}
	return c.do(req, &status)
}

// FetchAudio downloads a reference audio file by its server path, as
// returned in Practice.AudioURL.
func (c *Client) FetchAudio(ctx context.Context, audioURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+audioURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch audio: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, c.statusError(resp)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read audio: %w", err)
	}

	log.Printf("Fetched reference audio: %s (%d bytes)", audioURL, len(data))
	return data, nil
}

// getJSON performs a GET and decodes the JSON response into out.
func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	return c.do(req, out)
}

// do sends the request and decodes the JSON response into out.
func (c *Client) do(req *http.Request, out any) error {
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("request to %s failed: %w", req.URL.Path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return c.statusError(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response from %s: %w", req.URL.Path, err)
	}
	return nil
}

// statusError turns a non-200 response into an error, preferring the
// server's {"detail": "..."} message when present.
func (c *Client) statusError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

	var detail struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &detail); err == nil && detail.Detail != "" {
		return fmt.Errorf("server returned HTTP %d: %s", resp.StatusCode, detail.Detail)
	}
	return fmt.Errorf("server returned HTTP %d", resp.StatusCode)
}
