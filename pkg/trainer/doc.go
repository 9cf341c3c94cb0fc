// ABOUTME: Pronunciation trainer API client package
// ABOUTME: Talks to the trainer backend over HTTP for practice and scoring
// Package trainer is the HTTP client for the pronunciation trainer
// backend.
//
// A practice session is two round trips: StartPractice asks the server
// to synthesize a reference pronunciation and returns its phoneme
// breakdown, then ScoreRecording uploads the learner's recording and
// returns a phoneme-level comparison. Reference audio is fetched
// separately with FetchAudio and released with DeleteAudio.
//
// Server errors arrive as {"detail": "..."} bodies and are surfaced as
// plain errors with the detail text.
package trainer
