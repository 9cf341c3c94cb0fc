// ABOUTME: Microphone capture package built on malgo/miniaudio
// ABOUTME: Provides the Recorder for take-based recording with level metering
// Package capture records audio from the default input device.
//
// A Recorder is created once and reused: each Start/Stop pair produces
// one Take of raw S16LE PCM. Level exposes the peak amplitude of the
// most recent device callback for live metering.
package capture
