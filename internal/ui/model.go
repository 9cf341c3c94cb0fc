// ABOUTME: Bubbletea model for the practice TUI
// ABOUTME: Screen state machine and update logic for input, practice, and result
package ui

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/pronounce-labs/pronounce-go/internal/app"
	"github.com/pronounce-labs/pronounce-go/pkg/trainer"
)

// Screen identifies one of the TUI screens.
type Screen int

const (
	// ScreenInput collects the text, voice, and rate for a round.
	ScreenInput Screen = iota
	// ScreenPractice plays the reference and records the learner.
	ScreenPractice
	// ScreenResult shows the score and phoneme alignment.
	ScreenResult
)

const (
	meterInterval   = 100 * time.Millisecond
	rateStepPercent = 5
	minRatePercent  = -50
	maxRatePercent  = 50
	volumeStep      = 5
)

// Model represents the TUI state
type Model struct {
	trainer *app.Trainer

	// Screen flow
	screen    Screen
	preparing bool
	scoring   bool

	// Input screen
	input    textinput.Model
	voices   []trainer.Voice
	voiceIdx int
	ratePct  int

	// Active round
	session app.Session
	score   *trainer.Score

	// Device state polled each tick
	playing   bool
	recording bool
	level     float32
	volume    int

	// Status line
	status  string
	lastErr string

	// Dimensions
	width  int
	height int
}

// New builds the model around a trainer. The input field starts focused
// and the rate mirrors the trainer's configured value.
func New(tr *app.Trainer) Model {
	ti := textinput.New()
	ti.Placeholder = "Type a word or phrase to practice..."
	ti.Focus()
	ti.CharLimit = 200
	ti.Width = 48

	return Model{
		trainer:  tr,
		screen:   ScreenInput,
		input:    ti,
		voiceIdx: -1,
		ratePct:  parseRatePercent(tr.Rate()),
		volume:   tr.Volume(),
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.loadVoicesCmd(), tickEvery())
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tickMsg:
		m.applyTick()
		return m, tickEvery()

	case voicesMsg:
		m.applyVoices(msg)

	case practiceReadyMsg:
		m.preparing = false
		m.session = app.Session(msg)
		m.score = nil
		m.transition(ScreenPractice)
		m.status = "p: hear it   r: record yourself"
		if !m.session.HasReference() {
			m.lastErr = "reference audio unavailable"
		}

	case scoreMsg:
		m.scoring = false
		score := trainer.Score(msg)
		m.score = &score
		m.transition(ScreenResult)

	case errMsg:
		m.preparing = false
		m.scoring = false
		m.lastErr = msg.err.Error()
	}

	// Unhandled messages drive the text field (cursor blink)
	if m.screen == ScreenInput {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	return m, nil
}

// handleKey handles keyboard input
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.screen {
	case ScreenInput:
		return m.handleInputKey(msg)
	case ScreenPractice:
		return m.handlePracticeKey(msg)
	default:
		return m.handleResultKey(msg)
	}
}

// handleInputKey handles keys on the text entry screen. Keys without a
// special meaning fall through to the text field.
func (m Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return m, tea.Quit

	case "enter":
		if m.preparing {
			return m, nil
		}
		text := strings.TrimSpace(m.input.Value())
		if text == "" {
			m.status = "Type something to practice"
			return m, nil
		}
		m.preparing = true
		m.lastErr = ""
		m.status = fmt.Sprintf("Preparing %q...", text)
		return m, m.startPracticeCmd(text)

	case "tab":
		m.cycleVoice(1)
		return m, nil

	case "shift+tab":
		m.cycleVoice(-1)
		return m, nil

	case "up":
		m.adjustRate(rateStepPercent)
		return m, nil

	case "down":
		m.adjustRate(-rateStepPercent)
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// handlePracticeKey handles keys on the practice screen.
func (m Model) handlePracticeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit

	case "esc":
		m.trainer.Discard()
		m.transition(ScreenInput)
		m.status = "Round discarded"

	case "p":
		m.toggleReference()

	case "r":
		m.toggleRecording()

	case "enter":
		if m.scoring {
			return m, nil
		}
		if m.recording {
			if _, err := m.trainer.StopRecording(); err != nil {
				m.lastErr = err.Error()
				m.recording = false
				return m, nil
			}
			m.recording = false
		}
		m.scoring = true
		m.lastErr = ""
		m.status = "Scoring..."
		return m, m.scoreTakeCmd()

	case "up":
		m.adjustVolume(volumeStep)

	case "down":
		m.adjustVolume(-volumeStep)
	}

	return m, nil
}

// handleResultKey handles keys on the result screen.
func (m Model) handleResultKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit

	case "n", "esc":
		m.trainer.Discard()
		m.transition(ScreenInput)

	case "r":
		m.score = nil
		m.transition(ScreenPractice)
		m.status = "Try again: r to record"

	case "p":
		m.toggleReference()

	case "u":
		if m.playing {
			m.trainer.StopPlayback()
			m.playing = false
			break
		}
		if err := m.trainer.PlayTake(); err != nil {
			m.lastErr = err.Error()
			break
		}
		m.playing = true

	case "up":
		m.adjustVolume(volumeStep)

	case "down":
		m.adjustVolume(-volumeStep)
	}

	return m, nil
}

// transition switches screens, running the exit action of the screen
// being left. Leaving Practice stops reference playback and any active
// recording; leaving Result stops take playback. Cleanup lives here so
// no key handler can forget it.
func (m *Model) transition(to Screen) {
	if to == m.screen {
		return
	}

	switch m.screen {
	case ScreenPractice:
		m.trainer.StopPlayback()
		if m.trainer.IsRecording() {
			m.trainer.StopRecording()
		}
	case ScreenResult:
		m.trainer.StopPlayback()
	}

	m.screen = to
	m.playing = false
	m.recording = false
	m.level = 0
	m.lastErr = ""
	m.status = ""

	if to == ScreenInput {
		m.input.Reset()
		m.input.Focus()
	} else {
		m.input.Blur()
	}
}

// toggleReference starts or stops reference playback.
func (m *Model) toggleReference() {
	if m.playing {
		m.trainer.StopPlayback()
		m.playing = false
		return
	}
	if err := m.trainer.PlayReference(); err != nil {
		m.lastErr = err.Error()
		return
	}
	m.playing = true
	m.lastErr = ""
}

// toggleRecording starts or stops capturing a take.
func (m *Model) toggleRecording() {
	if m.recording {
		if _, err := m.trainer.StopRecording(); err != nil {
			m.lastErr = err.Error()
		} else {
			m.status = "Take captured. enter: score   r: re-record"
		}
		m.recording = false
		m.level = 0
		return
	}

	m.trainer.StopPlayback()
	if err := m.trainer.StartRecording(); err != nil {
		m.lastErr = err.Error()
		return
	}
	m.recording = true
	m.playing = false
	m.lastErr = ""
	m.status = "Recording... r to stop"
}

// cycleVoice steps through the loaded voice list.
func (m *Model) cycleVoice(step int) {
	if len(m.voices) == 0 {
		m.status = "Voice list not loaded"
		return
	}

	switch {
	case m.voiceIdx < 0 && step > 0:
		m.voiceIdx = 0
	case m.voiceIdx < 0:
		m.voiceIdx = len(m.voices) - 1
	default:
		m.voiceIdx = ((m.voiceIdx+step)%len(m.voices) + len(m.voices)) % len(m.voices)
	}

	voice := m.voices[m.voiceIdx]
	m.trainer.SetVoice(voice.ID)
	m.status = "Voice: " + voice.Label
}

// adjustRate nudges the synthesis speed and pushes it to the trainer.
func (m *Model) adjustRate(step int) {
	pct := m.ratePct + step
	if pct > maxRatePercent {
		pct = maxRatePercent
	}
	if pct < minRatePercent {
		pct = minRatePercent
	}
	m.ratePct = pct
	m.trainer.SetRate(formatRate(pct))
	m.status = "Rate: " + formatRate(pct)
}

// adjustVolume nudges playback volume. The trainer clamps to 0-100.
func (m *Model) adjustVolume(step int) {
	m.trainer.SetVolume(m.volume + step)
	m.volume = m.trainer.Volume()
}

// applyTick refreshes device state the player and recorder own.
func (m *Model) applyTick() {
	m.playing = m.trainer.IsPlaying()
	m.recording = m.trainer.IsRecording()
	m.level = m.trainer.Level()
}

// applyVoices stores the voice list and finds the configured voice in it.
func (m *Model) applyVoices(voices voicesMsg) {
	m.voices = []trainer.Voice(voices)
	current := m.trainer.Voice()
	for i, v := range m.voices {
		if v.ID == current {
			m.voiceIdx = i
			return
		}
	}
}

// Messages

// tickMsg drives the level meter and playback state polling.
type tickMsg time.Time

// voicesMsg delivers the server's voice list.
type voicesMsg []trainer.Voice

// practiceReadyMsg delivers a prepared round.
type practiceReadyMsg app.Session

// scoreMsg delivers the verdict for an uploaded take.
type scoreMsg trainer.Score

// errMsg reports a failed background operation.
type errMsg struct {
	err error
}

func tickEvery() tea.Cmd {
	return tea.Tick(meterInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Commands

func (m Model) loadVoicesCmd() tea.Cmd {
	tr := m.trainer
	return func() tea.Msg {
		voices, err := tr.Voices(context.Background())
		if err != nil {
			return errMsg{fmt.Errorf("voice list: %w", err)}
		}
		return voicesMsg(voices)
	}
}

func (m Model) startPracticeCmd(text string) tea.Cmd {
	tr := m.trainer
	return func() tea.Msg {
		session, err := tr.StartPractice(context.Background(), text)
		if err != nil {
			return errMsg{err}
		}
		return practiceReadyMsg(session)
	}
}

func (m Model) scoreTakeCmd() tea.Cmd {
	tr := m.trainer
	return func() tea.Msg {
		score, err := tr.ScoreTake(context.Background())
		if err != nil {
			return errMsg{err}
		}
		return scoreMsg(score)
	}
}

// Utility functions

// formatRate renders a signed percentage the way the synthesis API
// expects it, "+0%" included.
func formatRate(pct int) string {
	if pct < 0 {
		return fmt.Sprintf("-%d%%", -pct)
	}
	return fmt.Sprintf("+%d%%", pct)
}

// parseRatePercent reads a "-25%" style rate. Unparseable input counts
// as zero.
func parseRatePercent(rate string) int {
	pct, err := strconv.Atoi(strings.TrimSuffix(rate, "%"))
	if err != nil {
		return 0
	}
	return pct
}
