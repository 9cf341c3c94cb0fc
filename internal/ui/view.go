// ABOUTME: Screen rendering for the practice TUI
// ABOUTME: Lipgloss-styled views for the input, practice, and result screens
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/pronounce-labs/pronounce-go/pkg/trainer"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			MarginBottom(1)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("86"))

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("250"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	recordStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196"))

	matchStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	substitutionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	missingStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	insertionStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	faintStyle = lipgloss.NewStyle().Faint(true)
)

// View renders the TUI
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("Pronounce"))
	b.WriteString("\n\n")

	switch m.screen {
	case ScreenInput:
		m.viewInput(&b)
	case ScreenPractice:
		m.viewPractice(&b)
	case ScreenResult:
		m.viewResult(&b)
	}

	m.viewFooter(&b)

	return b.String()
}

// viewInput renders the text entry screen.
func (m Model) viewInput(b *strings.Builder) {
	b.WriteString(headerStyle.Render("Practice text"))
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	b.WriteString(headerStyle.Render("Voice: "))
	b.WriteString(valueStyle.Render(m.voiceLabel()))
	b.WriteString("\n")

	b.WriteString(headerStyle.Render("Rate:  "))
	b.WriteString(valueStyle.Render(formatRate(m.ratePct)))
	b.WriteString("\n")

	if m.preparing {
		b.WriteString("\n")
		b.WriteString(valueStyle.Render("Preparing round..."))
		b.WriteString("\n")
	}
}

// viewPractice renders the round in progress.
func (m Model) viewPractice(b *strings.Builder) {
	b.WriteString(headerStyle.Render("Text:     "))
	b.WriteString(valueStyle.Render(truncate(m.session.Practice.Text, 60)))
	b.WriteString("\n")

	b.WriteString(headerStyle.Render("Phonemes: "))
	b.WriteString(valueStyle.Render(strings.Join(m.session.Practice.Phonemes, " ")))
	b.WriteString("\n\n")

	switch {
	case m.recording:
		b.WriteString(recordStyle.Render("REC "))
		b.WriteString(renderBar(int(m.level*100), 100, 20))
		b.WriteString("\n")
	case m.scoring:
		b.WriteString(valueStyle.Render("Scoring..."))
		b.WriteString("\n")
	case m.playing:
		b.WriteString(valueStyle.Render("Playing reference..."))
		b.WriteString("\n")
	default:
		b.WriteString(valueStyle.Render("Ready"))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	m.viewVolume(b)
}

// viewResult renders the score and alignment.
func (m Model) viewResult(b *strings.Builder) {
	if m.score == nil {
		b.WriteString(valueStyle.Render("No score"))
		b.WriteString("\n")
		return
	}

	b.WriteString(headerStyle.Render("Text:  "))
	b.WriteString(valueStyle.Render(truncate(m.session.Practice.Text, 60)))
	b.WriteString("\n")

	b.WriteString(headerStyle.Render("Score: "))
	b.WriteString(scoreStyle(m.score.Score).Bold(true).Render(fmt.Sprintf("%d / 100", m.score.Score)))
	b.WriteString("\n")

	if heard := m.score.Transcribed.String(); heard != "" {
		b.WriteString(headerStyle.Render("Heard: "))
		b.WriteString(valueStyle.Render(truncate(heard, 60)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(renderAlignment(m.score.Details))
	b.WriteString("\n\n")

	b.WriteString(matchStyle.Render("match"))
	b.WriteString(" ")
	b.WriteString(substitutionStyle.Render("substitution"))
	b.WriteString(" ")
	b.WriteString(missingStyle.Render("missing"))
	b.WriteString(" ")
	b.WriteString(insertionStyle.Render("insertion"))
	b.WriteString("\n\n")

	if m.playing {
		b.WriteString(valueStyle.Render("Playing..."))
		b.WriteString("\n")
	}
	m.viewVolume(b)
}

// viewVolume renders the playback volume bar.
func (m Model) viewVolume(b *strings.Builder) {
	b.WriteString(headerStyle.Render("Volume: "))
	b.WriteString(valueStyle.Render(fmt.Sprintf("[%s] %d%%", renderBar(m.volume, 100, 10), m.volume)))
	b.WriteString("\n")
}

// viewFooter renders the status or error line and the key help.
func (m Model) viewFooter(b *strings.Builder) {
	b.WriteString("\n")
	if m.lastErr != "" {
		b.WriteString(errorStyle.Render("Error: " + m.lastErr))
		b.WriteString("\n")
	} else if m.status != "" {
		b.WriteString(valueStyle.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(faintStyle.Render(m.helpLine()))
	b.WriteString("\n")
}

// helpLine lists the keys that work on the current screen.
func (m Model) helpLine() string {
	switch m.screen {
	case ScreenInput:
		return "enter: start   tab: voice   up/down: rate   ctrl+c: quit"
	case ScreenPractice:
		return "p: reference   r: record   enter: score   up/down: volume   esc: back   q: quit"
	default:
		return "r: retry   p: reference   u: your take   n: new text   up/down: volume   q: quit"
	}
}

// voiceLabel names the selected voice, falling back to the configured
// ID before the voice list loads.
func (m Model) voiceLabel() string {
	if m.voiceIdx >= 0 && m.voiceIdx < len(m.voices) {
		return m.voices[m.voiceIdx].Label
	}
	return m.trainer.Voice()
}

// renderAlignment colors each phoneme of the alignment by its verdict.
// Substitutions show what the learner said instead; insertions are
// phonemes the learner added.
func renderAlignment(details []trainer.Detail) string {
	parts := make([]string, 0, len(details))
	for _, d := range details {
		label := d.Phoneme
		switch d.Status {
		case trainer.StatusSubstitution:
			if d.User != "" {
				label = d.Phoneme + ">" + d.User
			}
		case trainer.StatusInsertion:
			label = "+" + d.User
		}
		parts = append(parts, phonemeStyle(d.Status).Render(label))
	}
	return strings.Join(parts, " ")
}

// phonemeStyle maps an alignment verdict to its color.
func phonemeStyle(status trainer.PhonemeStatus) lipgloss.Style {
	switch status {
	case trainer.StatusMatch:
		return matchStyle
	case trainer.StatusSubstitution:
		return substitutionStyle
	case trainer.StatusMissing:
		return missingStyle
	default:
		return insertionStyle
	}
}

// scoreStyle bands the score: green from 80, yellow from 50, red below.
func scoreStyle(score int) lipgloss.Style {
	switch {
	case score >= 80:
		return matchStyle
	case score >= 50:
		return substitutionStyle
	default:
		return missingStyle
	}
}

// Utility functions

func renderBar(value, max, width int) string {
	if value > max {
		value = max
	}
	if value < 0 {
		value = 0
	}
	filled := (value * width) / max
	bar := ""
	for i := 0; i < width; i++ {
		if i < filled {
			bar += "█"
		} else {
			bar += "░"
		}
	}
	return bar
}

func truncate(s string, length int) string {
	if len(s) <= length {
		return s
	}
	return s[:length-3] + "..."
}
