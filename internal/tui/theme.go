package tui

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme/palette helpers.
//
// The TUI must stay readable on both light and dark terminal
// backgrounds, so everything routes through lipgloss.AdaptiveColor and
// "faint" styling is only applied on dark backgrounds.

func ac(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

func faintIfDark(st lipgloss.Style) lipgloss.Style {
	if lipgloss.HasDarkBackground() {
		return st.Faint(true)
	}
	return st
}

var (
	colorMuted    lipgloss.TerminalColor = ac("240", "243")
	colorAccent   lipgloss.TerminalColor = ac("62", "105")
	colorSelBg                           = ac("#e9e9e9", "#262626")
	colorSelFg                           = ac("235", "255")
	colorDanger   lipgloss.TerminalColor = ac("160", "203")
	colorBarTrack lipgloss.TerminalColor = ac("252", "238")
)

func styleMuted() lipgloss.Style {
	return faintIfDark(lipgloss.NewStyle().Foreground(colorMuted))
}

func styleHeader() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true)
}

func styleSelected() lipgloss.Style {
	return lipgloss.NewStyle().Background(colorSelBg).Foreground(colorSelFg)
}

func styleDanger() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(colorDanger)
}

func styleBarTrack() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(colorBarTrack)
}

// applyColorProfilePreference sets Lip Gloss's color profile for the
// interactive TUI. Only NO_COLOR is honored as an opt-out; otherwise the
// terminal's capabilities win, with env hints trusted when the detector
// under-reports (macOS Terminal.app probing, etc).
func applyColorProfilePreference() {
	if strings.TrimSpace(os.Getenv("NO_COLOR")) != "" {
		lipgloss.SetColorProfile(termenv.Ascii)
		return
	}

	profile := termenv.ColorProfile()
	term := strings.ToLower(strings.TrimSpace(os.Getenv("TERM")))
	colorterm := strings.ToLower(strings.TrimSpace(os.Getenv("COLORTERM")))
	if strings.Contains(colorterm, "truecolor") || strings.Contains(colorterm, "24bit") {
		if profile != termenv.Ascii {
			profile = termenv.TrueColor
		}
	} else if strings.Contains(term, "256color") {
		if profile == termenv.Ascii || profile == termenv.ANSI {
			profile = termenv.ANSI256
		}
	}
	lipgloss.SetColorProfile(profile)
}

func lipglossHasColor() bool { return lipgloss.ColorProfile() != termenv.Ascii }

func lipglossDarkBackground() bool { return lipgloss.HasDarkBackground() }

// barStyle colors a task's bar, falling back to the accent color when
// the task has none set.
func barStyle(color string) lipgloss.Style {
	if strings.TrimSpace(color) == "" {
		return lipgloss.NewStyle().Foreground(colorAccent)
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color))
}
